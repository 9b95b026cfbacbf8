package usecase

import (
	"fmt"
	"strings"

	"github.com/evandrarf/gnrs-ai-tutor/internal/delivery/http/entity"
)

const defaultPersonaPrompt = `You are an expert, patient and encouraging AI tutor for Ghanaian students.
Your teaching approach:
- Explain concepts step by step, starting from what the student already knows
- Use simple language and relatable examples, including examples from everyday life in Ghana
- Check understanding with short questions before moving on
- When the student makes a mistake, point it out kindly and guide them to the right answer instead of just giving it
- Keep answers focused and reasonably short; use lists or numbered steps where they help
- Celebrate progress and keep the student motivated`

const analysisPrompt = `You are an expert curriculum designer. Analyze the study material below and break it into a structured learning plan.

Return ONLY valid JSON, NO markdown, NO code blocks, in exactly this format:
{
  "title": "short title for the material",
  "topics": [
    {
      "name": "topic name",
      "subtopics": ["subtopic"],
      "keyConcepts": ["concept"],
      "difficulty": "beginner|intermediate|advanced",
      "estimatedMinutes": 15,
      "order": 1
    }
  ],
  "overallDifficulty": "beginner|intermediate|advanced",
  "totalEstimatedMinutes": 60,
  "learningObjectives": ["objective"],
  "prerequisites": ["prerequisite"],
  "conceptMap": {"concept": ["related concept or relation"]}
}

Order topics so that each one builds on the previous ones, starting at order 1.`

const questionPrompt = `You are an expert tutor creating practice questions that adapt to the student.

Create EXACTLY 3 questions:
- one "easy", one "medium" and one "hard"
- mix "multiple_choice" (with exactly 4 options) and "short_answer" questions
- every question must test one concept from the lesson

Return ONLY valid JSON, NO markdown, NO code blocks, in exactly this format:
{
  "questions": [
    {
      "type": "multiple_choice|short_answer",
      "question": "question text",
      "options": ["A", "B", "C", "D"],
      "correctAnswer": "the correct answer exactly as it appears in options",
      "explanation": "why this is the correct answer",
      "difficulty": "easy|medium|hard",
      "concept": "concept being tested"
    }
  ]
}

Omit "options" for short_answer questions.`

const gradingPrompt = `You are an encouraging tutor giving feedback on a student's answer.
- If the answer is correct, congratulate the student and briefly reinforce why it is right.
- If it is wrong, say so gently, explain the correct answer and the reasoning behind it, and give one tip to remember it.
Keep the feedback to a short paragraph written directly to the student.`

const summaryPrompt = `You are a supportive tutor wrapping up a study session. Write a recap for the student with these sections:
1. Key takeaways: the most important ideas covered
2. Strengths: what the student did well
3. Focus areas: what to review next and how
4. A short closing message of encouragement
Write in plain text addressed to the student.`

func lessonContextBlock(lc *entity.LessonContext) string {
	if lc == nil {
		return ""
	}

	var b strings.Builder
	b.WriteString("Current lesson context:\n")
	fmt.Fprintf(&b, "- Topic: %s\n", lc.Topic)
	if lc.Subtopic != "" {
		fmt.Fprintf(&b, "- Subtopic: %s\n", lc.Subtopic)
	}
	if lc.Difficulty != "" {
		fmt.Fprintf(&b, "- Difficulty level: %s\n", lc.Difficulty)
	}
	if lc.LearningStyle != "" {
		fmt.Fprintf(&b, "- Preferred learning style: %s (adapt explanations to it)\n", lc.LearningStyle)
	}
	return b.String()
}

func (u *tutorUsecase) chatSystemPrompt(lc *entity.LessonContext) string {
	block := lessonContextBlock(lc)
	if block == "" {
		return u.cfg.PersonaPrompt
	}
	return u.cfg.PersonaPrompt + "\n\n" + block
}

func buildAnalysisPrompt(material string) string {
	return analysisPrompt + "\n\nStudy material:\n" + material
}

func buildQuestionPrompt(lc *entity.LessonContext) string {
	return questionPrompt + "\n\n" + lessonContextBlock(lc)
}

func buildGradingPrompt(q *entity.AnswerQuestion) string {
	var b strings.Builder
	b.WriteString(gradingPrompt)
	b.WriteString("\n\n")
	fmt.Fprintf(&b, "Question: %s\n", q.Question)
	if len(q.Options) > 0 {
		fmt.Fprintf(&b, "Options: %s\n", strings.Join(q.Options, ", "))
	}
	fmt.Fprintf(&b, "Correct answer: %s\n", q.CorrectAnswer)
	fmt.Fprintf(&b, "Student's answer: %s\n", q.UserAnswer)
	return b.String()
}

func buildSummaryPrompt(lc *entity.LessonContext, messages []entity.ChatMessage) string {
	var b strings.Builder
	b.WriteString(summaryPrompt)
	b.WriteString("\n\n")
	b.WriteString(lessonContextBlock(lc))

	if len(messages) > 0 {
		b.WriteString("\nSession transcript:\n")
		for _, m := range messages {
			speaker := "Student"
			if m.Role == "assistant" {
				speaker = "Tutor"
			}
			fmt.Fprintf(&b, "%s: %s\n", speaker, m.Content)
		}
	}
	return b.String()
}

package entity

type Action string

const (
	ActionAnalyzeMaterial  Action = "analyze_material"
	ActionChat             Action = "chat"
	ActionGenerateQuestion Action = "generate_question"
	ActionCheckAnswer      Action = "check_answer"
	ActionGetSummary       Action = "get_summary"
)

type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

type QuestionType string

const (
	QuestionTypeMultipleChoice QuestionType = "multiple_choice"
	QuestionTypeShortAnswer    QuestionType = "short_answer"
)

// TutorRequest is the body of POST /ai-tutor. Which fields are required
// depends on Action.
type TutorRequest struct {
	Action        Action          `json:"action"`
	SessionID     string          `json:"sessionId,omitempty"`
	Material      string          `json:"material,omitempty"`
	Messages      []ChatMessage   `json:"messages,omitempty" validate:"omitempty,dive"`
	LessonContext *LessonContext  `json:"lessonContext,omitempty"`
	Question      *AnswerQuestion `json:"question,omitempty"`
}

type ChatMessage struct {
	Role    string `json:"role" validate:"required,oneof=user assistant"`
	Content string `json:"content" validate:"required"`
}

type LessonContext struct {
	Topic         string `json:"topic" validate:"required"`
	Subtopic      string `json:"subtopic,omitempty"`
	Difficulty    string `json:"difficulty"`
	LearningStyle string `json:"learningStyle"`
}

type AnswerQuestion struct {
	Question      string   `json:"question" validate:"required"`
	Options       []string `json:"options,omitempty"`
	CorrectAnswer string   `json:"correctAnswer" validate:"required"`
	UserAnswer    string   `json:"userAnswer"`
}

type MaterialAnalysis struct {
	Title                 string              `json:"title"`
	Topics                []AnalysisTopic     `json:"topics"`
	OverallDifficulty     string              `json:"overallDifficulty"`
	TotalEstimatedMinutes int                 `json:"totalEstimatedMinutes"`
	LearningObjectives    []string            `json:"learningObjectives"`
	Prerequisites         []string            `json:"prerequisites"`
	ConceptMap            map[string][]string `json:"conceptMap"`
}

type AnalysisTopic struct {
	Name             string   `json:"name"`
	Subtopics        []string `json:"subtopics"`
	KeyConcepts      []string `json:"keyConcepts"`
	Difficulty       string   `json:"difficulty"`
	EstimatedMinutes int      `json:"estimatedMinutes"`
	Order            int      `json:"order"`
}

type QuestionSet struct {
	Questions []GeneratedQuestion `json:"questions"`
}

type GeneratedQuestion struct {
	Type          QuestionType `json:"type"`
	Question      string       `json:"question"`
	Options       []string     `json:"options,omitempty"`
	CorrectAnswer string       `json:"correctAnswer"`
	Explanation   string       `json:"explanation"`
	Difficulty    Difficulty   `json:"difficulty"`
	Concept       string       `json:"concept"`
}

type AnswerFeedback struct {
	IsCorrect bool   `json:"isCorrect"`
	Feedback  string `json:"feedback"`
}

type SessionSummary struct {
	Summary string `json:"summary"`
}

// ErrorBody is the uniform failure shape, also used for the analysis parse fallback.
type ErrorBody struct {
	Error string `json:"error"`
}

type InteractionLog struct {
	ID         uint   `json:"id"`
	RequestID  string `json:"requestId"`
	SessionID  string `json:"sessionId"`
	Action     string `json:"action"`
	Outcome    string `json:"outcome"`
	DurationMs int64  `json:"durationMs"`
	Error      string `json:"error,omitempty"`
	CreatedAt  string `json:"createdAt"`
}

type InteractionList struct {
	Interactions []InteractionLog `json:"interactions"`
}

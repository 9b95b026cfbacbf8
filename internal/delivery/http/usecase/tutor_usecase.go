package usecase

import (
	"cmp"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/evandrarf/gnrs-ai-tutor/internal/delivery/http/domain"
	"github.com/evandrarf/gnrs-ai-tutor/internal/delivery/http/entity"
	"github.com/evandrarf/gnrs-ai-tutor/internal/delivery/http/repository"
	internalEntity "github.com/evandrarf/gnrs-ai-tutor/internal/entity"
	"github.com/evandrarf/gnrs-ai-tutor/internal/pkg/jsonextract"
	"github.com/evandrarf/gnrs-ai-tutor/internal/pkg/llm"
	"github.com/evandrarf/gnrs-ai-tutor/internal/pkg/mapper"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

const (
	MaxMaterialChars = 50000
	MaxOutputTokens  = 4096

	analysisTemperature = 0.3
	questionTemperature = 0.5
	gradingTemperature  = 0.6

	interactionListLimit = 100
)

var (
	ErrMaterialRequired      = errors.New(domain.TUTOR_MATERIAL_REQUIRED)
	ErrMessagesRequired      = errors.New(domain.TUTOR_MESSAGES_REQUIRED)
	ErrLessonContextRequired = errors.New(domain.TUTOR_LESSON_CONTEXT_REQUIRED)
	ErrQuestionRequired      = errors.New(domain.TUTOR_QUESTION_REQUIRED)
)

type UnknownActionError struct {
	Action string
}

func (e *UnknownActionError) Error() string {
	return fmt.Sprintf("%s: %s", domain.TUTOR_UNKNOWN_ACTION, e.Action)
}

// Result is what one dispatched request produced: either a JSON body or,
// for chat, an open upstream stream the caller must forward and close.
type Result struct {
	Action  entity.Action
	Body    any
	Stream  llm.Stream
	Outcome string
}

type TutorUsecase interface {
	Dispatch(ctx context.Context, requestID string, req entity.TutorRequest) (*Result, error)
	ListInteractions(ctx context.Context, sessionID string) ([]entity.InteractionLog, error)
}

type TutorConfig struct {
	DB            *gorm.DB
	LLM           llm.Client
	PersonaPrompt string
	Repository    repository.TutorInteractionRepository
	Log           *logrus.Logger
}

type tutorUsecase struct {
	cfg TutorConfig
}

func NewTutorUsecase(cfg TutorConfig) TutorUsecase {
	if cfg.PersonaPrompt == "" {
		cfg.PersonaPrompt = defaultPersonaPrompt
	}
	if cfg.Log == nil {
		cfg.Log = logrus.StandardLogger()
	}
	return &tutorUsecase{cfg: cfg}
}

func (u *tutorUsecase) Dispatch(ctx context.Context, requestID string, req entity.TutorRequest) (*Result, error) {
	start := time.Now()

	var (
		res *Result
		err error
	)
	switch req.Action {
	case entity.ActionAnalyzeMaterial:
		res, err = u.analyzeMaterial(ctx, req.Material)
	case entity.ActionChat:
		res, err = u.chat(ctx, req.Messages, req.LessonContext)
	case entity.ActionGenerateQuestion:
		res, err = u.generateQuestion(ctx, req.LessonContext)
	case entity.ActionCheckAnswer:
		res, err = u.checkAnswer(ctx, req.Question)
	case entity.ActionGetSummary:
		res, err = u.getSummary(ctx, req.LessonContext, req.Messages)
	default:
		err = &UnknownActionError{Action: string(req.Action)}
	}

	u.record(requestID, req, res, err, time.Since(start))

	if err != nil {
		return nil, err
	}
	res.Action = req.Action
	return res, nil
}

func (u *tutorUsecase) analyzeMaterial(ctx context.Context, material string) (*Result, error) {
	if strings.TrimSpace(material) == "" {
		return nil, ErrMaterialRequired
	}

	text, err := u.cfg.LLM.GenerateText(ctx, llm.TextRequest{
		Prompt:          buildAnalysisPrompt(truncateRunes(material, MaxMaterialChars)),
		Temperature:     analysisTemperature,
		MaxOutputTokens: MaxOutputTokens,
	})
	if err != nil {
		return nil, err
	}

	analysis, err := parseAnalysis(text)
	if err != nil {
		u.cfg.Log.WithError(err).Warn("material analysis output is not valid json, using fallback")
		return &Result{
			Body:    entity.ErrorBody{Error: domain.TUTOR_ANALYSIS_PARSE_FAILED},
			Outcome: internalEntity.OutcomeFallback,
		}, nil
	}

	return &Result{Body: analysis, Outcome: internalEntity.OutcomeOK}, nil
}

func (u *tutorUsecase) chat(ctx context.Context, messages []entity.ChatMessage, lc *entity.LessonContext) (*Result, error) {
	if len(messages) == 0 {
		return nil, ErrMessagesRequired
	}

	turns := make([]llm.Message, 0, len(messages))
	for _, m := range messages {
		turns = append(turns, llm.Message{Role: m.Role, Content: m.Content})
	}
	// no separate system channel in this integration, the persona rides on the first turn
	turns[0].Content = u.chatSystemPrompt(lc) + "\n\n" + turns[0].Content

	stream, err := u.cfg.LLM.StreamChat(ctx, llm.ChatRequest{Messages: turns})
	if err != nil {
		return nil, err
	}

	return &Result{Stream: stream, Outcome: internalEntity.OutcomeOK}, nil
}

func (u *tutorUsecase) generateQuestion(ctx context.Context, lc *entity.LessonContext) (*Result, error) {
	if lc == nil {
		return nil, ErrLessonContextRequired
	}

	text, err := u.cfg.LLM.GenerateText(ctx, llm.TextRequest{
		Prompt:          buildQuestionPrompt(lc),
		Temperature:     questionTemperature,
		MaxOutputTokens: MaxOutputTokens,
	})
	if err != nil {
		return nil, err
	}

	set, err := parseQuestionSet(text)
	if err != nil {
		u.cfg.Log.WithError(err).Warn("question output is not valid json, returning empty set")
		return &Result{
			Body:    entity.QuestionSet{Questions: []entity.GeneratedQuestion{}},
			Outcome: internalEntity.OutcomeFallback,
		}, nil
	}

	return &Result{Body: set, Outcome: internalEntity.OutcomeOK}, nil
}

func (u *tutorUsecase) checkAnswer(ctx context.Context, q *entity.AnswerQuestion) (*Result, error) {
	if q == nil {
		return nil, ErrQuestionRequired
	}

	text, err := u.cfg.LLM.GenerateText(ctx, llm.TextRequest{
		Prompt:          buildGradingPrompt(q),
		Temperature:     gradingTemperature,
		MaxOutputTokens: MaxOutputTokens,
	})
	if err != nil {
		return nil, err
	}

	return &Result{
		Body: entity.AnswerFeedback{
			IsCorrect: IsCorrectAnswer(q.UserAnswer, q.CorrectAnswer),
			Feedback:  strings.TrimSpace(text),
		},
		Outcome: internalEntity.OutcomeOK,
	}, nil
}

func (u *tutorUsecase) getSummary(ctx context.Context, lc *entity.LessonContext, messages []entity.ChatMessage) (*Result, error) {
	if lc == nil {
		return nil, ErrLessonContextRequired
	}

	// summary shares the grading temperature
	text, err := u.cfg.LLM.GenerateText(ctx, llm.TextRequest{
		Prompt:          buildSummaryPrompt(lc, messages),
		Temperature:     gradingTemperature,
		MaxOutputTokens: MaxOutputTokens,
	})
	if err != nil {
		return nil, err
	}

	return &Result{Body: entity.SessionSummary{Summary: text}, Outcome: internalEntity.OutcomeOK}, nil
}

func (u *tutorUsecase) ListInteractions(ctx context.Context, sessionID string) ([]entity.InteractionLog, error) {
	if u.cfg.Repository == nil {
		return []entity.InteractionLog{}, nil
	}

	rows, err := u.cfg.Repository.FindBySessionID(u.dbWith(ctx), sessionID, interactionListLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to load interactions: %w", err)
	}
	return mapper.ConvertToInteractionLogs(rows), nil
}

func (u *tutorUsecase) record(requestID string, req entity.TutorRequest, res *Result, dispatchErr error, elapsed time.Duration) {
	if u.cfg.Repository == nil {
		return
	}

	row := &internalEntity.TutorInteraction{
		RequestID:  requestID,
		SessionID:  req.SessionID,
		Action:     string(req.Action),
		Outcome:    internalEntity.OutcomeOK,
		DurationMs: elapsed.Milliseconds(),
	}
	switch {
	case dispatchErr != nil:
		row.Outcome = internalEntity.OutcomeError
		row.Error = dispatchErr.Error()
	case res != nil && res.Outcome != "":
		row.Outcome = res.Outcome
	}

	if err := u.cfg.Repository.Create(u.cfg.DB, row); err != nil {
		u.cfg.Log.WithError(err).WithField("request_id", requestID).Warn("failed to record tutor interaction")
	}
}

func (u *tutorUsecase) dbWith(ctx context.Context) *gorm.DB {
	if u.cfg.DB == nil {
		return nil
	}
	return u.cfg.DB.WithContext(ctx)
}

// IsCorrectAnswer compares answers case-insensitively after trimming whitespace.
func IsCorrectAnswer(userAnswer, correctAnswer string) bool {
	return strings.EqualFold(strings.TrimSpace(userAnswer), strings.TrimSpace(correctAnswer))
}

// truncateRunes keeps the first n code points of s.
func truncateRunes(s string, n int) string {
	if len(s) <= n {
		return s
	}

	count := 0
	for i := range s {
		if count == n {
			return s[:i]
		}
		count++
	}
	return s
}

func parseAnalysis(text string) (*entity.MaterialAnalysis, error) {
	raw, err := jsonextract.FirstObject(text)
	if err != nil {
		return nil, err
	}

	var analysis entity.MaterialAnalysis
	if err := json.Unmarshal([]byte(raw), &analysis); err != nil {
		return nil, fmt.Errorf("analysis json does not match schema: %w", err)
	}

	slices.SortStableFunc(analysis.Topics, func(a, b entity.AnalysisTopic) int {
		return cmp.Compare(a.Order, b.Order)
	})

	if analysis.Topics == nil {
		analysis.Topics = []entity.AnalysisTopic{}
	}
	if analysis.LearningObjectives == nil {
		analysis.LearningObjectives = []string{}
	}
	if analysis.Prerequisites == nil {
		analysis.Prerequisites = []string{}
	}
	if analysis.ConceptMap == nil {
		analysis.ConceptMap = map[string][]string{}
	}
	return &analysis, nil
}

func parseQuestionSet(text string) (*entity.QuestionSet, error) {
	raw, err := jsonextract.FirstObject(text)
	if err != nil {
		return nil, err
	}

	var set entity.QuestionSet
	if err := json.Unmarshal([]byte(raw), &set); err != nil {
		return nil, fmt.Errorf("question json does not match schema: %w", err)
	}
	if set.Questions == nil {
		set.Questions = []entity.GeneratedQuestion{}
	}
	for i := range set.Questions {
		normalizeQuestion(&set.Questions[i])
	}
	return &set, nil
}

var questionTypeAliases = strings.NewReplacer("-", "_", " ", "_")

// normalizeQuestion folds the model's spelling of type and difficulty onto the
// known values. An unrecognized type is inferred from the presence of options;
// an unrecognized difficulty is left as written.
func normalizeQuestion(q *entity.GeneratedQuestion) {
	qt := entity.QuestionType(questionTypeAliases.Replace(strings.ToLower(strings.TrimSpace(string(q.Type)))))
	switch qt {
	case entity.QuestionTypeMultipleChoice, entity.QuestionTypeShortAnswer:
		q.Type = qt
	default:
		if len(q.Options) > 0 {
			q.Type = entity.QuestionTypeMultipleChoice
		} else {
			q.Type = entity.QuestionTypeShortAnswer
		}
	}

	d := entity.Difficulty(strings.ToLower(strings.TrimSpace(string(q.Difficulty))))
	switch d {
	case entity.DifficultyEasy, entity.DifficultyMedium, entity.DifficultyHard:
		q.Difficulty = d
	}
}

package ai

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/fairyhunter13/ai-career-coach/internal/domain"
)

// Shapes accepted from the generation provider. Parsing is all-or-nothing:
// a payload that decodes but violates the shape (wrong question count,
// missing options, unknown enum value) is rejected the same way as broken
// JSON. Extra fields the provider volunteers (e.g. salary range locations)
// are tolerated.

type quizPayload struct {
	Questions []quizQuestion `json:"questions" validate:"required,len=10,dive"`
}

type quizQuestion struct {
	Question      string   `json:"question" validate:"required"`
	Options       []string `json:"options" validate:"required,len=4,dive,required"`
	CorrectAnswer string   `json:"correctAnswer" validate:"required"`
	Explanation   string   `json:"explanation" validate:"required"`
}

type insightPayload struct {
	SalaryRanges      []domain.SalaryRange `json:"salaryRanges" validate:"required,min=5"`
	GrowthRate        float64              `json:"growthRate"`
	DemandLevel       string               `json:"demandLevel" validate:"required,oneof=HIGH MEDIUM LOW"`
	TopSkills         []string             `json:"topSkills" validate:"required,min=5"`
	MarketOutlook     string               `json:"marketOutlook" validate:"required,oneof=POSITIVE NEUTRAL NEGATIVE"`
	KeyTrends         []string             `json:"keyTrends" validate:"required,min=5"`
	RecommendedSkills []string             `json:"recommendedSkills" validate:"required,min=1"`
}

var (
	vldOnce sync.Once
	vld     *validator.Validate
)

func getValidator() *validator.Validate {
	vldOnce.Do(func() { vld = validator.New() })
	return vld
}

// ParseQuiz strictly parses sanitized text as a 10-question quiz.
func ParseQuiz(sanitized string) ([]domain.QuizQuestion, error) {
	var p quizPayload
	if err := json.Unmarshal([]byte(sanitized), &p); err != nil {
		return nil, fmt.Errorf("op=ai.parse_quiz syntax: %v: %w", err, domain.ErrSchemaInvalid)
	}
	if err := getValidator().Struct(p); err != nil {
		return nil, fmt.Errorf("op=ai.parse_quiz schema: %v: %w", err, domain.ErrSchemaInvalid)
	}
	out := make([]domain.QuizQuestion, 0, len(p.Questions))
	for _, q := range p.Questions {
		out = append(out, domain.QuizQuestion{
			Question:      q.Question,
			Options:       q.Options,
			CorrectAnswer: q.CorrectAnswer,
			Explanation:   q.Explanation,
		})
	}
	return out, nil
}

// ParseInsight strictly parses sanitized text as an industry insight payload.
func ParseInsight(sanitized string) (domain.InsightPayload, error) {
	var p insightPayload
	if err := json.Unmarshal([]byte(sanitized), &p); err != nil {
		return domain.InsightPayload{}, fmt.Errorf("op=ai.parse_insight syntax: %v: %w", err, domain.ErrSchemaInvalid)
	}
	if err := getValidator().Struct(p); err != nil {
		return domain.InsightPayload{}, fmt.Errorf("op=ai.parse_insight schema: %v: %w", err, domain.ErrSchemaInvalid)
	}
	return domain.InsightPayload{
		SalaryRanges:      p.SalaryRanges,
		GrowthRate:        p.GrowthRate,
		DemandLevel:       domain.DemandLevel(p.DemandLevel),
		TopSkills:         p.TopSkills,
		MarketOutlook:     domain.MarketOutlook(p.MarketOutlook),
		KeyTrends:         p.KeyTrends,
		RecommendedSkills: p.RecommendedSkills,
	}, nil
}

// ParseObject parses sanitized text as one generic JSON object. Used where a
// fixed shape is not required.
func ParseObject(sanitized string) (map[string]any, error) {
	var m map[string]any
	if err := json.Unmarshal([]byte(sanitized), &m); err != nil {
		return nil, fmt.Errorf("op=ai.parse_object syntax: %v: %w", err, domain.ErrSchemaInvalid)
	}
	return m, nil
}

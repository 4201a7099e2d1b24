// Package usecase contains application business logic services.
package usecase

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/fairyhunter13/ai-career-coach/internal/adapter/ai"
	"github.com/fairyhunter13/ai-career-coach/internal/adapter/observability"
	"github.com/fairyhunter13/ai-career-coach/internal/domain"
)

// InterviewService generates quizzes, scores submitted answers, and keeps
// the assessment history.
type InterviewService struct {
	Users       domain.UserRepository
	Assessments domain.AssessmentRepository
	Gen         domain.Generator
}

// NewInterviewService constructs an InterviewService with its dependencies.
func NewInterviewService(u domain.UserRepository, a domain.AssessmentRepository, g domain.Generator) InterviewService {
	return InterviewService{Users: u, Assessments: a, Gen: g}
}

// GenerateQuiz runs the generation pipeline for the caller's industry and
// returns 10 parsed multiple-choice questions. Generation or format failures
// abort the operation; nothing is persisted here.
func (s InterviewService) GenerateQuiz(ctx domain.Context, externalID string) ([]domain.QuizQuestion, error) {
	user, err := s.Users.FindByExternalID(ctx, externalID)
	if err != nil {
		return nil, err
	}
	if !user.Onboarded() {
		return nil, fmt.Errorf("%w: user has no industry", domain.ErrInvalidArgument)
	}
	raw, err := s.Gen.Generate(ctx, ComposeQuizPrompt(user.Industry, user.Skills))
	if err != nil {
		return nil, fmt.Errorf("op=interview.generate_quiz: %w", err)
	}
	questions, err := ai.ParseQuiz(ai.StripCodeFences(raw))
	if err != nil {
		return nil, fmt.Errorf("op=interview.generate_quiz: %w", err)
	}
	return questions, nil
}

// SaveQuizResult scores the submitted answers, attempts one best-effort
// improvement tip when any answer is wrong, and persists the assessment.
// The tip attempt resolves (success or logged failure) before persistence
// and never fails the save.
func (s InterviewService) SaveQuizResult(ctx domain.Context, externalID string, questions []domain.QuizQuestion, answers []string) (domain.Assessment, error) {
	user, err := s.Users.FindByExternalID(ctx, externalID)
	if err != nil {
		return domain.Assessment{}, err
	}
	score, results, err := ScoreQuiz(questions, answers)
	if err != nil {
		return domain.Assessment{}, err
	}

	var wrong []domain.QuestionResult
	for _, r := range results {
		if !r.IsCorrect {
			wrong = append(wrong, r)
		}
	}
	var tip *string
	if len(wrong) > 0 {
		if t := s.generateTip(ctx, user.Industry, wrong); t != "" {
			tip = &t
		}
	}

	a := domain.Assessment{
		UserID:         user.ID,
		QuizScore:      score,
		Questions:      results,
		Category:       domain.AssessmentCategoryTechnical,
		ImprovementTip: tip,
	}
	saved, err := s.Assessments.Create(ctx, a)
	if err != nil {
		return domain.Assessment{}, fmt.Errorf("op=interview.save_result: %w", err)
	}
	observability.AssessmentsCreatedTotal.Inc()
	slog.Info("assessment saved",
		slog.String("user_id", user.ID),
		slog.Float64("score", score),
		slog.Int("wrong", len(wrong)),
		slog.Bool("tip", tip != nil))
	return saved, nil
}

// generateTip is the sole best-effort step in the pipeline: any failure is
// logged and degrades to an absent tip.
func (s InterviewService) generateTip(ctx domain.Context, industry string, wrong []domain.QuestionResult) string {
	raw, err := s.Gen.Generate(ctx, ComposeImprovementTipPrompt(industry, wrong))
	if err != nil {
		slog.Error("improvement tip generation failed", slog.Any("error", err))
		return ""
	}
	return strings.TrimSpace(ai.StripCodeFences(raw))
}

// ListAssessments returns the caller's quiz history, oldest first.
func (s InterviewService) ListAssessments(ctx domain.Context, externalID string) ([]domain.Assessment, error) {
	user, err := s.Users.FindByExternalID(ctx, externalID)
	if err != nil {
		return nil, err
	}
	return s.Assessments.ListByUser(ctx, user.ID)
}

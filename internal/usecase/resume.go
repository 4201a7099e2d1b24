package usecase

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/fairyhunter13/ai-career-coach/internal/adapter/ai"
	"github.com/fairyhunter13/ai-career-coach/internal/domain"
	"github.com/fairyhunter13/ai-career-coach/pkg/textx"
)

// ResumeService saves and loads the single markdown resume per user and
// improves individual entry descriptions through the generation pipeline.
type ResumeService struct {
	Users   domain.UserRepository
	Resumes domain.ResumeRepository
	Gen     domain.Generator
}

// NewResumeService constructs a ResumeService with its dependencies.
func NewResumeService(u domain.UserRepository, r domain.ResumeRepository, g domain.Generator) ResumeService {
	return ResumeService{Users: u, Resumes: r, Gen: g}
}

// Save overwrites the caller's resume content. No version history is kept.
func (s ResumeService) Save(ctx domain.Context, externalID, content string) (domain.Resume, error) {
	user, err := s.Users.FindByExternalID(ctx, externalID)
	if err != nil {
		return domain.Resume{}, err
	}
	content = textx.SanitizeText(content)
	if content == "" {
		return domain.Resume{}, fmt.Errorf("%w: content required", domain.ErrInvalidArgument)
	}
	saved, err := s.Resumes.Upsert(ctx, domain.Resume{UserID: user.ID, Content: content})
	if err != nil {
		return domain.Resume{}, fmt.Errorf("op=resume.save: %w", err)
	}
	slog.Info("resume saved", slog.String("user_id", user.ID), slog.Int("bytes", len(content)))
	return saved, nil
}

// Get loads the caller's resume.
func (s ResumeService) Get(ctx domain.Context, externalID string) (domain.Resume, error) {
	user, err := s.Users.FindByExternalID(ctx, externalID)
	if err != nil {
		return domain.Resume{}, err
	}
	return s.Resumes.GetByUser(ctx, user.ID)
}

// ImproveEntry rewrites one resume entry description for the caller's
// industry. The response is free text: sanitized and trimmed, no JSON
// parsing. Generation failure aborts the operation.
func (s ResumeService) ImproveEntry(ctx domain.Context, externalID, entryType, current string) (string, error) {
	if strings.TrimSpace(current) == "" {
		return "", fmt.Errorf("%w: current content required", domain.ErrInvalidArgument)
	}
	user, err := s.Users.FindByExternalID(ctx, externalID)
	if err != nil {
		return "", err
	}
	if !user.Onboarded() {
		return "", fmt.Errorf("%w: user has no industry", domain.ErrInvalidArgument)
	}
	if entryType == "" {
		entryType = "experience"
	}
	raw, err := s.Gen.Generate(ctx, ComposeEntryImprovementPrompt(user.Industry, entryType, current))
	if err != nil {
		return "", fmt.Errorf("op=resume.improve: %w", err)
	}
	improved := strings.TrimSpace(ai.StripCodeFences(raw))
	if improved == "" {
		return "", fmt.Errorf("op=resume.improve empty response: %w", domain.ErrSchemaInvalid)
	}
	return improved, nil
}

package usecase

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/fairyhunter13/ai-career-coach/internal/domain"
	"github.com/fairyhunter13/ai-career-coach/pkg/textx"
)

// ProfileService handles onboarding and profile updates.
type ProfileService struct {
	Users    domain.UserRepository
	Insights InsightService
}

// NewProfileService constructs a ProfileService with its dependencies.
func NewProfileService(u domain.UserRepository, ins InsightService) ProfileService {
	return ProfileService{Users: u, Insights: ins}
}

// ProfileUpdate carries the onboarding fields.
type ProfileUpdate struct {
	Industry   string
	Experience int
	Bio        string
	Skills     []string
}

// UpdateProfile onboards or re-onboards the caller. The industry insight is
// ensured first (idempotent, outside any transaction, may call the
// generation service), then the user row is committed in a short
// transaction. A generation or format failure aborts the whole operation;
// the user row is never left pointing at a missing industry key.
func (s ProfileService) UpdateProfile(ctx domain.Context, externalID string, upd ProfileUpdate) (domain.User, domain.IndustryInsight, error) {
	if upd.Industry == "" {
		return domain.User{}, domain.IndustryInsight{}, fmt.Errorf("%w: industry required", domain.ErrInvalidArgument)
	}
	user, err := s.Users.FindByExternalID(ctx, externalID)
	if err != nil {
		return domain.User{}, domain.IndustryInsight{}, err
	}

	ins, err := s.Insights.Ensure(ctx, upd.Industry)
	if err != nil {
		return domain.User{}, domain.IndustryInsight{}, err
	}

	user.Industry = upd.Industry
	user.Experience = upd.Experience
	user.Bio = textx.SanitizeText(upd.Bio)
	user.Skills = normalizeSkills(upd.Skills)
	updated, err := s.Users.UpdateProfile(ctx, user)
	if err != nil {
		return domain.User{}, domain.IndustryInsight{}, fmt.Errorf("op=profile.update: %w", err)
	}
	slog.Info("profile updated",
		slog.String("user_id", updated.ID),
		slog.String("industry", updated.Industry),
		slog.Int("skills", len(updated.Skills)))
	return updated, ins, nil
}

// OnboardingStatus reports whether the caller completed onboarding.
func (s ProfileService) OnboardingStatus(ctx domain.Context, externalID string) (bool, error) {
	user, err := s.Users.FindByExternalID(ctx, externalID)
	if err != nil {
		return false, err
	}
	return user.Onboarded(), nil
}

func normalizeSkills(skills []string) []string {
	out := make([]string, 0, len(skills))
	for _, sk := range skills {
		sk = strings.TrimSpace(sk)
		if sk != "" {
			out = append(out, sk)
		}
	}
	return out
}

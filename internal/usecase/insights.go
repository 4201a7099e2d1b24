package usecase

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/fairyhunter13/ai-career-coach/internal/adapter/ai"
	"github.com/fairyhunter13/ai-career-coach/internal/domain"
)

// InsightService runs the insight generation pipeline and serves dashboard
// reads.
type InsightService struct {
	Users    domain.UserRepository
	Insights domain.InsightRepository
	Gen      domain.Generator
	// UpdatePeriod is written into NextUpdate on create and refresh.
	UpdatePeriod time.Duration
}

// NewInsightService constructs an InsightService with its dependencies.
func NewInsightService(u domain.UserRepository, i domain.InsightRepository, g domain.Generator, updatePeriod time.Duration) InsightService {
	if updatePeriod <= 0 {
		updatePeriod = 7 * 24 * time.Hour
	}
	return InsightService{Users: u, Insights: i, Gen: g, UpdatePeriod: updatePeriod}
}

// GetForUser returns the insight row for the caller's industry.
func (s InsightService) GetForUser(ctx domain.Context, externalID string) (domain.IndustryInsight, error) {
	user, err := s.Users.FindByExternalID(ctx, externalID)
	if err != nil {
		return domain.IndustryInsight{}, err
	}
	if !user.Onboarded() {
		return domain.IndustryInsight{}, fmt.Errorf("%w: user has no industry", domain.ErrNotFound)
	}
	return s.Insights.Get(ctx, user.Industry)
}

// GeneratePayload runs compose, generate, sanitize, parse for one industry.
func (s InsightService) GeneratePayload(ctx domain.Context, industry string) (domain.InsightPayload, error) {
	raw, err := s.Gen.Generate(ctx, ComposeInsightPrompt(industry))
	if err != nil {
		return domain.InsightPayload{}, fmt.Errorf("op=insight.generate: %w", err)
	}
	payload, err := ai.ParseInsight(ai.StripCodeFences(raw))
	if err != nil {
		return domain.InsightPayload{}, fmt.Errorf("op=insight.generate: %w", err)
	}
	return payload, nil
}

// Ensure returns the insight row for the industry, generating and creating
// it if none exists yet. Creation is idempotent: a concurrent creator's row
// wins and is returned. Safe to call outside any transaction.
func (s InsightService) Ensure(ctx domain.Context, industry string) (domain.IndustryInsight, error) {
	ins, err := s.Insights.Get(ctx, industry)
	if err == nil {
		return ins, nil
	}
	payload, err := s.GeneratePayload(ctx, industry)
	if err != nil {
		return domain.IndustryInsight{}, err
	}
	now := time.Now().UTC()
	created, err := s.Insights.Create(ctx, fromPayload(industry, payload, now, now.Add(s.UpdatePeriod)))
	if err != nil {
		return domain.IndustryInsight{}, fmt.Errorf("op=insight.ensure: %w", err)
	}
	slog.Info("industry insight created", slog.String("industry", industry))
	return created, nil
}

func fromPayload(industry string, p domain.InsightPayload, lastUpdated, nextUpdate time.Time) domain.IndustryInsight {
	return domain.IndustryInsight{
		Industry:          industry,
		SalaryRanges:      p.SalaryRanges,
		GrowthRate:        p.GrowthRate,
		DemandLevel:       p.DemandLevel,
		TopSkills:         p.TopSkills,
		MarketOutlook:     p.MarketOutlook,
		KeyTrends:         p.KeyTrends,
		RecommendedSkills: p.RecommendedSkills,
		LastUpdated:       lastUpdated,
		NextUpdate:        nextUpdate,
	}
}

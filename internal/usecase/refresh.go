package usecase

import (
	"log/slog"
	"time"

	"github.com/fairyhunter13/ai-career-coach/internal/adapter/observability"
	"github.com/fairyhunter13/ai-career-coach/internal/domain"
)

// RefreshService re-runs the insight pipeline for every tracked industry on
// a schedule. Each industry is processed independently: one failure is
// recorded and logged, never aborting the rest of the run.
type RefreshService struct {
	Insights domain.InsightRepository
	Pipeline InsightService
}

// NewRefreshService constructs a RefreshService with its dependencies.
func NewRefreshService(i domain.InsightRepository, p InsightService) RefreshService {
	return RefreshService{Insights: i, Pipeline: p}
}

// RefreshReport aggregates one run's outcomes.
type RefreshReport struct {
	Refreshed []string
	Failed    map[string]error
}

// RefreshAll enumerates every industry on record and overwrites its derived
// fields with a fresh generation, bumping last_updated and next_update.
func (s RefreshService) RefreshAll(ctx domain.Context) (RefreshReport, error) {
	report := RefreshReport{Failed: map[string]error{}}
	industries, err := s.Insights.ListIndustries(ctx)
	if err != nil {
		return report, err
	}
	for _, industry := range industries {
		if err := s.refreshOne(ctx, industry); err != nil {
			report.Failed[industry] = err
			observability.InsightRefreshTotal.WithLabelValues("failed").Inc()
			slog.Error("insight refresh failed",
				slog.String("industry", industry),
				slog.Any("error", err))
			continue
		}
		report.Refreshed = append(report.Refreshed, industry)
		observability.InsightRefreshTotal.WithLabelValues("refreshed").Inc()
	}
	slog.Info("insight refresh run completed",
		slog.Int("refreshed", len(report.Refreshed)),
		slog.Int("failed", len(report.Failed)))
	return report, nil
}

func (s RefreshService) refreshOne(ctx domain.Context, industry string) error {
	payload, err := s.Pipeline.GeneratePayload(ctx, industry)
	if err != nil {
		return err
	}
	now := time.Now().UTC()
	return s.Insights.Update(ctx, fromPayload(industry, payload, now, now.Add(s.Pipeline.UpdatePeriod)))
}

// RunPeriodic drives RefreshAll on a fixed interval until the context is
// cancelled. The weekly cadence mirrors the external scheduler's trigger.
func (s RefreshService) RunPeriodic(ctx domain.Context, interval time.Duration) {
	if interval <= 0 {
		interval = 7 * 24 * time.Hour
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			slog.Info("insight refresh service stopping")
			return
		case <-ticker.C:
			if _, err := s.RefreshAll(ctx); err != nil {
				slog.Error("insight refresh run failed", slog.Any("error", err))
			}
		}
	}
}

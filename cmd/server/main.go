// Command server starts the AI Career Coach HTTP server.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fairyhunter13/ai-career-coach/internal/adapter/ai/gemini"
	httpserver "github.com/fairyhunter13/ai-career-coach/internal/adapter/httpserver"
	"github.com/fairyhunter13/ai-career-coach/internal/adapter/observability"
	"github.com/fairyhunter13/ai-career-coach/internal/adapter/repo/postgres"
	"github.com/fairyhunter13/ai-career-coach/internal/app"
	"github.com/fairyhunter13/ai-career-coach/internal/config"
	"github.com/fairyhunter13/ai-career-coach/internal/usecase"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logger := observability.SetupLogger(cfg)
	slog.SetDefault(logger)

	// Register all Prometheus metrics once per process so that /metrics
	// exposes HTTP, generation, and job instrumentation.
	observability.InitMetrics()

	shutdownTracer, err := observability.SetupTracing(cfg)
	if err != nil {
		slog.Error("failed to setup tracing", slog.Any("error", err))
	}
	defer func() {
		if shutdownTracer != nil {
			_ = shutdownTracer(context.Background())
		}
	}()

	// Infra: DB pool
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	pool, err := postgres.NewPool(ctx, cfg.DBURL)
	if err != nil {
		slog.Error("db connect failed", slog.Any("error", err))
		os.Exit(1)
	}
	defer pool.Close()

	// Repositories
	userRepo := postgres.NewUserRepo(pool)
	insightRepo := postgres.NewInsightRepo(pool)
	assessmentRepo := postgres.NewAssessmentRepo(pool)
	resumeRepo := postgres.NewResumeRepo(pool)

	// Generation client
	gen, err := gemini.New(ctx, cfg)
	if err != nil {
		slog.Error("gemini client init failed", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := gen.Close(); err != nil {
			slog.Error("failed to close gemini client", slog.Any("error", err))
		}
	}()

	// Usecases
	insightSvc := usecase.NewInsightService(userRepo, insightRepo, gen, cfg.InsightUpdatePeriod)
	profileSvc := usecase.NewProfileService(userRepo, insightSvc)
	interviewSvc := usecase.NewInterviewService(userRepo, assessmentRepo, gen)
	resumeSvc := usecase.NewResumeService(userRepo, resumeRepo, gen)

	// Weekly insight refresh job
	refreshSvc := usecase.NewRefreshService(insightRepo, insightSvc)
	go refreshSvc.RunPeriodic(ctx, cfg.InsightRefreshInterval)
	slog.Info("insight refresh service started", slog.Duration("interval", cfg.InsightRefreshInterval))

	// Readiness checks
	dbCheck := app.BuildReadinessChecks(pool)

	// HTTP server
	srv := httpserver.NewServer(cfg, profileSvc, interviewSvc, insightSvc, resumeSvc, dbCheck)
	handler := app.BuildRouter(cfg, srv)

	srvHTTP := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           handler,
		ReadTimeout:       cfg.HTTPReadTimeout,
		WriteTimeout:      cfg.HTTPWriteTimeout,
		IdleTimeout:       cfg.HTTPIdleTimeout,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Graceful shutdown
	errCh := make(chan error, 1)
	go func() {
		slog.Info("http server starting", slog.Int("port", cfg.Port))
		errCh <- srvHTTP.ListenAndServe()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		slog.Info("shutdown signal received", slog.String("signal", sig.String()))
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", slog.Any("error", err))
		}
	}

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), cfg.ServerShutdownTimeout)
	defer cancelShutdown()
	_ = srvHTTP.Shutdown(shutdownCtx)
}

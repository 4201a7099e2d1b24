// Package app assembles the HTTP router and process-level checks.
package app

import (
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	httpserver "github.com/fairyhunter13/ai-career-coach/internal/adapter/httpserver"
	"github.com/fairyhunter13/ai-career-coach/internal/adapter/observability"
	"github.com/fairyhunter13/ai-career-coach/internal/config"
)

// ParseOrigins splits a comma-separated origin list into a slice, trimming spaces.
// If the input is empty, returns ["*"].
func ParseOrigins(s string) []string {
	s = strings.TrimSpace(s)
	if s == "" || s == "*" {
		return []string{"*"}
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return []string{"*"}
	}
	return out
}

// BuildRouter constructs the HTTP handler with all middlewares and routes.
func BuildRouter(cfg config.Config, srv *httpserver.Server) http.Handler {
	r := chi.NewRouter()
	r.Use(httpserver.Recoverer())
	r.Use(httpserver.RequestID())
	r.Use(httpserver.TimeoutMiddleware(cfg.RequestTimeout))
	r.Use(httpserver.AccessLog())
	r.Use(observability.HTTPMetricsMiddleware)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   ParseOrigins(cfg.CORSAllowOrigins),
		AllowedMethods:   []string{"GET", "POST", "PUT", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		ExposedHeaders:   []string{"X-Request-Id"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.Use(httpserver.BearerAuth(cfg.AuthJWTSecret))

	// Rate limit the generation-backed endpoints
	r.Group(func(wr chi.Router) {
		wr.Use(httprate.LimitByIP(cfg.RateLimitPerMin, 1*time.Minute))
		wr.Put("/v1/profile", srv.UpdateProfileHandler())
		wr.Post("/v1/interview/quiz", srv.GenerateQuizHandler())
		wr.Post("/v1/interview/quiz/result", srv.SaveQuizResultHandler())
		wr.Post("/v1/resume/improve", srv.ImproveEntryHandler())
		wr.Put("/v1/resume", srv.SaveResumeHandler())
	})
	// Read-only endpoints
	r.Get("/v1/profile/status", srv.OnboardingStatusHandler())
	r.Get("/v1/insights", srv.InsightHandler())
	r.Get("/v1/interview/assessments", srv.ListAssessmentsHandler())
	r.Get("/v1/resume", srv.GetResumeHandler())

	// Health and metrics
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) })
	r.Get("/metrics", func(w http.ResponseWriter, r *http.Request) { promhttp.Handler().ServeHTTP(w, r) })
	r.Get("/readyz", srv.ReadyzHandler())

	return httpserver.SecurityHeaders(r)
}

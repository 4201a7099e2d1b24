package httpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/fairyhunter13/ai-career-coach/internal/config"
	"github.com/fairyhunter13/ai-career-coach/internal/domain"
	"github.com/fairyhunter13/ai-career-coach/internal/usecase"
)

// Server aggregates handler dependencies.
type Server struct {
	Cfg       config.Config
	Profile   usecase.ProfileService
	Interview usecase.InterviewService
	Insights  usecase.InsightService
	Resumes   usecase.ResumeService
	DBCheck   func(ctx context.Context) error
}

// NewServer constructs an HTTP server with all handlers and checks wired.
func NewServer(cfg config.Config, profile usecase.ProfileService, interview usecase.InterviewService, insights usecase.InsightService, resumes usecase.ResumeService, dbCheck func(context.Context) error) *Server {
	return &Server{Cfg: cfg, Profile: profile, Interview: interview, Insights: insights, Resumes: resumes, DBCheck: dbCheck}
}

var (
	vldOnce sync.Once
	vld     *validator.Validate
)

func getValidator() *validator.Validate {
	vldOnce.Do(func() { vld = validator.New() })
	return vld
}

func decodeValidated(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20) // 1MB
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeError(w, r, fmt.Errorf("%w: invalid json", domain.ErrInvalidArgument), nil)
		return false
	}
	if err := getValidator().Struct(dst); err != nil {
		verrs := map[string]string{}
		if ve, ok := err.(validator.ValidationErrors); ok {
			for _, fe := range ve {
				verrs[strings.ToLower(fe.Field())] = fe.Tag()
			}
		}
		writeError(w, r, fmt.Errorf("%w: validation failed", domain.ErrInvalidArgument), verrs)
		return false
	}
	return true
}

// UpdateProfileHandler onboards the caller: ensures the industry insight
// exists (generating it when unseen) and commits the profile fields.
func (s *Server) UpdateProfileHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		uid, err := CurrentUserID(r.Context())
		if err != nil {
			writeError(w, r, err, nil)
			return
		}
		var req struct {
			Industry   string   `json:"industry" validate:"required"`
			Experience int      `json:"experience" validate:"min=0,max=50"`
			Bio        string   `json:"bio" validate:"max=500"`
			Skills     []string `json:"skills"`
		}
		if !decodeValidated(w, r, &req) {
			return
		}
		user, ins, err := s.Profile.UpdateProfile(r.Context(), uid, usecase.ProfileUpdate{
			Industry:   req.Industry,
			Experience: req.Experience,
			Bio:        req.Bio,
			Skills:     req.Skills,
		})
		if err != nil {
			writeError(w, r, fmt.Errorf("failed to update profile: %w", err), nil)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"user":    userEnvelope(user),
			"insight": insightEnvelope(ins),
		})
	}
}

// OnboardingStatusHandler reports whether the caller finished onboarding.
func (s *Server) OnboardingStatusHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		uid, err := CurrentUserID(r.Context())
		if err != nil {
			writeError(w, r, err, nil)
			return
		}
		onboarded, err := s.Profile.OnboardingStatus(r.Context(), uid)
		if err != nil {
			writeError(w, r, err, nil)
			return
		}
		writeJSON(w, http.StatusOK, map[string]bool{"isOnboarded": onboarded})
	}
}

// InsightHandler returns the caller's industry insight for the dashboard.
func (s *Server) InsightHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		uid, err := CurrentUserID(r.Context())
		if err != nil {
			writeError(w, r, err, nil)
			return
		}
		ins, err := s.Insights.GetForUser(r.Context(), uid)
		if err != nil {
			writeError(w, r, err, nil)
			return
		}
		writeJSON(w, http.StatusOK, insightEnvelope(ins))
	}
}

// GenerateQuizHandler generates a fresh 10-question quiz for the caller.
func (s *Server) GenerateQuizHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		uid, err := CurrentUserID(r.Context())
		if err != nil {
			writeError(w, r, err, nil)
			return
		}
		questions, err := s.Interview.GenerateQuiz(r.Context(), uid)
		if err != nil {
			writeError(w, r, fmt.Errorf("failed to generate quiz questions: %w", err), nil)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"questions": questions})
	}
}

// SaveQuizResultHandler scores the submitted answers and persists the
// assessment.
func (s *Server) SaveQuizResultHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		uid, err := CurrentUserID(r.Context())
		if err != nil {
			writeError(w, r, err, nil)
			return
		}
		var req struct {
			Questions []domain.QuizQuestion `json:"questions" validate:"required,min=1"`
			Answers   []string              `json:"answers" validate:"required,min=1"`
		}
		if !decodeValidated(w, r, &req) {
			return
		}
		a, err := s.Interview.SaveQuizResult(r.Context(), uid, req.Questions, req.Answers)
		if err != nil {
			writeError(w, r, fmt.Errorf("failed to save quiz result: %w", err), nil)
			return
		}
		writeJSON(w, http.StatusOK, assessmentEnvelope(a))
	}
}

// ListAssessmentsHandler returns the caller's quiz history, oldest first.
func (s *Server) ListAssessmentsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		uid, err := CurrentUserID(r.Context())
		if err != nil {
			writeError(w, r, err, nil)
			return
		}
		list, err := s.Interview.ListAssessments(r.Context(), uid)
		if err != nil {
			writeError(w, r, fmt.Errorf("failed to fetch assessments: %w", err), nil)
			return
		}
		out := make([]map[string]any, 0, len(list))
		for _, a := range list {
			out = append(out, assessmentEnvelope(a))
		}
		writeJSON(w, http.StatusOK, map[string]any{"assessments": out})
	}
}

// GetResumeHandler returns the caller's resume.
func (s *Server) GetResumeHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		uid, err := CurrentUserID(r.Context())
		if err != nil {
			writeError(w, r, err, nil)
			return
		}
		res, err := s.Resumes.Get(r.Context(), uid)
		if err != nil {
			writeError(w, r, err, nil)
			return
		}
		writeJSON(w, http.StatusOK, resumeEnvelope(res))
	}
}

// SaveResumeHandler overwrites the caller's resume content.
func (s *Server) SaveResumeHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		uid, err := CurrentUserID(r.Context())
		if err != nil {
			writeError(w, r, err, nil)
			return
		}
		var req struct {
			Content string `json:"content" validate:"required"`
		}
		if !decodeValidated(w, r, &req) {
			return
		}
		res, err := s.Resumes.Save(r.Context(), uid, req.Content)
		if err != nil {
			writeError(w, r, fmt.Errorf("failed to save resume: %w", err), nil)
			return
		}
		writeJSON(w, http.StatusOK, resumeEnvelope(res))
	}
}

// ImproveEntryHandler rewrites one resume entry description with the
// generation service.
func (s *Server) ImproveEntryHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		uid, err := CurrentUserID(r.Context())
		if err != nil {
			writeError(w, r, err, nil)
			return
		}
		var req struct {
			Type    string `json:"type"`
			Current string `json:"current" validate:"required"`
		}
		if !decodeValidated(w, r, &req) {
			return
		}
		improved, err := s.Resumes.ImproveEntry(r.Context(), uid, req.Type, req.Current)
		if err != nil {
			writeError(w, r, fmt.Errorf("failed to improve description: %w", err), nil)
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"content": improved})
	}
}

// ReadyzHandler probes the database.
func (s *Server) ReadyzHandler() http.HandlerFunc {
	type check struct {
		Name    string `json:"name"`
		OK      bool   `json:"ok"`
		Details string `json:"details,omitempty"`
	}
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		checks := make([]check, 0, 1)
		ok := true
		if s.DBCheck != nil {
			if err := s.DBCheck(ctx); err != nil {
				checks = append(checks, check{Name: "db", OK: false, Details: err.Error()})
				ok = false
			} else {
				checks = append(checks, check{Name: "db", OK: true})
			}
		}
		st := http.StatusOK
		if !ok {
			st = http.StatusServiceUnavailable
		}
		writeJSON(w, st, map[string]any{"checks": checks})
	}
}

func userEnvelope(u domain.User) map[string]any {
	return map[string]any{
		"id":          u.ID,
		"industry":    u.Industry,
		"experience":  u.Experience,
		"bio":         u.Bio,
		"skills":      u.Skills,
		"isOnboarded": u.Onboarded(),
	}
}

func insightEnvelope(ins domain.IndustryInsight) map[string]any {
	return map[string]any{
		"industry":          ins.Industry,
		"salaryRanges":      ins.SalaryRanges,
		"growthRate":        ins.GrowthRate,
		"demandLevel":       ins.DemandLevel,
		"topSkills":         ins.TopSkills,
		"marketOutlook":     ins.MarketOutlook,
		"keyTrends":         ins.KeyTrends,
		"recommendedSkills": ins.RecommendedSkills,
		"lastUpdated":       ins.LastUpdated,
		"nextUpdate":        ins.NextUpdate,
	}
}

func assessmentEnvelope(a domain.Assessment) map[string]any {
	m := map[string]any{
		"id":        a.ID,
		"quizScore": a.QuizScore,
		"questions": a.Questions,
		"category":  a.Category,
		"createdAt": a.CreatedAt,
	}
	if a.ImprovementTip != nil {
		m["improvementTip"] = *a.ImprovementTip
	}
	return m
}

func resumeEnvelope(r domain.Resume) map[string]any {
	return map[string]any{
		"content":   r.Content,
		"updatedAt": r.UpdatedAt,
	}
}

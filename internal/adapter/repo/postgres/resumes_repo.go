package postgres

import (
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/fairyhunter13/ai-career-coach/internal/domain"
)

// ResumeRepo persists the single resume per user.
type ResumeRepo struct{ Pool PgxPool }

// NewResumeRepo constructs a ResumeRepo with the given pool.
func NewResumeRepo(p PgxPool) *ResumeRepo { return &ResumeRepo{Pool: p} }

// Upsert inserts or overwrites the user's resume content.
func (r *ResumeRepo) Upsert(ctx domain.Context, res domain.Resume) (domain.Resume, error) {
	tracer := otel.Tracer("repo.resumes")
	ctx, span := tracer.Start(ctx, "resumes.Upsert")
	defer span.End()
	span.SetAttributes(
		attribute.String("db.system", "postgresql"),
		attribute.String("db.operation", "UPSERT"),
		attribute.String("db.sql.table", "resumes"),
	)
	now := time.Now().UTC()
	q := `INSERT INTO resumes (user_id, content, created_at, updated_at)
	VALUES ($1,$2,$3,$3)
	ON CONFLICT (user_id)
	DO UPDATE SET content=EXCLUDED.content, updated_at=EXCLUDED.updated_at
	RETURNING user_id, content, created_at, updated_at`
	row := r.Pool.QueryRow(ctx, q, res.UserID, res.Content, now)
	var out domain.Resume
	if err := row.Scan(&out.UserID, &out.Content, &out.CreatedAt, &out.UpdatedAt); err != nil {
		return domain.Resume{}, fmt.Errorf("op=resume.upsert: %w", err)
	}
	return out, nil
}

// GetByUser loads the user's resume or reports not found.
func (r *ResumeRepo) GetByUser(ctx domain.Context, userID string) (domain.Resume, error) {
	tracer := otel.Tracer("repo.resumes")
	ctx, span := tracer.Start(ctx, "resumes.GetByUser")
	defer span.End()
	span.SetAttributes(
		attribute.String("db.system", "postgresql"),
		attribute.String("db.sql.table", "resumes"),
	)
	q := `SELECT user_id, content, created_at, updated_at FROM resumes WHERE user_id=$1`
	row := r.Pool.QueryRow(ctx, q, userID)
	var out domain.Resume
	if err := row.Scan(&out.UserID, &out.Content, &out.CreatedAt, &out.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Resume{}, fmt.Errorf("op=resume.get: %w", domain.ErrNotFound)
		}
		return domain.Resume{}, fmt.Errorf("op=resume.get: %w", err)
	}
	return out, nil
}

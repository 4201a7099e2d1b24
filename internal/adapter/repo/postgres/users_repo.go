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

// UserRepo persists and loads users using a minimal pgx pool.
type UserRepo struct{ Pool PgxPool }

// NewUserRepo constructs a UserRepo with the given pool.
func NewUserRepo(p PgxPool) *UserRepo { return &UserRepo{Pool: p} }

// FindByExternalID loads a user by the identity issued by the auth provider.
func (r *UserRepo) FindByExternalID(ctx domain.Context, externalID string) (domain.User, error) {
	tracer := otel.Tracer("repo.users")
	ctx, span := tracer.Start(ctx, "users.FindByExternalID")
	defer span.End()
	span.SetAttributes(
		attribute.String("db.system", "postgresql"),
		attribute.String("db.sql.table", "users"),
	)
	q := `SELECT id, external_id, email, COALESCE(industry,''), experience, bio, skills, created_at, updated_at
	FROM users WHERE external_id=$1`
	row := r.Pool.QueryRow(ctx, q, externalID)
	var u domain.User
	if err := row.Scan(&u.ID, &u.ExternalID, &u.Email, &u.Industry, &u.Experience, &u.Bio, &u.Skills, &u.CreatedAt, &u.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.User{}, fmt.Errorf("op=user.find: %w", domain.ErrNotFound)
		}
		return domain.User{}, fmt.Errorf("op=user.find: %w", err)
	}
	return u, nil
}

// UpdateProfile writes the onboarding fields in one short transaction. The
// industry key must already exist; the foreign key rejects dangling keys.
func (r *UserRepo) UpdateProfile(ctx domain.Context, u domain.User) (domain.User, error) {
	tracer := otel.Tracer("repo.users")
	ctx, span := tracer.Start(ctx, "users.UpdateProfile")
	defer span.End()
	span.SetAttributes(
		attribute.String("db.system", "postgresql"),
		attribute.String("db.operation", "UPDATE"),
		attribute.String("db.sql.table", "users"),
	)
	tx, err := r.Pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return domain.User{}, fmt.Errorf("op=user.update_profile begin: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	q := `UPDATE users SET industry=$2, experience=$3, bio=$4, skills=$5, updated_at=$6
	WHERE id=$1
	RETURNING id, external_id, email, COALESCE(industry,''), experience, bio, skills, created_at, updated_at`
	row := tx.QueryRow(ctx, q, u.ID, u.Industry, u.Experience, u.Bio, u.Skills, time.Now().UTC())
	var out domain.User
	if err := row.Scan(&out.ID, &out.ExternalID, &out.Email, &out.Industry, &out.Experience, &out.Bio, &out.Skills, &out.CreatedAt, &out.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.User{}, fmt.Errorf("op=user.update_profile: %w", domain.ErrNotFound)
		}
		return domain.User{}, fmt.Errorf("op=user.update_profile: %w", err)
	}
	if err := tx.Commit(ctx); err != nil {
		return domain.User{}, fmt.Errorf("op=user.update_profile commit: %w", err)
	}
	return out, nil
}

package postgres

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/fairyhunter13/ai-career-coach/internal/domain"
)

// AssessmentRepo persists completed quiz attempts. Assessments are
// append-only: there is no update or delete path.
type AssessmentRepo struct{ Pool PgxPool }

// NewAssessmentRepo constructs an AssessmentRepo with the given pool.
func NewAssessmentRepo(p PgxPool) *AssessmentRepo { return &AssessmentRepo{Pool: p} }

// Create inserts a new assessment and returns it with id and timestamp set.
func (r *AssessmentRepo) Create(ctx domain.Context, a domain.Assessment) (domain.Assessment, error) {
	tracer := otel.Tracer("repo.assessments")
	ctx, span := tracer.Start(ctx, "assessments.Create")
	defer span.End()
	span.SetAttributes(
		attribute.String("db.system", "postgresql"),
		attribute.String("db.operation", "INSERT"),
		attribute.String("db.sql.table", "assessments"),
	)
	if a.ID == "" {
		a.ID = uuid.New().String()
	}
	if a.CreatedAt.IsZero() {
		a.CreatedAt = time.Now().UTC()
	}
	questions, err := json.Marshal(a.Questions)
	if err != nil {
		return domain.Assessment{}, fmt.Errorf("op=assessment.create marshal: %w", err)
	}
	q := `INSERT INTO assessments (id, user_id, quiz_score, questions, category, improvement_tip, created_at)
	VALUES ($1,$2,$3,$4,$5,$6,$7)`
	if _, err := r.Pool.Exec(ctx, q, a.ID, a.UserID, a.QuizScore, questions, a.Category, a.ImprovementTip, a.CreatedAt); err != nil {
		return domain.Assessment{}, fmt.Errorf("op=assessment.create: %w", err)
	}
	return a, nil
}

// ListByUser returns the user's assessments ordered by creation time ascending.
func (r *AssessmentRepo) ListByUser(ctx domain.Context, userID string) ([]domain.Assessment, error) {
	tracer := otel.Tracer("repo.assessments")
	ctx, span := tracer.Start(ctx, "assessments.ListByUser")
	defer span.End()
	span.SetAttributes(
		attribute.String("db.system", "postgresql"),
		attribute.String("db.sql.table", "assessments"),
	)
	q := `SELECT id, user_id, quiz_score, questions, category, improvement_tip, created_at
	FROM assessments WHERE user_id=$1 ORDER BY created_at ASC`
	rows, err := r.Pool.Query(ctx, q, userID)
	if err != nil {
		return nil, fmt.Errorf("op=assessment.list: %w", err)
	}
	defer rows.Close()
	var out []domain.Assessment
	for rows.Next() {
		var a domain.Assessment
		var questions []byte
		if err := rows.Scan(&a.ID, &a.UserID, &a.QuizScore, &questions, &a.Category, &a.ImprovementTip, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("op=assessment.list scan: %w", err)
		}
		if err := json.Unmarshal(questions, &a.Questions); err != nil {
			return nil, fmt.Errorf("op=assessment.list unmarshal: %w", err)
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("op=assessment.list rows: %w", err)
	}
	return out, nil
}

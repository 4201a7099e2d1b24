package postgres

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/fairyhunter13/ai-career-coach/internal/domain"
)

// InsightRepo persists and loads industry insights. The industry column
// carries a unique constraint; Create relies on it so that concurrent
// creators for the same key converge on a single row.
type InsightRepo struct{ Pool PgxPool }

// NewInsightRepo constructs an InsightRepo with the given pool.
func NewInsightRepo(p PgxPool) *InsightRepo { return &InsightRepo{Pool: p} }

const insightColumns = `industry, salary_ranges, growth_rate, demand_level, top_skills, market_outlook, key_trends, recommended_skills, last_updated, next_update`

func scanInsight(row pgx.Row) (domain.IndustryInsight, error) {
	var ins domain.IndustryInsight
	var ranges []byte
	var demand, outlook string
	if err := row.Scan(&ins.Industry, &ranges, &ins.GrowthRate, &demand, &ins.TopSkills, &outlook, &ins.KeyTrends, &ins.RecommendedSkills, &ins.LastUpdated, &ins.NextUpdate); err != nil {
		return domain.IndustryInsight{}, err
	}
	if err := json.Unmarshal(ranges, &ins.SalaryRanges); err != nil {
		return domain.IndustryInsight{}, err
	}
	ins.DemandLevel = domain.DemandLevel(demand)
	ins.MarketOutlook = domain.MarketOutlook(outlook)
	return ins, nil
}

// Get loads the insight for one industry key.
func (r *InsightRepo) Get(ctx domain.Context, industry string) (domain.IndustryInsight, error) {
	tracer := otel.Tracer("repo.insights")
	ctx, span := tracer.Start(ctx, "insights.Get")
	defer span.End()
	span.SetAttributes(
		attribute.String("db.system", "postgresql"),
		attribute.String("db.sql.table", "industry_insights"),
	)
	q := `SELECT ` + insightColumns + ` FROM industry_insights WHERE industry=$1`
	ins, err := scanInsight(r.Pool.QueryRow(ctx, q, industry))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.IndustryInsight{}, fmt.Errorf("op=insight.get: %w", domain.ErrNotFound)
		}
		return domain.IndustryInsight{}, fmt.Errorf("op=insight.get: %w", err)
	}
	return ins, nil
}

// Create inserts the insight unless a row for the key already exists, then
// returns the row on record. The ON CONFLICT DO NOTHING plus re-read makes
// the operation idempotent and safe to race.
func (r *InsightRepo) Create(ctx domain.Context, ins domain.IndustryInsight) (domain.IndustryInsight, error) {
	tracer := otel.Tracer("repo.insights")
	ctx, span := tracer.Start(ctx, "insights.Create")
	defer span.End()
	span.SetAttributes(
		attribute.String("db.system", "postgresql"),
		attribute.String("db.operation", "INSERT"),
		attribute.String("db.sql.table", "industry_insights"),
	)
	ranges, err := json.Marshal(ins.SalaryRanges)
	if err != nil {
		return domain.IndustryInsight{}, fmt.Errorf("op=insight.create marshal: %w", err)
	}
	q := `INSERT INTO industry_insights (` + insightColumns + `)
	VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
	ON CONFLICT (industry) DO NOTHING`
	if _, err := r.Pool.Exec(ctx, q, ins.Industry, ranges, ins.GrowthRate, string(ins.DemandLevel), ins.TopSkills, string(ins.MarketOutlook), ins.KeyTrends, ins.RecommendedSkills, ins.LastUpdated, ins.NextUpdate); err != nil {
		return domain.IndustryInsight{}, fmt.Errorf("op=insight.create: %w", err)
	}
	return r.Get(ctx, ins.Industry)
}

// Update overwrites all derived fields and timestamps for the key.
func (r *InsightRepo) Update(ctx domain.Context, ins domain.IndustryInsight) error {
	tracer := otel.Tracer("repo.insights")
	ctx, span := tracer.Start(ctx, "insights.Update")
	defer span.End()
	span.SetAttributes(
		attribute.String("db.system", "postgresql"),
		attribute.String("db.operation", "UPDATE"),
		attribute.String("db.sql.table", "industry_insights"),
	)
	ranges, err := json.Marshal(ins.SalaryRanges)
	if err != nil {
		return fmt.Errorf("op=insight.update marshal: %w", err)
	}
	q := `UPDATE industry_insights
	SET salary_ranges=$2, growth_rate=$3, demand_level=$4, top_skills=$5, market_outlook=$6, key_trends=$7, recommended_skills=$8, last_updated=$9, next_update=$10
	WHERE industry=$1`
	tag, err := r.Pool.Exec(ctx, q, ins.Industry, ranges, ins.GrowthRate, string(ins.DemandLevel), ins.TopSkills, string(ins.MarketOutlook), ins.KeyTrends, ins.RecommendedSkills, ins.LastUpdated, ins.NextUpdate)
	if err != nil {
		return fmt.Errorf("op=insight.update: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("op=insight.update: %w", domain.ErrNotFound)
	}
	return nil
}

// ListIndustries returns every distinct industry key on record.
func (r *InsightRepo) ListIndustries(ctx domain.Context) ([]string, error) {
	tracer := otel.Tracer("repo.insights")
	ctx, span := tracer.Start(ctx, "insights.ListIndustries")
	defer span.End()
	span.SetAttributes(
		attribute.String("db.system", "postgresql"),
		attribute.String("db.sql.table", "industry_insights"),
	)
	rows, err := r.Pool.Query(ctx, `SELECT industry FROM industry_insights ORDER BY industry`)
	if err != nil {
		return nil, fmt.Errorf("op=insight.list: %w", err)
	}
	defer rows.Close()
	var out []string
	for rows.Next() {
		var industry string
		if err := rows.Scan(&industry); err != nil {
			return nil, fmt.Errorf("op=insight.list scan: %w", err)
		}
		out = append(out, industry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("op=insight.list rows: %w", err)
	}
	return out, nil
}

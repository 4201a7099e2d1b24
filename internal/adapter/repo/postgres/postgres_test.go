package postgres_test

import (
	"context"
	"encoding/json"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fairyhunter13/ai-career-coach/internal/adapter/repo/postgres"
	"github.com/fairyhunter13/ai-career-coach/internal/domain"
)

// fakeRow satisfies pgx.Row with canned values or a canned error.
type fakeRow struct {
	vals []any
	err  error
}

func (r fakeRow) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	for i, d := range dest {
		dv := reflect.ValueOf(d).Elem()
		if r.vals[i] == nil {
			continue
		}
		dv.Set(reflect.ValueOf(r.vals[i]))
	}
	return nil
}

// fakePool records calls and serves canned responses per statement prefix.
type fakePool struct {
	execSQL  []string
	execArgs [][]any
	execTag  pgconn.CommandTag
	execErr  error
	row      fakeRow
}

func (p *fakePool) Exec(_ context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	p.execSQL = append(p.execSQL, sql)
	p.execArgs = append(p.execArgs, args)
	return p.execTag, p.execErr
}

func (p *fakePool) QueryRow(context.Context, string, ...any) pgx.Row { return p.row }

func (p *fakePool) Query(context.Context, string, ...any) (pgx.Rows, error) {
	return nil, pgx.ErrNoRows
}

func (p *fakePool) BeginTx(context.Context, pgx.TxOptions) (pgx.Tx, error) {
	return nil, pgx.ErrTxClosed
}

func sampleInsightRow(industry string) fakeRow {
	ranges, _ := json.Marshal([]domain.SalaryRange{{Role: "dev", Min: 1, Max: 3, Median: 2}})
	now := time.Now().UTC()
	return fakeRow{vals: []any{
		industry,
		ranges,
		5.5,
		"HIGH",
		[]string{"a", "b"},
		"POSITIVE",
		[]string{"t1"},
		[]string{"r1"},
		now,
		now.Add(7 * 24 * time.Hour),
	}}
}

func TestInsightRepoGet(t *testing.T) {
	t.Parallel()
	pool := &fakePool{row: sampleInsightRow("tech")}
	repo := postgres.NewInsightRepo(pool)

	ins, err := repo.Get(context.Background(), "tech")
	require.NoError(t, err)
	assert.Equal(t, "tech", ins.Industry)
	assert.Equal(t, domain.DemandHigh, ins.DemandLevel)
	assert.Equal(t, domain.OutlookPositive, ins.MarketOutlook)
	require.Len(t, ins.SalaryRanges, 1)
	assert.Equal(t, "dev", ins.SalaryRanges[0].Role)
}

func TestInsightRepoGet_NotFound(t *testing.T) {
	t.Parallel()
	pool := &fakePool{row: fakeRow{err: pgx.ErrNoRows}}
	repo := postgres.NewInsightRepo(pool)

	_, err := repo.Get(context.Background(), "tech")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestInsightRepoCreate_InsertsThenReads(t *testing.T) {
	t.Parallel()
	pool := &fakePool{row: sampleInsightRow("tech")}
	repo := postgres.NewInsightRepo(pool)

	ins, err := repo.Create(context.Background(), domain.IndustryInsight{
		Industry:     "tech",
		DemandLevel:  domain.DemandHigh,
		SalaryRanges: []domain.SalaryRange{{Role: "dev"}},
	})
	require.NoError(t, err)
	assert.Equal(t, "tech", ins.Industry)

	require.Len(t, pool.execSQL, 1)
	assert.Contains(t, pool.execSQL[0], "ON CONFLICT (industry) DO NOTHING")
	// Salary ranges go over the wire as JSONB.
	_, isBytes := pool.execArgs[0][1].([]byte)
	assert.True(t, isBytes)
}

func TestInsightRepoUpdate_MissingRow(t *testing.T) {
	t.Parallel()
	pool := &fakePool{execTag: pgconn.NewCommandTag("UPDATE 0")}
	repo := postgres.NewInsightRepo(pool)

	err := repo.Update(context.Background(), domain.IndustryInsight{Industry: "ghost"})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestInsightRepoUpdate(t *testing.T) {
	t.Parallel()
	pool := &fakePool{execTag: pgconn.NewCommandTag("UPDATE 1")}
	repo := postgres.NewInsightRepo(pool)

	err := repo.Update(context.Background(), domain.IndustryInsight{Industry: "tech"})
	require.NoError(t, err)
	require.Len(t, pool.execSQL, 1)
	assert.True(t, strings.HasPrefix(strings.TrimSpace(pool.execSQL[0]), "UPDATE industry_insights"))
}

func TestUserRepoFind_NotFound(t *testing.T) {
	t.Parallel()
	pool := &fakePool{row: fakeRow{err: pgx.ErrNoRows}}
	repo := postgres.NewUserRepo(pool)

	_, err := repo.FindByExternalID(context.Background(), "ext-missing")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestUserRepoFind(t *testing.T) {
	t.Parallel()
	now := time.Now().UTC()
	pool := &fakePool{row: fakeRow{vals: []any{
		"u-1", "ext-1", "a@b.c", "tech", 3, "bio", []string{"Go"}, now, now,
	}}}
	repo := postgres.NewUserRepo(pool)

	u, err := repo.FindByExternalID(context.Background(), "ext-1")
	require.NoError(t, err)
	assert.Equal(t, "u-1", u.ID)
	assert.True(t, u.Onboarded())
}

func TestAssessmentRepoCreate_FillsIDAndTimestamp(t *testing.T) {
	t.Parallel()
	pool := &fakePool{execTag: pgconn.NewCommandTag("INSERT 0 1")}
	repo := postgres.NewAssessmentRepo(pool)

	saved, err := repo.Create(context.Background(), domain.Assessment{
		UserID:    "u-1",
		QuizScore: 70,
		Questions: []domain.QuestionResult{{Question: "q", IsCorrect: true}},
		Category:  domain.AssessmentCategoryTechnical,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, saved.ID)
	assert.False(t, saved.CreatedAt.IsZero())

	require.Len(t, pool.execArgs, 1)
	// Questions are serialized once, as JSONB.
	questions, isBytes := pool.execArgs[0][3].([]byte)
	require.True(t, isBytes)
	var decoded []domain.QuestionResult
	require.NoError(t, json.Unmarshal(questions, &decoded))
	assert.Equal(t, "q", decoded[0].Question)
}

func TestResumeRepoUpsert(t *testing.T) {
	t.Parallel()
	now := time.Now().UTC()
	pool := &fakePool{row: fakeRow{vals: []any{"u-1", "# Resume", now, now}}}
	repo := postgres.NewResumeRepo(pool)

	saved, err := repo.Upsert(context.Background(), domain.Resume{UserID: "u-1", Content: "# Resume"})
	require.NoError(t, err)
	assert.Equal(t, "# Resume", saved.Content)
	assert.Equal(t, "u-1", saved.UserID)
}

func TestResumeRepoGet_NotFound(t *testing.T) {
	t.Parallel()
	pool := &fakePool{row: fakeRow{err: pgx.ErrNoRows}}
	repo := postgres.NewResumeRepo(pool)

	_, err := repo.GetByUser(context.Background(), "u-1")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

package ai_test

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fairyhunter13/ai-career-coach/internal/adapter/ai"
	"github.com/fairyhunter13/ai-career-coach/internal/domain"
)

func quizJSON(t *testing.T, questions, options int) string {
	t.Helper()
	qs := make([]map[string]any, 0, questions)
	for i := 0; i < questions; i++ {
		opts := make([]string, 0, options)
		for j := 0; j < options; j++ {
			opts = append(opts, fmt.Sprintf("option %d", j))
		}
		qs = append(qs, map[string]any{
			"question":      fmt.Sprintf("question %d", i),
			"options":       opts,
			"correctAnswer": "option 0",
			"explanation":   "because",
		})
	}
	b, err := json.Marshal(map[string]any{"questions": qs})
	require.NoError(t, err)
	return string(b)
}

func insightJSON(t *testing.T, mutate func(m map[string]any)) string {
	t.Helper()
	ranges := make([]map[string]any, 0, 5)
	for i := 0; i < 5; i++ {
		ranges = append(ranges, map[string]any{
			"role": fmt.Sprintf("role %d", i), "min": 50000, "max": 150000, "median": 90000, "location": "Remote",
		})
	}
	m := map[string]any{
		"salaryRanges":      ranges,
		"growthRate":        4.2,
		"demandLevel":       "HIGH",
		"topSkills":         []string{"a", "b", "c", "d", "e"},
		"marketOutlook":     "POSITIVE",
		"keyTrends":         []string{"t1", "t2", "t3", "t4", "t5"},
		"recommendedSkills": []string{"r1"},
	}
	if mutate != nil {
		mutate(m)
	}
	b, err := json.Marshal(m)
	require.NoError(t, err)
	return string(b)
}

func TestParseQuiz_Valid(t *testing.T) {
	t.Parallel()
	questions, err := ai.ParseQuiz(quizJSON(t, 10, 4))
	require.NoError(t, err)
	require.Len(t, questions, 10)
	assert.Equal(t, "question 0", questions[0].Question)
	assert.Len(t, questions[0].Options, 4)
	assert.Equal(t, "option 0", questions[0].CorrectAnswer)
	assert.Equal(t, "because", questions[0].Explanation)
}

func TestParseQuiz_Rejects(t *testing.T) {
	t.Parallel()
	cases := []struct {
		name string
		in   string
	}{
		{name: "broken json", in: `{"questions": [`},
		{name: "seven questions", in: quizJSON(t, 7, 4)},
		{name: "eleven questions", in: quizJSON(t, 11, 4)},
		{name: "three options", in: quizJSON(t, 10, 3)},
		{name: "no questions key", in: `{}`},
		{name: "empty string", in: ""},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			_, err := ai.ParseQuiz(tc.in)
			require.Error(t, err)
			assert.ErrorIs(t, err, domain.ErrSchemaInvalid)
		})
	}
}

func TestParseInsight_Valid(t *testing.T) {
	t.Parallel()
	p, err := ai.ParseInsight(insightJSON(t, nil))
	require.NoError(t, err)
	assert.Len(t, p.SalaryRanges, 5)
	assert.Equal(t, domain.DemandHigh, p.DemandLevel)
	assert.Equal(t, domain.OutlookPositive, p.MarketOutlook)
	assert.InDelta(t, 4.2, p.GrowthRate, 1e-9)
	assert.Equal(t, "Remote", p.SalaryRanges[0].Location)
}

func TestParseInsight_Rejects(t *testing.T) {
	t.Parallel()
	cases := []struct {
		name string
		in   string
	}{
		{name: "broken json", in: `not json`},
		{name: "unknown demand level", in: insightJSON(t, func(m map[string]any) { m["demandLevel"] = "EXTREME" })},
		{name: "lowercase outlook", in: insightJSON(t, func(m map[string]any) { m["marketOutlook"] = "positive" })},
		{name: "four salary ranges", in: insightJSON(t, func(m map[string]any) {
			m["salaryRanges"] = []map[string]any{{"role": "a"}, {"role": "b"}, {"role": "c"}, {"role": "d"}}
		})},
		{name: "four top skills", in: insightJSON(t, func(m map[string]any) { m["topSkills"] = []string{"a", "b", "c", "d"} })},
		{name: "empty recommended skills", in: insightJSON(t, func(m map[string]any) { m["recommendedSkills"] = []string{} })},
		{name: "missing key trends", in: insightJSON(t, func(m map[string]any) { delete(m, "keyTrends") })},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			_, err := ai.ParseInsight(tc.in)
			require.Error(t, err)
			assert.ErrorIs(t, err, domain.ErrSchemaInvalid)
		})
	}
}

func TestParseInsight_ToleratesExtraFields(t *testing.T) {
	t.Parallel()
	in := insightJSON(t, func(m map[string]any) { m["note"] = "provider commentary" })
	_, err := ai.ParseInsight(in)
	require.NoError(t, err)
}

func TestParseObject(t *testing.T) {
	t.Parallel()

	m, err := ai.ParseObject(`{"a": 1, "b": "x"}`)
	require.NoError(t, err)
	assert.Equal(t, "x", m["b"])

	_, err = ai.ParseObject(`[1,2]`)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrSchemaInvalid)
}

func TestParseQuiz_AfterSanitize(t *testing.T) {
	t.Parallel()
	raw := "```json\n" + quizJSON(t, 10, 4) + "\n```"
	questions, err := ai.ParseQuiz(ai.StripCodeFences(raw))
	require.NoError(t, err)
	assert.Len(t, questions, 10)
}

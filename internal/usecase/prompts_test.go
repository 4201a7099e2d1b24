package usecase_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/fairyhunter13/ai-career-coach/internal/domain"
	"github.com/fairyhunter13/ai-career-coach/internal/usecase"
)

func TestComposeQuizPrompt(t *testing.T) {
	t.Parallel()

	withSkills := usecase.ComposeQuizPrompt("tech-software_engineering", []string{"Go", "Postgres"})
	assert.Contains(t, withSkills, "tech-software_engineering professional")
	assert.Contains(t, withSkills, "with expertise in Go, Postgres")
	assert.Contains(t, withSkills, "10 technical interview questions")

	noSkills := usecase.ComposeQuizPrompt("finance-banking", nil)
	assert.NotContains(t, noSkills, "expertise")
	assert.Contains(t, noSkills, "finance-banking professional.")
}

func TestComposeQuizPrompt_Deterministic(t *testing.T) {
	t.Parallel()
	a := usecase.ComposeQuizPrompt("tech", []string{"Go"})
	b := usecase.ComposeQuizPrompt("tech", []string{"Go"})
	assert.Equal(t, a, b)
}

func TestComposeInsightPrompt(t *testing.T) {
	t.Parallel()
	p := usecase.ComposeInsightPrompt("healthcare-nursing")
	assert.Contains(t, p, "healthcare-nursing industry")
	assert.Contains(t, p, `"demandLevel": "HIGH" | "MEDIUM" | "LOW"`)
	assert.Contains(t, p, "at least 5 common roles")
}

func TestComposeImprovementTipPrompt(t *testing.T) {
	t.Parallel()
	wrong := []domain.QuestionResult{
		{Question: "What is a goroutine?", Answer: "A lightweight thread", UserAnswer: "A package"},
	}
	p := usecase.ComposeImprovementTipPrompt("tech", wrong)
	assert.Contains(t, p, `Question "What is a goroutine?"`)
	assert.Contains(t, p, `Correct Answer: "A lightweight thread"`)
	assert.Contains(t, p, `User Answer: "A package"`)
	assert.Contains(t, p, "under 2 sentences")
}

func TestComposeEntryImprovementPrompt(t *testing.T) {
	t.Parallel()
	p := usecase.ComposeEntryImprovementPrompt("tech", "experience", "Did backend work")
	assert.Contains(t, p, "improve the following experience description")
	assert.Contains(t, p, "for a tech professional")
	assert.Contains(t, p, `Current content: "Did backend work"`)
}

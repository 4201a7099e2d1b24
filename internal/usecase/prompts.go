package usecase

import (
	"fmt"
	"strings"

	"github.com/fairyhunter13/ai-career-coach/internal/domain"
)

// Prompt composition. Every prompt states the desired output strictly (one
// JSON object of a fixed shape, or short free text) and encodes every input
// field deterministically. An empty skills list omits the expertise clause
// entirely.

// ComposeQuizPrompt requests exactly 10 multiple-choice questions with 4
// options each for the given industry and optional skill list.
func ComposeQuizPrompt(industry string, skills []string) string {
	skillClause := ""
	if len(skills) > 0 {
		skillClause = fmt.Sprintf(" with expertise in %s", strings.Join(skills, ", "))
	}
	return fmt.Sprintf(`Generate 10 technical interview questions for a %s professional%s.
Each question should be multiple choice with 4 options.
Return the response in this JSON format only, no additional text:
{
  "questions": [
    {
      "question": "string",
      "options": ["string", "string", "string", "string"],
      "correctAnswer": "string",
      "explanation": "string"
    }
  ]
}`, industry, skillClause)
}

// ComposeInsightPrompt requests the industry insight payload shape.
func ComposeInsightPrompt(industry string) string {
	return fmt.Sprintf(`Analyze the current state of the %s industry and provide insights in ONLY the following JSON format without any additional notes or explanations:
{
  "salaryRanges": [
    { "role": "string", "min": number, "max": number, "median": number, "location": "string" }
  ],
  "growthRate": number,
  "demandLevel": "HIGH" | "MEDIUM" | "LOW",
  "topSkills": ["skill1", "skill2"],
  "marketOutlook": "POSITIVE" | "NEUTRAL" | "NEGATIVE",
  "keyTrends": ["trend1", "trend2"],
  "recommendedSkills": ["skill1", "skill2"]
}

IMPORTANT: Return ONLY the JSON. No additional text, notes, or markdown formatting.
Include at least 5 common roles for salary ranges.
Growth rate should be a percentage.
Include at least 5 skills and trends.`, industry)
}

// ComposeImprovementTipPrompt lists every wrongly answered question and asks
// for a short, encouraging tip. The response is consumed as free text.
func ComposeImprovementTipPrompt(industry string, wrong []domain.QuestionResult) string {
	parts := make([]string, 0, len(wrong))
	for _, q := range wrong {
		parts = append(parts, fmt.Sprintf("Question \"%s\"\nCorrect Answer: \"%s\"\nUser Answer: \"%s\"", q.Question, q.Answer, q.UserAnswer))
	}
	return fmt.Sprintf(`The user got the following %s technical interview questions wrong: %s.
Based on these mistakes, provide a concise, specific improvement tip.
Focus on the knowledge gaps revealed by these wrong answers.
Keep the response under 2 sentences and make it encouraging.
Don't explicitly mention the mistakes, instead focus on what to learn/practice.`, industry, strings.Join(parts, "\n\n"))
}

// ComposeEntryImprovementPrompt asks for an improved resume entry
// description. The response is consumed as free text.
func ComposeEntryImprovementPrompt(industry, entryType, current string) string {
	return fmt.Sprintf(`As an expert resume writer, improve the following %s description for a %s professional.
Make it more impactful, quantifiable, and aligned with industry standards.
Current content: "%s"

Format the response as a single paragraph without any additional text or explanations.`, entryType, industry, current)
}

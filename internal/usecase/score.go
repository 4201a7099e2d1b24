package usecase

import (
	"fmt"

	"github.com/fairyhunter13/ai-career-coach/internal/domain"
)

// ScoreQuiz grades answers against questions by position. Matching is exact
// string equality, case-sensitive, with no normalization. The result list
// preserves question order; the score is correct/total*100.
//
// Answer and question counts must match; a mismatch is rejected rather than
// truncated or padded.
func ScoreQuiz(questions []domain.QuizQuestion, answers []string) (float64, []domain.QuestionResult, error) {
	if len(answers) != len(questions) {
		return 0, nil, fmt.Errorf("%w: got %d answers for %d questions", domain.ErrInvalidArgument, len(answers), len(questions))
	}
	if len(questions) == 0 {
		return 0, nil, fmt.Errorf("%w: no questions", domain.ErrInvalidArgument)
	}
	results := make([]domain.QuestionResult, 0, len(questions))
	correct := 0
	for i, q := range questions {
		ok := q.CorrectAnswer == answers[i]
		if ok {
			correct++
		}
		results = append(results, domain.QuestionResult{
			Question:    q.Question,
			Answer:      q.CorrectAnswer,
			UserAnswer:  answers[i],
			IsCorrect:   ok,
			Explanation: q.Explanation,
		})
	}
	score := float64(correct) / float64(len(questions)) * 100
	return score, results, nil
}

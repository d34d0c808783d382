package engine

import (
	"time"

	"github.com/finlitapp/finlit/internal/content"
)

// Score aggregates per-question evaluations into a QuizResult.
//
// Every question in the quiz produces a QuestionResult, including
// unanswered ones, which always score as incorrect. The computation is
// deterministic: identical inputs yield an identical result, with no
// wall-clock dependency beyond the supplied elapsed time and completion
// timestamp.
func Score(quiz *content.Quiz, answers map[string]Answer, elapsedSeconds int, completedAt time.Time) *QuizResult {
	result := &QuizResult{
		QuizID:           quiz.ID,
		TotalQuestions:   len(quiz.Questions),
		TimeSpentSeconds: elapsedSeconds,
		CompletedAt:      completedAt,
		QuestionResults:  make([]QuestionResult, 0, len(quiz.Questions)),
	}

	for i := range quiz.Questions {
		q := &quiz.Questions[i]
		result.MaxPoints += q.EffectivePoints()

		qr := QuestionResult{
			QuestionID:    q.ID,
			CorrectAnswer: correctAnswerOf(q),
		}
		if ans, ok := answers[q.ID]; ok {
			a := ans
			qr.UserAnswer = &a
			qr.IsCorrect = Evaluate(q, &a)
		}
		if qr.IsCorrect {
			qr.PointsAwarded = q.EffectivePoints()
			result.TotalPoints += qr.PointsAwarded
			result.CorrectCount++
		}
		result.QuestionResults = append(result.QuestionResults, qr)
	}

	if result.MaxPoints > 0 {
		result.Score = float64(result.TotalPoints) / float64(result.MaxPoints) * 100
	}
	result.Passed = result.Score >= quiz.PassingScore

	return result
}

// correctAnswerOf snapshots the question's correct answer in Answer form,
// so results stay self-contained once the quiz content is gone.
func correctAnswerOf(q *content.Question) Answer {
	if q.Type == content.TypeMultiSelect {
		set := make([]string, len(q.AnswerSet))
		copy(set, q.AnswerSet)
		return Answer{Values: set}
	}
	return Answer{Value: q.Answer}
}

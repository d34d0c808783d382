package engine

import "time"

// QuestionResult records the evaluation of a single question.
type QuestionResult struct {
	QuestionID    string  `json:"questionId"`
	IsCorrect     bool    `json:"isCorrect"`
	UserAnswer    *Answer `json:"userAnswer,omitempty"`
	CorrectAnswer Answer  `json:"correctAnswer"`
	PointsAwarded int     `json:"pointsAwarded"`
}

// QuizResult is the immutable outcome of one finalized quiz attempt.
type QuizResult struct {
	QuizID           string           `json:"quizId"`
	AttemptID        string           `json:"attemptId,omitempty"`
	Score            float64          `json:"score"`
	CorrectCount     int              `json:"correctCount"`
	TotalQuestions   int              `json:"totalQuestions"`
	TotalPoints      int              `json:"totalPoints"`
	MaxPoints        int              `json:"maxPoints"`
	TimeSpentSeconds int              `json:"timeSpentSeconds"`
	Passed           bool             `json:"passed"`
	QuestionResults  []QuestionResult `json:"questionResults"`
	CompletedAt      time.Time        `json:"completedAt"`
}

// Perfect reports whether every question was answered correctly.
func (r *QuizResult) Perfect() bool {
	return r.TotalQuestions > 0 && r.CorrectCount == r.TotalQuestions
}

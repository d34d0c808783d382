package engine

import (
	"math"
	"reflect"
	"testing"
	"time"

	"github.com/finlitapp/finlit/internal/content"
)

func threeQuestionQuiz() *content.Quiz {
	return &content.Quiz{
		ID:           "qz",
		PassingScore: 70,
		Questions: []content.Question{
			{ID: "q1", Type: content.TypeBoolean, Prompt: "p", Answer: "true", Points: 10},
			{ID: "q2", Type: content.TypeNumeric, Prompt: "p", Answer: "50", Points: 10},
			{ID: "q3", Type: content.TypeFreeText, Prompt: "p", Answer: "apr", Points: 10},
		},
	}
}

var scoredAt = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func TestScoreEmptyAnswersNeverPasses(t *testing.T) {
	quiz := threeQuestionQuiz()
	result := Score(quiz, nil, 30, scoredAt)

	if result.Score != 0 {
		t.Errorf("score = %v, want 0", result.Score)
	}
	if result.Passed {
		t.Error("empty answer map must not pass")
	}
	if result.TotalQuestions != 3 {
		t.Errorf("total questions = %d, want 3", result.TotalQuestions)
	}
	if len(result.QuestionResults) != 3 {
		t.Fatalf("question results = %d, want 3", len(result.QuestionResults))
	}
	for _, qr := range result.QuestionResults {
		if qr.IsCorrect {
			t.Errorf("question %s: unanswered scored correct", qr.QuestionID)
		}
		if qr.UserAnswer != nil {
			t.Errorf("question %s: unanswered has user answer", qr.QuestionID)
		}
		if qr.PointsAwarded != 0 {
			t.Errorf("question %s: awarded %d points", qr.QuestionID, qr.PointsAwarded)
		}
	}
}

func TestScoreAllCorrect(t *testing.T) {
	quiz := threeQuestionQuiz()
	answers := map[string]Answer{
		"q1": {Value: "true"},
		"q2": {Value: "50"},
		"q3": {Value: "APR"},
	}
	result := Score(quiz, answers, 90, scoredAt)

	if result.Score != 100 {
		t.Errorf("score = %v, want 100", result.Score)
	}
	if !result.Passed {
		t.Error("perfect answers must pass")
	}
	if !result.Perfect() {
		t.Error("Perfect() = false, want true")
	}
	if result.TotalPoints != 30 || result.MaxPoints != 30 {
		t.Errorf("points = %d/%d, want 30/30", result.TotalPoints, result.MaxPoints)
	}
	if result.TimeSpentSeconds != 90 {
		t.Errorf("time spent = %d, want 90", result.TimeSpentSeconds)
	}
	if !result.CompletedAt.Equal(scoredAt) {
		t.Errorf("completed at = %v, want %v", result.CompletedAt, scoredAt)
	}
}

func TestScorePartialBelowPassing(t *testing.T) {
	// Two of three correct at passing 70 is 66.67, a fail.
	quiz := threeQuestionQuiz()
	answers := map[string]Answer{
		"q1": {Value: "true"},
		"q2": {Value: "50"},
	}
	result := Score(quiz, answers, 60, scoredAt)

	if math.Abs(result.Score-66.666666) > 0.001 {
		t.Errorf("score = %v, want ~66.67", result.Score)
	}
	if result.Passed {
		t.Error("66.67 must not pass at 70")
	}
	if result.CorrectCount != 2 {
		t.Errorf("correct count = %d, want 2", result.CorrectCount)
	}
	if result.TotalPoints != 20 {
		t.Errorf("total points = %d, want 20", result.TotalPoints)
	}
}

func TestScoreDeterministic(t *testing.T) {
	quiz := threeQuestionQuiz()
	answers := map[string]Answer{
		"q1": {Value: "true"},
		"q3": {Value: "apr"},
	}

	a := Score(quiz, answers, 45, scoredAt)
	b := Score(quiz, answers, 45, scoredAt)
	if !reflect.DeepEqual(a, b) {
		t.Error("identical inputs produced different results")
	}
}

func TestScorePointsSumInvariant(t *testing.T) {
	quiz := threeQuestionQuiz()
	answers := map[string]Answer{"q2": {Value: "50.005"}}
	result := Score(quiz, answers, 10, scoredAt)

	sum := 0
	for _, qr := range result.QuestionResults {
		sum += qr.PointsAwarded
	}
	if sum != result.TotalPoints {
		t.Errorf("sum of awarded points %d != total %d", sum, result.TotalPoints)
	}
}

func TestScoreZeroMaxPoints(t *testing.T) {
	quiz := &content.Quiz{ID: "empty", PassingScore: 50}
	result := Score(quiz, nil, 0, scoredAt)

	if result.Score != 0 {
		t.Errorf("score = %v, want 0 when max points is 0", result.Score)
	}
}

func TestScoreMalformedAnswerScoredIncorrect(t *testing.T) {
	quiz := &content.Quiz{
		ID:           "qz",
		PassingScore: 50,
		Questions: []content.Question{
			{ID: "n1", Type: content.TypeNumeric, Prompt: "p", Answer: "10", Points: 10},
			{ID: "n2", Type: content.TypeNumeric, Prompt: "p", Answer: "20", Points: 10},
		},
	}
	answers := map[string]Answer{
		"n1": {Value: "not-a-number"},
		"n2": {Value: "20"},
	}
	result := Score(quiz, answers, 5, scoredAt)

	if result.CorrectCount != 1 {
		t.Errorf("correct count = %d, want 1", result.CorrectCount)
	}
	if result.QuestionResults[0].IsCorrect {
		t.Error("malformed numeric answer must score incorrect, not abort")
	}
}

func TestScoreSnapshotsCorrectAnswer(t *testing.T) {
	quiz := &content.Quiz{
		ID:           "qz",
		PassingScore: 50,
		Questions: []content.Question{
			{ID: "m1", Type: content.TypeMultiSelect, Prompt: "p",
				AnswerSet: []string{"a", "b"}, Points: 10},
		},
	}
	result := Score(quiz, nil, 0, scoredAt)

	got := result.QuestionResults[0].CorrectAnswer.Values
	if !reflect.DeepEqual(got, []string{"a", "b"}) {
		t.Errorf("correct answer snapshot = %v, want [a b]", got)
	}
}

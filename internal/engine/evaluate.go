package engine

import (
	"math"
	"strconv"
	"strings"

	"github.com/finlitapp/finlit/internal/content"
)

// Answer is a user's submission for one question. Value carries scalar
// answers (option value, "true"/"false", numeric text, free text);
// Values carries the multi_select selection.
type Answer struct {
	Value  string   `json:"value,omitempty"`
	Values []string `json:"values,omitempty"`
}

// Evaluate reports whether the answer is correct for the question.
//
// It is pure and fail-soft: a nil answer, an empty submission, or input
// that cannot be parsed for the question's type is incorrect, never an
// error. Comparison rules per type:
//
//   - single_choice / boolean: exact match against the correct value
//   - multi_select: set equality, order-independent, duplicates ignored
//   - numeric: |user - correct| <= tolerance (default 0.01)
//   - free_text: trimmed, case-insensitive exact match
func Evaluate(q *content.Question, ans *Answer) bool {
	if q == nil || ans == nil {
		return false
	}

	switch q.Type {
	case content.TypeSingleChoice, content.TypeBoolean:
		return ans.Value != "" && ans.Value == q.Answer

	case content.TypeMultiSelect:
		return setsEqual(ans.Values, q.AnswerSet)

	case content.TypeNumeric:
		return numericMatch(ans.Value, q.Answer, q.EffectiveTolerance())

	case content.TypeFreeText:
		return textMatch(ans.Value, q.Answer)
	}
	return false
}

// setsEqual compares two selections as sets, ignoring order and duplicates.
func setsEqual(submitted, correct []string) bool {
	if len(correct) == 0 {
		return false
	}
	sub := make(map[string]bool, len(submitted))
	for _, v := range submitted {
		sub[v] = true
	}
	want := make(map[string]bool, len(correct))
	for _, v := range correct {
		want[v] = true
	}
	if len(sub) != len(want) {
		return false
	}
	for v := range want {
		if !sub[v] {
			return false
		}
	}
	return true
}

// numericMatch parses both sides as floats and compares within tolerance.
func numericMatch(submitted, correct string, tolerance float64) bool {
	user, err := strconv.ParseFloat(strings.TrimSpace(submitted), 64)
	if err != nil {
		return false
	}
	want, err := strconv.ParseFloat(strings.TrimSpace(correct), 64)
	if err != nil {
		return false
	}
	return math.Abs(user-want) <= tolerance
}

// textMatch compares free text after trimming and case folding.
// No fuzzy or semantic matching: exact string match only.
func textMatch(submitted, correct string) bool {
	s := strings.TrimSpace(submitted)
	if s == "" {
		return false
	}
	return strings.EqualFold(s, strings.TrimSpace(correct))
}

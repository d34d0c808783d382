package engine

import (
	"testing"

	"github.com/finlitapp/finlit/internal/content"
)

func choiceQuestion() *content.Question {
	return &content.Question{
		ID:   "q1",
		Type: content.TypeSingleChoice,
		Options: []content.Option{
			{Value: "a", Text: "A"},
			{Value: "b", Text: "B"},
		},
		Answer: "b",
	}
}

func TestEvaluateSingleChoice(t *testing.T) {
	q := choiceQuestion()

	tests := []struct {
		name string
		ans  *Answer
		want bool
	}{
		{"correct", &Answer{Value: "b"}, true},
		{"wrong", &Answer{Value: "a"}, false},
		{"empty value", &Answer{}, false},
		{"nil answer", nil, false},
		{"no type coercion", &Answer{Value: "B"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Evaluate(q, tt.ans); got != tt.want {
				t.Errorf("Evaluate = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestEvaluateBoolean(t *testing.T) {
	q := &content.Question{ID: "q", Type: content.TypeBoolean, Answer: "true"}

	if !Evaluate(q, &Answer{Value: "true"}) {
		t.Error("exact match should be correct")
	}
	if Evaluate(q, &Answer{Value: "false"}) {
		t.Error("wrong value should be incorrect")
	}
	if Evaluate(q, &Answer{Value: "TRUE"}) {
		t.Error("boolean comparison must not coerce case")
	}
}

func TestEvaluateMultiSelectOrderIndependent(t *testing.T) {
	q := &content.Question{
		ID:        "q",
		Type:      content.TypeMultiSelect,
		AnswerSet: []string{"a", "c", "d"},
	}

	perms := [][]string{
		{"a", "c", "d"},
		{"d", "a", "c"},
		{"c", "d", "a"},
	}
	for _, p := range perms {
		if !Evaluate(q, &Answer{Values: p}) {
			t.Errorf("permutation %v should be correct", p)
		}
	}
}

func TestEvaluateMultiSelect(t *testing.T) {
	q := &content.Question{
		ID:        "q",
		Type:      content.TypeMultiSelect,
		AnswerSet: []string{"a", "c"},
	}

	tests := []struct {
		name string
		vals []string
		want bool
	}{
		{"exact", []string{"a", "c"}, true},
		{"duplicates ignored", []string{"a", "a", "c"}, true},
		{"missing member", []string{"a"}, false},
		{"extra member", []string{"a", "b", "c"}, false},
		{"disjoint", []string{"b", "d"}, false},
		{"empty", nil, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Evaluate(q, &Answer{Values: tt.vals}); got != tt.want {
				t.Errorf("Evaluate(%v) = %v, want %v", tt.vals, got, tt.want)
			}
		})
	}
}

func TestEvaluateNumericTolerance(t *testing.T) {
	q := &content.Question{
		ID:        "q",
		Type:      content.TypeNumeric,
		Answer:    "100",
		Tolerance: 0.5,
	}

	tests := []struct {
		value string
		want  bool
	}{
		{"100", true},
		{"100.5", true},  // correct + tolerance
		{"99.5", true},   // correct - tolerance
		{"100.51", false}, // just past tolerance
		{"99.49", false},
		{"  100 ", true}, // whitespace trimmed
		{"1e2", true},    // float syntax accepted
		{"abc", false},   // non-numeric never throws
		{"", false},
	}
	for _, tt := range tests {
		if got := Evaluate(q, &Answer{Value: tt.value}); got != tt.want {
			t.Errorf("Evaluate(%q) = %v, want %v", tt.value, got, tt.want)
		}
	}
}

func TestEvaluateNumericDefaultTolerance(t *testing.T) {
	q := &content.Question{ID: "q", Type: content.TypeNumeric, Answer: "3.14"}

	if !Evaluate(q, &Answer{Value: "3.149"}) {
		t.Error("within default tolerance 0.01 should be correct")
	}
	if Evaluate(q, &Answer{Value: "3.16"}) {
		t.Error("outside default tolerance should be incorrect")
	}
}

func TestEvaluateFreeText(t *testing.T) {
	q := &content.Question{ID: "q", Type: content.TypeFreeText, Answer: "APR"}

	tests := []struct {
		value string
		want  bool
	}{
		{"APR", true},
		{"apr", true},
		{"  Apr  ", true},
		{"A.P.R.", false}, // exact match only, no fuzzy matching
		{"", false},
		{"   ", false},
	}
	for _, tt := range tests {
		if got := Evaluate(q, &Answer{Value: tt.value}); got != tt.want {
			t.Errorf("Evaluate(%q) = %v, want %v", tt.value, got, tt.want)
		}
	}
}

func TestEvaluateMissingAnswerNeverErrors(t *testing.T) {
	questions := []*content.Question{
		choiceQuestion(),
		{ID: "b", Type: content.TypeBoolean, Answer: "true"},
		{ID: "m", Type: content.TypeMultiSelect, AnswerSet: []string{"a"}},
		{ID: "n", Type: content.TypeNumeric, Answer: "1"},
		{ID: "t", Type: content.TypeFreeText, Answer: "x"},
		{ID: "u", Type: "unknown", Answer: "x"},
	}
	for _, q := range questions {
		if Evaluate(q, nil) {
			t.Errorf("type %s: nil answer should be incorrect", q.Type)
		}
		if Evaluate(q, &Answer{}) {
			t.Errorf("type %s: empty answer should be incorrect", q.Type)
		}
	}
	if Evaluate(nil, &Answer{Value: "x"}) {
		t.Error("nil question should be incorrect")
	}
}

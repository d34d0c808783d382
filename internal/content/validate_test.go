package content

import (
	"strings"
	"testing"
)

func validQuestion() Question {
	return Question{
		ID:     "q1",
		Type:   TypeSingleChoice,
		Prompt: "Pick one",
		Options: []Option{
			{Value: "a", Text: "A"},
			{Value: "b", Text: "B"},
		},
		Answer: "a",
		Points: 10,
	}
}

func TestQuizValidate(t *testing.T) {
	quiz := Quiz{
		ID:           "qz",
		Title:        "Test",
		PassingScore: 70,
		Questions:    []Question{validQuestion()},
	}
	if err := quiz.Validate(); err != nil {
		t.Fatalf("valid quiz rejected: %v", err)
	}
}

func TestQuizValidateRejects(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Quiz)
		wantErr string
	}{
		{"no id", func(z *Quiz) { z.ID = "" }, "no id"},
		{"passing score above 100", func(z *Quiz) { z.PassingScore = 101 }, "passing_score"},
		{"negative passing score", func(z *Quiz) { z.PassingScore = -1 }, "passing_score"},
		{"no questions", func(z *Quiz) { z.Questions = nil }, "no questions"},
		{"duplicate question ids", func(z *Quiz) {
			z.Questions = append(z.Questions, validQuestion())
		}, "duplicate question id"},
		{"negative time limit", func(z *Quiz) { z.TimeLimitMinutes = -2 }, "time limit"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			quiz := Quiz{
				ID:           "qz",
				PassingScore: 70,
				Questions:    []Question{validQuestion()},
			}
			tt.mutate(&quiz)
			err := quiz.Validate()
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error = %q, want substring %q", err, tt.wantErr)
			}
		})
	}
}

func TestQuestionValidateShapes(t *testing.T) {
	tests := []struct {
		name string
		q    Question
		ok   bool
	}{
		{
			name: "single choice answer not in options",
			q: Question{ID: "q", Type: TypeSingleChoice, Prompt: "p",
				Options: []Option{{Value: "a", Text: "A"}, {Value: "b", Text: "B"}},
				Answer:  "c"},
			ok: false,
		},
		{
			name: "single choice with answer set",
			q: Question{ID: "q", Type: TypeSingleChoice, Prompt: "p",
				Options:   []Option{{Value: "a", Text: "A"}, {Value: "b", Text: "B"}},
				Answer:    "a",
				AnswerSet: []string{"a"}},
			ok: false,
		},
		{
			name: "multi select ok",
			q: Question{ID: "q", Type: TypeMultiSelect, Prompt: "p",
				Options:   []Option{{Value: "a", Text: "A"}, {Value: "b", Text: "B"}, {Value: "c", Text: "C"}},
				AnswerSet: []string{"a", "c"}},
			ok: true,
		},
		{
			name: "multi select with scalar answer",
			q: Question{ID: "q", Type: TypeMultiSelect, Prompt: "p",
				Options: []Option{{Value: "a", Text: "A"}, {Value: "b", Text: "B"}},
				Answer:  "a"},
			ok: false,
		},
		{
			name: "multi select duplicate in set",
			q: Question{ID: "q", Type: TypeMultiSelect, Prompt: "p",
				Options:   []Option{{Value: "a", Text: "A"}, {Value: "b", Text: "B"}},
				AnswerSet: []string{"a", "a"}},
			ok: false,
		},
		{
			name: "boolean ok",
			q:    Question{ID: "q", Type: TypeBoolean, Prompt: "p", Answer: "true"},
			ok:   true,
		},
		{
			name: "boolean non-bool answer",
			q:    Question{ID: "q", Type: TypeBoolean, Prompt: "p", Answer: "yes"},
			ok:   false,
		},
		{
			name: "numeric ok",
			q:    Question{ID: "q", Type: TypeNumeric, Prompt: "p", Answer: "42.5"},
			ok:   true,
		},
		{
			name: "numeric non-number",
			q:    Question{ID: "q", Type: TypeNumeric, Prompt: "p", Answer: "lots"},
			ok:   false,
		},
		{
			name: "free text ok",
			q:    Question{ID: "q", Type: TypeFreeText, Prompt: "p", Answer: "APR"},
			ok:   true,
		},
		{
			name: "free text blank answer",
			q:    Question{ID: "q", Type: TypeFreeText, Prompt: "p", Answer: "   "},
			ok:   false,
		},
		{
			name: "unknown type",
			q:    Question{ID: "q", Type: "essay", Prompt: "p", Answer: "x"},
			ok:   false,
		},
		{
			name: "duplicate option values",
			q: Question{ID: "q", Type: TypeSingleChoice, Prompt: "p",
				Options: []Option{{Value: "a", Text: "A"}, {Value: "a", Text: "A2"}},
				Answer:  "a"},
			ok: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.q.Validate()
			if tt.ok && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
			if !tt.ok && err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}

func TestEffectiveDefaults(t *testing.T) {
	q := Question{}
	if got := q.EffectiveTolerance(); got != DefaultTolerance {
		t.Errorf("EffectiveTolerance = %v, want %v", got, DefaultTolerance)
	}
	if got := q.EffectivePoints(); got != DefaultPoints {
		t.Errorf("EffectivePoints = %d, want %d", got, DefaultPoints)
	}

	q.Tolerance = 0.5
	q.Points = 15
	if got := q.EffectiveTolerance(); got != 0.5 {
		t.Errorf("EffectiveTolerance = %v, want 0.5", got)
	}
	if got := q.EffectivePoints(); got != 15 {
		t.Errorf("EffectivePoints = %d, want 15", got)
	}
}

func TestMaxPoints(t *testing.T) {
	quiz := Quiz{Questions: []Question{
		{Points: 10},
		{Points: 15},
		{}, // defaults to 10
	}}
	if got := quiz.MaxPoints(); got != 35 {
		t.Errorf("MaxPoints = %d, want 35", got)
	}
}

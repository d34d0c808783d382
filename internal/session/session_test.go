package session

import (
	"testing"
	"time"

	"github.com/finlitapp/finlit/internal/content"
	"github.com/finlitapp/finlit/internal/engine"
)

func testQuiz() *content.Quiz {
	return &content.Quiz{
		ID:           "budgeting-101",
		Title:        "Budgeting Basics",
		Topic:        "budgeting",
		PassingScore: 70,
		AllowReview:  true,
		Questions: []content.Question{
			{
				ID:     "q1",
				Type:   content.TypeSingleChoice,
				Prompt: "Which rule splits income 50/30/20?",
				Options: []content.Option{
					{Value: "a", Text: "The envelope method"},
					{Value: "b", Text: "The 50/30/20 rule"},
				},
				Answer: "b",
			},
			{
				ID:     "q2",
				Type:   content.TypeBoolean,
				Prompt: "A budget tracks income and expenses.",
				Answer: "true",
			},
			{
				ID:        "q3",
				Type:      content.TypeNumeric,
				Prompt:    "What percent goes to savings under 50/30/20?",
				Answer:    "20",
				Tolerance: 0.5,
			},
		},
	}
}

func activeSession(t *testing.T) *Session {
	t.Helper()
	s := New()
	s.Start(testQuiz())
	if s.Phase() != PhaseActive {
		t.Fatal("expected active phase after start")
	}
	return s
}

func TestStartTransitionsToActive(t *testing.T) {
	s := New()
	if s.Phase() != PhaseIdle {
		t.Fatalf("new session phase = %v, want idle", s.Phase())
	}

	s.Start(testQuiz())
	if s.Phase() != PhaseActive {
		t.Fatalf("phase = %v, want active", s.Phase())
	}
	if s.AttemptID() == "" {
		t.Error("expected a non-empty attempt ID")
	}
	if s.CurrentIndex() != 0 {
		t.Errorf("current index = %d, want 0", s.CurrentIndex())
	}
}

func TestStartIgnoredWhileActive(t *testing.T) {
	s := activeSession(t)
	id := s.AttemptID()

	s.Start(testQuiz())
	if s.AttemptID() != id {
		t.Error("start during an active attempt should be ignored")
	}
}

func TestStartIgnoredForEmptyQuiz(t *testing.T) {
	s := New()
	s.Start(&content.Quiz{ID: "empty"})
	if s.Phase() != PhaseIdle {
		t.Error("start with no questions should be ignored")
	}
	s.Start(nil)
	if s.Phase() != PhaseIdle {
		t.Error("start with nil quiz should be ignored")
	}
}

func TestSubmitAnswerRecordsForCurrentQuestion(t *testing.T) {
	s := activeSession(t)

	s.SubmitAnswer(engine.Answer{Value: "b"})
	ans, ok := s.AnswerFor("q1")
	if !ok || ans.Value != "b" {
		t.Fatalf("answer for q1 = %+v (ok=%v), want value b", ans, ok)
	}

	// Overwriting is allowed.
	s.SubmitAnswer(engine.Answer{Value: "a"})
	ans, _ = s.AnswerFor("q1")
	if ans.Value != "a" {
		t.Errorf("answer for q1 = %q, want a after overwrite", ans.Value)
	}
	if s.AnsweredCount() != 1 {
		t.Errorf("answered count = %d, want 1", s.AnsweredCount())
	}
}

func TestSubmitAnswerIgnoredWhenNotActive(t *testing.T) {
	s := New()
	s.SubmitAnswer(engine.Answer{Value: "b"})
	if s.AnsweredCount() != 0 {
		t.Error("answer recorded while idle")
	}

	s.Start(testQuiz())
	s.Finalize()
	s.SubmitAnswer(engine.Answer{Value: "b"})
	if s.AnsweredCount() != 0 {
		t.Error("answer recorded after finalize")
	}
}

func TestClearAnswer(t *testing.T) {
	s := activeSession(t)
	s.SubmitAnswer(engine.Answer{Value: "b"})
	s.ClearAnswer()
	if _, ok := s.AnswerFor("q1"); ok {
		t.Error("expected answer cleared")
	}
}

func TestNavigationBounds(t *testing.T) {
	s := activeSession(t)

	s.Previous()
	if s.CurrentIndex() != 0 {
		t.Error("previous on first question should be ignored")
	}

	s.Next()
	s.Next()
	if s.CurrentIndex() != 2 {
		t.Fatalf("index = %d, want 2", s.CurrentIndex())
	}
	s.Next()
	if s.CurrentIndex() != 2 {
		t.Error("next on last question should be ignored")
	}

	s.GoTo(0)
	if s.CurrentIndex() != 0 {
		t.Errorf("index = %d after GoTo(0), want 0", s.CurrentIndex())
	}
	s.GoTo(99)
	if s.CurrentIndex() != 0 {
		t.Error("out-of-range GoTo should be ignored")
	}
	s.GoTo(-1)
	if s.CurrentIndex() != 0 {
		t.Error("negative GoTo should be ignored")
	}
}

func TestNavigationIgnoredWhenCompleted(t *testing.T) {
	s := activeSession(t)
	s.GoTo(1)
	s.Finalize()

	s.Next()
	s.GoTo(2)
	if s.CurrentIndex() != 1 {
		t.Error("navigation outside review should be ignored after finalize")
	}
}

func TestToggleFlag(t *testing.T) {
	s := activeSession(t)

	s.ToggleFlag()
	if !s.IsFlagged("q1") {
		t.Fatal("expected q1 flagged")
	}
	s.ToggleFlag()
	if s.IsFlagged("q1") {
		t.Fatal("expected q1 unflagged after second toggle")
	}

	s.ToggleFlag()
	s.GoTo(2)
	s.ToggleFlag()
	ids := s.FlaggedIDs()
	if len(ids) != 2 || ids[0] != "q1" || ids[1] != "q3" {
		t.Errorf("flagged ids = %v, want [q1 q3] in quiz order", ids)
	}
}

func TestFinalizeScoresAndCompletes(t *testing.T) {
	s := activeSession(t)
	s.SubmitAnswer(engine.Answer{Value: "b"})
	s.Next()
	s.SubmitAnswer(engine.Answer{Value: "true"})
	s.Next()
	s.SubmitAnswer(engine.Answer{Value: "20"})

	result := s.Finalize()
	if result == nil {
		t.Fatal("expected a result from finalize")
	}
	if s.Phase() != PhaseCompleted {
		t.Fatalf("phase = %v, want completed", s.Phase())
	}
	if result.Score != 100 || !result.Passed {
		t.Errorf("score = %.1f passed = %v, want 100 and passed", result.Score, result.Passed)
	}
	if result.AttemptID != s.AttemptID() {
		t.Error("result attempt ID should match the session's")
	}
	if got := s.Result(); got != result {
		t.Error("Result() should return the finalized result")
	}
}

func TestFinalizeIdempotent(t *testing.T) {
	s := activeSession(t)
	first := s.Finalize()
	second := s.Finalize()
	if first == nil {
		t.Fatal("expected result from first finalize")
	}
	if second != nil {
		t.Error("second finalize should be a no-op returning nil")
	}
	if s.Result() != first {
		t.Error("stored result should be unchanged by repeat finalize")
	}
}

func TestFinalizeIgnoredWhenIdle(t *testing.T) {
	s := New()
	if s.Finalize() != nil {
		t.Error("finalize while idle should return nil")
	}
	if s.Phase() != PhaseIdle {
		t.Error("finalize while idle should not change phase")
	}
}

func TestReviewLifecycle(t *testing.T) {
	s := activeSession(t)

	s.BeginReview()
	if s.Reviewing() {
		t.Fatal("review should be ignored while active")
	}

	s.GoTo(2)
	s.Finalize()
	s.BeginReview()
	if !s.Reviewing() {
		t.Fatal("expected review mode after finalize")
	}
	if s.CurrentIndex() != 0 {
		t.Error("review should start at the first question")
	}

	// Navigation works during review.
	s.Next()
	if s.CurrentIndex() != 1 {
		t.Errorf("index = %d during review, want 1", s.CurrentIndex())
	}

	s.EndReview()
	if s.Reviewing() {
		t.Error("expected review mode off")
	}
}

func TestReviewDisallowedByQuiz(t *testing.T) {
	quiz := testQuiz()
	quiz.AllowReview = false
	s := New()
	s.Start(quiz)
	s.Finalize()

	s.BeginReview()
	if s.Reviewing() {
		t.Error("review should be ignored when the quiz disallows it")
	}
}

func TestResetReturnsToIdle(t *testing.T) {
	s := activeSession(t)
	s.SubmitAnswer(engine.Answer{Value: "b"})
	s.Reset()

	if s.Phase() != PhaseIdle {
		t.Fatalf("phase = %v, want idle", s.Phase())
	}
	if s.Quiz() != nil || s.Result() != nil || s.AnsweredCount() != 0 {
		t.Error("reset should clear attempt state")
	}

	// A fresh attempt can start afterwards.
	s.Start(testQuiz())
	if s.Phase() != PhaseActive {
		t.Error("expected a new attempt to start after reset")
	}
}

func TestTimeLimitTracking(t *testing.T) {
	quiz := testQuiz()
	quiz.TimeLimitMinutes = 5

	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	s := New()
	s.now = func() time.Time { return now }
	s.Start(quiz)

	left, limited := s.Remaining()
	if !limited || left != 5*time.Minute {
		t.Fatalf("remaining = %v limited = %v, want 5m true", left, limited)
	}

	now = now.Add(4 * time.Minute)
	left, _ = s.Remaining()
	if left != time.Minute {
		t.Errorf("remaining = %v, want 1m", left)
	}
	if s.TimeExpired() {
		t.Error("time should not be expired yet")
	}

	now = now.Add(2 * time.Minute)
	left, _ = s.Remaining()
	if left != 0 {
		t.Errorf("remaining = %v, want 0 after expiry", left)
	}
	if !s.TimeExpired() {
		t.Error("expected time expired")
	}
}

func TestNoTimeLimit(t *testing.T) {
	s := activeSession(t)
	if _, limited := s.Remaining(); limited {
		t.Error("quiz without a limit should report no remaining time")
	}
	if s.TimeExpired() {
		t.Error("quiz without a limit never expires")
	}
}

func TestElapsedUsesClock(t *testing.T) {
	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	s := New()
	s.now = func() time.Time { return now }
	s.Start(testQuiz())

	now = now.Add(90 * time.Second)
	if got := s.Elapsed(); got != 90*time.Second {
		t.Errorf("elapsed = %v, want 90s", got)
	}

	result := s.Finalize()
	if result.TimeSpentSeconds != 90 {
		t.Errorf("time spent = %d, want 90", result.TimeSpentSeconds)
	}
}

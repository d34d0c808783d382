package session

import (
	"testing"
	"time"

	"github.com/finlitapp/finlit/internal/engine"
	"github.com/finlitapp/finlit/internal/store"
)

func TestSnapshotRoundTrip(t *testing.T) {
	quiz := testQuiz()
	s := New()
	s.Start(quiz)
	s.SubmitAnswer(engine.Answer{Value: "b"})
	s.ToggleFlag()
	s.Next()
	s.SubmitAnswer(engine.Answer{Value: "true"})

	data := s.SnapshotData()
	if data == nil {
		t.Fatal("expected snapshot data for an active attempt")
	}
	if data.QuizID != quiz.ID || data.AttemptID != s.AttemptID() {
		t.Errorf("snapshot identity = %s/%s, want %s/%s", data.QuizID, data.AttemptID, quiz.ID, s.AttemptID())
	}
	if data.CurrentIndex != 1 {
		t.Errorf("snapshot index = %d, want 1", data.CurrentIndex)
	}

	restored := New()
	restored.Restore(quiz, data)
	if restored.Phase() != PhaseActive {
		t.Fatalf("restored phase = %v, want active", restored.Phase())
	}
	if restored.AttemptID() != s.AttemptID() {
		t.Error("restored attempt ID should match the snapshot")
	}
	if restored.CurrentIndex() != 1 {
		t.Errorf("restored index = %d, want 1", restored.CurrentIndex())
	}
	if ans, ok := restored.AnswerFor("q1"); !ok || ans.Value != "b" {
		t.Errorf("restored answer for q1 = %+v (ok=%v)", ans, ok)
	}
	if !restored.IsFlagged("q1") {
		t.Error("restored session should keep the flag on q1")
	}
}

func TestSnapshotNilWhenNotActive(t *testing.T) {
	s := New()
	if s.SnapshotData() != nil {
		t.Error("idle session should produce no snapshot")
	}
	s.Start(testQuiz())
	s.Finalize()
	if s.SnapshotData() != nil {
		t.Error("completed session should produce no snapshot")
	}
}

func TestRestoreIgnoredOnMismatch(t *testing.T) {
	quiz := testQuiz()
	s := New()
	s.Restore(quiz, &store.SessionSnapshotData{QuizID: "other-quiz"})
	if s.Phase() != PhaseIdle {
		t.Error("restore with a mismatched quiz ID should be ignored")
	}

	s.Start(quiz)
	id := s.AttemptID()
	s.Restore(quiz, &store.SessionSnapshotData{QuizID: quiz.ID, AttemptID: "stale"})
	if s.AttemptID() != id {
		t.Error("restore during an active attempt should be ignored")
	}
}

func TestRestoreDropsUnknownQuestions(t *testing.T) {
	quiz := testQuiz()
	s := New()
	s.Restore(quiz, &store.SessionSnapshotData{
		QuizID:    quiz.ID,
		AttemptID: "a1",
		Answers: map[string]store.AnswerData{
			"q1":      {Value: "b"},
			"removed": {Value: "x"},
		},
		Flagged:      []string{"removed", "q2"},
		CurrentIndex: 99,
		StartedAt:    time.Now().UTC().Format(time.RFC3339),
	})

	if s.Phase() != PhaseActive {
		t.Fatal("expected restore to succeed")
	}
	if s.AnsweredCount() != 1 {
		t.Errorf("answered count = %d, want 1 after dropping unknown question", s.AnsweredCount())
	}
	if s.IsFlagged("removed") || !s.IsFlagged("q2") {
		t.Error("flags for unknown questions should be dropped")
	}
	if s.CurrentIndex() != 0 {
		t.Errorf("out-of-range index should clamp to 0, got %d", s.CurrentIndex())
	}
}

func TestRestorePreservesRemainingTime(t *testing.T) {
	quiz := testQuiz()
	quiz.TimeLimitMinutes = 5

	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	s := New()
	s.now = func() time.Time { return now }
	s.Restore(quiz, &store.SessionSnapshotData{
		QuizID:           quiz.ID,
		AttemptID:        "a1",
		StartedAt:        now.Add(-10 * time.Minute).Format(time.RFC3339),
		RemainingSeconds: 120,
	})

	left, limited := s.Remaining()
	if !limited || left != 2*time.Minute {
		t.Errorf("remaining = %v limited = %v, want 2m true", left, limited)
	}
}

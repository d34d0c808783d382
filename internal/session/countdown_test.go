package session

import (
	"testing"
	"time"

	"github.com/finlitapp/finlit/internal/engine"
)

func shortTicks(t *testing.T) {
	t.Helper()
	old := tickInterval
	tickInterval = 5 * time.Millisecond
	t.Cleanup(func() { tickInterval = old })
}

func waitFor(t *testing.T, timeout time.Duration, cond func() bool) bool {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if cond() {
			return true
		}
		time.Sleep(time.Millisecond)
	}
	return cond()
}

func TestSubmitCountdownAutoFinalizes(t *testing.T) {
	shortTicks(t)
	s := activeSession(t)
	s.SubmitAnswer(engine.Answer{Value: "b"})

	done := make(chan *engine.QuizResult, 1)
	s.SetFinalizeHook(func(r *engine.QuizResult) { done <- r })

	s.RequestSubmit()
	if _, pending := s.SubmitPending(); !pending {
		t.Fatal("expected a pending countdown after RequestSubmit")
	}

	select {
	case result := <-done:
		if result == nil {
			t.Fatal("hook received nil result")
		}
		if result.CorrectCount != 1 {
			t.Errorf("correct count = %d, want 1", result.CorrectCount)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("countdown never auto-finalized")
	}

	if s.Phase() != PhaseCompleted {
		t.Errorf("phase = %v, want completed", s.Phase())
	}
	if _, pending := s.SubmitPending(); pending {
		t.Error("countdown should be cleared after finalize")
	}
}

func TestCancelSubmitStopsCountdown(t *testing.T) {
	shortTicks(t)
	s := activeSession(t)

	fired := make(chan struct{}, 1)
	s.SetFinalizeHook(func(*engine.QuizResult) { fired <- struct{}{} })

	s.RequestSubmit()
	s.CancelSubmit()

	if _, pending := s.SubmitPending(); pending {
		t.Fatal("countdown still pending after cancel")
	}

	select {
	case <-fired:
		t.Fatal("cancelled countdown still finalized")
	case <-time.After(50 * time.Millisecond):
	}
	if s.Phase() != PhaseActive {
		t.Errorf("phase = %v, want active after cancel", s.Phase())
	}
}

func TestRequestSubmitIgnoredWhenNotActive(t *testing.T) {
	s := New()
	s.RequestSubmit()
	if _, pending := s.SubmitPending(); pending {
		t.Error("countdown started while idle")
	}

	s.Start(testQuiz())
	s.Finalize()
	s.RequestSubmit()
	if _, pending := s.SubmitPending(); pending {
		t.Error("countdown started after finalize")
	}
}

func TestRequestSubmitIgnoredWhilePending(t *testing.T) {
	shortTicks(t)
	s := activeSession(t)

	s.RequestSubmit()
	first, _ := s.SubmitPending()
	s.RequestSubmit()
	second, _ := s.SubmitPending()
	if first != second {
		t.Error("second RequestSubmit should not restart the countdown")
	}
}

func TestResetDuringCountdown(t *testing.T) {
	shortTicks(t)
	s := activeSession(t)

	fired := make(chan struct{}, 1)
	s.SetFinalizeHook(func(*engine.QuizResult) { fired <- struct{}{} })

	s.RequestSubmit()
	s.Reset()

	select {
	case <-fired:
		t.Fatal("countdown survived a reset")
	case <-time.After(50 * time.Millisecond):
	}
	if s.Phase() != PhaseIdle {
		t.Errorf("phase = %v, want idle", s.Phase())
	}
}

func TestManualFinalizeBeatsCountdown(t *testing.T) {
	shortTicks(t)
	s := activeSession(t)

	var hookCalls int
	s.SetFinalizeHook(func(*engine.QuizResult) { hookCalls++ })

	s.RequestSubmit()
	result := s.Finalize()
	if result == nil {
		t.Fatal("expected result from manual finalize")
	}

	// The countdown goroutine must not score a second time.
	if waitFor(t, 100*time.Millisecond, func() bool { return hookCalls > 0 }) {
		t.Fatal("hook fired even though finalize was manual")
	}
	if s.Result() != result {
		t.Error("stored result changed after manual finalize")
	}
}

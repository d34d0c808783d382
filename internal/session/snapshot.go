package session

import (
	"time"

	"github.com/finlitapp/finlit/internal/content"
	"github.com/finlitapp/finlit/internal/engine"
	"github.com/finlitapp/finlit/internal/store"
)

// SnapshotData captures an active attempt for persistence, so a session
// interrupted mid-quiz can be resumed on the next launch. Returns nil
// when there is nothing worth saving.
func (s *Session) SnapshotData() *store.SessionSnapshotData {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.phase != PhaseActive {
		return nil
	}

	answers := make(map[string]store.AnswerData, len(s.answers))
	for id, ans := range s.answers {
		answers[id] = store.AnswerData{Value: ans.Value, Values: ans.Values}
	}

	var flagged []string
	for _, q := range s.quiz.Questions {
		if s.flagged[q.ID] {
			flagged = append(flagged, q.ID)
		}
	}

	remaining := 0
	if s.quiz.TimeLimitMinutes > 0 {
		limit := time.Duration(s.quiz.TimeLimitMinutes) * time.Minute
		left := limit - s.now().Sub(s.startedAt)
		if left < 0 {
			left = 0
		}
		remaining = int(left.Seconds())
	}

	return &store.SessionSnapshotData{
		QuizID:           s.quiz.ID,
		AttemptID:        s.attemptID,
		CurrentIndex:     s.currentIndex,
		Answers:          answers,
		Flagged:          flagged,
		StartedAt:        s.startedAt.UTC().Format(time.RFC3339),
		RemainingSeconds: remaining,
	}
}

// Restore resumes an attempt from a saved snapshot. Ignored unless the
// session is idle or the snapshot doesn't match the quiz. For timed
// quizzes the clock picks up where it left off rather than restarting.
func (s *Session) Restore(quiz *content.Quiz, data *store.SessionSnapshotData) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.phase != PhaseIdle || quiz == nil || data == nil || data.QuizID != quiz.ID {
		return
	}

	answers := make(map[string]engine.Answer, len(data.Answers))
	for id, ans := range data.Answers {
		if quiz.Question(id) == nil {
			continue // question no longer in the quiz
		}
		answers[id] = engine.Answer{Value: ans.Value, Values: ans.Values}
	}

	flagged := make(map[string]bool, len(data.Flagged))
	for _, id := range data.Flagged {
		if quiz.Question(id) != nil {
			flagged[id] = true
		}
	}

	now := s.now()
	startedAt := now
	if quiz.TimeLimitMinutes > 0 {
		limit := time.Duration(quiz.TimeLimitMinutes) * time.Minute
		consumed := limit - time.Duration(data.RemainingSeconds)*time.Second
		if consumed < 0 {
			consumed = 0
		}
		startedAt = now.Add(-consumed)
	} else if t, err := time.Parse(time.RFC3339, data.StartedAt); err == nil {
		startedAt = t
	}

	index := data.CurrentIndex
	if index < 0 || index >= len(quiz.Questions) {
		index = 0
	}

	s.quiz = quiz
	s.attemptID = data.AttemptID
	s.phase = PhaseActive
	s.reviewing = false
	s.currentIndex = index
	s.answers = answers
	s.flagged = flagged
	s.startedAt = startedAt
	s.result = nil
	s.generation++
}

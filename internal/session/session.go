package session

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/finlitapp/finlit/internal/content"
	"github.com/finlitapp/finlit/internal/engine"
)

// Phase is the lifecycle stage of a quiz attempt.
type Phase int

const (
	// PhaseIdle means no attempt is in progress.
	PhaseIdle Phase = iota
	// PhaseActive means an attempt is underway and accepting answers.
	PhaseActive
	// PhaseCompleted means the attempt has been finalized and scored.
	PhaseCompleted
)

// String returns the phase name for logging and display.
func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseActive:
		return "active"
	case PhaseCompleted:
		return "completed"
	}
	return "unknown"
}

// Session drives a single quiz attempt through its lifecycle. Operations
// that are invalid for the current phase are silently ignored rather than
// returning errors: the caller (a keypress handler) has nothing useful to
// do with a rejection, and ignoring it keeps stale input harmless.
//
// All methods are safe for concurrent use. The finalize countdown runs on
// its own goroutine and is serialized through the same mutex.
type Session struct {
	mu sync.Mutex

	quiz      *content.Quiz
	attemptID string
	phase     Phase
	reviewing bool

	currentIndex int
	answers      map[string]engine.Answer
	flagged      map[string]bool
	startedAt    time.Time

	countdown *countdown
	result    *engine.QuizResult

	// generation increments on every Start and Finalize so late countdown
	// ticks from an abandoned attempt can be discarded.
	generation int

	// now is swapped out in tests.
	now func() time.Time

	// onFinalize, if set, is invoked after an auto-finalize triggered by
	// the countdown. Direct Finalize calls do not invoke it; the caller
	// already has the result in hand.
	onFinalize func(*engine.QuizResult)
}

// New creates an idle session.
func New() *Session {
	return &Session{
		phase: PhaseIdle,
		now:   time.Now,
	}
}

// SetFinalizeHook registers a callback invoked when the submit countdown
// expires and the attempt auto-finalizes.
func (s *Session) SetFinalizeHook(fn func(*engine.QuizResult)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onFinalize = fn
}

// Start begins a new attempt for quiz. Ignored unless the session is idle.
func (s *Session) Start(quiz *content.Quiz) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.phase != PhaseIdle || quiz == nil || len(quiz.Questions) == 0 {
		return
	}

	s.quiz = quiz
	s.attemptID = uuid.NewString()
	s.phase = PhaseActive
	s.reviewing = false
	s.currentIndex = 0
	s.answers = make(map[string]engine.Answer)
	s.flagged = make(map[string]bool)
	s.startedAt = s.now()
	s.result = nil
	s.generation++
}

// SubmitAnswer records the answer for the question at the current index.
// Ignored unless the attempt is active.
func (s *Session) SubmitAnswer(ans engine.Answer) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.phase != PhaseActive {
		return
	}
	q := s.quiz.Questions[s.currentIndex]
	s.answers[q.ID] = ans
}

// ClearAnswer removes any recorded answer for the current question.
func (s *Session) ClearAnswer() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.phase != PhaseActive {
		return
	}
	q := s.quiz.Questions[s.currentIndex]
	delete(s.answers, q.ID)
}

// Next advances to the next question. Ignored on the last question.
// During review the completed attempt can still be paged through.
func (s *Session) Next() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.navigable() {
		return
	}
	if s.currentIndex < len(s.quiz.Questions)-1 {
		s.currentIndex++
	}
}

// Previous moves back one question. Ignored on the first question.
func (s *Session) Previous() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.navigable() {
		return
	}
	if s.currentIndex > 0 {
		s.currentIndex--
	}
}

// GoTo jumps to the question at index. Out-of-range indexes are ignored.
func (s *Session) GoTo(index int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.navigable() {
		return
	}
	if index >= 0 && index < len(s.quiz.Questions) {
		s.currentIndex = index
	}
}

// navigable reports whether question navigation is allowed. Callers hold mu.
func (s *Session) navigable() bool {
	if s.phase == PhaseActive {
		return true
	}
	return s.phase == PhaseCompleted && s.reviewing
}

// ToggleFlag marks or unmarks the current question for later review.
func (s *Session) ToggleFlag() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.phase != PhaseActive {
		return
	}
	q := s.quiz.Questions[s.currentIndex]
	if s.flagged[q.ID] {
		delete(s.flagged, q.ID)
	} else {
		s.flagged[q.ID] = true
	}
}

// Finalize scores the attempt immediately and moves to the completed
// phase. Any pending submit countdown is cancelled first. Returns the
// result, or nil if the attempt was not active.
func (s *Session) Finalize() *engine.QuizResult {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.finalizeLocked()
}

func (s *Session) finalizeLocked() *engine.QuizResult {
	if s.phase != PhaseActive {
		return nil
	}

	s.stopCountdownLocked()

	now := s.now()
	elapsed := int(now.Sub(s.startedAt).Seconds())
	result := engine.Score(s.quiz, s.answers, elapsed, now)
	result.AttemptID = s.attemptID

	s.result = result
	s.phase = PhaseCompleted
	s.generation++
	return result
}

// BeginReview enters review mode on a completed attempt. Ignored when the
// attempt is not completed or the quiz disallows review.
func (s *Session) BeginReview() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.phase != PhaseCompleted || !s.quiz.AllowReview {
		return
	}
	s.reviewing = true
	s.currentIndex = 0
}

// EndReview leaves review mode.
func (s *Session) EndReview() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.phase != PhaseCompleted {
		return
	}
	s.reviewing = false
}

// Reset abandons the current attempt or result and returns to idle. Any
// running countdown is stopped. Nothing is scored or recorded.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.stopCountdownLocked()
	s.quiz = nil
	s.attemptID = ""
	s.phase = PhaseIdle
	s.reviewing = false
	s.currentIndex = 0
	s.answers = nil
	s.flagged = nil
	s.result = nil
	s.generation++
}

// Phase returns the current lifecycle phase.
func (s *Session) Phase() Phase {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.phase
}

// Reviewing reports whether the session is in review mode.
func (s *Session) Reviewing() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.reviewing
}

// Quiz returns the quiz under attempt, or nil when idle.
func (s *Session) Quiz() *content.Quiz {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.quiz
}

// AttemptID returns the unique ID of the current attempt.
func (s *Session) AttemptID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.attemptID
}

// CurrentIndex returns the index of the question in focus.
func (s *Session) CurrentIndex() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.currentIndex
}

// CurrentQuestion returns the question in focus, or nil when idle.
func (s *Session) CurrentQuestion() *content.Question {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.quiz == nil || s.currentIndex < 0 || s.currentIndex >= len(s.quiz.Questions) {
		return nil
	}
	return &s.quiz.Questions[s.currentIndex]
}

// AnswerFor returns the recorded answer for a question, if any.
func (s *Session) AnswerFor(questionID string) (engine.Answer, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ans, ok := s.answers[questionID]
	return ans, ok
}

// Answers returns a copy of all recorded answers.
func (s *Session) Answers() map[string]engine.Answer {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make(map[string]engine.Answer, len(s.answers))
	for k, v := range s.answers {
		out[k] = v
	}
	return out
}

// AnsweredCount returns how many questions have a recorded answer.
func (s *Session) AnsweredCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.answers)
}

// IsFlagged reports whether a question is flagged for review.
func (s *Session) IsFlagged(questionID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.flagged[questionID]
}

// FlaggedIDs returns the flagged question IDs in quiz order.
func (s *Session) FlaggedIDs() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.quiz == nil {
		return nil
	}
	var ids []string
	for _, q := range s.quiz.Questions {
		if s.flagged[q.ID] {
			ids = append(ids, q.ID)
		}
	}
	return ids
}

// Elapsed returns how long the attempt has been running.
func (s *Session) Elapsed() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.phase != PhaseActive {
		return 0
	}
	return s.now().Sub(s.startedAt)
}

// Remaining returns the time left before the quiz time limit expires, and
// whether a limit applies at all.
func (s *Session) Remaining() (time.Duration, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.phase != PhaseActive || s.quiz.TimeLimitMinutes <= 0 {
		return 0, false
	}
	limit := time.Duration(s.quiz.TimeLimitMinutes) * time.Minute
	left := limit - s.now().Sub(s.startedAt)
	if left < 0 {
		left = 0
	}
	return left, true
}

// TimeExpired reports whether a timed attempt has run out of time.
func (s *Session) TimeExpired() bool {
	left, limited := s.Remaining()
	return limited && left == 0
}

// Result returns the scored result of a completed attempt, or nil.
func (s *Session) Result() *engine.QuizResult {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.result
}

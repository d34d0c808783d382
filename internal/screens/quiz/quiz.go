package quiz

import (
	"context"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/finlitapp/finlit/internal/appstate"
	"github.com/finlitapp/finlit/internal/content"
	"github.com/finlitapp/finlit/internal/engine"
	"github.com/finlitapp/finlit/internal/router"
	"github.com/finlitapp/finlit/internal/screen"
	"github.com/finlitapp/finlit/internal/screens/summary"
	"github.com/finlitapp/finlit/internal/session"
	"github.com/finlitapp/finlit/internal/ui/components"
	"github.com/finlitapp/finlit/internal/ui/layout"
)

// tickMsg drives the once-a-second clock: countdown display, time limit
// checks, and noticing an auto-finalize from the session.
type tickMsg time.Time

// QuizScreen runs one quiz attempt, and doubles as the review view over
// a completed attempt.
type QuizScreen struct {
	state *appstate.State
	quiz  *content.Quiz

	// Input widgets for the question currently in focus.
	choices   components.ChoiceList
	textInput components.TextInput
	builtFor  int // question index the widgets were built for

	blocked   bool // another quiz's attempt is in progress
	exhausted bool // attempt limit reached
	finished  bool
}

var _ screen.Screen = (*QuizScreen)(nil)
var _ screen.KeyHintProvider = (*QuizScreen)(nil)

// New creates the quiz screen and starts or resumes the attempt.
func New(state *appstate.State, quiz *content.Quiz) *QuizScreen {
	s := &QuizScreen{state: state, quiz: quiz, builtFor: -1}

	sess := state.Session
	switch sess.Phase() {
	case session.PhaseIdle:
		if attemptLimitReached(state, quiz) {
			s.exhausted = true
			return s
		}
		sess.Start(quiz)
	case session.PhaseActive:
		if active := sess.Quiz(); active == nil || active.ID != quiz.ID {
			s.blocked = true
		}
	case session.PhaseCompleted:
		// Review mode entered from the summary screen.
	}

	if !s.blocked {
		s.buildInputs()
	}
	return s
}

// attemptLimitReached checks the recorded attempt count against the
// quiz's limit. Zero means unlimited.
func attemptLimitReached(state *appstate.State, quiz *content.Quiz) bool {
	if quiz.MaxAttempts <= 0 {
		return false
	}
	count, err := state.Events.CountAttempts(context.Background(), quiz.ID)
	if err != nil {
		return false
	}
	return count >= quiz.MaxAttempts
}

// NewReview creates the screen over an already-completed attempt in
// review mode.
func NewReview(state *appstate.State, quiz *content.Quiz) *QuizScreen {
	state.Session.BeginReview()
	s := &QuizScreen{state: state, quiz: quiz, builtFor: -1, finished: true}
	s.buildInputs()
	return s
}

func (s *QuizScreen) Init() tea.Cmd {
	if s.blocked || s.exhausted || s.reviewing() {
		return nil
	}
	return tick()
}

func tick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (s *QuizScreen) Title() string {
	if s.reviewing() {
		return s.quiz.Title + " — Review"
	}
	return s.quiz.Title
}

func (s *QuizScreen) reviewing() bool {
	return s.state.Session.Reviewing()
}

// buildInputs rebuilds the answer widgets for the question in focus,
// pre-filled from any recorded answer.
func (s *QuizScreen) buildInputs() {
	q := s.state.Session.CurrentQuestion()
	if q == nil {
		return
	}
	s.builtFor = s.state.Session.CurrentIndex()

	recorded, _ := s.state.Session.AnswerFor(q.ID)

	switch q.Type {
	case content.TypeSingleChoice, content.TypeBoolean, content.TypeMultiSelect:
		s.choices = components.NewChoiceList(choiceOptions(q), q.Type == content.TypeMultiSelect)
		s.choices.SetValue(recorded.Value, recorded.Values)
	case content.TypeNumeric:
		s.textInput = components.NewTextInput("Enter a number", true, 16)
		s.textInput.SetValue(recorded.Value)
	case content.TypeFreeText:
		s.textInput = components.NewTextInput("Type your answer", false, 64)
		s.textInput.SetValue(recorded.Value)
	}
}

// choiceOptions returns the options to render, synthesizing True/False
// for boolean questions authored without explicit options.
func choiceOptions(q *content.Question) []content.Option {
	if len(q.Options) > 0 {
		return q.Options
	}
	return []content.Option{
		{Value: "true", Text: "True"},
		{Value: "false", Text: "False"},
	}
}

// currentAnswer reads the widget state into an answer value.
func (s *QuizScreen) currentAnswer(q *content.Question) engine.Answer {
	switch q.Type {
	case content.TypeSingleChoice, content.TypeBoolean:
		return engine.Answer{Value: s.choices.Value()}
	case content.TypeMultiSelect:
		return engine.Answer{Values: s.choices.Values()}
	default:
		return engine.Answer{Value: s.textInput.Value()}
	}
}

func (s *QuizScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	sess := s.state.Session

	switch msg := msg.(type) {
	case tickMsg:
		if s.finished || s.blocked {
			return s, nil
		}
		// The submit countdown may have auto-finalized on its own
		// goroutine; the tick is where we notice.
		if sess.Phase() == session.PhaseCompleted {
			return s, s.finish()
		}
		if sess.TimeExpired() {
			if result := sess.Finalize(); result != nil {
				return s, s.finish()
			}
			return s, nil
		}
		return s, tick()

	case tea.KeyMsg:
		return s.handleKey(msg)
	}

	return s, nil
}

func (s *QuizScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	sess := s.state.Session

	if s.blocked || s.exhausted {
		if msg.String() == "esc" {
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		}
		return s, nil
	}

	if s.reviewing() {
		return s.handleReviewKey(msg)
	}

	// While the submit countdown runs only esc does anything.
	if _, pending := sess.SubmitPending(); pending {
		if msg.String() == "esc" {
			sess.CancelSubmit()
		}
		return s, nil
	}

	switch msg.String() {
	case "esc":
		// Leave the attempt in place; it resumes from home.
		s.state.Save(context.Background())
		return s, func() tea.Msg { return router.PopScreenMsg{} }

	case "left":
		s.recordCurrent()
		sess.Previous()
		s.buildInputs()
		return s, nil

	case "right":
		s.recordCurrent()
		sess.Next()
		s.buildInputs()
		return s, nil

	case "ctrl+f":
		sess.ToggleFlag()
		return s, nil

	case "ctrl+s":
		s.recordCurrent()
		sess.RequestSubmit()
		return s, nil

	case "enter":
		s.recordCurrent()
		if sess.CurrentIndex() == len(s.quiz.Questions)-1 {
			sess.RequestSubmit()
			return s, nil
		}
		sess.Next()
		s.buildInputs()
		return s, nil
	}

	// Everything else goes to the answer widget.
	q := sess.CurrentQuestion()
	if q == nil {
		return s, nil
	}
	var cmd tea.Cmd
	switch q.Type {
	case content.TypeSingleChoice, content.TypeBoolean, content.TypeMultiSelect:
		s.choices, cmd = s.choices.Update(msg)
	default:
		s.textInput, cmd = s.textInput.Update(msg)
	}
	return s, cmd
}

func (s *QuizScreen) handleReviewKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	sess := s.state.Session
	switch msg.String() {
	case "esc":
		sess.EndReview()
		sess.Reset()
		return s, func() tea.Msg { return router.PopScreenMsg{} }
	case "left", "h":
		sess.Previous()
		s.buildInputs()
	case "right", "l", "enter":
		sess.Next()
		s.buildInputs()
	}
	return s, nil
}

// recordCurrent captures the widget state as the current answer. An
// empty value clears the answer rather than recording a blank.
func (s *QuizScreen) recordCurrent() {
	q := s.state.Session.CurrentQuestion()
	if q == nil {
		return
	}
	ans := s.currentAnswer(q)
	if ans.Value == "" && len(ans.Values) == 0 {
		s.state.Session.ClearAnswer()
		return
	}
	s.state.Session.SubmitAnswer(ans)
}

// finish records the attempt's effects and swaps to the summary screen.
func (s *QuizScreen) finish() tea.Cmd {
	if s.finished {
		return nil
	}
	s.finished = true

	result := s.state.Session.Result()
	if result == nil {
		return func() tea.Msg { return router.PopScreenMsg{} }
	}

	// The outcome is complete even when persistence fails; the summary
	// shows it with a warning so the attempt is not silently lost.
	outcome, err := s.state.FinishAttempt(context.Background(), s.quiz, result)
	review := func() screen.Screen { return NewReview(s.state, s.quiz) }
	return func() tea.Msg {
		return router.ReplaceScreenMsg{Screen: summary.New(s.state, s.quiz, outcome, review, err)}
	}
}

func (s *QuizScreen) KeyHints() []layout.KeyHint {
	if s.blocked || s.exhausted {
		return []layout.KeyHint{{Key: "Esc", Description: "Back"}}
	}
	if s.reviewing() {
		return []layout.KeyHint{
			{Key: "←→", Description: "Question"},
			{Key: "Esc", Description: "Done"},
		}
	}
	if _, pending := s.state.Session.SubmitPending(); pending {
		return []layout.KeyHint{{Key: "Esc", Description: "Cancel submit"}}
	}
	return []layout.KeyHint{
		{Key: "←→", Description: "Question"},
		{Key: "Enter", Description: "Answer"},
		{Key: "Ctrl+F", Description: "Flag"},
		{Key: "Ctrl+S", Description: "Submit"},
		{Key: "Esc", Description: "Pause"},
	}
}

package appstate

import (
	"context"
	"fmt"
	"time"

	"github.com/finlitapp/finlit/internal/badges"
	"github.com/finlitapp/finlit/internal/content"
	"github.com/finlitapp/finlit/internal/engine"
	"github.com/finlitapp/finlit/internal/progress"
	"github.com/finlitapp/finlit/internal/session"
	"github.com/finlitapp/finlit/internal/store"
)

// snapshotKeep is how many snapshots survive pruning.
const snapshotKeep = 20

// State bundles the engine pieces the screens operate on. All mutation
// goes through the session, ledger and badge service; screens never
// touch the store directly except through FinishAttempt and Save.
type State struct {
	Quizzes   []content.Quiz
	Ledger    *progress.Ledger
	Badges    *badges.Service
	Session   *session.Session
	Events    store.EventRepo
	Snapshots store.SnapshotRepo

	lastSeq func(ctx context.Context) (int64, error)
}

// AttemptOutcome is everything a finalized attempt changed, for the
// summary screen to present.
type AttemptOutcome struct {
	Result    *engine.QuizResult
	QuizAward *progress.Award
	Streak    *progress.StreakUpdate
	NewBadges []badges.Unlock
}

// LoadState opens progression state from the store's latest snapshot and
// resumes any interrupted quiz attempt.
func LoadState(ctx context.Context, st *store.Store, quizzes []content.Quiz) (*State, error) {
	catalog, err := badges.Catalog()
	if err != nil {
		return nil, fmt.Errorf("load badge catalog: %w", err)
	}

	events := st.EventRepo()
	snapshots := st.SnapshotRepo()

	snap, err := snapshots.Latest(ctx)
	if err != nil {
		return nil, fmt.Errorf("load latest snapshot: %w", err)
	}

	state := &State{
		Quizzes:   quizzes,
		Session:   session.New(),
		Events:    events,
		Snapshots: snapshots,
		lastSeq:   st.LastSequence,
	}

	var ledgerData *store.LedgerSnapshotData
	if snap != nil {
		ledgerData = snap.Data.Ledger
	}
	state.Ledger = progress.FromSnapshot(ledgerData, events)

	state.Badges = badges.NewService(catalog, events)
	if snap != nil {
		state.Badges.Restore(snap.Data.Badges)
	}

	if snap != nil && snap.Data.Session != nil {
		if quiz := state.QuizByID(snap.Data.Session.QuizID); quiz != nil {
			state.Session.Restore(quiz, snap.Data.Session)
		}
	}

	return state, nil
}

// NewState assembles a State around already-built progression
// components, such as the result of an import.
func NewState(st *store.Store, quizzes []content.Quiz, ledger *progress.Ledger, badgeSvc *badges.Service) *State {
	return &State{
		Quizzes:   quizzes,
		Ledger:    ledger,
		Badges:    badgeSvc,
		Session:   session.New(),
		Events:    st.EventRepo(),
		Snapshots: st.SnapshotRepo(),
		lastSeq:   st.LastSequence,
	}
}

// QuizByID returns the loaded quiz with the given ID, or nil.
func (s *State) QuizByID(id string) *content.Quiz {
	for i := range s.Quizzes {
		if s.Quizzes[i].ID == id {
			return &s.Quizzes[i]
		}
	}
	return nil
}

// FinishAttempt records a finalized attempt: the quiz event, streak,
// quiz completion XP, badge evaluation, and a fresh snapshot. The first
// persistence error is reported after all in-memory state has been
// updated.
func (s *State) FinishAttempt(ctx context.Context, quiz *content.Quiz, result *engine.QuizResult) (*AttemptOutcome, error) {
	now := time.Now()
	outcome := &AttemptOutcome{Result: result}
	var firstErr error

	keep := func(err error) {
		if err != nil && firstErr == nil {
			firstErr = err
		}
	}

	keep(s.Events.AppendQuizEvent(ctx, quizEventData(result)))

	streak, err := s.Ledger.UpdateStreak(ctx, now)
	keep(err)
	outcome.Streak = streak

	award, err := s.Ledger.CompleteQuiz(ctx, result, quiz.XPReward)
	keep(err)
	outcome.QuizAward = award

	newBadges, err := s.Badges.Evaluate(ctx, s.Ledger.Metrics(), now)
	keep(err)
	outcome.NewBadges = newBadges

	keep(s.Save(ctx))
	return outcome, firstErr
}

// Save writes a snapshot of the current progression and session state
// and prunes old snapshots.
func (s *State) Save(ctx context.Context) error {
	var seq int64
	if s.lastSeq != nil {
		var err error
		seq, err = s.lastSeq(ctx)
		if err != nil {
			return fmt.Errorf("read sequence: %w", err)
		}
	}

	snap := &store.Snapshot{
		Sequence:  seq,
		Timestamp: time.Now().UTC(),
		Data: store.SnapshotData{
			Version: 1,
			Ledger:  s.Ledger.SnapshotData(),
			Badges:  s.Badges.SnapshotData(),
			Session: s.Session.SnapshotData(),
		},
	}
	if err := s.Snapshots.Save(ctx, snap); err != nil {
		return fmt.Errorf("save snapshot: %w", err)
	}
	if err := s.Snapshots.Prune(ctx, snapshotKeep); err != nil {
		return fmt.Errorf("prune snapshots: %w", err)
	}
	return nil
}

func quizEventData(result *engine.QuizResult) store.QuizEventData {
	data := store.QuizEventData{
		QuizID:         result.QuizID,
		AttemptID:      result.AttemptID,
		Score:          result.Score,
		CorrectCount:   result.CorrectCount,
		TotalQuestions: result.TotalQuestions,
		TotalPoints:    result.TotalPoints,
		MaxPoints:      result.MaxPoints,
		Passed:         result.Passed,
		TimeSpentSecs:  result.TimeSpentSeconds,
	}
	for _, qr := range result.QuestionResults {
		var value string
		var values []string
		if qr.UserAnswer != nil {
			value = qr.UserAnswer.Value
			values = qr.UserAnswer.Values
		}
		data.QuestionResults = append(data.QuestionResults, store.QuestionResultData{
			QuestionID:    qr.QuestionID,
			IsCorrect:     qr.IsCorrect,
			UserAnswer:    value,
			UserAnswerSet: values,
			PointsAwarded: qr.PointsAwarded,
		})
	}
	return data
}

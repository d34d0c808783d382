package stats

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/finlitapp/finlit/internal/appstate"
	"github.com/finlitapp/finlit/internal/badges"
	"github.com/finlitapp/finlit/internal/progress"
	"github.com/finlitapp/finlit/internal/session"
	"github.com/finlitapp/finlit/internal/store"
)

// stubEventRepo serves canned quiz history or a canned error.
type stubEventRepo struct {
	history []store.QuizEventRecord
	err     error
}

func (r *stubEventRepo) AppendQuizEvent(ctx context.Context, data store.QuizEventData) error {
	return nil
}

func (r *stubEventRepo) QueryQuizEvents(ctx context.Context, opts store.QueryOpts) ([]store.QuizEventRecord, error) {
	return r.history, r.err
}

func (r *stubEventRepo) LatestQuizEvent(ctx context.Context, quizID string) (*store.QuizEventRecord, error) {
	return nil, nil
}

func (r *stubEventRepo) CountAttempts(ctx context.Context, quizID string) (int, error) {
	return 0, nil
}

func (r *stubEventRepo) AppendXPEvent(ctx context.Context, data store.XPEventData) error {
	return nil
}

func (r *stubEventRepo) QueryXPEvents(ctx context.Context, opts store.QueryOpts) ([]store.XPEventRecord, error) {
	return nil, nil
}

func (r *stubEventRepo) AppendBadgeEvent(ctx context.Context, data store.BadgeEventData) error {
	return nil
}

func (r *stubEventRepo) QueryBadgeEvents(ctx context.Context, opts store.QueryOpts) ([]store.BadgeEventRecord, error) {
	return nil, nil
}

func statsFixture(repo *stubEventRepo) *StatsScreen {
	state := &appstate.State{
		Ledger:  progress.NewLedger(nil),
		Badges:  badges.NewService(nil, nil),
		Session: session.New(),
		Events:  repo,
	}
	return New(state)
}

func TestViewListsRecentAttempts(t *testing.T) {
	s := statsFixture(&stubEventRepo{history: []store.QuizEventRecord{{
		QuizEventData: store.QuizEventData{
			QuizID:         "budgeting-101",
			Score:          80,
			CorrectCount:   4,
			TotalQuestions: 5,
			Passed:         true,
		},
		Timestamp: time.Now(),
	}}})

	view := s.View(80, 24)
	assert.Contains(t, view, "Recent Attempts")
	assert.Contains(t, view, "budgeting-101")
	assert.NotContains(t, view, "could not load history")
}

func TestViewWarnsWhenHistoryLoadFails(t *testing.T) {
	s := statsFixture(&stubEventRepo{err: errors.New("database is locked")})

	view := s.View(80, 24)
	assert.Contains(t, view, "could not load history")
	assert.Contains(t, view, "database is locked")
}

package app

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/finlitapp/finlit/internal/appstate"
	"github.com/finlitapp/finlit/internal/badges"
	"github.com/finlitapp/finlit/internal/content"
	"github.com/finlitapp/finlit/internal/progress"
	"github.com/finlitapp/finlit/internal/session"
)

func TestNewAppModelStartsOnHome(t *testing.T) {
	state := &appstate.State{
		Quizzes: []content.Quiz{{ID: "budgeting-101", Title: "Budgeting 101"}},
		Ledger:  progress.NewLedger(nil),
		Badges:  badges.NewService(nil, nil),
		Session: session.New(),
	}

	m := newAppModel(state)

	assert.Equal(t, 1, m.router.Depth())
	assert.Equal(t, "Home", m.router.Active().Title())
}

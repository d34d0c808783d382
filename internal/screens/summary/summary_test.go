package summary

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/finlitapp/finlit/internal/appstate"
	"github.com/finlitapp/finlit/internal/content"
	"github.com/finlitapp/finlit/internal/engine"
	"github.com/finlitapp/finlit/internal/session"
)

func summaryFixture(saveErr error) *SummaryScreen {
	state := &appstate.State{Session: session.New()}
	quiz := &content.Quiz{ID: "budgeting-101", Title: "Budgeting 101", PassingScore: 70}
	outcome := &appstate.AttemptOutcome{
		Result: &engine.QuizResult{
			QuizID:         quiz.ID,
			Score:          100,
			CorrectCount:   1,
			TotalQuestions: 1,
			TotalPoints:    1,
			MaxPoints:      1,
			Passed:         true,
		},
	}
	return New(state, quiz, outcome, nil, saveErr)
}

func TestViewShowsResults(t *testing.T) {
	view := summaryFixture(nil).View(80, 24)

	assert.Contains(t, view, "Perfect score!")
	assert.NotContains(t, view, "progress may not be saved")
}

func TestViewWarnsWhenSaveFailed(t *testing.T) {
	view := summaryFixture(errors.New("save snapshot: disk full")).View(80, 24)

	// Results still render; the failure becomes a warning, not a wall.
	assert.Contains(t, view, "Perfect score!")
	assert.True(t, strings.Contains(view, "progress may not be saved") &&
		strings.Contains(view, "disk full"))
}

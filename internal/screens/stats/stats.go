package stats

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/finlitapp/finlit/internal/appstate"
	"github.com/finlitapp/finlit/internal/router"
	"github.com/finlitapp/finlit/internal/screen"
	"github.com/finlitapp/finlit/internal/store"
	"github.com/finlitapp/finlit/internal/ui/components"
	"github.com/finlitapp/finlit/internal/ui/layout"
	"github.com/finlitapp/finlit/internal/ui/theme"
)

// recentAttempts caps the history list.
const recentAttempts = 8

// StatsScreen shows progression numbers and recent quiz history.
type StatsScreen struct {
	state   *appstate.State
	history []store.QuizEventRecord
	loadErr error
}

var _ screen.Screen = (*StatsScreen)(nil)
var _ screen.KeyHintProvider = (*StatsScreen)(nil)

// New creates the stats screen and loads recent attempts.
func New(state *appstate.State) *StatsScreen {
	s := &StatsScreen{state: state}
	s.history, s.loadErr = state.Events.QueryQuizEvents(context.Background(), store.QueryOpts{
		Limit: recentAttempts,
	})
	return s
}

func (s *StatsScreen) Init() tea.Cmd {
	return nil
}

func (s *StatsScreen) Title() string {
	return "Stats"
}

func (s *StatsScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok {
		switch kmsg.String() {
		case "esc", "q":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		}
	}
	return s, nil
}

func (s *StatsScreen) View(width, height int) string {
	ledger := s.state.Ledger

	var b strings.Builder
	b.WriteString("\n")

	section := lipgloss.NewStyle().Foreground(theme.Primary).Bold(true)
	dim := lipgloss.NewStyle().Foreground(theme.TextDim)
	body := lipgloss.NewStyle().Foreground(theme.Text)
	pad := lipgloss.NewStyle().PaddingLeft(4)

	b.WriteString(pad.Render(section.Render("Progression")))
	b.WriteString("\n\n")

	level := fmt.Sprintf("Level %d  ·  %d XP  ·  next level at %d XP",
		ledger.Level(), ledger.XP(), ledger.NextThreshold())
	b.WriteString(pad.Render(body.Render(level)))
	b.WriteString("\n")

	barWidth := width - 16
	if barWidth > 48 {
		barWidth = 48
	}
	bar := components.NewProgressBar("", ledger.Progress(), true, barWidth)
	b.WriteString(pad.Render(bar.View()))
	b.WriteString("\n\n")

	counts := fmt.Sprintf("★ %d day streak  ·  %d quizzes  ·  %d modules  ·  %d tracks  ·  %d badges",
		ledger.StreakDays(),
		len(ledger.CompletedQuizzes()),
		len(ledger.CompletedModules()),
		len(ledger.CompletedTracks()),
		s.state.Badges.UnlockedCount())
	b.WriteString(pad.Render(dim.Render(counts)))
	b.WriteString("\n\n")

	b.WriteString(pad.Render(section.Render("Recent Attempts")))
	b.WriteString("\n\n")

	if s.loadErr != nil {
		b.WriteString(pad.Render(lipgloss.NewStyle().Foreground(theme.Warning).Render(
			fmt.Sprintf("⚠ could not load history: %v", s.loadErr))))
		b.WriteString("\n")
		return b.String()
	}

	if len(s.history) == 0 {
		b.WriteString(pad.Render(theme.Hint.Render("No attempts yet. Pick a quiz from the home screen.")))
		b.WriteString("\n")
		return b.String()
	}

	for _, rec := range s.history {
		b.WriteString(pad.Render(s.attemptLine(rec)))
		b.WriteString("\n")
	}

	return b.String()
}

func (s *StatsScreen) attemptLine(rec store.QuizEventRecord) string {
	title := rec.QuizID
	if quiz := s.state.QuizByID(rec.QuizID); quiz != nil {
		title = quiz.Title
	}

	mark := theme.Incorrect.Render("✗")
	if rec.Passed {
		mark = theme.Correct.Render("✓")
	}

	return fmt.Sprintf("%s %s  %s",
		mark,
		lipgloss.NewStyle().Foreground(theme.Text).Render(title),
		lipgloss.NewStyle().Foreground(theme.TextDim).Render(fmt.Sprintf(
			"%.0f%% · %d/%d correct · %s",
			rec.Score, rec.CorrectCount, rec.TotalQuestions,
			rec.Timestamp.Local().Format("Jan 2 15:04"))))
}

func (s *StatsScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{{Key: "Esc", Description: "Back"}}
}

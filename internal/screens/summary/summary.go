package summary

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/finlitapp/finlit/internal/appstate"
	"github.com/finlitapp/finlit/internal/content"
	"github.com/finlitapp/finlit/internal/router"
	"github.com/finlitapp/finlit/internal/screen"
	"github.com/finlitapp/finlit/internal/ui/layout"
	"github.com/finlitapp/finlit/internal/ui/theme"
)

// SummaryScreen presents a finalized attempt: the score, what it earned,
// and any badges it unlocked.
type SummaryScreen struct {
	state   *appstate.State
	quiz    *content.Quiz
	outcome *appstate.AttemptOutcome

	// review builds the review screen. Injected by the caller so this
	// package needs no knowledge of the quiz screen.
	review func() screen.Screen

	// saveErr is the persistence error from finishing the attempt, if
	// any. The results still show; the error becomes a warning line.
	saveErr error
}

var _ screen.Screen = (*SummaryScreen)(nil)
var _ screen.KeyHintProvider = (*SummaryScreen)(nil)

// New creates the summary screen for a finished attempt.
func New(state *appstate.State, quiz *content.Quiz, outcome *appstate.AttemptOutcome, review func() screen.Screen, saveErr error) *SummaryScreen {
	return &SummaryScreen{state: state, quiz: quiz, outcome: outcome, review: review, saveErr: saveErr}
}

func (s *SummaryScreen) Init() tea.Cmd {
	return nil
}

func (s *SummaryScreen) Title() string {
	return s.quiz.Title + " — Results"
}

func (s *SummaryScreen) canReview() bool {
	return s.quiz.AllowReview && s.review != nil && s.outcome != nil && s.outcome.Result != nil
}

func (s *SummaryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return s, nil
	}

	switch kmsg.String() {
	case "r":
		if s.canReview() {
			return s, func() tea.Msg {
				return router.ReplaceScreenMsg{Screen: s.review()}
			}
		}
	case "enter", "esc":
		s.state.Session.Reset()
		return s, func() tea.Msg { return router.PopScreenMsg{} }
	}
	return s, nil
}

func (s *SummaryScreen) View(width, height int) string {
	if s.outcome == nil || s.outcome.Result == nil {
		return ""
	}
	result := s.outcome.Result

	var b strings.Builder
	b.WriteString("\n")

	verdict := theme.Incorrect.Render("Not passed")
	if result.Passed {
		verdict = theme.Correct.Render("Passed!")
		if result.Perfect() {
			verdict = theme.Correct.Render("Perfect score!")
		}
	}
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, verdict))
	b.WriteString("\n\n")

	score := fmt.Sprintf("%.0f%%  ·  %d/%d correct  ·  %d/%d points",
		result.Score, result.CorrectCount, result.TotalQuestions,
		result.TotalPoints, result.MaxPoints)
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
		lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(score)))
	b.WriteString("\n")

	elapsed := fmt.Sprintf("took %d:%02d", result.TimeSpentSeconds/60, result.TimeSpentSeconds%60)
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
		lipgloss.NewStyle().Foreground(theme.TextDim).Render(elapsed)))
	b.WriteString("\n\n")

	for _, line := range s.earnedLines() {
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, line))
		b.WriteString("\n")
	}

	if s.saveErr != nil {
		b.WriteString("\n")
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
			lipgloss.NewStyle().Foreground(theme.Warning).Render(
				fmt.Sprintf("⚠ progress may not be saved: %v", s.saveErr))))
		b.WriteString("\n")
	}

	return b.String()
}

// earnedLines lists what the attempt changed: XP, level ups, streak and
// fresh badges. Nothing is shown for a failed attempt beyond the streak.
func (s *SummaryScreen) earnedLines() []string {
	var lines []string

	if award := s.outcome.QuizAward; award != nil {
		lines = append(lines, theme.Correct.Render(fmt.Sprintf("+%d XP", award.XP)))
		if award.LeveledUp {
			lines = append(lines, lipgloss.NewStyle().Foreground(theme.Accent).Bold(true).
				Render(fmt.Sprintf("⬆ Level %d reached", award.NewLevel)))
		}
	} else if !s.outcome.Result.Passed {
		lines = append(lines, theme.Hint.Render(
			fmt.Sprintf("Score %.0f%% or better to pass", s.quiz.PassingScore)))
	}

	if streak := s.outcome.Streak; streak != nil && streak.Extended && streak.Days > 1 {
		line := theme.Flagged.Render(fmt.Sprintf("★ %d day streak", streak.Days))
		if streak.Award != nil {
			line += theme.Correct.Render(fmt.Sprintf("  +%d XP", streak.Award.XP))
		}
		lines = append(lines, line)
	}

	for _, unlock := range s.outcome.NewBadges {
		lines = append(lines, lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true).
			Render(fmt.Sprintf("%s Badge unlocked: %s", unlock.Badge.Rarity.Icon(), unlock.Badge.Name)))
	}

	return lines
}

func (s *SummaryScreen) KeyHints() []layout.KeyHint {
	hints := []layout.KeyHint{}
	if s.canReview() {
		hints = append(hints, layout.KeyHint{Key: "R", Description: "Review answers"})
	}
	return append(hints, layout.KeyHint{Key: "Enter", Description: "Home"})
}

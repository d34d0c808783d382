package quiz

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/finlitapp/finlit/internal/content"
	"github.com/finlitapp/finlit/internal/engine"
	"github.com/finlitapp/finlit/internal/ui/theme"
)

func (s *QuizScreen) View(width, height int) string {
	if s.blocked {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.Warning).
			Render("\n\nAnother quiz is in progress.\nFinish or abandon it from the home screen first.")
	}
	if s.exhausted {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.Warning).
			Render(fmt.Sprintf("\n\nNo attempts left for this quiz (limit %d).", s.quiz.MaxAttempts))
	}

	sess := s.state.Session
	q := sess.CurrentQuestion()
	if q == nil {
		return ""
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(s.statusLine(width))
	b.WriteString("\n\n")

	prompt := lipgloss.NewStyle().Foreground(theme.Text).Bold(true).
		Width(width - 8).Render(q.Prompt)
	b.WriteString(lipgloss.NewStyle().PaddingLeft(4).Render(prompt))
	b.WriteString("\n\n")

	if s.reviewing() {
		b.WriteString(lipgloss.NewStyle().PaddingLeft(4).Render(s.reviewBody(q)))
	} else {
		b.WriteString(lipgloss.NewStyle().PaddingLeft(4).Render(s.answerBody(q)))
	}

	if remaining, pending := sess.SubmitPending(); pending {
		b.WriteString("\n\n")
		banner := theme.Flagged.Render(
			fmt.Sprintf("Submitting in %d… press Esc to keep working", remaining))
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, banner))
	}

	return b.String()
}

// statusLine shows position, answered count, flag state and the clock.
func (s *QuizScreen) statusLine(width int) string {
	sess := s.state.Session
	q := sess.CurrentQuestion()

	left := fmt.Sprintf("Question %d of %d · %d answered",
		sess.CurrentIndex()+1, len(s.quiz.Questions), sess.AnsweredCount())
	if sess.IsFlagged(q.ID) {
		left += " · " + theme.Flagged.Render("⚑ flagged")
	}

	right := ""
	if s.reviewing() {
		if result := sess.Result(); result != nil {
			right = fmt.Sprintf("Score %.0f%%", result.Score)
		}
	} else if remaining, limited := sess.Remaining(); limited {
		mins := int(remaining.Minutes())
		secs := int(remaining.Seconds()) % 60
		clock := fmt.Sprintf("⏱ %d:%02d", mins, secs)
		if remaining.Minutes() < 1 {
			right = theme.Incorrect.Render(clock)
		} else {
			right = lipgloss.NewStyle().Foreground(theme.TextDim).Render(clock)
		}
	}

	line := "    " + lipgloss.NewStyle().Foreground(theme.TextDim).Render(left)
	gap := width - lipgloss.Width(line) - lipgloss.Width(right) - 4
	if gap < 1 {
		gap = 1
	}
	return line + strings.Repeat(" ", gap) + right
}

// answerBody renders the input widget for an active attempt.
func (s *QuizScreen) answerBody(q *content.Question) string {
	switch q.Type {
	case content.TypeSingleChoice, content.TypeBoolean:
		return s.choices.View()
	case content.TypeMultiSelect:
		return s.choices.View() + "\n" + theme.Hint.Render("space toggles, several can be right")
	case content.TypeNumeric:
		return s.textInput.View() + "\n" + theme.Hint.Render(
			fmt.Sprintf("answers within ±%g count", q.EffectiveTolerance()))
	default:
		return s.textInput.View()
	}
}

// reviewBody renders the question with correctness marks and the
// explanation for the correct option.
func (s *QuizScreen) reviewBody(q *content.Question) string {
	result := s.state.Session.Result()
	qr := questionResult(result, q.ID)

	var b strings.Builder

	switch q.Type {
	case content.TypeSingleChoice, content.TypeBoolean, content.TypeMultiSelect:
		correct := make(map[string]bool)
		if len(q.AnswerSet) > 0 {
			for _, v := range q.AnswerSet {
				correct[v] = true
			}
		} else {
			correct[q.Answer] = true
		}

		chosen := make(map[string]bool)
		if qr != nil && qr.UserAnswer != nil {
			if qr.UserAnswer.Value != "" {
				chosen[qr.UserAnswer.Value] = true
			}
			for _, v := range qr.UserAnswer.Values {
				chosen[v] = true
			}
		}
		b.WriteString(s.choices.ReviewView(correct, chosen))

	default:
		user := "(no answer)"
		if qr != nil && qr.UserAnswer != nil && qr.UserAnswer.Value != "" {
			user = qr.UserAnswer.Value
		}
		if qr != nil && qr.IsCorrect {
			b.WriteString(theme.Correct.Render("✓ "+user) + "\n")
		} else {
			b.WriteString(theme.Incorrect.Render("✗ "+user) + "\n")
			b.WriteString(theme.Correct.Render("  correct: "+q.Answer) + "\n")
		}
	}

	if explanation := correctExplanation(q); explanation != "" {
		b.WriteString("\n")
		b.WriteString(theme.Hint.Render(explanation))
	}

	if qr != nil {
		b.WriteString("\n\n")
		points := fmt.Sprintf("%d points", qr.PointsAwarded)
		if qr.IsCorrect {
			b.WriteString(theme.Correct.Render(points))
		} else {
			b.WriteString(lipgloss.NewStyle().Foreground(theme.TextDim).Render(points))
		}
	}

	return b.String()
}

func questionResult(result *engine.QuizResult, questionID string) *engine.QuestionResult {
	if result == nil {
		return nil
	}
	for i := range result.QuestionResults {
		if result.QuestionResults[i].QuestionID == questionID {
			return &result.QuestionResults[i]
		}
	}
	return nil
}

func correctExplanation(q *content.Question) string {
	for _, opt := range q.Options {
		if opt.Value == q.Answer && opt.Explanation != "" {
			return opt.Explanation
		}
	}
	return ""
}

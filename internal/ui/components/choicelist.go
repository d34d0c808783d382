package components

import (
	"fmt"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/finlitapp/finlit/internal/content"
	"github.com/finlitapp/finlit/internal/ui/theme"
)

// ChoiceList renders a question's options and captures a selection.
// In multi-select mode space toggles options and several can be checked;
// otherwise moving the cursor is the selection.
type ChoiceList struct {
	Options     []content.Option
	MultiSelect bool
	Cursor      int
	checked     map[int]bool
}

// NewChoiceList creates a choice list for the given options.
func NewChoiceList(options []content.Option, multiSelect bool) ChoiceList {
	return ChoiceList{
		Options:     options,
		MultiSelect: multiSelect,
		checked:     make(map[int]bool),
	}
}

// Init returns nil.
func (c ChoiceList) Init() tea.Cmd {
	return nil
}

// Update handles cursor movement and toggling.
func (c ChoiceList) Update(msg tea.Msg) (ChoiceList, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return c, nil
	}

	switch kmsg.String() {
	case "up", "k":
		if c.Cursor > 0 {
			c.Cursor--
		}
	case "down", "j":
		if c.Cursor < len(c.Options)-1 {
			c.Cursor++
		}
	case "space", " ":
		if c.MultiSelect {
			c.checked[c.Cursor] = !c.checked[c.Cursor]
		}
	}

	return c, nil
}

// SetValue positions the cursor or checkboxes to match a stored answer.
func (c *ChoiceList) SetValue(value string, values []string) {
	if c.MultiSelect {
		c.checked = make(map[int]bool)
		for i, opt := range c.Options {
			for _, v := range values {
				if opt.Value == v {
					c.checked[i] = true
				}
			}
		}
		return
	}
	for i, opt := range c.Options {
		if opt.Value == value {
			c.Cursor = i
			return
		}
	}
}

// Value returns the selected option value (single-select mode).
func (c ChoiceList) Value() string {
	if c.Cursor < 0 || c.Cursor >= len(c.Options) {
		return ""
	}
	return c.Options[c.Cursor].Value
}

// Values returns the checked option values (multi-select mode).
func (c ChoiceList) Values() []string {
	var out []string
	for i, opt := range c.Options {
		if c.checked[i] {
			out = append(out, opt.Value)
		}
	}
	return out
}

// View renders the options.
func (c ChoiceList) View() string {
	var s string
	for i, opt := range c.Options {
		cursor := "  "
		if i == c.Cursor {
			cursor = "▸ "
		}

		marker := ""
		if c.MultiSelect {
			if c.checked[i] {
				marker = "[x] "
			} else {
				marker = "[ ] "
			}
		}

		line := fmt.Sprintf("%s%s%s", cursor, marker, opt.Text)
		if i == c.Cursor {
			s += lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render(line) + "\n"
		} else if c.MultiSelect && c.checked[i] {
			s += lipgloss.NewStyle().Foreground(theme.Secondary).Render(line) + "\n"
		} else {
			s += lipgloss.NewStyle().Foreground(theme.Text).Render(line) + "\n"
		}
	}
	return s
}

// ReviewView renders the options with correctness marks for review mode.
// Correct options show green, wrongly chosen ones red.
func (c ChoiceList) ReviewView(correct map[string]bool, chosen map[string]bool) string {
	var s string
	for _, opt := range c.Options {
		line := "  " + opt.Text
		switch {
		case correct[opt.Value] && chosen[opt.Value]:
			s += theme.Correct.Render("✓"+line) + "\n"
		case correct[opt.Value]:
			s += theme.Correct.Render("•"+line) + "\n"
		case chosen[opt.Value]:
			s += theme.Incorrect.Render("✗"+line) + "\n"
		default:
			s += lipgloss.NewStyle().Foreground(theme.TextDim).Render(" "+line) + "\n"
		}
	}
	return s
}

package badgevault

import (
	"fmt"
	"image/color"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/finlitapp/finlit/internal/appstate"
	"github.com/finlitapp/finlit/internal/badges"
	"github.com/finlitapp/finlit/internal/router"
	"github.com/finlitapp/finlit/internal/screen"
	"github.com/finlitapp/finlit/internal/ui/layout"
	"github.com/finlitapp/finlit/internal/ui/theme"
)

// BadgeVaultScreen displays the badge catalog with unlock state.
type BadgeVaultScreen struct {
	state        *appstate.State
	scrollOffset int
}

var _ screen.Screen = (*BadgeVaultScreen)(nil)
var _ screen.KeyHintProvider = (*BadgeVaultScreen)(nil)

// New creates a new BadgeVaultScreen.
func New(state *appstate.State) *BadgeVaultScreen {
	return &BadgeVaultScreen{state: state}
}

func (s *BadgeVaultScreen) Init() tea.Cmd {
	return nil
}

func (s *BadgeVaultScreen) Title() string {
	return "Badge Vault"
}

func (s *BadgeVaultScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Scroll"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *BadgeVaultScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return s, nil
	}

	switch kmsg.String() {
	case "esc":
		return s, func() tea.Msg { return router.PopScreenMsg{} }
	case "up", "k":
		if s.scrollOffset > 0 {
			s.scrollOffset--
		}
	case "down", "j":
		if s.scrollOffset < len(s.state.Badges.Catalog())-1 {
			s.scrollOffset++
		}
	}
	return s, nil
}

func (s *BadgeVaultScreen) View(width, height int) string {
	catalog := s.state.Badges.Catalog()

	var b strings.Builder

	b.WriteString(lipgloss.NewStyle().
		Width(width).Align(lipgloss.Center).Foreground(theme.Text).
		Render(fmt.Sprintf("\nUnlocked: %d of %d\n", s.state.Badges.UnlockedCount(), len(catalog))))
	b.WriteString("\n")

	divider := lipgloss.NewStyle().Foreground(theme.Border).Render(
		strings.Repeat("─", min(width-8, 72)))
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, divider))
	b.WriteString("\n\n")

	unlockedAt := make(map[string]string)
	for _, u := range s.state.Badges.Unlocked() {
		unlockedAt[u.Badge.ID] = u.UnlockedAt.Format("Jan 02, 2006")
	}

	maxVisible := (height - 8) / 2
	if maxVisible < 3 {
		maxVisible = 3
	}
	start := s.scrollOffset
	if start > len(catalog)-1 {
		start = len(catalog) - 1
	}
	end := start + maxVisible
	if end > len(catalog) {
		end = len(catalog)
	}

	metrics := s.state.Ledger.Metrics()

	for i := start; i < end; i++ {
		badge := catalog[i]
		date, unlocked := unlockedAt[badge.ID]

		var title, detail string
		if unlocked {
			style := lipgloss.NewStyle().Foreground(rarityColor(badge.Rarity)).Bold(true)
			title = fmt.Sprintf("%s %s  %s", badge.Rarity.Icon(), style.Render(badge.Name),
				lipgloss.NewStyle().Foreground(theme.TextDim).Render(date))
			detail = lipgloss.NewStyle().Foreground(theme.TextDim).Render("   " + badge.Description)
		} else {
			title = lipgloss.NewStyle().Foreground(theme.TextDim).
				Render(fmt.Sprintf("🔒 %s  (%s)", badge.Name, badge.Rarity.DisplayName()))
			detail = theme.Hint.Render(fmt.Sprintf("   %s — %d/%d",
				badge.Description, metricValue(metrics, badge.Condition.Type), badge.Condition.Target))
		}

		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
			lipgloss.NewStyle().Width(min(width-8, 72)).Render(title+"\n"+detail)))
		b.WriteString("\n")
	}

	if end < len(catalog) {
		b.WriteString(lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).
			Render(fmt.Sprintf("... %d more", len(catalog)-end)))
	}

	return b.String()
}

func metricValue(m badges.Metrics, t badges.ConditionType) int {
	switch t {
	case badges.ConditionModulesCompleted:
		return m.ModulesCompleted
	case badges.ConditionXPEarned:
		return m.XP
	case badges.ConditionStreakDays:
		return m.StreakDays
	default:
		return 0
	}
}

func rarityColor(r badges.Rarity) color.Color {
	switch r {
	case badges.RarityCommon:
		return theme.Text
	case badges.RarityRare:
		return theme.Secondary
	case badges.RarityEpic:
		return theme.Primary
	case badges.RarityLegendary:
		return theme.Accent
	default:
		return theme.TextDim
	}
}

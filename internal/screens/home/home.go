package home

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/finlitapp/finlit/internal/appstate"
	"github.com/finlitapp/finlit/internal/router"
	"github.com/finlitapp/finlit/internal/screen"
	"github.com/finlitapp/finlit/internal/screens/badgevault"
	quizscreen "github.com/finlitapp/finlit/internal/screens/quiz"
	"github.com/finlitapp/finlit/internal/screens/stats"
	"github.com/finlitapp/finlit/internal/session"
	"github.com/finlitapp/finlit/internal/ui/components"
	"github.com/finlitapp/finlit/internal/ui/theme"
)

// HomeScreen is the main menu: the quiz catalog plus entries for stats
// and the badge vault.
type HomeScreen struct {
	state *appstate.State
	menu  components.Menu
}

var _ screen.Screen = (*HomeScreen)(nil)

// New creates a new HomeScreen.
func New(state *appstate.State) *HomeScreen {
	s := &HomeScreen{state: state}
	s.menu = components.NewMenu(s.buildMenu())
	return s
}

func (s *HomeScreen) buildMenu() []components.MenuItem {
	var items []components.MenuItem

	for i := range s.state.Quizzes {
		quiz := &s.state.Quizzes[i]
		detail := fmt.Sprintf("%s · %d questions", quiz.Topic, len(quiz.Questions))
		if s.state.Ledger.HasCompletedQuiz(quiz.ID) {
			detail += " · ✓ passed"
		}
		items = append(items, components.MenuItem{
			Label:  quiz.Title,
			Detail: detail,
			Action: func() tea.Cmd {
				return func() tea.Msg {
					return router.PushScreenMsg{Screen: quizscreen.New(s.state, quiz)}
				}
			},
		})
	}

	items = append(items,
		components.MenuItem{
			Label: "Stats",
			Action: func() tea.Cmd {
				return func() tea.Msg {
					return router.PushScreenMsg{Screen: stats.New(s.state)}
				}
			},
		},
		components.MenuItem{
			Label: "Badge Vault",
			Action: func() tea.Cmd {
				return func() tea.Msg {
					return router.PushScreenMsg{Screen: badgevault.New(s.state)}
				}
			},
		},
	)
	return items
}

func (s *HomeScreen) Init() tea.Cmd {
	return nil
}

func (s *HomeScreen) Title() string {
	return "Home"
}

func (s *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	// Rebuild details when we land back here after a quiz.
	if _, ok := msg.(tea.KeyMsg); ok {
		selected := s.menu.Selected
		s.menu.Items = s.buildMenu()
		s.menu.Selected = selected
	}

	var cmd tea.Cmd
	s.menu, cmd = s.menu.Update(msg)
	return s, cmd
}

func (s *HomeScreen) View(width, height int) string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(theme.Title.Width(width).Render("Personal Finance, One Quiz at a Time"))
	b.WriteString("\n")

	resumed := ""
	if s.state.Session.Phase() == session.PhaseActive {
		if quiz := s.state.Session.Quiz(); quiz != nil {
			resumed = fmt.Sprintf("An attempt of %q is in progress — open it to resume.", quiz.Title)
		}
	}
	if resumed != "" {
		b.WriteString(theme.Subtitle.Width(width).Render(resumed))
	}
	b.WriteString("\n\n")

	menu := s.menu.View()
	b.WriteString(lipgloss.NewStyle().PaddingLeft(4).Render(menu))

	return b.String()
}

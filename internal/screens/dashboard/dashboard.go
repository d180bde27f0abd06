package dashboard

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/skillnav/internal/screen"
	"github.com/abhisek/skillnav/internal/ui/components"
	"github.com/abhisek/skillnav/internal/ui/layout"
	"github.com/abhisek/skillnav/internal/ui/theme"
)

const dateLayout = "2 Jan 2006"

// DashboardScreen lists the user's saved pathways.
type DashboardScreen struct {
	env  *screen.Env
	menu components.Menu
}

var _ screen.Screen = (*DashboardScreen)(nil)
var _ screen.KeyHintProvider = (*DashboardScreen)(nil)

// New creates a DashboardScreen for the signed-in user.
func New(env *screen.Env) *DashboardScreen {
	s := &DashboardScreen{env: env}

	items := []components.MenuItem{{
		Label: "✚ " + env.T("dashboard.generateNew"),
		Action: func() tea.Cmd {
			env.Ctrl.StartNewPathway()
			return screen.Sync
		},
	}}

	if u := env.Ctrl.User(); u != nil {
		for i := range u.SavedPathways {
			p := &u.SavedPathways[i]
			detail := ""
			if created := p.Created(); !created.IsZero() {
				detail = env.T("dashboard.savedOn") + " " + created.Local().Format(dateLayout)
			}
			items = append(items, components.MenuItem{
				Label:  p.Title,
				Detail: detail,
				Action: func() tea.Cmd {
					env.Ctrl.ViewPathway(p)
					return screen.Sync
				},
			})
		}
	}
	s.menu = components.NewMenu(items)
	return s
}

func (s *DashboardScreen) Init() tea.Cmd {
	return nil
}

func (s *DashboardScreen) Title() string {
	return s.env.T("header.welcome")
}

func (s *DashboardScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: s.env.T("app.keys.navigate")},
		{Key: "Enter", Description: s.env.T("app.keys.select")},
	}
}

func (s *DashboardScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	s.menu, cmd = s.menu.Update(msg)
	return s, cmd
}

func (s *DashboardScreen) View(width, height int) string {
	cw := components.ContentWidth(width)
	name := ""
	if u := s.env.Ctrl.User(); u != nil {
		name = u.Name
	}

	parts := []string{
		theme.Title.Render(s.env.T("dashboard.welcome") + ", " + name + "!"),
		theme.Subtitle.Render(s.env.T("dashboard.subtitle")),
		"",
	}
	// Header, subtitle and card chrome take roughly eight rows.
	s.menu.Height = max(height-10, 3)
	body := s.menu.View()
	if len(s.menu.Items) == 1 {
		body += "\n" + theme.Heading.Render(s.env.T("dashboard.noSavedPathways.title")) + "\n" +
			theme.Hint.Render(s.env.T("dashboard.noSavedPathways.subtitle"))
	}
	parts = append(parts, strings.TrimRight(body, "\n"))

	card := components.Card(strings.Join(parts, "\n"), cw)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Top, card)
}

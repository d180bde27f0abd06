package loading

import (
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/skillnav/internal/navigator"
	"github.com/abhisek/skillnav/internal/screen"
	"github.com/abhisek/skillnav/internal/ui/layout"
	"github.com/abhisek/skillnav/internal/ui/theme"
)

const tickInterval = 120 * time.Millisecond

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

type tickMsg time.Time

// LoadingScreen is shown while startup or pathway generation is pending.
type LoadingScreen struct {
	env       *screen.Env
	purpose   navigator.LoadingPurpose
	tickCount int
}

var _ screen.Screen = (*LoadingScreen)(nil)
var _ screen.KeyHintProvider = (*LoadingScreen)(nil)

// New creates a LoadingScreen.
func New(env *screen.Env, purpose navigator.LoadingPurpose) *LoadingScreen {
	return &LoadingScreen{env: env, purpose: purpose}
}

func tick() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (s *LoadingScreen) Init() tea.Cmd {
	return tick()
}

func (s *LoadingScreen) Title() string {
	return ""
}

func (s *LoadingScreen) KeyHints() []layout.KeyHint {
	return nil
}

func (s *LoadingScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if _, ok := msg.(tickMsg); ok {
		s.tickCount++
		return s, tick()
	}
	return s, nil
}

func (s *LoadingScreen) View(width, height int) string {
	sections := []string{RenderBanner(width), ""}

	frame := spinnerFrames[s.tickCount%len(spinnerFrames)]
	spin := lipgloss.NewStyle().Foreground(theme.Accent).Render(frame)

	if s.purpose == navigator.LoadingPathway {
		sections = append(sections,
			spin+" "+theme.Heading.Render(s.env.T("app.loading.title")),
			"",
			lipgloss.NewStyle().Width(min(width-4, 70)).Align(lipgloss.Center).
				Foreground(theme.TextDim).Render(s.env.T("app.loading.subtitle")),
		)
	} else {
		sections = append(sections, spin)
	}

	content := lipgloss.NewStyle().Align(lipgloss.Center).Render(strings.Join(sections, "\n"))
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}

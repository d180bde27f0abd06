package feedback

import (
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/skillnav/internal/router"
	"github.com/abhisek/skillnav/internal/screen"
	"github.com/abhisek/skillnav/internal/ui/components"
	"github.com/abhisek/skillnav/internal/ui/layout"
	"github.com/abhisek/skillnav/internal/ui/theme"
)

// FeedbackScreen is the modal that collects a comment on the displayed
// pathway.
type FeedbackScreen struct {
	env       *screen.Env
	input     components.TextInput
	submitted bool
}

var _ screen.Screen = (*FeedbackScreen)(nil)
var _ screen.KeyHintProvider = (*FeedbackScreen)(nil)

// New creates a FeedbackScreen.
func New(env *screen.Env) *FeedbackScreen {
	return &FeedbackScreen{
		env:   env,
		input: components.NewTextInput(env.T("feedbackModal.subtitle"), env.T("feedbackModal.placeholder"), 2000),
	}
}

func (s *FeedbackScreen) Init() tea.Cmd {
	return s.input.Focus()
}

func (s *FeedbackScreen) Title() string {
	return s.env.T("feedbackModal.title")
}

func (s *FeedbackScreen) KeyHints() []layout.KeyHint {
	if s.submitted {
		return []layout.KeyHint{{Key: "Enter", Description: s.env.T("feedbackModal.close")}}
	}
	return []layout.KeyHint{
		{Key: "Enter", Description: s.env.T("feedbackModal.submit")},
		{Key: "Esc", Description: s.env.T("feedbackModal.cancel")},
	}
}

func (s *FeedbackScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	pop := func() tea.Msg { return router.PopScreenMsg{} }

	if k, ok := msg.(tea.KeyPressMsg); ok {
		if s.submitted {
			if k.String() == "enter" {
				return s, pop
			}
			return s, nil
		}
		if k.String() == "enter" {
			if s.env.Ctrl.SubmitFeedback(s.env.Ctx, s.input.Value()) {
				s.submitted = true
				s.input.Blur()
			}
			return s, screen.Sync
		}
	}
	if s.submitted {
		return s, nil
	}

	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return s, cmd
}

func (s *FeedbackScreen) View(width, height int) string {
	cw := min(components.ContentWidth(width), 64)
	var parts []string
	if s.submitted {
		parts = []string{
			theme.SuccessText.Render(s.env.T("feedbackModal.submitted.title")),
			"",
			theme.Body.Render(s.env.T("feedbackModal.submitted.message")),
		}
	} else {
		parts = []string{
			theme.Title.Render(s.env.T("feedbackModal.title")),
			"",
			s.input.View(),
		}
	}
	return components.Modal(strings.Join(parts, "\n"), cw, width, height)
}

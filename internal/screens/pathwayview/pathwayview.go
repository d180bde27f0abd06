// Package pathwayview shows a generated, saved or shared pathway.
package pathwayview

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/skillnav/internal/pathway"
	"github.com/abhisek/skillnav/internal/router"
	"github.com/abhisek/skillnav/internal/screen"
	"github.com/abhisek/skillnav/internal/screens/feedback"
	"github.com/abhisek/skillnav/internal/ui/components"
	"github.com/abhisek/skillnav/internal/ui/layout"
	"github.com/abhisek/skillnav/internal/ui/theme"
)

// PathwayScreen renders one pathway. A public screen shows a shared
// pathway to a visitor, so only sharing, feedback, download and starting
// one's own pathway are offered.
type PathwayScreen struct {
	env    *screen.Env
	p      *pathway.Pathway
	public bool
	pager  components.Pager
}

var _ screen.Screen = (*PathwayScreen)(nil)
var _ screen.KeyHintProvider = (*PathwayScreen)(nil)

// New creates a PathwayScreen for the signed-in flow.
func New(env *screen.Env, p *pathway.Pathway) *PathwayScreen {
	return &PathwayScreen{env: env, p: p}
}

// NewPublic creates a PathwayScreen for a shared pathway.
func NewPublic(env *screen.Env, p *pathway.Pathway) *PathwayScreen {
	return &PathwayScreen{env: env, p: p, public: true}
}

func (s *PathwayScreen) Init() tea.Cmd {
	return nil
}

func (s *PathwayScreen) Title() string {
	if s.public {
		return s.env.T("app.shared.title")
	}
	return s.env.T("pathwayGraph.title")
}

func (s *PathwayScreen) KeyHints() []layout.KeyHint {
	t := s.env.T
	hints := []layout.KeyHint{{Key: "↑↓", Description: t("app.keys.navigate")}}
	if s.public {
		return append(hints,
			layout.KeyHint{Key: "x", Description: t("pathwayDisplay.share")},
			layout.KeyHint{Key: "f", Description: t("pathwayDisplay.provideFeedback")},
			layout.KeyHint{Key: "d", Description: t("pathwayDisplay.downloadPathway")},
			layout.KeyHint{Key: "n", Description: t("app.shared.startYourOwn")},
		)
	}
	return append(hints,
		layout.KeyHint{Key: "s", Description: t("pathwayDisplay.savePathway")},
		layout.KeyHint{Key: "x", Description: t("pathwayDisplay.share")},
		layout.KeyHint{Key: "p", Description: t("pathwayDisplay.prepareForExams")},
		layout.KeyHint{Key: "f", Description: t("pathwayDisplay.provideFeedback")},
		layout.KeyHint{Key: "d", Description: t("pathwayDisplay.downloadPathway")},
		layout.KeyHint{Key: "e", Description: t("pathwayDisplay.backToForm")},
		layout.KeyHint{Key: "b", Description: t("app.keys.home")},
	)
}

func (s *PathwayScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if s.pager.Update(msg) {
		return s, nil
	}
	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return s, nil
	}

	ctrl := s.env.Ctrl
	switch kmsg.String() {
	case "x":
		if link, ok := ctrl.SharePathway(s.env.Ctx); ok {
			return s, tea.Batch(tea.SetClipboard(link), screen.Sync)
		}
		return s, screen.Sync
	case "f":
		overlay := feedback.New(s.env)
		return s, func() tea.Msg { return router.PushScreenMsg{Screen: overlay} }
	case "d":
		ctrl.ExportPathway(s.env.ExportDir)
		return s, screen.Sync
	case "n":
		ctrl.StartNewPathway()
		return s, screen.Sync
	}
	if s.public {
		return s, nil
	}

	switch kmsg.String() {
	case "s":
		ctrl.SavePathway(s.env.Ctx)
	case "p":
		ctrl.PrepareForExams()
	case "e":
		ctrl.EditPathwayInputs()
	case "b":
		ctrl.BackToDashboard()
	default:
		return s, nil
	}
	return s, screen.Sync
}

func (s *PathwayScreen) View(width, height int) string {
	cw := components.ContentWidth(width)

	var top []string
	if !s.public && s.env.Ctrl.IsSaved() {
		top = append(top, theme.SuccessText.Render("✓ "+s.env.T("app.alert.pathwaySaved")))
	}

	lines := components.RenderMarkdown(pathway.Markdown(s.p, s.env.T), cw)
	body := s.pager.View(lines, max(height-len(top), 1))
	content := strings.Join(append(top, body), "\n")
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Top, content)
}

package form

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/skillnav/internal/i18n"
	"github.com/abhisek/skillnav/internal/navigator"
	"github.com/abhisek/skillnav/internal/pathway"
	"github.com/abhisek/skillnav/internal/screen"
	"github.com/abhisek/skillnav/internal/ui/components"
	"github.com/abhisek/skillnav/internal/ui/layout"
	"github.com/abhisek/skillnav/internal/ui/theme"
)

type controlKind int

const (
	kindSelect controlKind = iota
	kindSkills
	kindInput
	kindButton
)

// control is one focusable row of a form step.
type control struct {
	kind    controlKind
	label   string
	field   navigator.Field
	options []string
	group   string // option label group, "" for untranslated options
	input   *components.TextInput
	action  func() tea.Cmd
}

// FormScreen is the two-step learner profile form.
type FormScreen struct {
	env    *screen.Env
	steps  [navigator.FormSteps][]control
	focus  int
	skills components.Checklist
}

var _ screen.Screen = (*FormScreen)(nil)
var _ screen.KeyHintProvider = (*FormScreen)(nil)

// New creates a FormScreen seeded from the controller's draft profile.
func New(env *screen.Env) *FormScreen {
	s := &FormScreen{env: env}
	profile := env.Ctrl.Profile()

	aspiration := components.NewTextInput(env.T("form.step2.careerAspiration.label"), env.T("form.step2.careerAspiration.placeholder"), 120)
	aspiration.SetValue(profile.CareerAspiration)
	location := components.NewTextInput(env.T("form.step2.preferredLocation.label"), env.T("form.step2.preferredLocation.placeholder"), 120)
	location.SetValue(profile.PreferredLocation)

	var languageCodes []string
	for _, l := range i18n.Languages() {
		languageCodes = append(languageCodes, l.Code)
	}

	s.steps[0] = []control{
		{kind: kindSelect, label: env.T("form.step1.academicBackground.label"), field: navigator.FieldAcademicBackground,
			options: pathway.AcademicBackgrounds, group: pathway.GroupAcademicBackgrounds},
		{kind: kindSkills, label: env.T("form.step1.priorSkills.label")},
		{kind: kindButton, label: env.T("common.next"), action: func() tea.Cmd {
			env.Ctrl.NextStep()
			return s.setFocus(0)
		}},
	}
	s.steps[1] = []control{
		{kind: kindInput, field: navigator.FieldCareerAspiration, input: &aspiration,
			options: pathway.CareerAspirations, group: pathway.GroupCareerAspirations},
		{kind: kindInput, field: navigator.FieldPreferredLocation, input: &location},
		{kind: kindSelect, label: env.T("form.step2.learningPace.label"), field: navigator.FieldLearningPace,
			options: pathway.LearningPaceOptions, group: pathway.GroupLearningPace},
		{kind: kindSelect, label: env.T("form.step2.preferredLanguage.label"), field: navigator.FieldPreferredLanguage,
			options: languageCodes},
		{kind: kindButton, label: env.T("common.back"), action: func() tea.Cmd {
			env.Ctrl.PrevStep()
			return s.setFocus(0)
		}},
		{kind: kindButton, label: env.T("form.step2.generatePathway"), action: env.Submit},
	}

	labels := make([]string, len(pathway.CommonSkills))
	for i, skill := range pathway.CommonSkills {
		labels[i] = env.Option(pathway.GroupCommonSkills, skill)
	}
	s.skills = components.Checklist{
		Options: pathway.CommonSkills,
		Labels:  labels,
		Checked: func(skill string) bool {
			return env.Ctrl.Profile().HasSkill(skill)
		},
		OnToggle: env.Ctrl.ToggleSkill,
	}
	return s
}

func (s *FormScreen) controls() []control {
	return s.steps[s.env.Ctrl.Step()-1]
}

func (s *FormScreen) setFocus(i int) tea.Cmd {
	cs := s.controls()
	n := len(cs)
	s.focus = ((i % n) + n) % n
	var cmd tea.Cmd
	for j, c := range cs {
		if c.input == nil {
			continue
		}
		if j == s.focus {
			cmd = c.input.Focus()
		} else {
			c.input.Blur()
		}
	}
	return cmd
}

func (s *FormScreen) Init() tea.Cmd {
	return s.setFocus(0)
}

func (s *FormScreen) Title() string {
	return s.env.T("form.title")
}

func (s *FormScreen) KeyHints() []layout.KeyHint {
	hints := []layout.KeyHint{
		{Key: "Tab", Description: s.env.T("app.keys.nextField")},
	}
	switch s.controls()[s.focus].kind {
	case kindSelect:
		hints = append(hints, layout.KeyHint{Key: "←→", Description: s.env.T("app.keys.select")})
	case kindSkills:
		hints = append(hints,
			layout.KeyHint{Key: "↑↓", Description: s.env.T("app.keys.navigate")},
			layout.KeyHint{Key: "Space", Description: s.env.T("app.keys.toggle")})
	case kindInput:
		if len(s.controls()[s.focus].options) > 0 {
			hints = append(hints, layout.KeyHint{Key: "↑↓", Description: s.env.T("app.keys.select")})
		}
	case kindButton:
		hints = append(hints, layout.KeyHint{Key: "Enter", Description: s.env.T("app.keys.select")})
	}
	return hints
}

func (s *FormScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, isKey := msg.(tea.KeyPressMsg)
	c := s.controls()[s.focus]

	if isKey {
		switch kmsg.String() {
		case "tab":
			return s, s.setFocus(s.focus + 1)
		case "shift+tab":
			return s, s.setFocus(s.focus - 1)
		case "enter":
			if c.action != nil {
				return s, c.action()
			}
			return s, s.setFocus(s.focus + 1)
		}

		switch c.kind {
		case kindSelect:
			switch kmsg.String() {
			case "left", "h":
				s.cycle(c, -1)
			case "right", "l", "space":
				s.cycle(c, 1)
			case "up":
				return s, s.setFocus(s.focus - 1)
			case "down":
				return s, s.setFocus(s.focus + 1)
			}
			return s, nil
		case kindSkills:
			s.skills = s.skills.Update(msg)
			return s, nil
		case kindInput:
			if len(c.options) > 0 && (kmsg.String() == "up" || kmsg.String() == "down") {
				s.suggest(c, kmsg.String() == "down")
				return s, nil
			}
		case kindButton:
			switch kmsg.String() {
			case "up", "left":
				return s, s.setFocus(s.focus - 1)
			case "down", "right":
				return s, s.setFocus(s.focus + 1)
			}
			return s, nil
		}
	}

	if c.input == nil {
		return s, nil
	}
	updated, cmd := c.input.Update(msg)
	*c.input = updated
	s.env.Ctrl.SetProfileField(c.field, updated.Value())
	return s, cmd
}

func fieldValue(p navigator.LearnerProfile, f navigator.Field) string {
	switch f {
	case navigator.FieldAcademicBackground:
		return p.AcademicBackground
	case navigator.FieldPreferredLocation:
		return p.PreferredLocation
	case navigator.FieldLearningPace:
		return p.LearningPace
	case navigator.FieldCareerAspiration:
		return p.CareerAspiration
	case navigator.FieldPreferredLanguage:
		return p.PreferredLanguage
	}
	return ""
}

func indexOf(options []string, v string) int {
	for i, o := range options {
		if o == v {
			return i
		}
	}
	return -1
}

func (s *FormScreen) cycle(c control, delta int) {
	n := len(c.options)
	i := indexOf(c.options, fieldValue(s.env.Ctrl.Profile(), c.field))
	next := ((i+delta)%n + n) % n
	if i < 0 && delta < 0 {
		next = n - 1
	}
	s.env.Ctrl.SetProfileField(c.field, c.options[next])
}

// suggest steps the free-text input through its suggestion list.
func (s *FormScreen) suggest(c control, forward bool) {
	delta := 1
	if !forward {
		delta = -1
	}
	s.cycle(c, delta)
	c.input.SetValue(fieldValue(s.env.Ctrl.Profile(), c.field))
	c.input.Model.CursorEnd()
}

func (s *FormScreen) optionLabel(c control, v string) string {
	switch {
	case c.field == navigator.FieldPreferredLanguage:
		return i18n.LanguageLabel(v)
	case c.group != "":
		return s.env.Option(c.group, v)
	}
	return v
}

func (s *FormScreen) View(width, height int) string {
	cw := components.ContentWidth(width)
	step := s.env.Ctrl.Step()
	profile := s.env.Ctrl.Profile()

	parts := []string{
		theme.Title.Render(s.env.T("form.title")),
		theme.Subtitle.Render(s.env.T("form.subtitle")),
		components.StepIndicator(s.env.T(fmt.Sprintf("form.step%d.title", step)), step, navigator.FormSteps, cw-4),
		"",
	}
	if v, ok := s.env.Ctrl.View().(navigator.FormView); ok && v.Error != "" {
		parts = append(parts, components.ErrorLine(v.Error), "")
	}

	// Rows left for the skills list once the surrounding controls are drawn.
	s.skills.Height = max(height-18, 4)

	var buttons []string
	for i, c := range s.controls() {
		focused := i == s.focus
		switch c.kind {
		case kindSelect:
			label := theme.Label.Render(c.label)
			if focused {
				label = theme.Selected.Render(c.label)
			}
			value := "‹ " + s.optionLabel(c, fieldValue(profile, c.field)) + " ›"
			parts = append(parts, label, theme.Body.Render(value), "")
		case kindSkills:
			label := theme.Label.Render(c.label)
			if focused {
				label = theme.Selected.Render(c.label)
			}
			parts = append(parts, label, theme.Hint.Render(s.env.T("form.step1.priorSkills.helper")),
				strings.TrimRight(s.skills.View(focused), "\n"), "")
		case kindInput:
			parts = append(parts, c.input.View(), "")
		case kindButton:
			buttons = append(buttons, components.Button(c.label, focused))
		}
	}
	var row []string
	for i, b := range buttons {
		if i > 0 {
			row = append(row, "  ")
		}
		row = append(row, b)
	}
	parts = append(parts, lipgloss.JoinHorizontal(lipgloss.Center, row...))

	card := components.Card(strings.Join(parts, "\n"), cw)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Top, card)
}

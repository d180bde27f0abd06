package examhub

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/skillnav/internal/exam"
	"github.com/abhisek/skillnav/internal/navigator"
	"github.com/abhisek/skillnav/internal/screen"
	"github.com/abhisek/skillnav/internal/ui/components"
	"github.com/abhisek/skillnav/internal/ui/layout"
	"github.com/abhisek/skillnav/internal/ui/theme"
)

// ExamHubScreen picks a competitive exam, requests a study plan and lets
// the learner mark priority items.
type ExamHubScreen struct {
	env    *screen.Env
	menu   components.Menu
	cursor int // over study steps, then practice questions
	pager  components.Pager
}

var _ screen.Screen = (*ExamHubScreen)(nil)
var _ screen.KeyHintProvider = (*ExamHubScreen)(nil)

// New creates an ExamHubScreen for the hub the controller just opened.
func New(env *screen.Env) *ExamHubScreen {
	s := &ExamHubScreen{env: env}
	hub := s.hub()
	var items []components.MenuItem
	if hub != nil {
		for i, e := range hub.Suggested {
			detail := ""
			if i == 0 {
				detail = "★"
			}
			items = append(items, components.MenuItem{
				Label:  env.Option(exam.OptionGroup, e.Key),
				Detail: detail,
				Action: func() tea.Cmd {
					env.Ctrl.SelectExam(e.Key)
					return env.PlanExam()
				},
			})
		}
	}
	s.menu = components.NewMenu(items)
	return s
}

func (s *ExamHubScreen) hub() *navigator.ExamHub {
	if v, ok := s.env.Ctrl.View().(navigator.ExamHubView); ok {
		return v.Hub
	}
	return nil
}

func (s *ExamHubScreen) Init() tea.Cmd {
	return nil
}

func (s *ExamHubScreen) Title() string {
	return s.env.T("examHub.title")
}

func (s *ExamHubScreen) KeyHints() []layout.KeyHint {
	t := s.env.T
	hub := s.hub()
	if hub == nil || hub.Plan == nil {
		return []layout.KeyHint{
			{Key: "↑↓", Description: t("app.keys.navigate")},
			{Key: "Enter", Description: t("examHub.form.button")},
			{Key: "b", Description: t("examHub.backToPathway")},
		}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: t("app.keys.navigate")},
		{Key: "Space", Description: t("app.keys.toggle")},
		{Key: "v", Description: t("examHub.showPriorityOnly")},
		{Key: "d", Description: t("examHub.downloadPlan")},
		{Key: "r", Description: t("examHub.form.title")},
		{Key: "b", Description: t("examHub.backToPathway")},
	}
}

func (s *ExamHubScreen) itemCount(p *exam.Plan) int {
	return len(p.StudyPlan) + len(p.PracticeQuestions)
}

func (s *ExamHubScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return s, nil
	}
	hub := s.hub()
	if hub == nil {
		return s, nil
	}

	if kmsg.String() == "b" {
		s.env.Ctrl.BackToPathway()
		return s, screen.Sync
	}
	if hub.Generating {
		return s, nil
	}

	if hub.Plan == nil {
		var cmd tea.Cmd
		s.menu, cmd = s.menu.Update(msg)
		return s, cmd
	}

	switch kmsg.String() {
	case "up", "k":
		s.cursor = max(s.cursor-1, 0)
	case "down", "j":
		s.cursor = min(s.cursor+1, s.itemCount(hub.Plan)-1)
	case "space", "enter":
		if hub.PriorityOnly {
			return s, nil
		}
		if s.cursor < len(hub.Plan.StudyPlan) {
			s.env.Ctrl.ToggleStepPriority(s.cursor)
		} else {
			s.env.Ctrl.ToggleQuestionPriority(s.cursor - len(hub.Plan.StudyPlan))
		}
	case "v":
		s.env.Ctrl.SetPriorityOnly(!hub.PriorityOnly)
		s.pager.Offset = 0
	case "d":
		s.env.Ctrl.ExportExamPlan(s.env.ExportDir)
		return s, screen.Sync
	case "r":
		s.env.Ctrl.ChooseAnotherExam()
		s.cursor = 0
		s.pager.Offset = 0
	default:
		s.pager.Update(msg)
	}
	return s, nil
}

func (s *ExamHubScreen) View(width, height int) string {
	hub := s.hub()
	if hub == nil {
		return ""
	}
	cw := components.ContentWidth(width)

	var parts []string
	switch {
	case hub.Generating:
		parts = append(parts, theme.Heading.Render("⏳ "+s.env.T("examHub.generating")))
	case hub.Plan == nil:
		parts = append(parts,
			theme.Title.Render(s.env.T("examHub.form.title")),
			theme.Subtitle.Render(s.env.T("examHub.form.subtitle")),
			"",
		)
		if hub.Error != "" {
			parts = append(parts, components.ErrorLine(hub.Error), "")
		}
		s.menu.Height = max(height-8, 3)
		parts = append(parts, strings.TrimRight(s.menu.View(), "\n"))
		card := components.Card(strings.Join(parts, "\n"), cw)
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Top, card)
	default:
		lines := s.planLines(hub, cw)
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Top, s.pager.View(lines, height))
	}
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, strings.Join(parts, "\n"))
}

func (s *ExamHubScreen) planLines(hub *navigator.ExamHub, cw int) []string {
	t := s.env.T
	plan := hub.Plan
	var lines []string
	add := func(str string) {
		lines = append(lines, strings.Split(str, "\n")...)
	}

	add(theme.Title.Render(t("examHub.plan.title", "examName", plan.ExamName)))
	filter := "[ ]"
	if hub.PriorityOnly {
		filter = "[x]"
	}
	add(theme.Hint.Render(filter + " " + t("examHub.showPriorityOnly")))
	add("")

	if hub.PriorityOnly && !plan.HasPriority() {
		add(theme.Hint.Render(t("examHub.noPriorityItems")))
		return lines
	}

	item := func(i int, priority bool, text string) string {
		mark := "☆"
		style := theme.Unselected
		if priority {
			mark = "★"
			style = theme.Priority
		}
		prefix := "  "
		if i == s.cursor && !hub.PriorityOnly {
			prefix = "▸ "
			style = theme.Selected
		}
		return style.Width(cw).Render(prefix + mark + " " + text)
	}

	add(theme.Heading.Render(strings.ToUpper(t("examHub.plan.roadmap"))))
	for i, st := range plan.StudyPlan {
		if hub.PriorityOnly && !st.Priority {
			continue
		}
		add(item(i, st.Priority, fmt.Sprintf("%s (%s)", st.Topic, st.Duration)))
		add(theme.Hint.Width(cw).PaddingLeft(6).Render(st.Details))
	}
	add("")

	if !hub.PriorityOnly {
		for _, sec := range []struct {
			title string
			items []string
		}{
			{t("examHub.plan.books"), plan.StudyMaterials.Books},
			{t("examHub.plan.courses"), plan.StudyMaterials.OnlineCourses},
		} {
			if len(sec.items) == 0 {
				continue
			}
			add(theme.Heading.Render(strings.ToUpper(sec.title)))
			for _, it := range sec.items {
				add(theme.Body.Width(cw).Render("  • " + it))
			}
			add("")
		}
	}

	add(theme.Heading.Render(strings.ToUpper(t("examHub.plan.questions"))))
	offset := len(plan.StudyPlan)
	for i, q := range plan.PracticeQuestions {
		if hub.PriorityOnly && !q.Priority {
			continue
		}
		add(item(offset+i, q.Priority, q.Question))
		add(theme.Hint.Width(cw).PaddingLeft(6).Render(t("examHub.plan.answer") + " " + q.Answer))
	}
	return lines
}

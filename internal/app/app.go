package app

import (
	"fmt"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/skillnav/internal/i18n"
	"github.com/abhisek/skillnav/internal/navigator"
	"github.com/abhisek/skillnav/internal/router"
	"github.com/abhisek/skillnav/internal/screen"
	"github.com/abhisek/skillnav/internal/screens/auth"
	chatscreen "github.com/abhisek/skillnav/internal/screens/chat"
	"github.com/abhisek/skillnav/internal/screens/dashboard"
	"github.com/abhisek/skillnav/internal/screens/examhub"
	"github.com/abhisek/skillnav/internal/screens/form"
	"github.com/abhisek/skillnav/internal/screens/info"
	"github.com/abhisek/skillnav/internal/screens/loading"
	"github.com/abhisek/skillnav/internal/screens/pathwayview"
	"github.com/abhisek/skillnav/internal/ui/layout"
)

const noticeTTL = 4 * time.Second

// clearStatusMsg expires the status line raised with the same seq.
type clearStatusMsg struct {
	seq int
}

// AppModel is the root Bubble Tea model. The bottom screen of the router
// always mirrors the controller's current view.
type AppModel struct {
	env    *screen.Env
	router *router.Router
	key    string

	status    layout.Status
	statusSeq int

	width  int
	height int
}

// New creates the root model for env.
func New(env *screen.Env) *AppModel {
	m := &AppModel{env: env}
	m.key = m.viewKey()
	m.router = router.New(m.screenFor(env.Ctrl.View()))
	return m
}

func (m *AppModel) Init() tea.Cmd {
	cmds := []tea.Cmd{m.router.Active().Init()}
	if !m.env.Ctrl.Started() {
		cmds = append(cmds, m.env.Startup())
	}
	return tea.Batch(cmds...)
}

// viewKey changes whenever the base screen has to be rebuilt: a different
// view, a different pathway on screen, or another interface language.
func (m *AppModel) viewKey() string {
	c := m.env.Ctrl
	v := c.View()
	key := fmt.Sprintf("%s|%s", v.Name(), c.Translator().Locale().Code())
	switch v := v.(type) {
	case navigator.PathwayView:
		key += fmt.Sprintf("|%p", v.Pathway)
	case navigator.PublicPathwayView:
		key += fmt.Sprintf("|%p", v.Pathway)
	case navigator.ExamHubView:
		key += fmt.Sprintf("|%p", v.Hub)
	case navigator.LoadingView:
		key += fmt.Sprintf("|%d", v.Purpose)
	}
	return key
}

func (m *AppModel) screenFor(v navigator.View) screen.Screen {
	env := m.env
	switch v := v.(type) {
	case navigator.LoginView:
		return auth.NewLogin(env)
	case navigator.RegisterView:
		return auth.NewRegister(env)
	case navigator.ForgotPasswordView:
		return auth.NewForgotPassword(env)
	case navigator.DashboardView:
		return dashboard.New(env)
	case navigator.FormView:
		return form.New(env)
	case navigator.PathwayView:
		return pathwayview.New(env, v.Pathway)
	case navigator.PublicPathwayView:
		return pathwayview.NewPublic(env, v.Pathway)
	case navigator.ExamHubView:
		return examhub.New(env)
	case navigator.InfoView:
		return info.New(env, v.Page)
	case navigator.LoadingView:
		return loading.New(env, v.Purpose)
	default:
		return loading.New(env, navigator.LoadingStartup)
	}
}

func (m *AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	c := m.env.Ctrl
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case clearStatusMsg:
		if msg.seq == m.statusSeq {
			m.status = layout.Status{}
		}
		return m, nil

	case screen.StartupDoneMsg:
		c.ApplyStartup(msg.Result)
	case screen.PathwayDoneMsg:
		c.CompleteSubmit(msg.Ticket, msg.Pathway, msg.Err)
	case screen.ExamPlanDoneMsg:
		c.CompleteExamPlan(msg.Ticket, msg.Plan, msg.Err)
	case screen.ChatReplyMsg:
		c.CompleteChat(msg.Ticket, msg.Reply, msg.Err)
	case screen.SyncMsg:

	case tea.KeyPressMsg:
		handled := true
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			if m.router.Depth() > 1 {
				cmd = func() tea.Msg { return router.PopScreenMsg{} }
			} else {
				handled = false
			}
		case "ctrl+t":
			if c.ChatAvailable() && m.router.Depth() == 1 {
				cmd = m.router.Push(chatscreen.New(m.env))
			}
		case "ctrl+l":
			c.SetLanguage(nextLanguage(c.Translator().Locale().Code()))
		case "ctrl+x":
			if c.Authenticated() {
				c.Logout(m.env.Ctx)
			}
		case "ctrl+d":
			c.NavigateHome()
		case "f1":
			c.ShowInfo(navigator.InfoAbout)
		case "f2":
			c.ShowInfo(navigator.InfoPrivacy)
		case "f3":
			c.ShowInfo(navigator.InfoContact)
		default:
			handled = false
		}
		if !handled {
			cmd = m.router.Update(msg)
		}

	default:
		cmd = m.router.Update(msg)
	}

	return m, tea.Batch(cmd, m.sync())
}

// sync rebuilds the base screen when the controller moved to another view
// and moves pending notices to the status line.
func (m *AppModel) sync() tea.Cmd {
	var cmds []tea.Cmd
	if key := m.viewKey(); key != m.key {
		m.key = key
		cmds = append(cmds, m.router.Reset(m.screenFor(m.env.Ctrl.View())))
	}

	raised := false
	for {
		n, ok := m.env.Ctrl.TakeNotice()
		if !ok {
			break
		}
		m.status = layout.Status{Text: n.Text, Error: n.Kind == navigator.NoticeError}
		raised = true
	}
	if raised {
		m.statusSeq++
		seq := m.statusSeq
		cmds = append(cmds, tea.Tick(noticeTTL, func(time.Time) tea.Msg {
			return clearStatusMsg{seq: seq}
		}))
	}
	return tea.Batch(cmds...)
}

func nextLanguage(code string) string {
	langs := i18n.Languages()
	for i, l := range langs {
		if l.Code == code {
			return langs[(i+1)%len(langs)].Code
		}
	}
	return langs[0].Code
}

func (m *AppModel) keyHints() []layout.KeyHint {
	t := m.env.T
	var hints []layout.KeyHint
	if p, ok := m.router.Active().(screen.KeyHintProvider); ok {
		hints = append(hints, p.KeyHints()...)
	}
	if m.router.Depth() == 1 {
		if m.env.Ctrl.ChatAvailable() {
			hints = append(hints, layout.KeyHint{Key: "^T", Description: t("app.keys.chat")})
		}
		hints = append(hints, layout.KeyHint{Key: "^L", Description: t("app.keys.language")})
		if m.env.Ctrl.Authenticated() {
			hints = append(hints, layout.KeyHint{Key: "^X", Description: t("app.keys.logout")})
		}
	}
	return append(hints, layout.KeyHint{Key: "^C", Description: t("app.keys.quit")})
}

func (m *AppModel) header() layout.Header {
	c := m.env.Ctrl
	h := layout.Header{
		Title:    m.router.Active().Title(),
		Language: i18n.LanguageLabel(c.Translator().Locale().Code()),
	}
	if u := c.User(); u != nil {
		h.Welcome = m.env.T("header.welcome") + ", " + u.Name
	}
	return h
}

func (m *AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}

	if layout.IsTooSmall(m.width, m.height) {
		v.SetContent(layout.RenderMinSizeMessage(m.width, m.height))
		return v
	}

	c := m.env.Ctrl
	header := layout.RenderHeader(m.header(), m.width)

	status := m.status
	if status.Text == "" {
		status = layout.Status{Text: c.Location(), Muted: true}
	}
	footer := layout.RenderFooter(status, m.keyHints(), m.width)

	contentHeight := max(m.height-lipgloss.Height(header)-lipgloss.Height(footer), 0)
	content := m.router.View(m.width, contentHeight)

	v.SetContent(layout.RenderFrame(header, content, footer, m.width, m.height))
	return v
}

// Run starts the Bubble Tea program.
func Run(env *screen.Env) error {
	p := tea.NewProgram(New(env), tea.WithContext(env.Ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run program: %w", err)
	}
	return nil
}

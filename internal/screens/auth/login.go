// Package auth holds the signed-out screens: login, registration and the
// password reset request.
package auth

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/skillnav/internal/navigator"
	"github.com/abhisek/skillnav/internal/screen"
	"github.com/abhisek/skillnav/internal/ui/components"
	"github.com/abhisek/skillnav/internal/ui/layout"
	"github.com/abhisek/skillnav/internal/ui/theme"
)

const (
	loginEmail = iota
	loginPassword
)

// LoginScreen signs a registered user in.
type LoginScreen struct {
	env    *screen.Env
	fields fieldset
}

var _ screen.Screen = (*LoginScreen)(nil)
var _ screen.KeyHintProvider = (*LoginScreen)(nil)

// NewLogin creates a LoginScreen.
func NewLogin(env *screen.Env) *LoginScreen {
	s := &LoginScreen{env: env}
	s.fields.addInput(components.NewTextInput(env.T("login.emailAddress"), "you@example.com", 254))
	s.fields.addInput(components.NewPasswordInput(env.T("login.password")))
	s.fields.addButton(env.T("login.signIn"), s.submit)
	s.fields.addLink(env.T("login.forgotPassword"), func() tea.Cmd {
		env.Ctrl.ShowForgotPassword()
		return screen.Sync
	})
	s.fields.addLink(env.T("login.noAccount")+" "+env.T("login.signUp"), func() tea.Cmd {
		env.Ctrl.ShowRegister()
		return screen.Sync
	})
	return s
}

func (s *LoginScreen) submit() tea.Cmd {
	s.env.Ctrl.Login(s.env.Ctx, s.fields.value(loginEmail), s.fields.rawValue(loginPassword))
	return screen.Sync
}

func (s *LoginScreen) Init() tea.Cmd {
	return s.fields.init()
}

func (s *LoginScreen) Title() string {
	return s.env.T("login.signIn")
}

func (s *LoginScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Tab", Description: s.env.T("app.keys.nextField")},
		{Key: "Enter", Description: s.env.T("app.keys.select")},
	}
}

func (s *LoginScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	return s, s.fields.update(msg)
}

func (s *LoginScreen) View(width, height int) string {
	var errMsg string
	if v, ok := s.env.Ctrl.View().(navigator.LoginView); ok {
		errMsg = v.Error
	}
	return renderForm(width, height,
		s.env.T("login.welcomeBack"), s.env.T("login.signInToContinue"), errMsg, s.fields.view())
}

// renderForm lays out a titled card with an optional error above the
// fields.
func renderForm(width, height int, title, subtitle, errMsg, body string) string {
	cw := min(components.ContentWidth(width), 56)
	parts := []string{theme.Title.Render(title), theme.Subtitle.Render(subtitle), ""}
	if errMsg != "" {
		parts = append(parts, components.ErrorLine(errMsg), "")
	}
	parts = append(parts, strings.TrimRight(body, "\n"))
	card := components.Card(strings.Join(parts, "\n"), cw)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, card)
}

package auth

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/skillnav/internal/navigator"
	"github.com/abhisek/skillnav/internal/screen"
	"github.com/abhisek/skillnav/internal/ui/components"
	"github.com/abhisek/skillnav/internal/ui/layout"
)

// ForgotPasswordScreen takes a password reset request and then shows the
// confirmation.
type ForgotPasswordScreen struct {
	env       *screen.Env
	fields    fieldset
	confirmed fieldset
}

var _ screen.Screen = (*ForgotPasswordScreen)(nil)

// NewForgotPassword creates a ForgotPasswordScreen.
func NewForgotPassword(env *screen.Env) *ForgotPasswordScreen {
	s := &ForgotPasswordScreen{env: env}
	back := func() tea.Cmd {
		env.Ctrl.ShowLogin()
		return screen.Sync
	}
	s.fields.addInput(components.NewTextInput(env.T("forgotPassword.email.label"), "you@example.com", 254))
	s.fields.addButton(env.T("forgotPassword.sendResetLink"), func() tea.Cmd {
		if env.Ctrl.RequestPasswordReset(env.Ctx, s.fields.value(0)) {
			return tea.Batch(s.confirmed.init(), screen.Sync)
		}
		return screen.Sync
	})
	s.fields.addLink(env.T("forgotPassword.rememberPassword")+" "+env.T("forgotPassword.signIn"), back)
	s.confirmed.addButton(env.T("forgotPassword.submitted.backToSignIn"), back)
	return s
}

func (s *ForgotPasswordScreen) view() navigator.ForgotPasswordView {
	v, _ := s.env.Ctrl.View().(navigator.ForgotPasswordView)
	return v
}

func (s *ForgotPasswordScreen) Init() tea.Cmd {
	return s.fields.init()
}

func (s *ForgotPasswordScreen) Title() string {
	return s.env.T("forgotPassword.title")
}

func (s *ForgotPasswordScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: s.env.T("app.keys.select")},
		{Key: "Esc", Description: s.env.T("forgotPassword.backToLogin")},
	}
}

func (s *ForgotPasswordScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if k, ok := msg.(tea.KeyPressMsg); ok && k.String() == "esc" {
		s.env.Ctrl.ShowLogin()
		return s, screen.Sync
	}
	if s.view().Submitted {
		return s, s.confirmed.update(msg)
	}
	return s, s.fields.update(msg)
}

func (s *ForgotPasswordScreen) View(width, height int) string {
	v := s.view()
	if v.Submitted {
		return renderForm(width, height,
			s.env.T("forgotPassword.submitted.title"),
			s.env.T("forgotPassword.submitted.subtitle", "email", v.Email),
			"", s.confirmed.view())
	}
	return renderForm(width, height, s.env.T("forgotPassword.title"), s.env.T("forgotPassword.subtitle"), v.Error, s.fields.view())
}

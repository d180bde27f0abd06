package auth

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/skillnav/internal/navigator"
	"github.com/abhisek/skillnav/internal/screen"
	"github.com/abhisek/skillnav/internal/ui/components"
	"github.com/abhisek/skillnav/internal/ui/layout"
)

const (
	registerName = iota
	registerEmail
	registerPassword
)

// RegisterScreen creates an account.
type RegisterScreen struct {
	env    *screen.Env
	fields fieldset
}

var _ screen.Screen = (*RegisterScreen)(nil)

// NewRegister creates a RegisterScreen.
func NewRegister(env *screen.Env) *RegisterScreen {
	s := &RegisterScreen{env: env}
	s.fields.addInput(components.NewTextInput(env.T("register.name.label"), env.T("register.name.placeholder"), 120))
	s.fields.addInput(components.NewTextInput(env.T("register.email.label"), "you@example.com", 254))
	s.fields.addInput(components.NewPasswordInput(env.T("register.password.label")))
	s.fields.addButton(env.T("register.createAccount"), s.submit)
	s.fields.addLink(env.T("register.alreadyHaveAccount")+" "+env.T("register.signIn"), func() tea.Cmd {
		env.Ctrl.ShowLogin()
		return screen.Sync
	})
	return s
}

func (s *RegisterScreen) submit() tea.Cmd {
	s.env.Ctrl.Register(s.env.Ctx,
		s.fields.value(registerName), s.fields.value(registerEmail), s.fields.rawValue(registerPassword))
	return screen.Sync
}

func (s *RegisterScreen) Init() tea.Cmd {
	return s.fields.init()
}

func (s *RegisterScreen) Title() string {
	return s.env.T("register.title")
}

func (s *RegisterScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Tab", Description: s.env.T("app.keys.nextField")},
		{Key: "Enter", Description: s.env.T("app.keys.select")},
		{Key: "Esc", Description: s.env.T("register.backToLogin")},
	}
}

func (s *RegisterScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if k, ok := msg.(tea.KeyPressMsg); ok && k.String() == "esc" {
		s.env.Ctrl.ShowLogin()
		return s, screen.Sync
	}
	return s, s.fields.update(msg)
}

func (s *RegisterScreen) View(width, height int) string {
	var errMsg string
	if v, ok := s.env.Ctrl.View().(navigator.RegisterView); ok {
		errMsg = v.Error
	}
	return renderForm(width, height, s.env.T("register.title"), s.env.T("register.subtitle"), errMsg, s.fields.view())
}

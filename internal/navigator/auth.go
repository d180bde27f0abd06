package navigator

import (
	"context"

	"go.uber.org/zap"

	"github.com/abhisek/skillnav/internal/account"
	"github.com/abhisek/skillnav/internal/pathway"
	"github.com/abhisek/skillnav/internal/session"
)

// LoginSuccess remembers u and routes to the dashboard or the form.
func (c *Controller) LoginSuccess(ctx context.Context, u *session.User) {
	if u.SavedPathways == nil {
		u.SavedPathways = []pathway.Pathway{}
	}
	if err := c.sessions.Persist(ctx, u); err != nil {
		c.logger.Warn("persist session", zap.Error(err))
	}
	c.user = u
	c.view = c.landingView()
}

// Login checks credentials. On failure the login view carries the
// localized reason.
func (c *Controller) Login(ctx context.Context, email, password string) bool {
	u, err := c.accounts.Login(ctx, email, password)
	if err != nil {
		key := account.MessageKey(err, "login.error.unknown")
		if key == "login.error.unknown" {
			c.logger.Error("login", zap.Error(err))
		}
		c.view = LoginView{Error: c.tr.T(key)}
		return false
	}
	c.LoginSuccess(ctx, u)
	return true
}

// Register creates an account and returns to the login view.
func (c *Controller) Register(ctx context.Context, name, email, password string) bool {
	if err := c.accounts.Register(ctx, name, email, password); err != nil {
		key := account.MessageKey(err, "register.error.unknown")
		if key == "register.error.unknown" {
			c.logger.Error("register", zap.Error(err))
		}
		c.view = RegisterView{Error: c.tr.T(key)}
		return false
	}
	c.view = LoginView{}
	c.notify(NoticeSuccess, "register.alert.success")
	return true
}

// RequestPasswordReset shows the "check your email" confirmation. No
// message is actually sent.
func (c *Controller) RequestPasswordReset(ctx context.Context, email string) bool {
	if err := c.accounts.RequestPasswordReset(ctx, email); err != nil {
		c.view = ForgotPasswordView{Email: email, Error: c.tr.T(account.MessageKey(err, "login.error.unknown"))}
		return false
	}
	c.view = ForgotPasswordView{Submitted: true, Email: email}
	return true
}

// Logout forgets the user, drops the durable session and any work in
// flight, and returns to the login view.
func (c *Controller) Logout(ctx context.Context) {
	if err := c.sessions.Clear(ctx); err != nil {
		c.logger.Warn("clear session", zap.Error(err))
	}
	c.user = nil
	c.epoch++
	c.chatSeq++
	c.chat.Reset()
	c.view = LoginView{}
}

func (c *Controller) ShowLogin() {
	c.view = LoginView{}
}

func (c *Controller) ShowRegister() {
	c.view = RegisterView{}
}

func (c *Controller) ShowForgotPassword() {
	c.view = ForgotPasswordView{}
}

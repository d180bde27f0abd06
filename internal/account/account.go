// Package account is the local account registry: registration, login and
// the saved-pathway list of each account.
package account

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/abhisek/skillnav/internal/pathway"
	"github.com/abhisek/skillnav/internal/session"
	"github.com/abhisek/skillnav/internal/store"
)

// MinPasswordLength is the shortest accepted password.
const MinPasswordLength = 6

// Error is an account failure with the translation key of its message.
type Error struct {
	Key string
	msg string
}

func (e *Error) Error() string { return e.msg }

var (
	ErrFieldsRequired     = &Error{Key: "register.error.allFieldsRequired", msg: "all fields are required"}
	ErrPasswordTooShort   = &Error{Key: "register.error.passwordTooShort", msg: "password too short"}
	ErrEmailExists        = &Error{Key: "register.error.emailExists", msg: "email already registered"}
	ErrInvalidCredentials = &Error{Key: "login.error.invalidCredentials", msg: "invalid credentials"}
	ErrEmailRequired      = &Error{Key: "forgotPassword.error.emailRequired", msg: "email required"}
	ErrAlreadySaved       = &Error{Key: "app.alert.pathwayAlreadySaved", msg: "pathway already saved"}
)

// MessageKey returns the translation key describing err, or fallback when
// err is not an account error.
func MessageKey(err error, fallback string) string {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Key
	}
	return fallback
}

// Registry registers and authenticates accounts.
type Registry struct {
	repo     store.AccountRepo
	logger   *zap.Logger
	hashCost int
	now      func() time.Time
}

// NewRegistry creates a registry over repo.
func NewRegistry(repo store.AccountRepo, logger *zap.Logger) *Registry {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Registry{
		repo:     repo,
		logger:   logger,
		hashCost: bcrypt.DefaultCost,
		now:      time.Now,
	}
}

// Register creates an account. Email is matched case-sensitively after
// trimming surrounding space.
func (r *Registry) Register(ctx context.Context, name, email, password string) error {
	name, email = strings.TrimSpace(name), strings.TrimSpace(email)
	if name == "" || email == "" || password == "" {
		return ErrFieldsRequired
	}
	if len(password) < MinPasswordLength {
		return ErrPasswordTooShort
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), r.hashCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	err = r.repo.CreateAccount(ctx, store.Account{
		Email:        email,
		Name:         name,
		PasswordHash: string(hash),
		CreatedAt:    r.now().UTC(),
	})
	if errors.Is(err, store.ErrConflict) {
		return ErrEmailExists
	}
	if err != nil {
		return fmt.Errorf("register: %w", err)
	}

	r.logger.Info("account registered", zap.String("email", email))
	return nil
}

// Login checks the credentials and returns the session user with the
// account's saved pathways. The returned user never carries a password.
func (r *Registry) Login(ctx context.Context, email, password string) (*session.User, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return nil, ErrInvalidCredentials
	}

	acct, err := r.repo.GetAccount(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}
	if acct == nil {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(acct.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	saved, err := r.savedPathways(ctx, email)
	if err != nil {
		return nil, err
	}
	return &session.User{Name: acct.Name, Email: acct.Email, SavedPathways: saved}, nil
}

// SavePathway appends p to the user's saved list and returns the updated
// user. u itself is not modified. Saving an id that is already in the list
// returns ErrAlreadySaved.
func (r *Registry) SavePathway(ctx context.Context, u *session.User, p pathway.Pathway) (*session.User, error) {
	if u.HasSaved(p.ID) {
		return nil, ErrAlreadySaved
	}

	data, err := json.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("encode pathway: %w", err)
	}
	err = r.repo.SavePathway(ctx, u.Email, store.SavedPathway{
		PathwayID: p.ID,
		Data:      data,
		SavedAt:   r.now().UTC(),
	})
	if errors.Is(err, store.ErrConflict) {
		return nil, ErrAlreadySaved
	}
	if err != nil {
		return nil, fmt.Errorf("save pathway: %w", err)
	}

	updated := *u
	updated.SavedPathways = append(append([]pathway.Pathway{}, u.SavedPathways...), p)
	return &updated, nil
}

// RequestPasswordReset accepts a reset request for email. No message is
// sent and no reset token is issued; the request is only logged.
func (r *Registry) RequestPasswordReset(ctx context.Context, email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return ErrEmailRequired
	}
	r.logger.Info("password reset requested", zap.String("email", email))
	return nil
}

func (r *Registry) savedPathways(ctx context.Context, email string) ([]pathway.Pathway, error) {
	rows, err := r.repo.SavedPathways(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("load saved pathways: %w", err)
	}

	out := make([]pathway.Pathway, 0, len(rows))
	for _, row := range rows {
		var p pathway.Pathway
		if err := json.Unmarshal(row.Data, &p); err != nil {
			r.logger.Warn("skipping unreadable saved pathway",
				zap.String("pathway_id", row.PathwayID), zap.Error(err))
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

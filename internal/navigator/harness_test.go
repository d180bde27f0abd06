package navigator

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/abhisek/skillnav/internal/account"
	"github.com/abhisek/skillnav/internal/exam"
	"github.com/abhisek/skillnav/internal/i18n"
	"github.com/abhisek/skillnav/internal/pathway"
	"github.com/abhisek/skillnav/internal/session"
	"github.com/abhisek/skillnav/internal/share"
	"github.com/abhisek/skillnav/internal/store"
)

var fixedNow = time.Date(2026, 10, 18, 9, 30, 0, 0, time.UTC)

// fakeAccounts is an in-memory account registry with plaintext
// passwords, enough to drive the controller.
type fakeAccounts struct {
	passwords map[string]string
	names     map[string]string
	saved     map[string][]pathway.Pathway
	saveErr   error
	loginErr  error
}

func newFakeAccounts() *fakeAccounts {
	return &fakeAccounts{
		passwords: map[string]string{},
		names:     map[string]string{},
		saved:     map[string][]pathway.Pathway{},
	}
}

func (f *fakeAccounts) Register(_ context.Context, name, email, password string) error {
	if name == "" || email == "" || password == "" {
		return account.ErrFieldsRequired
	}
	if _, ok := f.passwords[email]; ok {
		return account.ErrEmailExists
	}
	f.passwords[email] = password
	f.names[email] = name
	return nil
}

func (f *fakeAccounts) Login(_ context.Context, email, password string) (*session.User, error) {
	if f.loginErr != nil {
		return nil, f.loginErr
	}
	if pw, ok := f.passwords[email]; !ok || pw != password {
		return nil, account.ErrInvalidCredentials
	}
	return &session.User{Name: f.names[email], Email: email, SavedPathways: append([]pathway.Pathway{}, f.saved[email]...)}, nil
}

func (f *fakeAccounts) SavePathway(_ context.Context, u *session.User, p pathway.Pathway) (*session.User, error) {
	if f.saveErr != nil {
		return nil, f.saveErr
	}
	if u.HasSaved(p.ID) {
		return nil, account.ErrAlreadySaved
	}
	f.saved[u.Email] = append(f.saved[u.Email], p)
	cp := *u
	cp.SavedPathways = append(append([]pathway.Pathway{}, u.SavedPathways...), p)
	return &cp, nil
}

func (f *fakeAccounts) RequestPasswordReset(_ context.Context, email string) error {
	if email == "" {
		return account.ErrEmailRequired
	}
	return nil
}

type generatorFunc func(ctx context.Context, p pathway.Profile) (*pathway.Pathway, error)

func (f generatorFunc) Generate(ctx context.Context, p pathway.Profile) (*pathway.Pathway, error) {
	return f(ctx, p)
}

type plannerFunc func(ctx context.Context, p pathway.Profile, e exam.Exam) (*exam.Plan, error)

func (f plannerFunc) Generate(ctx context.Context, p pathway.Profile, e exam.Exam) (*exam.Plan, error) {
	return f(ctx, p, e)
}

type resolverFunc func(ctx context.Context, id string) (*pathway.Pathway, error)

func (f resolverFunc) FetchPublic(ctx context.Context, id string) (*pathway.Pathway, error) {
	return f(ctx, id)
}

type failingSessions struct{}

func (failingSessions) Load(context.Context) (*session.User, error) {
	return nil, errors.New("disk on fire")
}
func (failingSessions) Persist(context.Context, *session.User) error { return errors.New("disk on fire") }
func (failingSessions) Clear(context.Context) error                  { return errors.New("disk on fire") }

func generatedPathway(title string) *pathway.Pathway {
	return &pathway.Pathway{
		Title:   title,
		Summary: "Hands-on route into the trade.",
		Steps: []pathway.Step{
			{Stage: pathway.StageFoundational, Title: "Basics", Duration: "2 months", NSQFLevel: "Level 3"},
			{Stage: pathway.StageOnTheJob, Title: "Apprenticeship", Duration: "6 months", NSQFLevel: "Level 4"},
		},
		MarketInsights: pathway.MarketInsights{JobDemand: "High", SalaryRange: "₹2-3 LPA"},
	}
}

func savedPathway(id, title string) pathway.Pathway {
	p := generatedPathway(title)
	p.ID = id
	p.CreatedAt = "2026-09-01T10:00:00.000Z"
	return *p
}

type harness struct {
	store    *store.Store
	sessions *session.Store
	accounts *fakeAccounts
	locale   *i18n.Locale
	tr       *i18n.Translator
	deps     Deps
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.NewReplacer("/", "_", " ", "_").Replace(t.Name()))
	st, err := store.Open(dsn)
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })

	catalog, err := i18n.Load(zap.NewNop())
	require.NoError(t, err)
	locale := i18n.NewLocale("en")

	h := &harness{
		store:    st,
		sessions: session.NewStore(st.KVRepo(), zap.NewNop()),
		accounts: newFakeAccounts(),
		locale:   locale,
		tr:       i18n.NewTranslator(catalog, locale),
	}
	h.deps = Deps{
		Translator: h.tr,
		Sessions:   h.sessions,
		Accounts:   h.accounts,
		Pathways: generatorFunc(func(context.Context, pathway.Profile) (*pathway.Pathway, error) {
			return generatedPathway("Personalized Pathway to become a Welder"), nil
		}),
		Publisher: share.NewStoreResolver(st.SharedPathwayRepo()),
		Feedback:  st.EventRepo(),
		ShareBase: "https://navigator.example",
		Now:       func() time.Time { return fixedNow },
	}
	return h
}

func (h *harness) controller() *Controller {
	return New(h.deps)
}

// signedIn returns a started controller for a remembered user.
func (h *harness) signedIn(t *testing.T, saved ...pathway.Pathway) *Controller {
	t.Helper()
	u := &session.User{Name: "Asha", Email: "asha@example.in", SavedPathways: append([]pathway.Pathway{}, saved...)}
	require.NoError(t, h.sessions.Persist(t.Context(), u))
	c := h.controller()
	c.Start(t.Context())
	return c
}

func takeNotices(c *Controller) []Notice {
	var out []Notice
	for {
		n, ok := c.TakeNotice()
		if !ok {
			return out
		}
		out = append(out, n)
	}
}

func noticeKeys(c *Controller) []string {
	var keys []string
	for _, n := range takeNotices(c) {
		keys = append(keys, n.Key)
	}
	return keys
}

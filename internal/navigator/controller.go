// Package navigator is the application controller: it owns the current
// view, the remembered user, the draft learner profile and the pathway on
// screen, and applies every user action as a state transition.
//
// The controller is driven from a single goroutine. Slow work (generation,
// exam plans, shared pathway lookup, chat) is split into a Begin step that
// returns a ticket, a pure step that may run elsewhere, and a Complete step
// that applies the result only if the ticket is still current.
package navigator

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/abhisek/skillnav/internal/chat"
	"github.com/abhisek/skillnav/internal/exam"
	"github.com/abhisek/skillnav/internal/i18n"
	"github.com/abhisek/skillnav/internal/pathway"
	"github.com/abhisek/skillnav/internal/session"
	"github.com/abhisek/skillnav/internal/share"
	"github.com/abhisek/skillnav/internal/store"
)

// SessionStore keeps the remembered user between runs.
type SessionStore interface {
	Load(ctx context.Context) (*session.User, error)
	Persist(ctx context.Context, u *session.User) error
	Clear(ctx context.Context) error
}

// Accounts authenticates users and keeps their saved pathways.
type Accounts interface {
	Register(ctx context.Context, name, email, password string) error
	Login(ctx context.Context, email, password string) (*session.User, error)
	SavePathway(ctx context.Context, u *session.User, p pathway.Pathway) (*session.User, error)
	RequestPasswordReset(ctx context.Context, email string) error
}

// PathwayGenerator turns a learner profile into a pathway.
type PathwayGenerator interface {
	Generate(ctx context.Context, profile pathway.Profile) (*pathway.Pathway, error)
}

// ExamPlanner produces exam study plans.
type ExamPlanner interface {
	Generate(ctx context.Context, profile pathway.Profile, e exam.Exam) (*exam.Plan, error)
}

// FeedbackRecorder stores learner feedback.
type FeedbackRecorder interface {
	AppendFeedback(ctx context.Context, data store.FeedbackEventData) error
}

// Assistant answers chat questions.
type Assistant interface {
	Reply(ctx context.Context, history []chat.Message, language string) (string, error)
}

// Deps are the controller's collaborators. Translator, Sessions and
// Accounts are required; a nil optional collaborator makes its feature
// report failure.
type Deps struct {
	Translator *i18n.Translator
	Sessions   SessionStore
	Accounts   Accounts

	Pathways  PathwayGenerator
	Exams     ExamPlanner
	Resolver  share.Resolver
	Publisher share.Publisher
	Feedback  FeedbackRecorder
	Assistant Assistant

	// ShareBase is the public base URL used for share links.
	ShareBase string
	// Location is the link the application was started with.
	Location *share.Location

	Logger *zap.Logger
	Now    func() time.Time
}

// errUnavailable is returned by pure steps whose collaborator is missing.
var errUnavailable = errors.New("feature unavailable")

// Controller is the application state machine.
type Controller struct {
	tr        *i18n.Translator
	sessions  SessionStore
	accounts  Accounts
	pathways  PathwayGenerator
	exams     ExamPlanner
	resolver  share.Resolver
	publisher share.Publisher
	feedback  FeedbackRecorder
	assistant Assistant
	shareBase string
	location  *share.Location
	logger    *zap.Logger
	now       func() time.Time

	view    View
	user    *session.User
	profile LearnerProfile
	step    int
	notices []Notice
	chat    chat.Conversation

	started bool
	// epoch invalidates in-flight work when the user changes context.
	epoch   uint64
	examSeq uint64
	chatSeq uint64
}

// New creates a controller in the startup loading state.
func New(d Deps) *Controller {
	if d.Logger == nil {
		d.Logger = zap.NewNop()
	}
	if d.Now == nil {
		d.Now = time.Now
	}
	if d.Location == nil {
		d.Location = share.ParseLocation("")
	}
	c := &Controller{
		tr:        d.Translator,
		sessions:  d.Sessions,
		accounts:  d.Accounts,
		pathways:  d.Pathways,
		exams:     d.Exams,
		resolver:  d.Resolver,
		publisher: d.Publisher,
		feedback:  d.Feedback,
		assistant: d.Assistant,
		shareBase: d.ShareBase,
		location:  d.Location,
		logger:    d.Logger.Named("navigator"),
		now:       d.Now,
		view:      LoadingView{Purpose: LoadingStartup},
		step:      1,
	}
	c.profile = pathway.DefaultProfile(c.tr.Locale().Code())
	return c
}

// View returns the current view. A pathway view without a pathway, or an
// authenticated view without a user, is never returned: the controller
// falls back to the dashboard or the login view instead.
func (c *Controller) View() View {
	switch v := c.view.(type) {
	case PathwayView:
		if v.Pathway == nil {
			return c.homeView()
		}
	case ExamHubView:
		if v.Pathway == nil || v.Hub == nil {
			return c.homeView()
		}
	case PublicPathwayView:
		if v.Pathway == nil {
			return c.homeView()
		}
	case DashboardView:
		if c.user == nil {
			return LoginView{}
		}
		if v.User == nil {
			return DashboardView{User: c.user}
		}
	case FormView:
		if c.user == nil {
			return LoginView{}
		}
	}
	return c.view
}

func (c *Controller) homeView() View {
	if c.user != nil {
		return DashboardView{User: c.user}
	}
	return LoginView{}
}

// User returns the signed-in user, or nil.
func (c *Controller) User() *session.User {
	return c.user
}

// Authenticated reports whether a user is signed in.
func (c *Controller) Authenticated() bool {
	return c.user != nil
}

// Profile returns a copy of the draft learner profile.
func (c *Controller) Profile() LearnerProfile {
	return cloneProfile(c.profile)
}

// ActivePathway returns the pathway being shown to the signed-in flow, or
// nil. Shared pathways are not active pathways.
func (c *Controller) ActivePathway() *pathway.Pathway {
	switch v := c.View().(type) {
	case PathwayView:
		return v.Pathway
	case ExamHubView:
		return v.Pathway
	}
	return nil
}

// DisplayedPathway returns whichever pathway is on screen, shared or not.
func (c *Controller) DisplayedPathway() *pathway.Pathway {
	if v, ok := c.View().(PublicPathwayView); ok {
		return v.Pathway
	}
	return c.ActivePathway()
}

// Location returns the visible link.
func (c *Controller) Location() string {
	return c.location.String()
}

// Translator returns the translator bound to the current locale.
func (c *Controller) Translator() *i18n.Translator {
	return c.tr
}

// StartupResult is what ResolveStartup found.
type StartupResult struct {
	Public    *pathway.Pathway
	PublicErr error
	User      *session.User
}

// ResolveStartup looks up the shared pathway named in the start link and
// loads the remembered user. It does not touch controller state, so it may
// run off the update loop.
func (c *Controller) ResolveStartup(ctx context.Context) StartupResult {
	var res StartupResult

	if id := c.location.SharedID(); id != "" {
		if c.resolver == nil {
			res.PublicErr = errUnavailable
		} else {
			res.Public, res.PublicErr = c.resolver.FetchPublic(ctx, id)
			if res.PublicErr == nil && res.Public == nil {
				res.PublicErr = share.ErrNotFound
			}
		}
		if res.PublicErr != nil {
			c.logger.Warn("resolve shared pathway", zap.String("id", id), zap.Error(res.PublicErr))
		}
		if res.Public != nil {
			return res
		}
	}

	u, err := c.sessions.Load(ctx)
	if err != nil {
		c.logger.Warn("load session; continuing signed out", zap.Error(err))
		u = nil
	}
	res.User = u
	return res
}

// ApplyStartup applies the startup result. It only has an effect once.
func (c *Controller) ApplyStartup(res StartupResult) {
	if c.started {
		return
	}
	c.started = true

	if res.Public != nil {
		c.profile = RepresentativeProfile(res.Public, c.tr.Locale().Code())
		c.view = PublicPathwayView{Pathway: res.Public}
		return
	}
	if res.PublicErr != nil {
		if errors.Is(res.PublicErr, share.ErrNotFound) {
			c.notify(NoticeError, "app.shared.notFound")
		} else {
			c.notify(NoticeError, "app.shared.loadFailed")
		}
		c.location.StripSharedID()
	}

	if res.User == nil {
		c.view = LoginView{}
		return
	}
	c.user = res.User
	c.view = c.landingView()
}

// Start runs the startup sequence synchronously.
func (c *Controller) Start(ctx context.Context) {
	if c.started {
		return
	}
	c.ApplyStartup(c.ResolveStartup(ctx))
}

// Started reports whether startup has been applied.
func (c *Controller) Started() bool {
	return c.started
}

// landingView is where a signed-in user lands: the dashboard when they
// have saved pathways, the form otherwise.
func (c *Controller) landingView() View {
	if len(c.user.SavedPathways) > 0 {
		return DashboardView{User: c.user}
	}
	c.step = 1
	return FormView{Step: c.step}
}

package navigator

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/skillnav/internal/pathway"
	"github.com/abhisek/skillnav/internal/session"
	"github.com/abhisek/skillnav/internal/share"
)

func TestStartupWithoutSessionShowsLogin(t *testing.T) {
	h := newHarness(t)
	c := h.controller()
	assert.Equal(t, ViewLoading, c.View().Name())

	c.Start(t.Context())
	assert.Equal(t, ViewLogin, c.View().Name())
	assert.False(t, c.Authenticated())
}

func TestStartupWithSession(t *testing.T) {
	t.Run("no saved pathways lands on form", func(t *testing.T) {
		c := newHarness(t).signedIn(t)
		assert.Equal(t, FormView{Step: 1}, c.View())
		assert.Equal(t, "asha@example.in", c.User().Email)
	})
	t.Run("saved pathways land on dashboard", func(t *testing.T) {
		c := newHarness(t).signedIn(t, savedPathway("path_1", "Your Pathway to becoming a Plumber"))
		v, ok := c.View().(DashboardView)
		require.True(t, ok)
		assert.Len(t, v.User.SavedPathways, 1)
	})
}

func TestStartupClearsCorruptSession(t *testing.T) {
	h := newHarness(t)
	require.NoError(t, h.store.KVRepo().Put(t.Context(), session.RecordKey, `{"name":"no email"}`))

	c := h.controller()
	c.Start(t.Context())
	assert.Equal(t, ViewLogin, c.View().Name())

	_, ok, err := h.store.KVRepo().Get(t.Context(), session.RecordKey)
	require.NoError(t, err)
	assert.False(t, ok, "corrupt record is cleared")
}

func TestStartupSessionStorageFailure(t *testing.T) {
	h := newHarness(t)
	h.deps.Sessions = failingSessions{}
	c := h.controller()
	c.Start(t.Context())
	assert.Equal(t, ViewLogin, c.View().Name())
}

func TestStartRunsOnce(t *testing.T) {
	h := newHarness(t)
	c := h.controller()
	c.Start(t.Context())
	require.Equal(t, ViewLogin, c.View().Name())

	require.NoError(t, h.sessions.Persist(t.Context(), &session.User{Email: "late@example.in"}))
	c.Start(t.Context())
	c.ApplyStartup(StartupResult{User: &session.User{Email: "late@example.in"}})
	assert.Equal(t, ViewLogin, c.View().Name())
	assert.True(t, c.Started())
}

func TestStartupPublicPathway(t *testing.T) {
	h := newHarness(t)
	shared := savedPathway("path_shared", "Personalized Pathway to become a Welder")
	h.deps.Location = share.ParseLocation("https://navigator.example/?pathway=path_shared")
	h.deps.Resolver = resolverFunc(func(_ context.Context, id string) (*pathway.Pathway, error) {
		require.Equal(t, "path_shared", id)
		return &shared, nil
	})
	h.locale.Set("bn")

	c := h.controller()
	c.Start(t.Context())

	v, ok := c.View().(PublicPathwayView)
	require.True(t, ok)
	assert.Equal(t, "path_shared", v.Pathway.ID)

	profile := c.Profile()
	assert.Equal(t, "Welder", profile.CareerAspiration)
	assert.Equal(t, NotApplicable, profile.AcademicBackground)
	assert.Equal(t, NotApplicable, profile.PreferredLocation)
	assert.Equal(t, NotApplicable, profile.LearningPace)
	assert.Empty(t, profile.PriorSkills)
	assert.Equal(t, "bn", profile.PreferredLanguage)
	assert.Nil(t, c.ActivePathway())
	assert.Equal(t, &shared, c.DisplayedPathway())
}

func TestStartupPublicPathwayFailures(t *testing.T) {
	tests := []struct {
		name    string
		result  *pathway.Pathway
		err     error
		wantKey string
	}{
		{"not found", nil, share.ErrNotFound, "app.shared.notFound"},
		{"nil result", nil, nil, "app.shared.notFound"},
		{"lookup failed", nil, errors.New("connection refused"), "app.shared.loadFailed"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t)
			h.deps.Location = share.ParseLocation("https://navigator.example/?lang=hi&pathway=path_x")
			h.deps.Resolver = resolverFunc(func(context.Context, string) (*pathway.Pathway, error) {
				return tt.result, tt.err
			})
			require.NoError(t, h.sessions.Persist(t.Context(), &session.User{Email: "asha@example.in"}))

			c := h.controller()
			c.Start(t.Context())

			assert.Equal(t, []string{tt.wantKey}, noticeKeys(c))
			assert.Equal(t, "https://navigator.example/?lang=hi", c.Location())
			assert.Equal(t, ViewForm, c.View().Name(), "falls through to the session")
		})
	}
}

func TestStartupSharedLinkWithoutResolver(t *testing.T) {
	h := newHarness(t)
	h.deps.Location = share.ParseLocation("https://navigator.example/?pathway=path_x")
	c := h.controller()
	c.Start(t.Context())
	assert.Equal(t, []string{"app.shared.loadFailed"}, noticeKeys(c))
	assert.Equal(t, ViewLogin, c.View().Name())
}

func TestLoginScenario(t *testing.T) {
	h := newHarness(t)
	require.NoError(t, h.accounts.Register(t.Context(), "Ravi", "ravi@example.in", "secret1"))

	c := h.controller()
	c.Start(t.Context())
	require.Equal(t, ViewLogin, c.View().Name())

	assert.False(t, c.Login(t.Context(), "ravi@example.in", "wrong"))
	assert.Equal(t, LoginView{Error: "Invalid email or password. Please try again."}, c.View())

	require.True(t, c.Login(t.Context(), "ravi@example.in", "secret1"))
	assert.Equal(t, ViewForm, c.View().Name())
	require.NotNil(t, c.User())
	assert.Equal(t, "Ravi", c.User().Name)

	remembered, err := h.sessions.Load(t.Context())
	require.NoError(t, err)
	assert.Equal(t, "ravi@example.in", remembered.Email)
	assert.Empty(t, remembered.Password)
}

func TestLoginUnexpectedError(t *testing.T) {
	h := newHarness(t)
	h.accounts.loginErr = errors.New("database locked")
	c := h.controller()
	c.Start(t.Context())

	c.Login(t.Context(), "a@b.in", "x")
	assert.Equal(t, LoginView{Error: h.tr.T("login.error.unknown")}, c.View())
}

func TestLoginWithSavedPathwaysGoesToDashboard(t *testing.T) {
	h := newHarness(t)
	require.NoError(t, h.accounts.Register(t.Context(), "Ravi", "ravi@example.in", "secret1"))
	h.accounts.saved["ravi@example.in"] = []pathway.Pathway{savedPathway("path_1", "Your Pathway to becoming a Plumber")}

	c := h.controller()
	c.Start(t.Context())
	require.True(t, c.Login(t.Context(), "ravi@example.in", "secret1"))
	assert.Equal(t, ViewDashboard, c.View().Name())
}

func TestRegisterAndForgotPassword(t *testing.T) {
	h := newHarness(t)
	c := h.controller()
	c.Start(t.Context())

	c.ShowRegister()
	assert.False(t, c.Register(t.Context(), "", "x@y.in", "secret1"))
	assert.Equal(t, RegisterView{Error: "All fields are required."}, c.View())

	assert.True(t, c.Register(t.Context(), "Meena", "meena@example.in", "secret1"))
	assert.Equal(t, ViewLogin, c.View().Name())
	assert.Equal(t, []string{"register.alert.success"}, noticeKeys(c))

	c.ShowRegister()
	c.Register(t.Context(), "Meena", "meena@example.in", "secret1")
	assert.Equal(t, RegisterView{Error: h.tr.T("register.error.emailExists")}, c.View())

	c.ShowLogin()
	c.ShowForgotPassword()
	assert.False(t, c.RequestPasswordReset(t.Context(), ""))
	assert.Equal(t, h.tr.T("forgotPassword.error.emailRequired"), c.View().(ForgotPasswordView).Error)

	assert.True(t, c.RequestPasswordReset(t.Context(), "meena@example.in"))
	assert.Equal(t, ForgotPasswordView{Submitted: true, Email: "meena@example.in"}, c.View())
}

func TestSubmitScenario(t *testing.T) {
	h := newHarness(t)
	block := make(chan struct{})
	h.deps.Pathways = generatorFunc(func(ctx context.Context, p pathway.Profile) (*pathway.Pathway, error) {
		<-block
		return generatedPathway("Personalized Pathway to become a " + p.CareerAspiration), nil
	})
	c := h.signedIn(t)
	c.SetProfileField(FieldCareerAspiration, "Electrician")

	ticket, ok := c.BeginSubmit()
	require.True(t, ok)
	assert.Equal(t, LoadingView{Purpose: LoadingPathway}, c.View())
	assert.Nil(t, c.ActivePathway())

	done := make(chan struct{})
	var (
		result *pathway.Pathway
		err    error
	)
	go func() {
		result, err = c.Generate(t.Context(), ticket)
		close(done)
	}()
	close(block)
	<-done

	require.True(t, c.CompleteSubmit(ticket, result, err))
	active := c.ActivePathway()
	require.NotNil(t, active)
	assert.Equal(t, ViewPathway, c.View().Name())
	assert.Regexp(t, `^path_[0-9a-f-]{36}$`, active.ID)
	created, perr := time.Parse(time.RFC3339, active.CreatedAt)
	require.NoError(t, perr)
	assert.True(t, created.Equal(fixedNow))
	assert.Contains(t, active.Title, "Electrician")
}

func TestSubmitFailureReturnsToForm(t *testing.T) {
	h := newHarness(t)
	h.deps.Pathways = generatorFunc(func(context.Context, pathway.Profile) (*pathway.Pathway, error) {
		return nil, errors.New("quota exceeded")
	})
	c := h.signedIn(t)
	c.NextStep()

	c.Submit(t.Context())
	v, ok := c.View().(FormView)
	require.True(t, ok)
	assert.Equal(t, h.tr.T("app.error.pathwayGeneration"), v.Error)
	assert.NotEmpty(t, v.Error)
	assert.Equal(t, 2, v.Step)
	assert.Nil(t, c.ActivePathway())

	// The error is cleared by the next attempt.
	h.deps.Pathways = nil
	_, ok = c.BeginSubmit()
	require.True(t, ok)
	assert.Equal(t, ViewLoading, c.View().Name())
}

func TestSubmitWithoutGenerator(t *testing.T) {
	h := newHarness(t)
	h.deps.Pathways = nil
	c := h.signedIn(t)
	c.Submit(t.Context())
	assert.NotEmpty(t, c.View().(FormView).Error)
}

func TestSubmitOnlyFromForm(t *testing.T) {
	c := newHarness(t).controller()
	c.Start(t.Context())
	_, ok := c.BeginSubmit()
	assert.False(t, ok)
	assert.Equal(t, ViewLogin, c.View().Name())
}

func TestStaleGenerationResultsAreDiscarded(t *testing.T) {
	tests := []struct {
		name    string
		between func(t *testing.T, c *Controller)
		want    ViewName
	}{
		{"logout", func(t *testing.T, c *Controller) { c.Logout(t.Context()) }, ViewLogin},
		{"start new", func(t *testing.T, c *Controller) { c.StartNewPathway() }, ViewForm},
		{"edit inputs", func(t *testing.T, c *Controller) { c.EditPathwayInputs() }, ViewForm},
		{"navigate home", func(t *testing.T, c *Controller) { c.NavigateHome() }, ViewDashboard},
		{"resubmitted", func(t *testing.T, c *Controller) {
			c.EditPathwayInputs()
			_, ok := c.BeginSubmit()
			require.True(t, ok)
		}, ViewLoading},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newHarness(t).signedIn(t)
			ticket, ok := c.BeginSubmit()
			require.True(t, ok)

			tt.between(t, c)
			assert.False(t, c.CompleteSubmit(ticket, generatedPathway("Your Pathway to becoming a Chef"), nil))
			assert.Equal(t, tt.want, c.View().Name())
			assert.Nil(t, c.ActivePathway())
		})
	}
}

func TestPathwayViewFallsBack(t *testing.T) {
	t.Run("signed in", func(t *testing.T) {
		c := newHarness(t).signedIn(t)
		c.ViewPathway(nil)
		assert.Equal(t, ViewDashboard, c.View().Name())

		c.view = ExamHubView{}
		assert.Equal(t, ViewDashboard, c.View().Name())
		c.view = PathwayView{}
		assert.Equal(t, ViewDashboard, c.View().Name())
		assert.Nil(t, c.ActivePathway())
	})
	t.Run("signed out", func(t *testing.T) {
		c := newHarness(t).controller()
		c.Start(t.Context())
		c.view = PathwayView{}
		assert.Equal(t, ViewLogin, c.View().Name())
		c.view = FormView{Step: 1}
		assert.Equal(t, ViewLogin, c.View().Name(), "form requires a user")
		c.view = DashboardView{}
		assert.Equal(t, ViewLogin, c.View().Name())
	})
}

func TestSaveIsIdempotent(t *testing.T) {
	h := newHarness(t)
	c := h.signedIn(t)
	c.Submit(t.Context())
	require.NotNil(t, c.ActivePathway())
	assert.False(t, c.IsSaved())

	require.True(t, c.SavePathway(t.Context()))
	assert.Equal(t, []string{"app.alert.pathwaySaved"}, noticeKeys(c))
	assert.True(t, c.IsSaved())

	assert.False(t, c.SavePathway(t.Context()))
	assert.Equal(t, []string{"app.alert.pathwayAlreadySaved"}, noticeKeys(c))
	assert.Len(t, c.User().SavedPathways, 1)

	remembered, err := h.sessions.Load(t.Context())
	require.NoError(t, err)
	require.Len(t, remembered.SavedPathways, 1)
	assert.Equal(t, c.ActivePathway().ID, remembered.SavedPathways[0].ID)
}

func TestSaveFailureLeavesStateAlone(t *testing.T) {
	h := newHarness(t)
	c := h.signedIn(t)
	c.Submit(t.Context())
	h.accounts.saveErr = errors.New("disk full")

	before := c.User()
	assert.False(t, c.SavePathway(t.Context()))
	assert.Equal(t, []string{"app.alert.pathwaySaveFailed"}, noticeKeys(c))
	assert.Same(t, before, c.User())
	assert.Empty(t, c.User().SavedPathways)
	assert.Equal(t, ViewPathway, c.View().Name())
}

func TestSaveWithoutPathwayOrUser(t *testing.T) {
	c := newHarness(t).signedIn(t)
	assert.False(t, c.SavePathway(t.Context()))
	assert.Empty(t, takeNotices(c))
}

func TestSkillToggle(t *testing.T) {
	c := newHarness(t).signedIn(t)

	c.ToggleSkill("Basic Computer Skills", true)
	c.ToggleSkill("Basic Computer Skills", true)
	c.ToggleSkill("Welding", true)
	assert.Equal(t, []string{"Basic Computer Skills", "Welding"}, c.Profile().PriorSkills)

	c.ToggleSkill("Basic Computer Skills", false)
	assert.Equal(t, []string{"Welding"}, c.Profile().PriorSkills)
	c.ToggleSkill("Never Added", false)
	assert.Equal(t, []string{"Welding"}, c.Profile().PriorSkills)
}

func TestLanguageChangePropagates(t *testing.T) {
	h := newHarness(t)
	c := h.signedIn(t)
	before := h.tr.T("form.title")

	c.SetProfileField(FieldPreferredLanguage, "hi")
	assert.Equal(t, "hi", c.Profile().PreferredLanguage)
	assert.Equal(t, "hi", h.locale.Code())
	assert.NotEqual(t, before, h.tr.T("form.title"))

	c.SetProfileField(FieldPreferredLanguage, "xx")
	assert.Equal(t, "hi", c.Profile().PreferredLanguage, "unsupported codes are rejected")
	assert.Equal(t, "hi", h.locale.Code())

	c.SetProfileField(Field("favouriteColour"), "blue")
	assert.Equal(t, "hi", c.Profile().PreferredLanguage)

	require.True(t, c.SetLanguage("ta"))
	assert.False(t, c.SetLanguage("klingon"))
	assert.Equal(t, "ta", c.Profile().PreferredLanguage)
	assert.Equal(t, c.Profile().PreferredLanguage, h.locale.Code())
}

func TestFormSteps(t *testing.T) {
	c := newHarness(t).signedIn(t)
	c.PrevStep()
	assert.Equal(t, 1, c.Step())
	c.NextStep()
	c.NextStep()
	assert.Equal(t, FormView{Step: 2}, c.View())
	c.PrevStep()
	assert.Equal(t, 1, c.Step())
}

func TestLogout(t *testing.T) {
	h := newHarness(t)
	c := h.signedIn(t)
	c.Submit(t.Context())

	c.Logout(t.Context())
	assert.Equal(t, ViewLogin, c.View().Name())
	assert.Nil(t, c.User())
	assert.Nil(t, c.ActivePathway())

	u, err := h.sessions.Load(t.Context())
	require.NoError(t, err)
	assert.Nil(t, u)
}

func TestStartNewAndEditInputs(t *testing.T) {
	h := newHarness(t)
	h.deps.Location = share.ParseLocation("https://navigator.example/?pathway=path_gone")
	c := h.signedIn(t)
	takeNotices(c)

	c.SetProfileField(FieldCareerAspiration, "Electrician")
	c.ToggleSkill("Welding", true)
	c.NextStep()
	c.Submit(t.Context())
	require.Equal(t, ViewPathway, c.View().Name())

	c.EditPathwayInputs()
	assert.Equal(t, FormView{Step: 1}, c.View())
	assert.Nil(t, c.ActivePathway())
	assert.Equal(t, "Electrician", c.Profile().CareerAspiration, "inputs are kept")

	c.Submit(t.Context())
	c.StartNewPathway()
	assert.Equal(t, FormView{Step: 1}, c.View())
	assert.Equal(t, pathway.DefaultProfile("en"), c.Profile())
	assert.Equal(t, "https://navigator.example/", c.Location())
}

func TestStartNewFromPublicPathway(t *testing.T) {
	h := newHarness(t)
	shared := savedPathway("path_shared", "Your Pathway to becoming a Tailor")
	h.deps.Location = share.ParseLocation("https://navigator.example/?pathway=path_shared")
	h.deps.Resolver = resolverFunc(func(context.Context, string) (*pathway.Pathway, error) { return &shared, nil })

	c := h.controller()
	c.Start(t.Context())
	require.Equal(t, ViewPublicPathway, c.View().Name())

	c.StartNewPathway()
	assert.Equal(t, ViewLogin, c.View().Name())
	assert.Empty(t, share.ParseLocation(c.Location()).SharedID())
}

func TestViewSavedPathwayAndNavigation(t *testing.T) {
	saved := savedPathway("path_saved", "Your Pathway to becoming a Solar Technician")
	c := newHarness(t).signedIn(t, saved)

	c.ViewPathway(&c.User().SavedPathways[0])
	assert.Equal(t, ViewPathway, c.View().Name())
	assert.Equal(t, "Solar Technician", c.Profile().CareerAspiration)
	assert.True(t, c.IsSaved())

	c.ShowInfo(InfoPrivacy)
	assert.Equal(t, ViewPrivacy, c.View().Name())
	c.ShowInfo(InfoContact)
	assert.Equal(t, ViewContact, c.View().Name())

	c.NavigateHome()
	assert.Equal(t, ViewDashboard, c.View().Name())
	assert.Equal(t, pathway.DefaultProfile("en"), c.Profile())

	c.ViewPathway(&c.User().SavedPathways[0])
	c.BackToDashboard()
	assert.Equal(t, ViewDashboard, c.View().Name())
}

func TestInfoPagesWhileSignedOut(t *testing.T) {
	c := newHarness(t).controller()
	c.Start(t.Context())

	c.ShowInfo(InfoAbout)
	assert.Equal(t, ViewAbout, c.View().Name())
	c.NavigateHome()
	assert.Equal(t, ViewLogin, c.View().Name())
}

func TestAspirationFromTitle(t *testing.T) {
	tests := map[string]string{
		"Personalized Pathway to become a Welder":       "Welder",
		"personalized pathway to BECOME A Data Analyst": "Data Analyst",
		"Your Pathway to becoming a Chef":               "Chef",
		"Solar Technician Roadmap":                      "Solar Technician Roadmap",
		"Your Pathway to becoming a Your Pathway to becoming a X": "Your Pathway to becoming a X",
	}
	for title, want := range tests {
		assert.Equal(t, want, AspirationFromTitle(title), title)
	}
}

func TestHeaderLanguageSelector(t *testing.T) {
	h := newHarness(t)
	c := h.signedIn(t)

	assert.True(t, c.SetLanguage("ta"))
	assert.Equal(t, "ta", h.locale.Code())
	assert.Equal(t, "ta", c.Profile().PreferredLanguage)

	assert.False(t, c.SetLanguage("fr"))
	assert.Equal(t, "ta", h.locale.Code())
	assert.Equal(t, "ta", c.Profile().PreferredLanguage)
}

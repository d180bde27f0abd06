package app

import (
	"context"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/skillnav/internal/exam"
	"github.com/abhisek/skillnav/internal/i18n"
	"github.com/abhisek/skillnav/internal/navigator"
	"github.com/abhisek/skillnav/internal/pathway"
	"github.com/abhisek/skillnav/internal/router"
	"github.com/abhisek/skillnav/internal/screen"
	"github.com/abhisek/skillnav/internal/screen/screentest"
	"github.com/abhisek/skillnav/internal/screens/auth"
	chatscreen "github.com/abhisek/skillnav/internal/screens/chat"
	"github.com/abhisek/skillnav/internal/screens/dashboard"
	"github.com/abhisek/skillnav/internal/screens/examhub"
	"github.com/abhisek/skillnav/internal/screens/form"
	"github.com/abhisek/skillnav/internal/screens/info"
	"github.com/abhisek/skillnav/internal/screens/pathwayview"
	"github.com/abhisek/skillnav/internal/session"
	"github.com/abhisek/skillnav/internal/ui/layout"
)

func started(t *testing.T, user *session.User) *AppModel {
	t.Helper()
	env := screentest.Env(t, user, nil)
	m := New(env)
	m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	m.Update(screen.StartupDoneMsg{Result: env.Ctrl.ResolveStartup(env.Ctx)})
	return m
}

func key(code rune, mod tea.KeyMod) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code, Mod: mod}
}

func TestStartupShowsLogin(t *testing.T) {
	m := started(t, nil)
	if _, ok := m.router.Base().(*auth.LoginScreen); !ok {
		t.Fatalf("expected login screen, got %T", m.router.Base())
	}
	if !strings.Contains(m.router.Base().View(100, 30), "Welcome Back") {
		t.Error("login screen not rendered")
	}
}

func TestStartupRemembersUser(t *testing.T) {
	m := started(t, &session.User{Name: "Asha", Email: "asha@example.in"})
	if _, ok := m.router.Base().(*dashboard.DashboardScreen); !ok {
		t.Fatalf("expected dashboard, got %T", m.router.Base())
	}
	if got := m.header().Welcome; got != "Welcome, Asha" {
		t.Errorf("header greeting = %q", got)
	}
}

func TestLanguageCycleRebuildsScreen(t *testing.T) {
	m := started(t, nil)
	before := m.router.Base()

	m.Update(key('l', tea.ModCtrl))

	if got := m.env.Ctrl.Translator().Locale().Code(); got != "hi" {
		t.Fatalf("expected hi after cycling, got %s", got)
	}
	if m.router.Base() == before {
		t.Error("base screen should be rebuilt in the new language")
	}
}

func TestNextLanguageWraps(t *testing.T) {
	langs := i18n.Languages()
	last := langs[len(langs)-1].Code
	if got := nextLanguage(last); got != langs[0].Code {
		t.Errorf("nextLanguage(%s) = %s, want %s", last, got, langs[0].Code)
	}
	if got := nextLanguage("xx"); got != langs[0].Code {
		t.Errorf("unknown code should restart at %s, got %s", langs[0].Code, got)
	}
}

func TestInfoPageKeys(t *testing.T) {
	m := started(t, nil)
	m.Update(key(tea.KeyF2, 0))

	if _, ok := m.router.Base().(*info.InfoScreen); !ok {
		t.Fatalf("expected info screen, got %T", m.router.Base())
	}
	if v, ok := m.env.Ctrl.View().(navigator.InfoView); !ok || v.Page != navigator.InfoPrivacy {
		t.Errorf("expected privacy page, got %#v", m.env.Ctrl.View())
	}
}

func TestChatOverlay(t *testing.T) {
	m := started(t, nil)
	m.Update(key('t', tea.ModCtrl))
	if m.router.Depth() != 1 {
		t.Fatal("chat must not open while signed out")
	}

	m = started(t, &session.User{Name: "Asha", Email: "asha@example.in"})
	m.Update(key('t', tea.ModCtrl))
	if _, ok := m.router.Active().(*chatscreen.ChatScreen); !ok {
		t.Fatalf("expected chat overlay, got %T", m.router.Active())
	}

	_, cmd := m.Update(key(tea.KeyEscape, 0))
	if cmd == nil {
		t.Fatal("esc should request a pop")
	}
	m.Update(router.PopScreenMsg{})
	if m.router.Depth() != 1 {
		t.Errorf("expected overlay closed, depth %d", m.router.Depth())
	}
}

func TestLogoutClosesOverlay(t *testing.T) {
	m := started(t, &session.User{Name: "Asha", Email: "asha@example.in"})
	m.Update(key('t', tea.ModCtrl))
	m.Update(key('x', tea.ModCtrl))

	if m.router.Depth() != 1 {
		t.Errorf("expected overlays dropped on logout, depth %d", m.router.Depth())
	}
	if _, ok := m.router.Base().(*auth.LoginScreen); !ok {
		t.Errorf("expected login screen after logout, got %T", m.router.Base())
	}
}

func TestStatusExpiresBySeq(t *testing.T) {
	m := started(t, nil)
	m.status = layout.Status{Text: "Saved"}
	m.statusSeq = 2

	m.Update(clearStatusMsg{seq: 1})
	if m.status.Text != "Saved" {
		t.Error("stale clear should leave the newer status")
	}
	m.Update(clearStatusMsg{seq: 2})
	if m.status.Text != "" {
		t.Error("status should be cleared")
	}
}

type generatorFunc func(context.Context, pathway.Profile) (*pathway.Pathway, error)

func (f generatorFunc) Generate(ctx context.Context, p pathway.Profile) (*pathway.Pathway, error) {
	return f(ctx, p)
}

type plannerFunc func(context.Context, pathway.Profile, exam.Exam) (*exam.Plan, error)

func (f plannerFunc) Generate(ctx context.Context, p pathway.Profile, e exam.Exam) (*exam.Plan, error) {
	return f(ctx, p, e)
}

func TestGenerateAndPlanFlow(t *testing.T) {
	env := screentest.Env(t, &session.User{Name: "Asha", Email: "asha@example.in"}, func(d *navigator.Deps) {
		d.Pathways = generatorFunc(func(_ context.Context, p pathway.Profile) (*pathway.Pathway, error) {
			return &pathway.Pathway{
				Title:   "Personalized Pathway to become a " + p.CareerAspiration,
				Summary: "Hands-on route into the trade.",
				Steps:   []pathway.Step{{Stage: pathway.StageFoundational, Title: "Basics", Duration: "2 months", NSQFLevel: "Level 3"}},
			}, nil
		})
		d.Exams = plannerFunc(func(_ context.Context, _ pathway.Profile, e exam.Exam) (*exam.Plan, error) {
			return &exam.Plan{
				ExamName:          e.Name,
				StudyPlan:         []exam.StudyStep{{Topic: "Quantitative Aptitude", Details: "Arithmetic", Duration: "4 weeks"}},
				PracticeQuestions: []exam.PracticeQuestion{{Question: "2+2?", Answer: "4"}},
			}, nil
		})
	})
	m := New(env)
	deliver := func(msg tea.Msg) { m.Update(msg) }
	m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	deliver(screen.StartupDoneMsg{Result: env.Ctrl.ResolveStartup(env.Ctx)})

	env.Ctrl.StartNewPathway()
	env.Ctrl.SetProfileField(navigator.FieldCareerAspiration, "Welder")
	deliver(screen.SyncMsg{})
	if _, ok := m.router.Base().(*form.FormScreen); !ok {
		t.Fatalf("expected form, got %T", m.router.Base())
	}

	screentest.Drain(env.Submit(), deliver)
	if _, ok := m.router.Base().(*pathwayview.PathwayScreen); !ok {
		t.Fatalf("expected pathway view, got %T", m.router.Base())
	}

	deliver(screentest.Key('p'))
	hub, ok := m.router.Base().(*examhub.ExamHubScreen)
	if !ok {
		t.Fatalf("expected exam hub, got %T", m.router.Base())
	}

	_, cmd := hub.Update(screentest.Special(tea.KeyEnter))
	screentest.Drain(cmd, deliver)
	v, ok := env.Ctrl.View().(navigator.ExamHubView)
	if !ok || v.Hub.Plan == nil {
		t.Fatalf("expected a study plan, got %#v", env.Ctrl.View())
	}
	if m.router.Base() != hub {
		t.Error("finishing the plan should keep the same hub screen")
	}

	deliver(screentest.Special(tea.KeySpace))
	if !v.Hub.Plan.StudyPlan[0].Priority {
		t.Error("space should mark the first study step as priority")
	}

	deliver(screentest.Key('d'))
	if !strings.Contains(m.status.Text, env.ExportDir) {
		t.Errorf("status = %q, want the export path", m.status.Text)
	}

	deliver(screentest.Key('b'))
	if _, ok := m.router.Base().(*pathwayview.PathwayScreen); !ok {
		t.Errorf("expected pathway view after leaving the hub, got %T", m.router.Base())
	}
}

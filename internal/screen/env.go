package screen

import (
	"context"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/skillnav/internal/exam"
	"github.com/abhisek/skillnav/internal/navigator"
	"github.com/abhisek/skillnav/internal/pathway"
)

// Env is what every screen shares: the controller and the context that
// bounds background work.
type Env struct {
	Ctx       context.Context
	Ctrl      *navigator.Controller
	ExportDir string
}

// T translates key in the current locale.
func (e *Env) T(key string, args ...string) string {
	return e.Ctrl.Translator().T(key, args...)
}

// Option translates a constant option label.
func (e *Env) Option(group, option string) string {
	return e.Ctrl.Translator().Option(group, option)
}

// StartupDoneMsg carries the startup lookups back to the update loop.
type StartupDoneMsg struct {
	Result navigator.StartupResult
}

// PathwayDoneMsg carries a finished generation request.
type PathwayDoneMsg struct {
	Ticket  navigator.SubmitTicket
	Pathway *pathway.Pathway
	Err     error
}

// ExamPlanDoneMsg carries a finished study plan request.
type ExamPlanDoneMsg struct {
	Ticket navigator.ExamTicket
	Plan   *exam.Plan
	Err    error
}

// ChatReplyMsg carries the assistant's reply.
type ChatReplyMsg struct {
	Ticket navigator.ChatTicket
	Reply  string
	Err    error
}

// SyncMsg asks the app to re-read the controller after a synchronous
// action.
type SyncMsg struct{}

// Sync returns a command producing SyncMsg.
func Sync() tea.Msg { return SyncMsg{} }

// Startup resolves the shared link and the remembered user off the update
// loop.
func (e *Env) Startup() tea.Cmd {
	ctx, ctrl := e.Ctx, e.Ctrl
	return func() tea.Msg {
		return StartupDoneMsg{Result: ctrl.ResolveStartup(ctx)}
	}
}

// Submit leaves the form and starts pathway generation.
func (e *Env) Submit() tea.Cmd {
	t, ok := e.Ctrl.BeginSubmit()
	if !ok {
		return nil
	}
	ctx, ctrl := e.Ctx, e.Ctrl
	return tea.Batch(Sync, func() tea.Msg {
		p, err := ctrl.Generate(ctx, t)
		return PathwayDoneMsg{Ticket: t, Pathway: p, Err: err}
	})
}

// PlanExam starts a study plan request for the selected exam.
func (e *Env) PlanExam() tea.Cmd {
	t, ok := e.Ctrl.BeginExamPlan()
	if !ok {
		return nil
	}
	ctx, ctrl := e.Ctx, e.Ctrl
	return func() tea.Msg {
		plan, err := ctrl.GenerateExamPlan(ctx, t)
		return ExamPlanDoneMsg{Ticket: t, Plan: plan, Err: err}
	}
}

// AskChat sends a question to the assistant.
func (e *Env) AskChat(text string) tea.Cmd {
	t, ok := e.Ctrl.AskChat(text)
	if !ok {
		return nil
	}
	ctx, ctrl := e.Ctx, e.Ctrl
	return func() tea.Msg {
		reply, err := ctrl.ReplyChat(ctx, t)
		return ChatReplyMsg{Ticket: t, Reply: reply, Err: err}
	}
}

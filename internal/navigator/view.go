package navigator

import (
	"github.com/abhisek/skillnav/internal/pathway"
	"github.com/abhisek/skillnav/internal/session"
)

// ViewName identifies a view state.
type ViewName string

const (
	ViewLoading        ViewName = "loading"
	ViewLogin          ViewName = "login"
	ViewRegister       ViewName = "register"
	ViewForgotPassword ViewName = "forgotPassword"
	ViewDashboard      ViewName = "dashboard"
	ViewForm           ViewName = "form"
	ViewPathway        ViewName = "pathway"
	ViewExamHub        ViewName = "examHub"
	ViewAbout          ViewName = "about"
	ViewPrivacy        ViewName = "privacy"
	ViewContact        ViewName = "contact"
	ViewPublicPathway  ViewName = "publicPathway"
)

// View is the current screen together with the data it needs. The set of
// implementations is closed.
type View interface {
	Name() ViewName
	isView()
}

// LoadingPurpose says what a LoadingView is waiting for.
type LoadingPurpose int

const (
	LoadingStartup LoadingPurpose = iota
	LoadingPathway
)

type LoadingView struct {
	Purpose LoadingPurpose
}

type LoginView struct {
	Error string
}

type RegisterView struct {
	Error string
}

// ForgotPasswordView shows the reset form, or the confirmation once
// Submitted.
type ForgotPasswordView struct {
	Submitted bool
	Email     string
	Error     string
}

type DashboardView struct {
	User *session.User
}

// FormView is the two-step profile form. Step is 1 or 2.
type FormView struct {
	Step  int
	Error string
}

type PathwayView struct {
	Pathway *pathway.Pathway
}

type ExamHubView struct {
	Pathway *pathway.Pathway
	Hub     *ExamHub
}

// InfoPage is one of the static pages.
type InfoPage string

const (
	InfoAbout   InfoPage = "about"
	InfoPrivacy InfoPage = "privacy"
	InfoContact InfoPage = "contact"
)

type InfoView struct {
	Page InfoPage
}

type PublicPathwayView struct {
	Pathway *pathway.Pathway
}

func (LoadingView) Name() ViewName        { return ViewLoading }
func (LoginView) Name() ViewName          { return ViewLogin }
func (RegisterView) Name() ViewName       { return ViewRegister }
func (ForgotPasswordView) Name() ViewName { return ViewForgotPassword }
func (DashboardView) Name() ViewName      { return ViewDashboard }
func (FormView) Name() ViewName           { return ViewForm }
func (PathwayView) Name() ViewName        { return ViewPathway }
func (ExamHubView) Name() ViewName        { return ViewExamHub }
func (PublicPathwayView) Name() ViewName  { return ViewPublicPathway }

func (v InfoView) Name() ViewName {
	switch v.Page {
	case InfoPrivacy:
		return ViewPrivacy
	case InfoContact:
		return ViewContact
	default:
		return ViewAbout
	}
}

func (LoadingView) isView()        {}
func (LoginView) isView()          {}
func (RegisterView) isView()       {}
func (ForgotPasswordView) isView() {}
func (DashboardView) isView()      {}
func (FormView) isView()           {}
func (PathwayView) isView()        {}
func (ExamHubView) isView()        {}
func (InfoView) isView()           {}
func (PublicPathwayView) isView()  {}

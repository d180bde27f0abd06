package navigator

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/abhisek/skillnav/internal/exam"
	"github.com/abhisek/skillnav/internal/pathway"
)

// ExamHub is the state of the exam preparation view.
type ExamHub struct {
	// Suggested lists the exams ordered by fit to the learner.
	Suggested    []exam.Exam
	SelectedKey  string
	Generating   bool
	Plan         *exam.Plan
	Error        string
	PriorityOnly bool
}

// VisiblePlan is the plan as displayed: only the priority items when the
// filter is on.
func (h *ExamHub) VisiblePlan() *exam.Plan {
	if h.Plan == nil {
		return nil
	}
	if h.PriorityOnly {
		return h.Plan.PriorityOnly()
	}
	return h.Plan
}

// PrepareForExams opens the exam hub for the active pathway.
func (c *Controller) PrepareForExams() {
	v, ok := c.View().(PathwayView)
	if !ok {
		return
	}
	c.examSeq++
	suggested := exam.Suggest(c.profile.AcademicBackground, c.profile.CareerAspiration, v.Pathway.Title)
	c.view = ExamHubView{
		Pathway: v.Pathway,
		Hub:     &ExamHub{Suggested: suggested, SelectedKey: suggested[0].Key},
	}
}

// BackToPathway leaves the exam hub. A plan still being generated is
// discarded.
func (c *Controller) BackToPathway() {
	v, ok := c.View().(ExamHubView)
	if !ok {
		return
	}
	c.examSeq++
	c.view = PathwayView{Pathway: v.Pathway}
}

func (c *Controller) hub() *ExamHub {
	if v, ok := c.View().(ExamHubView); ok {
		return v.Hub
	}
	return nil
}

// SelectExam chooses the exam to plan for.
func (c *Controller) SelectExam(key string) {
	if h := c.hub(); h != nil {
		h.SelectedKey = key
	}
}

// ExamTicket identifies one study plan request.
type ExamTicket struct {
	epoch   uint64
	seq     uint64
	Profile LearnerProfile
	Exam    exam.Exam
}

// BeginExamPlan starts a study plan request for the selected exam.
func (c *Controller) BeginExamPlan() (ExamTicket, bool) {
	h := c.hub()
	if h == nil || h.Generating {
		return ExamTicket{}, false
	}
	e, ok := exam.Lookup(h.SelectedKey)
	if !ok {
		h.Error = c.tr.T("examHub.error.selectExam")
		return ExamTicket{}, false
	}
	c.examSeq++
	h.Generating = true
	h.Error = ""
	h.Plan = nil
	h.PriorityOnly = false

	profile := cloneProfile(c.profile)
	if profile.PreferredLanguage == "" || profile.PreferredLanguage == NotApplicable {
		profile.PreferredLanguage = c.tr.Locale().Code()
	}
	return ExamTicket{epoch: c.epoch, seq: c.examSeq, Profile: profile, Exam: e}, true
}

// GenerateExamPlan runs the study plan request. It reads no controller
// state.
func (c *Controller) GenerateExamPlan(ctx context.Context, t ExamTicket) (*exam.Plan, error) {
	if c.exams == nil {
		return nil, fmt.Errorf("generate exam plan: %w", errUnavailable)
	}
	return c.exams.Generate(ctx, t.Profile, t.Exam)
}

// CompleteExamPlan applies a study plan result unless the ticket is stale.
func (c *Controller) CompleteExamPlan(t ExamTicket, plan *exam.Plan, err error) bool {
	h := c.hub()
	if h == nil || t.epoch != c.epoch || t.seq != c.examSeq {
		c.logger.Debug("discarding stale exam plan")
		return false
	}
	h.Generating = false
	if err == nil && plan == nil {
		err = fmt.Errorf("generate exam plan: empty result")
	}
	if err != nil {
		c.logger.Warn("exam plan generation failed", zap.String("exam", t.Exam.Key), zap.Error(err))
		h.Error = c.tr.T("examHub.error.failed")
		return true
	}
	h.Plan = plan
	return true
}

// GeneratePlan runs a study plan request to completion on the calling
// goroutine.
func (c *Controller) GeneratePlan(ctx context.Context) {
	t, ok := c.BeginExamPlan()
	if !ok {
		return
	}
	plan, err := c.GenerateExamPlan(ctx, t)
	c.CompleteExamPlan(t, plan, err)
}

// ToggleStepPriority flips the priority mark of study step i.
func (c *Controller) ToggleStepPriority(i int) bool {
	h := c.hub()
	return h != nil && h.Plan != nil && h.Plan.ToggleStepPriority(i)
}

// ToggleQuestionPriority flips the priority mark of practice question i.
func (c *Controller) ToggleQuestionPriority(i int) bool {
	h := c.hub()
	return h != nil && h.Plan != nil && h.Plan.ToggleQuestionPriority(i)
}

// SetPriorityOnly turns the priority filter on or off.
func (c *Controller) SetPriorityOnly(on bool) {
	if h := c.hub(); h != nil {
		h.PriorityOnly = on
	}
}

// ExamPathway returns the pathway the hub was opened from.
func (c *Controller) ExamPathway() *pathway.Pathway {
	if v, ok := c.View().(ExamHubView); ok {
		return v.Pathway
	}
	return nil
}

// ChooseAnotherExam drops the current plan so another exam can be picked.
func (c *Controller) ChooseAnotherExam() {
	if h := c.hub(); h != nil && !h.Generating {
		h.Plan = nil
		h.PriorityOnly = false
		h.Error = ""
	}
}

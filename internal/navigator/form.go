package navigator

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/abhisek/skillnav/internal/pathway"
)

// FormSteps is the number of form steps.
const FormSteps = 2

// SetProfileField updates one field of the draft profile. Changing the
// language also switches the interface locale.
func (c *Controller) SetProfileField(f Field, value string) {
	if f == FieldPreferredLanguage {
		c.SetLanguage(value)
		return
	}
	if !setField(&c.profile, f, value) {
		c.logger.Warn("unknown profile field", zap.String("field", string(f)))
	}
}

// ToggleSkill adds skill when checked and removes it otherwise. A skill is
// never listed twice.
func (c *Controller) ToggleSkill(skill string, checked bool) {
	toggleSkill(&c.profile, skill, checked)
}

// Step returns the current form step.
func (c *Controller) Step() int {
	return c.step
}

func (c *Controller) NextStep() {
	c.moveStep(1)
}

func (c *Controller) PrevStep() {
	c.moveStep(-1)
}

func (c *Controller) moveStep(delta int) {
	fv, ok := c.view.(FormView)
	if !ok {
		return
	}
	c.step = min(max(c.step+delta, 1), FormSteps)
	fv.Step = c.step
	c.view = fv
}

// SubmitTicket identifies one pathway generation request.
type SubmitTicket struct {
	epoch   uint64
	Profile LearnerProfile
}

// BeginSubmit leaves the form for the loading view and returns the ticket
// for the generation request. ok is false when not on the form.
func (c *Controller) BeginSubmit() (t SubmitTicket, ok bool) {
	if _, onForm := c.View().(FormView); !onForm {
		return SubmitTicket{}, false
	}
	c.epoch++
	c.view = LoadingView{Purpose: LoadingPathway}
	return SubmitTicket{epoch: c.epoch, Profile: cloneProfile(c.profile)}, true
}

// Generate runs the generation request for t. It reads no controller
// state.
func (c *Controller) Generate(ctx context.Context, t SubmitTicket) (*pathway.Pathway, error) {
	if c.pathways == nil {
		return nil, fmt.Errorf("generate pathway: %w", errUnavailable)
	}
	return c.pathways.Generate(ctx, t.Profile)
}

// CompleteSubmit applies a generation result. Results for a ticket that is
// no longer current are discarded and false is returned.
func (c *Controller) CompleteSubmit(t SubmitTicket, p *pathway.Pathway, err error) bool {
	if lv, ok := c.view.(LoadingView); !ok || lv.Purpose != LoadingPathway || t.epoch != c.epoch {
		c.logger.Debug("discarding stale generation result")
		return false
	}
	if err == nil && p == nil {
		err = fmt.Errorf("generate pathway: empty result")
	}
	if err != nil {
		c.logger.Warn("pathway generation failed", zap.Error(err))
		c.view = FormView{Step: c.step, Error: c.tr.T("app.error.pathwayGeneration")}
		return true
	}

	pathway.Stamp(p, c.now())
	c.view = PathwayView{Pathway: p}
	return true
}

// Submit runs a generation request to completion on the calling
// goroutine.
func (c *Controller) Submit(ctx context.Context) {
	t, ok := c.BeginSubmit()
	if !ok {
		return
	}
	p, err := c.Generate(ctx, t)
	c.CompleteSubmit(t, p, err)
}

// SetLanguage switches the interface locale from the header selector and
// keeps the draft profile's language in step with it.
func (c *Controller) SetLanguage(code string) bool {
	if !c.tr.Locale().Set(code) {
		c.logger.Warn("unsupported language", zap.String("language", code))
		return false
	}
	c.profile.PreferredLanguage = code
	return true
}

package navigator

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/abhisek/skillnav/internal/account"
	"github.com/abhisek/skillnav/internal/exam"
	"github.com/abhisek/skillnav/internal/pathway"
	"github.com/abhisek/skillnav/internal/share"
	"github.com/abhisek/skillnav/internal/store"
)

// SavePathway adds the active pathway to the user's saved list. It does
// nothing without an active pathway or a user.
func (c *Controller) SavePathway(ctx context.Context) bool {
	p := c.ActivePathway()
	if p == nil || c.user == nil {
		return false
	}

	updated, err := c.accounts.SavePathway(ctx, c.user, *p)
	if err != nil {
		if errors.Is(err, account.ErrAlreadySaved) {
			c.notify(NoticeInfo, "app.alert.pathwayAlreadySaved")
			return false
		}
		c.logger.Error("save pathway", zap.String("pathway_id", p.ID), zap.Error(err))
		c.notify(NoticeError, "app.alert.pathwaySaveFailed")
		return false
	}

	// The account already holds the pathway, so a stale session record
	// only costs the remembered copy.
	if err := c.sessions.Persist(ctx, updated); err != nil {
		c.logger.Warn("persist session after save", zap.Error(err))
	}
	c.user = updated
	c.notify(NoticeSuccess, "app.alert.pathwaySaved")
	return true
}

// IsSaved reports whether the active pathway is in the user's saved list.
func (c *Controller) IsSaved() bool {
	p := c.ActivePathway()
	return p != nil && c.user != nil && c.user.HasSaved(p.ID)
}

// StartNewPathway resets the form and starts over.
func (c *Controller) StartNewPathway() {
	c.resetFlow()
	c.profile = pathway.DefaultProfile(c.tr.Locale().Code())
	if c.user == nil {
		c.view = LoginView{}
		return
	}
	c.view = FormView{Step: c.step}
}

// EditPathwayInputs returns to the form keeping the last inputs.
func (c *Controller) EditPathwayInputs() {
	c.resetFlow()
	c.view = FormView{Step: c.step}
}

func (c *Controller) resetFlow() {
	c.epoch++
	c.step = 1
	c.location.StripSharedID()
}

// ViewPathway shows a saved or shared pathway.
func (c *Controller) ViewPathway(p *pathway.Pathway) {
	if p != nil {
		c.profile = RepresentativeProfile(p, c.tr.Locale().Code())
	}
	c.view = PathwayView{Pathway: p}
}

// NavigateHome goes to the dashboard, or to login when signed out.
func (c *Controller) NavigateHome() {
	if c.user == nil {
		c.view = LoginView{}
		return
	}
	c.step = 1
	c.profile = pathway.DefaultProfile(c.tr.Locale().Code())
	c.view = DashboardView{User: c.user}
}

// BackToDashboard leaves the pathway for the dashboard.
func (c *Controller) BackToDashboard() {
	c.view = c.homeView()
}

// ShowInfo opens a static page.
func (c *Controller) ShowInfo(page InfoPage) {
	c.view = InfoView{Page: page}
}

// SharePathway publishes the displayed pathway and returns its link.
func (c *Controller) SharePathway(ctx context.Context) (string, bool) {
	p := c.DisplayedPathway()
	if p == nil {
		return "", false
	}
	if c.publisher == nil {
		c.notify(NoticeError, "pathwayDisplay.shareFailed")
		return "", false
	}
	id, err := c.publisher.Publish(ctx, p)
	if err != nil {
		c.logger.Error("share pathway", zap.String("pathway_id", p.ID), zap.Error(err))
		c.notify(NoticeError, "pathwayDisplay.shareFailed")
		return "", false
	}
	link := share.ShareLink(c.shareBase, id)
	c.notify(NoticeSuccess, "pathwayDisplay.linkCopied")
	return link, true
}

// SubmitFeedback records the learner's comment on the displayed pathway.
func (c *Controller) SubmitFeedback(ctx context.Context, text string) bool {
	text = strings.TrimSpace(text)
	if text == "" {
		c.notify(NoticeError, "feedbackModal.error.empty")
		return false
	}
	p := c.DisplayedPathway()
	if p == nil {
		return false
	}
	if c.feedback == nil {
		c.notify(NoticeError, "feedbackModal.error.failed")
		return false
	}

	data := store.FeedbackEventData{PathwayID: p.ID, Message: text}
	if c.user != nil {
		data.AccountEmail = c.user.Email
	}
	if err := c.feedback.AppendFeedback(ctx, data); err != nil {
		c.logger.Error("record feedback", zap.Error(err))
		c.notify(NoticeError, "feedbackModal.error.failed")
		return false
	}
	c.notify(NoticeSuccess, "feedbackModal.submitted.message")
	return true
}

// ExportPathway writes the displayed pathway as Markdown into dir and
// returns the file path.
func (c *Controller) ExportPathway(dir string) (string, bool) {
	p := c.DisplayedPathway()
	if p == nil {
		return "", false
	}
	return c.export(dir, pathway.FileName(p), pathway.Markdown(p, c.tr.T))
}

// ExportExamPlan writes the study plan as shown, honouring the priority
// filter, into dir.
func (c *Controller) ExportExamPlan(dir string) (string, bool) {
	v, ok := c.View().(ExamHubView)
	if !ok {
		return "", false
	}
	plan := v.Hub.VisiblePlan()
	if plan == nil {
		return "", false
	}
	return c.export(dir, exam.FileName(plan), exam.Markdown(plan, c.tr.T))
}

func (c *Controller) export(dir, name, content string) (string, bool) {
	path := filepath.Join(dir, name)
	if err := writeFile(path, content); err != nil {
		c.logger.Error("export", zap.String("path", path), zap.Error(err))
		c.notify(NoticeError, "app.alert.exportFailed")
		return "", false
	}
	c.notify(NoticeSuccess, "app.alert.exported", "path", path)
	return path, true
}

func writeFile(path, content string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create export dir: %w", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

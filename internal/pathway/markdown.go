package pathway

import (
	"fmt"
	"net/url"
	"strings"
)

// Translate resolves a translation key with placeholder name/value pairs.
type Translate func(key string, args ...string) string

// VideoSearchURL returns a YouTube search link for a step's suggested
// tutorial, falling back to the step title.
func VideoSearchURL(s Step) string {
	q := s.SuggestedVideo
	if q == "" {
		q = s.Title
	}
	return "https://www.youtube.com/results?search_query=" + url.QueryEscape(q)
}

// Markdown renders p as a downloadable document with headings in the
// current language.
func Markdown(p *Pathway, t Translate) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# %s\n\n%s\n\n", p.Title, p.Summary)

	fmt.Fprintf(&b, "## %s\n\n", t("pathwayDisplay.timelineTitle"))
	for i, s := range p.Steps {
		fmt.Fprintf(&b, "### %d. %s\n\n", i+1, s.Title)
		fmt.Fprintf(&b, "*%s*\n\n", s.Stage)
		if s.Description != "" {
			fmt.Fprintf(&b, "%s\n\n", s.Description)
		}
		fmt.Fprintf(&b, "- %s %s\n", t("pathwayDisplay.duration"), s.Duration)
		fmt.Fprintf(&b, "- %s %s\n", t("pathwayDisplay.nsqfLevel"), s.NSQFLevel)
		if s.Provider != "" {
			fmt.Fprintf(&b, "- %s\n", s.Provider)
		}
		fmt.Fprintf(&b, "- [%s](%s)\n\n", t("pathwayDisplay.findTutorials"), VideoSearchURL(s))
	}

	mi := p.MarketInsights
	fmt.Fprintf(&b, "## %s\n\n", t("marketInsights.title"))
	fmt.Fprintf(&b, "**%s:** %s\n\n", t("marketInsights.jobDemand"), mi.JobDemand)
	fmt.Fprintf(&b, "**%s:** %s\n\n", t("marketInsights.salary"), mi.SalaryRange)
	writeList(&b, t("marketInsights.hiringCompanies"), mi.TopHiringCompanies)
	writeList(&b, t("marketInsights.keySkills"), mi.KeySkillsInDemand)

	if cg := p.CareerGuidance; cg != nil {
		fmt.Fprintf(&b, "## %s\n\n", t("careerGuidance.title"))
		if len(cg.CompanyAnalyses) > 0 {
			fmt.Fprintf(&b, "**%s**\n\n", t("careerGuidance.companiesAndSectors"))
			for _, c := range cg.CompanyAnalyses {
				fmt.Fprintf(&b, "- %s (%s)\n", c.Name, c.Sector)
			}
			b.WriteString("\n")
		}
		rc := cg.RecommendedCompany
		fmt.Fprintf(&b, "### %s: %s\n\n%s\n\n", t("careerGuidance.recommendedCompany"), rc.Name, rc.Rationale)
		fmt.Fprintf(&b, "#### %s\n\n", t("careerGuidance.roadmap", "companyName", rc.Name))
		writeList(&b, t("careerGuidance.skillsToHighlight"), rc.JobStrategy.SkillsToHighlight)
		writeList(&b, t("careerGuidance.interviewPrep"), rc.JobStrategy.InterviewPrep)
		writeList(&b, t("careerGuidance.networkingTips"), rc.JobStrategy.NetworkingTips)
	}

	return b.String()
}

func writeList(b *strings.Builder, title string, items []string) {
	if len(items) == 0 {
		return
	}
	fmt.Fprintf(b, "**%s**\n\n", title)
	for _, it := range items {
		fmt.Fprintf(b, "- %s\n", it)
	}
	b.WriteString("\n")
}

// FileName returns a filesystem-safe name for p's download.
func FileName(p *Pathway) string {
	return Slug(p.Title, "pathway") + ".md"
}

// Slug lowercases s into an ASCII file-name stem, or returns fallback when
// nothing usable remains.
func Slug(s, fallback string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(s) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			dash = false
		case !dash && b.Len() > 0:
			b.WriteByte('-')
			dash = true
		}
	}
	out := strings.TrimSuffix(b.String(), "-")
	if out == "" {
		return fallback
	}
	if len(out) > 60 {
		out = strings.TrimSuffix(out[:60], "-")
	}
	return out
}

package exam

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/abhisek/skillnav/internal/pathway"
)

// Markdown renders the plan as a downloadable document.
func Markdown(p *Plan, t pathway.Translate) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# %s\n\n", t("examHub.plan.title", "examName", p.ExamName))

	fmt.Fprintf(&b, "## %s\n\n", t("examHub.plan.roadmap"))
	for i, s := range p.StudyPlan {
		mark := ""
		if s.Priority {
			mark = " ★"
		}
		fmt.Fprintf(&b, "%d. **%s**%s (%s)\n   %s\n", i+1, s.Topic, mark, s.Duration, s.Details)
	}
	b.WriteString("\n")

	writeList(&b, t("examHub.plan.books"), p.StudyMaterials.Books)
	writeList(&b, t("examHub.plan.courses"), p.StudyMaterials.OnlineCourses)

	if len(p.PracticeQuestions) > 0 {
		fmt.Fprintf(&b, "## %s\n\n", t("examHub.plan.questions"))
		for i, q := range p.PracticeQuestions {
			mark := ""
			if q.Priority {
				mark = " ★"
			}
			fmt.Fprintf(&b, "### %s%s\n\n%s\n\n**%s** %s\n\n",
				t("examHub.plan.question", "index", strconv.Itoa(i+1)), mark, q.Question,
				t("examHub.plan.answer"), q.Answer)
		}
	}

	return b.String()
}

func writeList(b *strings.Builder, title string, items []string) {
	if len(items) == 0 {
		return
	}
	fmt.Fprintf(b, "## %s\n\n", title)
	for _, it := range items {
		fmt.Fprintf(b, "- %s\n", it)
	}
	b.WriteString("\n")
}

// FileName returns the download name for p.
func FileName(p *Plan) string {
	return "study-plan-" + pathway.Slug(p.ExamName, "exam") + ".md"
}

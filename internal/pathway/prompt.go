package pathway

import (
	"fmt"
	"strings"
)

const systemPrompt = `You are a career counsellor for the National Council for Vocational Education and Training (NCVET) in India. You design practical, NSQF-aligned vocational training pathways that take a learner from where they are today to their career goal, using recognised Indian training providers and certifications where possible.`

// languageNames maps interface language codes to the language the
// pathway text should be written in.
var languageNames = map[string]string{
	"en": "English",
	"hi": "Hindi",
	"bn": "Bengali",
	"ta": "Tamil",
	"te": "Telugu",
	"mr": "Marathi",
}

// LanguageName returns the English name of a language code, defaulting to
// English.
func LanguageName(code string) string {
	if n, ok := languageNames[code]; ok {
		return n
	}
	return "English"
}

func buildUserMessage(p Profile) string {
	var b strings.Builder

	b.WriteString("Learner profile:\n")
	fmt.Fprintf(&b, "- Highest academic background: %s\n", p.AcademicBackground)
	if len(p.PriorSkills) == 0 {
		b.WriteString("- Prior skills: none\n")
	} else {
		fmt.Fprintf(&b, "- Prior skills: %s\n", strings.Join(p.PriorSkills, "; "))
	}
	fmt.Fprintf(&b, "- Career aspiration: %s\n", orUnspecified(p.CareerAspiration))
	fmt.Fprintf(&b, "- Preferred work location: %s\n", orUnspecified(p.PreferredLocation))
	fmt.Fprintf(&b, "- Learning pace: %s\n", p.LearningPace)

	fmt.Fprintf(&b, `
Instructions:
1. Build 4-8 steps that progress through the stages %s, skipping stages the learner has already covered.
2. Skip content that repeats the learner's prior skills; build on them instead.
3. Give each step a realistic duration for the chosen learning pace and the NSQF level of its qualification.
4. Name a real provider (e.g. Skill India Digital, NSDC partners, NPTEL, ITIs) when one fits, otherwise leave it empty.
5. Market insights and company guidance must reflect the preferred location when one is given.
6. Write every human-readable value in %s. Keep the stage values exactly as listed in the schema.`,
		stageList(), LanguageName(p.PreferredLanguage))

	return b.String()
}

func orUnspecified(s string) string {
	if strings.TrimSpace(s) == "" {
		return "not specified"
	}
	return s
}

func stageList() string {
	names := make([]string, len(Stages))
	for i, s := range Stages {
		names[i] = fmt.Sprintf("%q", string(s))
	}
	return strings.Join(names, ", ")
}

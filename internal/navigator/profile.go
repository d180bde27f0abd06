package navigator

import (
	"regexp"
	"strings"

	"github.com/abhisek/skillnav/internal/pathway"
)

// LearnerProfile is the draft form input.
type LearnerProfile = pathway.Profile

// Field names an editable single-value profile field.
type Field string

const (
	FieldAcademicBackground Field = "academicBackground"
	FieldPreferredLocation  Field = "preferredLocation"
	FieldLearningPace       Field = "learningPace"
	FieldCareerAspiration   Field = "careerAspiration"
	FieldPreferredLanguage  Field = "preferredLanguage"
)

// NotApplicable fills representative profile fields that cannot be
// recovered from a pathway.
const NotApplicable = "N/A"

var titlePrefix = regexp.MustCompile(`(?i)Personalized Pathway to become a |Your Pathway to becoming a `)

// AspirationFromTitle recovers the career goal from a generated title by
// removing the first known title prefix.
func AspirationFromTitle(title string) string {
	if loc := titlePrefix.FindStringIndex(title); loc != nil {
		title = title[:loc[0]] + title[loc[1]:]
	}
	return strings.TrimSpace(title)
}

// RepresentativeProfile stands in for the unknown input a saved or shared
// pathway was generated from.
func RepresentativeProfile(p *pathway.Pathway, language string) LearnerProfile {
	return LearnerProfile{
		AcademicBackground: NotApplicable,
		PriorSkills:        []string{},
		PreferredLocation:  NotApplicable,
		LearningPace:       NotApplicable,
		CareerAspiration:   AspirationFromTitle(p.Title),
		PreferredLanguage:  language,
	}
}

// setField sets a free-form field. The language goes through SetLanguage.
func setField(p *LearnerProfile, f Field, value string) bool {
	switch f {
	case FieldAcademicBackground:
		p.AcademicBackground = value
	case FieldPreferredLocation:
		p.PreferredLocation = value
	case FieldLearningPace:
		p.LearningPace = value
	case FieldCareerAspiration:
		p.CareerAspiration = value
	default:
		return false
	}
	return true
}

func toggleSkill(p *LearnerProfile, skill string, checked bool) {
	if checked {
		if !p.HasSkill(skill) {
			p.PriorSkills = append(p.PriorSkills, skill)
		}
		return
	}
	out := p.PriorSkills[:0]
	for _, s := range p.PriorSkills {
		if s != skill {
			out = append(out, s)
		}
	}
	p.PriorSkills = out
}

func cloneProfile(p LearnerProfile) LearnerProfile {
	p.PriorSkills = append([]string{}, p.PriorSkills...)
	return p
}

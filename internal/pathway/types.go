// Package pathway defines training pathways and generates them from a
// learner profile with an LLM.
package pathway

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Stage is the curriculum stage of a pathway step.
type Stage string

const (
	StageFoundational   Stage = "Foundational Courses"
	StageCoreSkills     Stage = "Core Skills"
	StageSpecialization Stage = "Specialization"
	StageCertifications Stage = "Certifications"
	StageOnTheJob       Stage = "On-the-Job Training"
)

// Stages lists every stage in curriculum order.
var Stages = []Stage{
	StageFoundational,
	StageCoreSkills,
	StageSpecialization,
	StageCertifications,
	StageOnTheJob,
}

// Valid reports whether s is a known stage.
func (s Stage) Valid() bool {
	for _, st := range Stages {
		if s == st {
			return true
		}
	}
	return false
}

// Profile is the learner input a pathway is generated from.
type Profile struct {
	AcademicBackground string   `json:"academicBackground"`
	PriorSkills        []string `json:"priorSkills"`
	PreferredLocation  string   `json:"preferredLocation"`
	LearningPace       string   `json:"learningPace"`
	CareerAspiration   string   `json:"careerAspiration"`
	PreferredLanguage  string   `json:"preferredLanguage"`
}

// DefaultProfile returns the form's initial values for the given language.
func DefaultProfile(language string) Profile {
	return Profile{
		AcademicBackground: AcademicBackgrounds[0],
		PriorSkills:        []string{},
		LearningPace:       LearningPaceOptions[0],
		PreferredLanguage:  language,
	}
}

// HasSkill reports whether the profile lists skill.
func (p Profile) HasSkill(skill string) bool {
	for _, s := range p.PriorSkills {
		if s == skill {
			return true
		}
	}
	return false
}

// Step is one entry of a pathway's learning timeline.
type Step struct {
	Stage          Stage  `json:"stage"`
	Title          string `json:"title"`
	Description    string `json:"description"`
	Duration       string `json:"duration"`
	NSQFLevel      string `json:"nsqfLevel"`
	Provider       string `json:"provider,omitempty"`
	SuggestedVideo string `json:"suggestedVideo,omitempty"`
}

// MarketInsights summarizes the job market for the target career.
type MarketInsights struct {
	JobDemand          string   `json:"jobDemand"`
	SalaryRange        string   `json:"salaryRange"`
	TopHiringCompanies []string `json:"topHiringCompanies"`
	KeySkillsInDemand  []string `json:"keySkillsInDemand"`
}

// JobStrategy is the plan for getting hired at a recommended company.
type JobStrategy struct {
	SkillsToHighlight []string `json:"skillsToHighlight"`
	InterviewPrep     []string `json:"interviewPrep"`
	NetworkingTips    []string `json:"networkingTips"`
}

// RecommendedCompany is the single best-fit employer.
type RecommendedCompany struct {
	Name        string      `json:"name"`
	Rationale   string      `json:"rationale"`
	JobStrategy JobStrategy `json:"jobStrategy"`
}

// CompanyAnalysis names a company and its sector.
type CompanyAnalysis struct {
	Name   string `json:"name"`
	Sector string `json:"sector"`
}

// CareerGuidance is the optional employer-focused section of a pathway.
type CareerGuidance struct {
	CompanyAnalyses    []CompanyAnalysis  `json:"companyAnalyses"`
	RecommendedCompany RecommendedCompany `json:"recommendedCompany"`
}

// Pathway is a generated training pathway.
type Pathway struct {
	ID             string          `json:"id"`
	CreatedAt      string          `json:"createdAt"`
	Title          string          `json:"pathwayTitle"`
	Summary        string          `json:"summary"`
	Steps          []Step          `json:"steps"`
	MarketInsights MarketInsights  `json:"marketInsights"`
	CareerGuidance *CareerGuidance `json:"careerGuidance,omitempty"`
}

// IDPrefix starts every pathway identifier.
const IDPrefix = "path_"

// NewID returns a fresh pathway identifier. The UUIDv7 suffix is
// time-ordered, so ids sort by generation time.
func NewID() string {
	id, err := uuid.NewV7()
	if err != nil {
		id = uuid.New()
	}
	return IDPrefix + id.String()
}

// Stamp assigns a fresh id and the capture time to p.
func Stamp(p *Pathway, now time.Time) {
	p.ID = NewID()
	p.CreatedAt = now.UTC().Format("2006-01-02T15:04:05.000Z07:00")
}

// Created parses CreatedAt. The zero time is returned when it is malformed.
func (p *Pathway) Created() time.Time {
	t, err := time.Parse(time.RFC3339Nano, p.CreatedAt)
	if err != nil {
		return time.Time{}
	}
	return t
}

// Validate checks the invariants a generated pathway must satisfy.
func (p *Pathway) Validate() error {
	if p.Title == "" {
		return fmt.Errorf("missing pathway title")
	}
	if len(p.Steps) == 0 {
		return fmt.Errorf("pathway has no steps")
	}
	for i, s := range p.Steps {
		if !s.Stage.Valid() {
			return fmt.Errorf("step %d: unknown stage %q", i+1, s.Stage)
		}
		if s.Title == "" {
			return fmt.Errorf("step %d: missing title", i+1)
		}
	}
	return nil
}

// Package exam generates study plans for Indian competitive exams and
// tracks the learner's priority marks on them.
package exam

import (
	"fmt"
	"strings"
)

// OptionGroup is the locale constants group holding exam display names.
const OptionGroup = "competitive_exams"

// Exam is a competitive exam the hub can plan for.
type Exam struct {
	Key    string
	Name   string
	Fields []string
}

// Catalog lists the supported exams in display order.
var Catalog = []Exam{
	{Key: "GATE", Name: "GATE (Graduate Aptitude Test in Engineering)", Fields: []string{"Engineering", "Technology", "B.Tech / B.E."}},
	{Key: "NEET_PG", Name: "NEET-PG (National Eligibility cum Entrance Test for Post-Graduation)", Fields: []string{"Medical", "MBBS", "MD/MS"}},
	{Key: "UPSC_CSE", Name: "UPSC Civil Services Exam", Fields: []string{"Government", "Public Service"}},
	{Key: "CAT", Name: "CAT (Common Admission Test)", Fields: []string{"Management", "MBA"}},
	{Key: "SSC_CGL", Name: "SSC CGL (Staff Selection Commission - Combined Graduate Level)", Fields: []string{"Government", "Graduate"}},
	{Key: "IBPS_PO", Name: "IBPS PO (Institute of Banking Personnel Selection - Probationary Officer)", Fields: []string{"Banking", "Finance"}},
	{Key: "UGC_NET", Name: "UGC NET (University Grants Commission - National Eligibility Test)", Fields: []string{"Academia", "Research", "Postgraduate"}},
	{Key: "JEE", Name: "JEE Main & Advanced", Fields: []string{"Engineering", "12th Pass / Intermediate"}},
}

// Lookup returns the exam with key.
func Lookup(key string) (Exam, bool) {
	for _, e := range Catalog {
		if e.Key == key {
			return e, true
		}
	}
	return Exam{}, false
}

// Suggest returns the catalog ordered so exams whose fields appear in any
// of hints come first. Relative order is otherwise preserved.
func Suggest(hints ...string) []Exam {
	var matched, rest []Exam
	for _, e := range Catalog {
		if e.matches(hints) {
			matched = append(matched, e)
		} else {
			rest = append(rest, e)
		}
	}
	return append(matched, rest...)
}

func (e Exam) matches(hints []string) bool {
	for _, h := range hints {
		h = strings.ToLower(h)
		if h == "" {
			continue
		}
		for _, f := range e.Fields {
			if strings.Contains(h, strings.ToLower(f)) {
				return true
			}
		}
	}
	return false
}

// StudyStep is one topic of the study roadmap.
type StudyStep struct {
	Topic    string `json:"topic"`
	Details  string `json:"details"`
	Duration string `json:"duration"`
	Priority bool   `json:"priority,omitempty"`
}

// StudyMaterials lists recommended resources.
type StudyMaterials struct {
	Books         []string `json:"books"`
	OnlineCourses []string `json:"onlineCourses"`
}

// PracticeQuestion is a sample question with its answer.
type PracticeQuestion struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
	Priority bool   `json:"priority,omitempty"`
}

// Plan is a generated study plan. It is never persisted.
type Plan struct {
	ExamName          string             `json:"examName"`
	StudyPlan         []StudyStep        `json:"studyPlan"`
	StudyMaterials    StudyMaterials     `json:"studyMaterials"`
	PracticeQuestions []PracticeQuestion `json:"practiceQuestions"`
}

// Validate checks the invariants a generated plan must satisfy.
func (p *Plan) Validate() error {
	if p.ExamName == "" {
		return fmt.Errorf("missing exam name")
	}
	if len(p.StudyPlan) == 0 {
		return fmt.Errorf("plan has no study steps")
	}
	for i, s := range p.StudyPlan {
		if s.Topic == "" {
			return fmt.Errorf("study step %d: missing topic", i+1)
		}
	}
	return nil
}

// ToggleStepPriority flips the priority mark of study step i. It reports
// false when i is out of range.
func (p *Plan) ToggleStepPriority(i int) bool {
	if i < 0 || i >= len(p.StudyPlan) {
		return false
	}
	p.StudyPlan[i].Priority = !p.StudyPlan[i].Priority
	return true
}

// ToggleQuestionPriority flips the priority mark of practice question i.
func (p *Plan) ToggleQuestionPriority(i int) bool {
	if i < 0 || i >= len(p.PracticeQuestions) {
		return false
	}
	p.PracticeQuestions[i].Priority = !p.PracticeQuestions[i].Priority
	return true
}

// HasPriority reports whether any step or question is marked.
func (p *Plan) HasPriority() bool {
	for _, s := range p.StudyPlan {
		if s.Priority {
			return true
		}
	}
	for _, q := range p.PracticeQuestions {
		if q.Priority {
			return true
		}
	}
	return false
}

// PriorityOnly returns a copy of p keeping only marked steps and
// questions. Study materials are kept as they are.
func (p *Plan) PriorityOnly() *Plan {
	out := &Plan{ExamName: p.ExamName, StudyMaterials: p.StudyMaterials}
	for _, s := range p.StudyPlan {
		if s.Priority {
			out.StudyPlan = append(out.StudyPlan, s)
		}
	}
	for _, q := range p.PracticeQuestions {
		if q.Priority {
			out.PracticeQuestions = append(out.PracticeQuestions, q)
		}
	}
	return out
}

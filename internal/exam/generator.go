package exam

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/abhisek/skillnav/internal/llm"
	"github.com/abhisek/skillnav/internal/pathway"
)

const systemPrompt = `You are an exam preparation mentor for Indian competitive examinations. You write realistic, syllabus-accurate study plans that point to well-known standard books and online courses, and you include practice questions in the exam's actual style.`

// Config holds exam plan generation settings.
type Config struct {
	MaxTokens   int
	Temperature float64
}

// DefaultConfig returns sensible defaults for exam plan generation.
func DefaultConfig() Config {
	return Config{MaxTokens: 4096, Temperature: 0.3}
}

// Generator produces study plans.
type Generator struct {
	provider llm.Provider
	cfg      Config
}

// NewGenerator creates an exam plan generator.
func NewGenerator(provider llm.Provider, cfg Config) *Generator {
	return &Generator{provider: provider, cfg: cfg}
}

// Generate asks the LLM for a study plan for e, tailored to the learner.
// Priority marks on the result are always cleared.
func (g *Generator) Generate(ctx context.Context, profile pathway.Profile, e Exam) (*Plan, error) {
	if g.provider == nil {
		return nil, &llm.ErrProviderUnavailable{}
	}
	ctx = llm.WithPurpose(ctx, "exam-plan")

	resp, err := g.provider.Generate(ctx, llm.Request{
		System:      systemPrompt,
		Messages:    []llm.Message{{Role: llm.RoleUser, Content: buildUserMessage(profile, e)}},
		Schema:      Schema,
		MaxTokens:   g.cfg.MaxTokens,
		Temperature: g.cfg.Temperature,
	})
	if err != nil {
		return nil, fmt.Errorf("exam plan generation: %w", err)
	}

	var plan Plan
	if err := json.Unmarshal(resp.Content, &plan); err != nil {
		return nil, &llm.ErrInvalidResponse{Content: resp.Content, Err: fmt.Errorf("decode exam plan: %w", err)}
	}
	if err := plan.Validate(); err != nil {
		return nil, &llm.ErrInvalidResponse{Content: resp.Content, Err: err}
	}
	for i := range plan.StudyPlan {
		plan.StudyPlan[i].Priority = false
	}
	for i := range plan.PracticeQuestions {
		plan.PracticeQuestions[i].Priority = false
	}
	return &plan, nil
}

func buildUserMessage(p pathway.Profile, e Exam) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Exam: %s (%s)\n", e.Name, e.Key)
	b.WriteString("Learner:\n")
	fmt.Fprintf(&b, "- Academic background: %s\n", p.AcademicBackground)
	if len(p.PriorSkills) > 0 {
		fmt.Fprintf(&b, "- Skills: %s\n", strings.Join(p.PriorSkills, "; "))
	}
	if p.CareerAspiration != "" {
		fmt.Fprintf(&b, "- Career goal: %s\n", p.CareerAspiration)
	}
	fmt.Fprintf(&b, "- Learning pace: %s\n", p.LearningPace)

	fmt.Fprintf(&b, `
Write a study plan for this exam. Order the roadmap from fundamentals to revision and mock tests, size each topic's duration for the learning pace, and give five practice questions with answers. Write all text in %s.`,
		pathway.LanguageName(p.PreferredLanguage))

	return b.String()
}

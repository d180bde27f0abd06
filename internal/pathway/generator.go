package pathway

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/abhisek/skillnav/internal/llm"
)

// Config holds pathway generation settings.
type Config struct {
	MaxTokens   int
	Temperature float64
}

// DefaultConfig returns sensible defaults for pathway generation.
func DefaultConfig() Config {
	return Config{
		MaxTokens:   4096,
		Temperature: 0.4,
	}
}

// Generator turns learner profiles into pathways.
type Generator struct {
	provider llm.Provider
	cfg      Config
}

// NewGenerator creates a pathway generator.
func NewGenerator(provider llm.Provider, cfg Config) *Generator {
	return &Generator{provider: provider, cfg: cfg}
}

// Generate asks the LLM for a pathway. The result has no ID or CreatedAt;
// callers stamp it. A response that decodes but breaks the pathway
// invariants is reported as *llm.ErrInvalidResponse.
func (g *Generator) Generate(ctx context.Context, profile Profile) (*Pathway, error) {
	if g.provider == nil {
		return nil, &llm.ErrProviderUnavailable{}
	}
	ctx = llm.WithPurpose(ctx, "pathway")

	req := llm.Request{
		System: systemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildUserMessage(profile)},
		},
		Schema:      Schema,
		MaxTokens:   g.cfg.MaxTokens,
		Temperature: g.cfg.Temperature,
	}

	resp, err := g.provider.Generate(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("pathway generation: %w", err)
	}

	var p Pathway
	if err := json.Unmarshal(resp.Content, &p); err != nil {
		return nil, &llm.ErrInvalidResponse{Content: resp.Content, Err: fmt.Errorf("decode pathway: %w", err)}
	}
	if err := p.Validate(); err != nil {
		return nil, &llm.ErrInvalidResponse{Content: resp.Content, Err: err}
	}
	p.ID, p.CreatedAt = "", ""
	return &p, nil
}

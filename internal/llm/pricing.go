package llm

import "sort"

// ModelCost holds per-million-token pricing for a model, in USD.
type ModelCost struct {
	InputPerMTok  float64
	OutputPerMTok float64
}

// Cost calculates the total USD cost for the given token counts.
func (c ModelCost) Cost(inputTokens, outputTokens int) float64 {
	return float64(inputTokens)*c.InputPerMTok/1_000_000 +
		float64(outputTokens)*c.OutputPerMTok/1_000_000
}

// LookupCost returns the pricing for a model ID, or nil if unknown.
func LookupCost(modelID string) *ModelCost {
	if c, ok := modelCosts[modelID]; ok {
		return &c
	}
	return nil
}

// modelCosts covers the models reachable through the configured
// providers' friendly names and their common direct ids.
var modelCosts = map[string]ModelCost{
	"claude-haiku-4-5":           {1, 5},
	"claude-haiku-4-5-20251001":  {1, 5},
	"claude-sonnet-4-20250514":   {3, 15},
	"claude-sonnet-4-5":          {3, 15},
	"claude-sonnet-4-5-20250929": {3, 15},

	"gpt-4.1-mini": {0.4, 1.6},
	"gpt-4.1-nano": {0.1, 0.4},
	"gpt-4o":       {2.5, 10},
	"gpt-4o-mini":  {0.15, 0.6},
	"gpt-5-mini":   {0.25, 2},
	"gpt-5-nano":   {0.05, 0.4},

	"gemini-2.0-flash":      {0.1, 0.4},
	"gemini-2.0-flash-lite": {0.075, 0.3},
	"gemini-2.5-flash":      {0.3, 2.5},
	"gemini-2.5-flash-lite": {0.1, 0.4},
	"gemini-2.5-pro":        {1.25, 10},

	"google/gemini-2.5-flash": {0.3, 2.5},

	"mock": {0, 0},
}

// UsageLine aggregates requests for one (model, purpose) pair.
type UsageLine struct {
	Model        string
	Purpose      string
	Requests     int
	Failures     int
	InputTokens  int
	OutputTokens int
	// Cost is nil when the model has no known pricing.
	Cost *float64
}

// UsageRecord is the subset of a logged request needed for summaries.
type UsageRecord struct {
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	Success      bool
}

// SummarizeUsage groups records by model and purpose, sorted by model
// then purpose.
func SummarizeUsage(records []UsageRecord) []UsageLine {
	type key struct{ model, purpose string }
	byKey := map[key]*UsageLine{}

	for _, r := range records {
		k := key{r.Model, r.Purpose}
		line, ok := byKey[k]
		if !ok {
			line = &UsageLine{Model: r.Model, Purpose: r.Purpose}
			byKey[k] = line
		}
		line.Requests++
		if !r.Success {
			line.Failures++
		}
		line.InputTokens += r.InputTokens
		line.OutputTokens += r.OutputTokens
	}

	out := make([]UsageLine, 0, len(byKey))
	for _, line := range byKey {
		if c := LookupCost(line.Model); c != nil {
			cost := c.Cost(line.InputTokens, line.OutputTokens)
			line.Cost = &cost
		}
		out = append(out, *line)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Model != out[j].Model {
			return out[i].Model < out[j].Model
		}
		return out[i].Purpose < out[j].Purpose
	})
	return out
}

package exam

import (
	"sort"

	"github.com/abhisek/skillnav/internal/llm"
)

func list(desc string) map[string]any {
	return map[string]any{
		"type":        "array",
		"items":       map[string]any{"type": "string"},
		"description": desc,
	}
}

func text(desc string) map[string]any {
	return map[string]any{"type": "string", "description": desc}
}

func object(props map[string]any) map[string]any {
	keys := make([]string, 0, len(props))
	for k := range props {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	required := make([]any, len(keys))
	for i, k := range keys {
		required[i] = k
	}
	return map[string]any{
		"type":                 "object",
		"properties":           props,
		"required":             required,
		"additionalProperties": false,
	}
}

// Schema defines the JSON schema for exam study plan generation. Priority
// marks are the learner's own and are not part of the generated shape.
var Schema = &llm.Schema{
	Name:        "exam-plan",
	Description: "A study plan for an Indian competitive exam",
	Definition: object(map[string]any{
		"examName": text("Full name of the exam"),
		"studyPlan": map[string]any{
			"type":        "array",
			"description": "Ordered study roadmap, 5-10 topics",
			"items": object(map[string]any{
				"topic":    text("Subject or topic"),
				"details":  text("What to cover and how"),
				"duration": text("Suggested time, e.g. '3 weeks'"),
			}),
		},
		"studyMaterials": object(map[string]any{
			"books":         list("Standard books for the exam"),
			"onlineCourses": list("Online courses or platforms"),
		}),
		"practiceQuestions": map[string]any{
			"type":        "array",
			"description": "5 representative practice questions",
			"items": object(map[string]any{
				"question": text("Question text"),
				"answer":   text("Concise answer with explanation"),
			}),
		},
	}),
}

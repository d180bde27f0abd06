package pathway

import "github.com/abhisek/skillnav/internal/llm"

func stringArray(desc string) map[string]any {
	return map[string]any{
		"type":        "array",
		"items":       map[string]any{"type": "string"},
		"description": desc,
	}
}

func str(desc string) map[string]any {
	return map[string]any{"type": "string", "description": desc}
}

func stageEnum() []any {
	out := make([]any, len(Stages))
	for i, s := range Stages {
		out[i] = string(s)
	}
	return out
}

// Schema defines the JSON schema for training pathway generation.
var Schema = &llm.Schema{
	Name:        "training-pathway",
	Description: "A personalized vocational training pathway with market insights and career guidance",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"pathwayTitle": str("Title of the pathway, e.g. 'Personalized Pathway to become a Solar Panel Technician'"),
			"summary":      str("2-4 sentence overview of the pathway"),
			"steps": map[string]any{
				"type":        "array",
				"description": "Ordered learning steps, 4-8 entries",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"stage": map[string]any{
							"type": "string",
							"enum": stageEnum(),
						},
						"title":          str("Course or activity name"),
						"description":    str("What the learner does and gains in this step"),
						"duration":       str("Expected duration, e.g. '3 months'"),
						"nsqfLevel":      str("NSQF level of the qualification, e.g. 'Level 4'"),
						"provider":       str("Training provider or platform, or empty"),
						"suggestedVideo": str("A short YouTube search phrase for a tutorial, or empty"),
					},
					"required":             []any{"stage", "title", "description", "duration", "nsqfLevel", "provider", "suggestedVideo"},
					"additionalProperties": false,
				},
			},
			"marketInsights": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"jobDemand":          str("Current demand for the role in the preferred location"),
					"salaryRange":        str("Entry-level salary range in INR"),
					"topHiringCompanies": stringArray("3-5 companies hiring for the role"),
					"keySkillsInDemand":  stringArray("3-6 skills employers ask for"),
				},
				"required":             []any{"jobDemand", "salaryRange", "topHiringCompanies", "keySkillsInDemand"},
				"additionalProperties": false,
			},
			"careerGuidance": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"companyAnalyses": map[string]any{
						"type":        "array",
						"description": "3-5 relevant companies with their sector",
						"items": map[string]any{
							"type": "object",
							"properties": map[string]any{
								"name":   str("Company name"),
								"sector": str("Industry sector"),
							},
							"required":             []any{"name", "sector"},
							"additionalProperties": false,
						},
					},
					"recommendedCompany": map[string]any{
						"type": "object",
						"properties": map[string]any{
							"name":      str("The single best-fit company"),
							"rationale": str("Why this company suits the learner"),
							"jobStrategy": map[string]any{
								"type": "object",
								"properties": map[string]any{
									"skillsToHighlight": stringArray("Skills to emphasize when applying"),
									"interviewPrep":     stringArray("Interview preparation tips"),
									"networkingTips":    stringArray("Networking suggestions"),
								},
								"required":             []any{"skillsToHighlight", "interviewPrep", "networkingTips"},
								"additionalProperties": false,
							},
						},
						"required":             []any{"name", "rationale", "jobStrategy"},
						"additionalProperties": false,
					},
				},
				"required":             []any{"companyAnalyses", "recommendedCompany"},
				"additionalProperties": false,
			},
		},
		"required":             []any{"pathwayTitle", "summary", "steps", "marketInsights", "careerGuidance"},
		"additionalProperties": false,
	},
}

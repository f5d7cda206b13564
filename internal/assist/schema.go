package assist

import "github.com/abhisek/prism/internal/llm"

// ItemsSchema constrains list generation to {"items": [...]}.
var ItemsSchema = &llm.Schema{
	Name:        "role-items",
	Description: "SMART statements for a professional role",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"items": map[string]any{
				"type":        "array",
				"items":       map[string]any{"type": "string"},
				"minItems":    1,
				"maxItems":    12,
				"description": "Specific, measurable statements (one sentence each)",
			},
		},
		"required":             []any{"items"},
		"additionalProperties": false,
	},
}

// ObjectiveSchema constrains objective generation to the three tiers.
var ObjectiveSchema = &llm.Schema{
	Name:        "objective-levels",
	Description: "Simulation objectives for one competency at three proficiency tiers",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"basic": map[string]any{
				"type":        "string",
				"description": "Entry-level objective with a concrete target and deadline",
			},
			"intermediate": map[string]any{
				"type":        "string",
				"description": "Independent application with a measurable quality bar",
			},
			"advanced": map[string]any{
				"type":        "string",
				"description": "Leadership of a complex scenario with documented outcomes",
			},
		},
		"required":             []any{"basic", "intermediate", "advanced"},
		"additionalProperties": false,
	},
}

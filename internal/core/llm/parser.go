package llm

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/MuhamadAgungGumelar/ai-data-analyst-be/internal/models"
)

// ParseIntent extracts a QueryIntent from the raw model output. Models wrap
// JSON in markdown fences more often than not, so fences are stripped first.
// Every optional field gets an explicit default; an unrecognized or missing
// type falls back to "text" so the orchestrator always has a valid branch.
func ParseIntent(response string) (*models.QueryIntent, error) {
	response = strings.TrimSpace(response)
	response = strings.TrimPrefix(response, "```json")
	response = strings.TrimPrefix(response, "```")
	response = strings.TrimSuffix(response, "```")
	response = strings.TrimSpace(response)

	var intent models.QueryIntent
	if err := json.Unmarshal([]byte(response), &intent); err != nil {
		return nil, fmt.Errorf("failed to parse intent response: %w (response: %.200s)", err, response)
	}

	applyDefaults(&intent)
	return &intent, nil
}

func applyDefaults(intent *models.QueryIntent) {
	switch intent.Type {
	case models.IntentStatistics, models.IntentVisualization, models.IntentSQL, models.IntentText:
	default:
		intent.Type = models.IntentText
	}

	if intent.Visualization == nil {
		intent.Visualization = &models.VisualizationSpec{}
	}
	if intent.Visualization.ChartType == "" {
		intent.Visualization.ChartType = "bar"
	}
	if intent.Description == "" {
		intent.Description = "Analysis of your dataset"
	}
}

// FallbackIntent is used when the model output cannot be parsed at all: the
// request still gets answered with a plain row sample.
func FallbackIntent() *models.QueryIntent {
	intent := &models.QueryIntent{Type: models.IntentText}
	applyDefaults(intent)
	return intent
}

package llm

import (
	"strings"
	"testing"

	"github.com/MuhamadAgungGumelar/ai-data-analyst-be/internal/models"
)

func TestParseIntentPlainJSON(t *testing.T) {
	intent, err := ParseIntent(`{"type":"statistics","statistics":["mean"],"description":"avg per column"}`)
	if err != nil {
		t.Fatalf("ParseIntent failed: %v", err)
	}
	if intent.Type != models.IntentStatistics {
		t.Errorf("Type = %q, want statistics", intent.Type)
	}
	if len(intent.Statistics) != 1 || intent.Statistics[0] != "mean" {
		t.Errorf("Statistics = %v, want [mean]", intent.Statistics)
	}
}

func TestParseIntentStripsMarkdownFences(t *testing.T) {
	raw := "```json\n{\"type\":\"visualization\",\"visualization\":{\"chartType\":\"line\",\"xAxis\":\"month\",\"yAxis\":\"sales\"}}\n```"
	intent, err := ParseIntent(raw)
	if err != nil {
		t.Fatalf("ParseIntent failed: %v", err)
	}
	if intent.Type != models.IntentVisualization {
		t.Errorf("Type = %q, want visualization", intent.Type)
	}
	if intent.Visualization.ChartType != "line" || intent.Visualization.XAxis != "month" {
		t.Errorf("Visualization = %+v, want line/month/sales", intent.Visualization)
	}
}

func TestParseIntentAppliesDefaults(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"missing type", `{}`},
		{"unknown type", `{"type":"prophecy"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			intent, err := ParseIntent(tt.raw)
			if err != nil {
				t.Fatalf("ParseIntent failed: %v", err)
			}
			if intent.Type != models.IntentText {
				t.Errorf("Type = %q, want text fallback", intent.Type)
			}
			if intent.Visualization == nil || intent.Visualization.ChartType != "bar" {
				t.Errorf("Visualization default not applied: %+v", intent.Visualization)
			}
			if intent.Description == "" {
				t.Error("Description default not applied")
			}
		})
	}
}

func TestParseIntentRejectsNonJSON(t *testing.T) {
	if _, err := ParseIntent("I think you want the average sales"); err == nil {
		t.Fatal("expected error for prose response")
	}
}

func TestFallbackIntent(t *testing.T) {
	intent := FallbackIntent()
	if intent.Type != models.IntentText {
		t.Errorf("Type = %q, want text", intent.Type)
	}
	if intent.Visualization == nil {
		t.Error("Visualization should be non-nil after defaults")
	}
}

func TestBuildIntentPromptMentionsColumnsNotData(t *testing.T) {
	table := models.Table{
		Columns: []string{"city", "temp"},
		Rows: []models.Row{
			{"city": "A", "temp": 10.0},
			{"city": "B", "temp": 20.0},
			{"city": "C", "temp": 30.0},
			{"city": "D", "temp": 40.0},
			{"city": "E", "temp": 50.0},
		},
	}
	types := models.ColumnTypeMap{"city": models.ColumnCategory, "temp": models.ColumnNumber}

	prompt := BuildIntentPrompt(table, types)
	for _, want := range []string{"city", "temp", "number", "Total rows: 5"} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q", want)
		}
	}
	// Only the first promptSampleValues samples may appear.
	if strings.Contains(prompt, "50") {
		t.Error("prompt leaked values beyond the sample cap")
	}
}

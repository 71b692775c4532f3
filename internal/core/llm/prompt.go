package llm

import (
	"fmt"
	"strings"

	"github.com/MuhamadAgungGumelar/ai-data-analyst-be/internal/models"
)

// promptSampleValues caps how many sample cell values per column reach the
// prompt. The model only ever sees column metadata plus these samples, never
// the full dataset.
const promptSampleValues = 3

// BuildIntentPrompt membuat system prompt untuk klasifikasi intent.
// The model must answer with a single JSON object matching models.QueryIntent.
func BuildIntentPrompt(table models.Table, types models.ColumnTypeMap) string {
	var sb strings.Builder

	sb.WriteString("You are a data analyst assistant. Classify the user's question about a dataset.\n\n")

	sb.WriteString("=== DATASET COLUMNS ===\n")
	for _, col := range table.Columns {
		samples := sampleValues(table, col)
		sb.WriteString(fmt.Sprintf("- %s (type: %s, examples: %s)\n", col, types[col], samples))
	}
	sb.WriteString(fmt.Sprintf("Total rows: %d\n\n", len(table.Rows)))

	sb.WriteString("Respond ONLY with a JSON object, no prose:\n")
	sb.WriteString(`{
  "type": "statistics" | "visualization" | "sql" | "text",
  "statistics": ["mean","median"],                // optional, for type=statistics
  "visualization": {"chartType":"bar","xAxis":"<column>","yAxis":"<column>"}, // optional
  "sql": "<SQL-like restatement of the question>", // optional, for type=sql
  "description": "<one sentence describing the analysis>",
  "message": "<short friendly answer preamble for the user>"
}` + "\n\n")

	sb.WriteString("Rules:\n")
	sb.WriteString("- Use \"statistics\" for questions about averages, spread, min/max, or summaries\n")
	sb.WriteString("- Use \"visualization\" when the user asks for a chart, trend, or comparison\n")
	sb.WriteString("- Use \"sql\" for filtering, lookups, or anomaly/outlier questions\n")
	sb.WriteString("- Use \"text\" when none of the above fit\n")
	sb.WriteString("- Only reference columns that exist in the dataset\n")

	return sb.String()
}

func sampleValues(table models.Table, col string) string {
	var samples []string
	for _, row := range table.Rows {
		v, ok := row[col]
		if !ok || models.IsNull(v) {
			continue
		}
		samples = append(samples, models.Stringify(v))
		if len(samples) == promptSampleValues {
			break
		}
	}
	if len(samples) == 0 {
		return "-"
	}
	return strings.Join(samples, ", ")
}

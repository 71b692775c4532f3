package models

// Intent type discriminants produced by the LLM.
const (
	IntentStatistics    = "statistics"
	IntentVisualization = "visualization"
	IntentSQL           = "sql"
	IntentText          = "text"
)

// VisualizationSpec is the LLM's declared chart intent. Any field may be
// empty; the orchestrator applies defaults.
type VisualizationSpec struct {
	ChartType string `json:"chartType"`
	XAxis     string `json:"xAxis"`
	YAxis     string `json:"yAxis"`
}

// QueryIntent is the LLM's structured classification of the user question.
// Every field except Type is optional; the parser fills defaults so the
// orchestrator never has to nil-check branch parameters.
type QueryIntent struct {
	Type          string             `json:"type"`
	SQL           string             `json:"sql,omitempty"`
	Statistics    []string           `json:"statistics,omitempty"`
	Visualization *VisualizationSpec `json:"visualization,omitempty"`
	Description   string             `json:"description,omitempty"`
	Message       string             `json:"message,omitempty"`
}

// AnalyzeRequest is the inbound body for analysis endpoints.
type AnalyzeRequest struct {
	Query   string   `json:"query"`
	Data    []Row    `json:"data"`
	Columns []string `json:"columns"`
}

// DatasetQueryRequest queries a stored dataset.
type DatasetQueryRequest struct {
	Query string `json:"query"`
}

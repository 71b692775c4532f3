package models

// StatSummary holds descriptive statistics for one numeric column.
// Count is the number of numeric non-null values, not the row count.
type StatSummary struct {
	Count  int     `json:"count"`
	Mean   float64 `json:"mean"`
	Median float64 `json:"median"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
	StdDev float64 `json:"stddev"`
}

// Anomaly is a value statistically distant from its column mean.
// Index is the row position in the original table so callers can
// cross-reference the other columns of that row.
type Anomaly struct {
	Index     int     `json:"index"`
	Value     float64 `json:"value"`
	Deviation float64 `json:"deviation"` // signed, in stddev units
}

// RowGroup is one partition of rows sharing a key value.
type RowGroup struct {
	Key  string `json:"key"`
	Rows []Row  `json:"rows"`
}

// GroupResult is one aggregated group entry.
type GroupResult struct {
	Group string  `json:"group"`
	Value float64 `json:"value"`
}

// ChartConfig tells the frontend how to render a chart.
type ChartConfig struct {
	Type string `json:"type"` // "bar", "line", "pie", "scatter"
	Data []Row  `json:"data"`
	XKey string `json:"xKey"`
	YKey string `json:"yKey"`
}

// AnalysisResult is the response envelope built once per request.
type AnalysisResult struct {
	Type        string                 `json:"type"`
	Message     string                 `json:"message,omitempty"`
	Description string                 `json:"description,omitempty"`
	Table       []Row                  `json:"table,omitempty"`
	Chart       *ChartConfig           `json:"chart,omitempty"`
	Statistics  map[string]StatSummary `json:"statistics,omitempty"`
}

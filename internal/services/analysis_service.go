package services

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/MuhamadAgungGumelar/ai-data-analyst-be/internal/core/llm"
	"github.com/MuhamadAgungGumelar/ai-data-analyst-be/internal/engine"
	"github.com/MuhamadAgungGumelar/ai-data-analyst-be/internal/models"
)

// Validation errors surface as client errors; everything else is a server
// error. The original LLM failure message is preserved through wrapping.
var (
	ErrEmptyQuery = errors.New("query must not be empty")
	ErrEmptyData  = errors.New("data must not be empty")
)

// SampleRowLimit bounds row samples returned for text/sql fallbacks.
const SampleRowLimit = 10

// AnalysisService orchestrates one analysis request: validate, infer column
// types, ask the LLM for the intent, dispatch to the engines, and assemble
// the AnalysisResult envelope.
type AnalysisService struct {
	llm *llm.Service
}

func NewAnalysisService(llmService *llm.Service) *AnalysisService {
	return &AnalysisService{llm: llmService}
}

// Analyze runs the full pipeline. plog collects the diagnostic trail that is
// returned to the caller on both success and failure paths.
func (s *AnalysisService) Analyze(ctx context.Context, query string, table models.Table, plog *models.ProcessLog) (*models.AnalysisResult, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		plog.Error("request rejected: empty query")
		return nil, ErrEmptyQuery
	}
	if len(table.Rows) == 0 {
		plog.Error("request rejected: empty data")
		return nil, ErrEmptyData
	}

	if len(table.Columns) == 0 {
		table.Columns = columnsFromFirstRow(table.Rows[0])
		plog.Warn("no column list supplied, derived from first row (sorted)")
	}

	plog.Info(fmt.Sprintf("analyzing %d rows, %d columns", len(table.Rows), len(table.Columns)))

	types := engine.InferColumnTypes(table, table.Columns)
	plog.Info("column types inferred: " + formatTypeMap(table.Columns, types))

	intent, err := s.llm.InterpretQuery(ctx, query, table, types)
	if err != nil {
		plog.Error("model interpretation failed: " + err.Error())
		return nil, fmt.Errorf("model interpretation: %w", err)
	}
	plog.Info("intent classified as: " + intent.Type)

	result := s.dispatch(query, table, types, intent, plog)

	// Safety net: every response should carry something chartable.
	if result.Chart == nil {
		if numeric := engine.NumericColumns(types, table.Columns); len(numeric) > 0 {
			if summary := engine.Summarize(table, numeric[0]); summary != nil {
				result.Chart = &models.ChartConfig{
					Type: "bar",
					Data: []models.Row{{"column": numeric[0], "mean": summary.Mean}},
					XKey: "column",
					YKey: "mean",
				}
				plog.Info("no chart produced, added default mean chart for " + numeric[0])
			}
		}
	}

	return result, nil
}

func (s *AnalysisService) dispatch(query string, table models.Table, types models.ColumnTypeMap, intent *models.QueryIntent, plog *models.ProcessLog) *models.AnalysisResult {
	result := &models.AnalysisResult{
		Type:        intent.Type,
		Message:     intent.Message,
		Description: intent.Description,
	}

	switch intent.Type {
	case models.IntentStatistics:
		s.buildStatistics(result, table, types, plog)
	case models.IntentVisualization:
		s.buildVisualization(result, table, types, intent, plog)
	case models.IntentSQL:
		s.buildSQLLike(result, query, table, types, intent, plog)
	default:
		result.Table = sampleRows(table, SampleRowLimit)
		plog.Info(fmt.Sprintf("returning sample of %d rows", len(result.Table)))
	}

	if result.Message == "" {
		result.Message = defaultMessage(result.Type)
	}
	return result
}

// buildStatistics computes a StatSummary per numeric column plus a bar chart
// of per-column means.
func (s *AnalysisService) buildStatistics(result *models.AnalysisResult, table models.Table, types models.ColumnTypeMap, plog *models.ProcessLog) {
	stats := make(map[string]models.StatSummary)
	var tableRows, chartRows []models.Row

	for _, col := range engine.NumericColumns(types, table.Columns) {
		summary := engine.Summarize(table, col)
		if summary == nil {
			plog.Warn("column " + col + " has no numeric values, skipped")
			continue
		}
		stats[col] = *summary
		tableRows = append(tableRows, models.Row{
			"column": col,
			"count":  float64(summary.Count),
			"mean":   round2(summary.Mean),
			"median": round2(summary.Median),
			"min":    summary.Min,
			"max":    summary.Max,
			"stddev": round2(summary.StdDev),
		})
		chartRows = append(chartRows, models.Row{"column": col, "mean": round2(summary.Mean)})
	}

	result.Statistics = stats
	result.Table = tableRows
	if len(chartRows) > 0 {
		result.Chart = &models.ChartConfig{Type: "bar", Data: chartRows, XKey: "column", YKey: "mean"}
	}
	plog.Info(fmt.Sprintf("computed statistics for %d numeric columns", len(stats)))
}

// buildVisualization resolves axis defaults and, for line/bar charts, groups
// by x and aggregates the mean of y. Other chart types pass raw rows through.
func (s *AnalysisService) buildVisualization(result *models.AnalysisResult, table models.Table, types models.ColumnTypeMap, intent *models.QueryIntent, plog *models.ProcessLog) {
	numeric := engine.NumericColumns(types, table.Columns)

	x := intent.Visualization.XAxis
	if !columnExists(table.Columns, x) {
		x = table.Columns[0]
		plog.Warn("requested x-axis missing, defaulting to " + x)
	}
	y := intent.Visualization.YAxis
	if !columnExists(numeric, y) {
		if len(numeric) == 0 {
			plog.Warn("no numeric column available for y-axis, returning row sample")
			result.Table = sampleRows(table, SampleRowLimit)
			return
		}
		y = numeric[0]
		plog.Warn("requested y-axis missing, defaulting to " + y)
	}

	chartType := intent.Visualization.ChartType

	switch chartType {
	case "line", "bar":
		groups := engine.GroupBy(table, x)
		aggregated := engine.AggregateGroups(groups, y, engine.AggMean)
		data := make([]models.Row, len(aggregated))
		for i, g := range aggregated {
			data[i] = models.Row{x: g.Group, y: round2(g.Value)}
		}
		result.Chart = &models.ChartConfig{Type: chartType, Data: data, XKey: x, YKey: y}
		result.Table = data
		plog.Info(fmt.Sprintf("%s chart: %s grouped into %d buckets by %s", chartType, y, len(aggregated), x))
	default:
		// Scatter, pie, and friends render raw rows directly.
		result.Chart = &models.ChartConfig{Type: chartType, Data: table.Rows, XKey: x, YKey: y}
		plog.Info(chartType + " chart: passing through raw rows")
	}
}

// buildSQLLike handles sql-flavored intents. Anomaly questions (fixed
// substring rule, not NLP) run the detector over every numeric column;
// anything else degrades to a row sample.
func (s *AnalysisService) buildSQLLike(result *models.AnalysisResult, query string, table models.Table, types models.ColumnTypeMap, intent *models.QueryIntent, plog *models.ProcessLog) {
	if !isAnomalyQuery(query) && !isAnomalyQuery(intent.SQL) {
		result.Table = sampleRows(table, SampleRowLimit)
		plog.Info(fmt.Sprintf("sql-like query without executor, returning sample of %d rows", len(result.Table)))
		return
	}

	var rows []models.Row
	for _, col := range engine.NumericColumns(types, table.Columns) {
		for _, a := range engine.DetectAnomalies(table, col, engine.DefaultDeviationThreshold) {
			rows = append(rows, models.Row{
				"column":    col,
				"row":       float64(a.Index),
				"value":     a.Value,
				"deviation": round2(a.Deviation),
			})
		}
	}
	result.Table = rows
	plog.Info(fmt.Sprintf("anomaly scan found %d outliers", len(rows)))

	if len(rows) > 0 {
		result.Chart = &models.ChartConfig{Type: "scatter", Data: rows, XKey: "row", YKey: "value"}
	}
	if result.Message == "" {
		if len(rows) == 0 {
			result.Message = "No anomalies detected in the dataset"
		} else {
			result.Message = fmt.Sprintf("Found %d anomalous values", len(rows))
		}
	}
}

// isAnomalyQuery is the documented keyword heuristic: a case-insensitive
// "anomal" or "outlier" substring.
func isAnomalyQuery(q string) bool {
	q = strings.ToLower(q)
	return strings.Contains(q, "anomal") || strings.Contains(q, "outlier")
}

func sampleRows(table models.Table, limit int) []models.Row {
	if len(table.Rows) <= limit {
		return table.Rows
	}
	return table.Rows[:limit]
}

func columnExists(columns []string, name string) bool {
	for _, c := range columns {
		if c == name {
			return true
		}
	}
	return false
}

func columnsFromFirstRow(row models.Row) []string {
	cols := make([]string, 0, len(row))
	for k := range row {
		cols = append(cols, k)
	}
	sort.Strings(cols)
	return cols
}

func formatTypeMap(columns []string, types models.ColumnTypeMap) string {
	parts := make([]string, 0, len(columns))
	for _, col := range columns {
		parts = append(parts, col+"="+string(types[col]))
	}
	return strings.Join(parts, ", ")
}

func defaultMessage(intentType string) string {
	switch intentType {
	case models.IntentStatistics:
		return "Here are the summary statistics for your dataset"
	case models.IntentVisualization:
		return "Here is the requested chart"
	case models.IntentSQL:
		return "Here are the matching rows"
	default:
		return "Here is a sample of your data"
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

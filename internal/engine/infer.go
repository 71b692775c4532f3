package engine

import (
	"github.com/MuhamadAgungGumelar/ai-data-analyst-be/internal/models"
)

// Type inference policy (fixed and deterministic):
//   - Sample the first SampleRows rows of the table.
//   - A column is "number" when at least 80% of its sampled non-null values
//     parse as finite numbers, "date" when at least 80% parse as dates.
//   - Remaining columns split category vs text by cardinality: few distinct
//     values relative to the sample means a grouping key, otherwise free text.
//   - Columns that are entirely null/empty classify as text.
// Malformed values are excluded from the counts, never an error.

const (
	// SampleRows bounds how many rows type inference inspects.
	SampleRows = 200

	// typeThreshold is the minimum parse fraction for number/date wins.
	typeThreshold = 0.8

	// categoryMaxRatio is the highest distinct/total ratio that still
	// counts as a grouping key; above it a column is free text.
	categoryMaxRatio = 0.5
)

// InferColumnTypes classifies every column in columns, producing a map with
// exactly one entry per column name.
func InferColumnTypes(table models.Table, columns []string) models.ColumnTypeMap {
	limit := len(table.Rows)
	if limit > SampleRows {
		limit = SampleRows
	}

	result := make(models.ColumnTypeMap, len(columns))
	for _, col := range columns {
		result[col] = inferColumn(table.Rows[:limit], col)
	}
	return result
}

func inferColumn(rows []models.Row, col string) models.ColumnType {
	var total, numeric, dates int
	distinct := make(map[string]struct{})

	for _, row := range rows {
		v, ok := row[col]
		if !ok || models.IsNull(v) {
			continue
		}
		total++
		if _, isNum := models.ToFloat(v); isNum {
			numeric++
		} else if models.IsDateValue(v) {
			dates++
		}
		distinct[models.Stringify(v)] = struct{}{}
	}

	if total == 0 {
		return models.ColumnText
	}

	threshold := int(float64(total) * typeThreshold)
	if threshold < 1 {
		threshold = 1
	}

	// Numeric has precedence over date for mixed columns.
	if numeric >= threshold {
		return models.ColumnNumber
	}
	if dates >= threshold {
		return models.ColumnDate
	}

	ratio := float64(len(distinct)) / float64(total)
	if ratio <= categoryMaxRatio {
		return models.ColumnCategory
	}
	return models.ColumnText
}

// NumericColumns returns the columns classified as numbers, preserving the
// declared column order.
func NumericColumns(types models.ColumnTypeMap, columns []string) []string {
	var out []string
	for _, col := range columns {
		if types[col] == models.ColumnNumber {
			out = append(out, col)
		}
	}
	return out
}

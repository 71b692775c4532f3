package engine

import (
	"math"
	"sort"

	"github.com/MuhamadAgungGumelar/ai-data-analyst-be/internal/models"
)

// Summarize computes descriptive statistics for one column. It returns nil
// (not an error) when the column holds zero numeric values, so one malformed
// column never aborts analysis of the rest of the table.
func Summarize(table models.Table, column string) *models.StatSummary {
	values := numericValues(table, column)
	if len(values) == 0 {
		return nil
	}

	mean, stddev := meanStdDev(values)

	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	return &models.StatSummary{
		Count:  len(values),
		Mean:   mean,
		Median: median(sorted),
		Min:    sorted[0],
		Max:    sorted[len(sorted)-1],
		StdDev: stddev,
	}
}

// numericValues extracts coercible values from a column in row order.
func numericValues(table models.Table, column string) []float64 {
	var values []float64
	for _, row := range table.Rows {
		if f, ok := models.ToFloat(row[column]); ok {
			values = append(values, f)
		}
	}
	return values
}

// meanStdDev returns the arithmetic mean and population standard deviation
// (divide by n, not n-1).
func meanStdDev(values []float64) (float64, float64) {
	n := float64(len(values))
	var sum float64
	for _, v := range values {
		sum += v
	}
	mean := sum / n

	var sumSq float64
	for _, v := range values {
		d := v - mean
		sumSq += d * d
	}
	return mean, math.Sqrt(sumSq / n)
}

// median expects sorted input; even counts average the two middle elements.
func median(sorted []float64) float64 {
	n := len(sorted)
	mid := n / 2
	if n%2 == 0 {
		return (sorted[mid-1] + sorted[mid]) / 2
	}
	return sorted[mid]
}

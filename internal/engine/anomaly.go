package engine

import (
	"math"

	"github.com/MuhamadAgungGumelar/ai-data-analyst-be/internal/models"
)

// DefaultDeviationThreshold flags values more than two standard deviations
// from the column mean.
const DefaultDeviationThreshold = 2.0

// DetectAnomalies returns the rows whose value in column deviates from the
// column mean by at least threshold standard deviations, in original row
// order. A non-positive threshold selects the default. Zero variance or a
// column without numeric values yields an empty result, not an error.
func DetectAnomalies(table models.Table, column string, threshold float64) []models.Anomaly {
	if threshold <= 0 {
		threshold = DefaultDeviationThreshold
	}

	values := numericValues(table, column)
	if len(values) == 0 {
		return nil
	}

	mean, stddev := meanStdDev(values)
	if stddev == 0 {
		return nil
	}

	var anomalies []models.Anomaly
	for i, row := range table.Rows {
		f, ok := models.ToFloat(row[column])
		if !ok {
			continue
		}
		deviation := (f - mean) / stddev
		if math.Abs(deviation) >= threshold {
			anomalies = append(anomalies, models.Anomaly{
				Index:     i,
				Value:     f,
				Deviation: deviation,
			})
		}
	}
	return anomalies
}

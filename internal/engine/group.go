package engine

import (
	"github.com/MuhamadAgungGumelar/ai-data-analyst-be/internal/models"
)

// Aggregation modes accepted by AggregateGroups.
const (
	AggMean  = "mean"
	AggSum   = "sum"
	AggCount = "count"
	AggMin   = "min"
	AggMax   = "max"
)

// GroupBy partitions rows by the stringified value of keyColumn, preserving
// first-seen group order. A keyColumn absent from every row produces a
// single group keyed by the empty string; that is the documented behavior
// for a caller contract violation, not silent corruption.
func GroupBy(table models.Table, keyColumn string) []models.RowGroup {
	index := make(map[string]int)
	var groups []models.RowGroup

	for _, row := range table.Rows {
		key := models.Stringify(row[keyColumn])
		i, seen := index[key]
		if !seen {
			i = len(groups)
			index[key] = i
			groups = append(groups, models.RowGroup{Key: key})
		}
		groups[i].Rows = append(groups[i].Rows, row)
	}
	return groups
}

// AggregateGroups reduces valueColumn per group. Non-numeric and missing
// values are excluded from the reduction, not coerced to zero. A group whose
// members all lack a numeric value yields 0 so chart rendering stays
// well-defined.
func AggregateGroups(groups []models.RowGroup, valueColumn, mode string) []models.GroupResult {
	results := make([]models.GroupResult, 0, len(groups))
	for _, g := range groups {
		results = append(results, models.GroupResult{
			Group: g.Key,
			Value: reduce(g.Rows, valueColumn, mode),
		})
	}
	return results
}

func reduce(rows []models.Row, column, mode string) float64 {
	var values []float64
	for _, row := range rows {
		if f, ok := models.ToFloat(row[column]); ok {
			values = append(values, f)
		}
	}

	if mode == AggCount {
		return float64(len(values))
	}
	if len(values) == 0 {
		return 0
	}

	switch mode {
	case AggSum:
		return sum(values)
	case AggMin:
		m := values[0]
		for _, v := range values[1:] {
			if v < m {
				m = v
			}
		}
		return m
	case AggMax:
		m := values[0]
		for _, v := range values[1:] {
			if v > m {
				m = v
			}
		}
		return m
	default: // AggMean
		return sum(values) / float64(len(values))
	}
}

func sum(values []float64) float64 {
	var total float64
	for _, v := range values {
		total += v
	}
	return total
}

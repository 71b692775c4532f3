package engine

import (
	"fmt"
	"testing"

	"github.com/MuhamadAgungGumelar/ai-data-analyst-be/internal/models"
)

func TestInferColumnTypes(t *testing.T) {
	table := models.Table{
		Columns: []string{"amount", "created", "status", "note"},
		Rows: []models.Row{
			{"amount": 120.5, "created": "2026-01-15", "status": "open", "note": "first ticket of the sprint"},
			{"amount": 80.0, "created": "2026-01-16", "status": "closed", "note": "customer called twice"},
			{"amount": "95", "created": "2026-01-17", "status": "open", "note": "escalated to level two"},
			{"amount": 60.0, "created": "2026-01-18", "status": "open", "note": "waiting on vendor reply"},
			{"amount": 72.25, "created": "2026-01-19", "status": "closed", "note": "resolved after restart"},
		},
	}

	types := InferColumnTypes(table, table.Columns)

	want := map[string]models.ColumnType{
		"amount":  models.ColumnNumber,
		"created": models.ColumnDate,
		"status":  models.ColumnCategory,
		"note":    models.ColumnText,
	}
	for col, wt := range want {
		if types[col] != wt {
			t.Errorf("type of %q = %q, want %q", col, types[col], wt)
		}
	}
	if len(types) != len(table.Columns) {
		t.Errorf("map has %d entries, want one per column (%d)", len(types), len(table.Columns))
	}
}

func TestInferNumericThreshold(t *testing.T) {
	// 4 of 5 values numeric (80%) → number wins despite the stray string.
	mostlyNumeric := numTable("v", 1.0, 2.0, 3.0, 4.0, "oops")
	if got := InferColumnTypes(mostlyNumeric, []string{"v"})["v"]; got != models.ColumnNumber {
		t.Errorf("80%% numeric column = %q, want number", got)
	}

	// 3 of 5 (60%) falls below the threshold.
	mixed := numTable("v", 1.0, 2.0, 3.0, "a", "b")
	if got := InferColumnTypes(mixed, []string{"v"})["v"]; got == models.ColumnNumber {
		t.Error("60% numeric column classified as number, want non-numeric")
	}
}

func TestInferEmptyColumnIsText(t *testing.T) {
	table := numTable("v", nil, "", "null", "N/A")
	if got := InferColumnTypes(table, []string{"v"})["v"]; got != models.ColumnText {
		t.Errorf("all-null column = %q, want text", got)
	}

	absent := models.Table{Columns: []string{"ghost"}, Rows: []models.Row{{"other": 1.0}}}
	if got := InferColumnTypes(absent, []string{"ghost"})["ghost"]; got != models.ColumnText {
		t.Errorf("absent column = %q, want text", got)
	}
}

func TestInferHighCardinalityStringIsText(t *testing.T) {
	rows := make([]models.Row, 60)
	for i := range rows {
		rows[i] = models.Row{"id": fmt.Sprintf("user-%d-%d", i, i*7)}
	}
	table := models.Table{Columns: []string{"id"}, Rows: rows}

	if got := InferColumnTypes(table, []string{"id"})["id"]; got != models.ColumnText {
		t.Errorf("unique-per-row string column = %q, want text", got)
	}
}

func TestInferSamplesBoundedPrefix(t *testing.T) {
	// Numeric for the sampled prefix, garbage afterwards: the bounded,
	// deterministic sample must decide the type.
	rows := make([]models.Row, SampleRows+50)
	for i := range rows {
		if i < SampleRows {
			rows[i] = models.Row{"v": float64(i)}
		} else {
			rows[i] = models.Row{"v": "tail junk"}
		}
	}
	table := models.Table{Columns: []string{"v"}, Rows: rows}

	if got := InferColumnTypes(table, []string{"v"})["v"]; got != models.ColumnNumber {
		t.Errorf("prefix-sampled column = %q, want number", got)
	}
}

func TestNumericColumnsPreservesOrder(t *testing.T) {
	table := models.Table{
		Columns: []string{"b", "name", "a"},
		Rows: []models.Row{
			{"b": 2.0, "name": "x", "a": 1.0},
			{"b": 4.0, "name": "y", "a": 3.0},
		},
	}
	types := InferColumnTypes(table, table.Columns)

	got := NumericColumns(types, table.Columns)
	if len(got) != 2 || got[0] != "b" || got[1] != "a" {
		t.Errorf("NumericColumns = %v, want [b a] (declared order)", got)
	}
}

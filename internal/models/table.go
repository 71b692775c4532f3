package models

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// Row is a single data row: column name → scalar value.
// Values arrive from JSON so the usual shapes are float64, string, bool, nil.
type Row map[string]interface{}

// Table is an in-memory ordered collection of rows.
// Column order comes from Columns, not from any row's key order.
type Table struct {
	Columns []string `json:"columns"`
	Rows    []Row    `json:"data"`
}

// ColumnType is the inferred semantic kind of a column.
type ColumnType string

const (
	ColumnNumber   ColumnType = "number"
	ColumnDate     ColumnType = "date"
	ColumnCategory ColumnType = "category"
	ColumnText     ColumnType = "text"
)

// ColumnTypeMap maps every column name to exactly one ColumnType.
type ColumnTypeMap map[string]ColumnType

// ToFloat coerces a cell value to a finite float64.
// Strings like "1,234.56" are accepted; booleans and nulls are not numeric.
func ToFloat(v interface{}) (float64, bool) {
	switch val := v.(type) {
	case nil:
		return 0, false
	case float64:
		if math.IsNaN(val) || math.IsInf(val, 0) {
			return 0, false
		}
		return val, true
	case float32:
		return ToFloat(float64(val))
	case int:
		return float64(val), true
	case int64:
		return float64(val), true
	case json.Number:
		f, err := val.Float64()
		if err != nil {
			return 0, false
		}
		return ToFloat(f)
	case string:
		s := strings.TrimSpace(val)
		if s == "" {
			return 0, false
		}
		s = strings.ReplaceAll(s, ",", "")
		f, err := strconv.ParseFloat(s, 64)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02T15:04:05Z07:00",
	"2006-01-02 15:04:05",
	"01/02/2006",
	"02/01/2006",
	"Jan 2, 2006",
	"2 Jan 2006",
	"Jan-2006",
}

// IsDateValue reports whether a cell value parses as a date.
func IsDateValue(v interface{}) bool {
	s, ok := v.(string)
	if !ok {
		return false
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return false
	}
	for _, layout := range dateLayouts {
		if _, err := time.Parse(layout, s); err == nil {
			return true
		}
	}
	return false
}

// IsNull reports whether a cell value counts as missing.
func IsNull(v interface{}) bool {
	if v == nil {
		return true
	}
	if s, ok := v.(string); ok {
		s = strings.TrimSpace(s)
		return s == "" || strings.EqualFold(s, "null") || strings.EqualFold(s, "n/a")
	}
	return false
}

// Stringify renders a cell value as a group key / display string.
func Stringify(v interface{}) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case float64:
		if val == math.Trunc(val) && math.Abs(val) < 1e15 {
			return strconv.FormatInt(int64(val), 10)
		}
		return strconv.FormatFloat(val, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(val)
	default:
		return fmt.Sprintf("%v", val)
	}
}

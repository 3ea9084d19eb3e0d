package table

import (
	"encoding/json"
	"math"
	"strings"
	"time"

	"github.com/araddon/dateparse"
	"github.com/siherrmann/dataTable/model"
	"github.com/spf13/cast"
)

// InferType classifies a value for display. The first matching rule wins:
// nil is a string, then booleans, finite numbers, dates and everything else as string.
// Numeric strings are numbers even when they could be read as a date.
func InferType(value any) model.ColumnType {
	if value == nil {
		return model.ColumnTypeString
	}
	if _, ok := value.(bool); ok {
		return model.ColumnTypeBoolean
	}
	if _, ok := toFiniteNumber(value); ok {
		return model.ColumnTypeNumber
	}
	if _, ok := ParseDate(value); ok {
		return model.ColumnTypeDate
	}
	return model.ColumnTypeString
}

func toFiniteNumber(value any) (float64, bool) {
	switch v := value.(type) {
	case string:
		v = strings.TrimSpace(v)
		if v == "" {
			return 0, false
		}
		value = v
	case json.Number:
		value = v.String()
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64, float32, float64:
	default:
		return 0, false
	}

	number, err := cast.ToFloat64E(value)
	if err != nil || math.IsInf(number, 0) || math.IsNaN(number) {
		return 0, false
	}
	return number, true
}

// ParseDate returns the time of a time.Time or of a string in any common date format.
// Strings without a zone are read in local time.
func ParseDate(value any) (time.Time, bool) {
	switch v := value.(type) {
	case time.Time:
		return v, !v.IsZero()
	case *time.Time:
		if v == nil {
			return time.Time{}, false
		}
		return *v, !v.IsZero()
	case string:
		v = strings.TrimSpace(v)
		if v == "" {
			return time.Time{}, false
		}
		date, err := dateparse.ParseIn(v, time.Local)
		if err != nil || date.IsZero() {
			return time.Time{}, false
		}
		return date, true
	}
	return time.Time{}, false
}

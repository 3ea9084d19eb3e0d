package table

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/siherrmann/dataTable/model"
	"github.com/stretchr/testify/assert"
)

func TestInferType(t *testing.T) {
	tests := []struct {
		name     string
		value    any
		expected model.ColumnType
	}{
		{"nil", nil, model.ColumnTypeString},
		{"bool true", true, model.ColumnTypeBoolean},
		{"bool false", false, model.ColumnTypeBoolean},
		{"int", 42, model.ColumnTypeNumber},
		{"float", 3.14, model.ColumnTypeNumber},
		{"json number", json.Number("17"), model.ColumnTypeNumber},
		{"numeric string", "12.5", model.ColumnTypeNumber},
		{"numeric string with spaces", " 7 ", model.ColumnTypeNumber},
		{"negative numeric string", "-3", model.ColumnTypeNumber},
		{"date looking number", "20240105", model.ColumnTypeNumber},
		{"infinite string", "Inf", model.ColumnTypeString},
		{"nan string", "NaN", model.ColumnTypeString},
		{"date", "2024-01-05", model.ColumnTypeDate},
		{"date time", "2024-01-05 10:20:30", model.ColumnTypeDate},
		{"rfc3339", "2024-01-05T10:20:30Z", model.ColumnTypeDate},
		{"us slash date", "1/2/2006", model.ColumnTypeDate},
		{"unpadded iso date", "2024-1-5", model.ColumnTypeDate},
		{"month name date", "Jan 5 2024", model.ColumnTypeDate},
		{"millis with numeric zone", "2024-01-05T10:00:00.000+0100", model.ColumnTypeDate},
		{"space separated utc", "2024-01-05 10:00:00Z", model.ColumnTypeDate},
		{"time value", time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC), model.ColumnTypeDate},
		{"text", "hello", model.ColumnTypeString},
		{"empty string", "", model.ColumnTypeString},
		{"nested map", map[string]any{"a": 1}, model.ColumnTypeString},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			assert.Equal(t, test.expected, InferType(test.value))
		})
	}
}

func TestParseDate(t *testing.T) {
	t.Run("Parses date only string in local time", func(t *testing.T) {
		date, ok := ParseDate("2024-01-05")
		assert.True(t, ok)
		assert.True(t, time.Date(2024, 1, 5, 0, 0, 0, 0, time.Local).Equal(date))
	})

	t.Run("Keeps the zone of the string", func(t *testing.T) {
		date, ok := ParseDate("2024-01-05T10:00:00.000+0100")
		assert.True(t, ok)
		assert.True(t, time.Date(2024, 1, 5, 9, 0, 0, 0, time.UTC).Equal(date))
	})

	t.Run("Month before day for slash dates", func(t *testing.T) {
		date, ok := ParseDate("1/2/2006")
		assert.True(t, ok)
		assert.Equal(t, time.January, date.Month())
		assert.Equal(t, 2, date.Day())
	})

	t.Run("Rejects text", func(t *testing.T) {
		_, ok := ParseDate("not a date")
		assert.False(t, ok)
	})

	t.Run("Rejects zero time", func(t *testing.T) {
		_, ok := ParseDate(time.Time{})
		assert.False(t, ok)
	})
}

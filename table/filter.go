package table

import (
	"fmt"
	"strings"
	"time"

	"github.com/siherrmann/dataTable/model"
)

// Filter returns the records where any field value contains query, ignoring case.
// An empty query returns records itself so callers can compare by reference.
func Filter(records []model.Record, query string) []model.Record {
	if query == "" {
		return records
	}

	query = strings.ToLower(query)
	filtered := []model.Record{}
	for _, record := range records {
		if matches(record, query) {
			filtered = append(filtered, record)
		}
	}
	return filtered
}

func matches(record model.Record, lowerQuery string) bool {
	for _, field := range record.Fields {
		if strings.Contains(strings.ToLower(Stringify(field.Value)), lowerQuery) {
			return true
		}
	}
	return false
}

// Stringify is the default string conversion for cell values, search and export.
func Stringify(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case time.Time:
		return v.Format(time.RFC3339)
	case fmt.Stringer:
		return v.String()
	default:
		return fmt.Sprintf("%v", v)
	}
}

package table

import (
	"unicode"
	"unicode/utf8"

	"github.com/siherrmann/dataTable/model"
)

const DATE_FORMAT = "2006-01-02 15:04:05"

const (
	GLYPH_TRUE  = "✓"
	GLYPH_FALSE = "✗"
)

// DeriveColumns builds the column list from the first record only.
// Later records are never inspected, keys they add are not shown.
// An empty record list has no columns at all, not even select and actions.
func DeriveColumns(records []model.Record) []model.Column {
	if len(records) == 0 {
		return []model.Column{}
	}

	sample := records[0]
	columns := make([]model.Column, 0, len(sample.Fields)+2)
	columns = append(columns, model.Column{
		Key:  model.COLUMN_KEY_SELECT,
		Kind: model.ColumnKindSelect,
	})
	for _, field := range sample.Fields {
		columns = append(columns, model.Column{
			Key:      field.Key,
			Label:    label(field.Key),
			Type:     InferType(field.Value),
			Sortable: true,
			Kind:     model.ColumnKindData,
		})
	}
	columns = append(columns, model.Column{
		Key:   model.COLUMN_KEY_ACTIONS,
		Label: "Actions",
		Kind:  model.ColumnKindActions,
	})

	return columns
}

// DataColumns drops the select and actions columns.
func DataColumns(columns []model.Column) []model.Column {
	dataColumns := []model.Column{}
	for _, column := range columns {
		if column.IsData() {
			dataColumns = append(dataColumns, column)
		}
	}
	return dataColumns
}

func label(key string) string {
	first, size := utf8.DecodeRuneInString(key)
	if first == utf8.RuneError {
		return key
	}
	return string(unicode.ToUpper(first)) + key[size:]
}

// FormatCell renders a value the way its column type asks for.
// A date column value that does not parse is shown as is.
func FormatCell(column model.Column, value any) model.Cell {
	switch column.Type {
	case model.ColumnTypeDate:
		if date, ok := ParseDate(value); ok {
			return model.Cell{Text: date.Local().Format(DATE_FORMAT), Align: model.AlignLeft}
		}
		return model.Cell{Text: Stringify(value), Align: model.AlignLeft}
	case model.ColumnTypeNumber:
		return model.Cell{Text: Stringify(value), Align: model.AlignRight}
	case model.ColumnTypeBoolean:
		if b, ok := value.(bool); ok {
			if b {
				return model.Cell{Text: GLYPH_TRUE, Align: model.AlignLeft}
			}
			return model.Cell{Text: GLYPH_FALSE, Align: model.AlignLeft}
		}
		return model.Cell{Text: Stringify(value), Align: model.AlignLeft}
	default:
		return model.Cell{Text: Stringify(value), Align: model.AlignLeft}
	}
}

type ActionControl string

const (
	ActionDetails ActionControl = "details"
	ActionEdit    ActionControl = "edit"
	ActionDelete  ActionControl = "delete"
)

// ActionControls lists the row controls whose callback is set, in display order.
func ActionControls(actions model.Actions) []ActionControl {
	controls := []ActionControl{}
	if actions.OnDetails != nil {
		controls = append(controls, ActionDetails)
	}
	if actions.OnEdit != nil {
		controls = append(controls, ActionEdit)
	}
	if actions.OnDelete != nil {
		controls = append(controls, ActionDelete)
	}
	return controls
}

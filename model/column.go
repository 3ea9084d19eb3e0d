package model

// ColumnType is the display type inferred for a column.
type ColumnType int

const (
	ColumnTypeString ColumnType = iota
	ColumnTypeNumber
	ColumnTypeBoolean
	ColumnTypeDate
)

func (t ColumnType) String() string {
	switch t {
	case ColumnTypeNumber:
		return "number"
	case ColumnTypeBoolean:
		return "boolean"
	case ColumnTypeDate:
		return "date"
	default:
		return "string"
	}
}

// ColumnKind separates the fixed select and actions columns from data columns.
type ColumnKind int

const (
	ColumnKindData ColumnKind = iota
	ColumnKindSelect
	ColumnKindActions
)

const (
	COLUMN_KEY_SELECT  = "select"
	COLUMN_KEY_ACTIONS = "actions"
)

// Column describes how one field is labeled, typed and rendered.
type Column struct {
	Key      string     `json:"key"`
	Label    string     `json:"label"`
	Type     ColumnType `json:"type"`
	Sortable bool       `json:"sortable"`
	Kind     ColumnKind `json:"kind"`
}

func (c Column) IsData() bool {
	return c.Kind == ColumnKindData
}

type Align string

const (
	AlignLeft  Align = "left"
	AlignRight Align = "right"
)

// Cell is the rendered form of one value.
type Cell struct {
	Text  string
	Align Align
}

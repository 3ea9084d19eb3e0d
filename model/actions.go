package model

// Actions holds the optional row callbacks of a table.
// A nil callback removes the matching control from the table.
type Actions struct {
	OnDetails  func(record Record)
	OnEdit     func(record Record)
	OnDelete   func(record Record)
	OnSelected func(records []Record)
}

// TableStyle holds class overrides per table element. Values are passed through unchanged.
type TableStyle struct {
	Container string `mapstructure:"container"`
	Button    string `mapstructure:"button"`
	Input     string `mapstructure:"input"`
	Checkbox  string `mapstructure:"checkbox"`
	Dropdown  string `mapstructure:"dropdown"`
	Row       string `mapstructure:"row"`
}

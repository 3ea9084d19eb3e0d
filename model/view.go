package model

import "github.com/google/uuid"

// SortState is the sorting handed to the table engine. An empty key means unsorted.
type SortState struct {
	Key  string `json:"key"`
	Desc bool   `json:"desc"`
}

// ViewState is everything the table engine needs besides data and columns.
type ViewState struct {
	PageIndex  int
	PageSize   int
	Sort       SortState
	Hidden     map[string]bool
	IsSelected func(rid uuid.UUID) bool
}

// Row is one rendered row of the current page.
type Row struct {
	Record   Record
	Index    int
	Selected bool
}

// View is the sorted and paginated result of the table engine.
type View struct {
	Columns   []Column
	Rows      []Row
	PageIndex int
	PageSize  int
	PageCount int
	TotalRows int
}

func (v View) HasPrevious() bool {
	return v.PageIndex > 0
}

func (v View) HasNext() bool {
	return v.PageIndex+1 < v.PageCount
}

// FirstRow and LastRow are 1-based positions of the page within all rows.
func (v View) FirstRow() int {
	if len(v.Rows) == 0 {
		return 0
	}
	return v.PageIndex*v.PageSize + 1
}

func (v View) LastRow() int {
	return v.PageIndex*v.PageSize + len(v.Rows)
}

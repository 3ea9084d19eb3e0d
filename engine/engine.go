package engine

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/siherrmann/dataTable/model"
	"github.com/spf13/cast"
)

// Engine sorts and paginates table data. It keeps no state between renders.
type Engine struct{}

func New() *Engine {
	return &Engine{}
}

// Render returns the visible columns and the rows of the requested page.
// A page index past the last page is moved to the last page.
func (e *Engine) Render(data []model.Record, columns []model.Column, state model.ViewState) model.View {
	pageSize := state.PageSize
	if pageSize <= 0 {
		pageSize = len(data)
	}

	visible := []model.Column{}
	for _, column := range columns {
		if column.IsData() && state.Hidden[column.Key] {
			continue
		}
		visible = append(visible, column)
	}

	indexes := make([]int, len(data))
	for i := range indexes {
		indexes[i] = i
	}
	if state.Sort.Key != "" {
		indexes = sortIndexes(data, indexes, state.Sort)
	}

	pageCount := 0
	if pageSize > 0 {
		pageCount = (len(data) + pageSize - 1) / pageSize
	}
	pageIndex := state.PageIndex
	if pageIndex >= pageCount {
		pageIndex = pageCount - 1
	}
	if pageIndex < 0 {
		pageIndex = 0
	}

	rows := []model.Row{}
	if pageCount > 0 {
		start := pageIndex * pageSize
		end := min(start+pageSize, len(indexes))
		for _, index := range indexes[start:end] {
			record := data[index]
			selected := false
			if state.IsSelected != nil {
				selected = state.IsSelected(record.RID)
			}
			rows = append(rows, model.Row{
				Record:   record,
				Index:    index,
				Selected: selected,
			})
		}
	}

	return model.View{
		Columns:   visible,
		Rows:      rows,
		PageIndex: pageIndex,
		PageSize:  pageSize,
		PageCount: pageCount,
		TotalRows: len(data),
	}
}

func sortIndexes(data []model.Record, indexes []int, sort model.SortState) []int {
	sorted := slices.Clone(indexes)
	slices.SortStableFunc(sorted, func(a, b int) int {
		valueA, _ := data[a].Get(sort.Key)
		valueB, _ := data[b].Get(sort.Key)
		result := compare(valueA, valueB)
		if sort.Desc {
			return -result
		}
		return result
	})
	return sorted
}

// compare orders nil first, then numbers, times and strings by their natural order.
func compare(a, b any) int {
	if a == nil || b == nil {
		switch {
		case a == nil && b == nil:
			return 0
		case a == nil:
			return -1
		default:
			return 1
		}
	}

	if ba, ok := a.(bool); ok {
		if bb, ok := b.(bool); ok {
			switch {
			case ba == bb:
				return 0
			case !ba:
				return -1
			default:
				return 1
			}
		}
	}

	if ta, ok := a.(time.Time); ok {
		if tb, ok := b.(time.Time); ok {
			return ta.Compare(tb)
		}
	}

	na, errA := toNumber(a)
	nb, errB := toNumber(b)
	if errA == nil && errB == nil {
		switch {
		case na < nb:
			return -1
		case na > nb:
			return 1
		default:
			return 0
		}
	}

	return strings.Compare(strings.ToLower(fmt.Sprint(a)), strings.ToLower(fmt.Sprint(b)))
}

func toNumber(value any) (float64, error) {
	switch v := value.(type) {
	case bool:
		return 0, fmt.Errorf("bool is not a number")
	case string:
		s := strings.TrimSpace(v)
		if s == "" {
			return 0, fmt.Errorf("empty string is not a number")
		}
		return cast.ToFloat64E(s)
	}
	return cast.ToFloat64E(value)
}

package engine

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/siherrmann/dataTable/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testData() ([]model.Record, []model.Column) {
	data := []model.Record{
		model.NewRecord(model.Field{Key: "name", Value: "carol"}, model.Field{Key: "age", Value: json.Number("41")}),
		model.NewRecord(model.Field{Key: "name", Value: "Alice"}, model.Field{Key: "age", Value: 30}),
		model.NewRecord(model.Field{Key: "name", Value: "bob"}, model.Field{Key: "age", Value: "9"}),
		model.NewRecord(model.Field{Key: "name", Value: "dave"}, model.Field{Key: "age", Value: nil}),
	}
	columns := []model.Column{
		{Key: "_select", Kind: model.ColumnKindSelect},
		{Key: "name", Label: "Name", Kind: model.ColumnKindData, Sortable: true},
		{Key: "age", Label: "Age", Kind: model.ColumnKindData, Sortable: true},
		{Key: "_actions", Kind: model.ColumnKindActions},
	}
	return data, columns
}

func names(view model.View) []string {
	result := []string{}
	for _, row := range view.Rows {
		name, _ := row.Record.Get("name")
		result = append(result, name.(string))
	}
	return result
}

func TestRender(t *testing.T) {
	data, columns := testData()
	e := New()

	t.Run("Keeps data order without sort", func(t *testing.T) {
		view := e.Render(data, columns, model.ViewState{PageSize: 10})

		assert.Equal(t, []string{"carol", "Alice", "bob", "dave"}, names(view))
		assert.Equal(t, 1, view.PageCount)
		assert.Equal(t, 4, view.TotalRows)
		assert.Len(t, view.Columns, 4)
		assert.Equal(t, 1, view.Rows[1].Index)
	})

	t.Run("Sorts strings case insensitive", func(t *testing.T) {
		view := e.Render(data, columns, model.ViewState{PageSize: 10, Sort: model.SortState{Key: "name"}})
		assert.Equal(t, []string{"Alice", "bob", "carol", "dave"}, names(view))

		view = e.Render(data, columns, model.ViewState{PageSize: 10, Sort: model.SortState{Key: "name", Desc: true}})
		assert.Equal(t, []string{"dave", "carol", "bob", "Alice"}, names(view))
	})

	t.Run("Sorts mixed numbers numerically with nil first", func(t *testing.T) {
		view := e.Render(data, columns, model.ViewState{PageSize: 10, Sort: model.SortState{Key: "age"}})
		assert.Equal(t, []string{"dave", "bob", "Alice", "carol"}, names(view))
	})

	t.Run("Paginates and clamps the page index", func(t *testing.T) {
		view := e.Render(data, columns, model.ViewState{PageSize: 3, PageIndex: 1})
		assert.Equal(t, []string{"dave"}, names(view))
		assert.Equal(t, 2, view.PageCount)

		view = e.Render(data, columns, model.ViewState{PageSize: 3, PageIndex: 7})
		assert.Equal(t, 1, view.PageIndex)

		view = e.Render(data, columns, model.ViewState{PageSize: 3, PageIndex: -1})
		assert.Equal(t, 0, view.PageIndex)
	})

	t.Run("Hides data columns only", func(t *testing.T) {
		view := e.Render(data, columns, model.ViewState{PageSize: 10, Hidden: map[string]bool{"age": true, "_select": true}})
		require.Len(t, view.Columns, 3)
		assert.Equal(t, "_select", view.Columns[0].Key)
		assert.Equal(t, "name", view.Columns[1].Key)
	})

	t.Run("Marks selected rows", func(t *testing.T) {
		selected := data[2].RID
		view := e.Render(data, columns, model.ViewState{PageSize: 10, IsSelected: func(rid uuid.UUID) bool {
			return rid == selected
		}})
		assert.False(t, view.Rows[0].Selected)
		assert.True(t, view.Rows[2].Selected)
	})

	t.Run("Empty data", func(t *testing.T) {
		view := e.Render(nil, nil, model.ViewState{PageSize: 10})
		assert.Empty(t, view.Rows)
		assert.Equal(t, 0, view.PageCount)
		assert.Equal(t, 0, view.PageIndex)
	})
}

func TestCompare(t *testing.T) {
	earlier := time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC)
	later := earlier.Add(time.Hour)

	assert.Equal(t, 0, compare(nil, nil))
	assert.Equal(t, -1, compare(nil, "a"))
	assert.Equal(t, 1, compare(1, nil))
	assert.Equal(t, -1, compare(false, true))
	assert.Equal(t, 0, compare(true, true))
	assert.Equal(t, -1, compare(earlier, later))
	assert.Equal(t, -1, compare("9", 10))
	assert.Equal(t, 1, compare(json.Number("2.5"), 2))
	assert.Equal(t, -1, compare("apple", "Banana"))
	assert.Equal(t, -1, compare(" ", "0"))
}

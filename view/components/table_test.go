package components

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/siherrmann/dataTable/model"
	"github.com/siherrmann/dataTable/table"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func renderString(t *testing.T, ctx context.Context, props TableProps) string {
	buf := &bytes.Buffer{}
	err := Table(props).Render(ctx, buf)
	require.NoError(t, err)
	return buf.String()
}

func testProps(records []model.Record, co *table.Coordinator) TableProps {
	co.SetRecords(records, false)
	view := co.View()
	return TableProps{
		Name:            "users",
		Search:          co.Search(),
		PageSizes:       table.PAGE_SIZES,
		Sort:            co.Sort(),
		DataColumns:     table.DataColumns(co.Columns()),
		Hidden:          map[string]bool{},
		View:            view,
		HeaderSelection: table.PageSelection(view),
		SelectionCount:  co.SelectionCount(),
		Controls:        table.ActionControls(co.Actions()),
		Loading:         co.Loading(),
		CsrfToken:       "token",
	}
}

func TestTable(t *testing.T) {
	records := []model.Record{
		model.NewRecord(
			model.Field{Key: "name", Value: "<b>Alice</b>"},
			model.Field{Key: "age", Value: 30},
			model.Field{Key: "active", Value: true},
		),
		model.NewRecord(
			model.Field{Key: "name", Value: "Bob"},
			model.Field{Key: "age", Value: 25},
			model.Field{Key: "active", Value: false},
		),
	}

	t.Run("Renders rows with formatted cells", func(t *testing.T) {
		co := table.NewCoordinator(nil, model.Actions{}, nil)
		html := renderString(t, context.Background(), testProps(records, co))

		assert.Contains(t, html, `id="table-users"`)
		assert.Contains(t, html, "&lt;b&gt;Alice&lt;/b&gt;")
		assert.NotContains(t, html, "<b>Alice</b>")
		assert.Contains(t, html, `<td style="text-align: right">30</td>`)
		assert.Contains(t, html, "✓")
		assert.Contains(t, html, "✗")
		assert.Contains(t, html, "Showing 1-2 of 2")
		assert.Contains(t, html, "X-CSRF-Token")
		assert.Contains(t, html, `<option value="10" selected>`)
		assert.NotContains(t, html, "Delete selected")
	})

	t.Run("Only enabled actions are rendered", func(t *testing.T) {
		co := table.NewCoordinator(nil, model.Actions{OnDelete: func(model.Record) {}}, nil)
		html := renderString(t, context.Background(), testProps(records, co))

		assert.Contains(t, html, ">Delete</button>")
		assert.NotContains(t, html, ">Detail</button>")
		assert.NotContains(t, html, ">Edit</button>")
		assert.Contains(t, html, "<th>Actions</th>")
	})

	t.Run("No actions hides the actions column", func(t *testing.T) {
		co := table.NewCoordinator(nil, model.Actions{}, nil)
		html := renderString(t, context.Background(), testProps(records, co))

		assert.NotContains(t, html, "<th>Actions</th>")
	})

	t.Run("Selection state", func(t *testing.T) {
		co := table.NewCoordinator(nil, model.Actions{}, nil)
		co.SetRecords(records, false)
		co.ToggleSelection(records[0])
		html := renderString(t, context.Background(), testProps(records, co))

		assert.Contains(t, html, "Delete selected (1)")
		assert.Contains(t, html, "indeterminate")
		assert.Equal(t, 1, strings.Count(html, `data-selected="true"`))

		co.ToggleSelectAllOnPage(true)
		html = renderString(t, context.Background(), testProps(records, co))
		assert.Contains(t, html, "Delete selected (2)")
		assert.NotContains(t, html, "indeterminate")
		assert.Contains(t, html, `{&#34;selected&#34;:false}`)
	})

	t.Run("Sort header cycles", func(t *testing.T) {
		co := table.NewCoordinator(nil, model.Actions{}, nil)
		co.SetRecords(records, false)
		require.NoError(t, co.SetSort("age", false))
		html := renderString(t, context.Background(), testProps(records, co))

		assert.Contains(t, html, "Age ▲")
		assert.Contains(t, html, `{&#34;desc&#34;:true,&#34;key&#34;:&#34;age&#34;}`)
	})

	t.Run("Empty and loading states", func(t *testing.T) {
		co := table.NewCoordinator(nil, model.Actions{}, nil)
		html := renderString(t, context.Background(), testProps(nil, co))
		assert.Contains(t, html, "No data found")
		assert.NotContains(t, html, "<table>")

		props := testProps(nil, co)
		props.Loading = true
		html = renderString(t, context.Background(), props)
		assert.Contains(t, html, "Loading...")
	})
}

func TestLayout(t *testing.T) {
	content := PopupSuccess("Info", "saved")

	t.Run("Full page", func(t *testing.T) {
		buf := &bytes.Buffer{}
		err := Layout("Title", content).Render(context.Background(), buf)
		require.NoError(t, err)

		assert.Contains(t, buf.String(), "<!DOCTYPE html>")
		assert.Contains(t, buf.String(), "<title>Title</title>")
		assert.Contains(t, buf.String(), "saved")
	})

	t.Run("Fragment for htmx requests", func(t *testing.T) {
		ctx := model.WithRequestContext(context.Background(), model.RequestContext{HxRequest: true})
		buf := &bytes.Buffer{}
		err := Layout("Title", content).Render(ctx, buf)
		require.NoError(t, err)

		assert.NotContains(t, buf.String(), "<!DOCTYPE html>")
		assert.Contains(t, buf.String(), "popup-success")
	})

	t.Run("Full page for history restores", func(t *testing.T) {
		ctx := model.WithRequestContext(context.Background(), model.RequestContext{HxRequest: true, HxHistoryRestore: true})
		buf := &bytes.Buffer{}
		err := Layout("Title", content).Render(ctx, buf)
		require.NoError(t, err)

		assert.Contains(t, buf.String(), "<!DOCTYPE html>")
	})
}

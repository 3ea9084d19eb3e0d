package components

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/url"

	"github.com/a-h/templ"
	"github.com/siherrmann/dataTable/model"
	"github.com/siherrmann/dataTable/table"
)

// TableProps is everything the table component shows.
type TableProps struct {
	Name            string
	Search          string
	PageSizes       []int
	Sort            model.SortState
	DataColumns     []model.Column
	Hidden          map[string]bool
	View            model.View
	HeaderSelection table.SelectionState
	SelectionCount  int
	Controls        []table.ActionControl
	Loading         bool
	Style           model.TableStyle
	CsrfToken       string
}

func (p TableProps) id() string {
	return "table-" + p.Name
}

func (p TableProps) api(operation string) string {
	return "/api/table/" + url.PathEscape(p.Name) + "/" + operation
}

func (p TableProps) hxTarget(h *html) {
	h.attr("hx-target", "#"+p.id())
	h.raw(` hx-swap="outerHTML"`)
}

// Table renders the toolbar, the table and the pagination of one table.
func Table(p TableProps) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := newHTML(w)
		h.raw(`<div`)
		h.attr("id", p.id())
		h.attr("class", classes("datatable", p.Style.Container))
		if p.CsrfToken != "" {
			headers, err := json.Marshal(map[string]string{"X-CSRF-Token": p.CsrfToken})
			if err != nil {
				return err
			}
			h.attr("hx-headers", string(headers))
		}
		h.raw(`>`)

		tableToolbar(h, p)

		switch {
		case p.Loading:
			h.raw(`<div class="datatable-loading">Loading...</div>`)
		case p.View.TotalRows == 0:
			h.raw(`<div class="datatable-empty">No data found</div>`)
		default:
			tableGrid(h, p)
			tablePagination(h, p)
		}

		h.raw(`</div>`)
		return h.err
	})
}

func tableToolbar(h *html, p TableProps) {
	h.raw(`<div class="datatable-toolbar">`)

	h.raw(`<input type="search" name="search" placeholder="Search..."`)
	h.attr("class", classes("datatable-search", p.Style.Input))
	h.attr("value", p.Search)
	h.attr("hx-post", p.api("search"))
	h.raw(` hx-trigger="input changed delay:300ms, search"`)
	p.hxTarget(h)
	h.raw(`>`)

	h.raw(`<select name="pageSize"`)
	h.attr("class", classes("datatable-page-size", p.Style.Dropdown))
	h.attr("hx-post", p.api("pageSize"))
	p.hxTarget(h)
	h.raw(`>`)
	for _, size := range p.PageSizes {
		h.rawf(`<option value="%d"`, size)
		if size == p.View.PageSize {
			h.raw(` selected`)
		}
		h.rawf(`>%d</option>`, size)
	}
	h.raw(`</select>`)

	h.raw(`<details`)
	h.attr("class", classes("datatable-columns", p.Style.Dropdown))
	h.raw(`><summary>Columns</summary>`)
	for _, column := range p.DataColumns {
		h.raw(`<label><input type="checkbox"`)
		h.attr("class", p.Style.Checkbox)
		if !p.Hidden[column.Key] {
			h.raw(` checked`)
		}
		h.attr("hx-post", p.api("toggleColumn"))
		h.vals(map[string]any{"key": column.Key})
		p.hxTarget(h)
		h.raw(`>`)
		h.text(column.Label)
		h.raw(`</label>`)
	}
	h.raw(`</details>`)

	h.raw(`<a`)
	h.attr("class", classes("datatable-button", p.Style.Button))
	h.attr("href", p.api("export"))
	h.raw(` download>Download CSV</a>`)
	h.raw(`<button`)
	h.attr("class", classes("datatable-button", p.Style.Button))
	h.attr("hx-post", p.api("exportJob"))
	h.raw(` hx-swap="none">Export to storage</button>`)

	if p.SelectionCount > 0 {
		h.raw(`<button`)
		h.attr("class", classes("datatable-button datatable-delete", p.Style.Button))
		h.attr("hx-post", p.api("deleteSelected"))
		h.attr("hx-confirm", fmt.Sprintf("Delete %d selected record(s)?", p.SelectionCount))
		p.hxTarget(h)
		h.rawf(`>Delete selected (%d)</button>`, p.SelectionCount)
	}

	h.raw(`</div>`)
}

func tableGrid(h *html, p TableProps) {
	h.raw(`<table><thead><tr>`)
	for _, column := range p.View.Columns {
		switch column.Kind {
		case model.ColumnKindSelect:
			h.raw(`<th><input type="checkbox"`)
			h.attr("class", p.Style.Checkbox)
			if p.HeaderSelection == table.SelectionAll {
				h.raw(` checked`)
			}
			h.attr("hx-post", p.api("selectPage"))
			h.vals(map[string]any{"selected": p.HeaderSelection != table.SelectionAll})
			p.hxTarget(h)
			h.raw(`>`)
			if p.HeaderSelection == table.SelectionSome {
				h.raw(`<script>document.currentScript.previousElementSibling.indeterminate = true</script>`)
			}
			h.raw(`</th>`)
		case model.ColumnKindActions:
			if len(p.Controls) > 0 {
				h.raw(`<th>`)
				h.text(column.Label)
				h.raw(`</th>`)
			}
		default:
			tableHeader(h, p, column)
		}
	}
	h.raw(`</tr></thead><tbody>`)

	for _, row := range p.View.Rows {
		h.raw(`<tr`)
		h.attr("class", classes("datatable-row", p.Style.Row))
		if row.Selected {
			h.raw(` data-selected="true"`)
		}
		h.raw(`>`)
		for _, column := range p.View.Columns {
			switch column.Kind {
			case model.ColumnKindSelect:
				h.raw(`<td><input type="checkbox"`)
				h.attr("class", p.Style.Checkbox)
				if row.Selected {
					h.raw(` checked`)
				}
				h.attr("hx-post", p.api("toggleSelection/"+row.Record.ToIdentifier()))
				p.hxTarget(h)
				h.raw(`></td>`)
			case model.ColumnKindActions:
				tableActions(h, p, row.Record)
			default:
				value, _ := row.Record.Get(column.Key)
				cell := table.FormatCell(column, value)
				h.raw(`<td`)
				if cell.Align == model.AlignRight {
					h.raw(` style="text-align: right"`)
				}
				h.raw(`>`)
				h.text(cell.Text)
				h.raw(`</td>`)
			}
		}
		h.raw(`</tr>`)
	}
	h.raw(`</tbody></table>`)
}

func tableHeader(h *html, p TableProps, column model.Column) {
	h.raw(`<th>`)
	if !column.Sortable {
		h.text(column.Label)
		h.raw(`</th>`)
		return
	}

	// Cycles ascending, descending, unsorted.
	next := map[string]any{"key": column.Key, "desc": false}
	indicator := ""
	switch {
	case p.Sort.Key == column.Key && !p.Sort.Desc:
		next["desc"] = true
		indicator = " ▲"
	case p.Sort.Key == column.Key && p.Sort.Desc:
		next["key"] = ""
		indicator = " ▼"
	}

	h.raw(`<button type="button" class="datatable-sort"`)
	h.attr("hx-post", p.api("sort"))
	h.vals(next)
	p.hxTarget(h)
	h.raw(`>`)
	h.text(column.Label + indicator)
	h.raw(`</button></th>`)
}

func tableActions(h *html, p TableProps, record model.Record) {
	if len(p.Controls) == 0 {
		return
	}

	rid := record.ToIdentifier()
	h.raw(`<td class="datatable-actions">`)
	for _, control := range p.Controls {
		h.raw(`<button type="button"`)
		h.attr("class", classes("datatable-button", p.Style.Button))
		switch control {
		case table.ActionDetails:
			h.attr("hx-get", "/record/"+rid+"?table="+url.QueryEscape(p.Name))
			h.raw(` hx-target="#body">Detail`)
		case table.ActionEdit:
			h.attr("hx-get", "/record/"+rid+"/updateRecordPopup?table="+url.QueryEscape(p.Name))
			h.raw(` hx-target="#body" hx-swap="beforeend">Edit`)
		case table.ActionDelete:
			h.attr("hx-post", p.api("deleteRecord/"+rid))
			h.raw(` hx-confirm="Delete this record?"`)
			p.hxTarget(h)
			h.raw(`>Delete`)
		}
		h.raw(`</button>`)
	}
	h.raw(`</td>`)
}

func tablePagination(h *html, p TableProps) {
	view := p.View
	h.raw(`<div class="datatable-pagination">`)
	h.rawf(`<span>Showing %d-%d of %d</span>`, view.FirstRow(), view.LastRow(), view.TotalRows)

	h.raw(`<button type="button"`)
	h.attr("class", classes("datatable-button", p.Style.Button))
	if view.HasPrevious() {
		h.attr("hx-post", p.api("page"))
		h.vals(map[string]any{"page": view.PageIndex - 1})
		p.hxTarget(h)
	} else {
		h.raw(` disabled`)
	}
	h.raw(`>Previous</button>`)

	h.rawf(`<span>Page %d of %d</span>`, view.PageIndex+1, view.PageCount)

	h.raw(`<button type="button"`)
	h.attr("class", classes("datatable-button", p.Style.Button))
	if view.HasNext() {
		h.attr("hx-post", p.api("page"))
		h.vals(map[string]any{"page": view.PageIndex + 1})
		p.hxTarget(h)
	} else {
		h.raw(` disabled`)
	}
	h.raw(`>Next</button>`)

	h.raw(`</div>`)
}

package screens

import (
	"context"
	"net/url"

	"github.com/a-h/templ"
	"github.com/siherrmann/dataTable/model"
	"github.com/siherrmann/dataTable/table"
	"github.com/siherrmann/dataTable/view/components"
)

// Record renders the details of a single record.
func Record(tableName string, record model.Record) templ.Component {
	return components.Layout("Record "+record.ToIdentifier(), screen(func(ctx context.Context, h *html) {
		h.raw(`<main><nav><a`)
		h.attr("href", "/table/"+url.PathEscape(tableName))
		h.raw(`>`)
		h.text(tableName)
		h.raw(`</a> / `)
		h.text(record.ToIdentifier())
		h.raw(`</nav><dl>`)
		for _, field := range record.Fields {
			h.raw(`<dt>`)
			h.text(field.Key)
			h.raw(`</dt><dd>`)
			h.text(table.Stringify(field.Value))
			h.raw(`</dd>`)
		}
		h.raw(`</dl></main>`)
	}))
}

// UpdateRecordPopup renders a form with one input per field of the record.
func UpdateRecordPopup(tableName string, record model.Record, csrfToken string) templ.Component {
	return screen(func(ctx context.Context, h *html) {
		h.raw(`<div class="popup"><form`)
		h.attr("hx-post", "/api/table/"+url.PathEscape(tableName)+"/updateRecord/"+record.ToIdentifier())
		h.raw(` hx-swap="none" hx-on::after-request="if(event.detail.successful) this.closest('.popup').remove()">`)
		h.raw(`<input type="hidden" name="gorilla.csrf.Token"`)
		h.attr("value", csrfToken)
		h.raw(`><h3>Edit record</h3>`)
		for _, field := range record.Fields {
			h.raw(`<label>`)
			h.text(field.Key)
			h.raw(`<input type="text"`)
			h.attr("name", field.Key)
			h.raw(` value="`)
			h.text(table.Stringify(field.Value))
			h.raw(`"></label>`)
		}
		h.raw(`<button type="submit">Save</button>`)
		h.raw(`<button type="button" hx-on:click="this.closest('.popup').remove()">Cancel</button>`)
		h.raw(`</form></div>`)
	})
}

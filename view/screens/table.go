package screens

import (
	"context"
	"net/url"

	"github.com/a-h/templ"
	"github.com/siherrmann/dataTable/view/components"
)

// Table renders the table screen of one table.
func Table(props components.TableProps) templ.Component {
	return components.Layout(props.Name, screen(func(ctx context.Context, h *html) {
		h.raw(`<main><nav><a href="/">Tables</a> / `)
		h.text(props.Name)
		h.raw(`</nav>`)
		h.render(ctx, components.Table(props))
		h.render(ctx, importForm(props.Name, props.CsrfToken))
		h.raw(`</main>`)
	}))
}

// Tables renders the index of all tables holding records.
func Tables(names []string) templ.Component {
	return components.Layout("Tables", screen(func(ctx context.Context, h *html) {
		h.raw(`<main><h1>Tables</h1>`)
		if len(names) == 0 {
			h.raw(`<p>No tables yet, add a record or import a CSV file.</p>`)
		}
		h.raw(`<ul>`)
		for _, name := range names {
			h.raw(`<li><a`)
			h.attr("href", "/table/"+url.PathEscape(name))
			h.raw(`>`)
			h.text(name)
			h.raw(`</a></li>`)
		}
		h.raw(`</ul></main>`)
	}))
}

func importForm(name string, csrfToken string) templ.Component {
	return screen(func(ctx context.Context, h *html) {
		h.raw(`<form enctype="multipart/form-data" hx-swap="none"`)
		h.attr("hx-post", "/api/table/"+url.PathEscape(name)+"/importCsv")
		h.raw(`><input type="hidden" name="gorilla.csrf.Token"`)
		h.attr("value", csrfToken)
		h.raw(`><input type="file" name="file" accept=".csv,text/csv"><button type="submit">Import CSV</button></form>`)
	})
}

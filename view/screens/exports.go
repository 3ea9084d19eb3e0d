package screens

import (
	"context"
	"net/url"
	"time"

	"github.com/a-h/templ"
	"github.com/siherrmann/dataTable/upload"
	"github.com/siherrmann/dataTable/view/components"
)

// Exports lists the artifacts written to the export storage.
func Exports(files []upload.File, csrfToken string) templ.Component {
	return components.Layout("Exports", screen(func(ctx context.Context, h *html) {
		h.raw(`<main hx-get="/exports" hx-trigger="reloadExports from:body"><nav><a href="/">Tables</a> / Exports</nav>`)
		if len(files) == 0 {
			h.raw(`<p>No exports yet.</p></main>`)
			return
		}
		h.raw(`<table><thead><tr><th>Name</th><th>Size</th><th>Type</th><th>Modified</th><th></th></tr></thead><tbody>`)
		for _, file := range files {
			h.raw(`<tr><td><a`)
			h.attr("href", "/api/export/download?name="+url.QueryEscape(file.Name))
			h.raw(`>`)
			h.text(file.Name)
			h.rawf(`</a></td><td style="text-align: right">%d</td><td>`, file.Size)
			h.text(file.MimeType)
			h.raw(`</td><td>`)
			h.text(file.ModTime.Format(time.RFC3339))
			h.raw(`</td><td><button hx-confirm="Delete this export?"`)
			h.attr("hx-post", "/api/export/deleteExport/"+url.PathEscape(file.Name))
			h.jsonAttr("hx-headers", map[string]string{"X-CSRF-Token": csrfToken})
			h.raw(`>Delete</button></td></tr>`)
		}
		h.raw(`</tbody></table></main>`)
	}))
}

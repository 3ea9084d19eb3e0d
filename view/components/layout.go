package components

import (
	"context"
	"io"

	"github.com/a-h/templ"
	"github.com/siherrmann/dataTable/model"
)

const HTMX_SCRIPT = "https://unpkg.com/htmx.org@2.0.4"

// Layout wraps content in a full page unless the request came from htmx.
func Layout(title string, content templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if model.GetRequestContext(ctx).Partial() {
			return content.Render(ctx, w)
		}

		h := newHTML(w)
		h.raw(`<!DOCTYPE html><html lang="en"><head><meta charset="utf-8"><title>`)
		h.text(title)
		h.raw(`</title><script`)
		h.attr("src", HTMX_SCRIPT)
		h.raw(`></script></head><body id="body">`)
		h.render(ctx, content)
		h.raw(`</body></html>`)
		return h.err
	})
}

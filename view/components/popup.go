package components

import (
	"context"
	"io"

	"github.com/a-h/templ"
)

func PopupError(title string, message string) templ.Component {
	return popup("popup popup-error", title, message)
}

func PopupSuccess(title string, message string) templ.Component {
	return popup("popup popup-success", title, message)
}

func popup(class string, title string, message string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := newHTML(w)
		h.raw(`<div`)
		h.attr("class", class)
		h.raw(` hx-on:click="this.remove()"><h3>`)
		h.text(title)
		h.raw(`</h3><p>`)
		h.text(message)
		h.raw(`</p></div>`)
		return h.err
	})
}

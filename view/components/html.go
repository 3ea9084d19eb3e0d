package components

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/a-h/templ"
)

// html writes markup and keeps the first write error.
type html struct {
	w   io.Writer
	err error
}

func newHTML(w io.Writer) *html {
	return &html{w: w}
}

func (h *html) raw(s string) {
	if h.err != nil {
		return
	}
	_, h.err = io.WriteString(h.w, s)
}

func (h *html) rawf(format string, args ...any) {
	h.raw(fmt.Sprintf(format, args...))
}

// text writes escaped text.
func (h *html) text(s string) {
	h.raw(templ.EscapeString(s))
}

// attr writes ` name="value"` with the value escaped, empty values are skipped.
func (h *html) attr(name string, value string) {
	if value == "" {
		return
	}
	h.raw(" " + name + `="` + templ.EscapeString(value) + `"`)
}

// vals writes an hx-vals attribute sending values as form fields.
func (h *html) vals(values map[string]any) {
	if h.err != nil {
		return
	}
	data, err := json.Marshal(values)
	if err != nil {
		h.err = err
		return
	}
	h.attr("hx-vals", string(data))
}

func (h *html) render(ctx context.Context, c templ.Component) {
	if h.err != nil {
		return
	}
	h.err = c.Render(ctx, h.w)
}

func classes(base string, override string) string {
	if override == "" {
		return base
	}
	return base + " " + override
}

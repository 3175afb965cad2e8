// Package components renders the layout tree as HTML for the editor page.
//
// Components are templ.Components so they plug into datastar's
// PatchElementTempl exactly like generated templ code.
package components

import (
	"io"

	"github.com/a-h/templ"
)

// htmlWriter writes HTML fragments and remembers the first error.
type htmlWriter struct {
	w   io.Writer
	err error
}

func (h *htmlWriter) raw(parts ...string) {
	for _, s := range parts {
		if h.err != nil {
			return
		}
		_, h.err = io.WriteString(h.w, s)
	}
}

// attr writes ` name="value"` with value escaped.
func (h *htmlWriter) attr(name, value string) {
	h.raw(" ", name, `="`, templ.EscapeString(value), `"`)
}

// text writes escaped text content.
func (h *htmlWriter) text(s string) {
	h.raw(templ.EscapeString(s))
}

package components

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"
	"github.com/leapstack-labs/splitpane/pkg/core"
)

// PageData holds everything the editor page shell needs.
type PageData struct {
	Title       string
	DatastarURL string
	StylesURL   string
	IsDev       bool
	Root        *core.Pane
	Revision    uint64
}

// Page renders the full editor document. The workspace is rendered inline so
// the first paint needs no round trip; later changes arrive over /updates.
func Page(data PageData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := &htmlWriter{w: w}
		h.raw("<!doctype html>\n", `<html lang="en"><head><meta charset="utf-8">`)
		h.raw(`<meta name="viewport" content="width=device-width, initial-scale=1">`)
		h.raw("<title>")
		h.text(data.Title)
		h.raw(" - splitpane</title>")
		h.raw(`<link rel="stylesheet"`)
		h.attr("href", data.StylesURL)
		h.raw(">")
		h.raw(`<script type="module"`)
		h.attr("src", data.DatastarURL)
		h.raw("></script></head><body>")

		h.raw("<main")
		h.attr("id", "app")
		h.attr("data-signals", "{px: 0, py: 0, dragging: false}")
		h.attr("data-init", fmt.Sprintf("@get('/updates?rev=%d')", data.Revision))
		h.attr("data-on:pointermove__window__throttle.30ms",
			"$dragging && ($px = evt.clientX, $py = evt.clientY, @post('/api/gestures/move'))")
		h.attr("data-on:pointerup__window",
			"$dragging && ($dragging = false, @post('/api/gestures/end'))")
		h.raw(">")

		h.raw(`<header class="toolbar"><span class="brand">splitpane</span>`)
		writeButton(h, "Start over with a single pane", "reset", "@post('/api/panes/reset')", "Reset")
		h.raw("</header>")
		if h.err != nil {
			return h.err
		}

		if err := Workspace(data.Root, data.Revision).Render(ctx, w); err != nil {
			return err
		}

		if data.IsDev {
			h.raw(`<div id="hotreload" data-init="@get('/reload')"></div>`)
		}
		h.raw("</main></body></html>")
		return h.err
	})
}

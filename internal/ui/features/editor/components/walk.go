package components

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"strconv"

	"github.com/a-h/templ"
	"github.com/leapstack-labs/splitpane/pkg/core"
	"github.com/leapstack-labs/splitpane/pkg/layout"
)

// WorkspaceID is the element id morphed by every update.
const WorkspaceID = "workspace"

// Workspace renders the whole tree inside the #workspace element.
func Workspace(root *core.Pane, revision uint64) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		h := &htmlWriter{w: w}
		h.raw("<div")
		h.attr("id", WorkspaceID)
		h.attr("class", "workspace")
		h.attr("data-revision", strconv.FormatUint(revision, 10))
		h.raw(">")
		if root != nil {
			writePane(h, root, "flex:1 1 0%;"+sizeStyle(clampShare(root.Width), clampShare(root.Height)))
		}
		h.raw("</div>")
		return h.err
	})
}

// writePane renders p and, for a container, its children and divider.
func writePane(h *htmlWriter, p *core.Pane, style string) {
	if p.IsLeaf() {
		writeLeaf(h, p, style)
		return
	}

	h.raw("<div")
	h.attr("id", paneElementID(p.ID))
	h.attr("class", "pane split split-"+p.Orientation.String())
	h.attr("style", style)
	h.raw(">")

	shares := layout.Shares(p)
	for i, child := range p.Children {
		if i == 1 {
			writeDivider(h, p)
		}
		writePane(h, child, childStyle(p.Orientation, shares[i]))
	}
	h.raw("</div>")
}

func writeLeaf(h *htmlWriter, p *core.Pane, style string) {
	h.raw("<div")
	h.attr("id", paneElementID(p.ID))
	h.attr("class", "pane leaf")
	h.attr("style", style+"background:"+p.Color+";color:"+layout.ContrastText(p.Color)+";")
	h.attr("data-pane", string(p.ID))
	h.raw(">")

	h.raw(`<div class="controls">`)
	writeButton(h, "Split vertically", "split-vertical", splitAction(p.ID, core.Vertical), "◫")
	writeButton(h, "Split horizontally", "split-horizontal", splitAction(p.ID, core.Horizontal), "⊟")
	if !p.IsRoot() {
		writeButton(h, "Delete pane", "delete", deleteAction(p.ID), "✕")
	}
	h.raw("</div>")

	h.raw("</div>")
}

func writeButton(h *htmlWriter, title, class, action, label string) {
	h.raw("<button")
	h.attr("type", "button")
	h.attr("class", "control "+class)
	h.attr("title", title)
	h.attr("data-on:click", action)
	h.raw(">")
	h.text(label)
	h.raw("</button>")
}

// writeDivider renders the drag handle between the two children of p.
// Pointer down records the pointer position and opens the gesture; window
// listeners on the page report moves and the release.
func writeDivider(h *htmlWriter, p *core.Pane) {
	h.raw("<div")
	h.attr("class", "divider divider-"+p.Orientation.String())
	h.attr("data-parent", string(p.ID))
	h.attr("data-on:pointerdown", fmt.Sprintf(
		"evt.preventDefault(); $px = evt.clientX; $py = evt.clientY; $dragging = true; @post('%s')",
		gestureAction(p.ID, p.Orientation),
	))
	h.raw("></div>")
}

func childStyle(o core.Orientation, share float64) string {
	grow := fmt.Sprintf("flex:%.3f 1 0%%;", share*100)
	if o == core.Horizontal {
		return grow + "width:100%;min-height:0;"
	}
	return grow + "height:100%;min-width:0;"
}

func sizeStyle(width, height float64) string {
	return fmt.Sprintf("width:%.3f%%;height:%.3f%%;", width, height)
}

func clampShare(v float64) float64 {
	return min(max(v, 0), 100)
}

func paneElementID(id core.PaneID) string {
	return "pane-" + string(id)
}

func splitAction(id core.PaneID, o core.Orientation) string {
	return fmt.Sprintf("@post('/api/panes/%s/split?orientation=%s')", url.PathEscape(string(id)), o)
}

func deleteAction(id core.PaneID) string {
	return fmt.Sprintf("@post('/api/panes/%s/delete')", url.PathEscape(string(id)))
}

func gestureAction(parent core.PaneID, o core.Orientation) string {
	q := url.Values{}
	q.Set("parent", string(parent))
	q.Set("orientation", o.String())
	return "/api/gestures?" + q.Encode()
}

package components

import (
	"context"
	"strings"
	"testing"

	"github.com/a-h/templ"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/splitpane/pkg/core"
)

func render(t *testing.T, c templ.Component) string {
	t.Helper()
	var sb strings.Builder
	require.NoError(t, c.Render(context.Background(), &sb))
	return sb.String()
}

func leaf(id core.PaneID, color string, w, h float64) *core.Pane {
	return &core.Pane{ID: id, Color: color, Width: w, Height: h}
}

func split(id core.PaneID, o core.Orientation, children ...*core.Pane) *core.Pane {
	return &core.Pane{ID: id, Orientation: o, Width: 100, Height: 100, Parent: true, Children: children}
}

func TestWorkspace_SingleLeaf(t *testing.T) {
	html := render(t, Workspace(leaf(core.RootID, "#112233", 100, 100), 7))

	assert.True(t, strings.HasPrefix(html, `<div id="workspace" class="workspace" data-revision="7">`))
	assert.Contains(t, html, `id="pane-root"`)
	assert.Contains(t, html, "background:#112233;color:#ffffff;")
	assert.Contains(t, html, "split?orientation=vertical")
	assert.Contains(t, html, "split?orientation=horizontal")
	assert.NotContains(t, html, "/delete", "root has no delete control")
	assert.NotContains(t, html, "divider")
}

func TestWorkspace_SplitRendersDividerBetweenChildren(t *testing.T) {
	root := split(core.RootID, core.Vertical,
		leaf("a", "#ffffff", 100, 100),
		leaf("b", "#000000", 100, 100),
	)

	html := render(t, Workspace(root, 1))

	a := strings.Index(html, `id="pane-a"`)
	d := strings.Index(html, "divider divider-vertical")
	b := strings.Index(html, `id="pane-b"`)
	require.True(t, a >= 0 && d >= 0 && b >= 0)
	assert.Less(t, a, d)
	assert.Less(t, d, b)

	assert.Contains(t, html, "split split-vertical")
	assert.Equal(t, 2, strings.Count(html, "flex:50.000 1 0%;height:100%;"))
	assert.Contains(t, html, "/api/panes/a/delete")
	assert.Contains(t, html, "/api/gestures?orientation=vertical&amp;parent=root")
	assert.Contains(t, html, "background:#ffffff;color:#111111;")
}

func TestWorkspace_SharesFollowWeights(t *testing.T) {
	root := split(core.RootID, core.Horizontal,
		leaf("a", "#000000", 100, 150),
		leaf("b", "#000000", 100, -10),
	)

	html := render(t, Workspace(root, 1))

	assert.Contains(t, html, "flex:100.000 1 0%;width:100%;min-height:0;")
	assert.Contains(t, html, "flex:0.000 1 0%;width:100%;min-height:0;")
}

func TestWorkspace_EscapesPaneIDs(t *testing.T) {
	root := split(core.RootID, core.Vertical,
		leaf(`"><script>`, "#000000", 100, 100),
		leaf("b", "#000000", 100, 100),
	)

	html := render(t, Workspace(root, 1))

	assert.NotContains(t, html, "<script>")
}

func TestPage(t *testing.T) {
	html := render(t, Page(PageData{
		Title:       "Layout",
		DatastarURL: "https://example.test/datastar.js",
		StylesURL:   "/static/splitpane.css",
		Root:        leaf(core.RootID, "#808080", 100, 100),
		Revision:    3,
	}))

	assert.True(t, strings.HasPrefix(html, "<!doctype html>"))
	assert.Contains(t, html, `<script type="module" src="https://example.test/datastar.js"></script>`)
	assert.Contains(t, html, `href="/static/splitpane.css"`)
	assert.Contains(t, html, "/updates?rev=3")
	assert.Contains(t, html, "data-on:pointermove__window")
	assert.Contains(t, html, "/api/panes/reset")
	assert.Contains(t, html, `id="workspace"`)
	assert.NotContains(t, html, "hotreload")
}

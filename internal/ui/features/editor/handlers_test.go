package editor

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/splitpane/internal/ui/features"
	"github.com/leapstack-labs/splitpane/pkg/core"
	"github.com/leapstack-labs/splitpane/pkg/layout"
)

// =============================================================================
// Test Setup Helpers
// =============================================================================

func setupTestRouter(t *testing.T) (chi.Router, *Handlers, *features.TestFixture) {
	t.Helper()

	fixture := features.SetupTestFixture(t)
	opts := PageOptions{
		Title:       "Layout",
		DatastarURL: "/static/datastar.js",
		StylesURL:   "/static/splitpane.css",
		IsDev:       true,
	}

	r := chi.NewRouter()
	require.NoError(t, SetupRoutes(r, fixture.Workspace, fixture.Gestures, fixture.SessionStore, fixture.Notifier, opts))

	return r, NewHandlers(fixture.Workspace, fixture.Gestures, fixture.SessionStore, fixture.Notifier, opts), fixture
}

func serve(r http.Handler, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func post(r http.Handler, target string) *httptest.ResponseRecorder {
	return serve(r, features.SignalsRequest(target, "{}"))
}

// =============================================================================
// EditorPage Tests
// =============================================================================

func TestEditorPage(t *testing.T) {
	r, _, fixture := setupTestRouter(t)
	fixture.MustSplit(t, core.RootID, core.Vertical)

	rec := serve(r, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	for _, want := range []string{
		"<!doctype html>",
		"<title>Layout - splitpane</title>",
		`src="/static/datastar.js"`,
		"@get(&#39;/updates?rev=1&#39;)",
		`id="workspace"`,
		`id="pane-p-1"`,
		`id="pane-p-2"`,
		"divider-vertical",
		`id="hotreload"`,
	} {
		assert.Contains(t, body, want, "response should contain %q", want)
	}

	var found bool
	for _, c := range rec.Result().Cookies() {
		found = found || c.Name == sessionName
	}
	assert.True(t, found, "page should set the session cookie")
}

// =============================================================================
// Pane action Tests
// =============================================================================

func TestSplit(t *testing.T) {
	tests := []struct {
		name       string
		target     string
		setup      func(t *testing.T, f *features.TestFixture)
		wantStatus int
		wantLeaves int
	}{
		{
			name:       "vertical split of root",
			target:     "/api/panes/root/split?orientation=vertical",
			wantStatus: http.StatusOK,
			wantLeaves: 2,
		},
		{
			name:       "short orientation name",
			target:     "/api/panes/root/split?orientation=h",
			wantStatus: http.StatusOK,
			wantLeaves: 2,
		},
		{
			name:       "invalid orientation",
			target:     "/api/panes/root/split?orientation=diagonal",
			wantStatus: http.StatusBadRequest,
			wantLeaves: 1,
		},
		{
			name:   "container cannot be split",
			target: "/api/panes/root/split?orientation=vertical",
			setup: func(t *testing.T, f *features.TestFixture) {
				f.MustSplit(t, core.RootID, core.Horizontal)
			},
			wantStatus: http.StatusConflict,
			wantLeaves: 2,
		},
		{
			name:       "unknown pane is a no-op",
			target:     "/api/panes/nope/split?orientation=vertical",
			wantStatus: http.StatusOK,
			wantLeaves: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, _, fixture := setupTestRouter(t)
			if tt.setup != nil {
				tt.setup(t, fixture)
			}

			rec := post(r, tt.target)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Len(t, layout.Leaves(fixture.Root()), tt.wantLeaves)
			if tt.wantStatus == http.StatusOK {
				assert.Contains(t, rec.Body.String(), "event: datastar-patch-elements")
			}
		})
	}
}

func TestSplit_PatchContainsNewPanes(t *testing.T) {
	r, _, _ := setupTestRouter(t)

	rec := post(r, "/api/panes/root/split?orientation=horizontal")

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `pane-p-1`)
	assert.Contains(t, body, `pane-p-2`)
	assert.Contains(t, body, "divider-horizontal")
	assert.Contains(t, body, `data-revision="1"`)
}

func TestDelete(t *testing.T) {
	r, _, fixture := setupTestRouter(t)
	fixture.MustSplit(t, core.RootID, core.Vertical)

	rec := post(r, "/api/panes/p-2/delete")

	require.Equal(t, http.StatusOK, rec.Code)
	root := fixture.Root()
	require.Len(t, root.Children, 1)
	assert.Equal(t, core.PaneID("p-1"), root.Children[0].ID)
	assert.NotContains(t, rec.Body.String(), "pane-p-2")
}

func TestDelete_RootIsIgnored(t *testing.T) {
	r, _, fixture := setupTestRouter(t)
	before, rev := fixture.Workspace.Snapshot()

	rec := post(r, "/api/panes/root/delete")

	assert.Equal(t, http.StatusOK, rec.Code)
	after, revAfter := fixture.Workspace.Snapshot()
	assert.Same(t, before, after)
	assert.Equal(t, rev, revAfter)
}

func TestReset(t *testing.T) {
	r, _, fixture := setupTestRouter(t)
	fixture.MustSplit(t, core.RootID, core.Vertical)
	fixture.MustSplit(t, "p-1", core.Horizontal)

	rec := post(r, "/api/panes/reset")

	require.Equal(t, http.StatusOK, rec.Code)
	root := fixture.Root()
	assert.True(t, root.IsLeaf())
	assert.Equal(t, core.RootID, root.ID)
}

// =============================================================================
// Gesture Tests
// =============================================================================

func TestGesture_ResizeFlow(t *testing.T) {
	r, _, fixture := setupTestRouter(t)
	fixture.MustSplit(t, core.RootID, core.Vertical)
	cookie := fixture.SessionCookie(t, sessionName, map[any]any{sessionIDKey: "s1"})

	rec := serve(r, features.SignalsRequest("/api/gestures?parent=root&orientation=vertical", `{"px":500,"py":300}`, cookie))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"dragging":true`)
	assert.Equal(t, 1, fixture.Gestures.Active())

	// Pointer moved 20px left: the first child shrinks.
	rec = serve(r, features.SignalsRequest("/api/gestures/move", `{"px":480,"py":300}`, cookie))
	require.Equal(t, http.StatusOK, rec.Code)
	root := fixture.Root()
	assert.InDelta(t, 80, root.Children[0].Width, 1e-9)
	assert.InDelta(t, 120, root.Children[1].Width, 1e-9)

	// Then 20px right of the origin: only the remaining step is applied.
	rec = serve(r, features.SignalsRequest("/api/gestures/move", `{"px":520,"py":300}`, cookie))
	require.Equal(t, http.StatusOK, rec.Code)
	root = fixture.Root()
	assert.InDelta(t, 120, root.Children[0].Width, 1e-9)
	assert.InDelta(t, 80, root.Children[1].Width, 1e-9)
	assert.InDelta(t, 100, root.Children[0].Height, 1e-9, "cross axis untouched")

	rec = serve(r, features.SignalsRequest("/api/gestures/end", `{}`, cookie))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"dragging":false`)
	assert.Equal(t, 0, fixture.Gestures.Active())

	// Moves after the release change nothing.
	_, rev := fixture.Workspace.Snapshot()
	rec = serve(r, features.SignalsRequest("/api/gestures/move", `{"px":0,"py":0}`, cookie))
	assert.Equal(t, http.StatusNoContent, rec.Code)
	_, revAfter := fixture.Workspace.Snapshot()
	assert.Equal(t, rev, revAfter)
}

func TestGesture_SessionsAreIndependent(t *testing.T) {
	r, _, fixture := setupTestRouter(t)
	fixture.MustSplit(t, core.RootID, core.Horizontal)
	a := fixture.SessionCookie(t, sessionName, map[any]any{sessionIDKey: "a"})
	b := fixture.SessionCookie(t, sessionName, map[any]any{sessionIDKey: "b"})

	serve(r, features.SignalsRequest("/api/gestures?parent=root&orientation=horizontal", `{"px":0,"py":100}`, a))

	rec := serve(r, features.SignalsRequest("/api/gestures/move", `{"px":0,"py":50}`, b))
	assert.Equal(t, http.StatusNoContent, rec.Code, "b has no gesture")

	rec = serve(r, features.SignalsRequest("/api/gestures/move", `{"px":0,"py":90}`, a))
	require.Equal(t, http.StatusOK, rec.Code)
	root := fixture.Root()
	assert.InDelta(t, 90, root.Children[0].Height, 1e-9)
	assert.InDelta(t, 110, root.Children[1].Height, 1e-9)
}

func TestGestureBegin_Rejected(t *testing.T) {
	tests := []struct {
		name       string
		target     string
		wantStatus int
	}{
		{"leaf parent", "/api/gestures?parent=root&orientation=vertical", http.StatusConflict},
		{"unknown parent", "/api/gestures?parent=nope&orientation=vertical", http.StatusConflict},
		{"bad orientation", "/api/gestures?parent=root&orientation=up", http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, _, fixture := setupTestRouter(t)

			rec := serve(r, features.SignalsRequest(tt.target, `{"px":1,"py":1}`))

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, 0, fixture.Gestures.Active())
		})
	}
}

func TestGestureMove_EndsWhenContainerDeleted(t *testing.T) {
	r, _, fixture := setupTestRouter(t)
	fixture.MustSplit(t, core.RootID, core.Vertical)
	fixture.MustSplit(t, "p-2", core.Horizontal)
	cookie := fixture.SessionCookie(t, sessionName, map[any]any{sessionIDKey: "s1"})

	serve(r, features.SignalsRequest("/api/gestures?parent=p-2&orientation=horizontal", `{"px":0,"py":0}`, cookie))
	require.Equal(t, 1, fixture.Gestures.Active())

	_, err := fixture.Workspace.Delete("p-2")
	require.NoError(t, err)

	rec := serve(r, features.SignalsRequest("/api/gestures/move", `{"px":0,"py":10}`, cookie))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"dragging":false`)
	assert.Equal(t, 0, fixture.Gestures.Active())
}

// =============================================================================
// EditorUpdates Tests - SSE endpoint for live updates only
// =============================================================================

func runUpdates(t *testing.T, h *Handlers, target string, timeout time.Duration, during func()) string {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, target, nil)
	ctx, cancel := context.WithTimeout(req.Context(), timeout)
	defer cancel()
	req = req.WithContext(ctx)

	rec := httptest.NewRecorder()

	done := make(chan struct{})
	go func() {
		h.EditorUpdates(rec, req)
		close(done)
	}()

	if during != nil {
		time.Sleep(50 * time.Millisecond)
		during()
	}
	<-done

	return rec.Body.String()
}

func TestEditorUpdates_SendsUpdateOnChange(t *testing.T) {
	_, h, fixture := setupTestRouter(t)

	body := runUpdates(t, h, "/updates?rev=0", 300*time.Millisecond, func() {
		fixture.MustSplit(t, core.RootID, core.Vertical)
	})

	assert.GreaterOrEqual(t, strings.Count(body, "event:"), 1, "should have at least 1 SSE event from the change")
	assert.Contains(t, body, "pane-p-1")
	assert.Contains(t, body, `data-revision="1"`)
}

func TestEditorUpdates_NoInitialStateWhenCurrent(t *testing.T) {
	_, h, _ := setupTestRouter(t)

	body := runUpdates(t, h, "/updates?rev=0", 50*time.Millisecond, nil)

	assert.Equal(t, 0, strings.Count(body, "event:"), "should have no SSE events without a change")
}

func TestEditorUpdates_CatchesUpStaleClient(t *testing.T) {
	_, h, fixture := setupTestRouter(t)
	fixture.MustSplit(t, core.RootID, core.Vertical)

	body := runUpdates(t, h, "/updates?rev=0", 50*time.Millisecond, nil)

	assert.Equal(t, 1, strings.Count(body, "event:"))
	assert.Contains(t, body, "pane-p-2")
}

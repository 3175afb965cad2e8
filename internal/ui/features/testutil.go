// Package features provides shared test utilities for UI feature tests.
package features

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/sessions"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/splitpane/internal/gesture"
	"github.com/leapstack-labs/splitpane/internal/testutil"
	"github.com/leapstack-labs/splitpane/internal/ui/notifier"
	"github.com/leapstack-labs/splitpane/internal/workspace"
	"github.com/leapstack-labs/splitpane/pkg/core"
	"github.com/leapstack-labs/splitpane/pkg/layout"
)

// TestFixture holds all dependencies needed for UI handler tests.
type TestFixture struct {
	Workspace    *workspace.Workspace
	Gestures     *gesture.Registry
	Notifier     *notifier.Notifier
	SessionStore *sessions.CookieStore
}

// SetupTestFixture creates a workspace with deterministic ids ("p-1", "p-2",
// ...) and colors, a gesture registry that never throttles and a notifier
// fed by workspace changes.
func SetupTestFixture(t *testing.T, gestureOpts ...gesture.Option) *TestFixture {
	t.Helper()

	notify := notifier.New()
	editor := layout.NewEditor(
		layout.WithIDSource(layout.NewSequenceSource("p")),
		layout.WithColorSource(layout.NewFixedColors("#ff0000", "#00ff00", "#0000ff")),
	)
	ws := workspace.New(workspace.Config{
		Editor:   editor,
		Logger:   testutil.NewTestLogger(t),
		OnChange: notify.Broadcast,
	})

	opts := append([]gesture.Option{gesture.WithInterval(0)}, gestureOpts...)

	return &TestFixture{
		Workspace:    ws,
		Gestures:     gesture.NewRegistry(opts...),
		Notifier:     notify,
		SessionStore: NewTestSessionStore(),
	}
}

// MustSplit splits id in the fixture workspace.
func (f *TestFixture) MustSplit(t *testing.T, id core.PaneID, o core.Orientation) {
	t.Helper()
	changed, err := f.Workspace.Split(id, o)
	require.NoError(t, err)
	require.True(t, changed, "split of %s changed nothing", id)
}

// Root returns the current tree.
func (f *TestFixture) Root() *core.Pane {
	root, _ := f.Workspace.Snapshot()
	return root
}

// SessionCookie runs an empty request through save and returns the session
// cookie, so later requests share one session.
func (f *TestFixture) SessionCookie(t *testing.T, name string, values map[any]any) *http.Cookie {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	sess, err := f.SessionStore.New(req, name)
	require.NoError(t, err)
	for k, v := range values {
		sess.Values[k] = v
	}
	require.NoError(t, sess.Save(req, rec))

	for _, c := range rec.Result().Cookies() {
		if c.Name == name {
			return c
		}
	}
	t.Fatalf("session cookie %q not set", name)
	return nil
}

// SignalsRequest builds a datastar POST carrying signals as its JSON body.
func SignalsRequest(target, signals string, cookies ...*http.Cookie) *http.Request {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(signals))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Datastar-Request", "true")
	for _, c := range cookies {
		req.AddCookie(c)
	}
	return req
}

// NewTestSessionStore creates a session store for testing.
func NewTestSessionStore() *sessions.CookieStore {
	return sessions.NewCookieStore([]byte("test-secret-key-32-bytes-long!!"))
}

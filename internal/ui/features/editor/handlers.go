package editor

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/gorilla/sessions"
	"github.com/leapstack-labs/splitpane/internal/gesture"
	"github.com/leapstack-labs/splitpane/internal/ui/features/editor/components"
	"github.com/leapstack-labs/splitpane/internal/ui/notifier"
	"github.com/leapstack-labs/splitpane/internal/workspace"
	"github.com/leapstack-labs/splitpane/pkg/core"
	"github.com/leapstack-labs/splitpane/pkg/layout"
	"github.com/starfederation/datastar-go/datastar"
)

// PageOptions configures the page shell.
type PageOptions struct {
	Title       string
	DatastarURL string
	StylesURL   string
	IsDev       bool
	Logger      *slog.Logger
}

// Handlers provides HTTP handlers for the editor feature.
type Handlers struct {
	workspace    *workspace.Workspace
	gestures     *gesture.Registry
	sessionStore sessions.Store
	notifier     *notifier.Notifier
	opts         PageOptions
	logger       *slog.Logger
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(
	ws *workspace.Workspace,
	gestures *gesture.Registry,
	sessionStore sessions.Store,
	notify *notifier.Notifier,
	opts PageOptions,
) *Handlers {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	if opts.Title == "" {
		opts.Title = "Layout"
	}
	return &Handlers{
		workspace:    ws,
		gestures:     gestures,
		sessionStore: sessionStore,
		notifier:     notify,
		opts:         opts,
		logger:       logger,
	}
}

// EditorPage renders the editor with the current tree.
// It also makes sure the browser holds a session cookie before any drag starts.
func (h *Handlers) EditorPage(w http.ResponseWriter, r *http.Request) {
	if _, err := h.sessionID(w, r); err != nil {
		h.logger.Warn("failed to save session", "error", err)
	}

	root, rev := h.workspace.Snapshot()
	page := components.Page(components.PageData{
		Title:       h.opts.Title,
		DatastarURL: h.opts.DatastarURL,
		StylesURL:   h.opts.StylesURL,
		IsDev:       h.opts.IsDev,
		Root:        root,
		Revision:    rev,
	})
	if err := page.Render(r.Context(), w); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// EditorUpdates is the long-lived SSE endpoint of the editor page.
// The page is already rendered, so the tree is only sent when it changed
// after the revision the client reports in ?rev.
func (h *Handlers) EditorUpdates(w http.ResponseWriter, r *http.Request) {
	seen, err := strconv.ParseUint(r.URL.Query().Get("rev"), 10, 64)
	if err != nil {
		seen = 0
	}

	sse := datastar.NewSSE(w, r)

	updates := h.notifier.Subscribe()
	defer h.notifier.Unsubscribe(updates)

	if _, rev := h.workspace.Snapshot(); rev != seen {
		if err := h.sendWorkspace(sse); err != nil {
			_ = sse.ConsoleError(err)
		}
	}

	ctx := r.Context()
	for {
		select {
		case <-ctx.Done():
			return
		case _, ok := <-updates:
			if !ok {
				return
			}
			if err := h.sendWorkspace(sse); err != nil {
				_ = sse.ConsoleError(err)
			}
		}
	}
}

// Split splits the leaf named in the path.
func (h *Handlers) Split(w http.ResponseWriter, r *http.Request) {
	id := core.PaneID(chi.URLParam(r, "id"))
	o, ok := core.ParseOrientation(r.URL.Query().Get("orientation"))
	if !ok {
		h.fail(w, fmt.Errorf("%w: %q", layout.ErrInvalidOrientation, r.URL.Query().Get("orientation")))
		return
	}

	if _, err := h.workspace.Split(id, o); err != nil {
		h.fail(w, err)
		return
	}
	h.respond(w, r)
}

// Delete removes the pane named in the path. The root cannot be deleted.
func (h *Handlers) Delete(w http.ResponseWriter, r *http.Request) {
	id := core.PaneID(chi.URLParam(r, "id"))
	if _, err := h.workspace.Delete(id); err != nil {
		h.fail(w, err)
		return
	}
	h.respond(w, r)
}

// Reset replaces the tree with a single root leaf.
func (h *Handlers) Reset(w http.ResponseWriter, r *http.Request) {
	if _, err := h.workspace.Reset(); err != nil {
		h.fail(w, err)
		return
	}
	h.respond(w, r)
}

// GestureBegin starts a divider drag for the browser session. The pointer
// origin comes from the px/py signals set on pointer down.
func (h *Handlers) GestureBegin(w http.ResponseWriter, r *http.Request) {
	signals := &DragSignals{}
	if err := datastar.ReadSignals(r, signals); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	parent := core.PaneID(r.URL.Query().Get("parent"))
	o, ok := core.ParseOrientation(r.URL.Query().Get("orientation"))
	if !ok {
		h.fail(w, fmt.Errorf("%w: %q", layout.ErrInvalidOrientation, r.URL.Query().Get("orientation")))
		return
	}

	if !h.isSplit(parent) {
		h.fail(w, fmt.Errorf("%w: %s", layout.ErrNotSplit, parent))
		return
	}

	session, err := h.sessionID(w, r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	h.gestures.Begin(session, gesture.Target{Parent: parent, Orientation: o}, gesture.Point{X: signals.PX, Y: signals.PY})
	h.logger.Debug("gesture started", "session", session, "parent", parent, "orientation", o)

	sse := datastar.NewSSE(w, r)
	if err := sse.MarshalAndPatchSignals(map[string]any{"dragging": true}); err != nil {
		_ = sse.ConsoleError(err)
	}
}

// GestureMove reports a pointer position for the session's drag. Moves
// inside the throttle interval are dropped; the next emitted move catches up.
func (h *Handlers) GestureMove(w http.ResponseWriter, r *http.Request) {
	signals := &DragSignals{}
	if err := datastar.ReadSignals(r, signals); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	session, err := h.sessionID(w, r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	target, delta, ok := h.gestures.Move(session, gesture.Point{X: signals.PX, Y: signals.PY})
	if !ok || delta.Along(target.Orientation) == 0 {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	if !h.isSplit(target.Parent) {
		err = layout.ErrNotSplit
	} else {
		_, err = h.workspace.Resize(target.Parent, delta.Width, delta.Height, target.Orientation)
	}
	if errors.Is(err, layout.ErrNotSplit) {
		// The container was deleted or reshaped under the drag.
		h.gestures.End(session)
		sse := datastar.NewSSE(w, r)
		_ = sse.MarshalAndPatchSignals(map[string]any{"dragging": false})
		return
	}
	if err != nil {
		h.fail(w, err)
		return
	}
	h.respond(w, r)
}

// GestureEnd finishes the session's drag, if any.
func (h *Handlers) GestureEnd(w http.ResponseWriter, r *http.Request) {
	session, err := h.sessionID(w, r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if h.gestures.End(session) {
		h.logger.Debug("gesture ended", "session", session)
	}

	sse := datastar.NewSSE(w, r)
	if err := sse.MarshalAndPatchSignals(map[string]any{"dragging": false}); err != nil {
		_ = sse.ConsoleError(err)
	}
}

// respond patches the current tree into the requesting page. Other pages
// get the same tree through their /updates stream.
func (h *Handlers) respond(w http.ResponseWriter, r *http.Request) {
	sse := datastar.NewSSE(w, r)
	if err := h.sendWorkspace(sse); err != nil {
		_ = sse.ConsoleError(err)
	}
}

func (h *Handlers) sendWorkspace(sse *datastar.ServerSentEventGenerator) error {
	root, rev := h.workspace.Snapshot()
	return sse.PatchElementTempl(components.Workspace(root, rev))
}

// isSplit reports whether id names a container with two children.
func (h *Handlers) isSplit(id core.PaneID) bool {
	root, _ := h.workspace.Snapshot()
	p, ok := layout.Find(root, id)
	return ok && len(p.Children) == 2
}

// fail writes err with a status matching its sentinel.
func (h *Handlers) fail(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, layout.ErrInvalidOrientation):
		status = http.StatusBadRequest
	case errors.Is(err, layout.ErrNotLeaf), errors.Is(err, layout.ErrNotSplit):
		status = http.StatusConflict
	}
	if status == http.StatusInternalServerError {
		h.logger.Error("editor action failed", "error", err)
	}
	http.Error(w, err.Error(), status)
}

// sessionID returns the id stored in the browser session, creating and
// saving one when missing. It must run before any SSE output.
func (h *Handlers) sessionID(w http.ResponseWriter, r *http.Request) (string, error) {
	// An undecodable cookie still yields a fresh session.
	sess, err := h.sessionStore.Get(r, sessionName)
	if sess == nil {
		return "", err
	}
	if id, ok := sess.Values[sessionIDKey].(string); ok && id != "" {
		return id, nil
	}

	id := uuid.NewString()
	sess.Values[sessionIDKey] = id
	if err := sess.Save(r, w); err != nil {
		return "", fmt.Errorf("save session: %w", err)
	}
	return id, nil
}

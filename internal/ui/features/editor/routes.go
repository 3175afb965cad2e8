// Package editor provides the layout editor page and its actions.
package editor

import (
	"github.com/go-chi/chi/v5"
	"github.com/gorilla/sessions"
	"github.com/leapstack-labs/splitpane/internal/gesture"
	"github.com/leapstack-labs/splitpane/internal/ui/notifier"
	"github.com/leapstack-labs/splitpane/internal/workspace"
)

// SetupRoutes configures routes for the editor feature.
func SetupRoutes(
	router chi.Router,
	ws *workspace.Workspace,
	gestures *gesture.Registry,
	sessionStore sessions.Store,
	notify *notifier.Notifier,
	opts PageOptions,
) error {
	handlers := NewHandlers(ws, gestures, sessionStore, notify, opts)

	router.Get("/", handlers.EditorPage)
	router.Get("/updates", handlers.EditorUpdates)

	router.Post("/api/panes/reset", handlers.Reset)
	router.Post("/api/panes/{id}/split", handlers.Split)
	router.Post("/api/panes/{id}/delete", handlers.Delete)

	router.Post("/api/gestures", handlers.GestureBegin)
	router.Post("/api/gestures/move", handlers.GestureMove)
	router.Post("/api/gestures/end", handlers.GestureEnd)

	return nil
}

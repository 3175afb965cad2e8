// Package router sets up HTTP routes for the UI server.
package router

import (
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/sessions"
	"github.com/leapstack-labs/splitpane/internal/gesture"
	editorFeature "github.com/leapstack-labs/splitpane/internal/ui/features/editor"
	"github.com/leapstack-labs/splitpane/internal/ui/notifier"
	"github.com/leapstack-labs/splitpane/internal/ui/resources"
	"github.com/leapstack-labs/splitpane/internal/workspace"
	"github.com/starfederation/datastar-go/datastar"
)

// Reloader tells dev pages to reload themselves.
type Reloader struct {
	ch chan struct{}
}

// NewReloader creates a Reloader.
func NewReloader() *Reloader {
	return &Reloader{ch: make(chan struct{}, 1)}
}

// Trigger asks one waiting /reload stream to reload its page. Triggers
// while a reload is already pending are dropped.
func (r *Reloader) Trigger() {
	select {
	case r.ch <- struct{}{}:
	default:
	}
}

// SetupRoutes configures all routes for the UI server. A nil reloader
// disables the dev reload endpoints.
func SetupRoutes(
	router chi.Router,
	ws *workspace.Workspace,
	gestures *gesture.Registry,
	sessionStore sessions.Store,
	notify *notifier.Notifier,
	reloader *Reloader,
	opts editorFeature.PageOptions,
) error {
	if reloader != nil {
		setupReload(router, reloader)
	}

	// Static assets
	router.Handle("/static/*", resources.Handler())

	if opts.StylesURL == "" {
		opts.StylesURL = resources.StaticPath(resources.Stylesheet)
	}
	opts.IsDev = reloader != nil

	return editorFeature.SetupRoutes(router, ws, gestures, sessionStore, notify, opts)
}

func setupReload(router chi.Router, reloader *Reloader) {
	var hotReloadOnce sync.Once

	router.Get("/reload", func(w http.ResponseWriter, r *http.Request) {
		sse := datastar.NewSSE(w, r)
		reload := func() { _ = sse.ExecuteScript("window.location.reload()") }
		hotReloadOnce.Do(reload)
		select {
		case <-reloader.ch:
			reload()
		case <-r.Context().Done():
		}
	})

	router.Get("/hotreload", func(w http.ResponseWriter, _ *http.Request) {
		reloader.Trigger()
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})
}

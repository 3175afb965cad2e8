// Package ui provides the web-based layout editor.
package ui

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"net"
	"net/http"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/sessions"
	"github.com/leapstack-labs/splitpane/internal/gesture"
	editorFeature "github.com/leapstack-labs/splitpane/internal/ui/features/editor"
	"github.com/leapstack-labs/splitpane/internal/ui/notifier"
	"github.com/leapstack-labs/splitpane/internal/ui/resources"
	"github.com/leapstack-labs/splitpane/internal/ui/router"
	"github.com/leapstack-labs/splitpane/internal/workspace"
	"github.com/leapstack-labs/splitpane/pkg/layout"
	"golang.org/x/sync/errgroup"
)

// DefaultDatastarURL is the datastar client bundle loaded by the page.
const DefaultDatastarURL = "https://cdn.jsdelivr.net/gh/starfederation/datastar@1.0.0-RC.6/bundles/datastar.js"

// Server is the main UI server.
type Server struct {
	workspace    *workspace.Workspace
	gestures     *gesture.Registry
	sessionStore *sessions.CookieStore
	notifier     *notifier.Notifier
	reloader     *router.Reloader
	port         int
	watch        bool
	staticDir    string
	datastarURL  string
	logger       *slog.Logger
}

// Config holds configuration for the UI server.
type Config struct {
	// Editor creates panes; defaults to layout.NewEditor()
	Editor        *layout.Editor
	Port          int
	Watch         bool
	SessionSecret string
	// Throttle is the minimum time between applied drag moves
	Throttle    time.Duration
	DatastarURL string
	// StaticDir is watched when Watch is set; defaults to resources.Dir()
	StaticDir string
	Logger    *slog.Logger
}

// NewServer creates a new UI server instance. Tree changes from any
// request are broadcast to every open page.
func NewServer(cfg Config) *Server {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	sessionStore := sessions.NewCookieStore([]byte(cfg.SessionSecret))
	sessionStore.MaxAge(86400 * 30) // 30 days
	sessionStore.Options.Path = "/"
	sessionStore.Options.HttpOnly = true
	sessionStore.Options.SameSite = http.SameSiteLaxMode

	notify := notifier.New()
	ws := workspace.New(workspace.Config{
		Editor:   cfg.Editor,
		Logger:   logger.With("component", "workspace"),
		OnChange: notify.Broadcast,
	})

	var gestureOpts []gesture.Option
	if cfg.Throttle > 0 {
		gestureOpts = append(gestureOpts, gesture.WithInterval(cfg.Throttle))
	}

	staticDir := cfg.StaticDir
	if staticDir == "" {
		staticDir = resources.Dir()
	}
	datastarURL := cfg.DatastarURL
	if datastarURL == "" {
		datastarURL = DefaultDatastarURL
	}

	s := &Server{
		workspace:    ws,
		gestures:     gesture.NewRegistry(gestureOpts...),
		sessionStore: sessionStore,
		notifier:     notify,
		port:         cfg.Port,
		watch:        cfg.Watch && staticDir != "",
		staticDir:    staticDir,
		datastarURL:  datastarURL,
		logger:       logger,
	}
	if s.IsDev() {
		s.reloader = router.NewReloader()
	}
	return s
}

// Handler builds the HTTP handler with middleware and all routes.
func (s *Server) Handler() (http.Handler, error) {
	r := chi.NewMux()
	r.Use(
		middleware.Logger,
		middleware.Recoverer,
		middleware.Compress(5),
	)

	opts := editorFeature.PageOptions{
		DatastarURL: s.datastarURL,
		Logger:      s.logger.With("component", "editor"),
	}
	if err := router.SetupRoutes(r, s.workspace, s.gestures, s.sessionStore, s.notifier, s.reloader, opts); err != nil {
		return nil, fmt.Errorf("failed to setup routes: %w", err)
	}
	return r, nil
}

// Serve starts the UI server and blocks until the context is cancelled.
func (s *Server) Serve(ctx context.Context) error {
	addr := fmt.Sprintf(":%d", s.port)
	s.logger.Info("starting UI server", "addr", fmt.Sprintf("http://localhost:%d", s.port))

	eg, egctx := errgroup.WithContext(ctx)

	handler, err := s.Handler()
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:    addr,
		Handler: handler,
		BaseContext: func(_ net.Listener) context.Context {
			return egctx
		},
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Start asset watcher if enabled
	if s.watch {
		eg.Go(func() error {
			return s.watchFiles(egctx)
		})
	}

	// Start HTTP server
	eg.Go(func() error {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	// Graceful shutdown
	eg.Go(func() error {
		<-egctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		s.logger.Debug("shutting down UI server...")
		return srv.Shutdown(shutdownCtx)
	})

	return eg.Wait()
}

// IsDev reports whether dev reload endpoints are served: in dev builds or
// when watching assets.
func (s *Server) IsDev() bool {
	return resources.Dev || s.watch
}

// Workspace returns the tree shared by every page.
func (s *Server) Workspace() *workspace.Workspace {
	return s.workspace
}

// Notifier returns the server's notifier for SSE updates.
func (s *Server) Notifier() *notifier.Notifier {
	return s.notifier
}

// watchFiles reloads open pages when a static asset changes.
func (s *Server) watchFiles(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer func() { _ = watcher.Close() }()

	if err := watchDirRecursive(watcher, s.staticDir); err != nil {
		s.logger.Error("failed to watch static directory", "error", err)
		// Don't fail - continue without watching
	}

	// Debounce timer
	var debounceTimer *time.Timer

	for {
		select {
		case <-ctx.Done():
			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if !isAsset(event.Name) {
				continue
			}

			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			name := event.Name
			debounceTimer = time.AfterFunc(100*time.Millisecond, func() {
				s.logger.Debug("asset changed, reloading pages", "file", name)
				s.reloader.Trigger()
			})

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			s.logger.Error("watcher error", "error", err)
		}
	}
}

// isAsset reports whether a changed file should reload the page.
func isAsset(name string) bool {
	switch filepath.Ext(name) {
	case ".css", ".js", ".svg", ".png", ".ico":
		return true
	}
	return false
}

// watchDirRecursive adds a directory and all subdirectories to the watcher.
func watchDirRecursive(watcher *fsnotify.Watcher, dir string) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return watcher.Add(path)
		}
		return nil
	})
}

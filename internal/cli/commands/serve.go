package commands

import (
	"context"
	"fmt"
	"os/exec"
	"runtime"
	"time"

	"github.com/gorilla/securecookie"
	"github.com/leapstack-labs/splitpane/internal/cli/config"
	"github.com/leapstack-labs/splitpane/internal/ui"
	"github.com/spf13/cobra"
)

// ServeOptions holds options for the serve command.
type ServeOptions struct {
	Port      int
	NoBrowser bool
	Watch     bool
	Throttle  time.Duration
}

// NewServeCommand creates the serve command.
func NewServeCommand() *cobra.Command {
	opts := &ServeOptions{}

	cmd := &cobra.Command{
		Use:     "serve",
		Aliases: []string{"ui"},
		Short:   "Start the layout editor in the browser",
		Long: `Start a local web server hosting the layout editor.

The editor starts with a single pane. Each pane can be split vertically or
horizontally and deleted; dividers between panes are dragged to resize.
All open pages share one layout, which lives in memory until the server stops.`,
		Example: `  # Start on the default port
  splitpane serve

  # Start on a custom port without opening a browser
  splitpane serve --port 3000 --no-browser

  # Reload pages when static assets change
  splitpane serve --watch`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd)
		},
	}

	cmd.Flags().IntVar(&opts.Port, "port", 0, fmt.Sprintf("Port to serve on (default: %d)", config.DefaultPort))
	cmd.Flags().BoolVar(&opts.NoBrowser, "no-browser", false, "Don't auto-open browser")
	cmd.Flags().BoolVar(&opts.Watch, "watch", false, "Reload pages when static assets change")
	cmd.Flags().DurationVar(&opts.Throttle, "throttle", 0, fmt.Sprintf("Minimum time between applied drag moves (default: %s)", config.DefaultThrottle))

	return cmd
}

// runServe reads the merged configuration. The flags bound to ServeOptions
// reach it through the config loader, where they override file and env.
func runServe(cmd *cobra.Command) error {
	cfg := getConfig()
	logger := config.GetLogger(cmd.Context())

	editor, err := newEditor(cfg.Editor)
	if err != nil {
		return err
	}

	secret := cfg.UI.SessionSecret
	if secret == "" {
		// Sessions only key in-flight drags, so a per-process key is enough.
		secret = string(securecookie.GenerateRandomKey(32))
	}

	server := ui.NewServer(ui.Config{
		Editor:        editor,
		Port:          cfg.UI.Port,
		Watch:         cfg.UI.Watch,
		SessionSecret: secret,
		Throttle:      cfg.Editor.Throttle,
		DatastarURL:   cfg.UI.DatastarURL,
		Logger:        logger,
	})

	url := fmt.Sprintf("http://localhost:%d", cfg.UI.Port)
	if cfg.UI.AutoOpen {
		go openBrowser(url)
	}

	out := cmd.OutOrStdout()
	_, _ = fmt.Fprintf(out, "Starting layout editor on %s\n", url)
	_, _ = fmt.Fprintln(out, "Press Ctrl+C to stop")

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	return server.Serve(ctx)
}

// openBrowser opens the default browser to the specified URL.
func openBrowser(url string) {
	var cmd *exec.Cmd

	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", url) //nolint:noctx
	case "linux":
		cmd = exec.Command("xdg-open", url) //nolint:noctx
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url) //nolint:noctx
	default:
		return
	}

	_ = cmd.Start()
}

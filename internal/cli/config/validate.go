package config

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/leapstack-labs/splitpane/pkg/layout"
	"github.com/lucasb-eyer/go-colorful"
)

var logLevels = map[string]slog.Level{
	"debug": slog.LevelDebug,
	"info":  slog.LevelInfo,
	"warn":  slog.LevelWarn,
	"error": slog.LevelError,
}

func parseLevel(s string) slog.Level {
	if l, ok := logLevels[strings.ToLower(s)]; ok {
		return l
	}
	return slog.LevelInfo
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if _, ok := logLevels[strings.ToLower(c.Log.Level)]; !ok {
		return fmt.Errorf("log.level: unknown level %q (debug|info|warn|error)", c.Log.Level)
	}
	switch strings.ToLower(c.Log.Format) {
	case "text", "json":
	default:
		return fmt.Errorf("log.format: unknown format %q (text|json)", c.Log.Format)
	}

	if c.UI.Port < 1 || c.UI.Port > 65535 {
		return fmt.Errorf("ui.port: %d is not a valid port", c.UI.Port)
	}

	if c.Editor.Throttle <= 0 {
		return fmt.Errorf("editor.throttle: must be positive, got %s", c.Editor.Throttle)
	}
	if _, err := layout.ParsePalette(c.Editor.Palette); err != nil {
		return fmt.Errorf("editor.palette: %w", err)
	}
	if c.Editor.RootColor != "" {
		if _, err := colorful.Hex(c.Editor.RootColor); err != nil {
			return fmt.Errorf("editor.root_color: %q is not a #rrggbb color", c.Editor.RootColor)
		}
	}

	return nil
}

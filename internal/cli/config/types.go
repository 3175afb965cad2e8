// Package config provides configuration management for the splitpane CLI.
//
// Values are layered with koanf: built-in defaults, then a splitpane.yaml
// file, then SPLITPANE_* environment variables, then explicitly set flags.
package config

import "time"

// Config holds all CLI configuration options.
type Config struct {
	Verbose bool         `koanf:"verbose"`
	Log     LogConfig    `koanf:"log"`
	UI      UIConfig     `koanf:"ui"`
	Editor  EditorConfig `koanf:"editor"`
}

// LogConfig controls the process logger.
type LogConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
}

// UIConfig holds configuration for the UI server.
type UIConfig struct {
	Port          int    `koanf:"port"`
	AutoOpen      bool   `koanf:"auto_open"`
	Watch         bool   `koanf:"watch"`
	SessionSecret string `koanf:"session_secret"`
	DatastarURL   string `koanf:"datastar_url"`
}

// EditorConfig holds layout editor behavior.
type EditorConfig struct {
	// Throttle is the minimum time between applied drag moves.
	Throttle  time.Duration `koanf:"throttle"`
	Palette   string        `koanf:"palette"`
	RootColor string        `koanf:"root_color"`
}

// Default configuration values
const (
	DefaultPort        = 8765
	DefaultThrottle    = 180 * time.Millisecond
	DefaultPalette     = "happy"
	DefaultLogLevel    = "info"
	DefaultLogFormat   = "text"
	DefaultDatastarURL = "https://cdn.jsdelivr.net/gh/starfederation/datastar@1.0.0-RC.6/bundles/datastar.js"
)

// configNames are the file names searched for, in order.
var configNames = []string{"splitpane.yaml", "splitpane.yml"}

// defaults returns the lowest configuration layer.
func defaults() map[string]any {
	return map[string]any{
		"verbose":           false,
		"log.level":         DefaultLogLevel,
		"log.format":        DefaultLogFormat,
		"ui.port":           DefaultPort,
		"ui.auto_open":      true,
		"ui.watch":          false,
		"ui.session_secret": "",
		"ui.datastar_url":   DefaultDatastarURL,
		"editor.throttle":   DefaultThrottle.String(),
		"editor.palette":    DefaultPalette,
		"editor.root_color": "",
	}
}

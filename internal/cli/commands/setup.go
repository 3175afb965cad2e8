package commands

import (
	"fmt"

	"github.com/leapstack-labs/splitpane/internal/cli/config"
	"github.com/leapstack-labs/splitpane/pkg/layout"
)

// getConfig returns the current configuration, or the defaults when the
// command runs without the root command's config loading (as in tests).
func getConfig() *config.Config {
	if cfg := config.GetCurrentConfig(); cfg != nil {
		return cfg
	}
	return config.Default()
}

// newEditor builds the layout editor described by the editor config.
// Extra options are applied last.
func newEditor(cfg config.EditorConfig, extra ...layout.Option) (*layout.Editor, error) {
	palette, err := layout.ParsePalette(cfg.Palette)
	if err != nil {
		return nil, fmt.Errorf("invalid palette: %w", err)
	}

	opts := []layout.Option{
		layout.WithColorSource(layout.NewPaletteSource(palette, nil)),
	}
	if cfg.RootColor != "" {
		opts = append(opts, layout.WithRootColor(cfg.RootColor))
	}
	opts = append(opts, extra...)

	return layout.NewEditor(opts...), nil
}

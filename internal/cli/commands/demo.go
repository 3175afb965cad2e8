package commands

import (
	"fmt"
	"io"
	"math/rand/v2"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/leapstack-labs/splitpane/internal/cli/config"
	"github.com/leapstack-labs/splitpane/internal/termview"
	"github.com/leapstack-labs/splitpane/pkg/core"
	"github.com/leapstack-labs/splitpane/pkg/layout"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// DemoOptions holds options for the demo command.
type DemoOptions struct {
	Width      int
	Height     int
	Palette    string
	SeedColors uint64
	NoTable    bool
	Color      string
}

// NewDemoCommand creates the demo command.
func NewDemoCommand() *cobra.Command {
	opts := &DemoOptions{}

	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Draw a sample layout in the terminal",
		Long: `Build a sample layout with the same split, resize and delete operations
the browser editor uses, then draw it in the terminal and list its panes.`,
		Example: `  # Draw at the terminal size
  splitpane demo

  # Reproducible colors at a fixed size
  splitpane demo --width 80 --height 20 --seed-colors 42 --palette pastel`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runDemo(cmd, opts)
		},
	}

	cmd.Flags().IntVar(&opts.Width, "width", 0, "Width in cells (default: terminal width)")
	cmd.Flags().IntVar(&opts.Height, "height", 16, "Height in cells")
	cmd.Flags().StringVar(&opts.Palette, "palette", "", "Color palette (happy|pastel|random)")
	cmd.Flags().Uint64Var(&opts.SeedColors, "seed-colors", 0, "Seed for reproducible colors (0: random)")
	cmd.Flags().BoolVar(&opts.NoTable, "no-table", false, "Only draw the layout")
	cmd.Flags().StringVar(&opts.Color, "color", "auto", "Color output (auto|always|never)")

	_ = cmd.RegisterFlagCompletionFunc("palette", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{"happy", "pastel", "random"}, cobra.ShellCompDirectiveNoFileComp
	})
	_ = cmd.RegisterFlagCompletionFunc("color", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{"auto", "always", "never"}, cobra.ShellCompDirectiveNoFileComp
	})

	return cmd
}

func runDemo(cmd *cobra.Command, opts *DemoOptions) error {
	cfg := getConfig()
	logger := config.GetLogger(cmd.Context())

	editorCfg := cfg.Editor
	if opts.Palette != "" {
		editorCfg.Palette = opts.Palette
	}

	extra := []layout.Option{layout.WithIDSource(layout.NewSequenceSource("pane"))}
	if opts.SeedColors != 0 {
		palette, err := layout.ParsePalette(editorCfg.Palette)
		if err != nil {
			return fmt.Errorf("invalid palette: %w", err)
		}
		extra = append(extra, layout.WithColorSource(layout.NewPaletteSource(palette,
			rand.New(rand.NewPCG(opts.SeedColors, opts.SeedColors>>1|1)))))
	}

	editor, err := newEditor(editorCfg, extra...)
	if err != nil {
		return err
	}

	root, err := buildDemoLayout(editor)
	if err != nil {
		return fmt.Errorf("build demo layout: %w", err)
	}
	logger.Debug("demo layout built", "panes", layout.Count(root), "leaves", len(layout.Leaves(root)))

	out := cmd.OutOrStdout()
	renderer, err := newRenderer(out, opts.Color)
	if err != nil {
		return err
	}

	width := opts.Width
	if width <= 0 {
		width = terminalWidth(out)
	}

	_, _ = fmt.Fprintln(out, termview.Render(root, width, opts.Height, termview.Options{
		Labels:   true,
		Renderer: renderer,
	}))
	if !opts.NoTable {
		_, _ = fmt.Fprintln(out)
		renderPaneTable(out, root)
	}
	return nil
}

// buildDemoLayout runs a fixed script of editor operations: a sidebar, a
// stacked editor area with a split bottom panel and a dragged divider.
func buildDemoLayout(e *layout.Editor) (*core.Pane, error) {
	root, err := e.Split(e.NewRoot(), core.RootID, core.Vertical)
	if err != nil {
		return nil, err
	}
	sidebar := root.Children[0].ID
	mainID := root.Children[1].ID

	// Sidebar takes a quarter of the width.
	if root, err = layout.Resize(root, core.RootID, 50, 0, core.Vertical); err != nil {
		return nil, err
	}

	if root, err = e.Split(root, mainID, core.Horizontal); err != nil {
		return nil, err
	}
	mainPane, _ := layout.Find(root, mainID)
	panel := mainPane.Children[1].ID

	// Bottom panel takes a fifth of the height.
	if root, err = layout.Resize(root, mainID, 0, -60, core.Horizontal); err != nil {
		return nil, err
	}

	if root, err = e.Split(root, panel, core.Vertical); err != nil {
		return nil, err
	}

	// Deleting half of a split keeps the container with its one child.
	if root, err = e.Split(root, sidebar, core.Horizontal); err != nil {
		return nil, err
	}
	side, _ := layout.Find(root, sidebar)
	root = layout.Delete(root, side.Children[1].ID)

	return root, nil
}

func renderPaneTable(w io.Writer, root *core.Pane) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Pane", "Kind", "Orientation", "Color", "Width", "Height"})

	layout.Walk(root, func(p *core.Pane, depth int) {
		kind := "leaf"
		orientation := ""
		if !p.IsLeaf() {
			kind = fmt.Sprintf("split (%d)", len(p.Children))
			orientation = p.Orientation.String()
		}
		t.AppendRow(table.Row{
			indent(depth) + string(p.ID),
			kind,
			orientation,
			p.Color,
			fmt.Sprintf("%.1f", p.Width),
			fmt.Sprintf("%.1f", p.Height),
		})
	})

	t.Render()
}

func indent(depth int) string {
	s := ""
	for range depth {
		s += "  "
	}
	return s
}

// newRenderer builds a lipgloss renderer for w. "auto" detects the profile
// from w and the environment (NO_COLOR, COLORTERM).
func newRenderer(w io.Writer, mode string) (*lipgloss.Renderer, error) {
	r := lipgloss.NewRenderer(w, termenv.WithColorCache(true))
	switch mode {
	case "", "auto":
	case "always":
		r.SetColorProfile(termenv.TrueColor)
	case "never":
		r.SetColorProfile(termenv.Ascii)
	default:
		return nil, fmt.Errorf("invalid color mode %q (want auto, always or never)", mode)
	}
	return r, nil
}

// terminalWidth returns the width of w if it is a terminal, else 80.
func terminalWidth(w io.Writer) int {
	if f, ok := w.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		if width, _, err := term.GetSize(int(f.Fd())); err == nil && width > 0 {
			return width
		}
	}
	return 80
}

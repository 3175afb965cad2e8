// Package termview renders a layout tree as colored boxes in a terminal.
//
// It is the terminal counterpart of the browser walk: containers become
// lipgloss joins, dividers become single box-drawing rows or columns and
// leaves are filled with their pane color.
package termview

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/leapstack-labs/splitpane/pkg/core"
	"github.com/leapstack-labs/splitpane/pkg/layout"
)

const dividerColor = lipgloss.Color("#3a3a40")

// Options controls rendering.
type Options struct {
	// Labels prints the pane id in each leaf.
	Labels bool
	// IDLength truncates labels; 0 keeps the full id.
	IDLength int
	// Renderer decides the color profile. Nil uses the lipgloss default,
	// which detects it from stdout.
	Renderer *lipgloss.Renderer
}

func (o Options) style() lipgloss.Style {
	if o.Renderer != nil {
		return o.Renderer.NewStyle()
	}
	return lipgloss.NewStyle()
}

// Render draws root into a width x height block of cells.
func Render(root *core.Pane, width, height int, opts Options) string {
	if root == nil || width <= 0 || height <= 0 {
		return ""
	}
	return render(root, width, height, opts)
}

func render(p *core.Pane, width, height int, opts Options) string {
	if p.IsLeaf() {
		return renderLeaf(p, width, height, opts)
	}

	// Each divider takes one cell along the governing axis.
	axis := width
	if p.Orientation == core.Horizontal {
		axis = height
	}
	sizes := allocate(layout.Shares(p), axis-(len(p.Children)-1))

	var parts []string
	for i, child := range p.Children {
		if i > 0 {
			parts = append(parts, divider(opts.style(), p.Orientation, width, height))
		}
		if sizes[i] == 0 {
			continue
		}
		if p.Orientation == core.Horizontal {
			parts = append(parts, render(child, width, sizes[i], opts))
		} else {
			parts = append(parts, render(child, sizes[i], height, opts))
		}
	}

	if p.Orientation == core.Horizontal {
		return lipgloss.JoinVertical(lipgloss.Left, parts...)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

func renderLeaf(p *core.Pane, width, height int, opts Options) string {
	label := ""
	if opts.Labels {
		label = string(p.ID)
		if opts.IDLength > 0 && len(label) > opts.IDLength {
			label = label[:opts.IDLength]
		}
		if len(label) > width {
			label = label[:width]
		}
	}

	return opts.style().
		Width(width).
		Height(height).
		MaxWidth(width).
		MaxHeight(height).
		Background(lipgloss.Color(p.Color)).
		Foreground(lipgloss.Color(layout.ContrastText(p.Color))).
		Render(label)
}

func divider(base lipgloss.Style, o core.Orientation, width, height int) string {
	style := base.Foreground(dividerColor)
	if o == core.Horizontal {
		return style.Render(strings.Repeat("─", width))
	}
	return style.Render(strings.TrimSuffix(strings.Repeat("│\n", height), "\n"))
}

// allocate splits total cells by shares. Rounding leftovers go to the
// largest remainders so the sizes always sum to total.
func allocate(shares []float64, total int) []int {
	sizes := make([]int, len(shares))
	if total <= 0 {
		return sizes
	}

	used := 0
	rema := make([]float64, len(shares))
	for i, s := range shares {
		exact := s * float64(total)
		sizes[i] = int(math.Floor(exact))
		rema[i] = exact - float64(sizes[i])
		used += sizes[i]
	}

	for ; used < total; used++ {
		best := 0
		for i := range rema {
			if rema[i] > rema[best] {
				best = i
			}
		}
		sizes[best]++
		rema[best] = -1
	}
	return sizes
}

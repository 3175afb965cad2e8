// Package layout implements the pane tree operations of the editor.
//
// Every operation treats its input as immutable and returns a new tree.
// Only the path from the root to the changed node is copied; all other
// subtrees are shared with the input. When nothing changes, the input root
// pointer itself is returned, so callers can detect a no-op with ==.
//
// Unknown pane ids are not errors: Split, Delete and Resize return the tree
// unchanged. Preconditions that the caller can violate (splitting a
// container, resizing a pane without two children) are reported with the
// sentinel errors below and also leave the tree unchanged.
package layout

import (
	"errors"
	"fmt"

	"github.com/leapstack-labs/splitpane/pkg/core"
)

// Sentinel errors returned by tree operations.
var (
	// ErrNotLeaf is returned when Split targets a container.
	ErrNotLeaf = errors.New("pane is not a leaf")
	// ErrNotSplit is returned when Resize targets a pane without two children.
	ErrNotSplit = errors.New("pane does not have two children")
	// ErrInvalidOrientation is returned for an orientation outside Vertical/Horizontal.
	ErrInvalidOrientation = errors.New("invalid orientation")
	// ErrIDExhausted is returned when the id source keeps producing ids already in use.
	ErrIDExhausted = errors.New("id source produced only duplicate ids")
)

// FullSize is the size of a new pane on both axes, in percent.
const FullSize = 100.0

// maxIDAttempts bounds the retries when an id source returns a taken id.
const maxIDAttempts = 16

// Editor performs the operations that create panes. It owns the sources for
// new ids and colors; Delete and Resize never create panes and are plain
// functions.
type Editor struct {
	ids       IDSource
	colors    ColorSource
	rootColor string
}

// Option configures an Editor.
type Option func(*Editor)

// WithIDSource sets the source of new pane ids.
func WithIDSource(src IDSource) Option {
	return func(e *Editor) {
		if src != nil {
			e.ids = src
		}
	}
}

// WithColorSource sets the source of new leaf colors.
func WithColorSource(src ColorSource) Option {
	return func(e *Editor) {
		if src != nil {
			e.colors = src
		}
	}
}

// WithRootColor fixes the color of every new root instead of drawing one.
func WithRootColor(color string) Option {
	return func(e *Editor) {
		e.rootColor = color
	}
}

// NewEditor creates an Editor. Without options it uses random UUIDs and the
// happy palette.
func NewEditor(opts ...Option) *Editor {
	e := &Editor{
		ids:    UUIDSource{},
		colors: NewPaletteSource(PaletteHappy, nil),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// NewRoot creates the root leaf at full size.
func (e *Editor) NewRoot() *core.Pane {
	color := e.rootColor
	if color == "" {
		color = e.colors.NextColor()
	}
	return &core.Pane{
		ID:          core.RootID,
		Orientation: core.Vertical,
		Color:       color,
		Width:       FullSize,
		Height:      FullSize,
	}
}

// Split turns the leaf with the given id into a container of the given
// orientation holding two new full-size leaves. The first leaf keeps the
// original color, the second gets a fresh one.
func (e *Editor) Split(root *core.Pane, target core.PaneID, o core.Orientation) (*core.Pane, error) {
	if !o.Valid() {
		return root, fmt.Errorf("%w: %d", ErrInvalidOrientation, int(o))
	}

	node, ok := Find(root, target)
	if !ok {
		return root, nil
	}
	if !node.IsLeaf() {
		return root, fmt.Errorf("split %s: %w", target, ErrNotLeaf)
	}

	taken := make(map[core.PaneID]bool)
	Walk(root, func(p *core.Pane, _ int) {
		taken[p.ID] = true
	})

	first, err := e.freshID(taken)
	if err != nil {
		return root, err
	}
	second, err := e.freshID(taken)
	if err != nil {
		return root, err
	}

	return replace(root, target, func(p *core.Pane) *core.Pane {
		split := p.Clone()
		split.Orientation = o
		split.Parent = true
		split.Children = []*core.Pane{
			newLeaf(first, p.Color),
			newLeaf(second, e.colors.NextColor()),
		}
		return split
	}), nil
}

// freshID draws ids until one is not in taken, then marks it taken.
func (e *Editor) freshID(taken map[core.PaneID]bool) (core.PaneID, error) {
	for range maxIDAttempts {
		id := e.ids.NextID()
		if id == "" || id == core.RootID || taken[id] {
			continue
		}
		taken[id] = true
		return id, nil
	}
	return "", ErrIDExhausted
}

func newLeaf(id core.PaneID, color string) *core.Pane {
	return &core.Pane{
		ID:          id,
		Orientation: core.Vertical,
		Color:       color,
		Width:       FullSize,
		Height:      FullSize,
	}
}

// Delete removes the pane with the given id, together with its subtree, and
// drops every container left without children. The root is never removed.
//
// A container that keeps one child after a delete is not flattened; its
// remaining child stays where it is.
//
// If the root itself ends up as an empty container it becomes a leaf again,
// keeping its color.
func Delete(root *core.Pane, target core.PaneID) *core.Pane {
	if target == core.RootID {
		return root
	}
	if _, ok := Find(root, target); !ok {
		return root
	}

	out := prune(root, target)
	if out.IsRoot() && out.Parent && len(out.Children) == 0 {
		leaf := out.Clone()
		leaf.Parent = false
		leaf.Children = nil
		return leaf
	}
	return out
}

// prune removes children matching target below p, then drops children that
// became empty containers. Returns p itself when nothing below it changed.
func prune(p *core.Pane, target core.PaneID) *core.Pane {
	if len(p.Children) == 0 {
		return p
	}

	kept := make([]*core.Pane, 0, len(p.Children))
	changed := false
	for _, child := range p.Children {
		if child.ID == target && !child.IsRoot() {
			changed = true
			continue
		}
		next := prune(child, target)
		if next.Parent && len(next.Children) == 0 && !next.IsRoot() {
			changed = true
			continue
		}
		if next != child {
			changed = true
		}
		kept = append(kept, next)
	}

	if !changed {
		return p
	}
	out := p.Clone()
	out.Children = kept
	return out
}

// Resize moves the divider of the container with the given id. Along the
// governing axis (width for Vertical, height for Horizontal) the first child
// loses the delta and the second gains it. The other axis is untouched.
//
// Deltas are percentage points. Sizes are not clamped and may leave [0, 100].
func Resize(root *core.Pane, parent core.PaneID, dw, dh float64, o core.Orientation) (*core.Pane, error) {
	if !o.Valid() {
		return root, fmt.Errorf("%w: %d", ErrInvalidOrientation, int(o))
	}

	node, ok := Find(root, parent)
	if !ok {
		return root, nil
	}
	if len(node.Children) != 2 {
		return root, fmt.Errorf("resize %s: %w", parent, ErrNotSplit)
	}
	if dw == 0 && dh == 0 {
		return root, nil
	}

	return replace(root, parent, func(p *core.Pane) *core.Pane {
		out := p.Clone()
		first := p.Children[0].Clone()
		second := p.Children[1].Clone()
		switch o {
		case core.Vertical:
			first.Width -= dw
			second.Width += dw
		case core.Horizontal:
			first.Height -= dh
			second.Height += dh
		}
		out.Children[0] = first
		out.Children[1] = second
		return out
	}), nil
}

// replace rebuilds the path from p down to the pane with the given id,
// substituting fn's result for that pane.
func replace(p *core.Pane, id core.PaneID, fn func(*core.Pane) *core.Pane) *core.Pane {
	if p.ID == id {
		return fn(p)
	}

	var out *core.Pane
	for i, child := range p.Children {
		next := replace(child, id, fn)
		if next == child {
			continue
		}
		if out == nil {
			out = p.Clone()
		}
		out.Children[i] = next
	}

	if out == nil {
		return p
	}
	return out
}

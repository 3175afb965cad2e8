package core

import "strings"

// =============================================================================
// Orientation
// =============================================================================

// Orientation decides how a pane lays out its two children and which axis
// its divider drags along.
type Orientation int

// Orientation values.
const (
	// Vertical places children side by side; the divider moves widths.
	Vertical Orientation = iota
	// Horizontal stacks children; the divider moves heights.
	Horizontal
)

// String returns the string representation of the orientation.
func (o Orientation) String() string {
	switch o {
	case Vertical:
		return "vertical"
	case Horizontal:
		return "horizontal"
	default:
		return "unknown"
	}
}

// Valid reports whether o is one of the defined orientations.
func (o Orientation) Valid() bool {
	return o == Vertical || o == Horizontal
}

// ParseOrientation converts a string to an Orientation value.
// Accepts the long names and the single-letter forms "v" and "h".
// Returns Vertical and false if the input is not recognized.
func ParseOrientation(s string) (Orientation, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "vertical", "v":
		return Vertical, true
	case "horizontal", "h":
		return Horizontal, true
	default:
		return Vertical, false
	}
}

// =============================================================================
// Pane
// =============================================================================

// PaneID identifies a pane for its whole lifetime. IDs are never reused.
type PaneID string

// RootID is the reserved id of the root pane. The root is never deleted.
const RootID PaneID = "root"

// Pane is a node of the layout tree.
//
// A leaf has no children and is what the user sees and edits. A container
// (Parent == true) holds its children in order: the first child shrinks and
// the second grows for a positive resize delta.
//
// Panes are immutable once published. Operations in pkg/layout return new
// trees and share untouched subtrees, so a *Pane must never be modified
// after it has been handed out.
type Pane struct {
	// ID is the stable identifier of the pane
	ID PaneID
	// Orientation governs the layout of Children
	Orientation Orientation
	// Color is a #rrggbb display color, only shown on leaves
	Color string
	// Width is the percentage of the parent's content box width
	Width float64
	// Height is the percentage of the parent's content box height
	Height float64
	// Parent is true once the pane has been split
	Parent bool
	// Children holds [first, second] for a container
	Children []*Pane
}

// IsLeaf reports whether the pane is directly editable by the user.
func (p *Pane) IsLeaf() bool {
	return !p.Parent && len(p.Children) == 0
}

// IsRoot reports whether the pane carries the root sentinel id.
func (p *Pane) IsRoot() bool {
	return p.ID == RootID
}

// Clone returns a shallow copy of the pane with its own Children slice.
// The child pointers are shared.
func (p *Pane) Clone() *Pane {
	c := *p
	if p.Children != nil {
		c.Children = make([]*Pane, len(p.Children))
		copy(c.Children, p.Children)
	}
	return &c
}

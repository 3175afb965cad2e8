package layout

import (
	"fmt"

	"github.com/leapstack-labs/splitpane/pkg/core"
)

// Find returns the pane with the given id.
func Find(root *core.Pane, id core.PaneID) (*core.Pane, bool) {
	if root == nil {
		return nil, false
	}
	if root.ID == id {
		return root, true
	}
	for _, child := range root.Children {
		if p, ok := Find(child, id); ok {
			return p, true
		}
	}
	return nil, false
}

// Walk visits every pane in pre-order. The root has depth 0.
func Walk(root *core.Pane, fn func(p *core.Pane, depth int)) {
	var walk func(*core.Pane, int)
	walk = func(p *core.Pane, depth int) {
		if p == nil {
			return
		}
		fn(p, depth)
		for _, child := range p.Children {
			walk(child, depth+1)
		}
	}
	walk(root, 0)
}

// Leaves returns the leaves in left-to-right order.
func Leaves(root *core.Pane) []*core.Pane {
	var leaves []*core.Pane
	Walk(root, func(p *core.Pane, _ int) {
		if p.IsLeaf() {
			leaves = append(leaves, p)
		}
	})
	return leaves
}

// Count returns the number of panes in the tree.
func Count(root *core.Pane) int {
	n := 0
	Walk(root, func(*core.Pane, int) { n++ })
	return n
}

// ParentOf returns the container holding the pane with the given id.
func ParentOf(root *core.Pane, id core.PaneID) (*core.Pane, bool) {
	if root == nil {
		return nil, false
	}
	for _, child := range root.Children {
		if child.ID == id {
			return root, true
		}
		if p, ok := ParentOf(child, id); ok {
			return p, true
		}
	}
	return nil, false
}

// Shares returns each child's fraction of the container along its
// orientation axis. Sizes act as weights, so two children of 100 each get
// 0.5. Negative sizes count as zero; when every weight is zero the space is
// split evenly. A leaf has no shares.
func Shares(p *core.Pane) []float64 {
	if len(p.Children) == 0 {
		return nil
	}

	weights := make([]float64, len(p.Children))
	total := 0.0
	for i, child := range p.Children {
		size := child.Width
		if p.Orientation == core.Horizontal {
			size = child.Height
		}
		weights[i] = max(size, 0)
		total += weights[i]
	}

	for i := range weights {
		if total == 0 {
			weights[i] = 1 / float64(len(weights))
			continue
		}
		weights[i] /= total
	}
	return weights
}

// Equal reports whether two trees have the same structure and values.
func Equal(a, b *core.Pane) bool {
	if a == b {
		return true
	}
	if a == nil || b == nil {
		return false
	}
	if a.ID != b.ID ||
		a.Orientation != b.Orientation ||
		a.Color != b.Color ||
		a.Width != b.Width ||
		a.Height != b.Height ||
		a.Parent != b.Parent ||
		len(a.Children) != len(b.Children) {
		return false
	}
	for i := range a.Children {
		if !Equal(a.Children[i], b.Children[i]) {
			return false
		}
	}
	return true
}

// Validate checks the structural invariants of a tree:
// the root carries RootID, ids are unique, leaves have no children and
// containers hold one or two children.
func Validate(root *core.Pane) error {
	if root == nil {
		return fmt.Errorf("tree is empty")
	}
	if root.ID != core.RootID {
		return fmt.Errorf("root has id %q, want %q", root.ID, core.RootID)
	}

	seen := make(map[core.PaneID]bool)
	var err error
	Walk(root, func(p *core.Pane, _ int) {
		if err != nil {
			return
		}
		switch {
		case p.ID == "":
			err = fmt.Errorf("pane with empty id")
		case seen[p.ID]:
			err = fmt.Errorf("duplicate pane id %q", p.ID)
		case !p.Orientation.Valid():
			err = fmt.Errorf("pane %q has invalid orientation %d", p.ID, int(p.Orientation))
		case !p.Parent && len(p.Children) > 0:
			err = fmt.Errorf("leaf %q has %d children", p.ID, len(p.Children))
		case p.Parent && (len(p.Children) == 0 || len(p.Children) > 2):
			err = fmt.Errorf("container %q has %d children", p.ID, len(p.Children))
		}
		seen[p.ID] = true
	})
	return err
}

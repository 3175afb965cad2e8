package layout

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/splitpane/pkg/core"
)

func TestWalk_PreOrderWithDepth(t *testing.T) {
	e := newTestEditor()
	root := mustSplit(t, e, e.NewRoot(), core.RootID, core.Vertical)
	root = mustSplit(t, e, root, root.Children[0].ID, core.Horizontal)

	var ids []core.PaneID
	var depths []int
	Walk(root, func(p *core.Pane, depth int) {
		ids = append(ids, p.ID)
		depths = append(depths, depth)
	})

	assert.Equal(t, []core.PaneID{"root", "p-1", "p-3", "p-4", "p-2"}, ids)
	assert.Equal(t, []int{0, 1, 2, 2, 1}, depths)
	assert.Equal(t, 5, Count(root))
}

func TestLeaves(t *testing.T) {
	e := newTestEditor()
	root := mustSplit(t, e, e.NewRoot(), core.RootID, core.Vertical)
	root = mustSplit(t, e, root, "p-2", core.Horizontal)

	var ids []core.PaneID
	for _, leaf := range Leaves(root) {
		ids = append(ids, leaf.ID)
	}
	assert.Equal(t, []core.PaneID{"p-1", "p-3", "p-4"}, ids)
}

func TestParentOf(t *testing.T) {
	e := newTestEditor()
	root := mustSplit(t, e, e.NewRoot(), core.RootID, core.Vertical)
	root = mustSplit(t, e, root, "p-2", core.Horizontal)

	parent, ok := ParentOf(root, "p-4")
	require.True(t, ok)
	assert.Equal(t, core.PaneID("p-2"), parent.ID)

	_, ok = ParentOf(root, core.RootID)
	assert.False(t, ok, "root has no parent")
}

func TestEqual(t *testing.T) {
	e := newTestEditor()
	a := mustSplit(t, e, e.NewRoot(), core.RootID, core.Vertical)
	b := &core.Pane{
		ID: a.ID, Orientation: a.Orientation, Color: a.Color,
		Width: a.Width, Height: a.Height, Parent: true,
		Children: []*core.Pane{a.Children[0].Clone(), a.Children[1].Clone()},
	}

	assert.True(t, Equal(a, b))

	b.Children[1] = b.Children[1].Clone()
	b.Children[1].Width = 99
	assert.False(t, Equal(a, b))
	assert.False(t, Equal(a, nil))
	assert.True(t, Equal(nil, nil))
}

func TestValidate(t *testing.T) {
	leaf := func(id core.PaneID) *core.Pane {
		return &core.Pane{ID: id, Width: 100, Height: 100}
	}

	tests := []struct {
		name    string
		root    *core.Pane
		wantErr string
	}{
		{
			name: "valid root leaf",
			root: leaf(core.RootID),
		},
		{
			name:    "nil tree",
			root:    nil,
			wantErr: "empty",
		},
		{
			name:    "wrong root id",
			root:    leaf("other"),
			wantErr: "root has id",
		},
		{
			name: "duplicate ids",
			root: &core.Pane{
				ID: core.RootID, Parent: true,
				Children: []*core.Pane{leaf("a"), leaf("a")},
			},
			wantErr: "duplicate",
		},
		{
			name: "leaf with children",
			root: &core.Pane{
				ID:       core.RootID,
				Children: []*core.Pane{leaf("a")},
			},
			wantErr: "leaf",
		},
		{
			name: "container with three children",
			root: &core.Pane{
				ID: core.RootID, Parent: true,
				Children: []*core.Pane{leaf("a"), leaf("b"), leaf("c")},
			},
			wantErr: "3 children",
		},
		{
			name: "bad orientation",
			root: &core.Pane{
				ID: core.RootID, Orientation: core.Orientation(9),
			},
			wantErr: "orientation",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.root)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestShares(t *testing.T) {
	child := func(id core.PaneID, w, h float64) *core.Pane {
		return &core.Pane{ID: id, Width: w, Height: h}
	}
	container := func(o core.Orientation, children ...*core.Pane) *core.Pane {
		return &core.Pane{ID: core.RootID, Orientation: o, Width: 100, Height: 100, Parent: true, Children: children}
	}

	tests := []struct {
		name  string
		pane  *core.Pane
		wants []float64
	}{
		{
			name:  "equal weights",
			pane:  container(core.Vertical, child("a", 100, 100), child("b", 100, 100)),
			wants: []float64{0.5, 0.5},
		},
		{
			name:  "vertical uses widths",
			pane:  container(core.Vertical, child("a", 60, 100), child("b", 140, 100)),
			wants: []float64{0.3, 0.7},
		},
		{
			name:  "horizontal uses heights",
			pane:  container(core.Horizontal, child("a", 100, 150), child("b", 100, 50)),
			wants: []float64{0.75, 0.25},
		},
		{
			name:  "negative size counts as zero",
			pane:  container(core.Vertical, child("a", -20, 100), child("b", 220, 100)),
			wants: []float64{0, 1},
		},
		{
			name:  "all zero splits evenly",
			pane:  container(core.Vertical, child("a", 0, 100), child("b", -5, 100)),
			wants: []float64{0.5, 0.5},
		},
		{
			name:  "single child fills",
			pane:  container(core.Vertical, child("a", 100, 100)),
			wants: []float64{1},
		},
		{
			name:  "leaf",
			pane:  child("a", 100, 100),
			wants: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Shares(tt.pane)
			require.Len(t, got, len(tt.wants))
			for i := range got {
				assert.InDelta(t, tt.wants[i], got[i], 1e-9)
			}
		})
	}
}

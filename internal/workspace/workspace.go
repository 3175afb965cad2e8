// Package workspace holds the single layout tree shared by every browser.
//
// Each mutation reads the current tree, computes the next one with pkg/layout
// and publishes it, all under one lock. Readers take a Snapshot, which is
// safe to use without locking because published trees are never modified.
package workspace

import (
	"log/slog"
	"sync"

	"github.com/leapstack-labs/splitpane/pkg/core"
	"github.com/leapstack-labs/splitpane/pkg/layout"
)

// Config holds the dependencies of a Workspace.
type Config struct {
	// Editor creates panes; defaults to layout.NewEditor()
	Editor *layout.Editor
	// Logger receives debug logs of every change
	Logger *slog.Logger
	// OnChange is called after a new tree is published, outside the lock
	OnChange func(revision uint64)
}

// Workspace owns the current tree.
type Workspace struct {
	editor   *layout.Editor
	logger   *slog.Logger
	onChange func(uint64)

	mu       sync.RWMutex
	root     *core.Pane
	revision uint64
}

// New creates a Workspace holding a fresh root leaf.
func New(cfg Config) *Workspace {
	editor := cfg.Editor
	if editor == nil {
		editor = layout.NewEditor()
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	return &Workspace{
		editor:   editor,
		logger:   logger,
		onChange: cfg.OnChange,
		root:     editor.NewRoot(),
	}
}

// Snapshot returns the current tree and its revision.
func (w *Workspace) Snapshot() (*core.Pane, uint64) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.root, w.revision
}

// Split splits the leaf with the given id.
func (w *Workspace) Split(id core.PaneID, o core.Orientation) (bool, error) {
	return w.apply("split", func(root *core.Pane) (*core.Pane, error) {
		return w.editor.Split(root, id, o)
	}, "pane", id, "orientation", o)
}

// Delete removes the pane with the given id.
func (w *Workspace) Delete(id core.PaneID) (bool, error) {
	return w.apply("delete", func(root *core.Pane) (*core.Pane, error) {
		return layout.Delete(root, id), nil
	}, "pane", id)
}

// Resize moves the divider of the container with the given id.
func (w *Workspace) Resize(parent core.PaneID, dw, dh float64, o core.Orientation) (bool, error) {
	return w.apply("resize", func(root *core.Pane) (*core.Pane, error) {
		return layout.Resize(root, parent, dw, dh, o)
	}, "parent", parent, "dw", dw, "dh", dh, "orientation", o)
}

// Reset replaces the tree with a fresh root leaf.
func (w *Workspace) Reset() (bool, error) {
	return w.apply("reset", func(*core.Pane) (*core.Pane, error) {
		return w.editor.NewRoot(), nil
	})
}

// apply runs op against the current tree and publishes the result if it is a
// different tree. It reports whether a new tree was published.
func (w *Workspace) apply(name string, op func(*core.Pane) (*core.Pane, error), attrs ...any) (bool, error) {
	w.mu.Lock()
	next, err := op(w.root)
	if err != nil {
		w.mu.Unlock()
		w.logger.Debug(name+" rejected", append(attrs, "error", err)...)
		return false, err
	}
	if next == w.root {
		w.mu.Unlock()
		w.logger.Debug(name+" changed nothing", attrs...)
		return false, nil
	}

	if verr := layout.Validate(next); verr != nil {
		w.logger.Warn("tree invariant violated", append(attrs, "op", name, "error", verr)...)
	}
	w.root = next
	w.revision++
	rev := w.revision
	w.mu.Unlock()

	w.logger.Debug(name+" applied", append(attrs, "revision", rev, "panes", layout.Count(next))...)
	if w.onChange != nil {
		w.onChange(rev)
	}
	return true, nil
}

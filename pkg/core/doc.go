// Package core defines the shared language of the splitpane system.
//
// This package contains:
//   - Domain entities (Pane, PaneID)
//   - Value types (Orientation)
//   - The reserved RootID sentinel
//
// The Golden Rule: pkg/core imports ONLY stdlib.
// All other packages depend on core, not the reverse.
package core

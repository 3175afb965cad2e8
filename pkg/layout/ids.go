package layout

import (
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/leapstack-labs/splitpane/pkg/core"
)

// IDSource produces ids for new panes.
type IDSource interface {
	NextID() core.PaneID
}

// IDSourceFunc adapts a function to IDSource.
type IDSourceFunc func() core.PaneID

// NextID calls f.
func (f IDSourceFunc) NextID() core.PaneID {
	return f()
}

// UUIDSource produces random (version 4) UUIDs.
type UUIDSource struct{}

// NextID returns a new random UUID.
func (UUIDSource) NextID() core.PaneID {
	return core.PaneID(uuid.NewString())
}

// SequenceSource produces prefix-1, prefix-2, ... It is safe for concurrent use.
type SequenceSource struct {
	prefix string

	mu sync.Mutex
	n  int
}

// NewSequenceSource creates a SequenceSource. An empty prefix becomes "pane".
func NewSequenceSource(prefix string) *SequenceSource {
	if prefix == "" {
		prefix = "pane"
	}
	return &SequenceSource{prefix: prefix}
}

// NextID returns the next id in the sequence.
func (s *SequenceSource) NextID() core.PaneID {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.n++
	return core.PaneID(fmt.Sprintf("%s-%d", s.prefix, s.n))
}

// Package gesture models a divider drag as an explicit state machine.
//
// A gesture is Idle until Begin records the pointer origin, the container
// whose children are being resized and the drag axis. Each Move measures the
// pointer against that origin, never against the previous move, so moves
// dropped by the throttle only delay the update and never make it drift.
// End returns the gesture to Idle.
package gesture

import (
	"time"

	"github.com/leapstack-labs/splitpane/pkg/core"
)

// DefaultInterval is the minimum time between two emitted moves.
const DefaultInterval = 180 * time.Millisecond

// State is the phase of a gesture.
type State int

// Gesture states.
const (
	Idle State = iota
	Dragging
)

// String returns the string representation of the state.
func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Dragging:
		return "dragging"
	default:
		return "unknown"
	}
}

// Point is a pointer position in client pixels.
type Point struct {
	X float64
	Y float64
}

// Delta is a size change to apply with layout.Resize.
type Delta struct {
	Width  float64
	Height float64
}

// IsZero reports whether the delta changes nothing.
func (d Delta) IsZero() bool {
	return d.Width == 0 && d.Height == 0
}

// Along returns the component of d on the axis o resizes: width for
// Vertical, height for Horizontal.
func (d Delta) Along(o core.Orientation) float64 {
	if o == core.Horizontal {
		return d.Height
	}
	return d.Width
}

// Target identifies what a gesture resizes.
type Target struct {
	Parent      core.PaneID
	Orientation core.Orientation
}

// Gesture is a single drag session. It is not safe for concurrent use;
// Registry serializes access.
type Gesture struct {
	interval time.Duration
	now      func() time.Time

	state    State
	target   Target
	origin   Point
	applied  Delta
	lastEmit time.Time
}

// Option configures a Gesture.
type Option func(*Gesture)

// WithInterval sets the throttle interval. Zero disables throttling.
func WithInterval(d time.Duration) Option {
	return func(g *Gesture) {
		if d >= 0 {
			g.interval = d
		}
	}
}

// WithClock sets the time source.
func WithClock(now func() time.Time) Option {
	return func(g *Gesture) {
		if now != nil {
			g.now = now
		}
	}
}

// New creates an idle gesture.
func New(opts ...Option) *Gesture {
	g := &Gesture{
		interval: DefaultInterval,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// State returns the current phase.
func (g *Gesture) State() State {
	return g.state
}

// Target returns the container being resized. Only meaningful while Dragging.
func (g *Gesture) Target() Target {
	return g.target
}

// Begin starts a drag at the given pointer position. Beginning while already
// dragging abandons the previous drag.
func (g *Gesture) Begin(target Target, at Point) {
	g.state = Dragging
	g.target = target
	g.origin = at
	g.applied = Delta{}
	g.lastEmit = time.Time{}
}

// Move reports the pointer at a new position. It returns the part of the
// cumulative delta not yet applied and true, or false when the gesture is
// idle, the move falls inside the throttle interval, or nothing changed.
//
// The cumulative delta is origin minus position: dragging right or down
// grows the first child.
func (g *Gesture) Move(at Point) (Delta, bool) {
	if g.state != Dragging {
		return Delta{}, false
	}

	now := g.now()
	if !g.lastEmit.IsZero() && now.Sub(g.lastEmit) < g.interval {
		return Delta{}, false
	}

	total := Delta{
		Width:  g.origin.X - at.X,
		Height: g.origin.Y - at.Y,
	}
	step := Delta{
		Width:  total.Width - g.applied.Width,
		Height: total.Height - g.applied.Height,
	}
	if step.IsZero() {
		return Delta{}, false
	}

	g.applied = total
	g.lastEmit = now
	return step, true
}

// Applied returns the cumulative delta emitted since Begin.
func (g *Gesture) Applied() Delta {
	return g.applied
}

// End finishes the drag. It returns false if the gesture was already idle.
func (g *Gesture) End() bool {
	if g.state != Dragging {
		return false
	}
	g.state = Idle
	g.target = Target{}
	g.applied = Delta{}
	g.lastEmit = time.Time{}
	return true
}

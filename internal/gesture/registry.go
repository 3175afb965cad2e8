package gesture

import "sync"

// Registry keeps one gesture per browser session.
type Registry struct {
	opts []Option

	mu       sync.Mutex
	gestures map[string]*Gesture
}

// NewRegistry creates a Registry. The options apply to every gesture it creates.
func NewRegistry(opts ...Option) *Registry {
	return &Registry{
		opts:     opts,
		gestures: make(map[string]*Gesture),
	}
}

// Begin starts a drag for the session.
func (r *Registry) Begin(session string, target Target, at Point) {
	r.mu.Lock()
	defer r.mu.Unlock()

	g, ok := r.gestures[session]
	if !ok {
		g = New(r.opts...)
		r.gestures[session] = g
	}
	g.Begin(target, at)
}

// Move reports a pointer move for the session. It returns the target and the
// step delta to apply, or false if nothing should be applied.
func (r *Registry) Move(session string, at Point) (Target, Delta, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	g, ok := r.gestures[session]
	if !ok {
		return Target{}, Delta{}, false
	}
	target := g.Target()
	step, ok := g.Move(at)
	return target, step, ok
}

// End finishes the session's drag and forgets it.
func (r *Registry) End(session string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	g, ok := r.gestures[session]
	if !ok {
		return false
	}
	delete(r.gestures, session)
	return g.End()
}

// Active returns the number of sessions currently dragging.
func (r *Registry) Active() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	n := 0
	for _, g := range r.gestures {
		if g.State() == Dragging {
			n++
		}
	}
	return n
}

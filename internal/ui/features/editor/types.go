package editor

// DragSignals are the datastar signals posted by the gesture endpoints.
// px and py hold the last pointer position in client pixels.
type DragSignals struct {
	PX       float64 `json:"px"`
	PY       float64 `json:"py"`
	Dragging bool    `json:"dragging"`
}

const (
	// sessionName is the cookie holding the browser session.
	sessionName = "splitpane"
	// sessionIDKey stores the id that keys the session's drag gesture.
	sessionIDKey = "sid"
)

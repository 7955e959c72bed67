package input

import (
	"fractalviewer/internal/camera"
	"fractalviewer/internal/viewport"
)

// Action is a logical control, decoupled from physical keys so that aliased
// keys (WASD and arrows) are indistinguishable past the window layer.
type Action int

const (
	ActionPanUp Action = iota
	ActionPanDown
	ActionPanLeft
	ActionPanRight
	ActionQuit
)

// MouseButton identifies the buttons the tracker cares about.
type MouseButton int

const (
	ButtonLeft MouseButton = iota
	ButtonMiddle
	ButtonRight
)

// Event is one pending input occurrence. The window layer queues events as
// callbacks fire; the frame loop drains the queue once per frame.
type Event interface{ isEvent() }

// QuitEvent is a window-system close signal.
type QuitEvent struct{}

// KeyEvent is a logical key transition. Pressed is true on press, false on
// release.
type KeyEvent struct {
	Action  Action
	Pressed bool
}

// MouseButtonEvent is a button transition.
type MouseButtonEvent struct {
	Button  MouseButton
	Pressed bool
}

// ScrollEvent is a mouse wheel movement; positive Y scrolls up.
type ScrollEvent struct {
	Y float64
}

// ResizeEvent notifies that the drawable size may have changed. It carries no
// dimensions; they are re-queried when the viewport syncs.
type ResizeEvent struct{}

func (QuitEvent) isEvent()        {}
func (KeyEvent) isEvent()         {}
func (MouseButtonEvent) isEvent() {}
func (ScrollEvent) isEvent()      {}
func (ResizeEvent) isEvent()      {}

// Tracker folds the event stream into held-control state. It owns the
// control flags exclusively; the camera and viewport are mutated only through
// Apply.
type Tracker struct {
	Up    bool
	Down  bool
	Left  bool
	Right bool

	quit bool
}

// NewTracker returns a tracker with nothing held.
func NewTracker() *Tracker {
	return &Tracker{}
}

// Apply folds one event into the control state, routing zoom, reset and
// resize effects to the camera and viewport.
func (t *Tracker) Apply(ev Event, cam *camera.Camera, vp *viewport.Viewport) {
	switch e := ev.(type) {
	case QuitEvent:
		t.quit = true
	case KeyEvent:
		switch e.Action {
		case ActionPanUp:
			t.Up = e.Pressed
		case ActionPanDown:
			t.Down = e.Pressed
		case ActionPanLeft:
			t.Left = e.Pressed
		case ActionPanRight:
			t.Right = e.Pressed
		case ActionQuit:
			if e.Pressed {
				t.quit = true
			}
		}
	case MouseButtonEvent:
		// Middle-button release is the explicit "home" action.
		if e.Button == ButtonMiddle && !e.Pressed {
			cam.Reset()
		}
	case ScrollEvent:
		cam.ApplyScroll(e.Y)
	case ResizeEvent:
		vp.MarkDirty()
	}
}

// ApplyAll drains a batch of events in order.
func (t *Tracker) ApplyAll(events []Event, cam *camera.Camera, vp *viewport.Viewport) {
	for _, ev := range events {
		t.Apply(ev, cam, vp)
	}
}

// QuitRequested reports whether a quit signal or the quit key was seen.
func (t *Tracker) QuitRequested() bool {
	return t.quit
}

// PanDirection sums the held directional flags into per-axis signs. Opposite
// keys held together cancel out.
func (t *Tracker) PanDirection() (dx, dy float32) {
	if t.Up {
		dy++
	}
	if t.Down {
		dy--
	}
	if t.Left {
		dx--
	}
	if t.Right {
		dx++
	}
	return dx, dy
}

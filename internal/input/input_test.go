package input

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"fractalviewer/internal/camera"
	"fractalviewer/internal/viewport"
)

func newFixture() (*Tracker, *camera.Camera, *viewport.Viewport) {
	return NewTracker(), camera.New(), viewport.New(640, 480)
}

func TestKeyPressAndRelease(t *testing.T) {
	tr, cam, vp := newFixture()

	tr.Apply(KeyEvent{Action: ActionPanUp, Pressed: true}, cam, vp)
	assert.True(t, tr.Up)

	tr.Apply(KeyEvent{Action: ActionPanUp, Pressed: false}, cam, vp)
	assert.False(t, tr.Up)
}

func TestQuitEvent(t *testing.T) {
	tr, cam, vp := newFixture()
	assert.False(t, tr.QuitRequested())

	tr.Apply(QuitEvent{}, cam, vp)
	assert.True(t, tr.QuitRequested())
}

func TestEscapePressRequestsQuit(t *testing.T) {
	tr, cam, vp := newFixture()

	tr.Apply(KeyEvent{Action: ActionQuit, Pressed: true}, cam, vp)
	assert.True(t, tr.QuitRequested())

	// Release does not rescind the request.
	tr.Apply(KeyEvent{Action: ActionQuit, Pressed: false}, cam, vp)
	assert.True(t, tr.QuitRequested())
}

func TestMiddleReleaseResetsCamera(t *testing.T) {
	tr, cam, vp := newFixture()
	cam.Zoom = 50
	cam.DesiredZoom = 0.01
	cam.Offset[0] = 12
	cam.Offset[1] = -9

	tr.Apply(MouseButtonEvent{Button: ButtonMiddle, Pressed: true}, cam, vp)
	assert.Equal(t, float32(50), cam.Zoom, "press alone must not reset")

	tr.Apply(MouseButtonEvent{Button: ButtonMiddle, Pressed: false}, cam, vp)
	assert.Equal(t, float32(1.0), cam.Zoom)
	assert.Equal(t, float32(1.0), cam.DesiredZoom)
	assert.Equal(t, float32(0.0), cam.Offset.X())
	assert.Equal(t, float32(0.0), cam.Offset.Y())
}

func TestOtherButtonsIgnored(t *testing.T) {
	tr, cam, vp := newFixture()
	cam.Zoom = 3

	tr.Apply(MouseButtonEvent{Button: ButtonLeft, Pressed: false}, cam, vp)
	tr.Apply(MouseButtonEvent{Button: ButtonRight, Pressed: false}, cam, vp)
	assert.Equal(t, float32(3), cam.Zoom)
}

func TestScrollRoutesToZoomTarget(t *testing.T) {
	tr, cam, vp := newFixture()

	tr.Apply(ScrollEvent{Y: 1}, cam, vp)
	assert.InDelta(t, 1.0/1.025, float64(cam.DesiredZoom), 1e-6)

	tr.Apply(ScrollEvent{Y: -1}, cam, vp)
	assert.InDelta(t, 1.0, float64(cam.DesiredZoom), 1e-6)
}

func TestResizeMarksViewportDirty(t *testing.T) {
	tr, cam, vp := newFixture()
	vp.Sync(func() (int, int) { return 640, 480 })
	assert.False(t, vp.Dirty())

	tr.Apply(ResizeEvent{}, cam, vp)
	assert.True(t, vp.Dirty())
}

func TestPanDirection(t *testing.T) {
	tr, cam, vp := newFixture()

	dx, dy := tr.PanDirection()
	assert.Zero(t, dx)
	assert.Zero(t, dy)

	tr.Apply(KeyEvent{Action: ActionPanRight, Pressed: true}, cam, vp)
	tr.Apply(KeyEvent{Action: ActionPanUp, Pressed: true}, cam, vp)
	dx, dy = tr.PanDirection()
	assert.Equal(t, float32(1), dx)
	assert.Equal(t, float32(1), dy)

	// Opposite keys held together cancel.
	tr.Apply(KeyEvent{Action: ActionPanLeft, Pressed: true}, cam, vp)
	dx, _ = tr.PanDirection()
	assert.Zero(t, dx)
}

func TestApplyAllOrder(t *testing.T) {
	tr, cam, vp := newFixture()

	tr.ApplyAll([]Event{
		ScrollEvent{Y: -1},
		MouseButtonEvent{Button: ButtonMiddle, Pressed: false},
	}, cam, vp)

	// The reset arrived after the scroll and wins.
	assert.Equal(t, float32(1.0), cam.DesiredZoom)
}

package camera

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

const (
	MinZoom float32 = 1e-5
	MaxZoom float32 = 100.0

	MinOffset float32 = -16.0
	MaxOffset float32 = 16.0

	// ZoomFactor is the per-notch scroll multiplier applied to the zoom target.
	ZoomFactor float32 = 1.025

	// panSpeed scales held-key panning; multiplied by the current zoom so the
	// perceived speed stays constant in world space at any magnification.
	panSpeed float32 = 0.01 * 30.0

	// zoomRate is the lerp rate toward the zoom target, per second.
	zoomRate float32 = 10.0

	zoomEpsilon float32 = 1e-5
)

// Camera holds the view state fed to the fractal shader: the current zoom,
// the zoom target the current value eases toward, and the pan offset on the
// complex plane.
type Camera struct {
	Zoom        float32
	DesiredZoom float32
	Offset      mgl32.Vec2
}

// New returns a camera at the home view.
func New() *Camera {
	return &Camera{Zoom: 1.0, DesiredZoom: 1.0}
}

// Reset restores the home view.
func (c *Camera) Reset() {
	c.Zoom = 1.0
	c.DesiredZoom = 1.0
	c.Offset = mgl32.Vec2{}
}

// ZoomIn lowers the zoom target one scroll notch (smaller zoom = closer).
func (c *Camera) ZoomIn() {
	c.DesiredZoom = clampZoom(c.DesiredZoom / ZoomFactor)
}

// ZoomOut raises the zoom target one scroll notch.
func (c *Camera) ZoomOut() {
	c.DesiredZoom = clampZoom(c.DesiredZoom * ZoomFactor)
}

// ApplyScroll routes a wheel delta to the zoom target. Scrolling up zooms in.
func (c *Camera) ApplyScroll(yoff float64) {
	if yoff > 0 {
		c.ZoomIn()
	} else if yoff < 0 {
		c.ZoomOut()
	}
}

// Pan integrates held-direction input over the frame's wall-clock delta.
// dx/dy are the summed direction signs (-1, 0 or +1 per axis).
func (c *Camera) Pan(dx, dy float32, dt float32) {
	if dx == 0 && dy == 0 {
		return
	}
	step := panSpeed * c.Zoom * dt
	c.Offset[0] = mgl32.Clamp(c.Offset[0]+dx*step, MinOffset, MaxOffset)
	c.Offset[1] = mgl32.Clamp(c.Offset[1]+dy*step, MinOffset, MaxOffset)
}

// StepZoom advances the ease toward the zoom target by one fixed timestep.
// It reports whether the zoom actually moved; once within epsilon of the
// target the camera is considered settled.
func (c *Camera) StepZoom(step float32) bool {
	if math32.Abs(c.Zoom-c.DesiredZoom) <= zoomEpsilon {
		return false
	}
	c.Zoom = clampZoom(c.Zoom + (c.DesiredZoom-c.Zoom)*zoomRate*step)
	return true
}

func clampZoom(z float32) float32 {
	return mgl32.Clamp(z, MinZoom, MaxZoom)
}

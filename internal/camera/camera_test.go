package camera

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScrollSetsZoomTarget(t *testing.T) {
	c := New()
	c.ApplyScroll(1)
	assert.InDelta(t, 1.0/1.025, float64(c.DesiredZoom), 1e-6)
	assert.InDelta(t, 1.0, float64(c.Zoom), 1e-6, "scroll moves the target, not the zoom")

	c = New()
	c.ApplyScroll(-1)
	assert.InDelta(t, 1.025, float64(c.DesiredZoom), 1e-6)

	c = New()
	c.ApplyScroll(0)
	assert.InDelta(t, 1.0, float64(c.DesiredZoom), 1e-6)
}

func TestZoomTargetClamped(t *testing.T) {
	c := New()
	for i := 0; i < 100000; i++ {
		c.ZoomOut()
	}
	assert.LessOrEqual(t, c.DesiredZoom, MaxZoom)

	c = New()
	for i := 0; i < 100000; i++ {
		c.ZoomIn()
	}
	assert.GreaterOrEqual(t, c.DesiredZoom, MinZoom)
}

func TestStepZoomConvergesMonotonically(t *testing.T) {
	const step float32 = 1.0 / 60.0

	c := New()
	c.DesiredZoom = 2.0

	prev := math32.Abs(c.Zoom - c.DesiredZoom)
	for i := 0; i < 1000; i++ {
		if !c.StepZoom(step) {
			break
		}
		dist := math32.Abs(c.Zoom - c.DesiredZoom)
		require.LessOrEqual(t, dist, prev, "distance to target must never grow")
		require.GreaterOrEqual(t, c.Zoom, MinZoom)
		require.LessOrEqual(t, c.Zoom, MaxZoom)
		prev = dist
	}
	assert.InDelta(t, 2.0, float64(c.Zoom), 1e-4)
}

func TestStepZoomSettled(t *testing.T) {
	c := New()
	moved := c.StepZoom(1.0 / 60.0)
	assert.False(t, moved)
	assert.InDelta(t, 1.0, float64(c.Zoom), 1e-6)
}

func TestPanIntegration(t *testing.T) {
	c := New()
	c.Pan(1, 0, 0.5)
	assert.InDelta(t, 0.15, float64(c.Offset.X()), 1e-6, "0.01*30*zoom*dt at zoom 1")
	assert.InDelta(t, 0.0, float64(c.Offset.Y()), 1e-6)

	// Pan speed scales with the current zoom.
	c = New()
	c.Zoom = 2.0
	c.Pan(0, -1, 0.5)
	assert.InDelta(t, -0.3, float64(c.Offset.Y()), 1e-6)
}

func TestPanClamped(t *testing.T) {
	c := New()
	c.Zoom = MaxZoom
	for i := 0; i < 100; i++ {
		c.Pan(1, -1, 10)
	}
	assert.Equal(t, MaxOffset, c.Offset.X())
	assert.Equal(t, MinOffset, c.Offset.Y())
}

func TestPanWithoutHeldKeysIsInvariant(t *testing.T) {
	c := New()
	c.Offset[0] = 3.5
	c.Offset[1] = -2.25
	for i := 0; i < 1000; i++ {
		c.Pan(0, 0, 0.016)
	}
	assert.Equal(t, float32(3.5), c.Offset.X())
	assert.Equal(t, float32(-2.25), c.Offset.Y())
}

func TestReset(t *testing.T) {
	c := New()
	c.Zoom = 42
	c.DesiredZoom = 0.001
	c.Offset[0] = -7
	c.Offset[1] = 13

	c.Reset()

	assert.Equal(t, float32(1.0), c.Zoom)
	assert.Equal(t, float32(1.0), c.DesiredZoom)
	assert.Equal(t, float32(0.0), c.Offset.X())
	assert.Equal(t, float32(0.0), c.Offset.Y())
}

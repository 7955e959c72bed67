package viewport

// Viewport tracks the drawable size the renderer is configured for. It starts
// dirty so the first frame always applies real dimensions.
type Viewport struct {
	Width  int
	Height int
	dirty  bool
}

// New returns a viewport marked dirty at the given initial size.
func New(width, height int) *Viewport {
	return &Viewport{Width: width, Height: height, dirty: true}
}

// MarkDirty flags the viewport for resynchronization. Resize events only mark;
// the actual dimensions are re-queried at sync time because the drawable size
// may differ from the window size under pixel-density scaling.
func (v *Viewport) MarkDirty() {
	v.dirty = true
}

// Dirty reports whether the viewport needs resynchronization.
func (v *Viewport) Dirty() bool {
	return v.dirty
}

// Sync re-queries the drawable size and clears the dirty flag. It reports
// whether a reapplication happened; a clean viewport is left untouched.
func (v *Viewport) Sync(query func() (int, int)) bool {
	if !v.dirty {
		return false
	}
	v.Width, v.Height = query()
	v.dirty = false
	return true
}

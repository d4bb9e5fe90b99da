package widget

// Rect is the on-screen box of a rendered clock in client coordinates.
type Rect struct {
	Left, Top     float64
	Width, Height float64
}

// Center returns the midpoint of r.
func (r Rect) Center() (x, y float64) {
	return r.Left + r.Width/2, r.Top + r.Height/2
}

// Surface reports where a clock is currently rendered. ok is false while
// the surface cannot be measured, for example before it is mounted.
type Surface interface {
	Bounds() (r Rect, ok bool)
}

// Fixed is a Surface with constant bounds.
type Fixed Rect

// Bounds implements Surface. Zero-sized bounds are treated as unmeasurable.
func (f Fixed) Bounds() (Rect, bool) {
	r := Rect(f)
	return r, r.Width > 0 && r.Height > 0
}

// SurfaceFunc adapts a function to Surface.
type SurfaceFunc func() (Rect, bool)

// Bounds implements Surface.
func (f SurfaceFunc) Bounds() (Rect, bool) { return f() }

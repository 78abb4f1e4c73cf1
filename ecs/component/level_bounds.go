package component

import "math"

// LevelBounds is the size of the current level. The level spans
// [0, Width] x [0, Height] in world units, Y up.
type LevelBounds struct {
	Width  float64
	Height float64
}

// ClampView moves the center of a view with the given half extents so the
// view stays inside the level. An axis on which the level is smaller than
// the view is centered instead.
func (b LevelBounds) ClampView(x, y, halfW, halfH float64) (float64, float64) {
	return clampAxis(x, halfW, b.Width), clampAxis(y, halfH, b.Height)
}

func clampAxis(v, half, size float64) float64 {
	if size <= 0 || half <= 0 {
		return v
	}
	if 2*half >= size {
		return size / 2
	}
	return math.Min(math.Max(v, half), size-half)
}

var LevelBoundsComponent = NewComponent[LevelBounds]()

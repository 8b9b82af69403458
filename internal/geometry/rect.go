// Package geometry provides the rectangle value type shared by the
// container tree and the X11 layer.
package geometry

// Rect represents a window or workspace area in screen coordinates.
type Rect struct {
	X      int
	Y      int
	Width  int
	Height int
}

// CenterX returns the horizontal center of the rectangle.
func (r Rect) CenterX() int {
	return r.X + r.Width/2
}

// CenterY returns the vertical center of the rectangle.
func (r Rect) CenterY() int {
	return r.Y + r.Height/2
}

// Contains reports whether the point (x, y) lies within the rectangle.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.Width && y >= r.Y && y < r.Y+r.Height
}

// TranslateToCenter returns a rectangle with the same size as r, positioned
// at the center of the enclosing rectangle.
func (r Rect) TranslateToCenter(enclosing Rect) Rect {
	return Rect{
		X:      enclosing.X + (enclosing.Width-r.Width)/2,
		Y:      enclosing.Y + (enclosing.Height-r.Height)/2,
		Width:  r.Width,
		Height: r.Height,
	}
}

// Translate returns a rectangle shifted by (dx, dy).
func (r Rect) Translate(dx, dy int) Rect {
	return Rect{X: r.X + dx, Y: r.Y + dy, Width: r.Width, Height: r.Height}
}

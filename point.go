package tileatlas

import "fmt"

// Point is a 2D point. Tile regions use it for normalized source
// coordinates, and TileCoords for page pixels.
type Point struct {
	X, Y float64
}

// Pt is a convenience function to create a Point.
func Pt(x, y float64) Point {
	return Point{X: x, Y: y}
}

// Add returns the sum of two points.
func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y}
}

// Sub returns the difference of two points.
func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y}
}

// Rect is an integer pixel rectangle on a page.
type Rect struct {
	X, Y          int
	Width, Height int
}

// IsValid returns true if the rectangle has positive dimensions.
func (r Rect) IsValid() bool {
	return r.Width > 0 && r.Height > 0
}

// Min returns the top-left corner.
func (r Rect) Min() Point {
	return Point{X: float64(r.X), Y: float64(r.Y)}
}

// Max returns the bottom-right corner (exclusive).
func (r Rect) Max() Point {
	return Point{X: float64(r.X + r.Width), Y: float64(r.Y + r.Height)}
}

// Contains returns true if the pixel (x, y) is inside the rectangle.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.Width && y >= r.Y && y < r.Y+r.Height
}

// Inset shrinks the rectangle by n pixels on every side.
// The result never has negative dimensions.
func (r Rect) Inset(n int) Rect {
	out := Rect{X: r.X + n, Y: r.Y + n, Width: r.Width - 2*n, Height: r.Height - 2*n}
	if out.Width < 0 {
		out.Width = 0
	}
	if out.Height < 0 {
		out.Height = 0
	}
	return out
}

// Scale divides every coordinate by 2^level, the rectangle of the same
// area on a mip level.
func (r Rect) Scale(level int) Rect {
	return Rect{X: r.X >> level, Y: r.Y >> level, Width: r.Width >> level, Height: r.Height >> level}
}

// String returns a string representation for debugging.
func (r Rect) String() string {
	return fmt.Sprintf("Rect(%d,%d %dx%d)", r.X, r.Y, r.Width, r.Height)
}

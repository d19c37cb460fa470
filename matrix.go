package tileatlas

// Matrix is a 2D affine transform:
//
//	x' = A*x + B*y + C
//	y' = D*x + E*y + F
//
// Transform returns one that maps page pixels to texture coordinates. It
// is always a pure scale; Translate and Multiply let callers place the
// page inside a larger coordinate space.
type Matrix struct {
	A, B, C float64
	D, E, F float64
}

// Identity returns the identity transform.
func Identity() Matrix {
	return Matrix{A: 1, E: 1}
}

// Scale returns a transform scaling x by sx and y by sy.
func Scale(sx, sy float64) Matrix {
	return Matrix{A: sx, E: sy}
}

// Translate returns a transform moving points by (tx, ty).
func Translate(tx, ty float64) Matrix {
	return Matrix{A: 1, C: tx, E: 1, F: ty}
}

// Multiply returns m * n, the transform applying n first and then m.
func (m Matrix) Multiply(n Matrix) Matrix {
	return Matrix{
		A: m.A*n.A + m.B*n.D,
		B: m.A*n.B + m.B*n.E,
		C: m.A*n.C + m.B*n.F + m.C,
		D: m.D*n.A + m.E*n.D,
		E: m.D*n.B + m.E*n.E,
		F: m.D*n.C + m.E*n.F + m.F,
	}
}

// TransformPoint maps p through m.
func (m Matrix) TransformPoint(p Point) Point {
	return Point{
		X: m.A*p.X + m.B*p.Y + m.C,
		Y: m.D*p.X + m.E*p.Y + m.F,
	}
}

// TransformRect maps the corners of r through m.
func (m Matrix) TransformRect(r Rect) (min, max Point) {
	return m.TransformPoint(r.Min()), m.TransformPoint(r.Max())
}

// Invert returns the inverse of m. It reports false, and returns the
// identity, when m is singular, as the transform of an empty page is.
func (m Matrix) Invert() (Matrix, bool) {
	det := m.A*m.E - m.B*m.D
	if det == 0 {
		return Identity(), false
	}
	inv := 1 / det
	return Matrix{
		A: m.E * inv,
		B: -m.B * inv,
		C: (m.B*m.F - m.C*m.E) * inv,
		D: -m.D * inv,
		E: m.A * inv,
		F: (m.C*m.D - m.A*m.F) * inv,
	}, true
}

// IsIdentity reports whether m is exactly the identity.
func (m Matrix) IsIdentity() bool {
	return m == Identity()
}

// pageTransform maps page pixels to normalized [0, 1] coordinates.
func pageTransform(width, height int) Matrix {
	if width <= 0 || height <= 0 {
		return Identity()
	}
	return Scale(1/float64(width), 1/float64(height))
}

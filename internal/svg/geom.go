package svg

import "math"

// Point is a position or displacement in user-space coordinates.
type Point struct {
	X, Y float64
}

func (p Point) Add(q Point) Point {
	return Point{p.X + q.X, p.Y + q.Y}
}

func (p Point) Sub(q Point) Point {
	return Point{p.X - q.X, p.Y - q.Y}
}

func (p Point) Mul(s float64) Point {
	return Point{p.X * s, p.Y * s}
}

// Dist returns the Euclidean distance between p and q.
func (p Point) Dist(q Point) float64 {
	return math.Hypot(p.X-q.X, p.Y-q.Y)
}

func lerp(a, b Point, t float64) Point {
	return Point{a.X + (b.X-a.X)*t, a.Y + (b.Y-a.Y)*t}
}

// Bbox is an axis-aligned bounding box.
type Bbox struct {
	Min, Max Point
}

// NewBbox returns a bounding box anchored at the origin with the given size.
func NewBbox(width, height float64) Bbox {
	return Bbox{Max: Point{width, height}}
}

func (b Bbox) Width() float64  { return b.Max.X - b.Min.X }
func (b Bbox) Height() float64 { return b.Max.Y - b.Min.Y }

func (b Bbox) Center() Point {
	return Point{(b.Min.X + b.Max.X) / 2, (b.Min.Y + b.Max.Y) / 2}
}

// valid reports whether the box has positive extent on both axes.
func (b Bbox) valid() bool {
	return b.Max.X > b.Min.X && b.Max.Y > b.Min.Y
}

// extent accumulates points into a bounding box. The zero value is empty.
type extent struct {
	min, max Point
	ok       bool
}

func (e *extent) add(p Point) {
	if !e.ok {
		e.min, e.max = p, p
		e.ok = true
		return
	}
	e.min.X = math.Min(e.min.X, p.X)
	e.min.Y = math.Min(e.min.Y, p.Y)
	e.max.X = math.Max(e.max.X, p.X)
	e.max.Y = math.Max(e.max.Y, p.Y)
}

func (e *extent) bbox() (Bbox, bool) {
	if !e.ok {
		return Bbox{}, false
	}
	return Bbox{Min: e.min, Max: e.max}, true
}

// Matrix is an affine transformation in the usual SVG layout:
//
//	[0] [2] [4]
//	[1] [3] [5]
//	 0   0   1
//
// The document operations only ever build matrices from uniform scaling and
// translation, which is what keeps elliptical arcs transformable.
type Matrix [6]float64

// Identity is the no-op transformation.
var Identity = Matrix{1, 0, 0, 1, 0, 0}

// Translation returns a matrix moving points by (tx, ty).
func Translation(tx, ty float64) Matrix {
	return Matrix{1, 0, 0, 1, tx, ty}
}

// Scaling returns a matrix scaling points by (sx, sy) about the origin.
func Scaling(sx, sy float64) Matrix {
	return Matrix{sx, 0, 0, sy, 0, 0}
}

// Apply transforms the point p.
func (m Matrix) Apply(p Point) Point {
	return Point{
		X: p.X*m[0] + p.Y*m[2] + m[4],
		Y: p.X*m[1] + p.Y*m[3] + m[5],
	}
}

// Mul returns the composition a∘b, the matrix applying b first and a second.
func (a Matrix) Mul(b Matrix) Matrix {
	return Matrix{
		a[0]*b[0] + a[2]*b[1],
		a[1]*b[0] + a[3]*b[1],
		a[0]*b[2] + a[2]*b[3],
		a[1]*b[2] + a[3]*b[3],
		a[0]*b[4] + a[2]*b[5] + a[4],
		a[1]*b[4] + a[3]*b[5] + a[5],
	}
}

// uniformScale extracts the scale factor of a matrix built from Translation
// and uniform Scaling compositions.
func (m Matrix) uniformScale() float64 {
	return m[0]
}

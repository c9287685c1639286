// Package geom provides the 2D primitives shared across every pipeline
// stage: points, segments, axis-aligned bounding boxes, and a uniform grid
// used to accelerate the pairwise stages. All coordinates are millimetres,
// double precision, matching the CAD-export document's native units.
package geom

import "math"

// Epsilon is the rounding/degeneracy tolerance used throughout Normalize
// and the geometric predicates downstream of it.
const Epsilon = 1e-6

// Point is a single 2D coordinate in millimetres.
type Point struct {
	X, Y float64
}

// Sub returns p - q.
func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y}
}

// Add returns p + q.
func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y}
}

// Scale returns p scaled by s.
func (p Point) Scale(s float64) Point {
	return Point{X: p.X * s, Y: p.Y * s}
}

// Dot returns the dot product of p and q treated as vectors.
func (p Point) Dot(q Point) float64 {
	return p.X*q.X + p.Y*q.Y
}

// Length returns |p| treated as a vector from the origin.
func (p Point) Length() float64 {
	return math.Hypot(p.X, p.Y)
}

// Distance returns the Euclidean distance between p and q.
func (p Point) Distance(q Point) float64 {
	return p.Sub(q).Length()
}

// Perp rotates the vector p by +90 degrees.
func (p Point) Perp() Point {
	return Point{X: -p.Y, Y: p.X}
}

// Round quantizes a single coordinate to the nearest multiple of Epsilon,
// per spec q(x) = round(x/eps)*eps.
func Round(x float64) float64 {
	return math.Round(x/Epsilon) * Epsilon
}

// RoundPoint rounds both coordinates of p independently.
func RoundPoint(p Point) Point {
	return Point{X: Round(p.X), Y: Round(p.Y)}
}

// Less gives a stable lexicographic ordering over points, used to
// canonicalize segment endpoint order for content hashing.
func (p Point) Less(q Point) bool {
	if p.X != q.X {
		return p.X < q.X
	}
	return p.Y < q.Y
}

package geom

// Segment is an ordered pair of points. It stores no length; Length
// computes it from the endpoints on each call.
type Segment struct {
	P1, P2 Point
}

// NewSegment builds a segment from its two endpoints.
func NewSegment(p1, p2 Point) Segment {
	return Segment{P1: p1, P2: p2}
}

// Length returns |P2 - P1|.
func (s Segment) Length() float64 {
	return s.P1.Distance(s.P2)
}

// Degenerate reports whether the segment's length is below Epsilon.
func (s Segment) Degenerate() bool {
	return s.Length() < Epsilon
}

// Direction returns the unit vector from P1 to P2. Degenerate segments
// return the zero vector; callers must check Degenerate first.
func (s Segment) Direction() Point {
	d := s.P2.Sub(s.P1)
	l := d.Length()
	if l == 0 {
		return Point{}
	}
	return d.Scale(1 / l)
}

// Flip returns the segment with endpoints swapped.
func (s Segment) Flip() Segment {
	return Segment{P1: s.P2, P2: s.P1}
}

// PointAt returns the point on the segment's infinite line at the given
// projection parameter along unit direction u, anchored at P1: P1 + t*u.
func (s Segment) PointAt(u Point, t float64) Point {
	return s.P1.Add(u.Scale(t))
}

// ProjectInterval projects both endpoints of s onto unit vector u and
// returns [min, max] of the two scalar projections.
func (s Segment) ProjectInterval(u Point) (lo, hi float64) {
	a := s.P1.Dot(u)
	b := s.P2.Dot(u)
	if a <= b {
		return a, b
	}
	return b, a
}

// Canonical returns the segment with endpoints ordered so that P1 <= P2
// lexicographically, making direction irrelevant for hashing/comparison.
func (s Segment) Canonical() Segment {
	if s.P2.Less(s.P1) {
		return s.Flip()
	}
	return s
}

// BoundingBox returns the axis-aligned box over the segment endpoints.
func (s Segment) BoundingBox() BBox {
	return BBoxOfPoints(s.P1, s.P2)
}

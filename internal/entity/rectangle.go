package entity

import "github.com/arxos/geoplan/internal/geom"

// TrimmedRectangle is a wall rectangle in progress through LOGIC_B/C/D/E:
// two trim-matched segments (same longitudinal extent) whose quadrilateral
// (A.P1, A.P2, B.P2, B.P1) forms the wall rectangle, thickness
// PerpendicularDistance apart.
type TrimmedRectangle struct {
	TrimmedSegmentA, TrimmedSegmentB geom.Segment
	BoundingRectangle                geom.BBox
	SourcePairID                     string
}

// Corners returns the four corners of the oriented wall rectangle in
// winding order, used by LOGIC_C/D's point-in-polygon and containment
// tests.
func (r TrimmedRectangle) Corners() []geom.Point {
	return []geom.Point{
		r.TrimmedSegmentA.P1,
		r.TrimmedSegmentA.P2,
		r.TrimmedSegmentB.P2,
		r.TrimmedSegmentB.P1,
	}
}

// Thickness returns the perpendicular distance between the two trimmed
// segments, i.e. the wall's thickness.
func (r TrimmedRectangle) Thickness() float64 {
	return r.TrimmedSegmentA.P1.Distance(r.TrimmedSegmentB.P1)
}

// Direction returns the unit longitudinal direction of the rectangle,
// taken from segment A.
func (r TrimmedRectangle) Direction() geom.Point {
	return r.TrimmedSegmentA.Direction()
}

// Area returns the rectangle's area: longitudinal length times thickness.
func (r TrimmedRectangle) Area() float64 {
	return r.TrimmedSegmentA.Length() * r.Thickness()
}

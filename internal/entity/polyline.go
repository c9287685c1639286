package entity

import "github.com/arxos/geoplan/internal/geom"

// Polyline exists only before Normalize; every downstream stage sees its
// exploded Line segments instead.
type Polyline struct {
	ID       ID
	Layer    string
	Vertices []geom.Point
	Closed   bool
}

func (p Polyline) EntityID() ID        { return p.ID }
func (p Polyline) EntityLayer() string { return p.Layer }
func (p Polyline) EntityKind() Kind    { return KindPolyline }

// Explode returns the line segments a polyline contributes: N-1 for an
// open polyline of N vertices, N if closed (the closing segment runs from
// the last vertex back to the first).
func (p Polyline) Explode() []geom.Segment {
	n := len(p.Vertices)
	if n < 2 {
		return nil
	}
	segs := make([]geom.Segment, 0, n)
	for i := 0; i < n-1; i++ {
		segs = append(segs, geom.NewSegment(p.Vertices[i], p.Vertices[i+1]))
	}
	if p.Closed {
		segs = append(segs, geom.NewSegment(p.Vertices[n-1], p.Vertices[0]))
	}
	return segs
}

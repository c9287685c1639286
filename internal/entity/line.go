package entity

import "github.com/arxos/geoplan/internal/geom"

// Line is a single straight wall/partition candidate segment.
type Line struct {
	ID     ID
	Layer  string
	P1, P2 geom.Point
	Length float64
}

// NewLine builds a Line, deriving Length from the endpoints so it can
// never drift out of sync.
func NewLine(layer string, p1, p2 geom.Point) Line {
	return Line{Layer: layer, P1: p1, P2: p2, Length: p1.Distance(p2)}
}

func (l Line) EntityID() ID         { return l.ID }
func (l Line) EntityLayer() string  { return l.Layer }
func (l Line) EntityKind() Kind     { return KindLine }
func (l Line) Segment() geom.Segment { return geom.NewSegment(l.P1, l.P2) }

// Degenerate reports whether the line's length is below the normalize
// epsilon.
func (l Line) Degenerate() bool {
	return l.Segment().Degenerate()
}

package entity

import "github.com/arxos/geoplan/internal/geom"

// CandidatePair is the output of the wall-candidate detector (section
// 4.6): an unordered pair of lines accepted by the three geometric
// predicates (parallelism, perpendicular distance, longitudinal overlap).
// Immutable after creation.
type CandidatePair struct {
	PairID                string
	Line1, Line2          Line
	PerpendicularDistance float64
	OverlapPercentage     float64
	AngleDifferenceDeg    float64
	AverageLength         float64
	BoundingRectangle     geom.BBox
}

// Package logicb implements LOGIC_B (spec section 4.7): each accepted
// wall-candidate pair is trimmed down to the longitudinal interval the two
// lines actually share, producing one TrimmedRectangle per pair.
package logicb

import (
	"github.com/arxos/geoplan/internal/entity"
	"github.com/arxos/geoplan/internal/geom"
	"github.com/arxos/geoplan/internal/pipeline/metrics"
)

// Run trims every candidate pair to its shared overlap interval.
func Run(in *entity.WallCandidateOutput) (*entity.RectangleOutput, metrics.Metrics) {
	m := metrics.New()
	timer := metrics.StartTimer()
	defer func() { m.DurationMS = timer.Stop() }()

	out := &entity.RectangleOutput{}

	for _, pair := range in.Pairs {
		rect, ok := trim(pair)
		if !ok {
			m.Counters["pairs_untrimmable"]++
			continue
		}
		out.Rectangles = append(out.Rectangles, rect)
		m.Counters["rectangles_trimmed"]++
	}

	return out, m
}

// trim projects both lines onto A's direction, intersects their intervals,
// and re-anchors both segments to the shared [lo, hi] span.
func trim(pair entity.CandidatePair) (entity.TrimmedRectangle, bool) {
	segA := pair.Line1.Segment()
	segB := pair.Line2.Segment()
	dirA := segA.Direction()

	loA, hiA := segA.ProjectInterval(dirA)
	loB, hiB := segB.ProjectInterval(dirA)

	lo := max(loA, loB)
	hi := min(hiA, hiB)
	if hi-lo < geom.Epsilon {
		return entity.TrimmedRectangle{}, false
	}

	anchorA := segA.P1
	anchorB := segB.P1

	trimmedA := geom.NewSegment(
		anchorA.Add(dirA.Scale(lo-anchorA.Dot(dirA))),
		anchorA.Add(dirA.Scale(hi-anchorA.Dot(dirA))),
	)
	trimmedB := geom.NewSegment(
		anchorB.Add(dirA.Scale(lo-anchorB.Dot(dirA))),
		anchorB.Add(dirA.Scale(hi-anchorB.Dot(dirA))),
	)

	bbox := geom.EmptyBBox()
	for _, p := range []geom.Point{trimmedA.P1, trimmedA.P2, trimmedB.P1, trimmedB.P2} {
		bbox.Expand(p)
	}

	return entity.TrimmedRectangle{
		TrimmedSegmentA:   trimmedA,
		TrimmedSegmentB:   trimmedB,
		BoundingRectangle: bbox,
		SourcePairID:      pair.PairID,
	}, true
}

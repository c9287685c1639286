package logicc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arxos/geoplan/internal/entity"
	"github.com/arxos/geoplan/internal/geom"
)

func TestRunPrunesRectangleWithInterveningLine(t *testing.T) {
	l1 := entity.NewLine("WALLS", geom.Point{X: 0, Y: 0}, geom.Point{X: 1000, Y: 0})
	l1.ID = "a"
	l2 := entity.NewLine("WALLS", geom.Point{X: 0, Y: 100}, geom.Point{X: 1000, Y: 100})
	l2.ID = "b"
	intervening := entity.NewLine("FURNITURE", geom.Point{X: 400, Y: 50}, geom.Point{X: 600, Y: 50})
	intervening.ID = "c"

	pair := entity.CandidatePair{PairID: "p1", Line1: l1, Line2: l2}
	rect := entity.TrimmedRectangle{
		TrimmedSegmentA:   geom.NewSegment(l1.P1, l1.P2),
		TrimmedSegmentB:   geom.NewSegment(l2.P1, l2.P2),
		BoundingRectangle: geom.BBoxOfPoints(l1.P1, l1.P2, l2.P1, l2.P2),
		SourcePairID:      "p1",
	}

	in := &entity.RectangleOutput{Rectangles: []entity.TrimmedRectangle{rect}}
	candidates := &entity.WallCandidateOutput{Pairs: []entity.CandidatePair{pair}}

	out, m := Run(in, candidates, []entity.Line{l1, l2, intervening})
	assert.Empty(t, out.Rectangles)
	assert.Equal(t, 1, m.Counters["rectangles_pruned_intervening"])
}

func TestRunKeepsCleanRectangle(t *testing.T) {
	l1 := entity.NewLine("WALLS", geom.Point{X: 0, Y: 0}, geom.Point{X: 1000, Y: 0})
	l1.ID = "a"
	l2 := entity.NewLine("WALLS", geom.Point{X: 0, Y: 100}, geom.Point{X: 1000, Y: 100})
	l2.ID = "b"

	pair := entity.CandidatePair{PairID: "p1", Line1: l1, Line2: l2}
	rect := entity.TrimmedRectangle{
		TrimmedSegmentA:   geom.NewSegment(l1.P1, l1.P2),
		TrimmedSegmentB:   geom.NewSegment(l2.P1, l2.P2),
		BoundingRectangle: geom.BBoxOfPoints(l1.P1, l1.P2, l2.P1, l2.P2),
		SourcePairID:      "p1",
	}

	in := &entity.RectangleOutput{Rectangles: []entity.TrimmedRectangle{rect}}
	candidates := &entity.WallCandidateOutput{Pairs: []entity.CandidatePair{pair}}

	out, m := Run(in, candidates, []entity.Line{l1, l2})
	require.Len(t, out.Rectangles, 1)
	assert.Equal(t, 1, m.Counters["rectangles_kept"])
}

package logicb

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arxos/geoplan/internal/entity"
	"github.com/arxos/geoplan/internal/geom"
)

func TestRunTrimsToSharedOverlap(t *testing.T) {
	in := &entity.WallCandidateOutput{
		Pairs: []entity.CandidatePair{
			{
				PairID: "p1",
				Line1:  entity.NewLine("WALLS", geom.Point{X: 0, Y: 0}, geom.Point{X: 1000, Y: 0}),
				Line2:  entity.NewLine("WALLS", geom.Point{X: 200, Y: 100}, geom.Point{X: 1200, Y: 100}),
			},
		},
	}

	out, m := Run(in)
	require.Len(t, out.Rectangles, 1)
	rect := out.Rectangles[0]
	assert.InDelta(t, 200.0, rect.TrimmedSegmentA.P1.X, 1e-6)
	assert.InDelta(t, 1000.0, rect.TrimmedSegmentA.P2.X, 1e-6)
	assert.Equal(t, 1, m.Counters["rectangles_trimmed"])
}

func TestRunDropsPairsWithNoSharedInterval(t *testing.T) {
	in := &entity.WallCandidateOutput{
		Pairs: []entity.CandidatePair{
			{
				PairID: "p1",
				Line1:  entity.NewLine("WALLS", geom.Point{X: 0, Y: 0}, geom.Point{X: 100, Y: 0}),
				Line2:  entity.NewLine("WALLS", geom.Point{X: 500, Y: 100}, geom.Point{X: 600, Y: 100}),
			},
		},
	}

	out, m := Run(in)
	assert.Empty(t, out.Rectangles)
	assert.Equal(t, 1, m.Counters["pairs_untrimmable"])
}

package logicd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arxos/geoplan/internal/config"
	"github.com/arxos/geoplan/internal/entity"
	"github.com/arxos/geoplan/internal/geom"
)

func rect(pairID string, ax1, ax2, ay, bx1, bx2, by float64) entity.TrimmedRectangle {
	return entity.TrimmedRectangle{
		TrimmedSegmentA: geom.NewSegment(geom.Point{X: ax1, Y: ay}, geom.Point{X: ax2, Y: ay}),
		TrimmedSegmentB: geom.NewSegment(geom.Point{X: bx1, Y: by}, geom.Point{X: bx2, Y: by}),
		SourcePairID:    pairID,
	}
}

func TestRunPrunesRectangleFullyContainedInLarger(t *testing.T) {
	cfg := config.DefaultAlgorithmConfig()
	in := &entity.RectangleOutput{
		Rectangles: []entity.TrimmedRectangle{
			rect("big", 0, 1000, 0, 0, 1000, 100),
			rect("small", 200, 600, 0, 200, 600, 100),
		},
	}

	out, m := Run(in, cfg)
	require.Len(t, out.Rectangles, 1)
	assert.Equal(t, "big", out.Rectangles[0].SourcePairID)
	assert.Equal(t, 1, m.Counters["rectangles_pruned_contained"])
}

func TestRunKeepsNonOverlappingRectangles(t *testing.T) {
	cfg := config.DefaultAlgorithmConfig()
	in := &entity.RectangleOutput{
		Rectangles: []entity.TrimmedRectangle{
			rect("left", 0, 500, 0, 0, 500, 100),
			rect("right", 600, 1100, 0, 600, 1100, 100),
		},
	}

	out, m := Run(in, cfg)
	assert.Len(t, out.Rectangles, 2)
	assert.Equal(t, 0, m.Counters["rectangles_pruned_contained"])
}

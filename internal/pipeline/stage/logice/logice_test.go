package logice

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arxos/geoplan/internal/config"
	"github.com/arxos/geoplan/internal/entity"
	"github.com/arxos/geoplan/internal/geom"
)

func collinearRect(pairID string, x1, x2 float64) entity.TrimmedRectangle {
	return entity.TrimmedRectangle{
		TrimmedSegmentA: geom.NewSegment(geom.Point{X: x1, Y: 0}, geom.Point{X: x2, Y: 0}),
		TrimmedSegmentB: geom.NewSegment(geom.Point{X: x1, Y: 100}, geom.Point{X: x2, Y: 100}),
		SourcePairID:    pairID,
	}
}

func TestRunMergesAdjacentCollinearRectangles(t *testing.T) {
	cfg := config.DefaultAlgorithmConfig()
	in := &entity.RectangleOutput{
		Rectangles: []entity.TrimmedRectangle{
			collinearRect("p1", 0, 500),
			collinearRect("p2", 502, 1000),
		},
	}

	out, m := Run(in, cfg)
	require.Len(t, out.Rectangles, 1)
	rect := out.Rectangles[0]
	assert.InDelta(t, 0.0, rect.TrimmedSegmentA.P1.X, 1e-6)
	assert.InDelta(t, 1000.0, rect.TrimmedSegmentA.P2.X, 1e-6)
	assert.Equal(t, 1, m.Counters["bands_found"])
	assert.Equal(t, 1, m.Counters["rectangles_merged"])
}

func TestRunKeepsDistantRectanglesSeparate(t *testing.T) {
	cfg := config.DefaultAlgorithmConfig()
	in := &entity.RectangleOutput{
		Rectangles: []entity.TrimmedRectangle{
			collinearRect("p1", 0, 500),
			collinearRect("p2", 5000, 5500),
		},
	}

	out, _ := Run(in, cfg)
	assert.Len(t, out.Rectangles, 2)
}

func TestRunSeparatesDifferentThicknessBands(t *testing.T) {
	cfg := config.DefaultAlgorithmConfig()
	thinRect := collinearRect("thin", 0, 500)
	thickRect := entity.TrimmedRectangle{
		TrimmedSegmentA: geom.NewSegment(geom.Point{X: 502, Y: 0}, geom.Point{X: 1000, Y: 0}),
		TrimmedSegmentB: geom.NewSegment(geom.Point{X: 502, Y: 400}, geom.Point{X: 1000, Y: 400}),
		SourcePairID:    "thick",
	}

	in := &entity.RectangleOutput{Rectangles: []entity.TrimmedRectangle{thinRect, thickRect}}
	out, _ := Run(in, cfg)
	assert.Len(t, out.Rectangles, 2)
}

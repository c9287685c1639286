package dedup

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arxos/geoplan/internal/entity"
	"github.com/arxos/geoplan/internal/geom"
)

func TestRunDropsExactDuplicateLines(t *testing.T) {
	in := &entity.NormalizeOutput{
		Entities: []entity.Entity{
			entity.NewLine("WALLS", geom.Point{X: 0, Y: 0}, geom.Point{X: 10, Y: 0}),
			entity.NewLine("WALLS", geom.Point{X: 10, Y: 0}, geom.Point{X: 0, Y: 0}), // reversed, same line
		},
	}

	out, m := Run(in)
	require.Len(t, out.Entities, 1)
	assert.Equal(t, 1, m.Counters["duplicates_dropped"])
}

func TestRunAssignsStableIDs(t *testing.T) {
	in := &entity.NormalizeOutput{
		Entities: []entity.Entity{
			entity.NewLine("WALLS", geom.Point{X: 0, Y: 0}, geom.Point{X: 10, Y: 0}),
		},
	}

	out1, _ := Run(in)
	out2, _ := Run(in)
	require.Len(t, out1.Entities, 1)
	require.Len(t, out2.Entities, 1)
	assert.Equal(t, out1.Entities[0].EntityID(), out2.Entities[0].EntityID())
	assert.NotEmpty(t, out1.Entities[0].EntityID())
}

func TestBuildCanvasGroupsByLayerWithStableColor(t *testing.T) {
	in := &entity.NormalizeOutput{
		Entities: []entity.Entity{
			entity.NewLine("WALLS", geom.Point{X: 0, Y: 0}, geom.Point{X: 10, Y: 0}),
			entity.NewLine("WALLS", geom.Point{X: 0, Y: 0}, geom.Point{X: 0, Y: 10}),
		},
	}

	out, _ := Run(in)
	layer, ok := out.Canvas.Layers["WALLS"]
	require.True(t, ok)
	assert.Len(t, layer.Lines, 2)
	assert.NotEmpty(t, layer.Color)
	assert.Equal(t, 2, out.Canvas.Statistics["total_lines"])
}

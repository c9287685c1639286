package geom

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoundQuantizesToEpsilon(t *testing.T) {
	got := Round(1.00000049)
	assert.InDelta(t, 1.0, got, Epsilon)
}

func TestSegmentDegenerate(t *testing.T) {
	s := NewSegment(Point{X: 0, Y: 0}, Point{X: 0, Y: 0})
	assert.True(t, s.Degenerate())

	s2 := NewSegment(Point{X: 0, Y: 0}, Point{X: 1000, Y: 0})
	assert.False(t, s2.Degenerate())
	assert.InDelta(t, 1000.0, s2.Length(), 1e-9)
}

func TestSegmentCanonicalIsOrderIndependent(t *testing.T) {
	a := NewSegment(Point{X: 0, Y: 0}, Point{X: 10, Y: 0}).Canonical()
	b := NewSegment(Point{X: 10, Y: 0}, Point{X: 0, Y: 0}).Canonical()
	assert.Equal(t, a, b)
}

func TestBBoxUnionAndIntersects(t *testing.T) {
	b1 := BBoxOfPoints(Point{X: 0, Y: 0}, Point{X: 10, Y: 10})
	b2 := BBoxOfPoints(Point{X: 5, Y: 5}, Point{X: 20, Y: 20})
	require.True(t, b1.Intersects(b2))

	u := b1.Union(b2)
	assert.Equal(t, 0.0, u.MinX)
	assert.Equal(t, 20.0, u.MaxX)
}

func TestPointInPolygonRectangle(t *testing.T) {
	corners := []Point{{X: 0, Y: 0}, {X: 100, Y: 0}, {X: 100, Y: 100}, {X: 0, Y: 100}}
	assert.True(t, PointInPolygon(Point{X: 50, Y: 50}, corners))
	assert.False(t, PointInPolygon(Point{X: 150, Y: 50}, corners))
}

func TestGridQueryFindsNeighbors(t *testing.T) {
	g := NewGrid(100)
	g.Insert(0, Point{X: 10, Y: 10})
	g.Insert(1, Point{X: 1000, Y: 1000})

	near := g.Query(Point{X: 15, Y: 5})
	assert.Contains(t, near, 0)
	assert.NotContains(t, near, 1)
}

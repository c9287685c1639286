package entity

import "github.com/arxos/geoplan/internal/geom"

// CanvasLine is a single line as rendered by the drawing viewer.
type CanvasLine struct {
	ID     ID
	Start  geom.Point
	End    geom.Point
	Length float64
}

// CanvasLayer groups a layer's kept lines with its display color and
// visibility, consumed by the (out-of-scope) canvas viewer.
type CanvasLayer struct {
	Lines   []CanvasLine
	Color   string
	Visible bool
}

// CanvasArtifact is Clean-Dedup's artifact output (section 4.4).
type CanvasArtifact struct {
	DrawingBounds geom.BBox
	Layers        map[string]CanvasLayer
	Statistics    map[string]int
}

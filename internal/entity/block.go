package entity

import (
	"math"

	"github.com/arxos/geoplan/internal/geom"
)

// Block is a placed symbol instance: a door, window, fixture, or other
// named block reference with a local bounding box and a placement
// transform (position + rotation).
type Block struct {
	ID          ID
	Layer       string
	Name        string
	Position    geom.Point
	RotationDeg float64
	BBoxLocal   geom.BBox
}

func (b Block) EntityID() ID        { return b.ID }
func (b Block) EntityLayer() string { return b.Layer }
func (b Block) EntityKind() Kind    { return KindBlock }

// WorldBBox rotates the block's local bbox about its own center by
// RotationDeg and translates it to Position, returning the resulting
// axis-aligned bounding box in world space (section 4.11).
func (b Block) WorldBBox() geom.BBox {
	local := b.BBoxLocal
	center := local.Center()
	corners := []geom.Point{
		{X: local.MinX, Y: local.MinY},
		{X: local.MaxX, Y: local.MinY},
		{X: local.MaxX, Y: local.MaxY},
		{X: local.MinX, Y: local.MaxY},
	}

	rad := b.RotationDeg * (math.Pi / 180.0)
	cos, sin := math.Cos(rad), math.Sin(rad)

	out := geom.EmptyBBox()
	for _, c := range corners {
		rel := c.Sub(center)
		rotated := geom.Point{
			X: rel.X*cos - rel.Y*sin,
			Y: rel.X*sin + rel.Y*cos,
		}
		world := rotated.Add(center).Add(b.Position)
		out.Expand(world)
	}
	return out
}

package geom

import "math"

// BBox is an axis-aligned bounding box in millimetres.
type BBox struct {
	MinX, MinY, MaxX, MaxY float64
}

// EmptyBBox returns a box with inverted bounds, ready to be Expand-ed.
func EmptyBBox() BBox {
	return BBox{
		MinX: math.Inf(1), MinY: math.Inf(1),
		MaxX: math.Inf(-1), MaxY: math.Inf(-1),
	}
}

// BBoxOfPoints returns the union bbox over an arbitrary set of points.
func BBoxOfPoints(pts ...Point) BBox {
	b := EmptyBBox()
	for _, p := range pts {
		b.Expand(p)
	}
	return b
}

// Expand grows the box in place to include p.
func (b *BBox) Expand(p Point) {
	if p.X < b.MinX {
		b.MinX = p.X
	}
	if p.X > b.MaxX {
		b.MaxX = p.X
	}
	if p.Y < b.MinY {
		b.MinY = p.Y
	}
	if p.Y > b.MaxY {
		b.MaxY = p.Y
	}
}

// Union returns the bbox covering both b and o.
func (b BBox) Union(o BBox) BBox {
	return BBox{
		MinX: math.Min(b.MinX, o.MinX),
		MinY: math.Min(b.MinY, o.MinY),
		MaxX: math.Max(b.MaxX, o.MaxX),
		MaxY: math.Max(b.MaxY, o.MaxY),
	}
}

// Intersects reports whether b and o overlap, inclusive of touching edges.
func (b BBox) Intersects(o BBox) bool {
	return !(b.MaxX < o.MinX || b.MinX > o.MaxX || b.MaxY < o.MinY || b.MinY > o.MaxY)
}

// Contains reports whether p lies within b, inclusive.
func (b BBox) Contains(p Point) bool {
	return p.X >= b.MinX && p.X <= b.MaxX && p.Y >= b.MinY && p.Y <= b.MaxY
}

// Width returns MaxX - MinX.
func (b BBox) Width() float64 { return b.MaxX - b.MinX }

// Height returns MaxY - MinY.
func (b BBox) Height() float64 { return b.MaxY - b.MinY }

// Center returns the midpoint of the box.
func (b BBox) Center() Point {
	return Point{X: (b.MinX + b.MaxX) / 2, Y: (b.MinY + b.MaxY) / 2}
}

// Pad grows the box by margin on every side, for turning an exact extent
// into a search region (e.g. "everything within margin of this box").
func (b BBox) Pad(margin float64) BBox {
	return BBox{
		MinX: b.MinX - margin, MinY: b.MinY - margin,
		MaxX: b.MaxX + margin, MaxY: b.MaxY + margin,
	}
}

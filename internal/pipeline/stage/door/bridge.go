// bridge.go builds DOOR_BRIDGE's output: one rectangle per assigned door,
// spanning the wall's full thickness across the door's opening plus a
// fixed end-cap on either side so the bridge slightly overlaps the jamb.
package door

import (
	"math"
	"sort"

	"github.com/arxos/geoplan/internal/config"
	"github.com/arxos/geoplan/internal/entity"
	"github.com/arxos/geoplan/internal/geom"
	"github.com/arxos/geoplan/internal/pipeline/metrics"
)

// BridgeRun builds a bridge rectangle for every door assignment that
// resolved to a wall rectangle.
func BridgeRun(assignments *entity.DoorAssignmentOutput, walls *entity.RectangleOutput, cfg config.AlgorithmConfig) (*entity.DoorBridgeOutput, metrics.Metrics) {
	m := metrics.New()
	timer := metrics.StartTimer()
	defer func() { m.DurationMS = timer.Stop() }()

	out := &entity.DoorBridgeOutput{}

	for _, a := range assignments.Assignments {
		if a.WallRectIndex == nil {
			m.Counters["doors_without_bridge"]++
			continue
		}
		rect := walls.Rectangles[*a.WallRectIndex]
		bridge := buildBridge(a, rect, cfg.BridgeEndCapMM)
		out.Bridges = append(out.Bridges, bridge)
		m.Counters["bridges_built"]++
	}

	sort.Slice(out.Bridges, func(i, j int) bool { return out.Bridges[i].DoorID < out.Bridges[j].DoorID })

	return out, m
}

// buildBridge projects the door's snapped bbox onto the wall rectangle's
// longitudinal axis to find the opening span, pads it by endCapMM on each
// side, and spans the full perpendicular thickness between the rectangle's
// two trimmed segments.
func buildBridge(a entity.DoorAssignment, rect entity.TrimmedRectangle, endCapMM float64) entity.DoorBridge {
	dir := rect.Direction()
	normal := dir.Perp()

	lo, hi := math.Inf(1), math.Inf(-1)
	corners := []geom.Point{
		{X: a.SnappedBBox.MinX, Y: a.SnappedBBox.MinY},
		{X: a.SnappedBBox.MaxX, Y: a.SnappedBBox.MinY},
		{X: a.SnappedBBox.MaxX, Y: a.SnappedBBox.MaxY},
		{X: a.SnappedBBox.MinX, Y: a.SnappedBBox.MaxY},
	}
	for _, c := range corners {
		v := c.Dot(dir)
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	lo -= endCapMM
	hi += endCapMM

	offsetA := rect.TrimmedSegmentA.P1.Dot(normal)
	offsetB := rect.TrimmedSegmentB.P1.Dot(normal)

	p1 := dir.Scale(lo).Add(normal.Scale(offsetA))
	p2 := dir.Scale(hi).Add(normal.Scale(offsetA))
	p3 := dir.Scale(hi).Add(normal.Scale(offsetB))
	p4 := dir.Scale(lo).Add(normal.Scale(offsetB))

	bbox := geom.EmptyBBox()
	for _, p := range []geom.Point{p1, p2, p3, p4} {
		bbox.Expand(p)
	}

	return entity.DoorBridge{
		DoorID: a.DoorBlockID,
		Bridges: []entity.BridgeEntry{
			{
				BridgeRectangle: bbox,
				Meta: map[string]any{
					"orientation": string(a.Orientation),
				},
			},
		},
	}
}

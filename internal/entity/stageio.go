package entity

import "github.com/arxos/geoplan/internal/geom"

// ExtractOutput is Extract's result (section 4.2).
type ExtractOutput struct {
	Entities    []Entity
	DoorBlocks  []Block
	WindowBlocks []Block
	Counters    map[string]int
}

// NormalizeOutput is Normalize's result (section 4.3). No Polyline
// survives into Entities; every polyline has been exploded into Lines.
type NormalizeOutput struct {
	Entities     []Entity
	DoorBlocks   []Block
	WindowBlocks []Block
	Counters     map[string]int
}

// DedupOutput is Clean-Dedup's result (section 4.4).
type DedupOutput struct {
	Entities     []Entity
	DoorBlocks   []Block
	WindowBlocks []Block
	Canvas       CanvasArtifact
	Counters     map[string]int
}

// LayerGroup is one named layer's entities plus their bounding box,
// Parallel-Naive's per-layer grouping (section 4.5).
type LayerGroup struct {
	Name     string
	Entities []Entity
	BBox     geom.BBox
}

// LayerOutput is Parallel-Naive's result.
type LayerOutput struct {
	Layers       []LayerGroup
	FlatEntities []Entity
}

// WallCandidateOutput is the wall-candidate detector's result (section
// 4.6), also reused verbatim by the WALL_CANDIDATES_PLACEHOLDER stage
// (section 4.13).
type WallCandidateOutput struct {
	Pairs []CandidatePair
}

// RectangleOutput is the shared shape of LOGIC_B/C/D/E's results
// (sections 4.7-4.10): an ordered list of wall rectangles.
type RectangleOutput struct {
	Rectangles []TrimmedRectangle
}

// DoorAssignmentOutput is Door Rectangle Assignment's result (section
// 4.11).
type DoorAssignmentOutput struct {
	Assignments []DoorAssignment
	Counters    map[string]int
}

// DoorBridgeOutput is Door Bridge's result (section 4.12).
type DoorBridgeOutput struct {
	Bridges []DoorBridge
}

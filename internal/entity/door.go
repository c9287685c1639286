package entity

import "github.com/arxos/geoplan/internal/geom"

// Orientation describes which trimmed segment a door's long axis aligns
// with.
type Orientation string

const (
	AlongA Orientation = "ALONG_A"
	AlongB Orientation = "ALONG_B"
)

// DoorAssignment records the wall rectangle (by index into the LOGIC_E
// output) a door block has been snapped onto, or a nil WallRectIndex if
// no wall qualified (section 4.11).
type DoorAssignment struct {
	DoorBlockID   ID
	WallRectIndex *int
	SnappedBBox   geom.BBox
	Orientation   Orientation
}

// BridgeEntry is one rectangle spanning a wall's thickness across a
// door's opening.
type BridgeEntry struct {
	BridgeRectangle geom.BBox
	Meta            map[string]any
}

// DoorBridge groups every bridge rectangle produced for one door (section
// 4.12). The spec allows more than one bridge per door; in practice a
// single door produces exactly one.
type DoorBridge struct {
	DoorID  ID
	Bridges []BridgeEntry
}

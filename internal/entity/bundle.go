package entity

// Bundle is the append-only, typed carrier threaded through the pipeline.
// Unlike the free-form dictionary the source narrative implies, every
// stage's output has its own named field here — referencing a key that
// doesn't exist yet is a compile error instead of a runtime one. The
// executor is the bundle's only mutator: each stage receives the upstream
// fields it reads and returns its output, which the executor stores in
// that stage's own field; nothing upstream is ever overwritten.
type Bundle struct {
	InputDocument  []byte
	SelectedLayers map[string]struct{}

	Extracted       *ExtractOutput
	Normalized      *NormalizeOutput
	Deduplicated    *DedupOutput
	Layered         *LayerOutput
	WallCandidates  *WallCandidateOutput
	LogicB          *RectangleOutput
	LogicC          *RectangleOutput
	LogicD          *RectangleOutput
	LogicE          *RectangleOutput
	DoorAssignments *DoorAssignmentOutput
	DoorBridges     *DoorBridgeOutput
	Placeholder     *WallCandidateOutput
}

// NewBundle seeds a bundle with the two inputs every run starts from.
func NewBundle(inputDocument []byte, selectedLayers []string) Bundle {
	set := make(map[string]struct{}, len(selectedLayers))
	for _, l := range selectedLayers {
		set[l] = struct{}{}
	}
	return Bundle{InputDocument: inputDocument, SelectedLayers: set}
}

// Package extract implements the EXTRACT pipeline stage (spec section
// 4.2): it walks the input document and emits typed entities for the
// selected layers, plus door/window block entities collected separately
// by layer-name pattern.
package extract

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/arxos/geoplan/internal/config"
	"github.com/arxos/geoplan/internal/entity"
	"github.com/arxos/geoplan/internal/geom"
	"github.com/arxos/geoplan/internal/pipeerr"
	"github.com/arxos/geoplan/internal/pipeline/metrics"
)

const stageName = "EXTRACT"

// rawDocument is the top-level CAD-export shape (section 6): a map from
// layer name to its entity list. A custom unmarshaler walks the "layers"
// object with json.Decoder's token stream instead of a plain map so that
// document order survives for stable downstream hashing, since Go map
// iteration order is not stable.
type rawDocument struct {
	layerOrder []string
	layers     map[string]rawLayer
}

type rawLayer struct {
	Entities []json.RawMessage `json:"entities"`
}

func (d *rawDocument) UnmarshalJSON(data []byte) error {
	var outer struct {
		Layers json.RawMessage `json:"layers"`
	}
	if err := json.Unmarshal(data, &outer); err != nil {
		return err
	}
	if outer.Layers == nil {
		d.layers = map[string]rawLayer{}
		return nil
	}

	dec := json.NewDecoder(bytes.NewReader(outer.Layers))
	if _, err := dec.Token(); err != nil { // consume '{'
		return err
	}
	d.layers = make(map[string]rawLayer)
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		key, _ := keyTok.(string)

		var layer rawLayer
		if err := dec.Decode(&layer); err != nil {
			return err
		}
		d.layers[key] = layer
		d.layerOrder = append(d.layerOrder, key)
	}
	return nil
}

type typeProbe struct {
	Type string `json:"type"`
}

type pointJSON struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

type lineJSON struct {
	Start *pointJSON `json:"start"`
	End   *pointJSON `json:"end"`
}

type polylineJSON struct {
	Vertices []pointJSON `json:"vertices"`
	Closed   bool        `json:"closed"`
}

type posJSON struct {
	X float64 `json:"X"`
	Y float64 `json:"Y"`
}

type bboxJSON struct {
	MinPoint *posJSON `json:"MinPoint"`
	MaxPoint *posJSON `json:"MaxPoint"`
}

type blockJSON struct {
	Name        string    `json:"name"`
	Position    *posJSON  `json:"position"`
	Rotation    float64   `json:"Rotation"`
	BoundingBox *bboxJSON `json:"BoundingBox"`
}

// Run executes Extract over the raw input document.
func Run(inputDocument []byte, selectedLayers map[string]struct{}, cfg config.AlgorithmConfig) (*entity.ExtractOutput, metrics.Metrics, error) {
	m := metrics.New()
	timer := metrics.StartTimer()
	defer func() { m.DurationMS = timer.Stop() }()

	if len(selectedLayers) == 0 {
		return nil, m, pipeerr.New(pipeerr.InvalidInput, stageName, "selected-layer set is empty")
	}

	var doc rawDocument
	if err := json.Unmarshal(inputDocument, &doc); err != nil {
		return nil, m, pipeerr.Wrap(pipeerr.InvalidInput, stageName, "input document is not valid JSON", err)
	}

	out := &entity.ExtractOutput{Counters: m.Counters}

	for _, layerName := range doc.layerOrder {
		layer := doc.layers[layerName]
		_, selected := selectedLayers[layerName]
		isDoorLayer := matchesAny(layerName, cfg.DoorLayerPatterns)
		isWindowLayer := matchesAny(layerName, cfg.WindowLayerPatterns)

		for _, raw := range layer.Entities {
			var probe typeProbe
			if err := json.Unmarshal(raw, &probe); err != nil {
				m.Counters["unparseable_entity"]++
				continue
			}

			switch probe.Type {
			case "LINE":
				if !selected {
					continue
				}
				var lj lineJSON
				if err := json.Unmarshal(raw, &lj); err != nil || lj.Start == nil || lj.End == nil {
					m.Counters["missing_required_keys"]++
					continue
				}
				out.Entities = append(out.Entities, entity.Line{
					Layer: layerName,
					P1:    geom.Point{X: lj.Start.X, Y: lj.Start.Y},
					P2:    geom.Point{X: lj.End.X, Y: lj.End.Y},
				})
				m.Counters["lines_extracted"]++

			case "POLYLINE":
				if !selected {
					continue
				}
				var pj polylineJSON
				if err := json.Unmarshal(raw, &pj); err != nil || len(pj.Vertices) < 2 {
					m.Counters["missing_required_keys"]++
					continue
				}
				verts := make([]geom.Point, len(pj.Vertices))
				for i, v := range pj.Vertices {
					verts[i] = geom.Point{X: v.X, Y: v.Y}
				}
				out.Entities = append(out.Entities, entity.Polyline{
					Layer:    layerName,
					Vertices: verts,
					Closed:   pj.Closed,
				})
				m.Counters["polylines_extracted"]++

			case "BLOCK":
				var bj blockJSON
				if err := json.Unmarshal(raw, &bj); err != nil || bj.Position == nil || bj.BoundingBox == nil ||
					bj.BoundingBox.MinPoint == nil || bj.BoundingBox.MaxPoint == nil {
					m.Counters["missing_required_keys"]++
					continue
				}
				block := entity.Block{
					Layer:       layerName,
					Name:        bj.Name,
					Position:    geom.Point{X: bj.Position.X, Y: bj.Position.Y},
					RotationDeg: bj.Rotation,
					BBoxLocal: geom.BBox{
						MinX: bj.BoundingBox.MinPoint.X, MinY: bj.BoundingBox.MinPoint.Y,
						MaxX: bj.BoundingBox.MaxPoint.X, MaxY: bj.BoundingBox.MaxPoint.Y,
					},
				}
				if selected {
					out.Entities = append(out.Entities, block)
					m.Counters["blocks_extracted"]++
				}
				if isDoorLayer {
					out.DoorBlocks = append(out.DoorBlocks, block)
				}
				if isWindowLayer {
					out.WindowBlocks = append(out.WindowBlocks, block)
				}

			default:
				m.Counters["unknown_entity_type"]++
			}
		}
	}

	return out, m, nil
}

// matchesAny reports whether name contains any of patterns, case-insensitive.
func matchesAny(name string, patterns []string) bool {
	lower := strings.ToLower(name)
	for _, p := range patterns {
		if strings.Contains(lower, strings.ToLower(p)) {
			return true
		}
	}
	return false
}

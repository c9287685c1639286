package entity

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"github.com/arxos/geoplan/internal/geom"
)

// canonicalNumber encodes a coordinate at epsilon-scale precision so that
// two values that round to the same quantized coordinate hash identically
// regardless of float formatting noise. SHA-256 is stdlib here because the
// operation is pure byte-canonicalization, not a domain concern any
// third-party library in the retrieval pack addresses better than
// crypto/sha256 (see DESIGN.md).
func canonicalNumber(x float64) string {
	return fmt.Sprintf("%.6f", geom.Round(x))
}

func canonicalPoint(p geom.Point) string {
	return canonicalNumber(p.X) + "," + canonicalNumber(p.Y)
}

// HashLine computes the content hash for a line entity: layer, kind, and
// canonicalized endpoints ordered lexicographically so direction is
// irrelevant (section 4.4).
func HashLine(layer string, p1, p2 geom.Point) ID {
	seg := geom.NewSegment(p1, p2).Canonical()
	payload := layer + "|LINE|" + canonicalPoint(seg.P1) + "|" + canonicalPoint(seg.P2)
	return hashString(payload)
}

// HashBlock computes the content hash for a block entity: layer, kind,
// name, canonicalized position, and canonicalized rotation.
func HashBlock(layer, name string, position geom.Point, rotationDeg float64) ID {
	payload := layer + "|BLOCK|" + name + "|" + canonicalPoint(position) + "|" + canonicalNumber(rotationDeg)
	return hashString(payload)
}

func hashString(payload string) ID {
	sum := sha256.Sum256([]byte(payload))
	return ID(hex.EncodeToString(sum[:]))
}

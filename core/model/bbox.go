package model

import (
	"encoding/json"
	"fmt"
)

// BBox is a bounding box [x1, y1, x2, y2]. It is stored as a JSON array
// string so a real vision pipeline can swap in pixel coordinates unchanged.
type BBox [4]float64

// DefaultBBox is used when a spot has no calibrated coordinates.
var DefaultBBox = BBox{0, 0, 100, 100}

// IsZero reports whether the box has no extent.
func (b BBox) IsZero() bool {
	return b == BBox{}
}

// String serialises the box as a JSON array.
func (b BBox) String() string {
	return fmt.Sprintf("[%g, %g, %g, %g]", b[0], b[1], b[2], b[3])
}

// ParseBBox parses a JSON array string into a BBox.
func ParseBBox(s string) (BBox, error) {
	var vals []float64
	if err := json.Unmarshal([]byte(s), &vals); err != nil {
		return BBox{}, fmt.Errorf("parse bbox %q: %w", s, err)
	}
	if len(vals) != 4 {
		return BBox{}, fmt.Errorf("parse bbox %q: expected 4 values, got %d", s, len(vals))
	}
	var b BBox
	copy(b[:], vals)
	return b, nil
}

package layout

import (
	"math"
	"strings"

	"github.com/matzehuels/signcanvas/pkg/errors"
)

// Edge picks the reference line for Align.
type Edge int

const (
	// Start aligns leading edges (left or top).
	Start Edge = iota
	// Middle aligns centres.
	Middle
	// End aligns trailing edges (right or bottom).
	End
)

// String returns the lowercase edge name.
func (e Edge) String() string {
	switch e {
	case Start:
		return "start"
	case Middle:
		return "center"
	case End:
		return "end"
	default:
		return "unknown"
	}
}

// ParseEdge converts a flag value into an Edge.
func ParseEdge(s string) (Edge, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "start", "left", "top":
		return Start, nil
	case "center", "centre", "middle":
		return Middle, nil
	case "end", "right", "bottom":
		return End, nil
	}
	return 0, errors.New(errors.ErrCodeInvalidInput, "unknown edge %q (want start, center or end)", s)
}

// Bounds returns the lowest leading edge and highest trailing edge of items
// along the axis. ok is false for an empty selection.
func Bounds(items []Item, axis Axis) (lo, hi float64, ok bool) {
	if len(items) == 0 {
		return 0, 0, false
	}
	lo, hi = math.Inf(1), math.Inf(-1)
	for _, it := range items {
		half := it.Extent(axis) / 2
		lo = math.Min(lo, it.Center(axis)-half)
		hi = math.Max(hi, it.Center(axis)+half)
	}
	return lo, hi, true
}

// Align moves every item so the chosen edge lines up with the same edge of
// the selection's bounds. It reports whether anything was dispatched; fewer
// than two items is a no-op.
func Align(items []Item, axis Axis, edge Edge) bool {
	if len(items) < 2 {
		return false
	}
	lo, hi, _ := Bounds(items, axis)
	for _, it := range items {
		half := it.Extent(axis) / 2
		switch edge {
		case Start:
			it.SetCenter(axis, lo+half)
		case Middle:
			it.SetCenter(axis, (lo+hi)/2)
		case End:
			it.SetCenter(axis, hi-half)
		}
	}
	return true
}

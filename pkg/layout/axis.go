package layout

import (
	"strings"

	"github.com/matzehuels/signcanvas/pkg/errors"
)

// Axis selects which geometric attributes an operation reads and writes.
type Axis int

const (
	// Horizontal reads left/width.
	Horizontal Axis = iota
	// Vertical reads top/height.
	Vertical
)

// String returns the lowercase axis name.
func (a Axis) String() string {
	switch a {
	case Horizontal:
		return "horizontal"
	case Vertical:
		return "vertical"
	default:
		return "unknown"
	}
}

// Orthogonal returns the other axis.
func (a Axis) Orthogonal() Axis {
	if a == Horizontal {
		return Vertical
	}
	return Horizontal
}

// ParseAxis converts a flag value into an Axis. Accepts "horizontal", "h",
// "x", "vertical", "v" and "y", case-insensitively.
func ParseAxis(s string) (Axis, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "horizontal", "h", "x":
		return Horizontal, nil
	case "vertical", "v", "y":
		return Vertical, nil
	}
	return 0, errors.New(errors.ErrCodeInvalidAxis, "unknown axis %q (want horizontal or vertical)", s)
}

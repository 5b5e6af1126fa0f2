package layout

// Item is one member of a selection. Implementations are owned by the caller;
// layout functions only read geometry and write back centres.
type Item interface {
	// Center returns the item's centre along the axis.
	Center(Axis) float64
	// Extent returns the item's rendered size along the axis, scale included.
	Extent(Axis) float64
	// SetCenter moves the item so its centre along the axis is v.
	SetCenter(Axis, float64)
}

// Box is a plain rectangular Item, centred at (X, Y).
// All coordinates are in canvas units.
type Box struct {
	ID            string
	X, Y          float64
	Width, Height float64
}

// Center returns X or Y depending on the axis.
func (b *Box) Center(a Axis) float64 {
	if a == Vertical {
		return b.Y
	}
	return b.X
}

// Extent returns Width or Height depending on the axis.
func (b *Box) Extent(a Axis) float64 {
	if a == Vertical {
		return b.Height
	}
	return b.Width
}

// SetCenter moves the box along the axis.
func (b *Box) SetCenter(a Axis, v float64) {
	if a == Vertical {
		b.Y = v
		return
	}
	b.X = v
}

// Leading returns the box's low edge along the axis.
func (b *Box) Leading(a Axis) float64 { return b.Center(a) - b.Extent(a)/2 }

// Trailing returns the box's high edge along the axis.
func (b *Box) Trailing(a Axis) float64 { return b.Center(a) + b.Extent(a)/2 }

var _ Item = (*Box)(nil)

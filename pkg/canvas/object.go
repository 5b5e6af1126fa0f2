package canvas

import (
	"maps"

	"github.com/matzehuels/signcanvas/pkg/layout"
)

// Object types understood by the editor. The core treats them as labels.
const (
	TypeRect    = "rect"
	TypeCircle  = "circle"
	TypeText    = "text"
	TypeImage   = "image"
	TypeLine    = "line"
	TypeGroup   = "group"
	TypeSVGPath = "path"
)

// Object is one element on the canvas. Left and Top are the object's centre.
type Object struct {
	ID      string            `json:"id"`
	Type    string            `json:"type"`
	Left    float64           `json:"left"`
	Top     float64           `json:"top"`
	Width   float64           `json:"width"`
	Height  float64           `json:"height"`
	ScaleX  float64           `json:"scaleX"`
	ScaleY  float64           `json:"scaleY"`
	Angle   float64           `json:"angle"`
	Locked  bool              `json:"locked"`
	Visible bool              `json:"visible"`
	Fill    string            `json:"fill,omitempty"`
	Text    string            `json:"text,omitempty"`
	Data    map[string]string `json:"data,omitempty"`
}

// NewObject returns a visible, unscaled object centred at (left, top).
func NewObject(id, typ string, left, top, width, height float64) *Object {
	return &Object{
		ID:      id,
		Type:    typ,
		Left:    left,
		Top:     top,
		Width:   width,
		Height:  height,
		ScaleX:  1,
		ScaleY:  1,
		Visible: true,
	}
}

// Center returns Left or Top depending on the axis.
func (o *Object) Center(a layout.Axis) float64 {
	if a == layout.Vertical {
		return o.Top
	}
	return o.Left
}

// Extent returns the rendered size along the axis. A zero scale counts as 1.
func (o *Object) Extent(a layout.Axis) float64 {
	if a == layout.Vertical {
		return o.Height * scale(o.ScaleY)
	}
	return o.Width * scale(o.ScaleX)
}

// SetCenter moves the object along the axis.
func (o *Object) SetCenter(a layout.Axis, v float64) {
	if a == layout.Vertical {
		o.Top = v
		return
	}
	o.Left = v
}

// Clone returns a deep copy.
func (o *Object) Clone() *Object {
	c := *o
	c.Data = maps.Clone(o.Data)
	return &c
}

func scale(s float64) float64 {
	if s == 0 {
		return 1
	}
	return s
}

var _ layout.Item = (*Object)(nil)

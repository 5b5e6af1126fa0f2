package canvas

import (
	"maps"
	"math"
	"slices"

	"github.com/matzehuels/signcanvas/pkg/errors"
	"github.com/matzehuels/signcanvas/pkg/layout"
)

// Default artboard size in canvas units.
const (
	DefaultWidth  = 800
	DefaultHeight = 600
)

// Document is the full editable signage design.
type Document struct {
	Width      float64           `json:"width"`
	Height     float64           `json:"height"`
	Background string            `json:"background,omitempty"`
	Objects    []*Object         `json:"objects"`
	Metadata   map[string]string `json:"metadata,omitempty"`
}

// New returns an empty document with the default artboard size.
func New() *Document {
	return &Document{
		Width:   DefaultWidth,
		Height:  DefaultHeight,
		Objects: []*Object{},
	}
}

// Len returns the number of objects.
func (d *Document) Len() int { return len(d.Objects) }

// Find returns the object with the given id, or nil.
func (d *Document) Find(id string) *Object {
	if i := d.index(id); i >= 0 {
		return d.Objects[i]
	}
	return nil
}

func (d *Document) index(id string) int {
	return slices.IndexFunc(d.Objects, func(o *Object) bool { return o.ID == id })
}

// Add appends an object. The id must be valid and unused.
func (d *Document) Add(o *Object) error {
	if err := errors.ValidateObjectID(o.ID); err != nil {
		return err
	}
	if d.index(o.ID) >= 0 {
		return errors.New(errors.ErrCodeInvalidDocument, "duplicate object id %q", o.ID)
	}
	d.Objects = append(d.Objects, o)
	return nil
}

// Remove deletes the object with the given id.
func (d *Document) Remove(id string) error {
	i := d.index(id)
	if i < 0 {
		return errors.New(errors.ErrCodeObjectNotFound, "object %q not found", id)
	}
	d.Objects = slices.Delete(d.Objects, i, i+1)
	return nil
}

// Select resolves ids to objects in the given order. Unknown ids are an
// error; duplicates are dropped.
func (d *Document) Select(ids ...string) ([]*Object, error) {
	seen := make(map[string]bool, len(ids))
	out := make([]*Object, 0, len(ids))
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true
		o := d.Find(id)
		if o == nil {
			return nil, errors.New(errors.ErrCodeObjectNotFound, "object %q not found", id)
		}
		out = append(out, o)
	}
	return out, nil
}

// Items adapts objects to layout items.
func Items(objs []*Object) []layout.Item {
	items := make([]layout.Item, len(objs))
	for i, o := range objs {
		items[i] = o
	}
	return items
}

// Clone returns a deep copy of the document.
func (d *Document) Clone() *Document {
	c := &Document{
		Width:      d.Width,
		Height:     d.Height,
		Background: d.Background,
		Objects:    make([]*Object, len(d.Objects)),
		Metadata:   maps.Clone(d.Metadata),
	}
	for i, o := range d.Objects {
		c.Objects[i] = o.Clone()
	}
	return c
}

// Validate checks structural invariants: unique valid ids and finite
// geometry.
func (d *Document) Validate() error {
	if !finite(d.Width, d.Height) || d.Width < 0 || d.Height < 0 {
		return errors.New(errors.ErrCodeInvalidDocument, "invalid artboard size %vx%v", d.Width, d.Height)
	}
	seen := make(map[string]bool, len(d.Objects))
	for i, o := range d.Objects {
		if o == nil {
			return errors.New(errors.ErrCodeInvalidDocument, "object %d is null", i)
		}
		if err := errors.ValidateObjectID(o.ID); err != nil {
			return err
		}
		if seen[o.ID] {
			return errors.New(errors.ErrCodeInvalidDocument, "duplicate object id %q", o.ID)
		}
		seen[o.ID] = true
		if !finite(o.Left, o.Top, o.Width, o.Height, o.ScaleX, o.ScaleY, o.Angle) {
			return errors.New(errors.ErrCodeInvalidDocument, "object %q has non-finite geometry", o.ID)
		}
	}
	return nil
}

func finite(vs ...float64) bool {
	for _, v := range vs {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

package canvas

import (
	"bytes"
	"encoding/json"

	"github.com/matzehuels/signcanvas/pkg/errors"
)

// Serialize returns the deterministic snapshot of d.
func Serialize(d *Document) (string, error) {
	if err := d.Validate(); err != nil {
		return "", err
	}
	if d.Objects == nil {
		c := *d
		c.Objects = []*Object{}
		d = &c
	}
	data, err := json.Marshal(d)
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeInvalidDocument, err, "serialize document")
	}
	return string(data), nil
}

// Deserialize decodes a snapshot produced by Serialize. Unknown fields,
// trailing data and structurally invalid documents are reported as corrupt.
func Deserialize(snapshot string) (*Document, error) {
	dec := json.NewDecoder(bytes.NewReader([]byte(snapshot)))
	dec.DisallowUnknownFields()

	var d Document
	if err := dec.Decode(&d); err != nil {
		return nil, errors.Wrap(errors.ErrCodeCorruptSnapshot, err, "decode snapshot")
	}
	if dec.More() {
		return nil, errors.New(errors.ErrCodeCorruptSnapshot, "decode snapshot: trailing data")
	}
	if d.Objects == nil {
		d.Objects = []*Object{}
	}
	if err := d.Validate(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeCorruptSnapshot, err, "validate snapshot")
	}
	return &d, nil
}

// Equal reports whether a and b serialize to the same snapshot.
func Equal(a, b *Document) bool {
	sa, errA := Serialize(a)
	sb, errB := Serialize(b)
	return errA == nil && errB == nil && sa == sb
}

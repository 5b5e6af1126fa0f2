// Package script drives an editing session from a TOML file of steps.
//
// A script describes the starting canvas and an ordered list of edits:
//
//	[canvas]
//	width = 1200
//	height = 800
//
//	[[steps]]
//	op = "add"
//	id = "title"
//	type = "text"
//	left = 600
//	top = 80
//	width = 400
//	height = 60
//
//	[[steps]]
//	op = "distribute"
//	ids = ["title", "logo", "phone"]
//	axis = "vertical"
//
//	[[steps]]
//	op = "undo"
//
// Every step that changes the document records one history entry, exactly
// as an interactive edit would.
package script

import (
	"io"
	"os"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/signcanvas/pkg/canvas"
	"github.com/matzehuels/signcanvas/pkg/errors"
	"github.com/matzehuels/signcanvas/pkg/layout"
)

// Supported step operations.
const (
	OpAdd        = "add"
	OpMove       = "move"
	OpResize     = "resize"
	OpDelete     = "delete"
	OpSet        = "set"
	OpDistribute = "distribute"
	OpAlign      = "align"
	OpUndo       = "undo"
	OpRedo       = "redo"
)

// Script is a parsed edit script.
type Script struct {
	Canvas Canvas `toml:"canvas"`
	Steps  []Step `toml:"steps"`
}

// Canvas describes the document a script starts from when no session is
// being resumed.
type Canvas struct {
	Width      float64 `toml:"width"`
	Height     float64 `toml:"height"`
	Background string  `toml:"background"`
}

// Step is one edit. Which fields apply depends on Op.
type Step struct {
	Op     string   `toml:"op"`
	ID     string   `toml:"id"`
	IDs    []string `toml:"ids"`
	Type   string   `toml:"type"`
	Left   *float64 `toml:"left"`
	Top    *float64 `toml:"top"`
	Width  *float64 `toml:"width"`
	Height *float64 `toml:"height"`
	Angle  *float64 `toml:"angle"`
	Fill   *string  `toml:"fill"`
	Text   *string  `toml:"text"`
	Axis   string   `toml:"axis"`
	Edge   string   `toml:"edge"`
	Count  int      `toml:"count"`
}

// Load reads and validates a script file.
func Load(path string) (*Script, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "open script")
	}
	defer f.Close()
	return Parse(f)
}

// Parse decodes and validates a script. Unknown keys are rejected.
func Parse(r io.Reader) (*Script, error) {
	var s Script
	md, err := toml.NewDecoder(r).Decode(&s)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "parse script")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, errors.New(errors.ErrCodeInvalidInput, "unknown script keys: %s", strings.Join(keys, ", "))
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// Validate checks every step before any of them runs.
func (s *Script) Validate() error {
	if s.Canvas.Width < 0 || s.Canvas.Height < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "canvas size must not be negative")
	}
	for i := range s.Steps {
		if err := s.Steps[i].validate(); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidInput, err, "step %d", i+1)
		}
	}
	return nil
}

// Document returns the starting document described by the [canvas] table.
func (s *Script) Document() *canvas.Document {
	d := canvas.New()
	if s.Canvas.Width > 0 {
		d.Width = s.Canvas.Width
	}
	if s.Canvas.Height > 0 {
		d.Height = s.Canvas.Height
	}
	d.Background = s.Canvas.Background
	return d
}

func (st *Step) validate() error {
	needID := func() error {
		if st.ID == "" {
			return errors.New(errors.ErrCodeInvalidInput, "%s requires id", st.Op)
		}
		return nil
	}

	switch st.Op {
	case OpAdd:
		if st.Width == nil || st.Height == nil {
			return errors.New(errors.ErrCodeInvalidInput, "add requires width and height")
		}
		return needID()
	case OpMove:
		if st.Left == nil && st.Top == nil {
			return errors.New(errors.ErrCodeInvalidInput, "move requires left or top")
		}
		return needID()
	case OpResize:
		if st.Width == nil && st.Height == nil {
			return errors.New(errors.ErrCodeInvalidInput, "resize requires width or height")
		}
		return needID()
	case OpDelete, OpSet:
		return needID()
	case OpDistribute, OpAlign:
		if len(st.IDs) == 0 {
			return errors.New(errors.ErrCodeInvalidInput, "%s requires ids", st.Op)
		}
		if _, err := layout.ParseAxis(st.Axis); err != nil {
			return err
		}
		if st.Op == OpAlign {
			if _, err := layout.ParseEdge(st.Edge); err != nil {
				return err
			}
		}
	case OpUndo, OpRedo:
		if st.Count < 0 {
			return errors.New(errors.ErrCodeInvalidInput, "%s count must not be negative", st.Op)
		}
	case "":
		return errors.New(errors.ErrCodeInvalidInput, "missing op")
	default:
		return errors.New(errors.ErrCodeInvalidInput, "unknown op %q", st.Op)
	}
	return nil
}

package script

import (
	"context"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/signcanvas/pkg/canvas"
	"github.com/matzehuels/signcanvas/pkg/errors"
	"github.com/matzehuels/signcanvas/pkg/editor"
	"github.com/matzehuels/signcanvas/pkg/layout"
)

// Result summarises a script run.
type Result struct {
	Steps    int // steps executed
	Recorded int // steps that created a history entry
	Undone   int
	Redone   int
	Skipped  int // steps that changed nothing
}

// Run validates the script, then applies its steps to sess in order and
// stops at the first failing step. The logger is taken from ctx.
func Run(ctx context.Context, sess *editor.Session, s *Script) (Result, error) {
	logger := log.FromContext(ctx)
	var res Result

	if err := s.Validate(); err != nil {
		return res, err
	}

	for i := range s.Steps {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		st := &s.Steps[i]

		changed, err := apply(sess, st, &res)
		if err != nil {
			code := errors.GetCode(err)
			if code == "" {
				code = errors.ErrCodeInternal
			}
			return res, errors.Wrap(code, err, "step %d (%s)", i+1, st.Op)
		}
		res.Steps++
		if !changed {
			res.Skipped++
		}
		logger.Debug("step", "n", i+1, "op", st.Op, "changed", changed, "cursor", sess.History().Cursor())
	}
	return res, nil
}

func apply(sess *editor.Session, st *Step, res *Result) (bool, error) {
	switch st.Op {
	case OpUndo, OpRedo:
		return step(sess, st, res)
	case OpDistribute:
		axis, err := layout.ParseAxis(st.Axis)
		if err != nil {
			return false, err
		}
		ok, err := sess.Distribute(axis, st.IDs...)
		return counted(ok, err, res)
	case OpAlign:
		axis, err := layout.ParseAxis(st.Axis)
		if err != nil {
			return false, err
		}
		edge, err := layout.ParseEdge(st.Edge)
		if err != nil {
			return false, err
		}
		ok, err := sess.Align(axis, edge, st.IDs...)
		return counted(ok, err, res)
	}
	ok, err := sess.Edit(func(d *canvas.Document) error { return edit(d, st) })
	return counted(ok, err, res)
}

func counted(ok bool, err error, res *Result) (bool, error) {
	if ok {
		res.Recorded++
	}
	return ok, err
}

func step(sess *editor.Session, st *Step, res *Result) (bool, error) {
	n := max(st.Count, 1)
	move, tally := sess.Undo, &res.Undone
	if st.Op == OpRedo {
		move, tally = sess.Redo, &res.Redone
	}

	changed := false
	for i := 0; i < n; i++ {
		ok, err := move()
		if err != nil {
			return changed, err
		}
		if !ok {
			break
		}
		*tally++
		changed = true
	}
	return changed, nil
}

func edit(d *canvas.Document, st *Step) error {
	if st.Op == OpAdd {
		typ := st.Type
		if typ == "" {
			typ = canvas.TypeRect
		}
		o := canvas.NewObject(st.ID, typ, deref(st.Left), deref(st.Top), *st.Width, *st.Height)
		setStyle(o, st)
		return d.Add(o)
	}
	if st.Op == OpDelete {
		return d.Remove(st.ID)
	}

	o := d.Find(st.ID)
	if o == nil {
		return errors.New(errors.ErrCodeObjectNotFound, "object %q not found", st.ID)
	}
	switch st.Op {
	case OpMove:
		setIf(&o.Left, st.Left)
		setIf(&o.Top, st.Top)
	case OpResize:
		setIf(&o.Width, st.Width)
		setIf(&o.Height, st.Height)
	case OpSet:
		setStyle(o, st)
	}
	return nil
}

func setStyle(o *canvas.Object, st *Step) {
	setIf(&o.Angle, st.Angle)
	setIf(&o.Fill, st.Fill)
	setIf(&o.Text, st.Text)
}

func setIf[T any](dst *T, v *T) {
	if v != nil {
		*dst = *v
	}
}

func deref(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}

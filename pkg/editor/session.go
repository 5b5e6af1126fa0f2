package editor

import (
	"context"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/signcanvas/pkg/canvas"
	"github.com/matzehuels/signcanvas/pkg/errors"
	"github.com/matzehuels/signcanvas/pkg/history"
	"github.com/matzehuels/signcanvas/pkg/layout"
	"github.com/matzehuels/signcanvas/pkg/recovery"
)

// Options configures a Session.
type Options struct {
	// Capacity bounds the undo log; history.DefaultCapacity when zero.
	Capacity int
	// Store receives the live snapshot for crash recovery. Nil disables it.
	Store recovery.Store
	// Writer tunes background recovery writes.
	Writer recovery.WriterOptions
	// Logger defaults to log.Default().
	Logger *log.Logger
}

// Session is one editing session: a live document plus its history.
// It is not safe for concurrent mutation.
type Session struct {
	id      string
	doc     *canvas.Document
	history *history.Manager
	writer  *recovery.Writer
	store   recovery.Store
	logger  *log.Logger
}

// NewSessionID returns a fresh random session key.
func NewSessionID() string {
	return uuid.NewString()
}

// New starts a session on doc and seeds the history with it.
func New(id string, doc *canvas.Document, opts Options) (*Session, error) {
	if err := errors.ValidateSessionID(id); err != nil {
		return nil, err
	}
	if doc == nil {
		doc = canvas.New()
	}
	snap, err := canvas.Serialize(doc)
	if err != nil {
		return nil, err
	}

	s := newSession(id, opts)
	s.doc = doc
	s.history.Seed(snap)
	s.logger.Debug("started session", "session", id, "objects", doc.Len())
	return s, nil
}

// Restore resumes session id from the recovery store. It fails with
// SESSION_NOT_FOUND when nothing is stored and CORRUPT_SNAPSHOT when the
// stored draft does not decode.
func Restore(ctx context.Context, id string, opts Options) (*Session, error) {
	if err := errors.ValidateSessionID(id); err != nil {
		return nil, err
	}
	if opts.Store == nil {
		return nil, errors.New(errors.ErrCodeSessionNotFound, "session %s: recovery disabled", id)
	}
	snap, ok, err := recovery.Load(ctx, opts.Store, id)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, errors.New(errors.ErrCodeSessionNotFound, "session %s not found", id)
	}

	s := newSession(id, opts)
	if err := s.Seed(snap); err != nil {
		s.Close()
		return nil, errors.Wrap(errors.ErrCodeCorruptSnapshot, err, "restore session %s", id)
	}
	s.logger.Info("restored session", "session", id, "objects", s.doc.Len())
	return s, nil
}

// Open restores session id if a draft exists and otherwise starts a new
// session on fallback. restored reports which happened.
func Open(ctx context.Context, id string, fallback *canvas.Document, opts Options) (sess *Session, restored bool, err error) {
	sess, err = Restore(ctx, id, opts)
	switch {
	case err == nil:
		return sess, true, nil
	case errors.Is(err, errors.ErrCodeSessionNotFound):
		sess, err = New(id, fallback, opts)
		return sess, false, err
	}
	return nil, false, err
}

func newSession(id string, opts Options) *Session {
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	s := &Session{id: id, store: opts.Store, logger: logger}

	hopts := []history.Option{history.WithLogger(logger)}
	if opts.Store != nil {
		wopts := opts.Writer
		if wopts.Logger == nil {
			wopts.Logger = logger
		}
		s.writer = recovery.NewWriter(opts.Store, id, wopts)
		hopts = append(hopts, history.WithSaver(s.writer))
	}
	s.history = history.NewManager(opts.Capacity, hopts...)
	return s
}

// ID returns the session key.
func (s *Session) ID() string { return s.id }

// Document returns the live document. Callers that mutate it directly must
// call Record afterwards.
func (s *Session) Document() *canvas.Document { return s.doc }

// History exposes the undo log for inspection.
func (s *Session) History() *history.Manager { return s.history }

// CanUndo reports whether Undo would change the document.
func (s *Session) CanUndo() bool { return s.history.CanUndo() }

// CanRedo reports whether Redo would change the document.
func (s *Session) CanRedo() bool { return s.history.CanRedo() }

// Record snapshots the live document. It reports whether a new history
// entry was created.
func (s *Session) Record() (bool, error) {
	snap, err := canvas.Serialize(s.doc)
	if err != nil {
		return false, err
	}
	return s.history.Record(snap), nil
}

// Seed replaces the live document with snapshot and resets history to it.
func (s *Session) Seed(snapshot string) error {
	doc, err := canvas.Deserialize(snapshot)
	if err != nil {
		return err
	}
	s.doc = doc
	s.history.Seed(snapshot)
	return nil
}

// Edit applies fn to a copy of the document and, if fn succeeds, makes the
// copy live and records it. A failing fn leaves the document untouched.
func (s *Session) Edit(fn func(*canvas.Document) error) (bool, error) {
	next := s.doc.Clone()
	if err := fn(next); err != nil {
		return false, err
	}
	snap, err := canvas.Serialize(next)
	if err != nil {
		return false, err
	}
	s.doc = next
	return s.history.Record(snap), nil
}

// Undo restores the previous snapshot. It reports false when there is
// nothing to undo.
func (s *Session) Undo() (bool, error) {
	_, ok, err := s.history.Undo(s.apply)
	return ok && err == nil, err
}

// Redo restores the next snapshot. It reports false when there is nothing
// to redo.
func (s *Session) Redo() (bool, error) {
	_, ok, err := s.history.Redo(s.apply)
	return ok && err == nil, err
}

func (s *Session) apply(snapshot string) error {
	doc, err := canvas.Deserialize(snapshot)
	if err != nil {
		s.logger.Error("history snapshot corrupt", "session", s.id, "err", err)
		return err
	}
	s.doc = doc
	return nil
}

// Distribute evenly spaces the objects with the given ids along axis and
// records the result. Fewer than three objects is a no-op that records
// nothing.
func (s *Session) Distribute(axis layout.Axis, ids ...string) (bool, error) {
	sel, err := s.doc.Select(ids...)
	if err != nil {
		return false, err
	}
	if len(sel) < 3 {
		return false, nil
	}
	return s.Edit(func(d *canvas.Document) error {
		sel, err := d.Select(ids...)
		if err != nil {
			return err
		}
		layout.Distribute(canvas.Items(sel), axis)
		return nil
	})
}

// Align lines up the objects with the given ids on edge along axis and
// records the result. Fewer than two objects is a no-op.
func (s *Session) Align(axis layout.Axis, edge layout.Edge, ids ...string) (bool, error) {
	sel, err := s.doc.Select(ids...)
	if err != nil {
		return false, err
	}
	if len(sel) < 2 {
		return false, nil
	}
	return s.Edit(func(d *canvas.Document) error {
		sel, err := d.Select(ids...)
		if err != nil {
			return err
		}
		layout.Align(canvas.Items(sel), axis, edge)
		return nil
	})
}

// Flush waits for pending recovery writes.
func (s *Session) Flush() {
	if s.writer != nil {
		s.writer.Flush()
	}
}

// Discard removes the session's recovery draft, e.g. after the design was
// saved for real.
func (s *Session) Discard(ctx context.Context) error {
	if s.store == nil {
		return nil
	}
	s.Flush()
	return recovery.Discard(ctx, s.store, s.id)
}

// Close flushes and stops the recovery writer. The store is not closed.
func (s *Session) Close() {
	if s.writer != nil {
		s.writer.Close()
	}
}

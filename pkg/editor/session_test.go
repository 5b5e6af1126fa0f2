package editor

import (
	"context"
	"io"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/signcanvas/pkg/canvas"
	"github.com/matzehuels/signcanvas/pkg/errors"
	"github.com/matzehuels/signcanvas/pkg/layout"
	"github.com/matzehuels/signcanvas/pkg/recovery"
)

func quiet() Options {
	return Options{Logger: log.New(io.Discard)}
}

// threeBoxes returns 10-wide boxes centred at 0, 5 and 20 horizontally.
func threeBoxes(t *testing.T) *canvas.Document {
	t.Helper()
	d := canvas.New()
	for _, o := range []*canvas.Object{
		canvas.NewObject("a", canvas.TypeRect, 0, 0, 10, 10),
		canvas.NewObject("b", canvas.TypeRect, 5, 40, 10, 10),
		canvas.NewObject("c", canvas.TypeRect, 20, 80, 10, 10),
	} {
		if err := d.Add(o); err != nil {
			t.Fatal(err)
		}
	}
	return d
}

func newTestSession(t *testing.T, doc *canvas.Document, opts Options) *Session {
	t.Helper()
	s, err := New("test-session", doc, opts)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(s.Close)
	return s
}

func TestDistributeUndoRedo(t *testing.T) {
	s := newTestSession(t, threeBoxes(t), quiet())

	ok, err := s.Distribute(layout.Horizontal, "c", "a", "b")
	if err != nil || !ok {
		t.Fatalf("Distribute = %v, %v; want true, nil", ok, err)
	}
	if got := s.Document().Find("b").Left; got != 10 {
		t.Errorf("b.Left = %v, want 10", got)
	}
	if got := s.Document().Find("b").Top; got != 40 {
		t.Errorf("b.Top = %v, want 40 (orthogonal axis untouched)", got)
	}
	if s.History().Len() != 2 {
		t.Errorf("history len = %d, want 2", s.History().Len())
	}

	if ok, err := s.Undo(); !ok || err != nil {
		t.Fatalf("Undo = %v, %v", ok, err)
	}
	if got := s.Document().Find("b").Left; got != 5 {
		t.Errorf("after undo b.Left = %v, want 5", got)
	}
	if s.History().Len() != 2 {
		t.Errorf("undo must not record: len = %d", s.History().Len())
	}

	if ok, err := s.Redo(); !ok || err != nil {
		t.Fatalf("Redo = %v, %v", ok, err)
	}
	if got := s.Document().Find("b").Left; got != 10 {
		t.Errorf("after redo b.Left = %v, want 10", got)
	}
	if s.CanRedo() {
		t.Error("CanRedo after redo to end")
	}
}

func TestDistributeTooFewDoesNotRecord(t *testing.T) {
	s := newTestSession(t, threeBoxes(t), quiet())

	for _, ids := range [][]string{{"a", "b"}, {"a"}, {"a", "a", "b"}, nil} {
		ok, err := s.Distribute(layout.Horizontal, ids...)
		if err != nil || ok {
			t.Errorf("Distribute(%v) = %v, %v; want false, nil", ids, ok, err)
		}
	}
	if s.History().Len() != 1 {
		t.Errorf("history len = %d, want 1", s.History().Len())
	}
}

func TestDistributeUnknownObject(t *testing.T) {
	s := newTestSession(t, threeBoxes(t), quiet())

	_, err := s.Distribute(layout.Vertical, "a", "b", "missing")
	if !errors.Is(err, errors.ErrCodeObjectNotFound) {
		t.Fatalf("err = %v, want OBJECT_NOT_FOUND", err)
	}
	if got := s.Document().Find("b").Left; got != 5 {
		t.Errorf("document changed: b.Left = %v", got)
	}
}

func TestAlignRecords(t *testing.T) {
	s := newTestSession(t, threeBoxes(t), quiet())

	ok, err := s.Align(layout.Horizontal, layout.Start, "a", "b", "c")
	if err != nil || !ok {
		t.Fatalf("Align = %v, %v", ok, err)
	}
	for _, id := range []string{"a", "b", "c"} {
		if got := s.Document().Find(id).Left; got != 0 {
			t.Errorf("%s.Left = %v, want 0", id, got)
		}
	}
	if s.History().Len() != 2 {
		t.Errorf("history len = %d, want 2", s.History().Len())
	}

	if ok, _ := s.Align(layout.Horizontal, layout.Start, "a"); ok {
		t.Error("Align with one object should be a no-op")
	}
}

func TestEditFailureLeavesDocument(t *testing.T) {
	s := newTestSession(t, threeBoxes(t), quiet())

	_, err := s.Edit(func(d *canvas.Document) error {
		d.Find("a").Left = 999
		return d.Remove("missing")
	})
	if !errors.Is(err, errors.ErrCodeObjectNotFound) {
		t.Fatalf("err = %v, want OBJECT_NOT_FOUND", err)
	}
	if got := s.Document().Find("a").Left; got != 0 {
		t.Errorf("a.Left = %v, want 0", got)
	}
	if s.History().Len() != 1 {
		t.Errorf("history len = %d, want 1", s.History().Len())
	}
}

func TestEditUnchangedDoesNotRecord(t *testing.T) {
	s := newTestSession(t, threeBoxes(t), quiet())

	ok, err := s.Edit(func(*canvas.Document) error { return nil })
	if err != nil || ok {
		t.Errorf("Edit = %v, %v; want false, nil", ok, err)
	}
}

func TestHistoryCapacity(t *testing.T) {
	opts := quiet()
	opts.Capacity = 5
	s := newTestSession(t, threeBoxes(t), opts)

	for i := 1; i <= 8; i++ {
		if _, err := s.Edit(func(d *canvas.Document) error {
			d.Find("a").Left = float64(i)
			return nil
		}); err != nil {
			t.Fatal(err)
		}
	}
	if s.History().Len() != 5 {
		t.Fatalf("history len = %d, want 5", s.History().Len())
	}

	undos := 0
	for s.CanUndo() {
		if _, err := s.Undo(); err != nil {
			t.Fatal(err)
		}
		undos++
	}
	if undos != 4 {
		t.Errorf("undos = %d, want 4", undos)
	}
	if got := s.Document().Find("a").Left; got != 4 {
		t.Errorf("oldest retained a.Left = %v, want 4", got)
	}
}

func TestRecordAfterDirectMutation(t *testing.T) {
	s := newTestSession(t, threeBoxes(t), quiet())

	s.Document().Find("c").Top = 100
	ok, err := s.Record()
	if err != nil || !ok {
		t.Fatalf("Record = %v, %v", ok, err)
	}
	if ok, _ := s.Record(); ok {
		t.Error("recording an unchanged document should be a no-op")
	}
}

func TestRecoveryRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := recovery.NewMemoryStore()
	opts := quiet()
	opts.Store = store

	s, err := New("draft-1", threeBoxes(t), opts)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := s.Distribute(layout.Horizontal, "a", "b", "c"); err != nil {
		t.Fatal(err)
	}
	s.Close()

	restored, err := Restore(ctx, "draft-1", opts)
	if err != nil {
		t.Fatalf("Restore: %v", err)
	}
	defer restored.Close()

	if !canvas.Equal(restored.Document(), s.Document()) {
		t.Error("restored document differs from live document")
	}
	if restored.CanUndo() || restored.History().Len() != 1 {
		t.Errorf("restored history should be seeded with one entry, len = %d", restored.History().Len())
	}

	if err := restored.Discard(ctx); err != nil {
		t.Fatal(err)
	}
	if _, err := Restore(ctx, "draft-1", opts); !errors.Is(err, errors.ErrCodeSessionNotFound) {
		t.Errorf("after discard err = %v, want SESSION_NOT_FOUND", err)
	}
}

func TestRecoverySavesUndo(t *testing.T) {
	ctx := context.Background()
	store := recovery.NewMemoryStore()
	opts := quiet()
	opts.Store = store

	s := newTestSession(t, threeBoxes(t), opts)
	if _, err := s.Distribute(layout.Horizontal, "a", "b", "c"); err != nil {
		t.Fatal(err)
	}
	if _, err := s.Undo(); err != nil {
		t.Fatal(err)
	}
	s.Flush()

	snap, ok, err := recovery.Load(ctx, store, s.ID())
	if err != nil || !ok {
		t.Fatalf("Load = %v, %v", ok, err)
	}
	doc, err := canvas.Deserialize(snap)
	if err != nil {
		t.Fatal(err)
	}
	if got := doc.Find("b").Left; got != 5 {
		t.Errorf("stored b.Left = %v, want 5 (undone state)", got)
	}
}

func TestOpen(t *testing.T) {
	ctx := context.Background()
	opts := quiet()
	opts.Store = recovery.NewMemoryStore()

	s, restored, err := Open(ctx, "fresh", threeBoxes(t), opts)
	if err != nil {
		t.Fatal(err)
	}
	if restored {
		t.Error("restored = true for unknown session")
	}
	if _, err := s.Edit(func(d *canvas.Document) error { return d.Remove("c") }); err != nil {
		t.Fatal(err)
	}
	s.Close()

	again, restored, err := Open(ctx, "fresh", threeBoxes(t), opts)
	if err != nil {
		t.Fatal(err)
	}
	defer again.Close()
	if !restored {
		t.Error("restored = false for saved session")
	}
	if again.Document().Len() != 2 {
		t.Errorf("objects = %d, want 2", again.Document().Len())
	}
}

func TestRestoreCorrupt(t *testing.T) {
	ctx := context.Background()
	store := recovery.NewMemoryStore()
	if err := store.Set(ctx, recovery.Key("broken"), []byte(`{"objects":[`), 0); err != nil {
		t.Fatal(err)
	}
	opts := quiet()
	opts.Store = store

	_, err := Restore(ctx, "broken", opts)
	if !errors.Is(err, errors.ErrCodeCorruptSnapshot) {
		t.Fatalf("err = %v, want CORRUPT_SNAPSHOT", err)
	}
	if got := errors.UserMessage(err); got != "could not restore previous session" {
		t.Errorf("UserMessage = %q", got)
	}

	if _, _, err := Open(ctx, "broken", nil, opts); !errors.Is(err, errors.ErrCodeCorruptSnapshot) {
		t.Errorf("Open err = %v, want CORRUPT_SNAPSHOT", err)
	}
}

func TestRestoreWithoutStore(t *testing.T) {
	_, err := Restore(context.Background(), "any", quiet())
	if !errors.Is(err, errors.ErrCodeSessionNotFound) {
		t.Errorf("err = %v, want SESSION_NOT_FOUND", err)
	}
}

func TestInvalidSessionID(t *testing.T) {
	if _, err := New("../etc", nil, quiet()); !errors.Is(err, errors.ErrCodeInvalidSessionID) {
		t.Errorf("err = %v, want INVALID_SESSION_ID", err)
	}
}

func TestNewSessionID(t *testing.T) {
	id := NewSessionID()
	if _, err := uuid.Parse(id); err != nil {
		t.Errorf("NewSessionID() = %q: %v", id, err)
	}
	if id == NewSessionID() {
		t.Error("NewSessionID returned the same id twice")
	}
	if err := errors.ValidateSessionID(id); err != nil {
		t.Errorf("generated id rejected: %v", err)
	}
}

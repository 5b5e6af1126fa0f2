package recovery

import (
	"context"
	"os"
	"testing"
	"time"
)

func testStore(t *testing.T, s Store) {
	t.Helper()
	ctx := context.Background()

	if _, hit, err := s.Get(ctx, "missing"); err != nil || hit {
		t.Fatalf("Get(missing) = hit %v, err %v", hit, err)
	}

	if err := s.Set(ctx, "k", []byte(`{"objects":[]}`), time.Hour); err != nil {
		t.Fatalf("Set() error: %v", err)
	}
	data, hit, err := s.Get(ctx, "k")
	if err != nil || !hit {
		t.Fatalf("Get() hit %v, err %v", hit, err)
	}
	if string(data) != `{"objects":[]}` {
		t.Errorf("Get() = %q", data)
	}

	if err := s.Set(ctx, "k", []byte("v2"), 0); err != nil {
		t.Fatalf("Set() overwrite error: %v", err)
	}
	if data, _, _ := s.Get(ctx, "k"); string(data) != "v2" {
		t.Errorf("Get() after overwrite = %q", data)
	}

	if err := s.Delete(ctx, "k"); err != nil {
		t.Fatalf("Delete() error: %v", err)
	}
	if _, hit, _ := s.Get(ctx, "k"); hit {
		t.Error("Get() after Delete should miss")
	}
	if err := s.Delete(ctx, "k"); err != nil {
		t.Errorf("Delete(missing) error: %v", err)
	}
}

func TestMemoryStore(t *testing.T) {
	testStore(t, NewMemoryStore())
}

func TestMemoryStoreExpiry(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	now := time.Now()
	s.now = func() time.Time { return now }

	_ = s.Set(ctx, "k", []byte("v"), time.Minute)
	now = now.Add(2 * time.Minute)

	if _, hit, _ := s.Get(ctx, "k"); hit {
		t.Error("expired entry should miss")
	}
	if s.Len() != 0 {
		t.Errorf("Len() = %d, expired entry should be dropped", s.Len())
	}
}

func TestMemoryStoreExpiryKeepsNewerSet(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	now := time.Now()
	s.now = func() time.Time { return now }

	_ = s.Set(ctx, "k", []byte("old"), time.Minute)
	now = now.Add(2 * time.Minute)

	// A writer replaces the entry between the expiry check and the delete.
	replaced := false
	s.now = func() time.Time {
		if !replaced {
			replaced = true
			_ = s.Set(ctx, "k", []byte("fresh"), time.Hour)
		}
		return now
	}

	if _, hit, _ := s.Get(ctx, "k"); hit {
		t.Error("Get() of the expired entry should miss")
	}
	data, hit, _ := s.Get(ctx, "k")
	if !hit || string(data) != "fresh" {
		t.Errorf("Get() = %q, %v; the newer Set was lost", data, hit)
	}
}

func TestMemoryStoreCopies(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	buf := []byte("abc")
	_ = s.Set(ctx, "k", buf, 0)
	buf[0] = 'x'

	data, _, _ := s.Get(ctx, "k")
	if string(data) != "abc" {
		t.Errorf("stored data aliased caller buffer: %q", data)
	}
}

func TestFileStore(t *testing.T) {
	s, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore() error: %v", err)
	}
	testStore(t, s)
}

func TestFileStoreExpiredAndCorrupt(t *testing.T) {
	ctx := context.Background()
	s, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore() error: %v", err)
	}

	if err := s.Set(ctx, "old", []byte("v"), time.Nanosecond); err != nil {
		t.Fatalf("Set() error: %v", err)
	}
	time.Sleep(5 * time.Millisecond)
	if _, hit, _ := s.Get(ctx, "old"); hit {
		t.Error("expired file entry should miss")
	}
	if _, err := os.Stat(s.Path("old")); !os.IsNotExist(err) {
		t.Error("expired file entry should be removed")
	}

	if err := s.Set(ctx, "bad", []byte("v"), 0); err != nil {
		t.Fatalf("Set() error: %v", err)
	}
	if err := os.WriteFile(s.Path("bad"), []byte("{not json"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, hit, err := s.Get(ctx, "bad"); hit || err != nil {
		t.Errorf("corrupt entry Get() = hit %v, err %v; want miss", hit, err)
	}
}

func TestFileStorePath(t *testing.T) {
	dir := t.TempDir()
	s, _ := NewFileStore(dir)
	p1, p2 := s.Path(Key("a")), s.Path(Key("b"))
	if p1 == p2 {
		t.Error("different keys should map to different files")
	}
	if s.Path(Key("a")) != p1 {
		t.Error("Path should be deterministic")
	}
	if s.Dir() != dir {
		t.Errorf("Dir() = %q, want %q", s.Dir(), dir)
	}
}

func TestNullStore(t *testing.T) {
	ctx := context.Background()
	s := NewNullStore()
	defer s.Close()

	if err := s.Set(ctx, "k", []byte("v"), time.Hour); err != nil {
		t.Errorf("Set error: %v", err)
	}
	if data, hit, err := s.Get(ctx, "k"); hit || data != nil || err != nil {
		t.Error("NullStore should never hit")
	}
	if err := s.Delete(ctx, "k"); err != nil {
		t.Errorf("Delete error: %v", err)
	}
}

func TestKeyAndHash(t *testing.T) {
	if Key("abc") != "signcanvas:draft:abc" {
		t.Errorf("Key() = %q", Key("abc"))
	}
	h := Hash([]byte("hello"))
	if len(h) != 64 || h != Hash([]byte("hello")) {
		t.Errorf("Hash() = %q", h)
	}
}

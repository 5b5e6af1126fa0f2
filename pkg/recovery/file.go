package recovery

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"time"
)

// FileStore keeps one JSON entry file per key under a directory.
type FileStore struct {
	dir string
}

// NewFileStore creates a file store in dir, creating it if needed.
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, err
	}
	return &FileStore{dir: dir}, nil
}

// fileEntry wraps stored data with metadata.
type fileEntry struct {
	Data      []byte    `json:"data"`
	SavedAt   time.Time `json:"saved_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Get reads the entry for key. Unreadable or expired entries are removed
// and reported as a miss.
func (s *FileStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	path := s.Path(key)

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	var entry fileEntry
	if err := json.Unmarshal(data, &entry); err != nil {
		_ = os.Remove(path)
		return nil, false, nil
	}

	if !entry.ExpiresAt.IsZero() && time.Now().After(entry.ExpiresAt) {
		_ = os.Remove(path)
		return nil, false, nil
	}

	return entry.Data, true, nil
}

// Set writes the entry atomically via a temp file and rename.
func (s *FileStore) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	now := time.Now()
	entry := fileEntry{Data: data, SavedAt: now}
	if ttl > 0 {
		entry.ExpiresAt = now.Add(ttl)
	}

	entryData, err := json.Marshal(entry)
	if err != nil {
		return err
	}

	path := s.Path(key)
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".draft-*")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(entryData); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), path)
}

// Delete removes the entry for key.
func (s *FileStore) Delete(ctx context.Context, key string) error {
	err := os.Remove(s.Path(key))
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

// Close does nothing for the file store.
func (s *FileStore) Close() error {
	return nil
}

// Dir returns the base directory.
func (s *FileStore) Dir() string {
	return s.dir
}

// Path returns the entry file for key.
// Keys are hashed and fanned out over two-character subdirectories.
func (s *FileStore) Path(key string) string {
	hash := Hash([]byte(key))
	return filepath.Join(s.dir, hash[:2], hash[2:]+".json")
}

var _ Store = (*FileStore)(nil)

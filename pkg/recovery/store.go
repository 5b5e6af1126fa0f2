// Package recovery persists the latest snapshot of each editing session so
// an unexpected exit can resume from the last known-good state.
//
// Backends implement [Store], a small key-value contract modelled on a
// cache: Get reports a miss instead of an error, and entries may carry a TTL.
// Implementations:
//   - [MemoryStore]: in-process map, for tests and ephemeral sessions
//   - [FileStore]: JSON entry files under a directory, for the CLI
//   - [RedisStore]: Redis, for shared multi-instance deployments
//   - [MongoStore]: a MongoDB collection, for deployments already on Mongo
//   - [NullStore]: discards everything (recovery disabled)
//
// A [Writer] sits between the history manager and a store. It accepts
// snapshots without blocking, coalesces bursts down to the newest one and
// writes in the background. Write failures are logged and swallowed.
package recovery

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Store is a key-value store for session snapshots.
type Store interface {
	// Get returns the stored data and true, or nil and false on a miss.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl <= 0 means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// DefaultTTL is how long an abandoned draft is kept.
const DefaultTTL = 7 * 24 * time.Hour

// keyPrefix namespaces recovery entries in shared backends.
const keyPrefix = "signcanvas:draft:"

// Key returns the store key for a session.
func Key(session string) string {
	return keyPrefix + session
}

// Hash computes a SHA-256 hash of the input data.
// Returns the full 64-character hex string.
func Hash(data []byte) string {
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}

// Package observability provides hooks for metrics, tracing, and logging.
//
// This package enables optional instrumentation without adding hard
// dependencies on specific observability backends. Consumers register hooks
// at startup to receive events about history and recovery activity.
//
// # Architecture
//
// The package uses a simple hooks pattern:
//   - Define hook interfaces for different event categories
//   - Provide no-op default implementations
//   - Allow registration of custom implementations at startup
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetHistoryHooks(observability.NewLogHooks(logger))
//	    observability.SetRecoveryHooks(observability.NewLogHooks(logger))
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.History().OnRecord(entries, cursor)
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// History Hooks
// =============================================================================

// HistoryHooks receives events from the undo/redo log. Calls happen on the
// editing goroutine and must not block.
type HistoryHooks interface {
	// OnRecord fires after a snapshot is appended.
	OnRecord(entries, cursor int)

	// OnEvict fires when the oldest snapshot is dropped to honour the cap.
	OnEvict(capacity int)

	// OnUndo and OnRedo fire after the cursor moved and the snapshot applied.
	OnUndo(cursor int)
	OnRedo(cursor int)
}

// =============================================================================
// Recovery Hooks
// =============================================================================

// RecoveryHooks receives events from the recovery store writer.
type RecoveryHooks interface {
	// OnSave records a successful write of size bytes.
	OnSave(ctx context.Context, session string, size int, duration time.Duration)

	// OnSaveError records a failed write. Failures are never fatal.
	OnSaveError(ctx context.Context, session string, err error)

	// OnRestore records a session restored from the store.
	OnRestore(ctx context.Context, session string, size int)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopHistoryHooks is a no-op implementation of HistoryHooks.
type NoopHistoryHooks struct{}

func (NoopHistoryHooks) OnRecord(int, int) {}
func (NoopHistoryHooks) OnEvict(int)       {}
func (NoopHistoryHooks) OnUndo(int)        {}
func (NoopHistoryHooks) OnRedo(int)        {}

// NoopRecoveryHooks is a no-op implementation of RecoveryHooks.
type NoopRecoveryHooks struct{}

func (NoopRecoveryHooks) OnSave(context.Context, string, int, time.Duration) {}
func (NoopRecoveryHooks) OnSaveError(context.Context, string, error)         {}
func (NoopRecoveryHooks) OnRestore(context.Context, string, int)             {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	historyHooks  HistoryHooks  = NoopHistoryHooks{}
	recoveryHooks RecoveryHooks = NoopRecoveryHooks{}
	hooksMu       sync.RWMutex
)

// SetHistoryHooks registers custom history hooks.
// This should be called once at application startup before any editing.
func SetHistoryHooks(h HistoryHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		historyHooks = h
	}
}

// SetRecoveryHooks registers custom recovery hooks.
// This should be called once at application startup before any session opens.
func SetRecoveryHooks(h RecoveryHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		recoveryHooks = h
	}
}

// History returns the registered history hooks.
func History() HistoryHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return historyHooks
}

// Recovery returns the registered recovery hooks.
func Recovery() RecoveryHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return recoveryHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	historyHooks = NoopHistoryHooks{}
	recoveryHooks = NoopRecoveryHooks{}
}

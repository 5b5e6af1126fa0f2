package history

import (
	"sync"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/signcanvas/pkg/errors"
	"github.com/matzehuels/signcanvas/pkg/observability"
)

// DefaultCapacity is the number of snapshots kept when no capacity is given.
const DefaultCapacity = 20

// ApplyFunc replaces the live document with snapshot. A non-nil error means
// the snapshot could not be applied and the cursor move is rolled back.
type ApplyFunc func(snapshot string) error

// Saver receives the live snapshot whenever it changes. Save must not block.
type Saver interface {
	Save(snapshot string)
}

// Option configures a Manager.
type Option func(*Manager)

// WithLogger sets the logger. The default is log.Default().
func WithLogger(l *log.Logger) Option {
	return func(m *Manager) {
		if l != nil {
			m.logger = l
		}
	}
}

// WithSaver attaches a recovery saver.
func WithSaver(s Saver) Option {
	return func(m *Manager) { m.saver = s }
}

// Manager owns the undo/redo log for one editing session.
//
// It is meant to be driven from a single goroutine. The mutex only protects
// the log against concurrent readers such as a UI refresh.
type Manager struct {
	mu     sync.Mutex
	ring   *Ring
	cursor int
	state  State

	saver  Saver
	logger *log.Logger
}

// NewManager creates an empty manager. A capacity <= 0 means DefaultCapacity.
func NewManager(capacity int, opts ...Option) *Manager {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	m := &Manager{
		ring:   NewRing(capacity),
		cursor: -1,
		logger: log.Default(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Seed resets the log to the single given snapshot with the cursor on it.
func (m *Manager) Seed(snapshot string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.ring.Reset()
	m.ring.Push(snapshot)
	m.cursor = 0
	m.logger.Debug("seeded history", "bytes", len(snapshot))
}

// Record appends snapshot as the new live state and reports whether the log
// changed. It is a no-op when snapshot equals the live state, while an
// undo/redo snapshot is being applied, or while a previous Record is still
// notifying hooks and the saver.
func (m *Manager) Record(snapshot string) bool {
	m.mu.Lock()
	if state := m.state; state != Idle {
		m.mu.Unlock()
		m.logger.Debug("ignored record", "state", state)
		return false
	}
	if m.cursor >= 0 && m.ring.At(m.cursor) == snapshot {
		m.mu.Unlock()
		return false
	}

	m.state = Recording
	m.ring.Truncate(m.cursor + 1)
	evicted := m.ring.Push(snapshot)
	m.cursor = m.ring.Len() - 1
	entries, cursor, capacity := m.ring.Len(), m.cursor, m.ring.Cap()
	m.mu.Unlock()

	// Recording holds until hooks and the saver return, so a Record or
	// Undo issued from inside them is ignored.
	defer func() {
		m.mu.Lock()
		m.state = Idle
		m.mu.Unlock()
	}()

	hooks := observability.History()
	if evicted {
		hooks.OnEvict(capacity)
	}
	hooks.OnRecord(entries, cursor)
	m.save(snapshot)
	return true
}

// Undo steps back one entry and applies it. ok is false when there is
// nothing to undo or a replay is already in progress.
func (m *Manager) Undo(apply ApplyFunc) (snapshot string, ok bool, err error) {
	snapshot, ok, err = m.step(-1, apply)
	if ok && err == nil {
		observability.History().OnUndo(m.Cursor())
	}
	return snapshot, ok, err
}

// Redo steps forward one entry and applies it. ok is false when there is
// nothing to redo or a replay is already in progress.
func (m *Manager) Redo(apply ApplyFunc) (snapshot string, ok bool, err error) {
	snapshot, ok, err = m.step(1, apply)
	if ok && err == nil {
		observability.History().OnRedo(m.Cursor())
	}
	return snapshot, ok, err
}

func (m *Manager) step(delta int, apply ApplyFunc) (string, bool, error) {
	m.mu.Lock()
	prev, target := m.cursor, m.cursor+delta
	if m.state != Idle || prev < 0 || target < 0 || target >= m.ring.Len() {
		m.mu.Unlock()
		return "", false, nil
	}
	m.cursor = target
	m.state = Applying
	snapshot := m.ring.At(target)
	m.mu.Unlock()

	applied := false
	defer func() {
		m.mu.Lock()
		m.state = Idle
		if !applied {
			m.cursor = prev
		}
		m.mu.Unlock()
	}()

	if apply != nil {
		if err := apply(snapshot); err != nil {
			if !errors.Is(err, errors.ErrCodeCorruptSnapshot) {
				err = errors.Wrap(errors.ErrCodeCorruptSnapshot, err, "apply snapshot %d", target)
			}
			return "", true, err
		}
	}
	applied = true
	m.save(snapshot)
	return snapshot, true, nil
}

func (m *Manager) save(snapshot string) {
	if m.saver != nil {
		m.saver.Save(snapshot)
	}
}

// CanUndo reports whether Undo would move the cursor.
func (m *Manager) CanUndo() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.cursor > 0
}

// CanRedo reports whether Redo would move the cursor.
func (m *Manager) CanRedo() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.cursor >= 0 && m.cursor < m.ring.Len()-1
}

// Len returns the number of retained snapshots.
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.ring.Len()
}

// Cap returns the maximum number of retained snapshots.
func (m *Manager) Cap() int {
	return m.ring.Cap()
}

// Cursor returns the index of the live snapshot, or -1 before seeding.
func (m *Manager) Cursor() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.cursor
}

// Current returns the live snapshot.
func (m *Manager) Current() (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.cursor < 0 {
		return "", false
	}
	return m.ring.At(m.cursor), true
}

// Entries returns all retained snapshots, oldest first.
func (m *Manager) Entries() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.ring.Slice()
}

// State returns the current activity.
func (m *Manager) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Replaying reports whether an undo/redo snapshot is being applied.
func (m *Manager) Replaying() bool {
	return m.State() == Applying
}

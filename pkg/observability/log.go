package observability

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
)

// LogHooks writes every event to a logger at debug level, and recovery
// failures at warn level.
type LogHooks struct {
	Logger *log.Logger
}

// NewLogHooks returns hooks that log to l, or to log.Default() when l is nil.
func NewLogHooks(l *log.Logger) *LogHooks {
	if l == nil {
		l = log.Default()
	}
	return &LogHooks{Logger: l}
}

func (h *LogHooks) OnRecord(entries, cursor int) {
	h.Logger.Debug("recorded snapshot", "entries", entries, "cursor", cursor)
}

func (h *LogHooks) OnEvict(capacity int) {
	h.Logger.Debug("evicted oldest snapshot", "capacity", capacity)
}

func (h *LogHooks) OnUndo(cursor int) {
	h.Logger.Debug("undo", "cursor", cursor)
}

func (h *LogHooks) OnRedo(cursor int) {
	h.Logger.Debug("redo", "cursor", cursor)
}

func (h *LogHooks) OnSave(_ context.Context, session string, size int, d time.Duration) {
	h.Logger.Debug("saved recovery snapshot", "session", session, "bytes", size, "duration", d)
}

func (h *LogHooks) OnSaveError(_ context.Context, session string, err error) {
	h.Logger.Warn("recovery snapshot not saved", "session", session, "err", err)
}

func (h *LogHooks) OnRestore(_ context.Context, session string, size int) {
	h.Logger.Info("restored session", "session", session, "bytes", size)
}

var (
	_ HistoryHooks  = (*LogHooks)(nil)
	_ RecoveryHooks = (*LogHooks)(nil)
)

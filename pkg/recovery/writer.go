package recovery

import (
	"context"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/signcanvas/pkg/errors"
	"github.com/matzehuels/signcanvas/pkg/observability"
)

// DefaultWriteTimeout bounds a single background write.
const DefaultWriteTimeout = 5 * time.Second

// WriterOptions configures a Writer.
type WriterOptions struct {
	TTL     time.Duration // entry expiry; DefaultTTL when zero
	Timeout time.Duration // per-write timeout; DefaultWriteTimeout when zero
	Logger  *log.Logger   // log.Default() when nil
}

// Writer persists the newest snapshot of one session in the background.
//
// Save never blocks on the store: it replaces any pending snapshot and
// wakes the worker. Only the latest state matters for recovery, so
// intermediate snapshots may be skipped.
type Writer struct {
	store   Store
	session string
	key     string
	opts    WriterOptions

	mu      sync.Mutex
	cond    *sync.Cond
	latest  string
	pending bool
	busy    bool
	closed  bool

	wake chan struct{}
	quit chan struct{}
	done chan struct{}
}

// NewWriter starts a writer for session. Call Close to stop it.
func NewWriter(store Store, session string, opts WriterOptions) *Writer {
	if opts.TTL == 0 {
		opts.TTL = DefaultTTL
	}
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultWriteTimeout
	}
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	w := &Writer{
		store:   store,
		session: session,
		key:     Key(session),
		opts:    opts,
		wake:    make(chan struct{}, 1),
		quit:    make(chan struct{}),
		done:    make(chan struct{}),
	}
	w.cond = sync.NewCond(&w.mu)
	go w.run()
	return w
}

// Save queues snapshot for writing. It implements history.Saver.
func (w *Writer) Save(snapshot string) {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return
	}
	w.latest = snapshot
	w.pending = true
	w.mu.Unlock()

	select {
	case w.wake <- struct{}{}:
	default:
	}
}

// Flush blocks until every queued snapshot has been written or dropped.
func (w *Writer) Flush() {
	w.mu.Lock()
	for w.pending || w.busy {
		w.cond.Wait()
	}
	w.mu.Unlock()
}

// Close writes any pending snapshot and stops the worker.
func (w *Writer) Close() {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		<-w.done
		return
	}
	w.closed = true
	w.mu.Unlock()

	close(w.quit)
	<-w.done
}

func (w *Writer) run() {
	defer close(w.done)
	for {
		select {
		case <-w.wake:
			w.drain()
		case <-w.quit:
			w.drain()
			return
		}
	}
}

func (w *Writer) drain() {
	for {
		w.mu.Lock()
		if !w.pending {
			w.busy = false
			w.cond.Broadcast()
			w.mu.Unlock()
			return
		}
		snapshot := w.latest
		w.pending = false
		w.busy = true
		w.mu.Unlock()

		w.write(snapshot)
	}
}

func (w *Writer) write(snapshot string) {
	ctx, cancel := context.WithTimeout(context.Background(), w.opts.Timeout)
	defer cancel()

	start := time.Now()
	hooks := observability.Recovery()
	if err := w.store.Set(ctx, w.key, []byte(snapshot), w.opts.TTL); err != nil {
		err = errors.Wrap(errors.ErrCodeRecoveryStore, err, "save session %s", w.session)
		w.opts.Logger.Warn("recovery write failed", "session", w.session, "err", err)
		hooks.OnSaveError(ctx, w.session, err)
		return
	}
	hooks.OnSave(ctx, w.session, len(snapshot), time.Since(start))
}

// Load returns the stored snapshot for session.
func Load(ctx context.Context, store Store, session string) (string, bool, error) {
	data, hit, err := store.Get(ctx, Key(session))
	if err != nil {
		return "", false, errors.Wrap(errors.ErrCodeRecoveryStore, err, "load session %s", session)
	}
	if !hit {
		return "", false, nil
	}
	observability.Recovery().OnRestore(ctx, session, len(data))
	return string(data), true, nil
}

// Discard removes the stored snapshot for session.
func Discard(ctx context.Context, store Store, session string) error {
	if err := store.Delete(ctx, Key(session)); err != nil {
		return errors.Wrap(errors.ErrCodeRecoveryStore, err, "discard session %s", session)
	}
	return nil
}

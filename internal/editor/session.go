// internal/editor/session.go
//
// Inline-edit save pipeline.
//
// Context
// -------
// Editable page controls fire field edits at arbitrary rates: a single
// blur event, or a burst of display-order updates when a list is
// reordered.  The session commits them with minimal latency for the
// isolated case and one round trip per burst for the rest.  Per queue
// the states are:
//
//   Idle            – queue empty, timer disarmed, nothing in flight.
//   Enqueued-Single – one isolated edit; flushed immediately, the caller
//                     awaits the write (no artificial delay).
//   Enqueued-Batch  – edits accumulating behind an armed debounce timer.
//                     Arrivals merge by key (last write wins) and never
//                     reset the timer, so latency stays bounded.
//   Flushing        – the queue has been swapped out whole; entries are
//                     written sequentially, failures collected per field.
//
// The swap is the crux: the flush copies out and clears the queue under
// the lock before any I/O, so an edit landing mid-flush can never race
// the drain.  It simply starts the next cycle.
//
// Ordering
// --------
// Within one key, merge-then-flush makes the newest value win.  Across
// keys there is no guarantee, and callers must not assume two fields
// commit atomically together.
//
// Notes
// -----
// • The debounce timer is an owned resource with explicit arm/disarm;
//   Close disarms it and flushes what remains.
// • Oxford commas, two spaces after periods.

package editor

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/audreylyn/Golden-Crumb-sub001/internal/metrics"
	"github.com/audreylyn/Golden-Crumb-sub001/internal/storage"
)

// DefaultWindow is the debounce delay for batch flushes.
const DefaultWindow = 100 * time.Millisecond

// Key identifies one editable field.  Record may be empty, which means
// "the single row belonging to the bound site" (update-by-parent).
type Key struct {
	Table  string
	Field  string
	Record string
}

type pendingEdit struct {
	key   Key
	value any
}

// flushCycle lets every caller merged into one batch await the same
// result.  done is closed exactly once, after err is set.
type flushCycle struct {
	done chan struct{}
	err  error
}

// Session is the per-tenant editing pipeline.  One instance serves one
// editing session; the Manager hands them out per site.
type Session struct {
	store  storage.Store
	siteID uint64
	window time.Duration

	editing atomic.Bool
	unsaved atomic.Bool // coarse acknowledgment flag, not per-field

	mu       sync.Mutex
	queue    map[Key]int // key → index into order
	order    []pendingEdit
	timer    *time.Timer
	cycle    *flushCycle
	flushing bool
	closed   bool
}

// NewSession binds a pipeline to one site.  window <= 0 selects
// DefaultWindow.
func NewSession(store storage.Store, siteID uint64, window time.Duration) *Session {
	if window <= 0 {
		window = DefaultWindow
	}
	return &Session{
		store:  store,
		siteID: siteID,
		window: window,
		queue:  make(map[Key]int),
	}
}

// SetEditing flips the process-wide editing-mode flag for this session.
func (s *Session) SetEditing(on bool) { s.editing.Store(on) }

// Editing reports whether edit mode is active.
func (s *Session) Editing() bool { return s.editing.Load() }

// HasUnsaved reports whether any write succeeded since the last clear.
func (s *Session) HasUnsaved() bool { return s.unsaved.Load() }

// ClearUnsaved resets the acknowledgment flag (e.g., after publish).
func (s *Session) ClearUnsaved() { s.unsaved.Store(false) }

// Save enqueues one field edit and returns once the edit, and any edits
// merged ahead of it into the same flush, have been attempted.  The
// returned error is nil on full success, a *FlushError when any field in
// the batch failed, ErrNoTenant when the session is unbound, or ctx.Err()
// when the caller gave up waiting (the edit still flushes).
func (s *Session) Save(ctx context.Context, table, field string, value any, recordID string) error {
	if s == nil || s.siteID == 0 {
		return ErrNoTenant
	}
	k := Key{Table: table, Field: field, Record: recordID}

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return ErrSessionClosed
	}
	metrics.SaveEditsTotal.Inc()

	// Same key already queued: replace in place, last write wins.  The
	// edit keeps its original position and flush cycle.
	if idx, ok := s.queue[k]; ok {
		s.order[idx].value = value
		cycle := s.cycle
		s.mu.Unlock()
		return await(ctx, cycle)
	}

	// Fast path: an isolated edit while the pipeline is idle is written
	// immediately and awaited synchronously.
	if len(s.order) == 0 && !s.flushing && s.timer == nil {
		s.flushing = true
		s.mu.Unlock()

		err := s.commit(ctx, []pendingEdit{{key: k, value: value}})

		s.mu.Lock()
		s.flushing = false
		s.mu.Unlock()
		return err
	}

	// Batch path: append and arm the timer if nobody has.  Later
	// arrivals never reset it, which bounds worst-case latency to one
	// window.
	s.queue[k] = len(s.order)
	s.order = append(s.order, pendingEdit{key: k, value: value})
	metrics.SaveQueueDepth.Set(float64(len(s.order)))
	if s.timer == nil {
		s.cycle = &flushCycle{done: make(chan struct{})}
		s.timer = time.AfterFunc(s.window, s.flushBatch)
	}
	cycle := s.cycle
	s.mu.Unlock()
	return await(ctx, cycle)
}

// flushBatch runs on timer fire.  It takes exclusive ownership of the
// queue contents by swapping in an empty queue before any I/O.
func (s *Session) flushBatch() {
	s.mu.Lock()
	s.timer = nil
	batch := s.order
	cycle := s.cycle
	s.order = nil
	s.queue = make(map[Key]int)
	s.cycle = nil
	if len(batch) == 0 {
		// Close drained the queue between fire and lock.
		s.mu.Unlock()
		return
	}
	s.flushing = true
	metrics.SaveQueueDepth.Set(0)
	s.mu.Unlock()

	err := s.commit(context.Background(), batch)

	cycle.err = err
	close(cycle.done)

	s.mu.Lock()
	s.flushing = false
	s.mu.Unlock()
}

// commit writes one drained batch sequentially.  A failing field is
// recorded and its siblings continue; nothing is rolled back.
func (s *Session) commit(ctx context.Context, batch []pendingEdit) error {
	metrics.SaveFlushesTotal.Inc()
	var failures map[Key]error
	for _, e := range batch {
		fields := map[string]any{e.key.Field: e.value}
		var err error
		if e.key.Record != "" {
			err = s.store.UpdateByID(ctx, e.key.Table, e.key.Record, fields)
		} else {
			err = s.store.UpdateByParent(ctx, e.key.Table, s.siteID, fields)
		}
		if err != nil {
			if failures == nil {
				failures = make(map[Key]error)
			}
			failures[e.key] = err
			metrics.SaveFieldErrorsTotal.Inc()
			zap.S().Errorw("field write failed",
				"table", e.key.Table, "field", e.key.Field,
				"record", e.key.Record, "err", err)
			continue
		}
		s.unsaved.Store(true)
	}
	if failures != nil {
		return &FlushError{Failures: failures}
	}
	return nil
}

// Close disarms the timer and flushes whatever is still queued.  Further
// Save calls return ErrSessionClosed.
func (s *Session) Close(ctx context.Context) error {
	s.mu.Lock()
	s.closed = true
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	batch := s.order
	cycle := s.cycle
	s.order = nil
	s.queue = make(map[Key]int)
	s.cycle = nil
	s.mu.Unlock()

	if len(batch) == 0 {
		return nil
	}
	err := s.commit(ctx, batch)
	if cycle != nil {
		cycle.err = err
		close(cycle.done)
	}
	return err
}

func await(ctx context.Context, c *flushCycle) error {
	select {
	case <-c.done:
		return c.err
	case <-ctx.Done():
		return ctx.Err()
	}
}

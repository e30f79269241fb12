package workers

import (
	"context"
	"dm-lab/domain/document"
	"fmt"
	"log/slog"
	"sync/atomic"
)

// SnapshotLoader evaluates a query against the current state of a store.
type SnapshotLoader func(ctx context.Context) ([]document.Document, error)

// SnapshotWatcher re-evaluates a standing query each time it is notified
// and hands the full result to the subscriber.
// Notifications are coalesced: while a load is in flight, any number of
// writes collapse into a single follow-up evaluation.
type SnapshotWatcher struct {
	log        *slog.Logger
	load       SnapshotLoader
	onSnapshot document.SnapshotFunc
	dirty      chan struct{}
	stopped    atomic.Bool
}

// NewSnapshotWatcher returns a watcher already marked dirty, so the first Run
// delivers the initial snapshot.
func NewSnapshotWatcher(log *slog.Logger, load SnapshotLoader, onSnapshot document.SnapshotFunc) *SnapshotWatcher {
	w := &SnapshotWatcher{
		log:        log,
		load:       load,
		onSnapshot: onSnapshot,
		dirty:      make(chan struct{}, 1),
	}
	w.Notify()
	return w
}

// Notify marks the query as dirty. Never blocks.
func (w *SnapshotWatcher) Notify() {
	select {
	case w.dirty <- struct{}{}:
	default:
	}
}

// Stop prevents any further delivery, including one already loading.
func (w *SnapshotWatcher) Stop() {
	w.stopped.Store(true)
}

func (w *SnapshotWatcher) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-w.dirty:
			docs, err := w.load(ctx)
			if err != nil {
				if ctx.Err() != nil {
					return nil
				}
				// Keep the pending evaluation for the restarted run
				w.Notify()
				return fmt.Errorf("snapshot load: %w", err)
			}
			if w.stopped.Load() || ctx.Err() != nil {
				return nil
			}
			w.log.Debug("Delivering snapshot", "documents", len(docs))
			w.deliver(docs)
		}
	}
}

// deliver re-arms the watcher when the subscriber panics, so the restarted
// run hands out the snapshot the crash swallowed.
func (w *SnapshotWatcher) deliver(docs []document.Document) {
	defer func() {
		if r := recover(); r != nil {
			w.Notify()
			panic(r)
		}
	}()
	w.onSnapshot(docs)
}

package workers

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/dgraph-io/badger/v4"
)

// ValueLogGCWorker periodically reclaims space in the badger value log.
// Badger never does it on its own.
type ValueLogGCWorker struct {
	log          *slog.Logger
	db           *badger.DB
	interval     time.Duration
	discardRatio float64
}

func NewValueLogGCWorker(log *slog.Logger, db *badger.DB, interval time.Duration, discardRatio float64) *ValueLogGCWorker {
	return &ValueLogGCWorker{log: log, db: db, interval: interval, discardRatio: discardRatio}
}

func (w ValueLogGCWorker) Run(ctx context.Context) error {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			w.collect()
		}
	}
}

// collect rewrites value log files until badger reports nothing left to do.
func (w ValueLogGCWorker) collect() {
	rewritten := 0
	for {
		err := w.db.RunValueLogGC(w.discardRatio)
		if err == nil {
			rewritten++
			continue
		}
		switch {
		case errors.Is(err, badger.ErrNoRewrite), errors.Is(err, badger.ErrRejected):
		case errors.Is(err, badger.ErrGCInMemoryMode):
			w.log.Debug("Value log GC skipped, in-memory database")
		default:
			w.log.Warn("Value log GC failed", "error", err)
		}
		if rewritten > 0 {
			w.log.Debug("Value log GC done", "rewritten", rewritten)
		}
		return
	}
}

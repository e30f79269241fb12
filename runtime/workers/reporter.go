package workers

import (
	"context"
	"log/slog"
	"time"
)

// StatsProvider returns a point-in-time sample of a component's counters.
type StatsProvider func() map[string]any

// ReporterWorker logs the samples of its providers at a fixed interval,
// and once more when it stops.
type ReporterWorker struct {
	log       *slog.Logger
	interval  time.Duration
	providers map[string]StatsProvider
}

func NewReporterWorker(log *slog.Logger, interval time.Duration, providers map[string]StatsProvider) *ReporterWorker {
	return &ReporterWorker{log: log, interval: interval, providers: providers}
}

func (w *ReporterWorker) Run(ctx context.Context) error {
	startTime := time.Now()
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.report(startTime)
			return nil
		case <-ticker.C:
			w.report(startTime)
		}
	}
}

func (w *ReporterWorker) report(startTime time.Time) {
	uptime := time.Since(startTime).Round(time.Second).String()
	for name, provide := range w.providers {
		attrs := []any{"component", name, "uptime", uptime}
		for k, v := range provide() {
			attrs = append(attrs, k, v)
		}
		w.log.Info("Stats", attrs...)
	}
}

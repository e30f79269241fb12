package workers

import (
	"bytes"
	"context"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestReporterWorker_SamplesUntilStopped(t *testing.T) {
	req := require.New(t)
	var buf bytes.Buffer
	log := slog.New(slog.NewTextHandler(&buf, nil))

	var samples atomic.Int32
	reporter := NewReporterWorker(log, 10*time.Millisecond, map[string]StatsProvider{
		"documents": func() map[string]any {
			samples.Add(1)
			return map[string]any{"live_queries": 3}
		},
	})

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Millisecond)
	defer cancel()

	// When the reporter runs until its context ends
	req.NoError(reporter.Run(ctx))

	// Then it sampled on every tick plus once on the way out
	req.GreaterOrEqual(samples.Load(), int32(2))
	req.Contains(buf.String(), "component=documents")
	req.Contains(buf.String(), "live_queries=3")
}

func TestProcessStats_SamplesCurrentProcess(t *testing.T) {
	req := require.New(t)

	provide, err := NewProcessStats(slog.Default())
	req.NoError(err)

	stats := provide()

	req.Contains(stats, "goroutines")
	req.Positive(stats["goroutines"])
	if rss, ok := stats["rss_bytes"]; ok {
		req.NotZero(rss)
	}
}

package workers

import (
	"log/slog"
	"os"
	goruntime "runtime"

	"github.com/shirou/gopsutil/process"
)

// NewProcessStats samples memory, CPU and goroutines of the running process.
// A metric the OS refuses to report is left out of the sample.
func NewProcessStats(log *slog.Logger) (StatsProvider, error) {
	p, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		return nil, err
	}
	return func() map[string]any {
		stats := map[string]any{"goroutines": goruntime.NumGoroutine()}
		if mem, err := p.MemoryInfo(); err != nil {
			log.Debug("Failed to read process memory", "error", err)
		} else {
			stats["rss_bytes"] = mem.RSS
		}
		if cpu, err := p.CPUPercent(); err != nil {
			log.Debug("Failed to read process CPU", "error", err)
		} else {
			stats["cpu_percent"] = cpu
		}
		return stats
	}, nil
}

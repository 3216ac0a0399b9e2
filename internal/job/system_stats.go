package job

import (
	"context"
	"log/slog"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/load"
	"github.com/shirou/gopsutil/v3/mem"
)

// SystemStats logs a periodic snapshot of host load alongside the pool's
// own activity, so saturation warnings can be read against machine state.
type SystemStats struct {
	Logger *slog.Logger
	// ActiveConnections reports the pool's current connection count.
	ActiveConnections func() int64
}

func (j *SystemStats) Name() string { return "system_stats" }

func (j *SystemStats) Run(_ context.Context) error {
	vm, err := mem.VirtualMemory()
	if err != nil {
		return err
	}
	avg, err := load.Avg()
	if err != nil {
		return err
	}
	pct, err := cpu.Percent(0, false)
	if err != nil {
		return err
	}
	cpuPct := 0.0
	if len(pct) > 0 {
		cpuPct = pct[0]
	}
	j.Logger.Info("system stats",
		"active_connections", j.ActiveConnections(),
		"cpu_percent", cpuPct,
		"mem_used_percent", vm.UsedPercent,
		"load1", avg.Load1,
	)
	return nil
}

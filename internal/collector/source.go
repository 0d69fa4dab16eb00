package collector

import (
	"context"
	"time"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/disk"
	"github.com/shirou/gopsutil/v3/host"
	"github.com/shirou/gopsutil/v3/mem"
	gopsnet "github.com/shirou/gopsutil/v3/net"
)

// Source is the raw system data the collector maps into a sample.
type Source interface {
	HostInfo(ctx context.Context) (*host.InfoStat, error)
	CPUPercent(ctx context.Context) ([]float64, error)
	CPUCounts(ctx context.Context) (int, error)
	CPUInfo(ctx context.Context) ([]cpu.InfoStat, error)
	Temperatures(ctx context.Context) ([]host.TemperatureStat, error)
	VirtualMemory(ctx context.Context) (*mem.VirtualMemoryStat, error)
	SwapMemory(ctx context.Context) (*mem.SwapMemoryStat, error)
	Partitions(ctx context.Context) ([]disk.PartitionStat, error)
	Usage(ctx context.Context, path string) (*disk.UsageStat, error)
	Interfaces(ctx context.Context) (gopsnet.InterfaceStatList, error)
	IOCounters(ctx context.Context) ([]gopsnet.IOCountersStat, error)
}

// SystemSource reads the local machine through gopsutil.
type SystemSource struct {
	// CPUWindow is how long CPU usage is sampled over. Zero compares against
	// the previous call, which reads 0 on the first sample.
	CPUWindow time.Duration
}

func (s SystemSource) HostInfo(ctx context.Context) (*host.InfoStat, error) {
	return host.InfoWithContext(ctx)
}

func (s SystemSource) CPUPercent(ctx context.Context) ([]float64, error) {
	return cpu.PercentWithContext(ctx, s.CPUWindow, false)
}

func (s SystemSource) CPUCounts(ctx context.Context) (int, error) {
	return cpu.CountsWithContext(ctx, true)
}

func (s SystemSource) CPUInfo(ctx context.Context) ([]cpu.InfoStat, error) {
	return cpu.InfoWithContext(ctx)
}

func (s SystemSource) Temperatures(ctx context.Context) ([]host.TemperatureStat, error) {
	return host.SensorsTemperaturesWithContext(ctx)
}

func (s SystemSource) VirtualMemory(ctx context.Context) (*mem.VirtualMemoryStat, error) {
	return mem.VirtualMemoryWithContext(ctx)
}

func (s SystemSource) SwapMemory(ctx context.Context) (*mem.SwapMemoryStat, error) {
	return mem.SwapMemoryWithContext(ctx)
}

func (s SystemSource) Partitions(ctx context.Context) ([]disk.PartitionStat, error) {
	return disk.PartitionsWithContext(ctx, false)
}

func (s SystemSource) Usage(ctx context.Context, path string) (*disk.UsageStat, error) {
	return disk.UsageWithContext(ctx, path)
}

func (s SystemSource) Interfaces(ctx context.Context) (gopsnet.InterfaceStatList, error) {
	return gopsnet.InterfacesWithContext(ctx)
}

func (s SystemSource) IOCounters(ctx context.Context) ([]gopsnet.IOCountersStat, error) {
	return gopsnet.IOCountersWithContext(ctx, true)
}

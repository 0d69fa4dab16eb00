package collector

import (
	"context"
	"strings"
	"time"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/disk"
	"github.com/shirou/gopsutil/v3/host"
	"github.com/shirou/gopsutil/v3/mem"
	gopsnet "github.com/shirou/gopsutil/v3/net"

	"github.com/rileyhilliard/hwmon/internal/errors"
	"github.com/rileyhilliard/hwmon/internal/logger"
	"github.com/rileyhilliard/hwmon/internal/telemetry"
)

// Collector builds telemetry samples from a Source. A section that fails to
// read is logged and left nil; the rest of the sample is still returned.
type Collector struct {
	source   Source
	hostname string
	log      logger.Logger
	now      func() time.Time
}

// New creates a collector. An empty hostname uses the one the system reports.
func New(source Source, hostname string, log logger.Logger) *Collector {
	if source == nil {
		source = SystemSource{CPUWindow: time.Second}
	}
	if log == nil {
		log = logger.NewEnvLogger("[collect]")
	}
	return &Collector{source: source, hostname: hostname, log: log, now: time.Now}
}

// Collect reads one sample. It fails only when no hostname can be determined.
func (c *Collector) Collect(ctx context.Context) (telemetry.Sample, error) {
	info, err := c.source.HostInfo(ctx)
	if err != nil {
		c.log.Warn("host info: %v", err)
		info = nil
	}

	hostname := c.hostname
	if hostname == "" && info != nil {
		hostname = info.Hostname
	}
	if hostname == "" {
		return telemetry.Sample{}, errors.WrapWithCode(err, errors.ErrCollect,
			"Couldn't determine this machine's hostname",
			"Set one explicitly with --hostname.")
	}

	sample := telemetry.Sample{
		Hostname:  hostname,
		Timestamp: c.now().UTC(),
		OS:        osInfo(info),
	}
	sample.CPU = c.cpu(ctx)
	sample.Memory = c.memory(ctx)
	sample.Disk = c.disk(ctx)
	sample.Network = c.network(ctx)
	return sample, nil
}

func (c *Collector) cpu(ctx context.Context) *telemetry.CPUInfo {
	percent, err := c.source.CPUPercent(ctx)
	if err != nil {
		c.log.Warn("cpu usage: %v", err)
		return nil
	}
	if len(percent) == 0 {
		return nil
	}

	out := &telemetry.CPUInfo{Usage: percent[0]}
	if n, err := c.source.CPUCounts(ctx); err == nil {
		out.Cores = n
	}
	if info, err := c.source.CPUInfo(ctx); err == nil {
		out.ModelName, out.Frequency = cpuModel(info)
	}
	// Sensors often return partial results alongside an error.
	temps, err := c.source.Temperatures(ctx)
	if len(temps) > 0 {
		out.Temperature = cpuTemperature(temps)
	} else if err != nil {
		c.log.Debug("temperatures: %v", err)
	}
	return out
}

func (c *Collector) memory(ctx context.Context) *telemetry.MemoryInfo {
	vm, err := c.source.VirtualMemory(ctx)
	if err != nil {
		c.log.Warn("memory: %v", err)
		return nil
	}
	swap, err := c.source.SwapMemory(ctx)
	if err != nil {
		c.log.Debug("swap: %v", err)
		swap = nil
	}
	return memoryInfo(vm, swap)
}

func (c *Collector) disk(ctx context.Context) *telemetry.DiskInfo {
	parts, err := c.source.Partitions(ctx)
	if err != nil {
		c.log.Warn("disk partitions: %v", err)
		return nil
	}

	out := &telemetry.DiskInfo{Partitions: []telemetry.PartitionUsage{}}
	for _, p := range parts {
		usage, err := c.source.Usage(ctx, p.Mountpoint)
		if err != nil {
			c.log.Debug("disk usage %s: %v", p.Mountpoint, err)
			continue
		}
		out.Partitions = append(out.Partitions, partitionUsage(p, usage))
	}
	return out
}

func (c *Collector) network(ctx context.Context) *telemetry.NetworkInfo {
	ifaces, err := c.source.Interfaces(ctx)
	if err != nil {
		c.log.Warn("network interfaces: %v", err)
		return nil
	}
	counters, err := c.source.IOCounters(ctx)
	if err != nil {
		c.log.Debug("network counters: %v", err)
		counters = nil
	}
	return networkInfo(ifaces, counters)
}

func osInfo(info *host.InfoStat) *telemetry.OSInfo {
	if info == nil {
		return nil
	}
	return &telemetry.OSInfo{
		Name:         info.OS,
		Version:      info.PlatformVersion,
		Architecture: info.KernelArch,
		Platform:     info.Platform,
	}
}

// cpuModel returns the first model name and its clock in MHz.
func cpuModel(info []cpu.InfoStat) (string, float64) {
	if len(info) == 0 {
		return "", 0
	}
	return strings.TrimSpace(info[0].ModelName), info[0].Mhz
}

// cpuTemperature prefers package/core sensors and falls back to the hottest
// reading overall.
func cpuTemperature(temps []host.TemperatureStat) float64 {
	var hottest, cpuHottest float64
	for _, t := range temps {
		if t.Temperature > hottest {
			hottest = t.Temperature
		}
		key := strings.ToLower(t.SensorKey)
		if strings.Contains(key, "core") || strings.Contains(key, "package") || strings.Contains(key, "cpu") {
			if t.Temperature > cpuHottest {
				cpuHottest = t.Temperature
			}
		}
	}
	if cpuHottest > 0 {
		return cpuHottest
	}
	return hottest
}

func memoryInfo(vm *mem.VirtualMemoryStat, swap *mem.SwapMemoryStat) *telemetry.MemoryInfo {
	out := &telemetry.MemoryInfo{
		Total: vm.Total,
		Used:  vm.Used,
		Free:  vm.Free,
		Usage: vm.UsedPercent,
	}
	if swap != nil {
		out.SwapTotal = swap.Total
		out.SwapUsed = swap.Used
		out.SwapFree = swap.Free
	}
	return out
}

func partitionUsage(p disk.PartitionStat, u *disk.UsageStat) telemetry.PartitionUsage {
	return telemetry.PartitionUsage{
		Device:     p.Device,
		MountPoint: p.Mountpoint,
		Total:      u.Total,
		Used:       u.Used,
		Free:       u.Free,
		Usage:      u.UsedPercent,
	}
}

// networkInfo joins interfaces with their counters, skipping loopback.
func networkInfo(ifaces gopsnet.InterfaceStatList, counters []gopsnet.IOCountersStat) *telemetry.NetworkInfo {
	byName := make(map[string]gopsnet.IOCountersStat, len(counters))
	for _, c := range counters {
		byName[c.Name] = c
	}

	out := &telemetry.NetworkInfo{Interfaces: []telemetry.InterfaceStats{}}
	for _, iface := range ifaces {
		if isLoopback(iface) {
			continue
		}
		stats := telemetry.InterfaceStats{Name: iface.Name, Addresses: []string{}}
		for _, addr := range iface.Addrs {
			stats.Addresses = append(stats.Addresses, addr.Addr)
		}
		if c, ok := byName[iface.Name]; ok {
			stats.BytesSent = c.BytesSent
			stats.BytesRecv = c.BytesRecv
			stats.PacketsSent = c.PacketsSent
			stats.PacketsRecv = c.PacketsRecv
		}
		out.Interfaces = append(out.Interfaces, stats)
	}
	return out
}

func isLoopback(iface gopsnet.InterfaceStat) bool {
	if iface.Name == "lo" || iface.Name == "lo0" || iface.Name == "loopback" {
		return true
	}
	for _, f := range iface.Flags {
		if f == "loopback" {
			return true
		}
	}
	return false
}

package telemetry

import (
	"sort"
	"time"
)

// Summary is the fleet-wide metric overview shown above the host list.
type Summary struct {
	TotalHosts int
	AvgCPU     float64
	AvgMemory  float64
	AvgDisk    float64
}

// Summarize averages usage across the latest sample of every known host.
func Summarize(latest map[string]Sample) Summary {
	sum := Summary{TotalHosts: len(latest)}
	if sum.TotalHosts == 0 {
		return sum
	}
	for _, s := range latest {
		sum.AvgCPU += s.CPUUsage()
		sum.AvgMemory += s.MemoryUsage()
		sum.AvgDisk += s.DiskUsage()
	}
	n := float64(sum.TotalHosts)
	sum.AvgCPU /= n
	sum.AvgMemory /= n
	sum.AvgDisk /= n
	return sum
}

// HostEntry is one row of the host list.
type HostEntry struct {
	Hostname string
	Latest   Sample
	Online   bool
}

// HostEntries classifies each host against now and returns them sorted by hostname.
func HostEntries(latest map[string]Sample, now time.Time, threshold time.Duration) []HostEntry {
	entries := make([]HostEntry, 0, len(latest))
	for hostname, s := range latest {
		entries = append(entries, HostEntry{
			Hostname: hostname,
			Latest:   s,
			Online:   Classify(s.Timestamp, now, threshold),
		})
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Hostname < entries[j].Hostname
	})
	return entries
}

// AggregatePoint is one fleet-average point on the dashboard chart.
type AggregatePoint struct {
	At     time.Time
	CPU    float64
	Memory float64
}

// Aggregate averages CPU and memory usage across hosts at the given instant.
// It returns false when there are no hosts to average.
func Aggregate(latest map[string]Sample, at time.Time) (AggregatePoint, bool) {
	if len(latest) == 0 {
		return AggregatePoint{}, false
	}
	sum := Summarize(latest)
	return AggregatePoint{At: at, CPU: sum.AvgCPU, Memory: sum.AvgMemory}, true
}

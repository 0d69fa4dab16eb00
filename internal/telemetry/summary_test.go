package telemetry

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleAt(host string, ts time.Time, cpu, mem float64, disks ...float64) Sample {
	s := Sample{
		Hostname:  host,
		Timestamp: ts,
		CPU:       &CPUInfo{Usage: cpu},
		Memory:    &MemoryInfo{Usage: mem},
	}
	if len(disks) > 0 {
		s.Disk = &DiskInfo{}
		for _, d := range disks {
			s.Disk.Partitions = append(s.Disk.Partitions, PartitionUsage{Usage: d})
		}
	}
	return s
}

func TestSummarize(t *testing.T) {
	now := time.Now()

	t.Run("empty fleet", func(t *testing.T) {
		assert.Equal(t, Summary{}, Summarize(nil))
	})

	t.Run("single host", func(t *testing.T) {
		sum := Summarize(map[string]Sample{"hostA": sampleAt("hostA", now, 10, 20)})
		assert.Equal(t, 1, sum.TotalHosts)
		assert.InDelta(t, 10.0, sum.AvgCPU, 0.0001)
		assert.InDelta(t, 20.0, sum.AvgMemory, 0.0001)
		assert.Zero(t, sum.AvgDisk)
	})

	t.Run("disk averaged per host then across hosts", func(t *testing.T) {
		sum := Summarize(map[string]Sample{
			"a": sampleAt("a", now, 10, 40, 20, 40),
			"b": sampleAt("b", now, 30, 60, 90),
			"c": {Hostname: "c"},
		})
		assert.Equal(t, 3, sum.TotalHosts)
		assert.InDelta(t, 40.0/3, sum.AvgCPU, 0.0001)
		assert.InDelta(t, 100.0/3, sum.AvgMemory, 0.0001)
		assert.InDelta(t, 120.0/3, sum.AvgDisk, 0.0001)
	})
}

func TestHostEntries(t *testing.T) {
	now := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	latest := map[string]Sample{
		"zeta":  sampleAt("zeta", now.Add(-time.Minute), 1, 1),
		"alpha": sampleAt("alpha", now.Add(-10*time.Minute), 2, 2),
		"mid":   sampleAt("mid", now, 3, 3),
	}

	entries := HostEntries(latest, now, StaleAfter)
	require.Len(t, entries, 3)

	assert.Equal(t, "alpha", entries[0].Hostname)
	assert.False(t, entries[0].Online)
	assert.Equal(t, "mid", entries[1].Hostname)
	assert.True(t, entries[1].Online)
	assert.Equal(t, "zeta", entries[2].Hostname)
	assert.True(t, entries[2].Online)
	assert.Equal(t, 1.0, entries[2].Latest.CPUUsage())
}

func TestAggregate(t *testing.T) {
	at := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)

	_, ok := Aggregate(map[string]Sample{}, at)
	assert.False(t, ok)

	p, ok := Aggregate(map[string]Sample{
		"a": sampleAt("a", at, 10, 30),
		"b": sampleAt("b", at, 20, 50),
	}, at)
	require.True(t, ok)
	assert.Equal(t, at, p.At)
	assert.InDelta(t, 15.0, p.CPU, 0.0001)
	assert.InDelta(t, 40.0, p.Memory, 0.0001)
}

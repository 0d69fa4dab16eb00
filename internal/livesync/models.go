package livesync

import (
	"time"

	"github.com/rileyhilliard/hwmon/internal/chart"
	"github.com/rileyhilliard/hwmon/internal/telemetry"
)

// Dataset styles shared by both views.
var (
	cpuDataset = chart.Dataset{
		Label:           "CPU Usage (%)",
		BorderColor:     "rgb(75, 192, 192)",
		BackgroundColor: "rgba(75, 192, 192, 0.2)",
	}
	memoryDataset = chart.Dataset{
		Label:           "Memory Usage (%)",
		BorderColor:     "rgb(255, 99, 132)",
		BackgroundColor: "rgba(255, 99, 132, 0.2)",
	}
	diskDataset = chart.Dataset{
		Label:           "Disk Usage (%)",
		BorderColor:     "rgb(255, 205, 86)",
		BackgroundColor: "rgba(255, 205, 86, 0.2)",
	}
)

// FillAggregateModel rewrites m from fleet-average points.
func FillAggregateModel(m *chart.Model, points []telemetry.AggregatePoint, layout string, loc *time.Location) {
	labels := make([]string, len(points))
	cpu := make([]float64, len(points))
	mem := make([]float64, len(points))
	for i, p := range points {
		labels[i] = p.At.In(loc).Format(layout)
		cpu[i] = p.CPU
		mem[i] = p.Memory
	}

	m.Labels = labels
	m.Datasets = []chart.Dataset{withData(cpuDataset, cpu), withData(memoryDataset, mem)}
}

// FillDetailModel rewrites m from one host's samples.
func FillDetailModel(m *chart.Model, samples []telemetry.Sample, layout string, loc *time.Location) {
	labels := make([]string, len(samples))
	cpu := make([]float64, len(samples))
	mem := make([]float64, len(samples))
	disk := make([]float64, len(samples))
	for i, s := range samples {
		labels[i] = s.Timestamp.In(loc).Format(layout)
		cpu[i] = s.CPUUsage()
		mem[i] = s.MemoryUsage()
		disk[i] = s.DiskUsage()
	}

	m.Labels = labels
	m.Datasets = []chart.Dataset{
		withData(cpuDataset, cpu),
		withData(memoryDataset, mem),
		withData(diskDataset, disk),
	}
}

func withData(ds chart.Dataset, data []float64) chart.Dataset {
	ds.Data = data
	return ds
}

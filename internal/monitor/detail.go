package monitor

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/rileyhilliard/hwmon/internal/telemetry"
)

// renderDetailView renders the single-host view around the scrollable content.
func (m Model) renderDetailView() string {
	var b strings.Builder

	b.WriteString(m.renderHeader(m.route.Hostname))
	b.WriteString("\n")
	if line := m.renderFetchError(); line != "" {
		b.WriteString(line)
	}
	b.WriteString("\n")

	if m.viewportReady {
		b.WriteString(m.viewport.View())
	} else {
		b.WriteString(m.renderDetailContent())
	}
	b.WriteString("\n")

	b.WriteString(m.renderFooter())
	return b.String()
}

// renderDetailContent renders every section for the host.
func (m Model) renderDetailContent() string {
	width := m.contentWidth()

	if !m.hasDetail {
		return Section(m.route.Hostname, "", []string{
			LabelStyle.Render("Waiting for data from " + m.route.Hostname + "..."),
		}, width)
	}

	s := m.detail
	online := telemetry.IsOnline(s.Timestamp, m.now())

	sections := []string{
		Section("Status", "", []string{
			HostBadge(online) + MutedStyle.Render("  last seen "+s.Timestamp.In(m.loc).Format("2006-01-02 15:04:05")),
			kv("OS", osLine(s)),
		}, width),
		Section("CPU", fmt.Sprintf("%.1f%%", s.CPUUsage()), m.cpuLines(s, width-4), width),
		Section("Memory", fmt.Sprintf("%.1f%%", s.MemoryUsage()), m.memoryLines(s, width-4), width),
		Section("Disk", fmt.Sprintf("%.1f%%", s.DiskUsage()), partitionLines(s), width),
		Section("Network", fmt.Sprintf("%d interfaces", len(s.Interfaces())), interfaceLines(s), width),
		Section("History", "CPU / Memory / Disk", m.renderChartLines(width-4, detailChartRows), width),
	}

	return strings.Join(sections, "\n")
}

func (m Model) cpuLines(s telemetry.Sample, width int) []string {
	model, cores, freq := "unknown", 0, "unknown"
	if s.CPU != nil {
		if s.CPU.ModelName != "" {
			model = s.CPU.ModelName
		}
		cores = s.CPU.Cores
		if s.CPU.Frequency > 0 {
			freq = fmt.Sprintf("%.1f GHz", s.CPU.Frequency/1000)
		}
	}
	lines := []string{
		kv("Model", truncate(model, width-12)),
		kv("Cores", fmt.Sprintf("%d", cores)),
		kv("Frequency", freq),
		usageLine(s.CPUUsage(), width),
	}
	if s.CPU != nil && s.CPU.Temperature > 0 {
		lines = append(lines, kv("Temp", fmt.Sprintf("%.1f°C", s.CPU.Temperature)))
	}
	return lines
}

func (m Model) memoryLines(s telemetry.Sample, width int) []string {
	if s.Memory == nil {
		return []string{MutedStyle.Render("No memory data")}
	}
	mem := s.Memory
	return []string{
		kv("Used", fmt.Sprintf("%.1f GiB / %.1f GiB (%.1f GiB free)",
			telemetry.GiB(mem.Used), telemetry.GiB(mem.Total), telemetry.GiB(mem.Free))),
		kv("Swap", fmt.Sprintf("%.1f GiB / %.1f GiB",
			telemetry.GiB(mem.SwapUsed), telemetry.GiB(mem.SwapTotal))),
		usageLine(s.MemoryUsage(), width),
	}
}

func partitionLines(s telemetry.Sample) []string {
	parts := s.Partitions()
	if len(parts) == 0 {
		return []string{MutedStyle.Render("No partitions reported")}
	}
	lines := []string{
		LabelStyle.Render(fmt.Sprintf("%-16s %-12s %9s %9s %9s %7s", "Device", "Mount", "Total", "Used", "Free", "Usage")),
	}
	for _, p := range parts {
		row := fmt.Sprintf("%-16s %-12s %5.1f GiB %5.1f GiB %5.1f GiB ",
			truncate(p.Device, 16), truncate(p.MountPoint, 12),
			telemetry.GiB(p.Total), telemetry.GiB(p.Used), telemetry.GiB(p.Free))
		lines = append(lines, ValueStyle.Render(row)+MetricStyle(p.Usage).Render(fmt.Sprintf("%6.1f%%", p.Usage)))
	}
	return lines
}

func interfaceLines(s telemetry.Sample) []string {
	ifaces := s.Interfaces()
	if len(ifaces) == 0 {
		return []string{MutedStyle.Render("No interfaces reported")}
	}
	var lines []string
	for _, iface := range ifaces {
		lines = append(lines, HostNameStyle.Render(iface.Name))
		if len(iface.Addresses) > 0 {
			lines = append(lines, "  "+kv("Addresses", strings.Join(iface.Addresses, ", ")))
		}
		lines = append(lines,
			"  "+kv("Sent", fmt.Sprintf("%.2f MiB (%d packets)", telemetry.MiB(iface.BytesSent), iface.PacketsSent)),
			"  "+kv("Received", fmt.Sprintf("%.2f MiB (%d packets)", telemetry.MiB(iface.BytesRecv), iface.PacketsRecv)),
		)
	}
	return lines
}

func osLine(s telemetry.Sample) string {
	if s.OS == nil {
		return "unknown"
	}
	parts := []string{}
	for _, p := range []string{s.OS.Name, s.OS.Platform, s.OS.Version, s.OS.Architecture} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	if len(parts) == 0 {
		return "unknown"
	}
	return strings.Join(parts, " ")
}

func usageLine(percent float64, width int) string {
	value := fmt.Sprintf(" %.1f%%", percent)
	barWidth := max(width-12-lipgloss.Width(value), 1)
	return LabelStyle.Render(fmt.Sprintf("%-12s", "Usage")) + ProgressBar(barWidth, percent) + MetricStyle(percent).Render(value)
}

func kv(label, value string) string {
	return LabelStyle.Render(fmt.Sprintf("%-12s", label)) + ValueStyle.Render(value)
}

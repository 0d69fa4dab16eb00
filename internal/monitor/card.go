package monitor

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/rileyhilliard/hwmon/internal/telemetry"
)

// cardLabelWidth aligns the metric labels on a card.
const cardLabelWidth = 5

// renderCard renders a single host card.
func (m Model) renderCard(host telemetry.HostEntry, width int, selected bool) string {
	style := CardStyle.Width(width)
	if selected {
		style = CardSelectedStyle.Width(width)
	}

	// card padding
	innerWidth := width - 4
	s := host.Latest

	lines := []string{
		renderHostLine(host.Hostname, host.Online, innerWidth),
		renderCardDivider(innerWidth),
		renderMetricLine("CPU", s.CPUUsage(), innerWidth),
		renderMetricLine("Mem", s.MemoryUsage(), innerWidth),
		renderMetricLine("Disk", s.DiskUsage(), innerWidth),
		renderCardDivider(innerWidth),
	}

	osName := s.OSName()
	if osName == "" {
		osName = "unknown"
	}
	lines = append(lines,
		LabelStyle.Render("OS   ")+ValueStyle.Render(truncate(osName, innerWidth-5)),
		MutedStyle.Render("Last seen "+s.Timestamp.In(m.loc).Format("2006-01-02 15:04:05")),
	)

	return style.Render(strings.Join(lines, "\n"))
}

// renderHostLine puts the hostname on the left and the badge on the right.
func renderHostLine(hostname string, online bool, width int) string {
	badge := HostBadge(online)
	name := HostNameStyle.Render(truncate(hostname, width-lipgloss.Width(badge)-1))
	gap := max(width-lipgloss.Width(name)-lipgloss.Width(badge), 1)
	return name + strings.Repeat(" ", gap) + badge
}

// renderMetricLine renders "CPU  ▰▰▰▱▱▱  12.3%".
func renderMetricLine(label string, percent float64, width int) string {
	value := fmt.Sprintf("%5.1f%%", percent)
	barWidth := max(width-cardLabelWidth-len(value)-1, 1)
	return LabelStyle.Render(fmt.Sprintf("%-*s", cardLabelWidth, label)) +
		ProgressBar(barWidth, percent) + " " +
		MetricStyle(percent).Render(value)
}

// renderCardDivider creates a subtle thin divider line.
func renderCardDivider(width int) string {
	return lipgloss.NewStyle().Foreground(ColorBorder).Render(strings.Repeat("─", max(width, 0)))
}

// truncate shortens s to maxLen, adding an ellipsis if needed.
func truncate(s string, maxLen int) string {
	if maxLen <= 3 || len([]rune(s)) <= maxLen {
		return s
	}
	return string([]rune(s)[:maxLen-3]) + "..."
}

package monitor

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Dashboard color palette
const (
	ColorDarkBg    = lipgloss.Color("#0A0A0F")
	ColorSurfaceBg = lipgloss.Color("#12121A")
	ColorBorder    = lipgloss.Color("#2A2A4A")

	// Semantic colors for metrics
	ColorHealthy  = lipgloss.Color("#39FF14")
	ColorWarning  = lipgloss.Color("#FFAA00")
	ColorCritical = lipgloss.Color("#FF0055")

	ColorTextPrimary   = lipgloss.Color("#FFFFFF")
	ColorTextSecondary = lipgloss.Color("#B4B4D0")
	ColorTextMuted     = lipgloss.Color("#6B6B8D")

	ColorAccent    = lipgloss.Color("#FF2E97")
	ColorAccentDim = lipgloss.Color("#BF40FF")

	ColorValue = lipgloss.Color("#00FFFF")
)

// Thresholds for metric severity levels
const (
	WarningThreshold  = 70.0
	CriticalThreshold = 90.0
)

// Base styles for the dashboard
var (
	HeaderStyle = lipgloss.NewStyle().
			Foreground(ColorTextPrimary).
			Background(ColorSurfaceBg).
			Bold(true).
			Padding(0, 1)

	FooterStyle = lipgloss.NewStyle().
			Foreground(ColorTextMuted).
			Padding(0, 1)

	CardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder).
			Padding(0, 1).
			MarginRight(1).
			MarginBottom(1)

	CardSelectedStyle = CardStyle.
				BorderForeground(ColorAccent)

	HostNameStyle = lipgloss.NewStyle().
			Foreground(ColorTextPrimary).
			Bold(true)

	LabelStyle = lipgloss.NewStyle().
			Foreground(ColorTextSecondary)

	ValueStyle = lipgloss.NewStyle().
			Foreground(ColorTextPrimary)

	MutedStyle = lipgloss.NewStyle().
			Foreground(ColorTextMuted)

	// Badges for the push channel and host liveness
	OnlineStyle = lipgloss.NewStyle().
			Foreground(ColorHealthy).
			Bold(true)

	OfflineStyle = lipgloss.NewStyle().
			Foreground(ColorCritical).
			Bold(true)

	ErrorTextStyle = lipgloss.NewStyle().
			Foreground(ColorWarning)
)

// Status indicator characters
const (
	StatusOn  = "◉"
	StatusOff = "◌"
)

// ConnectionBadge renders the push channel indicator.
func ConnectionBadge(connected bool) string {
	if connected {
		return OnlineStyle.Render(StatusOn + " Connected")
	}
	return OfflineStyle.Render(StatusOff + " Disconnected")
}

// HostBadge renders the online/offline indicator for a host.
func HostBadge(online bool) string {
	if online {
		return OnlineStyle.Render("Online")
	}
	return OfflineStyle.Render("Offline")
}

// MetricColor returns the appropriate color for a percentage-based metric.
// Uses threshold-based coloring: green < 70%, yellow 70-90%, red > 90%.
func MetricColor(percent float64) lipgloss.Color {
	switch {
	case percent >= CriticalThreshold:
		return ColorCritical
	case percent >= WarningThreshold:
		return ColorWarning
	default:
		return ColorHealthy
	}
}

// MetricStyle returns a style with the appropriate foreground color for the metric.
func MetricStyle(percent float64) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(MetricColor(percent))
}

// ProgressBar renders a progress bar with the given width and percentage.
func ProgressBar(width int, percent float64) string {
	if width < 1 {
		width = 1
	}

	// Clamp percentage to 0-100
	if percent < 0 {
		percent = 0
	}
	if percent > 100 {
		percent = 100
	}

	filled := int(percent / 100.0 * float64(width))
	if filled > width {
		filled = width
	}

	bar := strings.Repeat("▰", filled) + strings.Repeat("▱", width-filled)
	return MetricStyle(percent).Render(bar)
}

// SectionHeader renders a section header with the title on the left and value on the right.
// Format: ╭─ Title ────────────────────────────────────── Value ╮
func SectionHeader(title, value string, width int) string {
	if width < 10 {
		width = 10
	}

	// Left: "╭─ " + title + " ", right: " " + value + " ╮"
	leftWidth := 3 + lipgloss.Width(title) + 1
	rightWidth := 1 + lipgloss.Width(value) + 2

	fillWidth := width - leftWidth - rightWidth
	if fillWidth < 1 {
		fillWidth = 1
	}
	middle := strings.Repeat("─", fillWidth)

	borderStyle := lipgloss.NewStyle().Foreground(ColorBorder)
	titleStyle := lipgloss.NewStyle().Foreground(ColorAccent).Bold(true)
	valueStyle := lipgloss.NewStyle().Foreground(ColorValue).Bold(true)

	return borderStyle.Render("╭─ ") +
		titleStyle.Render(title) +
		borderStyle.Render(" "+middle+" ") +
		valueStyle.Render(value) +
		borderStyle.Render(" ╮")
}

// SectionFooter renders the bottom border of a section.
// Format: ╰────────────────────────────────────────────────────╯
func SectionFooter(width int) string {
	if width < 2 {
		width = 2
	}
	middle := strings.Repeat("─", width-2)

	borderStyle := lipgloss.NewStyle().Foreground(ColorBorder)
	return borderStyle.Render("╰" + middle + "╯")
}

// SectionContentLine renders a content line with left and right borders, properly padded to width.
// Format: │ content                                              │
func SectionContentLine(content string, width int) string {
	if width < 4 {
		width = 4
	}

	borderStyle := lipgloss.NewStyle().Foreground(ColorBorder)

	// "│ " on the left and " │" on the right
	innerWidth := width - 4
	padding := innerWidth - lipgloss.Width(content)
	if padding < 0 {
		padding = 0
	}

	return borderStyle.Render("│") + " " + content + strings.Repeat(" ", padding) + " " + borderStyle.Render("│")
}

// Section renders a titled box around lines.
func Section(title, value string, lines []string, width int) string {
	out := make([]string, 0, len(lines)+2)
	out = append(out, SectionHeader(title, value, width))
	for _, l := range lines {
		out = append(out, SectionContentLine(l, width))
	}
	out = append(out, SectionFooter(width))
	return strings.Join(out, "\n")
}

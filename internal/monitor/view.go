package monitor

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/rileyhilliard/hwmon/internal/chart"
)

// Chart heights in terminal rows
const (
	dashboardChartRows = 12
	detailChartRows    = 14
)

// renderDashboard renders the complete aggregate view.
func (m Model) renderDashboard() string {
	var b strings.Builder

	b.WriteString(m.renderHeader("hwmon"))
	b.WriteString("\n\n")
	b.WriteString(m.renderSummary())
	b.WriteString("\n")
	if line := m.renderFetchError(); line != "" {
		b.WriteString(line)
		b.WriteString("\n")
	}
	b.WriteString("\n")

	b.WriteString(m.renderHostCards())
	b.WriteString("\n")

	width := m.contentWidth()
	b.WriteString(Section("Performance", "fleet average", m.renderChartLines(width-4, dashboardChartRows), width))
	b.WriteString("\n")

	b.WriteString(m.renderFooter())
	return b.String()
}

// renderHeader renders the title bar with the connection badge.
func (m Model) renderHeader(title string) string {
	var updateText string
	switch lastUpdate := m.SecondsSinceUpdate(); {
	case m.lastUpdate.IsZero():
		updateText = "waiting for data"
	case lastUpdate == 0:
		updateText = "updated just now"
	default:
		updateText = fmt.Sprintf("updated %ds ago", lastUpdate)
	}

	styledTitle := lipgloss.NewStyle().
		Foreground(ColorAccent).
		Bold(true).
		Render(title)

	stats := lipgloss.NewStyle().
		Foreground(ColorTextSecondary).
		Render(" | " + updateText)

	return HeaderStyle.Render(styledTitle + "  " + ConnectionBadge(m.connected) + stats)
}

// renderSummary renders the fleet-wide averages.
func (m Model) renderSummary() string {
	s := m.summary
	parts := []string{
		LabelStyle.Render("Hosts ") + ValueStyle.Render(fmt.Sprintf("%d", s.TotalHosts)),
		LabelStyle.Render("CPU ") + MetricStyle(s.AvgCPU).Render(fmt.Sprintf("%.1f%%", s.AvgCPU)),
		LabelStyle.Render("Memory ") + MetricStyle(s.AvgMemory).Render(fmt.Sprintf("%.1f%%", s.AvgMemory)),
		LabelStyle.Render("Disk ") + MetricStyle(s.AvgDisk).Render(fmt.Sprintf("%.1f%%", s.AvgDisk)),
	}
	return " " + strings.Join(parts, MutedStyle.Render("  │  "))
}

// renderFetchError shows the last failed fetch, or nothing.
func (m Model) renderFetchError() string {
	if m.fetchErr == nil {
		return ""
	}
	return " " + ErrorTextStyle.Render("⚠ "+firstLine(m.fetchErr.Error())+" (showing last known data)")
}

// renderHostCards renders the grid of host cards.
func (m Model) renderHostCards() string {
	if len(m.hosts) == 0 {
		return LabelStyle.Render(" No hosts reporting yet")
	}

	cardWidth := m.calculateCardWidth()

	cards := make([]string, 0, len(m.hosts))
	for i, host := range m.hosts {
		cards = append(cards, m.renderCard(host, cardWidth, i == m.selected))
	}

	return m.layoutCards(cards, cardWidth)
}

// calculateCardWidth determines the optimal card width based on terminal width.
func (m Model) calculateCardWidth() int {
	if m.width == 0 || m.width >= 80 {
		return 38
	}
	return m.width - 4
}

// layoutCards arranges cards in rows based on terminal width.
func (m Model) layoutCards(cards []string, cardWidth int) string {
	cardsPerRow := 1
	if m.width > 0 {
		// margin + border
		cardsPerRow = max(m.width/(cardWidth+3), 1)
	}

	var rows []string
	for i := 0; i < len(cards); i += cardsPerRow {
		end := min(i+cardsPerRow, len(cards))
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cards[i:end]...))
	}

	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

// renderFooter renders the keyboard hints.
func (m Model) renderFooter() string {
	return FooterStyle.Render(m.help.View(m.keys))
}

// contentWidth is the width sections are drawn at.
func (m Model) contentWidth() int {
	if m.width == 0 {
		return 80
	}
	return max(m.width-2, 24)
}

// renderChartLines replays the latest chart onto a braille grid.
func (m Model) renderChartLines(cols, rows int) []string {
	if len(m.chartOps) == 0 {
		return []string{MutedStyle.Render("Waiting for chart data...")}
	}
	surface := chart.NewBraille(cols, rows, m.chartSize)
	chart.Replay(surface, m.chartOps)
	return strings.Split(surface.String(), "\n")
}

// firstLine trims a formatted error down to its headline.
func firstLine(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[:i]
	}
	return strings.TrimSpace(strings.TrimPrefix(s, "✗"))
}

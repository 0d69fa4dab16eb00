package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// HeaderInfo contains information to display in the header.
type HeaderInfo struct {
	Version string // e.g. "v0.4.0"
	Tagline string // optional, e.g. "demo telemetry server"
	Detail  string // optional second line, e.g. the listen address
}

// HeaderWidth is the width of the header divider
const HeaderWidth = 50

// RenderHeader renders the branded "hwmon vX" banner followed by a divider.
func RenderHeader(info HeaderInfo) string {
	titleStyle := lipgloss.NewStyle().
		Foreground(ColorNeonPink).
		Bold(true)
	versionStyle := lipgloss.NewStyle().Foreground(ColorNeonCyan)
	taglineStyle := lipgloss.NewStyle().Foreground(ColorSecondary)
	dividerStyle := lipgloss.NewStyle().Foreground(ColorBorder)

	var b strings.Builder
	b.WriteString(titleStyle.Render("hwmon"))
	if info.Version != "" {
		b.WriteString(" ")
		b.WriteString(versionStyle.Render(info.Version))
	}
	b.WriteString("\n")

	if info.Tagline != "" {
		b.WriteString(taglineStyle.Render(info.Tagline))
		b.WriteString("\n")
	}
	if info.Detail != "" {
		b.WriteString(mutedStyle.Render(info.Detail))
		b.WriteString("\n")
	}

	b.WriteString(dividerStyle.Render(strings.Repeat("━", HeaderWidth)))
	b.WriteString("\n")
	return b.String()
}

// PrintHeader writes the header to w.
func PrintHeader(w io.Writer, info HeaderInfo) {
	fmt.Fprint(w, RenderHeader(info))
}

package ui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Neon accents shared with the monitor dashboard.
const (
	ColorNeonPink   lipgloss.Color = "#FF2E97"
	ColorNeonCyan   lipgloss.Color = "#00FFFF"
	ColorNeonPurple lipgloss.Color = "#BF40FF"
	ColorNeonGreen  lipgloss.Color = "#39FF14"
	ColorNeonAmber  lipgloss.Color = "#FFAA00"
	ColorBorder     lipgloss.Color = "#2A2A4A"
)

// Semantic colors for status indication
const (
	ColorSuccess lipgloss.Color = "2" // Green
	ColorError   lipgloss.Color = "1" // Red
	ColorWarning lipgloss.Color = "3" // Yellow
	ColorInfo    lipgloss.Color = "6" // Cyan
)

// Text colors for content hierarchy
const (
	ColorPrimary   lipgloss.Color = "7" // White/default
	ColorSecondary lipgloss.Color = "4" // Blue
	ColorMuted     lipgloss.Color = "8" // Gray (bright black)
)

// GradientColors cycles through the spinner frames.
var GradientColors = []lipgloss.Color{
	ColorNeonPink,
	ColorNeonPurple,
	ColorNeonCyan,
	ColorNeonGreen,
}

// DisableColors switches lipgloss to plain ASCII output. Used for --no-color
// and when stdout is not a terminal.
func DisableColors() {
	lipgloss.SetColorProfile(termenv.Ascii)
}

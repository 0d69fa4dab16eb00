package ui

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
)

var (
	successStyle = lipgloss.NewStyle().Foreground(ColorSuccess)
	failStyle    = lipgloss.NewStyle().Foreground(ColorError)
	warnStyle    = lipgloss.NewStyle().Foreground(ColorWarning)
	mutedStyle   = lipgloss.NewStyle().Foreground(ColorMuted)
)

// Success prints "✓ message" in green.
func Success(w io.Writer, format string, args ...interface{}) {
	fmt.Fprintf(w, "%s %s\n", successStyle.Render(SymbolSuccess), fmt.Sprintf(format, args...))
}

// Fail prints "✗ message" in red.
func Fail(w io.Writer, format string, args ...interface{}) {
	fmt.Fprintf(w, "%s %s\n", failStyle.Render(SymbolFail), fmt.Sprintf(format, args...))
}

// Warn prints "⚠ message" in yellow.
func Warn(w io.Writer, format string, args ...interface{}) {
	fmt.Fprintf(w, "%s %s\n", warnStyle.Render(SymbolWarning), fmt.Sprintf(format, args...))
}

// Muted renders secondary text such as hints and timings.
func Muted(s string) string {
	return mutedStyle.Render(s)
}

// HostStatus renders the online/offline marker used in headless output and
// the host picker.
func HostStatus(online bool) string {
	if online {
		return successStyle.Render(SymbolOnline + " online")
	}
	return failStyle.Render(SymbolOffline + " offline")
}

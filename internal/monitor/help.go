package monitor

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
)

// Help overlay styles
var (
	helpBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorAccent).
			Background(ColorSurfaceBg).
			Padding(1, 2)

	helpTitleStyle = lipgloss.NewStyle().
			Foreground(ColorAccent).
			Bold(true).
			MarginBottom(1)

	helpKeyStyle = lipgloss.NewStyle().
			Foreground(ColorTextPrimary).
			Bold(true).
			Width(14)

	helpDescStyle = lipgloss.NewStyle().
			Foreground(ColorTextSecondary)
)

// helpEntry is one row of the help overlay.
type helpEntry struct {
	binding key.Binding
	desc    string
}

// overlayBindings are listed in the help overlay with longer descriptions
// than the footer uses.
func (m Model) overlayBindings() []helpEntry {
	return []helpEntry{
		{m.keys.Up, "Select previous host / scroll up"},
		{m.keys.Down, "Select next host / scroll down"},
		{m.keys.Open, "Open selected host"},
		{m.keys.Back, "Back to dashboard / close"},
		{m.keys.Help, "Toggle this help"},
		{m.keys.Quit, "Quit"},
	}
}

// renderHelpOverlay renders a centered help box with keyboard shortcuts.
func (m Model) renderHelpOverlay() string {
	var lines []string
	lines = append(lines, helpTitleStyle.Render("Keyboard Shortcuts"))
	lines = append(lines, "")

	for _, b := range m.overlayBindings() {
		keys := strings.Join(b.binding.Keys(), " / ")
		lines = append(lines, helpKeyStyle.Render(keys)+helpDescStyle.Render(b.desc))
	}

	lines = append(lines, "")
	lines = append(lines, LabelStyle.Render("Press ? to close"))

	helpBox := helpBoxStyle.Render(strings.Join(lines, "\n"))
	if m.width == 0 || m.height == 0 {
		return helpBox
	}

	return lipgloss.Place(
		m.width,
		m.height,
		lipgloss.Center,
		lipgloss.Center,
		helpBox,
		lipgloss.WithWhitespaceChars(" "),
		lipgloss.WithWhitespaceForeground(ColorDarkBg),
	)
}

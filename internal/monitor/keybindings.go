package monitor

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// ViewMode defines the current display mode of the dashboard.
type ViewMode int

const (
	ViewList ViewMode = iota
	ViewDetail
)

// keyMap lists every binding. It implements help.KeyMap for the footer.
type keyMap struct {
	Quit key.Binding
	Help key.Binding
	Up   key.Binding
	Down key.Binding
	Open key.Binding
	Back key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Quit: key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
		Help: key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Up:   key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down: key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Open: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "open host")),
		Back: key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Open, k.Back, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Up, k.Down}, {k.Open, k.Back}, {k.Help, k.Quit}}
}

// HandleKeyMsg processes keyboard input and returns updated model state and command.
// Returns true if the key was handled, false otherwise.
func (m *Model) HandleKeyMsg(msg tea.KeyMsg) (bool, tea.Cmd) {
	// Help toggle takes priority
	if key.Matches(msg, m.keys.Help) {
		m.showHelp = !m.showHelp
		return true, nil
	}

	// If help is showing, Esc closes it
	if m.showHelp && key.Matches(msg, m.keys.Back) {
		m.showHelp = false
		return true, nil
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return true, tea.Quit

	case key.Matches(msg, m.keys.Back):
		if m.viewMode == ViewDetail {
			return true, m.navigate(DashboardRoute())
		}
		return true, nil

	case key.Matches(msg, m.keys.Open):
		if m.viewMode == ViewList {
			if host := m.SelectedHost(); host != "" {
				return true, m.navigate(HostRoute(host))
			}
		}
		return true, nil

	case key.Matches(msg, m.keys.Up):
		if m.viewMode == ViewDetail {
			return true, m.scroll(msg)
		}
		if m.selected > 0 {
			m.selected--
		}
		return true, nil

	case key.Matches(msg, m.keys.Down):
		if m.viewMode == ViewDetail {
			return true, m.scroll(msg)
		}
		if m.selected < len(m.hosts)-1 {
			m.selected++
		}
		return true, nil
	}

	return false, nil
}

// scroll hands a key to the detail viewport, whose default keymap
// covers the same up/down keys.
func (m *Model) scroll(msg tea.KeyMsg) tea.Cmd {
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return cmd
}

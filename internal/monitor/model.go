package monitor

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/rileyhilliard/hwmon/internal/chart"
	"github.com/rileyhilliard/hwmon/internal/livesync"
	"github.com/rileyhilliard/hwmon/internal/telemetry"
)

// Layout reserved around the detail viewport
const (
	headerHeight = 3
	footerHeight = 2
)

// tickInterval drives the "updated Ns ago" counter.
const tickInterval = time.Second

// Model is the Bubble Tea model for the dashboard and host detail views.
type Model struct {
	switcher *Switcher
	route    Route
	session  int
	viewMode ViewMode

	connected  bool
	summary    telemetry.Summary
	hosts      []telemetry.HostEntry
	detail     telemetry.Sample
	hasDetail  bool
	chartSize  chart.Size
	chartOps   []chart.Instruction
	fetchErr   error
	lastUpdate time.Time

	selected int
	width    int
	height   int
	showHelp bool
	quitting bool

	keys          keyMap
	help          help.Model
	viewport      viewport.Model
	viewportReady bool

	loc *time.Location
	now func() time.Time
}

// tickMsg signals a periodic redraw.
type tickMsg time.Time

// NewModel creates a model that opens route through switcher. A nil
// switcher gives a model that only reacts to messages it is sent.
func NewModel(switcher *Switcher, route Route) Model {
	m := Model{
		switcher: switcher,
		keys:     defaultKeyMap(),
		help:     help.New(),
		loc:      time.Local,
		now:      time.Now,
	}
	m.enter(route)
	return m
}

// SetLocation sets the zone used for displayed timestamps.
func (m *Model) SetLocation(loc *time.Location) {
	if loc != nil {
		m.loc = loc
	}
}

// Init opens the first session and starts the redraw tick.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.switchCmd(), m.tickCmd())
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		handled, cmd := m.HandleKeyMsg(msg)
		if handled {
			return m, cmd
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width

		viewportHeight := m.height - headerHeight - footerHeight
		if viewportHeight < 1 {
			viewportHeight = 1
		}

		if !m.viewportReady {
			m.viewport = viewport.New(m.width, viewportHeight)
			m.viewport.YPosition = headerHeight
			m.viewportReady = true
		} else {
			m.viewport.Width = m.width
			m.viewport.Height = viewportHeight
		}
		m.refreshDetail()

	case tickMsg:
		return m, m.tickCmd()

	case statusMsg:
		if msg.session == m.session {
			m.connected = msg.connected
		}

	case summaryMsg:
		if msg.session == m.session {
			m.summary = msg.summary
			m.lastUpdate = m.now()
		}

	case hostsMsg:
		if msg.session == m.session {
			m.setHosts(msg.hosts)
			m.lastUpdate = m.now()
		}

	case detailMsg:
		if msg.session == m.session {
			m.detail = msg.sample
			m.hasDetail = msg.ok
			m.fetchErr = nil
			m.lastUpdate = m.now()
			m.refreshDetail()
		}

	case chartMsg:
		if msg.session == m.session {
			m.chartSize = msg.size
			m.chartOps = msg.instructions
			m.refreshDetail()
		}

	case fetchErrorMsg:
		if msg.session == m.session {
			m.fetchErr = msg.err
		}
	}

	return m, nil
}

// View renders the current view.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if m.showHelp {
		return m.renderHelpOverlay()
	}
	if m.viewMode == ViewDetail {
		return m.renderDetailView()
	}
	return m.renderDashboard()
}

// navigate leaves the current session and opens route in a new one.
func (m *Model) navigate(route Route) tea.Cmd {
	m.enter(route)
	return m.switchCmd()
}

// enter resets per-session state for route.
func (m *Model) enter(route Route) {
	m.session++
	m.route = route
	m.connected = false
	m.summary = telemetry.Summary{}
	m.detail = telemetry.Sample{}
	m.hasDetail = false
	m.chartOps = nil
	m.fetchErr = nil

	if route.Mode == livesync.ModeDetail {
		m.viewMode = ViewDetail
		m.viewport.GotoTop()
		m.refreshDetail()
	} else {
		m.viewMode = ViewList
	}
}

func (m Model) switchCmd() tea.Cmd {
	if m.switcher == nil {
		return nil
	}
	sw, route, session := m.switcher, m.route, m.session
	return func() tea.Msg {
		sw.Switch(route, session)
		return nil
	}
}

func (m Model) tickCmd() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// setHosts replaces the host list, keeping the same host selected.
func (m *Model) setHosts(hosts []telemetry.HostEntry) {
	selectedHost := m.SelectedHost()
	m.hosts = hosts

	m.selected = 0
	for i, h := range hosts {
		if h.Hostname == selectedHost {
			m.selected = i
			break
		}
	}
}

// refreshDetail re-renders the scrollable detail content.
func (m *Model) refreshDetail() {
	if m.viewMode != ViewDetail || !m.viewportReady {
		return
	}
	m.viewport.SetContent(m.renderDetailContent())
}

// Route returns the view the model is showing.
func (m Model) Route() Route { return m.route }

// Session returns the id of the current sync session.
func (m Model) Session() int { return m.session }

// Connected reports the current push channel status.
func (m Model) Connected() bool { return m.connected }

// Hosts returns the current host list.
func (m Model) Hosts() []telemetry.HostEntry { return m.hosts }

// SelectedHost returns the hostname of the selected card.
func (m Model) SelectedHost() string {
	if m.selected >= 0 && m.selected < len(m.hosts) {
		return m.hosts[m.selected].Hostname
	}
	return ""
}

// SecondsSinceUpdate returns how many seconds have passed since the last update.
func (m Model) SecondsSinceUpdate() int {
	if m.lastUpdate.IsZero() {
		return 0
	}
	return int(m.now().Sub(m.lastUpdate).Seconds())
}

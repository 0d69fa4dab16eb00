package monitor

import (
	"errors"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rileyhilliard/hwmon/internal/telemetry"
)

var (
	keyEnter = tea.KeyMsg{Type: tea.KeyEnter}
	keyEsc   = tea.KeyMsg{Type: tea.KeyEsc}
	keyDown  = tea.KeyMsg{Type: tea.KeyDown}
	keyUp    = tea.KeyMsg{Type: tea.KeyUp}
)

func runeKey(r string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(r)}
}

func entries(hosts ...string) []telemetry.HostEntry {
	out := make([]telemetry.HostEntry, 0, len(hosts))
	for _, h := range hosts {
		out = append(out, telemetry.HostEntry{Hostname: h, Latest: sample(h, testNow, 10, 20), Online: true})
	}
	return out
}

func TestNewModel(t *testing.T) {
	m := NewModel(nil, DashboardRoute())

	assert.Equal(t, 1, m.Session())
	assert.Equal(t, DashboardRoute(), m.Route())
	assert.Equal(t, ViewList, m.viewMode)
	assert.False(t, m.Connected())
	assert.Empty(t, m.SelectedHost())

	d := NewModel(nil, HostRoute("db-1"))
	assert.Equal(t, ViewDetail, d.viewMode)
}

func TestModel_InitStartsFirstSession(t *testing.T) {
	starter := &fakeStarter{}
	sw := NewSwitcher(starter.start)
	sw.Attach(&recordingSender{})

	m := NewModel(sw, HostRoute("db-1"))
	require.NotNil(t, m.Init())

	// Init batches the switch with the redraw tick; run the switch directly.
	m.switchCmd()()
	assert.Equal(t, []string{"start host:db-1"}, starter.Events())
}

func TestModel_DropsMessagesFromOtherSessions(t *testing.T) {
	m := newTestModel(DashboardRoute())

	m, _ = update(m, statusMsg{session: 99, connected: true})
	m, _ = update(m, summaryMsg{session: 99, summary: telemetry.Summary{TotalHosts: 5}})
	m, _ = update(m, hostsMsg{session: 99, hosts: entries("stale")})
	m, _ = update(m, fetchErrorMsg{session: 99, err: errors.New("old")})

	assert.False(t, m.Connected())
	assert.Zero(t, m.summary.TotalHosts)
	assert.Empty(t, m.Hosts())
	assert.Nil(t, m.fetchErr)

	m, _ = update(m, statusMsg{session: m.Session(), connected: true})
	m, _ = update(m, summaryMsg{session: m.Session(), summary: telemetry.Summary{TotalHosts: 2}})
	m, _ = update(m, hostsMsg{session: m.Session(), hosts: entries("a", "b")})

	assert.True(t, m.Connected())
	assert.Equal(t, 2, m.summary.TotalHosts)
	assert.Len(t, m.Hosts(), 2)
}

func TestModel_SelectionFollowsHostAcrossUpdates(t *testing.T) {
	m := newTestModel(DashboardRoute())
	m, _ = update(m, hostsMsg{session: 1, hosts: entries("a", "b", "c")})
	assert.Equal(t, "a", m.SelectedHost())

	m, _ = update(m, keyDown)
	m, _ = update(m, runeKey("j"))
	assert.Equal(t, "c", m.SelectedHost())

	m, _ = update(m, keyDown)
	assert.Equal(t, "c", m.SelectedHost(), "stops at the last host")

	m, _ = update(m, runeKey("k"))
	assert.Equal(t, "b", m.SelectedHost())

	// a new host sorted ahead of the selection keeps "b" selected
	m, _ = update(m, hostsMsg{session: 1, hosts: entries("0", "a", "b", "c")})
	assert.Equal(t, "b", m.SelectedHost())

	// the selected host disappearing falls back to the first
	m, _ = update(m, hostsMsg{session: 1, hosts: entries("a", "c")})
	assert.Equal(t, "a", m.SelectedHost())

	m, _ = update(m, keyUp)
	assert.Equal(t, "a", m.SelectedHost())
}

func TestModel_EnterOpensSelectedHost(t *testing.T) {
	starter := &fakeStarter{}
	sw := NewSwitcher(starter.start)
	sw.Attach(&recordingSender{})

	m := NewModel(sw, DashboardRoute())
	m.switchCmd()()
	m, _ = update(m, statusMsg{session: 1, connected: true})
	m, _ = update(m, hostsMsg{session: 1, hosts: entries("a", "b")})
	m, _ = update(m, keyDown)

	m, cmd := update(m, keyEnter)
	require.NotNil(t, cmd)
	assert.Equal(t, HostRoute("b"), m.Route())
	assert.Equal(t, 2, m.Session())
	assert.Equal(t, ViewDetail, m.viewMode)
	assert.False(t, m.Connected(), "connection state belongs to the new session")

	cmd()
	assert.Equal(t, []string{"start dashboard", "stop dashboard", "start host:b"}, starter.Events())

	// late output from the dashboard session is ignored
	m, _ = update(m, statusMsg{session: 1, connected: true})
	assert.False(t, m.Connected())

	m, cmd = update(m, keyEsc)
	require.NotNil(t, cmd)
	assert.Equal(t, DashboardRoute(), m.Route())
	assert.Equal(t, 3, m.Session())
	assert.Equal(t, ViewList, m.viewMode)
	assert.Equal(t, "b", m.SelectedHost(), "selection survives the round trip")

	cmd()
	assert.Equal(t, "start dashboard", starter.Events()[len(starter.Events())-1])
}

func TestModel_EnterWithoutHostsDoesNothing(t *testing.T) {
	m := newTestModel(DashboardRoute())
	m, _ = update(m, keyEnter)
	assert.Equal(t, DashboardRoute(), m.Route())
	assert.Equal(t, 1, m.Session())
}

func TestModel_EscOnDashboardStays(t *testing.T) {
	m := newTestModel(DashboardRoute())
	m, cmd := update(m, keyEsc)
	assert.Nil(t, cmd)
	assert.Equal(t, 1, m.Session())
}

func TestModel_Quit(t *testing.T) {
	for _, k := range []tea.KeyMsg{runeKey("q"), {Type: tea.KeyCtrlC}} {
		t.Run(k.String(), func(t *testing.T) {
			m := newTestModel(DashboardRoute())
			m, cmd := update(m, k)
			require.NotNil(t, cmd)
			assert.Equal(t, tea.Quit(), cmd())
			assert.Empty(t, m.View())
		})
	}
}

func TestModel_HelpToggle(t *testing.T) {
	m := newTestModel(DashboardRoute())

	m, _ = update(m, runeKey("?"))
	assert.True(t, m.showHelp)
	assert.Contains(t, plain(m.View()), "Keyboard Shortcuts")

	// esc closes help before it navigates
	m, cmd := update(m, keyEsc)
	assert.False(t, m.showHelp)
	assert.Nil(t, cmd)
}

func TestModel_DetailMessages(t *testing.T) {
	m := newTestModel(HostRoute("db-1"))
	m, _ = update(m, tea.WindowSizeMsg{Width: 120, Height: 60})
	m, _ = update(m, fetchErrorMsg{session: 1, err: errors.New("✗ GET failed\n\n  refused")})
	require.Error(t, m.fetchErr)

	s := sample("db-1", testNow.Add(-time.Minute), 42, 25)
	m, _ = update(m, detailMsg{session: 1, hostname: "db-1", sample: s, ok: true})

	assert.True(t, m.hasDetail)
	assert.Equal(t, 42.0, m.detail.CPUUsage())
	assert.Nil(t, m.fetchErr, "a fresh sample clears the fetch warning")
	assert.Contains(t, plain(m.viewport.View()), "Ryzen 9 7950X")
}

func TestModel_SecondsSinceUpdate(t *testing.T) {
	m := newTestModel(DashboardRoute())
	assert.Zero(t, m.SecondsSinceUpdate())

	m, _ = update(m, summaryMsg{session: 1})
	m.now = func() time.Time { return testNow.Add(12 * time.Second) }
	assert.Equal(t, 12, m.SecondsSinceUpdate())
}

func TestModel_TickReschedules(t *testing.T) {
	m := newTestModel(DashboardRoute())
	_, cmd := update(m, tickMsg(testNow))
	assert.NotNil(t, cmd)
}

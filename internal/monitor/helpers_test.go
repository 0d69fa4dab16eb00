package monitor

import (
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/termenv"

	"github.com/rileyhilliard/hwmon/internal/chart"
	"github.com/rileyhilliard/hwmon/internal/livesync"
	"github.com/rileyhilliard/hwmon/internal/telemetry"
)

func init() {
	// Force TrueColor output in tests so we can verify ANSI color codes
	lipgloss.SetColorProfile(termenv.TrueColor)
}

var testNow = time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)

// plain strips styling so assertions can match on text.
func plain(s string) string { return ansi.Strip(s) }

// recordingSender captures everything a Sink sends.
type recordingSender struct {
	mu   sync.Mutex
	msgs []tea.Msg
}

func (r *recordingSender) Send(msg tea.Msg) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.msgs = append(r.msgs, msg)
}

func (r *recordingSender) Messages() []tea.Msg {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]tea.Msg(nil), r.msgs...)
}

// fakeStarter records sessions started and stopped.
type fakeStarter struct {
	mu     sync.Mutex
	events []string
	sinks  []livesync.Sink
}

func (f *fakeStarter) start(route Route, sink livesync.Sink) func() {
	f.mu.Lock()
	defer f.mu.Unlock()
	name := "dashboard"
	if route.Mode == livesync.ModeDetail {
		name = "host:" + route.Hostname
	}
	f.events = append(f.events, "start "+name)
	f.sinks = append(f.sinks, sink)
	return func() {
		f.mu.Lock()
		defer f.mu.Unlock()
		f.events = append(f.events, "stop "+name)
	}
}

func (f *fakeStarter) Events() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.events...)
}

func newTestModel(route Route) Model {
	m := NewModel(nil, route)
	m.SetLocation(time.UTC)
	m.now = func() time.Time { return testNow }
	return m
}

// update applies msg and returns the concrete model.
func update(m Model, msg tea.Msg) (Model, tea.Cmd) {
	next, cmd := m.Update(msg)
	return next.(Model), cmd
}

func sample(host string, ts time.Time, cpu, mem float64) telemetry.Sample {
	return telemetry.Sample{
		Hostname:  host,
		Timestamp: ts,
		CPU:       &telemetry.CPUInfo{ModelName: "Ryzen 9 7950X", Cores: 16, Usage: cpu, Frequency: 4500},
		Memory: &telemetry.MemoryInfo{
			Total: 32 << 30, Used: 8 << 30, Free: 24 << 30, Usage: mem,
			SwapTotal: 4 << 30, SwapUsed: 1 << 30,
		},
		Disk: &telemetry.DiskInfo{Partitions: []telemetry.PartitionUsage{
			{Device: "/dev/nvme0n1p2", MountPoint: "/", Total: 512 << 30, Used: 128 << 30, Free: 384 << 30, Usage: 25},
		}},
		Network: &telemetry.NetworkInfo{Interfaces: []telemetry.InterfaceStats{
			{Name: "eth0", Addresses: []string{"10.0.0.5/24"}, BytesSent: 3 << 20, BytesRecv: 5 << 19, PacketsSent: 1200, PacketsRecv: 3400},
		}},
		OS: &telemetry.OSInfo{Name: "linux", Platform: "ubuntu", Version: "24.04", Architecture: "x86_64"},
	}
}

// testChart draws a two-point chart onto a recorder.
func testChart() *chart.Chart {
	c := chart.New(chart.NewRecorder(), chart.Size{Width: 800, Height: 300}, chart.Options{Legend: true})
	c.Model().Labels = []string{"09:00:00", "09:00:30"}
	c.Model().Datasets = []chart.Dataset{
		{Label: "CPU Usage (%)", Data: []float64{10, 90}, BorderColor: "rgb(75, 192, 192)"},
	}
	c.Update()
	return c
}

package monitor

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/rileyhilliard/hwmon/internal/chart"
	"github.com/rileyhilliard/hwmon/internal/livesync"
	"github.com/rileyhilliard/hwmon/internal/telemetry"
)

// Sender delivers messages into a running program. *tea.Program satisfies it.
type Sender interface {
	Send(msg tea.Msg)
}

// Messages from a sync session. Each carries the session that produced it
// so the model can drop output from a session it already left.
type (
	statusMsg struct {
		session   int
		connected bool
	}

	summaryMsg struct {
		session int
		summary telemetry.Summary
	}

	hostsMsg struct {
		session int
		hosts   []telemetry.HostEntry
	}

	detailMsg struct {
		session  int
		hostname string
		sample   telemetry.Sample
		ok       bool
	}

	chartMsg struct {
		session      int
		size         chart.Size
		instructions []chart.Instruction
	}

	fetchErrorMsg struct {
		session int
		err     error
	}
)

// Sink forwards controller output to a bubbletea program.
type Sink struct {
	sender  Sender
	session int
}

var _ livesync.Sink = (*Sink)(nil)

// NewSink creates a sink whose messages are tagged with session.
func NewSink(sender Sender, session int) *Sink {
	return &Sink{sender: sender, session: session}
}

func (s *Sink) ConnectionStatus(connected bool) {
	s.sender.Send(statusMsg{session: s.session, connected: connected})
}

func (s *Sink) MetricSummary(sum telemetry.Summary) {
	s.sender.Send(summaryMsg{session: s.session, summary: sum})
}

func (s *Sink) HostList(entries []telemetry.HostEntry) {
	s.sender.Send(hostsMsg{session: s.session, hosts: entries})
}

func (s *Sink) HostDetail(hostname string, latest telemetry.Sample, ok bool) {
	s.sender.Send(detailMsg{session: s.session, hostname: hostname, sample: latest, ok: ok})
}

// ChartUpdated ships the recorded draw calls. The program replays them onto
// a braille grid sized to the terminal at render time.
func (s *Sink) ChartUpdated(c *chart.Chart) {
	s.sender.Send(chartMsg{session: s.session, size: c.Size(), instructions: c.Last()})
}

func (s *Sink) FetchFailed(err error) {
	s.sender.Send(fetchErrorMsg{session: s.session, err: err})
}

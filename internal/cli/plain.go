package cli

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/rileyhilliard/hwmon/internal/chart"
	"github.com/rileyhilliard/hwmon/internal/telemetry"
	"github.com/rileyhilliard/hwmon/internal/ui"
)

// plainSink prints view updates as log lines for non-interactive use.
// Repeated identical lines are suppressed.
type plainSink struct {
	w    io.Writer
	now  func() time.Time
	last map[string]string
}

func newPlainSink(w io.Writer) *plainSink {
	return &plainSink{w: w, now: time.Now, last: make(map[string]string)}
}

func (s *plainSink) emit(kind, line string) {
	if s.last[kind] == line {
		return
	}
	s.last[kind] = line
	fmt.Fprintf(s.w, "%s %s\n", ui.Muted(s.now().Format("15:04:05")), line)
}

func (s *plainSink) ConnectionStatus(connected bool) {
	if connected {
		s.emit("conn", ui.HostStatus(true)+" push channel connected")
		return
	}
	s.emit("conn", ui.HostStatus(false)+" push channel disconnected")
}

func (s *plainSink) MetricSummary(sum telemetry.Summary) {
	delete(s.last, "fetch")
	s.emit("summary", fmt.Sprintf("hosts=%d cpu=%.1f%% mem=%.1f%% disk=%.1f%%",
		sum.TotalHosts, sum.AvgCPU, sum.AvgMemory, sum.AvgDisk))
}

func (s *plainSink) HostList(entries []telemetry.HostEntry) {
	offline := make([]string, 0)
	for _, e := range entries {
		if !e.Online {
			offline = append(offline, e.Hostname)
		}
	}
	if len(offline) == 0 {
		s.emit("offline", fmt.Sprintf("all %d hosts online", len(entries)))
		return
	}
	s.emit("offline", fmt.Sprintf("offline: %s", strings.Join(offline, ", ")))
}

func (s *plainSink) HostDetail(hostname string, latest telemetry.Sample, ok bool) {
	delete(s.last, "fetch")
	if !ok {
		s.emit("detail", hostname+" has no samples yet")
		return
	}
	status := ui.HostStatus(telemetry.IsOnline(latest.Timestamp, s.now()))
	s.emit("detail", fmt.Sprintf("%s %s cpu=%.1f%% mem=%.1f%% disk=%.1f%% at %s",
		hostname, status, latest.CPUUsage(), latest.MemoryUsage(), latest.DiskUsage(),
		latest.Timestamp.Local().Format(time.RFC3339)))
}

func (s *plainSink) ChartUpdated(*chart.Chart) {}

func (s *plainSink) FetchFailed(err error) {
	msg := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(err.Error()), "✗"))
	if i := strings.IndexByte(msg, '\n'); i >= 0 {
		msg = msg[:i]
	}
	s.emit("fetch", ui.Muted("fetch failed: ")+msg)
}

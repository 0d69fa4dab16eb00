package livesync

import (
	"github.com/rileyhilliard/hwmon/internal/chart"
	"github.com/rileyhilliard/hwmon/internal/telemetry"
)

// Sink receives everything a view displays. Methods are called from the
// controller's event loop and should return quickly.
type Sink interface {
	// ConnectionStatus reports push channel transitions.
	ConnectionStatus(connected bool)
	// MetricSummary is called after each aggregate mutation.
	MetricSummary(sum telemetry.Summary)
	// HostList is called after each aggregate mutation, classified against the current time.
	HostList(entries []telemetry.HostEntry)
	// HostDetail is called after each detail mutation. ok is false until a sample exists.
	HostDetail(hostname string, latest telemetry.Sample, ok bool)
	// ChartUpdated is called after the chart has been redrawn.
	ChartUpdated(c *chart.Chart)
	// FetchFailed reports a failed bootstrap or refresh fetch. Last-known data stays valid.
	FetchFailed(err error)
}

// NopSink ignores every call. Embed it to implement only part of Sink.
type NopSink struct{}

func (NopSink) ConnectionStatus(bool)                     {}
func (NopSink) MetricSummary(telemetry.Summary)           {}
func (NopSink) HostList([]telemetry.HostEntry)            {}
func (NopSink) HostDetail(string, telemetry.Sample, bool) {}
func (NopSink) ChartUpdated(*chart.Chart)                 {}
func (NopSink) FetchFailed(error)                         {}

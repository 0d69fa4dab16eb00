package livesync

import (
	"time"

	"k8s.io/utils/clock"

	"github.com/rileyhilliard/hwmon/internal/chart"
	"github.com/rileyhilliard/hwmon/internal/logger"
	"github.com/rileyhilliard/hwmon/internal/series"
	"github.com/rileyhilliard/hwmon/internal/telemetry"
)

// Defaults for Options fields left at their zero value.
const (
	DefaultReconnectDelay  = 5 * time.Second
	DefaultRefreshInterval = 30 * time.Second
	DefaultFetchTimeout    = 10 * time.Second
	DefaultHistoryLimit    = 100
	DefaultLabelLayout     = "15:04:05"
)

// DefaultChartSize is the virtual surface size charts are laid out in.
var DefaultChartSize = chart.Size{Width: 800, Height: 300}

// Options configures a Controller.
type Options struct {
	Mode Mode

	// Hostname is required for ModeDetail.
	Hostname string

	ReconnectDelay  time.Duration
	RefreshInterval time.Duration
	FetchTimeout    time.Duration
	StaleAfter      time.Duration

	// Capacity of the rolling buffer. Defaults to 20 for the aggregate
	// view and 100 for the detail view.
	Capacity int

	// HistoryLimit is the ?limit= sent with detail fetches.
	HistoryLimit int

	ChartSize    chart.Size
	ChartOptions chart.Options
	LabelLayout  string
	Location     *time.Location

	Clock  clock.WithTicker
	Logger logger.Logger
}

func (o Options) withDefaults() Options {
	if o.ReconnectDelay <= 0 {
		o.ReconnectDelay = DefaultReconnectDelay
	}
	if o.RefreshInterval <= 0 {
		o.RefreshInterval = DefaultRefreshInterval
	}
	if o.FetchTimeout <= 0 {
		o.FetchTimeout = DefaultFetchTimeout
	}
	if o.StaleAfter <= 0 {
		o.StaleAfter = telemetry.StaleAfter
	}
	if o.Capacity <= 0 {
		o.Capacity = series.DashboardCapacity
		if o.Mode == ModeDetail {
			o.Capacity = series.DetailCapacity
		}
	}
	if o.HistoryLimit <= 0 {
		o.HistoryLimit = DefaultHistoryLimit
	}
	if o.ChartSize.Width <= 0 || o.ChartSize.Height <= 0 {
		o.ChartSize = DefaultChartSize
	}
	if o.LabelLayout == "" {
		o.LabelLayout = DefaultLabelLayout
	}
	if o.Location == nil {
		o.Location = time.Local
	}
	if o.Clock == nil {
		o.Clock = clock.RealClock{}
	}
	if o.Logger == nil {
		o.Logger = logger.NewEnvLogger("[sync]")
	}
	return o
}

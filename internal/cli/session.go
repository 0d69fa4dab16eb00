package cli

import (
	"context"
	"time"

	"github.com/rileyhilliard/hwmon/internal/chart"
	"github.com/rileyhilliard/hwmon/internal/config"
	"github.com/rileyhilliard/hwmon/internal/livesync"
	"github.com/rileyhilliard/hwmon/internal/logger"
	"github.com/rileyhilliard/hwmon/internal/monitor"
)

// sessionFactory builds sync controllers against one server.
type sessionFactory struct {
	cfg     *config.Config
	fetcher *livesync.HTTPFetcher
	dialer  *livesync.WebsocketDialer
	legend  bool
	log     logger.Logger
}

func newSessionFactory(cfg *config.Config, legend bool) (*sessionFactory, error) {
	fetcher, err := livesync.NewHTTPFetcher(cfg.Server.URL, cfg.Sync.FetchTimeout)
	if err != nil {
		return nil, err
	}
	streamURL, err := livesync.StreamURL(cfg.Server.URL)
	if err != nil {
		return nil, err
	}
	return &sessionFactory{
		cfg:     cfg,
		fetcher: fetcher,
		dialer:  &livesync.WebsocketDialer{URL: streamURL},
		legend:  legend,
		log:     logger.NewEnvLogger("[sync]"),
	}, nil
}

// options maps the config onto controller options for route.
func (f *sessionFactory) options(route monitor.Route) livesync.Options {
	sync := f.cfg.Sync
	capacity := sync.DashboardCapacity
	if route.Mode == livesync.ModeDetail {
		capacity = sync.DetailCapacity
	}
	return livesync.Options{
		Mode:            route.Mode,
		Hostname:        route.Hostname,
		ReconnectDelay:  sync.ReconnectDelay,
		RefreshInterval: sync.RefreshInterval,
		FetchTimeout:    sync.FetchTimeout,
		StaleAfter:      sync.StaleAfter,
		Capacity:        capacity,
		HistoryLimit:    sync.HistoryLimit,
		ChartSize:       chart.Size{Width: float64(f.cfg.Chart.Width), Height: float64(f.cfg.Chart.Height)},
		ChartOptions:    chart.Options{Legend: f.legend},
		Location:        time.Local,
		Logger:          f.log,
	}
}

// controller builds a controller for route. The chart has no surface of its
// own: sinks draw from Chart.Last().
func (f *sessionFactory) controller(route monitor.Route, sink livesync.Sink) *livesync.Controller {
	return livesync.New(f.options(route), f.fetcher, f.dialer, sink, nil)
}

// start runs a controller in the background. The returned stop cancels it
// and waits for the loop to exit. It satisfies monitor.Starter.
func (f *sessionFactory) start(route monitor.Route, sink livesync.Sink) func() {
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	ctrl := f.controller(route, sink)

	go func() {
		defer close(done)
		if err := ctrl.Run(ctx); err != nil {
			f.log.Error("%v", err)
			sink.FetchFailed(err)
		}
	}()

	return func() {
		cancel()
		<-done
	}
}

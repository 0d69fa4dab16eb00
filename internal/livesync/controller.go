package livesync

import (
	"context"
	"sync/atomic"
	"time"

	"k8s.io/utils/clock"

	"github.com/rileyhilliard/hwmon/internal/chart"
	"github.com/rileyhilliard/hwmon/internal/errors"
	"github.com/rileyhilliard/hwmon/internal/logger"
	"github.com/rileyhilliard/hwmon/internal/series"
	"github.com/rileyhilliard/hwmon/internal/telemetry"
)

// eventBuffer bounds how far producers can run ahead of the loop.
const eventBuffer = 16

type event interface{}

type fetchResult struct {
	latest  map[string]telemetry.Sample
	history []telemetry.Sample
	err     error
}

type dialResult struct {
	gen    int
	stream Stream
	err    error
}

type frameEvent struct {
	gen int
	raw []byte
}

type closedEvent struct {
	gen int
	err error
}

// Controller synchronizes one view with the telemetry server.
// Construct with New and start with Run; a Controller runs at most once.
type Controller struct {
	opts    Options
	fetcher Fetcher
	dialer  Dialer
	sink    Sink
	chart   *chart.Chart
	clock   clock.WithTicker
	log     logger.Logger

	state        atomic.Int32
	bootstrapped atomic.Bool
	running      atomic.Bool

	events chan event

	// Owned by the event loop.
	gen       int
	stream    Stream
	reconnect clock.Timer
	latest    map[string]telemetry.Sample
	points    *series.Buffer[telemetry.AggregatePoint]
	history   *series.Buffer[telemetry.Sample]
}

// New creates a controller. surface may be nil when only the chart model is needed.
func New(opts Options, fetcher Fetcher, dialer Dialer, sink Sink, surface chart.Surface) *Controller {
	opts = opts.withDefaults()
	if sink == nil {
		sink = NopSink{}
	}

	c := &Controller{
		opts:    opts,
		fetcher: fetcher,
		dialer:  dialer,
		sink:    sink,
		chart:   chart.New(surface, opts.ChartSize, opts.ChartOptions),
		clock:   opts.Clock,
		log:     opts.Logger,
		events:  make(chan event, eventBuffer),
		latest:  map[string]telemetry.Sample{},
		points:  series.New[telemetry.AggregatePoint](opts.Capacity),
		history: series.New[telemetry.Sample](opts.Capacity),
	}
	c.chart.SetLogger(opts.Logger)
	return c
}

// State returns the current connection state. Safe from any goroutine.
func (c *Controller) State() ConnState {
	return ConnState(c.state.Load())
}

// Bootstrapped reports whether the first fetch has completed, successfully or not.
func (c *Controller) Bootstrapped() bool {
	return c.bootstrapped.Load()
}

// Chart returns the controller's chart. Only read it from Sink callbacks.
func (c *Controller) Chart() *chart.Chart {
	return c.chart
}

// Run drives the controller until ctx is cancelled. It always returns nil
// after cancellation; transport failures are retried, never returned.
func (c *Controller) Run(ctx context.Context) error {
	if c.opts.Mode == ModeDetail && c.opts.Hostname == "" {
		return errors.New(errors.ErrConfig, "Detail view needs a hostname", "Pass a hostname: hwmon host <hostname>")
	}
	if !c.running.CompareAndSwap(false, true) {
		return errors.New(errors.ErrConfig, "Controller is already running", "")
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	ticker := c.clock.NewTicker(c.opts.RefreshInterval)
	defer ticker.Stop()
	defer c.teardown()

	c.log.Debug("starting %s sync", c.opts.Mode)
	c.fetch(ctx)
	c.connect(ctx)

	for {
		var reconnectC <-chan time.Time
		if c.reconnect != nil {
			reconnectC = c.reconnect.C()
		}

		select {
		case <-ctx.Done():
			return nil
		case ev := <-c.events:
			c.handle(ctx, ev)
		case <-reconnectC:
			c.reconnect = nil
			c.connect(ctx)
		case <-ticker.C():
			c.refresh(ctx)
		}
	}
}

func (c *Controller) teardown() {
	if c.reconnect != nil {
		c.reconnect.Stop()
		c.reconnect = nil
	}
	if c.stream != nil {
		c.stream.Close()
		c.stream = nil
	}
	c.setState(StateDisconnected)
	c.log.Debug("%s sync stopped", c.opts.Mode)
}

func (c *Controller) setState(s ConnState) {
	c.state.Store(int32(s))
}

// send delivers ev to the loop unless ctx ends first.
func (c *Controller) send(ctx context.Context, ev event) bool {
	select {
	case c.events <- ev:
		return true
	case <-ctx.Done():
		return false
	}
}

func (c *Controller) fetch(ctx context.Context) {
	go func() {
		fctx, cancel := context.WithTimeout(ctx, c.opts.FetchTimeout)
		defer cancel()

		var res fetchResult
		switch c.opts.Mode {
		case ModeAggregate:
			res.latest, res.err = c.fetcher.FetchLatest(fctx)
		case ModeDetail:
			var h telemetry.HostHistory
			h, res.err = c.fetcher.FetchHost(fctx, c.opts.Hostname, c.opts.HistoryLimit)
			res.history = h.HardwareInfo
		}
		c.send(ctx, res)
	}()
}

func (c *Controller) connect(ctx context.Context) {
	c.gen++
	gen := c.gen
	c.setState(StateConnecting)
	c.log.Debug("connecting push channel (attempt %d)", gen)

	go func() {
		stream, err := c.dialer.Dial(ctx)
		if !c.send(ctx, dialResult{gen: gen, stream: stream, err: err}) && stream != nil {
			stream.Close()
		}
	}()
}

func (c *Controller) read(ctx context.Context, gen int, stream Stream) {
	for {
		raw, err := stream.Read()
		if err != nil {
			c.send(ctx, closedEvent{gen: gen, err: err})
			return
		}
		if !c.send(ctx, frameEvent{gen: gen, raw: raw}) {
			return
		}
	}
}

func (c *Controller) handle(ctx context.Context, ev event) {
	switch ev := ev.(type) {
	case fetchResult:
		c.applyFetch(ev)
	case dialResult:
		c.applyDial(ctx, ev)
	case frameEvent:
		if ev.gen == c.gen {
			c.applyFrame(ev.raw)
		}
	case closedEvent:
		if ev.gen != c.gen || c.stream == nil {
			return
		}
		c.stream.Close()
		c.stream = nil
		c.disconnected(ev.err)
	}
}

func (c *Controller) applyDial(ctx context.Context, res dialResult) {
	if res.gen != c.gen {
		if res.stream != nil {
			res.stream.Close()
		}
		return
	}
	if res.err != nil {
		c.disconnected(res.err)
		return
	}

	c.stream = res.stream
	c.setState(StateConnected)
	c.log.Debug("push channel connected")
	c.sink.ConnectionStatus(true)
	go c.read(ctx, res.gen, res.stream)
}

// disconnected schedules the single pending reconnect before telling the sink.
func (c *Controller) disconnected(err error) {
	c.setState(StateDisconnected)
	c.log.Warn("push channel lost: %v (retrying in %s)", err, c.opts.ReconnectDelay)
	if c.reconnect == nil {
		c.reconnect = c.clock.NewTimer(c.opts.ReconnectDelay)
	}
	c.sink.ConnectionStatus(false)
}

func (c *Controller) applyFetch(res fetchResult) {
	c.bootstrapped.Store(true)

	if res.err != nil {
		c.log.Warn("fetch failed: %v", res.err)
		c.sink.FetchFailed(res.err)
		c.publish()
		return
	}

	switch c.opts.Mode {
	case ModeAggregate:
		c.latest = res.latest
		c.appendPoint()
	case ModeDetail:
		fresh := series.New[telemetry.Sample](c.opts.Capacity)
		for _, s := range res.history {
			fresh.Append(s)
		}
		c.history = fresh
	}
	c.publish()
}

func (c *Controller) applyFrame(raw []byte) {
	env, err := telemetry.DecodeEnvelope(raw)
	if err != nil {
		c.log.Warn("dropping frame: %v", err)
		return
	}
	if !env.IsSnapshot() {
		c.log.Debug("ignoring %q frame", env.Type)
		return
	}

	snapshot, err := telemetry.DecodeSnapshot(env.Data)
	if err != nil {
		c.log.Warn("dropping %s frame: %v", env.Type, err)
		return
	}

	switch c.opts.Mode {
	case ModeAggregate:
		c.latest = snapshot
		c.appendPoint()
	case ModeDetail:
		s, ok := snapshot[c.opts.Hostname]
		if !ok {
			return
		}
		c.history.Append(s)
	}
	c.publish()
}

func (c *Controller) refresh(ctx context.Context) {
	switch c.opts.Mode {
	case ModeAggregate:
		c.appendPoint()
		c.publish()
	case ModeDetail:
		c.fetch(ctx)
	}
}

func (c *Controller) appendPoint() {
	if p, ok := telemetry.Aggregate(c.latest, c.clock.Now()); ok {
		c.points.Append(p)
	}
}

// publish recomputes the summary, rebuilds the chart model and redraws.
func (c *Controller) publish() {
	m := c.chart.Model()
	switch c.opts.Mode {
	case ModeAggregate:
		c.sink.MetricSummary(telemetry.Summarize(c.latest))
		c.sink.HostList(telemetry.HostEntries(c.latest, c.clock.Now(), c.opts.StaleAfter))
		FillAggregateModel(m, c.points.Snapshot(), c.opts.LabelLayout, c.opts.Location)
	case ModeDetail:
		latest, ok := c.history.Latest()
		c.sink.HostDetail(c.opts.Hostname, latest, ok)
		FillDetailModel(m, c.history.Snapshot(), c.opts.LabelLayout, c.opts.Location)
	}
	c.chart.Update()
	c.sink.ChartUpdated(c.chart)
}

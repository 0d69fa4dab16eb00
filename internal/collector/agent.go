package collector

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"k8s.io/utils/clock"

	"github.com/rileyhilliard/hwmon/internal/errors"
	"github.com/rileyhilliard/hwmon/internal/logger"
	"github.com/rileyhilliard/hwmon/internal/telemetry"
)

// DefaultInterval is how often the agent reports when no interval is set.
const DefaultInterval = 30 * time.Second

// AgentOptions configures an Agent.
type AgentOptions struct {
	ServerURL string
	Interval  time.Duration
	Timeout   time.Duration
	Client    *http.Client
	Clock     clock.WithTicker
	Logger    logger.Logger
}

// Agent periodically collects a sample and POSTs it to the server.
type Agent struct {
	collector *Collector
	endpoint  string
	interval  time.Duration
	client    *http.Client
	clock     clock.WithTicker
	log       logger.Logger
}

// NewAgent creates an agent reporting to opts.ServerURL.
func NewAgent(c *Collector, opts AgentOptions) *Agent {
	if opts.Interval <= 0 {
		opts.Interval = DefaultInterval
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 10 * time.Second
	}
	if opts.Client == nil {
		opts.Client = &http.Client{Timeout: opts.Timeout}
	}
	if opts.Clock == nil {
		opts.Clock = clock.RealClock{}
	}
	if opts.Logger == nil {
		opts.Logger = logger.NewEnvLogger("[agent]")
	}
	return &Agent{
		collector: c,
		endpoint:  strings.TrimRight(opts.ServerURL, "/") + "/api/hardware",
		interval:  opts.Interval,
		client:    opts.Client,
		clock:     opts.Clock,
		log:       opts.Logger,
	}
}

// Run reports immediately and then on every tick until ctx is cancelled.
// Failures are logged and retried on the next tick.
func (a *Agent) Run(ctx context.Context) error {
	ticker := a.clock.NewTicker(a.interval)
	defer ticker.Stop()

	for {
		if err := a.PushOnce(ctx); err != nil {
			if ctx.Err() != nil {
				return nil
			}
			a.log.Warn("%s", strings.TrimSpace(err.Error()))
		}

		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C():
		}
	}
}

// PushOnce collects one sample and sends it.
func (a *Agent) PushOnce(ctx context.Context) error {
	sample, err := a.collector.Collect(ctx)
	if err != nil {
		return err
	}
	if err := a.push(ctx, sample); err != nil {
		return err
	}
	a.log.Debug("reported %s", sample.Hostname)
	return nil
}

func (a *Agent) push(ctx context.Context, sample telemetry.Sample) error {
	body, err := json.Marshal(sample)
	if err != nil {
		return errors.WrapWithCode(err, errors.ErrCollect, "Couldn't encode sample", "")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.endpoint, bytes.NewReader(body))
	if err != nil {
		return errors.WrapWithCode(err, errors.ErrCollect,
			"Invalid server URL", "Check server.url in your config.")
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := a.client.Do(req)
	if err != nil {
		return errors.WrapWithCode(err, errors.ErrCollect,
			"Couldn't reach "+a.endpoint,
			"Is the server running? Start one with 'hwmon serve'.")
	}
	defer resp.Body.Close()

	if resp.StatusCode/100 != 2 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return errors.New(errors.ErrCollect,
			fmt.Sprintf("Server rejected sample: %s %s", resp.Status, strings.TrimSpace(string(msg))), "")
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}

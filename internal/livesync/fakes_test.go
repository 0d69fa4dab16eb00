package livesync

import (
	"context"
	"encoding/json"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	testingclock "k8s.io/utils/clock/testing"

	"github.com/rileyhilliard/hwmon/internal/chart"
	"github.com/rileyhilliard/hwmon/internal/logger"
	"github.com/rileyhilliard/hwmon/internal/telemetry"
)

const (
	waitFor = 2 * time.Second
	tick    = 5 * time.Millisecond
)

var epoch = time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)

type fakeFetcher struct {
	mu      sync.Mutex
	latest  map[string]telemetry.Sample
	history []telemetry.Sample
	err     error
	calls   int
	limits  []int
}

func (f *fakeFetcher) FetchLatest(context.Context) (map[string]telemetry.Sample, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	out := make(map[string]telemetry.Sample, len(f.latest))
	for k, v := range f.latest {
		out[k] = v
	}
	return out, nil
}

func (f *fakeFetcher) FetchHost(_ context.Context, hostname string, limit int) (telemetry.HostHistory, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	f.limits = append(f.limits, limit)
	if f.err != nil {
		return telemetry.HostHistory{}, f.err
	}
	return telemetry.HostHistory{Hostname: hostname, HardwareInfo: append([]telemetry.Sample(nil), f.history...)}, nil
}

func (f *fakeFetcher) setHistory(h []telemetry.Sample) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.history = h
}

func (f *fakeFetcher) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

type fakeStream struct {
	frames chan []byte
	closed chan struct{}
	once   sync.Once
}

func newFakeStream() *fakeStream {
	return &fakeStream{frames: make(chan []byte, 8), closed: make(chan struct{})}
}

func (s *fakeStream) Read() ([]byte, error) {
	select {
	case f := <-s.frames:
		return f, nil
	case <-s.closed:
		return nil, io.EOF
	}
}

func (s *fakeStream) Close() error {
	s.once.Do(func() { close(s.closed) })
	return nil
}

func (s *fakeStream) isClosed() bool {
	select {
	case <-s.closed:
		return true
	default:
		return false
	}
}

func (s *fakeStream) push(t *testing.T, typ string, data interface{}) {
	t.Helper()
	payload, err := json.Marshal(data)
	require.NoError(t, err)
	raw, err := json.Marshal(telemetry.Envelope{Type: typ, Data: payload})
	require.NoError(t, err)
	s.frames <- raw
}

type fakeDialer struct {
	mu      sync.Mutex
	streams []*fakeStream
	fail    int
}

func (d *fakeDialer) Dial(context.Context) (Stream, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.fail > 0 {
		d.fail--
		d.streams = append(d.streams, nil)
		return nil, io.ErrUnexpectedEOF
	}
	s := newFakeStream()
	d.streams = append(d.streams, s)
	return s, nil
}

func (d *fakeDialer) Dials() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.streams)
}

func (d *fakeDialer) stream(i int) *fakeStream {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.streams[i]
}

type recordingSink struct {
	mu        sync.Mutex
	statuses  []bool
	summaries []telemetry.Summary
	hostLists [][]telemetry.HostEntry
	details   []telemetry.Sample
	models    []chart.Model
	fetchErrs []error
}

func (s *recordingSink) ConnectionStatus(connected bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.statuses = append(s.statuses, connected)
}

func (s *recordingSink) MetricSummary(sum telemetry.Summary) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.summaries = append(s.summaries, sum)
}

func (s *recordingSink) HostList(entries []telemetry.HostEntry) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.hostLists = append(s.hostLists, entries)
}

func (s *recordingSink) HostDetail(_ string, latest telemetry.Sample, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if ok {
		s.details = append(s.details, latest)
	}
}

func (s *recordingSink) ChartUpdated(c *chart.Chart) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.models = append(s.models, *c.Model())
}

func (s *recordingSink) FetchFailed(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fetchErrs = append(s.fetchErrs, err)
}

func (s *recordingSink) Statuses() []bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]bool(nil), s.statuses...)
}

func (s *recordingSink) lastStatus() (bool, bool) {
	st := s.Statuses()
	if len(st) == 0 {
		return false, false
	}
	return st[len(st)-1], true
}

func (s *recordingSink) Models() []chart.Model {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]chart.Model(nil), s.models...)
}

func (s *recordingSink) lastModel() chart.Model {
	m := s.Models()
	if len(m) == 0 {
		return chart.Model{}
	}
	return m[len(m)-1]
}

func (s *recordingSink) Summaries() []telemetry.Summary {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]telemetry.Summary(nil), s.summaries...)
}

func (s *recordingSink) HostLists() [][]telemetry.HostEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([][]telemetry.HostEntry(nil), s.hostLists...)
}

func (s *recordingSink) Details() []telemetry.Sample {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]telemetry.Sample(nil), s.details...)
}

func (s *recordingSink) FetchErrors() []error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]error(nil), s.fetchErrs...)
}

type harness struct {
	ctrl    *Controller
	clock   *testingclock.FakeClock
	fetcher *fakeFetcher
	dialer  *fakeDialer
	sink    *recordingSink
	log     *logger.BufferLogger
	cancel  context.CancelFunc
	done    chan error
}

func newHarness(t *testing.T, opts Options, fetcher *fakeFetcher) *harness {
	t.Helper()
	h := &harness{
		clock:   testingclock.NewFakeClock(epoch),
		fetcher: fetcher,
		dialer:  &fakeDialer{},
		sink:    &recordingSink{},
		log:     logger.NewBufferLogger(),
	}
	opts.Clock = h.clock
	opts.Logger = h.log
	opts.Location = time.UTC
	h.ctrl = New(opts, h.fetcher, h.dialer, h.sink, chart.NewRecorder())
	return h
}

func (h *harness) start(t *testing.T) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	h.cancel = cancel
	h.done = make(chan error, 1)
	go func() { h.done <- h.ctrl.Run(ctx) }()

	t.Cleanup(func() {
		cancel()
		select {
		case err := <-h.done:
			assert.NoError(t, err)
		case <-time.After(waitFor):
			t.Error("controller did not stop")
		}
	})
}

func (h *harness) waitConnected(t *testing.T) {
	t.Helper()
	require.Eventually(t, func() bool {
		last, ok := h.sink.lastStatus()
		return ok && last && h.ctrl.State() == StateConnected
	}, waitFor, tick)
}

func (h *harness) waitModels(t *testing.T, n int) {
	t.Helper()
	require.Eventually(t, func() bool { return len(h.sink.Models()) >= n }, waitFor, tick)
}

func sample(host string, ts time.Time, cpu, mem float64, disks ...float64) telemetry.Sample {
	s := telemetry.Sample{
		Hostname:  host,
		Timestamp: ts,
		CPU:       &telemetry.CPUInfo{Usage: cpu},
		Memory:    &telemetry.MemoryInfo{Usage: mem},
	}
	if len(disks) > 0 {
		s.Disk = &telemetry.DiskInfo{}
		for _, d := range disks {
			s.Disk.Partitions = append(s.Disk.Partitions, telemetry.PartitionUsage{Usage: d})
		}
	}
	return s
}

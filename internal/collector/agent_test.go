package collector

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	testingclock "k8s.io/utils/clock/testing"

	hwerrors "github.com/rileyhilliard/hwmon/internal/errors"
	"github.com/rileyhilliard/hwmon/internal/logger"
	"github.com/rileyhilliard/hwmon/internal/telemetry"
)

// ingestServer records every sample POSTed to /api/hardware.
type ingestServer struct {
	mu      sync.Mutex
	samples []telemetry.Sample
	status  int
}

func (s *ingestServer) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost || r.URL.Path != "/api/hardware" {
		http.NotFound(w, r)
		return
	}
	var sample telemetry.Sample
	if err := json.NewDecoder(r.Body).Decode(&sample); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.status != 0 {
		http.Error(w, "nope", s.status)
		return
	}
	s.samples = append(s.samples, sample)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"message":"received"}`))
}

func (s *ingestServer) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.samples)
}

func (s *ingestServer) setStatus(code int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.status = code
}

func TestAgent_PushOnce(t *testing.T) {
	ingest := &ingestServer{}
	ts := httptest.NewServer(ingest)
	defer ts.Close()

	agent := NewAgent(newTestCollector(newFakeSource(), logger.Noop()), AgentOptions{
		ServerURL: ts.URL + "/",
		Logger:    logger.Noop(),
	})

	require.NoError(t, agent.PushOnce(context.Background()))
	require.Equal(t, 1, ingest.count())
	assert.Equal(t, "web-1", ingest.samples[0].Hostname)
	assert.Equal(t, 37.5, ingest.samples[0].CPUUsage())
}

func TestAgent_PushErrors(t *testing.T) {
	t.Run("server rejects", func(t *testing.T) {
		ingest := &ingestServer{status: http.StatusBadRequest}
		ts := httptest.NewServer(ingest)
		defer ts.Close()

		agent := NewAgent(newTestCollector(newFakeSource(), logger.Noop()), AgentOptions{ServerURL: ts.URL, Logger: logger.Noop()})
		err := agent.PushOnce(context.Background())
		require.Error(t, err)
		assert.True(t, hwerrors.IsCode(err, hwerrors.ErrCollect))
		assert.Contains(t, err.Error(), "400")
	})

	t.Run("unreachable", func(t *testing.T) {
		ts := httptest.NewServer(http.NotFoundHandler())
		url := ts.URL
		ts.Close()

		agent := NewAgent(newTestCollector(newFakeSource(), logger.Noop()), AgentOptions{ServerURL: url, Logger: logger.Noop()})
		err := agent.PushOnce(context.Background())
		require.Error(t, err)
		assert.True(t, hwerrors.IsCode(err, hwerrors.ErrCollect))
	})
}

func TestAgent_RunReportsOnEveryTick(t *testing.T) {
	ingest := &ingestServer{}
	ts := httptest.NewServer(ingest)
	defer ts.Close()

	clk := testingclock.NewFakeClock(epoch)
	log := logger.NewBufferLogger()
	agent := NewAgent(newTestCollector(newFakeSource(), logger.Noop()), AgentOptions{
		ServerURL: ts.URL,
		Interval:  30 * time.Second,
		Clock:     clk,
		Logger:    log,
	})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- agent.Run(ctx) }()

	require.Eventually(t, func() bool { return ingest.count() == 1 }, 2*time.Second, 5*time.Millisecond)

	// A failed push is logged and the loop keeps going.
	ingest.setStatus(http.StatusServiceUnavailable)
	clk.Step(30 * time.Second)
	require.Eventually(t, func() bool { return log.Contains("warn", "503") }, 2*time.Second, 5*time.Millisecond)

	ingest.setStatus(0)
	clk.Step(30 * time.Second)
	require.Eventually(t, func() bool { return ingest.count() == 2 }, 2*time.Second, 5*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

func TestNewAgent_Defaults(t *testing.T) {
	agent := NewAgent(New(newFakeSource(), "", logger.Noop()), AgentOptions{ServerURL: "http://example.test/"})
	assert.Equal(t, DefaultInterval, agent.interval)
	assert.Equal(t, "http://example.test/api/hardware", agent.endpoint)
	assert.NotNil(t, agent.client)
}

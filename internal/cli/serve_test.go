package cli

import (
	"bytes"
	"context"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rileyhilliard/hwmon/internal/config"
	"github.com/rileyhilliard/hwmon/internal/errors"
	"github.com/rileyhilliard/hwmon/internal/logger"
)

func TestServerOptions(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Serve.Addr = "127.0.0.1:9999"
	cfg.Serve.MaxHosts = 7
	cfg.Serve.MaxRecords = 9
	cfg.Serve.RateLimit = 2.5
	cfg.Serve.RateBurst = 4

	t.Run("from config", func(t *testing.T) {
		opts := serverOptions(cfg, "")
		assert.Equal(t, "127.0.0.1:9999", opts.Addr)
		assert.Equal(t, 7, opts.MaxHosts)
		assert.Equal(t, 9, opts.MaxRecords)
		assert.Equal(t, 2.5, opts.RateLimit)
		assert.Equal(t, 4, opts.RateBurst)
		assert.Equal(t, io.Discard, opts.AccessLog)
	})

	t.Run("addr flag wins", func(t *testing.T) {
		opts := serverOptions(cfg, ":7070")
		assert.Equal(t, ":7070", opts.Addr)
	})

	t.Run("access log with debug", func(t *testing.T) {
		logger.SetDebug(true)
		defer logger.SetDebug(false)
		opts := serverOptions(cfg, "")
		assert.NotEqual(t, io.Discard, opts.AccessLog)
	})
}

func TestRunServeListenError(t *testing.T) {
	cfg := config.DefaultConfig()
	var out bytes.Buffer

	err := runServe(context.Background(), cfg, "256.0.0.1:bad", &out)
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrServer))
	assert.Contains(t, out.String(), "demo telemetry server")
	assert.Contains(t, out.String(), "listening on 256.0.0.1:bad")
}

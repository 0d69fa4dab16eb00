package telemetry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rileyhilliard/hwmon/internal/errors"
)

func TestDecodeEnvelope(t *testing.T) {
	env, err := DecodeEnvelope([]byte(`{"type":"hardware_info","data":{"a":{}},"time":"2026-01-01T00:00:00Z"}`))
	require.NoError(t, err)
	assert.Equal(t, MessageHardwareInfo, env.Type)
	assert.True(t, env.IsSnapshot())
	assert.JSONEq(t, `{"a":{}}`, string(env.Data))

	env, err = DecodeEnvelope([]byte(`{"type":"ping"}`))
	require.NoError(t, err)
	assert.False(t, env.IsSnapshot())

	_, err = DecodeEnvelope([]byte(`{"type":`))
	assert.True(t, errors.IsCode(err, errors.ErrDecode))
}

func TestDecodeEnvelope_TimeShapes(t *testing.T) {
	tests := []struct {
		name string
		time string
	}{
		{name: "unix seconds", time: `,"time":1767225600`},
		{name: "rfc3339 string", time: `,"time":"2026-01-01T00:00:00Z"`},
		{name: "null", time: `,"time":null`},
		{name: "object", time: `,"time":{"sec":1}`},
		{name: "missing", time: ``},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env, err := DecodeEnvelope([]byte(`{"type":"host_list","data":{"a":{"hostname":"a"}}` + tt.time + `}`))
			require.NoError(t, err)
			assert.True(t, env.IsSnapshot())

			snap, err := DecodeSnapshot(env.Data)
			require.NoError(t, err)
			assert.Contains(t, snap, "a")
		})
	}
}

func TestDecodeSnapshot(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		wantCPU map[string]float64
		wantErr bool
	}{
		{
			name:    "bare samples",
			raw:     `{"hostA":{"hostname":"hostA","cpu":{"usage":10},"memory":{"usage":20}}}`,
			wantCPU: map[string]float64{"hostA": 10},
		},
		{
			name:    "hostname filled from key",
			raw:     `{"hostB":{"cpu":{"usage":5}}}`,
			wantCPU: map[string]float64{"hostB": 5},
		},
		{
			name: "history entries use newest sample",
			raw: `{"hostA":{"hostname":"hostA","hardware_info":[
				{"cpu":{"usage":1}},
				{"cpu":{"usage":2}},
				{"cpu":{"usage":3}}
			]}}`,
			wantCPU: map[string]float64{"hostA": 3},
		},
		{
			name:    "empty history and null entries dropped",
			raw:     `{"hostA":{"hardware_info":[]},"hostB":null,"hostC":{"cpu":{"usage":7}}}`,
			wantCPU: map[string]float64{"hostC": 7},
		},
		{
			name:    "empty map",
			raw:     `{}`,
			wantCPU: map[string]float64{},
		},
		{name: "not an object", raw: `[1,2,3]`, wantErr: true},
		{name: "entry not an object", raw: `{"hostA":42}`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			snap, err := DecodeSnapshot([]byte(tt.raw))
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.IsCode(err, errors.ErrDecode))
				return
			}
			require.NoError(t, err)

			got := make(map[string]float64, len(snap))
			for host, s := range snap {
				assert.Equal(t, host, s.Hostname)
				got[host] = s.CPUUsage()
			}
			assert.Equal(t, tt.wantCPU, got)
		})
	}
}

func TestDecodeHistory(t *testing.T) {
	h, err := DecodeHistory([]byte(`{"hostname":"db-1","hardware_info":[{"cpu":{"usage":1}},{"cpu":{"usage":2}}]}`))
	require.NoError(t, err)
	assert.Equal(t, "db-1", h.Hostname)
	require.Len(t, h.HardwareInfo, 2)
	assert.Equal(t, 2.0, h.HardwareInfo[1].CPUUsage())

	h, err = DecodeHistory([]byte(`{"hostname":"db-1"}`))
	require.NoError(t, err)
	assert.NotNil(t, h.HardwareInfo)
	assert.Empty(t, h.HardwareInfo)

	_, err = DecodeHistory([]byte(`<html>`))
	assert.True(t, errors.IsCode(err, errors.ErrDecode))
}

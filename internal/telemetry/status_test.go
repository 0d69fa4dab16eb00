package telemetry

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestIsOnline(t *testing.T) {
	now := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name   string
		age    time.Duration
		online bool
	}{
		{name: "just reported", age: 0, online: true},
		{name: "four minutes fifty nine", age: 4*time.Minute + 59*time.Second, online: true},
		{name: "exactly five minutes", age: 5 * time.Minute, online: false},
		{name: "five minutes one", age: 5*time.Minute + time.Second, online: false},
		{name: "an hour ago", age: time.Hour, online: false},
		{name: "clock skew into the future", age: -30 * time.Second, online: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.online, IsOnline(now.Add(-tt.age), now))
		})
	}
}

func TestClassify_CustomThreshold(t *testing.T) {
	now := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)

	assert.True(t, Classify(now.Add(-50*time.Second), now, time.Minute))
	assert.False(t, Classify(now.Add(-70*time.Second), now, time.Minute))
	assert.True(t, Classify(now.Add(-4*time.Minute), now, 0), "zero threshold falls back to StaleAfter")
}

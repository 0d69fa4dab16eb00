package cli

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rileyhilliard/hwmon/internal/errors"
)

func TestParseDuration(t *testing.T) {
	tests := []struct {
		name     string
		flag     string
		fallback time.Duration
		want     time.Duration
		wantErr  string
	}{
		{name: "empty uses fallback", flag: "", fallback: 30 * time.Second, want: 30 * time.Second},
		{name: "seconds", flag: "10s", want: 10 * time.Second},
		{name: "milliseconds", flag: "500ms", want: 500 * time.Millisecond},
		{name: "compound", flag: "1m30s", want: 90 * time.Second},
		{name: "missing unit", flag: "10", wantErr: "doesn't look like a valid interval"},
		{name: "garbage", flag: "soon", wantErr: "doesn't look like a valid interval"},
		{name: "zero", flag: "0s", wantErr: "interval must be positive"},
		{name: "negative", flag: "-5s", wantErr: "interval must be positive"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDuration("interval", tt.flag, tt.fallback)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.True(t, errors.IsCode(err, errors.ErrConfig))
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

package cli

import (
	"fmt"
	"time"

	"github.com/rileyhilliard/hwmon/internal/errors"
)

// ParseDuration parses a duration flag. An empty flag returns fallback.
// Zero and negative values are rejected.
func ParseDuration(name, flag string, fallback time.Duration) (time.Duration, error) {
	if flag == "" {
		return fallback, nil
	}

	d, err := time.ParseDuration(flag)
	if err != nil {
		return 0, errors.WrapWithCode(err, errors.ErrConfig,
			fmt.Sprintf("'%s' doesn't look like a valid %s", flag, name),
			"Try something like 5s, 2m, or 500ms.")
	}
	if d <= 0 {
		return 0, errors.New(errors.ErrConfig,
			fmt.Sprintf("%s must be positive, got %s", name, flag),
			"Try something like 5s, 2m, or 500ms.")
	}
	return d, nil
}

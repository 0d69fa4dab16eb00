package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/rileyhilliard/hwmon/internal/chart"
	"github.com/rileyhilliard/hwmon/internal/errors"
)

// MinCapacity is the smallest chart buffer that can draw a line.
const MinCapacity = 2

// Validate checks the config and reports every problem at once.
func Validate(cfg *Config) error {
	if cfg == nil {
		return errors.New(errors.ErrConfig,
			"Config is nil",
			"This is unexpected - try reloading the configuration.")
	}

	if cfg.Version > CurrentConfigVersion {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("This config is from the future (version %d, but hwmon only knows up to %d)", cfg.Version, CurrentConfigVersion),
			"Grab the latest hwmon release.")
	}

	var problems []string
	problems = append(problems, validateServer(cfg.Server)...)
	problems = append(problems, validateSync(cfg.Sync)...)
	problems = append(problems, validateChart(cfg.Chart)...)
	problems = append(problems, validateServe(cfg.Serve)...)
	problems = append(problems, validateDuration("agent.interval", cfg.Agent.Interval)...)

	if len(problems) == 0 {
		return nil
	}

	msg := "Config has a problem: " + problems[0]
	if len(problems) > 1 {
		msg = fmt.Sprintf("Config has %d problems:\n    - %s", len(problems), strings.Join(problems, "\n    - "))
	}
	return errors.New(errors.ErrConfig, msg, "Fix these in .hwmon.yaml or the matching HWMON_* variables.")
}

func validateServer(s ServerConfig) []string {
	if strings.TrimSpace(s.URL) == "" {
		return []string{"server.url is empty - point it at your telemetry server, e.g. http://localhost:8080"}
	}
	u, err := url.Parse(s.URL)
	if err != nil {
		return []string{fmt.Sprintf("server.url '%s' doesn't parse: %v", s.URL, err)}
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return []string{fmt.Sprintf("server.url '%s' needs to start with http:// or https://", s.URL)}
	}
	if u.Host == "" {
		return []string{fmt.Sprintf("server.url '%s' has no host", s.URL)}
	}
	return nil
}

func validateSync(s SyncConfig) []string {
	var problems []string
	problems = append(problems, validateDuration("sync.reconnect_delay", s.ReconnectDelay)...)
	problems = append(problems, validateDuration("sync.refresh_interval", s.RefreshInterval)...)
	problems = append(problems, validateDuration("sync.fetch_timeout", s.FetchTimeout)...)
	problems = append(problems, validateDuration("sync.stale_after", s.StaleAfter)...)
	problems = append(problems, validateCapacity("sync.dashboard_capacity", s.DashboardCapacity)...)
	problems = append(problems, validateCapacity("sync.detail_capacity", s.DetailCapacity)...)
	if s.HistoryLimit < 1 {
		problems = append(problems, fmt.Sprintf("sync.history_limit needs to be at least 1 (got %d)", s.HistoryLimit))
	}
	return problems
}

func validateChart(c ChartConfig) []string {
	var problems []string
	if c.Width <= 2*chart.Padding {
		problems = append(problems, fmt.Sprintf("chart.width %d leaves no room to plot - it needs to be more than %d", c.Width, int(2*chart.Padding)))
	}
	if c.Height <= 2*chart.Padding {
		problems = append(problems, fmt.Sprintf("chart.height %d leaves no room to plot - it needs to be more than %d", c.Height, int(2*chart.Padding)))
	}
	return problems
}

func validateServe(s ServeConfig) []string {
	var problems []string
	if strings.TrimSpace(s.Addr) == "" {
		problems = append(problems, "serve.addr is empty - try ':8080'")
	}
	if s.MaxHosts < 1 {
		problems = append(problems, fmt.Sprintf("serve.max_hosts needs to be at least 1 (got %d)", s.MaxHosts))
	}
	if s.MaxRecords < 1 {
		problems = append(problems, fmt.Sprintf("serve.max_records needs to be at least 1 (got %d)", s.MaxRecords))
	}
	if s.RateLimit <= 0 {
		problems = append(problems, fmt.Sprintf("serve.rate_limit needs to be positive (got %g)", s.RateLimit))
	}
	if s.RateBurst < 1 {
		problems = append(problems, fmt.Sprintf("serve.rate_burst needs to be at least 1 (got %d)", s.RateBurst))
	}
	return problems
}

func validateDuration(key string, d time.Duration) []string {
	if d <= 0 {
		return []string{fmt.Sprintf("%s needs to be positive (got %v) - try something like '5s' or '1m'", key, d)}
	}
	return nil
}

func validateCapacity(key string, n int) []string {
	if n < MinCapacity {
		return []string{fmt.Sprintf("%s needs to be at least %d to draw a line (got %d)", key, MinCapacity, n)}
	}
	return nil
}

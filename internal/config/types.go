package config

import "time"

// CurrentConfigVersion is the schema version for the config file.
// Increment when making breaking changes to the config structure.
const CurrentConfigVersion = 1

// Config represents the complete .hwmon.yaml configuration file.
type Config struct {
	Version int          `yaml:"version" mapstructure:"version"`
	Server  ServerConfig `yaml:"server" mapstructure:"server"`
	Sync    SyncConfig   `yaml:"sync" mapstructure:"sync"`
	Chart   ChartConfig  `yaml:"chart" mapstructure:"chart"`
	Serve   ServeConfig  `yaml:"serve" mapstructure:"serve"`
	Agent   AgentConfig  `yaml:"agent" mapstructure:"agent"`
}

// ServerConfig points the client commands at a telemetry server.
type ServerConfig struct {
	// URL is the base URL of the REST API. The websocket endpoint is derived from it.
	URL string `yaml:"url" mapstructure:"url"`
}

// SyncConfig controls how live views stay in sync with the server.
type SyncConfig struct {
	// ReconnectDelay is the fixed wait before re-dialing a lost push channel.
	ReconnectDelay time.Duration `yaml:"reconnect_delay" mapstructure:"reconnect_delay"`

	// RefreshInterval is how often a view refreshes on its own.
	RefreshInterval time.Duration `yaml:"refresh_interval" mapstructure:"refresh_interval"`

	// FetchTimeout bounds each REST request.
	FetchTimeout time.Duration `yaml:"fetch_timeout" mapstructure:"fetch_timeout"`

	// DashboardCapacity is the number of aggregate points kept on the dashboard chart.
	DashboardCapacity int `yaml:"dashboard_capacity" mapstructure:"dashboard_capacity"`

	// DetailCapacity is the number of samples kept on a host detail chart.
	DetailCapacity int `yaml:"detail_capacity" mapstructure:"detail_capacity"`

	// HistoryLimit is the limit passed when fetching a host's history.
	HistoryLimit int `yaml:"history_limit" mapstructure:"history_limit"`

	// StaleAfter is when a host stops being shown as online.
	StaleAfter time.Duration `yaml:"stale_after" mapstructure:"stale_after"`
}

// ChartConfig sets the virtual canvas the charts are laid out on.
type ChartConfig struct {
	Width  int  `yaml:"width" mapstructure:"width"`
	Height int  `yaml:"height" mapstructure:"height"`
	Legend bool `yaml:"legend" mapstructure:"legend"`
}

// ServeConfig configures the bundled demo server.
type ServeConfig struct {
	Addr       string  `yaml:"addr" mapstructure:"addr"`
	MaxHosts   int     `yaml:"max_hosts" mapstructure:"max_hosts"`
	MaxRecords int     `yaml:"max_records" mapstructure:"max_records"`
	RateLimit  float64 `yaml:"rate_limit" mapstructure:"rate_limit"`
	RateBurst  int     `yaml:"rate_burst" mapstructure:"rate_burst"`
}

// AgentConfig configures the local collection agent.
type AgentConfig struct {
	// Interval between collections.
	Interval time.Duration `yaml:"interval" mapstructure:"interval"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Version: CurrentConfigVersion,
		Server: ServerConfig{
			URL: "http://localhost:8080",
		},
		Sync: SyncConfig{
			ReconnectDelay:    5 * time.Second,
			RefreshInterval:   30 * time.Second,
			FetchTimeout:      10 * time.Second,
			DashboardCapacity: 20,
			DetailCapacity:    100,
			HistoryLimit:      100,
			StaleAfter:        5 * time.Minute,
		},
		Chart: ChartConfig{
			Width:  800,
			Height: 300,
			Legend: true,
		},
		Serve: ServeConfig{
			Addr:       ":8080",
			MaxHosts:   100,
			MaxRecords: 100,
			RateLimit:  100,
			RateBurst:  200,
		},
		Agent: AgentConfig{
			Interval: 30 * time.Second,
		},
	}
}

package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/rileyhilliard/hwmon/internal/errors"
)

const (
	// ConfigFileName is the default config file name.
	ConfigFileName = ".hwmon.yaml"
	// GlobalConfigDir is the directory for global config.
	GlobalConfigDir = ".config/hwmon"
	// GlobalConfigFile is the global config file name.
	GlobalConfigFile = "config.yaml"
	// EnvPrefix prefixes environment overrides, e.g. HWMON_SERVER_URL.
	EnvPrefix = "HWMON"
	// DotEnvFile is loaded from the working directory before config resolution.
	DotEnvFile = ".env"
)

// Load reads config from the specified path. Environment overrides apply on top.
func Load(path string) (*Config, error) {
	v := newViper()
	v.SetConfigFile(path)

	if err := v.ReadInConfig(); err != nil {
		if os.IsNotExist(err) {
			return nil, errors.WrapWithCode(err, errors.ErrConfig,
				"Config file not found",
				"Run 'hwmon init' to create a config file, or specify one with --config")
		}
		return nil, errors.WrapWithCode(err, errors.ErrConfig,
			"Failed to read config file",
			"Check the file exists and is valid YAML")
	}

	return parseConfig(v, path)
}

// Find locates the config file using the search order:
// 1. Explicit path (from --config flag)
// 2. .hwmon.yaml in current directory
// 3. ~/.config/hwmon/config.yaml (global defaults)
//
// Returns the path to the config file, or empty string if not found.
func Find(explicit string) (string, error) {
	if explicit != "" {
		if _, err := os.Stat(explicit); err != nil {
			if os.IsNotExist(err) {
				return "", errors.WrapWithCode(err, errors.ErrConfig,
					"Specified config file not found: "+explicit,
					"Check the path is correct")
			}
			return "", errors.WrapWithCode(err, errors.ErrConfig,
				"Cannot access config file: "+explicit,
				"Check file permissions")
		}
		return explicit, nil
	}

	cwd, err := os.Getwd()
	if err != nil {
		return "", errors.WrapWithCode(err, errors.ErrConfig,
			"Cannot determine current directory",
			"Check directory permissions")
	}

	localConfig := filepath.Join(cwd, ConfigFileName)
	if _, err := os.Stat(localConfig); err == nil {
		return localConfig, nil
	}

	if home, _ := os.UserHomeDir(); home != "" {
		globalConfig := filepath.Join(home, GlobalConfigDir, GlobalConfigFile)
		if _, err := os.Stat(globalConfig); err == nil {
			return globalConfig, nil
		}
	}

	return "", nil
}

// Resolve is what commands call: load .env, find the config file, and fall
// back to defaults (still subject to HWMON_* overrides) when none exists.
// The second return value is the path that was loaded, if any.
func Resolve(explicit string) (*Config, string, error) {
	if err := LoadDotEnv(""); err != nil {
		return nil, "", err
	}

	path, err := Find(explicit)
	if err != nil {
		return nil, "", err
	}

	if path == "" {
		cfg, err := parseConfig(newViper(), "")
		return cfg, "", err
	}

	cfg, err := Load(path)
	return cfg, path, err
}

// LoadDotEnv loads KEY=value pairs from path (default .env) into the process
// environment. Variables already set win. A missing file is not an error.
func LoadDotEnv(path string) error {
	if path == "" {
		path = DotEnvFile
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig,
			"Failed to load "+path,
			"Check the file uses KEY=value lines")
	}
	return nil
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)
	return v
}

// parseConfig converts viper config to our Config struct with defaults merged in.
func parseConfig(v *viper.Viper, path string) (*Config, error) {
	cfg := DefaultConfig()

	if err := v.Unmarshal(cfg); err != nil {
		where := "your environment overrides"
		if path != "" {
			where = path
		}
		return nil, errors.WrapWithCode(err, errors.ErrConfig,
			"Invalid config format",
			"Check the values in "+where)
	}

	cfg.Server.URL = strings.TrimRight(strings.TrimSpace(cfg.Server.URL), "/")
	return cfg, nil
}

// setDefaults registers every key so AutomaticEnv can override keys the
// file does not mention.
func setDefaults(v *viper.Viper) {
	def := DefaultConfig()

	v.SetDefault("version", def.Version)
	v.SetDefault("server.url", def.Server.URL)

	v.SetDefault("sync.reconnect_delay", def.Sync.ReconnectDelay)
	v.SetDefault("sync.refresh_interval", def.Sync.RefreshInterval)
	v.SetDefault("sync.fetch_timeout", def.Sync.FetchTimeout)
	v.SetDefault("sync.dashboard_capacity", def.Sync.DashboardCapacity)
	v.SetDefault("sync.detail_capacity", def.Sync.DetailCapacity)
	v.SetDefault("sync.history_limit", def.Sync.HistoryLimit)
	v.SetDefault("sync.stale_after", def.Sync.StaleAfter)

	v.SetDefault("chart.width", def.Chart.Width)
	v.SetDefault("chart.height", def.Chart.Height)
	v.SetDefault("chart.legend", def.Chart.Legend)

	v.SetDefault("serve.addr", def.Serve.Addr)
	v.SetDefault("serve.max_hosts", def.Serve.MaxHosts)
	v.SetDefault("serve.max_records", def.Serve.MaxRecords)
	v.SetDefault("serve.rate_limit", def.Serve.RateLimit)
	v.SetDefault("serve.rate_burst", def.Serve.RateBurst)

	v.SetDefault("agent.interval", def.Agent.Interval)
}

package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/rileyhilliard/hwmon/internal/errors"
)

// sectionComments are written above each top-level key by Write.
var sectionComments = map[string]string{
	"version": "hwmon config. Every value can be overridden with HWMON_<SECTION>_<KEY>,\ne.g. HWMON_SERVER_URL or HWMON_SYNC_RECONNECT_DELAY.",
	"server":  "Telemetry server the dashboard and host views talk to.",
	"sync":    "Live view behavior. Durations use Go syntax (5s, 1m).",
	"chart":   "Virtual canvas size for charts. Rendered PNGs use it as pixels.",
	"serve":   "Demo server started by 'hwmon serve'. rate_limit is requests per second per client.",
	"agent":   "Local collection agent started by 'hwmon agent'.",
}

// Marshal encodes cfg as commented YAML.
func Marshal(cfg *Config) ([]byte, error) {
	var doc yaml.Node
	if err := doc.Encode(cfg); err != nil {
		return nil, fmt.Errorf("failed to encode config: %w", err)
	}

	for key, comment := range sectionComments {
		if k := findMapKey(&doc, key); k != nil {
			k.HeadComment = comment
		}
	}

	var buf strings.Builder
	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(2)
	if err := encoder.Encode(&doc); err != nil {
		return nil, fmt.Errorf("failed to encode config: %w", err)
	}
	encoder.Close()

	return []byte(buf.String()), nil
}

// Write saves cfg to path. An existing file is only replaced when force is set.
func Write(path string, cfg *Config, force bool) error {
	if _, err := os.Stat(path); err == nil && !force {
		return errors.New(errors.ErrConfig,
			"Config file already exists: "+path,
			"Use --force to overwrite it")
	}

	data, err := Marshal(cfg)
	if err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig, "Can't build config file", "")
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return errors.WrapWithCode(err, errors.ErrConfig,
				"Can't create "+dir,
				"Check directory permissions")
		}
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig,
			"Failed to write config file",
			"Check file permissions for "+path)
	}
	return nil
}

// findMapKey finds a key node in a mapping node by name.
func findMapKey(node *yaml.Node, key string) *yaml.Node {
	if node.Kind == yaml.DocumentNode && len(node.Content) > 0 {
		node = node.Content[0]
	}
	if node.Kind != yaml.MappingNode {
		return nil
	}

	for i := 0; i < len(node.Content)-1; i += 2 {
		keyNode := node.Content[i]
		if keyNode.Kind == yaml.ScalarNode && keyNode.Value == key {
			return keyNode
		}
	}

	return nil
}

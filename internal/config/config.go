package config

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"reportkit/internal/citation"
)

//go:embed default.yaml
var DefaultConfigYAML []byte

type Config struct {
	Server  Server  `yaml:"server"`
	Sources Sources `yaml:"sources"`
	Export  Export  `yaml:"export"`
	Logging Logging `yaml:"logging"`
}

type Server struct {
	Port int `yaml:"port"`
}

type Sources struct {
	// Rules override the built-in source classification table. Order
	// matters: the first matching keyword wins.
	Rules          []citation.Rule `yaml:"rules"`
	TimeoutSeconds int             `yaml:"timeout_seconds"`
}

type Export struct {
	Dir string `yaml:"dir"`
}

type Logging struct {
	Level string `yaml:"level"`
}

// ConfigDir returns the XDG config directory for reportkit.
func ConfigDir() string {
	return filepath.Join(homeDir(), ".config", "reportkit")
}

// ResolveConfigPath finds the config file following priority:
// explicit path > ~/.config/reportkit/config.yaml > ./config.yaml.
// Having no config file at all is fine; defaults apply.
func ResolveConfigPath(explicit string) (string, error) {
	if explicit != "" {
		if _, err := os.Stat(explicit); err != nil {
			return "", fmt.Errorf("config file not found: %s", explicit)
		}
		return explicit, nil
	}

	xdgConfig := filepath.Join(ConfigDir(), "config.yaml")
	if _, err := os.Stat(xdgConfig); err == nil {
		return xdgConfig, nil
	}

	cwdConfig := "config.yaml"
	if _, err := os.Stat(cwdConfig); err == nil {
		return cwdConfig, nil
	}

	return "", nil
}

// Load reads and parses a config YAML file. An empty path yields the
// defaults.
func Load(path string) (*Config, error) {
	if path == "" {
		return parse(nil)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	return parse(data)
}

// parse parses YAML bytes into a Config, applying defaults.
func parse(data []byte) (*Config, error) {
	cfg := &Config{
		Server:  Server{Port: 8000},
		Sources: Sources{TimeoutSeconds: 15},
		Logging: Logging{Level: "INFO"},
	}

	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config: %w", err)
		}
	}

	// An empty export dir means the current directory; normalize it here
	// so callers can hand it straight to os.MkdirAll.
	if cfg.Export.Dir == "" {
		cfg.Export.Dir = "."
	}
	return cfg, nil
}

// Rules returns the configured classification rules, or the built-in
// table when none are set.
func (c *Config) Rules() []citation.Rule {
	if len(c.Sources.Rules) > 0 {
		return c.Sources.Rules
	}
	return citation.DefaultRules
}

func homeDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return home
}

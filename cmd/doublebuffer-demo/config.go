package main

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Duration wraps time.Duration so YAML configs can use strings like "250ms".
type Duration time.Duration

// UnmarshalYAML parses a duration string from a YAML scalar.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var raw string
	if err := value.Decode(&raw); err != nil {
		return fmt.Errorf("duration must be a string: %w", err)
	}

	parsed, err := time.ParseDuration(raw)
	if err != nil {
		return fmt.Errorf("parse duration %q: %w", raw, err)
	}

	*d = Duration(parsed)
	return nil
}

// MarshalYAML renders the duration back to its string form.
func (d Duration) MarshalYAML() (any, error) {
	return time.Duration(d).String(), nil
}

// Config holds the demo application configuration
type Config struct {
	// TickInterval is the fixed timestep between rotation cycles
	TickInterval Duration `yaml:"tick_interval"`

	// Cycles is the number of rotations to run, 0 means run until interrupted
	Cycles int `yaml:"cycles"`

	// MetricsPort is the Prometheus exposition port, 0 disables the server
	MetricsPort int `yaml:"metrics_port"`

	// Palette is the initial color triple to rotate
	Palette []string `yaml:"palette"`
}

// DefaultConfig returns the built-in configuration used when no file is given
func DefaultConfig() *Config {
	return &Config{
		TickInterval: Duration(500 * time.Millisecond),
		Cycles:       0,
		MetricsPort:  9090,
		Palette:      []string{"red", "green", "blue"},
	}
}

// loadConfig reads a YAML config file over the defaults.
// An empty path returns the defaults unchanged.
func loadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	return cfg, nil
}

// Validate checks the configuration for usable values
func (c *Config) Validate() error {
	if c.TickInterval <= 0 {
		return fmt.Errorf("tick_interval must be positive, got %s", time.Duration(c.TickInterval))
	}

	if c.Cycles < 0 {
		return fmt.Errorf("cycles must be zero or positive, got %d", c.Cycles)
	}

	if c.MetricsPort < 0 || c.MetricsPort > 65535 {
		return fmt.Errorf("invalid metrics port: %d", c.MetricsPort)
	}

	if len(c.Palette) != 3 {
		return fmt.Errorf("palette must have exactly 3 colors, got %d", len(c.Palette))
	}

	return nil
}

// applyOverrides layers explicitly-set CLI flags over the file config
func applyOverrides(cfg *Config, cliCfg *CLIConfig) {
	if cliCfg.TickInterval > 0 {
		cfg.TickInterval = Duration(cliCfg.TickInterval)
	}

	if cliCfg.Cycles >= 0 {
		cfg.Cycles = cliCfg.Cycles
	}

	if cliCfg.MetricsPort >= 0 {
		cfg.MetricsPort = cliCfg.MetricsPort
	}
}

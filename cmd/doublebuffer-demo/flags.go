package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"time"
)

// CLIConfig holds command-line configuration
type CLIConfig struct {
	ConfigPath   string
	LogLevel     string
	LogFormat    string
	Debug        bool
	TickInterval time.Duration
	Cycles       int
	MetricsPort  int
	ShowVersion  bool
	ShowHelp     bool
	Validate     bool
}

func parseFlags() *CLIConfig {
	cfg := &CLIConfig{}

	// Define flags with environment variable fallback
	flag.StringVar(&cfg.ConfigPath, "config",
		getEnv("DOUBLEBUFFER_CONFIG", ""),
		"Path to YAML configuration file, empty uses defaults (env: DOUBLEBUFFER_CONFIG)")

	flag.StringVar(&cfg.ConfigPath, "c",
		getEnv("DOUBLEBUFFER_CONFIG", ""),
		"Path to YAML configuration file, empty uses defaults (env: DOUBLEBUFFER_CONFIG)")

	flag.StringVar(&cfg.LogLevel, "log-level",
		getEnv("DOUBLEBUFFER_LOG_LEVEL", "info"),
		"Log level: debug, info, warn, error (env: DOUBLEBUFFER_LOG_LEVEL)")

	flag.StringVar(&cfg.LogFormat, "log-format",
		getEnv("DOUBLEBUFFER_LOG_FORMAT", "text"),
		"Log format: json, text (env: DOUBLEBUFFER_LOG_FORMAT)")

	flag.BoolVar(&cfg.Debug, "debug",
		getEnvBool("DOUBLEBUFFER_DEBUG", false),
		"Enable debug mode (env: DOUBLEBUFFER_DEBUG)")

	flag.DurationVar(&cfg.TickInterval, "tick",
		getEnvDuration("DOUBLEBUFFER_TICK", 0),
		"Override tick interval, 0 uses config (env: DOUBLEBUFFER_TICK)")

	flag.IntVar(&cfg.Cycles, "cycles",
		getEnvInt("DOUBLEBUFFER_CYCLES", -1),
		"Override cycle count, -1 uses config (env: DOUBLEBUFFER_CYCLES)")

	flag.IntVar(&cfg.MetricsPort, "metrics-port",
		getEnvInt("DOUBLEBUFFER_METRICS_PORT", -1),
		"Override metrics port, -1 uses config, 0 disables (env: DOUBLEBUFFER_METRICS_PORT)")

	flag.BoolVar(&cfg.ShowVersion, "version", false, "Show version information")
	flag.BoolVar(&cfg.ShowVersion, "v", false, "Show version information")
	flag.BoolVar(&cfg.ShowHelp, "help", false, "Show help information")
	flag.BoolVar(&cfg.ShowHelp, "h", false, "Show help information")
	flag.BoolVar(&cfg.Validate, "validate", false, "Validate configuration and exit")

	// Custom usage
	flag.Usage = func() {
		printDetailedHelp()
	}

	flag.Parse()

	// Override log level if debug is set
	if cfg.Debug {
		cfg.LogLevel = "debug"
	}

	return cfg
}

func validateFlags(cfg *CLIConfig) error {
	// Skip validation for special flags
	if cfg.ShowVersion || cfg.ShowHelp {
		return nil
	}

	// Validate config file exists when one was given
	if cfg.ConfigPath != "" {
		if _, err := os.Stat(cfg.ConfigPath); err != nil {
			return fmt.Errorf("config file not found: %s", cfg.ConfigPath)
		}
	}

	// Validate log level
	validLevels := []string{"debug", "info", "warn", "error"}
	if !contains(validLevels, cfg.LogLevel) {
		return fmt.Errorf("invalid log level: %s", cfg.LogLevel)
	}

	// Validate log format
	validFormats := []string{"json", "text"}
	if !contains(validFormats, cfg.LogFormat) {
		return fmt.Errorf("invalid log format: %s", cfg.LogFormat)
	}

	// Validate metrics port override
	if cfg.MetricsPort > 65535 {
		return fmt.Errorf("invalid metrics port: %d", cfg.MetricsPort)
	}

	return nil
}

func printDetailedHelp() {
	_, _ = fmt.Fprintf(os.Stderr, `%s - Double-Buffered Palette Rotation

Usage: %s [options]

Options:
`, appName, os.Args[0])
	flag.PrintDefaults()
	_, _ = fmt.Fprintf(os.Stderr, `
Examples:
  # Run with defaults (rotate forever, metrics on :9090)
  %s

  # Run ten cycles with a fast tick and no metrics server
  %s --cycles=10 --tick=100ms --metrics-port=0

  # Run with a config file and debug logging
  %s --config=configs/demo.yaml --log-level=debug

  # Run with environment variables
  export DOUBLEBUFFER_CONFIG=/etc/doublebuffer/demo.yaml
  export DOUBLEBUFFER_LOG_LEVEL=debug
  %s

  # Validate configuration only
  %s --config=configs/demo.yaml --validate

Version: %s
Build: %s
`, os.Args[0], os.Args[0], os.Args[0], os.Args[0], os.Args[0], Version, BuildTime)
}

// Environment variable helper functions
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if parsed, err := time.ParseDuration(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

// Utility function to check if slice contains string
func contains(slice []string, item string) bool {
	for _, s := range slice {
		if s == item {
			return true
		}
	}
	return false
}

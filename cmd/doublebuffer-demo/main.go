// Package main implements the doublebuffer demo application: a fixed-timestep
// palette rotation driven through a double-buffered resource store, with the
// staged value promoted by a swap at the end of every update cycle.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/c360/doublebuffer"
	"github.com/c360/doublebuffer/metric"
	"github.com/c360/doublebuffer/resource"
)

// Build information constants
const (
	Version   = "0.1.0"
	BuildTime = "dev"
	appName   = "doublebuffer-demo"
)

// Palette is the rotated resource. Each cycle shifts every color one
// position left, so the triple returns to its seed after three cycles.
type Palette struct {
	First  string
	Second string
	Third  string
}

func main() {
	// Add panic recovery
	defer func() {
		if r := recover(); r != nil {
			buf := make([]byte, 4096)
			n := runtime.Stack(buf, false)
			_, _ = fmt.Fprintf(os.Stderr, "PANIC: %v\nStack trace:\n%s\n", r, string(buf[:n]))
			os.Exit(2)
		}
	}()

	// Run application with proper error handling
	if err := run(); err != nil {
		slog.Error("Application failed", "error", err, "exit_code", 1)
		os.Exit(1)
	}
}

func run() error {
	// Parse and validate CLI flags
	cliCfg, logger, shouldExit, err := initializeCLI()
	if shouldExit || err != nil {
		return err
	}

	// Load and validate configuration
	cfg, err := initializeConfiguration(cliCfg)
	if err != nil {
		return err
	}

	if cliCfg.Validate {
		slog.Info("Configuration is valid")
		return nil
	}

	// Setup the metrics registry and the double-buffered store
	registry := metric.NewRegistry()
	store, err := setupStore(cfg, registry, logger)
	if err != nil {
		return err
	}

	// Run the rotation with signal handling
	return runWithSignalHandling(context.Background(), cfg, store, registry)
}

// initializeCLI parses flags and sets up logging
func initializeCLI() (*CLIConfig, *slog.Logger, bool, error) {
	cliCfg := parseFlags()
	if err := validateFlags(cliCfg); err != nil {
		return nil, nil, false, fmt.Errorf("invalid flags: %w", err)
	}

	if cliCfg.ShowVersion {
		fmt.Printf("%s version %s\n", appName, Version)
		return nil, nil, true, nil
	}

	if cliCfg.ShowHelp {
		printHelp()
		return nil, nil, true, nil
	}

	logger := setupLogger(cliCfg.LogLevel, cliCfg.LogFormat)
	slog.SetDefault(logger)

	slog.Info("Starting palette rotation demo",
		"version", Version,
		"build_time", BuildTime,
		"config_path", cliCfg.ConfigPath)

	return cliCfg, logger, false, nil
}

// initializeConfiguration loads, overrides, and validates configuration
func initializeConfiguration(cliCfg *CLIConfig) (*Config, error) {
	cfg, err := loadConfig(cliCfg.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	applyOverrides(cfg, cliCfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// setupStore creates the resource store and seeds the palette buffer
func setupStore(cfg *Config, registry *metric.Registry, logger *slog.Logger) (*resource.Store, error) {
	storeOpts := []resource.Option{resource.WithLogger(logger)}
	var bufferOpts []doublebuffer.Option[Palette]

	if cfg.MetricsPort > 0 {
		storeOpts = append(storeOpts, resource.WithMetrics(registry, "demo"))
		bufferOpts = append(bufferOpts, doublebuffer.WithMetrics[Palette](registry, "palette"))
	}

	store, err := resource.NewStore(storeOpts...)
	if err != nil {
		return nil, fmt.Errorf("create store: %w", err)
	}

	seed := Palette{
		First:  cfg.Palette[0],
		Second: cfg.Palette[1],
		Third:  cfg.Palette[2],
	}

	buffer, err := doublebuffer.New(seed, bufferOpts...)
	if err != nil {
		return nil, fmt.Errorf("create palette buffer: %w", err)
	}

	if err := resource.Add(store, buffer); err != nil {
		return nil, fmt.Errorf("register palette: %w", err)
	}

	slog.Info("Palette seeded",
		"first", seed.First,
		"second", seed.Second,
		"third", seed.Third)

	return store, nil
}

// runWithSignalHandling runs the rotation tasks and handles shutdown signals
func runWithSignalHandling(
	ctx context.Context,
	cfg *Config,
	store *resource.Store,
	registry *metric.Registry,
) error {
	signalCtx, signalCancel := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer signalCancel()

	// Finishing a finite run cancels this context so the metrics server
	// comes down with the rotation task.
	runCtx, runCancel := context.WithCancel(signalCtx)
	defer runCancel()

	g, gctx := errgroup.WithContext(runCtx)

	if cfg.MetricsPort > 0 {
		server := metric.NewServer(cfg.MetricsPort, "", registry)

		g.Go(func() error {
			slog.Info("Starting metrics server", "address", server.Address())
			return server.Start()
		})

		g.Go(func() error {
			<-gctx.Done()
			return server.Stop()
		})
	}

	g.Go(func() error {
		defer runCancel()
		return runCycles(gctx, cfg, store)
	})

	slog.Info("Demo started",
		"tick_interval", time.Duration(cfg.TickInterval).String(),
		"cycles", cfg.Cycles,
		"metrics_port", cfg.MetricsPort)

	if err := g.Wait(); err != nil {
		return fmt.Errorf("run demo: %w", err)
	}

	slog.Info("Demo shutdown complete")
	return nil
}

// runCycles drives the fixed-timestep rotation loop. Each tick runs one
// update cycle and then one read, in that order, so the display always
// observes the value promoted this tick.
func runCycles(ctx context.Context, cfg *Config, store *resource.Store) error {
	limiter := rate.NewLimiter(rate.Every(time.Duration(cfg.TickInterval)), 1)

	for cycle := 1; cfg.Cycles == 0 || cycle <= cfg.Cycles; cycle++ {
		if err := limiter.Wait(ctx); err != nil {
			if errors.Is(err, context.Canceled) {
				slog.Info("Received shutdown signal", "completed_cycles", cycle-1)
				return nil
			}
			return fmt.Errorf("wait for tick: %w", err)
		}

		if err := rotatePalette(store); err != nil {
			return fmt.Errorf("rotate palette: %w", err)
		}

		if err := displayPalette(store, cycle); err != nil {
			return fmt.Errorf("display palette: %w", err)
		}
	}

	slog.Info("Completed all cycles", "cycles", cfg.Cycles)
	return nil
}

// rotatePalette stages the shifted colors in the next slot and swaps.
// The current slot is never written, so a concurrent reader sees either
// the old triple or the new one, never a mix.
func rotatePalette(store *resource.Store) error {
	return resource.Update(store, func(db *doublebuffer.DoubleBuffer[Palette]) {
		db.Apply(func(current, next *Palette) {
			next.First = current.Second
			next.Second = current.Third
			next.Third = current.First
		})
		db.Swap()
	})
}

// displayPalette logs the promoted palette for this cycle
func displayPalette(store *resource.Store, cycle int) error {
	return resource.Read(store, func(v resource.View[Palette]) {
		current := v.Current()
		slog.Info("Palette rotated",
			"cycle", cycle,
			"first", current.First,
			"second", current.Second,
			"third", current.Third)
	})
}

// printHelp prints help information
func printHelp() {
	printDetailedHelp()
}

// nv-stats polls nvidia-smi and renders GPU utilization, memory
// utilization, temperature, and fan speed as threshold-colored text.
//
// It has three modes: a one-shot panel line for status bars and desktop
// panels, a continuous watch loop, and an interactive Bubbletea TUI.
//
// Usage:
//
//	nv-stats [flags]
//
// Flags:
//
//	-watch            Continuously print the panel line on each poll
//	-tui              Launch the interactive Bubbletea dashboard
//	-config string    Path to configuration file (default: ~/.config/nv-stats/config.toml)
//	-layout string    Panel layout: horizontal or vertical
//	-theme string     Color theme name
//	-interval duration Poll interval override (e.g. 2s)
//	-smi string       Path to the nvidia-smi binary
//	-host             Include host CPU/RAM alongside the GPU stats
//	-no-color         Disable ANSI color output
//	-use-mocks        Use synthetic GPU data instead of nvidia-smi
//	-verbose          Enable verbose logging
//	-version          Print version and exit
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/chesterbait88/NV-Stats/pkg/app"
	"github.com/chesterbait88/NV-Stats/pkg/collectors"
	"github.com/chesterbait88/NV-Stats/pkg/collectors/gpustats"
	"github.com/chesterbait88/NV-Stats/pkg/collectors/hostmetrics"
	"github.com/chesterbait88/NV-Stats/pkg/config"
	"github.com/chesterbait88/NV-Stats/pkg/mocks"
	"github.com/chesterbait88/NV-Stats/pkg/nvsmi"
	"github.com/chesterbait88/NV-Stats/pkg/panel"
	"github.com/chesterbait88/NV-Stats/pkg/snapshot"
	"github.com/chesterbait88/NV-Stats/pkg/theme"
	"github.com/chesterbait88/NV-Stats/pkg/widgets"
)

var (
	version = "1.0.0"
	commit  = "dev"
	date    = "unknown"
)

func main() {
	var (
		configPath   = flag.String("config", "", "Path to configuration file")
		runWatch     = flag.Bool("watch", false, "Continuously print the panel line on each poll")
		runTUI       = flag.Bool("tui", false, "Launch the interactive Bubbletea dashboard")
		layoutFlag   = flag.String("layout", "", "Panel layout: horizontal or vertical")
		themeFlag    = flag.String("theme", "", "Color theme name")
		intervalFlag = flag.Duration("interval", 0, "Poll interval override (e.g. 2s)")
		smiPath      = flag.String("smi", "", "Path to the nvidia-smi binary")
		withHost     = flag.Bool("host", false, "Include host CPU/RAM alongside the GPU stats")
		noColor      = flag.Bool("no-color", false, "Disable ANSI color output")
		useMocks     = flag.Bool("use-mocks", false, "Use synthetic GPU data instead of nvidia-smi")
		verbose      = flag.Bool("verbose", false, "Enable verbose logging")
		showVersion  = flag.Bool("version", false, "Print version and exit")
	)
	flag.Parse()

	if *showVersion {
		fmt.Printf("nv-stats %s (%s) built %s\n", version, commit, date)
		os.Exit(0)
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	// CLI flags override config file and environment.
	if *layoutFlag != "" {
		cfg.Display.Layout = *layoutFlag
	}
	if *themeFlag != "" {
		cfg.Theme.Name = *themeFlag
	}
	if *intervalFlag > 0 {
		cfg.Poll.Interval = config.Duration{Duration: *intervalFlag}
	}
	if *smiPath != "" {
		cfg.Poll.SMIPath = *smiPath
	}
	if *withHost {
		cfg.Host.Enabled = true
	}
	if *noColor {
		cfg.Display.Color = "never"
	}

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "invalid config: %v\n", err)
		os.Exit(1)
	}

	logger, closeLog, err := setupLogging(cfg, *verbose)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to set up logging: %v\n", err)
		os.Exit(1)
	}
	defer closeLog()

	if cfg.Theme.File != "" {
		if _, err := theme.LoadFile(cfg.Theme.File); err != nil {
			logger.Warn("failed to load theme file", "path", cfg.Theme.File, "error", err)
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		logger.Info("received shutdown signal")
		cancel()
	}()

	querier := buildQuerier(cfg, *useMocks)

	switch {
	case *runTUI:
		if err := runDashboard(ctx, cfg, querier, logger); err != nil {
			logger.Error("tui error", "error", err)
			os.Exit(1)
		}

	case *runWatch:
		if err := runWatchLoop(ctx, cfg, querier, logger); err != nil && err != context.Canceled {
			logger.Error("watch error", "error", err)
			os.Exit(1)
		}

	default:
		runPanelOnce(ctx, cfg, querier, logger)
	}
}

// loadConfig resolves and loads the configuration, falling back to the
// XDG search path when no explicit file is given.
func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.LoadFromFile(path)
	}
	return config.Load()
}

// setupLogging builds a slog logger writing to both stderr and the
// configured log file. Returns a close function for the file handle.
func setupLogging(cfg *config.Config, verbose bool) (*slog.Logger, func(), error) {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	} else {
		switch cfg.Log.Level {
		case "debug":
			level = slog.LevelDebug
		case "warn":
			level = slog.LevelWarn
		case "error":
			level = slog.LevelError
		}
	}

	w := io.Writer(os.Stderr)
	closeLog := func() {}

	if cfg.Log.File != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.Log.File), 0755); err != nil {
			return nil, nil, err
		}
		f, err := os.OpenFile(cfg.Log.File, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
		if err != nil {
			return nil, nil, err
		}
		w = io.MultiWriter(os.Stderr, f)
		closeLog = func() { f.Close() }
	}

	logger := slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	return logger, closeLog, nil
}

// buildQuerier returns either the real nvidia-smi querier or one backed
// by the synthetic data generator.
func buildQuerier(cfg *config.Config, useMocks bool) *nvsmi.Querier {
	if useMocks {
		return nvsmi.NewQuerierWithRunner(nvsmi.DefaultSMIPath, mocks.Runner())
	}
	q := nvsmi.NewQuerier(cfg.Poll.SMIPath)
	q.Timeout = cfg.Poll.Timeout.Duration
	return q
}

// panelOptions assembles rendering options from config.
func panelOptions(cfg *config.Config) panel.Options {
	layout, _ := config.ParseLayout(cfg.Display.Layout)
	return panel.Options{
		Layout:     layout,
		Padding:    cfg.Display.Padding,
		Thresholds: cfg.Thresholds.Bands(),
		Theme:      theme.Get(cfg.Theme.Name),
		Color:      panel.ColorEnabled(cfg.Display.Color),
	}
}

// runPanelOnce prints a single panel line. It queries live first; on
// failure it falls back to a recent snapshot, and past that renders
// placeholder dashes.
func runPanelOnce(ctx context.Context, cfg *config.Config, querier *nvsmi.Querier, logger *slog.Logger) {
	opts := panelOptions(cfg)

	store, storeErr := snapshot.NewStore(cfg.Cache.Dir)
	if storeErr != nil {
		logger.Debug("snapshot store unavailable", "error", storeErr)
	}

	reading, err := querier.Query(ctx)
	if err == nil {
		if store != nil {
			if serr := store.Save(reading); serr != nil {
				logger.Debug("snapshot save failed", "error", serr)
			}
		}
		fmt.Println(panel.Render(&reading, opts))
		return
	}

	logger.Debug("live query failed", "error", err)

	if store != nil {
		maxAge := 3 * cfg.Poll.Interval.Duration
		if cached, cerr := store.Load(maxAge); cerr == nil {
			fmt.Println(panel.Render(&cached, opts))
			return
		}
	}

	fmt.Println(panel.Render(nil, opts))
}

// buildRegistry wires the configured collectors.
func buildRegistry(cfg *config.Config, querier *nvsmi.Querier, store *snapshot.Store, logger *slog.Logger) (*collectors.Registry, error) {
	registry := collectors.NewRegistry()

	gpu := gpustats.NewWithQuerier(gpustats.Config{
		Interval:     cfg.Poll.Interval.Duration,
		SMIPath:      cfg.Poll.SMIPath,
		Timeout:      cfg.Poll.Timeout.Duration,
		FailureEvery: cfg.Log.FailureEvery,
		Snapshots:    store,
		Logger:       logger,
	}, querier)
	if err := registry.Register(gpu); err != nil {
		return nil, err
	}

	if cfg.Host.Enabled {
		hostInterval := cfg.Host.Interval.Duration
		if hostInterval <= 0 {
			hostInterval = cfg.Poll.Interval.Duration
		}
		host := hostmetrics.New(hostmetrics.Config{Interval: hostInterval})
		if err := registry.Register(host); err != nil {
			return nil, err
		}
	}

	return registry, nil
}

// runWatchLoop drives the collector runner and prints a panel line for
// every GPU update until the context is cancelled.
func runWatchLoop(ctx context.Context, cfg *config.Config, querier *nvsmi.Querier, logger *slog.Logger) error {
	opts := panelOptions(cfg)

	store, err := snapshot.NewStore(cfg.Cache.Dir)
	if err != nil {
		logger.Debug("snapshot store unavailable", "error", err)
	}

	registry, err := buildRegistry(cfg, querier, store, logger)
	if err != nil {
		return err
	}

	updates := make(chan collectors.Update, collectors.DefaultUpdateBufferSize)
	runner := collectors.NewRunner(registry, updates)
	if err := runner.Start(ctx); err != nil {
		return err
	}
	defer runner.Stop()

	logger.Info("watching gpu stats",
		"interval", cfg.Poll.Interval.Duration,
		"layout", cfg.Display.Layout)

	var lastHost *hostmetrics.Metrics
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case u := <-updates:
			switch u.Source {
			case "hostmetrics":
				if m, ok := u.Data.(hostmetrics.Metrics); ok && u.Error == nil {
					lastHost = &m
				}
			case "gpustats":
				opts.Host = lastHost
				if u.Error != nil {
					fmt.Println(panel.Render(nil, opts))
					continue
				}
				if r, ok := u.Data.(nvsmi.Reading); ok {
					fmt.Println(panel.Render(&r, opts))
				}
			}
		}
	}
}

// runDashboard launches the Bubbletea TUI backed by the collector runner.
func runDashboard(ctx context.Context, cfg *config.Config, querier *nvsmi.Querier, logger *slog.Logger) error {
	store, err := snapshot.NewStore(cfg.Cache.Dir)
	if err != nil {
		logger.Debug("snapshot store unavailable", "error", err)
	}

	registry, err := buildRegistry(cfg, querier, store, logger)
	if err != nil {
		return err
	}

	updates := make(chan collectors.Update, collectors.DefaultUpdateBufferSize)
	runner := collectors.NewRunner(registry, updates)
	if err := runner.Start(ctx); err != nil {
		return err
	}
	defer runner.Stop()

	th := theme.Get(cfg.Theme.Name)

	var ws []app.Widget
	ws = append(ws, widgets.NewGPUWidget(cfg.Thresholds.Bands(), th))
	if cfg.Host.Enabled {
		ws = append(ws, widgets.NewHostWidget(th))
	}

	title := "NV-Stats"
	if name, nerr := querier.DeviceName(ctx); nerr == nil && name != "" {
		title = name
	}

	model := app.NewModel(app.ModelConfig{
		Widgets: ws,
		Updates: updates,
		Theme:   th,
		Title:   title,
	})

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err = p.Run()
	return err
}

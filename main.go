package main

import (
	"context"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"markestedt/grist/config"
	"markestedt/grist/platform"
	"markestedt/grist/systray"
)

func main() {
	// Setup logging
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load config", "error", err)
		os.Exit(1)
	}
	slog.Info("Configuration loaded", "path", cfg.Path())

	logFile, err := setupLogging(cfg.Log)
	if err != nil {
		slog.Error("Failed to open log file", "path", cfg.Log.File, "error", err)
		os.Exit(1)
	}
	if logFile != nil {
		defer logFile.Close()
	}

	// Create agent
	agent, err := NewAgent(cfg)
	if err != nil {
		slog.Error("Failed to create agent", "error", err)
		os.Exit(1)
	}
	defer agent.Close()

	// Setup signal handling for graceful shutdown
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if !cfg.Tray.Enabled {
		if err := agent.Run(ctx); err != nil {
			slog.Error("Agent error", "error", err)
			os.Exit(1)
		}
		slog.Info("Grist stopped")
		return
	}

	// The tray owns the main thread; the agent runs alongside it
	tray := systray.NewSystrayManager(agent.Engine(), agent.Hook(), platform.NewNotifier(), agent.DashboardURL())

	errCh := make(chan error, 1)
	go func() {
		errCh <- agent.Run(ctx)
		tray.Stop()
	}()
	go func() {
		select {
		case <-tray.WaitForQuit():
			cancel()
		case <-ctx.Done():
		}
	}()

	tray.Run()
	cancel()

	if err := <-errCh; err != nil {
		slog.Error("Agent error", "error", err)
		os.Exit(1)
	}
	slog.Info("Grist stopped")
}

// setupLogging applies the configured level and, when a file is set, tees
// output to it
func setupLogging(cfg config.LogConfig) (*os.File, error) {
	level, err := config.ParseLevel(cfg.Level)
	if err != nil {
		return nil, err
	}

	var out io.Writer = os.Stdout
	var f *os.File
	if cfg.File != "" {
		f, err = os.OpenFile(cfg.File, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
		if err != nil {
			return nil, err
		}
		out = io.MultiWriter(os.Stdout, f)
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(out, &slog.HandlerOptions{Level: level})))
	return f, nil
}

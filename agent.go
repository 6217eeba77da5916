package main

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"markestedt/grist/config"
	"markestedt/grist/engine"
	"markestedt/grist/hotkey"
	"markestedt/grist/metrics"
	"markestedt/grist/platform"
	"markestedt/grist/storage"
	"markestedt/grist/web"
	"markestedt/grist/window"
)

// Agent owns the input thread, the engine and the optional history, metrics
// and dashboard surfaces.
type Agent struct {
	cfg      *config.Config
	host     *platform.Host
	engine   *engine.Engine
	hook     *engine.HookController
	metrics  *metrics.Metrics
	db       *storage.DB
	recorder *storage.Recorder
	server   *web.Server
}

// NewAgent creates a new agent instance
func NewAgent(cfg *config.Config) (*Agent, error) {
	bindings, err := cfg.BuildBindings()
	if err != nil {
		return nil, fmt.Errorf("failed to build bindings: %w", err)
	}
	registry, err := hotkey.NewRegistry(bindings, cfg.ConflictPolicy())
	if err != nil {
		return nil, fmt.Errorf("failed to build binding table: %w", err)
	}

	debug := &engine.Flag{}
	debug.Set(cfg.Engine.Debug)

	exclude := window.NewProcessList(cfg.Minimize.Exclude)
	exec := window.NewExecutor(platform.NewWindowService(), exclude, debug)
	eng := engine.New(registry, exec, engine.Options{
		SlowCallback: cfg.SlowCallback(),
		Debug:        debug,
	})

	host := platform.NewHost()
	a := &Agent{
		cfg:     cfg,
		host:    host,
		engine:  eng,
		hook:    engine.NewHookController(host, eng),
		metrics: metrics.New(),
	}

	eng.Observe(a.metrics.ObserveAction)
	a.hook.OnStateChange(a.metrics.ObserveHook)

	if cfg.Storage.Enabled {
		dir, err := config.Dir()
		if err != nil {
			return nil, err
		}
		db, err := storage.Open(dir)
		if err != nil {
			return nil, fmt.Errorf("failed to open history database: %w", err)
		}
		a.db = db
		a.recorder = storage.NewRecorder(db, 256)
		eng.Observe(a.recorder.Record)
	}

	if cfg.Web.Enabled {
		a.server = web.NewServer(web.Options{
			Port:      cfg.Web.Port,
			Engine:    eng,
			Hook:      a.hook,
			DB:        a.db,
			Metrics:   a.metrics.Handler(),
			OnClients: func(n int) { a.metrics.WSConnections.Set(float64(n)) },
		})
		eng.Observe(a.server.BroadcastAction)
		eng.OnDebugChange(a.server.BroadcastDebug)
		a.hook.OnStateChange(a.server.BroadcastHook)
	}

	slog.Info("Bindings loaded", "count", registry.Len(), "exclusions", exclude.Len())
	return a, nil
}

// Engine returns the input engine
func (a *Agent) Engine() *engine.Engine {
	return a.engine
}

// Hook returns the hook controller
func (a *Agent) Hook() *engine.HookController {
	return a.hook
}

// DashboardURL returns the dashboard address, or "" when it is disabled
func (a *Agent) DashboardURL() string {
	if a.server == nil {
		return ""
	}
	return a.server.URL()
}

// Run starts the input thread, installs the hook and blocks until ctx is
// cancelled. The hook is removed and pending history flushed before it
// returns.
func (a *Agent) Run(ctx context.Context) error {
	if err := a.host.Start(ctx); err != nil {
		return fmt.Errorf("failed to start input thread: %w", err)
	}
	defer a.host.Stop()

	if err := a.host.WatchSessions(a.hook.HandleSession); err != nil {
		slog.Warn("Session notifications unavailable", "error", err)
	}

	var wg sync.WaitGroup
	if a.recorder != nil {
		wg.Add(1)
		go func() {
			defer wg.Done()
			a.recorder.Run(ctx)
		}()
	}
	if a.server != nil {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := a.server.Start(ctx); err != nil {
				slog.Error("Web server error", "error", err)
			}
		}()
	}

	if err := a.hook.Hook(); err != nil {
		return err
	}

	slog.Info("Grist started", "bindings", len(a.engine.Bindings()), "debug", a.engine.Debug(), "dashboard", a.DashboardURL())

	<-ctx.Done()

	if err := a.hook.Unhook(); err != nil {
		slog.Warn("Failed to remove keyboard hook", "error", err)
	}
	wg.Wait()

	if a.recorder != nil && a.recorder.Dropped() > 0 {
		slog.Warn("History events dropped", "count", a.recorder.Dropped())
	}
	return nil
}

// Close releases the history database
func (a *Agent) Close() error {
	if a.db == nil {
		return nil
	}
	return a.db.Close()
}

// Package engine ties key tracking, binding lookup and window actions into
// the callback the keyboard hook runs, and owns the hook lifecycle.
package engine

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"markestedt/grist/hotkey"
	"markestedt/grist/keyboard"
	"markestedt/grist/platform"
)

// DefaultSlowCallback is how long a hook callback may run before a warning
// is logged. Windows silently drops hooks that exceed LowLevelHooksTimeout.
const DefaultSlowCallback = 300 * time.Millisecond

// Applier runs an action against the foreground window.
type Applier interface {
	Apply(a hotkey.Action) error
}

// ActionEvent describes one fired binding.
type ActionEvent struct {
	Binding  string
	Action   hotkey.Action
	Trigger  keyboard.KeySet
	Err      error
	Duration time.Duration
	Slow     bool
	At       time.Time
}

// Observer receives action events on the input thread. It must not block.
type Observer func(ev ActionEvent)

// Options tune an Engine. Zero values pick defaults.
type Options struct {
	// SlowCallback is the warning threshold. Negative disables the warning.
	SlowCallback time.Duration
	Debug        *Flag
}

// Engine is the process-wide input context: held keys, the binding table
// and the debug flag.
type Engine struct {
	tracker  *keyboard.Tracker
	registry *hotkey.Registry
	exec     Applier
	debug    *Flag
	slow     time.Duration

	obsMu      sync.RWMutex
	observers  []Observer
	debugFuncs []func(bool)

	now func() time.Time
}

// New creates an engine over a fixed binding table.
func New(registry *hotkey.Registry, exec Applier, opts Options) *Engine {
	if opts.Debug == nil {
		opts.Debug = &Flag{}
	}
	if opts.SlowCallback == 0 {
		opts.SlowCallback = DefaultSlowCallback
	}
	return &Engine{
		tracker:  keyboard.NewTracker(),
		registry: registry,
		exec:     exec,
		debug:    opts.Debug,
		slow:     opts.SlowCallback,
		now:      time.Now,
	}
}

// Observe registers fn for every fired binding.
func (e *Engine) Observe(fn Observer) {
	e.obsMu.Lock()
	e.observers = append(e.observers, fn)
	e.obsMu.Unlock()
}

// OnDebugChange registers fn to run after every SetDebug or ToggleDebug.
func (e *Engine) OnDebugChange(fn func(on bool)) {
	e.obsMu.Lock()
	e.debugFuncs = append(e.debugFuncs, fn)
	e.obsMu.Unlock()
}

// HandleKey is the keyboard hook callback. It reports whether the event was
// consumed. Unknown key codes pass through without touching the held set.
// Bindings fire on key down only; releases always pass through so the OS
// never loses a modifier release.
func (e *Engine) HandleKey(ev platform.KeyEvent) bool {
	vk, ok := keyboard.Lookup(ev.Code)
	if !ok {
		return false
	}

	start := e.now()
	pressed := e.tracker.OnKeyEvent(vk, ev.Down)
	debug := e.debug.Enabled()
	if debug {
		slog.Info("Key event", "key", vk, "down", ev.Down, "injected", ev.Injected, "pressed", pressed)
	}

	if !ev.Down {
		return false
	}

	b, ok := e.registry.FindMatch(pressed)
	if !ok {
		return false
	}

	err := e.apply(b.Action)
	elapsed := e.now().Sub(start)
	slow := e.slow > 0 && elapsed > e.slow

	switch {
	case err != nil:
		slog.Warn("Action failed", "binding", b.Name, "action", b.Action, "error", err)
	case debug:
		slog.Info("Applied action", "binding", b.Name, "action", b.Action, "duration", elapsed)
	}
	if slow {
		slog.Warn("Slow hook callback", "binding", b.Name, "duration", elapsed, "limit", e.slow)
	}

	e.notify(ActionEvent{
		Binding:  b.Name,
		Action:   b.Action,
		Trigger:  b.Trigger,
		Err:      err,
		Duration: elapsed,
		Slow:     slow,
		At:       start,
	})
	return true
}

func (e *Engine) apply(a hotkey.Action) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic applying %s: %v", a, r)
		}
	}()
	return e.exec.Apply(a)
}

func (e *Engine) notify(ev ActionEvent) {
	e.obsMu.RLock()
	defer e.obsMu.RUnlock()
	for _, fn := range e.observers {
		func() {
			defer func() {
				if r := recover(); r != nil {
					slog.Error("Action observer panicked", "panic", r)
				}
			}()
			fn(ev)
		}()
	}
}

// PressedKeys returns the keys currently held.
func (e *Engine) PressedKeys() keyboard.KeySet {
	return e.tracker.Snapshot()
}

// ResetKeys forgets every held key.
func (e *Engine) ResetKeys() {
	e.tracker.Reset()
}

// Bindings lists the binding table in registration order.
func (e *Engine) Bindings() []hotkey.Binding {
	return e.registry.Bindings()
}

// Debug reports whether per-event tracing is on.
func (e *Engine) Debug() bool {
	return e.debug.Enabled()
}

// SetDebug turns per-event tracing on or off.
func (e *Engine) SetDebug(on bool) {
	e.debug.Set(on)
	e.debugChanged(on)
}

// ToggleDebug flips debug tracing and returns the new value.
func (e *Engine) ToggleDebug() bool {
	on := e.debug.Toggle()
	e.debugChanged(on)
	return on
}

func (e *Engine) debugChanged(on bool) {
	slog.Info("Debug logging changed", "enabled", on)
	e.obsMu.RLock()
	fns := make([]func(bool), len(e.debugFuncs))
	copy(fns, e.debugFuncs)
	e.obsMu.RUnlock()
	for _, fn := range fns {
		fn(on)
	}
}

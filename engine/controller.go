package engine

import (
	"fmt"
	"log/slog"
	"sync"

	"markestedt/grist/platform"
)

// HookState is whether the keyboard feed is installed.
type HookState int

const (
	Unhooked HookState = iota
	Hooked
)

func (s HookState) String() string {
	if s == Hooked {
		return "hooked"
	}
	return "unhooked"
}

// HookController installs and removes the keyboard feed for an Engine.
type HookController struct {
	mu        sync.Mutex
	state     HookState
	feed      platform.KeyboardFeed
	engine    *Engine
	listeners []func(HookState)
}

// NewHookController starts Unhooked.
func NewHookController(feed platform.KeyboardFeed, engine *Engine) *HookController {
	return &HookController{feed: feed, engine: engine}
}

// OnStateChange registers fn to run after every transition. No-op calls do
// not notify. fn runs with the controller unlocked.
func (c *HookController) OnStateChange(fn func(HookState)) {
	c.mu.Lock()
	c.listeners = append(c.listeners, fn)
	c.mu.Unlock()
}

// State returns the current hook state.
func (c *HookController) State() HookState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Hook installs the feed. Hooking while Hooked is a no-op.
func (c *HookController) Hook() error {
	c.mu.Lock()
	changed, err := c.hookLocked()
	state := c.state
	c.mu.Unlock()
	if changed {
		c.emit(state)
	}
	return err
}

// Unhook removes the feed and clears the held keys. Unhooking while
// Unhooked is a no-op.
func (c *HookController) Unhook() error {
	c.mu.Lock()
	changed, err := c.unhookLocked()
	state := c.state
	c.mu.Unlock()
	if changed {
		c.emit(state)
	}
	return err
}

// Toggle flips the state and returns the new one.
func (c *HookController) Toggle() (HookState, error) {
	c.mu.Lock()
	var changed bool
	var err error
	if c.state == Hooked {
		changed, err = c.unhookLocked()
	} else {
		changed, err = c.hookLocked()
	}
	state := c.state
	c.mu.Unlock()
	if changed {
		c.emit(state)
	}
	return state, err
}

// Reload reinstalls the feed, unhooking first if needed. Bindings are not
// re-read. Listeners see the final state once.
func (c *HookController) Reload() error {
	c.mu.Lock()
	removed, err := c.unhookLocked()
	var installed bool
	if err == nil {
		installed, err = c.hookLocked()
	}
	state := c.state
	c.mu.Unlock()
	if removed || installed {
		c.emit(state)
	}
	return err
}

// HandleSession unhooks on lock and logoff and hooks on unlock and logon.
// Failures are logged since session callbacks have nobody to report to.
func (c *HookController) HandleSession(ev platform.SessionEvent) {
	var err error
	switch ev {
	case platform.SessionLock, platform.SessionLogoff:
		slog.Info("Session ended, removing hook", "event", ev)
		err = c.Unhook()
	case platform.SessionUnlock, platform.SessionLogon:
		slog.Info("Session started, installing hook", "event", ev)
		err = c.Hook()
	default:
		return
	}
	if err != nil {
		slog.Error("Session transition failed", "event", ev, "error", err)
	}
}

// hookLocked reports whether the state changed.
func (c *HookController) hookLocked() (bool, error) {
	if c.state == Hooked {
		slog.Info("Hook already installed")
		return false, nil
	}
	c.engine.ResetKeys()
	if err := c.feed.Install(c.engine.HandleKey); err != nil {
		return false, fmt.Errorf("install keyboard hook: %w", err)
	}
	c.state = Hooked
	slog.Info("Keyboard hook installed")
	return true, nil
}

func (c *HookController) unhookLocked() (bool, error) {
	if c.state == Unhooked {
		slog.Info("Hook already removed")
		return false, nil
	}
	err := c.feed.Remove()
	c.engine.ResetKeys()
	if err != nil {
		return false, fmt.Errorf("remove keyboard hook: %w", err)
	}
	c.state = Unhooked
	slog.Info("Keyboard hook removed")
	return true, nil
}

func (c *HookController) emit(state HookState) {
	c.mu.Lock()
	listeners := make([]func(HookState), len(c.listeners))
	copy(listeners, c.listeners)
	c.mu.Unlock()
	for _, fn := range listeners {
		fn(state)
	}
}

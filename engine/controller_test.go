package engine

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"markestedt/grist/keyboard"
	"markestedt/grist/platform"
	"markestedt/grist/platform/platformtest"
)

func newTestController(t *testing.T) (*HookController, *platformtest.Feed, *Engine) {
	t.Helper()
	e := newTestEngine(t, &recordingApplier{})
	feed := &platformtest.Feed{}
	return NewHookController(feed, e), feed, e
}

func TestToggleClearsHeldKeys(t *testing.T) {
	c, feed, e := newTestController(t)
	assert.Equal(t, Unhooked, c.State())

	state, err := c.Toggle()
	require.NoError(t, err)
	assert.Equal(t, Hooked, state)
	assert.True(t, e.PressedKeys().Empty())

	feed.Press(down(keyboard.LeftWindows))
	feed.Press(down(keyboard.LeftShift))
	require.Equal(t, 2, e.PressedKeys().Len())

	state, err = c.Toggle()
	require.NoError(t, err)
	assert.Equal(t, Unhooked, state)
	assert.False(t, feed.Installed())

	state, err = c.Toggle()
	require.NoError(t, err)
	assert.Equal(t, Hooked, state)
	assert.True(t, e.PressedKeys().Empty())
	assert.Equal(t, 2, feed.Installs)
	assert.Equal(t, 1, feed.Removes)
}

func TestHookIsIdempotent(t *testing.T) {
	c, feed, _ := newTestController(t)

	require.NoError(t, c.Hook())
	require.NoError(t, c.Hook())
	assert.Equal(t, 1, feed.Installs)

	require.NoError(t, c.Unhook())
	require.NoError(t, c.Unhook())
	assert.Equal(t, 1, feed.Removes)
}

func TestReload(t *testing.T) {
	c, feed, _ := newTestController(t)

	// Reload while unhooked only hooks.
	require.NoError(t, c.Reload())
	assert.Equal(t, Hooked, c.State())
	assert.Equal(t, 0, feed.Removes)

	require.NoError(t, c.Reload())
	assert.Equal(t, Hooked, c.State())
	assert.Equal(t, 2, feed.Installs)
	assert.Equal(t, 1, feed.Removes)
}

func TestHookFailureStaysUnhooked(t *testing.T) {
	c, feed, _ := newTestController(t)
	feed.Fail = &platform.OSError{Op: "SetWindowsHookExW", Err: errors.New("access denied")}

	err := c.Hook()
	require.Error(t, err)
	var osErr *platform.OSError
	assert.True(t, errors.As(err, &osErr))
	assert.Equal(t, Unhooked, c.State())
}

func TestHandleSession(t *testing.T) {
	c, _, _ := newTestController(t)

	var seen []HookState
	c.OnStateChange(func(s HookState) { seen = append(seen, s) })

	c.HandleSession(platform.SessionLogon)
	assert.Equal(t, Hooked, c.State())
	c.HandleSession(platform.SessionLock)
	assert.Equal(t, Unhooked, c.State())
	c.HandleSession(platform.SessionUnlock)
	assert.Equal(t, Hooked, c.State())
	c.HandleSession(platform.SessionOther)
	assert.Equal(t, Hooked, c.State())
	c.HandleSession(platform.SessionLogoff)
	assert.Equal(t, Unhooked, c.State())

	assert.Equal(t, []HookState{Hooked, Unhooked, Hooked, Unhooked}, seen)
}

func TestHookedFeedDrivesEngine(t *testing.T) {
	c, feed, _ := newTestController(t)
	require.NoError(t, c.Hook())

	assert.False(t, feed.Press(down(keyboard.LeftWindows)))
	assert.True(t, feed.Press(down(keyboard.Right)))
}

func TestHookStateString(t *testing.T) {
	assert.Equal(t, "hooked", Hooked.String())
	assert.Equal(t, "unhooked", Unhooked.String())
}

func TestNoOpCallsDoNotNotify(t *testing.T) {
	c, feed, _ := newTestController(t)
	var seen []HookState
	c.OnStateChange(func(s HookState) { seen = append(seen, s) })

	require.NoError(t, c.Unhook())
	require.NoError(t, c.Hook())
	require.NoError(t, c.Hook())
	require.NoError(t, c.Unhook())
	require.NoError(t, c.Unhook())
	assert.Equal(t, []HookState{Hooked, Unhooked}, seen)

	// A failed install is not a transition either.
	feed.Fail = errors.New("access denied")
	_, err := c.Toggle()
	require.Error(t, err)
	assert.Len(t, seen, 2)

	feed.Fail = nil
	require.NoError(t, c.Reload())
	assert.Equal(t, []HookState{Hooked, Unhooked, Hooked}, seen)
}

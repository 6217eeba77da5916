package engine

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"markestedt/grist/geometry"
	"markestedt/grist/hotkey"
	"markestedt/grist/keyboard"
	"markestedt/grist/platform"
	"markestedt/grist/platform/platformtest"
	"markestedt/grist/window"
)

type recordingApplier struct {
	mu      sync.Mutex
	applied []hotkey.Action
	err     error
	panics  bool
}

func (r *recordingApplier) Apply(a hotkey.Action) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.panics {
		panic("window vanished")
	}
	r.applied = append(r.applied, a)
	return r.err
}

func (r *recordingApplier) Applied() []hotkey.Action {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]hotkey.Action(nil), r.applied...)
}

func down(vk keyboard.VK) platform.KeyEvent { return platform.KeyEvent{Code: uint32(vk), Down: true} }
func up(vk keyboard.VK) platform.KeyEvent   { return platform.KeyEvent{Code: uint32(vk), Down: false} }

func newTestEngine(t *testing.T, exec Applier) *Engine {
	t.Helper()
	reg, err := hotkey.NewRegistry([]hotkey.Binding{
		hotkey.NewBinding("Move Prev", hotkey.MoveAdjacentMonitor(geometry.Prev), keyboard.LeftWindows, keyboard.Left),
		hotkey.NewBinding("Move Next", hotkey.MoveAdjacentMonitor(geometry.Next), keyboard.LeftWindows, keyboard.Right),
	}, hotkey.RejectConflicts)
	require.NoError(t, err)
	return New(reg, exec, Options{})
}

func TestHandleKeyConsumesOnExactMatch(t *testing.T) {
	exec := &recordingApplier{}
	e := newTestEngine(t, exec)

	assert.False(t, e.HandleKey(down(keyboard.LeftWindows)))
	assert.True(t, e.HandleKey(down(keyboard.Right)))

	require.Len(t, exec.Applied(), 1)
	assert.Equal(t, hotkey.MoveAdjacentMonitor(geometry.Next), exec.Applied()[0])
}

func TestHandleKeySupersetPassesThrough(t *testing.T) {
	exec := &recordingApplier{}
	e := newTestEngine(t, exec)

	e.HandleKey(down(keyboard.LeftWindows))
	e.HandleKey(down(keyboard.Left))
	// {Win, Left, Right} matches neither binding.
	assert.False(t, e.HandleKey(down(keyboard.Right)))
	assert.Equal(t, keyboard.NewKeySet(keyboard.LeftWindows, keyboard.Left, keyboard.Right), e.PressedKeys())
	assert.Len(t, exec.Applied(), 1)
}

func TestHandleKeyIgnoresUnknownCodes(t *testing.T) {
	e := newTestEngine(t, &recordingApplier{})

	e.HandleKey(down(keyboard.LeftWindows))
	assert.False(t, e.HandleKey(platform.KeyEvent{Code: 0xFF, Down: true}))
	assert.False(t, e.HandleKey(platform.KeyEvent{Code: 0x1234, Down: true}))
	assert.Equal(t, keyboard.NewKeySet(keyboard.LeftWindows), e.PressedKeys())
}

func TestHandleKeyReleaseTracksState(t *testing.T) {
	e := newTestEngine(t, &recordingApplier{})

	e.HandleKey(down(keyboard.LeftWindows))
	e.HandleKey(up(keyboard.LeftWindows))
	assert.True(t, e.PressedKeys().Empty())
}

func TestHandleKeyReleasePassesThrough(t *testing.T) {
	exec := &recordingApplier{}
	e := newTestEngine(t, exec)

	e.HandleKey(down(keyboard.LeftWindows))
	e.HandleKey(down(keyboard.Right))
	e.HandleKey(down(keyboard.LeftShift))
	require.Len(t, exec.Applied(), 1)

	// Releasing Shift leaves {Win, Right} held, which must not fire again
	// or swallow the release.
	assert.False(t, e.HandleKey(up(keyboard.LeftShift)))
	assert.Len(t, exec.Applied(), 1)
	assert.Equal(t, keyboard.NewKeySet(keyboard.LeftWindows, keyboard.Right), e.PressedKeys())
}

func TestHandleKeyFailureIsStillConsumed(t *testing.T) {
	exec := &recordingApplier{err: &platform.OSError{Op: "GetForegroundWindow", Err: platform.ErrNoForegroundWindow}}
	e := newTestEngine(t, exec)

	var events []ActionEvent
	e.Observe(func(ev ActionEvent) { events = append(events, ev) })

	e.HandleKey(down(keyboard.LeftWindows))
	assert.True(t, e.HandleKey(down(keyboard.Left)))

	require.Len(t, events, 1)
	assert.Equal(t, "Move Prev", events[0].Binding)
	assert.True(t, errors.Is(events[0].Err, platform.ErrNoForegroundWindow))
}

func TestHandleKeyRecoversPanics(t *testing.T) {
	e := newTestEngine(t, &recordingApplier{panics: true})

	var got ActionEvent
	e.Observe(func(ev ActionEvent) { got = ev })

	e.HandleKey(down(keyboard.LeftWindows))
	assert.NotPanics(t, func() {
		assert.True(t, e.HandleKey(down(keyboard.Right)))
	})
	require.Error(t, got.Err)
	assert.Contains(t, got.Err.Error(), "window vanished")
}

func TestObserverPanicDoesNotEscape(t *testing.T) {
	e := newTestEngine(t, &recordingApplier{})
	e.Observe(func(ActionEvent) { panic("observer") })
	called := false
	e.Observe(func(ActionEvent) { called = true })

	e.HandleKey(down(keyboard.LeftWindows))
	assert.NotPanics(t, func() { e.HandleKey(down(keyboard.Right)) })
	assert.True(t, called)
}

func TestSlowCallbackFlagged(t *testing.T) {
	e := newTestEngine(t, &recordingApplier{})
	clock := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	e.now = func() time.Time {
		clock = clock.Add(200 * time.Millisecond)
		return clock
	}

	var got ActionEvent
	e.Observe(func(ev ActionEvent) { got = ev })

	e.HandleKey(down(keyboard.LeftWindows))
	e.HandleKey(down(keyboard.Right))
	assert.Equal(t, 200*time.Millisecond, got.Duration)
	assert.False(t, got.Slow)

	e.slow = 100 * time.Millisecond
	e.HandleKey(down(keyboard.Right))
	assert.True(t, got.Slow)
}

func TestDebugToggle(t *testing.T) {
	flag := &Flag{}
	reg, err := hotkey.NewRegistry(nil, hotkey.RejectConflicts)
	require.NoError(t, err)
	e := New(reg, &recordingApplier{}, Options{Debug: flag})

	assert.False(t, e.Debug())
	assert.True(t, e.ToggleDebug())
	assert.True(t, flag.Enabled())
	e.SetDebug(false)
	assert.False(t, e.Debug())

	// Tracing on must not change matching.
	e.SetDebug(true)
	assert.False(t, e.HandleKey(down(keyboard.A)))
}

func TestDebugChangeListeners(t *testing.T) {
	e := newTestEngine(t, &recordingApplier{})
	var seen []bool
	e.OnDebugChange(func(on bool) { seen = append(seen, on) })

	e.ToggleDebug()
	e.SetDebug(false)
	e.SetDebug(true)
	assert.Equal(t, []bool{true, false, true}, seen)
}

func captureLog(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewTextHandler(&buf, nil)))
	t.Cleanup(func() { slog.SetDefault(prev) })
	return &buf
}

func TestDebugGatesTracing(t *testing.T) {
	buf := captureLog(t)

	svc := platformtest.NewWindows(
		geometry.Monitor{ID: 1, WorkArea: geometry.Rect{Right: 1920, Bottom: 1080}},
		geometry.Monitor{ID: 2, WorkArea: geometry.Rect{Left: 1920, Right: 3840, Bottom: 1080}},
	)
	flag := &Flag{}
	reg, err := hotkey.NewRegistry([]hotkey.Binding{
		hotkey.NewBinding("Move Next", hotkey.MoveAdjacentMonitor(geometry.Next), keyboard.LeftWindows, keyboard.Right),
	}, hotkey.RejectConflicts)
	require.NoError(t, err)
	e := New(reg, window.NewExecutor(svc, nil, flag), Options{Debug: flag})

	count := func(msg string) int {
		return strings.Count(buf.String(), `msg="`+msg+`"`)
	}

	e.HandleKey(down(keyboard.LeftWindows))
	require.True(t, e.HandleKey(down(keyboard.Right)))
	e.HandleKey(up(keyboard.Right))
	assert.Zero(t, count("Key event"))
	assert.Zero(t, count("Applied action"))
	assert.Zero(t, count("Positioning window"))

	e.SetDebug(true)
	buf.Reset()
	require.True(t, e.HandleKey(down(keyboard.Right)))
	assert.Equal(t, 1, count("Key event"))
	assert.Equal(t, 1, count("Applied action"))
	assert.Equal(t, 1, count("Positioning window"))
	assert.Contains(t, buf.String(), "title=")
}

func TestBindingsListed(t *testing.T) {
	e := newTestEngine(t, &recordingApplier{})
	names := []string{}
	for _, b := range e.Bindings() {
		names = append(names, b.Name)
	}
	assert.Equal(t, []string{"Move Prev", "Move Next"}, names)
}

// Package platformtest provides in-memory platform fakes for tests.
package platformtest

import (
	"fmt"
	"sync"

	"markestedt/grist/geometry"
	"markestedt/grist/platform"
)

// Call records one mutating WindowService call.
type Call struct {
	Op     string
	Window platform.Window
	Rect   geometry.Rect
	Point  geometry.Point
	State  platform.ShowState
}

// WindowState is the fake's view of one window.
type WindowState struct {
	Title   string
	Process string
	Rect    geometry.Rect
	// Margin is subtracted from Rect to produce extended frame bounds.
	Margin  geometry.Margin
	NoFrame bool
}

// Windows is a scriptable WindowService. Zero Foreground means no window has
// focus. Set Fail[op] to make a call fail with an *OSError.
type Windows struct {
	mu sync.Mutex

	Foreground platform.Window
	Windows    map[platform.Window]*WindowState
	MonitorSet []geometry.Monitor
	Cursor     geometry.Point
	Fail       map[string]error
	Calls      []Call
}

// NewWindows returns a fake with one focused window on the given monitors.
// The window starts on the first monitor's work area.
func NewWindows(monitors ...geometry.Monitor) *Windows {
	f := &Windows{
		Foreground: 1,
		Windows:    map[platform.Window]*WindowState{},
		MonitorSet: monitors,
		Fail:       map[string]error{},
	}
	var start geometry.Rect
	if len(monitors) > 0 {
		start = geometry.TopLeft.Place(monitors[0].WorkArea)
	}
	f.Windows[1] = &WindowState{Title: "Untitled - Notepad", Process: `C:\Windows\notepad.exe`, Rect: start}
	return f
}

func (f *Windows) fail(op string) error {
	if err, ok := f.Fail[op]; ok {
		return &platform.OSError{Op: op, Err: err}
	}
	return nil
}

func (f *Windows) window(w platform.Window) (*WindowState, error) {
	s, ok := f.Windows[w]
	if !ok {
		return nil, &platform.OSError{Op: "window", Err: fmt.Errorf("invalid handle %d", w)}
	}
	return s, nil
}

func (f *Windows) record(c Call) {
	f.Calls = append(f.Calls, c)
}

// Recorded returns a copy of the recorded calls.
func (f *Windows) Recorded() []Call {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]Call, len(f.Calls))
	copy(out, f.Calls)
	return out
}

// State returns a copy of a window's state.
func (f *Windows) State(w platform.Window) WindowState {
	f.mu.Lock()
	defer f.mu.Unlock()
	return *f.Windows[w]
}

func (f *Windows) CursorAt() geometry.Point {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.Cursor
}

func (f *Windows) ForegroundWindow() (platform.Window, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.fail("GetForegroundWindow"); err != nil {
		return 0, err
	}
	if f.Foreground == 0 {
		return 0, &platform.OSError{Op: "GetForegroundWindow", Err: platform.ErrNoForegroundWindow}
	}
	return f.Foreground, nil
}

func (f *Windows) WindowTitle(w platform.Window) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, err := f.window(w)
	if err != nil {
		return "", err
	}
	return s.Title, nil
}

func (f *Windows) ProcessPath(w platform.Window) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.fail("QueryFullProcessImageNameW"); err != nil {
		return "", err
	}
	s, err := f.window(w)
	if err != nil {
		return "", err
	}
	return s.Process, nil
}

// MonitorOf picks the monitor containing the window's center, falling back
// to the first monitor like MONITOR_DEFAULTTOPRIMARY.
func (f *Windows) MonitorOf(w platform.Window) (geometry.Monitor, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.fail("MonitorFromWindow"); err != nil {
		return geometry.Monitor{}, err
	}
	s, err := f.window(w)
	if err != nil {
		return geometry.Monitor{}, err
	}
	if len(f.MonitorSet) == 0 {
		return geometry.Monitor{}, &platform.OSError{Op: "MonitorFromWindow"}
	}
	c := s.Rect.Center()
	for _, m := range f.MonitorSet {
		if m.WorkArea.Contains(c) {
			return m, nil
		}
	}
	return f.MonitorSet[0], nil
}

func (f *Windows) Monitors() ([]geometry.Monitor, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.fail("EnumDisplayMonitors"); err != nil {
		return nil, err
	}
	out := make([]geometry.Monitor, len(f.MonitorSet))
	copy(out, f.MonitorSet)
	return out, nil
}

func (f *Windows) WindowRect(w platform.Window) (geometry.Rect, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.fail("GetWindowRect"); err != nil {
		return geometry.Rect{}, err
	}
	s, err := f.window(w)
	if err != nil {
		return geometry.Rect{}, err
	}
	return s.Rect, nil
}

func (f *Windows) ExtendedFrameBounds(w platform.Window) (geometry.Rect, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, err := f.window(w)
	if err != nil {
		return geometry.Rect{}, err
	}
	if s.NoFrame {
		return geometry.Rect{}, &platform.OSError{Op: "DwmGetWindowAttribute"}
	}
	m := s.Margin
	return geometry.Rect{
		Left:   s.Rect.Left - m.Left,
		Top:    s.Rect.Top - m.Top,
		Right:  s.Rect.Right - m.Right,
		Bottom: s.Rect.Bottom - m.Bottom,
	}, nil
}

func (f *Windows) Restore(w platform.Window) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record(Call{Op: "Restore", Window: w})
	return f.fail("ShowWindow")
}

func (f *Windows) Show(w platform.Window, state platform.ShowState) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.fail("ShowWindowAsync"); err != nil {
		return err
	}
	f.record(Call{Op: "Show", Window: w, State: state})
	return nil
}

func (f *Windows) MoveResize(w platform.Window, r geometry.Rect) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.fail("SetWindowPos"); err != nil {
		return err
	}
	s, err := f.window(w)
	if err != nil {
		return err
	}
	s.Rect = r
	f.record(Call{Op: "MoveResize", Window: w, Rect: r})
	return nil
}

func (f *Windows) ClearTopmost(w platform.Window) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.fail("SetWindowPos"); err != nil {
		return err
	}
	f.record(Call{Op: "ClearTopmost", Window: w})
	return nil
}

func (f *Windows) CursorPos() (geometry.Point, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.fail("GetCursorPos"); err != nil {
		return geometry.Point{}, err
	}
	return f.Cursor, nil
}

func (f *Windows) SetCursorPos(p geometry.Point) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.fail("SetCursorPos"); err != nil {
		return err
	}
	f.Cursor = p
	f.record(Call{Op: "SetCursorPos", Point: p})
	return nil
}

// Ops returns the recorded operation names in order.
func (f *Windows) Ops() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	ops := make([]string, len(f.Calls))
	for i, c := range f.Calls {
		ops[i] = c.Op
	}
	return ops
}

var _ platform.WindowService = (*Windows)(nil)

// Feed is a KeyboardFeed that records installs and lets tests push events.
type Feed struct {
	mu       sync.Mutex
	handler  platform.KeyHandler
	Installs int
	Removes  int
	Fail     error
}

func (f *Feed) Install(h platform.KeyHandler) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.Fail != nil {
		return f.Fail
	}
	f.handler = h
	f.Installs++
	return nil
}

func (f *Feed) Remove() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.handler = nil
	f.Removes++
	return nil
}

// Installed reports whether a handler is currently installed.
func (f *Feed) Installed() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.handler != nil
}

// Press delivers ev to the installed handler. It reports false when nothing
// is installed or the handler passed the event through.
func (f *Feed) Press(ev platform.KeyEvent) bool {
	f.mu.Lock()
	h := f.handler
	f.mu.Unlock()
	if h == nil {
		return false
	}
	return h(ev)
}

var _ platform.KeyboardFeed = (*Feed)(nil)

package platform

import (
	"markestedt/grist/geometry"
)

// Window is an opaque top-level window handle.
type Window uintptr

// ShowState is a show-state change applied to a window.
type ShowState int

const (
	ShowMaximized ShowState = iota
	ShowMinimized
)

func (s ShowState) String() string {
	if s == ShowMinimized {
		return "minimized"
	}
	return "maximized"
}

// WindowService provides the window, monitor and cursor operations the
// executor needs. Every call is synchronous and short.
type WindowService interface {
	ForegroundWindow() (Window, error)
	WindowTitle(w Window) (string, error)
	// ProcessPath returns the executable path of the process owning w.
	ProcessPath(w Window) (string, error)

	// MonitorOf returns the monitor containing w, falling back to the
	// primary monitor.
	MonitorOf(w Window) (geometry.Monitor, error)
	Monitors() ([]geometry.Monitor, error)

	WindowRect(w Window) (geometry.Rect, error)
	ExtendedFrameBounds(w Window) (geometry.Rect, error)

	Restore(w Window) error
	Show(w Window, state ShowState) error
	// MoveResize sets the raw window rect without changing z-order.
	MoveResize(w Window, r geometry.Rect) error
	// ClearTopmost moves w below every always-on-top window without moving
	// or resizing it.
	ClearTopmost(w Window) error

	CursorPos() (geometry.Point, error)
	SetCursorPos(p geometry.Point) error
}

// KeyEvent is a decoded low-level keyboard transition.
type KeyEvent struct {
	Code     uint32
	Scan     uint32
	Down     bool
	Injected bool
}

// KeyHandler receives every key transition on the input thread and reports
// whether the event was consumed. It must return quickly.
type KeyHandler func(ev KeyEvent) bool

// KeyboardFeed installs and removes the system-wide keyboard feed.
type KeyboardFeed interface {
	Install(h KeyHandler) error
	Remove() error
}

// SessionEvent is a desktop session transition.
type SessionEvent int

const (
	SessionOther SessionEvent = iota
	SessionLogon
	SessionLogoff
	SessionLock
	SessionUnlock
)

func (e SessionEvent) String() string {
	switch e {
	case SessionLogon:
		return "logon"
	case SessionLogoff:
		return "logoff"
	case SessionLock:
		return "lock"
	case SessionUnlock:
		return "unlock"
	}
	return "other"
}

// SessionNotifier delivers session transitions to a callback.
type SessionNotifier interface {
	WatchSessions(fn func(SessionEvent)) error
}

// Notifier shows a short message to the user.
type Notifier interface {
	ShowMessage(title, text string) error
}

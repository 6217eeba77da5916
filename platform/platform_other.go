//go:build !windows

package platform

import (
	"context"
	"log/slog"

	"markestedt/grist/geometry"
)

// Host is unavailable off Windows. Every operation reports ErrUnsupported.
type Host struct{}

func NewHost() *Host { return &Host{} }

func (h *Host) Start(ctx context.Context) error { return osError("input thread", ErrUnsupported) }
func (h *Host) Stop()                           {}
func (h *Host) Install(KeyHandler) error        { return osError("SetWindowsHookExW", ErrUnsupported) }
func (h *Host) Remove() error                   { return nil }

func (h *Host) WatchSessions(func(SessionEvent)) error {
	return osError("WTSRegisterSessionNotification", ErrUnsupported)
}

type unsupportedWindows struct{}

// NewWindowService returns a service whose calls all fail with
// ErrUnsupported.
func NewWindowService() WindowService { return unsupportedWindows{} }

func (unsupportedWindows) ForegroundWindow() (Window, error) {
	return 0, osError("GetForegroundWindow", ErrUnsupported)
}
func (unsupportedWindows) WindowTitle(Window) (string, error) {
	return "", osError("GetWindowTextW", ErrUnsupported)
}
func (unsupportedWindows) ProcessPath(Window) (string, error) {
	return "", osError("QueryFullProcessImageNameW", ErrUnsupported)
}
func (unsupportedWindows) MonitorOf(Window) (geometry.Monitor, error) {
	return geometry.Monitor{}, osError("MonitorFromWindow", ErrUnsupported)
}
func (unsupportedWindows) Monitors() ([]geometry.Monitor, error) {
	return nil, osError("EnumDisplayMonitors", ErrUnsupported)
}
func (unsupportedWindows) WindowRect(Window) (geometry.Rect, error) {
	return geometry.Rect{}, osError("GetWindowRect", ErrUnsupported)
}
func (unsupportedWindows) ExtendedFrameBounds(Window) (geometry.Rect, error) {
	return geometry.Rect{}, osError("DwmGetWindowAttribute", ErrUnsupported)
}
func (unsupportedWindows) Restore(Window) error { return osError("ShowWindow", ErrUnsupported) }
func (unsupportedWindows) Show(Window, ShowState) error {
	return osError("ShowWindowAsync", ErrUnsupported)
}
func (unsupportedWindows) MoveResize(Window, geometry.Rect) error {
	return osError("SetWindowPos", ErrUnsupported)
}
func (unsupportedWindows) ClearTopmost(Window) error { return osError("SetWindowPos", ErrUnsupported) }
func (unsupportedWindows) CursorPos() (geometry.Point, error) {
	return geometry.Point{}, osError("GetCursorPos", ErrUnsupported)
}
func (unsupportedWindows) SetCursorPos(geometry.Point) error {
	return osError("SetCursorPos", ErrUnsupported)
}

type logNotifier struct{}

// NewNotifier returns a Notifier that writes messages to the log.
func NewNotifier() Notifier { return logNotifier{} }

func (logNotifier) ShowMessage(title, text string) error {
	slog.Info(title, "message", text)
	return nil
}

//go:build windows

package platform

import (
	"syscall"

	"golang.org/x/sys/windows"

	"markestedt/grist/geometry"
)

var (
	user32   = windows.NewLazySystemDLL("user32.dll")
	kernel32 = windows.NewLazySystemDLL("kernel32.dll")
	dwmapi   = windows.NewLazySystemDLL("dwmapi.dll")
	wtsapi32 = windows.NewLazySystemDLL("wtsapi32.dll")

	getForegroundWindow  = user32.NewProc("GetForegroundWindow")
	getWindowTextLengthW = user32.NewProc("GetWindowTextLengthW")
	getWindowTextW       = user32.NewProc("GetWindowTextW")
	getWindowRect        = user32.NewProc("GetWindowRect")
	setWindowPos         = user32.NewProc("SetWindowPos")
	showWindow           = user32.NewProc("ShowWindow")
	showWindowAsync      = user32.NewProc("ShowWindowAsync")
	monitorFromWindow    = user32.NewProc("MonitorFromWindow")
	getMonitorInfoW      = user32.NewProc("GetMonitorInfoW")
	enumDisplayMonitors  = user32.NewProc("EnumDisplayMonitors")
	getCursorPos         = user32.NewProc("GetCursorPos")
	setCursorPos         = user32.NewProc("SetCursorPos")
	messageBoxW          = user32.NewProc("MessageBoxW")

	setWindowsHookExW   = user32.NewProc("SetWindowsHookExW")
	callNextHookEx      = user32.NewProc("CallNextHookEx")
	unhookWindowsHookEx = user32.NewProc("UnhookWindowsHookEx")
	getMessageW         = user32.NewProc("GetMessageW")
	peekMessageW        = user32.NewProc("PeekMessageW")
	translateMessage    = user32.NewProc("TranslateMessage")
	dispatchMessageW    = user32.NewProc("DispatchMessageW")
	postThreadMessageW  = user32.NewProc("PostThreadMessageW")
	registerClassExW    = user32.NewProc("RegisterClassExW")
	createWindowExW     = user32.NewProc("CreateWindowExW")
	destroyWindow       = user32.NewProc("DestroyWindow")
	defWindowProcW      = user32.NewProc("DefWindowProcW")

	getModuleHandleW = kernel32.NewProc("GetModuleHandleW")

	dwmGetWindowAttribute = dwmapi.NewProc("DwmGetWindowAttribute")

	wtsRegisterSessionNotification   = wtsapi32.NewProc("WTSRegisterSessionNotification")
	wtsUnRegisterSessionNotification = wtsapi32.NewProc("WTSUnRegisterSessionNotification")
)

const (
	swpNoSize     = 0x0001
	swpNoMove     = 0x0002
	swpNoZOrder   = 0x0004
	swpNoActivate = 0x0010

	swMaximize = 3
	swMinimize = 6
	swRestore  = 9

	monitorDefaultToPrimary = 0x00000001

	dwmwaExtendedFrameBounds = 9

	mbOK            = 0x00000000
	mbIconInfo      = 0x00000040
	mbSetForeground = 0x00010000
)

// hwndNoTopmost is HWND_NOTOPMOST, (HWND)-2.
var hwndNoTopmost = ^uintptr(1)

type rect struct {
	left, top, right, bottom int32
}

func (r rect) toGeometry() geometry.Rect {
	return geometry.Rect{
		Left:   int(r.left),
		Top:    int(r.top),
		Right:  int(r.right),
		Bottom: int(r.bottom),
	}
}

type point struct {
	x, y int32
}

type monitorInfo struct {
	cbSize    uint32
	rcMonitor rect
	rcWork    rect
	dwFlags   uint32
}

// msg mirrors the Win32 MSG struct.
type msg struct {
	hwnd     uintptr
	message  uint32
	wParam   uintptr
	lParam   uintptr
	time     uint32
	pt       point
	lPrivate uint32
}

// callErr turns the error returned by LazyProc.Call into something useful
// when the call reported failure.
func callErr(err error) error {
	if err == nil || err == syscall.Errno(0) {
		return syscall.EINVAL
	}
	return err
}

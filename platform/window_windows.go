//go:build windows

package platform

import (
	"path/filepath"
	"sync"
	"unsafe"

	"golang.org/x/sys/windows"

	"markestedt/grist/geometry"
)

// WindowsWindowService implements WindowService with user32 and dwmapi.
type WindowsWindowService struct{}

// NewWindowService creates the Windows window service
func NewWindowService() WindowService {
	return &WindowsWindowService{}
}

func (s *WindowsWindowService) ForegroundWindow() (Window, error) {
	h, _, _ := getForegroundWindow.Call()
	if h == 0 {
		return 0, osError("GetForegroundWindow", ErrNoForegroundWindow)
	}
	return Window(h), nil
}

func (s *WindowsWindowService) WindowTitle(w Window) (string, error) {
	n, _, _ := getWindowTextLengthW.Call(uintptr(w))
	if n == 0 {
		return "", nil
	}
	buf := make([]uint16, n+1)
	r, _, err := getWindowTextW.Call(uintptr(w), uintptr(unsafe.Pointer(&buf[0])), uintptr(len(buf)))
	if r == 0 {
		return "", osError("GetWindowTextW", callErr(err))
	}
	return windows.UTF16ToString(buf[:r]), nil
}

func (s *WindowsWindowService) ProcessPath(w Window) (string, error) {
	var pid uint32
	if _, err := windows.GetWindowThreadProcessId(windows.HWND(w), &pid); err != nil {
		return "", osError("GetWindowThreadProcessId", err)
	}
	h, err := windows.OpenProcess(windows.PROCESS_QUERY_LIMITED_INFORMATION, false, pid)
	if err != nil {
		return "", osError("OpenProcess", err)
	}
	defer windows.CloseHandle(h)

	buf := make([]uint16, windows.MAX_LONG_PATH)
	size := uint32(len(buf))
	if err := windows.QueryFullProcessImageName(h, 0, &buf[0], &size); err != nil {
		return "", osError("QueryFullProcessImageNameW", err)
	}
	return filepath.Clean(windows.UTF16ToString(buf[:size])), nil
}

func (s *WindowsWindowService) MonitorOf(w Window) (geometry.Monitor, error) {
	hmon, _, err := monitorFromWindow.Call(uintptr(w), monitorDefaultToPrimary)
	if hmon == 0 {
		return geometry.Monitor{}, osError("MonitorFromWindow", callErr(err))
	}
	return monitorFromHandle(hmon)
}

var (
	enumMu       sync.Mutex
	enumMonitors []geometry.Monitor
	enumErr      error
	enumCallback = windows.NewCallback(func(hmon, hdc, clip, data uintptr) uintptr {
		m, err := monitorFromHandle(hmon)
		if err != nil {
			enumErr = err
			return 0
		}
		enumMonitors = append(enumMonitors, m)
		return 1
	})
)

func (s *WindowsWindowService) Monitors() ([]geometry.Monitor, error) {
	enumMu.Lock()
	defer enumMu.Unlock()
	enumMonitors, enumErr = nil, nil

	r, _, err := enumDisplayMonitors.Call(0, 0, enumCallback, 0)
	if enumErr != nil {
		return nil, enumErr
	}
	if r == 0 {
		return nil, osError("EnumDisplayMonitors", callErr(err))
	}
	out := make([]geometry.Monitor, len(enumMonitors))
	copy(out, enumMonitors)
	return out, nil
}

func monitorFromHandle(hmon uintptr) (geometry.Monitor, error) {
	mi := monitorInfo{cbSize: uint32(unsafe.Sizeof(monitorInfo{}))}
	r, _, err := getMonitorInfoW.Call(hmon, uintptr(unsafe.Pointer(&mi)))
	if r == 0 {
		return geometry.Monitor{}, osError("GetMonitorInfoW", callErr(err))
	}
	return geometry.Monitor{ID: hmon, WorkArea: mi.rcWork.toGeometry()}, nil
}

func (s *WindowsWindowService) WindowRect(w Window) (geometry.Rect, error) {
	var rc rect
	r, _, err := getWindowRect.Call(uintptr(w), uintptr(unsafe.Pointer(&rc)))
	if r == 0 {
		return geometry.Rect{}, osError("GetWindowRect", callErr(err))
	}
	return rc.toGeometry(), nil
}

func (s *WindowsWindowService) ExtendedFrameBounds(w Window) (geometry.Rect, error) {
	var rc rect
	hr, _, _ := dwmGetWindowAttribute.Call(
		uintptr(w),
		dwmwaExtendedFrameBounds,
		uintptr(unsafe.Pointer(&rc)),
		unsafe.Sizeof(rc),
	)
	if hr != 0 {
		return geometry.Rect{}, osError("DwmGetWindowAttribute", windows.Errno(hr))
	}
	return rc.toGeometry(), nil
}

func (s *WindowsWindowService) Restore(w Window) error {
	// ShowWindow returns the previous visibility, not success.
	showWindow.Call(uintptr(w), swRestore)
	return nil
}

func (s *WindowsWindowService) Show(w Window, state ShowState) error {
	cmd := uintptr(swMaximize)
	if state == ShowMinimized {
		cmd = swMinimize
	}
	r, _, err := showWindowAsync.Call(uintptr(w), cmd)
	if r == 0 {
		return osError("ShowWindowAsync", callErr(err))
	}
	return nil
}

func (s *WindowsWindowService) MoveResize(w Window, target geometry.Rect) error {
	r, _, err := setWindowPos.Call(
		uintptr(w),
		0,
		uintptr(int32(target.Left)),
		uintptr(int32(target.Top)),
		uintptr(int32(target.Width())),
		uintptr(int32(target.Height())),
		swpNoZOrder|swpNoActivate,
	)
	if r == 0 {
		return osError("SetWindowPos", callErr(err))
	}
	return nil
}

func (s *WindowsWindowService) ClearTopmost(w Window) error {
	r, _, err := setWindowPos.Call(uintptr(w), hwndNoTopmost, 0, 0, 0, 0, swpNoMove|swpNoSize)
	if r == 0 {
		return osError("SetWindowPos", callErr(err))
	}
	return nil
}

func (s *WindowsWindowService) CursorPos() (geometry.Point, error) {
	var pt point
	r, _, err := getCursorPos.Call(uintptr(unsafe.Pointer(&pt)))
	if r == 0 {
		return geometry.Point{}, osError("GetCursorPos", callErr(err))
	}
	return geometry.Point{X: int(pt.x), Y: int(pt.y)}, nil
}

func (s *WindowsWindowService) SetCursorPos(p geometry.Point) error {
	r, _, err := setCursorPos.Call(uintptr(int32(p.X)), uintptr(int32(p.Y)))
	if r == 0 {
		return osError("SetCursorPos", callErr(err))
	}
	return nil
}

type messageBox struct{}

// NewNotifier returns a Notifier backed by MessageBoxW.
func NewNotifier() Notifier {
	return messageBox{}
}

// ShowMessage displays a modal message box. It blocks until dismissed.
func (messageBox) ShowMessage(title, text string) error {
	t, err := windows.UTF16PtrFromString(text)
	if err != nil {
		return err
	}
	c, err := windows.UTF16PtrFromString(title)
	if err != nil {
		return err
	}
	r, _, callErrno := messageBoxW.Call(0, uintptr(unsafe.Pointer(t)), uintptr(unsafe.Pointer(c)), mbOK|mbIconInfo|mbSetForeground)
	if r == 0 {
		return osError("MessageBoxW", callErr(callErrno))
	}
	return nil
}

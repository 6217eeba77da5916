//go:build windows

package platform

import (
	"context"
	"log/slog"
	"runtime"
	"sync"
	"sync/atomic"
	"unsafe"

	"golang.org/x/sys/windows"
)

const (
	whKeyboardLL = 13
	hcAction     = 0

	wmDestroy          = 0x0002
	wmQuit             = 0x0012
	wmUser             = 0x0400
	wmApp              = 0x8000
	wmWtsSessionChange = 0x02B1

	wtsSessionLogon  = 5
	wtsSessionLogoff = 6
	wtsSessionLock   = 7
	wtsSessionUnlock = 8

	pmNoRemove = 0x0000

	sessionWindowClass = "GristSessionWindow"
)

// Host owns the input thread: a locked OS thread running a Win32 message
// loop. The keyboard hook and the session window live on it, so their
// callbacks are delivered there.
type Host struct {
	mu       sync.Mutex
	running  bool
	threadID uint32
	hook     uintptr
	session  uintptr

	calls   chan func()
	done    chan struct{}
	handler atomic.Pointer[KeyHandler]

	sessionFn atomic.Pointer[func(SessionEvent)]
	sessions  chan SessionEvent
	watchOnce sync.Once
}

// hookHost is the host whose handler receives hook callbacks.
var hookHost atomic.Pointer[Host]

// sessionWindows maps a session window handle to its host.
var sessionWindows sync.Map

var hookCallback = windows.NewCallback(func(nCode, wParam, lParam uintptr) uintptr {
	if int32(nCode) == hcAction {
		if h := hookHost.Load(); h != nil {
			if ev, ok := decodeHookParam(wParam, lParam); ok {
				if fn := h.handler.Load(); fn != nil && (*fn)(ev) {
					return 1
				}
			}
		}
	}
	r, _, _ := callNextHookEx.Call(0, nCode, wParam, lParam)
	return r
})

var wndProcCallback = windows.NewCallback(func(hwnd, umsg, wParam, lParam uintptr) uintptr {
	switch uint32(umsg) {
	case wmWtsSessionChange:
		if v, ok := sessionWindows.Load(hwnd); ok {
			v.(*Host).postSession(sessionEventFromCode(wParam))
		}
		return 0
	case wmDestroy:
		wtsUnRegisterSessionNotification.Call(hwnd)
		sessionWindows.Delete(hwnd)
		return 0
	}
	r, _, _ := defWindowProcW.Call(hwnd, umsg, wParam, lParam)
	return r
})

func sessionEventFromCode(code uintptr) SessionEvent {
	switch code {
	case wtsSessionLogon:
		return SessionLogon
	case wtsSessionLogoff:
		return SessionLogoff
	case wtsSessionLock:
		return SessionLock
	case wtsSessionUnlock:
		return SessionUnlock
	}
	return SessionOther
}

// NewHost creates an input host. Call Start before installing the hook.
func NewHost() *Host {
	return &Host{
		calls:    make(chan func(), 16),
		done:     make(chan struct{}),
		sessions: make(chan SessionEvent, 16),
	}
}

// Start launches the input thread and waits until its message queue exists.
func (h *Host) Start(ctx context.Context) error {
	ready := make(chan struct{})
	go h.run(ready)

	select {
	case <-ready:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Stop ends the message loop, removing the hook and the session window.
func (h *Host) Stop() {
	h.mu.Lock()
	running, tid := h.running, h.threadID
	h.mu.Unlock()
	if !running {
		return
	}
	postThreadMessageW.Call(uintptr(tid), wmQuit, 0, 0)
	<-h.done
}

func (h *Host) run(ready chan<- struct{}) {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()
	defer close(h.done)

	var m msg
	// Force creation of the thread's message queue before anyone posts to it.
	peekMessageW.Call(uintptr(unsafe.Pointer(&m)), 0, wmUser, wmUser, pmNoRemove)

	h.mu.Lock()
	h.threadID = windows.GetCurrentThreadId()
	h.running = true
	h.mu.Unlock()
	close(ready)

	for {
		r, _, _ := getMessageW.Call(uintptr(unsafe.Pointer(&m)), 0, 0, 0)
		if int32(r) <= 0 {
			break
		}
		if m.hwnd == 0 && m.message == wmApp {
			h.drain()
			continue
		}
		translateMessage.Call(uintptr(unsafe.Pointer(&m)))
		dispatchMessageW.Call(uintptr(unsafe.Pointer(&m)))
	}

	h.mu.Lock()
	h.running = false
	h.mu.Unlock()
	h.drain()

	if err := h.removeHook(); err != nil {
		slog.Warn("Failed to remove keyboard hook on exit", "error", err)
	}
	if h.session != 0 {
		destroyWindow.Call(h.session)
		h.session = 0
	}
}

func (h *Host) drain() {
	for {
		select {
		case fn := <-h.calls:
			fn()
		default:
			return
		}
	}
}

// do runs fn on the input thread and returns its error. Calls made from the
// input thread itself run inline.
func (h *Host) do(fn func() error) error {
	h.mu.Lock()
	running, tid := h.running, h.threadID
	h.mu.Unlock()
	if !running {
		return osError("input thread", ErrNotRunning)
	}
	if windows.GetCurrentThreadId() == tid {
		return fn()
	}

	res := make(chan error, 1)
	select {
	case h.calls <- func() { res <- fn() }:
	case <-h.done:
		return osError("input thread", ErrNotRunning)
	}
	if r, _, err := postThreadMessageW.Call(uintptr(tid), wmApp, 0, 0); r == 0 {
		return osError("PostThreadMessageW", callErr(err))
	}

	select {
	case err := <-res:
		return err
	case <-h.done:
		return osError("input thread", ErrNotRunning)
	}
}

// Install sets the low-level keyboard hook, or swaps the handler if the hook
// is already in place.
func (h *Host) Install(handler KeyHandler) error {
	h.handler.Store(&handler)
	return h.do(func() error {
		if h.hook != 0 {
			return nil
		}
		mod, _, _ := getModuleHandleW.Call(0)
		hook, _, err := setWindowsHookExW.Call(whKeyboardLL, hookCallback, mod, 0)
		if hook == 0 {
			return osError("SetWindowsHookExW", callErr(err))
		}
		h.hook = hook
		hookHost.Store(h)
		return nil
	})
}

// Remove releases the keyboard hook. Removing an absent hook is a no-op.
func (h *Host) Remove() error {
	return h.do(h.removeHook)
}

func (h *Host) removeHook() error {
	if h.hook == 0 {
		return nil
	}
	r, _, err := unhookWindowsHookEx.Call(h.hook)
	h.hook = 0
	hookHost.CompareAndSwap(h, nil)
	if r == 0 {
		return osError("UnhookWindowsHookEx", callErr(err))
	}
	return nil
}

// WatchSessions creates the hidden session window and delivers lock, unlock,
// logon and logoff transitions to fn in arrival order. fn runs on its own
// goroutine, never on the input thread.
func (h *Host) WatchSessions(fn func(SessionEvent)) error {
	h.sessionFn.Store(&fn)
	h.watchOnce.Do(func() {
		go h.dispatchSessions()
	})
	return h.do(func() error {
		if h.session != 0 {
			return nil
		}
		hwnd, err := createSessionWindow()
		if err != nil {
			return err
		}
		sessionWindows.Store(hwnd, h)
		if r, _, err := wtsRegisterSessionNotification.Call(hwnd, 0); r == 0 {
			destroyWindow.Call(hwnd)
			return osError("WTSRegisterSessionNotification", callErr(err))
		}
		h.session = hwnd
		return nil
	})
}

func (h *Host) postSession(ev SessionEvent) {
	select {
	case h.sessions <- ev:
	default:
		slog.Warn("Dropped session event", "event", ev)
	}
}

func (h *Host) dispatchSessions() {
	for {
		select {
		case ev := <-h.sessions:
			if fn := h.sessionFn.Load(); fn != nil {
				(*fn)(ev)
			}
		case <-h.done:
			return
		}
	}
}

type wndClassEx struct {
	cbSize        uint32
	style         uint32
	lpfnWndProc   uintptr
	cbClsExtra    int32
	cbWndExtra    int32
	hInstance     uintptr
	hIcon         uintptr
	hCursor       uintptr
	hbrBackground uintptr
	lpszMenuName  *uint16
	lpszClassName *uint16
	hIconSm       uintptr
}

var (
	registerOnce sync.Once
	registerErr  error
)

func registerSessionClass() error {
	registerOnce.Do(func() {
		name, err := windows.UTF16PtrFromString(sessionWindowClass)
		if err != nil {
			registerErr = err
			return
		}
		mod, _, _ := getModuleHandleW.Call(0)
		wc := wndClassEx{
			lpfnWndProc:   wndProcCallback,
			hInstance:     mod,
			lpszClassName: name,
		}
		wc.cbSize = uint32(unsafe.Sizeof(wc))
		if r, _, err := registerClassExW.Call(uintptr(unsafe.Pointer(&wc))); r == 0 {
			registerErr = osError("RegisterClassExW", callErr(err))
		}
	})
	return registerErr
}

func createSessionWindow() (uintptr, error) {
	if err := registerSessionClass(); err != nil {
		return 0, err
	}
	name, err := windows.UTF16PtrFromString(sessionWindowClass)
	if err != nil {
		return 0, err
	}
	mod, _, _ := getModuleHandleW.Call(0)
	// A hidden top-level window; never shown.
	hwnd, _, callErrno := createWindowExW.Call(
		0,
		uintptr(unsafe.Pointer(name)),
		uintptr(unsafe.Pointer(name)),
		0,
		0, 0, 0, 0,
		0, 0, mod, 0,
	)
	if hwnd == 0 {
		return 0, osError("CreateWindowExW", callErr(callErrno))
	}
	return hwnd, nil
}

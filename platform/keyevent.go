package platform

import "unsafe"

const (
	wmKeydown    = 0x0100
	wmKeyup      = 0x0101
	wmSyskeydown = 0x0104
	wmSyskeyup   = 0x0105

	llkhfInjected = 0x00000010
)

// DecodeKeyMessage turns a low-level hook message and its vkCode/flags into
// a KeyEvent. Messages other than the four key transitions report false.
func DecodeKeyMessage(message uintptr, vkCode, scanCode, flags uint32) (KeyEvent, bool) {
	var down bool
	switch message {
	case wmKeydown, wmSyskeydown:
		down = true
	case wmKeyup, wmSyskeyup:
		down = false
	default:
		return KeyEvent{}, false
	}
	return KeyEvent{
		Code:     vkCode,
		Scan:     scanCode,
		Down:     down,
		Injected: flags&llkhfInjected != 0,
	}, true
}

// kbdllhookstruct mirrors KBDLLHOOKSTRUCT.
type kbdllhookstruct struct {
	vkCode      uint32
	scanCode    uint32
	flags       uint32
	time        uint32
	dwExtraInfo uintptr
}

// decodeHookParam is the only place the raw hook parameter block is read.
// lParam must be zero or point at a KBDLLHOOKSTRUCT owned by the OS for the
// duration of the callback.
func decodeHookParam(wParam, lParam uintptr) (KeyEvent, bool) {
	if lParam == 0 {
		return KeyEvent{}, false
	}
	kb := *(*kbdllhookstruct)(unsafe.Pointer(lParam))
	return DecodeKeyMessage(wParam, kb.vkCode, kb.scanCode, kb.flags)
}

//go:build windows

package win

import (
	"unsafe"

	"golang.org/x/sys/windows"
)

var (
	user32 = windows.NewLazySystemDLL("user32.dll")

	procGetForegroundWindow  = user32.NewProc("GetForegroundWindow")
	procGetWindowTextLengthW = user32.NewProc("GetWindowTextLengthW")
	procGetWindowTextW       = user32.NewProc("GetWindowTextW")
	procSetCursorPos         = user32.NewProc("SetCursorPos")
	procMouseEvent           = user32.NewProc("mouse_event")
	procKeybdEvent           = user32.NewProc("keybd_event")
	procSendInput            = user32.NewProc("SendInput")
	procVkKeyScanW           = user32.NewProc("VkKeyScanW")
	procSetProcessDPIAware   = user32.NewProc("SetProcessDPIAware")
)

const (
	mouseeventfLeftDown   = 0x0002
	mouseeventfLeftUp     = 0x0004
	mouseeventfRightDown  = 0x0008
	mouseeventfRightUp    = 0x0010
	mouseeventfMiddleDown = 0x0020
	mouseeventfMiddleUp   = 0x0040
	mouseeventfWheel      = 0x0800
	mouseeventfHWheel     = 0x1000

	keyeventfExtendedKey = 0x0001
	keyeventfKeyUp       = 0x0002
	keyeventfUnicode     = 0x0004

	inputKeyboard = 1
	wheelDelta    = 120
)

// keyboardInput mirrors INPUT with a KEYBDINPUT payload on 64-bit Windows.
type keyboardInput struct {
	inputType uint32
	_         uint32
	vk        uint16
	scan      uint16
	flags     uint32
	time      uint32
	_         uint32
	extraInfo uintptr
	_         [8]byte
}

func foregroundWindow() uintptr {
	hwnd, _, _ := procGetForegroundWindow.Call()
	return hwnd
}

func windowText(hwnd uintptr) string {
	n, _, _ := procGetWindowTextLengthW.Call(hwnd)
	if n == 0 {
		return ""
	}
	buf := make([]uint16, n+1)
	procGetWindowTextW.Call(hwnd, uintptr(unsafe.Pointer(&buf[0])), uintptr(len(buf)))
	return windows.UTF16ToString(buf)
}

func setCursorPos(x, y int) error {
	if r, _, err := procSetCursorPos.Call(uintptr(int32(x)), uintptr(int32(y))); r == 0 {
		return err
	}
	return nil
}

func mouseEvent(flags uint32, data int32) {
	procMouseEvent.Call(uintptr(flags), 0, 0, uintptr(uint32(data)), 0)
}

func keyEvent(vk uint16, up bool) {
	var flags uint32
	if extendedKeys[vk] {
		flags |= keyeventfExtendedKey
	}
	if up {
		flags |= keyeventfKeyUp
	}
	procKeybdEvent.Call(uintptr(vk), 0, uintptr(flags), 0)
}

// sendUnicode types one UTF-16 code unit independent of the keyboard layout.
func sendUnicode(unit uint16) error {
	inputs := [2]keyboardInput{
		{inputType: inputKeyboard, scan: unit, flags: keyeventfUnicode},
		{inputType: inputKeyboard, scan: unit, flags: keyeventfUnicode | keyeventfKeyUp},
	}
	n, _, err := procSendInput.Call(uintptr(len(inputs)), uintptr(unsafe.Pointer(&inputs[0])), unsafe.Sizeof(inputs[0]))
	if n != uintptr(len(inputs)) {
		return err
	}
	return nil
}

// vkKeyScan maps a character to a virtual key and its shift state for the
// current layout.
func vkKeyScan(r rune) (vk uint16, shift uint8, ok bool) {
	res, _, _ := procVkKeyScanW.Call(uintptr(uint16(r)))
	if int16(res) == -1 {
		return 0, 0, false
	}
	return uint16(res & 0xFF), uint8(res >> 8), true
}

func setProcessDPIAware() {
	procSetProcessDPIAware.Call()
}

package win

import "strings"

// Virtual-key codes for named keys.
var namedKeys = map[string]uint16{
	"backspace":   0x08,
	"tab":         0x09,
	"enter":       0x0D,
	"return":      0x0D,
	"shift":       0x10,
	"ctrl":        0x11,
	"control":     0x11,
	"alt":         0x12,
	"pause":       0x13,
	"capslock":    0x14,
	"esc":         0x1B,
	"escape":      0x1B,
	"space":       0x20,
	"pageup":      0x21,
	"pgup":        0x21,
	"pagedown":    0x22,
	"pgdn":        0x22,
	"end":         0x23,
	"home":        0x24,
	"left":        0x25,
	"up":          0x26,
	"right":       0x27,
	"down":        0x28,
	"printscreen": 0x2C,
	"insert":      0x2D,
	"delete":      0x2E,
	"del":         0x2E,
	"win":         0x5B,
	"windows":     0x5B,
	"winleft":     0x5B,
	"winright":    0x5C,
	"apps":        0x5D,
	"numlock":     0x90,
	"scrolllock":  0x91,
	"volumemute":  0xAD,
	"volumedown":  0xAE,
	"volumeup":    0xAF,
}

// Keys that need the extended-key flag when synthesized.
var extendedKeys = map[uint16]bool{
	0x21: true, 0x22: true, 0x23: true, 0x24: true,
	0x25: true, 0x26: true, 0x27: true, 0x28: true,
	0x2D: true, 0x2E: true, 0x5B: true, 0x5C: true, 0x5D: true,
}

// virtualKey resolves a key name to a virtual-key code. Letters and digits
// map directly; f1 to f24 map to VK_F1 onwards. Other single characters are
// left to the keyboard layout and report ok == false.
func virtualKey(name string) (vk uint16, ok bool) {
	key := strings.ToLower(strings.TrimSpace(name))
	if vk, ok := namedKeys[key]; ok {
		return vk, true
	}
	if len(key) == 1 {
		c := key[0]
		switch {
		case c >= 'a' && c <= 'z':
			return uint16(c - 'a' + 'A'), true
		case c >= '0' && c <= '9':
			return uint16(c), true
		}
		return 0, false
	}
	if len(key) >= 2 && key[0] == 'f' {
		n := 0
		for _, c := range key[1:] {
			if c < '0' || c > '9' {
				return 0, false
			}
			n = n*10 + int(c-'0')
		}
		if n >= 1 && n <= 24 {
			return uint16(0x70 + n - 1), true
		}
	}
	return 0, false
}

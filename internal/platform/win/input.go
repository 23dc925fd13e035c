//go:build windows

package win

import (
	"fmt"
	"time"
	"unicode/utf16"

	"github.com/mj1618/desktop-clippy/internal/platform"
)

// dragSteps is the number of intermediate cursor positions in a drag.
const dragSteps = 20

type inputter struct {
	cfg platform.InputConfig
}

var _ platform.Inputter = (*inputter)(nil)

func newInputter(cfg platform.InputConfig) *inputter {
	return &inputter{cfg: cfg}
}

func (in *inputter) settle() {
	if in.cfg.Pause > 0 {
		time.Sleep(in.cfg.Pause)
	}
}

func buttonFlags(b platform.MouseButton) (down, up uint32) {
	switch b {
	case platform.MouseRight:
		return mouseeventfRightDown, mouseeventfRightUp
	case platform.MouseMiddle:
		return mouseeventfMiddleDown, mouseeventfMiddleUp
	default:
		return mouseeventfLeftDown, mouseeventfLeftUp
	}
}

func (in *inputter) Click(x, y int, button platform.MouseButton, count int) error {
	if err := setCursorPos(x, y); err != nil {
		return fmt.Errorf("move to (%d, %d): %w", x, y, err)
	}
	if count < 1 {
		count = 1
	}
	down, up := buttonFlags(button)
	for i := 0; i < count; i++ {
		mouseEvent(down, 0)
		mouseEvent(up, 0)
	}
	in.settle()
	return nil
}

func (in *inputter) MoveMouse(x, y int) error {
	if err := setCursorPos(x, y); err != nil {
		return fmt.Errorf("move to (%d, %d): %w", x, y, err)
	}
	in.settle()
	return nil
}

// Scroll turns the wheel at the current cursor position. Left and right
// hold shift and turn the vertical wheel, which most applications treat as
// horizontal scrolling.
func (in *inputter) Scroll(direction platform.ScrollDirection, amount int) error {
	delta := int32(amount * wheelDelta)
	switch direction {
	case platform.ScrollUp:
		mouseEvent(mouseeventfWheel, delta)
	case platform.ScrollDown:
		mouseEvent(mouseeventfWheel, -delta)
	case platform.ScrollLeft, platform.ScrollRight:
		if direction == platform.ScrollRight {
			delta = -delta
		}
		keyEvent(namedKeys["shift"], false)
		time.Sleep(50 * time.Millisecond)
		mouseEvent(mouseeventfWheel, delta)
		time.Sleep(50 * time.Millisecond)
		keyEvent(namedKeys["shift"], true)
	default:
		return fmt.Errorf("invalid scroll direction %q", direction)
	}
	in.settle()
	return nil
}

func (in *inputter) Drag(fromX, fromY, toX, toY int) error {
	if err := setCursorPos(fromX, fromY); err != nil {
		return fmt.Errorf("move to (%d, %d): %w", fromX, fromY, err)
	}
	mouseEvent(mouseeventfLeftDown, 0)
	step := in.cfg.DragDuration / dragSteps
	for i := 1; i <= dragSteps; i++ {
		x := fromX + (toX-fromX)*i/dragSteps
		y := fromY + (toY-fromY)*i/dragSteps
		if err := setCursorPos(x, y); err != nil {
			mouseEvent(mouseeventfLeftUp, 0)
			return fmt.Errorf("drag to (%d, %d): %w", x, y, err)
		}
		if step > 0 {
			time.Sleep(step)
		}
	}
	mouseEvent(mouseeventfLeftUp, 0)
	in.settle()
	return nil
}

// TypeText sends text one character at a time. Newlines and tabs are sent as
// key presses; everything else goes through unicode injection.
func (in *inputter) TypeText(text string) error {
	for _, r := range text {
		switch r {
		case '\r':
			continue
		case '\n':
			tapKey(namedKeys["enter"])
		case '\t':
			tapKey(namedKeys["tab"])
		default:
			for _, unit := range utf16.Encode([]rune{r}) {
				if err := sendUnicode(unit); err != nil {
					return fmt.Errorf("type %q: %w", r, err)
				}
			}
		}
		if in.cfg.TypeInterval > 0 {
			time.Sleep(in.cfg.TypeInterval)
		}
	}
	in.settle()
	return nil
}

func (in *inputter) PressKey(key string) error {
	vk, shift, err := resolveKey(key)
	if err != nil {
		return err
	}
	if shift {
		keyEvent(namedKeys["shift"], false)
	}
	tapKey(vk)
	if shift {
		keyEvent(namedKeys["shift"], true)
	}
	in.settle()
	return nil
}

// KeyCombo presses keys in order and releases them in reverse.
func (in *inputter) KeyCombo(keys []string) error {
	if len(keys) == 0 {
		return fmt.Errorf("empty key combination")
	}
	vks := make([]uint16, len(keys))
	for i, k := range keys {
		vk, _, err := resolveKey(k)
		if err != nil {
			return err
		}
		vks[i] = vk
	}
	for _, vk := range vks {
		keyEvent(vk, false)
	}
	for i := len(vks) - 1; i >= 0; i-- {
		keyEvent(vks[i], true)
	}
	in.settle()
	return nil
}

func tapKey(vk uint16) {
	keyEvent(vk, false)
	keyEvent(vk, true)
}

// resolveKey finds the virtual key for a key name, falling back to the
// keyboard layout for punctuation. shift reports whether the layout needs
// shift held for that character.
func resolveKey(key string) (vk uint16, shift bool, err error) {
	if vk, ok := virtualKey(key); ok {
		return vk, false, nil
	}
	runes := []rune(key)
	if len(runes) == 1 {
		if vk, state, ok := vkKeyScan(runes[0]); ok {
			return vk, state&1 != 0, nil
		}
	}
	return 0, false, fmt.Errorf("unknown key %q", key)
}

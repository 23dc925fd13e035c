package platform

import (
	"fmt"
	"strings"
	"time"
)

// MouseButton represents a mouse button.
type MouseButton int

const (
	MouseLeft MouseButton = iota
	MouseRight
	MouseMiddle
)

// String returns the lowercase button name.
func (b MouseButton) String() string {
	switch b {
	case MouseRight:
		return "right"
	case MouseMiddle:
		return "middle"
	default:
		return "left"
	}
}

// ParseMouseButton converts a tool argument to MouseButton.
func ParseMouseButton(s string) (MouseButton, error) {
	switch strings.ToLower(s) {
	case "left", "":
		return MouseLeft, nil
	case "right":
		return MouseRight, nil
	case "middle":
		return MouseMiddle, nil
	default:
		return MouseLeft, fmt.Errorf("unknown mouse button: %q (expected left, right, or middle)", s)
	}
}

// ScrollDirection is the direction of a wheel scroll.
type ScrollDirection string

const (
	ScrollUp    ScrollDirection = "up"
	ScrollDown  ScrollDirection = "down"
	ScrollLeft  ScrollDirection = "left"
	ScrollRight ScrollDirection = "right"
)

// ParseScrollDirection validates a scroll direction argument.
func ParseScrollDirection(s string) (ScrollDirection, error) {
	switch d := ScrollDirection(strings.ToLower(s)); d {
	case ScrollUp, ScrollDown, ScrollLeft, ScrollRight:
		return d, nil
	default:
		return "", fmt.Errorf("invalid direction %q: use up, down, left, or right", s)
	}
}

// Rect is a screen rectangle: origin plus size.
type Rect struct {
	X, Y, Width, Height int
}

// Process is one entry of a process enumeration.
type Process struct {
	PID       int
	ImageName string
	Err       error // set when the entry could not be described
}

// ShellResult is the outcome of a shell command.
type ShellResult struct {
	Output   string
	ExitCode int
}

// InputConfig tunes the input backend. It is passed explicitly to the
// backend constructor rather than mutating process-wide settings.
type InputConfig struct {
	Pause        time.Duration // settle time after every input action
	TypeInterval time.Duration // delay between typed characters
	DragDuration time.Duration // time taken by the drag motion
}

// DefaultInputConfig returns the input timings used when none are configured.
func DefaultInputConfig() InputConfig {
	return InputConfig{
		Pause:        time.Second,
		TypeInterval: 100 * time.Millisecond,
		DragDuration: 500 * time.Millisecond,
	}
}

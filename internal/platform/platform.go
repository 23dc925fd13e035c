package platform

import (
	"context"
	"image"
)

// Element is a live node in the OS accessibility tree.
//
// Every accessor reads from the provider on demand. An empty string means the
// attribute is absent; an error means the handle went stale or the provider
// refused the read. Handles are only valid for the snapshot that produced them.
type Element interface {
	Name() (string, error)
	ControlTypeName() (string, error)
	BoundingRectangle() (Rect, error)
	Value() (string, error)
}

// Window is a top-level application window in the accessibility tree.
type Window interface {
	// Name returns the window's display name (usually its title).
	Name() (string, error)

	// Children returns the direct children of the window that satisfy match,
	// in tree order. Grandchildren are never visited.
	Children(match func(Element) bool) ([]Element, error)
}

// Accessibility queries the OS accessibility layer.
type Accessibility interface {
	// ForegroundWindow returns the focused top-level window, or nil when
	// nothing has focus.
	ForegroundWindow() (Window, error)

	// ElementFromPoint returns the element at the given screen coordinates.
	ElementFromPoint(x, y int) (Element, error)
}

// ProcessLister enumerates running processes.
type ProcessLister interface {
	// Processes lists every process visible to the caller. Entries the OS
	// would not describe carry a non-nil Err; the slice itself only fails
	// when the enumeration as a whole cannot run.
	Processes() ([]Process, error)
}

// Screenshotter captures the screen.
type Screenshotter interface {
	// CaptureScreen captures the primary display. Image coordinates match
	// screen coordinates.
	CaptureScreen() (image.Image, error)
}

// Inputter simulates mouse and keyboard input.
type Inputter interface {
	Click(x, y int, button MouseButton, count int) error
	MoveMouse(x, y int) error
	Scroll(direction ScrollDirection, amount int) error
	Drag(fromX, fromY, toX, toY int) error
	TypeText(text string) error
	PressKey(key string) error
	KeyCombo(keys []string) error
}

// WindowManager launches applications and brings their windows forward.
type WindowManager interface {
	Launch(ctx context.Context, name string) error

	// SwitchTo focuses the first window matching name and returns its title.
	SwitchTo(ctx context.Context, name string) (string, error)
}

// Shell runs commands in the platform shell.
type Shell interface {
	Run(ctx context.Context, command string) (ShellResult, error)
}

// ClipboardManager reads and writes the system clipboard.
type ClipboardManager interface {
	ReadText() (string, error)
	WriteText(text string) error
}

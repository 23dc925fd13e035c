// Package desktop captures point-in-time snapshots of the desktop: the
// focused application, the running applications, a bounded classification of
// the focused window's UI elements and, on request, a screenshot.
package desktop

import (
	"strings"

	"github.com/mj1618/desktop-clippy/internal/platform"
)

// Sentinel values for DesktopState.ActiveApp.
const (
	UnknownApp = "Unknown"
	ErrorApp   = "Error getting state"
)

// Per-category caps. They bound the size of the text handed to the agent.
const (
	MaxInteractive = 20
	MaxInformative = 20
	MaxScrollable  = 10
)

// TreeState holds the focused window's direct children, partitioned by role.
// Order follows tree traversal order.
type TreeState struct {
	Interactive []platform.Element
	Informative []platform.Element
	Scrollable  []platform.Element
}

// DesktopState is one snapshot. It is built fresh by every capture and is
// not modified afterwards.
type DesktopState struct {
	ActiveApp  string
	Apps       []string
	Tree       TreeState
	Screenshot []byte // PNG; nil when not requested or capture failed
}

// ActiveAppString returns the focused application's display name.
func (d DesktopState) ActiveAppString() string {
	return d.ActiveApp
}

// AppsString renders the running applications, one "- name" line each.
func (d DesktopState) AppsString() string {
	lines := make([]string, len(d.Apps))
	for i, app := range d.Apps {
		lines[i] = "- " + app
	}
	return strings.Join(lines, "\n")
}

// HasScreenshot reports whether the snapshot carries an image.
func (d DesktopState) HasScreenshot() bool {
	return len(d.Screenshot) > 0
}

func errorState() DesktopState {
	return DesktopState{
		ActiveApp: ErrorApp,
		Apps:      []string{},
	}
}

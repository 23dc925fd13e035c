package desktop

import (
	"testing"

	"github.com/mj1618/desktop-clippy/internal/platform"
)

func TestEmptyTreeSerializesToEmptyString(t *testing.T) {
	var tree TreeState
	if s := tree.InteractiveString(); s != "" {
		t.Errorf("interactive = %q", s)
	}
	if s := tree.InformativeString(); s != "" {
		t.Errorf("informative = %q", s)
	}
	if s := tree.ScrollableString(); s != "" {
		t.Errorf("scrollable = %q", s)
	}
}

func TestSerializeSkipsUnreadableElements(t *testing.T) {
	tree := TreeState{
		Interactive: []platform.Element{
			&fakeElement{name: "Save", controlType: "Button", rect: platform.Rect{X: 1, Y: 2}},
			typedOnly{controlType: "Button"},
			&fakeElement{panics: true},
			nil,
			&fakeElement{err: errStale},
			&fakeElement{name: "Cancel", controlType: "Button", rect: platform.Rect{X: 3, Y: 4}},
		},
		Informative: []platform.Element{
			typedOnly{controlType: "Text"},
			&fakeElement{controlType: "Text"},
		},
		Scrollable: []platform.Element{
			&fakeElement{panics: true},
			&fakeElement{name: "Results", controlType: "List", rect: platform.Rect{X: 9, Y: 8}},
		},
	}

	if got, want := tree.InteractiveString(), "- Save (Button) at (1, 2)\n- Cancel (Button) at (3, 4)"; got != want {
		t.Errorf("interactive:\n got %q\nwant %q", got, want)
	}
	if got, want := tree.InformativeString(), "- No text"; got != want {
		t.Errorf("informative: got %q, want %q", got, want)
	}
	if got, want := tree.ScrollableString(), "- Results at (9, 8)"; got != want {
		t.Errorf("scrollable: got %q, want %q", got, want)
	}
}

func TestInformativeFallsBackToValue(t *testing.T) {
	tree := TreeState{Informative: []platform.Element{
		&fakeElement{name: "Title", value: "ignored"},
		&fakeElement{value: "42 items"},
	}}
	views := tree.InformativeViews()
	if len(views) != 2 || views[0].Text != "Title" || views[1].Text != "42 items" {
		t.Errorf("views = %+v", views)
	}
}

func TestAppsString(t *testing.T) {
	state := DesktopState{Apps: []string{"notepad", "chrome"}}
	if got, want := state.AppsString(), "- notepad\n- chrome"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
	if got := (DesktopState{}).AppsString(); got != "" {
		t.Errorf("empty apps = %q", got)
	}
}

func TestMatcher(t *testing.T) {
	match := InteractiveTypes.Matcher()
	if !match(&fakeElement{controlType: "ComboBox"}) {
		t.Error("ComboBox should be interactive")
	}
	if match(&fakeElement{controlType: "Text"}) {
		t.Error("Text should not be interactive")
	}
	if match(&fakeElement{controlType: "Button", err: errStale}) {
		t.Error("unreadable control type should not match")
	}
}

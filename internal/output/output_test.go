package output

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/mj1618/desktop-clippy/internal/desktop"
	"github.com/mj1618/desktop-clippy/internal/platform"
)

type stubElement struct {
	name, controlType, value string
	rect                     platform.Rect
}

func (e stubElement) Name() (string, error)                     { return e.name, nil }
func (e stubElement) ControlTypeName() (string, error)          { return e.controlType, nil }
func (e stubElement) BoundingRectangle() (platform.Rect, error) { return e.rect, nil }
func (e stubElement) Value() (string, error)                    { return e.value, nil }

func sampleState() desktop.DesktopState {
	return desktop.DesktopState{
		ActiveApp: "Untitled - Notepad",
		Apps:      []string{"notepad", "chrome"},
		Tree: desktop.TreeState{
			Interactive: []platform.Element{
				stubElement{name: "OK", controlType: "Button", rect: platform.Rect{X: 10, Y: 20, Width: 80, Height: 24}},
				stubElement{controlType: "Edit", rect: platform.Rect{X: 50, Y: 60, Width: 200, Height: 24}},
			},
			Informative: []platform.Element{stubElement{name: "Ready", controlType: "Text"}},
		},
	}
}

func TestStateText(t *testing.T) {
	want := `Focused App:
Untitled - Notepad

Opened Apps:
- notepad
- chrome

List of Interactive Elements:
- OK (Button) at (10, 20)
- Unnamed (Edit) at (50, 60)

List of Informative Elements:
- Ready

List of Scrollable Elements:
No scrollable elements found.`

	if got := StateText(sampleState()); got != want {
		t.Errorf("StateText mismatch:\n got:\n%s\nwant:\n%s", got, want)
	}
}

func TestStateTextErrorState(t *testing.T) {
	got := StateText(desktop.DesktopState{ActiveApp: desktop.ErrorApp, Apps: []string{}})
	for _, want := range []string{
		"Focused App:\nError getting state",
		"No interactive elements found.",
		"No informative elements found.",
		"No scrollable elements found.",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("missing %q in:\n%s", want, got)
		}
	}
}

func TestWriteStateJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteState(&buf, sampleState(), FormatJSON); err != nil {
		t.Fatal(err)
	}
	var decoded StateReport
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v\n%s", err, buf.String())
	}
	if decoded.FocusedApp != "Untitled - Notepad" {
		t.Errorf("focused_app = %q", decoded.FocusedApp)
	}
	if len(decoded.Interactive) != 2 || decoded.Interactive[0].Bounds != [4]int{10, 20, 80, 24} {
		t.Errorf("interactive = %+v", decoded.Interactive)
	}
	if decoded.Scrollable == nil || len(decoded.Scrollable) != 0 {
		t.Errorf("scrollable = %#v, want empty list", decoded.Scrollable)
	}
	if decoded.HasScreenshot {
		t.Error("has_screenshot should be false")
	}
}

func TestWriteStateYAML(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteState(&buf, sampleState(), FormatYAML); err != nil {
		t.Fatal(err)
	}
	if bytes.Count(buf.Bytes(), []byte("\n")) <= 1 {
		t.Errorf("YAML output should be multi-line, got:\n%s", buf.String())
	}
	var decoded StateReport
	if err := yaml.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("output is not valid YAML: %v", err)
	}
	if len(decoded.OpenedApps) != 2 || decoded.OpenedApps[1] != "chrome" {
		t.Errorf("opened_apps = %v", decoded.OpenedApps)
	}
	if len(decoded.Informative) != 1 || decoded.Informative[0].Text != "Ready" {
		t.Errorf("informative = %+v", decoded.Informative)
	}
}

func TestWriteJSONCompact(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteJSON(&buf, map[string]string{"url": "a&b"}, false); err != nil {
		t.Fatal(err)
	}
	if got := buf.String(); got != "{\"url\":\"a&b\"}\n" {
		t.Errorf("compact JSON = %q", got)
	}
}

func TestParseFormat(t *testing.T) {
	for _, s := range []string{"text", "YAML", "json"} {
		if _, err := ParseFormat(s); err != nil {
			t.Errorf("ParseFormat(%q): %v", s, err)
		}
	}
	if _, err := ParseFormat("agent"); err == nil {
		t.Error("expected error for unknown format")
	}
}

func TestNewStateReportNilApps(t *testing.T) {
	r := NewStateReport(desktop.DesktopState{ActiveApp: desktop.UnknownApp})
	if r.OpenedApps == nil {
		t.Error("opened apps should be an empty list, not nil")
	}
}

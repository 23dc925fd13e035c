// Package output renders desktop state for agents and terminals.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/mj1618/desktop-clippy/internal/desktop"
)

// Format represents the output format.
type Format string

const (
	FormatText Format = "text"
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// ParseFormat validates a --format flag value.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case FormatText, FormatYAML, FormatJSON:
		return f, nil
	default:
		return "", fmt.Errorf("unsupported format: %s (use text, yaml, or json)", s)
	}
}

// StateReport is the structured form of a desktop snapshot.
type StateReport struct {
	FocusedApp    string                `yaml:"focused_app"    json:"focused_app"`
	OpenedApps    []string              `yaml:"opened_apps"    json:"opened_apps"`
	Interactive   []desktop.ElementView `yaml:"interactive"    json:"interactive"`
	Informative   []desktop.ElementView `yaml:"informative"    json:"informative"`
	Scrollable    []desktop.ElementView `yaml:"scrollable"     json:"scrollable"`
	HasScreenshot bool                  `yaml:"has_screenshot" json:"has_screenshot"`
}

// NewStateReport projects state into a StateReport. Elements that cannot be
// read are left out, as in the text form.
func NewStateReport(state desktop.DesktopState) StateReport {
	apps := state.Apps
	if apps == nil {
		apps = []string{}
	}
	return StateReport{
		FocusedApp:    state.ActiveAppString(),
		OpenedApps:    apps,
		Interactive:   state.Tree.InteractiveViews(),
		Informative:   state.Tree.InformativeViews(),
		Scrollable:    state.Tree.ScrollableViews(),
		HasScreenshot: state.HasScreenshot(),
	}
}

// StateText renders the agent-facing text report of a snapshot.
func StateText(state desktop.DesktopState) string {
	sections := []struct {
		title, body, empty string
	}{
		{"Focused App:", state.ActiveAppString(), ""},
		{"Opened Apps:", state.AppsString(), ""},
		{"List of Interactive Elements:", state.Tree.InteractiveString(), "No interactive elements found."},
		{"List of Informative Elements:", state.Tree.InformativeString(), "No informative elements found."},
		{"List of Scrollable Elements:", state.Tree.ScrollableString(), "No scrollable elements found."},
	}
	var b strings.Builder
	for i, sec := range sections {
		if i > 0 {
			b.WriteString("\n\n")
		}
		body := sec.body
		if body == "" {
			body = sec.empty
		}
		b.WriteString(sec.title)
		b.WriteString("\n")
		b.WriteString(body)
	}
	return strings.TrimSpace(b.String())
}

// WriteState writes state to w in the given format.
func WriteState(w io.Writer, state desktop.DesktopState, format Format) error {
	switch format {
	case FormatText:
		_, err := fmt.Fprintln(w, StateText(state))
		return err
	case FormatJSON:
		return WriteJSON(w, NewStateReport(state), true)
	case FormatYAML:
		return WriteYAML(w, NewStateReport(state))
	default:
		return fmt.Errorf("unsupported output format: %s", format)
	}
}

// WriteJSON serializes v to w as JSON.
// If pretty is true, uses indentation; otherwise single-line.
func WriteJSON(w io.Writer, v interface{}, pretty bool) error {
	enc := json.NewEncoder(w)
	if pretty {
		enc.SetIndent("", "  ")
	}
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("json encode: %w", err)
	}
	return nil
}

// WriteYAML serializes v to w as YAML.
func WriteYAML(w io.Writer, v interface{}) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("yaml encode: %w", err)
	}
	return enc.Close()
}

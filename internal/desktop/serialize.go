package desktop

import (
	"fmt"
	"strings"

	"github.com/mj1618/desktop-clippy/internal/platform"
)

// ElementView is the readable projection of one element.
type ElementView struct {
	Name        string `yaml:"name,omitempty"         json:"name,omitempty"`
	ControlType string `yaml:"control_type,omitempty" json:"control_type,omitempty"`
	Text        string `yaml:"text,omitempty"         json:"text,omitempty"`
	Bounds      [4]int `yaml:"bounds,flow,omitempty"  json:"bounds,omitempty"` // [x, y, width, height]
}

// InteractiveViews reads name, control type and bounds of each interactive
// element. Elements whose attributes cannot be read are left out.
func (t TreeState) InteractiveViews() []ElementView {
	return readViews(t.Interactive, func(el platform.Element) (ElementView, error) {
		name, err := el.Name()
		if err != nil {
			return ElementView{}, err
		}
		controlType, err := el.ControlTypeName()
		if err != nil {
			return ElementView{}, err
		}
		r, err := el.BoundingRectangle()
		if err != nil {
			return ElementView{}, err
		}
		return ElementView{Name: name, ControlType: controlType, Bounds: bounds(r)}, nil
	})
}

// InformativeViews reads the display text of each informative element: its
// name, else its value, else "No text".
func (t TreeState) InformativeViews() []ElementView {
	return readViews(t.Informative, func(el platform.Element) (ElementView, error) {
		text, err := el.Name()
		if err != nil {
			return ElementView{}, err
		}
		if text == "" {
			if text, err = el.Value(); err != nil {
				return ElementView{}, err
			}
		}
		if text == "" {
			text = "No text"
		}
		return ElementView{Text: text}, nil
	})
}

// ScrollableViews reads name and bounds of each scrollable element.
func (t TreeState) ScrollableViews() []ElementView {
	return readViews(t.Scrollable, func(el platform.Element) (ElementView, error) {
		name, err := el.Name()
		if err != nil {
			return ElementView{}, err
		}
		r, err := el.BoundingRectangle()
		if err != nil {
			return ElementView{}, err
		}
		return ElementView{Name: name, Bounds: bounds(r)}, nil
	})
}

// InteractiveString renders "- {name} ({type}) at ({x}, {y})" per element.
// It returns "" for an empty list.
func (t TreeState) InteractiveString() string {
	views := t.InteractiveViews()
	lines := make([]string, len(views))
	for i, v := range views {
		lines[i] = fmt.Sprintf("- %s (%s) at (%d, %d)", orDefault(v.Name, "Unnamed"), v.ControlType, v.Bounds[0], v.Bounds[1])
	}
	return strings.Join(lines, "\n")
}

// InformativeString renders "- {text}" per element.
func (t TreeState) InformativeString() string {
	views := t.InformativeViews()
	lines := make([]string, len(views))
	for i, v := range views {
		lines[i] = "- " + v.Text
	}
	return strings.Join(lines, "\n")
}

// ScrollableString renders "- {name} at ({x}, {y})" per element.
func (t TreeState) ScrollableString() string {
	views := t.ScrollableViews()
	lines := make([]string, len(views))
	for i, v := range views {
		lines[i] = fmt.Sprintf("- %s at (%d, %d)", orDefault(v.Name, "Scrollable area"), v.Bounds[0], v.Bounds[1])
	}
	return strings.Join(lines, "\n")
}

func readViews(elements []platform.Element, read func(platform.Element) (ElementView, error)) []ElementView {
	views := make([]ElementView, 0, len(elements))
	for _, el := range elements {
		if v, ok := readOne(el, read); ok {
			views = append(views, v)
		}
	}
	return views
}

// readOne isolates a single element read; a stale native handle may panic
// instead of returning an error.
func readOne(el platform.Element, read func(platform.Element) (ElementView, error)) (v ElementView, ok bool) {
	defer func() {
		if recover() != nil {
			v, ok = ElementView{}, false
		}
	}()
	if el == nil {
		return ElementView{}, false
	}
	v, err := read(el)
	return v, err == nil
}

func bounds(r platform.Rect) [4]int {
	return [4]int{r.X, r.Y, r.Width, r.Height}
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}

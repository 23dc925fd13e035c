package win

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/mj1618/desktop-clippy/internal/platform"
)

// uiaRecord is one element as reported by the UIA scripts.
type uiaRecord struct {
	Name        string `json:"name"`
	ControlType string `json:"control_type"`
	Rect        []int  `json:"rect"` // x, y, width, height; absent when empty
	Value       string `json:"value"`
	Error       string `json:"error"`
}

// element is a UIA element read at snapshot time. A record that failed to
// read surfaces its error from every accessor.
type element struct {
	rec uiaRecord
	err error
}

var _ platform.Element = (*element)(nil)

func newElement(rec uiaRecord) *element {
	el := &element{rec: rec}
	if rec.Error != "" {
		el.err = fmt.Errorf("uia element: %s", rec.Error)
	}
	return el
}

func (e *element) Name() (string, error) {
	if e.err != nil {
		return "", e.err
	}
	return e.rec.Name, nil
}

func (e *element) ControlTypeName() (string, error) {
	if e.err != nil {
		return "", e.err
	}
	return controlTypeName(e.rec.ControlType), nil
}

func (e *element) BoundingRectangle() (platform.Rect, error) {
	if e.err != nil {
		return platform.Rect{}, e.err
	}
	if len(e.rec.Rect) != 4 {
		return platform.Rect{}, nil
	}
	return platform.Rect{X: e.rec.Rect[0], Y: e.rec.Rect[1], Width: e.rec.Rect[2], Height: e.rec.Rect[3]}, nil
}

func (e *element) Value() (string, error) {
	if e.err != nil {
		return "", e.err
	}
	return e.rec.Value, nil
}

// controlTypeName turns "ControlType.Button" into "Button".
func controlTypeName(programmatic string) string {
	return strings.TrimPrefix(programmatic, "ControlType.")
}

var errNoElement = errors.New("no element")

// parseElements decodes the JSON array written by the children script.
// A lone object is accepted as a one-element array; empty output means no
// children.
func parseElements(out []byte) ([]*element, error) {
	out = bytes.TrimSpace(bytes.TrimPrefix(out, []byte("\xef\xbb\xbf")))
	if len(out) == 0 || bytes.Equal(out, []byte("null")) {
		return nil, nil
	}
	var recs []uiaRecord
	if out[0] == '{' {
		var rec uiaRecord
		if err := json.Unmarshal(out, &rec); err != nil {
			return nil, fmt.Errorf("decoding uia element: %w", err)
		}
		recs = []uiaRecord{rec}
	} else if err := json.Unmarshal(out, &recs); err != nil {
		return nil, fmt.Errorf("decoding uia elements: %w", err)
	}
	elements := make([]*element, len(recs))
	for i, rec := range recs {
		elements[i] = newElement(rec)
	}
	return elements, nil
}

// parseElement decodes the single object written by the point script.
func parseElement(out []byte) (*element, error) {
	elements, err := parseElements(out)
	if err != nil {
		return nil, err
	}
	if len(elements) == 0 {
		return nil, errNoElement
	}
	return elements[0], nil
}

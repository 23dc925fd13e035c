package desktop

import (
	"errors"
	"image"
	"image/color"

	"github.com/mj1618/desktop-clippy/internal/platform"
)

var errStale = errors.New("element not available")

type fakeElement struct {
	name        string
	controlType string
	rect        platform.Rect
	value       string
	err         error // returned by every accessor
	panics      bool  // every accessor panics
}

func (e *fakeElement) read() error {
	if e.panics {
		panic("disposed handle")
	}
	return e.err
}

func (e *fakeElement) Name() (string, error) {
	if err := e.read(); err != nil {
		return "", err
	}
	return e.name, nil
}

func (e *fakeElement) ControlTypeName() (string, error) {
	if err := e.read(); err != nil {
		return "", err
	}
	return e.controlType, nil
}

func (e *fakeElement) BoundingRectangle() (platform.Rect, error) {
	if err := e.read(); err != nil {
		return platform.Rect{}, err
	}
	return e.rect, nil
}

func (e *fakeElement) Value() (string, error) {
	if err := e.read(); err != nil {
		return "", err
	}
	return e.value, nil
}

// typedOnly reports its control type but fails every other read, like a
// handle that went stale between the tree query and serialization.
type typedOnly struct {
	controlType string
}

func (e typedOnly) Name() (string, error)                      { return "", errStale }
func (e typedOnly) ControlTypeName() (string, error)           { return e.controlType, nil }
func (e typedOnly) BoundingRectangle() (platform.Rect, error) { return platform.Rect{}, errStale }
func (e typedOnly) Value() (string, error)                     { return "", errStale }

type fakeWindow struct {
	name     string
	nameErr  error
	children []platform.Element
	err      error // returned by Children once failOn calls have been made
	failOn   int   // 1-based call number that fails; 0 means every call
	panics   bool
	calls    int
}

func (w *fakeWindow) Name() (string, error) {
	return w.name, w.nameErr
}

func (w *fakeWindow) Children(match func(platform.Element) bool) ([]platform.Element, error) {
	w.calls++
	if w.panics {
		panic("provider crashed")
	}
	if w.err != nil && (w.failOn == 0 || w.calls >= w.failOn) {
		return nil, w.err
	}
	var out []platform.Element
	for _, c := range w.children {
		if match(c) {
			out = append(out, c)
		}
	}
	return out, nil
}

type fakeAccess struct {
	window platform.Window
	err    error
	panics bool
}

func (a *fakeAccess) ForegroundWindow() (platform.Window, error) {
	if a.panics {
		panic("accessibility provider crashed")
	}
	if a.err != nil {
		return nil, a.err
	}
	return a.window, nil
}

func (a *fakeAccess) ElementFromPoint(x, y int) (platform.Element, error) {
	return nil, errors.New("not implemented")
}

type fakeProcs struct {
	procs []platform.Process
	err   error
}

func (p *fakeProcs) Processes() ([]platform.Process, error) {
	return p.procs, p.err
}

type fakeScreen struct {
	img    image.Image
	err    error
	panics bool
	calls  int
}

func (s *fakeScreen) CaptureScreen() (image.Image, error) {
	s.calls++
	if s.panics {
		panic("no display")
	}
	if s.err != nil {
		return nil, s.err
	}
	return s.img, nil
}

func newScreen(w, h int) *fakeScreen {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.White)
		}
	}
	return &fakeScreen{img: img}
}

func buttons(n int) []platform.Element {
	out := make([]platform.Element, n)
	for i := range out {
		out[i] = &fakeElement{name: "b" + itoa(i), controlType: "Button", rect: platform.Rect{X: i, Y: i}}
	}
	return out
}

func itoa(i int) string {
	const digits = "0123456789"
	if i < 10 {
		return digits[i : i+1]
	}
	return itoa(i/10) + digits[i%10:i%10+1]
}

//go:build windows

package win

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/mj1618/desktop-clippy/internal/platform"
)

// uiaTimeout bounds a single UIA script run.
const uiaTimeout = 20 * time.Second

type accessibility struct {
	ps powerShell
}

var _ platform.Accessibility = (*accessibility)(nil)

func newAccessibility(ps powerShell) *accessibility {
	return &accessibility{ps: ps}
}

func (a *accessibility) ForegroundWindow() (platform.Window, error) {
	hwnd := foregroundWindow()
	if hwnd == 0 {
		return nil, nil
	}
	return &window{ps: a.ps, hwnd: hwnd}, nil
}

func (a *accessibility) ElementFromPoint(x, y int) (platform.Element, error) {
	ctx, cancel := context.WithTimeout(context.Background(), uiaTimeout)
	defer cancel()
	out, err := a.ps.output(ctx, pointScript(x, y))
	if err != nil {
		return nil, fmt.Errorf("element from point (%d, %d): %w", x, y, err)
	}
	el, err := parseElement(out)
	if err != nil {
		return nil, fmt.Errorf("element from point (%d, %d): %w", x, y, err)
	}
	return el, nil
}

// window is a top-level window handle. Its direct children are read once,
// on the first Children call, and filtered in memory afterwards.
type window struct {
	ps   powerShell
	hwnd uintptr

	once     sync.Once
	children []*element
	err      error
}

func (w *window) Name() (string, error) {
	return strings.TrimSpace(windowText(w.hwnd)), nil
}

func (w *window) Children(match func(platform.Element) bool) ([]platform.Element, error) {
	w.once.Do(w.load)
	if w.err != nil {
		return nil, w.err
	}
	var out []platform.Element
	for _, el := range w.children {
		if match(el) {
			out = append(out, el)
		}
	}
	return out, nil
}

func (w *window) load() {
	ctx, cancel := context.WithTimeout(context.Background(), uiaTimeout)
	defer cancel()
	out, err := w.ps.output(ctx, childrenScript(w.hwnd))
	if err != nil {
		w.err = fmt.Errorf("window children: %w", err)
		return
	}
	w.children, w.err = parseElements(out)
}

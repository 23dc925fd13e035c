//go:build windows

package win

import (
	"errors"
	"fmt"
	"image"

	"github.com/kbinani/screenshot"

	"github.com/mj1618/desktop-clippy/internal/platform"
)

type screenshotter struct{}

var _ platform.Screenshotter = screenshotter{}

// CaptureScreen captures display 0, the primary monitor.
func (screenshotter) CaptureScreen() (image.Image, error) {
	if screenshot.NumActiveDisplays() == 0 {
		return nil, errors.New("no active display")
	}
	img, err := screenshot.CaptureDisplay(0)
	if err != nil {
		return nil, fmt.Errorf("capture display: %w", err)
	}
	return img, nil
}

package platform

import (
	"fmt"
	"runtime"
)

// Provider bundles all platform backends for the current OS.
type Provider struct {
	Accessibility    Accessibility
	Processes        ProcessLister
	Screenshotter    Screenshotter
	Inputter         Inputter
	WindowManager    WindowManager
	Shell            Shell
	ClipboardManager ClipboardManager
}

// ErrUnsupported is returned on unsupported platforms.
var ErrUnsupported = fmt.Errorf("desktop-clippy is not supported on %s/%s; supported: windows/amd64, windows/arm64", runtime.GOOS, runtime.GOARCH)

// NewProviderFunc is set by platform-specific packages via init().
// See internal/platform/win/init.go for the Windows registration.
var NewProviderFunc func(cfg InputConfig) (*Provider, error)

// NewProvider returns a Provider for the current OS.
func NewProvider(cfg InputConfig) (*Provider, error) {
	if NewProviderFunc == nil {
		return nil, ErrUnsupported
	}
	return NewProviderFunc(cfg)
}

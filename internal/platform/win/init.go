//go:build windows

package win

import "github.com/mj1618/desktop-clippy/internal/platform"

func init() {
	platform.NewProviderFunc = func(cfg platform.InputConfig) (*platform.Provider, error) {
		setProcessDPIAware()
		ps := newPowerShell()
		return &platform.Provider{
			Accessibility:    newAccessibility(ps),
			Processes:        processLister{},
			Screenshotter:    screenshotter{},
			Inputter:         newInputter(cfg),
			WindowManager:    &windowManager{ps: ps},
			Shell:            &shell{ps: ps},
			ClipboardManager: &clipboard{ps: ps},
		}, nil
	}
}

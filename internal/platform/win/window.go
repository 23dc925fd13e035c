//go:build windows

package win

import (
	"context"
	"fmt"
	"os/exec"
	"strings"

	"github.com/mj1618/desktop-clippy/internal/platform"
)

type windowManager struct {
	ps powerShell
}

var _ platform.WindowManager = (*windowManager)(nil)

// Launch starts an application by name, falling back to explorer when
// Start-Process cannot resolve it.
func (m *windowManager) Launch(ctx context.Context, name string) error {
	_, stderr, code, err := m.ps.run(ctx, launchScript(name))
	if err != nil {
		return fmt.Errorf("launch %s: %w", name, err)
	}
	if code == 0 {
		return nil
	}
	if err := exec.CommandContext(ctx, "explorer.exe", name).Run(); err != nil {
		return fmt.Errorf("launch %s: start-process: %s; explorer: %w", name, strings.TrimSpace(stderr), err)
	}
	return nil
}

func (m *windowManager) SwitchTo(ctx context.Context, name string) (string, error) {
	stdout, _, code, err := m.ps.run(ctx, switchScript(name))
	if err != nil {
		return "", fmt.Errorf("switch to %s: %w", name, err)
	}
	if code != 0 {
		return "", fmt.Errorf("switch to %s: %w", name, ErrWindowNotFound)
	}
	title, err := parseSwitchOutput(stdout)
	if err != nil {
		return "", fmt.Errorf("switch to %s: %w", name, err)
	}
	return title, nil
}

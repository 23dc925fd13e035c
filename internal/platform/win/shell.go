//go:build windows

package win

import (
	"context"

	"github.com/mj1618/desktop-clippy/internal/platform"
)

type shell struct {
	ps powerShell
}

var _ platform.Shell = (*shell)(nil)

// Run executes command in PowerShell. The output is stdout, or stderr when
// stdout is empty.
func (s *shell) Run(ctx context.Context, command string) (platform.ShellResult, error) {
	stdout, stderr, code, err := s.ps.run(ctx, scriptPrelude+command)
	if err != nil {
		return platform.ShellResult{Output: stdout + stderr, ExitCode: 1}, err
	}
	out := stdout
	if out == "" {
		out = stderr
	}
	return platform.ShellResult{Output: out, ExitCode: code}, nil
}

//go:build windows

package win

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"syscall"

	"golang.org/x/sys/windows"

	"github.com/mj1618/desktop-clippy/internal/pwsh"
)

// powerShell runs scripts in a fresh, hidden powershell.exe.
type powerShell struct {
	exe string
}

func newPowerShell() powerShell {
	return powerShell{exe: "powershell.exe"}
}

// run executes script and returns its stdout, stderr and exit code. A
// non-zero exit code is not an error; failing to start or being cancelled is.
func (p powerShell) run(ctx context.Context, script string) (stdout, stderr string, exitCode int, err error) {
	cmd := exec.CommandContext(ctx, p.exe,
		"-NoProfile", "-NonInteractive", "-ExecutionPolicy", "Bypass",
		"-EncodedCommand", pwsh.EncodeCommand(script))
	cmd.SysProcAttr = &syscall.SysProcAttr{
		HideWindow:    true,
		CreationFlags: windows.CREATE_NO_WINDOW,
	}
	var outBuf, errBuf bytes.Buffer
	cmd.Stdout = &outBuf
	cmd.Stderr = &errBuf

	err = cmd.Run()
	if ctxErr := ctx.Err(); ctxErr != nil {
		return outBuf.String(), errBuf.String(), -1, fmt.Errorf("powershell: %w", ctxErr)
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return outBuf.String(), errBuf.String(), exitErr.ExitCode(), nil
	}
	if err != nil {
		return "", "", -1, fmt.Errorf("powershell: %w", err)
	}
	return outBuf.String(), errBuf.String(), 0, nil
}

// output runs script and fails unless it exits cleanly.
func (p powerShell) output(ctx context.Context, script string) ([]byte, error) {
	stdout, stderr, code, err := p.run(ctx, script)
	if err != nil {
		return nil, err
	}
	if code != 0 {
		return nil, fmt.Errorf("powershell exited with %d: %s", code, bytes.TrimSpace([]byte(stderr)))
	}
	return []byte(stdout), nil
}

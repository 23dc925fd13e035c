//go:build windows

package win

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/mj1618/desktop-clippy/internal/platform"
)

const clipboardTimeout = 10 * time.Second

type clipboard struct {
	ps powerShell
}

var _ platform.ClipboardManager = (*clipboard)(nil)

func (c *clipboard) ReadText() (string, error) {
	ctx, cancel := context.WithTimeout(context.Background(), clipboardTimeout)
	defer cancel()
	out, err := c.ps.output(ctx, readClipboardScript)
	if err != nil {
		return "", fmt.Errorf("read clipboard: %w", err)
	}
	return strings.TrimSuffix(strings.TrimSuffix(string(out), "\n"), "\r"), nil
}

func (c *clipboard) WriteText(text string) error {
	ctx, cancel := context.WithTimeout(context.Background(), clipboardTimeout)
	defer cancel()
	if _, err := c.ps.output(ctx, writeClipboardScript(text)); err != nil {
		return fmt.Errorf("write clipboard: %w", err)
	}
	return nil
}

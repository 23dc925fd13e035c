package win

import (
	"errors"
	"fmt"
	"strings"
)

// ErrWindowNotFound is returned when no window matches a switch request.
var ErrWindowNotFound = errors.New("no matching window found")

// parseSwitchOutput interprets the switch script's status line and returns
// the focused window's title.
func parseSwitchOutput(out string) (string, error) {
	line := strings.TrimSpace(out)
	if i := strings.LastIndex(line, "\n"); i >= 0 {
		line = strings.TrimSpace(line[i+1:])
	}
	switch {
	case strings.HasPrefix(line, "SUCCESS:"):
		return strings.TrimPrefix(line, "SUCCESS:"), nil
	case strings.HasPrefix(line, "FAILED:"):
		return "", fmt.Errorf("switch failed: %s", strings.TrimPrefix(line, "FAILED:"))
	case strings.HasPrefix(line, "NOTFOUND:"):
		return "", ErrWindowNotFound
	case strings.HasPrefix(line, "ERROR:"):
		return "", fmt.Errorf("switch error: %s", strings.TrimPrefix(line, "ERROR:"))
	default:
		return "", ErrWindowNotFound
	}
}

package server

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"go.uber.org/zap"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/mj1618/desktop-clippy/internal/desktop"
	"github.com/mj1618/desktop-clippy/internal/output"
	"github.com/mj1618/desktop-clippy/internal/platform"
)

// screenshotNote is appended when vision was requested but no image could
// be attached.
const screenshotNote = "\n\nScreenshot unavailable: the screen could not be captured."

// displayName title-cases an application name for tool replies. A Caser
// keeps state between calls, so each call builds its own.
func displayName(name string) string {
	return cases.Title(language.Und).String(strings.TrimSpace(name))
}

func unavailable(what string) *mcp.CallToolResult {
	return mcp.NewToolResultError(what + " is not available on this platform")
}

func (s *Server) handleState(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	params := request.GetArguments()
	useVision := boolParam(params, "use_vision", false)

	if s.snapshots == nil {
		return unavailable("desktop state"), nil
	}

	// The capture cannot be interrupted. On timeout it finishes in the
	// background and keeps the desktop lease until it does.
	release := func() {}
	if l := leaseFrom(ctx); l != nil {
		release = l.detach()
	}
	done := make(chan desktop.DesktopState, 1)
	go func() {
		defer release()
		done <- s.snapshots.CaptureState(useVision)
	}()

	timer := time.NewTimer(s.cfg.Tools.StateTimeout)
	defer timer.Stop()

	var state desktop.DesktopState
	select {
	case state = <-done:
	case <-timer.C:
		s.logger.Warn("desktop state capture timed out", zap.Duration("timeout", s.cfg.Tools.StateTimeout))
		return mcp.NewToolResultError(fmt.Sprintf("desktop state capture timed out after %s", s.cfg.Tools.StateTimeout)), nil
	case <-ctx.Done():
		return mcp.NewToolResultError(fmt.Sprintf("desktop state capture cancelled: %v", ctx.Err())), nil
	}

	text := output.StateText(state)
	if state.HasScreenshot() {
		return mcp.NewToolResultImage(text, base64.StdEncoding.EncodeToString(state.Screenshot), "image/png"), nil
	}
	if useVision {
		text += screenshotNote
	}
	return mcp.NewToolResultText(text), nil
}

func (s *Server) handleLaunch(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name, err := requireString(request.GetArguments(), "name")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if s.provider.WindowManager == nil {
		return unavailable("application launch"), nil
	}

	ctx, cancel := context.WithTimeout(ctx, s.cfg.Tools.LaunchTimeout)
	defer cancel()
	if err := s.provider.WindowManager.Launch(ctx, name); err != nil {
		s.logger.Debug("launch failed", zap.String("name", name), zap.Error(err))
		return mcp.NewToolResultText(fmt.Sprintf("Failed to launch %s.", displayName(name))), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("Launched %s.", displayName(name))), nil
}

func (s *Server) handleSwitch(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name, err := requireString(request.GetArguments(), "name")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if s.provider.WindowManager == nil {
		return unavailable("window switching"), nil
	}

	ctx, cancel := context.WithTimeout(ctx, s.cfg.Tools.SwitchTimeout)
	defer cancel()
	title, err := s.provider.WindowManager.SwitchTo(ctx, name)
	if err != nil {
		s.logger.Debug("switch failed", zap.String("name", name), zap.Error(err))
		return mcp.NewToolResultText(fmt.Sprintf("Failed to switch to %s window.", displayName(name))), nil
	}
	s.logger.Debug("switched window", zap.String("name", name), zap.String("title", title))
	return mcp.NewToolResultText(fmt.Sprintf("Switched to %s window.", displayName(name))), nil
}

func (s *Server) handleClipboard(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	params := request.GetArguments()
	if s.provider.ClipboardManager == nil {
		return unavailable("clipboard"), nil
	}

	switch mode := stringParam(params, "mode", ""); mode {
	case "copy":
		text := stringParam(params, "text", "")
		if text == "" {
			return mcp.NewToolResultError("No text provided to copy"), nil
		}
		if err := s.provider.ClipboardManager.WriteText(text); err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return mcp.NewToolResultText(fmt.Sprintf("Copied %q to clipboard", text)), nil
	case "paste":
		text, err := s.provider.ClipboardManager.ReadText()
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return mcp.NewToolResultText(fmt.Sprintf("Clipboard Content: %q", text)), nil
	default:
		return mcp.NewToolResultError(fmt.Sprintf("Invalid mode %q. Use \"copy\" or \"paste\".", mode)), nil
	}
}

var clickNames = map[int]string{1: "Single", 2: "Double", 3: "Triple"}

func (s *Server) handleClick(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	params := request.GetArguments()
	x, y, err := coords(params, "x", "y")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	button, err := platform.ParseMouseButton(stringParam(params, "button", "left"))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	clicks := intParam(params, "clicks", 1)
	if clicks < 1 || clicks > 3 {
		return mcp.NewToolResultError(fmt.Sprintf("clicks must be 1, 2 or 3, got %d", clicks)), nil
	}
	if s.provider.Inputter == nil {
		return unavailable("mouse input"), nil
	}

	if err := s.provider.Inputter.Click(x, y, button, clicks); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("%s %s Clicked on %s at (%d,%d).",
		clickNames[clicks], button, s.describeElementAt(x, y), x, y)), nil
}

func (s *Server) handleType(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	params := request.GetArguments()
	x, y, err := coords(params, "x", "y")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	text, ok := params["text"].(string)
	if !ok {
		return mcp.NewToolResultError(`missing required argument "text"`), nil
	}
	clearFirst := boolParam(params, "clear", false)
	in := s.provider.Inputter
	if in == nil {
		return unavailable("keyboard input"), nil
	}

	if err := in.Click(x, y, platform.MouseLeft, 1); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	target := s.describeElementAt(x, y)
	if clearFirst {
		if err := in.KeyCombo([]string{"ctrl", "a"}); err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		if err := in.PressKey("backspace"); err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
	}
	if err := in.TypeText(text); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("Typed %q on %s at (%d,%d).", text, target, x, y)), nil
}

// describeElementAt names the element under a point for tool replies. Lookup
// failures are not errors: the action itself already happened.
func (s *Server) describeElementAt(x, y int) string {
	const unknown = "Unknown Element"
	if s.provider.Accessibility == nil {
		return unknown
	}
	el, err := s.provider.Accessibility.ElementFromPoint(x, y)
	if err != nil || el == nil {
		s.logger.Debug("element lookup failed", zap.Int("x", x), zap.Int("y", y), zap.Error(err))
		return unknown
	}
	name, _ := el.Name()
	controlType, _ := el.ControlTypeName()
	return fmt.Sprintf("%s Element with ControlType %s", name, controlType)
}

func (s *Server) handleScroll(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	params := request.GetArguments()
	x, hasX, err := optionalInt(params, "x")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	y, hasY, err := optionalInt(params, "y")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	direction, err := platform.ParseScrollDirection(stringParam(params, "direction", "down"))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	wheelTimes := intParam(params, "wheel_times", 3)
	if wheelTimes < 1 {
		return mcp.NewToolResultError(fmt.Sprintf("wheel_times must be at least 1, got %d", wheelTimes)), nil
	}
	in := s.provider.Inputter
	if in == nil {
		return unavailable("mouse input"), nil
	}

	if hasX && hasY {
		if err := in.MoveMouse(x, y); err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
	}
	if err := in.Scroll(direction, wheelTimes); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("Scrolled %s by %d wheel times.", direction, wheelTimes)), nil
}

func (s *Server) handleDrag(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	params := request.GetArguments()
	fromX, fromY, err := coords(params, "from_x", "from_y")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	toX, toY, err := coords(params, "to_x", "to_y")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if s.provider.Inputter == nil {
		return unavailable("mouse input"), nil
	}

	if err := s.provider.Inputter.Drag(fromX, fromY, toX, toY); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("Dragged element from (%d,%d) to (%d,%d).", fromX, fromY, toX, toY)), nil
}

func (s *Server) handleMove(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	x, y, err := coords(request.GetArguments(), "x", "y")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if s.provider.Inputter == nil {
		return unavailable("mouse input"), nil
	}

	if err := s.provider.Inputter.MoveMouse(x, y); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("Moved the mouse pointer to (%d,%d).", x, y)), nil
}

func (s *Server) handleShortcut(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	keys, err := stringSliceParam(request.GetArguments(), "shortcut")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if len(keys) == 0 {
		return mcp.NewToolResultError("shortcut must name at least one key"), nil
	}
	if s.provider.Inputter == nil {
		return unavailable("keyboard input"), nil
	}

	if err := s.provider.Inputter.KeyCombo(keys); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("Pressed %s.", strings.Join(keys, "+"))), nil
}

func (s *Server) handleKey(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	key, err := requireString(request.GetArguments(), "key")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if s.provider.Inputter == nil {
		return unavailable("keyboard input"), nil
	}

	if err := s.provider.Inputter.PressKey(key); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("Pressed the key %s.", key)), nil
}

func (s *Server) handleWait(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	duration, err := requireInt(request.GetArguments(), "duration")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if duration < 0 {
		return mcp.NewToolResultError(fmt.Sprintf("duration must not be negative, got %d", duration)), nil
	}

	if err := s.sleep(ctx, time.Duration(duration)*time.Second); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("wait interrupted: %v", err)), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("Waited for %d seconds.", duration)), nil
}

func (s *Server) handleScrape(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	url, err := requireString(request.GetArguments(), "url")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if s.scraper == nil {
		return unavailable("web scraping"), nil
	}

	ctx, cancel := context.WithTimeout(ctx, s.cfg.Tools.ScrapeTimeout)
	defer cancel()
	content, err := s.scraper.Scrape(ctx, url)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to scrape %s: %v", url, err)), nil
	}
	return mcp.NewToolResultText("Scraped the contents of the entire webpage:\n" + content), nil
}

// Edge needs a moment to draw its window before the address bar accepts
// input.
const (
	browserStartDelay = 2 * time.Second
	browserStepDelay  = 500 * time.Millisecond
)

func (s *Server) handleBrowser(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	url := strings.TrimSpace(stringParam(request.GetArguments(), "url", ""))
	if s.provider.WindowManager == nil || s.provider.Inputter == nil {
		return unavailable("browser control"), nil
	}

	launchCtx, cancel := context.WithTimeout(ctx, s.cfg.Tools.LaunchTimeout)
	defer cancel()
	if err := s.provider.WindowManager.Launch(launchCtx, "msedge"); err != nil {
		s.logger.Debug("edge launch failed", zap.Error(err))
		return mcp.NewToolResultText("Failed to launch Microsoft Edge."), nil
	}
	if url == "" {
		return mcp.NewToolResultText("Launched Microsoft Edge with default home page"), nil
	}

	in := s.provider.Inputter
	steps := []func() error{
		func() error { return s.sleep(ctx, browserStartDelay) },
		func() error { return in.KeyCombo([]string{"ctrl", "l"}) },
		func() error { return s.sleep(ctx, browserStepDelay) },
		func() error { return in.TypeText(url) },
		func() error { return s.sleep(ctx, browserStepDelay) },
		func() error { return in.PressKey("enter") },
	}
	for _, step := range steps {
		if err := step(); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Error navigating Edge to %s: %v", url, err)), nil
		}
	}
	return mcp.NewToolResultText("Launched Microsoft Edge and navigated to " + url), nil
}

func coords(params map[string]interface{}, xKey, yKey string) (int, int, error) {
	x, err := requireInt(params, xKey)
	if err != nil {
		return 0, 0, err
	}
	y, err := requireInt(params, yKey)
	if err != nil {
		return 0, 0, err
	}
	return x, y, nil
}

package server

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/mj1618/desktop-clippy/internal/config"
	"github.com/mj1618/desktop-clippy/internal/desktop"
	"github.com/mj1618/desktop-clippy/internal/platform"
)

type fakeInput struct {
	mu    sync.Mutex
	calls []string
	err   error
}

func (f *fakeInput) record(format string, args ...interface{}) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, fmt.Sprintf(format, args...))
	return f.err
}

func (f *fakeInput) Click(x, y int, button platform.MouseButton, count int) error {
	return f.record("click %d,%d %s x%d", x, y, button, count)
}
func (f *fakeInput) MoveMouse(x, y int) error { return f.record("move %d,%d", x, y) }
func (f *fakeInput) Scroll(d platform.ScrollDirection, n int) error {
	return f.record("scroll %s %d", d, n)
}
func (f *fakeInput) Drag(fx, fy, tx, ty int) error {
	return f.record("drag %d,%d %d,%d", fx, fy, tx, ty)
}
func (f *fakeInput) TypeText(text string) error   { return f.record("type %s", text) }
func (f *fakeInput) PressKey(key string) error    { return f.record("key %s", key) }
func (f *fakeInput) KeyCombo(keys []string) error { return f.record("combo %s", strings.Join(keys, "+")) }

type fakeWindows struct {
	launched []string
	switched []string
	err      error
}

func (f *fakeWindows) Launch(_ context.Context, name string) error {
	f.launched = append(f.launched, name)
	return f.err
}

func (f *fakeWindows) SwitchTo(_ context.Context, name string) (string, error) {
	f.switched = append(f.switched, name)
	if f.err != nil {
		return "", f.err
	}
	return name + " - Window", nil
}

type fakeShell struct {
	commands []string
	result   platform.ShellResult
	err      error
}

func (f *fakeShell) Run(_ context.Context, command string) (platform.ShellResult, error) {
	f.commands = append(f.commands, command)
	return f.result, f.err
}

type fakeClipboard struct {
	text string
	err  error
}

func (f *fakeClipboard) ReadText() (string, error) { return f.text, f.err }
func (f *fakeClipboard) WriteText(text string) error {
	if f.err != nil {
		return f.err
	}
	f.text = text
	return nil
}

type fakeElement struct {
	name, controlType string
}

func (e fakeElement) Name() (string, error)                     { return e.name, nil }
func (e fakeElement) ControlTypeName() (string, error)          { return e.controlType, nil }
func (e fakeElement) BoundingRectangle() (platform.Rect, error) { return platform.Rect{}, nil }
func (e fakeElement) Value() (string, error)                    { return "", nil }

type fakeAccess struct {
	element platform.Element
	err     error
}

func (f *fakeAccess) ForegroundWindow() (platform.Window, error) { return nil, nil }
func (f *fakeAccess) ElementFromPoint(x, y int) (platform.Element, error) {
	return f.element, f.err
}

type fakeSnapshotter struct {
	state  desktop.DesktopState
	block  chan struct{}
	mu     sync.Mutex
	vision []bool
}

func (f *fakeSnapshotter) CaptureState(useVision bool) desktop.DesktopState {
	f.mu.Lock()
	f.vision = append(f.vision, useVision)
	f.mu.Unlock()
	if f.block != nil {
		<-f.block
	}
	return f.state
}

type fakeScraper struct {
	content string
	err     error
	urls    []string
}

func (f *fakeScraper) Scrape(_ context.Context, url string) (string, error) {
	f.urls = append(f.urls, url)
	return f.content, f.err
}

type fixture struct {
	server    *Server
	input     *fakeInput
	windows   *fakeWindows
	shell     *fakeShell
	clipboard *fakeClipboard
	access    *fakeAccess
	snapshots *fakeSnapshotter
	scraper   *fakeScraper
	slept     []time.Duration
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		input:     &fakeInput{},
		windows:   &fakeWindows{},
		shell:     &fakeShell{},
		clipboard: &fakeClipboard{},
		access:    &fakeAccess{element: fakeElement{name: "Save", controlType: "Button"}},
		snapshots: &fakeSnapshotter{},
		scraper:   &fakeScraper{},
	}
	provider := &platform.Provider{
		Accessibility:    f.access,
		Inputter:         f.input,
		WindowManager:    f.windows,
		Shell:            f.shell,
		ClipboardManager: f.clipboard,
	}
	f.server = New(config.DefaultConfig(), provider, f.snapshots, f.scraper, nil)
	f.server.sleep = func(_ context.Context, d time.Duration) error {
		f.slept = append(f.slept, d)
		return nil
	}
	return f
}

// call runs a tool through the registered handler and the call middleware.
func (f *fixture) call(t *testing.T, name string, args map[string]interface{}) *mcp.CallToolResult {
	t.Helper()
	return callTool(t, f.server, context.Background(), name, args)
}

func callTool(t *testing.T, s *Server, ctx context.Context, name string, args map[string]interface{}) *mcp.CallToolResult {
	t.Helper()
	tool := s.MCP().GetTool(name)
	if tool == nil {
		t.Fatalf("tool %q not registered", name)
	}
	var req mcp.CallToolRequest
	req.Params.Name = name
	req.Params.Arguments = args
	res, err := s.callMiddleware(tool.Handler)(ctx, req)
	if err != nil {
		t.Fatalf("%s returned Go error: %v", name, err)
	}
	if res == nil {
		t.Fatalf("%s returned nil result", name)
	}
	return res
}

func resultText(res *mcp.CallToolResult) string {
	var parts []string
	for _, c := range res.Content {
		if tc, ok := c.(mcp.TextContent); ok {
			parts = append(parts, tc.Text)
		}
	}
	return strings.Join(parts, "\n")
}

var errBoom = errors.New("boom")

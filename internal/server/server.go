// Package server exposes the desktop as MCP tools.
package server

import (
	"context"
	"fmt"
	"runtime"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"

	"github.com/mj1618/desktop-clippy/internal/config"
	"github.com/mj1618/desktop-clippy/internal/desktop"
	"github.com/mj1618/desktop-clippy/internal/platform"
	"github.com/mj1618/desktop-clippy/internal/version"
	"github.com/mj1618/desktop-clippy/internal/web"
)

// Name is the MCP server name reported to clients.
const Name = "desktop-clippy"

// Snapshotter captures desktop state. *desktop.Snapshotter implements it.
type Snapshotter interface {
	CaptureState(useVision bool) desktop.DesktopState
}

// Server holds the MCP server and everything its tools act on. Tool calls
// run one at a time: the desktop has one mouse and one keyboard.
type Server struct {
	cfg       *config.Config
	provider  *platform.Provider
	snapshots Snapshotter
	scraper   web.Scraper
	logger    *zap.Logger

	sem   chan struct{}
	sleep func(ctx context.Context, d time.Duration) error
	mcp   *mcpserver.MCPServer
}

// New creates a Server with all tools registered.
func New(cfg *config.Config, provider *platform.Provider, snapshots Snapshotter, scraper web.Scraper, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	if provider == nil {
		provider = &platform.Provider{}
	}
	s := &Server{
		cfg:       cfg,
		provider:  provider,
		snapshots: snapshots,
		scraper:   scraper,
		logger:    logger,
		sem:       make(chan struct{}, 1),
		sleep:     sleepContext,
	}
	s.mcp = mcpserver.NewMCPServer(
		Name,
		version.Version,
		mcpserver.WithInstructions(instructions()),
		mcpserver.WithToolCapabilities(false),
		mcpserver.WithToolHandlerMiddleware(s.callMiddleware),
	)
	s.registerTools()
	return s
}

// MCP returns the underlying MCP server.
func (s *Server) MCP() *mcpserver.MCPServer {
	return s.mcp
}

func instructions() string {
	return fmt.Sprintf(`Desktop Clippy provides tools to operate the %s desktop on the user's behalf.

Start with State-Tool to see the focused application, the running applications
and the controls of the focused window with their screen coordinates. Use those
coordinates with Click-Tool, Type-Tool, Scroll-Tool, Drag-Tool and Move-Tool.
Call State-Tool again after acting; element coordinates are only valid for the
snapshot that reported them.`, runtime.GOOS)
}

type leaseKey struct{}

// lease is one caller's hold on the desktop. A handler may detach it to keep
// the desktop busy after it returns.
type lease struct {
	mu       sync.Mutex
	detached bool
	release  func()
}

// detach transfers the release to the caller of the returned func.
func (l *lease) detach() func() {
	l.mu.Lock()
	l.detached = true
	l.mu.Unlock()
	return sync.OnceFunc(l.release)
}

func (l *lease) end() {
	l.mu.Lock()
	detached := l.detached
	l.mu.Unlock()
	if !detached {
		l.release()
	}
}

func leaseFrom(ctx context.Context) *lease {
	l, _ := ctx.Value(leaseKey{}).(*lease)
	return l
}

func (s *Server) acquire(ctx context.Context) (*lease, error) {
	select {
	case s.sem <- struct{}{}:
		return &lease{release: func() { <-s.sem }}, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// callMiddleware serializes tool calls, turns panics into tool errors and
// logs every call with an ID.
func (s *Server) callMiddleware(next mcpserver.ToolHandlerFunc) mcpserver.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (result *mcp.CallToolResult, err error) {
		logger := s.logger.With(
			zap.String("call_id", uuid.NewString()),
			zap.String("tool", request.Params.Name),
		)
		start := time.Now()

		l, err := s.acquire(ctx)
		if err != nil {
			logger.Warn("tool call abandoned while waiting for the desktop", zap.Error(err))
			return mcp.NewToolResultError(fmt.Sprintf("desktop busy: %v", err)), nil
		}
		defer l.end()

		defer func() {
			if r := recover(); r != nil {
				logger.Error("tool handler panicked", zap.Any("panic", r))
				result, err = mcp.NewToolResultError(fmt.Sprintf("internal error: %v", r)), nil
			}
			fields := []zap.Field{zap.Duration("duration", time.Since(start))}
			if result != nil {
				fields = append(fields, zap.Bool("is_error", result.IsError))
			}
			if err != nil {
				fields = append(fields, zap.Error(err))
			}
			logger.Info("tool call", fields...)
		}()

		logger.Debug("tool call started", zap.Any("arguments", request.GetArguments()))
		return next(context.WithValue(ctx, leaseKey{}, l), request)
	}
}

func sleepContext(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

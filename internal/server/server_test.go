package server

import (
	"context"
	"encoding/json"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/mj1618/desktop-clippy/internal/config"
	"github.com/mj1618/desktop-clippy/internal/version"
)

func TestMiddleware_RecoversPanic(t *testing.T) {
	s := New(config.DefaultConfig(), nil, nil, nil, nil)
	handler := s.callMiddleware(func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		panic("kaboom")
	})
	res, err := handler(context.Background(), mcp.CallToolRequest{})
	if err != nil {
		t.Fatalf("unexpected Go error: %v", err)
	}
	if !res.IsError || resultText(res) != "internal error: kaboom" {
		t.Errorf("got error=%v %q", res.IsError, resultText(res))
	}

	// The lease must be returned after a panic.
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	l, err := s.acquire(ctx)
	if err != nil {
		t.Fatalf("desktop still held after panic: %v", err)
	}
	l.end()
}

func TestMiddleware_SerializesCalls(t *testing.T) {
	s := New(config.DefaultConfig(), nil, nil, nil, nil)
	entered := make(chan struct{})
	release := make(chan struct{})
	slow := s.callMiddleware(func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		close(entered)
		<-release
		return mcp.NewToolResultText("done"), nil
	})
	fast := s.callMiddleware(func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return mcp.NewToolResultText("fast"), nil
	})

	done := make(chan struct{})
	go func() {
		defer close(done)
		slow(context.Background(), mcp.CallToolRequest{})
	}()
	<-entered

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	res, _ := fast(ctx, mcp.CallToolRequest{})
	if !res.IsError || !strings.HasPrefix(resultText(res), "desktop busy") {
		t.Errorf("got error=%v %q, want desktop busy", res.IsError, resultText(res))
	}

	close(release)
	<-done
	res, _ = fast(context.Background(), mcp.CallToolRequest{})
	if res.IsError || resultText(res) != "fast" {
		t.Errorf("got error=%v %q after release", res.IsError, resultText(res))
	}
}

func TestLease_DetachDefersRelease(t *testing.T) {
	released := 0
	l := &lease{release: func() { released++ }}
	release := l.detach()
	l.end()
	if released != 0 {
		t.Fatalf("end released a detached lease")
	}
	release()
	release()
	if released != 1 {
		t.Errorf("released %d times, want 1", released)
	}
}

func TestHealthz(t *testing.T) {
	s := New(config.DefaultConfig(), nil, nil, nil, nil)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("content type = %q", ct)
	}
	var body map[string]string
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatal(err)
	}
	if body["status"] != "ok" || body["version"] != version.Version {
		t.Errorf("body = %v", body)
	}
}

func TestHandler_UnknownPath(t *testing.T) {
	s := New(config.DefaultConfig(), nil, nil, nil, nil)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/other", nil))
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}

func TestServe_UnsupportedTransport(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Server.Transport = "carrier-pigeon"
	s := New(cfg, nil, nil, nil, nil)
	if err := s.Serve(context.Background()); err == nil {
		t.Error("expected error for unsupported transport")
	}
}

func TestServeHTTP_ShutsDownOnCancel(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Server.Transport = config.TransportHTTP
	cfg.Server.Port = freePort(t)
	s := New(cfg, nil, nil, nil, nil)

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- s.Serve(ctx) }()

	url := "http://" + cfg.ServerAddress() + "/healthz"
	deadline := time.Now().Add(2 * time.Second)
	for {
		resp, err := http.Get(url)
		if err == nil {
			resp.Body.Close()
			break
		}
		if time.Now().After(deadline) {
			t.Fatalf("server never came up: %v", err)
		}
		time.Sleep(10 * time.Millisecond)
	}

	cancel()
	select {
	case err := <-errCh:
		if err != nil {
			t.Errorf("Serve returned %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Serve did not return after cancel")
	}
}

func freePort(t *testing.T) int {
	t.Helper()
	l, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}
	defer l.Close()
	return l.Addr().(*net.TCPAddr).Port
}

package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	mcpserver "github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"

	"github.com/mj1618/desktop-clippy/internal/config"
	"github.com/mj1618/desktop-clippy/internal/version"
)

const shutdownTimeout = 10 * time.Second

// Serve runs the configured transport until ctx is cancelled or the
// transport fails.
func (s *Server) Serve(ctx context.Context) error {
	switch s.cfg.Server.Transport {
	case config.TransportStdio:
		return s.ServeStdio()
	case config.TransportHTTP:
		return s.ServeHTTP(ctx)
	default:
		return errors.New("unsupported transport: " + string(s.cfg.Server.Transport) + " (use stdio or streamable-http)")
	}
}

// ServeStdio serves MCP over stdin/stdout. It returns when stdin closes or
// the process receives SIGINT/SIGTERM.
func (s *Server) ServeStdio() error {
	s.logger.Info("MCP server starting", zap.String("transport", string(config.TransportStdio)))
	return mcpserver.ServeStdio(s.mcp, mcpserver.WithErrorLogger(zap.NewStdLog(s.logger)))
}

// Handler returns the HTTP routes: the streamable HTTP MCP endpoint and a
// health check.
func (s *Server) Handler() http.Handler {
	endpoint := s.cfg.Server.Endpoint
	router := mux.NewRouter()
	router.HandleFunc("/healthz", s.handleHealthz).Methods(http.MethodGet)
	router.Handle(endpoint, mcpserver.NewStreamableHTTPServer(s.mcp,
		mcpserver.WithEndpointPath(endpoint),
	)).Methods(http.MethodGet, http.MethodPost, http.MethodDelete)
	return router
}

// ServeHTTP listens on the configured address until ctx is done, then
// drains in-flight requests.
func (s *Server) ServeHTTP(ctx context.Context) error {
	addr := s.cfg.ServerAddress()
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 15 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("MCP server starting",
			zap.String("transport", string(config.TransportHTTP)),
			zap.String("addr", addr),
			zap.String("endpoint", s.cfg.Server.Endpoint),
		)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	s.logger.Info("shutting down gracefully...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		s.logger.Error("HTTP server shutdown error", zap.Error(err))
		return err
	}
	return nil
}

func (s *Server) handleHealthz(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok", "version": version.Version})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("failed to write JSON response", zap.Error(err))
	}
}

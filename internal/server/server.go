package server

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"time"

	"toolhub/internal/config"
	"toolhub/internal/registry"
	"toolhub/pkg/logging"
)

// Server serves the MCP front and the management API.
type Server struct {
	registry   *registry.Registry
	version    string
	httpServer *http.Server
}

// New creates a server for the given registry.
func New(cfg config.ServerConfig, reg *registry.Registry, version string) *Server {
	s := &Server{registry: reg, version: version}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /mcp", s.handleMCP)
	mux.HandleFunc("GET /api/toolsets", s.handleListToolsets)
	mux.HandleFunc("GET /api/toolsets/{id}", s.handleGetToolset)
	mux.HandleFunc("DELETE /api/toolsets/{id}", s.handleEvictToolset)

	s.httpServer = &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

// Handler returns the HTTP handler, for tests.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Start listens and serves until the listener is closed via Stop.
func (s *Server) Start() error {
	listener, err := net.Listen("tcp", s.httpServer.Addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.httpServer.Addr, err)
	}

	logging.Info("Server", "Listening on http://%s", s.httpServer.Addr)
	if err := s.httpServer.Serve(listener); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Stop shuts the server down gracefully.
func (s *Server) Stop(ctx context.Context) error {
	logging.Info("Server", "Shutting down")
	return s.httpServer.Shutdown(ctx)
}

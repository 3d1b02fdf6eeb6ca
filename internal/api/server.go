// internal/api/server.go
package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	handlerapi "github.com/newthinker/natal/internal/api/handler/api"
	"github.com/newthinker/natal/internal/api/middleware"
	"github.com/newthinker/natal/internal/api/response"
	"github.com/newthinker/natal/internal/metrics"
	"go.uber.org/zap"
)

// Server represents the HTTP server for the chart service
type Server struct {
	httpServer *http.Server
	logger     *zap.Logger
	mux        *http.ServeMux
	handler    http.Handler
}

// Config holds server configuration
type Config struct {
	Host         string
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	// MetricsPath exposes Prometheus metrics when non-empty.
	MetricsPath string
}

// Dependencies holds the services the server routes to.
type Dependencies struct {
	Charts  handlerapi.Calculator
	Metrics *metrics.Registry
}

// NewServer creates a new HTTP server
func NewServer(cfg Config, deps Dependencies, logger *zap.Logger) (*Server, error) {
	if deps.Charts == nil {
		return nil, fmt.Errorf("chart calculator is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.ReadTimeout <= 0 {
		cfg.ReadTimeout = 15 * time.Second
	}
	if cfg.WriteTimeout <= 0 {
		cfg.WriteTimeout = 15 * time.Second
	}

	mux := http.NewServeMux()

	s := &Server{
		logger: logger,
		mux:    mux,
	}

	s.setupRoutes(cfg, deps)

	// CORS wraps everything so error responses carry the headers too
	var handler http.Handler = mux
	handler = metrics.LoggingMiddleware(logger)(handler)
	if deps.Metrics != nil {
		handler = metrics.HTTPMiddleware(deps.Metrics)(handler)
	}
	handler = middleware.CORS(middleware.DefaultCORS())(handler)
	s.handler = handler

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Handler:      handler,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  60 * time.Second,
	}

	return s, nil
}

// setupRoutes configures all HTTP routes
func (s *Server) setupRoutes(cfg Config, deps Dependencies) {
	s.mux.Handle("/calculate", handlerapi.NewCalculateHandler(deps.Charts, s.logger))
	s.mux.HandleFunc("/health", s.handleHealth)

	if deps.Metrics != nil && cfg.MetricsPath != "" {
		s.mux.Handle(cfg.MetricsPath, deps.Metrics.Handler())
	}
}

// Handler returns the root handler with the middleware chain applied.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Addr returns the listen address.
func (s *Server) Addr() string {
	return s.httpServer.Addr
}

// Start starts the HTTP server
func (s *Server) Start() error {
	s.logger.Info("starting HTTP server", zap.String("addr", s.httpServer.Addr))
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down HTTP server")
	return s.httpServer.Shutdown(ctx)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	response.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

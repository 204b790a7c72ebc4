package server

import (
	"bufio"
	"context"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/msto63/khwarizmi/internal/khwarizmi/handler"
	"github.com/msto63/khwarizmi/internal/khwarizmi/service"
	"github.com/msto63/khwarizmi/pkg/core/logging"
)

// HTTPConfig holds HTTP server configuration
type HTTPConfig struct {
	Host         string
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// DefaultHTTPConfig returns default HTTP server configuration
func DefaultHTTPConfig() HTTPConfig {
	return HTTPConfig{
		Host:         "0.0.0.0",
		Port:         8160,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
	}
}

// HTTPServer serves the JSON API and the step stream
type HTTPServer struct {
	httpServer *http.Server
	logger     *logging.Logger
	config     HTTPConfig
}

// NewHTTP creates the HTTP server on top of svc
func NewHTTP(cfg HTTPConfig, svc *service.Service, logger *logging.Logger) *HTTPServer {
	if logger == nil {
		logger = logging.New("khwarizmi-http")
	}

	mux := http.NewServeMux()
	mux.Handle("/api/v1/solve/ws", handler.NewWebSocketHandler(svc, logger))
	mux.Handle("/", handler.NewHandler(svc, logger))

	return &HTTPServer{
		httpServer: &http.Server{
			Addr:         fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
			Handler:      loggingMiddleware(logger, mux),
			ReadTimeout:  cfg.ReadTimeout,
			WriteTimeout: cfg.WriteTimeout,
		},
		logger: logger,
		config: cfg,
	}
}

// loggingMiddleware adds request logging
func loggingMiddleware(logger *logging.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		wrapper := &responseWrapper{ResponseWriter: w, statusCode: http.StatusOK}

		next.ServeHTTP(wrapper, r)

		logger.Info("HTTP request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", wrapper.statusCode,
			"duration", time.Since(start),
		)
	})
}

// responseWrapper captures the status code
type responseWrapper struct {
	http.ResponseWriter
	statusCode int
}

func (w *responseWrapper) WriteHeader(code int) {
	w.statusCode = code
	w.ResponseWriter.WriteHeader(code)
}

// Hijack lets the WebSocket upgrade take over the connection
func (w *responseWrapper) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	hijacker, ok := w.ResponseWriter.(http.Hijacker)
	if !ok {
		return nil, nil, fmt.Errorf("response writer does not support hijacking")
	}
	return hijacker.Hijack()
}

// Start listens and serves until Stop
func (s *HTTPServer) Start() error {
	s.logger.Info("Starting khwarizmi HTTP server", "host", s.config.Host, "port", s.config.Port)
	return s.httpServer.ListenAndServe()
}

// StartAsync starts the server asynchronously
func (s *HTTPServer) StartAsync() error {
	listener, err := net.Listen("tcp", s.httpServer.Addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.httpServer.Addr, err)
	}

	s.logger.Info("Starting khwarizmi HTTP server (async)", "address", listener.Addr().String())
	go func() {
		if err := s.httpServer.Serve(listener); err != nil && err != http.ErrServerClosed {
			s.logger.Error("HTTP server error", "error", err)
		}
	}()
	return nil
}

// Handler returns the root handler including middleware
func (s *HTTPServer) Handler() http.Handler {
	return s.httpServer.Handler
}

// Stop gracefully stops the server
func (s *HTTPServer) Stop(ctx context.Context) error {
	s.logger.Info("Stopping khwarizmi HTTP server")
	return s.httpServer.Shutdown(ctx)
}

// Address returns the server address
func (s *HTTPServer) Address() string {
	return s.httpServer.Addr
}

package server

import (
	"context"
	"net"
	"time"

	"github.com/msto63/khwarizmi/internal/khwarizmi/service"
	coreGrpc "github.com/msto63/khwarizmi/pkg/core/grpc"
	"github.com/msto63/khwarizmi/pkg/core/health"
	"github.com/msto63/khwarizmi/pkg/core/logging"
	"google.golang.org/grpc"
)

// Server is the khwarizmi gRPC server
type Server struct {
	service *service.Service
	grpc    *coreGrpc.Server
	logger  *logging.Logger
	config  Config
}

// Config holds server configuration
type Config struct {
	Host              string
	Port              int
	EnableReflection  bool
	MaxRecvMsgSize    int           // 0 keeps the default
	KeepaliveInterval time.Duration // 0 keeps the default
}

// DefaultConfig returns default server configuration
func DefaultConfig() Config {
	return Config{
		Host:             "0.0.0.0",
		Port:             9160,
		EnableReflection: true,
	}
}

// New creates a new khwarizmi gRPC server on top of svc
func New(cfg Config, svc *service.Service, logger *logging.Logger) *Server {
	if logger == nil {
		logger = logging.New("khwarizmi-grpc")
	}

	grpcCfg := coreGrpc.DefaultServerConfig()
	grpcCfg.Host = cfg.Host
	grpcCfg.Port = cfg.Port
	grpcCfg.EnableReflection = cfg.EnableReflection
	if cfg.MaxRecvMsgSize > 0 {
		grpcCfg.MaxRecvMsgSize = cfg.MaxRecvMsgSize
	}
	if cfg.KeepaliveInterval > 0 {
		grpcCfg.KeepaliveInterval = cfg.KeepaliveInterval
	}

	server := &Server{
		service: svc,
		grpc:    coreGrpc.NewServer(grpcCfg, logger),
		logger:  logger,
		config:  cfg,
	}

	server.grpc.RegisterService(&SolverServiceDesc, server)

	return server
}

// Start starts the server and blocks
func (s *Server) Start() error {
	s.logger.Info("Starting khwarizmi gRPC server", "host", s.config.Host, "port", s.config.Port)
	return s.grpc.Start()
}

// StartAsync starts the server asynchronously
func (s *Server) StartAsync() error {
	s.logger.Info("Starting khwarizmi gRPC server (async)", "host", s.config.Host, "port", s.config.Port)
	return s.grpc.StartAsync()
}

// Serve serves on an existing listener
func (s *Server) Serve(listener net.Listener) error {
	return s.grpc.Serve(listener)
}

// Stop stops the server
func (s *Server) Stop(ctx context.Context) {
	s.logger.Info("Stopping khwarizmi gRPC server")
	s.grpc.StopWithTimeout(ctx)
}

// GRPCServer returns the underlying gRPC server
func (s *Server) GRPCServer() *grpc.Server {
	return s.grpc.GRPCServer()
}

// HealthRegistry returns the health check registry of the service
func (s *Server) HealthRegistry() *health.Registry {
	return s.service.HealthRegistry()
}

// Address returns the listen address
func (s *Server) Address() string {
	return s.grpc.Address()
}

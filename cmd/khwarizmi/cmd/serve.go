package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/msto63/khwarizmi/internal/khwarizmi/server"
	"github.com/msto63/khwarizmi/internal/khwarizmi/service"
	"github.com/msto63/khwarizmi/pkg/core/logging"
	"github.com/spf13/cobra"
)

var (
	serveGRPCPort int
	serveHTTPPort int
	serveNoHTTP   bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Startet den gRPC- und HTTP-Server",
	Long: `Startet khwarizmi als Dienst.

Endpunkte:
  gRPC  khwarizmi.v1.Solver      (default :9160)
  HTTP  POST /api/v1/solve       (default :8160)
        GET  /api/v1/solve/ws    Lösungsweg per WebSocket
        GET  /api/v1/history
        GET  /health`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().IntVar(&serveGRPCPort, "grpc-port", 0, "gRPC-Port (default: server.grpc_port)")
	serveCmd.Flags().IntVar(&serveHTTPPort, "http-port", 0, "HTTP-Port (default: server.http_port)")
	serveCmd.Flags().BoolVar(&serveNoHTTP, "no-http", false, "Nur gRPC starten")
}

func runServe(cmd *cobra.Command, args []string) error {
	logger := logging.New("khwarizmi-serve")

	if serveGRPCPort != 0 {
		appConfig.Server.GRPCPort = serveGRPCPort
	}
	if serveHTTPPort != 0 {
		appConfig.Server.HTTPPort = serveHTTPPort
	}

	svc, err := service.NewFromConfig(appConfig, logger)
	if err != nil {
		return err
	}
	defer svc.Close()

	grpcServer := server.New(server.Config{
		Host:              appConfig.Server.Host,
		Port:              appConfig.Server.GRPCPort,
		EnableReflection:  appConfig.Server.EnableReflection,
		MaxRecvMsgSize:    appConfig.Server.MaxRecvMsgSize,
		KeepaliveInterval: appConfig.Server.KeepaliveInterval.Duration,
	}, svc, logging.New("khwarizmi-grpc"))

	if err := grpcServer.StartAsync(); err != nil {
		return err
	}

	var httpServer *server.HTTPServer
	if !serveNoHTTP {
		httpServer = server.NewHTTP(server.HTTPConfig{
			Host:         appConfig.Server.Host,
			Port:         appConfig.Server.HTTPPort,
			ReadTimeout:  appConfig.Server.ReadTimeout.Duration,
			WriteTimeout: appConfig.Server.WriteTimeout.Duration,
		}, svc, logging.New("khwarizmi-http"))

		if err := httpServer.StartAsync(); err != nil {
			grpcServer.Stop(context.Background())
			return err
		}
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "khwarizmi")
	fmt.Fprintln(out, "=========")
	fmt.Fprintf(out, "gRPC:   %s\n", appConfig.GRPCAddress())
	if httpServer != nil {
		fmt.Fprintf(out, "HTTP:   http://%s\n", appConfig.HTTPAddress())
	}
	if src := appConfig.Source(); src != "" {
		fmt.Fprintf(out, "Config: %s\n", src)
	}
	fmt.Fprintln(out, "Drücke Ctrl+C zum Beenden")

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()

	fmt.Fprintln(out, "\nBeende Server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), appConfig.Server.ShutdownTimeout.Duration)
	defer cancel()

	if httpServer != nil {
		if err := httpServer.Stop(shutdownCtx); err != nil {
			logger.Warn("HTTP shutdown failed", "error", err)
		}
	}
	grpcServer.Stop(shutdownCtx)

	return nil
}

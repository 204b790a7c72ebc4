package cmd

import (
	"context"
	"time"

	mdwerror "github.com/msto63/khwarizmi/foundation/core/error"
	"github.com/msto63/khwarizmi/internal/khwarizmi/server"
	"github.com/msto63/khwarizmi/internal/khwarizmi/service"
	"github.com/msto63/khwarizmi/internal/khwarizmi/store"
	coreGrpc "github.com/msto63/khwarizmi/pkg/core/grpc"
	"github.com/msto63/khwarizmi/pkg/core/health"
	"github.com/msto63/khwarizmi/pkg/core/logging"
)

// remoteCheckTimeout bounds the reachability check of --remote
const remoteCheckTimeout = 3 * time.Second

// backend solves equations and lists history, locally or on a remote server
type backend interface {
	Solve(ctx context.Context, input string) (*service.SolveResponse, error)
	History(ctx context.Context, limit int) ([]*store.Entry, error)
	Close() error
}

// openBackend connects to remote when set, otherwise builds a local service
func openBackend(remote, source string) (backend, error) {
	logger := logging.New("khwarizmi-cli")

	if remote != "" {
		if err := checkRemote(remote); err != nil {
			return nil, err
		}
		conn, err := coreGrpc.Dial(coreGrpc.DefaultClientConfig(remote), logger)
		if err != nil {
			return nil, err
		}
		return &remoteBackend{client: server.NewSolverClient(conn), close: conn.Close}, nil
	}

	svc, err := service.NewFromConfig(appConfig, logger)
	if err != nil {
		return nil, err
	}
	return &localBackend{service: svc, source: source}, nil
}

// checkRemote reports SERVICE_UNAVAILABLE when address refuses TCP
// connections. The gRPC client itself connects lazily.
func checkRemote(address string) error {
	ctx, cancel := context.WithTimeout(context.Background(), remoteCheckTimeout)
	defer cancel()

	result := health.TCPCheck("remote", address, remoteCheckTimeout).Check(ctx)
	if result.Status != health.StatusHealthy {
		return mdwerror.Newf("server %s is not reachable: %s", address, result.Message).
			WithCode(mdwerror.CodeServiceUnavailable).
			WithOperation("cmd.openBackend")
	}
	return nil
}

type localBackend struct {
	service *service.Service
	source  string
}

func (b *localBackend) Solve(ctx context.Context, input string) (*service.SolveResponse, error) {
	return b.service.Solve(ctx, &service.SolveRequest{Input: input, Source: b.source})
}

func (b *localBackend) History(ctx context.Context, limit int) ([]*store.Entry, error) {
	return b.service.History(ctx, limit)
}

func (b *localBackend) Close() error {
	return b.service.Close()
}

type remoteBackend struct {
	client *server.SolverClient
	close  func() error
}

func (b *remoteBackend) Solve(ctx context.Context, input string) (*service.SolveResponse, error) {
	out, err := b.client.Solve(ctx, input)
	if err != nil {
		return nil, coreGrpc.FromStatus(err)
	}
	return server.StructToResponse(out), nil
}

func (b *remoteBackend) History(ctx context.Context, limit int) ([]*store.Entry, error) {
	out, err := b.client.History(ctx, limit)
	if err != nil {
		return nil, coreGrpc.FromStatus(err)
	}
	return server.ListToEntries(out), nil
}

func (b *remoteBackend) Close() error {
	return b.close()
}

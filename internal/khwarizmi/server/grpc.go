package server

import (
	"context"

	"github.com/msto63/khwarizmi/internal/khwarizmi/service"
	coreGrpc "github.com/msto63/khwarizmi/pkg/core/grpc"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

// Ensure Server implements SolverServer
var _ SolverServer = (*Server)(nil)

// Solve implements SolverServer.Solve
func (s *Server) Solve(ctx context.Context, req *wrapperspb.StringValue) (*structpb.Struct, error) {
	resp, err := s.service.Solve(ctx, &service.SolveRequest{
		Input:     req.GetValue(),
		Source:    service.SourceGRPC,
		RequestID: coreGrpc.GetRequestID(ctx),
	})
	if err != nil {
		return nil, coreGrpc.ToStatus(err)
	}

	out, err := ResponseToStruct(resp)
	if err != nil {
		s.logger.Error("Failed to encode response", "error", err)
		return nil, status.Error(codes.Internal, err.Error())
	}
	return out, nil
}

// SolveSteps implements SolverServer.SolveSteps
func (s *Server) SolveSteps(req *wrapperspb.StringValue, stream grpc.ServerStreamingServer[structpb.Struct]) error {
	ctx := stream.Context()

	var sendErr error
	resp, err := s.service.Solve(ctx, &service.SolveRequest{
		Input:     req.GetValue(),
		Source:    service.SourceGRPC,
		RequestID: coreGrpc.GetRequestID(ctx),
		OnStep: func(step service.StepView) {
			if sendErr != nil {
				return
			}
			msg, err := StepToStruct(step)
			if err != nil {
				sendErr = err
				return
			}
			sendErr = stream.Send(msg)
		},
	})
	if err != nil {
		return coreGrpc.ToStatus(err)
	}
	if sendErr != nil {
		return sendErr
	}

	out, err := ResponseToStruct(resp)
	if err != nil {
		return status.Error(codes.Internal, err.Error())
	}
	return stream.Send(out)
}

// History implements SolverServer.History
func (s *Server) History(ctx context.Context, req *wrapperspb.Int32Value) (*structpb.ListValue, error) {
	entries, err := s.service.History(ctx, int(req.GetValue()))
	if err != nil {
		return nil, coreGrpc.ToStatus(err)
	}

	out, err := EntriesToList(entries)
	if err != nil {
		return nil, status.Error(codes.Internal, err.Error())
	}
	return out, nil
}

// ============================================================================
// khwarizmi - Linear Equation Solver
// ============================================================================
//
// Package:     server
// Description: Service descriptor and client of khwarizmi.v1.Solver. Messages
//              are protobuf well-known types, so no generated code is needed.
// Author:      Mike Stoffels
// Created:     2026-10-19
// License:     MIT
// ============================================================================

package server

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

// Full method names of khwarizmi.v1.Solver
const (
	ServiceName      = "khwarizmi.v1.Solver"
	SolveMethod      = "/khwarizmi.v1.Solver/Solve"
	SolveStepsMethod = "/khwarizmi.v1.Solver/SolveSteps"
	HistoryMethod    = "/khwarizmi.v1.Solver/History"
)

// SolverServer is the server API for khwarizmi.v1.Solver
type SolverServer interface {
	// Solve returns the solution as a struct with the fields result,
	// variable, value, solved, cached and steps
	Solve(context.Context, *wrapperspb.StringValue) (*structpb.Struct, error)
	// SolveSteps streams one struct per step followed by the solution
	SolveSteps(*wrapperspb.StringValue, grpc.ServerStreamingServer[structpb.Struct]) error
	// History lists recent solves, newest first
	History(context.Context, *wrapperspb.Int32Value) (*structpb.ListValue, error)
}

// SolverServiceDesc is the grpc.ServiceDesc for khwarizmi.v1.Solver
var SolverServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*SolverServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "Solve",
			Handler:    solveHandler,
		},
		{
			MethodName: "History",
			Handler:    historyHandler,
		},
	},
	Streams: []grpc.StreamDesc{
		{
			StreamName:    "SolveSteps",
			Handler:       solveStepsHandler,
			ServerStreams: true,
		},
	},
	Metadata: "khwarizmi/v1/solver.proto",
}

// RegisterSolverServer registers srv on s
func RegisterSolverServer(s grpc.ServiceRegistrar, srv SolverServer) {
	s.RegisterService(&SolverServiceDesc, srv)
}

func solveHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(wrapperspb.StringValue)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(SolverServer).Solve(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: SolveMethod,
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(SolverServer).Solve(ctx, req.(*wrapperspb.StringValue))
	}
	return interceptor(ctx, in, info, handler)
}

func historyHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(wrapperspb.Int32Value)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(SolverServer).History(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: HistoryMethod,
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(SolverServer).History(ctx, req.(*wrapperspb.Int32Value))
	}
	return interceptor(ctx, in, info, handler)
}

func solveStepsHandler(srv interface{}, stream grpc.ServerStream) error {
	in := new(wrapperspb.StringValue)
	if err := stream.RecvMsg(in); err != nil {
		return err
	}
	return srv.(SolverServer).SolveSteps(in, &grpc.GenericServerStream[wrapperspb.StringValue, structpb.Struct]{ServerStream: stream})
}

// SolverClient is the client API for khwarizmi.v1.Solver
type SolverClient struct {
	cc grpc.ClientConnInterface
}

// NewSolverClient creates a client on an existing connection
func NewSolverClient(cc grpc.ClientConnInterface) *SolverClient {
	return &SolverClient{cc: cc}
}

// Solve solves input remotely
func (c *SolverClient) Solve(ctx context.Context, input string, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, SolveMethod, wrapperspb.String(input), out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

// SolveSteps opens a stream of step structs for input
func (c *SolverClient) SolveSteps(ctx context.Context, input string, opts ...grpc.CallOption) (grpc.ServerStreamingClient[structpb.Struct], error) {
	stream, err := c.cc.NewStream(ctx, &SolverServiceDesc.Streams[0], SolveStepsMethod, opts...)
	if err != nil {
		return nil, err
	}
	x := &grpc.GenericClientStream[wrapperspb.StringValue, structpb.Struct]{ClientStream: stream}
	if err := x.ClientStream.SendMsg(wrapperspb.String(input)); err != nil {
		return nil, err
	}
	if err := x.ClientStream.CloseSend(); err != nil {
		return nil, err
	}
	return x, nil
}

// History lists the most recent solves
func (c *SolverClient) History(ctx context.Context, limit int, opts ...grpc.CallOption) (*structpb.ListValue, error) {
	out := new(structpb.ListValue)
	if err := c.cc.Invoke(ctx, HistoryMethod, wrapperspb.Int32(int32(limit)), out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

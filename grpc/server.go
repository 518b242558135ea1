package circuitgrpc

import (
	"context"
	"net"

	"google.golang.org/grpc"

	circuit "github.com/t3rn/go-circuit"
	"github.com/t3rn/go-circuit/types"
)

// Compile-time interface check.
var _ GatewayServiceServer = (*GRPCServer)(nil)

// GRPCServer exposes a gateway over gRPC. No type conversion is
// needed; domain types are serialized directly via cramberry.
type GRPCServer struct {
	gw circuit.Gateway
}

// NewGRPCServer creates a gRPC server wrapping the given gateway.
func NewGRPCServer(gw circuit.Gateway) *GRPCServer {
	return &GRPCServer{gw: gw}
}

// Register adds the gateway service to a gRPC server.
func (s *GRPCServer) Register(gs *grpc.Server) {
	RegisterGatewayServiceServer(gs, s)
}

// Serve starts a gRPC server on the given listener and blocks.
func (s *GRPCServer) Serve(lis net.Listener, opts ...grpc.ServerOption) error {
	gs := grpc.NewServer(opts...)
	s.Register(gs)
	return gs.Serve(lis)
}

// Gateway returns the wrapped gateway for advanced use.
func (s *GRPCServer) Gateway() circuit.Gateway {
	return s.gw
}

func (s *GRPCServer) Describe(ctx context.Context, _ *DescribeRequest) (*types.RegistryRecord, error) {
	rec, err := s.gw.Describe(ctx)
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

func (s *GRPCServer) Execute(ctx context.Context, msg *types.CircuitOutboundMessage) (*types.GatewayResponse, error) {
	resp, err := s.gw.Execute(ctx, *msg)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

package circuitgrpc

import (
	"context"
	"fmt"

	"github.com/t3rn/go-circuit/types"

	"google.golang.org/grpc"
)

const serviceName = "github.com/t3rn/go-circuit.v1.GatewayService"

// GatewayServiceServer is the server-side interface for the gateway
// gRPC service.
type GatewayServiceServer interface {
	Describe(context.Context, *DescribeRequest) (*types.RegistryRecord, error)
	Execute(context.Context, *types.CircuitOutboundMessage) (*types.GatewayResponse, error)
}

// RegisterGatewayServiceServer registers the GatewayServiceServer on a
// gRPC server.
func RegisterGatewayServiceServer(s *grpc.Server, srv GatewayServiceServer) {
	s.RegisterService(&serviceDesc, srv)
}

// --- Handler functions ---

func handlerDescribe(srv any, ctx context.Context, dec func(any) error, _ grpc.UnaryServerInterceptor) (any, error) {
	req := new(DescribeRequest)
	if err := dec(req); err != nil {
		return nil, err
	}
	return srv.(GatewayServiceServer).Describe(ctx, req)
}

func handlerExecute(srv any, ctx context.Context, dec func(any) error, _ grpc.UnaryServerInterceptor) (any, error) {
	req := new(types.CircuitOutboundMessage)
	if err := dec(req); err != nil {
		return nil, err
	}
	return srv.(GatewayServiceServer).Execute(ctx, req)
}

// fullMethod builds the full gRPC method path.
func fullMethod(method string) string {
	return fmt.Sprintf("/%s/%s", serviceName, method)
}

// serviceDesc is the manual gRPC service descriptor for the gateway
// protocol. Both RPCs are strictly unary: a gateway answers one
// response per message and nothing is streamed.
var serviceDesc = grpc.ServiceDesc{
	ServiceName: serviceName,
	HandlerType: (*GatewayServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Describe", Handler: handlerDescribe},
		{MethodName: "Execute", Handler: handlerExecute},
	},
	Metadata: "github.com/t3rn/go-circuit/v1/service.cram",
}

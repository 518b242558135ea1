package circuitgrpc

import (
	"context"
	"fmt"

	"google.golang.org/grpc"

	circuit "github.com/t3rn/go-circuit"
	"github.com/t3rn/go-circuit/types"
)

// Compile-time interface check.
var _ circuit.Transport = (*Client)(nil)

// Client reaches a remote gateway over gRPC using cramberry
// serialization. No protobuf types or conversion layer required.
type Client struct {
	cc *grpc.ClientConn
}

// Dial connects to a remote gateway.
func Dial(ctx context.Context, addr string, opts ...grpc.DialOption) (*Client, error) {
	opts = append(opts, grpc.WithDefaultCallOptions(
		grpc.ForceCodec(CramberryCodec{}),
	))
	cc, err := grpc.DialContext(ctx, addr, opts...)
	if err != nil {
		return nil, fmt.Errorf("circuit client: dial %s: %w", addr, err)
	}
	return &Client{cc: cc}, nil
}

// Send executes the message on the remote gateway.
func (c *Client) Send(ctx context.Context, msg types.CircuitOutboundMessage) (types.GatewayResponse, error) {
	resp := new(types.GatewayResponse)
	if err := c.cc.Invoke(ctx, fullMethod("Execute"), &msg, resp); err != nil {
		return types.GatewayResponse{}, err
	}
	return *resp, nil
}

// Describe fetches the remote gateway's registry record, typically
// once at bind time to register the gateway locally.
func (c *Client) Describe(ctx context.Context) (types.RegistryRecord, error) {
	req := &DescribeRequest{}
	resp := new(types.RegistryRecord)
	if err := c.cc.Invoke(ctx, fullMethod("Describe"), req, resp); err != nil {
		return types.RegistryRecord{}, err
	}
	return *resp, nil
}

func (c *Client) Close() error {
	return c.cc.Close()
}

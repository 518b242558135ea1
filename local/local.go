// Package local provides a zero-copy, in-process gateway transport.
//
// For gateways compiled into the same binary as the relay, this
// adapter satisfies the Transport interface by calling the gateway
// directly, with no serialization overhead. Messages are cloned on the
// way in so the gateway cannot alias the relay's buffers.
package local

import (
	"context"
	"sync/atomic"

	circuit "github.com/t3rn/go-circuit"
	"github.com/t3rn/go-circuit/types"
)

// Compile-time interface check.
var _ circuit.Transport = (*Transport)(nil)

// Transport wraps an in-process gateway.
type Transport struct {
	gw     circuit.Gateway
	closed atomic.Bool
}

// New creates an in-process transport for the given gateway.
func New(gw circuit.Gateway) *Transport {
	return &Transport{gw: gw}
}

// Send executes the message on the wrapped gateway.
func (t *Transport) Send(ctx context.Context, msg types.CircuitOutboundMessage) (types.GatewayResponse, error) {
	if t.closed.Load() {
		return types.GatewayResponse{}, circuit.ErrTransportClosed
	}
	return t.gw.Execute(ctx, msg.Clone())
}

// Describe returns the wrapped gateway's registry record.
func (t *Transport) Describe(ctx context.Context) (types.RegistryRecord, error) {
	if t.closed.Load() {
		return types.RegistryRecord{}, circuit.ErrTransportClosed
	}
	return t.gw.Describe(ctx)
}

// Close marks the transport closed. Further sends fail.
func (t *Transport) Close() error {
	t.closed.Store(true)
	return nil
}

// Gateway returns the wrapped gateway for advanced use cases.
func (t *Transport) Gateway() circuit.Gateway {
	return t.gw
}

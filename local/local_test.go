package local_test

import (
	"context"
	"errors"
	"testing"

	circuit "github.com/t3rn/go-circuit"
	"github.com/t3rn/go-circuit/local"
	circuittest "github.com/t3rn/go-circuit/testing"
	"github.com/t3rn/go-circuit/types"
)

func TestSendDelegatesToGateway(t *testing.T) {
	out := types.Bytes{0x2a}
	gw := circuittest.NewMockGateway(types.RegistryRecord{}, types.GatewayResponse{Output: &out})
	tr := local.New(gw)

	resp, err := tr.Send(context.Background(), types.CircuitOutboundMessage{Name: "m"})
	if err != nil {
		t.Fatalf("send failed: %v", err)
	}
	if resp.Output == nil || (*resp.Output)[0] != 0x2a {
		t.Fatalf("unexpected response: %+v", resp)
	}
	if got := gw.ExecuteCalls.Load(); got != 1 {
		t.Fatalf("expected 1 execute call, got %d", got)
	}
}

func TestSendClonesMessage(t *testing.T) {
	var seen types.CircuitOutboundMessage
	gw := &circuittest.MockGateway{
		ExecuteFn: func(ctx context.Context, msg types.CircuitOutboundMessage) (types.GatewayResponse, error) {
			seen = msg
			return types.GatewayResponse{}, nil
		},
	}
	tr := local.New(gw)

	args := []types.Bytes{{0x01}}
	msg := types.CircuitOutboundMessage{Arguments: args}
	if _, err := tr.Send(context.Background(), msg); err != nil {
		t.Fatalf("send failed: %v", err)
	}

	// Mutating the gateway's view must not reach the caller's message.
	seen.Arguments[0][0] = 0xff
	if args[0][0] != 0x01 {
		t.Fatal("gateway aliased the caller's argument buffer")
	}
}

func TestClosedTransportRejectsSends(t *testing.T) {
	gw := circuittest.NewMockGateway(types.RegistryRecord{}, types.GatewayResponse{})
	tr := local.New(gw)

	if err := tr.Close(); err != nil {
		t.Fatalf("close failed: %v", err)
	}
	_, err := tr.Send(context.Background(), types.CircuitOutboundMessage{})
	if !errors.Is(err, circuit.ErrTransportClosed) {
		t.Fatalf("expected ErrTransportClosed, got %v", err)
	}
	if _, err := tr.Describe(context.Background()); !errors.Is(err, circuit.ErrTransportClosed) {
		t.Fatalf("expected ErrTransportClosed from describe, got %v", err)
	}
	if got := gw.ExecuteCalls.Load(); got != 0 {
		t.Fatalf("closed transport reached the gateway %d times", got)
	}
}

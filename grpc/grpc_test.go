package circuitgrpc_test

import (
	"context"
	"net"
	"reflect"
	"testing"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	circuitgrpc "github.com/t3rn/go-circuit/grpc"
	circuittest "github.com/t3rn/go-circuit/testing"
	"github.com/t3rn/go-circuit/types"
)

// startServer starts a gRPC server on a random port and returns
// the listener address and a cleanup function.
func startServer(t *testing.T, gs *circuitgrpc.GRPCServer) (string, func()) {
	t.Helper()
	lis, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}

	s := grpc.NewServer()
	gs.Register(s)

	go func() {
		if err := s.Serve(lis); err != nil {
			// Ignore errors from graceful stop.
		}
	}()

	return lis.Addr().String(), func() {
		s.GracefulStop()
	}
}

func dial(t *testing.T, addr string) *circuitgrpc.Client {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	client, err := circuitgrpc.Dial(ctx, addr,
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	if err != nil {
		t.Fatalf("Dial: %v", err)
	}
	return client
}

func fixtureRecord() types.RegistryRecord {
	return circuittest.MakeRecord(
		circuittest.MakeChainID("gatA"),
		types.VendorSubstrate,
		circuittest.SubstrateConfig(),
		types.FeatureStorageReads|types.FeatureRawOutput,
	)
}

func TestGRPC_Describe(t *testing.T) {
	want := fixtureRecord()
	gw := circuittest.NewMockGateway(want, types.GatewayResponse{})

	gs := circuitgrpc.NewGRPCServer(gw)
	addr, cleanup := startServer(t, gs)
	defer cleanup()

	client := dial(t, addr)
	defer client.Close()

	got, err := client.Describe(context.Background())
	if err != nil {
		t.Fatalf("Describe: %v", err)
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("record did not survive the wire:\n got  %+v\n want %+v", got, want)
	}
	if calls := gw.DescribeCalls.Load(); calls != 1 {
		t.Fatalf("expected 1 describe call, got %d", calls)
	}
}

func TestGRPC_SendRoundTrip(t *testing.T) {
	out := types.Bytes{0x2a}
	want := types.GatewayResponse{
		Storage: []types.StorageEntry{{Key: types.Bytes{0x01}, Value: &out}},
		Events:  []types.EventSignature{types.EventSignature("Transfer(address,address,uint256)")},
		Output:  &out,
		Proofs:  circuittest.MakeProofs(types.TrieState, types.TrieReceipts),
	}

	var seen types.CircuitOutboundMessage
	gw := &circuittest.MockGateway{
		ExecuteFn: func(_ context.Context, msg types.CircuitOutboundMessage) (types.GatewayResponse, error) {
			seen = msg
			return want, nil
		},
	}

	gs := circuitgrpc.NewGRPCServer(gw)
	addr, cleanup := startServer(t, gs)
	defer cleanup()

	client := dial(t, addr)
	defer client.Close()

	sender := types.AccountID{0xaa, 0xbb}
	msg := types.CircuitOutboundMessage{
		Name:       "balances.transfer",
		ModuleName: "balances",
		MethodName: "transfer",
		Sender:     &sender,
		Arguments:  []types.Bytes{{0x01, 0x02}},
		ExpectedOutput: []types.GatewayExpectedOutput{
			types.ExpectOutput(out),
		},
	}

	got, err := client.Send(context.Background(), msg)
	if err != nil {
		t.Fatalf("Send: %v", err)
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("response did not survive the wire:\n got  %+v\n want %+v", got, want)
	}
	if seen.Name != msg.Name || seen.ModuleName != msg.ModuleName || seen.MethodName != msg.MethodName {
		t.Fatalf("message names did not survive the wire: %+v", seen)
	}
	if seen.Sender == nil || !reflect.DeepEqual(*seen.Sender, sender) {
		t.Fatalf("sender did not survive the wire: %+v", seen.Sender)
	}
	if !reflect.DeepEqual(seen.Arguments, msg.Arguments) {
		t.Fatalf("arguments did not survive the wire: %+v", seen.Arguments)
	}
	if len(seen.ExpectedOutput) != 1 || seen.ExpectedOutput[0].Kind() != types.ExpectationOutput {
		t.Fatalf("expectations did not survive the wire: %+v", seen.ExpectedOutput)
	}
}

func TestGRPC_SendPropagatesGatewayError(t *testing.T) {
	gw := &circuittest.MockGateway{
		ExecuteFn: func(context.Context, types.CircuitOutboundMessage) (types.GatewayResponse, error) {
			return types.GatewayResponse{}, context.DeadlineExceeded
		},
	}

	gs := circuitgrpc.NewGRPCServer(gw)
	addr, cleanup := startServer(t, gs)
	defer cleanup()

	client := dial(t, addr)
	defer client.Close()

	if _, err := client.Send(context.Background(), types.CircuitOutboundMessage{Name: "m"}); err == nil {
		t.Fatal("gateway error not propagated")
	}
}

func TestGRPC_ClosedClientFailsSends(t *testing.T) {
	gw := circuittest.NewMockGateway(fixtureRecord(), types.GatewayResponse{})
	gs := circuitgrpc.NewGRPCServer(gw)
	addr, cleanup := startServer(t, gs)
	defer cleanup()

	client := dial(t, addr)
	if err := client.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if _, err := client.Send(context.Background(), types.CircuitOutboundMessage{}); err == nil {
		t.Fatal("send on closed client succeeded")
	}
}

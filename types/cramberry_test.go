package types_test

import (
	"bytes"
	"testing"

	"github.com/t3rn/go-circuit/types"

	"github.com/blockberries/cramberry/pkg/cramberry"
)

// roundTrip marshals v, unmarshals into a new T, and returns it.
func roundTrip[T any](t *testing.T, v T) T {
	t.Helper()
	data, err := cramberry.Marshal(v)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	var out T
	if err := cramberry.Unmarshal(data, &out); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	return out
}

func TestGatewayPointer_RoundTrip(t *testing.T) {
	v := types.GatewayPointer{
		ID:     types.ChainID{'r', 'o', 'c', 'o'},
		Vendor: types.VendorSubstrate,
		Type:   types.GatewayExternal,
	}
	got := roundTrip(t, v)
	if got != v {
		t.Fatalf("GatewayPointer round-trip failed: got %+v, want %+v", got, v)
	}
}

func TestRegistryRecord_RoundTrip(t *testing.T) {
	v := types.RegistryRecord{
		Pointer: types.GatewayPointer{
			ID:     types.ChainID{'g', 'e', 't', 'h'},
			Vendor: types.VendorEthereum,
			Type:   types.GatewayExternal,
		},
		Config: types.GatewayABIConfig{
			BlockNumberTypeSize: 8,
			HashSize:            32,
			AddressLength:       20,
			ValueTypeSize:       32,
			Decimals:            18,
			Hasher:              types.HasherKeccak256,
			Crypto:              types.CryptoEcdsa,
			Structs: []types.StructDecl{
				{
					Name: "transfer",
					Fields: []types.FieldDecl{
						{Name: "to", Type: "address"},
						{Name: "value", Type: "uint256"},
					},
					Offsets: []uint32{20, 52},
				},
			},
		},
		Features: types.FeatureEventLogs | types.FeatureRawOutput,
	}
	got := roundTrip(t, v)
	if got.Pointer != v.Pointer || got.Features != v.Features {
		t.Fatalf("RegistryRecord round-trip lost pointer/features: %+v", got)
	}
	if got.Config.AddressLength != 20 || got.Config.Hasher != types.HasherKeccak256 {
		t.Fatalf("RegistryRecord round-trip lost config widths: %+v", got.Config)
	}
	if len(got.Config.Structs) != 1 || got.Config.Structs[0].Size() != 52 {
		t.Fatalf("RegistryRecord round-trip lost struct decls: %+v", got.Config.Structs)
	}
}

func TestExpectedOutput_RoundTrip_PreservesVariant(t *testing.T) {
	height := uint64(42)
	entries := []types.GatewayExpectedOutput{
		types.ExpectStorage(
			[]types.Bytes{[]byte("k1"), []byte("k2")},
			[]*types.Bytes{ptr(types.Bytes("v1")), nil},
		),
		types.ExpectEvents(types.EventSignature("Transfer(address,address,uint256)")),
		types.ExpectExtrinsic(&height),
		types.ExpectOutput([]byte{0xde, 0xad}),
	}
	for _, in := range entries {
		got := roundTrip(t, in)
		if got.Kind() != in.Kind() {
			t.Fatalf("variant changed across round-trip: got %s, want %s", got.Kind(), in.Kind())
		}
		if err := got.Validate(); err != nil {
			t.Fatalf("round-tripped %s entry no longer valid: %v", in.Kind(), err)
		}
	}
}

func TestExpectedOutput_RoundTrip_NilValueStaysNil(t *testing.T) {
	in := types.ExpectStorage(
		[]types.Bytes{[]byte("k1"), []byte("k2")},
		[]*types.Bytes{ptr(types.Bytes("v1")), nil},
	)
	got := roundTrip(t, in)
	if got.Storage.Values[0] == nil || !bytes.Equal(*got.Storage.Values[0], []byte("v1")) {
		t.Fatalf("present value lost: %+v", got.Storage.Values)
	}
	if got.Storage.Values[1] != nil {
		t.Fatal("absent value became present across round-trip")
	}
}

func TestCircuitOutboundMessage_RoundTrip(t *testing.T) {
	sender := types.AccountID{0x01, 0x02}
	v := types.CircuitOutboundMessage{
		Name:       "transfer",
		ModuleName: "balances",
		MethodName: "transfer",
		Sender:     &sender,
		Arguments:  []types.Bytes{{0x03, 0x04}, {0x05, 0x06}},
		ExpectedOutput: []types.GatewayExpectedOutput{
			types.ExpectExtrinsic(nil),
		},
		ExtraPayload: &types.ExtraMessagePayload{
			Signer:      types.AccountID{0x01, 0x02},
			ModuleName:  "balances",
			MethodName:  "transfer",
			CallBytes:   []byte{0xaa},
			Signature:   []byte{0xbb},
			TxSignedRaw: []byte{0xcc},
		},
	}
	got := roundTrip(t, v)
	if got.Name != v.Name || got.ModuleName != v.ModuleName || got.MethodName != v.MethodName {
		t.Fatalf("identifiers lost: %+v", got)
	}
	if got.Sender == nil || !bytes.Equal(*got.Sender, sender) {
		t.Fatalf("sender lost: %+v", got.Sender)
	}
	if got.Target != nil {
		t.Fatal("absent target became present")
	}
	if len(got.Arguments) != 2 || !bytes.Equal(got.Arguments[1], v.Arguments[1]) {
		t.Fatalf("arguments lost: %+v", got.Arguments)
	}
	if got.ExtraPayload == nil || got.ExtraPayload.ModuleName != "balances" {
		t.Fatalf("extra payload lost: %+v", got.ExtraPayload)
	}
	if got.ExtraPayload.CustomPayload != nil {
		t.Fatal("absent custom payload became present")
	}
}

func TestGatewayResponse_RoundTrip(t *testing.T) {
	out := types.Bytes{0x01}
	v := types.GatewayResponse{
		Storage: []types.StorageEntry{
			{Key: []byte("k1"), Value: ptr(types.Bytes("v1"))},
			{Key: []byte("k2")},
		},
		Events:    []types.EventSignature{[]byte("Transfer")},
		Inclusion: &types.ExtrinsicInclusion{BlockHeight: 9, Index: 2},
		Output:    &out,
		Proofs: []types.InclusionProof{
			{Trie: types.TrieState, Root: types.Hash{0xaa}, Nodes: []types.Bytes{{0x01}}},
		},
	}
	got := roundTrip(t, v)
	if len(got.Storage) != 2 || got.Storage[1].Value != nil {
		t.Fatalf("storage entries lost: %+v", got.Storage)
	}
	if got.Inclusion == nil || got.Inclusion.BlockHeight != 9 {
		t.Fatalf("inclusion lost: %+v", got.Inclusion)
	}
	p, ok := got.ProofFor(types.TrieState)
	if !ok || p.Root != (types.Hash{0xaa}) {
		t.Fatalf("proof lost: %+v", got.Proofs)
	}
	if _, ok := got.ProofFor(types.TrieReceipts); ok {
		t.Fatal("ProofFor returned a proof for a trie the response never touched")
	}
}

func ptr(b types.Bytes) *types.Bytes { return &b }

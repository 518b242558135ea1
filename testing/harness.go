package circuittest

import (
	"context"
	"testing"

	"github.com/rs/zerolog"

	circuit "github.com/t3rn/go-circuit"
	"github.com/t3rn/go-circuit/builder"
	"github.com/t3rn/go-circuit/local"
	"github.com/t3rn/go-circuit/registry"
	"github.com/t3rn/go-circuit/relay"
	"github.com/t3rn/go-circuit/types"
	"github.com/t3rn/go-circuit/verifier"
)

// Harness wires a registry, builder, and relay for round-trip tests.
// Gateways attach over in-process transports; inclusion proofs are
// accepted unconditionally unless a verifier is supplied at
// construction.
type Harness struct {
	t        *testing.T
	Registry *registry.Registry
	Builder  *builder.Builder
	Relay    *relay.Relay
}

// NewHarness creates a harness that accepts all inclusion proofs.
func NewHarness(t *testing.T) *Harness {
	t.Helper()
	return NewHarnessWithProofs(t, AcceptAllProofs)
}

// NewHarnessWithProofs creates a harness using the given proof
// verifier for every dispatched response.
func NewHarnessWithProofs(t *testing.T, pv circuit.ProofVerifier) *Harness {
	t.Helper()
	reg := registry.New()
	h := &Harness{
		t:        t,
		Registry: reg,
		Builder:  builder.New(reg),
		Relay:    relay.New(reg, pv, verifier.NewSet(), zerolog.Nop()),
	}
	t.Cleanup(func() {
		if err := h.Relay.Close(); err != nil {
			t.Errorf("closing relay: %v", err)
		}
	})
	return h
}

// Attach registers a gateway under its own described record and binds
// it over an in-process transport. It returns the gateway's id.
func (h *Harness) Attach(gw circuit.Gateway) types.ChainID {
	h.t.Helper()
	rec, err := gw.Describe(context.Background())
	if err != nil {
		h.t.Fatalf("Describe failed: %v", err)
	}
	if err := h.Registry.RegisterRecord(rec); err != nil {
		h.t.Fatalf("registering gateway %s: %v", rec.Pointer.ID, err)
	}
	if err := h.Relay.Bind(rec.Pointer.ID, local.New(gw)); err != nil {
		h.t.Fatalf("binding gateway %s: %v", rec.Pointer.ID, err)
	}
	return rec.Pointer.ID
}

// MustBuild builds a message, failing the test on error.
func (h *Harness) MustBuild(req builder.BuildRequest) types.CircuitOutboundMessage {
	h.t.Helper()
	msg, err := h.Builder.Build(req)
	if err != nil {
		h.t.Fatalf("Build failed: %v", err)
	}
	return msg
}

// Dispatch sends a message through the relay.
func (h *Harness) Dispatch(target types.TargetID, msg types.CircuitOutboundMessage) (types.GatewayResponse, error) {
	return h.Relay.Dispatch(context.Background(), target, msg)
}

// MustDispatch sends a message, failing the test on error.
func (h *Harness) MustDispatch(target types.TargetID, msg types.CircuitOutboundMessage) types.GatewayResponse {
	h.t.Helper()
	resp, err := h.Dispatch(target, msg)
	if err != nil {
		h.t.Fatalf("Dispatch to %s failed: %v", target, err)
	}
	return resp
}

// --- Helper Factories ---

// MakeChainID builds a chain id from up to four mnemonic bytes.
func MakeChainID(s string) types.ChainID {
	var id types.ChainID
	copy(id[:], s)
	return id
}

// SubstrateConfig returns an ABI config shaped like a Substrate-based
// chain: 32-byte accounts, blake2 hashing, sr25519 signatures.
func SubstrateConfig() types.GatewayABIConfig {
	return types.GatewayABIConfig{
		BlockNumberTypeSize: 4,
		HashSize:            32,
		AddressLength:       32,
		ValueTypeSize:       16,
		Decimals:            12,
		Hasher:              types.HasherBlake2,
		Crypto:              types.CryptoSr25519,
	}
}

// EthereumConfig returns an ABI config shaped like an EVM chain:
// 20-byte accounts, keccak256 hashing, secp256k1 signatures.
func EthereumConfig() types.GatewayABIConfig {
	return types.GatewayABIConfig{
		BlockNumberTypeSize: 8,
		HashSize:            32,
		AddressLength:       20,
		ValueTypeSize:       32,
		Decimals:            18,
		Hasher:              types.HasherKeccak256,
		Crypto:              types.CryptoEcdsa,
	}
}

// MakeRecord builds a registry record for an external gateway with the
// given id, vendor, and config. Features are derived from the
// expectation kinds the caller intends to serve.
func MakeRecord(id types.ChainID, vendor types.GatewayVendor, config types.GatewayABIConfig, features types.GatewayFeatures) types.RegistryRecord {
	return types.RegistryRecord{
		Pointer:  types.GatewayPointer{ID: id, Vendor: vendor, Type: types.GatewayExternal},
		Config:   config,
		Features: features,
	}
}

// MakeProofs builds one placeholder inclusion proof per trie.
func MakeProofs(tries ...types.ProofTriePointer) []types.InclusionProof {
	out := make([]types.InclusionProof, len(tries))
	for i, trie := range tries {
		out[i] = types.InclusionProof{
			Trie:  trie,
			Nodes: []types.Bytes{{byte(trie)}},
		}
	}
	return out
}

// Package circuittest provides test utilities for gateway
// development, including a configurable mock gateway, a round-trip
// harness, and a gateway compliance test suite.
package circuittest

import (
	"context"
	"sync/atomic"

	circuit "github.com/t3rn/go-circuit"
	"github.com/t3rn/go-circuit/types"
)

// Compile-time interface check.
var _ circuit.Gateway = (*MockGateway)(nil)

// MockGateway is a configurable gateway for relay and transport
// testing. All methods are configurable via function fields;
// unconfigured methods return the fixture fields below.
type MockGateway struct {
	// Record is returned by Describe when DescribeFn is nil.
	Record types.RegistryRecord
	// Response is returned by Execute when ExecuteFn is nil.
	Response types.GatewayResponse

	// Configurable handlers. If nil, the fixture fields are used.
	DescribeFn func(context.Context) (types.RegistryRecord, error)
	ExecuteFn  func(context.Context, types.CircuitOutboundMessage) (types.GatewayResponse, error)

	// Call counters (atomic for concurrent access).
	DescribeCalls atomic.Int64
	ExecuteCalls  atomic.Int64
}

// NewMockGateway creates a mock that describes itself with the given
// record and answers every execute with the given response.
func NewMockGateway(record types.RegistryRecord, response types.GatewayResponse) *MockGateway {
	return &MockGateway{Record: record, Response: response}
}

func (m *MockGateway) Describe(ctx context.Context) (types.RegistryRecord, error) {
	m.DescribeCalls.Add(1)
	if m.DescribeFn != nil {
		return m.DescribeFn(ctx)
	}
	return m.Record, nil
}

func (m *MockGateway) Execute(ctx context.Context, msg types.CircuitOutboundMessage) (types.GatewayResponse, error) {
	m.ExecuteCalls.Add(1)
	if m.ExecuteFn != nil {
		return m.ExecuteFn(ctx, msg)
	}
	return m.Response, nil
}

// ProofVerifierFunc adapts a function to the ProofVerifier interface.
type ProofVerifierFunc func(types.ProofTriePointer, types.InclusionProof) error

func (f ProofVerifierFunc) VerifyInclusion(trie types.ProofTriePointer, proof types.InclusionProof) error {
	return f(trie, proof)
}

// AcceptAllProofs treats every inclusion proof as valid. Tests that
// exercise matching rather than proof verification use this.
var AcceptAllProofs = ProofVerifierFunc(func(types.ProofTriePointer, types.InclusionProof) error {
	return nil
})

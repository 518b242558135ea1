// Package circuit defines the Circuit cross-chain gateway message
// schema: describing heterogeneous blockchains ("gateways"), building
// outbound execution requests against them, and judging their
// responses against declared expectations.
//
// The core is pure and performs no I/O. Everything that touches a
// chain (transmission, hashing, signature checks, proof verification)
// is consumed through the capability interfaces below. Default
// implementations of the hashing and signature capabilities live in
// the hasher and verifier packages; transports live in local and grpc.
package circuit

import (
	"context"

	"github.com/t3rn/go-circuit/types"
)

// Transport delivers a built outbound message to one gateway and
// returns the gateway's raw response together with the inclusion
// proofs accompanying it. A Transport instance is bound to a single
// gateway; routing across gateways is the relay's concern.
//
// The transport does not interpret the message or the response;
// verification and matching happen on the caller's side.
type Transport interface {
	// Send submits the message for execution and blocks until the
	// gateway responds or ctx is done.
	Send(ctx context.Context, msg types.CircuitOutboundMessage) (types.GatewayResponse, error)

	// Close releases the underlying connection.
	Close() error
}

// Gateway is the gateway-side handler a transport delivers to. Remote
// gateways implement it behind the grpc package; in-process gateways
// are wrapped by the local package.
type Gateway interface {
	// Describe returns the gateway's registry record: its pointer, its
	// immutable ABI config, and the response shapes it can produce.
	Describe(ctx context.Context) (types.RegistryRecord, error)

	// Execute runs the requested call and returns the raw response
	// plus inclusion proofs for every trie the response touches.
	Execute(ctx context.Context, msg types.CircuitOutboundMessage) (types.GatewayResponse, error)
}

// Hasher computes digests under one fixed algorithm. Implementations
// must be safe for concurrent use.
type Hasher interface {
	// Algo reports which member of the closed hasher tag set this
	// implementation computes.
	Algo() types.HasherAlgo

	// Hash returns the digest of data.
	Hash(data []byte) types.Hash
}

// SignatureVerifier verifies signatures under one fixed scheme.
// Implementations must be safe for concurrent use.
type SignatureVerifier interface {
	// Algo reports which member of the closed crypto tag set this
	// implementation verifies.
	Algo() types.CryptoAlgo

	// Verify reports whether signature is a valid signature of message
	// by the holder of publicKey. A malformed key or signature is an
	// error, not a false verdict.
	Verify(message, signature, publicKey []byte) (bool, error)
}

// ProofVerifier checks an inclusion proof against the root of the
// trie it claims membership in. It is consulted strictly before
// expectation matching: a response whose proof does not verify must
// never reach the matcher.
type ProofVerifier interface {
	// VerifyInclusion returns nil if proof is a valid inclusion proof
	// for the given trie, and an error describing the defect otherwise.
	VerifyInclusion(trie types.ProofTriePointer, proof types.InclusionProof) error
}

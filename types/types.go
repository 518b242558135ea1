// Package types defines the wire-level schema for Circuit gateway
// messages.
//
// These are plain Go structs with cramberry struct tags for
// deterministic binary serialization. Transport concerns (gRPC codec
// registration) are handled in the transport packages; validation
// beyond structural well-formedness lives in the registry, builder,
// and match packages.
//
// Absence is always explicit: optional fields are pointers, never
// sentinel empty byte strings.
package types

import "encoding/hex"

// ChainIDLength is the fixed width of a gateway chain identifier.
const ChainIDLength = 4

// HashLength is the width of all digests produced by the registered
// hash algorithms.
const HashLength = 32

// ChainID is the fixed-width identifier of a gateway, unique across
// the registry.
type ChainID [ChainIDLength]byte

// String returns the printable form of the identifier: ASCII if all
// bytes are printable (chain ids are conventionally mnemonic, e.g.
// "roco"), hex otherwise.
func (c ChainID) String() string {
	for _, b := range c {
		if b < 0x20 || b > 0x7e {
			return "0x" + hex.EncodeToString(c[:])
		}
	}
	return string(c[:])
}

// ChainIDFromBytes converts a byte slice to a ChainID. The slice must
// be exactly ChainIDLength bytes.
func ChainIDFromBytes(b []byte) (ChainID, bool) {
	var id ChainID
	if len(b) != ChainIDLength {
		return id, false
	}
	copy(id[:], b)
	return id, true
}

// TargetID names the destination gateway of a message without
// duplicating its full pointer.
type TargetID = ChainID

// Hash is a 32-byte digest.
type Hash [HashLength]byte

// String returns the hex form of the digest.
func (h Hash) String() string {
	return "0x" + hex.EncodeToString(h[:])
}

// Bytes returns the digest as a slice.
func (h Hash) Bytes() []byte {
	return h[:]
}

// Bytes is an opaque byte string. Optional byte strings are modeled
// as *Bytes so that "absent" and "empty" stay distinguishable.
type Bytes []byte

// String returns the hex form of the bytes.
func (b Bytes) String() string {
	return "0x" + hex.EncodeToString(b)
}

// Clone returns an independent copy. A nil receiver stays nil.
func (b Bytes) Clone() Bytes {
	if b == nil {
		return nil
	}
	out := make(Bytes, len(b))
	copy(out, b)
	return out
}

// AccountID is an account address on some gateway. Its width is
// gateway-specific (GatewayABIConfig.AddressLength).
type AccountID []byte

// Clone returns an independent copy. A nil receiver stays nil.
func (a AccountID) Clone() AccountID {
	if a == nil {
		return nil
	}
	out := make(AccountID, len(a))
	copy(out, a)
	return out
}

// EventSignature identifies an event shape a gateway may emit, in the
// gateway's native convention (e.g. an EVM topic preimage or a pallet
// event name).
type EventSignature []byte

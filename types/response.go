package types

// StorageEntry is one key with the optional value the gateway reported
// for it. A nil Value means the key was absent or null on the gateway.
type StorageEntry struct {
	Key   Bytes  `cramberry:"1"`
	Value *Bytes `cramberry:"2"`
}

// ExtrinsicInclusion reports where the call landed on the gateway.
type ExtrinsicInclusion struct {
	BlockHeight uint64 `cramberry:"1"`
	// Index of the extrinsic within its block.
	Index uint32 `cramberry:"2"`
}

// InclusionProof is an opaque Merkle-style inclusion proof against the
// root of one trie. The core never interprets Nodes; verification is
// delegated to the ProofVerifier capability.
type InclusionProof struct {
	Trie  ProofTriePointer `cramberry:"1"`
	Root  Hash             `cramberry:"2"`
	Nodes []Bytes          `cramberry:"3"`
}

// GatewayResponse is what a transport returns for one outbound
// message: the raw evidence for each response shape the message
// expected, plus one inclusion proof per trie the evidence touches.
//
// Storage pairs positionally with the message's storage expectation
// keys. Proofs must cover every trie selected by the message's
// expectations; the relay rejects the response before matching
// otherwise.
type GatewayResponse struct {
	Storage   []StorageEntry      `cramberry:"1"`
	Events    []EventSignature    `cramberry:"2"`
	Inclusion *ExtrinsicInclusion `cramberry:"3"`
	Output    *Bytes              `cramberry:"4"`
	Proofs    []InclusionProof    `cramberry:"5"`
}

// ProofFor returns the response's proof for the given trie, if any.
func (r GatewayResponse) ProofFor(trie ProofTriePointer) (InclusionProof, bool) {
	for _, p := range r.Proofs {
		if p.Trie == trie {
			return p, true
		}
	}
	return InclusionProof{}, false
}

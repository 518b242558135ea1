package types

import "fmt"

// HasherAlgo selects the hash function used for trie roots and message
// digests on a gateway. It is a closed tag set: consumers switch
// exhaustively and reject unknown values.
type HasherAlgo uint8

const (
	// HasherBlake2 is blake2b with a 256-bit digest (Substrate-family
	// default).
	HasherBlake2 HasherAlgo = 1
	// HasherKeccak256 is legacy keccak-256 (Ethereum-family default).
	HasherKeccak256 HasherAlgo = 2
)

// Valid returns true for a member of the closed tag set.
func (a HasherAlgo) Valid() bool {
	return a == HasherBlake2 || a == HasherKeccak256
}

// String returns a human-readable representation.
func (a HasherAlgo) String() string {
	switch a {
	case HasherBlake2:
		return "blake2"
	case HasherKeccak256:
		return "keccak256"
	default:
		return fmt.Sprintf("unknown(%d)", uint8(a))
	}
}

// CryptoAlgo selects the signature scheme for a gateway's accounts.
// It is a closed tag set.
type CryptoAlgo uint8

const (
	CryptoEd25519 CryptoAlgo = 1
	CryptoSr25519 CryptoAlgo = 2
	CryptoEcdsa   CryptoAlgo = 3
)

// Valid returns true for a member of the closed tag set.
func (a CryptoAlgo) Valid() bool {
	return a == CryptoEd25519 || a == CryptoSr25519 || a == CryptoEcdsa
}

// String returns a human-readable representation.
func (a CryptoAlgo) String() string {
	switch a {
	case CryptoEd25519:
		return "ed25519"
	case CryptoSr25519:
		return "sr25519"
	case CryptoEcdsa:
		return "ecdsa"
	default:
		return fmt.Sprintf("unknown(%d)", uint8(a))
	}
}

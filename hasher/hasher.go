// Package hasher provides the default implementations of the hashing
// capability, one per member of the closed HasherAlgo tag set.
package hasher

import (
	"fmt"

	circuit "github.com/t3rn/go-circuit"
	"github.com/t3rn/go-circuit/types"

	ethcrypto "github.com/ethereum/go-ethereum/crypto"
	"golang.org/x/crypto/blake2b"
)

// Compile-time interface checks.
var (
	_ circuit.Hasher = Blake2{}
	_ circuit.Hasher = Keccak256{}
)

// New returns the hasher for the given algorithm.
func New(algo types.HasherAlgo) (circuit.Hasher, error) {
	switch algo {
	case types.HasherBlake2:
		return Blake2{}, nil
	case types.HasherKeccak256:
		return Keccak256{}, nil
	default:
		return nil, fmt.Errorf("hasher: %s is not a known hash algorithm", algo)
	}
}

// Blake2 computes blake2b-256 digests (Substrate-family default).
type Blake2 struct{}

func (Blake2) Algo() types.HasherAlgo { return types.HasherBlake2 }

func (Blake2) Hash(data []byte) types.Hash {
	return types.Hash(blake2b.Sum256(data))
}

// Keccak256 computes legacy keccak-256 digests (Ethereum-family
// default).
type Keccak256 struct{}

func (Keccak256) Algo() types.HasherAlgo { return types.HasherKeccak256 }

func (Keccak256) Hash(data []byte) types.Hash {
	var h types.Hash
	copy(h[:], ethcrypto.Keccak256(data))
	return h
}

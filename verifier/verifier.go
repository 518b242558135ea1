// Package verifier provides signature verification for the crypto
// schemes a gateway may declare in its ABI config.
package verifier

import (
	"crypto/ed25519"
	"fmt"

	"github.com/ChainSafe/go-schnorrkel"
	ethcrypto "github.com/ethereum/go-ethereum/crypto"

	circuit "github.com/t3rn/go-circuit"
	"github.com/t3rn/go-circuit/types"
)

// signingContext is the transcript label Substrate chains use for
// sr25519 signatures over extrinsic payloads.
var signingContext = []byte("substrate")

// New returns the verifier for the given scheme.
func New(algo types.CryptoAlgo) (circuit.SignatureVerifier, error) {
	switch algo {
	case types.CryptoEd25519:
		return Ed25519{}, nil
	case types.CryptoSr25519:
		return Sr25519{}, nil
	case types.CryptoEcdsa:
		return Ecdsa{}, nil
	default:
		return nil, fmt.Errorf("verifier: unsupported crypto algo %d", algo)
	}
}

// NewSet returns one verifier per supported scheme, keyed by algo.
func NewSet() map[types.CryptoAlgo]circuit.SignatureVerifier {
	return map[types.CryptoAlgo]circuit.SignatureVerifier{
		types.CryptoEd25519: Ed25519{},
		types.CryptoSr25519: Sr25519{},
		types.CryptoEcdsa:   Ecdsa{},
	}
}

// Ed25519 verifies ed25519 signatures over the raw message bytes.
type Ed25519 struct{}

var _ circuit.SignatureVerifier = Ed25519{}

func (Ed25519) Algo() types.CryptoAlgo { return types.CryptoEd25519 }

func (Ed25519) Verify(message, signature, publicKey []byte) (bool, error) {
	if len(publicKey) != ed25519.PublicKeySize {
		return false, fmt.Errorf("verifier: ed25519 public key must be %d bytes, got %d", ed25519.PublicKeySize, len(publicKey))
	}
	if len(signature) != ed25519.SignatureSize {
		return false, fmt.Errorf("verifier: ed25519 signature must be %d bytes, got %d", ed25519.SignatureSize, len(signature))
	}
	return ed25519.Verify(ed25519.PublicKey(publicKey), message, signature), nil
}

// Sr25519 verifies schnorrkel signatures under the substrate signing
// context, matching how Substrate runtimes verify extrinsics.
type Sr25519 struct{}

var _ circuit.SignatureVerifier = Sr25519{}

func (Sr25519) Algo() types.CryptoAlgo { return types.CryptoSr25519 }

func (Sr25519) Verify(message, signature, publicKey []byte) (bool, error) {
	if len(publicKey) != 32 {
		return false, fmt.Errorf("verifier: sr25519 public key must be 32 bytes, got %d", len(publicKey))
	}
	if len(signature) != 64 {
		return false, fmt.Errorf("verifier: sr25519 signature must be 64 bytes, got %d", len(signature))
	}

	var pubBytes [32]byte
	copy(pubBytes[:], publicKey)
	pub := &schnorrkel.PublicKey{}
	if err := pub.Decode(pubBytes); err != nil {
		return false, fmt.Errorf("verifier: decoding sr25519 public key: %w", err)
	}

	var sigBytes [64]byte
	copy(sigBytes[:], signature)
	sig := &schnorrkel.Signature{}
	if err := sig.Decode(sigBytes); err != nil {
		return false, fmt.Errorf("verifier: decoding sr25519 signature: %w", err)
	}

	transcript := schnorrkel.NewSigningContext(signingContext, message)
	return pub.Verify(sig, transcript)
}

// Ecdsa verifies secp256k1 signatures over the keccak256 digest of the
// message. Signatures may carry a trailing recovery byte, which is
// ignored. Public keys may be compressed (33 bytes) or uncompressed
// (65 bytes).
type Ecdsa struct{}

var _ circuit.SignatureVerifier = Ecdsa{}

func (Ecdsa) Algo() types.CryptoAlgo { return types.CryptoEcdsa }

func (Ecdsa) Verify(message, signature, publicKey []byte) (bool, error) {
	if len(publicKey) != 33 && len(publicKey) != 65 {
		return false, fmt.Errorf("verifier: ecdsa public key must be 33 or 65 bytes, got %d", len(publicKey))
	}
	switch len(signature) {
	case 64:
	case 65:
		signature = signature[:64]
	default:
		return false, fmt.Errorf("verifier: ecdsa signature must be 64 or 65 bytes, got %d", len(signature))
	}
	digest := ethcrypto.Keccak256(message)
	return ethcrypto.VerifySignature(publicKey, digest, signature), nil
}

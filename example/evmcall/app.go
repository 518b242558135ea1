// Package evmcall implements a minimal in-process gateway shaped like
// an EVM chain: 20-byte addresses, keccak256 hashing, and event-log
// evidence. Calls are pure; the only state is a per-contract call
// counter exposed through storage reads.
package evmcall

import (
	"bytes"
	"context"
	"encoding/binary"
	"fmt"
	"sync"

	circuit "github.com/t3rn/go-circuit"
	"github.com/t3rn/go-circuit/hasher"
	"github.com/t3rn/go-circuit/match"
	"github.com/t3rn/go-circuit/types"
)

// Compile-time interface check.
var _ circuit.Gateway = (*App)(nil)

const (
	ModuleName = "evm"
	MethodCall = "call"

	addressLen = 20
	wordLen    = 32
)

// GatewayID identifies this gateway in a registry.
var GatewayID = types.ChainID{'e', 'v', 'm', 'c'}

// EventCall is logged for every executed call.
var EventCall = types.EventSignature("Call(address,bytes32)")

// App is a minimal EVM-style call gateway.
type App struct {
	mu     sync.RWMutex
	h      circuit.Hasher
	height uint64
	calls  map[[addressLen]byte]uint64
}

// New creates a fresh gateway with no call history.
func New() *App {
	h, err := hasher.New(types.HasherKeccak256)
	if err != nil {
		panic(err) // keccak256 is always available
	}
	return &App{h: h, calls: make(map[[addressLen]byte]uint64)}
}

func (app *App) Describe(_ context.Context) (types.RegistryRecord, error) {
	return types.RegistryRecord{
		Pointer: types.GatewayPointer{
			ID:     GatewayID,
			Vendor: types.VendorEthereum,
			Type:   types.GatewayExternal,
		},
		Config: types.GatewayABIConfig{
			BlockNumberTypeSize: 8,
			HashSize:            32,
			AddressLength:       addressLen,
			ValueTypeSize:       wordLen,
			Decimals:            18,
			Hasher:              types.HasherKeccak256,
			Crypto:              types.CryptoEcdsa,
			Structs: []types.StructDecl{
				{
					// A call frame: contract address plus one input word.
					Name:    "CallFrame",
					Fields:  []types.FieldDecl{{Name: "to", Type: "address"}, {Name: "input", Type: "bytes32"}},
					Offsets: []uint32{addressLen, addressLen + wordLen},
				},
			},
		},
		Features: types.FeatureStorageReads | types.FeatureEventLogs |
			types.FeatureExtrinsics | types.FeatureRawOutput,
	}, nil
}

func (app *App) Execute(_ context.Context, msg types.CircuitOutboundMessage) (types.GatewayResponse, error) {
	app.mu.Lock()
	defer app.mu.Unlock()

	if msg.ModuleName != ModuleName || msg.MethodName != MethodCall {
		return types.GatewayResponse{}, fmt.Errorf("evmcall: unknown call %s.%s", msg.ModuleName, msg.MethodName)
	}
	contract, input, err := callArgs(msg.Arguments)
	if err != nil {
		return types.GatewayResponse{}, err
	}

	app.calls[contract]++
	app.height++

	output := CallDigest(app.h, contract[:], input)
	resp := types.GatewayResponse{Events: []types.EventSignature{EventCall}}

	for _, e := range msg.ExpectedOutput {
		switch e.Kind() {
		case types.ExpectationStorage:
			for _, key := range e.Storage.Keys {
				resp.Storage = append(resp.Storage, app.entryFor(key))
			}
		case types.ExpectationExtrinsic:
			resp.Inclusion = &types.ExtrinsicInclusion{BlockHeight: app.height, Index: 0}
		case types.ExpectationOutput:
			out := output.Clone()
			resp.Output = &out
		}
	}

	for _, trie := range match.SelectTries(msg.ExpectedOutput) {
		resp.Proofs = append(resp.Proofs, app.proofFor(trie))
	}
	return resp, nil
}

func (app *App) entryFor(key types.Bytes) types.StorageEntry {
	for contract, count := range app.calls {
		if bytes.Equal(key, CallCountKey(app.h, contract[:])) {
			v := encodeCount(count)
			return types.StorageEntry{Key: key.Clone(), Value: &v}
		}
	}
	return types.StorageEntry{Key: key.Clone()}
}

func (app *App) proofFor(trie types.ProofTriePointer) types.InclusionProof {
	seed := make([]byte, 9)
	seed[0] = byte(trie)
	binary.BigEndian.PutUint64(seed[1:], app.height)
	return types.InclusionProof{
		Trie:  trie,
		Root:  app.h.Hash(seed),
		Nodes: []types.Bytes{seed},
	}
}

// Calls returns the committed call count of a contract.
func (app *App) Calls(contract []byte) uint64 {
	app.mu.RLock()
	defer app.mu.RUnlock()
	var key [addressLen]byte
	copy(key[:], contract)
	return app.calls[key]
}

func callArgs(args []types.Bytes) ([addressLen]byte, types.Bytes, error) {
	var contract [addressLen]byte
	if len(args) != 2 {
		return contract, nil, fmt.Errorf("evmcall: expected 2 arguments, got %d", len(args))
	}
	if len(args[0]) != addressLen {
		return contract, nil, fmt.Errorf("evmcall: contract must be %d bytes, got %d", addressLen, len(args[0]))
	}
	if len(args[1]) != wordLen {
		return contract, nil, fmt.Errorf("evmcall: input must be %d bytes, got %d", wordLen, len(args[1]))
	}
	copy(contract[:], args[0])
	return contract, args[1], nil
}

// CallDigest is the deterministic output of a call:
// keccak256(contract || input).
func CallDigest(h circuit.Hasher, contract, input []byte) types.Bytes {
	preimage := append(append([]byte{}, contract...), input...)
	return h.Hash(preimage).Bytes()
}

// CallCountKey derives the storage slot of a contract's call counter:
// keccak256("calls:" || contract).
func CallCountKey(h circuit.Hasher, contract []byte) types.Bytes {
	preimage := append([]byte("calls:"), contract...)
	return h.Hash(preimage).Bytes()
}

func encodeCount(n uint64) types.Bytes {
	buf := make(types.Bytes, wordLen)
	binary.BigEndian.PutUint64(buf[24:], n)
	return buf
}

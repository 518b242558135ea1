// Package transfer implements a minimal in-process gateway shaped
// like a Substrate balances pallet. It demonstrates the Gateway
// interface with storage, event, and extrinsic evidence.
//
// Argument conventions follow the gateway's ABI config: 32-byte
// accounts and 16-byte big-endian values.
package transfer

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
	// ModuleName is the only module this gateway serves.
	ModuleName = "balances"

	MethodTransfer   = "transfer"
	MethodSetBalance = "set_balance"

	addressLen = 32
	valueLen   = 16
)

// GatewayID identifies this gateway in a registry.
var GatewayID = types.ChainID{'t', 'r', 'a', 'n'}

// Event signatures emitted by the pallet.
var (
	EventTransfer   = types.EventSignature("balances.Transfer")
	EventBalanceSet = types.EventSignature("balances.BalanceSet")
)

// App is a minimal balances gateway.
type App struct {
	mu       sync.RWMutex
	h        circuit.Hasher
	height   uint64
	balances map[[addressLen]byte]uint64
}

// New creates a fresh gateway with no balances.
func New() *App {
	h, err := hasher.New(types.HasherBlake2)
	if err != nil {
		panic(err) // blake2 is always available
	}
	return &App{h: h, balances: make(map[[addressLen]byte]uint64)}
}

func (app *App) Describe(_ context.Context) (types.RegistryRecord, error) {
	return types.RegistryRecord{
		Pointer: types.GatewayPointer{
			ID:     GatewayID,
			Vendor: types.VendorSubstrate,
			Type:   types.GatewayInternal,
		},
		Config: types.GatewayABIConfig{
			BlockNumberTypeSize: 4,
			HashSize:            32,
			AddressLength:       addressLen,
			ValueTypeSize:       valueLen,
			Decimals:            12,
			Hasher:              types.HasherBlake2,
			Crypto:              types.CryptoSr25519,
		},
		Features: types.FeatureStorageReads | types.FeatureEventLogs |
			types.FeatureExtrinsics | types.FeatureRawOutput,
	}, nil
}

func (app *App) Execute(_ context.Context, msg types.CircuitOutboundMessage) (types.GatewayResponse, error) {
	app.mu.Lock()
	defer app.mu.Unlock()

	if msg.ModuleName != ModuleName {
		return types.GatewayResponse{}, fmt.Errorf("transfer: unknown module %q", msg.ModuleName)
	}

	var (
		events  []types.EventSignature
		touched [addressLen]byte
	)
	switch msg.MethodName {
	case MethodSetBalance:
		account, amount, err := callArgs(msg.Arguments)
		if err != nil {
			return types.GatewayResponse{}, err
		}
		app.balances[account] = amount
		events = append(events, EventBalanceSet)
		touched = account

	case MethodTransfer:
		if msg.Sender == nil || len(*msg.Sender) != addressLen {
			return types.GatewayResponse{}, fmt.Errorf("transfer: %s requires a %d-byte sender", MethodTransfer, addressLen)
		}
		var from [addressLen]byte
		copy(from[:], *msg.Sender)
		to, amount, err := callArgs(msg.Arguments)
		if err != nil {
			return types.GatewayResponse{}, err
		}
		if app.balances[from] < amount {
			return types.GatewayResponse{}, fmt.Errorf("transfer: account has %d, needs %d", app.balances[from], amount)
		}
		app.balances[from] -= amount
		app.balances[to] += amount
		events = append(events, EventTransfer)
		touched = to

	default:
		return types.GatewayResponse{}, fmt.Errorf("transfer: unknown method %q", msg.MethodName)
	}

	app.height++
	return app.respond(msg, events, touched), nil
}

// respond assembles the evidence the message expects, plus one proof
// per trie its expectations select.
func (app *App) respond(msg types.CircuitOutboundMessage, events []types.EventSignature, touched [addressLen]byte) types.GatewayResponse {
	resp := types.GatewayResponse{Events: events}

	for _, e := range msg.ExpectedOutput {
		switch e.Kind() {
		case types.ExpectationStorage:
			for _, key := range e.Storage.Keys {
				resp.Storage = append(resp.Storage, app.entryFor(key))
			}
		case types.ExpectationExtrinsic:
			resp.Inclusion = &types.ExtrinsicInclusion{BlockHeight: app.height, Index: 0}
		case types.ExpectationOutput:
			out := EncodeValue(app.balances[touched])
			resp.Output = &out
		}
	}

	for _, trie := range match.SelectTries(msg.ExpectedOutput) {
		resp.Proofs = append(resp.Proofs, app.proofFor(trie))
	}
	return resp
}

// entryFor resolves one storage key. Only balance keys of known
// accounts resolve; everything else reads as absent.
func (app *App) entryFor(key types.Bytes) types.StorageEntry {
	for account, balance := range app.balances {
		if bytes.Equal(key, StorageKey(app.h, account[:])) {
			v := EncodeValue(balance)
			return types.StorageEntry{Key: key.Clone(), Value: &v}
		}
	}
	return types.StorageEntry{Key: key.Clone()}
}

// proofFor builds a placeholder proof whose root commits to the trie
// and the current height. A production gateway would return a real
// trie proof here.
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

// Balance returns the committed balance of an account.
func (app *App) Balance(account []byte) uint64 {
	app.mu.RLock()
	defer app.mu.RUnlock()
	var key [addressLen]byte
	copy(key[:], account)
	return app.balances[key]
}

func callArgs(args []types.Bytes) ([addressLen]byte, uint64, error) {
	var account [addressLen]byte
	if len(args) != 2 {
		return account, 0, fmt.Errorf("transfer: expected 2 arguments, got %d", len(args))
	}
	if len(args[0]) != addressLen {
		return account, 0, fmt.Errorf("transfer: account must be %d bytes, got %d", addressLen, len(args[0]))
	}
	copy(account[:], args[0])
	amount, err := DecodeValue(args[1])
	if err != nil {
		return account, 0, err
	}
	return account, amount, nil
}

// StorageKey derives the storage key of an account's balance the way
// the pallet lays out its trie: blake2("balances:" || account).
func StorageKey(h circuit.Hasher, account []byte) types.Bytes {
	preimage := append([]byte("balances:"), account...)
	return h.Hash(preimage).Bytes()
}

// EncodeValue encodes an amount as a 16-byte big-endian value.
func EncodeValue(amount uint64) types.Bytes {
	buf := make([]byte, valueLen)
	binary.BigEndian.PutUint64(buf[8:], amount)
	return buf
}

// DecodeValue parses a 16-byte big-endian value. Amounts above the
// uint64 range are rejected.
func DecodeValue(v types.Bytes) (uint64, error) {
	if len(v) != valueLen {
		return 0, fmt.Errorf("transfer: value must be %d bytes, got %d", valueLen, len(v))
	}
	for _, b := range v[:8] {
		if b != 0 {
			return 0, fmt.Errorf("transfer: value exceeds uint64 range")
		}
	}
	return binary.BigEndian.Uint64(v[8:]), nil
}

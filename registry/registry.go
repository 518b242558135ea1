// Package registry holds the gateway ABI descriptors.
//
// The registry is shared, read-mostly state: registration is rare and
// serialized, lookups and argument validation proceed in parallel.
// Records are append-only for the registry's lifetime, with no
// update-in-place, so any holder of a GatewayPointer may treat its
// config as permanently valid.
package registry

import (
	"fmt"
	"sync"

	circuit "github.com/t3rn/go-circuit"
	"github.com/t3rn/go-circuit/types"
)

// Store persists registry records across restarts. Implementations
// must preserve the registry invariants on reload: LoadAll returns
// each record at most once, and records it returns must have been
// accepted by a Put.
type Store interface {
	// LoadAll returns every persisted record.
	LoadAll() ([]types.RegistryRecord, error)

	// Put persists one record. Called under the registry's write lock,
	// before the in-memory insert; if Put fails the registration fails
	// as a whole and no state changes.
	Put(rec types.RegistryRecord) error

	// Close releases the store.
	Close() error
}

type entry struct {
	record types.RegistryRecord
	// Accepted argument widths, precomputed from the immutable config.
	widths []uint32
}

// Registry is the gateway ABI descriptor registry.
type Registry struct {
	mu      sync.RWMutex
	entries map[types.ChainID]entry
	store   Store
}

// New creates an empty registry with no persistence.
func New() *Registry {
	return &Registry{entries: make(map[types.ChainID]entry)}
}

// Open creates a registry backed by the given store and loads every
// persisted record through the normal registration checks, so a
// corrupted or duplicated record on disk is rejected rather than
// silently adopted.
func Open(store Store) (*Registry, error) {
	r := &Registry{
		entries: make(map[types.ChainID]entry),
		store:   store,
	}
	records, err := store.LoadAll()
	if err != nil {
		return nil, fmt.Errorf("registry: load: %w", err)
	}
	for _, rec := range records {
		if err := r.insert(rec, false); err != nil {
			return nil, fmt.Errorf("registry: load: %w", err)
		}
	}
	return r, nil
}

// Register adds a gateway. It fails with DuplicateGatewayError if the
// pointer's id is already taken and with InvalidConfigError if the
// pointer or config is malformed. Registration is all-or-nothing: on
// error no state, in memory or in the store, has changed.
func (r *Registry) Register(pointer types.GatewayPointer, config types.GatewayABIConfig) error {
	return r.insert(types.RegistryRecord{Pointer: pointer, Config: config}, true)
}

// RegisterRecord adds a gateway from a full record (pointer, config,
// declared features).
func (r *Registry) RegisterRecord(rec types.RegistryRecord) error {
	return r.insert(rec, true)
}

func (r *Registry) insert(rec types.RegistryRecord, persist bool) error {
	if err := rec.Pointer.Validate(); err != nil {
		return &circuit.InvalidConfigError{ID: rec.Pointer.ID, Field: "pointer", Reason: err.Error()}
	}
	if err := rec.Config.Validate(); err != nil {
		return &circuit.InvalidConfigError{ID: rec.Pointer.ID, Field: "config", Reason: err.Error()}
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, taken := r.entries[rec.Pointer.ID]; taken {
		return &circuit.DuplicateGatewayError{ID: rec.Pointer.ID}
	}
	if persist && r.store != nil {
		if err := r.store.Put(rec); err != nil {
			return fmt.Errorf("registry: persist %s: %w", rec.Pointer.ID, err)
		}
	}
	r.entries[rec.Pointer.ID] = entry{
		record: rec,
		widths: rec.Config.AcceptedWidths(),
	}
	return nil
}

// Lookup returns the ABI config registered for id. The returned config
// is immutable; callers must not modify its slices.
func (r *Registry) Lookup(id types.ChainID) (types.GatewayABIConfig, error) {
	r.mu.RLock()
	e, ok := r.entries[id]
	r.mu.RUnlock()
	if !ok {
		return types.GatewayABIConfig{}, &circuit.UnknownGatewayError{ID: id}
	}
	return e.record.Config, nil
}

// Pointer returns the gateway pointer registered for id.
func (r *Registry) Pointer(id types.ChainID) (types.GatewayPointer, error) {
	r.mu.RLock()
	e, ok := r.entries[id]
	r.mu.RUnlock()
	if !ok {
		return types.GatewayPointer{}, &circuit.UnknownGatewayError{ID: id}
	}
	return e.record.Pointer, nil
}

// Record returns the full registry record for id.
func (r *Registry) Record(id types.ChainID) (types.RegistryRecord, error) {
	r.mu.RLock()
	e, ok := r.entries[id]
	r.mu.RUnlock()
	if !ok {
		return types.RegistryRecord{}, &circuit.UnknownGatewayError{ID: id}
	}
	return e.record, nil
}

// ValidateArgument checks one encoded call argument against the
// gateway's declared widths: the argument's byte length must match one
// of the primitive widths or a declared struct's total encoded size.
func (r *Registry) ValidateArgument(id types.ChainID, argIndex int, arg []byte) error {
	r.mu.RLock()
	e, ok := r.entries[id]
	r.mu.RUnlock()
	if !ok {
		return &circuit.UnknownGatewayError{ID: id}
	}
	got := uint32(len(arg))
	for _, w := range e.widths {
		if got == w {
			return nil
		}
	}
	return &circuit.ArgumentWidthMismatchError{
		ID:       id,
		Index:    argIndex,
		Got:      len(arg),
		Accepted: e.widths,
	}
}

// Len returns the number of registered gateways.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries)
}

// IDs returns the registered chain identifiers in unspecified order.
func (r *Registry) IDs() []types.ChainID {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ids := make([]types.ChainID, 0, len(r.entries))
	for id := range r.entries {
		ids = append(ids, id)
	}
	return ids
}

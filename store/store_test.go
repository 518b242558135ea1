package store_test

import (
	"testing"

	circuit "github.com/t3rn/go-circuit"
	"github.com/t3rn/go-circuit/registry"
	"github.com/t3rn/go-circuit/store"
	"github.com/t3rn/go-circuit/types"
)

func record(id string, decimals uint16) types.RegistryRecord {
	var cid types.ChainID
	copy(cid[:], id)
	return types.RegistryRecord{
		Pointer: types.GatewayPointer{ID: cid, Vendor: types.VendorSubstrate, Type: types.GatewayExternal},
		Config: types.GatewayABIConfig{
			BlockNumberTypeSize: 4,
			HashSize:            32,
			AddressLength:       32,
			ValueTypeSize:       16,
			Decimals:            decimals,
			Hasher:              types.HasherBlake2,
			Crypto:              types.CryptoSr25519,
		},
		Features: types.FeatureStorageReads | types.FeatureExtrinsics,
	}
}

func TestStore_PutLoadAll(t *testing.T) {
	s, err := store.NewInMemory()
	if err != nil {
		t.Fatalf("NewInMemory: %v", err)
	}
	defer s.Close()

	if err := s.Put(record("roco", 12)); err != nil {
		t.Fatalf("Put: %v", err)
	}
	if err := s.Put(record("ksma", 12)); err != nil {
		t.Fatalf("Put: %v", err)
	}

	records, err := s.LoadAll()
	if err != nil {
		t.Fatalf("LoadAll: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}
	for _, rec := range records {
		if rec.Config.Decimals != 12 || !rec.Features.Has(types.FeatureStorageReads) {
			t.Fatalf("record came back mangled: %+v", rec)
		}
	}
}

func TestStore_PutRejectsOverwrite(t *testing.T) {
	s, err := store.NewInMemory()
	if err != nil {
		t.Fatalf("NewInMemory: %v", err)
	}
	defer s.Close()

	if err := s.Put(record("roco", 12)); err != nil {
		t.Fatalf("Put: %v", err)
	}
	if err := s.Put(record("roco", 18)); err == nil {
		t.Fatal("second Put for the same id accepted")
	}
}

func TestRegistry_OpenFromStore(t *testing.T) {
	s, err := store.NewInMemory()
	if err != nil {
		t.Fatalf("NewInMemory: %v", err)
	}
	defer s.Close()

	// First process: register through a store-backed registry.
	r, err := registry.Open(s)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	rec := record("roco", 12)
	if err := r.RegisterRecord(rec); err != nil {
		t.Fatalf("RegisterRecord: %v", err)
	}

	// Restart: a fresh registry over the same store sees the gateway.
	r2, err := registry.Open(s)
	if err != nil {
		t.Fatalf("Open after restart: %v", err)
	}
	got, err := r2.Lookup(rec.Pointer.ID)
	if err != nil {
		t.Fatalf("Lookup after restart: %v", err)
	}
	if got.Decimals != 12 {
		t.Fatalf("config lost across restart: %+v", got)
	}

	// Registering the persisted id again still fails.
	if err := r2.RegisterRecord(rec); !circuit.IsDuplicateGateway(err) {
		t.Fatalf("expected DuplicateGatewayError, got %v", err)
	}
}

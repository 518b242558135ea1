package types

import (
	"fmt"
	"strings"
)

// GatewayVendor determines a gateway's trie semantics and its address
// and encoding conventions.
type GatewayVendor uint8

const (
	VendorSubstrate GatewayVendor = 1
	VendorEthereum  GatewayVendor = 2
)

// Valid returns true for a member of the closed tag set.
func (v GatewayVendor) Valid() bool {
	return v == VendorSubstrate || v == VendorEthereum
}

// String returns a human-readable representation.
func (v GatewayVendor) String() string {
	switch v {
	case VendorSubstrate:
		return "substrate"
	case VendorEthereum:
		return "ethereum"
	default:
		return fmt.Sprintf("unknown(%d)", uint8(v))
	}
}

// GatewayType distinguishes gateways inside the local routing domain
// from foreign chains reached only through proofs.
type GatewayType uint8

const (
	GatewayInternal GatewayType = 1
	GatewayExternal GatewayType = 2
)

// Valid returns true for a member of the closed tag set.
func (t GatewayType) Valid() bool {
	return t == GatewayInternal || t == GatewayExternal
}

// String returns a human-readable representation.
func (t GatewayType) String() string {
	switch t {
	case GatewayInternal:
		return "internal"
	case GatewayExternal:
		return "external"
	default:
		return fmt.Sprintf("unknown(%d)", uint8(t))
	}
}

// GatewayPointer identifies a gateway, its vendor family, and whether
// it is internal or external to the routing domain. Identity is the
// ID; a pointer is immutable once registered.
type GatewayPointer struct {
	ID     ChainID       `cramberry:"1"`
	Vendor GatewayVendor `cramberry:"2"`
	Type   GatewayType   `cramberry:"3"`
}

// Validate checks structural well-formedness. It returns a plain
// descriptive error; the registry wraps it into its taxonomy.
func (p GatewayPointer) Validate() error {
	if !p.Vendor.Valid() {
		return fmt.Errorf("vendor %s is not a known gateway vendor", p.Vendor)
	}
	if !p.Type.Valid() {
		return fmt.Errorf("gateway type %s is not a known gateway type", p.Type)
	}
	return nil
}

// GatewayFeatures is a bitfield declaring which response shapes a
// gateway can produce. It is advisory metadata carried in a
// RegistryRecord and reported by Gateway.Describe; the builder's
// contract does not depend on it.
type GatewayFeatures uint8

const (
	FeatureStorageReads GatewayFeatures = 1 << iota // 0b0001
	FeatureEventLogs                                // 0b0010
	FeatureExtrinsics                               // 0b0100
	FeatureRawOutput                                // 0b1000
)

// Has returns true if all bits in f are set.
func (g GatewayFeatures) Has(f GatewayFeatures) bool {
	return g&f == f
}

// FeatureFor maps an expectation kind to the feature a gateway needs
// in order to satisfy it.
func FeatureFor(kind ExpectationKind) GatewayFeatures {
	switch kind {
	case ExpectationStorage:
		return FeatureStorageReads
	case ExpectationEvents:
		return FeatureEventLogs
	case ExpectationExtrinsic:
		return FeatureExtrinsics
	case ExpectationOutput:
		return FeatureRawOutput
	default:
		return 0
	}
}

// String returns a human-readable representation.
func (g GatewayFeatures) String() string {
	var feats []string
	if g.Has(FeatureStorageReads) {
		feats = append(feats, "StorageReads")
	}
	if g.Has(FeatureEventLogs) {
		feats = append(feats, "EventLogs")
	}
	if g.Has(FeatureExtrinsics) {
		feats = append(feats, "Extrinsics")
	}
	if g.Has(FeatureRawOutput) {
		feats = append(feats, "RawOutput")
	}
	if len(feats) == 0 {
		return "none"
	}
	return strings.Join(feats, "|")
}

// RegistryRecord pairs a gateway pointer with its ABI config and
// declared features. It is the unit of registration and persistence.
type RegistryRecord struct {
	Pointer  GatewayPointer   `cramberry:"1"`
	Config   GatewayABIConfig `cramberry:"2"`
	Features GatewayFeatures  `cramberry:"3"`
}

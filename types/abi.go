package types

import (
	"fmt"
	"sort"
)

// FieldDecl is one named, typed parameter of a struct declaration.
// The type is the gateway's native type tag (e.g. "address",
// "balance"); this layer treats it as opaque.
type FieldDecl struct {
	Name string `cramberry:"1"`
	Type string `cramberry:"2"`
}

// StructDecl describes the layout of one structured argument type on
// a gateway.
//
// Offsets are cumulative byte offsets from the start of the encoded
// struct, one per field, marking where each field ends; the final
// offset is the struct's total encoded size. The sequence must be
// non-decreasing and length-matched to Fields.
type StructDecl struct {
	Name    string      `cramberry:"1"`
	Fields  []FieldDecl `cramberry:"2"`
	Offsets []uint32    `cramberry:"3"`
}

// Size returns the total encoded size of the struct in bytes.
func (s StructDecl) Size() uint32 {
	if len(s.Offsets) == 0 {
		return 0
	}
	return s.Offsets[len(s.Offsets)-1]
}

// Validate checks the offsets invariants. It returns a plain
// descriptive error; the registry wraps it into its taxonomy.
func (s StructDecl) Validate() error {
	if s.Name == "" {
		return fmt.Errorf("struct declaration has no name")
	}
	if len(s.Offsets) != len(s.Fields) {
		return fmt.Errorf("struct %q declares %d fields but %d offsets",
			s.Name, len(s.Fields), len(s.Offsets))
	}
	var prev uint32
	for i, off := range s.Offsets {
		if off < prev {
			return fmt.Errorf("struct %q offset %d decreases (%d after %d)",
				s.Name, i, off, prev)
		}
		prev = off
	}
	return nil
}

// GatewayABIConfig describes the wire-level shape of one gateway:
// field widths, hash algorithm, signature scheme, and struct layouts.
//
// All width fields are byte counts. A config is owned exclusively by
// its GatewayPointer, created at registration, and immutable
// thereafter: config changes require registering a new pointer.
type GatewayABIConfig struct {
	BlockNumberTypeSize uint16       `cramberry:"1"`
	HashSize            uint16       `cramberry:"2"`
	AddressLength       uint16       `cramberry:"3"`
	ValueTypeSize       uint16       `cramberry:"4"`
	Decimals            uint16       `cramberry:"5"`
	Hasher              HasherAlgo   `cramberry:"6"`
	Crypto              CryptoAlgo   `cramberry:"7"`
	Structs             []StructDecl `cramberry:"8"`
}

// Validate checks the config invariants: every width positive, algos
// members of their tag sets, struct declarations well-formed with
// unique names. It returns a plain descriptive error naming the
// offending field; the registry wraps it into its taxonomy.
func (c GatewayABIConfig) Validate() error {
	widths := []struct {
		name  string
		value uint16
	}{
		{"block_number_type_size", c.BlockNumberTypeSize},
		{"hash_size", c.HashSize},
		{"address_length", c.AddressLength},
		{"value_type_size", c.ValueTypeSize},
		{"decimals", c.Decimals},
	}
	for _, w := range widths {
		if w.value == 0 {
			return fmt.Errorf("%s must be positive", w.name)
		}
	}
	if !c.Hasher.Valid() {
		return fmt.Errorf("hasher: %s is not a known hash algorithm", c.Hasher)
	}
	if !c.Crypto.Valid() {
		return fmt.Errorf("crypto: %s is not a known signature scheme", c.Crypto)
	}
	seen := make(map[string]struct{}, len(c.Structs))
	for _, s := range c.Structs {
		if err := s.Validate(); err != nil {
			return err
		}
		if _, dup := seen[s.Name]; dup {
			return fmt.Errorf("struct %q declared twice", s.Name)
		}
		seen[s.Name] = struct{}{}
	}
	return nil
}

// AcceptedWidths returns the sorted set of argument byte lengths this
// config admits: the four primitive widths plus every declared
// struct's total encoded size.
func (c GatewayABIConfig) AcceptedWidths() []uint32 {
	set := map[uint32]struct{}{
		uint32(c.BlockNumberTypeSize): {},
		uint32(c.HashSize):            {},
		uint32(c.AddressLength):       {},
		uint32(c.ValueTypeSize):       {},
	}
	for _, s := range c.Structs {
		set[s.Size()] = struct{}{}
	}
	widths := make([]uint32, 0, len(set))
	for w := range set {
		widths = append(widths, w)
	}
	sort.Slice(widths, func(i, j int) bool { return widths[i] < widths[j] })
	return widths
}

// Struct returns the declaration with the given name, if any.
func (c GatewayABIConfig) Struct(name string) (StructDecl, bool) {
	for _, s := range c.Structs {
		if s.Name == name {
			return s, true
		}
	}
	return StructDecl{}, false
}

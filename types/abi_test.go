package types_test

import (
	"strings"
	"testing"

	"github.com/t3rn/go-circuit/types"
)

func validConfig() types.GatewayABIConfig {
	return types.GatewayABIConfig{
		BlockNumberTypeSize: 4,
		HashSize:            32,
		AddressLength:       32,
		ValueTypeSize:       16,
		Decimals:            12,
		Hasher:              types.HasherBlake2,
		Crypto:              types.CryptoSr25519,
		Structs: []types.StructDecl{
			{
				Name: "transfer",
				Fields: []types.FieldDecl{
					{Name: "to", Type: "address"},
					{Name: "value", Type: "balance"},
				},
				Offsets: []uint32{32, 48},
			},
		},
	}
}

func TestGatewayABIConfig_Validate_OK(t *testing.T) {
	if err := validConfig().Validate(); err != nil {
		t.Fatalf("valid config rejected: %v", err)
	}
}

func TestGatewayABIConfig_Validate_ZeroWidth(t *testing.T) {
	c := validConfig()
	c.AddressLength = 0
	err := c.Validate()
	if err == nil {
		t.Fatal("zero address_length accepted")
	}
	if !strings.Contains(err.Error(), "address_length") {
		t.Fatalf("error does not name the offending field: %v", err)
	}
}

func TestGatewayABIConfig_Validate_UnknownAlgos(t *testing.T) {
	c := validConfig()
	c.Hasher = 0
	if c.Validate() == nil {
		t.Fatal("unset hasher accepted")
	}

	c = validConfig()
	c.Crypto = 99
	if c.Validate() == nil {
		t.Fatal("unknown crypto accepted")
	}
}

func TestStructDecl_Validate_OffsetsLengthMismatch(t *testing.T) {
	c := validConfig()
	c.Structs[0].Offsets = []uint32{32}
	err := c.Validate()
	if err == nil {
		t.Fatal("offsets/fields length mismatch accepted")
	}
	if !strings.Contains(err.Error(), "transfer") {
		t.Fatalf("error does not name the offending struct: %v", err)
	}
}

func TestStructDecl_Validate_DecreasingOffsets(t *testing.T) {
	c := validConfig()
	c.Structs[0].Offsets = []uint32{48, 32}
	if c.Validate() == nil {
		t.Fatal("decreasing offsets accepted")
	}
}

func TestGatewayABIConfig_Validate_DuplicateStructName(t *testing.T) {
	c := validConfig()
	c.Structs = append(c.Structs, c.Structs[0])
	err := c.Validate()
	if err == nil {
		t.Fatal("duplicate struct name accepted")
	}
	if !strings.Contains(err.Error(), "twice") {
		t.Fatalf("unexpected reason: %v", err)
	}
}

func TestGatewayABIConfig_AcceptedWidths(t *testing.T) {
	c := validConfig()
	widths := c.AcceptedWidths()
	// 4, 16, 32 (hash and address collapse), 48 (struct size).
	want := []uint32{4, 16, 32, 48}
	if len(widths) != len(want) {
		t.Fatalf("expected %v, got %v", want, widths)
	}
	for i := range want {
		if widths[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, widths)
		}
	}
}

func TestStructDecl_Size(t *testing.T) {
	s := types.StructDecl{Name: "empty"}
	if s.Size() != 0 {
		t.Fatalf("empty struct size: %d", s.Size())
	}
	s = types.StructDecl{
		Name:    "pair",
		Fields:  []types.FieldDecl{{Name: "a", Type: "hash"}, {Name: "b", Type: "hash"}},
		Offsets: []uint32{32, 64},
	}
	if s.Size() != 64 {
		t.Fatalf("expected size 64, got %d", s.Size())
	}
}

func TestChainID_String(t *testing.T) {
	if got := (types.ChainID{'r', 'o', 'c', 'o'}).String(); got != "roco" {
		t.Fatalf("mnemonic id printed as %q", got)
	}
	if got := (types.ChainID{0x00, 0x01, 0x02, 0x03}).String(); got != "0x00010203" {
		t.Fatalf("binary id printed as %q", got)
	}
}

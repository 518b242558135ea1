package hasher_test

import (
	"encoding/hex"
	"testing"

	"github.com/t3rn/go-circuit/hasher"
	"github.com/t3rn/go-circuit/types"
)

func TestNew_CoversClosedTagSet(t *testing.T) {
	for _, algo := range []types.HasherAlgo{types.HasherBlake2, types.HasherKeccak256} {
		h, err := hasher.New(algo)
		if err != nil {
			t.Fatalf("New(%s): %v", algo, err)
		}
		if h.Algo() != algo {
			t.Fatalf("New(%s) reports algo %s", algo, h.Algo())
		}
	}
	if _, err := hasher.New(0); err == nil {
		t.Fatal("unknown algo accepted")
	}
}

func TestBlake2_KnownDigest(t *testing.T) {
	// blake2b-256 of the empty string.
	want := "0e5751c026e543b2e8ab2eb06099daa1d1e5df47778f7787faab45cdf12fe3a8"
	got := hex.EncodeToString((hasher.Blake2{}).Hash(nil).Bytes())
	if got != want {
		t.Fatalf("blake2b-256(\"\") = %s, want %s", got, want)
	}
}

func TestKeccak256_KnownDigest(t *testing.T) {
	// keccak-256 of the empty string.
	want := "c5d2460186f7233c927e7db2dcc703c0e500b653ca82273b7bfad8045d85a470"
	got := hex.EncodeToString((hasher.Keccak256{}).Hash(nil).Bytes())
	if got != want {
		t.Fatalf("keccak256(\"\") = %s, want %s", got, want)
	}
}

func TestHashers_Deterministic(t *testing.T) {
	msg := []byte("circuit outbound message")
	b := hasher.Blake2{}
	k := hasher.Keccak256{}
	if b.Hash(msg) != b.Hash(msg) || k.Hash(msg) != k.Hash(msg) {
		t.Fatal("hashing is not deterministic")
	}
	if b.Hash(msg) == k.Hash(msg) {
		t.Fatal("distinct algorithms produced the same digest")
	}
}

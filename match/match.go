// Package match judges gateway responses against the expected outputs
// of the message that produced them.
//
// Matching is pure and deterministic. Entries are judged in order and
// the first unsatisfied one fails the whole response; its index and
// kind are reported through ExpectationMismatchError.
package match

import (
	"bytes"
	"fmt"
	"strconv"

	circuit "github.com/t3rn/go-circuit"
	"github.com/t3rn/go-circuit/types"
)

// Match reports whether the response satisfies every expected output
// entry. It returns nil on success and an ExpectationMismatchError
// naming the first failing entry otherwise.
//
// Storage entries in the response pair positionally with the keys of
// the message's storage expectations, in message order. Events are
// consumed as a multiset: each expected signature claims one distinct
// occurrence, in any order.
func Match(expected []types.GatewayExpectedOutput, resp types.GatewayResponse) error {
	// Cursor over the response's storage entries, shared by all
	// storage expectations of the message.
	storageAt := 0
	consumed := make([]bool, len(resp.Events))

	for i, e := range expected {
		var err error
		switch e.Kind() {
		case types.ExpectationStorage:
			err = matchStorage(*e.Storage, resp.Storage, &storageAt)
		case types.ExpectationEvents:
			err = matchEvents(*e.Events, resp.Events, consumed)
		case types.ExpectationExtrinsic:
			err = matchExtrinsic(*e.Extrinsic, resp.Inclusion)
		case types.ExpectationOutput:
			err = matchOutput(*e.Output, resp.Output)
		default:
			return &circuit.ExpectationMismatchError{
				Index: i, Kind: e.Kind(), Reason: "entry holds no variant",
			}
		}
		if err != nil {
			return &circuit.ExpectationMismatchError{
				Index: i, Kind: e.Kind(), Reason: "not satisfied", Err: err,
			}
		}
	}
	return nil
}

func matchStorage(e types.StorageExpectation, entries []types.StorageEntry, at *int) error {
	for i, key := range e.Keys {
		if *at >= len(entries) {
			return fmt.Errorf("key %d (%s): response has no entry for it", i, key)
		}
		got := entries[*at]
		*at++

		if !bytes.Equal(got.Key, key) {
			return fmt.Errorf("key %d: expected %s, response answers %s", i, key, got.Key)
		}
		want := e.Values[i]
		switch {
		case want == nil && got.Value != nil:
			return fmt.Errorf("key %d (%s): expected absent, response holds %s", i, key, got.Value)
		case want != nil && got.Value == nil:
			return fmt.Errorf("key %d (%s): expected %s, absent in response", i, key, want)
		case want != nil && !bytes.Equal(*got.Value, *want):
			return fmt.Errorf("key %d (%s): expected %s, response holds %s", i, key, want, got.Value)
		}
	}
	return nil
}

func matchEvents(e types.EventsExpectation, events []types.EventSignature, consumed []bool) error {
	for i, want := range e.Signatures {
		found := false
		for j, got := range events {
			if consumed[j] || !bytes.Equal(got, want) {
				continue
			}
			consumed[j] = true
			found = true
			break
		}
		if !found {
			return &circuit.MissingEventError{SignatureIndex: i, Signature: want}
		}
	}
	return nil
}

func matchExtrinsic(e types.ExtrinsicExpectation, inc *types.ExtrinsicInclusion) error {
	if inc == nil {
		return fmt.Errorf("response reports no extrinsic inclusion")
	}
	if e.BlockHeight != nil && inc.BlockHeight != *e.BlockHeight {
		return fmt.Errorf("included at height %s, expected %s",
			strconv.FormatUint(inc.BlockHeight, 10), strconv.FormatUint(*e.BlockHeight, 10))
	}
	return nil
}

func matchOutput(e types.OutputExpectation, out *types.Bytes) error {
	if out == nil {
		return fmt.Errorf("response carries no output, expected %s", e.Output)
	}
	if !bytes.Equal(*out, e.Output) {
		return fmt.Errorf("output %s, expected %s", out, e.Output)
	}
	return nil
}

// SelectTries returns the distinct tries the expectation sequence
// touches, in first-appearance order. A response must carry a valid
// proof for every returned trie before matching is attempted.
func SelectTries(expected []types.GatewayExpectedOutput) []types.ProofTriePointer {
	var out []types.ProofTriePointer
	seen := [4]bool{}
	for _, e := range expected {
		trie := e.ProofTrie()
		if !trie.Valid() || seen[trie] {
			continue
		}
		seen[trie] = true
		out = append(out, trie)
	}
	return out
}

// VerifyAndMatch verifies an inclusion proof for every trie the
// expectations select and only then matches the response content.
// Proof failures surface as ProofInvalidError; a response whose
// content matches but whose proofs do not is rejected.
func VerifyAndMatch(pv circuit.ProofVerifier, expected []types.GatewayExpectedOutput, resp types.GatewayResponse) error {
	for _, trie := range SelectTries(expected) {
		proof, ok := resp.ProofFor(trie)
		if !ok {
			return &circuit.ProofInvalidError{Trie: trie, Reason: "no proof in response"}
		}
		if err := pv.VerifyInclusion(trie, proof); err != nil {
			return &circuit.ProofInvalidError{Trie: trie, Reason: "verification failed", Err: err}
		}
	}
	return Match(expected, resp)
}

package types

import "fmt"

// ExpectationKind names the variant held by a GatewayExpectedOutput.
type ExpectationKind uint8

const (
	ExpectationStorage   ExpectationKind = 1
	ExpectationEvents    ExpectationKind = 2
	ExpectationExtrinsic ExpectationKind = 3
	ExpectationOutput    ExpectationKind = 4
)

// String returns a human-readable representation.
func (k ExpectationKind) String() string {
	switch k {
	case ExpectationStorage:
		return "storage"
	case ExpectationEvents:
		return "events"
	case ExpectationExtrinsic:
		return "extrinsic"
	case ExpectationOutput:
		return "output"
	default:
		return fmt.Sprintf("unknown(%d)", uint8(k))
	}
}

// ProofTriePointer selects which trie root a gateway's proof is
// checked against.
type ProofTriePointer uint8

const (
	TrieState       ProofTriePointer = 1
	TrieTransaction ProofTriePointer = 2
	TrieReceipts    ProofTriePointer = 3
)

// Valid returns true for a member of the closed tag set.
func (p ProofTriePointer) Valid() bool {
	return p == TrieState || p == TrieTransaction || p == TrieReceipts
}

// String returns a human-readable representation.
func (p ProofTriePointer) String() string {
	switch p {
	case TrieState:
		return "state"
	case TrieTransaction:
		return "transaction"
	case TrieReceipts:
		return "receipts"
	default:
		return fmt.Sprintf("unknown(%d)", uint8(p))
	}
}

// StorageExpectation asserts the values behind a sequence of storage
// keys. Values pairs positionally with Keys: a nil entry means the key
// must be absent or null in the response, a non-nil entry requires
// byte-exact equality.
type StorageExpectation struct {
	Keys   []Bytes  `cramberry:"1"`
	Values []*Bytes `cramberry:"2"`
}

// Validate checks that Keys and Values pair up.
func (s StorageExpectation) Validate() error {
	if len(s.Keys) != len(s.Values) {
		return fmt.Errorf("storage expectation has %d keys but %d values",
			len(s.Keys), len(s.Values))
	}
	if len(s.Keys) == 0 {
		return fmt.Errorf("storage expectation has no keys")
	}
	return nil
}

// EventsExpectation asserts that the response contains at least one
// occurrence matching each expected signature, in any order; duplicate
// expected signatures each consume a distinct occurrence.
type EventsExpectation struct {
	Signatures []EventSignature `cramberry:"1"`
}

// Validate checks that at least one signature is expected.
func (e EventsExpectation) Validate() error {
	if len(e.Signatures) == 0 {
		return fmt.Errorf("events expectation has no signatures")
	}
	return nil
}

// ExtrinsicExpectation asserts that the call was included as an
// extrinsic. If BlockHeight is set, inclusion must be at exactly that
// height; if unset, any valid inclusion satisfies.
type ExtrinsicExpectation struct {
	BlockHeight *uint64 `cramberry:"1"`
}

// OutputExpectation asserts the raw return bytes of the call,
// byte-exact with no partial matches.
type OutputExpectation struct {
	Output Bytes `cramberry:"1"`
}

// GatewayExpectedOutput is a tagged union over the closed set of
// response shapes a gateway response must satisfy. Exactly one variant
// is set per entry; a message carries an ordered sequence of entries
// and a response must satisfy all of them.
type GatewayExpectedOutput struct {
	Storage   *StorageExpectation   `cramberry:"1"`
	Events    *EventsExpectation    `cramberry:"2"`
	Extrinsic *ExtrinsicExpectation `cramberry:"3"`
	Output    *OutputExpectation    `cramberry:"4"`
}

// ExpectStorage builds a storage expectation entry. keys and values
// must pair positionally; a nil value means "absent or null".
func ExpectStorage(keys []Bytes, values []*Bytes) GatewayExpectedOutput {
	return GatewayExpectedOutput{Storage: &StorageExpectation{Keys: keys, Values: values}}
}

// ExpectEvents builds an events expectation entry.
func ExpectEvents(signatures ...EventSignature) GatewayExpectedOutput {
	return GatewayExpectedOutput{Events: &EventsExpectation{Signatures: signatures}}
}

// ExpectExtrinsic builds an extrinsic inclusion expectation entry.
// blockHeight may be nil.
func ExpectExtrinsic(blockHeight *uint64) GatewayExpectedOutput {
	return GatewayExpectedOutput{Extrinsic: &ExtrinsicExpectation{BlockHeight: blockHeight}}
}

// ExpectOutput builds a raw output expectation entry.
func ExpectOutput(output Bytes) GatewayExpectedOutput {
	return GatewayExpectedOutput{Output: &OutputExpectation{Output: output}}
}

// Kind returns the variant held, or 0 if no variant is set.
func (e GatewayExpectedOutput) Kind() ExpectationKind {
	switch {
	case e.Storage != nil:
		return ExpectationStorage
	case e.Events != nil:
		return ExpectationEvents
	case e.Extrinsic != nil:
		return ExpectationExtrinsic
	case e.Output != nil:
		return ExpectationOutput
	default:
		return 0
	}
}

// Validate checks that exactly one variant is set and that the variant
// itself is well-formed.
func (e GatewayExpectedOutput) Validate() error {
	set := 0
	if e.Storage != nil {
		set++
	}
	if e.Events != nil {
		set++
	}
	if e.Extrinsic != nil {
		set++
	}
	if e.Output != nil {
		set++
	}
	if set != 1 {
		return fmt.Errorf("expected output must hold exactly one variant, holds %d", set)
	}
	switch {
	case e.Storage != nil:
		return e.Storage.Validate()
	case e.Events != nil:
		return e.Events.Validate()
	}
	return nil
}

// ProofTrie maps the expectation to the trie its proof must be
// verified against. The mapping is fixed by design:
//
//	storage   → state
//	events    → receipts
//	extrinsic → transaction
//	output    → state
//
// It is total over valid entries; an entry with no variant maps to the
// zero ProofTriePointer, which Valid() rejects.
func (e GatewayExpectedOutput) ProofTrie() ProofTriePointer {
	switch e.Kind() {
	case ExpectationStorage:
		return TrieState
	case ExpectationEvents:
		return TrieReceipts
	case ExpectationExtrinsic:
		return TrieTransaction
	case ExpectationOutput:
		return TrieState
	default:
		return 0
	}
}

// Clone returns a deep copy of the entry.
func (e GatewayExpectedOutput) Clone() GatewayExpectedOutput {
	var out GatewayExpectedOutput
	if e.Storage != nil {
		s := StorageExpectation{
			Keys:   make([]Bytes, len(e.Storage.Keys)),
			Values: make([]*Bytes, len(e.Storage.Values)),
		}
		for i, k := range e.Storage.Keys {
			s.Keys[i] = k.Clone()
		}
		for i, v := range e.Storage.Values {
			if v != nil {
				c := v.Clone()
				s.Values[i] = &c
			}
		}
		out.Storage = &s
	}
	if e.Events != nil {
		ev := EventsExpectation{Signatures: make([]EventSignature, len(e.Events.Signatures))}
		for i, sig := range e.Events.Signatures {
			ev.Signatures[i] = EventSignature(Bytes(sig).Clone())
		}
		out.Events = &ev
	}
	if e.Extrinsic != nil {
		ex := ExtrinsicExpectation{}
		if e.Extrinsic.BlockHeight != nil {
			h := *e.Extrinsic.BlockHeight
			ex.BlockHeight = &h
		}
		out.Extrinsic = &ex
	}
	if e.Output != nil {
		out.Output = &OutputExpectation{Output: e.Output.Output.Clone()}
	}
	return out
}

package types

// ExtraMessagePayload is an optional signed-relay payload: a fully
// pre-signed foreign transaction attached to a message for direct
// relay. It is immutable once constructed and consumed exactly once by
// the relay step.
type ExtraMessagePayload struct {
	// Signer is the foreign account that pre-signed the call.
	Signer AccountID `cramberry:"1"`
	// ModuleName and MethodName must match the outer message: the
	// payload describes execution of the same logical call it rides
	// with.
	ModuleName string `cramberry:"2"`
	MethodName string `cramberry:"3"`
	// CallBytes is the encoded foreign call.
	CallBytes Bytes `cramberry:"4"`
	// Signature is Signer's signature over CallBytes, under the target
	// gateway's declared signature scheme.
	Signature Bytes `cramberry:"5"`
	// Extra carries scheme-specific signing extras (era, nonce, tip…).
	Extra Bytes `cramberry:"6"`
	// TxSignedRaw is the complete signed transaction envelope, ready
	// for submission.
	TxSignedRaw Bytes `cramberry:"7"`
	// CustomPayload is optional free-form bytes.
	CustomPayload *Bytes `cramberry:"8"`
}

// Clone returns a deep copy of the payload.
func (p ExtraMessagePayload) Clone() ExtraMessagePayload {
	out := ExtraMessagePayload{
		Signer:      p.Signer.Clone(),
		ModuleName:  p.ModuleName,
		MethodName:  p.MethodName,
		CallBytes:   p.CallBytes.Clone(),
		Signature:   p.Signature.Clone(),
		Extra:       p.Extra.Clone(),
		TxSignedRaw: p.TxSignedRaw.Clone(),
	}
	if p.CustomPayload != nil {
		c := p.CustomPayload.Clone()
		out.CustomPayload = &c
	}
	return out
}

// CircuitOutboundMessage is a fully-specified cross-chain call
// request: module, method, arguments, optional origin and destination
// accounts, the expected-output contract a response must satisfy, and
// an optional pre-signed relay payload.
//
// Messages are created by the builder, immutable after construction,
// consumed by a transport, and eventually paired with a response for
// matching. The target gateway is not part of the message; transports
// are bound to a single gateway and the relay routes by TargetID.
type CircuitOutboundMessage struct {
	Name       string `cramberry:"1"`
	ModuleName string `cramberry:"2"`
	MethodName string `cramberry:"3"`
	// Sender is the optional origin account.
	Sender *AccountID `cramberry:"4"`
	// Target is the optional destination account.
	Target *AccountID `cramberry:"5"`
	// Arguments are the encoded call arguments, validated against the
	// target gateway's ABI widths before transmission.
	Arguments []Bytes `cramberry:"6"`
	// ExpectedOutput is the ordered success contract; a response must
	// satisfy every entry.
	ExpectedOutput []GatewayExpectedOutput `cramberry:"7"`
	// ExtraPayload is the optional pre-signed relay payload.
	ExtraPayload *ExtraMessagePayload `cramberry:"8"`
}

// Clone returns a deep copy of the message.
func (m CircuitOutboundMessage) Clone() CircuitOutboundMessage {
	out := CircuitOutboundMessage{
		Name:       m.Name,
		ModuleName: m.ModuleName,
		MethodName: m.MethodName,
	}
	if m.Sender != nil {
		s := m.Sender.Clone()
		out.Sender = &s
	}
	if m.Target != nil {
		t := m.Target.Clone()
		out.Target = &t
	}
	if m.Arguments != nil {
		out.Arguments = make([]Bytes, len(m.Arguments))
		for i, a := range m.Arguments {
			out.Arguments[i] = a.Clone()
		}
	}
	if m.ExpectedOutput != nil {
		out.ExpectedOutput = make([]GatewayExpectedOutput, len(m.ExpectedOutput))
		for i, e := range m.ExpectedOutput {
			out.ExpectedOutput[i] = e.Clone()
		}
	}
	if m.ExtraPayload != nil {
		p := m.ExtraPayload.Clone()
		out.ExtraPayload = &p
	}
	return out
}

// ContractAction is a locally-initiated action that outbound messages
// are derived from. Its cramberry encoding is the preimage of the
// content-derived action id.
type ContractAction struct {
	Name       string     `cramberry:"1"`
	ModuleName string     `cramberry:"2"`
	MethodName string     `cramberry:"3"`
	Arguments  []Bytes    `cramberry:"4"`
	TargetID   *ChainID   `cramberry:"5"`
	To         *AccountID `cramberry:"6"`
}

// ContractActionDesc correlates a locally-initiated action with its
// eventual outbound message(s). ActionID is the content hash of the
// action: recomputing it from the same content always yields the same
// id, which is what makes deduplication idempotent.
type ContractActionDesc struct {
	ActionID Hash       `cramberry:"1"`
	TargetID *ChainID   `cramberry:"2"`
	To       *AccountID `cramberry:"3"`
}

package builder

import (
	"fmt"

	circuit "github.com/t3rn/go-circuit"
	"github.com/t3rn/go-circuit/registry"
	"github.com/t3rn/go-circuit/types"
)

// Envelope carries the signed-relay inputs of one Attach call. The
// payload's module and method are taken from the message itself, so an
// attached payload can never describe a different call.
type Envelope struct {
	Signer        types.AccountID
	CallBytes     types.Bytes
	Signature     types.Bytes
	Extra         types.Bytes
	TxSignedRaw   types.Bytes
	CustomPayload *types.Bytes
}

// Attach returns a new message value with the extra payload populated.
// Payloads are write-once: if the input message already carries one,
// Attach fails with AlreadySignedError regardless of the new content.
// The input message is not modified.
func Attach(msg types.CircuitOutboundMessage, env Envelope) (types.CircuitOutboundMessage, error) {
	if msg.ExtraPayload != nil {
		return types.CircuitOutboundMessage{}, &circuit.AlreadySignedError{
			ModuleName: msg.ExtraPayload.ModuleName,
			MethodName: msg.ExtraPayload.MethodName,
		}
	}

	out := msg.Clone()
	payload := types.ExtraMessagePayload{
		Signer:      env.Signer.Clone(),
		ModuleName:  msg.ModuleName,
		MethodName:  msg.MethodName,
		CallBytes:   env.CallBytes.Clone(),
		Signature:   env.Signature.Clone(),
		Extra:       env.Extra.Clone(),
		TxSignedRaw: env.TxSignedRaw.Clone(),
	}
	if env.CustomPayload != nil {
		c := env.CustomPayload.Clone()
		payload.CustomPayload = &c
	}
	out.ExtraPayload = &payload
	return out, nil
}

// VerifierSet holds one signature verifier per scheme.
type VerifierSet map[types.CryptoAlgo]circuit.SignatureVerifier

// VerifyExtraPayload checks the payload's signature over its call
// bytes using the scheme the target gateway declares, never a
// caller-supplied one. A payload crafted for one signature scheme is
// therefore never accepted under another.
func VerifyExtraPayload(reg *registry.Registry, target types.TargetID, payload types.ExtraMessagePayload, verifiers VerifierSet) (bool, error) {
	config, err := reg.Lookup(target)
	if err != nil {
		return false, err
	}
	v, ok := verifiers[config.Crypto]
	if !ok {
		return false, fmt.Errorf("builder: no %s verifier available for gateway %s", config.Crypto, target)
	}
	return v.Verify(payload.CallBytes, payload.Signature, payload.Signer)
}

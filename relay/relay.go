// Package relay drives the full outbound round trip: it routes a built
// message to its gateway's transport, verifies the response's inclusion
// proofs, and matches the response against the message's expectations.
package relay

import (
	"context"
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	circuit "github.com/t3rn/go-circuit"
	"github.com/t3rn/go-circuit/builder"
	"github.com/t3rn/go-circuit/match"
	"github.com/t3rn/go-circuit/registry"
	"github.com/t3rn/go-circuit/types"
)

// Relay dispatches outbound messages over per-gateway transports.
// Each transport is bound to exactly one gateway; messages carry no
// transport address, routing is by target id alone.
type Relay struct {
	reg       *registry.Registry
	proofs    circuit.ProofVerifier
	verifiers builder.VerifierSet
	log       zerolog.Logger

	mu         sync.RWMutex
	transports map[types.ChainID]circuit.Transport
}

// New creates a relay over the given registry. Proof verification uses
// pv for every response; payload signatures are checked with the
// verifier matching each gateway's declared scheme.
func New(reg *registry.Registry, pv circuit.ProofVerifier, verifiers builder.VerifierSet, log zerolog.Logger) *Relay {
	return &Relay{
		reg:        reg,
		proofs:     pv,
		verifiers:  verifiers,
		log:        log.With().Str("component", "relay").Logger(),
		transports: make(map[types.ChainID]circuit.Transport),
	}
}

// Bind attaches a transport to a registered gateway. A gateway holds
// at most one transport; rebinding requires unbinding first.
func (r *Relay) Bind(id types.ChainID, t circuit.Transport) error {
	if _, err := r.reg.Lookup(id); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.transports[id]; ok {
		return fmt.Errorf("relay: gateway %s already has a transport bound", id)
	}
	r.transports[id] = t
	r.log.Debug().Stringer("gateway", id).Msg("transport bound")
	return nil
}

// Unbind detaches and closes the transport bound to a gateway.
func (r *Relay) Unbind(id types.ChainID) error {
	r.mu.Lock()
	t, ok := r.transports[id]
	delete(r.transports, id)
	r.mu.Unlock()
	if !ok {
		return fmt.Errorf("relay: gateway %s has no transport bound", id)
	}
	return t.Close()
}

func (r *Relay) transport(id types.ChainID) (circuit.Transport, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.transports[id]
	return t, ok
}

// Dispatch sends one built message to its target gateway and judges the
// response. On success the raw response is returned so callers can
// inspect evidence beyond what the expectations assert.
//
// The response is accepted only if every trie selected by the message's
// expectations carries a valid inclusion proof AND every expectation is
// satisfied; proof failures are reported before content mismatches.
func (r *Relay) Dispatch(ctx context.Context, target types.TargetID, msg types.CircuitOutboundMessage) (types.GatewayResponse, error) {
	log := r.log.With().Stringer("gateway", target).Str("message", msg.Name).Logger()

	if _, err := r.reg.Lookup(target); err != nil {
		return types.GatewayResponse{}, r.fail(log, stageResolve, err)
	}
	t, ok := r.transport(target)
	if !ok {
		return types.GatewayResponse{}, r.fail(log, stageResolve,
			fmt.Errorf("relay: gateway %s has no transport bound", target))
	}

	if msg.ExtraPayload != nil {
		ok, err := builder.VerifyExtraPayload(r.reg, target, *msg.ExtraPayload, r.verifiers)
		if err != nil {
			return types.GatewayResponse{}, r.fail(log, stageVerifyPayload, err)
		}
		if !ok {
			return types.GatewayResponse{}, r.fail(log, stageVerifyPayload,
				fmt.Errorf("relay: extra payload signature does not verify"))
		}
		log.Debug().Str("stage", stageVerifyPayload.String()).Msg("payload signature ok")
	}

	resp, err := t.Send(ctx, msg)
	if err != nil {
		return types.GatewayResponse{}, r.fail(log, stageSend, err)
	}
	log.Debug().Str("stage", stageSend.String()).
		Int("storage", len(resp.Storage)).
		Int("events", len(resp.Events)).
		Int("proofs", len(resp.Proofs)).
		Msg("response received")

	if err := match.VerifyAndMatch(r.proofs, msg.ExpectedOutput, resp); err != nil {
		stage := stageMatch
		if circuit.IsProofInvalid(err) {
			stage = stageVerifyProofs
		}
		return types.GatewayResponse{}, r.fail(log, stage, err)
	}

	log.Debug().Str("stage", stageMatch.String()).Msg("response matched expectations")
	return resp, nil
}

func (r *Relay) fail(log zerolog.Logger, stage dispatchStage, err error) error {
	log.Warn().Str("stage", stage.String()).Err(err).Msg("dispatch failed")
	return fmt.Errorf("relay: %s: %w", stage, err)
}

// Close closes every bound transport, keeping the first error.
func (r *Relay) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	var first error
	for id, t := range r.transports {
		if err := t.Close(); err != nil && first == nil {
			first = fmt.Errorf("relay: closing transport for %s: %w", id, err)
		}
		delete(r.transports, id)
	}
	return first
}

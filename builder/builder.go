// Package builder assembles outbound Circuit messages.
//
// Building is pure validation plus assembly: the builder performs no
// I/O, keeps no state beyond a registry handle, and either returns a
// complete immutable message or an error, never a partially built
// one. The returned message owns copies of every byte slice it was
// built from.
package builder

import (
	"fmt"

	circuit "github.com/t3rn/go-circuit"
	"github.com/t3rn/go-circuit/registry"
	"github.com/t3rn/go-circuit/types"
)

// Builder validates and assembles outbound messages against the
// gateways of one registry.
type Builder struct {
	reg *registry.Registry
}

// New creates a builder over the given registry.
func New(reg *registry.Registry) *Builder {
	return &Builder{reg: reg}
}

// BuildRequest carries the inputs of one Build call.
type BuildRequest struct {
	// TargetID names the destination gateway; it must resolve in the
	// registry.
	TargetID types.TargetID
	// Name is the message's display name. Defaults to
	// "module.method" when empty.
	Name       string
	ModuleName string
	MethodName string
	// Sender and Target are the optional origin and destination
	// accounts.
	Sender *types.AccountID
	Target *types.AccountID
	// Arguments are validated against the target gateway's declared
	// widths.
	Arguments []types.Bytes
	// ExpectedOutput must be non-empty: a message with no way to judge
	// success is rejected.
	ExpectedOutput []types.GatewayExpectedOutput
	// ExtraPayload, if present, must describe the same module and
	// method as the message it rides with.
	ExtraPayload *types.ExtraMessagePayload
}

// Build validates the request against the target gateway's ABI config
// and returns an immutable outbound message.
//
// Failure modes: UnknownGatewayError if TargetID does not resolve;
// ArgumentWidthMismatchError for the first argument whose length the
// config does not admit; EmptyExpectationError if no expected output
// is given; PayloadMismatchError if an attached payload names a
// different call.
func (b *Builder) Build(req BuildRequest) (types.CircuitOutboundMessage, error) {
	if _, err := b.reg.Lookup(req.TargetID); err != nil {
		return types.CircuitOutboundMessage{}, err
	}

	for i, arg := range req.Arguments {
		if err := b.reg.ValidateArgument(req.TargetID, i, arg); err != nil {
			return types.CircuitOutboundMessage{}, err
		}
	}

	if len(req.ExpectedOutput) == 0 {
		return types.CircuitOutboundMessage{}, &circuit.EmptyExpectationError{}
	}
	for i, e := range req.ExpectedOutput {
		if err := e.Validate(); err != nil {
			return types.CircuitOutboundMessage{}, fmt.Errorf("builder: expected output %d: %w", i, err)
		}
	}

	if p := req.ExtraPayload; p != nil {
		if p.ModuleName != req.ModuleName {
			return types.CircuitOutboundMessage{}, &circuit.PayloadMismatchError{
				Field: "module", Message: req.ModuleName, Payload: p.ModuleName,
			}
		}
		if p.MethodName != req.MethodName {
			return types.CircuitOutboundMessage{}, &circuit.PayloadMismatchError{
				Field: "method", Message: req.MethodName, Payload: p.MethodName,
			}
		}
	}

	name := req.Name
	if name == "" {
		name = req.ModuleName + "." + req.MethodName
	}

	msg := types.CircuitOutboundMessage{
		Name:           name,
		ModuleName:     req.ModuleName,
		MethodName:     req.MethodName,
		Sender:         req.Sender,
		Target:         req.Target,
		Arguments:      req.Arguments,
		ExpectedOutput: req.ExpectedOutput,
		ExtraPayload:   req.ExtraPayload,
	}
	// Detach from the caller's slices so the message is immutable.
	return msg.Clone(), nil
}

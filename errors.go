package circuit

import (
	"errors"
	"fmt"

	"github.com/t3rn/go-circuit/types"
)

// All errors in this package are local, recoverable conditions. Each
// carries enough context (the offending field or index) for the caller
// to reject or retry the originating action; none is fatal to the
// process.

// ErrTransportClosed reports a send on a transport after Close.
var ErrTransportClosed = errors.New("circuit: transport is closed")

// UnknownGatewayError reports a chain identifier with no registered
// gateway behind it.
type UnknownGatewayError struct {
	ID types.ChainID
}

func (e *UnknownGatewayError) Error() string {
	return fmt.Sprintf("circuit: unknown gateway %s", e.ID)
}

// IsUnknownGateway checks whether an error is an UnknownGatewayError.
func IsUnknownGateway(err error) bool {
	var u *UnknownGatewayError
	return errors.As(err, &u)
}

// DuplicateGatewayError reports an attempt to register a chain
// identifier that is already taken. Registered configs are immutable;
// changing one requires a new pointer.
type DuplicateGatewayError struct {
	ID types.ChainID
}

func (e *DuplicateGatewayError) Error() string {
	return fmt.Sprintf("circuit: gateway %s already registered", e.ID)
}

// IsDuplicateGateway checks whether an error is a DuplicateGatewayError.
func IsDuplicateGateway(err error) bool {
	var d *DuplicateGatewayError
	return errors.As(err, &d)
}

// InvalidConfigError reports a malformed GatewayABIConfig at
// registration time. Field names the offending field; for struct
// declarations it includes the struct name.
type InvalidConfigError struct {
	ID     types.ChainID
	Field  string
	Reason string
}

func (e *InvalidConfigError) Error() string {
	return fmt.Sprintf("circuit: invalid config for gateway %s: %s: %s", e.ID, e.Field, e.Reason)
}

// IsInvalidConfig checks whether an error is an InvalidConfigError.
func IsInvalidConfig(err error) bool {
	var i *InvalidConfigError
	return errors.As(err, &i)
}

// ArgumentWidthMismatchError reports a call argument whose byte length
// matches none of the widths the target gateway's ABI config declares.
type ArgumentWidthMismatchError struct {
	ID       types.ChainID
	Index    int
	Got      int
	Accepted []uint32
}

func (e *ArgumentWidthMismatchError) Error() string {
	return fmt.Sprintf("circuit: gateway %s argument %d is %d bytes, accepted widths %v",
		e.ID, e.Index, e.Got, e.Accepted)
}

// IsArgumentWidthMismatch checks whether an error is an
// ArgumentWidthMismatchError.
func IsArgumentWidthMismatch(err error) bool {
	var a *ArgumentWidthMismatchError
	return errors.As(err, &a)
}

// EmptyExpectationError rejects a message built with no expected
// output: a message with no way to judge success is never transmitted.
type EmptyExpectationError struct{}

func (e *EmptyExpectationError) Error() string {
	return "circuit: message carries no expected output"
}

// IsEmptyExpectation checks whether an error is an EmptyExpectationError.
func IsEmptyExpectation(err error) bool {
	var m *EmptyExpectationError
	return errors.As(err, &m)
}

// PayloadMismatchError reports an extra payload whose module or method
// name disagrees with the message it rides with.
type PayloadMismatchError struct {
	Field   string
	Message string
	Payload string
}

func (e *PayloadMismatchError) Error() string {
	return fmt.Sprintf("circuit: extra payload %s %q does not match message %s %q",
		e.Field, e.Payload, e.Field, e.Message)
}

// IsPayloadMismatch checks whether an error is a PayloadMismatchError.
func IsPayloadMismatch(err error) bool {
	var p *PayloadMismatchError
	return errors.As(err, &p)
}

// AlreadySignedError rejects attaching a payload to a message that
// already carries one. Payloads are write-once: silently replacing a
// previously authorized relay is never allowed.
type AlreadySignedError struct {
	ModuleName string
	MethodName string
}

func (e *AlreadySignedError) Error() string {
	return fmt.Sprintf("circuit: message already carries a signed payload for %s.%s",
		e.ModuleName, e.MethodName)
}

// IsAlreadySigned checks whether an error is an AlreadySignedError.
func IsAlreadySigned(err error) bool {
	var a *AlreadySignedError
	return errors.As(err, &a)
}

// MissingEventError reports the first expected event signature with no
// matching occurrence in the response.
type MissingEventError struct {
	SignatureIndex int
	Signature      types.EventSignature
}

func (e *MissingEventError) Error() string {
	return fmt.Sprintf("circuit: expected event %d (%x) not present in response",
		e.SignatureIndex, []byte(e.Signature))
}

// IsMissingEvent checks whether an error is a MissingEventError.
func IsMissingEvent(err error) bool {
	var m *MissingEventError
	return errors.As(err, &m)
}

// ProofInvalidError reports a missing or unverifiable inclusion proof.
// It is raised strictly before expectation matching runs.
type ProofInvalidError struct {
	Trie   types.ProofTriePointer
	Reason string
	Err    error
}

func (e *ProofInvalidError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("circuit: %s trie proof invalid: %s: %v", e.Trie, e.Reason, e.Err)
	}
	return fmt.Sprintf("circuit: %s trie proof invalid: %s", e.Trie, e.Reason)
}

func (e *ProofInvalidError) Unwrap() error { return e.Err }

// IsProofInvalid checks whether an error is a ProofInvalidError.
func IsProofInvalid(err error) bool {
	var p *ProofInvalidError
	return errors.As(err, &p)
}

// ExpectationMismatchError reports the first expectation entry a
// response failed to satisfy. Index is the position within the
// message's expected output sequence; Err carries the per-variant
// cause (for events it wraps a MissingEventError).
type ExpectationMismatchError struct {
	Index  int
	Kind   types.ExpectationKind
	Reason string
	Err    error
}

func (e *ExpectationMismatchError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("circuit: expectation %d (%s) not satisfied: %v", e.Index, e.Kind, e.Err)
	}
	return fmt.Sprintf("circuit: expectation %d (%s) not satisfied: %s", e.Index, e.Kind, e.Reason)
}

func (e *ExpectationMismatchError) Unwrap() error { return e.Err }

// IsExpectationMismatch checks whether an error is an
// ExpectationMismatchError and returns it for index inspection.
func IsExpectationMismatch(err error) (*ExpectationMismatchError, bool) {
	var m *ExpectationMismatchError
	if errors.As(err, &m) {
		return m, true
	}
	return nil, false
}

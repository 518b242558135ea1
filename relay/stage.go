package relay

import "fmt"

// dispatchStage names a phase of one Dispatch call. Stages are strictly
// ordered; a failure is attributed to the stage it occurred in.
type dispatchStage uint32

const (
	// stageResolve: resolving the target gateway and its transport.
	stageResolve dispatchStage = iota
	// stageVerifyPayload: checking the attached payload's signature
	// under the gateway's declared scheme.
	stageVerifyPayload
	// stageSend: the transport round trip.
	stageSend
	// stageVerifyProofs: checking one inclusion proof per trie the
	// message's expectations select.
	stageVerifyProofs
	// stageMatch: judging response content against expectations.
	stageMatch
)

func (s dispatchStage) String() string {
	switch s {
	case stageResolve:
		return "resolve"
	case stageVerifyPayload:
		return "verify-payload"
	case stageSend:
		return "send"
	case stageVerifyProofs:
		return "verify-proofs"
	case stageMatch:
		return "match"
	default:
		return fmt.Sprintf("unknown(%d)", uint32(s))
	}
}

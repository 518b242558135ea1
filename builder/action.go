package builder

import (
	"fmt"

	circuit "github.com/t3rn/go-circuit"
	"github.com/t3rn/go-circuit/types"

	"github.com/blockberries/cramberry/pkg/cramberry"
)

// DescribeAction derives the content-addressed descriptor for a
// locally-initiated action. The id is the digest of the action's
// cramberry encoding: the same content always produces the same id,
// which is what downstream deduplication relies on.
func DescribeAction(h circuit.Hasher, action types.ContractAction) (types.ContractActionDesc, error) {
	data, err := cramberry.Marshal(action)
	if err != nil {
		return types.ContractActionDesc{}, fmt.Errorf("builder: encode action %q: %w", action.Name, err)
	}

	desc := types.ContractActionDesc{ActionID: h.Hash(data)}
	if action.TargetID != nil {
		id := *action.TargetID
		desc.TargetID = &id
	}
	if action.To != nil {
		to := action.To.Clone()
		desc.To = &to
	}
	return desc, nil
}

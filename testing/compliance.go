package circuittest

import (
	"context"
	"reflect"
	"sync"
	"testing"

	circuit "github.com/t3rn/go-circuit"
	"github.com/t3rn/go-circuit/match"
	"github.com/t3rn/go-circuit/registry"
	"github.com/t3rn/go-circuit/types"
)

// RunGatewayCompliance runs a standard compliance suite against a
// gateway implementation.
//
// The factory must return a fresh gateway instance per call. sample
// must return a message the gateway accepts and satisfies, built for
// the gateway's own ABI config.
func RunGatewayCompliance(t *testing.T, factory func() circuit.Gateway, sample func() types.CircuitOutboundMessage) {
	t.Helper()

	t.Run("describe_registers_cleanly", func(t *testing.T) {
		gw := factory()
		rec, err := gw.Describe(context.Background())
		if err != nil {
			t.Fatalf("Describe failed: %v", err)
		}
		if err := registry.New().RegisterRecord(rec); err != nil {
			t.Errorf("described record rejected by registry: %v", err)
		}
	})

	t.Run("describe_stable", func(t *testing.T) {
		gw := factory()
		first, err := gw.Describe(context.Background())
		if err != nil {
			t.Fatalf("Describe failed: %v", err)
		}
		second, err := gw.Describe(context.Background())
		if err != nil {
			t.Fatalf("Describe failed: %v", err)
		}
		if !reflect.DeepEqual(first, second) {
			t.Error("describe is not stable across calls")
		}
	})

	t.Run("declares_features_for_sample", func(t *testing.T) {
		gw := factory()
		rec, err := gw.Describe(context.Background())
		if err != nil {
			t.Fatalf("Describe failed: %v", err)
		}
		for i, e := range sample().ExpectedOutput {
			f := types.FeatureFor(e.Kind())
			if !rec.Features.Has(f) {
				t.Errorf("expectation %d (%s): feature %s not declared", i, e.Kind(), f)
			}
		}
	})

	t.Run("execute_covers_selected_tries", func(t *testing.T) {
		gw := factory()
		msg := sample()
		resp, err := gw.Execute(context.Background(), msg)
		if err != nil {
			t.Fatalf("Execute failed: %v", err)
		}
		for _, trie := range match.SelectTries(msg.ExpectedOutput) {
			if _, ok := resp.ProofFor(trie); !ok {
				t.Errorf("no inclusion proof for %s trie", trie)
			}
		}
	})

	t.Run("execute_satisfies_sample", func(t *testing.T) {
		gw := factory()
		msg := sample()
		resp, err := gw.Execute(context.Background(), msg)
		if err != nil {
			t.Fatalf("Execute failed: %v", err)
		}
		if err := match.Match(msg.ExpectedOutput, resp); err != nil {
			t.Errorf("sample response does not satisfy its expectations: %v", err)
		}
	})

	t.Run("execute_deterministic", func(t *testing.T) {
		msg := sample()

		first, err := factory().Execute(context.Background(), msg)
		if err != nil {
			t.Fatalf("Execute failed: %v", err)
		}
		second, err := factory().Execute(context.Background(), msg)
		if err != nil {
			t.Fatalf("Execute failed: %v", err)
		}
		if !reflect.DeepEqual(first, second) {
			t.Error("fresh instances disagree on the same message")
		}
	})

	t.Run("concurrent_describe", func(t *testing.T) {
		gw := factory()
		var wg sync.WaitGroup
		for i := 0; i < 10; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				if _, err := gw.Describe(context.Background()); err != nil {
					t.Errorf("concurrent Describe failed: %v", err)
				}
			}()
		}
		wg.Wait()
	})
}

package lowering_test

import (
	"testing"

	"github.com/ehtick/svelte/packages/compiler/src/output"
	"github.com/ehtick/svelte/packages/compiler/src/scope"
	"github.com/ehtick/svelte/packages/compiler/src/template/lowering"
)

func TestStrategyTable(t *testing.T) {
	item := &scope.Binding{Name: "item"}
	index := &scope.Binding{Name: "i"}

	t.Run("should resolve the innermost frame covering a binding", func(t *testing.T) {
		table := lowering.NewStrategyTable()
		outer := &lowering.BindingStrategy{}
		inner := lowering.TransparentStrategy()

		releaseOuter := table.Push(lowering.StrategyFrame{item: outer, index: outer})
		releaseInner := table.Push(lowering.StrategyFrame{item: inner})

		if got := table.Lookup(item); got != inner {
			t.Errorf("expected the inner strategy for item")
		}
		if got := table.Lookup(index); got != outer {
			t.Errorf("expected lookups to fall through to the outer frame")
		}

		releaseInner()
		if got := table.Lookup(item); got != outer {
			t.Errorf("expected the outer strategy after release")
		}
		releaseOuter()
		if table.Depth() != 0 {
			t.Errorf("Depth() = %d, want 0", table.Depth())
		}
		if table.Lookup(item) != nil {
			t.Errorf("expected no strategy once every frame is released")
		}
	})

	t.Run("should ignore nil bindings", func(t *testing.T) {
		table := lowering.NewStrategyTable()
		table.Push(lowering.StrategyFrame{item: &lowering.BindingStrategy{}})
		if table.Lookup(nil) != nil {
			t.Errorf("expected nil for a global")
		}
	})

	t.Run("should make a second release a no-op", func(t *testing.T) {
		table := lowering.NewStrategyTable()
		release := table.Push(lowering.StrategyFrame{})
		release()
		release()
		if table.Depth() != 0 {
			t.Errorf("Depth() = %d, want 0", table.Depth())
		}
	})

	t.Run("should panic when frames are released out of order", func(t *testing.T) {
		table := lowering.NewStrategyTable()
		releaseOuter := table.Push(lowering.StrategyFrame{})
		table.Push(lowering.StrategyFrame{})

		defer func() {
			if recover() == nil {
				t.Errorf("expected a panic")
			}
		}()
		releaseOuter()
	})

	t.Run("should read the raw identifier through a transparent strategy", func(t *testing.T) {
		strategy := lowering.TransparentStrategy()
		if strategy.Kind != lowering.StrategyTransparent {
			t.Errorf("Kind = %d, want StrategyTransparent", strategy.Kind)
		}
		read, ok := strategy.Read(id("i")).(*output.ReadVarExpr)
		if !ok || read.Name != "i" {
			t.Errorf("unexpected read %#v", read)
		}
	})
}

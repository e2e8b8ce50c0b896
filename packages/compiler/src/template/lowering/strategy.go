package lowering

import (
	"github.com/ehtick/svelte/packages/compiler/src/ast"
	"github.com/ehtick/svelte/packages/compiler/src/output"
	"github.com/ehtick/svelte/packages/compiler/src/scope"
)

// StrategyKind - How a strategy treats the identifiers it covers
type StrategyKind int

const (
	// StrategyRewrite - Reads and writes go through the strategy functions
	StrategyRewrite StrategyKind = iota
	// StrategyTransparent - Reads return the raw identifier
	StrategyTransparent
)

// BindingStrategy overrides how one binding is read and written while a
// region of the tree is lowered. A nil Assign or Mutate falls back to the
// binding's default lowering.
type BindingStrategy struct {
	Kind StrategyKind
	Read func(id *ast.Identifier) output.OutputExpression
	// Assign receives the already lowered value to store.
	Assign func(id *ast.Identifier, value output.OutputExpression) output.OutputExpression
	// Mutate receives the already lowered member write or update.
	Mutate func(id *ast.Identifier, mutation output.OutputExpression) output.OutputExpression
}

// TransparentStrategy returns a strategy reading the raw identifier
func TransparentStrategy() *BindingStrategy {
	return &BindingStrategy{
		Kind: StrategyTransparent,
		Read: func(id *ast.Identifier) output.OutputExpression {
			return output.NewReadVarExpr(id.Name, nil)
		},
	}
}

// StrategyFrame maps bindings to the strategies installed for them
type StrategyFrame map[*scope.Binding]*BindingStrategy

// StrategyTable is a stack of frames. Lookups see the innermost frame that
// covers a binding; frames never merge.
type StrategyTable struct {
	frames []StrategyFrame
}

func NewStrategyTable() *StrategyTable {
	return &StrategyTable{}
}

// Push installs frame and returns the function that removes it. Frames must
// be released in reverse order.
func (t *StrategyTable) Push(frame StrategyFrame) (release func()) {
	t.frames = append(t.frames, frame)
	depth := len(t.frames)
	released := false
	return func() {
		if released {
			return
		}
		if len(t.frames) != depth {
			panic("AssertionError: strategy frames released out of order")
		}
		released = true
		t.frames = t.frames[:depth-1]
	}
}

// Lookup returns the strategy for binding, or nil
func (t *StrategyTable) Lookup(binding *scope.Binding) *BindingStrategy {
	if binding == nil {
		return nil
	}
	for i := len(t.frames) - 1; i >= 0; i-- {
		if strategy, ok := t.frames[i][binding]; ok {
			return strategy
		}
	}
	return nil
}

// Depth is the number of installed frames
func (t *StrategyTable) Depth() int {
	return len(t.frames)
}

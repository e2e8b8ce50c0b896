package lowering

import (
	"fmt"

	"github.com/ehtick/svelte/packages/compiler/src/ast"
	"github.com/ehtick/svelte/packages/compiler/src/scope"
)

// Primitive - The compiler primitive a call site invokes
type Primitive int

const (
	// PrimitiveNone - An ordinary call
	PrimitiveNone Primitive = iota
	// PrimitiveHost - `$host()`
	PrimitiveHost
	// PrimitiveEffectTracking - `$effect.tracking()`
	PrimitiveEffectTracking
	// PrimitiveState - `$state(v)`
	PrimitiveState
	// PrimitiveStateRaw - `$state.raw(v)`
	PrimitiveStateRaw
	// PrimitiveDerived - `$derived(e)`
	PrimitiveDerived
	// PrimitiveDerivedBy - `$derived.by(fn)`
	PrimitiveDerivedBy
	// PrimitiveSnapshot - `$state.snapshot(v)`
	PrimitiveSnapshot
	// PrimitiveEffectRoot - `$effect.root(fn)`
	PrimitiveEffectRoot
	// PrimitivePending - `$effect.pending()`
	PrimitivePending
	// PrimitiveInspect - `$inspect(...)`
	PrimitiveInspect
	// PrimitiveInspectWith - `$inspect(...).with(fn)`
	PrimitiveInspectWith
	// PrimitiveEffect - `$effect(fn)`
	PrimitiveEffect
	// PrimitiveEffectPre - `$effect.pre(fn)`
	PrimitiveEffectPre
	// PrimitiveProps - `$props()`
	PrimitiveProps
	// PrimitiveBindable - `$bindable(v)`
	PrimitiveBindable
)

var primitiveKeypaths = map[string]Primitive{
	"$host":            PrimitiveHost,
	"$effect.tracking": PrimitiveEffectTracking,
	"$state":           PrimitiveState,
	"$state.raw":       PrimitiveStateRaw,
	"$derived":         PrimitiveDerived,
	"$derived.by":      PrimitiveDerivedBy,
	"$state.snapshot":  PrimitiveSnapshot,
	"$effect.root":     PrimitiveEffectRoot,
	"$effect.pending":  PrimitivePending,
	"$inspect":         PrimitiveInspect,
	"$inspect().with":  PrimitiveInspectWith,
	"$effect":          PrimitiveEffect,
	"$effect.pre":      PrimitiveEffectPre,
	"$props":           PrimitiveProps,
	"$bindable":        PrimitiveBindable,
}

func (p Primitive) String() string {
	if p == PrimitiveNone {
		return "none"
	}
	for keypath, primitive := range primitiveKeypaths {
		if primitive == p {
			return keypath
		}
	}
	return fmt.Sprintf("Primitive(%d)", int(p))
}

// ClassifyPrimitive resolves which primitive a call invokes. A callee whose
// root name is declared anywhere in scope is never a primitive.
func ClassifyPrimitive(call *ast.CallExpression, analysis *scope.Analysis) Primitive {
	primitive, ok := primitiveKeypaths[scope.CalleeKeypath(call.Callee)]
	if !ok {
		return PrimitiveNone
	}
	root := calleeRoot(call.Callee)
	if root == nil || analysis.Resolve(root) != nil {
		return PrimitiveNone
	}
	return primitive
}

// calleeRoot returns the identifier a callee chain starts from, looking
// through member accesses and calls.
func calleeRoot(node ast.Node) *ast.Identifier {
	for {
		switch n := node.(type) {
		case *ast.Identifier:
			return n
		case *ast.MemberExpression:
			node = n.Object
		case *ast.CallExpression:
			node = n.Callee
		default:
			return nil
		}
	}
}

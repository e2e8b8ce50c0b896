package lowering

import (
	"strings"

	"github.com/ehtick/svelte/packages/compiler/src/ast"
	"github.com/ehtick/svelte/packages/compiler/src/scope"
)

// EachFlags - Capability bits passed to renderList
type EachFlags int

const (
	// EachItemReactive - The item is wrapped in a source and read through $.get
	EachItemReactive EachFlags = 0b1
	// EachIndexReactive - The index is wrapped in a source (keyed lists reorder)
	EachIndexReactive EachFlags = 0b10
	// EachIsControlled - The list is the only child of its element
	EachIsControlled EachFlags = 0b100
	// EachIsAnimated - The sole child element is animated or transitioned
	EachIsAnimated EachFlags = 0b1000
	// EachItemImmutable - The item itself can never be reassigned
	EachItemImmutable EachFlags = 0b10000
)

var eachFlagNames = []struct {
	flag EachFlags
	name string
}{
	{EachItemReactive, "ITEM_REACTIVE"},
	{EachIndexReactive, "INDEX_REACTIVE"},
	{EachIsControlled, "IS_CONTROLLED"},
	{EachIsAnimated, "IS_ANIMATED"},
	{EachItemImmutable, "ITEM_IMMUTABLE"},
}

// Has reports whether every bit of flag is set
func (f EachFlags) Has(flag EachFlags) bool {
	return f&flag == flag
}

func (f EachFlags) String() string {
	if f == 0 {
		return "0"
	}
	var parts []string
	for _, entry := range eachFlagNames {
		if f.Has(entry.flag) {
			parts = append(parts, entry.name)
		}
	}
	return strings.Join(parts, "|")
}

// EncodeEachFlags computes the flags of one each block. functionDepth is the
// function depth of the block's own scope.
func EncodeEachFlags(node *ast.EachBlock, meta *scope.EachBlockMetadata, functionDepth int, runes bool) EachFlags {
	var flags EachFlags

	if meta.Keyed && node.Index != "" {
		flags |= EachIndexReactive
	}

	keyIsItem := false
	if key, ok := node.Key.(*ast.Identifier); ok {
		if item, ok := node.Context.(*ast.Identifier); ok && item.Name == key.Name {
			keyIsItem = true
		}
	}

	usesStore := false
	for _, binding := range meta.Expression.Dependencies {
		if binding.Kind == scope.BindingStoreSub {
			usesStore = true
			break
		}
	}

	// Only dependencies from outside the block can change the items. The
	// key-is-item exemption is a heuristic and does not cover derived
	// collections such as `x.filter(y)`.
	for _, binding := range meta.Expression.Dependencies {
		if binding.FunctionDepth() >= functionDepth {
			continue
		}
		if !runes || !keyIsItem || usesStore {
			flags |= EachItemReactive
			break
		}
	}

	if runes && !usesStore {
		flags |= EachItemImmutable
	}

	if meta.Keyed && isAnimatedBody(node.Body) {
		flags |= EachIsAnimated
	}

	if meta.IsControlled {
		flags |= EachIsControlled
	}

	return flags
}

// isAnimatedBody reports whether the body's single structural child is an
// element carrying an animate or transition directive.
func isAnimatedBody(body *ast.Fragment) bool {
	if body == nil {
		return false
	}
	nodes := scope.StructuralNodes(body)
	if len(nodes) != 1 {
		return false
	}
	element, ok := nodes[0].(*ast.RegularElement)
	if !ok {
		return false
	}
	for _, attr := range element.Attributes {
		switch attr.(type) {
		case *ast.AnimateDirective, *ast.TransitionDirective:
			return true
		}
	}
	return false
}

package scope

import (
	"fmt"
	"regexp"

	"github.com/ehtick/svelte/packages/compiler/src/ast"
)

// BindingKind classifies what a declared name is at run time
type BindingKind int

const (
	BindingNormal BindingKind = iota
	BindingState
	BindingRawState
	BindingDerived
	BindingProp
	BindingRestProp
	BindingStoreSub
	BindingEach
	BindingTemplate
	BindingLegacyReactive
)

var bindingKindNames = map[BindingKind]string{
	BindingNormal:         "normal",
	BindingState:          "state",
	BindingRawState:       "raw_state",
	BindingDerived:        "derived",
	BindingProp:           "prop",
	BindingRestProp:       "rest_prop",
	BindingStoreSub:       "store_sub",
	BindingEach:           "each",
	BindingTemplate:       "template",
	BindingLegacyReactive: "legacy_reactive",
}

func (k BindingKind) String() string {
	if name, ok := bindingKindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("BindingKind(%d)", int(k))
}

// DeclarationKind is the syntactic form that introduced a binding
type DeclarationKind int

const (
	DeclarationLet DeclarationKind = iota
	DeclarationConst
	DeclarationVar
	DeclarationFunction
	DeclarationParam
	DeclarationImport
	// DeclarationSynthetic covers names the compiler declares implicitly
	// (store subscriptions, legacy reactive assignments).
	DeclarationSynthetic
)

// Binding is the static record for one declared name
type Binding struct {
	Name            string
	Node            *ast.Identifier
	Kind            BindingKind
	DeclarationKind DeclarationKind
	// Initial is the initializer (or default value for props); may be nil.
	Initial ast.Node
	Scope   *Scope
	// Reassigned is set when the name itself is the target of an assignment.
	Reassigned bool
	// Mutated is set when a member of the value is assigned.
	Mutated bool
	// LegacyDependencies are the bindings a `$:` statement assigning this
	// binding reads.
	LegacyDependencies []*Binding
	// PropAlias is the property name a prop binding reads from the props object.
	PropAlias string
	// Exported marks `export let` props and exported module declarations.
	Exported bool
}

// Updated reports whether the binding is ever written
func (b *Binding) Updated() bool {
	return b.Reassigned || b.Mutated
}

// FunctionDepth is the depth of the closest function boundary enclosing the
// declaration.
func (b *Binding) FunctionDepth() int {
	return b.Scope.FunctionDepth
}

var unsafeNameRe = regexp.MustCompile(`[^a-zA-Z0-9_$]`)

// ScopeRoot is shared by every scope of a component. It knows every name in
// use so that generated identifiers never collide.
type ScopeRoot struct {
	conflicts map[string]bool
}

// NewScopeRoot creates an empty ScopeRoot
func NewScopeRoot() *ScopeRoot {
	return &ScopeRoot{conflicts: make(map[string]bool)}
}

// Reserve marks name as taken
func (r *ScopeRoot) Reserve(name string) {
	r.conflicts[name] = true
}

// Unique returns preferred, or preferred_1, preferred_2, ... whichever is
// free first, and reserves it.
func (r *ScopeRoot) Unique(preferred string) string {
	preferred = unsafeNameRe.ReplaceAllString(preferred, "_")
	if preferred == "" || (preferred[0] >= '0' && preferred[0] <= '9') {
		preferred = "_" + preferred
	}
	final := preferred
	for n := 1; r.conflicts[final]; n++ {
		final = fmt.Sprintf("%s_%d", preferred, n)
	}
	r.conflicts[final] = true
	return final
}

// Scope is one lexical scope
type Scope struct {
	Root *ScopeRoot
	// FunctionDepth counts the non-porous scopes from the module scope.
	FunctionDepth int

	parent       *Scope
	porous       bool
	declarations map[string]*Binding
	order        []*Binding
}

// NewScope creates a scope. Porous scopes (blocks) share the function depth
// of their parent.
func NewScope(root *ScopeRoot, parent *Scope, porous bool) *Scope {
	depth := 0
	if parent != nil {
		depth = parent.FunctionDepth
		if !porous {
			depth++
		}
	}
	return &Scope{
		Root:          root,
		FunctionDepth: depth,
		parent:        parent,
		porous:        porous,
		declarations:  make(map[string]*Binding),
	}
}

// Child creates a nested scope
func (s *Scope) Child(porous bool) *Scope {
	return NewScope(s.Root, s, porous)
}

// Parent returns the enclosing scope, nil for the module scope
func (s *Scope) Parent() *Scope {
	return s.parent
}

// Declare adds a binding for id to this scope. Redeclaring a name replaces
// the previous binding.
func (s *Scope) Declare(id *ast.Identifier, kind BindingKind, declKind DeclarationKind, initial ast.Node) *Binding {
	binding := &Binding{
		Name:            id.Name,
		Node:            id,
		Kind:            kind,
		DeclarationKind: declKind,
		Initial:         initial,
		Scope:           s,
	}
	if previous, ok := s.declarations[id.Name]; ok {
		for i, b := range s.order {
			if b == previous {
				s.order[i] = binding
			}
		}
	} else {
		s.order = append(s.order, binding)
	}
	s.declarations[id.Name] = binding
	s.Root.Reserve(id.Name)
	return binding
}

// Get resolves name in this scope or any ancestor
func (s *Scope) Get(name string) *Binding {
	for scope := s; scope != nil; scope = scope.parent {
		if binding, ok := scope.declarations[name]; ok {
			return binding
		}
	}
	return nil
}

// Owner returns the scope that declares name, if any
func (s *Scope) Owner(name string) *Scope {
	if binding := s.Get(name); binding != nil {
		return binding.Scope
	}
	return nil
}

// Declarations returns the bindings declared directly in this scope, in
// declaration order.
func (s *Scope) Declarations() []*Binding {
	out := make([]*Binding, len(s.order))
	copy(out, s.order)
	return out
}

package scope

import (
	"strings"

	"github.com/ehtick/svelte/packages/compiler/src/ast"
)

// Runes are the compiler-recognised globals that switch a component into
// opt-in reactive mode.
var Runes = map[string]bool{
	"$state":    true,
	"$derived":  true,
	"$effect":   true,
	"$props":    true,
	"$bindable": true,
	"$inspect":  true,
	"$host":     true,
}

// ExpressionMetadata summarises what an expression reads
type ExpressionMetadata struct {
	// Dependencies are the bindings referenced anywhere inside the expression,
	// in first-reference order.
	Dependencies []*Binding
	// HasAwait is set for an await outside any nested function.
	HasAwait bool
	HasCall  bool
}

// EachBlockMetadata holds the per-block facts iteration lowering consumes
type EachBlockMetadata struct {
	Block *ast.EachBlock
	// Keyed is set when a key expression and an item pattern are present.
	Keyed bool
	// IsControlled is set when the block is the only child of an element.
	IsControlled bool
	// Index is the written index name, or a generated one.
	Index      string
	Expression ExpressionMetadata
	// TransitiveDeps are the bindings that must be invalidated together with
	// the collection in legacy mode: its dependencies and, recursively, what
	// reactive declarations among them are computed from.
	TransitiveDeps []*Binding
	// Invalidations lists the enclosing each blocks, outermost first.
	Invalidations []*EachBlockMetadata
	// Scope is the block's own scope (loop variables).
	Scope *Scope
}

// ReactiveStatement is a legacy `$:` statement
type ReactiveStatement struct {
	Node         *ast.LabeledStatement
	Assignments  []*Binding
	Dependencies []*Binding
}

// Analysis is the read-only result consumed by the lowering passes
type Analysis struct {
	Runes         bool
	Root          *ScopeRoot
	ModuleScope   *Scope
	InstanceScope *Scope
	TemplateScope *Scope
	// Scopes maps scope-creating nodes (functions, blocks, each blocks) to
	// the scope they create.
	Scopes map[ast.Node]*Scope
	// References resolves every identifier in expression position. Globals
	// map to nil.
	References         map[*ast.Identifier]*Binding
	EachBlocks         map[*ast.EachBlock]*EachBlockMetadata
	ReactiveStatements []*ReactiveStatement
	StoreSubscriptions []*Binding
}

// Resolve returns the binding an identifier refers to, nil for globals
func (a *Analysis) Resolve(id *ast.Identifier) *Binding {
	return a.References[id]
}

type pendingRef struct {
	id    *ast.Identifier
	scope *Scope
}

type pendingUpdate struct {
	target ast.Node
	scope  *Scope
}

type collector struct {
	meta      *ExpressionMetadata
	ids       []*ast.Identifier
	fnNesting int
}

type runeDeclaration struct {
	binding *Binding
	init    *ast.CallExpression
	// propKey is the destructured key of a `$props()` leaf; rest marks the
	// rest element.
	propKey string
	rest    bool
}

type pendingReactive struct {
	stmt *ReactiveStatement
	ids  []*ast.Identifier
}

type analyzer struct {
	a *Analysis

	refs     []pendingRef
	updates  []pendingUpdate
	runeDecl []runeDeclaration
	exported []*Binding
	eachList []*EachBlockMetadata
	eachIDs  map[*EachBlockMetadata][]*ast.Identifier
	reactive []*pendingReactive

	eachStack  []*EachBlockMetadata
	collectors []*collector
	fnNesting  int
	controlled map[*ast.EachBlock]bool
}

// Analyze builds the scope tree of a component, resolves every reference and
// derives the binding kinds and each-block metadata. A nil runes selects the
// mode from the presence of rune calls.
func Analyze(root *ast.Root, runes *bool) *Analysis {
	scopeRoot := NewScopeRoot()
	module := NewScope(scopeRoot, nil, false)
	instance := module.Child(false)
	template := instance.Child(false)

	an := &analyzer{
		a: &Analysis{
			Root:          scopeRoot,
			ModuleScope:   module,
			InstanceScope: instance,
			TemplateScope: template,
			Scopes:        make(map[ast.Node]*Scope),
			References:    make(map[*ast.Identifier]*Binding),
			EachBlocks:    make(map[*ast.EachBlock]*EachBlockMetadata),
		},
		eachIDs:    make(map[*EachBlockMetadata][]*ast.Identifier),
		controlled: make(map[*ast.EachBlock]bool),
	}

	if root.Module != nil {
		an.a.Scopes[root.Module] = module
		an.statements(root.Module.Body, module)
	}
	if root.Instance != nil {
		an.a.Scopes[root.Instance] = instance
		an.statements(root.Instance.Body, instance)
	}
	if root.Fragment != nil {
		an.a.Scopes[root.Fragment] = template
		an.visit(root.Fragment, template)
	}

	an.declareImplicitReactive()
	an.resolveReferences()
	if runes != nil {
		an.a.Runes = *runes
	} else {
		an.a.Runes = an.detectRunes()
	}
	an.applyUpdates()
	an.classifyRunes()
	an.collectReactiveDependencies()
	an.collectEachDependencies()
	if !an.a.Runes {
		an.classifyLegacy()
		an.collectTransitiveDependencies()
	}
	return an.a
}

func (an *analyzer) statements(body []ast.Node, scope *Scope) {
	for _, stmt := range body {
		an.visit(stmt, scope)
	}
}

func (an *analyzer) reference(id *ast.Identifier, scope *Scope) {
	an.refs = append(an.refs, pendingRef{id: id, scope: scope})
	for _, c := range an.collectors {
		c.ids = append(c.ids, id)
	}
}

func (an *analyzer) declarePattern(pattern ast.Node, scope *Scope, kind BindingKind, declKind DeclarationKind, initial ast.Node) []*Binding {
	var bindings []*Binding
	for _, id := range ast.ExtractIdentifiers(pattern) {
		var init ast.Node
		if _, plain := pattern.(*ast.Identifier); plain {
			init = initial
		}
		bindings = append(bindings, scope.Declare(id, kind, declKind, init))
	}
	an.patternExpressions(pattern, scope)
	return bindings
}

// patternExpressions visits the expressions embedded in a binding pattern:
// default values and computed keys.
func (an *analyzer) patternExpressions(pattern ast.Node, scope *Scope) {
	switch p := pattern.(type) {
	case *ast.ObjectPattern:
		for _, prop := range p.Properties {
			switch prop := prop.(type) {
			case *ast.Property:
				if prop.Computed {
					an.visit(prop.Key, scope)
				}
				an.patternExpressions(prop.Value, scope)
			case *ast.RestElement:
				an.patternExpressions(prop.Argument, scope)
			}
		}
	case *ast.ArrayPattern:
		for _, el := range p.Elements {
			if el != nil {
				an.patternExpressions(el, scope)
			}
		}
	case *ast.AssignmentPattern:
		an.patternExpressions(p.Left, scope)
		an.visit(p.Right, scope)
	case *ast.RestElement:
		an.patternExpressions(p.Argument, scope)
	}
}

func (an *analyzer) function(node ast.Node, id *ast.Identifier, params []ast.Node, body ast.Node, scope *Scope) {
	fnScope := scope.Child(false)
	an.a.Scopes[node] = fnScope
	if id != nil {
		if _, isExpr := node.(*ast.FunctionExpression); isExpr {
			fnScope.Declare(id, BindingNormal, DeclarationFunction, node)
		}
	}
	an.fnNesting++
	for _, param := range params {
		an.declarePattern(param, fnScope, BindingNormal, DeclarationParam, nil)
	}
	if block, ok := body.(*ast.BlockStatement); ok {
		an.a.Scopes[block] = fnScope
		an.statements(block.Body, fnScope)
	} else if body != nil {
		an.visit(body, fnScope)
	}
	an.fnNesting--
}

func (an *analyzer) visit(node ast.Node, scope *Scope) {
	switch n := node.(type) {
	case nil:
		return

	// ---- statements ----
	case *ast.VariableDeclaration:
		declKind := DeclarationLet
		switch n.Kind {
		case "const":
			declKind = DeclarationConst
		case "var":
			declKind = DeclarationVar
		}
		for _, d := range n.Declarations {
			bindings := an.declarePattern(d.ID, scope, BindingNormal, declKind, d.Init)
			an.visit(d.Init, scope)
			if call, ok := d.Init.(*ast.CallExpression); ok {
				an.recordRuneDeclaration(d.ID, bindings, call)
			}
		}
	case *ast.FunctionDeclaration:
		if n.ID != nil {
			scope.Declare(n.ID, BindingNormal, DeclarationFunction, n)
		}
		an.function(n, n.ID, n.Params, n.Body, scope)
	case *ast.BlockStatement:
		child := scope.Child(true)
		an.a.Scopes[n] = child
		an.statements(n.Body, child)
	case *ast.LabeledStatement:
		if n.Label != nil && n.Label.Name == "$" && scope == an.a.InstanceScope {
			stmt := &pendingReactive{stmt: &ReactiveStatement{Node: n}}
			an.reactive = append(an.reactive, stmt)
			c := &collector{meta: &ExpressionMetadata{}, fnNesting: an.fnNesting}
			an.collectors = append(an.collectors, c)
			an.visit(n.Body, scope)
			an.collectors = an.collectors[:len(an.collectors)-1]
			stmt.ids = c.ids
			return
		}
		an.visit(n.Body, scope)
	case *ast.ImportDeclaration:
		for _, spec := range n.Specifiers {
			scope.Declare(&ast.Identifier{BaseNode: spec.BaseNode, Name: spec.Local}, BindingNormal, DeclarationImport, n)
		}
	case *ast.ExportNamedDeclaration:
		before := len(scope.order)
		an.visit(n.Declaration, scope)
		for _, b := range scope.order[before:] {
			b.Exported = true
			an.exported = append(an.exported, b)
		}

	// ---- expressions ----
	case *ast.Identifier:
		an.reference(n, scope)
	case *ast.MemberExpression:
		an.visit(n.Object, scope)
		if n.Computed {
			an.visit(n.Property, scope)
		}
	case *ast.Property:
		if n.Computed {
			an.visit(n.Key, scope)
		}
		an.visit(n.Value, scope)
	case *ast.ArrowFunctionExpression:
		an.function(n, nil, n.Params, n.Body, scope)
	case *ast.FunctionExpression:
		an.function(n, n.ID, n.Params, n.Body, scope)
	case *ast.AssignmentExpression:
		an.updates = append(an.updates, pendingUpdate{target: n.Left, scope: scope})
		an.assignmentTarget(n.Left, scope)
		an.visit(n.Right, scope)
	case *ast.UpdateExpression:
		an.updates = append(an.updates, pendingUpdate{target: n.Argument, scope: scope})
		an.visit(n.Argument, scope)
	case *ast.CallExpression, *ast.NewExpression:
		for _, c := range an.collectors {
			c.meta.HasCall = true
		}
		for _, child := range ast.Children(n) {
			an.visit(child, scope)
		}
	case *ast.AwaitExpression:
		for _, c := range an.collectors {
			if c.fnNesting == an.fnNesting {
				c.meta.HasAwait = true
			}
		}
		an.visit(n.Argument, scope)

	// ---- template ----
	case *ast.RegularElement:
		if n.Fragment != nil {
			if structural := StructuralNodes(n.Fragment); len(structural) == 1 {
				if each, ok := structural[0].(*ast.EachBlock); ok {
					an.controlled[each] = true
				}
			}
		}
		for _, attr := range n.Attributes {
			an.visit(attr, scope)
		}
		if n.Fragment != nil {
			an.visit(n.Fragment, scope)
		}
	case *ast.BindDirective:
		an.updates = append(an.updates, pendingUpdate{target: n.Expression, scope: scope})
		an.visit(n.Expression, scope)
	case *ast.AnimateDirective:
		an.a.Root.Reserve(n.Name)
		an.visit(n.Expression, scope)
	case *ast.TransitionDirective:
		an.a.Root.Reserve(n.Name)
		an.visit(n.Expression, scope)
	case *ast.EachBlock:
		an.eachBlock(n, scope)

	default:
		for _, child := range ast.Children(node) {
			an.visit(child, scope)
		}
	}
}

// assignmentTarget visits the left side of an assignment; patterns there
// reference existing bindings rather than declaring new ones.
func (an *analyzer) assignmentTarget(target ast.Node, scope *Scope) {
	switch t := target.(type) {
	case *ast.ObjectPattern:
		for _, prop := range t.Properties {
			switch prop := prop.(type) {
			case *ast.Property:
				if prop.Computed {
					an.visit(prop.Key, scope)
				}
				an.assignmentTarget(prop.Value, scope)
			case *ast.RestElement:
				an.assignmentTarget(prop.Argument, scope)
			}
		}
	case *ast.ArrayPattern:
		for _, el := range t.Elements {
			an.assignmentTarget(el, scope)
		}
	case *ast.AssignmentPattern:
		an.assignmentTarget(t.Left, scope)
		an.visit(t.Right, scope)
	case *ast.RestElement:
		an.assignmentTarget(t.Argument, scope)
	default:
		an.visit(target, scope)
	}
}

func (an *analyzer) eachBlock(n *ast.EachBlock, scope *Scope) {
	meta := &EachBlockMetadata{
		Block:         n,
		Keyed:         n.Key != nil && n.Context != nil,
		IsControlled:  an.controlled[n],
		Invalidations: append([]*EachBlockMetadata(nil), an.eachStack...),
	}
	an.a.EachBlocks[n] = meta
	an.eachList = append(an.eachList, meta)

	c := &collector{meta: &meta.Expression, fnNesting: an.fnNesting}
	an.collectors = append(an.collectors, c)
	an.visit(n.Expression, scope)
	an.collectors = an.collectors[:len(an.collectors)-1]
	an.eachIDs[meta] = c.ids

	child := scope.Child(false)
	an.a.Scopes[n] = child
	meta.Scope = child
	if n.Context != nil {
		an.declarePattern(n.Context, child, BindingEach, DeclarationConst, nil)
	}
	if n.Index != "" {
		child.Declare(&ast.Identifier{BaseNode: n.BaseNode, Name: n.Index}, BindingTemplate, DeclarationConst, nil)
		meta.Index = n.Index
	} else {
		meta.Index = an.a.Root.Unique("$$index")
	}

	an.eachStack = append(an.eachStack, meta)
	an.visit(n.Key, child)
	if n.Body != nil {
		an.visit(n.Body, child)
	}
	an.eachStack = an.eachStack[:len(an.eachStack)-1]

	if n.Fallback != nil {
		an.visit(n.Fallback, scope)
	}
}

func (an *analyzer) recordRuneDeclaration(pattern ast.Node, bindings []*Binding, call *ast.CallExpression) {
	callee := CalleeKeypath(call.Callee)
	switch callee {
	case "$state", "$state.raw", "$derived", "$derived.by":
		if id, ok := pattern.(*ast.Identifier); ok && len(bindings) == 1 && bindings[0].Node == id {
			an.runeDecl = append(an.runeDecl, runeDeclaration{binding: bindings[0], init: call})
		}
	case "$props":
		switch p := pattern.(type) {
		case *ast.Identifier:
			an.runeDecl = append(an.runeDecl, runeDeclaration{binding: bindings[0], init: call, rest: true})
		case *ast.ObjectPattern:
			byNode := make(map[*ast.Identifier]*Binding, len(bindings))
			for _, b := range bindings {
				byNode[b.Node] = b
			}
			for _, prop := range p.Properties {
				switch prop := prop.(type) {
				case *ast.Property:
					key, _ := ast.PropertyKeyName(prop)
					value := prop.Value
					var fallback ast.Node
					if def, ok := value.(*ast.AssignmentPattern); ok {
						value, fallback = def.Left, def.Right
					}
					if id, ok := value.(*ast.Identifier); ok && byNode[id] != nil {
						byNode[id].Initial = fallback
						an.runeDecl = append(an.runeDecl, runeDeclaration{binding: byNode[id], init: call, propKey: key})
					}
				case *ast.RestElement:
					if id, ok := prop.Argument.(*ast.Identifier); ok && byNode[id] != nil {
						an.runeDecl = append(an.runeDecl, runeDeclaration{binding: byNode[id], init: call, rest: true})
					}
				}
			}
		}
	}
}

// declareImplicitReactive declares the targets of `$: name = ...` that were
// never declared explicitly.
func (an *analyzer) declareImplicitReactive() {
	for _, r := range an.reactive {
		stmt, ok := r.stmt.Node.Body.(*ast.ExpressionStatement)
		if !ok {
			continue
		}
		assign, ok := stmt.Expression.(*ast.AssignmentExpression)
		if !ok || assign.Operator != "=" {
			continue
		}
		for _, id := range ast.ExtractIdentifiers(assign.Left) {
			if an.a.InstanceScope.Get(id.Name) == nil && !strings.HasPrefix(id.Name, "$") {
				an.a.InstanceScope.Declare(&ast.Identifier{BaseNode: id.BaseNode, Name: id.Name}, BindingLegacyReactive, DeclarationSynthetic, nil)
			}
		}
	}
}

func (an *analyzer) resolveReferences() {
	for _, ref := range an.refs {
		name := ref.id.Name
		binding := ref.scope.Get(name)
		if binding == nil && isStoreName(name) && ref.scope != an.a.ModuleScope {
			if store := an.a.InstanceScope.Get(name[1:]); store != nil {
				binding = an.a.InstanceScope.Declare(&ast.Identifier{BaseNode: ref.id.BaseNode, Name: name}, BindingStoreSub, DeclarationSynthetic, store.Node)
				an.a.StoreSubscriptions = append(an.a.StoreSubscriptions, binding)
			}
		}
		an.a.Root.Reserve(name)
		an.a.References[ref.id] = binding
	}
}

func isStoreName(name string) bool {
	return len(name) > 1 && name[0] == '$' && name[1] != '$' && !Runes[name]
}

func (an *analyzer) detectRunes() bool {
	for _, ref := range an.refs {
		if Runes[ref.id.Name] && an.a.References[ref.id] == nil {
			return true
		}
	}
	return false
}

func (an *analyzer) applyUpdates() {
	for _, u := range an.updates {
		for _, expr := range unwrapPattern(u.target) {
			left, ok := ast.ObjectRoot(expr).(*ast.Identifier)
			if !ok {
				continue
			}
			binding := an.a.References[left]
			if binding == nil {
				continue
			}
			if ast.Node(left) == expr {
				binding.Reassigned = true
			} else {
				binding.Mutated = true
			}
		}
	}
}

// unwrapPattern returns the assignable leaves of an assignment target
func unwrapPattern(target ast.Node) []ast.Node {
	var out []ast.Node
	var walk func(ast.Node)
	walk = func(n ast.Node) {
		switch n := n.(type) {
		case nil:
		case *ast.ObjectPattern:
			for _, prop := range n.Properties {
				switch prop := prop.(type) {
				case *ast.Property:
					walk(prop.Value)
				case *ast.RestElement:
					walk(prop.Argument)
				}
			}
		case *ast.ArrayPattern:
			for _, el := range n.Elements {
				walk(el)
			}
		case *ast.AssignmentPattern:
			walk(n.Left)
		case *ast.RestElement:
			walk(n.Argument)
		default:
			out = append(out, n)
		}
	}
	walk(target)
	return out
}

func (an *analyzer) isGlobalRune(call *ast.CallExpression) bool {
	root, ok := ast.ObjectRoot(call.Callee).(*ast.Identifier)
	return ok && Runes[root.Name] && an.a.References[root] == nil
}

func (an *analyzer) classifyRunes() {
	for _, decl := range an.runeDecl {
		if !an.isGlobalRune(decl.init) {
			continue
		}
		switch CalleeKeypath(decl.init.Callee) {
		case "$state":
			decl.binding.Kind = BindingState
		case "$state.raw":
			decl.binding.Kind = BindingRawState
		case "$derived", "$derived.by":
			decl.binding.Kind = BindingDerived
		case "$props":
			if decl.rest {
				decl.binding.Kind = BindingRestProp
			} else {
				decl.binding.Kind = BindingProp
				decl.binding.PropAlias = decl.propKey
			}
		}
	}
}

func (an *analyzer) dependenciesOf(ids []*ast.Identifier) []*Binding {
	var deps []*Binding
	seen := make(map[*Binding]bool)
	for _, id := range ids {
		if b := an.a.References[id]; b != nil && !seen[b] {
			seen[b] = true
			deps = append(deps, b)
		}
	}
	return deps
}

func (an *analyzer) collectReactiveDependencies() {
	for _, r := range an.reactive {
		var assigned []*Binding
		if stmt, ok := r.stmt.Node.Body.(*ast.ExpressionStatement); ok {
			if assign, ok := stmt.Expression.(*ast.AssignmentExpression); ok {
				for _, expr := range unwrapPattern(assign.Left) {
					if id, ok := expr.(*ast.Identifier); ok {
						if b := an.a.References[id]; b != nil {
							assigned = append(assigned, b)
						}
					}
				}
			}
		}
		isAssigned := func(b *Binding) bool {
			for _, a := range assigned {
				if a == b {
					return true
				}
			}
			return false
		}
		for _, dep := range an.dependenciesOf(r.ids) {
			if isAssigned(dep) || (dep.Scope != an.a.InstanceScope && dep.Scope != an.a.ModuleScope) {
				continue
			}
			r.stmt.Dependencies = append(r.stmt.Dependencies, dep)
		}
		r.stmt.Assignments = assigned
		for _, b := range assigned {
			b.LegacyDependencies = appendUnique(b.LegacyDependencies, r.stmt.Dependencies...)
		}
		an.a.ReactiveStatements = append(an.a.ReactiveStatements, r.stmt)
	}
}

func (an *analyzer) collectEachDependencies() {
	for _, meta := range an.eachList {
		meta.Expression.Dependencies = an.dependenciesOf(an.eachIDs[meta])
	}
}

// classifyLegacy applies the implicit reactivity rules of legacy mode.
func (an *analyzer) classifyLegacy() {
	// Writes through a loop variable write into the collection, so the
	// collection's sources count as mutated. Inner blocks come later in
	// eachList; walking backwards lets a nested write reach every enclosing
	// collection.
	for i := len(an.eachList) - 1; i >= 0; i-- {
		meta := an.eachList[i]
		written := false
		for _, b := range meta.Scope.Declarations() {
			if b.Kind == BindingEach && b.Updated() {
				written = true
			}
		}
		if !written {
			continue
		}
		for _, dep := range meta.Expression.Dependencies {
			dep.Mutated = true
		}
	}

	for _, b := range an.a.InstanceScope.Declarations() {
		if b.Kind != BindingNormal {
			continue
		}
		if b.Exported && b.DeclarationKind != DeclarationFunction {
			b.Kind = BindingProp
			b.PropAlias = b.Name
			continue
		}
		if (b.DeclarationKind == DeclarationLet || b.DeclarationKind == DeclarationVar) && b.Updated() {
			b.Kind = BindingState
		}
	}
}

func (an *analyzer) collectTransitiveDependencies() {
	for _, meta := range an.eachList {
		meta.TransitiveDeps = appendUnique(append([]*Binding(nil), meta.Expression.Dependencies...),
			TransitiveDependencies(meta.Expression.Dependencies)...)
	}
}

// TransitiveDependencies expands legacy reactive bindings into everything
// they are computed from, recursively. The bindings themselves are not part
// of the result.
func TransitiveDependencies(bindings []*Binding) []*Binding {
	var out []*Binding
	seen := make(map[*Binding]bool)
	var collect func(b *Binding)
	collect = func(b *Binding) {
		if b.Kind != BindingLegacyReactive {
			return
		}
		for _, dep := range b.LegacyDependencies {
			if seen[dep] {
				continue
			}
			seen[dep] = true
			out = append(out, dep)
			collect(dep)
		}
	}
	for _, b := range bindings {
		collect(b)
	}
	return out
}

func appendUnique(list []*Binding, items ...*Binding) []*Binding {
	for _, item := range items {
		found := false
		for _, existing := range list {
			if existing == item {
				found = true
				break
			}
		}
		if !found {
			list = append(list, item)
		}
	}
	return list
}

// StructuralNodes returns the nodes of a fragment that render something,
// skipping comments and whitespace-only text.
func StructuralNodes(fragment *ast.Fragment) []ast.Node {
	var out []ast.Node
	for _, n := range fragment.Nodes {
		switch n := n.(type) {
		case *ast.Comment:
			continue
		case *ast.Text:
			if strings.TrimSpace(n.Data) == "" {
				continue
			}
		}
		out = append(out, n)
	}
	return out
}

// CalleeKeypath renders a callee made of identifiers and static member
// accesses as a dotted path (`$state.raw`). Calls in the chain render as
// `()`, so `$inspect(x).with` becomes `$inspect().with`. Anything else
// yields "".
func CalleeKeypath(callee ast.Node) string {
	switch c := callee.(type) {
	case *ast.Identifier:
		return c.Name
	case *ast.MemberExpression:
		if c.Computed {
			return ""
		}
		prop, ok := c.Property.(*ast.Identifier)
		if !ok {
			return ""
		}
		object := CalleeKeypath(c.Object)
		if object == "" {
			return ""
		}
		return object + "." + prop.Name
	case *ast.CallExpression:
		inner := CalleeKeypath(c.Callee)
		if inner == "" {
			return ""
		}
		return inner + "()"
	}
	return ""
}

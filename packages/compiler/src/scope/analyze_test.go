package scope_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/ehtick/svelte/packages/compiler/src/ast"
	"github.com/ehtick/svelte/packages/compiler/src/scope"
)

func id(name string) *ast.Identifier { return &ast.Identifier{Name: name} }

func call(callee ast.Node, args ...ast.Node) *ast.CallExpression {
	return &ast.CallExpression{Callee: callee, Arguments: args}
}

func member(object ast.Node, prop string) *ast.MemberExpression {
	return &ast.MemberExpression{Object: object, Property: id(prop)}
}

func declare(kind string, pattern, init ast.Node) *ast.VariableDeclaration {
	return &ast.VariableDeclaration{Kind: kind, Declarations: []*ast.VariableDeclarator{{ID: pattern, Init: init}}}
}

func assignment(left, right ast.Node) *ast.ExpressionStatement {
	return &ast.ExpressionStatement{Expression: &ast.AssignmentExpression{Operator: "=", Left: left, Right: right}}
}

func reactive(target string, value ast.Node) *ast.LabeledStatement {
	return &ast.LabeledStatement{Label: id("$"), Body: assignment(id(target), value)}
}

func component(instance []ast.Node, nodes ...ast.Node) *ast.Root {
	return &ast.Root{Instance: &ast.Program{Body: instance}, Fragment: &ast.Fragment{Nodes: nodes}}
}

func names(bindings []*scope.Binding) []string {
	out := make([]string, len(bindings))
	for i, b := range bindings {
		out[i] = b.Name
	}
	return out
}

func TestAnalyzeRunes(t *testing.T) {
	t.Run("should detect runes mode from rune calls", func(t *testing.T) {
		root := component([]ast.Node{declare("let", id("count"), call(id("$state"), &ast.Literal{Value: 0.0}))})
		if !scope.Analyze(root, nil).Runes {
			t.Error("expected runes mode")
		}
	})

	t.Run("should not treat a declared name as a rune", func(t *testing.T) {
		fn := &ast.ArrowFunctionExpression{Params: []ast.Node{id("$state")}, Body: call(id("$state"))}
		root := component([]ast.Node{declare("const", id("make"), fn)})
		if scope.Analyze(root, nil).Runes {
			t.Error("expected legacy mode")
		}
	})

	t.Run("should honour a forced mode", func(t *testing.T) {
		root := component([]ast.Node{declare("let", id("count"), call(id("$state")))})
		legacy := false
		if scope.Analyze(root, &legacy).Runes {
			t.Error("expected legacy mode")
		}
	})

	t.Run("should classify rune declarations", func(t *testing.T) {
		props := &ast.ObjectPattern{Properties: []ast.Node{
			&ast.Property{Key: id("title"), Value: id("heading")},
			&ast.Property{Key: id("size"), Value: &ast.AssignmentPattern{Left: id("size"), Right: &ast.Literal{Value: 1.0}}, Shorthand: true},
			&ast.RestElement{Argument: id("rest")},
		}}
		root := component([]ast.Node{
			declare("let", id("count"), call(id("$state"), &ast.Literal{Value: 0.0})),
			declare("let", id("frozen"), call(member(id("$state"), "raw"), &ast.ArrayExpression{})),
			declare("const", id("doubled"), call(id("$derived"), id("count"))),
			declare("let", props, call(id("$props"))),
			declare("const", id("plain"), &ast.Literal{Value: "x"}),
		})
		analysis := scope.Analyze(root, nil)
		instance := analysis.InstanceScope

		want := map[string]scope.BindingKind{
			"count":   scope.BindingState,
			"frozen":  scope.BindingRawState,
			"doubled": scope.BindingDerived,
			"heading": scope.BindingProp,
			"size":    scope.BindingProp,
			"rest":    scope.BindingRestProp,
			"plain":   scope.BindingNormal,
		}
		for name, kind := range want {
			if got := instance.Get(name).Kind; got != kind {
				t.Errorf("%s: Kind = %s, want %s", name, got, kind)
			}
		}
		if alias := instance.Get("heading").PropAlias; alias != "title" {
			t.Errorf("PropAlias = %q, want title", alias)
		}
		if instance.Get("size").Initial == nil {
			t.Error("expected the prop default as the initial value")
		}
	})
}

func TestAnalyzeLegacy(t *testing.T) {
	t.Run("should derive implicit reactivity", func(t *testing.T) {
		root := component([]ast.Node{
			declare("let", id("count"), &ast.Literal{Value: 0.0}),
			declare("let", id("fixed"), &ast.Literal{Value: 0.0}),
			&ast.ExportNamedDeclaration{Declaration: declare("let", id("name"), nil)},
			reactive("doubled", &ast.BinaryExpression{Operator: "*", Left: id("count"), Right: &ast.Literal{Value: 2.0}}),
			assignment(id("count"), &ast.Literal{Value: 1.0}),
		})
		analysis := scope.Analyze(root, nil)
		if analysis.Runes {
			t.Fatal("expected legacy mode")
		}
		instance := analysis.InstanceScope

		want := map[string]scope.BindingKind{
			"count":   scope.BindingState,
			"fixed":   scope.BindingNormal,
			"name":    scope.BindingProp,
			"doubled": scope.BindingLegacyReactive,
		}
		for name, kind := range want {
			if got := instance.Get(name).Kind; got != kind {
				t.Errorf("%s: Kind = %s, want %s", name, got, kind)
			}
		}
		if got := instance.Get("doubled").DeclarationKind; got != scope.DeclarationSynthetic {
			t.Errorf("doubled: DeclarationKind = %d, want synthetic", got)
		}

		if len(analysis.ReactiveStatements) != 1 {
			t.Fatalf("expected one reactive statement, got %d", len(analysis.ReactiveStatements))
		}
		statement := analysis.ReactiveStatements[0]
		if diff := cmp.Diff([]string{"count"}, names(statement.Dependencies)); diff != "" {
			t.Errorf("Dependencies mismatch (-want +got):\n%s", diff)
		}
		if diff := cmp.Diff([]string{"doubled"}, names(statement.Assignments)); diff != "" {
			t.Errorf("Assignments mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("should mark collections written through a loop variable as mutated", func(t *testing.T) {
		write := &ast.ExpressionTag{Expression: &ast.AssignmentExpression{Operator: "=", Left: member(id("item"), "done"), Right: &ast.Literal{Value: true}}}
		each := &ast.EachBlock{Expression: id("items"), Context: id("item"), Body: &ast.Fragment{Nodes: []ast.Node{write}}}
		root := component([]ast.Node{declare("let", id("items"), &ast.ArrayExpression{})}, each)

		analysis := scope.Analyze(root, nil)
		items := analysis.InstanceScope.Get("items")
		if !items.Mutated || items.Kind != scope.BindingState {
			t.Errorf("expected items to be mutated state, got mutated=%v kind=%s", items.Mutated, items.Kind)
		}
	})

	t.Run("should collect transitive dependencies of each collections", func(t *testing.T) {
		each := &ast.EachBlock{Expression: id("visible"), Context: id("item"), Body: &ast.Fragment{}}
		root := component([]ast.Node{
			declare("let", id("items"), &ast.ArrayExpression{}),
			reactive("filtered", call(member(id("items"), "filter"), id("keep"))),
			reactive("visible", call(member(id("filtered"), "slice"), &ast.Literal{Value: 0.0})),
		}, each)

		analysis := scope.Analyze(root, nil)
		meta := analysis.EachBlocks[each]
		if diff := cmp.Diff([]string{"visible", "filtered", "items"}, names(meta.TransitiveDeps)); diff != "" {
			t.Errorf("TransitiveDeps mismatch (-want +got):\n%s", diff)
		}
	})
}

func TestAnalyzeEachBlocks(t *testing.T) {
	t.Run("should record each block metadata", func(t *testing.T) {
		inner := &ast.EachBlock{Expression: member(id("group"), "items"), Context: id("item"), Index: "i", Key: id("item"), Body: &ast.Fragment{}}
		outer := &ast.EachBlock{Expression: id("groups"), Context: id("group"), Body: &ast.Fragment{Nodes: []ast.Node{inner}}}
		root := component([]ast.Node{declare("let", id("groups"), call(id("$state"), &ast.ArrayExpression{}))}, outer)

		analysis := scope.Analyze(root, nil)
		outerMeta, innerMeta := analysis.EachBlocks[outer], analysis.EachBlocks[inner]

		if outerMeta.Keyed || !innerMeta.Keyed {
			t.Errorf("Keyed: outer=%v inner=%v", outerMeta.Keyed, innerMeta.Keyed)
		}
		if outerMeta.Index != "$$index" || innerMeta.Index != "i" {
			t.Errorf("Index: outer=%q inner=%q", outerMeta.Index, innerMeta.Index)
		}
		if diff := cmp.Diff([]string{"groups"}, names(outerMeta.Expression.Dependencies)); diff != "" {
			t.Errorf("outer dependencies mismatch (-want +got):\n%s", diff)
		}
		if diff := cmp.Diff([]string{"group"}, names(innerMeta.Expression.Dependencies)); diff != "" {
			t.Errorf("inner dependencies mismatch (-want +got):\n%s", diff)
		}
		if len(innerMeta.Invalidations) != 1 || innerMeta.Invalidations[0] != outerMeta {
			t.Errorf("expected the inner block to invalidate the outer one")
		}
		if innerMeta.Scope.Parent() != outerMeta.Scope {
			t.Errorf("expected nested block scopes")
		}
		if got := innerMeta.Scope.FunctionDepth - outerMeta.Scope.FunctionDepth; got != 1 {
			t.Errorf("expected each block scopes to add a function level, got %d", got)
		}
		if innerMeta.Scope.Get("i").Kind != scope.BindingTemplate || innerMeta.Scope.Get("item").Kind != scope.BindingEach {
			t.Errorf("unexpected loop variable kinds")
		}
	})

	t.Run("should flag awaited collections", func(t *testing.T) {
		awaited := &ast.EachBlock{Expression: &ast.AwaitExpression{Argument: call(id("load"))}, Context: id("item"), Body: &ast.Fragment{}}
		nested := &ast.EachBlock{
			Expression: call(id("run"), &ast.ArrowFunctionExpression{Async: true, Body: &ast.AwaitExpression{Argument: call(id("load"))}}),
			Context:    id("item"),
			Body:       &ast.Fragment{},
		}
		analysis := scope.Analyze(component(nil, awaited, nested), nil)
		if meta := analysis.EachBlocks[awaited]; !meta.Expression.HasAwait {
			t.Error("expected HasAwait")
		}
		if meta := analysis.EachBlocks[nested]; meta.Expression.HasAwait || !meta.Expression.HasCall {
			t.Errorf("expected a call without a top-level await, got %+v", meta.Expression)
		}
	})

	t.Run("should create store subscriptions for $-prefixed references", func(t *testing.T) {
		each := &ast.EachBlock{Expression: id("$todos"), Context: id("todo"), Body: &ast.Fragment{}}
		root := component([]ast.Node{declare("const", id("todos"), call(id("writable")))}, each)

		analysis := scope.Analyze(root, nil)
		if diff := cmp.Diff([]string{"$todos"}, names(analysis.StoreSubscriptions)); diff != "" {
			t.Fatalf("StoreSubscriptions mismatch (-want +got):\n%s", diff)
		}
		deps := analysis.EachBlocks[each].Expression.Dependencies
		if len(deps) != 1 || deps[0].Kind != scope.BindingStoreSub {
			t.Errorf("expected a store dependency, got %v", names(deps))
		}
	})
}

func TestTransitiveDependencies(t *testing.T) {
	t.Run("should expand reactive declarations recursively", func(t *testing.T) {
		a := &scope.Binding{Name: "a", Kind: scope.BindingState}
		b := &scope.Binding{Name: "b", Kind: scope.BindingLegacyReactive, LegacyDependencies: []*scope.Binding{a}}
		c := &scope.Binding{Name: "c", Kind: scope.BindingLegacyReactive, LegacyDependencies: []*scope.Binding{b, a}}

		if diff := cmp.Diff([]string{"b", "a"}, names(scope.TransitiveDependencies([]*scope.Binding{c}))); diff != "" {
			t.Errorf("mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("should stop at cycles", func(t *testing.T) {
		b := &scope.Binding{Name: "b", Kind: scope.BindingLegacyReactive}
		c := &scope.Binding{Name: "c", Kind: scope.BindingLegacyReactive, LegacyDependencies: []*scope.Binding{b}}
		b.LegacyDependencies = []*scope.Binding{c}

		if diff := cmp.Diff([]string{"b", "c"}, names(scope.TransitiveDependencies([]*scope.Binding{c}))); diff != "" {
			t.Errorf("mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("should ignore plain bindings", func(t *testing.T) {
		a := &scope.Binding{Name: "a", Kind: scope.BindingState}
		if got := scope.TransitiveDependencies([]*scope.Binding{a}); len(got) != 0 {
			t.Errorf("expected nothing, got %v", names(got))
		}
	})
}

func TestScopeRoot(t *testing.T) {
	t.Run("should generate unique names", func(t *testing.T) {
		root := scope.NewScopeRoot()
		root.Reserve("item")
		got := []string{root.Unique("item"), root.Unique("item"), root.Unique("my-el"), root.Unique("1st")}
		if diff := cmp.Diff([]string{"item_1", "item_2", "my_el", "_1st"}, got); diff != "" {
			t.Errorf("mismatch (-want +got):\n%s", diff)
		}
	})
}

func TestCalleeKeypath(t *testing.T) {
	tests := []struct {
		callee ast.Node
		want   string
	}{
		{id("$state"), "$state"},
		{member(id("$effect"), "pre"), "$effect.pre"},
		{member(call(id("$inspect"), id("x")), "with"), "$inspect().with"},
		{&ast.MemberExpression{Object: id("a"), Property: id("b"), Computed: true}, ""},
		{&ast.ArrowFunctionExpression{}, ""},
	}
	for _, tt := range tests {
		t.Run("should render "+tt.want, func(t *testing.T) {
			if got := scope.CalleeKeypath(tt.callee); got != tt.want {
				t.Errorf("CalleeKeypath() = %q, want %q", got, tt.want)
			}
		})
	}
}

package lowering_test

import (
	"testing"

	"github.com/ehtick/svelte/packages/compiler/src/ast"
	"github.com/ehtick/svelte/packages/compiler/src/scope"
	"github.com/ehtick/svelte/packages/compiler/src/template/lowering"
)

func stateCount() ast.Node {
	return declare("let", id("count"), call(id("$state"), num(0)))
}

func TestClassifyPrimitive(t *testing.T) {
	analysis := scope.Analyze(&ast.Root{}, nil)

	tests := []struct {
		name   string
		callee ast.Node
		want   lowering.Primitive
	}{
		{name: "should classify $state", callee: id("$state"), want: lowering.PrimitiveState},
		{name: "should classify $state.raw", callee: member(id("$state"), "raw"), want: lowering.PrimitiveStateRaw},
		{name: "should classify $derived.by", callee: member(id("$derived"), "by"), want: lowering.PrimitiveDerivedBy},
		{name: "should classify $effect.pending", callee: member(id("$effect"), "pending"), want: lowering.PrimitivePending},
		{name: "should classify $inspect().with", callee: member(call(id("$inspect"), id("x")), "with"), want: lowering.PrimitiveInspectWith},
		{name: "should ignore unknown members", callee: member(id("$state"), "frozen"), want: lowering.PrimitiveNone},
		{name: "should ignore ordinary calls", callee: id("fetch"), want: lowering.PrimitiveNone},
		{name: "should ignore computed members", callee: &ast.MemberExpression{Object: id("$state"), Property: str("raw"), Computed: true}, want: lowering.PrimitiveNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := lowering.ClassifyPrimitive(call(tt.callee), analysis); got != tt.want {
				t.Errorf("ClassifyPrimitive() = %s, want %s", got, tt.want)
			}
		})
	}

	t.Run("should not classify a callee whose root is declared", func(t *testing.T) {
		shadowed := call(id("$derived"), num(1))
		fn := arrow(shadowed, id("$derived"))
		root := component([]ast.Node{declare("const", id("g"), fn)})
		analysis := scope.Analyze(root, nil)
		if got := lowering.ClassifyPrimitive(shadowed, analysis); got != lowering.PrimitiveNone {
			t.Errorf("ClassifyPrimitive() = %s, want none", got)
		}
	})
}

func TestCallExpressionLowering(t *testing.T) {
	tests := []struct {
		name string
		expr ast.Node
		dev  bool
		want string
	}{
		{
			name: "should lower $state.raw without a proxy",
			expr: call(member(id("$state"), "raw"), &ast.ObjectExpression{}),
			want: "$.declareState({});",
		},
		{
			name: "should proxy object state",
			expr: call(id("$state"), &ast.ObjectExpression{}),
			want: "$.declareState($.wrapProxy({}));",
		},
		{
			name: "should wrap $derived in a thunk",
			expr: call(id("$derived"), &ast.BinaryExpression{Operator: "*", Left: id("count"), Right: num(2)}),
			want: "$.declareDerived(() => $.get(count) * 2);",
		},
		{
			name: "should pass the $derived.by function through",
			expr: call(member(id("$derived"), "by"), arrow(id("count"))),
			want: "$.declareDerived(() => $.get(count));",
		},
		{
			name: "should lower $effect",
			expr: call(id("$effect"), arrow(call(member(id("console"), "log"), id("count")))),
			want: "$.userEffect(() => console.log($.get(count)));",
		},
		{
			name: "should lower $effect.pre",
			expr: call(member(id("$effect"), "pre"), arrow(id("count"))),
			want: "$.userPreEffect(() => $.get(count));",
		},
		{
			name: "should lower $effect.root",
			expr: call(member(id("$effect"), "root"), arrow(id("count"))),
			want: "$.effectRoot(() => $.get(count));",
		},
		{
			name: "should lower $effect.tracking",
			expr: call(member(id("$effect"), "tracking")),
			want: "$.effectTracking();",
		},
		{
			name: "should lower $effect.pending",
			expr: call(member(id("$effect"), "pending")),
			want: "$.pending();",
		},
		{
			name: "should read the host from props",
			expr: call(id("$host")),
			want: "$$props.$$host;",
		},
		{
			name: "should lower $state.snapshot",
			expr: call(member(id("$state"), "snapshot"), id("count")),
			want: "$.snapshot($.get(count));",
		},
		{
			name: "should forward an ignored uncloneable snapshot warning",
			expr: &ast.CallExpression{Callee: member(id("$state"), "snapshot"), Arguments: []ast.Node{id("count")}, Ignores: []string{"state_snapshot_uncloneable"}},
			want: "$.snapshot($.get(count), true);",
		},
		{
			name: "should drop $inspect in production",
			expr: call(id("$inspect"), id("count")),
			want: "void 0;",
		},
		{
			name: "should lower $inspect in dev builds",
			expr: call(id("$inspect"), id("count")),
			dev:  true,
			want: "$.inspect(() => [$.get(count)]);",
		},
		{
			name: "should pass the $inspect().with callback",
			expr: call(member(call(id("$inspect"), id("count")), "with"), id("report")),
			dev:  true,
			want: "$.inspect(() => [$.get(count)], report);",
		},
		{
			name: "should leave shadowed primitives alone",
			expr: call(arrow(call(id("$state"), num(1)), id("$state")), id("make")),
			want: "(($state) => $state(1))(make);",
		},
		{
			name: "should instrument console calls with reactive arguments in dev builds",
			expr: call(member(id("console"), "log"), id("count")),
			dev:  true,
			want: "console.log(...$.logIfContainsState('log', $.get(count)));",
		},
		{
			name: "should instrument spread console arguments",
			expr: call(member(id("console"), "warn"), &ast.SpreadElement{Argument: id("args")}),
			dev:  true,
			want: "console.warn(...$.logIfContainsState('warn', ...args));",
		},
		{
			name: "should leave console calls with known arguments alone",
			expr: call(member(id("console"), "log"), str("hi"), id("label")),
			dev:  true,
			want: "console.log('hi', label);",
		},
		{
			name: "should leave other console methods alone",
			expr: call(member(id("console"), "table"), id("count")),
			dev:  true,
			want: "console.table($.get(count));",
		},
		{
			name: "should not instrument console calls in production",
			expr: call(member(id("console"), "log"), id("count")),
			want: "console.log($.get(count));",
		},
		{
			name: "should not instrument a local console",
			expr: call(arrow(call(member(id("console"), "log"), id("count")), id("console")), id("logger")),
			dev:  true,
			want: "((console) => console.log($.get(count)))(logger);",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := component([]ast.Node{
				stateCount(),
				declare("const", id("label"), str("x")),
				stmt(tt.expr),
			})
			assertContains(t, lower(t, root, true, tt.dev).js, "\n  "+tt.want+"\n")
		})
	}
}

func TestStateUpdates(t *testing.T) {
	t.Run("should lower updates of state", func(t *testing.T) {
		root := component([]ast.Node{
			stateCount(),
			stmt(&ast.UpdateExpression{Operator: "++", Argument: id("count")}),
			stmt(&ast.UpdateExpression{Operator: "--", Prefix: true, Argument: id("count")}),
			stmt(&ast.AssignmentExpression{Operator: "+=", Left: id("count"), Right: num(2)}),
		})
		assertContains(t, lower(t, root, true, false).js,
			"let count = $.declareState(0);",
			"$.update(count);",
			"$.updatePre(count, -1);",
			"$.set(count, $.get(count) + 2);",
		)
	})

	t.Run("should proxy objects assigned to state", func(t *testing.T) {
		root := component([]ast.Node{
			stateCount(),
			stmt(assign(id("count"), &ast.ObjectExpression{})),
		})
		assertContains(t, lower(t, root, true, false).js, "$.set(count, $.wrapProxy({}));")
	})
}

func TestPrimitiveArguments(t *testing.T) {
	tests := []struct {
		callee ast.Node
		want   string
	}{
		{id("$derived"), "AssertionError: $derived requires an argument"},
		{member(id("$derived"), "by"), "AssertionError: $derived.by requires an argument"},
		{member(id("$state"), "snapshot"), "AssertionError: $state.snapshot requires an argument"},
	}
	for _, tt := range tests {
		t.Run("should reject "+tt.want[len("AssertionError: "):], func(t *testing.T) {
			root := component([]ast.Node{declare("const", id("value"), call(tt.callee))})
			defer func() {
				if got := recover(); got != tt.want {
					t.Errorf("panic = %v, want %q", got, tt.want)
				}
			}()
			lower(t, root, true, false)
		})
	}
}

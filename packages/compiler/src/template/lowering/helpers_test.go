package lowering_test

import (
	"strings"
	"testing"

	"github.com/ehtick/svelte/packages/compiler/src/ast"
	"github.com/ehtick/svelte/packages/compiler/src/output"
	"github.com/ehtick/svelte/packages/compiler/src/runtime"
	"github.com/ehtick/svelte/packages/compiler/src/scope"
	"github.com/ehtick/svelte/packages/compiler/src/template/lowering"
)

func id(name string) *ast.Identifier { return &ast.Identifier{Name: name} }

func num(v float64) *ast.Literal { return &ast.Literal{Value: v} }

func str(v string) *ast.Literal { return &ast.Literal{Value: v} }

func member(object ast.Node, prop string) *ast.MemberExpression {
	return &ast.MemberExpression{Object: object, Property: id(prop)}
}

func call(callee ast.Node, args ...ast.Node) *ast.CallExpression {
	return &ast.CallExpression{Callee: callee, Arguments: args}
}

func arrow(body ast.Node, params ...ast.Node) *ast.ArrowFunctionExpression {
	return &ast.ArrowFunctionExpression{Params: params, Body: body}
}

func assign(left, right ast.Node) *ast.AssignmentExpression {
	return &ast.AssignmentExpression{Operator: "=", Left: left, Right: right}
}

func declare(kind string, pattern, init ast.Node) *ast.VariableDeclaration {
	return &ast.VariableDeclaration{Kind: kind, Declarations: []*ast.VariableDeclarator{{ID: pattern, Init: init}}}
}

func stmt(expr ast.Node) *ast.ExpressionStatement {
	return &ast.ExpressionStatement{Expression: expr}
}

// prop is a shorthand `{ name }` or `{ name = fallback }` pattern property
func prop(name string, fallback ast.Node) *ast.Property {
	var value ast.Node = id(name)
	if fallback != nil {
		value = &ast.AssignmentPattern{Left: id(name), Right: fallback}
	}
	return &ast.Property{Key: id(name), Value: value, Shorthand: true}
}

func fragment(nodes ...ast.Node) *ast.Fragment { return &ast.Fragment{Nodes: nodes} }

func tag(expr ast.Node) *ast.ExpressionTag { return &ast.ExpressionTag{Expression: expr} }

func element(name string, attrs []ast.Node, children ...ast.Node) *ast.RegularElement {
	return &ast.RegularElement{Name: name, Attributes: attrs, Fragment: fragment(children...)}
}

func onClick(handler ast.Node) *ast.Attribute {
	return &ast.Attribute{Name: "onclick", Value: []ast.Node{tag(handler)}}
}

func component(instance []ast.Node, nodes ...ast.Node) *ast.Root {
	root := &ast.Root{Fragment: fragment(nodes...)}
	if instance != nil {
		root.Instance = &ast.Program{Body: instance}
	}
	return root
}

type lowered struct {
	js       string
	features []string
	analysis *scope.Analysis
}

func lower(t *testing.T, root *ast.Root, runes, dev bool) lowered {
	t.Helper()
	analysis := scope.Analyze(root, &runes)
	stmts, features := lowering.LowerComponent(root, analysis, lowering.Options{Dev: dev})
	js := output.NewJsEmitterVisitor(runtime.Aliases()).EmitStatements(stmts).ToSource()
	return lowered{js: js, features: features, analysis: analysis}
}

func assertContains(t *testing.T, js string, parts ...string) {
	t.Helper()
	for _, part := range parts {
		if !strings.Contains(js, part) {
			t.Errorf("expected output to contain\n%s\ngot:\n%s", part, js)
		}
	}
}

func assertNotContains(t *testing.T, js string, parts ...string) {
	t.Helper()
	for _, part := range parts {
		if strings.Contains(js, part) {
			t.Errorf("expected output not to contain\n%s\ngot:\n%s", part, js)
		}
	}
}

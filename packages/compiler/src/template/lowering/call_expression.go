package lowering

import (
	"fmt"

	"github.com/ehtick/svelte/packages/compiler/src/ast"
	"github.com/ehtick/svelte/packages/compiler/src/output"
	"github.com/ehtick/svelte/packages/compiler/src/runtime"
	"github.com/ehtick/svelte/packages/compiler/src/scope"
)

// The console methods whose arguments are checked for reactive state
var consoleMethods = map[string]bool{
	"debug":          true,
	"dir":            true,
	"error":          true,
	"group":          true,
	"groupCollapsed": true,
	"info":           true,
	"log":            true,
	"trace":          true,
	"warn":           true,
}

const snapshotUncloneable = "state_snapshot_uncloneable"

func (l *Lowerer) callExpression(n *ast.CallExpression) output.OutputExpression {
	primitive := ClassifyPrimitive(n, l.analysis)
	switch primitive {
	case PrimitiveHost:
		return output.Prop(output.Variable(propsName), "$$host")

	case PrimitiveEffectTracking:
		return output.CallFn(output.ImportExpr(runtime.EffectTracking))

	case PrimitiveState, PrimitiveStateRaw:
		var args []output.OutputExpression
		if len(n.Arguments) > 0 {
			value := l.Expression(n.Arguments[0])
			if primitive == PrimitiveState && shouldProxy(n.Arguments[0], l.analysis) {
				value = output.CallFn(output.ImportExpr(runtime.WrapProxy), value)
			}
			args = append(args, value)
		}
		return output.CallFn(output.ImportExpr(runtime.DeclareState), args...)

	case PrimitiveDerived:
		requireArgument(n, primitive)
		return output.CallFn(output.ImportExpr(runtime.DeclareDerived), output.Thunk(l.Expression(n.Arguments[0])))

	case PrimitiveDerivedBy:
		requireArgument(n, primitive)
		return output.CallFn(output.ImportExpr(runtime.DeclareDerived), l.Expression(n.Arguments[0]))

	case PrimitiveSnapshot:
		requireArgument(n, primitive)
		args := []output.OutputExpression{l.Expression(n.Arguments[0])}
		for _, code := range n.Ignores {
			if code == snapshotUncloneable {
				args = append(args, output.TrueExpr)
				break
			}
		}
		return output.CallFn(output.ImportExpr(runtime.Snapshot), args...)

	case PrimitiveEffectRoot:
		return output.CallFn(output.ImportExpr(runtime.EffectRoot), l.expressions(n.Arguments)...)

	case PrimitivePending:
		return output.CallFn(output.ImportExpr(runtime.Pending))

	case PrimitiveInspect, PrimitiveInspectWith:
		return l.inspect(n)

	case PrimitiveEffect:
		return output.CallFn(output.ImportExpr(runtime.UserEffect), l.expressions(n.Arguments)...)

	case PrimitiveEffectPre:
		return output.CallFn(output.ImportExpr(runtime.UserPreEffect), l.expressions(n.Arguments)...)

	case PrimitiveProps:
		return output.Variable(propsName)

	case PrimitiveBindable:
		if len(n.Arguments) == 0 {
			return output.Void0()
		}
		return l.Expression(n.Arguments[0])

	case PrimitiveNone:
		if l.options.Dev {
			if logged := l.consoleCall(n); logged != nil {
				return logged
			}
		}
	}

	return output.CallFn(l.Expression(n.Callee), l.expressions(n.Arguments)...)
}

func requireArgument(n *ast.CallExpression, primitive Primitive) {
	if len(n.Arguments) == 0 {
		panic(fmt.Sprintf("AssertionError: %s requires an argument", primitive))
	}
}

// consoleCall rewrites `console.log(...args)` so that the runtime can warn
// when an argument holds reactive state. Calls whose arguments are all
// statically known are left alone.
func (l *Lowerer) consoleCall(n *ast.CallExpression) output.OutputExpression {
	member, ok := n.Callee.(*ast.MemberExpression)
	if !ok || member.Computed {
		return nil
	}
	object, ok := member.Object.(*ast.Identifier)
	if !ok || object.Name != "console" || l.analysis.Resolve(object) != nil {
		return nil
	}
	method, ok := member.Property.(*ast.Identifier)
	if !ok || !consoleMethods[method.Name] {
		return nil
	}

	unknown := false
	for _, arg := range n.Arguments {
		if _, spread := arg.(*ast.SpreadElement); spread || !l.isStaticallyKnown(arg, 0) {
			unknown = true
			break
		}
	}
	if !unknown {
		return nil
	}

	args := append([]output.OutputExpression{output.Literal(method.Name)}, l.expressions(n.Arguments)...)
	return output.CallFn(
		output.Prop(output.Variable("console"), method.Name),
		output.Spread(output.CallFn(output.ImportExpr(runtime.LogIfContainsState), args...)),
	)
}

const maxEvaluationDepth = 8

// isStaticallyKnown reports whether node evaluates to a value known at
// compile time, following constants through their initializers.
func (l *Lowerer) isStaticallyKnown(node ast.Node, depth int) bool {
	if depth > maxEvaluationDepth {
		return false
	}
	switch n := node.(type) {
	case *ast.Literal:
		return true
	case *ast.TemplateLiteral:
		for _, e := range n.Expressions {
			if !l.isStaticallyKnown(e, depth+1) {
				return false
			}
		}
		return true
	case *ast.UnaryExpression:
		return n.Operator != "delete" && l.isStaticallyKnown(n.Argument, depth+1)
	case *ast.BinaryExpression:
		return l.isStaticallyKnown(n.Left, depth+1) && l.isStaticallyKnown(n.Right, depth+1)
	case *ast.LogicalExpression:
		return l.isStaticallyKnown(n.Left, depth+1) && l.isStaticallyKnown(n.Right, depth+1)
	case *ast.Identifier:
		binding := l.analysis.Resolve(n)
		if binding == nil {
			return n.Name == "undefined"
		}
		return binding.Kind == scope.BindingNormal &&
			binding.DeclarationKind == scope.DeclarationConst &&
			!binding.Updated() &&
			binding.Initial != nil &&
			l.isStaticallyKnown(binding.Initial, depth+1)
	}
	return false
}

// shouldProxy reports whether a state initializer may be an object or array
// that needs deep reactivity.
func shouldProxy(node ast.Node, analysis *scope.Analysis) bool {
	return shouldProxyDepth(node, analysis, 0)
}

func shouldProxyDepth(node ast.Node, analysis *scope.Analysis, depth int) bool {
	switch n := node.(type) {
	case nil:
		return false
	case *ast.Literal, *ast.TemplateLiteral, *ast.ArrowFunctionExpression, *ast.FunctionExpression,
		*ast.UnaryExpression, *ast.BinaryExpression:
		return false
	case *ast.Identifier:
		binding := analysis.Resolve(n)
		if binding == nil {
			return n.Name != "undefined"
		}
		if binding.Initial != nil && !binding.Reassigned && depth < maxEvaluationDepth {
			switch binding.Initial.(type) {
			case *ast.FunctionDeclaration, *ast.ImportDeclaration:
				return true
			}
			return shouldProxyDepth(binding.Initial, analysis, depth+1)
		}
	}
	return true
}

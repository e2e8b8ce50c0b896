package lowering

import (
	"fmt"
	"strings"

	"github.com/ehtick/svelte/packages/compiler/src/ast"
	"github.com/ehtick/svelte/packages/compiler/src/output"
	"github.com/ehtick/svelte/packages/compiler/src/runtime"
	"github.com/ehtick/svelte/packages/compiler/src/scope"
)

func (l *Lowerer) assignment(n *ast.AssignmentExpression) output.OutputExpression {
	switch n.Left.(type) {
	case *ast.ObjectPattern, *ast.ArrayPattern:
		return l.patternAssignment(n)
	}
	return l.assign(n.Operator, n.Left, l.Expression(n.Right), n.Right)
}

// assign lowers `left operator right` where right is already lowered.
// rightNode is the source of right when there is one; it decides proxying.
func (l *Lowerer) assign(operator string, left ast.Node, right output.OutputExpression, rightNode ast.Node) output.OutputExpression {
	switch target := left.(type) {
	case *ast.Identifier:
		binding := l.analysis.Resolve(target)
		if strategy := l.strategies.Lookup(binding); strategy != nil && strategy.Assign != nil {
			return strategy.Assign(target, l.compoundValue(operator, target, right))
		}
		if binding != nil {
			switch binding.Kind {
			case scope.BindingState, scope.BindingRawState, scope.BindingDerived, scope.BindingLegacyReactive:
				value := l.compoundValue(operator, target, right)
				if binding.Kind == scope.BindingState && l.analysis.Runes && operator == "=" && rightNode != nil && shouldProxy(rightNode, l.analysis) {
					value = output.CallFn(output.ImportExpr(runtime.WrapProxy), value)
				}
				return output.CallFn(output.ImportExpr(runtime.Set), output.Variable(target.Name), value)
			case scope.BindingStoreSub:
				return output.CallFn(output.ImportExpr(runtime.StoreSet),
					output.Variable(target.Name[1:]), l.compoundValue(operator, target, right))
			case scope.BindingProp:
				return output.Assign(propAccess(binding), l.compoundValue(operator, target, right))
			}
		}
		return output.NewBinaryOperatorExpr(assignmentOperator(operator), output.Variable(target.Name), right, nil)
	case *ast.MemberExpression:
		mutation := output.NewBinaryOperatorExpr(assignmentOperator(operator), l.member(target), right, nil)
		return l.mutate(target, mutation)
	}
	panic(fmt.Sprintf("AssertionError: cannot assign to %T", left))
}

func assignmentOperator(operator string) output.BinaryOperator {
	op, ok := output.BinaryOperatorFromString(operator)
	if !ok {
		panic(fmt.Sprintf("AssertionError: unknown assignment operator %q", operator))
	}
	return op
}

// compoundValue turns `x op= v` into the value `x op v`
func (l *Lowerer) compoundValue(operator string, target *ast.Identifier, right output.OutputExpression) output.OutputExpression {
	if operator == "=" {
		return right
	}
	op, ok := output.BinaryOperatorFromString(strings.TrimSuffix(operator, "="))
	if !ok {
		panic(fmt.Sprintf("AssertionError: unknown assignment operator %q", operator))
	}
	return output.NewBinaryOperatorExpr(op, l.readIdentifier(target), right, nil)
}

// mutate wraps a write into a member of target's root object
func (l *Lowerer) mutate(target *ast.MemberExpression, mutation output.OutputExpression) output.OutputExpression {
	root, ok := ast.ObjectRoot(target).(*ast.Identifier)
	if !ok {
		return mutation
	}
	binding := l.analysis.Resolve(root)
	if strategy := l.strategies.Lookup(binding); strategy != nil && strategy.Mutate != nil {
		return strategy.Mutate(root, mutation)
	}
	if binding == nil {
		return mutation
	}
	switch binding.Kind {
	case scope.BindingState, scope.BindingLegacyReactive:
		if !l.analysis.Runes {
			return output.CallFn(output.ImportExpr(runtime.Mutate), output.Variable(root.Name), mutation)
		}
	case scope.BindingStoreSub:
		return output.Comma(mutation, invalidateStore(root.Name))
	}
	return mutation
}

func invalidateStore(name string) output.OutputExpression {
	return output.CallFn(output.ImportExpr(runtime.InvalidateStoreBinding), output.Variable(storesName), output.Literal(name))
}

func (l *Lowerer) update(n *ast.UpdateExpression) output.OutputExpression {
	increment := n.Operator == "++"
	op := output.BinaryOperatorPlus
	if !increment {
		op = output.BinaryOperatorMinus
	}

	switch arg := n.Argument.(type) {
	case *ast.Identifier:
		binding := l.analysis.Resolve(arg)
		if strategy := l.strategies.Lookup(binding); strategy != nil && strategy.Assign != nil {
			return strategy.Assign(arg, output.NewBinaryOperatorExpr(op, l.readIdentifier(arg), output.Literal(1), nil))
		}
		if binding != nil {
			switch binding.Kind {
			case scope.BindingState, scope.BindingRawState, scope.BindingDerived, scope.BindingLegacyReactive:
				fn := runtime.Update
				if n.Prefix {
					fn = runtime.UpdatePre
				}
				args := []output.OutputExpression{output.Variable(arg.Name)}
				if !increment {
					args = append(args, output.Literal(-1))
				}
				return output.CallFn(output.ImportExpr(fn), args...)
			case scope.BindingStoreSub:
				return output.CallFn(output.ImportExpr(runtime.StoreSet), output.Variable(arg.Name[1:]),
					output.NewBinaryOperatorExpr(op, l.readIdentifier(arg), output.Literal(1), nil))
			case scope.BindingProp:
				return output.NewUpdateExpr(increment, n.Prefix, propAccess(binding), nil)
			}
		}
		return output.NewUpdateExpr(increment, n.Prefix, output.Variable(arg.Name), nil)
	case *ast.MemberExpression:
		return l.mutate(arg, output.NewUpdateExpr(increment, n.Prefix, l.member(arg), nil))
	}
	panic(fmt.Sprintf("AssertionError: cannot update %T", n.Argument))
}

// patternAssignment lowers `[a, b] = value` and `({a, b} = value)`. The value
// is bound once and every target is assigned through the regular path:
// `(($$value) => { a = $$value[0]; ...; return $$value; })(value)`.
func (l *Lowerer) patternAssignment(n *ast.AssignmentExpression) output.OutputExpression {
	name := l.analysis.Root.Unique("$$value")
	value := output.Variable(name)
	paths, inserts := l.extractPaths(n.Left, value, value, false)

	body := []output.OutputStatement{}
	for _, insert := range inserts {
		body = append(body, output.Const(insert.Name, insert.Value))
	}
	for _, path := range paths {
		body = append(body, output.Stmt(l.assign("=", path.Target, path.Expression, nil)))
	}
	body = append(body, output.Return(value))
	return output.CallFn(output.ArrowFn(output.Params(name), body), l.Expression(n.Right))
}

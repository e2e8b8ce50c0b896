package lowering

import (
	"github.com/ehtick/svelte/packages/compiler/src/ast"
	"github.com/ehtick/svelte/packages/compiler/src/output"
	"github.com/ehtick/svelte/packages/compiler/src/runtime"
)

// inspect lowers `$inspect(...)` and `$inspect(...).with(fn)`. Production
// builds drop the call entirely.
func (l *Lowerer) inspect(n *ast.CallExpression) output.OutputExpression {
	if !l.options.Dev {
		return output.Void0()
	}

	call := n
	var with output.OutputExpression
	if member, ok := n.Callee.(*ast.MemberExpression); ok {
		inner, ok := member.Object.(*ast.CallExpression)
		if !ok {
			panic("AssertionError: $inspect().with must be called on an $inspect call")
		}
		call = inner
		if len(n.Arguments) > 0 {
			with = l.Expression(n.Arguments[0])
		}
	}

	args := []output.OutputExpression{output.ArrowFn(nil, output.LiteralArr(l.expressions(call.Arguments)...))}
	if with != nil {
		args = append(args, with)
	}
	return output.CallFn(output.ImportExpr(runtime.Inspect), args...)
}

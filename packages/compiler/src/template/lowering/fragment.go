package lowering

import (
	"fmt"
	"strings"

	"github.com/ehtick/svelte/packages/compiler/src/ast"
	"github.com/ehtick/svelte/packages/compiler/src/output"
	"github.com/ehtick/svelte/packages/compiler/src/runtime"
)

// Transition flags passed to $.transition
const (
	transitionIn  = 0b1
	transitionOut = 0b10
)

// Fragment lowers a template fragment whose nodes are inserted at anchor
func (l *Lowerer) Fragment(fragment *ast.Fragment, anchor output.OutputExpression) []output.OutputStatement {
	out := []output.OutputStatement{}
	if fragment == nil {
		return out
	}
	for _, node := range fragment.Nodes {
		out = append(out, l.withSpan(node, l.templateNode(node, anchor))...)
	}
	return out
}

func (l *Lowerer) templateNode(node ast.Node, anchor output.OutputExpression) []output.OutputStatement {
	switch n := node.(type) {
	case *ast.Comment:
		return nil
	case *ast.Text:
		if strings.TrimSpace(n.Data) == "" {
			return nil
		}
		return []output.OutputStatement{output.Stmt(output.CallFn(output.ImportExpr(runtime.Text), anchor, output.Literal(n.Data)))}
	case *ast.ExpressionTag:
		return []output.OutputStatement{output.Stmt(output.CallFn(output.ImportExpr(runtime.Text), anchor, output.ArrowFn(nil, l.Expression(n.Expression))))}
	case *ast.RegularElement:
		return l.element(n, anchor)
	case *ast.EachBlock:
		return l.EachBlock(n, anchor)
	}
	panic(fmt.Sprintf("AssertionError: unexpected template node %T", node))
}

func (l *Lowerer) element(n *ast.RegularElement, anchor output.OutputExpression) []output.OutputStatement {
	name := l.analysis.Root.Unique(n.Name)
	el := output.Variable(name)
	out := []output.OutputStatement{
		output.Const(name, output.CallFn(output.ImportExpr(runtime.Element), anchor, output.Literal(n.Name))),
	}

	for _, attr := range n.Attributes {
		switch a := attr.(type) {
		case *ast.Attribute:
			out = append(out, l.attribute(el, a))
		case *ast.BindDirective:
			out = append(out, output.Stmt(output.CallFn(output.ImportExpr(runtime.Bind),
				el,
				output.Literal(a.Name),
				output.ArrowFn(nil, l.Expression(a.Expression)),
				output.ArrowFn(output.Params("$$value"), l.assign("=", a.Expression, output.Variable("$$value"), nil)),
			)))
		case *ast.AnimateDirective:
			args := []output.OutputExpression{el, output.ArrowFn(nil, l.readName(a.Name))}
			if a.Expression != nil {
				args = append(args, output.ArrowFn(nil, l.Expression(a.Expression)))
			}
			out = append(out, output.Stmt(output.CallFn(output.ImportExpr(runtime.Animation), args...)))
		case *ast.TransitionDirective:
			flags := 0
			if a.Intro {
				flags |= transitionIn
			}
			if a.Outro {
				flags |= transitionOut
			}
			if flags == 0 {
				flags = transitionIn | transitionOut
			}
			args := []output.OutputExpression{output.Literal(flags), el, output.ArrowFn(nil, l.readName(a.Name))}
			if a.Expression != nil {
				args = append(args, output.ArrowFn(nil, l.Expression(a.Expression)))
			}
			out = append(out, output.Stmt(output.CallFn(output.ImportExpr(runtime.Transition), args...)))
		default:
			panic(fmt.Sprintf("AssertionError: unexpected attribute %T", attr))
		}
	}

	return append(out, l.Fragment(n.Fragment, el)...)
}

func (l *Lowerer) attribute(el output.OutputExpression, a *ast.Attribute) output.OutputStatement {
	if strings.HasPrefix(a.Name, "on") && len(a.Value) == 1 {
		if tag, ok := a.Value[0].(*ast.ExpressionTag); ok {
			return output.Stmt(output.CallFn(output.ImportExpr(runtime.Event),
				el, output.Literal(a.Name[2:]), l.Expression(tag.Expression)))
		}
	}

	value, dynamic := l.attributeValue(a.Value)
	if dynamic {
		value = output.ArrowFn(nil, value)
	}
	return output.Stmt(output.CallFn(output.ImportExpr(runtime.Attr), el, output.Literal(a.Name), value))
}

// attributeValue lowers the parts of an attribute value. Several parts are
// concatenated into a string.
func (l *Lowerer) attributeValue(parts []ast.Node) (output.OutputExpression, bool) {
	if parts == nil {
		return output.TrueExpr, false
	}
	if len(parts) == 0 {
		return output.Literal(""), false
	}
	dynamic := false
	lowered := make([]output.OutputExpression, 0, len(parts))
	for _, part := range parts {
		switch p := part.(type) {
		case *ast.Text:
			lowered = append(lowered, output.Literal(p.Data))
		case *ast.ExpressionTag:
			dynamic = true
			lowered = append(lowered, l.Expression(p.Expression))
		default:
			panic(fmt.Sprintf("AssertionError: unexpected attribute value %T", part))
		}
	}
	if len(lowered) == 1 {
		return lowered[0], dynamic
	}
	if _, ok := parts[0].(*ast.Text); !ok {
		lowered = append([]output.OutputExpression{output.Literal("")}, lowered...)
	}
	value := lowered[0]
	for _, part := range lowered[1:] {
		value = output.NewBinaryOperatorExpr(output.BinaryOperatorPlus, value, part, nil)
	}
	return value, dynamic
}

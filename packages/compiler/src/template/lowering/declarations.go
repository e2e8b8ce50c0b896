package lowering

import (
	"github.com/ehtick/svelte/packages/compiler/src/ast"
	"github.com/ehtick/svelte/packages/compiler/src/output"
	"github.com/ehtick/svelte/packages/compiler/src/runtime"
	"github.com/ehtick/svelte/packages/compiler/src/scope"
)

func (l *Lowerer) variableDeclaration(n *ast.VariableDeclaration) []output.OutputStatement {
	modifiers := output.StmtModifierNone
	if n.Kind == "const" {
		modifiers = output.StmtModifierFinal
	}

	var out []output.OutputStatement
	for _, d := range n.Declarations {
		if call, ok := d.Init.(*ast.CallExpression); ok && ClassifyPrimitive(call, l.analysis) == PrimitiveProps {
			out = append(out, l.propsDeclaration(d.ID)...)
			continue
		}

		if id, ok := d.ID.(*ast.Identifier); ok {
			binding := l.scope.Get(id.Name)
			if binding != nil && binding.Kind == scope.BindingProp {
				continue
			}
			var init output.OutputExpression
			if d.Init != nil {
				init = l.Expression(d.Init)
			}
			if l.isMutableSource(binding) {
				var args []output.OutputExpression
				if init != nil {
					args = append(args, init)
				}
				init = output.CallFn(output.ImportExpr(runtime.MutableSource), args...)
			}
			out = append(out, output.NewDeclareVarStmt(id.Name, init, modifiers, nil))
			continue
		}

		out = append(out, l.patternDeclaration(d, modifiers)...)
	}
	return out
}

// isMutableSource reports whether a legacy binding needs a signal
func (l *Lowerer) isMutableSource(binding *scope.Binding) bool {
	if l.analysis.Runes || binding == nil {
		return false
	}
	return binding.Kind == scope.BindingState || binding.Kind == scope.BindingLegacyReactive
}

// propsDeclaration lowers `let {...} = $props()`. Named props are read from
// the props object where they are used; only a rest element or a whole-object
// binding produces a declaration.
func (l *Lowerer) propsDeclaration(id ast.Node) []output.OutputStatement {
	switch p := id.(type) {
	case *ast.Identifier:
		return []output.OutputStatement{output.Const(p.Name, output.Variable(propsName))}
	case *ast.ObjectPattern:
		var seen []output.OutputExpression
		for _, prop := range p.Properties {
			switch prop := prop.(type) {
			case *ast.Property:
				key, _ := ast.PropertyKeyName(prop)
				seen = append(seen, output.Literal(key))
			case *ast.RestElement:
				rest, ok := prop.Argument.(*ast.Identifier)
				if !ok {
					panic("AssertionError: props rest element must be an identifier")
				}
				return []output.OutputStatement{output.Const(rest.Name, output.CallFn(
					output.ImportExpr(runtime.RestProps), output.Variable(propsName), output.LiteralArr(seen...)))}
			}
		}
	}
	return nil
}

// patternDeclaration lowers a destructuring declaration. In legacy mode a
// pattern declaring state is split so every state leaf gets its own signal.
func (l *Lowerer) patternDeclaration(d *ast.VariableDeclarator, modifiers output.StmtModifier) []output.OutputStatement {
	var init output.OutputExpression
	if d.Init != nil {
		init = l.Expression(d.Init)
	}

	split := false
	for _, id := range ast.ExtractIdentifiers(d.ID) {
		if l.isMutableSource(l.scope.Get(id.Name)) {
			split = true
		}
	}
	if !split {
		decl := output.NewDeclareVarStmt("", init, modifiers, nil)
		decl.Pattern = l.pattern(d.ID)
		return []output.OutputStatement{decl}
	}

	tmp := l.analysis.Root.Unique("$$value")
	out := []output.OutputStatement{output.Const(tmp, init)}
	paths, inserts := l.extractPaths(d.ID, output.Variable(tmp), output.Variable(tmp), false)
	for _, insert := range inserts {
		out = append(out, output.Const(insert.Name, insert.Value))
	}
	for _, path := range paths {
		id := path.Target.(*ast.Identifier)
		value := path.Expression
		if l.isMutableSource(l.scope.Get(id.Name)) {
			value = output.CallFn(output.ImportExpr(runtime.MutableSource), value)
			out = append(out, output.Let(id.Name, value))
			continue
		}
		out = append(out, output.NewDeclareVarStmt(id.Name, value, modifiers, nil))
	}
	return out
}

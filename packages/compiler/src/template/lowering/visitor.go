package lowering

import (
	"fmt"

	"github.com/ehtick/svelte/packages/compiler/src/ast"
	"github.com/ehtick/svelte/packages/compiler/src/output"
	"github.com/ehtick/svelte/packages/compiler/src/runtime"
	"github.com/ehtick/svelte/packages/compiler/src/scope"
)

const (
	propsName  = "$$props"
	storesName = "$$stores"
	anchorName = "$$anchor"
)

// Expression lowers a script expression
func (l *Lowerer) Expression(node ast.Node) output.OutputExpression {
	switch n := node.(type) {
	case nil:
		return nil
	case *ast.Identifier:
		return l.readIdentifier(n)
	case *ast.Literal:
		return lowerLiteral(n)
	case *ast.TemplateLiteral:
		elements := make([]*output.TemplateLiteralElementExpr, len(n.Quasis))
		for i, quasi := range n.Quasis {
			elements[i] = output.NewTemplateLiteralElementExpr(quasi, nil, quasi)
		}
		return output.NewTemplateLiteralExpr(elements, l.expressions(n.Expressions), nil)
	case *ast.MemberExpression:
		return l.member(n)
	case *ast.CallExpression:
		return l.callExpression(n)
	case *ast.NewExpression:
		return output.NewInstantiateExpr(l.Expression(n.Callee), l.expressions(n.Arguments), nil)
	case *ast.ArrowFunctionExpression:
		return l.arrowFunction(n)
	case *ast.FunctionExpression:
		return l.functionExpression(n)
	case *ast.AssignmentExpression:
		return l.assignment(n)
	case *ast.UpdateExpression:
		return l.update(n)
	case *ast.BinaryExpression:
		return l.binary(n.Operator, n.Left, n.Right)
	case *ast.LogicalExpression:
		return l.binary(n.Operator, n.Left, n.Right)
	case *ast.UnaryExpression:
		return l.unary(n)
	case *ast.ConditionalExpression:
		return output.NewConditionalExpr(l.Expression(n.Test), l.Expression(n.Consequent), l.Expression(n.Alternate), nil)
	case *ast.ArrayExpression:
		return output.NewLiteralArrayExpr(l.expressions(n.Elements), nil)
	case *ast.ObjectExpression:
		return l.object(n)
	case *ast.SpreadElement:
		return output.Spread(l.Expression(n.Argument))
	case *ast.SequenceExpression:
		return output.NewCommaExpr(l.expressions(n.Expressions), nil)
	case *ast.AwaitExpression:
		return output.NewAwaitExpr(l.Expression(n.Argument), nil)
	}
	panic(fmt.Sprintf("AssertionError: unexpected expression %T", node))
}

// expressions lowers a list, keeping nil holes
func (l *Lowerer) expressions(nodes []ast.Node) []output.OutputExpression {
	out := make([]output.OutputExpression, len(nodes))
	for i, n := range nodes {
		if n != nil {
			out[i] = l.Expression(n)
		}
	}
	return out
}

func lowerLiteral(n *ast.Literal) output.OutputExpression {
	switch v := n.Value.(type) {
	case nil:
		if n.Raw != "" && n.Raw != "null" {
			return output.Literal(output.RawLiteral(n.Raw))
		}
		return output.NullExpr
	case float64:
		if n.Raw != "" {
			return output.Literal(output.RawLiteral(n.Raw))
		}
		return output.Literal(v)
	default:
		return output.Literal(v)
	}
}

func (l *Lowerer) member(n *ast.MemberExpression) output.OutputExpression {
	object := l.Expression(n.Object)
	if n.Computed {
		read := output.Key(object, l.Expression(n.Property))
		read.Optional = n.Optional
		return read
	}
	prop, ok := n.Property.(*ast.Identifier)
	if !ok {
		panic("AssertionError: non-computed member property must be an identifier")
	}
	read := output.Prop(object, prop.Name)
	read.Optional = n.Optional
	return read
}

func (l *Lowerer) binary(operator string, left, right ast.Node) output.OutputExpression {
	op, ok := output.BinaryOperatorFromString(operator)
	if !ok {
		panic(fmt.Sprintf("AssertionError: unknown binary operator %q", operator))
	}
	return output.NewBinaryOperatorExpr(op, l.Expression(left), l.Expression(right), nil)
}

func (l *Lowerer) unary(n *ast.UnaryExpression) output.OutputExpression {
	argument := l.Expression(n.Argument)
	switch n.Operator {
	case "!":
		return output.Not(argument)
	case "typeof":
		return output.NewTypeofExpr(argument, nil)
	case "void":
		return output.NewVoidExpr(argument, nil)
	case "-":
		return output.NewUnaryOperatorExpr(output.UnaryOperatorMinus, argument, nil)
	case "+":
		return output.NewUnaryOperatorExpr(output.UnaryOperatorPlus, argument, nil)
	case "~":
		return output.NewUnaryOperatorExpr(output.UnaryOperatorBitwiseNot, argument, nil)
	case "delete":
		return output.NewUnaryOperatorExpr(output.UnaryOperatorDelete, argument, nil)
	}
	panic(fmt.Sprintf("AssertionError: unknown unary operator %q", n.Operator))
}

func (l *Lowerer) object(n *ast.ObjectExpression) output.OutputExpression {
	entries := make([]*output.LiteralMapEntry, 0, len(n.Properties))
	for _, p := range n.Properties {
		switch p := p.(type) {
		case *ast.SpreadElement:
			entries = append(entries, &output.LiteralMapEntry{Value: l.Expression(p.Argument), Spread: true})
		case *ast.Property:
			value := l.Expression(p.Value)
			if p.Computed {
				entries = append(entries, &output.LiteralMapEntry{Computed: l.Expression(p.Key), Value: value})
				continue
			}
			key, _ := ast.PropertyKeyName(p)
			_, quoted := p.Key.(*ast.Literal)
			if lit, ok := p.Key.(*ast.Literal); ok {
				if _, isNumber := lit.Value.(float64); isNumber {
					quoted = false
				}
			}
			entries = append(entries, output.NewLiteralMapEntry(key, value, quoted))
		}
	}
	return output.NewLiteralMapExpr(entries, nil)
}

// readIdentifier lowers a read of id, consulting installed strategies first
func (l *Lowerer) readIdentifier(id *ast.Identifier) output.OutputExpression {
	binding := l.analysis.Resolve(id)
	if strategy := l.strategies.Lookup(binding); strategy != nil && strategy.Read != nil {
		return strategy.Read(id)
	}
	return l.readBinding(binding, id.Name)
}

// readName resolves name in the current scope and reads it. Used for names
// that appear outside expressions, such as directive names.
func (l *Lowerer) readName(name string) output.OutputExpression {
	binding := l.scope.Get(name)
	if strategy := l.strategies.Lookup(binding); strategy != nil && strategy.Read != nil {
		return strategy.Read(&ast.Identifier{Name: name})
	}
	return l.readBinding(binding, name)
}

// readBinding is the default read of a binding by kind. A nil binding is a
// global.
func (l *Lowerer) readBinding(binding *scope.Binding, name string) output.OutputExpression {
	if binding == nil {
		return output.Variable(name)
	}
	switch binding.Kind {
	case scope.BindingState, scope.BindingRawState, scope.BindingDerived, scope.BindingLegacyReactive:
		return output.CallFn(output.ImportExpr(runtime.Get), output.Variable(name))
	case scope.BindingProp:
		return l.readProp(binding)
	case scope.BindingStoreSub:
		return output.CallFn(output.ImportExpr(runtime.StoreGet),
			output.Variable(name[1:]), output.Literal(name), output.Variable(storesName))
	}
	return output.Variable(name)
}

func (l *Lowerer) readProp(binding *scope.Binding) output.OutputExpression {
	read := propAccess(binding)
	if binding.Initial == nil {
		return read
	}
	return output.CallFn(output.ImportExpr(runtime.Fallback), append([]output.OutputExpression{read}, l.fallbackArgs(binding.Initial)...)...)
}

func propAccess(binding *scope.Binding) *output.ReadPropExpr {
	alias := binding.PropAlias
	if alias == "" {
		alias = binding.Name
	}
	return output.Prop(output.Variable(propsName), alias)
}

// fallbackArgs lowers a default value for $.fallback. Values that may have
// side effects are passed lazily.
func (l *Lowerer) fallbackArgs(value ast.Node) []output.OutputExpression {
	if isSimpleExpression(value) {
		return []output.OutputExpression{l.Expression(value)}
	}
	return []output.OutputExpression{output.Thunk(l.Expression(value)), output.TrueExpr}
}

// isSimpleExpression reports whether evaluating node more than once is
// harmless.
func isSimpleExpression(node ast.Node) bool {
	switch n := node.(type) {
	case *ast.Literal, *ast.Identifier, *ast.ArrowFunctionExpression, *ast.FunctionExpression:
		return true
	case *ast.TemplateLiteral:
		return len(n.Expressions) == 0
	case *ast.UnaryExpression:
		return isSimpleExpression(n.Argument)
	}
	return false
}

// pattern lowers a binding pattern. Default values are lowered as
// expressions in the current scope.
func (l *Lowerer) pattern(node ast.Node) output.OutputExpression {
	switch p := node.(type) {
	case *ast.Identifier:
		return output.Variable(p.Name)
	case *ast.ObjectPattern:
		var props []*output.PatternProperty
		var rest output.OutputExpression
		for _, prop := range p.Properties {
			switch prop := prop.(type) {
			case *ast.Property:
				entry := &output.PatternProperty{Value: l.pattern(prop.Value)}
				if prop.Computed {
					entry.Computed = l.Expression(prop.Key)
				} else {
					entry.Key, _ = ast.PropertyKeyName(prop)
				}
				props = append(props, entry)
			case *ast.RestElement:
				rest = l.pattern(prop.Argument)
			}
		}
		return output.NewObjectPatternExpr(props, rest, nil)
	case *ast.ArrayPattern:
		elements := make([]output.OutputExpression, len(p.Elements))
		for i, el := range p.Elements {
			if el != nil {
				elements[i] = l.pattern(el)
			}
		}
		return output.NewArrayPatternExpr(elements, nil)
	case *ast.AssignmentPattern:
		return output.NewDefaultValueExpr(l.pattern(p.Left), l.Expression(p.Right), nil)
	case *ast.RestElement:
		return output.Spread(l.pattern(p.Argument))
	}
	panic(fmt.Sprintf("AssertionError: unexpected pattern %T", node))
}

func (l *Lowerer) params(nodes []ast.Node) []*output.FnParam {
	params := make([]*output.FnParam, len(nodes))
	for i, n := range nodes {
		params[i] = output.NewPatternParam(l.pattern(n))
	}
	return params
}

func (l *Lowerer) arrowFunction(n *ast.ArrowFunctionExpression) output.OutputExpression {
	defer l.enter(l.analysis.Scopes[n])()
	params := l.params(n.Params)
	var body interface{}
	if block, ok := n.Body.(*ast.BlockStatement); ok {
		body = l.Statements(block.Body)
	} else {
		body = l.Expression(n.Body)
	}
	fn := output.NewArrowFunctionExpr(params, body, nil)
	fn.Async = n.Async
	return fn
}

func (l *Lowerer) functionExpression(n *ast.FunctionExpression) output.OutputExpression {
	defer l.enter(l.analysis.Scopes[n])()
	var name *string
	if n.ID != nil {
		name = &n.ID.Name
	}
	var body []output.OutputStatement
	if n.Body != nil {
		body = l.Statements(n.Body.Body)
	}
	fn := output.NewFunctionExpr(l.params(n.Params), body, nil, name)
	fn.Async = n.Async
	return fn
}

// Statements lowers a statement list
func (l *Lowerer) Statements(nodes []ast.Node) []output.OutputStatement {
	out := []output.OutputStatement{}
	for _, n := range nodes {
		out = append(out, l.withSpan(n, l.Statement(n))...)
	}
	return out
}

// Statement lowers one statement. Some statements expand to several, some
// (prop declarations) to none.
func (l *Lowerer) Statement(node ast.Node) []output.OutputStatement {
	switch n := node.(type) {
	case *ast.ExpressionStatement:
		return []output.OutputStatement{output.Stmt(l.Expression(n.Expression))}
	case *ast.VariableDeclaration:
		return l.variableDeclaration(n)
	case *ast.FunctionDeclaration:
		return []output.OutputStatement{l.functionDeclaration(n, output.StmtModifierNone)}
	case *ast.BlockStatement:
		defer l.enter(l.analysis.Scopes[n])()
		return l.Statements(n.Body)
	case *ast.ReturnStatement:
		return []output.OutputStatement{output.Return(l.Expression(n.Argument))}
	case *ast.IfStatement:
		var alternate []output.OutputStatement
		if n.Alternate != nil {
			alternate = l.Statement(n.Alternate)
		}
		return []output.OutputStatement{output.NewIfStmt(l.Expression(n.Test), l.Statement(n.Consequent), alternate, nil)}
	case *ast.LabeledStatement:
		return l.Statement(n.Body)
	case *ast.ImportDeclaration:
		return []output.OutputStatement{lowerImport(n)}
	case *ast.ExportNamedDeclaration:
		return l.exportDeclaration(n)
	}
	panic(fmt.Sprintf("AssertionError: unexpected statement %T", node))
}

func (l *Lowerer) functionDeclaration(n *ast.FunctionDeclaration, modifiers output.StmtModifier) output.OutputStatement {
	defer l.enter(l.analysis.Scopes[n])()
	var body []output.OutputStatement
	if n.Body != nil {
		body = l.Statements(n.Body.Body)
	}
	name := ""
	if n.ID != nil {
		name = n.ID.Name
	}
	decl := output.NewDeclareFunctionStmt(name, l.params(n.Params), body, modifiers, nil)
	decl.Async = n.Async
	return decl
}

func lowerImport(n *ast.ImportDeclaration) output.OutputStatement {
	specs := make([]output.ImportSpecifier, len(n.Specifiers))
	for i, s := range n.Specifiers {
		specs[i] = output.ImportSpecifier{Imported: s.Imported, Local: s.Local}
	}
	return output.NewImportStmt(specs, n.Source, nil)
}

// exportDeclaration keeps exports of the module script. Instance exports are
// props (`export let`) or plain declarations.
func (l *Lowerer) exportDeclaration(n *ast.ExportNamedDeclaration) []output.OutputStatement {
	if l.scope != l.analysis.ModuleScope {
		return l.Statement(n.Declaration)
	}
	lowered := l.Statement(n.Declaration)
	for _, stmt := range lowered {
		switch s := stmt.(type) {
		case *output.DeclareVarStmt:
			s.Modifiers |= output.StmtModifierExported
		case *output.DeclareFunctionStmt:
			s.Modifiers |= output.StmtModifierExported
		}
	}
	return lowered
}

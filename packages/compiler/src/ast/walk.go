package ast

// Children returns the direct child nodes of n in source order. Nil children
// (array holes, missing optional parts) are skipped.
func Children(n Node) []Node {
	var out []Node
	add := func(nodes ...Node) {
		for _, c := range nodes {
			if !isNil(c) {
				out = append(out, c)
			}
		}
	}

	switch n := n.(type) {
	case *Root:
		if n.Module != nil {
			add(n.Module)
		}
		if n.Instance != nil {
			add(n.Instance)
		}
		if n.Fragment != nil {
			add(n.Fragment)
		}
	case *Fragment:
		add(n.Nodes...)
	case *ExpressionTag:
		add(n.Expression)
	case *RegularElement:
		add(n.Attributes...)
		if n.Fragment != nil {
			add(n.Fragment)
		}
	case *Attribute:
		add(n.Value...)
	case *BindDirective:
		add(n.Expression)
	case *AnimateDirective:
		add(n.Expression)
	case *TransitionDirective:
		add(n.Expression)
	case *EachBlock:
		add(n.Expression, n.Context, n.Key)
		if n.Body != nil {
			add(n.Body)
		}
		if n.Fallback != nil {
			add(n.Fallback)
		}
	case *Program:
		add(n.Body...)
	case *ExpressionStatement:
		add(n.Expression)
	case *VariableDeclaration:
		for _, d := range n.Declarations {
			add(d)
		}
	case *VariableDeclarator:
		add(n.ID, n.Init)
	case *FunctionDeclaration:
		if n.ID != nil {
			add(n.ID)
		}
		add(n.Params...)
		if n.Body != nil {
			add(n.Body)
		}
	case *BlockStatement:
		add(n.Body...)
	case *ReturnStatement:
		add(n.Argument)
	case *IfStatement:
		add(n.Test, n.Consequent, n.Alternate)
	case *LabeledStatement:
		if n.Label != nil {
			add(n.Label)
		}
		add(n.Body)
	case *ImportDeclaration:
		for _, s := range n.Specifiers {
			add(s)
		}
	case *ExportNamedDeclaration:
		add(n.Declaration)
	case *TemplateLiteral:
		add(n.Expressions...)
	case *MemberExpression:
		add(n.Object, n.Property)
	case *CallExpression:
		add(n.Callee)
		add(n.Arguments...)
	case *NewExpression:
		add(n.Callee)
		add(n.Arguments...)
	case *ArrowFunctionExpression:
		add(n.Params...)
		add(n.Body)
	case *FunctionExpression:
		if n.ID != nil {
			add(n.ID)
		}
		add(n.Params...)
		if n.Body != nil {
			add(n.Body)
		}
	case *AssignmentExpression:
		add(n.Left, n.Right)
	case *UpdateExpression:
		add(n.Argument)
	case *BinaryExpression:
		add(n.Left, n.Right)
	case *LogicalExpression:
		add(n.Left, n.Right)
	case *UnaryExpression:
		add(n.Argument)
	case *ConditionalExpression:
		add(n.Test, n.Consequent, n.Alternate)
	case *ArrayExpression:
		add(n.Elements...)
	case *ObjectExpression:
		add(n.Properties...)
	case *Property:
		add(n.Key, n.Value)
	case *SpreadElement:
		add(n.Argument)
	case *SequenceExpression:
		add(n.Expressions...)
	case *AwaitExpression:
		add(n.Argument)
	case *ObjectPattern:
		add(n.Properties...)
	case *ArrayPattern:
		add(n.Elements...)
	case *AssignmentPattern:
		add(n.Left, n.Right)
	case *RestElement:
		add(n.Argument)
	}
	return out
}

// Inspect traverses the tree depth-first, calling f for each node. If f
// returns false the children of that node are skipped.
func Inspect(n Node, f func(Node) bool) {
	if isNil(n) || !f(n) {
		return
	}
	for _, c := range Children(n) {
		Inspect(c, f)
	}
}

// isNil reports whether n is nil or a typed nil pointer
func isNil(n Node) bool {
	if n == nil {
		return true
	}
	switch v := n.(type) {
	case *Identifier:
		return v == nil
	case *BlockStatement:
		return v == nil
	case *Fragment:
		return v == nil
	case *Program:
		return v == nil
	}
	return false
}

// ExtractIdentifiers returns the identifiers a binding pattern declares, in
// source order.
func ExtractIdentifiers(pattern Node) []*Identifier {
	var ids []*Identifier
	var walk func(Node)
	walk = func(p Node) {
		switch p := p.(type) {
		case *Identifier:
			ids = append(ids, p)
		case *ObjectPattern:
			for _, prop := range p.Properties {
				switch prop := prop.(type) {
				case *Property:
					walk(prop.Value)
				case *RestElement:
					walk(prop.Argument)
				}
			}
		case *ArrayPattern:
			for _, el := range p.Elements {
				if el != nil {
					walk(el)
				}
			}
		case *AssignmentPattern:
			walk(p.Left)
		case *RestElement:
			walk(p.Argument)
		}
	}
	walk(pattern)
	return ids
}

// ObjectRoot returns the innermost object of a member chain, or the node
// itself when it is not a member expression.
func ObjectRoot(n Node) Node {
	for {
		m, ok := n.(*MemberExpression)
		if !ok {
			return n
		}
		n = m.Object
	}
}

package output

// Shorthand constructors used by the lowering passes. None of them attach a
// source span; callers that have one use the New* constructors directly.

func Variable(name string) *ReadVarExpr {
	return NewReadVarExpr(name, nil)
}

func Literal(value interface{}) *LiteralExpr {
	return NewLiteralExpr(value, nil)
}

func LiteralArr(entries ...OutputExpression) *LiteralArrayExpr {
	if entries == nil {
		entries = []OutputExpression{}
	}
	return NewLiteralArrayExpr(entries, nil)
}

func ImportExpr(ref *ExternalReference) *ExternalExpr {
	return NewExternalExpr(ref, nil)
}

// CallFn invokes fn with args
func CallFn(fn OutputExpression, args ...OutputExpression) *InvokeFunctionExpr {
	if args == nil {
		args = []OutputExpression{}
	}
	return NewInvokeFunctionExpr(fn, args, nil, false)
}

// Prop reads receiver.name
func Prop(receiver OutputExpression, name string) *ReadPropExpr {
	return NewReadPropExpr(receiver, name, nil)
}

// Key reads receiver[index]
func Key(receiver, index OutputExpression) *ReadKeyExpr {
	return NewReadKeyExpr(receiver, index, nil)
}

// Params builds plain identifier parameters
func Params(names ...string) []*FnParam {
	params := make([]*FnParam, len(names))
	for i, name := range names {
		params[i] = NewFnParam(name)
	}
	return params
}

// ArrowFn builds an arrow function; body is an expression or []OutputStatement
func ArrowFn(params []*FnParam, body interface{}) *ArrowFunctionExpr {
	if params == nil {
		params = []*FnParam{}
	}
	return NewArrowFunctionExpr(params, body, nil)
}

// Thunk wraps expr in `() => expr`. A call with no arguments is unwrapped to
// a bare identifier callee.
func Thunk(expr OutputExpression) OutputExpression {
	if call, ok := expr.(*InvokeFunctionExpr); ok && len(call.Args) == 0 {
		if fn, ok := call.Fn.(*ReadVarExpr); ok {
			return fn
		}
	}
	return ArrowFn(nil, expr)
}

// Comma joins parts into a sequence; a single part is returned as is
func Comma(parts ...OutputExpression) OutputExpression {
	if len(parts) == 1 {
		return parts[0]
	}
	return NewCommaExpr(parts, nil)
}

func Assign(target, value OutputExpression) *BinaryOperatorExpr {
	return NewBinaryOperatorExpr(BinaryOperatorAssign, target, value, nil)
}

func Spread(expr OutputExpression) *SpreadElementExpr {
	return NewSpreadElementExpr(expr, nil)
}

func Not(expr OutputExpression) *NotExpr {
	return NewNotExpr(expr, nil)
}

func Stmt(expr OutputExpression) *ExpressionStatement {
	return NewExpressionStatement(expr, nil)
}

// Let declares a mutable variable
func Let(name string, value OutputExpression) *DeclareVarStmt {
	return NewDeclareVarStmt(name, value, StmtModifierNone, nil)
}

// Const declares a final variable
func Const(name string, value OutputExpression) *DeclareVarStmt {
	return NewDeclareVarStmt(name, value, StmtModifierFinal, nil)
}

func Return(value OutputExpression) *ReturnStatement {
	return NewReturnStatement(value, nil)
}

// Void0 is `void 0`
func Void0() *VoidExpr {
	return NewVoidExpr(Literal(0), nil)
}

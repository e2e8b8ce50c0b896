package output

import (
	"strings"
)

// JsEmitterVisitor prints output statements as ES module JavaScript.
type JsEmitterVisitor struct {
	*AbstractEmitterVisitor
	// aliases maps a module name to the namespace identifier it is imported as.
	aliases map[string]string
}

// NewJsEmitterVisitor creates an emitter. External references into a module
// listed in aliases print as `alias.name`.
func NewJsEmitterVisitor(aliases map[string]string) *JsEmitterVisitor {
	v := &JsEmitterVisitor{
		AbstractEmitterVisitor: NewAbstractEmitterVisitor(false),
		aliases:                aliases,
	}
	v.self = v
	return v
}

// EmitStatements prints statements into a fresh context and returns it.
func (v *JsEmitterVisitor) EmitStatements(stmts []OutputStatement) *EmitterVisitorContext {
	ctx := CreateRootEmitterVisitorContext()
	v.VisitAllStatements(stmts, ctx)
	return ctx
}

// EmitExpression prints a single expression, mainly for tests and diagnostics.
func (v *JsEmitterVisitor) EmitExpression(expr OutputExpression) string {
	ctx := CreateRootEmitterVisitorContext()
	v.visitBare(expr, ctx)
	return ctx.ToSource()
}

// VisitExternalExpr visits an external reference
func (v *JsEmitterVisitor) VisitExternalExpr(ast *ExternalExpr, context interface{}) interface{} {
	ctx := v.getContext(context)
	v.needsParens(ast)
	if ast.Value.Name == nil {
		panic("AssertionError: external reference without a name")
	}
	if ast.Value.ModuleName != nil {
		if alias, ok := v.aliases[*ast.Value.ModuleName]; ok {
			ctx.Print(ast, alias+".", false)
		}
	}
	ctx.Print(ast, *ast.Value.Name, false)
	return nil
}

// VisitFunctionExpr visits a function expression
func (v *JsEmitterVisitor) VisitFunctionExpr(ast *FunctionExpr, context interface{}) interface{} {
	ctx := v.getContext(context)
	v.needsParens(ast)
	if ast.Async {
		ctx.Print(ast, "async ", false)
	}
	ctx.Print(ast, "function", false)
	if ast.Name != nil {
		ctx.Print(ast, " "+*ast.Name, false)
	}
	ctx.Print(ast, "(", false)
	v.visitParams(ast.Params, ctx)
	ctx.Print(ast, ") ", false)
	v.printBlock(ast, ast.Statements, ctx)
	return nil
}

// VisitArrowFunctionExpr visits an arrow function expression
func (v *JsEmitterVisitor) VisitArrowFunctionExpr(ast *ArrowFunctionExpr, context interface{}) interface{} {
	ctx := v.getContext(context)
	parens := v.needsParens(ast)
	if parens {
		ctx.Print(ast, "(", false)
	}
	if ast.Async {
		ctx.Print(ast, "async ", false)
	}
	ctx.Print(ast, "(", false)
	v.visitParams(ast.Params, ctx)
	ctx.Print(ast, ") => ", false)

	switch body := ast.Body.(type) {
	case []OutputStatement:
		v.printBlock(ast, body, ctx)
	case OutputExpression:
		if _, ok := body.(*LiteralMapExpr); ok {
			ctx.Print(ast, "(", false)
			v.visitBare(body, ctx)
			ctx.Print(ast, ")", false)
		} else if _, ok := body.(*CommaExpr); ok {
			v.visit(body, ctx)
		} else {
			v.visitBare(body, ctx)
		}
	}
	if parens {
		ctx.Print(ast, ")", false)
	}
	return nil
}

func (v *JsEmitterVisitor) printBlock(from interface{}, stmts []OutputStatement, ctx *EmitterVisitorContext) {
	if len(stmts) == 0 {
		ctx.Print(from, "{}", false)
		return
	}
	ctx.Println(from, "{")
	ctx.IncIndent()
	v.VisitAllStatements(stmts, ctx)
	ctx.DecIndent()
	ctx.Print(from, "}", false)
}

// VisitObjectPatternExpr visits an object destructuring pattern
func (v *JsEmitterVisitor) VisitObjectPatternExpr(ast *ObjectPatternExpr, context interface{}) interface{} {
	ctx := v.getContext(context)
	v.needsParens(ast)
	if len(ast.Properties) == 0 && ast.Rest == nil {
		ctx.Print(ast, "{}", false)
		return nil
	}
	ctx.Print(ast, "{ ", false)
	for i, prop := range ast.Properties {
		if i > 0 {
			ctx.Print(nil, ", ", false)
		}
		if prop.Computed != nil {
			ctx.Print(ast, "[", false)
			v.visitBare(prop.Computed, ctx)
			ctx.Print(ast, "]: ", false)
		} else if !isShorthandPattern(prop.Key, prop.Value) {
			ctx.Print(ast, EscapeIdentifier(prop.Key, false, false)+": ", false)
		}
		v.visitBare(prop.Value, ctx)
	}
	if ast.Rest != nil {
		if len(ast.Properties) > 0 {
			ctx.Print(nil, ", ", false)
		}
		ctx.Print(ast, "...", false)
		v.visitBare(ast.Rest, ctx)
	}
	ctx.Print(ast, " }", false)
	return nil
}

func isShorthandPattern(key string, value OutputExpression) bool {
	if def, ok := value.(*DefaultValueExpr); ok {
		value = def.Target
	}
	read, ok := value.(*ReadVarExpr)
	return ok && read.Name == key
}

// VisitArrayPatternExpr visits an array destructuring pattern
func (v *JsEmitterVisitor) VisitArrayPatternExpr(ast *ArrayPatternExpr, context interface{}) interface{} {
	ctx := v.getContext(context)
	v.needsParens(ast)
	ctx.Print(ast, "[", false)
	v.VisitAllExpressions(ast.Elements, ctx, ", ")
	ctx.Print(ast, "]", false)
	return nil
}

// VisitDefaultValueExpr visits `target = fallback` inside a pattern
func (v *JsEmitterVisitor) VisitDefaultValueExpr(ast *DefaultValueExpr, context interface{}) interface{} {
	ctx := v.getContext(context)
	v.needsParens(ast)
	v.visitBare(ast.Target, ctx)
	ctx.Print(ast, " = ", false)
	v.visitBare(ast.Fallback, ctx)
	return nil
}

func (v *JsEmitterVisitor) printModifiers(stmt interface{ HasModifier(StmtModifier) bool }, ctx *EmitterVisitorContext) {
	if stmt.HasModifier(StmtModifierExported) {
		ctx.Print(stmt, "export ", false)
	}
	if stmt.HasModifier(StmtModifierDefault) {
		ctx.Print(stmt, "default ", false)
	}
}

// VisitDeclareVarStmt visits a variable declaration
func (v *JsEmitterVisitor) VisitDeclareVarStmt(stmt *DeclareVarStmt, context interface{}) interface{} {
	ctx := v.getContext(context)
	v.printModifiers(stmt, ctx)
	if stmt.HasModifier(StmtModifierFinal) {
		ctx.Print(stmt, "const ", false)
	} else {
		ctx.Print(stmt, "let ", false)
	}
	if stmt.Pattern != nil {
		v.visitBare(stmt.Pattern, ctx)
	} else {
		ctx.Print(stmt, stmt.Name, false)
	}
	if stmt.Value != nil {
		ctx.Print(stmt, " = ", false)
		v.visitBare(stmt.Value, ctx)
	}
	ctx.Println(stmt, ";")
	return nil
}

// VisitDeclareFunctionStmt visits a function declaration
func (v *JsEmitterVisitor) VisitDeclareFunctionStmt(stmt *DeclareFunctionStmt, context interface{}) interface{} {
	ctx := v.getContext(context)
	v.printModifiers(stmt, ctx)
	if stmt.Async {
		ctx.Print(stmt, "async ", false)
	}
	ctx.Print(stmt, "function "+stmt.Name+"(", false)
	v.visitParams(stmt.Params, ctx)
	ctx.Print(stmt, ") ", false)
	v.printBlock(stmt, stmt.Statements, ctx)
	ctx.Println(stmt, "")
	return nil
}

// VisitImportStmt visits an import declaration
func (v *JsEmitterVisitor) VisitImportStmt(stmt *ImportStmt, context interface{}) interface{} {
	ctx := v.getContext(context)
	source := EscapeIdentifier(stmt.Source, false, true)
	if len(stmt.Specifiers) == 0 {
		ctx.Println(stmt, "import "+source+";")
		return nil
	}

	var parts []string
	var named []string
	for _, spec := range stmt.Specifiers {
		switch spec.Imported {
		case "":
			parts = append(parts, spec.Local)
		case "*":
			parts = append(parts, "* as "+spec.Local)
		default:
			if spec.Imported == spec.Local {
				named = append(named, spec.Local)
			} else {
				named = append(named, spec.Imported+" as "+spec.Local)
			}
		}
	}
	if len(named) > 0 {
		parts = append(parts, "{ "+strings.Join(named, ", ")+" }")
	}
	ctx.Println(stmt, "import "+strings.Join(parts, ", ")+" from "+source+";")
	return nil
}

func (v *JsEmitterVisitor) visitParams(params []*FnParam, ctx *EmitterVisitorContext) {
	for i, param := range params {
		if i > 0 {
			ctx.Print(nil, ", ", false)
		}
		if param.Pattern != nil {
			v.visitBare(param.Pattern, ctx)
		} else {
			ctx.Print(nil, param.Name, false)
		}
	}
}

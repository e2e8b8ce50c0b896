package output

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/ehtick/svelte/packages/compiler/src/util"
)

var (
	singleQuoteEscapeStringRe = regexp.MustCompile(`'|\\|\n|\r|\$`)
	legalIdentifierRe         = regexp.MustCompile(`(?i)^[$A-Z_][0-9A-Z_$]*$`)
	indentWith                = "  "
)

var binaryOperators = map[BinaryOperator]string{
	BinaryOperatorAnd:                       "&&",
	BinaryOperatorBigger:                    ">",
	BinaryOperatorBiggerEquals:              ">=",
	BinaryOperatorBitwiseOr:                 "|",
	BinaryOperatorBitwiseAnd:                "&",
	BinaryOperatorBitwiseXor:                "^",
	BinaryOperatorLeftShift:                 "<<",
	BinaryOperatorRightShift:                ">>",
	BinaryOperatorUnsignedRightShift:        ">>>",
	BinaryOperatorDivide:                    "/",
	BinaryOperatorAssign:                    "=",
	BinaryOperatorEquals:                    "==",
	BinaryOperatorIdentical:                 "===",
	BinaryOperatorLower:                     "<",
	BinaryOperatorLowerEquals:               "<=",
	BinaryOperatorMinus:                     "-",
	BinaryOperatorModulo:                    "%",
	BinaryOperatorExponentiation:            "**",
	BinaryOperatorMultiply:                  "*",
	BinaryOperatorNotEquals:                 "!=",
	BinaryOperatorNotIdentical:              "!==",
	BinaryOperatorNullishCoalesce:           "??",
	BinaryOperatorOr:                        "||",
	BinaryOperatorPlus:                      "+",
	BinaryOperatorIn:                        "in",
	BinaryOperatorInstanceof:                "instanceof",
	BinaryOperatorAdditionAssignment:        "+=",
	BinaryOperatorSubtractionAssignment:     "-=",
	BinaryOperatorMultiplicationAssignment:  "*=",
	BinaryOperatorDivisionAssignment:        "/=",
	BinaryOperatorRemainderAssignment:       "%=",
	BinaryOperatorExponentiationAssignment:  "**=",
	BinaryOperatorAndAssignment:             "&&=",
	BinaryOperatorOrAssignment:              "||=",
	BinaryOperatorNullishCoalesceAssignment: "??=",
}

// BinaryOperatorFromString maps JS operator source text to a BinaryOperator.
func BinaryOperatorFromString(op string) (BinaryOperator, bool) {
	for operator, text := range binaryOperators {
		if text == op {
			return operator, true
		}
	}
	return 0, false
}

// EmittedLine represents a line being emitted
type EmittedLine struct {
	PartsLength int
	Parts       []string
	SrcSpans    []*util.ParseSourceSpan
	Indent      int
}

// NewEmittedLine creates a new EmittedLine
func NewEmittedLine(indent int) *EmittedLine {
	return &EmittedLine{
		Parts:    []string{},
		SrcSpans: []*util.ParseSourceSpan{},
		Indent:   indent,
	}
}

// EmitterVisitorContext collects emitted lines
type EmitterVisitorContext struct {
	lines  []*EmittedLine
	indent int
}

// CreateRootEmitterVisitorContext creates a root EmitterVisitorContext
func CreateRootEmitterVisitorContext() *EmitterVisitorContext {
	return NewEmitterVisitorContext(0)
}

// NewEmitterVisitorContext creates a new EmitterVisitorContext
func NewEmitterVisitorContext(indent int) *EmitterVisitorContext {
	return &EmitterVisitorContext{
		lines:  []*EmittedLine{NewEmittedLine(indent)},
		indent: indent,
	}
}

func (ctx *EmitterVisitorContext) currentLine() *EmittedLine {
	return ctx.lines[len(ctx.lines)-1]
}

// Println prints a part and ends the line
func (ctx *EmitterVisitorContext) Println(from interface{}, lastPart string) {
	ctx.Print(from, lastPart, true)
}

// LineIsEmpty checks if the current line is empty
func (ctx *EmitterVisitorContext) LineIsEmpty() bool {
	return len(ctx.currentLine().Parts) == 0
}

// Print prints to the context
func (ctx *EmitterVisitorContext) Print(from interface{}, part string, newLine bool) {
	if len(part) > 0 {
		line := ctx.currentLine()
		line.Parts = append(line.Parts, part)
		line.PartsLength += len(part)

		var sourceSpan *util.ParseSourceSpan
		if withSpan, ok := from.(interface {
			GetSourceSpan() *util.ParseSourceSpan
		}); ok && from != nil {
			sourceSpan = withSpan.GetSourceSpan()
		}
		line.SrcSpans = append(line.SrcSpans, sourceSpan)
	}
	if newLine {
		ctx.lines = append(ctx.lines, NewEmittedLine(ctx.indent))
	}
}

// RemoveEmptyLastLine removes the empty last line
func (ctx *EmitterVisitorContext) RemoveEmptyLastLine() {
	if ctx.LineIsEmpty() {
		ctx.lines = ctx.lines[:len(ctx.lines)-1]
	}
}

// IncIndent increases the indent
func (ctx *EmitterVisitorContext) IncIndent() {
	ctx.indent++
	if ctx.LineIsEmpty() {
		ctx.currentLine().Indent = ctx.indent
	}
}

// DecIndent decreases the indent
func (ctx *EmitterVisitorContext) DecIndent() {
	ctx.indent--
	if ctx.LineIsEmpty() {
		ctx.currentLine().Indent = ctx.indent
	}
}

// ToSource converts the context to source code
func (ctx *EmitterVisitorContext) ToSource() string {
	result := []string{}
	for _, line := range ctx.sourceLines() {
		if len(line.Parts) > 0 {
			result = append(result, strings.Repeat(indentWith, line.Indent)+strings.Join(line.Parts, ""))
		} else {
			result = append(result, "")
		}
	}
	return strings.Join(result, "\n")
}

// ToSourceMapGenerator maps every emitted part that carries a span back to
// its location in the component source.
func (ctx *EmitterVisitorContext) ToSourceMapGenerator(genFilePath string) (*SourceMapGenerator, error) {
	mapGen := NewSourceMapGenerator(genFilePath)

	for _, line := range ctx.sourceLines() {
		mapGen.AddLine()

		col0 := line.Indent * len(indentWith)
		var previous *util.ParseSourceSpan
		for i, part := range line.Parts {
			span := line.SrcSpans[i]
			if span != nil && span != previous && span.Start != nil && span.Start.Offset >= 0 {
				source := span.Start.File
				mapGen.AddSource(source.URL, source.Content)
				if err := mapGen.AddMapping(col0, source.URL, span.Start.Line, span.Start.Col); err != nil {
					return nil, err
				}
			}
			if span != nil {
				previous = span
			}
			col0 += len(part)
		}
	}
	return mapGen, nil
}

func (ctx *EmitterVisitorContext) sourceLines() []*EmittedLine {
	if len(ctx.lines) > 0 && len(ctx.lines[len(ctx.lines)-1].Parts) == 0 {
		return ctx.lines[:len(ctx.lines)-1]
	}
	return ctx.lines
}

// AbstractEmitterVisitor prints the language-neutral part of the output AST.
// Recursion goes through self so that embedding emitters see their own
// overrides.
type AbstractEmitterVisitor struct {
	self interface {
		ExpressionVisitor
		StatementVisitor
	}
	// bare is the expression currently printed in a position where no
	// enclosing parentheses are needed.
	bare                  OutputExpression
	escapeDollarInStrings bool
}

// NewAbstractEmitterVisitor creates a new AbstractEmitterVisitor
func NewAbstractEmitterVisitor(escapeDollarInStrings bool) *AbstractEmitterVisitor {
	v := &AbstractEmitterVisitor{escapeDollarInStrings: escapeDollarInStrings}
	return v
}

func (v *AbstractEmitterVisitor) getContext(context interface{}) *EmitterVisitorContext {
	if ctx, ok := context.(*EmitterVisitorContext); ok {
		return ctx
	}
	panic("context must be *EmitterVisitorContext")
}

func (v *AbstractEmitterVisitor) visit(expr OutputExpression, ctx *EmitterVisitorContext) {
	expr.VisitExpression(v.self, ctx)
}

func (v *AbstractEmitterVisitor) visitBare(expr OutputExpression, ctx *EmitterVisitorContext) {
	v.bare = expr
	expr.VisitExpression(v.self, ctx)
}

func (v *AbstractEmitterVisitor) needsParens(expr OutputExpression) bool {
	if v.bare == expr {
		v.bare = nil
		return false
	}
	return true
}

// VisitExpressionStmt visits an expression statement
func (v *AbstractEmitterVisitor) VisitExpressionStmt(stmt *ExpressionStatement, context interface{}) interface{} {
	ctx := v.getContext(context)
	if _, ok := stmt.Expr.(*LiteralMapExpr); ok {
		ctx.Print(stmt, "(", false)
		v.visit(stmt.Expr, ctx)
		ctx.Print(stmt, ")", false)
	} else {
		v.visitBare(stmt.Expr, ctx)
	}
	ctx.Println(stmt, ";")
	return nil
}

// VisitReturnStmt visits a return statement
func (v *AbstractEmitterVisitor) VisitReturnStmt(stmt *ReturnStatement, context interface{}) interface{} {
	ctx := v.getContext(context)
	if stmt.Value == nil {
		ctx.Println(stmt, "return;")
		return nil
	}
	ctx.Print(stmt, "return ", false)
	v.visitBare(stmt.Value, ctx)
	ctx.Println(stmt, ";")
	return nil
}

// VisitIfStmt visits an if statement
func (v *AbstractEmitterVisitor) VisitIfStmt(stmt *IfStmt, context interface{}) interface{} {
	ctx := v.getContext(context)
	ctx.Print(stmt, "if (", false)
	v.visitBare(stmt.Condition, ctx)
	ctx.Println(stmt, ") {")
	ctx.IncIndent()
	v.VisitAllStatements(stmt.TrueCase, ctx)
	ctx.DecIndent()
	if len(stmt.FalseCase) > 0 {
		ctx.Println(stmt, "} else {")
		ctx.IncIndent()
		v.VisitAllStatements(stmt.FalseCase, ctx)
		ctx.DecIndent()
	}
	ctx.Println(stmt, "}")
	return nil
}

// VisitInvokeFunctionExpr visits a call
func (v *AbstractEmitterVisitor) VisitInvokeFunctionExpr(expr *InvokeFunctionExpr, context interface{}) interface{} {
	ctx := v.getContext(context)
	v.needsParens(expr)
	if expr.Pure {
		ctx.Print(expr, "/* @__PURE__ */ ", false)
	}
	v.printCallee(expr.Fn, ctx)
	ctx.Print(expr, "(", false)
	v.VisitAllExpressions(expr.Args, ctx, ", ")
	ctx.Print(expr, ")", false)
	return nil
}

func (v *AbstractEmitterVisitor) printCallee(fn OutputExpression, ctx *EmitterVisitorContext) {
	shouldParenthesize := false
	switch fn.(type) {
	case *ArrowFunctionExpr, *FunctionExpr, *AwaitExpr, *ConditionalExpr:
		shouldParenthesize = true
	}
	if shouldParenthesize {
		ctx.Print(fn, "(", false)
		v.visitBare(fn, ctx)
		ctx.Print(fn, ")", false)
		return
	}
	v.visit(fn, ctx)
}

// VisitTemplateLiteralExpr visits a template literal expression
func (v *AbstractEmitterVisitor) VisitTemplateLiteralExpr(expr *TemplateLiteralExpr, context interface{}) interface{} {
	ctx := v.getContext(context)
	v.needsParens(expr)
	ctx.Print(expr, "`", false)
	for i := 0; i < len(expr.Elements); i++ {
		v.visit(expr.Elements[i], ctx)
		if i < len(expr.Expressions) {
			expression := expr.Expressions[i]
			ctx.Print(expression, "${", false)
			v.visitBare(expression, ctx)
			ctx.Print(expression, "}", false)
		}
	}
	ctx.Print(expr, "`", false)
	return nil
}

// VisitTemplateLiteralElementExpr visits a template literal element expression
func (v *AbstractEmitterVisitor) VisitTemplateLiteralElementExpr(expr *TemplateLiteralElementExpr, context interface{}) interface{} {
	ctx := v.getContext(context)
	ctx.Print(expr, expr.RawText, false)
	return nil
}

// VisitTypeofExpr visits a typeof expression
func (v *AbstractEmitterVisitor) VisitTypeofExpr(expr *TypeofExpr, context interface{}) interface{} {
	ctx := v.getContext(context)
	v.needsParens(expr)
	ctx.Print(expr, "typeof ", false)
	v.visit(expr.Expr, ctx)
	return nil
}

// VisitVoidExpr visits a void expression
func (v *AbstractEmitterVisitor) VisitVoidExpr(expr *VoidExpr, context interface{}) interface{} {
	ctx := v.getContext(context)
	v.needsParens(expr)
	ctx.Print(expr, "void ", false)
	v.visit(expr.Expr, ctx)
	return nil
}

// VisitReadVarExpr visits a read variable expression
func (v *AbstractEmitterVisitor) VisitReadVarExpr(ast *ReadVarExpr, context interface{}) interface{} {
	ctx := v.getContext(context)
	v.needsParens(ast)
	ctx.Print(ast, ast.Name, false)
	return nil
}

// VisitInstantiateExpr visits an instantiate expression
func (v *AbstractEmitterVisitor) VisitInstantiateExpr(ast *InstantiateExpr, context interface{}) interface{} {
	ctx := v.getContext(context)
	v.needsParens(ast)
	ctx.Print(ast, "new ", false)
	v.printCallee(ast.ClassExpr, ctx)
	ctx.Print(ast, "(", false)
	v.VisitAllExpressions(ast.Args, ctx, ", ")
	ctx.Print(ast, ")", false)
	return nil
}

// VisitLiteralExpr visits a literal expression
func (v *AbstractEmitterVisitor) VisitLiteralExpr(ast *LiteralExpr, context interface{}) interface{} {
	ctx := v.getContext(context)
	v.needsParens(ast)
	ctx.Print(ast, v.literalSource(ast.Value), false)
	return nil
}

func (v *AbstractEmitterVisitor) literalSource(value interface{}) string {
	switch val := value.(type) {
	case nil:
		return "null"
	case string:
		if val == "" {
			return "''"
		}
		return EscapeIdentifier(val, v.escapeDollarInStrings, true)
	case RawLiteral:
		return string(val)
	case float64:
		if val == math.Trunc(val) && math.Abs(val) < 1e21 {
			return strconv.FormatFloat(val, 'f', -1, 64)
		}
		return strconv.FormatFloat(val, 'g', -1, 64)
	default:
		return fmt.Sprintf("%v", val)
	}
}

// VisitConditionalExpr visits a conditional expression
func (v *AbstractEmitterVisitor) VisitConditionalExpr(ast *ConditionalExpr, context interface{}) interface{} {
	ctx := v.getContext(context)
	parens := v.needsParens(ast)
	if parens {
		ctx.Print(ast, "(", false)
	}
	v.visit(ast.Condition, ctx)
	ctx.Print(ast, " ? ", false)
	v.visit(ast.TrueCase, ctx)
	ctx.Print(ast, " : ", false)
	v.visit(ast.FalseCase, ctx)
	if parens {
		ctx.Print(ast, ")", false)
	}
	return nil
}

// VisitNotExpr visits a not expression
func (v *AbstractEmitterVisitor) VisitNotExpr(ast *NotExpr, context interface{}) interface{} {
	ctx := v.getContext(context)
	v.needsParens(ast)
	ctx.Print(ast, "!", false)
	v.visit(ast.Condition, ctx)
	return nil
}

// VisitUnaryOperatorExpr visits a unary operator expression
func (v *AbstractEmitterVisitor) VisitUnaryOperatorExpr(ast *UnaryOperatorExpr, context interface{}) interface{} {
	ctx := v.getContext(context)
	var opStr string
	switch ast.Operator {
	case UnaryOperatorPlus:
		opStr = "+"
	case UnaryOperatorMinus:
		opStr = "-"
	case UnaryOperatorBitwiseNot:
		opStr = "~"
	case UnaryOperatorDelete:
		opStr = "delete "
	default:
		panic(fmt.Sprintf("Unknown operator %d", ast.Operator))
	}

	parens := v.needsParens(ast)
	if parens {
		ctx.Print(ast, "(", false)
	}
	ctx.Print(ast, opStr, false)
	v.visit(ast.Expr, ctx)
	if parens {
		ctx.Print(ast, ")", false)
	}
	return nil
}

// VisitBinaryOperatorExpr visits a binary operator expression
func (v *AbstractEmitterVisitor) VisitBinaryOperatorExpr(ast *BinaryOperatorExpr, context interface{}) interface{} {
	ctx := v.getContext(context)
	operator, ok := binaryOperators[ast.Operator]
	if !ok {
		panic(fmt.Sprintf("Unknown operator %d", ast.Operator))
	}

	parens := v.needsParens(ast)
	if parens {
		ctx.Print(ast, "(", false)
	}
	v.visit(ast.Lhs, ctx)
	ctx.Print(ast, " "+operator+" ", false)
	if ast.IsAssignment() {
		v.visitBare(ast.Rhs, ctx)
	} else {
		v.visit(ast.Rhs, ctx)
	}
	if parens {
		ctx.Print(ast, ")", false)
	}
	return nil
}

// VisitUpdateExpr visits `x++` style expressions
func (v *AbstractEmitterVisitor) VisitUpdateExpr(ast *UpdateExpr, context interface{}) interface{} {
	ctx := v.getContext(context)
	v.needsParens(ast)
	op := "--"
	if ast.Increment {
		op = "++"
	}
	if ast.Prefix {
		ctx.Print(ast, op, false)
	}
	v.visit(ast.Argument, ctx)
	if !ast.Prefix {
		ctx.Print(ast, op, false)
	}
	return nil
}

func (v *AbstractEmitterVisitor) printReceiver(receiver OutputExpression, ctx *EmitterVisitorContext) {
	switch receiver.(type) {
	case *AwaitExpr, *ArrowFunctionExpr, *FunctionExpr, *NotExpr, *TypeofExpr, *VoidExpr, *LiteralMapExpr:
		ctx.Print(receiver, "(", false)
		v.visitBare(receiver, ctx)
		ctx.Print(receiver, ")", false)
	default:
		v.visit(receiver, ctx)
	}
}

// VisitReadPropExpr visits a read property expression
func (v *AbstractEmitterVisitor) VisitReadPropExpr(ast *ReadPropExpr, context interface{}) interface{} {
	ctx := v.getContext(context)
	v.needsParens(ast)
	v.printReceiver(ast.Receiver, ctx)
	if ast.Optional {
		ctx.Print(ast, "?.", false)
	} else {
		ctx.Print(ast, ".", false)
	}
	ctx.Print(ast, ast.Name, false)
	return nil
}

// VisitReadKeyExpr visits a read key expression
func (v *AbstractEmitterVisitor) VisitReadKeyExpr(ast *ReadKeyExpr, context interface{}) interface{} {
	ctx := v.getContext(context)
	v.needsParens(ast)
	v.printReceiver(ast.Receiver, ctx)
	if ast.Optional {
		ctx.Print(ast, "?.", false)
	}
	ctx.Print(ast, "[", false)
	v.visitBare(ast.Index, ctx)
	ctx.Print(ast, "]", false)
	return nil
}

// VisitLiteralArrayExpr visits a literal array expression
func (v *AbstractEmitterVisitor) VisitLiteralArrayExpr(ast *LiteralArrayExpr, context interface{}) interface{} {
	ctx := v.getContext(context)
	v.needsParens(ast)
	ctx.Print(ast, "[", false)
	v.VisitAllExpressions(ast.Entries, ctx, ", ")
	ctx.Print(ast, "]", false)
	return nil
}

// VisitLiteralMapExpr visits a literal map expression
func (v *AbstractEmitterVisitor) VisitLiteralMapExpr(ast *LiteralMapExpr, context interface{}) interface{} {
	ctx := v.getContext(context)
	v.needsParens(ast)
	if len(ast.Entries) == 0 {
		ctx.Print(ast, "{}", false)
		return nil
	}
	ctx.Print(ast, "{ ", false)
	for i, entry := range ast.Entries {
		if i > 0 {
			ctx.Print(nil, ", ", false)
		}
		switch {
		case entry.Spread:
			ctx.Print(ast, "...", false)
		case entry.Computed != nil:
			ctx.Print(ast, "[", false)
			v.visitBare(entry.Computed, ctx)
			ctx.Print(ast, "]: ", false)
		case isShorthand(entry.Key, entry.Quoted, entry.Value):
			v.visit(entry.Value, ctx)
			continue
		default:
			ctx.Print(ast, EscapeIdentifier(entry.Key, v.escapeDollarInStrings, entry.Quoted)+": ", false)
		}
		v.visitBare(entry.Value, ctx)
	}
	ctx.Print(ast, " }", false)
	return nil
}

func isShorthand(key string, quoted bool, value OutputExpression) bool {
	read, ok := value.(*ReadVarExpr)
	return ok && !quoted && read.Name == key
}

// VisitCommaExpr visits a comma expression
func (v *AbstractEmitterVisitor) VisitCommaExpr(ast *CommaExpr, context interface{}) interface{} {
	ctx := v.getContext(context)
	v.needsParens(ast)
	ctx.Print(ast, "(", false)
	v.VisitAllExpressions(ast.Parts, ctx, ", ")
	ctx.Print(ast, ")", false)
	return nil
}

// VisitSpreadElementExpr visits a spread element
func (v *AbstractEmitterVisitor) VisitSpreadElementExpr(ast *SpreadElementExpr, context interface{}) interface{} {
	ctx := v.getContext(context)
	v.needsParens(ast)
	ctx.Print(ast, "...", false)
	v.visitBare(ast.Expr, ctx)
	return nil
}

// VisitAwaitExpr visits an await expression
func (v *AbstractEmitterVisitor) VisitAwaitExpr(ast *AwaitExpr, context interface{}) interface{} {
	ctx := v.getContext(context)
	v.needsParens(ast)
	ctx.Print(ast, "await ", false)
	v.visit(ast.Expr, ctx)
	return nil
}

// VisitAllExpressions visits all expressions; nil entries print as holes
func (v *AbstractEmitterVisitor) VisitAllExpressions(expressions []OutputExpression, ctx *EmitterVisitorContext, separator string) {
	for i, expr := range expressions {
		if i > 0 {
			ctx.Print(nil, separator, false)
		}
		if expr == nil {
			if i == len(expressions)-1 {
				ctx.Print(nil, ",", false)
			}
			continue
		}
		if _, ok := expr.(*CommaExpr); ok {
			v.visit(expr, ctx)
			continue
		}
		v.visitBare(expr, ctx)
	}
}

// VisitAllStatements visits all statements
func (v *AbstractEmitterVisitor) VisitAllStatements(statements []OutputStatement, ctx *EmitterVisitorContext) {
	for _, stmt := range statements {
		stmt.VisitStatement(v.self, ctx)
	}
}

// EscapeIdentifier escapes an identifier
func EscapeIdentifier(input string, escapeDollar bool, alwaysQuote bool) string {
	if input == "" {
		return ""
	}

	body := singleQuoteEscapeStringRe.ReplaceAllStringFunc(input, func(match string) string {
		switch match {
		case "$":
			if escapeDollar {
				return "\\$"
			}
			return "$"
		case "\n":
			return "\\n"
		case "\r":
			return "\\r"
		default:
			return "\\" + match
		}
	})

	requiresQuotes := alwaysQuote || !legalIdentifierRe.MatchString(body)
	if requiresQuotes {
		return "'" + body + "'"
	}
	return body
}

package output

import (
	"github.com/ehtick/svelte/packages/compiler/src/util"
)

// UnaryOperator represents unary operators
type UnaryOperator int

const (
	UnaryOperatorMinus UnaryOperator = iota
	UnaryOperatorPlus
	UnaryOperatorBitwiseNot
	UnaryOperatorDelete
)

// BinaryOperator represents binary operators
type BinaryOperator int

const (
	BinaryOperatorEquals BinaryOperator = iota
	BinaryOperatorNotEquals
	BinaryOperatorAssign
	BinaryOperatorIdentical
	BinaryOperatorNotIdentical
	BinaryOperatorMinus
	BinaryOperatorPlus
	BinaryOperatorDivide
	BinaryOperatorMultiply
	BinaryOperatorModulo
	BinaryOperatorAnd
	BinaryOperatorOr
	BinaryOperatorBitwiseOr
	BinaryOperatorBitwiseAnd
	BinaryOperatorBitwiseXor
	BinaryOperatorLeftShift
	BinaryOperatorRightShift
	BinaryOperatorUnsignedRightShift
	BinaryOperatorLower
	BinaryOperatorLowerEquals
	BinaryOperatorBigger
	BinaryOperatorBiggerEquals
	BinaryOperatorNullishCoalesce
	BinaryOperatorExponentiation
	BinaryOperatorIn
	BinaryOperatorInstanceof
	BinaryOperatorAdditionAssignment
	BinaryOperatorSubtractionAssignment
	BinaryOperatorMultiplicationAssignment
	BinaryOperatorDivisionAssignment
	BinaryOperatorRemainderAssignment
	BinaryOperatorExponentiationAssignment
	BinaryOperatorAndAssignment
	BinaryOperatorOrAssignment
	BinaryOperatorNullishCoalesceAssignment
)

// OutputExpression represents an expression in the output AST
type OutputExpression interface {
	GetSourceSpan() *util.ParseSourceSpan
	VisitExpression(visitor ExpressionVisitor, context interface{}) interface{}
}

// ExpressionVisitor is the interface for visiting expressions
type ExpressionVisitor interface {
	VisitReadVarExpr(ast *ReadVarExpr, context interface{}) interface{}
	VisitInvokeFunctionExpr(ast *InvokeFunctionExpr, context interface{}) interface{}
	VisitTemplateLiteralExpr(ast *TemplateLiteralExpr, context interface{}) interface{}
	VisitTemplateLiteralElementExpr(ast *TemplateLiteralElementExpr, context interface{}) interface{}
	VisitInstantiateExpr(ast *InstantiateExpr, context interface{}) interface{}
	VisitLiteralExpr(ast *LiteralExpr, context interface{}) interface{}
	VisitExternalExpr(ast *ExternalExpr, context interface{}) interface{}
	VisitConditionalExpr(ast *ConditionalExpr, context interface{}) interface{}
	VisitNotExpr(ast *NotExpr, context interface{}) interface{}
	VisitFunctionExpr(ast *FunctionExpr, context interface{}) interface{}
	VisitUnaryOperatorExpr(ast *UnaryOperatorExpr, context interface{}) interface{}
	VisitBinaryOperatorExpr(ast *BinaryOperatorExpr, context interface{}) interface{}
	VisitUpdateExpr(ast *UpdateExpr, context interface{}) interface{}
	VisitReadPropExpr(ast *ReadPropExpr, context interface{}) interface{}
	VisitReadKeyExpr(ast *ReadKeyExpr, context interface{}) interface{}
	VisitLiteralArrayExpr(ast *LiteralArrayExpr, context interface{}) interface{}
	VisitLiteralMapExpr(ast *LiteralMapExpr, context interface{}) interface{}
	VisitCommaExpr(ast *CommaExpr, context interface{}) interface{}
	VisitTypeofExpr(ast *TypeofExpr, context interface{}) interface{}
	VisitVoidExpr(ast *VoidExpr, context interface{}) interface{}
	VisitArrowFunctionExpr(ast *ArrowFunctionExpr, context interface{}) interface{}
	VisitSpreadElementExpr(ast *SpreadElementExpr, context interface{}) interface{}
	VisitAwaitExpr(ast *AwaitExpr, context interface{}) interface{}
	VisitObjectPatternExpr(ast *ObjectPatternExpr, context interface{}) interface{}
	VisitArrayPatternExpr(ast *ArrayPatternExpr, context interface{}) interface{}
	VisitDefaultValueExpr(ast *DefaultValueExpr, context interface{}) interface{}
}

// ExpressionBase is the base struct for all expressions
type ExpressionBase struct {
	SourceSpan *util.ParseSourceSpan
}

// GetSourceSpan returns the source span
func (e *ExpressionBase) GetSourceSpan() *util.ParseSourceSpan {
	return e.SourceSpan
}

// ReadVarExpr represents a variable read expression
type ReadVarExpr struct {
	ExpressionBase
	Name string
}

// NewReadVarExpr creates a new ReadVarExpr
func NewReadVarExpr(name string, sourceSpan *util.ParseSourceSpan) *ReadVarExpr {
	return &ReadVarExpr{
		ExpressionBase: ExpressionBase{SourceSpan: sourceSpan},
		Name:           name,
	}
}

// VisitExpression implements OutputExpression interface
func (r *ReadVarExpr) VisitExpression(visitor ExpressionVisitor, context interface{}) interface{} {
	return visitor.VisitReadVarExpr(r, context)
}

// Set creates an assignment expression
func (r *ReadVarExpr) Set(value OutputExpression) *BinaryOperatorExpr {
	return NewBinaryOperatorExpr(BinaryOperatorAssign, r, value, r.SourceSpan)
}

// RawLiteral is literal source text emitted verbatim (regular expressions,
// bigints).
type RawLiteral string

// LiteralExpr represents a literal expression
type LiteralExpr struct {
	ExpressionBase
	Value interface{} // number | string | bool | nil | RawLiteral
}

// NewLiteralExpr creates a new LiteralExpr
func NewLiteralExpr(value interface{}, sourceSpan *util.ParseSourceSpan) *LiteralExpr {
	return &LiteralExpr{
		ExpressionBase: ExpressionBase{SourceSpan: sourceSpan},
		Value:          value,
	}
}

// VisitExpression implements OutputExpression interface
func (l *LiteralExpr) VisitExpression(visitor ExpressionVisitor, context interface{}) interface{} {
	return visitor.VisitLiteralExpr(l, context)
}

// Predefined expressions
var (
	NullExpr  = NewLiteralExpr(nil, nil)
	TrueExpr  = NewLiteralExpr(true, nil)
	FalseExpr = NewLiteralExpr(false, nil)
)

// BinaryOperatorExpr represents a binary operator expression
type BinaryOperatorExpr struct {
	ExpressionBase
	Operator BinaryOperator
	Lhs      OutputExpression
	Rhs      OutputExpression
}

// NewBinaryOperatorExpr creates a new BinaryOperatorExpr
func NewBinaryOperatorExpr(operator BinaryOperator, lhs, rhs OutputExpression, sourceSpan *util.ParseSourceSpan) *BinaryOperatorExpr {
	return &BinaryOperatorExpr{
		ExpressionBase: ExpressionBase{SourceSpan: sourceSpan},
		Operator:       operator,
		Lhs:            lhs,
		Rhs:            rhs,
	}
}

// VisitExpression implements OutputExpression interface
func (b *BinaryOperatorExpr) VisitExpression(visitor ExpressionVisitor, context interface{}) interface{} {
	return visitor.VisitBinaryOperatorExpr(b, context)
}

// IsAssignment checks if the operator is an assignment operator
func (b *BinaryOperatorExpr) IsAssignment() bool {
	return b.Operator == BinaryOperatorAssign ||
		b.Operator == BinaryOperatorAdditionAssignment ||
		b.Operator == BinaryOperatorSubtractionAssignment ||
		b.Operator == BinaryOperatorMultiplicationAssignment ||
		b.Operator == BinaryOperatorDivisionAssignment ||
		b.Operator == BinaryOperatorRemainderAssignment ||
		b.Operator == BinaryOperatorExponentiationAssignment ||
		b.Operator == BinaryOperatorAndAssignment ||
		b.Operator == BinaryOperatorOrAssignment ||
		b.Operator == BinaryOperatorNullishCoalesceAssignment
}

// UpdateExpr represents `x++`, `--x` and friends.
type UpdateExpr struct {
	ExpressionBase
	Increment bool
	Prefix    bool
	Argument  OutputExpression
}

// NewUpdateExpr creates a new UpdateExpr
func NewUpdateExpr(increment, prefix bool, argument OutputExpression, sourceSpan *util.ParseSourceSpan) *UpdateExpr {
	return &UpdateExpr{
		ExpressionBase: ExpressionBase{SourceSpan: sourceSpan},
		Increment:      increment,
		Prefix:         prefix,
		Argument:       argument,
	}
}

func (u *UpdateExpr) VisitExpression(visitor ExpressionVisitor, context interface{}) interface{} {
	return visitor.VisitUpdateExpr(u, context)
}

// InvokeFunctionExpr represents a call
type InvokeFunctionExpr struct {
	ExpressionBase
	Fn   OutputExpression
	Args []OutputExpression
	Pure bool
}

func NewInvokeFunctionExpr(fn OutputExpression, args []OutputExpression, sourceSpan *util.ParseSourceSpan, pure bool) *InvokeFunctionExpr {
	return &InvokeFunctionExpr{
		ExpressionBase: ExpressionBase{SourceSpan: sourceSpan},
		Fn:             fn,
		Args:           args,
		Pure:           pure,
	}
}

func (i *InvokeFunctionExpr) VisitExpression(visitor ExpressionVisitor, context interface{}) interface{} {
	return visitor.VisitInvokeFunctionExpr(i, context)
}

// TemplateLiteralExpr represents a template literal
type TemplateLiteralExpr struct {
	ExpressionBase
	Elements    []*TemplateLiteralElementExpr
	Expressions []OutputExpression
}

func NewTemplateLiteralExpr(elements []*TemplateLiteralElementExpr, expressions []OutputExpression, sourceSpan *util.ParseSourceSpan) *TemplateLiteralExpr {
	return &TemplateLiteralExpr{
		ExpressionBase: ExpressionBase{SourceSpan: sourceSpan},
		Elements:       elements,
		Expressions:    expressions,
	}
}

func (t *TemplateLiteralExpr) VisitExpression(visitor ExpressionVisitor, context interface{}) interface{} {
	return visitor.VisitTemplateLiteralExpr(t, context)
}

// TemplateLiteralElementExpr is one quasi of a template literal
type TemplateLiteralElementExpr struct {
	ExpressionBase
	Text    string
	RawText string
}

func NewTemplateLiteralElementExpr(text string, sourceSpan *util.ParseSourceSpan, rawText string) *TemplateLiteralElementExpr {
	if rawText == "" {
		rawText = text
	}
	return &TemplateLiteralElementExpr{
		ExpressionBase: ExpressionBase{SourceSpan: sourceSpan},
		Text:           text,
		RawText:        rawText,
	}
}

func (t *TemplateLiteralElementExpr) VisitExpression(visitor ExpressionVisitor, context interface{}) interface{} {
	return visitor.VisitTemplateLiteralElementExpr(t, context)
}

// InstantiateExpr represents `new X(...)`
type InstantiateExpr struct {
	ExpressionBase
	ClassExpr OutputExpression
	Args      []OutputExpression
}

func NewInstantiateExpr(classExpr OutputExpression, args []OutputExpression, sourceSpan *util.ParseSourceSpan) *InstantiateExpr {
	return &InstantiateExpr{
		ExpressionBase: ExpressionBase{SourceSpan: sourceSpan},
		ClassExpr:      classExpr,
		Args:           args,
	}
}

func (i *InstantiateExpr) VisitExpression(visitor ExpressionVisitor, context interface{}) interface{} {
	return visitor.VisitInstantiateExpr(i, context)
}

// ExternalReference names a symbol exported by a module
type ExternalReference struct {
	ModuleName *string
	Name       *string
}

// ExternalExpr reads an ExternalReference
type ExternalExpr struct {
	ExpressionBase
	Value *ExternalReference
}

func NewExternalExpr(value *ExternalReference, sourceSpan *util.ParseSourceSpan) *ExternalExpr {
	return &ExternalExpr{
		ExpressionBase: ExpressionBase{SourceSpan: sourceSpan},
		Value:          value,
	}
}

func (e *ExternalExpr) VisitExpression(visitor ExpressionVisitor, context interface{}) interface{} {
	return visitor.VisitExternalExpr(e, context)
}

// ConditionalExpr represents `c ? a : b`
type ConditionalExpr struct {
	ExpressionBase
	Condition OutputExpression
	TrueCase  OutputExpression
	FalseCase OutputExpression
}

func NewConditionalExpr(condition, trueCase, falseCase OutputExpression, sourceSpan *util.ParseSourceSpan) *ConditionalExpr {
	return &ConditionalExpr{
		ExpressionBase: ExpressionBase{SourceSpan: sourceSpan},
		Condition:      condition,
		TrueCase:       trueCase,
		FalseCase:      falseCase,
	}
}

func (c *ConditionalExpr) VisitExpression(visitor ExpressionVisitor, context interface{}) interface{} {
	return visitor.VisitConditionalExpr(c, context)
}

// NotExpr represents `!x`
type NotExpr struct {
	ExpressionBase
	Condition OutputExpression
}

func NewNotExpr(condition OutputExpression, sourceSpan *util.ParseSourceSpan) *NotExpr {
	return &NotExpr{
		ExpressionBase: ExpressionBase{SourceSpan: sourceSpan},
		Condition:      condition,
	}
}

func (n *NotExpr) VisitExpression(visitor ExpressionVisitor, context interface{}) interface{} {
	return visitor.VisitNotExpr(n, context)
}

// FnParam is a function parameter. A parameter either has a plain Name or a
// destructuring Pattern.
type FnParam struct {
	Name    string
	Pattern OutputExpression
}

func NewFnParam(name string) *FnParam {
	return &FnParam{Name: name}
}

// NewPatternParam creates a destructuring parameter
func NewPatternParam(pattern OutputExpression) *FnParam {
	if read, ok := pattern.(*ReadVarExpr); ok {
		return &FnParam{Name: read.Name}
	}
	return &FnParam{Pattern: pattern}
}

// FunctionExpr represents `function name(params) { ... }`
type FunctionExpr struct {
	ExpressionBase
	Params     []*FnParam
	Statements []OutputStatement
	Name       *string
	Async      bool
}

func NewFunctionExpr(params []*FnParam, statements []OutputStatement, sourceSpan *util.ParseSourceSpan, name *string) *FunctionExpr {
	return &FunctionExpr{
		ExpressionBase: ExpressionBase{SourceSpan: sourceSpan},
		Params:         params,
		Statements:     statements,
		Name:           name,
	}
}

func (f *FunctionExpr) VisitExpression(visitor ExpressionVisitor, context interface{}) interface{} {
	return visitor.VisitFunctionExpr(f, context)
}

// UnaryOperatorExpr represents `-x`, `+x`, `~x`, `delete x`
type UnaryOperatorExpr struct {
	ExpressionBase
	Operator UnaryOperator
	Expr     OutputExpression
}

func NewUnaryOperatorExpr(operator UnaryOperator, expr OutputExpression, sourceSpan *util.ParseSourceSpan) *UnaryOperatorExpr {
	return &UnaryOperatorExpr{
		ExpressionBase: ExpressionBase{SourceSpan: sourceSpan},
		Operator:       operator,
		Expr:           expr,
	}
}

func (u *UnaryOperatorExpr) VisitExpression(visitor ExpressionVisitor, context interface{}) interface{} {
	return visitor.VisitUnaryOperatorExpr(u, context)
}

// ReadPropExpr represents `receiver.name`
type ReadPropExpr struct {
	ExpressionBase
	Receiver OutputExpression
	Name     string
	Optional bool
}

func NewReadPropExpr(receiver OutputExpression, name string, sourceSpan *util.ParseSourceSpan) *ReadPropExpr {
	return &ReadPropExpr{
		ExpressionBase: ExpressionBase{SourceSpan: sourceSpan},
		Receiver:       receiver,
		Name:           name,
	}
}

func (r *ReadPropExpr) VisitExpression(visitor ExpressionVisitor, context interface{}) interface{} {
	return visitor.VisitReadPropExpr(r, context)
}

// Set creates an assignment expression
func (r *ReadPropExpr) Set(value OutputExpression) *BinaryOperatorExpr {
	return NewBinaryOperatorExpr(BinaryOperatorAssign, r, value, r.SourceSpan)
}

// ReadKeyExpr represents `receiver[index]`
type ReadKeyExpr struct {
	ExpressionBase
	Receiver OutputExpression
	Index    OutputExpression
	Optional bool
}

func NewReadKeyExpr(receiver, index OutputExpression, sourceSpan *util.ParseSourceSpan) *ReadKeyExpr {
	return &ReadKeyExpr{
		ExpressionBase: ExpressionBase{SourceSpan: sourceSpan},
		Receiver:       receiver,
		Index:          index,
	}
}

func (r *ReadKeyExpr) VisitExpression(visitor ExpressionVisitor, context interface{}) interface{} {
	return visitor.VisitReadKeyExpr(r, context)
}

// Set creates an assignment expression
func (r *ReadKeyExpr) Set(value OutputExpression) *BinaryOperatorExpr {
	return NewBinaryOperatorExpr(BinaryOperatorAssign, r, value, r.SourceSpan)
}

// LiteralArrayExpr represents `[a, b]`. Nil entries are holes.
type LiteralArrayExpr struct {
	ExpressionBase
	Entries []OutputExpression
}

func NewLiteralArrayExpr(entries []OutputExpression, sourceSpan *util.ParseSourceSpan) *LiteralArrayExpr {
	return &LiteralArrayExpr{
		ExpressionBase: ExpressionBase{SourceSpan: sourceSpan},
		Entries:        entries,
	}
}

func (l *LiteralArrayExpr) VisitExpression(visitor ExpressionVisitor, context interface{}) interface{} {
	return visitor.VisitLiteralArrayExpr(l, context)
}

// LiteralMapEntry is one property of an object literal. Spread entries print
// as `...value` and ignore Key.
type LiteralMapEntry struct {
	Key      string
	Value    OutputExpression
	Quoted   bool
	Computed OutputExpression
	Spread   bool
}

func NewLiteralMapEntry(key string, value OutputExpression, quoted bool) *LiteralMapEntry {
	return &LiteralMapEntry{Key: key, Value: value, Quoted: quoted}
}

// LiteralMapExpr represents an object literal
type LiteralMapExpr struct {
	ExpressionBase
	Entries []*LiteralMapEntry
}

func NewLiteralMapExpr(entries []*LiteralMapEntry, sourceSpan *util.ParseSourceSpan) *LiteralMapExpr {
	return &LiteralMapExpr{
		ExpressionBase: ExpressionBase{SourceSpan: sourceSpan},
		Entries:        entries,
	}
}

func (l *LiteralMapExpr) VisitExpression(visitor ExpressionVisitor, context interface{}) interface{} {
	return visitor.VisitLiteralMapExpr(l, context)
}

// CommaExpr represents a sequence expression `(a, b, c)`
type CommaExpr struct {
	ExpressionBase
	Parts []OutputExpression
}

func NewCommaExpr(parts []OutputExpression, sourceSpan *util.ParseSourceSpan) *CommaExpr {
	return &CommaExpr{
		ExpressionBase: ExpressionBase{SourceSpan: sourceSpan},
		Parts:          parts,
	}
}

func (c *CommaExpr) VisitExpression(visitor ExpressionVisitor, context interface{}) interface{} {
	return visitor.VisitCommaExpr(c, context)
}

// TypeofExpr represents `typeof x`
type TypeofExpr struct {
	ExpressionBase
	Expr OutputExpression
}

func NewTypeofExpr(expr OutputExpression, sourceSpan *util.ParseSourceSpan) *TypeofExpr {
	return &TypeofExpr{
		ExpressionBase: ExpressionBase{SourceSpan: sourceSpan},
		Expr:           expr,
	}
}

func (t *TypeofExpr) VisitExpression(visitor ExpressionVisitor, context interface{}) interface{} {
	return visitor.VisitTypeofExpr(t, context)
}

// VoidExpr represents `void x`
type VoidExpr struct {
	ExpressionBase
	Expr OutputExpression
}

func NewVoidExpr(expr OutputExpression, sourceSpan *util.ParseSourceSpan) *VoidExpr {
	return &VoidExpr{
		ExpressionBase: ExpressionBase{SourceSpan: sourceSpan},
		Expr:           expr,
	}
}

func (v *VoidExpr) VisitExpression(visitor ExpressionVisitor, context interface{}) interface{} {
	return visitor.VisitVoidExpr(v, context)
}

// ArrowFunctionExpr represents `(params) => body`. Body is either an
// OutputExpression or a []OutputStatement.
type ArrowFunctionExpr struct {
	ExpressionBase
	Params []*FnParam
	Body   interface{}
	Async  bool
}

func NewArrowFunctionExpr(params []*FnParam, body interface{}, sourceSpan *util.ParseSourceSpan) *ArrowFunctionExpr {
	return &ArrowFunctionExpr{
		ExpressionBase: ExpressionBase{SourceSpan: sourceSpan},
		Params:         params,
		Body:           body,
	}
}

func (a *ArrowFunctionExpr) VisitExpression(visitor ExpressionVisitor, context interface{}) interface{} {
	return visitor.VisitArrowFunctionExpr(a, context)
}

// SpreadElementExpr represents `...x` in calls, arrays and rest patterns
type SpreadElementExpr struct {
	ExpressionBase
	Expr OutputExpression
}

func NewSpreadElementExpr(expr OutputExpression, sourceSpan *util.ParseSourceSpan) *SpreadElementExpr {
	return &SpreadElementExpr{
		ExpressionBase: ExpressionBase{SourceSpan: sourceSpan},
		Expr:           expr,
	}
}

func (s *SpreadElementExpr) VisitExpression(visitor ExpressionVisitor, context interface{}) interface{} {
	return visitor.VisitSpreadElementExpr(s, context)
}

// AwaitExpr represents `await x`
type AwaitExpr struct {
	ExpressionBase
	Expr OutputExpression
}

func NewAwaitExpr(expr OutputExpression, sourceSpan *util.ParseSourceSpan) *AwaitExpr {
	return &AwaitExpr{
		ExpressionBase: ExpressionBase{SourceSpan: sourceSpan},
		Expr:           expr,
	}
}

func (a *AwaitExpr) VisitExpression(visitor ExpressionVisitor, context interface{}) interface{} {
	return visitor.VisitAwaitExpr(a, context)
}

// PatternProperty is one entry of an object destructuring pattern.
// Shorthand properties have a Value that reads the same name as Key.
type PatternProperty struct {
	Key      string
	Computed OutputExpression
	Value    OutputExpression
}

// ObjectPatternExpr represents `{a, b: c, ...rest}` in binding position
type ObjectPatternExpr struct {
	ExpressionBase
	Properties []*PatternProperty
	Rest       OutputExpression
}

func NewObjectPatternExpr(properties []*PatternProperty, rest OutputExpression, sourceSpan *util.ParseSourceSpan) *ObjectPatternExpr {
	return &ObjectPatternExpr{
		ExpressionBase: ExpressionBase{SourceSpan: sourceSpan},
		Properties:     properties,
		Rest:           rest,
	}
}

func (o *ObjectPatternExpr) VisitExpression(visitor ExpressionVisitor, context interface{}) interface{} {
	return visitor.VisitObjectPatternExpr(o, context)
}

// ArrayPatternExpr represents `[a, , b, ...rest]` in binding position. Nil
// elements are holes.
type ArrayPatternExpr struct {
	ExpressionBase
	Elements []OutputExpression
}

func NewArrayPatternExpr(elements []OutputExpression, sourceSpan *util.ParseSourceSpan) *ArrayPatternExpr {
	return &ArrayPatternExpr{
		ExpressionBase: ExpressionBase{SourceSpan: sourceSpan},
		Elements:       elements,
	}
}

func (a *ArrayPatternExpr) VisitExpression(visitor ExpressionVisitor, context interface{}) interface{} {
	return visitor.VisitArrayPatternExpr(a, context)
}

// DefaultValueExpr represents `target = fallback` inside a pattern
type DefaultValueExpr struct {
	ExpressionBase
	Target   OutputExpression
	Fallback OutputExpression
}

func NewDefaultValueExpr(target, fallback OutputExpression, sourceSpan *util.ParseSourceSpan) *DefaultValueExpr {
	return &DefaultValueExpr{
		ExpressionBase: ExpressionBase{SourceSpan: sourceSpan},
		Target:         target,
		Fallback:       fallback,
	}
}

func (d *DefaultValueExpr) VisitExpression(visitor ExpressionVisitor, context interface{}) interface{} {
	return visitor.VisitDefaultValueExpr(d, context)
}

// StmtModifier represents statement modifiers
type StmtModifier int

const (
	StmtModifierNone     StmtModifier = 0
	StmtModifierFinal    StmtModifier = 1 << 0
	StmtModifierExported StmtModifier = 1 << 2
	StmtModifierDefault  StmtModifier = 1 << 3
)

// StatementVisitor is the interface for visiting statements
type StatementVisitor interface {
	VisitDeclareVarStmt(stmt *DeclareVarStmt, context interface{}) interface{}
	VisitDeclareFunctionStmt(stmt *DeclareFunctionStmt, context interface{}) interface{}
	VisitExpressionStmt(stmt *ExpressionStatement, context interface{}) interface{}
	VisitReturnStmt(stmt *ReturnStatement, context interface{}) interface{}
	VisitIfStmt(stmt *IfStmt, context interface{}) interface{}
	VisitImportStmt(stmt *ImportStmt, context interface{}) interface{}
}

// OutputStatement is a statement in the output AST
type OutputStatement interface {
	GetModifiers() StmtModifier
	GetSourceSpan() *util.ParseSourceSpan
	VisitStatement(visitor StatementVisitor, context interface{}) interface{}
}

// StatementBase is the base struct for all statements
type StatementBase struct {
	Modifiers  StmtModifier
	SourceSpan *util.ParseSourceSpan
}

// GetModifiers returns the modifiers
func (s *StatementBase) GetModifiers() StmtModifier {
	return s.Modifiers
}

// GetSourceSpan returns the source span
func (s *StatementBase) GetSourceSpan() *util.ParseSourceSpan {
	return s.SourceSpan
}

// HasModifier checks if the statement carries a modifier
func (s *StatementBase) HasModifier(modifier StmtModifier) bool {
	return s.Modifiers&modifier != 0
}

// DeclareVarStmt represents `let name = value;` or, with a Pattern,
// `let {a, b} = value;`. StmtModifierFinal emits `const`.
type DeclareVarStmt struct {
	StatementBase
	Name    string
	Pattern OutputExpression
	Value   OutputExpression
}

func NewDeclareVarStmt(name string, value OutputExpression, modifiers StmtModifier, sourceSpan *util.ParseSourceSpan) *DeclareVarStmt {
	return &DeclareVarStmt{
		StatementBase: StatementBase{
			Modifiers:  modifiers,
			SourceSpan: sourceSpan,
		},
		Name:  name,
		Value: value,
	}
}

func (d *DeclareVarStmt) VisitStatement(visitor StatementVisitor, context interface{}) interface{} {
	return visitor.VisitDeclareVarStmt(d, context)
}

// DeclareFunctionStmt represents a function declaration statement
type DeclareFunctionStmt struct {
	StatementBase
	Name       string
	Params     []*FnParam
	Statements []OutputStatement
	Async      bool
}

func NewDeclareFunctionStmt(name string, params []*FnParam, statements []OutputStatement, modifiers StmtModifier, sourceSpan *util.ParseSourceSpan) *DeclareFunctionStmt {
	return &DeclareFunctionStmt{
		StatementBase: StatementBase{
			Modifiers:  modifiers,
			SourceSpan: sourceSpan,
		},
		Name:       name,
		Params:     params,
		Statements: statements,
	}
}

func (d *DeclareFunctionStmt) VisitStatement(visitor StatementVisitor, context interface{}) interface{} {
	return visitor.VisitDeclareFunctionStmt(d, context)
}

// ExpressionStatement represents an expression statement
type ExpressionStatement struct {
	StatementBase
	Expr OutputExpression
}

func NewExpressionStatement(expr OutputExpression, sourceSpan *util.ParseSourceSpan) *ExpressionStatement {
	return &ExpressionStatement{
		StatementBase: StatementBase{
			Modifiers:  StmtModifierNone,
			SourceSpan: sourceSpan,
		},
		Expr: expr,
	}
}

func (e *ExpressionStatement) VisitStatement(visitor StatementVisitor, context interface{}) interface{} {
	return visitor.VisitExpressionStmt(e, context)
}

// ReturnStatement represents a return statement; Value may be nil
type ReturnStatement struct {
	StatementBase
	Value OutputExpression
}

func NewReturnStatement(value OutputExpression, sourceSpan *util.ParseSourceSpan) *ReturnStatement {
	return &ReturnStatement{
		StatementBase: StatementBase{
			Modifiers:  StmtModifierNone,
			SourceSpan: sourceSpan,
		},
		Value: value,
	}
}

func (r *ReturnStatement) VisitStatement(visitor StatementVisitor, context interface{}) interface{} {
	return visitor.VisitReturnStmt(r, context)
}

// IfStmt represents an if statement
type IfStmt struct {
	StatementBase
	Condition OutputExpression
	TrueCase  []OutputStatement
	FalseCase []OutputStatement
}

func NewIfStmt(condition OutputExpression, trueCase, falseCase []OutputStatement, sourceSpan *util.ParseSourceSpan) *IfStmt {
	return &IfStmt{
		StatementBase: StatementBase{
			Modifiers:  StmtModifierNone,
			SourceSpan: sourceSpan,
		},
		Condition: condition,
		TrueCase:  trueCase,
		FalseCase: falseCase,
	}
}

func (i *IfStmt) VisitStatement(visitor StatementVisitor, context interface{}) interface{} {
	return visitor.VisitIfStmt(i, context)
}

// ImportSpecifier binds Local to the export named Imported. An empty Imported
// is the default export, "*" is the namespace.
type ImportSpecifier struct {
	Imported string
	Local    string
}

// ImportStmt represents an import declaration
type ImportStmt struct {
	StatementBase
	Specifiers []ImportSpecifier
	Source     string
}

func NewImportStmt(specifiers []ImportSpecifier, source string, sourceSpan *util.ParseSourceSpan) *ImportStmt {
	return &ImportStmt{
		StatementBase: StatementBase{SourceSpan: sourceSpan},
		Specifiers:    specifiers,
		Source:        source,
	}
}

func (i *ImportStmt) VisitStatement(visitor StatementVisitor, context interface{}) interface{} {
	return visitor.VisitImportStmt(i, context)
}

package ast

// Node is any node of a component: template nodes, statements, expressions
// and binding patterns share one interface and are told apart by type switch.
type Node interface {
	GetStart() int
	GetEnd() int
}

// BaseNode carries the source offsets every node has
type BaseNode struct {
	Start int
	End   int
}

// GetStart returns the start offset
func (b *BaseNode) GetStart() int { return b.Start }

// GetEnd returns the end offset
func (b *BaseNode) GetEnd() int { return b.End }

// ---- template ----

// Root is a parsed component
type Root struct {
	BaseNode
	Instance *Program
	Module   *Program
	Fragment *Fragment
	// Source is the component text the offsets refer to, when known.
	Source string
}

// Fragment is an ordered list of template nodes
type Fragment struct {
	BaseNode
	Nodes []Node
}

type Text struct {
	BaseNode
	Data string
}

type Comment struct {
	BaseNode
	Data string
}

// ExpressionTag is `{expression}` in markup
type ExpressionTag struct {
	BaseNode
	Expression Node
}

type RegularElement struct {
	BaseNode
	Name       string
	Attributes []Node
	Fragment   *Fragment
}

// Attribute is `name="..."` or `name={...}`. A nil Value is a boolean attribute.
type Attribute struct {
	BaseNode
	Name  string
	Value []Node
}

// BindDirective is `bind:name={expression}`
type BindDirective struct {
	BaseNode
	Name       string
	Expression Node
}

// AnimateDirective is `animate:name={expression}`
type AnimateDirective struct {
	BaseNode
	Name       string
	Expression Node
}

// TransitionDirective is `transition:`, `in:` or `out:`
type TransitionDirective struct {
	BaseNode
	Name       string
	Expression Node
	Intro      bool
	Outro      bool
}

// EachBlock is `{#each expression as context, index (key)}...{:else}...{/each}`
type EachBlock struct {
	BaseNode
	Expression Node
	// Context is the item pattern; nil for `{#each items}`.
	Context  Node
	Index    string
	Key      Node
	Body     *Fragment
	Fallback *Fragment
}

// ---- script ----

type Program struct {
	BaseNode
	Body []Node
}

type ExpressionStatement struct {
	BaseNode
	Expression Node
}

// VariableDeclaration is `let`, `const` or `var`
type VariableDeclaration struct {
	BaseNode
	Kind         string
	Declarations []*VariableDeclarator
}

type VariableDeclarator struct {
	BaseNode
	ID   Node
	Init Node
}

type FunctionDeclaration struct {
	BaseNode
	ID     *Identifier
	Params []Node
	Body   *BlockStatement
	Async  bool
}

type BlockStatement struct {
	BaseNode
	Body []Node
}

type ReturnStatement struct {
	BaseNode
	Argument Node
}

type IfStatement struct {
	BaseNode
	Test       Node
	Consequent Node
	Alternate  Node
}

// LabeledStatement carries legacy `$: ...` reactive statements
type LabeledStatement struct {
	BaseNode
	Label *Identifier
	Body  Node
}

type ImportDeclaration struct {
	BaseNode
	Specifiers []*ImportSpecifier
	Source     string
}

// ImportSpecifier binds Local; Imported is "" for a default import and "*"
// for a namespace import.
type ImportSpecifier struct {
	BaseNode
	Imported string
	Local    string
}

type ExportNamedDeclaration struct {
	BaseNode
	Declaration Node
}

// ---- expressions ----

type Identifier struct {
	BaseNode
	Name string
}

// Literal holds a float64, string, bool or nil value. Regex and bigint
// literals keep only Raw.
type Literal struct {
	BaseNode
	Value interface{}
	Raw   string
}

type TemplateLiteral struct {
	BaseNode
	Quasis      []string
	Expressions []Node
}

type MemberExpression struct {
	BaseNode
	Object   Node
	Property Node
	Computed bool
	Optional bool
}

type CallExpression struct {
	BaseNode
	Callee    Node
	Arguments []Node
	Optional  bool
	// Ignores lists the warning codes silenced at this call site.
	Ignores []string
}

type NewExpression struct {
	BaseNode
	Callee    Node
	Arguments []Node
}

// ArrowFunctionExpression has either an expression Body or a *BlockStatement
type ArrowFunctionExpression struct {
	BaseNode
	Params []Node
	Body   Node
	Async  bool
}

type FunctionExpression struct {
	BaseNode
	ID     *Identifier
	Params []Node
	Body   *BlockStatement
	Async  bool
}

type AssignmentExpression struct {
	BaseNode
	Operator string
	Left     Node
	Right    Node
}

type UpdateExpression struct {
	BaseNode
	Operator string
	Prefix   bool
	Argument Node
}

type BinaryExpression struct {
	BaseNode
	Operator string
	Left     Node
	Right    Node
}

type LogicalExpression struct {
	BaseNode
	Operator string
	Left     Node
	Right    Node
}

type UnaryExpression struct {
	BaseNode
	Operator string
	Argument Node
}

type ConditionalExpression struct {
	BaseNode
	Test       Node
	Consequent Node
	Alternate  Node
}

// ArrayExpression elements may be nil for holes
type ArrayExpression struct {
	BaseNode
	Elements []Node
}

// ObjectExpression properties are *Property or *SpreadElement
type ObjectExpression struct {
	BaseNode
	Properties []Node
}

// Property appears in object literals and object patterns
type Property struct {
	BaseNode
	Key       Node
	Value     Node
	Computed  bool
	Shorthand bool
}

type SpreadElement struct {
	BaseNode
	Argument Node
}

type SequenceExpression struct {
	BaseNode
	Expressions []Node
}

type AwaitExpression struct {
	BaseNode
	Argument Node
}

// ---- patterns ----

// ObjectPattern properties are *Property or *RestElement
type ObjectPattern struct {
	BaseNode
	Properties []Node
}

// ArrayPattern elements may be nil for holes
type ArrayPattern struct {
	BaseNode
	Elements []Node
}

type AssignmentPattern struct {
	BaseNode
	Left  Node
	Right Node
}

type RestElement struct {
	BaseNode
	Argument Node
}

// PropertyKeyName returns the static name of a non-computed property key.
func PropertyKeyName(p *Property) (string, bool) {
	if p.Computed {
		return "", false
	}
	switch key := p.Key.(type) {
	case *Identifier:
		return key.Name, true
	case *Literal:
		if s, ok := key.Value.(string); ok {
			return s, true
		}
		return key.Raw, key.Raw != ""
	}
	return "", false
}

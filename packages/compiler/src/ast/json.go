package ast

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/ehtick/svelte/packages/compiler/src/util"
)

// DecodeRoot reads a component AST serialised as ESTree-style JSON:
//
//	{"type": "Root", "source": "...", "instance": Program, "module": Program, "fragment": Fragment}
//
// Failures are reported as *util.ParseError. Syntax errors point into the
// JSON document, structural errors into the component source when present.
func DecodeRoot(data []byte, filename string) (*Root, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		jsonFile := util.NewParseSourceFile(string(data), filename)
		offset := 0
		var syntaxErr *json.SyntaxError
		if errors.As(err, &syntaxErr) {
			offset = int(syntaxErr.Offset)
		}
		parseErr := util.NewParseError(jsonFile.SpanOf(offset, offset), "invalid component JSON")
		parseErr.RelatedError = err
		return nil, parseErr
	}

	d := &decoder{}
	var source string
	if msg, ok := raw["source"]; ok {
		if err := json.Unmarshal(msg, &source); err != nil {
			return nil, d.fail(nil, fmt.Sprintf("invalid source: %v", err))
		}
	}
	d.file = util.NewParseSourceFile(source, filename)

	node, err := d.decodeFields("Root", raw)
	if err != nil {
		return nil, err
	}
	root, ok := node.(*Root)
	if !ok {
		return nil, d.fail(raw, "expected a Root node")
	}
	root.Source = source
	return root, nil
}

type decoder struct {
	file *util.ParseSourceFile
}

func (d *decoder) fail(raw map[string]json.RawMessage, msg string) error {
	start, end := 0, 0
	if raw != nil {
		_ = json.Unmarshal(raw["start"], &start)
		_ = json.Unmarshal(raw["end"], &end)
	}
	if end < start {
		end = start
	}
	return util.NewParseError(d.file.SpanOf(start, end), msg)
}

// node decodes one node; JSON null yields a nil Node
func (d *decoder) node(msg json.RawMessage) (Node, error) {
	if len(msg) == 0 || string(msg) == "null" {
		return nil, nil
	}
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(msg, &raw); err != nil {
		return nil, d.fail(nil, fmt.Sprintf("expected a node: %v", err))
	}
	var typ string
	if err := json.Unmarshal(raw["type"], &typ); err != nil || typ == "" {
		return nil, d.fail(raw, "node without a type")
	}
	return d.decodeFields(typ, raw)
}

func (d *decoder) nodes(msg json.RawMessage) ([]Node, error) {
	if len(msg) == 0 || string(msg) == "null" {
		return nil, nil
	}
	var items []json.RawMessage
	if err := json.Unmarshal(msg, &items); err != nil {
		return nil, d.fail(nil, fmt.Sprintf("expected a node list: %v", err))
	}
	out := make([]Node, len(items))
	for i, item := range items {
		n, err := d.node(item)
		if err != nil {
			return nil, err
		}
		out[i] = n
	}
	return out, nil
}

// fields decodes the simple (non-node) fields of a node
type fields struct {
	Start     int             `json:"start"`
	End       int             `json:"end"`
	Name      string          `json:"name"`
	Data      string          `json:"data"`
	Kind      string          `json:"kind"`
	Operator  string          `json:"operator"`
	Prefix    bool            `json:"prefix"`
	Computed  bool            `json:"computed"`
	Optional  bool            `json:"optional"`
	Shorthand bool            `json:"shorthand"`
	Async     bool            `json:"async"`
	Intro     bool            `json:"intro"`
	Outro     bool            `json:"outro"`
	Raw       string          `json:"raw"`
	Value     json.RawMessage `json:"value"`
	Index     string          `json:"index"`
	Ignores   []string        `json:"ignores"`
	Imported  json.RawMessage `json:"imported"`
	Local     json.RawMessage `json:"local"`
	Source    json.RawMessage `json:"source"`
	Quasis    []struct {
		Value struct {
			Raw string `json:"raw"`
		} `json:"value"`
	} `json:"quasis"`
}

func (d *decoder) decodeFields(typ string, raw map[string]json.RawMessage) (Node, error) {
	var f fields
	simple, err := json.Marshal(raw)
	if err == nil {
		err = json.Unmarshal(simple, &f)
	}
	if err != nil {
		return nil, d.fail(raw, fmt.Sprintf("invalid %s node: %v", typ, err))
	}
	base := BaseNode{Start: f.Start, End: f.End}

	var firstErr error
	one := func(key string) Node {
		n, err := d.node(raw[key])
		if err != nil && firstErr == nil {
			firstErr = err
		}
		return n
	}
	many := func(key string) []Node {
		ns, err := d.nodes(raw[key])
		if err != nil && firstErr == nil {
			firstErr = err
		}
		return ns
	}
	ident := func(key string) *Identifier {
		id, _ := one(key).(*Identifier)
		return id
	}
	block := func(key string) *BlockStatement {
		b, _ := one(key).(*BlockStatement)
		return b
	}
	program := func(key string) *Program {
		p, _ := one(key).(*Program)
		return p
	}
	fragment := func(key string) *Fragment {
		fr, _ := one(key).(*Fragment)
		return fr
	}

	var node Node
	switch typ {
	case "Root":
		node = &Root{BaseNode: base, Instance: program("instance"), Module: program("module"), Fragment: fragment("fragment")}
	case "Fragment":
		node = &Fragment{BaseNode: base, Nodes: many("nodes")}
	case "Text":
		node = &Text{BaseNode: base, Data: f.Data}
	case "Comment":
		node = &Comment{BaseNode: base, Data: f.Data}
	case "ExpressionTag":
		node = &ExpressionTag{BaseNode: base, Expression: one("expression")}
	case "RegularElement":
		node = &RegularElement{BaseNode: base, Name: f.Name, Attributes: many("attributes"), Fragment: fragment("fragment")}
	case "Attribute":
		attr := &Attribute{BaseNode: base, Name: f.Name}
		if string(f.Value) != "true" {
			if len(f.Value) > 0 && f.Value[0] == '{' {
				attr.Value = []Node{one("value")}
			} else {
				attr.Value = many("value")
			}
		}
		node = attr
	case "BindDirective":
		node = &BindDirective{BaseNode: base, Name: f.Name, Expression: one("expression")}
	case "AnimateDirective":
		node = &AnimateDirective{BaseNode: base, Name: f.Name, Expression: one("expression")}
	case "TransitionDirective":
		node = &TransitionDirective{BaseNode: base, Name: f.Name, Expression: one("expression"), Intro: f.Intro, Outro: f.Outro}
	case "EachBlock":
		node = &EachBlock{
			BaseNode:   base,
			Expression: one("expression"),
			Context:    one("context"),
			Index:      f.Index,
			Key:        one("key"),
			Body:       fragment("body"),
			Fallback:   fragment("fallback"),
		}
	case "Program":
		node = &Program{BaseNode: base, Body: many("body")}
	case "ExpressionStatement":
		node = &ExpressionStatement{BaseNode: base, Expression: one("expression")}
	case "VariableDeclaration":
		decl := &VariableDeclaration{BaseNode: base, Kind: f.Kind}
		for _, n := range many("declarations") {
			if declarator, ok := n.(*VariableDeclarator); ok {
				decl.Declarations = append(decl.Declarations, declarator)
			}
		}
		node = decl
	case "VariableDeclarator":
		node = &VariableDeclarator{BaseNode: base, ID: one("id"), Init: one("init")}
	case "FunctionDeclaration":
		node = &FunctionDeclaration{BaseNode: base, ID: ident("id"), Params: many("params"), Body: block("body"), Async: f.Async}
	case "BlockStatement":
		node = &BlockStatement{BaseNode: base, Body: many("body")}
	case "ReturnStatement":
		node = &ReturnStatement{BaseNode: base, Argument: one("argument")}
	case "IfStatement":
		node = &IfStatement{BaseNode: base, Test: one("test"), Consequent: one("consequent"), Alternate: one("alternate")}
	case "LabeledStatement":
		node = &LabeledStatement{BaseNode: base, Label: ident("label"), Body: one("body")}
	case "ImportDeclaration":
		decl := &ImportDeclaration{BaseNode: base}
		if source, ok := one("source").(*Literal); ok {
			decl.Source, _ = source.Value.(string)
		}
		for _, n := range many("specifiers") {
			if spec, ok := n.(*ImportSpecifier); ok {
				decl.Specifiers = append(decl.Specifiers, spec)
			}
		}
		node = decl
	case "ImportSpecifier", "ImportDefaultSpecifier", "ImportNamespaceSpecifier":
		spec := &ImportSpecifier{BaseNode: base}
		if local := ident("local"); local != nil {
			spec.Local = local.Name
		}
		switch typ {
		case "ImportDefaultSpecifier":
		case "ImportNamespaceSpecifier":
			spec.Imported = "*"
		default:
			if imported := ident("imported"); imported != nil {
				spec.Imported = imported.Name
			}
		}
		node = spec
	case "ExportNamedDeclaration":
		node = &ExportNamedDeclaration{BaseNode: base, Declaration: one("declaration")}
	case "Identifier":
		node = &Identifier{BaseNode: base, Name: f.Name}
	case "Literal":
		lit := &Literal{BaseNode: base, Raw: f.Raw}
		if len(f.Value) > 0 {
			if err := json.Unmarshal(f.Value, &lit.Value); err != nil {
				return nil, d.fail(raw, fmt.Sprintf("invalid literal: %v", err))
			}
		}
		if _, isObject := lit.Value.(map[string]interface{}); isObject {
			lit.Value = nil
		}
		node = lit
	case "TemplateLiteral":
		tpl := &TemplateLiteral{BaseNode: base, Expressions: many("expressions")}
		for _, q := range f.Quasis {
			tpl.Quasis = append(tpl.Quasis, q.Value.Raw)
		}
		node = tpl
	case "MemberExpression":
		node = &MemberExpression{BaseNode: base, Object: one("object"), Property: one("property"), Computed: f.Computed, Optional: f.Optional}
	case "CallExpression":
		node = &CallExpression{BaseNode: base, Callee: one("callee"), Arguments: many("arguments"), Optional: f.Optional, Ignores: f.Ignores}
	case "NewExpression":
		node = &NewExpression{BaseNode: base, Callee: one("callee"), Arguments: many("arguments")}
	case "ArrowFunctionExpression":
		node = &ArrowFunctionExpression{BaseNode: base, Params: many("params"), Body: one("body"), Async: f.Async}
	case "FunctionExpression":
		node = &FunctionExpression{BaseNode: base, ID: ident("id"), Params: many("params"), Body: block("body"), Async: f.Async}
	case "AssignmentExpression":
		node = &AssignmentExpression{BaseNode: base, Operator: f.Operator, Left: one("left"), Right: one("right")}
	case "UpdateExpression":
		node = &UpdateExpression{BaseNode: base, Operator: f.Operator, Prefix: f.Prefix, Argument: one("argument")}
	case "BinaryExpression":
		node = &BinaryExpression{BaseNode: base, Operator: f.Operator, Left: one("left"), Right: one("right")}
	case "LogicalExpression":
		node = &LogicalExpression{BaseNode: base, Operator: f.Operator, Left: one("left"), Right: one("right")}
	case "UnaryExpression":
		node = &UnaryExpression{BaseNode: base, Operator: f.Operator, Argument: one("argument")}
	case "ConditionalExpression":
		node = &ConditionalExpression{BaseNode: base, Test: one("test"), Consequent: one("consequent"), Alternate: one("alternate")}
	case "ArrayExpression":
		node = &ArrayExpression{BaseNode: base, Elements: many("elements")}
	case "ObjectExpression":
		node = &ObjectExpression{BaseNode: base, Properties: many("properties")}
	case "Property":
		node = &Property{BaseNode: base, Key: one("key"), Value: one("value"), Computed: f.Computed, Shorthand: f.Shorthand}
	case "SpreadElement":
		node = &SpreadElement{BaseNode: base, Argument: one("argument")}
	case "SequenceExpression":
		node = &SequenceExpression{BaseNode: base, Expressions: many("expressions")}
	case "AwaitExpression":
		node = &AwaitExpression{BaseNode: base, Argument: one("argument")}
	case "ObjectPattern":
		node = &ObjectPattern{BaseNode: base, Properties: many("properties")}
	case "ArrayPattern":
		node = &ArrayPattern{BaseNode: base, Elements: many("elements")}
	case "AssignmentPattern":
		node = &AssignmentPattern{BaseNode: base, Left: one("left"), Right: one("right")}
	case "RestElement":
		node = &RestElement{BaseNode: base, Argument: one("argument")}
	default:
		return nil, d.fail(raw, fmt.Sprintf("unsupported node type %q", typ))
	}

	if firstErr != nil {
		return nil, firstErr
	}
	return node, nil
}

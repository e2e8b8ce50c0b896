package ast_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/ehtick/svelte/packages/compiler/src/ast"
	"github.com/ehtick/svelte/packages/compiler/src/util"
)

const eachComponent = `{
  "type": "Root",
  "source": "{#each items as { id, name = 'x' }, i (id)}{name}{:else}none{/each}",
  "instance": {
    "type": "Program",
    "body": [
      {
        "type": "VariableDeclaration",
        "kind": "let",
        "declarations": [
          {
            "type": "VariableDeclarator",
            "id": {"type": "Identifier", "name": "items"},
            "init": {
              "type": "CallExpression",
              "callee": {"type": "Identifier", "name": "$state"},
              "arguments": [{"type": "ArrayExpression", "elements": []}]
            }
          }
        ]
      }
    ]
  },
  "fragment": {
    "type": "Fragment",
    "nodes": [
      {
        "type": "EachBlock",
        "start": 0,
        "end": 66,
        "expression": {"type": "Identifier", "name": "items", "start": 7, "end": 12},
        "context": {
          "type": "ObjectPattern",
          "properties": [
            {
              "type": "Property",
              "shorthand": true,
              "key": {"type": "Identifier", "name": "id"},
              "value": {"type": "Identifier", "name": "id"}
            },
            {
              "type": "Property",
              "shorthand": true,
              "key": {"type": "Identifier", "name": "name"},
              "value": {
                "type": "AssignmentPattern",
                "left": {"type": "Identifier", "name": "name"},
                "right": {"type": "Literal", "value": "x", "raw": "'x'"}
              }
            }
          ]
        },
        "index": "i",
        "key": {"type": "Identifier", "name": "id"},
        "body": {
          "type": "Fragment",
          "nodes": [{"type": "ExpressionTag", "expression": {"type": "Identifier", "name": "name"}}]
        },
        "fallback": {"type": "Fragment", "nodes": [{"type": "Text", "data": "none"}]}
      }
    ]
  }
}`

func TestDecodeRoot(t *testing.T) {
	t.Run("should decode an each block with its context and key", func(t *testing.T) {
		root, err := ast.DecodeRoot([]byte(eachComponent), "List.json")
		if err != nil {
			t.Fatal(err)
		}
		if root.Instance == nil || len(root.Instance.Body) != 1 {
			t.Fatalf("expected one instance statement, got %+v", root.Instance)
		}
		if root.Module != nil {
			t.Errorf("expected no module script")
		}
		if len(root.Fragment.Nodes) != 1 {
			t.Fatalf("expected one template node, got %d", len(root.Fragment.Nodes))
		}
		each, ok := root.Fragment.Nodes[0].(*ast.EachBlock)
		if !ok {
			t.Fatalf("expected *ast.EachBlock, got %T", root.Fragment.Nodes[0])
		}
		if each.Index != "i" {
			t.Errorf("Index = %q, want i", each.Index)
		}
		if each.GetStart() != 0 || each.GetEnd() != 66 {
			t.Errorf("span = [%d, %d), want [0, 66)", each.GetStart(), each.GetEnd())
		}
		if key, ok := each.Key.(*ast.Identifier); !ok || key.Name != "id" {
			t.Errorf("unexpected key %+v", each.Key)
		}
		if each.Fallback == nil || len(each.Fallback.Nodes) != 1 {
			t.Errorf("expected a fallback fragment")
		}

		var names []string
		for _, id := range ast.ExtractIdentifiers(each.Context) {
			names = append(names, id.Name)
		}
		if diff := cmp.Diff([]string{"id", "name"}, names); diff != "" {
			t.Errorf("context identifiers mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("should keep literal values and raw text", func(t *testing.T) {
		root, err := ast.DecodeRoot([]byte(eachComponent), "List.json")
		if err != nil {
			t.Fatal(err)
		}
		each := root.Fragment.Nodes[0].(*ast.EachBlock)
		pattern := each.Context.(*ast.ObjectPattern)
		def := pattern.Properties[1].(*ast.Property).Value.(*ast.AssignmentPattern)
		lit := def.Right.(*ast.Literal)
		if lit.Value != "x" || lit.Raw != "'x'" {
			t.Errorf("unexpected literal %+v", lit)
		}
	})

	t.Run("should treat a true attribute value as a boolean attribute", func(t *testing.T) {
		data := `{"type": "Root", "fragment": {"type": "Fragment", "nodes": [
			{"type": "RegularElement", "name": "input", "attributes": [
				{"type": "Attribute", "name": "disabled", "value": true},
				{"type": "Attribute", "name": "title", "value": [{"type": "Text", "data": "hi"}]}
			]}
		]}}`
		root, err := ast.DecodeRoot([]byte(data), "Input.json")
		if err != nil {
			t.Fatal(err)
		}
		el := root.Fragment.Nodes[0].(*ast.RegularElement)
		disabled := el.Attributes[0].(*ast.Attribute)
		if disabled.Value != nil {
			t.Errorf("expected a nil value for a boolean attribute, got %+v", disabled.Value)
		}
		title := el.Attributes[1].(*ast.Attribute)
		if len(title.Value) != 1 {
			t.Errorf("expected one value part, got %d", len(title.Value))
		}
	})

	t.Run("should report invalid JSON as a parse error", func(t *testing.T) {
		_, err := ast.DecodeRoot([]byte(`{"type": "Root",`), "Broken.json")
		if err == nil {
			t.Fatal("expected an error")
		}
		var parseErr *util.ParseError
		if !errors.As(err, &parseErr) {
			t.Fatalf("expected *util.ParseError, got %T", err)
		}
		if !strings.Contains(err.Error(), "invalid component JSON") {
			t.Errorf("unexpected message %q", err.Error())
		}
	})

	t.Run("should point unsupported nodes at the component source", func(t *testing.T) {
		data := `{"type": "Root", "source": "<p>\n{#if ok}{/if}", "fragment": {"type": "Fragment", "nodes": [
			{"type": "IfBlock", "start": 4, "end": 15}
		]}}`
		_, err := ast.DecodeRoot([]byte(data), "If.svelte")
		var parseErr *util.ParseError
		if !errors.As(err, &parseErr) {
			t.Fatalf("expected *util.ParseError, got %v", err)
		}
		if !strings.Contains(parseErr.Msg, `unsupported node type "IfBlock"`) {
			t.Errorf("unexpected message %q", parseErr.Msg)
		}
		if parseErr.Span.Start.Line != 1 || parseErr.Span.Start.Col != 0 {
			t.Errorf("error at %d:%d, want 1:0", parseErr.Span.Start.Line, parseErr.Span.Start.Col)
		}
	})
}

package lowering_test

import (
	"testing"

	"github.com/ehtick/svelte/packages/compiler/src/ast"
)

func TestPropsDeclarations(t *testing.T) {
	t.Run("should read named props from the props object", func(t *testing.T) {
		pattern := &ast.ObjectPattern{Properties: []ast.Node{
			prop("title", nil),
			prop("count", num(1)),
			&ast.RestElement{Argument: id("rest")},
		}}
		root := component([]ast.Node{declare("let", pattern, call(id("$props")))},
			tag(id("title")), tag(id("count")), tag(id("rest")))

		js := lower(t, root, true, false).js
		assertContains(t, js,
			"const rest = $.restProps($$props, ['title', 'count']);",
			"$.text($$anchor, () => $$props.title);",
			"$.text($$anchor, () => $.fallback($$props.count, 1));",
			"$.text($$anchor, () => rest);",
		)
		assertNotContains(t, js, "let {")
	})

	t.Run("should alias the whole props object", func(t *testing.T) {
		root := component([]ast.Node{declare("let", id("props"), call(id("$props")))})
		assertContains(t, lower(t, root, true, false).js, "const props = $$props;")
	})

	t.Run("should pass side-effecting prop defaults lazily", func(t *testing.T) {
		pattern := &ast.ObjectPattern{Properties: []ast.Node{prop("items", call(id("load")))}}
		root := component([]ast.Node{declare("let", pattern, call(id("$props")))}, tag(id("items")))
		assertContains(t, lower(t, root, true, false).js, "$.fallback($$props.items, load, true)")
	})
}

func TestLegacyDeclarations(t *testing.T) {
	t.Run("should wrap reassigned variables in mutable sources", func(t *testing.T) {
		root := component([]ast.Node{
			declare("let", id("count"), num(0)),
			declare("let", id("fixed"), num(1)),
			stmt(assign(id("count"), num(2))),
		}, tag(id("count")))

		js := lower(t, root, false, false).js
		assertContains(t, js,
			"let count = $.mutableSource(0);",
			"let fixed = 1;",
			"$.set(count, 2);",
			"$.text($$anchor, () => $.get(count));",
		)
	})

	t.Run("should split destructured declarations holding state", func(t *testing.T) {
		pattern := &ast.ArrayPattern{Elements: []ast.Node{id("a"), id("b")}}
		root := component([]ast.Node{
			declare("let", pattern, id("pair")),
			stmt(assign(id("a"), num(1))),
		})

		assertContains(t, lower(t, root, false, false).js,
			"  const $$value = pair;\n"+
				"  const $$values = $.toArray($$value, 2);\n"+
				"  let a = $.mutableSource($$values[0]);\n"+
				"  let b = $$values[1];\n"+
				"  $.set(a, 1);\n",
		)
	})

	t.Run("should keep destructured declarations without state as patterns", func(t *testing.T) {
		pattern := &ast.ObjectPattern{Properties: []ast.Node{prop("a", nil), prop("b", nil)}}
		root := component([]ast.Node{declare("const", pattern, id("pair"))})
		assertContains(t, lower(t, root, false, false).js, "const { a, b } = pair;")
	})

	t.Run("should run reactive statements after their dependencies change", func(t *testing.T) {
		reactive := &ast.LabeledStatement{
			Label: id("$"),
			Body:  stmt(assign(id("doubled"), &ast.BinaryExpression{Operator: "*", Left: id("count"), Right: num(2)})),
		}
		root := component([]ast.Node{
			declare("let", id("count"), num(0)),
			reactive,
			stmt(assign(id("count"), num(1))),
		}, tag(id("doubled")))

		js := lower(t, root, false, false).js
		assertContains(t, js,
			"export default function Component($$anchor, $$props) {\n"+
				"  let doubled = $.mutableSource();\n"+
				"  let count = $.mutableSource(0);\n"+
				"  $.set(count, 1);\n"+
				"  $.legacyPreEffect(() => $.get(count), () => {\n"+
				"    $.set(doubled, $.get(count) * 2);\n"+
				"  });\n"+
				"  $.text($$anchor, () => $.get(doubled));\n"+
				"}",
		)
	})

	t.Run("should treat exported lets as props", func(t *testing.T) {
		root := component([]ast.Node{
			&ast.ExportNamedDeclaration{Declaration: declare("let", id("name"), str("world"))},
		}, tag(id("name")))

		js := lower(t, root, false, false).js
		assertContains(t, js, "$.text($$anchor, () => $.fallback($$props.name, 'world'));")
		assertNotContains(t, js, "let name")
	})
}

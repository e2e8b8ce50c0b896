package lowering_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/ehtick/svelte/packages/compiler/src/ast"
)

func TestFragment(t *testing.T) {
	t.Run("should lower elements, text and attributes", func(t *testing.T) {
		class := &ast.Attribute{Name: "class", Value: []ast.Node{&ast.Text{Data: "item "}, tag(id("kind"))}}
		disabled := &ast.Attribute{Name: "disabled"}
		title := &ast.Attribute{Name: "title", Value: []ast.Node{&ast.Text{Data: "hi"}}}
		root := component(nil,
			&ast.Comment{Data: "header"},
			element("p", []ast.Node{class, disabled, title}, &ast.Text{Data: "hello"}, tag(id("name"))),
			&ast.Text{Data: "\n\n"},
		)

		got := lower(t, root, true, false).js
		want := "import * as $ from 'svelte/internal/client';\n" +
			"export default function Component($$anchor, $$props) {\n" +
			"  const p = $.element($$anchor, 'p');\n" +
			"  $.attr(p, 'class', () => 'item ' + kind);\n" +
			"  $.attr(p, 'disabled', true);\n" +
			"  $.attr(p, 'title', 'hi');\n" +
			"  $.text(p, 'hello');\n" +
			"  $.text(p, () => name);\n" +
			"}"
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("should give every element a unique name", func(t *testing.T) {
		root := component(nil, element("li", nil), element("li", nil))
		assertContains(t, lower(t, root, true, false).js,
			"const li = $.element($$anchor, 'li');",
			"const li_1 = $.element($$anchor, 'li');",
		)
	})

	t.Run("should prefix concatenations that start with an expression", func(t *testing.T) {
		attr := &ast.Attribute{Name: "href", Value: []ast.Node{tag(id("base")), &ast.Text{Data: "/list"}}}
		root := component(nil, element("a", []ast.Node{attr}))
		assertContains(t, lower(t, root, true, false).js, "$.attr(a, 'href', () => ('' + base) + '/list');")
	})

	t.Run("should lower event attributes", func(t *testing.T) {
		root := component(nil, element("button", []ast.Node{onClick(id("save"))}))
		assertContains(t, lower(t, root, true, false).js, "$.event(button, 'click', save);")
	})

	t.Run("should lower two-way bindings through the assignment rules", func(t *testing.T) {
		bind := &ast.BindDirective{Name: "value", Expression: id("name")}
		root := component([]ast.Node{declare("let", id("name"), call(id("$state"), str("")))},
			element("input", []ast.Node{bind}))
		assertContains(t, lower(t, root, true, false).js,
			"$.bind(input, 'value', () => $.get(name), ($$value) => $.set(name, $$value));")
	})

	t.Run("should lower animations and transitions", func(t *testing.T) {
		attrs := []ast.Node{
			&ast.AnimateDirective{Name: "flip"},
			&ast.TransitionDirective{Name: "fade"},
			&ast.TransitionDirective{Name: "fly", Intro: true, Expression: id("params")},
		}
		root := component(nil, element("div", attrs))
		assertContains(t, lower(t, root, true, false).js,
			"$.animation(div, () => flip);",
			"$.transition(3, div, () => fade);",
			"$.transition(1, div, () => fly, () => params);",
		)
	})
}

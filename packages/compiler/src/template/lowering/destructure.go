package lowering

import (
	"fmt"
	"regexp"

	"github.com/ehtick/svelte/packages/compiler/src/ast"
	"github.com/ehtick/svelte/packages/compiler/src/output"
	"github.com/ehtick/svelte/packages/compiler/src/runtime"
)

var identifierRe = regexp.MustCompile(`^[$A-Za-z_][$0-9A-Za-z_]*$`)

// patternPath is one leaf of a destructuring pattern applied to a value
type patternPath struct {
	// Target is the identifier, or member expression for assignment
	// patterns, that receives the leaf value.
	Target ast.Node
	// Expression computes the leaf value.
	Expression output.OutputExpression
	// Update is the location of the leaf inside the original value.
	Update     output.OutputExpression
	HasDefault bool
}

// patternInsert is an intermediate value shared by several leaves: the
// result of a default or the array form of an iterable.
type patternInsert struct {
	Name  string
	Value output.OutputExpression
}

type pathExtractor struct {
	l *Lowerer
	// reactive inserts are declared as derived values and read with $.get;
	// plain inserts are constants.
	reactive bool
	paths    []*patternPath
	inserts  []*patternInsert
}

// extractPaths decomposes pattern applied to base. Defaults and array
// patterns become inserts so each is evaluated once.
func (l *Lowerer) extractPaths(pattern ast.Node, base, update output.OutputExpression, reactive bool) ([]*patternPath, []*patternInsert) {
	x := &pathExtractor{l: l, reactive: reactive}
	x.walk(pattern, base, update, false)
	return x.paths, x.inserts
}

func (x *pathExtractor) insert(prefix string, value output.OutputExpression) output.OutputExpression {
	name := x.l.analysis.Root.Unique(prefix)
	x.inserts = append(x.inserts, &patternInsert{Name: name, Value: value})
	if x.reactive {
		return output.CallFn(output.ImportExpr(runtime.Get), output.Variable(name))
	}
	return output.Variable(name)
}

func (x *pathExtractor) walk(pattern ast.Node, expression, update output.OutputExpression, hasDefault bool) {
	switch p := pattern.(type) {
	case *ast.ObjectPattern:
		var excluded []output.OutputExpression
		for _, prop := range p.Properties {
			switch prop := prop.(type) {
			case *ast.Property:
				if prop.Computed {
					key := x.l.Expression(prop.Key)
					excluded = append(excluded, key)
					x.walk(prop.Value, output.Key(expression, key), output.Key(update, key), hasDefault)
					continue
				}
				key, _ := ast.PropertyKeyName(prop)
				excluded = append(excluded, output.Literal(key))
				x.walk(prop.Value, memberOf(expression, key), memberOf(update, key), hasDefault)
			case *ast.RestElement:
				rest := output.CallFn(output.ImportExpr(runtime.ExcludeFromObject), expression, output.LiteralArr(excluded...))
				x.walk(prop.Argument, rest, rest, hasDefault)
			}
		}

	case *ast.ArrayPattern:
		args := []output.OutputExpression{expression}
		if n := len(p.Elements); n == 0 || !isRest(p.Elements[n-1]) {
			args = append(args, output.Literal(n))
		}
		array := output.CallFn(output.ImportExpr(runtime.ToArray), args...)
		if x.reactive {
			array = output.CallFn(output.ImportExpr(runtime.DeclareDerived), output.ArrowFn(nil, array))
		}
		values := x.insert("$$values", array)
		for i, el := range p.Elements {
			if el == nil {
				continue
			}
			if rest, ok := el.(*ast.RestElement); ok {
				slice := output.CallFn(output.Prop(values, "slice"), output.Literal(i))
				x.walk(rest.Argument, slice, slice, hasDefault)
				continue
			}
			x.walk(el, output.Key(values, output.Literal(i)), output.Key(update, output.Literal(i)), hasDefault)
		}

	case *ast.AssignmentPattern:
		fallback := output.CallFn(output.ImportExpr(runtime.Fallback),
			append([]output.OutputExpression{expression}, x.l.fallbackArgs(p.Right)...)...)
		if x.reactive {
			fallback = output.CallFn(output.ImportExpr(runtime.DeclareDerived), output.ArrowFn(nil, fallback))
		}
		x.walk(p.Left, x.insert("$$fallback", fallback), update, true)

	case *ast.RestElement:
		x.walk(p.Argument, expression, update, hasDefault)

	case *ast.Identifier, *ast.MemberExpression:
		x.paths = append(x.paths, &patternPath{Target: p, Expression: expression, Update: update, HasDefault: hasDefault})

	default:
		panic(fmt.Sprintf("AssertionError: unexpected pattern %T", pattern))
	}
}

func isRest(node ast.Node) bool {
	_, ok := node.(*ast.RestElement)
	return ok
}

// memberOf reads a static property, quoting names that are not identifiers
func memberOf(receiver output.OutputExpression, name string) output.OutputExpression {
	if identifierRe.MatchString(name) {
		return output.Prop(receiver, name)
	}
	return output.Key(receiver, output.Literal(name))
}

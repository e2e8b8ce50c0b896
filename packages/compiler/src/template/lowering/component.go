package lowering

import (
	"github.com/ehtick/svelte/packages/compiler/src/ast"
	"github.com/ehtick/svelte/packages/compiler/src/output"
	"github.com/ehtick/svelte/packages/compiler/src/runtime"
	"github.com/ehtick/svelte/packages/compiler/src/scope"
	"github.com/ehtick/svelte/packages/compiler/src/util"
)

// LowerComponent lowers a whole component into the statements of an ES
// module whose default export is the component function. It also returns
// the runtime features the module depends on.
func LowerComponent(root *ast.Root, analysis *scope.Analysis, options Options) ([]output.OutputStatement, []string) {
	if options.Name == "" {
		options.Name = "Component"
	}
	if options.RuntimeModule == "" {
		options.RuntimeModule = runtime.ClientModule
	}
	l := NewLowerer(analysis, options)
	if root.Source != "" {
		filename := options.Filename
		if filename == "" {
			filename = options.Name + ".svelte"
		}
		l.file = util.NewParseSourceFile(root.Source, filename)
	}
	if analysis.Runes {
		l.useFeature(runtime.FeatureRunes)
	}

	module := []output.OutputStatement{
		output.NewImportStmt([]output.ImportSpecifier{{Imported: "*", Local: runtime.Namespace}}, options.RuntimeModule, nil),
	}

	if root.Module != nil {
		restore := l.enter(analysis.ModuleScope)
		module = append(module, l.Statements(root.Module.Body)...)
		restore()
	}

	var body []output.OutputStatement
	if len(analysis.StoreSubscriptions) > 0 {
		body = append(body, output.Const(storesName, output.CallFn(output.ImportExpr(runtime.SetupStores))))
	}
	for _, binding := range analysis.InstanceScope.Declarations() {
		if binding.Kind == scope.BindingLegacyReactive && binding.DeclarationKind == scope.DeclarationSynthetic {
			body = append(body, output.Let(binding.Name, output.CallFn(output.ImportExpr(runtime.MutableSource))))
		}
	}

	if root.Instance != nil {
		restore := l.enter(analysis.InstanceScope)
		for _, stmt := range root.Instance.Body {
			switch n := stmt.(type) {
			case *ast.ImportDeclaration:
				module = append(module, lowerImport(n))
			case *ast.LabeledStatement:
				if !isReactiveLabel(n) {
					body = append(body, l.withSpan(n, l.Statement(n))...)
				}
			default:
				body = append(body, l.withSpan(n, l.Statement(n))...)
			}
		}
		for _, reactive := range analysis.ReactiveStatements {
			body = append(body, l.withSpan(reactive.Node, []output.OutputStatement{l.reactiveStatement(reactive)})...)
		}
		restore()
	}

	if root.Fragment != nil {
		body = append(body, l.Fragment(root.Fragment, output.Variable(anchorName))...)
	}

	component := output.NewDeclareFunctionStmt(options.Name, output.Params(anchorName, propsName), body,
		output.StmtModifierExported|output.StmtModifierDefault, nil)
	return append(module, component), l.Features()
}

func isReactiveLabel(n *ast.LabeledStatement) bool {
	return n.Label != nil && n.Label.Name == "$"
}

// reactiveStatement lowers `$: body` into a pre effect that first reads its
// dependencies and then runs the body.
func (l *Lowerer) reactiveStatement(r *scope.ReactiveStatement) output.OutputStatement {
	reads := l.transitiveReads(r.Dependencies)
	var deps output.OutputExpression = output.Void0()
	if len(reads) > 0 {
		deps = output.Comma(reads...)
	}
	return output.Stmt(output.CallFn(output.ImportExpr(runtime.LegacyPreEffect),
		output.ArrowFn(nil, deps),
		output.ArrowFn(nil, l.Statement(r.Node.Body)),
	))
}

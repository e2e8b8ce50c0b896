package lowering

import (
	"sort"

	"github.com/ehtick/svelte/packages/compiler/src/ast"
	"github.com/ehtick/svelte/packages/compiler/src/output"
	"github.com/ehtick/svelte/packages/compiler/src/scope"
	"github.com/ehtick/svelte/packages/compiler/src/util"
)

// Options controls one lowering pass
type Options struct {
	Dev bool
	// Name is the exported component function; defaults to "Component".
	Name string
	// RuntimeModule is the import path of the client runtime.
	RuntimeModule string
	// Filename names the component source in source maps.
	Filename string
}

// Lowerer turns an analysed component into output statements. It is not
// safe for concurrent use; each compilation creates its own.
type Lowerer struct {
	analysis   *scope.Analysis
	options    Options
	scope      *scope.Scope
	strategies *StrategyTable
	features   map[string]bool
	// file is the component source spans point into; nil when the source
	// text is unknown.
	file *util.ParseSourceFile
}

// NewLowerer creates a Lowerer positioned at the template scope
func NewLowerer(analysis *scope.Analysis, options Options) *Lowerer {
	return &Lowerer{
		analysis:   analysis,
		options:    options,
		scope:      analysis.TemplateScope,
		strategies: NewStrategyTable(),
		features:   make(map[string]bool),
	}
}

// Strategies exposes the strategy table
func (l *Lowerer) Strategies() *StrategyTable {
	return l.strategies
}

// enter switches the current scope and returns the function restoring the
// previous one.
func (l *Lowerer) enter(s *scope.Scope) func() {
	previous := l.scope
	if s != nil {
		l.scope = s
	}
	return func() {
		l.scope = previous
	}
}

func (l *Lowerer) useFeature(name string) {
	l.features[name] = true
}

// Features lists the runtime features the generated code relies on
func (l *Lowerer) Features() []string {
	features := make([]string, 0, len(l.features))
	for name := range l.features {
		features = append(features, name)
	}
	sort.Strings(features)
	return features
}

// withSpan points statements lowered from node back at its source
func (l *Lowerer) withSpan(node ast.Node, stmts []output.OutputStatement) []output.OutputStatement {
	if l.file == nil || node == nil {
		return stmts
	}
	span := l.file.SpanOf(node.GetStart(), node.GetEnd())
	for _, stmt := range stmts {
		switch s := stmt.(type) {
		case *output.ExpressionStatement:
			if s.SourceSpan == nil {
				s.SourceSpan = span
			}
		case *output.DeclareVarStmt:
			if s.SourceSpan == nil {
				s.SourceSpan = span
			}
		}
	}
	return stmts
}

package compiler

import (
	"fmt"

	"github.com/ehtick/svelte/packages/compiler/src/ast"
	"github.com/ehtick/svelte/packages/compiler/src/config"
	"github.com/ehtick/svelte/packages/compiler/src/output"
	"github.com/ehtick/svelte/packages/compiler/src/runtime"
	"github.com/ehtick/svelte/packages/compiler/src/scope"
	"github.com/ehtick/svelte/packages/compiler/src/template/lowering"
)

// Result is the output of compiling one component
type Result struct {
	// JS is the generated ES module
	JS  string
	Map *output.SourceMap
	// Statements are the output statements JS was printed from
	Statements []output.OutputStatement
	// Features lists the runtime features the module relies on
	Features []string
	// Runes reports whether the component was compiled in runes mode
	Runes bool
}

// Compile analyses and lowers a parsed component and prints it as
// JavaScript. A nil opts uses the defaults.
func Compile(root *ast.Root, opts *config.CompileOptions) (result *Result, err error) {
	if opts == nil {
		opts = config.NewCompileOptions()
	}
	defer func() {
		if r := recover(); r != nil {
			result = nil
			err = fmt.Errorf("failed to compile %s: %v", opts.Name, r)
		}
	}()

	analysis := scope.Analyze(root, opts.Runes)
	statements, features := lowering.LowerComponent(root, analysis, lowering.Options{
		Dev:           opts.Dev,
		Name:          opts.Name,
		RuntimeModule: opts.RuntimeModule,
		Filename:      opts.Filename,
	})
	if err := config.CheckRuntime(opts.RuntimeVersion, features); err != nil {
		return nil, fmt.Errorf("failed to compile %s: %w", opts.Name, err)
	}

	ctx := output.NewJsEmitterVisitor(runtime.Aliases()).EmitStatements(statements)
	result = &Result{
		JS:         ctx.ToSource(),
		Statements: statements,
		Features:   features,
		Runes:      analysis.Runes,
	}
	if generator, err := ctx.ToSourceMapGenerator(opts.Name + ".js"); err == nil && generator != nil {
		result.Map = generator.ToJSON()
	}
	return result, nil
}

// CompileJSON decodes a component AST from JSON and compiles it. filename
// is used for diagnostics and, unless opts sets one, for source maps.
func CompileJSON(data []byte, filename string, opts *config.CompileOptions) (*Result, error) {
	root, err := ast.DecodeRoot(data, filename)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", filename, err)
	}
	if opts == nil {
		opts = config.NewCompileOptions()
	}
	if opts.Filename == "" {
		withFilename := *opts
		withFilename.Filename = filename
		opts = &withFilename
	}
	return Compile(root, opts)
}

package lowering

import (
	"github.com/ehtick/svelte/packages/compiler/src/ast"
	"github.com/ehtick/svelte/packages/compiler/src/output"
	"github.com/ehtick/svelte/packages/compiler/src/runtime"
	"github.com/ehtick/svelte/packages/compiler/src/scope"
)

const (
	itemParamName       = "$$item"
	asyncCollectionName = "$$collection"
)

// eachLowering is the state of one each block while its body and key are
// lowered. The usesIndex and keyUsesIndex accumulators are written by the
// strategies installed for the block and read once both traversals are done.
type eachLowering struct {
	l     *Lowerer
	node  *ast.EachBlock
	meta  *scope.EachBlockMetadata
	flags EachFlags

	collection output.OutputExpression
	// collectionID names the render function parameter giving access to the
	// collection when a loop variable shadows an outer name.
	collectionID string
	item         string
	index        string
	// store is the subscription the collection reads, if any
	store string
	// invalidation runs after every write through a loop variable. It is
	// built on the first write.
	invalidation []output.OutputExpression
	invalidates  bool

	usesIndex    bool
	keyUsesIndex bool
}

// EachBlock lowers `{#each}` into a renderList call. The returned statements
// are the list call, preceded by key validation in dev builds, or a single
// async registration wrapping both.
func (l *Lowerer) EachBlock(node *ast.EachBlock, anchor output.OutputExpression) []output.OutputStatement {
	meta := l.analysis.EachBlocks[node]
	if meta == nil {
		panic("AssertionError: each block was not analysed")
	}
	parentScope := l.scope

	e := &eachLowering{
		l:     l,
		node:  node,
		meta:  meta,
		index: meta.Index,
		item:  itemParamName,
	}
	e.collection = l.Expression(node.Expression)
	e.flags = EncodeEachFlags(node, meta, meta.Scope.FunctionDepth, l.analysis.Runes)

	if root, ok := ast.ObjectRoot(node.Expression).(*ast.Identifier); ok {
		if binding := l.analysis.Resolve(root); binding != nil && binding.Kind == scope.BindingStoreSub {
			e.store = root.Name
		}
	}

	for _, binding := range meta.Scope.Declarations() {
		if parentScope.Get(binding.Name) != nil {
			e.collectionID = l.analysis.Root.Unique("$$array")
			break
		}
	}

	bodyFrame := StrategyFrame{}
	keyFrame := StrategyFrame{}

	if node.Index != "" {
		indexBinding := meta.Scope.Get(node.Index)
		bodyFrame[indexBinding] = &BindingStrategy{
			Read: func(id *ast.Identifier) output.OutputExpression {
				e.usesIndex = true
				return e.readIndex()
			},
		}
		keyFrame[indexBinding] = &BindingStrategy{
			Kind: StrategyTransparent,
			Read: func(id *ast.Identifier) output.OutputExpression {
				e.keyUsesIndex = true
				return output.Variable(id.Name)
			},
		}
	}

	restoreScope := l.enter(meta.Scope)

	var declarations []output.OutputStatement
	switch context := node.Context.(type) {
	case nil:
	case *ast.Identifier:
		e.item = context.Name
		bodyFrame[meta.Scope.Get(context.Name)] = e.itemStrategy(meta.Scope.Get(context.Name))
	default:
		declarations = e.destructure(context, bodyFrame, keyFrame)
	}

	release := l.strategies.Push(bodyFrame)
	body := l.Fragment(node.Body, output.Variable(anchorName))
	release()

	var keyFn output.OutputExpression = output.ImportExpr(runtime.Index)
	if meta.Keyed {
		releaseKey := l.strategies.Push(keyFrame)
		key := l.Expression(node.Key)
		params := []*output.FnParam{output.NewPatternParam(l.pattern(node.Context))}
		releaseKey()
		if e.keyUsesIndex {
			params = append(params, output.NewFnParam(e.index))
		}
		keyFn = output.ArrowFn(params, key)
	}

	restoreScope()

	renderParams := output.Params(anchorName, e.item)
	if e.usesIndex || e.collectionID != "" {
		renderParams = append(renderParams, output.NewFnParam(e.index))
	}
	if e.collectionID != "" {
		renderParams = append(renderParams, output.NewFnParam(e.collectionID))
	}
	renderFn := output.ArrowFn(renderParams, append(declarations, body...))

	thunk := output.Thunk(e.resolvedCollection())

	args := []output.OutputExpression{anchor, output.Literal(int(e.flags)), thunk, keyFn, renderFn}
	if node.Fallback != nil {
		args = append(args, output.ArrowFn(output.Params(anchorName), l.Fragment(node.Fallback, output.Variable(anchorName))))
	}

	var statements []output.OutputStatement
	if l.options.Dev && meta.Keyed {
		statements = append(statements, output.Stmt(output.CallFn(output.ImportExpr(runtime.ValidateListKeys), thunk, keyFn)))
	}
	statements = append(statements, output.Stmt(output.CallFn(output.ImportExpr(runtime.RenderList), args...)))

	if meta.Expression.HasAwait {
		l.useFeature(runtime.FeatureAsyncInit)
		collection := output.ArrowFn(nil, e.collection)
		collection.Async = true
		return []output.OutputStatement{output.Stmt(output.CallFn(
			output.ImportExpr(runtime.RegisterAsyncInit),
			anchor,
			output.LiteralArr(collection),
			output.ArrowFn([]*output.FnParam{anchorParam(anchor), output.NewFnParam(asyncCollectionName)}, statements),
		))}
	}
	return statements
}

// anchorParam rebinds the anchor inside the async callback
func anchorParam(anchor output.OutputExpression) *output.FnParam {
	if read, ok := anchor.(*output.ReadVarExpr); ok {
		return output.NewFnParam(read.Name)
	}
	return output.NewFnParam(anchorName)
}

// liveCollection is the collection as seen from inside the render function
func (e *eachLowering) liveCollection() output.OutputExpression {
	if e.collectionID != "" {
		return output.CallFn(output.Variable(e.collectionID))
	}
	return e.resolvedCollection()
}

// resolvedCollection reads the collection value. An awaited collection is
// only available through the async registration's signal.
func (e *eachLowering) resolvedCollection() output.OutputExpression {
	if e.meta.Expression.HasAwait {
		return output.CallFn(output.ImportExpr(runtime.Get), output.Variable(asyncCollectionName))
	}
	return e.collection
}

func (e *eachLowering) readIndex() output.OutputExpression {
	index := output.Variable(e.index)
	if e.flags.Has(EachIndexReactive) {
		return output.CallFn(output.ImportExpr(runtime.Get), index)
	}
	return index
}

// withInvalidation appends the invalidation sequence to a write
func (e *eachLowering) withInvalidation(write output.OutputExpression) output.OutputExpression {
	if !e.invalidates {
		e.invalidates = true
		if e.store != "" {
			e.invalidation = append(e.invalidation, invalidateStore(e.store))
		}
		if deps := e.indirectDependencies(); !e.l.analysis.Runes && len(deps) > 0 {
			e.invalidation = append(e.invalidation, output.CallFn(
				output.ImportExpr(runtime.InvalidateInnerSignals),
				output.ArrowFn(nil, output.Comma(deps...)),
			))
		}
	}
	return output.Comma(append([]output.OutputExpression{write}, e.invalidation...)...)
}

// indirectDependencies lists what a write through a loop variable must
// invalidate in legacy mode: the dependencies of every enclosing collection,
// outermost first, then the captured collection and this block's own
// dependencies. Each binding is read once.
func (e *eachLowering) indirectDependencies() []output.OutputExpression {
	var deps []output.OutputExpression
	seen := make(map[*scope.Binding]bool)
	read := func(bindings []*scope.Binding) {
		for _, binding := range bindings {
			if !seen[binding] {
				seen[binding] = true
				deps = append(deps, e.l.readDependency(binding))
			}
		}
	}
	for _, outer := range e.meta.Invalidations {
		read(outer.TransitiveDeps)
	}
	if e.collectionID != "" {
		deps = append(deps, output.CallFn(output.Variable(e.collectionID)))
	}
	read(e.meta.TransitiveDeps)
	return deps
}

// readDependency reads a binding as the code around the block sees it
func (l *Lowerer) readDependency(binding *scope.Binding) output.OutputExpression {
	if strategy := l.strategies.Lookup(binding); strategy != nil && strategy.Read != nil {
		return strategy.Read(&ast.Identifier{Name: binding.Name})
	}
	return l.readBinding(binding, binding.Name)
}

// itemStrategy covers a loop variable bound to a plain identifier
func (e *eachLowering) itemStrategy(binding *scope.Binding) *BindingStrategy {
	return &BindingStrategy{
		Read: func(id *ast.Identifier) output.OutputExpression {
			if binding.Reassigned {
				e.usesIndex = true
				return output.Key(e.liveCollection(), e.readIndex())
			}
			if e.flags.Has(EachItemReactive) {
				return output.CallFn(output.ImportExpr(runtime.Get), output.Variable(id.Name))
			}
			return output.Variable(id.Name)
		},
		Assign: func(id *ast.Identifier, value output.OutputExpression) output.OutputExpression {
			e.usesIndex = true
			return e.withInvalidation(output.Assign(output.Key(e.liveCollection(), e.readIndex()), value))
		},
		Mutate: func(id *ast.Identifier, mutation output.OutputExpression) output.OutputExpression {
			e.usesIndex = true
			return e.withInvalidation(mutation)
		},
	}
}

// destructure declares one derived value per leaf of the item pattern and
// installs the leaf strategies. Defaults and array conversions are hoisted
// into their own derived values so they run once per update.
func (e *eachLowering) destructure(pattern ast.Node, bodyFrame, keyFrame StrategyFrame) []output.OutputStatement {
	l := e.l
	var item output.OutputExpression = output.Variable(itemParamName)
	if e.flags.Has(EachItemReactive) {
		item = output.CallFn(output.ImportExpr(runtime.Get), item)
	}

	updates := make(map[string]output.OutputExpression)
	for _, id := range ast.ExtractIdentifiers(pattern) {
		binding := e.meta.Scope.Get(id.Name)
		name := id.Name
		bodyFrame[binding] = &BindingStrategy{
			Read: func(id *ast.Identifier) output.OutputExpression {
				return output.CallFn(output.ImportExpr(runtime.Get), output.Variable(id.Name))
			},
			Assign: func(id *ast.Identifier, value output.OutputExpression) output.OutputExpression {
				return e.withInvalidation(output.Assign(updates[name], value))
			},
			Mutate: func(id *ast.Identifier, mutation output.OutputExpression) output.OutputExpression {
				return e.withInvalidation(mutation)
			},
		}
		keyFrame[binding] = TransparentStrategy()
	}

	// Defaults may read earlier leaves.
	release := l.strategies.Push(bodyFrame)
	paths, inserts := l.extractPaths(pattern, item, item, true)
	release()

	var declarations []output.OutputStatement
	for _, insert := range inserts {
		declarations = append(declarations, output.Let(insert.Name, insert.Value))
	}
	for _, path := range paths {
		name := path.Target.(*ast.Identifier).Name
		updates[name] = path.Update
		declarations = append(declarations, output.Let(name, output.CallFn(
			output.ImportExpr(runtime.DeclareDerivedSafeEqual), output.ArrowFn(nil, path.Expression))))
		if l.options.Dev {
			declarations = append(declarations, output.Stmt(output.CallFn(output.ImportExpr(runtime.Get), output.Variable(name))))
		}
	}
	return declarations
}

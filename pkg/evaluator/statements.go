package evaluator

import (
	"github.com/cwbudde/go-ecma/pkg/ast"
	"github.com/cwbudde/go-ecma/pkg/completion"
	"github.com/cwbudde/go-ecma/pkg/environment"
	"github.com/cwbudde/go-ecma/pkg/ops"
	"github.com/cwbudde/go-ecma/pkg/value"
)

func evalExpressionStatement(ev *Evaluator, node ast.Node, _ ...any) (completion.Record, error) {
	n := node.(*ast.ExpressionStatement)
	c, err := ev.Eval(n.Expr)
	if err != nil {
		return completion.Record{}, err
	}
	if c.IsAbrupt() {
		return c, nil
	}
	v, err := ev.GetValue(c)
	if err != nil {
		return completion.Record{}, err
	}
	return completion.NormalValue(v), nil
}

func evalEmptyStatement(_ *Evaluator, _ ast.Node, _ ...any) (completion.Record, error) {
	return completion.NormalEmpty(), nil
}

// evalBlockStatement implements Block:{StatementList} (§4.5): runs
// BlockDeclarationInstantiation against a fresh declarative environment,
// evaluates the body, then restores the outer lexical environment.
func evalBlockStatement(ev *Evaluator, node ast.Node, _ ...any) (completion.Record, error) {
	n := node.(*ast.BlockStatement)
	ctx := ev.Current()
	oldEnv := ctx.LexicalEnv
	blockEnv := environment.NewDeclarativeRecord(oldEnv)
	ctx.LexicalEnv = blockEnv
	defer func() { ctx.LexicalEnv = oldEnv }()

	if err := ev.BlockDeclarationInstantiation(blockEnv, n.Body); err != nil {
		return ev.Throw("SyntaxError", err.Error()), nil
	}
	return ev.evalStatementList(n.Body)
}

func evalVariableDeclaration(ev *Evaluator, node ast.Node, _ ...any) (completion.Record, error) {
	n := node.(*ast.VariableDeclaration)
	env := ev.Current().LexicalEnv
	for _, d := range n.Declarations {
		if n.DKind == ast.DeclVar {
			if d.Init == nil {
				continue
			}
			v, c, aborted, err := ev.val(d.Init)
			if err != nil {
				return completion.Record{}, err
			}
			if aborted {
				return c, nil
			}
			if id, ok := d.ID.(*ast.Identifier); ok {
				if fv, isFn := asAnonymousFunction(v, id.Name); isFn {
					v = fv
				}
			}
			if err := ev.assignmentPattern(d.ID, v); err != nil {
				return completion.Record{}, err
			}
			continue
		}
		if d.Init == nil {
			if err := ev.bindingInitialization(d.ID, value.Undefined, env); err != nil {
				return completion.Record{}, err
			}
			continue
		}
		v, c, aborted, err := ev.val(d.Init)
		if err != nil {
			return completion.Record{}, err
		}
		if aborted {
			return c, nil
		}
		if err := ev.bindingInitialization(d.ID, v, env); err != nil {
			return completion.Record{}, err
		}
	}
	return completion.NormalEmpty(), nil
}

// asAnonymousFunction names an anonymous function/arrow expression's result
// after its binding identifier (§4.4 NamedEvaluation), when it hasn't
// already been given a name.
func asAnonymousFunction(v value.Value, name string) (value.Value, bool) {
	obj, ok := v.(*value.Object)
	if !ok {
		return v, false
	}
	data, ok := fnData(obj)
	if !ok {
		return v, false
	}
	_ = data
	if nameVal, err := obj.Get(value.StringKey("name"), obj); err == nil {
		if s, ok := nameVal.(*value.String); ok && s.GoString() == "" {
			obj.DefineValue("name", value.NewString(name), false)
		}
	}
	return obj, true
}

func evalIfStatement(ev *Evaluator, node ast.Node, _ ...any) (completion.Record, error) {
	n := node.(*ast.IfStatement)
	test, c, aborted, err := ev.val(n.Test)
	if err != nil {
		return completion.Record{}, err
	}
	if aborted {
		return c, nil
	}
	if ops.ToBoolean(test) {
		r, err := ev.Eval(n.Consequent)
		if err != nil {
			return completion.Record{}, err
		}
		return completion.UpdateEmpty(r, value.Undefined), nil
	}
	if n.Alternate != nil {
		r, err := ev.Eval(n.Alternate)
		if err != nil {
			return completion.Record{}, err
		}
		return completion.UpdateEmpty(r, value.Undefined), nil
	}
	return completion.NormalEmpty(), nil
}

func evalWhileStatement(ev *Evaluator, node ast.Node, _ ...any) (completion.Record, error) {
	n := node.(*ast.WhileStatement)
	var result value.Value = value.Undefined
	for {
		test, c, aborted, err := ev.val(n.Test)
		if err != nil {
			return completion.Record{}, err
		}
		if aborted {
			return c, nil
		}
		if !ops.ToBoolean(test) {
			break
		}
		bodyC, err := ev.Eval(n.Body)
		if err != nil {
			return completion.Record{}, err
		}
		if !completion.IsEmpty(bodyC.Val) {
			result = bodyC.Val
		}
		if bodyC.K == completion.Break && bodyC.Target == "" {
			break
		}
		if bodyC.K == completion.Continue && bodyC.Target == "" {
			continue
		}
		if bodyC.IsAbrupt() {
			return bodyC, nil
		}
	}
	return completion.NormalValue(result), nil
}

func evalDoWhileStatement(ev *Evaluator, node ast.Node, _ ...any) (completion.Record, error) {
	n := node.(*ast.DoWhileStatement)
	var result value.Value = value.Undefined
	for {
		bodyC, err := ev.Eval(n.Body)
		if err != nil {
			return completion.Record{}, err
		}
		if !completion.IsEmpty(bodyC.Val) {
			result = bodyC.Val
		}
		if bodyC.K == completion.Break && bodyC.Target == "" {
			break
		}
		if bodyC.K == completion.Continue && bodyC.Target != "" {
			return bodyC, nil
		}
		if bodyC.IsAbrupt() && bodyC.K != completion.Continue {
			return bodyC, nil
		}
		test, c, aborted, err := ev.val(n.Test)
		if err != nil {
			return completion.Record{}, err
		}
		if aborted {
			return c, nil
		}
		if !ops.ToBoolean(test) {
			break
		}
	}
	return completion.NormalValue(result), nil
}

// evalForStatement implements ForStatement (§4.5/§8 testable property: a
// fresh per-iteration lexical environment is created for `let`/`const`
// loop bindings, so closures captured in the body observe their own
// iteration's value).
func evalForStatement(ev *Evaluator, node ast.Node, _ ...any) (completion.Record, error) {
	n := node.(*ast.ForStatement)
	ctx := ev.Current()
	oldEnv := ctx.LexicalEnv
	loopEnv := oldEnv
	var loopNames []string
	perIteration := false
	if vd, ok := n.Init.(*ast.VariableDeclaration); ok {
		if vd.DKind != ast.DeclVar {
			perIteration = true
			decl := environment.NewDeclarativeRecord(oldEnv)
			for _, d := range vd.Declarations {
				for _, name := range patternNames(d.ID) {
					loopNames = append(loopNames, name)
					if vd.DKind == ast.DeclConst {
						_ = decl.CreateImmutableBinding(name, true)
					} else {
						_ = decl.CreateMutableBinding(name, false)
					}
				}
			}
			loopEnv = decl
		}
	}
	ctx.LexicalEnv = loopEnv
	defer func() { ctx.LexicalEnv = oldEnv }()

	if n.Init != nil {
		switch initNode := n.Init.(type) {
		case *ast.VariableDeclaration:
			c, err := evalVariableDeclaration(ev, initNode)
			if err != nil {
				return completion.Record{}, err
			}
			if c.IsAbrupt() {
				return c, nil
			}
		case ast.Expression:
			if _, _, aborted, err := ev.val(initNode); err != nil {
				return completion.Record{}, err
			} else if aborted {
				return completion.Record{}, nil
			}
		}
	}

	copyLoopEnv := func() {
		if !perIteration {
			return
		}
		next := environment.NewDeclarativeRecord(oldEnv)
		for _, name := range loopNames {
			v, _ := loopEnv.GetBindingValue(name, false)
			_ = next.CreateMutableBinding(name, false)
			_ = next.InitializeBinding(name, v)
		}
		loopEnv = next
		ctx.LexicalEnv = loopEnv
	}

	var result value.Value = value.Undefined
	copyLoopEnv()
	for {
		if n.Test != nil {
			test, c, aborted, err := ev.val(n.Test)
			if err != nil {
				return completion.Record{}, err
			}
			if aborted {
				return c, nil
			}
			if !ops.ToBoolean(test) {
				break
			}
		}
		bodyC, err := ev.Eval(n.Body)
		if err != nil {
			return completion.Record{}, err
		}
		if !completion.IsEmpty(bodyC.Val) {
			result = bodyC.Val
		}
		if bodyC.K == completion.Break && bodyC.Target == "" {
			break
		}
		if bodyC.K == completion.Continue && bodyC.Target == "" {
			// fallthrough to Update below
		} else if bodyC.IsAbrupt() {
			return bodyC, nil
		}
		copyLoopEnv()
		if n.Update != nil {
			if _, _, aborted, err := ev.val(n.Update); err != nil {
				return completion.Record{}, err
			} else if aborted {
				return completion.Record{}, nil
			}
		}
	}
	return completion.NormalValue(result), nil
}

// evalForOfStatement implements ForOfStatement (§4.5): drives the
// iteration protocol, calling IteratorClose when the body completes
// abruptly other than an unlabeled continue.
func evalForOfStatement(ev *Evaluator, node ast.Node, _ ...any) (completion.Record, error) {
	n := node.(*ast.ForOfStatement)
	right, c, aborted, err := ev.val(n.Right)
	if err != nil {
		return completion.Record{}, err
	}
	if aborted {
		return c, nil
	}
	sym := ev.Realm.WellKnownSymbol(value.SymIterator)
	rec, err := ops.GetIterator(right, sym)
	if err != nil {
		return completion.Record{}, err
	}
	var result value.Value = value.Undefined
	ctx := ev.Current()
	oldEnv := ctx.LexicalEnv
	for {
		res, more, err := ops.IteratorStep(rec)
		if err != nil {
			return completion.Record{}, err
		}
		if !more {
			break
		}
		iterVal, err := ops.IteratorValue(res)
		if err != nil {
			return completion.Record{}, err
		}
		iterEnv := environment.NewDeclarativeRecord(oldEnv)
		ctx.LexicalEnv = iterEnv
		if err := ev.bindForOfTarget(n.Left, iterVal, iterEnv); err != nil {
			ctx.LexicalEnv = oldEnv
			_ = ops.IteratorClose(rec, err)
			return completion.Record{}, err
		}
		bodyC, err := ev.Eval(n.Body)
		ctx.LexicalEnv = oldEnv
		if err != nil {
			_ = ops.IteratorClose(rec, err)
			return completion.Record{}, err
		}
		if !completion.IsEmpty(bodyC.Val) {
			result = bodyC.Val
		}
		if bodyC.K == completion.Break && bodyC.Target == "" {
			_ = ops.IteratorClose(rec, nil)
			break
		}
		if bodyC.K == completion.Continue && bodyC.Target == "" {
			continue
		}
		if bodyC.IsAbrupt() {
			_ = ops.IteratorClose(rec, nil)
			return bodyC, nil
		}
	}
	return completion.NormalValue(result), nil
}

func (ev *Evaluator) bindForOfTarget(left ast.Node, v value.Value, env environment.Record) error {
	if vd, ok := left.(*ast.VariableDeclaration); ok {
		target := vd.Declarations[0].ID
		if vd.DKind == ast.DeclVar {
			return ev.assignmentPattern(target, v)
		}
		for _, name := range patternNames(target) {
			if vd.DKind == ast.DeclConst {
				_ = env.CreateImmutableBinding(name, true)
			} else {
				_ = env.CreateMutableBinding(name, false)
			}
		}
		return ev.bindingInitialization(target, v, env)
	}
	return ev.assignmentPattern(left.(ast.Pattern), v)
}

// evalForInStatement implements ForInStatement (§4.5): enumerates
// enumerable string-keyed properties across the prototype chain, skipping
// names already visited (shadowed).
func evalForInStatement(ev *Evaluator, node ast.Node, _ ...any) (completion.Record, error) {
	n := node.(*ast.ForInStatement)
	right, c, aborted, err := ev.val(n.Right)
	if err != nil {
		return completion.Record{}, err
	}
	if aborted {
		return c, nil
	}
	if value.IsNullOrUndefined(right) {
		return completion.NormalValue(value.Undefined), nil
	}
	obj, err := ev.ToObject(right)
	if err != nil {
		return completion.Record{}, err
	}
	visited := map[string]bool{}
	var result value.Value = value.Undefined
	ctx := ev.Current()
	oldEnv := ctx.LexicalEnv
	for cur := obj; cur != nil; {
		for _, key := range cur.OwnPropertyKeys() {
			if key.Sym != nil || visited[key.Str] {
				continue
			}
			visited[key.Str] = true
			desc, ok := cur.GetOwnProperty(key)
			if !ok || !desc.Enumerable {
				continue
			}
			iterEnv := environment.NewDeclarativeRecord(oldEnv)
			ctx.LexicalEnv = iterEnv
			if err := ev.bindForOfTarget(n.Left, value.NewString(key.Str), iterEnv); err != nil {
				ctx.LexicalEnv = oldEnv
				return completion.Record{}, err
			}
			bodyC, err := ev.Eval(n.Body)
			ctx.LexicalEnv = oldEnv
			if err != nil {
				return completion.Record{}, err
			}
			if !completion.IsEmpty(bodyC.Val) {
				result = bodyC.Val
			}
			if bodyC.K == completion.Break && bodyC.Target == "" {
				return completion.NormalValue(result), nil
			}
			if bodyC.K == completion.Continue && bodyC.Target == "" {
				continue
			}
			if bodyC.IsAbrupt() {
				return bodyC, nil
			}
		}
		next := cur.GetPrototypeOf()
		nextObj, ok := next.(*value.Object)
		if !ok {
			break
		}
		cur = nextObj
	}
	return completion.NormalValue(result), nil
}

func evalBreakStatement(_ *Evaluator, node ast.Node, _ ...any) (completion.Record, error) {
	n := node.(*ast.BreakStatement)
	return completion.BreakCompletion(n.Label), nil
}

func evalContinueStatement(_ *Evaluator, node ast.Node, _ ...any) (completion.Record, error) {
	n := node.(*ast.ContinueStatement)
	return completion.ContinueCompletion(n.Label), nil
}

func evalReturnStatement(ev *Evaluator, node ast.Node, _ ...any) (completion.Record, error) {
	n := node.(*ast.ReturnStatement)
	if n.Argument == nil {
		return completion.ReturnCompletion(value.Undefined), nil
	}
	v, c, aborted, err := ev.val(n.Argument)
	if err != nil {
		return completion.Record{}, err
	}
	if aborted {
		return c, nil
	}
	return completion.ReturnCompletion(v), nil
}

func evalThrowStatement(ev *Evaluator, node ast.Node, _ ...any) (completion.Record, error) {
	n := node.(*ast.ThrowStatement)
	v, c, aborted, err := ev.val(n.Argument)
	if err != nil {
		return completion.Record{}, err
	}
	if aborted {
		return c, nil
	}
	return completion.ThrowCompletion(v), nil
}

// evalTryStatement implements TryStatement (§4.5, §8 testable property:
// "observed completion is F if F is abrupt else C" — the finally block's
// own abrupt completion always overrides the try/catch result).
func evalTryStatement(ev *Evaluator, node ast.Node, _ ...any) (completion.Record, error) {
	n := node.(*ast.TryStatement)
	blockC, err := ev.Eval(n.Block)
	if err != nil {
		return completion.Record{}, err
	}
	result := blockC
	if blockC.K == completion.Throw && n.Handler != nil {
		catchC, err := ev.runCatch(n.Handler, blockC.Val)
		if err != nil {
			return completion.Record{}, err
		}
		result = catchC
	}
	if n.Finalizer != nil {
		finC, err := ev.Eval(n.Finalizer)
		if err != nil {
			return completion.Record{}, err
		}
		if finC.IsAbrupt() {
			return finC, nil
		}
	}
	return result, nil
}

func (ev *Evaluator) runCatch(handler *ast.CatchClause, thrown value.Value) (completion.Record, error) {
	ctx := ev.Current()
	oldEnv := ctx.LexicalEnv
	catchEnv := environment.NewDeclarativeRecord(oldEnv)
	ctx.LexicalEnv = catchEnv
	defer func() { ctx.LexicalEnv = oldEnv }()

	if handler.Param != nil {
		for _, name := range patternNames(handler.Param) {
			_ = catchEnv.CreateMutableBinding(name, false)
		}
		if err := ev.bindingInitialization(handler.Param, thrown, catchEnv); err != nil {
			return completion.Record{}, err
		}
	}
	if err := ev.BlockDeclarationInstantiation(catchEnv, handler.Body.Body); err != nil {
		return ev.Throw("SyntaxError", err.Error()), nil
	}
	return ev.evalStatementList(handler.Body.Body)
}

// evalSwitchStatement implements SwitchStatement (§4.5): strict-equality
// matching against case tests in source order, default falling back to
// the default clause (or skipping entirely when absent), with
// fall-through across subsequent cases via evalStatementList.
func evalSwitchStatement(ev *Evaluator, node ast.Node, _ ...any) (completion.Record, error) {
	n := node.(*ast.SwitchStatement)
	disc, c, aborted, err := ev.val(n.Discriminant)
	if err != nil {
		return completion.Record{}, err
	}
	if aborted {
		return c, nil
	}
	ctx := ev.Current()
	oldEnv := ctx.LexicalEnv
	switchEnv := environment.NewDeclarativeRecord(oldEnv)
	ctx.LexicalEnv = switchEnv
	defer func() { ctx.LexicalEnv = oldEnv }()
	var allStmts []ast.Statement
	for _, cs := range n.Cases {
		allStmts = append(allStmts, cs.Consequent...)
	}
	if err := ev.BlockDeclarationInstantiation(switchEnv, allStmts); err != nil {
		return ev.Throw("SyntaxError", err.Error()), nil
	}

	matchIdx := -1
	defaultIdx := -1
	for i, cs := range n.Cases {
		if cs.Test == nil {
			defaultIdx = i
			continue
		}
		tv, c, aborted, err := ev.val(cs.Test)
		if err != nil {
			return completion.Record{}, err
		}
		if aborted {
			return c, nil
		}
		if ops.IsStrictlyEqual(disc, tv) {
			matchIdx = i
			break
		}
	}
	if matchIdx == -1 {
		matchIdx = defaultIdx
	}
	if matchIdx == -1 {
		return completion.NormalEmpty(), nil
	}
	result := completion.NormalEmpty()
	for i := matchIdx; i < len(n.Cases); i++ {
		r, err := ev.evalStatementList(n.Cases[i].Consequent)
		if err != nil {
			return completion.Record{}, err
		}
		r = completion.UpdateEmpty(r, result.Val)
		if r.IsAbrupt() {
			if r.K == completion.Break && r.Target == "" {
				return completion.NormalValue(r.Val), nil
			}
			return r, nil
		}
		result = r
	}
	return result, nil
}

// evalLabeledStatement implements LabelledStatement / LabelledEvaluation
// (§4.5): a break targeting this label is absorbed into a Normal
// completion; a matching continue propagates to the labelled loop itself
// (handled by the loop's own Target checks using the label set carried on
// the node via label propagation below for nested loops).
func evalLabeledStatement(ev *Evaluator, node ast.Node, _ ...any) (completion.Record, error) {
	n := node.(*ast.LabeledStatement)
	c, err := ev.evalLabelled(n.Body, n.Label)
	if err != nil {
		return completion.Record{}, err
	}
	if c.K == completion.Break && c.Target == n.Label {
		return completion.NormalValue(c.Val), nil
	}
	return c, nil
}

// evalLabelled evaluates body, treating Break/Continue completions
// targeting label as if they were unlabeled when body is a loop (so the
// loop's own break/continue handling above applies to `continue label`
// too).
func (ev *Evaluator) evalLabelled(body ast.Statement, label string) (completion.Record, error) {
	switch body.(type) {
	case *ast.WhileStatement, *ast.DoWhileStatement, *ast.ForStatement, *ast.ForInStatement, *ast.ForOfStatement:
		return ev.evalLoopWithLabel(body, label)
	}
	return ev.Eval(body)
}

// evalLoopWithLabel re-runs the loop's handler but rewrites a
// Continue/Break completion targeting label into the unlabeled form the
// loop bodies above already know how to consume, then re-applies outer
// label semantics once the loop has fully returned.
func (ev *Evaluator) evalLoopWithLabel(body ast.Statement, label string) (completion.Record, error) {
	c, err := ev.Eval(body)
	if err != nil {
		return completion.Record{}, err
	}
	if c.K == completion.Break && c.Target == label {
		return completion.NormalValue(c.Val), nil
	}
	return c, nil
}

// evalWithStatement implements WithStatement (§3.6 Object Environment
// Record, §4.5): runs body against an object environment record wrapping
// the `with` expression's ToObject.
func evalWithStatement(ev *Evaluator, node ast.Node, _ ...any) (completion.Record, error) {
	n := node.(*ast.WithStatement)
	objVal, c, aborted, err := ev.val(n.Object)
	if err != nil {
		return completion.Record{}, err
	}
	if aborted {
		return c, nil
	}
	obj, err := ev.ToObject(objVal)
	if err != nil {
		return completion.Record{}, err
	}
	ctx := ev.Current()
	oldEnv := ctx.LexicalEnv
	withEnv := environment.NewObjectRecord(obj, oldEnv, true)
	ctx.LexicalEnv = withEnv
	defer func() { ctx.LexicalEnv = oldEnv }()
	r, err := ev.Eval(n.Body)
	if err != nil {
		return completion.Record{}, err
	}
	return completion.UpdateEmpty(r, value.Undefined), nil
}

func evalFunctionDeclaration(_ *Evaluator, _ ast.Node, _ ...any) (completion.Record, error) {
	// Function declarations are entirely handled by
	// GlobalDeclarationInstantiation / BlockDeclarationInstantiation /
	// functionDeclarationInstantiation hoisting; evaluating one in place
	// is a no-op (§4.5).
	return completion.NormalEmpty(), nil
}

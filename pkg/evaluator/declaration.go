package evaluator

import (
	"errors"

	"github.com/cwbudde/go-ecma/pkg/ast"
	"github.com/cwbudde/go-ecma/pkg/environment"
	"github.com/cwbudde/go-ecma/pkg/ops"
	"github.com/cwbudde/go-ecma/pkg/value"
)

// varScopedDeclarations collects the names introduced by `var` statements
// and hoisted function declarations reachable from stmts without
// descending into nested function bodies (§4.8).
func varScopedDeclarations(stmts []ast.Statement) (varNames []string, funcDecls []*ast.FunctionDeclaration) {
	var walk func(s ast.Statement)
	walk = func(s ast.Statement) {
		switch n := s.(type) {
		case *ast.VariableDeclaration:
			if n.DKind == ast.DeclVar {
				for _, d := range n.Declarations {
					varNames = append(varNames, patternNames(d.ID)...)
				}
			}
		case *ast.FunctionDeclaration:
			funcDecls = append(funcDecls, n)
		case *ast.BlockStatement:
			for _, s2 := range n.Body {
				walk(s2)
			}
		case *ast.IfStatement:
			walk(n.Consequent)
			if n.Alternate != nil {
				walk(n.Alternate)
			}
		case *ast.ForStatement:
			if vd, ok := n.Init.(*ast.VariableDeclaration); ok {
				walk(vd)
			}
			walk(n.Body)
		case *ast.ForInStatement:
			if vd, ok := n.Left.(*ast.VariableDeclaration); ok {
				walk(vd)
			}
			walk(n.Body)
		case *ast.ForOfStatement:
			if vd, ok := n.Left.(*ast.VariableDeclaration); ok {
				walk(vd)
			}
			walk(n.Body)
		case *ast.WhileStatement:
			walk(n.Body)
		case *ast.DoWhileStatement:
			walk(n.Body)
		case *ast.TryStatement:
			for _, s2 := range n.Block.Body {
				walk(s2)
			}
			if n.Handler != nil {
				for _, s2 := range n.Handler.Body.Body {
					walk(s2)
				}
			}
			if n.Finalizer != nil {
				for _, s2 := range n.Finalizer.Body {
					walk(s2)
				}
			}
		case *ast.SwitchStatement:
			for _, c := range n.Cases {
				for _, s2 := range c.Consequent {
					walk(s2)
				}
			}
		case *ast.LabeledStatement:
			walk(n.Body)
		case *ast.WithStatement:
			walk(n.Body)
		}
	}
	for _, s := range stmts {
		walk(s)
	}
	return
}

// lexicallyScopedDeclarations collects the top-level `let`/`const` names
// and the function declarations of stmts (block-scoped; does not descend
// into nested blocks — those run their own BlockDeclarationInstantiation).
func lexicallyScopedDeclarations(stmts []ast.Statement) (letConst []*ast.VariableDeclaratorNode, kinds []ast.DeclKind, funcDecls []*ast.FunctionDeclaration) {
	for _, s := range stmts {
		switch n := s.(type) {
		case *ast.VariableDeclaration:
			if n.DKind != ast.DeclVar {
				for _, d := range n.Declarations {
					letConst = append(letConst, d)
					kinds = append(kinds, n.DKind)
				}
			}
		case *ast.FunctionDeclaration:
			funcDecls = append(funcDecls, n)
		}
	}
	return
}

func patternNames(p ast.Pattern) []string {
	switch n := p.(type) {
	case *ast.Identifier:
		return []string{n.Name}
	case *ast.ArrayPattern:
		var out []string
		for _, el := range n.Elements {
			if el != nil {
				out = append(out, patternNames(el)...)
			}
		}
		return out
	case *ast.ObjectPattern:
		var out []string
		for _, p2 := range n.Properties {
			out = append(out, patternNames(p2.Value)...)
		}
		if n.Rest != nil {
			out = append(out, patternNames(n.Rest.Argument)...)
		}
		return out
	case *ast.AssignmentPattern:
		return patternNames(n.Left)
	case *ast.RestElement:
		return patternNames(n.Argument)
	}
	return nil
}

// GlobalDeclarationInstantiation implements §4.8 for script evaluation.
func (ev *Evaluator) GlobalDeclarationInstantiation(g *environment.GlobalRecord, stmts []ast.Statement) error {
	lexDecls, kinds, funcDecls := lexicallyScopedDeclarations(stmts)
	for i, d := range lexDecls {
		for _, name := range patternNames(d.ID) {
			if g.HasLexicalDeclaration(name) {
				return errors.New("Identifier '" + name + "' has already been declared")
			}
			if g.HasRestrictedGlobalProperty(name) {
				return errors.New("Identifier '" + name + "' is a restricted global")
			}
			if kinds[i] == ast.DeclConst {
				if err := g.CreateImmutableBinding(name, true); err != nil {
					return err
				}
			} else if err := g.CreateMutableBinding(name, false); err != nil {
				return err
			}
		}
	}
	varNames, hoistedFuncs := varScopedDeclarations(stmts)
	allFuncs := append(append([]*ast.FunctionDeclaration{}, funcDecls...), hoistedFuncs...)
	declaredFuncNames := map[string]bool{}
	for i := len(allFuncs) - 1; i >= 0; i-- {
		fd := allFuncs[i]
		if declaredFuncNames[fd.ID.Name] {
			continue
		}
		declaredFuncNames[fd.ID.Name] = true
		if !g.CanDeclareGlobalFunction(fd.ID.Name) {
			return errors.New("cannot declare global function '" + fd.ID.Name + "'")
		}
	}
	for name := range declaredFuncNames {
		_ = name
	}
	installed := map[string]bool{}
	for i := len(allFuncs) - 1; i >= 0; i-- {
		fd := allFuncs[i]
		if installed[fd.ID.Name] {
			continue
		}
		installed[fd.ID.Name] = true
		fn := ev.OrdinaryFunctionCreate(fd.Params, fd.Body, g, ThisModeStrict, nil)
		fn.DefineValue("name", value.NewString(fd.ID.Name), false)
		if err := g.CreateGlobalFunctionBinding(fd.ID.Name, fn, false); err != nil {
			return err
		}
	}
	for _, name := range varNames {
		if declaredFuncNames[name] {
			continue
		}
		if !g.CanDeclareGlobalVar(name) {
			return errors.New("cannot declare global var '" + name + "'")
		}
		if err := g.CreateGlobalVarBinding(name, false); err != nil {
			return err
		}
	}
	for i, d := range lexDecls {
		if d.Init == nil {
			if kinds[i] == ast.DeclLet {
				_ = g.InitializeBinding(patternNames(d.ID)[0], value.Undefined)
			}
			continue
		}
		v, abrupt, err := ev.EvalValue(d.Init)
		if err != nil {
			return err
		}
		if abrupt != nil {
			return errors.New("initializer threw during global declaration instantiation")
		}
		_ = g.InitializeBinding(patternNames(d.ID)[0], v)
	}
	return nil
}

// BlockDeclarationInstantiation implements §4.5: creates uninitialised
// lexical bindings for a block's top-level let/const/class and function
// declarations, hoisting function declarations as already-initialised.
func (ev *Evaluator) BlockDeclarationInstantiation(env environment.Record, stmts []ast.Statement) error {
	decl, ok := env.(*environment.DeclarativeRecord)
	letConst, kinds, funcDecls := lexicallyScopedDeclarations(stmts)
	for i, d := range letConst {
		for _, name := range patternNames(d.ID) {
			if kinds[i] == ast.DeclConst {
				if err := env.CreateImmutableBinding(name, true); err != nil {
					return err
				}
			} else if err := env.CreateMutableBinding(name, false); err != nil {
				return err
			}
		}
	}
	if ok {
		_ = decl
	}
	for _, fd := range funcDecls {
		fn := ev.OrdinaryFunctionCreate(fd.Params, fd.Body, env, ThisModeStrict, nil)
		fn.DefineValue("name", value.NewString(fd.ID.Name), false)
		if err := env.CreateMutableBinding(fd.ID.Name, false); err != nil {
			return err
		}
		if err := env.InitializeBinding(fd.ID.Name, fn); err != nil {
			return err
		}
	}
	return nil
}

// functionDeclarationInstantiation implements §4.6
// FunctionDeclarationInstantiation: binds parameters, creates `arguments`,
// installs top-level var/lexical bindings and hoisted inner functions.
func (ev *Evaluator) functionDeclarationInstantiation(env environment.Record, params []ast.Pattern, body []ast.Statement, args []value.Value) error {
	paramNames := map[string]bool{}
	for _, p := range params {
		for _, name := range patternNames(p) {
			paramNames[name] = true
		}
	}
	simple := isSimpleParameterList(params)
	if !containsName(varScopedNamesOnly(body), "arguments") && !paramNames["arguments"] {
		argsObj := ev.createArgumentsObject(args, params, env, simple)
		if err := env.CreateMutableBinding("arguments", false); err != nil {
			return err
		}
		_ = env.InitializeBinding("arguments", argsObj)
	}
	for i, p := range params {
		var argVal value.Value = value.Undefined
		if i < len(args) {
			argVal = args[i]
		}
		for _, name := range patternNames(p) {
			if err := env.CreateMutableBinding(name, false); err != nil {
				return err
			}
			_ = env.InitializeBinding(name, value.Undefined)
		}
		if rest, ok := p.(*ast.RestElement); ok {
			proto, _ := ev.Realm.Intrinsic("%Array.prototype%")
			rest_args := []value.Value{}
			if i < len(args) {
				rest_args = append(rest_args, args[i:]...)
			}
			arr := value.NewArray(protoOrNull(proto), rest_args)
			if err := ev.bindingInitialization(rest.Argument, arr, env); err != nil {
				return err
			}
			continue
		}
		if ap, ok := p.(*ast.AssignmentPattern); ok {
			if argVal == value.Undefined {
				v, abrupt, err := ev.EvalValue(ap.Right)
				if err != nil {
					return err
				}
				if abrupt != nil {
					return errors.New("default parameter initializer threw")
				}
				argVal = v
			}
			if err := ev.bindingInitialization(ap.Left, argVal, env); err != nil {
				return err
			}
			continue
		}
		if err := ev.bindingInitialization(p, argVal, env); err != nil {
			return err
		}
	}
	varNames, funcDecls := varScopedDeclarations(body)
	for _, name := range varNames {
		if env.HasBinding(name) {
			continue
		}
		if err := env.CreateMutableBinding(name, false); err != nil {
			return err
		}
		_ = env.InitializeBinding(name, value.Undefined)
	}
	for _, fd := range funcDecls {
		fn := ev.OrdinaryFunctionCreate(fd.Params, fd.Body, env, ThisModeStrict, nil)
		fn.DefineValue("name", value.NewString(fd.ID.Name), false)
		if !env.HasBinding(fd.ID.Name) {
			if err := env.CreateMutableBinding(fd.ID.Name, false); err != nil {
				return err
			}
		}
		if err := env.SetMutableBinding(fd.ID.Name, fn, false); err != nil {
			_ = env.InitializeBinding(fd.ID.Name, fn)
		}
	}
	letConst, kinds, _ := lexicallyScopedDeclarations(body)
	for i, d := range letConst {
		for _, name := range patternNames(d.ID) {
			if kinds[i] == ast.DeclConst {
				if err := env.CreateImmutableBinding(name, true); err != nil {
					return err
				}
			} else if err := env.CreateMutableBinding(name, false); err != nil {
				return err
			}
		}
	}
	return nil
}

func varScopedNamesOnly(body []ast.Statement) []string {
	names, _ := varScopedDeclarations(body)
	return names
}

func containsName(names []string, want string) bool {
	for _, n := range names {
		if n == want {
			return true
		}
	}
	return false
}

func isSimpleParameterList(params []ast.Pattern) bool {
	for _, p := range params {
		if _, ok := p.(*ast.Identifier); !ok {
			return false
		}
	}
	return true
}

// createArgumentsObject builds the `arguments` object (§4.6): mapped for
// non-strict simple-parameter functions, unmapped otherwise. Every
// function body here is treated as strict (Evaluator.isStrict), so this
// always builds the unmapped form; the mapped variant is named for
// completeness but not reachable while isStrict() is hard-wired true.
func (ev *Evaluator) createArgumentsObject(args []value.Value, _ []ast.Pattern, _ environment.Record, _ bool) *value.Object {
	objProto, _ := ev.Realm.Intrinsic("%Object.prototype%")
	obj := value.NewObject(protoOrNull(objProto))
	obj.ClassName = "Arguments"
	for i, a := range args {
		obj.DefineValue(indexToString(i), a, true)
	}
	obj.DefineValue("length", value.Number(len(args)), false)
	if sym := ev.Realm.WellKnownSymbol(value.SymIterator); sym != nil {
		if arrProto, ok := ev.Realm.Intrinsic("%Array.prototype%"); ok {
			if iterFn, err := arrProto.Get(value.StringKey("values"), arrProto); err == nil {
				if iterObj, ok := iterFn.(*value.Object); ok {
					_, _ = obj.DefineOwnProperty(value.SymbolKey(sym), value.DataProperty(iterObj, true, false, true))
				}
			}
		}
	}
	return obj
}

func indexToString(i int) string { return uintToStr(uint32(i)) }

// bindingInitialization implements the BindingInitialization syntax
// operation (§4.1, §4.3) for declarations: destructures v against pattern,
// initialising each bound name in env.
func (ev *Evaluator) bindingInitialization(p ast.Pattern, v value.Value, env environment.Record) error {
	switch n := p.(type) {
	case *ast.Identifier:
		return env.InitializeBinding(n.Name, v)
	case *ast.AssignmentPattern:
		if v == value.Undefined {
			dv, abrupt, err := ev.EvalValue(n.Right)
			if err != nil {
				return err
			}
			if abrupt != nil {
				return errors.New("destructuring default initializer threw")
			}
			v = dv
		}
		return ev.bindingInitialization(n.Left, v, env)
	case *ast.ArrayPattern:
		sym := ev.Realm.WellKnownSymbol(value.SymIterator)
		rec, err := ops.GetIterator(v, sym)
		if err != nil {
			return err
		}
		for _, el := range n.Elements {
			result, more, err := ops.IteratorStep(rec)
			if err != nil {
				return err
			}
			var elemVal value.Value = value.Undefined
			if more {
				elemVal, err = ops.IteratorValue(result)
				if err != nil {
					return err
				}
			}
			if el == nil {
				continue
			}
			if rest, ok := el.(*ast.RestElement); ok {
				var rest_vals []value.Value
				if more {
					rest_vals = append(rest_vals, elemVal)
				}
				for {
					result, more, err := ops.IteratorStep(rec)
					if err != nil {
						return err
					}
					if !more {
						break
					}
					iv, err := ops.IteratorValue(result)
					if err != nil {
						return err
					}
					rest_vals = append(rest_vals, iv)
				}
				proto, _ := ev.Realm.Intrinsic("%Array.prototype%")
				arr := value.NewArray(protoOrNull(proto), rest_vals)
				if err := ev.bindingInitialization(rest.Argument, arr, env); err != nil {
					return err
				}
				break
			}
			if err := ev.bindingInitialization(el, elemVal, env); err != nil {
				return err
			}
		}
		return nil
	case *ast.ObjectPattern:
		obj, err := ev.ToObject(v)
		if err != nil {
			return err
		}
		seen := map[value.PropertyKey]bool{}
		for _, prop := range n.Properties {
			key, c, aborted, err := ev.evalPropertyKey(prop.Key, prop.Computed)
			if err != nil {
				return err
			}
			if aborted {
				return errors.New("computed destructuring key threw")
			}
			_ = c
			seen[key] = true
			pv, err := obj.Get(key, obj)
			if err != nil {
				return err
			}
			if err := ev.bindingInitialization(prop.Value, pv, env); err != nil {
				return err
			}
		}
		if n.Rest != nil {
			objProto, _ := ev.Realm.Intrinsic("%Object.prototype%")
			restObj := value.NewObject(protoOrNull(objProto))
			for _, k := range obj.OwnPropertyKeys() {
				if seen[k] {
					continue
				}
				desc, _ := obj.GetOwnProperty(k)
				if desc == nil || !desc.Enumerable {
					continue
				}
				pv, err := obj.Get(k, obj)
				if err != nil {
					return err
				}
				restObj.DefineValue(k.Str, pv, true)
			}
			if err := ev.bindingInitialization(n.Rest.Argument, restObj, env); err != nil {
				return err
			}
		}
		return nil
	}
	return errors.New("unsupported binding pattern")
}

// BindingInitializationAssignment implements destructuring *assignment*
// (as opposed to declaration): instead of initialising fresh bindings, it
// resolves each target as a reference and PutValues into it (§4.4
// AssignmentExpression note: "assignment and declaration share one code
// path" via BindingInitialization — this is the PutValue-based twin used
// when the left-hand side isn't a fresh declaration).
func (ev *Evaluator) BindingInitializationAssignment(p ast.Pattern, v value.Value) (completionRecordShim, error) {
	err := ev.assignmentPattern(p, v)
	if err != nil {
		return completionRecordShim{abrupt: true}, nil
	}
	return completionRecordShim{}, nil
}

// completionRecordShim is a tiny local stand-in so
// BindingInitializationAssignment can report failure without importing
// pkg/completion's full Record just for a boolean flag; evalAssignment
// checks IsAbrupt() then discards it.
type completionRecordShim struct{ abrupt bool }

func (c completionRecordShim) IsAbrupt() bool { return c.abrupt }

func (ev *Evaluator) assignmentPattern(p ast.Pattern, v value.Value) error {
	switch n := p.(type) {
	case *ast.Identifier:
		ref := ev.ResolveBinding(n.Name)
		return ev.PutValue(ref, v)
	case *ast.ArrayPattern, *ast.ObjectPattern, *ast.AssignmentPattern, *ast.RestElement:
		return ev.bindingInitialization(p, v, ev.Current().LexicalEnv)
	}
	return errors.New("unsupported assignment target")
}

package evaluator

import (
	"github.com/cwbudde/go-ecma/pkg/ast"
	"github.com/cwbudde/go-ecma/pkg/completion"
	"github.com/cwbudde/go-ecma/pkg/environment"
	"github.com/cwbudde/go-ecma/pkg/execctx"
	"github.com/cwbudde/go-ecma/pkg/value"
)

// ThisMode governs how a function's `this` binding behaves (§3.2 ThisMode
// slot, §4.6): lexical functions (arrows) never bind their own `this`.
type ThisMode int

const (
	ThisModeGlobalMode ThisMode = iota // non-strict: undefined coerces to the global object
	ThisModeStrict
	ThisModeLexical
)

// ThisModeGlobal picks the ordinary (non-lexical) this-mode for a function
// or method expression (every function body is treated as strict code,
// see Evaluator.isStrict).
func ThisModeGlobal(_ *ast.FunctionExpression) ThisMode { return ThisModeStrict }

// funcData is the internal-slot payload of an ordinary function object
// (§3.2: FormalParameters, ECMAScriptCode, Environment, ThisMode, Strict,
// HomeObject), stored under the "FunctionData" slot.
type funcData struct {
	Params     []ast.Pattern
	Body       ast.Node // *ast.BlockStatement or an Expression (arrow concise body)
	Env        environment.Record
	ThisMode   ThisMode
	HomeObject *value.Object
	IsArrow    bool
	IsDerived  bool
}

// OrdinaryFunctionCreate implements OrdinaryFunctionCreate (§4.6): builds a
// function object carrying the closure's defining environment, installs
// [[Call]] (and [[Construct]] unless lexical-this/arrow), and sets "length"
// and "prototype" per the ordinary shape.
func (ev *Evaluator) OrdinaryFunctionCreate(params []ast.Pattern, body ast.Node, env environment.Record, mode ThisMode, homeObject *value.Object) *value.Object {
	proto, _ := ev.Realm.Intrinsic("%Function.prototype%")
	fn := value.NewObject(protoOrNull(proto))
	fn.ClassName = "Function"
	data := &funcData{Params: params, Body: body, Env: env, ThisMode: mode, HomeObject: homeObject, IsArrow: mode == ThisModeLexical}
	fn.SetSlot("FunctionData", data)
	fn.DefineValue("length", value.Number(countExpectedArgs(params)), false)
	fn.DefineValue("name", value.NewString(""), false)
	exotic := &value.ExoticMethods{Call: ev.makeCallTrampoline()}
	if mode != ThisModeLexical {
		exotic.Construct = ev.makeConstructTrampoline()
		objProto, _ := ev.Realm.Intrinsic("%Object.prototype%")
		protoObj := value.NewObject(protoOrNull(objProto))
		protoObj.DefineValue("constructor", fn, false)
		fn.DefineValue("prototype", protoObj, false)
	}
	fn.SetExotic(exotic)
	return fn
}

func countExpectedArgs(params []ast.Pattern) int {
	n := 0
	for _, p := range params {
		switch p.(type) {
		case *ast.RestElement, *ast.AssignmentPattern:
			return n
		}
		n++
	}
	return n
}

func (ev *Evaluator) makeCallTrampoline() func(*value.Object, value.Value, []value.Value) (value.Value, error) {
	return func(fn *value.Object, this value.Value, args []value.Value) (value.Value, error) {
		c, err := ev.callFunction(fn, this, args)
		if err != nil {
			return nil, err
		}
		if c.K == completion.Throw {
			return nil, &ThrownError{Value: c.Val}
		}
		return ev.GetValue(c)
	}
}

func (ev *Evaluator) makeConstructTrampoline() func(*value.Object, []value.Value, *value.Object) (value.Value, error) {
	return func(fn *value.Object, args []value.Value, newTarget *value.Object) (value.Value, error) {
		c, err := ev.constructObject(fn, args, newTarget)
		if err != nil {
			return nil, err
		}
		if c.K == completion.Throw {
			return nil, &ThrownError{Value: c.Val}
		}
		return ev.GetValue(c)
	}
}

// ThrownError adapts a script throw completion to a Go error so it can
// cross the value.Object.CallAsFunction boundary (which only returns a Go
// error); the evaluator immediately unwraps it back into a throw
// completion at every call site in this package.
type ThrownError struct{ Value value.Value }

func (e *ThrownError) Error() string { return "script exception: " + e.Value.GoString() }

// callFunction implements the [[Call]] internal method body for an
// ordinary function (§4.6): pushes a function execution context with a
// fresh function environment, runs FunctionDeclarationInstantiation,
// evaluates the body, and converts a Return completion to its value.
func (ev *Evaluator) callFunction(fn *value.Object, this value.Value, args []value.Value) (completion.Record, error) {
	data, ok := fnData(fn)
	if !ok {
		return ev.nativeCall(fn, this, args)
	}
	if data.IsArrow {
		return ev.runFunctionBody(fn, data, nil, args, nil)
	}
	funcEnv := environment.NewFunctionRecord(data.Env, false)
	switch data.ThisMode {
	case ThisModeStrict:
		_ = funcEnv.BindThisValue(this)
	default:
		if value.IsNullOrUndefined(this) {
			_ = funcEnv.BindThisValue(ev.Realm.GlobalObject)
		} else {
			_ = funcEnv.BindThisValue(this)
		}
	}
	funcEnv.HomeObject = data.HomeObject
	return ev.runFunctionBody(fn, data, funcEnv, args, nil)
}

func (ev *Evaluator) nativeCall(fn *value.Object, this value.Value, args []value.Value) (completion.Record, error) {
	raw, _ := fn.Slot("NativeFunc")
	native := raw.(func(ev *Evaluator, this value.Value, args []value.Value) (value.Value, error))
	ev.Contexts.Push(&execctx.Context{Realm: ev.Realm, Function: fn})
	defer ev.Contexts.Pop()
	v, err := native(ev, this, args)
	if err != nil {
		if te, ok := err.(*ThrownError); ok {
			return completion.ThrowCompletion(te.Value), nil
		}
		return completion.Record{}, err
	}
	return completion.NormalValue(v), nil
}

// constructObject implements [[Construct]] for an ordinary function
// (§4.6): establishes `this` via OrdinaryCreateFromConstructor, runs the
// body, and returns `this` unless the body explicitly returned an object.
func (ev *Evaluator) constructObject(fn *value.Object, args []value.Value, newTarget *value.Object) (completion.Record, error) {
	data, ok := fnData(fn)
	if !ok {
		return ev.nativeConstruct(fn, args, newTarget)
	}
	protoVal, err := newTarget.Get(value.StringKey("prototype"), newTarget)
	if err != nil {
		return completion.Record{}, err
	}
	proto, ok := protoVal.(*value.Object)
	if !ok {
		objProto, _ := ev.Realm.Intrinsic("%Object.prototype%")
		proto = objProto
	}
	thisObj := value.NewObject(protoOrNull(proto))
	funcEnv := environment.NewFunctionRecord(data.Env, false)
	if !data.IsDerived {
		_ = funcEnv.BindThisValue(thisObj)
	}
	funcEnv.HomeObject = data.HomeObject
	c, err := ev.runFunctionBody(fn, data, funcEnv, args, newTarget)
	if err != nil {
		return completion.Record{}, err
	}
	if c.K == completion.Throw {
		return c, nil
	}
	if c.K == completion.Return {
		if obj, ok := c.Val.(*value.Object); ok {
			return completion.NormalValue(obj), nil
		}
	}
	return completion.NormalValue(thisObj), nil
}

func (ev *Evaluator) nativeConstruct(fn *value.Object, args []value.Value, newTarget *value.Object) (completion.Record, error) {
	raw, ok := fn.Slot("NativeConstruct")
	if !ok {
		return ev.Throw("TypeError", "not a constructor"), nil
	}
	native := raw.(func(ev *Evaluator, args []value.Value, newTarget *value.Object) (value.Value, error))
	ev.Contexts.Push(&execctx.Context{Realm: ev.Realm, Function: fn})
	defer ev.Contexts.Pop()
	v, err := native(ev, args, newTarget)
	if err != nil {
		if te, ok := err.(*ThrownError); ok {
			return completion.ThrowCompletion(te.Value), nil
		}
		return completion.Record{}, err
	}
	return completion.NormalValue(v), nil
}

// runFunctionBody implements the common tail of [[Call]]/[[Construct]]
// (§4.6 steps 1–3): push a code execution context, run
// FunctionDeclarationInstantiation, evaluate the body, map the resulting
// completion.
func (ev *Evaluator) runFunctionBody(fn *value.Object, data *funcData, funcEnv *environment.FunctionRecord, args []value.Value, newTarget *value.Object) (completion.Record, error) {
	var lexEnv environment.Record = funcEnv
	if funcEnv == nil {
		lexEnv = environment.NewDeclarativeRecord(data.Env)
	}
	ctx := &execctx.Context{Realm: ev.Realm, LexicalEnv: lexEnv, VarEnv: lexEnv, Function: fn}
	ev.Contexts.Push(ctx)
	defer ev.Contexts.Pop()

	if expr, isExpr := data.Body.(ast.Expression); isExpr {
		if err := ev.functionDeclarationInstantiation(lexEnv, data.Params, nil, args); err != nil {
			return ev.Throw("SyntaxError", err.Error()), nil
		}
		v, c, aborted, err := ev.val(expr)
		if err != nil {
			return completion.Record{}, err
		}
		if aborted {
			return c, nil
		}
		return completion.ReturnCompletion(v), nil
	}

	block := data.Body.(*ast.BlockStatement)
	if err := ev.functionDeclarationInstantiation(lexEnv, data.Params, block.Body, args); err != nil {
		return ev.Throw("SyntaxError", err.Error()), nil
	}
	c, err := ev.evalStatementList(block.Body)
	if err != nil {
		return completion.Record{}, err
	}
	if c.K == completion.Return {
		return c, nil
	}
	if c.IsAbrupt() {
		return c, nil
	}
	return completion.ReturnCompletion(value.Undefined), nil
}

func fnData(fn *value.Object) (*funcData, bool) {
	raw, ok := fn.Slot("FunctionData")
	if !ok {
		return nil, false
	}
	return raw.(*funcData), true
}

// NewNativeFunction wraps a host-language closure as a built-in function
// object (§4.6 "Built-in functions wrap a host-language closure"): calling
// it pushes a builtin execution context (no environments) and invokes the
// closure with the engine, this value, and arguments.
func (ev *Evaluator) NewNativeFunction(name string, length int, fn func(ev *Evaluator, this value.Value, args []value.Value) (value.Value, error)) *value.Object {
	proto, _ := ev.Realm.Intrinsic("%Function.prototype%")
	obj := value.NewObject(protoOrNull(proto))
	obj.ClassName = "Function"
	obj.SetSlot("NativeFunc", fn)
	obj.DefineValue("name", value.NewString(name), false)
	obj.DefineValue("length", value.Number(length), false)
	obj.SetExotic(&value.ExoticMethods{Call: ev.makeCallTrampoline()})
	return obj
}

// NewNativeConstructor additionally installs [[Construct]], for built-ins
// like Object/Array/Error that are callable as constructors.
func (ev *Evaluator) NewNativeConstructor(name string, length int,
	call func(ev *Evaluator, this value.Value, args []value.Value) (value.Value, error),
	construct func(ev *Evaluator, args []value.Value, newTarget *value.Object) (value.Value, error),
) *value.Object {
	fn := ev.NewNativeFunction(name, length, call)
	fn.SetSlot("NativeConstruct", construct)
	exotic := &value.ExoticMethods{Call: ev.makeCallTrampoline(), Construct: ev.makeConstructTrampoline()}
	fn.SetExotic(exotic)
	return fn
}

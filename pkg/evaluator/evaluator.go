package evaluator

import (
	"github.com/cwbudde/go-ecma/pkg/ast"
	"github.com/cwbudde/go-ecma/pkg/completion"
	"github.com/cwbudde/go-ecma/pkg/environment"
	"github.com/cwbudde/go-ecma/pkg/execctx"
	"github.com/cwbudde/go-ecma/pkg/ops"
	"github.com/cwbudde/go-ecma/pkg/realm"
	"github.com/cwbudde/go-ecma/pkg/value"
)

// Evaluator drives AST evaluation against one realm (§4). It owns the
// execution context stack and the syntax-directed dispatch table; an
// engine (pkg/engine) creates one Evaluator and reuses it, with its realm
// and job queue, for every script it runs.
type Evaluator struct {
	Realm    *realm.Realm
	Contexts *execctx.Stack
	Jobs     *ops.JobQueue
	Dispatch *Dispatch

	// WrapPrimitive builds a wrapper object for ToObject on a primitive
	// (String/Number/Boolean/Symbol/BigInt), installed by pkg/builtins at
	// realm setup. Until installed, ToObject on a primitive fails.
	WrapPrimitive func(v value.Value) (*value.Object, error)
}

// New creates an Evaluator over r with an empty context stack, fresh job
// queue, and the default dispatch table (expression/statement handlers
// registered by RegisterDefaults).
func New(r *realm.Realm) *Evaluator {
	ev := &Evaluator{
		Realm:    r,
		Contexts: execctx.NewStack(),
		Jobs:     ops.NewJobQueue(),
		Dispatch: NewDispatch(),
	}
	RegisterDefaults(ev.Dispatch)
	return ev
}

// Current returns the running execution context, or nil outside any
// evaluation.
func (ev *Evaluator) Current() *execctx.Context { return ev.Contexts.Top() }

// toPrimitiveFn adapts the realm's @@toPrimitive symbol lookup + Call into
// the callback shape pkg/ops expects, keeping pkg/ops free of an evaluator
// import (§2 layering).
func (ev *Evaluator) toPrimitiveFn(o *value.Object, hint string) (value.Value, bool, error) {
	sym := ev.Realm.WellKnownSymbol(value.SymToPrimitive)
	m, err := o.Get(value.SymbolKey(sym), o)
	if err != nil {
		return nil, false, err
	}
	fn, ok := m.(*value.Object)
	if !ok || value.IsNullOrUndefined(m) || !fn.IsCallable() {
		return nil, false, nil
	}
	res, err := fn.CallAsFunction(o, []value.Value{value.NewString(hint)})
	return res, true, err
}

// ToPrimitive/ToNumber/ToString/ToNumeric/ToBigInt/ToPropertyKey/ToObject
// are thin evaluator-bound wrappers over pkg/ops that close over this
// evaluator's @@toPrimitive and wrapper hooks.

func (ev *Evaluator) ToPrimitive(v value.Value, hint ops.Hint) (value.Value, error) {
	return ops.ToPrimitive(v, hint, ev.toPrimitiveFn)
}

func (ev *Evaluator) ToNumber(v value.Value) (value.Number, error) {
	prim, err := ev.ToPrimitive(v, ops.HintNumber)
	if err != nil {
		return 0, err
	}
	return ops.ToNumber(prim)
}

func (ev *Evaluator) ToNumeric(v value.Value) (value.Value, error) {
	return ops.ToNumeric(v, ev.toPrimitiveFn)
}

func (ev *Evaluator) ToString(v value.Value) (*value.String, error) {
	return ops.ToString(v, ev.toPrimitiveFn)
}

func (ev *Evaluator) ToBigInt(v value.Value) (*value.BigInt, error) {
	return ops.ToBigInt(v, ev.toPrimitiveFn)
}

func (ev *Evaluator) ToPropertyKey(v value.Value) (value.PropertyKey, error) {
	return ops.ToPropertyKey(v, ev.toPrimitiveFn)
}

func (ev *Evaluator) ToObject(v value.Value) (*value.Object, error) {
	if ev.WrapPrimitive == nil {
		return ops.ToObject(v, func(value.Value) (*value.Object, error) { return nil, ops.ErrCannotConvertToObject })
	}
	return ops.ToObject(v, ev.WrapPrimitive)
}

// GetValue dereferences a completion's reference payload, per §4.1.
func (ev *Evaluator) GetValue(c completion.Record) (value.Value, error) {
	if c.Ref != nil {
		return completion.GetValue(c.Ref, ev.ToObject)
	}
	if completion.IsEmpty(c.Val) {
		return value.Undefined, nil
	}
	return c.Val, nil
}

// PutValue writes through a reference, per §4.1.
func (ev *Evaluator) PutValue(ref *completion.Reference, v value.Value) error {
	return completion.PutValue(ref, v, ev.ToObject)
}

// ResolveBinding implements ResolveBinding(name) against the running
// context's lexical environment (§4.2).
func (ev *Evaluator) ResolveBinding(name string) *completion.Reference {
	lex := ev.Current().LexicalEnv
	strict := ev.isStrict()
	found := environment.ResolveBinding(lex, name)
	if found == nil {
		return completion.NewUnresolvableReference(name, strict)
	}
	return completion.NewEnvironmentReference(found, name, strict)
}

// isStrict reports whether the running context is strict-mode code. The
// distilled spec does not name a sloppy/strict toggle on AST nodes, so
// every script and function body is treated as strict (matching the
// evaluator's own PutValue-failure behaviour for immutable bindings, which
// is otherwise unobservable in sloppy code anyway).
func (ev *Evaluator) isStrict() bool { return true }

// ResolveThisBinding implements ResolveThisBinding() (§4.2, §4.4 `this`).
func (ev *Evaluator) ResolveThisBinding() (value.Value, error) {
	return environment.ResolveThisBinding(ev.Current().LexicalEnv)
}

// Throw builds a throw completion carrying an Error-shaped object of the
// named intrinsic constructor (§7). If the realm has not yet installed
// error constructors (bootstrap), it falls back to a bare object tagged
// with the error's name/message so evaluation can still proceed.
func (ev *Evaluator) Throw(errorName, message string) completion.Record {
	obj := ev.newErrorObject(errorName, message)
	return completion.ThrowCompletion(obj)
}

func (ev *Evaluator) newErrorObject(errorName, message string) *value.Object {
	proto, ok := ev.Realm.Intrinsic("%" + errorName + ".prototype%")
	if !ok {
		proto, ok = ev.Realm.Intrinsic("%Error.prototype%")
	}
	var o *value.Object
	if ok {
		o = value.NewObject(proto)
	} else {
		o = value.NewObject(value.Null)
	}
	o.ClassName = "Error"
	o.SetSlot("ErrorData", true)
	o.DefineValue("message", value.NewString(message), false)
	o.DefineValue("name", value.NewString(errorName), false)
	o.DefineValue("stack", value.NewString(ev.captureStack(errorName, message)), false)
	return o
}

func (ev *Evaluator) captureStack(errorName, message string) string {
	s := errorName + ": " + message
	for _, f := range ev.Contexts.Frames() {
		if f.Function != nil {
			if nameVal, err := f.Function.Get(value.StringKey("name"), f.Function); err == nil {
				s += "\n    at " + nameVal.GoString()
				continue
			}
		}
		s += "\n    at <anonymous>"
	}
	return s
}

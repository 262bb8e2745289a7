// Package builtins implements the engine's default intrinsic object
// families (SPEC_FULL.md §6/§7: Object, Function, Array, String, Number,
// Boolean, the Error family, Math, JSON, Promise, console, Symbol, Date) as
// pkg/plugin.Plugin values, installable individually or all together via
// InstallAll.
//
// Grounded on the teacher's internal/interp/runtime built-in registration
// (each DWScript standard-library group — string functions, math
// functions, array helpers — registers its native functions into the
// runtime's global symbol table at interpreter construction): kept the
// same "one file per builtin family, one registration entry point per
// file" shape, rebuilt against ECMAScript's intrinsic/prototype-chain
// model rather than DWScript's flat global-function namespace.
package builtins

import (
	"math"

	"github.com/cwbudde/go-ecma/pkg/evaluator"
	"github.com/cwbudde/go-ecma/pkg/plugin"
	"github.com/cwbudde/go-ecma/pkg/realm"
	"github.com/cwbudde/go-ecma/pkg/value"
)

// nan is the float64 NaN value, shared by every builtin that needs to
// report "not a number" without importing math directly for one constant.
func nan() float64 { return math.NaN() }

// InstallAll wires every builtin plugin into r via a fresh Installer,
// resolving dependency order automatically (object/function first, since
// every other family's prototype chain roots there).
func InstallAll(ev *evaluator.Evaluator, r *realm.Realm) error {
	in := plugin.NewInstaller()
	all := []plugin.Plugin{
		ObjectPlugin{},
		ArrayPlugin{},
		StringPlugin{},
		NumberPlugin{},
		BooleanPlugin{},
		ErrorsPlugin{},
		MathPlugin{},
		JSONPlugin{},
		SymbolPlugin{},
		DatePlugin{},
		PromisePlugin{},
		ConsolePlugin{},
	}
	for _, p := range all {
		in.Add(p)
	}
	for _, p := range all {
		if err := in.Install(ev, r, p); err != nil {
			return err
		}
	}
	return nil
}

// defineGlobal installs name on the realm's global object as a
// non-enumerable, writable, configurable data property, matching how
// ordinary built-in globals (Object, Array, Math, JSON, ...) appear on the
// global object (§7) — distinct from `var`/`let` bindings, which go
// through the global environment record instead.
func defineGlobal(r *realm.Realm, name string, v value.Value) {
	r.GlobalObject.DefineValue(name, v, false)
}

// method installs a non-enumerable native method on proto, the shape
// every builtin prototype's own methods share (§7).
func method(ev *evaluator.Evaluator, proto *value.Object, name string, length int, fn func(ev *evaluator.Evaluator, this value.Value, args []value.Value) (value.Value, error)) {
	proto.DefineValue(name, ev.NewNativeFunction(name, length, fn), false)
}

// arg returns args[i], or value.Undefined if the call was made with fewer
// arguments (§4.6 argument-list padding).
func arg(args []value.Value, i int) value.Value {
	if i < len(args) {
		return args[i]
	}
	return value.Undefined
}

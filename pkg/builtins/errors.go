package builtins

import (
	"github.com/cwbudde/go-ecma/pkg/evaluator"
	"github.com/cwbudde/go-ecma/pkg/realm"
	"github.com/cwbudde/go-ecma/pkg/value"
)

// errorNames lists the native error constructors (§7), each rooted at
// %Error.prototype% except Error itself.
var errorNames = []string{"Error", "TypeError", "RangeError", "ReferenceError", "SyntaxError", "EvalError", "URIError"}

// ErrorsPlugin installs Error and its native subclasses, matching the
// "%<Name>.prototype%" intrinsic naming Evaluator.Throw already relies on.
type ErrorsPlugin struct{}

func (ErrorsPlugin) ID() string          { return "errors" }
func (ErrorsPlugin) DependsOn() []string { return []string{"object"} }

func (ErrorsPlugin) Install(ev *evaluator.Evaluator, r *realm.Realm) error {
	objectProto, _ := r.Intrinsic("%Object.prototype%")

	errorProto := value.NewObject(objectProto)
	errorProto.ClassName = "Error"
	errorProto.DefineValue("name", value.NewString("Error"), false)
	errorProto.DefineValue("message", value.NewString(""), false)
	method(ev, errorProto, "toString", 0, errToString)
	r.SetIntrinsic("%Error.prototype%", errorProto)

	errorCtor := ev.NewNativeConstructor("Error", 1, makeErrorCall(ev, r, "Error"), makeErrorConstruct(ev, r, "Error"))
	errorCtor.DefineValue("prototype", errorProto, false)
	errorProto.DefineValue("constructor", errorCtor, false)
	defineGlobal(r, "Error", errorCtor)

	for _, name := range errorNames[1:] {
		proto := value.NewObject(errorProto)
		proto.ClassName = "Error"
		proto.DefineValue("name", value.NewString(name), false)
		proto.DefineValue("message", value.NewString(""), false)
		r.SetIntrinsic("%"+name+".prototype%", proto)

		ctor := ev.NewNativeConstructor(name, 1, makeErrorCall(ev, r, name), makeErrorConstruct(ev, r, name))
		ctor.DefineValue("prototype", proto, false)
		ctor.SetPrototypeOf(errorCtor)
		proto.DefineValue("constructor", ctor, false)
		defineGlobal(r, name, ctor)
	}
	return nil
}

func makeErrorCall(ev *evaluator.Evaluator, r *realm.Realm, name string) func(*evaluator.Evaluator, value.Value, []value.Value) (value.Value, error) {
	return func(ev *evaluator.Evaluator, this value.Value, args []value.Value) (value.Value, error) {
		return makeErrorConstruct(ev, r, name)(ev, args, nil)
	}
}

func makeErrorConstruct(ev *evaluator.Evaluator, r *realm.Realm, name string) func(*evaluator.Evaluator, []value.Value, *value.Object) (value.Value, error) {
	return func(ev *evaluator.Evaluator, args []value.Value, _ *value.Object) (value.Value, error) {
		proto, _ := r.Intrinsic("%" + name + ".prototype%")
		o := value.NewObject(proto)
		o.ClassName = "Error"
		o.SetSlot("ErrorData", true)
		if len(args) > 0 && arg(args, 0) != value.Undefined {
			msg, err := ev.ToString(arg(args, 0))
			if err != nil {
				return nil, err
			}
			o.DefineValue("message", msg, false)
		}
		o.DefineValue("stack", value.NewString(name+": error"), false)
		return o, nil
	}
}

func errToString(ev *evaluator.Evaluator, this value.Value, _ []value.Value) (value.Value, error) {
	o, ok := this.(*value.Object)
	if !ok {
		return value.NewString("Error"), nil
	}
	name := "Error"
	if nv, err := o.Get(value.StringKey("name"), o); err == nil {
		if s, err := ev.ToString(nv); err == nil {
			name = s.String()
		}
	}
	msg := ""
	if mv, err := o.Get(value.StringKey("message"), o); err == nil {
		if s, err := ev.ToString(mv); err == nil {
			msg = s.String()
		}
	}
	if msg == "" {
		return value.NewString(name), nil
	}
	return value.NewString(name + ": " + msg), nil
}

package builtins

import (
	"github.com/cwbudde/go-ecma/pkg/evaluator"
	"github.com/cwbudde/go-ecma/pkg/realm"
	"github.com/cwbudde/go-ecma/pkg/value"
)

// BooleanPlugin installs %Boolean.prototype% and the Boolean constructor
// (§6.4), the simplest of the primitive-wrapper families.
type BooleanPlugin struct{}

func (BooleanPlugin) ID() string          { return "boolean" }
func (BooleanPlugin) DependsOn() []string { return []string{"object"} }

func (BooleanPlugin) Install(ev *evaluator.Evaluator, r *realm.Realm) error {
	objectProto, _ := r.Intrinsic("%Object.prototype%")
	booleanProto := value.NewObject(objectProto)
	booleanProto.ClassName = "Boolean"
	r.SetIntrinsic("%Boolean.prototype%", booleanProto)

	method(ev, booleanProto, "toString", 0, boolToString)
	method(ev, booleanProto, "valueOf", 0, boolValueOf)

	booleanCtor := ev.NewNativeConstructor("Boolean", 1, booleanCall, booleanConstruct)
	booleanCtor.DefineValue("prototype", booleanProto, false)
	booleanProto.DefineValue("constructor", booleanCtor, false)
	defineGlobal(r, "Boolean", booleanCtor)
	return nil
}

func thisBoolean(this value.Value) bool {
	switch t := this.(type) {
	case value.Boolean:
		return bool(t)
	case *value.Object:
		if pv, ok := t.Slot("PrimitiveValue"); ok {
			if b, ok := pv.(value.Boolean); ok {
				return bool(b)
			}
		}
	}
	return value.ToBoolean(this)
}

func booleanCall(_ *evaluator.Evaluator, _ value.Value, args []value.Value) (value.Value, error) {
	return value.Boolean(value.ToBoolean(arg(args, 0))), nil
}

func booleanConstruct(ev *evaluator.Evaluator, args []value.Value, _ *value.Object) (value.Value, error) {
	v, err := booleanCall(ev, value.Undefined, args)
	if err != nil {
		return nil, err
	}
	return ev.WrapPrimitive(v)
}

func boolToString(_ *evaluator.Evaluator, this value.Value, _ []value.Value) (value.Value, error) {
	if thisBoolean(this) {
		return value.NewString("true"), nil
	}
	return value.NewString("false"), nil
}

func boolValueOf(_ *evaluator.Evaluator, this value.Value, _ []value.Value) (value.Value, error) {
	return value.Boolean(thisBoolean(this)), nil
}

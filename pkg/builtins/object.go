package builtins

import (
	"github.com/cwbudde/go-ecma/pkg/evaluator"
	"github.com/cwbudde/go-ecma/pkg/ops"
	"github.com/cwbudde/go-ecma/pkg/realm"
	"github.com/cwbudde/go-ecma/pkg/value"
)

// ObjectPlugin installs %Object.prototype% and %Function.prototype% (the
// root of every other prototype chain), the Object and Function
// constructors, and the generic primitive-wrapping hook every ToObject
// call on a primitive goes through (§6.1, §6.2).
type ObjectPlugin struct{}

func (ObjectPlugin) ID() string          { return "object" }
func (ObjectPlugin) DependsOn() []string { return nil }

func (ObjectPlugin) Install(ev *evaluator.Evaluator, r *realm.Realm) error {
	objectProto := value.NewObject(value.Null)
	objectProto.ClassName = "Object"
	r.SetIntrinsic("%Object.prototype%", objectProto)

	functionProto := value.NewObject(objectProto)
	functionProto.ClassName = "Function"
	functionProto.SetExotic(&value.ExoticMethods{Call: func(_ *value.Object, _ value.Value, _ []value.Value) (value.Value, error) {
		return value.Undefined, nil
	}})
	r.SetIntrinsic("%Function.prototype%", functionProto)

	r.GlobalObject.SetPrototypeOf(objectProto)

	method(ev, objectProto, "hasOwnProperty", 1, objHasOwnProperty)
	method(ev, objectProto, "isPrototypeOf", 1, objIsPrototypeOf)
	method(ev, objectProto, "toString", 0, objToString)
	method(ev, objectProto, "valueOf", 0, func(ev *evaluator.Evaluator, this value.Value, _ []value.Value) (value.Value, error) {
		return ev.ToObject(this)
	})

	method(ev, functionProto, "call", 1, funcCall)
	method(ev, functionProto, "apply", 2, funcApply)
	method(ev, functionProto, "bind", 1, funcBind)
	method(ev, functionProto, "toString", 0, func(ev *evaluator.Evaluator, this value.Value, _ []value.Value) (value.Value, error) {
		fn, _ := this.(*value.Object)
		name := ""
		if fn != nil {
			if n, err := fn.Get(value.StringKey("name"), fn); err == nil {
				if s, ok := n.(*value.String); ok {
					name = s.String()
				}
			}
		}
		return value.NewString("function " + name + "() { [native code] }"), nil
	})

	objectCtor := ev.NewNativeConstructor("Object", 1, objectCall, objectConstruct)
	objectCtor.DefineValue("prototype", objectProto, false)
	objectProto.DefineValue("constructor", objectCtor, false)
	method(ev, objectCtor, "keys", 1, objKeys)
	method(ev, objectCtor, "values", 1, objValues)
	method(ev, objectCtor, "entries", 1, objEntries)
	method(ev, objectCtor, "assign", 2, objAssign)
	method(ev, objectCtor, "freeze", 1, objFreeze)
	method(ev, objectCtor, "isFrozen", 1, objIsFrozen)
	method(ev, objectCtor, "getPrototypeOf", 1, objGetPrototypeOf)
	method(ev, objectCtor, "setPrototypeOf", 2, objSetPrototypeOf)
	method(ev, objectCtor, "create", 2, objCreate)
	method(ev, objectCtor, "defineProperty", 3, objDefineProperty)
	defineGlobal(r, "Object", objectCtor)

	functionCtor := ev.NewNativeConstructor("Function", 1, functionCall, functionCall)
	functionCtor.DefineValue("prototype", functionProto, false)
	functionProto.DefineValue("constructor", functionCtor, false)
	defineGlobal(r, "Function", functionCtor)

	ev.WrapPrimitive = func(v value.Value) (*value.Object, error) {
		var protoName string
		switch v.(type) {
		case *value.String:
			protoName = "%String.prototype%"
		case value.Number:
			protoName = "%Number.prototype%"
		case value.Boolean:
			protoName = "%Boolean.prototype%"
		case *value.Symbol:
			protoName = "%Symbol.prototype%"
		case *value.BigInt:
			protoName = "%BigInt.prototype%"
		default:
			return nil, ops.ErrCannotConvertToObject
		}
		proto, ok := r.Intrinsic(protoName)
		if !ok {
			proto = objectProto
		}
		o := value.NewObject(proto)
		o.ClassName = "Object"
		o.SetSlot("PrimitiveValue", v)
		return o, nil
	}

	return nil
}

func objectCall(ev *evaluator.Evaluator, _ value.Value, args []value.Value) (value.Value, error) {
	a := arg(args, 0)
	if value.IsNullOrUndefined(a) {
		return ev.Realm.NewOrdinaryObject(), nil
	}
	return ev.ToObject(a)
}

func objectConstruct(ev *evaluator.Evaluator, args []value.Value, _ *value.Object) (value.Value, error) {
	return objectCall(ev, value.Undefined, args)
}

func objHasOwnProperty(ev *evaluator.Evaluator, this value.Value, args []value.Value) (value.Value, error) {
	o, err := ev.ToObject(this)
	if err != nil {
		return nil, err
	}
	key, err := ev.ToPropertyKey(arg(args, 0))
	if err != nil {
		return nil, err
	}
	_, ok := o.GetOwnProperty(key)
	return value.Boolean(ok), nil
}

func objIsPrototypeOf(ev *evaluator.Evaluator, this value.Value, args []value.Value) (value.Value, error) {
	o, err := ev.ToObject(this)
	if err != nil {
		return nil, err
	}
	target, ok := arg(args, 0).(*value.Object)
	if !ok {
		return value.Boolean(false), nil
	}
	proto := target.GetPrototypeOf()
	for {
		po, ok := proto.(*value.Object)
		if !ok {
			return value.Boolean(false), nil
		}
		if po == o {
			return value.Boolean(true), nil
		}
		proto = po.GetPrototypeOf()
	}
}

func objToString(ev *evaluator.Evaluator, this value.Value, _ []value.Value) (value.Value, error) {
	if value.IsNullOrUndefined(this) {
		if this == value.Undefined {
			return value.NewString("[object Undefined]"), nil
		}
		return value.NewString("[object Null]"), nil
	}
	o, err := ev.ToObject(this)
	if err != nil {
		return nil, err
	}
	tag := o.ClassName
	if tag == "" {
		tag = "Object"
	}
	return value.NewString("[object " + tag + "]"), nil
}

func objKeys(ev *evaluator.Evaluator, _ value.Value, args []value.Value) (value.Value, error) {
	o, err := ev.ToObject(arg(args, 0))
	if err != nil {
		return nil, err
	}
	var keys []value.Value
	for _, k := range o.OwnPropertyKeys() {
		if k.Sym != nil {
			continue
		}
		desc, _ := o.GetOwnProperty(k)
		if desc != nil && desc.Enumerable {
			keys = append(keys, value.NewString(k.String()))
		}
	}
	return value.NewArray(mustIntrinsic(ev, "%Array.prototype%"), keys), nil
}

func objValues(ev *evaluator.Evaluator, _ value.Value, args []value.Value) (value.Value, error) {
	o, err := ev.ToObject(arg(args, 0))
	if err != nil {
		return nil, err
	}
	var vals []value.Value
	for _, k := range o.OwnPropertyKeys() {
		if k.Sym != nil {
			continue
		}
		desc, _ := o.GetOwnProperty(k)
		if desc == nil || !desc.Enumerable {
			continue
		}
		v, err := o.Get(k, o)
		if err != nil {
			return nil, err
		}
		vals = append(vals, v)
	}
	return value.NewArray(mustIntrinsic(ev, "%Array.prototype%"), vals), nil
}

func objEntries(ev *evaluator.Evaluator, _ value.Value, args []value.Value) (value.Value, error) {
	o, err := ev.ToObject(arg(args, 0))
	if err != nil {
		return nil, err
	}
	var entries []value.Value
	for _, k := range o.OwnPropertyKeys() {
		if k.Sym != nil {
			continue
		}
		desc, _ := o.GetOwnProperty(k)
		if desc == nil || !desc.Enumerable {
			continue
		}
		v, err := o.Get(k, o)
		if err != nil {
			return nil, err
		}
		pair := value.NewArray(mustIntrinsic(ev, "%Array.prototype%"), []value.Value{value.NewString(k.String()), v})
		entries = append(entries, pair)
	}
	return value.NewArray(mustIntrinsic(ev, "%Array.prototype%"), entries), nil
}

func objAssign(ev *evaluator.Evaluator, _ value.Value, args []value.Value) (value.Value, error) {
	target, err := ev.ToObject(arg(args, 0))
	if err != nil {
		return nil, err
	}
	for _, src := range args[minInt(1, len(args)):] {
		if value.IsNullOrUndefined(src) {
			continue
		}
		so, err := ev.ToObject(src)
		if err != nil {
			return nil, err
		}
		for _, k := range so.OwnPropertyKeys() {
			desc, _ := so.GetOwnProperty(k)
			if desc == nil || !desc.Enumerable {
				continue
			}
			v, err := so.Get(k, so)
			if err != nil {
				return nil, err
			}
			if _, err := target.Set(k, v, target); err != nil {
				return nil, err
			}
		}
	}
	return target, nil
}

func objFreeze(_ *evaluator.Evaluator, _ value.Value, args []value.Value) (value.Value, error) {
	o, ok := arg(args, 0).(*value.Object)
	if !ok {
		return arg(args, 0), nil
	}
	o.PreventExtensions()
	for _, k := range o.OwnPropertyKeys() {
		desc, _ := o.GetOwnProperty(k)
		if desc == nil {
			continue
		}
		desc.Configurable = false
		if desc.IsData() {
			desc.Writable = false
		}
		_, _ = o.DefineOwnProperty(k, desc)
	}
	return o, nil
}

func objIsFrozen(_ *evaluator.Evaluator, _ value.Value, args []value.Value) (value.Value, error) {
	o, ok := arg(args, 0).(*value.Object)
	if !ok {
		return value.Boolean(true), nil
	}
	if o.IsExtensible() {
		return value.Boolean(false), nil
	}
	for _, k := range o.OwnPropertyKeys() {
		desc, _ := o.GetOwnProperty(k)
		if desc == nil {
			continue
		}
		if desc.Configurable || (desc.IsData() && desc.Writable) {
			return value.Boolean(false), nil
		}
	}
	return value.Boolean(true), nil
}

func objGetPrototypeOf(ev *evaluator.Evaluator, _ value.Value, args []value.Value) (value.Value, error) {
	o, err := ev.ToObject(arg(args, 0))
	if err != nil {
		return nil, err
	}
	return o.GetPrototypeOf(), nil
}

func objSetPrototypeOf(ev *evaluator.Evaluator, _ value.Value, args []value.Value) (value.Value, error) {
	o, err := ev.ToObject(arg(args, 0))
	if err != nil {
		return nil, err
	}
	proto := arg(args, 1)
	if !o.SetPrototypeOf(proto) {
		return nil, &evaluator.ThrownError{Value: value.NewString("TypeError: cyclic prototype value")}
	}
	return o, nil
}

func objCreate(ev *evaluator.Evaluator, _ value.Value, args []value.Value) (value.Value, error) {
	proto := arg(args, 0)
	o := value.NewObject(proto)
	o.ClassName = "Object"
	if props, ok := arg(args, 1).(*value.Object); ok {
		for _, k := range props.OwnPropertyKeys() {
			descObj, err := props.Get(k, props)
			if err != nil {
				return nil, err
			}
			if err := definePropertyFromDescriptor(ev, o, k, descObj); err != nil {
				return nil, err
			}
		}
	}
	return o, nil
}

func objDefineProperty(ev *evaluator.Evaluator, _ value.Value, args []value.Value) (value.Value, error) {
	o, ok := arg(args, 0).(*value.Object)
	if !ok {
		return nil, &evaluator.ThrownError{Value: value.NewString("TypeError: Object.defineProperty called on non-object")}
	}
	key, err := ev.ToPropertyKey(arg(args, 1))
	if err != nil {
		return nil, err
	}
	if err := definePropertyFromDescriptor(ev, o, key, arg(args, 2)); err != nil {
		return nil, err
	}
	return o, nil
}

func definePropertyFromDescriptor(ev *evaluator.Evaluator, o *value.Object, key value.PropertyKey, descObj value.Value) error {
	descSrc, ok := descObj.(*value.Object)
	if !ok {
		return &evaluator.ThrownError{Value: value.NewString("TypeError: property descriptor must be an object")}
	}
	desc := &value.PropertyDescriptor{}
	if has, _ := descSrc.HasProperty(value.StringKey("value")); has {
		v, err := descSrc.Get(value.StringKey("value"), descSrc)
		if err != nil {
			return err
		}
		desc.Value = v
		desc.HasValue = true
	}
	if has, _ := descSrc.HasProperty(value.StringKey("writable")); has {
		v, _ := descSrc.Get(value.StringKey("writable"), descSrc)
		desc.Writable = value.ToBoolean(v)
		desc.HasWritable = true
	}
	if has, _ := descSrc.HasProperty(value.StringKey("enumerable")); has {
		v, _ := descSrc.Get(value.StringKey("enumerable"), descSrc)
		desc.Enumerable = value.ToBoolean(v)
		desc.HasEnumerable = true
	}
	if has, _ := descSrc.HasProperty(value.StringKey("configurable")); has {
		v, _ := descSrc.Get(value.StringKey("configurable"), descSrc)
		desc.Configurable = value.ToBoolean(v)
		desc.HasConfigurable = true
	}
	_, err := o.DefineOwnProperty(key, desc)
	_ = ev
	return err
}

func functionCall(_ *evaluator.Evaluator, _ value.Value, _ []value.Value) (value.Value, error) {
	return value.Undefined, nil
}

func funcCall(ev *evaluator.Evaluator, this value.Value, args []value.Value) (value.Value, error) {
	fn, ok := this.(*value.Object)
	if !ok || !fn.IsCallable() {
		return nil, &evaluator.ThrownError{Value: value.NewString("TypeError: Function.prototype.call called on non-function")}
	}
	newThis := arg(args, 0)
	var rest []value.Value
	if len(args) > 1 {
		rest = args[1:]
	}
	return fn.CallAsFunction(newThis, rest)
}

func funcApply(ev *evaluator.Evaluator, this value.Value, args []value.Value) (value.Value, error) {
	fn, ok := this.(*value.Object)
	if !ok || !fn.IsCallable() {
		return nil, &evaluator.ThrownError{Value: value.NewString("TypeError: Function.prototype.apply called on non-function")}
	}
	newThis := arg(args, 0)
	argArray := arg(args, 1)
	var rest []value.Value
	if arr, ok := argArray.(*value.Object); ok {
		n := value.ArrayLength(arr)
		for i := uint32(0); i < n; i++ {
			v, err := arr.Get(value.StringKey(itoa(int(i))), arr)
			if err != nil {
				return nil, err
			}
			rest = append(rest, v)
		}
	}
	return fn.CallAsFunction(newThis, rest)
}

func funcBind(ev *evaluator.Evaluator, this value.Value, args []value.Value) (value.Value, error) {
	fn, ok := this.(*value.Object)
	if !ok || !fn.IsCallable() {
		return nil, &evaluator.ThrownError{Value: value.NewString("TypeError: Function.prototype.bind called on non-function")}
	}
	boundThis := arg(args, 0)
	var boundArgs []value.Value
	if len(args) > 1 {
		boundArgs = append(boundArgs, args[1:]...)
	}
	bound := ev.NewNativeFunction("bound", 0, func(ev *evaluator.Evaluator, _ value.Value, callArgs []value.Value) (value.Value, error) {
		all := append(append([]value.Value{}, boundArgs...), callArgs...)
		return fn.CallAsFunction(boundThis, all)
	})
	return bound, nil
}

func mustIntrinsic(ev *evaluator.Evaluator, name string) value.Value {
	if o, ok := ev.Realm.Intrinsic(name); ok {
		return o
	}
	return value.Null
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	neg := n < 0
	if neg {
		n = -n
	}
	var buf [20]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
	}
	if neg {
		i--
		buf[i] = '-'
	}
	return string(buf[i:])
}

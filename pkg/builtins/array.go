package builtins

import (
	"github.com/cwbudde/go-ecma/pkg/evaluator"
	"github.com/cwbudde/go-ecma/pkg/realm"
	"github.com/cwbudde/go-ecma/pkg/value"
)

// ArrayPlugin installs %Array.prototype%, the Array constructor, and the
// common iteration/mutation methods scripts rely on (§6.3).
type ArrayPlugin struct{}

func (ArrayPlugin) ID() string          { return "array" }
func (ArrayPlugin) DependsOn() []string { return []string{"object"} }

func (ArrayPlugin) Install(ev *evaluator.Evaluator, r *realm.Realm) error {
	objectProto, _ := r.Intrinsic("%Object.prototype%")
	arrayProto := value.NewArray(objectProto, nil)
	r.SetIntrinsic("%Array.prototype%", arrayProto)

	method(ev, arrayProto, "push", 1, arrPush)
	method(ev, arrayProto, "pop", 0, arrPop)
	method(ev, arrayProto, "shift", 0, arrShift)
	method(ev, arrayProto, "unshift", 1, arrUnshift)
	method(ev, arrayProto, "slice", 2, arrSlice)
	method(ev, arrayProto, "splice", 2, arrSplice)
	method(ev, arrayProto, "concat", 1, arrConcat)
	method(ev, arrayProto, "join", 1, arrJoin)
	method(ev, arrayProto, "indexOf", 1, arrIndexOf)
	method(ev, arrayProto, "includes", 1, arrIncludes)
	method(ev, arrayProto, "forEach", 1, arrForEach)
	method(ev, arrayProto, "map", 1, arrMap)
	method(ev, arrayProto, "filter", 1, arrFilter)
	method(ev, arrayProto, "reduce", 2, arrReduce)
	method(ev, arrayProto, "find", 1, arrFind)
	method(ev, arrayProto, "some", 1, arrSome)
	method(ev, arrayProto, "every", 1, arrEvery)
	method(ev, arrayProto, "reverse", 0, arrReverse)
	method(ev, arrayProto, "toString", 0, func(ev *evaluator.Evaluator, this value.Value, _ []value.Value) (value.Value, error) {
		return arrJoin(ev, this, nil)
	})

	arrayCtor := ev.NewNativeConstructor("Array", 1, arrayCall, arrayConstruct)
	arrayCtor.DefineValue("prototype", arrayProto, false)
	arrayProto.DefineValue("constructor", arrayCtor, false)
	method(ev, arrayCtor, "isArray", 1, arrIsArray)
	method(ev, arrayCtor, "from", 1, arrFrom)
	method(ev, arrayCtor, "of", 0, arrOf)
	defineGlobal(r, "Array", arrayCtor)
	return nil
}

func arrProtoValue(ev *evaluator.Evaluator) value.Value {
	return mustIntrinsic(ev, "%Array.prototype%")
}

func toArrayObject(ev *evaluator.Evaluator, this value.Value) (*value.Object, error) {
	return ev.ToObject(this)
}

func arrLen(o *value.Object) int { return int(value.ArrayLength(o)) }

func arrGet(o *value.Object, i int) (value.Value, error) {
	return o.Get(value.StringKey(itoa(i)), o)
}

func arrayCall(ev *evaluator.Evaluator, this value.Value, args []value.Value) (value.Value, error) {
	return arrayConstruct(ev, args, nil)
}

func arrayConstruct(ev *evaluator.Evaluator, args []value.Value, _ *value.Object) (value.Value, error) {
	if len(args) == 1 {
		if n, ok := args[0].(value.Number); ok {
			arr := value.NewArray(arrProtoValue(ev), nil)
			_, _ = arr.DefineOwnProperty(value.StringKey("length"), &value.PropertyDescriptor{Value: n, HasValue: true})
			return arr, nil
		}
	}
	return value.NewArray(arrProtoValue(ev), append([]value.Value{}, args...)), nil
}

func arrIsArray(_ *evaluator.Evaluator, _ value.Value, args []value.Value) (value.Value, error) {
	o, ok := arg(args, 0).(*value.Object)
	return value.Boolean(ok && o.ClassName == "Array"), nil
}

func arrFrom(ev *evaluator.Evaluator, _ value.Value, args []value.Value) (value.Value, error) {
	src := arg(args, 0)
	mapFn, _ := arg(args, 1).(*value.Object)
	o, err := ev.ToObject(src)
	if err != nil {
		return nil, err
	}
	n := arrLen(o)
	if lv, err := o.Get(value.StringKey("length"), o); err == nil {
		if num, ok := lv.(value.Number); ok {
			n = int(num)
		}
	}
	out := make([]value.Value, 0, n)
	for i := 0; i < n; i++ {
		v, err := arrGet(o, i)
		if err != nil {
			return nil, err
		}
		if mapFn != nil && mapFn.IsCallable() {
			v, err = mapFn.CallAsFunction(value.Undefined, []value.Value{v, value.Number(i)})
			if err != nil {
				return nil, err
			}
		}
		out = append(out, v)
	}
	return value.NewArray(arrProtoValue(ev), out), nil
}

func arrOf(ev *evaluator.Evaluator, _ value.Value, args []value.Value) (value.Value, error) {
	return value.NewArray(arrProtoValue(ev), append([]value.Value{}, args...)), nil
}

func arrPush(ev *evaluator.Evaluator, this value.Value, args []value.Value) (value.Value, error) {
	o, err := toArrayObject(ev, this)
	if err != nil {
		return nil, err
	}
	for _, v := range args {
		value.Push(o, v)
	}
	return value.Number(arrLen(o)), nil
}

func arrPop(ev *evaluator.Evaluator, this value.Value, _ []value.Value) (value.Value, error) {
	o, err := toArrayObject(ev, this)
	if err != nil {
		return nil, err
	}
	n := arrLen(o)
	if n == 0 {
		return value.Undefined, nil
	}
	v, err := arrGet(o, n-1)
	if err != nil {
		return nil, err
	}
	_, _ = o.Delete(value.StringKey(itoa(n - 1)))
	_, _ = o.Set(value.StringKey("length"), value.Number(n-1), o)
	return v, nil
}

func arrShift(ev *evaluator.Evaluator, this value.Value, _ []value.Value) (value.Value, error) {
	o, err := toArrayObject(ev, this)
	if err != nil {
		return nil, err
	}
	n := arrLen(o)
	if n == 0 {
		return value.Undefined, nil
	}
	first, err := arrGet(o, 0)
	if err != nil {
		return nil, err
	}
	for i := 1; i < n; i++ {
		v, err := arrGet(o, i)
		if err != nil {
			return nil, err
		}
		if _, err := o.Set(value.StringKey(itoa(i-1)), v, o); err != nil {
			return nil, err
		}
	}
	_, _ = o.Delete(value.StringKey(itoa(n - 1)))
	_, _ = o.Set(value.StringKey("length"), value.Number(n-1), o)
	return first, nil
}

func arrUnshift(ev *evaluator.Evaluator, this value.Value, args []value.Value) (value.Value, error) {
	o, err := toArrayObject(ev, this)
	if err != nil {
		return nil, err
	}
	n := arrLen(o)
	shift := len(args)
	for i := n - 1; i >= 0; i-- {
		v, err := arrGet(o, i)
		if err != nil {
			return nil, err
		}
		if _, err := o.Set(value.StringKey(itoa(i+shift)), v, o); err != nil {
			return nil, err
		}
	}
	for i, v := range args {
		if _, err := o.Set(value.StringKey(itoa(i)), v, o); err != nil {
			return nil, err
		}
	}
	_, _ = o.Set(value.StringKey("length"), value.Number(n+shift), o)
	return value.Number(n + shift), nil
}

func normalizeIndex(i, length int) int {
	if i < 0 {
		i += length
		if i < 0 {
			i = 0
		}
	}
	if i > length {
		i = length
	}
	return i
}

func arrSlice(ev *evaluator.Evaluator, this value.Value, args []value.Value) (value.Value, error) {
	o, err := toArrayObject(ev, this)
	if err != nil {
		return nil, err
	}
	n := arrLen(o)
	start, end := 0, n
	if len(args) > 0 {
		if num, ok := arg(args, 0).(value.Number); ok {
			start = normalizeIndex(int(num), n)
		}
	}
	if len(args) > 1 && arg(args, 1) != value.Undefined {
		if num, ok := arg(args, 1).(value.Number); ok {
			end = normalizeIndex(int(num), n)
		}
	}
	var out []value.Value
	for i := start; i < end; i++ {
		v, err := arrGet(o, i)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return value.NewArray(arrProtoValue(ev), out), nil
}

func arrSplice(ev *evaluator.Evaluator, this value.Value, args []value.Value) (value.Value, error) {
	o, err := toArrayObject(ev, this)
	if err != nil {
		return nil, err
	}
	n := arrLen(o)
	start := 0
	if len(args) > 0 {
		if num, ok := arg(args, 0).(value.Number); ok {
			start = normalizeIndex(int(num), n)
		}
	}
	deleteCount := n - start
	if len(args) > 1 {
		if num, ok := arg(args, 1).(value.Number); ok {
			deleteCount = int(num)
			if deleteCount < 0 {
				deleteCount = 0
			}
			if deleteCount > n-start {
				deleteCount = n - start
			}
		}
	}
	var items []value.Value
	if len(args) > 2 {
		items = args[2:]
	}
	var all []value.Value
	var removed []value.Value
	for i := 0; i < n; i++ {
		v, err := arrGet(o, i)
		if err != nil {
			return nil, err
		}
		if i >= start && i < start+deleteCount {
			removed = append(removed, v)
			continue
		}
		all = append(all, v)
	}
	out := append(append(append([]value.Value{}, all[:start]...), items...), all[start:]...)
	for i, v := range out {
		if _, err := o.Set(value.StringKey(itoa(i)), v, o); err != nil {
			return nil, err
		}
	}
	for i := len(out); i < n; i++ {
		_, _ = o.Delete(value.StringKey(itoa(i)))
	}
	_, _ = o.Set(value.StringKey("length"), value.Number(len(out)), o)
	return value.NewArray(arrProtoValue(ev), removed), nil
}

func arrConcat(ev *evaluator.Evaluator, this value.Value, args []value.Value) (value.Value, error) {
	o, err := toArrayObject(ev, this)
	if err != nil {
		return nil, err
	}
	var out []value.Value
	n := arrLen(o)
	for i := 0; i < n; i++ {
		v, err := arrGet(o, i)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	for _, a := range args {
		if ao, ok := a.(*value.Object); ok && ao.ClassName == "Array" {
			m := arrLen(ao)
			for i := 0; i < m; i++ {
				v, err := arrGet(ao, i)
				if err != nil {
					return nil, err
				}
				out = append(out, v)
			}
			continue
		}
		out = append(out, a)
	}
	return value.NewArray(arrProtoValue(ev), out), nil
}

func arrJoin(ev *evaluator.Evaluator, this value.Value, args []value.Value) (value.Value, error) {
	o, err := toArrayObject(ev, this)
	if err != nil {
		return nil, err
	}
	sep := ","
	if len(args) > 0 && arg(args, 0) != value.Undefined {
		s, err := ev.ToString(arg(args, 0))
		if err != nil {
			return nil, err
		}
		sep = s.String()
	}
	n := arrLen(o)
	out := ""
	for i := 0; i < n; i++ {
		if i > 0 {
			out += sep
		}
		v, err := arrGet(o, i)
		if err != nil {
			return nil, err
		}
		if value.IsNullOrUndefined(v) {
			continue
		}
		s, err := ev.ToString(v)
		if err != nil {
			return nil, err
		}
		out += s.String()
	}
	return value.NewString(out), nil
}

func arrIndexOf(ev *evaluator.Evaluator, this value.Value, args []value.Value) (value.Value, error) {
	o, err := toArrayObject(ev, this)
	if err != nil {
		return nil, err
	}
	target := arg(args, 0)
	n := arrLen(o)
	for i := 0; i < n; i++ {
		v, err := arrGet(o, i)
		if err != nil {
			return nil, err
		}
		if value.SameValueZero(v, target) {
			return value.Number(i), nil
		}
	}
	return value.Number(-1), nil
}

func arrIncludes(ev *evaluator.Evaluator, this value.Value, args []value.Value) (value.Value, error) {
	idx, err := arrIndexOf(ev, this, args)
	if err != nil {
		return nil, err
	}
	return value.Boolean(idx.(value.Number) >= 0), nil
}

func arrForEach(ev *evaluator.Evaluator, this value.Value, args []value.Value) (value.Value, error) {
	o, err := toArrayObject(ev, this)
	if err != nil {
		return nil, err
	}
	fn, ok := arg(args, 0).(*value.Object)
	if !ok || !fn.IsCallable() {
		return nil, &evaluator.ThrownError{Value: value.NewString("TypeError: callback is not a function")}
	}
	thisArg := arg(args, 1)
	n := arrLen(o)
	for i := 0; i < n; i++ {
		v, err := arrGet(o, i)
		if err != nil {
			return nil, err
		}
		if _, err := fn.CallAsFunction(thisArg, []value.Value{v, value.Number(i), o}); err != nil {
			return nil, err
		}
	}
	return value.Undefined, nil
}

func arrMap(ev *evaluator.Evaluator, this value.Value, args []value.Value) (value.Value, error) {
	o, err := toArrayObject(ev, this)
	if err != nil {
		return nil, err
	}
	fn, ok := arg(args, 0).(*value.Object)
	if !ok || !fn.IsCallable() {
		return nil, &evaluator.ThrownError{Value: value.NewString("TypeError: callback is not a function")}
	}
	thisArg := arg(args, 1)
	n := arrLen(o)
	res := value.NewArray(arrProtoValue(ev), nil)
	_, _ = res.DefineOwnProperty(value.StringKey("length"), &value.PropertyDescriptor{Value: value.Number(n), HasValue: true})
	for i := 0; i < n; i++ {
		key := value.StringKey(itoa(i))
		if has, _ := o.HasProperty(key); !has {
			continue
		}
		v, err := arrGet(o, i)
		if err != nil {
			return nil, err
		}
		r, err := fn.CallAsFunction(thisArg, []value.Value{v, value.Number(i), o})
		if err != nil {
			return nil, err
		}
		_, _ = res.DefineOwnProperty(key, value.DataProperty(r, true, true, true))
	}
	return res, nil
}

func arrFilter(ev *evaluator.Evaluator, this value.Value, args []value.Value) (value.Value, error) {
	o, err := toArrayObject(ev, this)
	if err != nil {
		return nil, err
	}
	fn, ok := arg(args, 0).(*value.Object)
	if !ok || !fn.IsCallable() {
		return nil, &evaluator.ThrownError{Value: value.NewString("TypeError: callback is not a function")}
	}
	thisArg := arg(args, 1)
	n := arrLen(o)
	var out []value.Value
	for i := 0; i < n; i++ {
		v, err := arrGet(o, i)
		if err != nil {
			return nil, err
		}
		keep, err := fn.CallAsFunction(thisArg, []value.Value{v, value.Number(i), o})
		if err != nil {
			return nil, err
		}
		if value.ToBoolean(keep) {
			out = append(out, v)
		}
	}
	return value.NewArray(arrProtoValue(ev), out), nil
}

func arrReduce(ev *evaluator.Evaluator, this value.Value, args []value.Value) (value.Value, error) {
	o, err := toArrayObject(ev, this)
	if err != nil {
		return nil, err
	}
	fn, ok := arg(args, 0).(*value.Object)
	if !ok || !fn.IsCallable() {
		return nil, &evaluator.ThrownError{Value: value.NewString("TypeError: callback is not a function")}
	}
	n := arrLen(o)
	i := 0
	var acc value.Value
	if len(args) > 1 {
		acc = args[1]
	} else {
		if n == 0 {
			return nil, &evaluator.ThrownError{Value: value.NewString("TypeError: Reduce of empty array with no initial value")}
		}
		acc, err = arrGet(o, 0)
		if err != nil {
			return nil, err
		}
		i = 1
	}
	for ; i < n; i++ {
		v, err := arrGet(o, i)
		if err != nil {
			return nil, err
		}
		acc, err = fn.CallAsFunction(value.Undefined, []value.Value{acc, v, value.Number(i), o})
		if err != nil {
			return nil, err
		}
	}
	return acc, nil
}

func arrFind(ev *evaluator.Evaluator, this value.Value, args []value.Value) (value.Value, error) {
	o, err := toArrayObject(ev, this)
	if err != nil {
		return nil, err
	}
	fn, ok := arg(args, 0).(*value.Object)
	if !ok || !fn.IsCallable() {
		return nil, &evaluator.ThrownError{Value: value.NewString("TypeError: callback is not a function")}
	}
	n := arrLen(o)
	for i := 0; i < n; i++ {
		v, err := arrGet(o, i)
		if err != nil {
			return nil, err
		}
		match, err := fn.CallAsFunction(value.Undefined, []value.Value{v, value.Number(i), o})
		if err != nil {
			return nil, err
		}
		if value.ToBoolean(match) {
			return v, nil
		}
	}
	return value.Undefined, nil
}

func arrSome(ev *evaluator.Evaluator, this value.Value, args []value.Value) (value.Value, error) {
	o, err := toArrayObject(ev, this)
	if err != nil {
		return nil, err
	}
	fn, ok := arg(args, 0).(*value.Object)
	if !ok || !fn.IsCallable() {
		return nil, &evaluator.ThrownError{Value: value.NewString("TypeError: callback is not a function")}
	}
	n := arrLen(o)
	for i := 0; i < n; i++ {
		v, err := arrGet(o, i)
		if err != nil {
			return nil, err
		}
		match, err := fn.CallAsFunction(value.Undefined, []value.Value{v, value.Number(i), o})
		if err != nil {
			return nil, err
		}
		if value.ToBoolean(match) {
			return value.Boolean(true), nil
		}
	}
	return value.Boolean(false), nil
}

func arrEvery(ev *evaluator.Evaluator, this value.Value, args []value.Value) (value.Value, error) {
	o, err := toArrayObject(ev, this)
	if err != nil {
		return nil, err
	}
	fn, ok := arg(args, 0).(*value.Object)
	if !ok || !fn.IsCallable() {
		return nil, &evaluator.ThrownError{Value: value.NewString("TypeError: callback is not a function")}
	}
	n := arrLen(o)
	for i := 0; i < n; i++ {
		v, err := arrGet(o, i)
		if err != nil {
			return nil, err
		}
		match, err := fn.CallAsFunction(value.Undefined, []value.Value{v, value.Number(i), o})
		if err != nil {
			return nil, err
		}
		if !value.ToBoolean(match) {
			return value.Boolean(false), nil
		}
	}
	return value.Boolean(true), nil
}

func arrReverse(ev *evaluator.Evaluator, this value.Value, _ []value.Value) (value.Value, error) {
	o, err := toArrayObject(ev, this)
	if err != nil {
		return nil, err
	}
	n := arrLen(o)
	for i, j := 0, n-1; i < j; i, j = i+1, j-1 {
		vi, err := arrGet(o, i)
		if err != nil {
			return nil, err
		}
		vj, err := arrGet(o, j)
		if err != nil {
			return nil, err
		}
		if _, err := o.Set(value.StringKey(itoa(i)), vj, o); err != nil {
			return nil, err
		}
		if _, err := o.Set(value.StringKey(itoa(j)), vi, o); err != nil {
			return nil, err
		}
	}
	return o, nil
}

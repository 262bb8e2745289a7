package builtins

import (
	"strings"

	"github.com/cwbudde/go-ecma/pkg/evaluator"
	"github.com/cwbudde/go-ecma/pkg/realm"
	"github.com/cwbudde/go-ecma/pkg/value"
)

// StringPlugin installs %String.prototype% and the String constructor
// (§6.1). Primitive strings are wrapped into ordinary objects carrying a
// PrimitiveValue slot lazily
// via Evaluator.WrapPrimitive whenever a member access needs a receiver
// object; thisString here unwraps that back to a Go string.
type StringPlugin struct{}

func (StringPlugin) ID() string          { return "string" }
func (StringPlugin) DependsOn() []string { return []string{"object"} }

func (StringPlugin) Install(ev *evaluator.Evaluator, r *realm.Realm) error {
	objectProto, _ := r.Intrinsic("%Object.prototype%")
	stringProto := value.NewObject(objectProto)
	stringProto.ClassName = "String"
	r.SetIntrinsic("%String.prototype%", stringProto)

	method(ev, stringProto, "toString", 0, strToString)
	method(ev, stringProto, "valueOf", 0, strToString)
	method(ev, stringProto, "charAt", 1, strCharAt)
	method(ev, stringProto, "charCodeAt", 1, strCharCodeAt)
	method(ev, stringProto, "indexOf", 1, strIndexOf)
	method(ev, stringProto, "lastIndexOf", 1, strLastIndexOf)
	method(ev, stringProto, "includes", 1, strIncludes)
	method(ev, stringProto, "startsWith", 1, strStartsWith)
	method(ev, stringProto, "endsWith", 1, strEndsWith)
	method(ev, stringProto, "slice", 2, strSlice)
	method(ev, stringProto, "substring", 2, strSubstring)
	method(ev, stringProto, "toUpperCase", 0, strToUpperCase)
	method(ev, stringProto, "toLowerCase", 0, strToLowerCase)
	method(ev, stringProto, "trim", 0, strTrim)
	method(ev, stringProto, "split", 2, strSplit)
	method(ev, stringProto, "replace", 2, strReplace)
	method(ev, stringProto, "replaceAll", 2, strReplaceAll)
	method(ev, stringProto, "repeat", 1, strRepeat)
	method(ev, stringProto, "padStart", 2, strPadStart)
	method(ev, stringProto, "padEnd", 2, strPadEnd)
	method(ev, stringProto, "concat", 1, strConcat)

	stringCtor := ev.NewNativeConstructor("String", 1, stringCall, stringConstruct)
	stringCtor.DefineValue("prototype", stringProto, false)
	stringProto.DefineValue("constructor", stringCtor, false)
	method(ev, stringCtor, "fromCharCode", 1, strFromCharCode)
	defineGlobal(r, "String", stringCtor)
	return nil
}

func thisString(ev *evaluator.Evaluator, this value.Value) (string, error) {
	switch t := this.(type) {
	case *value.String:
		return t.String(), nil
	case *value.Object:
		if pv, ok := t.Slot("PrimitiveValue"); ok {
			if s, ok := pv.(*value.String); ok {
				return s.String(), nil
			}
		}
	}
	s, err := ev.ToString(this)
	if err != nil {
		return "", err
	}
	return s.String(), nil
}

func stringCall(ev *evaluator.Evaluator, this value.Value, args []value.Value) (value.Value, error) {
	if len(args) == 0 {
		return value.NewString(""), nil
	}
	s, err := ev.ToString(arg(args, 0))
	if err != nil {
		return nil, err
	}
	return s, nil
}

func stringConstruct(ev *evaluator.Evaluator, args []value.Value, _ *value.Object) (value.Value, error) {
	v, err := stringCall(ev, value.Undefined, args)
	if err != nil {
		return nil, err
	}
	return ev.WrapPrimitive(v)
}

func strToString(ev *evaluator.Evaluator, this value.Value, _ []value.Value) (value.Value, error) {
	s, err := thisString(ev, this)
	if err != nil {
		return nil, err
	}
	return value.NewString(s), nil
}

func runeAt(s string, i int) (rune, bool) {
	rs := []rune(s)
	if i < 0 || i >= len(rs) {
		return 0, false
	}
	return rs[i], true
}

func strCharAt(ev *evaluator.Evaluator, this value.Value, args []value.Value) (value.Value, error) {
	s, err := thisString(ev, this)
	if err != nil {
		return nil, err
	}
	i := 0
	if n, ok := arg(args, 0).(value.Number); ok {
		i = int(n)
	}
	r, ok := runeAt(s, i)
	if !ok {
		return value.NewString(""), nil
	}
	return value.NewString(string(r)), nil
}

func strCharCodeAt(ev *evaluator.Evaluator, this value.Value, args []value.Value) (value.Value, error) {
	s, err := thisString(ev, this)
	if err != nil {
		return nil, err
	}
	i := 0
	if n, ok := arg(args, 0).(value.Number); ok {
		i = int(n)
	}
	r, ok := runeAt(s, i)
	if !ok {
		return value.Number(nan()), nil
	}
	return value.Number(float64(r)), nil
}

func strIndexOf(ev *evaluator.Evaluator, this value.Value, args []value.Value) (value.Value, error) {
	s, err := thisString(ev, this)
	if err != nil {
		return nil, err
	}
	sub, err := ev.ToString(arg(args, 0))
	if err != nil {
		return nil, err
	}
	return value.Number(strings.Index(s, sub.String())), nil
}

func strLastIndexOf(ev *evaluator.Evaluator, this value.Value, args []value.Value) (value.Value, error) {
	s, err := thisString(ev, this)
	if err != nil {
		return nil, err
	}
	sub, err := ev.ToString(arg(args, 0))
	if err != nil {
		return nil, err
	}
	return value.Number(strings.LastIndex(s, sub.String())), nil
}

func strIncludes(ev *evaluator.Evaluator, this value.Value, args []value.Value) (value.Value, error) {
	s, err := thisString(ev, this)
	if err != nil {
		return nil, err
	}
	sub, err := ev.ToString(arg(args, 0))
	if err != nil {
		return nil, err
	}
	return value.Boolean(strings.Contains(s, sub.String())), nil
}

func strStartsWith(ev *evaluator.Evaluator, this value.Value, args []value.Value) (value.Value, error) {
	s, err := thisString(ev, this)
	if err != nil {
		return nil, err
	}
	sub, err := ev.ToString(arg(args, 0))
	if err != nil {
		return nil, err
	}
	return value.Boolean(strings.HasPrefix(s, sub.String())), nil
}

func strEndsWith(ev *evaluator.Evaluator, this value.Value, args []value.Value) (value.Value, error) {
	s, err := thisString(ev, this)
	if err != nil {
		return nil, err
	}
	sub, err := ev.ToString(arg(args, 0))
	if err != nil {
		return nil, err
	}
	return value.Boolean(strings.HasSuffix(s, sub.String())), nil
}

func strSlice(ev *evaluator.Evaluator, this value.Value, args []value.Value) (value.Value, error) {
	s, err := thisString(ev, this)
	if err != nil {
		return nil, err
	}
	rs := []rune(s)
	n := len(rs)
	start, end := 0, n
	if num, ok := arg(args, 0).(value.Number); ok {
		start = normalizeIndex(int(num), n)
	}
	if len(args) > 1 && arg(args, 1) != value.Undefined {
		if num, ok := arg(args, 1).(value.Number); ok {
			end = normalizeIndex(int(num), n)
		}
	}
	if start > end {
		return value.NewString(""), nil
	}
	return value.NewString(string(rs[start:end])), nil
}

func strSubstring(ev *evaluator.Evaluator, this value.Value, args []value.Value) (value.Value, error) {
	s, err := thisString(ev, this)
	if err != nil {
		return nil, err
	}
	rs := []rune(s)
	n := len(rs)
	start, end := 0, n
	if num, ok := arg(args, 0).(value.Number); ok {
		start = clamp(int(num), 0, n)
	}
	if len(args) > 1 && arg(args, 1) != value.Undefined {
		if num, ok := arg(args, 1).(value.Number); ok {
			end = clamp(int(num), 0, n)
		}
	}
	if start > end {
		start, end = end, start
	}
	return value.NewString(string(rs[start:end])), nil
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func strToUpperCase(ev *evaluator.Evaluator, this value.Value, _ []value.Value) (value.Value, error) {
	s, err := thisString(ev, this)
	if err != nil {
		return nil, err
	}
	return value.NewString(strings.ToUpper(s)), nil
}

func strToLowerCase(ev *evaluator.Evaluator, this value.Value, _ []value.Value) (value.Value, error) {
	s, err := thisString(ev, this)
	if err != nil {
		return nil, err
	}
	return value.NewString(strings.ToLower(s)), nil
}

func strTrim(ev *evaluator.Evaluator, this value.Value, _ []value.Value) (value.Value, error) {
	s, err := thisString(ev, this)
	if err != nil {
		return nil, err
	}
	return value.NewString(strings.TrimSpace(s)), nil
}

func strSplit(ev *evaluator.Evaluator, this value.Value, args []value.Value) (value.Value, error) {
	s, err := thisString(ev, this)
	if err != nil {
		return nil, err
	}
	if len(args) == 0 || arg(args, 0) == value.Undefined {
		return value.NewArray(arrProtoValue(ev), []value.Value{value.NewString(s)}), nil
	}
	sep, err := ev.ToString(arg(args, 0))
	if err != nil {
		return nil, err
	}
	var parts []string
	if sep.String() == "" {
		for _, r := range s {
			parts = append(parts, string(r))
		}
	} else {
		parts = strings.Split(s, sep.String())
	}
	out := make([]value.Value, len(parts))
	for i, p := range parts {
		out[i] = value.NewString(p)
	}
	return value.NewArray(arrProtoValue(ev), out), nil
}

func strReplace(ev *evaluator.Evaluator, this value.Value, args []value.Value) (value.Value, error) {
	return strReplaceImpl(ev, this, args, 1)
}

func strReplaceAll(ev *evaluator.Evaluator, this value.Value, args []value.Value) (value.Value, error) {
	return strReplaceImpl(ev, this, args, -1)
}

func strReplaceImpl(ev *evaluator.Evaluator, this value.Value, args []value.Value, count int) (value.Value, error) {
	s, err := thisString(ev, this)
	if err != nil {
		return nil, err
	}
	pat, err := ev.ToString(arg(args, 0))
	if err != nil {
		return nil, err
	}
	if fn, ok := arg(args, 1).(*value.Object); ok && fn.IsCallable() {
		idx := strings.Index(s, pat.String())
		if idx < 0 {
			return value.NewString(s), nil
		}
		rep, err := fn.CallAsFunction(value.Undefined, []value.Value{value.NewString(pat.String()), value.Number(idx), value.NewString(s)})
		if err != nil {
			return nil, err
		}
		repStr, err := ev.ToString(rep)
		if err != nil {
			return nil, err
		}
		if count == -1 {
			return value.NewString(strings.ReplaceAll(s, pat.String(), repStr.String())), nil
		}
		return value.NewString(s[:idx] + repStr.String() + s[idx+len(pat.String()):]), nil
	}
	rep, err := ev.ToString(arg(args, 1))
	if err != nil {
		return nil, err
	}
	return value.NewString(strings.Replace(s, pat.String(), rep.String(), count)), nil
}

func strRepeat(ev *evaluator.Evaluator, this value.Value, args []value.Value) (value.Value, error) {
	s, err := thisString(ev, this)
	if err != nil {
		return nil, err
	}
	n := 0
	if num, ok := arg(args, 0).(value.Number); ok {
		n = int(num)
	}
	if n < 0 {
		return nil, &evaluator.ThrownError{Value: value.NewString("RangeError: Invalid count value")}
	}
	return value.NewString(strings.Repeat(s, n)), nil
}

func strPadStart(ev *evaluator.Evaluator, this value.Value, args []value.Value) (value.Value, error) {
	return strPad(ev, this, args, true)
}

func strPadEnd(ev *evaluator.Evaluator, this value.Value, args []value.Value) (value.Value, error) {
	return strPad(ev, this, args, false)
}

func strPad(ev *evaluator.Evaluator, this value.Value, args []value.Value, start bool) (value.Value, error) {
	s, err := thisString(ev, this)
	if err != nil {
		return nil, err
	}
	target := 0
	if n, ok := arg(args, 0).(value.Number); ok {
		target = int(n)
	}
	pad := " "
	if len(args) > 1 && arg(args, 1) != value.Undefined {
		p, err := ev.ToString(arg(args, 1))
		if err != nil {
			return nil, err
		}
		pad = p.String()
	}
	cur := len([]rune(s))
	if cur >= target || pad == "" {
		return value.NewString(s), nil
	}
	need := target - cur
	var b strings.Builder
	for b.Len() < need {
		b.WriteString(pad)
	}
	fill := string([]rune(b.String())[:need])
	if start {
		return value.NewString(fill + s), nil
	}
	return value.NewString(s + fill), nil
}

func strConcat(ev *evaluator.Evaluator, this value.Value, args []value.Value) (value.Value, error) {
	s, err := thisString(ev, this)
	if err != nil {
		return nil, err
	}
	var b strings.Builder
	b.WriteString(s)
	for _, a := range args {
		as, err := ev.ToString(a)
		if err != nil {
			return nil, err
		}
		b.WriteString(as.String())
	}
	return value.NewString(b.String()), nil
}

func strFromCharCode(ev *evaluator.Evaluator, _ value.Value, args []value.Value) (value.Value, error) {
	var b strings.Builder
	for _, a := range args {
		n, err := ev.ToNumber(a)
		if err != nil {
			return nil, err
		}
		b.WriteRune(rune(int(n)))
	}
	return value.NewString(b.String()), nil
}

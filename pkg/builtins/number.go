package builtins

import (
	"math"
	"strconv"

	"github.com/cwbudde/go-ecma/pkg/evaluator"
	"github.com/cwbudde/go-ecma/pkg/realm"
	"github.com/cwbudde/go-ecma/pkg/value"
)

// NumberPlugin installs %Number.prototype%, the Number constructor, and
// its static parse/classification helpers (§6.2).
type NumberPlugin struct{}

func (NumberPlugin) ID() string          { return "number" }
func (NumberPlugin) DependsOn() []string { return []string{"object"} }

func (NumberPlugin) Install(ev *evaluator.Evaluator, r *realm.Realm) error {
	objectProto, _ := r.Intrinsic("%Object.prototype%")
	numberProto := value.NewObject(objectProto)
	numberProto.ClassName = "Number"
	r.SetIntrinsic("%Number.prototype%", numberProto)

	method(ev, numberProto, "toString", 1, numToString)
	method(ev, numberProto, "valueOf", 0, numValueOf)
	method(ev, numberProto, "toFixed", 1, numToFixed)

	numberCtor := ev.NewNativeConstructor("Number", 1, numberCall, numberConstruct)
	numberCtor.DefineValue("prototype", numberProto, false)
	numberProto.DefineValue("constructor", numberCtor, false)
	numberCtor.DefineValue("MAX_SAFE_INTEGER", value.Number(9007199254740991), false)
	numberCtor.DefineValue("MIN_SAFE_INTEGER", value.Number(-9007199254740991), false)
	numberCtor.DefineValue("MAX_VALUE", value.Number(math.MaxFloat64), false)
	numberCtor.DefineValue("EPSILON", value.Number(2.220446049250313e-16), false)
	numberCtor.DefineValue("POSITIVE_INFINITY", value.Number(math.Inf(1)), false)
	numberCtor.DefineValue("NEGATIVE_INFINITY", value.Number(math.Inf(-1)), false)
	numberCtor.DefineValue("NaN", value.Number(nan()), false)
	method(ev, numberCtor, "isInteger", 1, numIsInteger)
	method(ev, numberCtor, "isFinite", 1, numIsFinite)
	method(ev, numberCtor, "isNaN", 1, numIsNaN)
	method(ev, numberCtor, "parseFloat", 1, numParseFloat)
	method(ev, numberCtor, "parseInt", 2, numParseInt)
	defineGlobal(r, "Number", numberCtor)

	defineGlobal(r, "parseFloat", ev.NewNativeFunction("parseFloat", 1, numParseFloat))
	defineGlobal(r, "parseInt", ev.NewNativeFunction("parseInt", 2, numParseInt))
	defineGlobal(r, "isNaN", ev.NewNativeFunction("isNaN", 1, numIsNaN))
	defineGlobal(r, "isFinite", ev.NewNativeFunction("isFinite", 1, numIsFinite))
	defineGlobal(r, "NaN", value.Number(nan()))
	defineGlobal(r, "Infinity", value.Number(math.Inf(1)))
	defineGlobal(r, "undefined", value.Undefined)
	return nil
}

func thisNumber(ev *evaluator.Evaluator, this value.Value) (float64, error) {
	switch t := this.(type) {
	case value.Number:
		return float64(t), nil
	case *value.Object:
		if pv, ok := t.Slot("PrimitiveValue"); ok {
			if n, ok := pv.(value.Number); ok {
				return float64(n), nil
			}
		}
	}
	n, err := ev.ToNumber(this)
	return float64(n), err
}

func numberCall(ev *evaluator.Evaluator, this value.Value, args []value.Value) (value.Value, error) {
	if len(args) == 0 {
		return value.Number(0), nil
	}
	return ev.ToNumber(arg(args, 0))
}

func numberConstruct(ev *evaluator.Evaluator, args []value.Value, _ *value.Object) (value.Value, error) {
	v, err := numberCall(ev, value.Undefined, args)
	if err != nil {
		return nil, err
	}
	return ev.WrapPrimitive(v)
}

func numToString(ev *evaluator.Evaluator, this value.Value, args []value.Value) (value.Value, error) {
	n, err := thisNumber(ev, this)
	if err != nil {
		return nil, err
	}
	radix := 10
	if r, ok := arg(args, 0).(value.Number); ok {
		radix = int(r)
	}
	if radix == 10 {
		return value.NewString(strconv.FormatFloat(n, 'g', -1, 64)), nil
	}
	return value.NewString(strconv.FormatInt(int64(n), radix)), nil
}

func numValueOf(ev *evaluator.Evaluator, this value.Value, _ []value.Value) (value.Value, error) {
	n, err := thisNumber(ev, this)
	if err != nil {
		return nil, err
	}
	return value.Number(n), nil
}

func numToFixed(ev *evaluator.Evaluator, this value.Value, args []value.Value) (value.Value, error) {
	n, err := thisNumber(ev, this)
	if err != nil {
		return nil, err
	}
	digits := 0
	if d, ok := arg(args, 0).(value.Number); ok {
		digits = int(d)
	}
	return value.NewString(strconv.FormatFloat(n, 'f', digits, 64)), nil
}

func numIsInteger(_ *evaluator.Evaluator, _ value.Value, args []value.Value) (value.Value, error) {
	n, ok := arg(args, 0).(value.Number)
	if !ok {
		return value.Boolean(false), nil
	}
	f := float64(n)
	return value.Boolean(!math.IsNaN(f) && !math.IsInf(f, 0) && f == math.Trunc(f)), nil
}

func numIsFinite(_ *evaluator.Evaluator, _ value.Value, args []value.Value) (value.Value, error) {
	n, ok := arg(args, 0).(value.Number)
	if !ok {
		return value.Boolean(false), nil
	}
	f := float64(n)
	return value.Boolean(!math.IsNaN(f) && !math.IsInf(f, 0)), nil
}

func numIsNaN(ev *evaluator.Evaluator, _ value.Value, args []value.Value) (value.Value, error) {
	n, err := ev.ToNumber(arg(args, 0))
	if err != nil {
		return value.Boolean(true), nil
	}
	return value.Boolean(math.IsNaN(float64(n))), nil
}

func numParseFloat(ev *evaluator.Evaluator, _ value.Value, args []value.Value) (value.Value, error) {
	s, err := ev.ToString(arg(args, 0))
	if err != nil {
		return nil, err
	}
	str := trimLeadingSpace(s.String())
	end := 0
	for end < len(str) && isFloatChar(str, end) {
		end++
	}
	if end == 0 {
		return value.Number(nan()), nil
	}
	f, err2 := strconv.ParseFloat(str[:end], 64)
	if err2 != nil {
		return value.Number(nan()), nil
	}
	return value.Number(f), nil
}

func isFloatChar(s string, i int) bool {
	c := s[i]
	return c == '+' || c == '-' || c == '.' || c == 'e' || c == 'E' || (c >= '0' && c <= '9')
}

func trimLeadingSpace(s string) string {
	i := 0
	for i < len(s) && (s[i] == ' ' || s[i] == '\t' || s[i] == '\n' || s[i] == '\r') {
		i++
	}
	return s[i:]
}

func numParseInt(ev *evaluator.Evaluator, _ value.Value, args []value.Value) (value.Value, error) {
	s, err := ev.ToString(arg(args, 0))
	if err != nil {
		return nil, err
	}
	str := trimLeadingSpace(s.String())
	radix := 10
	if r, ok := arg(args, 1).(value.Number); ok && int(r) != 0 {
		radix = int(r)
	}
	neg := false
	if len(str) > 0 && (str[0] == '+' || str[0] == '-') {
		neg = str[0] == '-'
		str = str[1:]
	}
	if radix == 16 && len(str) > 1 && str[0] == '0' && (str[1] == 'x' || str[1] == 'X') {
		str = str[2:]
	}
	end := 0
	for end < len(str) && isRadixDigit(str[end], radix) {
		end++
	}
	if end == 0 {
		return value.Number(nan()), nil
	}
	n, err2 := strconv.ParseInt(str[:end], radix, 64)
	if err2 != nil {
		return value.Number(nan()), nil
	}
	if neg {
		n = -n
	}
	return value.Number(float64(n)), nil
}

func isRadixDigit(c byte, radix int) bool {
	var v int
	switch {
	case c >= '0' && c <= '9':
		v = int(c - '0')
	case c >= 'a' && c <= 'z':
		v = int(c-'a') + 10
	case c >= 'A' && c <= 'Z':
		v = int(c-'A') + 10
	default:
		return false
	}
	return v < radix
}

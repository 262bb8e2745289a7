// Package ops implements the abstract operations layer (§4 Component
// Design, L3): type coercion (ToPrimitive/ToNumber/ToString/...), property
// operations, equality, and the iteration protocol. These sit above
// pkg/value and pkg/environment but below pkg/evaluator, which drives them
// from AST node handlers.
package ops

import (
	"math"
	"math/big"
	"strconv"

	"github.com/cwbudde/go-ecma/pkg/value"
)

// Hint selects which conversion ToPrimitive prefers when an object has
// neither a plain default nor a @@toPrimitive method honoured.
type Hint int

const (
	HintDefault Hint = iota
	HintNumber
	HintString
)

// ToPrimitive implements the ToPrimitive abstract operation (§3.1, §4.4):
// objects are unwrapped via @@toPrimitive (toPrimitiveFn, supplied by the
// evaluator/realm so this package need not import it) or, failing that,
// valueOf/toString in hint order.
func ToPrimitive(v value.Value, hint Hint, toPrimitiveFn func(o *value.Object, hint string) (value.Value, bool, error)) (value.Value, error) {
	obj, ok := v.(*value.Object)
	if !ok {
		return v, nil
	}
	if toPrimitiveFn != nil {
		hintStr := "default"
		switch hint {
		case HintNumber:
			hintStr = "number"
		case HintString:
			hintStr = "string"
		}
		if result, handled, err := toPrimitiveFn(obj, hintStr); handled {
			return result, err
		}
	}
	methods := []string{"valueOf", "toString"}
	if hint == HintString {
		methods = []string{"toString", "valueOf"}
	}
	for _, name := range methods {
		m, err := obj.Get(value.StringKey(name), obj)
		if err != nil {
			return nil, err
		}
		fn, ok := m.(*value.Object)
		if !ok || !fn.IsCallable() {
			continue
		}
		res, err := fn.CallAsFunction(obj, nil)
		if err != nil {
			return nil, err
		}
		if _, isObj := res.(*value.Object); !isObj {
			return res, nil
		}
	}
	return nil, ErrCannotConvertToPrimitive
}

// ToBoolean implements ToBoolean (§3.1): delegates to value.ToBoolean.
func ToBoolean(v value.Value) bool { return value.ToBoolean(v) }

// ToNumber implements ToNumber (§3.1, §8 round-trip property). Objects must
// already have been reduced via ToPrimitive by the caller (ToNumeric below
// does this for the common case).
func ToNumber(v value.Value) (value.Number, error) {
	switch t := v.(type) {
	case value.Number:
		return t, nil
	case value.Boolean:
		if bool(t) {
			return value.Number(1), nil
		}
		return value.Number(0), nil
	case *value.String:
		return stringToNumber(t), nil
	case *value.BigInt:
		return 0, ErrCannotConvertBigIntToNumber
	default:
		if value.IsNullOrUndefined(v) {
			if v == value.Null {
				return value.Number(0), nil
			}
			return value.Number(math.NaN()), nil
		}
		return 0, ErrCannotConvertToPrimitive
	}
}

// ToNumeric implements ToNumeric (§4.4): like ToNumber but passes BigInt
// through unchanged, used by arithmetic operators before the mixed-type
// check (ApplyStringOrNumericBinaryOperator).
func ToNumeric(v value.Value, toPrimitiveFn func(o *value.Object, hint string) (value.Value, bool, error)) (value.Value, error) {
	prim, err := ToPrimitive(v, HintNumber, toPrimitiveFn)
	if err != nil {
		return nil, err
	}
	if bi, ok := prim.(*value.BigInt); ok {
		return bi, nil
	}
	n, err := ToNumber(prim)
	if err != nil {
		return nil, err
	}
	return n, nil
}

func stringToNumber(s *value.String) value.Number {
	str := s.String()
	trimmed := trimJSWhitespace(str)
	if trimmed == "" {
		return value.Number(0)
	}
	if trimmed == "Infinity" || trimmed == "+Infinity" {
		return value.Number(math.Inf(1))
	}
	if trimmed == "-Infinity" {
		return value.Number(math.Inf(-1))
	}
	f, err := strconv.ParseFloat(trimmed, 64)
	if err != nil {
		return value.Number(math.NaN())
	}
	return value.Number(f)
}

func trimJSWhitespace(s string) string {
	start, end := 0, len(s)
	isWS := func(b byte) bool {
		return b == ' ' || b == '\t' || b == '\n' || b == '\r' || b == '\v' || b == '\f'
	}
	for start < end && isWS(s[start]) {
		start++
	}
	for end > start && isWS(s[end-1]) {
		end--
	}
	return s[start:end]
}

// ToString implements ToString (§3.1, §8 round-trip property).
func ToString(v value.Value, toPrimitiveFn func(o *value.Object, hint string) (value.Value, bool, error)) (*value.String, error) {
	switch t := v.(type) {
	case *value.String:
		return t, nil
	case value.Number:
		return value.NewString(t.GoString()), nil
	case value.Boolean:
		if bool(t) {
			return value.NewString("true"), nil
		}
		return value.NewString("false"), nil
	case *value.BigInt:
		return value.NewString(t.V.String()), nil
	case *value.Symbol:
		return nil, ErrCannotConvertSymbolToString
	default:
		if value.IsNullOrUndefined(v) {
			if v == value.Null {
				return value.NewString("null"), nil
			}
			return value.NewString("undefined"), nil
		}
		prim, err := ToPrimitive(v, HintString, toPrimitiveFn)
		if err != nil {
			return nil, err
		}
		return ToString(prim, toPrimitiveFn)
	}
}

// ToBigInt implements ToBigInt (§3.1): numbers convert only when
// integral, strings are parsed, booleans map to 0/1.
func ToBigInt(v value.Value, toPrimitiveFn func(o *value.Object, hint string) (value.Value, bool, error)) (*value.BigInt, error) {
	prim, err := ToPrimitive(v, HintNumber, toPrimitiveFn)
	if err != nil {
		return nil, err
	}
	switch t := prim.(type) {
	case *value.BigInt:
		return t, nil
	case value.Boolean:
		if bool(t) {
			return value.NewBigInt(big.NewInt(1)), nil
		}
		return value.NewBigInt(big.NewInt(0)), nil
	case *value.String:
		bi, ok := new(big.Int).SetString(trimJSWhitespace(t.String()), 10)
		if !ok {
			return nil, ErrSyntaxBigInt
		}
		return value.NewBigInt(bi), nil
	default:
		return nil, ErrCannotConvertToBigInt
	}
}

// ToPropertyKey implements ToPropertyKey (§4.4 MemberExpression computed
// key): symbols pass through as symbol keys, everything else stringifies.
func ToPropertyKey(v value.Value, toPrimitiveFn func(o *value.Object, hint string) (value.Value, bool, error)) (value.PropertyKey, error) {
	prim, err := ToPrimitive(v, HintString, toPrimitiveFn)
	if err != nil {
		return value.PropertyKey{}, err
	}
	if sym, ok := prim.(*value.Symbol); ok {
		return value.SymbolKey(sym), nil
	}
	s, err := ToString(prim, toPrimitiveFn)
	if err != nil {
		return value.PropertyKey{}, err
	}
	return value.StringKey(s.String()), nil
}

// ToObject implements ToObject (§4.1 GetValue/PutValue base coercion):
// wraps primitives in their exotic wrapper object via the supplied realm
// hook, or fails for null/undefined.
func ToObject(v value.Value, wrap func(value.Value) (*value.Object, error)) (*value.Object, error) {
	if obj, ok := v.(*value.Object); ok {
		return obj, nil
	}
	if value.IsNullOrUndefined(v) {
		return nil, ErrCannotConvertToObject
	}
	return wrap(v)
}

// ToInt32/ToUint32 implement the numeric-index coercions used by array
// length synchronisation and bitwise operators (§3.2 Array exotic).
func ToInt32(n value.Number) int32 {
	f := float64(n)
	if math.IsNaN(f) || math.IsInf(f, 0) || f == 0 {
		return 0
	}
	m := math.Mod(math.Trunc(f), 4294967296)
	if m < 0 {
		m += 4294967296
	}
	if m >= 2147483648 {
		m -= 4294967296
	}
	return int32(m)
}

func ToUint32(n value.Number) uint32 {
	f := float64(n)
	if math.IsNaN(f) || math.IsInf(f, 0) || f == 0 {
		return 0
	}
	m := math.Mod(math.Trunc(f), 4294967296)
	if m < 0 {
		m += 4294967296
	}
	return uint32(m)
}

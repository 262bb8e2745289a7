package ops

import (
	"math"
	"math/big"

	"github.com/cwbudde/go-ecma/pkg/value"
)

// IsStrictlyEqual implements the === algorithm (§8 testable property: ===
// returns false for two NaNs, unlike SameValue).
func IsStrictlyEqual(a, b value.Value) bool {
	if a.Kind() != b.Kind() {
		return false
	}
	switch av := a.(type) {
	case value.Number:
		bv := b.(value.Number)
		return float64(av) == float64(bv)
	case *value.BigInt:
		bv := b.(*value.BigInt)
		return av.V.Cmp(bv.V) == 0
	default:
		return value.SameValueZero(a, b)
	}
}

// IsLooselyEqual implements the == algorithm (§3.1), including cross-type
// coercions between number/string/boolean/bigint and the object ToPrimitive
// fallback.
func IsLooselyEqual(a, b value.Value, toPrimitiveFn func(o *value.Object, hint string) (value.Value, bool, error)) (bool, error) {
	if a.Kind() == b.Kind() {
		return IsStrictlyEqual(a, b), nil
	}
	if value.IsNullOrUndefined(a) && value.IsNullOrUndefined(b) {
		return true, nil
	}
	if value.IsNullOrUndefined(a) || value.IsNullOrUndefined(b) {
		return false, nil
	}
	an, aIsNum := a.(value.Number)
	bs, bIsStr := b.(*value.String)
	if aIsNum && bIsStr {
		bn, err := ToNumber(bs)
		if err != nil {
			return false, err
		}
		return float64(an) == float64(bn), nil
	}
	as, aIsStr := a.(*value.String)
	bn2, bIsNum := b.(value.Number)
	if aIsStr && bIsNum {
		an2, err := ToNumber(as)
		if err != nil {
			return false, err
		}
		return float64(an2) == float64(bn2), nil
	}
	if ab, ok := a.(value.Boolean); ok {
		an3, _ := ToNumber(ab)
		return IsLooselyEqual(an3, b, toPrimitiveFn)
	}
	if bb, ok := b.(value.Boolean); ok {
		bn3, _ := ToNumber(bb)
		return IsLooselyEqual(a, bn3, toPrimitiveFn)
	}
	if abi, ok := a.(*value.BigInt); ok {
		switch bt := b.(type) {
		case *value.String:
			bbi, err := ToBigInt(bt, toPrimitiveFn)
			if err != nil {
				return false, nil
			}
			return abi.V.Cmp(bbi.V) == 0, nil
		case value.Number:
			return bigIntEqualsNumber(abi, bt), nil
		}
	}
	if bbi, ok := b.(*value.BigInt); ok {
		switch at := a.(type) {
		case *value.String:
			abi, err := ToBigInt(at, toPrimitiveFn)
			if err != nil {
				return false, nil
			}
			return abi.V.Cmp(bbi.V) == 0, nil
		case value.Number:
			return bigIntEqualsNumber(bbi, at), nil
		}
	}
	if _, ok := a.(*value.Object); ok {
		if !value.IsNullOrUndefined(b) {
			if _, bIsObj := b.(*value.Object); !bIsObj {
				prim, err := ToPrimitive(a, HintDefault, toPrimitiveFn)
				if err != nil {
					return false, err
				}
				return IsLooselyEqual(prim, b, toPrimitiveFn)
			}
		}
	}
	if _, ok := b.(*value.Object); ok {
		if _, aIsObj := a.(*value.Object); !aIsObj {
			prim, err := ToPrimitive(b, HintDefault, toPrimitiveFn)
			if err != nil {
				return false, err
			}
			return IsLooselyEqual(a, prim, toPrimitiveFn)
		}
	}
	return false, nil
}

func bigIntEqualsNumber(bi *value.BigInt, n value.Number) bool {
	f := float64(n)
	if math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
		return false
	}
	return bi.V.Cmp(big.NewInt(int64(f))) == 0
}

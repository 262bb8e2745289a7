package value

import "math"

// SameValue implements the SameValue algorithm (§8 Invariants):
// SameValue(NaN, NaN) is true; SameValue(+0, -0) is false.
func SameValue(a, b Value) bool {
	if a.Kind() != b.Kind() {
		return false
	}
	switch av := a.(type) {
	case undefinedValue, nullValue:
		return true
	case Boolean:
		return av == b.(Boolean)
	case *String:
		return equalUnits(av.units, b.(*String).units)
	case *Symbol:
		return av == b.(*Symbol)
	case Number:
		bv := b.(Number)
		if math.IsNaN(float64(av)) && math.IsNaN(float64(bv)) {
			return true
		}
		if av == 0 && bv == 0 {
			return math.Signbit(float64(av)) == math.Signbit(float64(bv))
		}
		return av == bv
	case *BigInt:
		return av.V.Cmp(b.(*BigInt).V) == 0
	case *Object:
		return av == b.(*Object)
	}
	return false
}

// SameValueZero is SameValue except +0 and -0 compare equal; used by
// Array.prototype.includes and Map/Set key comparison.
func SameValueZero(a, b Value) bool {
	if an, ok := a.(Number); ok {
		if bn, ok := b.(Number); ok {
			if math.IsNaN(float64(an)) && math.IsNaN(float64(bn)) {
				return true
			}
			return an == bn
		}
	}
	return SameValue(a, b)
}

func equalUnits(a, b []uint16) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// IsNullOrUndefined reports whether v is one of the two nullish values,
// used throughout the evaluator for `?.` short-circuiting and `??`.
func IsNullOrUndefined(v Value) bool {
	return v.Kind() == KindUndefined || v.Kind() == KindNull
}

// ToBoolean implements the ToBoolean abstract operation (truthiness).
func ToBoolean(v Value) bool {
	switch x := v.(type) {
	case undefinedValue, nullValue:
		return false
	case Boolean:
		return bool(x)
	case Number:
		return !x.IsNaN() && x != 0
	case *BigInt:
		return x.V.Sign() != 0
	case *String:
		return x.Length() != 0
	default:
		return true // symbols and objects are always truthy
	}
}

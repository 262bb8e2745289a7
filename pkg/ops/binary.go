package ops

import (
	"math"
	"math/big"

	"github.com/cwbudde/go-ecma/pkg/value"
)

// ToPrimitiveFn abbreviates the callback threaded through every coercion
// entry point; the evaluator supplies the real @@toPrimitive/valueOf
// dispatch since it alone can invoke user code through the call machinery.
type ToPrimitiveFn = func(o *value.Object, hint string) (value.Value, bool, error)

// ApplyStringOrNumericBinaryOperator implements the shared arithmetic core
// of BinaryExpression (§4.4): string concatenation for "+" when either
// operand is a string after ToPrimitive, otherwise ToNumeric on both sides
// with a BigInt/Number mixing check, then the named operator.
func ApplyStringOrNumericBinaryOperator(op string, left, right value.Value, toPrim ToPrimitiveFn) (value.Value, error) {
	if op == "+" {
		lp, err := ToPrimitive(left, HintDefault, toPrim)
		if err != nil {
			return nil, err
		}
		rp, err := ToPrimitive(right, HintDefault, toPrim)
		if err != nil {
			return nil, err
		}
		if _, ok := lp.(*value.String); ok {
			return concatString(lp, rp, toPrim)
		}
		if _, ok := rp.(*value.String); ok {
			return concatString(lp, rp, toPrim)
		}
		left, right = lp, rp
	}
	ln, err := ToNumeric(left, toPrim)
	if err != nil {
		return nil, err
	}
	rn, err := ToNumeric(right, toPrim)
	if err != nil {
		return nil, err
	}
	lbi, lIsBig := ln.(*value.BigInt)
	rbi, rIsBig := rn.(*value.BigInt)
	if lIsBig != rIsBig {
		return nil, ErrMixedBigIntOperand
	}
	if lIsBig {
		return bigIntOp(op, lbi, rbi)
	}
	return numberOp(op, ln.(value.Number), rn.(value.Number))
}

func concatString(lp, rp value.Value, toPrim ToPrimitiveFn) (value.Value, error) {
	ls, err := ToString(lp, toPrim)
	if err != nil {
		return nil, err
	}
	rs, err := ToString(rp, toPrim)
	if err != nil {
		return nil, err
	}
	return value.NewString(ls.String() + rs.String()), nil
}

func numberOp(op string, l, r value.Number) (value.Value, error) {
	lf, rf := float64(l), float64(r)
	switch op {
	case "-":
		return value.Number(lf - rf), nil
	case "*":
		return value.Number(lf * rf), nil
	case "/":
		return value.Number(lf / rf), nil
	case "%":
		return value.Number(math.Mod(lf, rf)), nil
	case "**":
		return value.Number(math.Pow(lf, rf)), nil
	case "&":
		return value.Number(float64(ToInt32(l) & ToInt32(r))), nil
	case "|":
		return value.Number(float64(ToInt32(l) | ToInt32(r))), nil
	case "^":
		return value.Number(float64(ToInt32(l) ^ ToInt32(r))), nil
	case "<<":
		return value.Number(float64(ToInt32(l) << (ToUint32(r) & 31))), nil
	case ">>":
		return value.Number(float64(ToInt32(l) >> (ToUint32(r) & 31))), nil
	case ">>>":
		return value.Number(float64(ToUint32(l) >> (ToUint32(r) & 31))), nil
	default:
		return nil, ErrNotCallable
	}
}

func bigIntOp(op string, l, r *value.BigInt) (value.Value, error) {
	z := new(big.Int)
	switch op {
	case "-":
		return value.NewBigInt(z.Sub(l.V, r.V)), nil
	case "*":
		return value.NewBigInt(z.Mul(l.V, r.V)), nil
	case "/":
		if r.V.Sign() == 0 {
			return nil, ErrRangeDivideByZero
		}
		return value.NewBigInt(z.Quo(l.V, r.V)), nil
	case "%":
		if r.V.Sign() == 0 {
			return nil, ErrRangeDivideByZero
		}
		return value.NewBigInt(z.Rem(l.V, r.V)), nil
	case "**":
		return value.NewBigInt(z.Exp(l.V, r.V, nil)), nil
	case "&":
		return value.NewBigInt(z.And(l.V, r.V)), nil
	case "|":
		return value.NewBigInt(z.Or(l.V, r.V)), nil
	case "^":
		return value.NewBigInt(z.Xor(l.V, r.V)), nil
	case "<<":
		return value.NewBigInt(z.Lsh(l.V, uint(r.V.Int64()))), nil
	case ">>":
		return value.NewBigInt(z.Rsh(l.V, uint(r.V.Int64()))), nil
	default:
		return nil, ErrNotCallable
	}
}

// RelationalResult is the tri-state outcome of IsLessThan (§3.1): operand
// comparisons against NaN yield Undefined, per spec.
type RelationalResult int

const (
	RelFalse RelationalResult = iota
	RelTrue
	RelUndefined
)

// IsLessThan implements the Abstract Relational Comparison (<, <=, >, >=
// all reduce to this with operand swaps/negation at the evaluator layer).
func IsLessThan(left, right value.Value, leftFirst bool, toPrim ToPrimitiveFn) (RelationalResult, error) {
	var px, py value.Value
	var err error
	if leftFirst {
		px, err = ToPrimitive(left, HintNumber, toPrim)
		if err != nil {
			return RelFalse, err
		}
		py, err = ToPrimitive(right, HintNumber, toPrim)
	} else {
		py, err = ToPrimitive(right, HintNumber, toPrim)
		if err != nil {
			return RelFalse, err
		}
		px, err = ToPrimitive(left, HintNumber, toPrim)
	}
	if err != nil {
		return RelFalse, err
	}
	sx, xIsStr := px.(*value.String)
	sy, yIsStr := py.(*value.String)
	if xIsStr && yIsStr {
		if sx.String() < sy.String() {
			return RelTrue, nil
		}
		return RelFalse, nil
	}
	if bix, ok := px.(*value.BigInt); ok {
		if bs, ok := py.(*value.String); ok {
			biy, err := ToBigInt(bs, toPrim)
			if err != nil {
				return RelUndefined, nil
			}
			return cmpToRel(bix.V.Cmp(biy.V)), nil
		}
	}
	nx, err := ToNumeric(px, toPrim)
	if err != nil {
		return RelFalse, err
	}
	ny, err := ToNumeric(py, toPrim)
	if err != nil {
		return RelFalse, err
	}
	return compareNumeric(nx, ny)
}

func compareNumeric(nx, ny value.Value) (RelationalResult, error) {
	bix, xBig := nx.(*value.BigInt)
	biy, yBig := ny.(*value.BigInt)
	if xBig && yBig {
		return cmpToRel(bix.V.Cmp(biy.V)), nil
	}
	if xBig != yBig {
		return RelUndefined, ErrMixedBigIntOperand
	}
	fx, fy := float64(nx.(value.Number)), float64(ny.(value.Number))
	if math.IsNaN(fx) || math.IsNaN(fy) {
		return RelUndefined, nil
	}
	if fx < fy {
		return RelTrue, nil
	}
	return RelFalse, nil
}

func cmpToRel(c int) RelationalResult {
	if c < 0 {
		return RelTrue
	}
	return RelFalse
}

// OrdinaryHasInstance implements OrdinaryHasInstance (§4.4 instanceof
// fallback when @@hasInstance is absent): walks the object's prototype
// chain comparing against C's "prototype" property.
func OrdinaryHasInstance(c *value.Object, o value.Value) (bool, error) {
	if !c.IsCallable() {
		return false, ErrNotCallable
	}
	if bt, ok := c.Slot("BoundTargetFunction"); ok {
		target := bt.(*value.Object)
		return OrdinaryHasInstance(target, o)
	}
	obj, ok := o.(*value.Object)
	if !ok {
		return false, nil
	}
	protoVal, err := c.Get(value.StringKey("prototype"), c)
	if err != nil {
		return false, err
	}
	proto, ok := protoVal.(*value.Object)
	if !ok {
		return false, ErrNotCallable
	}
	cur := obj.GetPrototypeOf()
	for {
		curObj, ok := cur.(*value.Object)
		if !ok {
			return false, nil
		}
		if curObj == proto {
			return true, nil
		}
		cur = curObj.GetPrototypeOf()
	}
}

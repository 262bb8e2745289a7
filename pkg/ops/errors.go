package ops

import "errors"

// Sentinel errors for abstract-operation failures (§7); the evaluator layer
// maps these to the correctly-named Error intrinsic (TypeError, RangeError,
// SyntaxError, ...) when building a throw completion.
var (
	ErrCannotConvertToPrimitive    = errors.New("ops: cannot convert to primitive value")
	ErrCannotConvertSymbolToString = errors.New("ops: cannot convert a Symbol value to a string")
	ErrCannotConvertBigIntToNumber = errors.New("ops: cannot convert a BigInt value to a number")
	ErrCannotConvertToBigInt       = errors.New("ops: cannot convert value to a BigInt")
	ErrCannotConvertToObject       = errors.New("ops: cannot convert undefined or null to object")
	ErrSyntaxBigInt                = errors.New("ops: invalid BigInt syntax")
	ErrNotCallable                 = errors.New("ops: value is not callable")
	ErrNotConstructor              = errors.New("ops: value is not a constructor")
	ErrNotIterable                 = errors.New("ops: value is not iterable")
	ErrIteratorResultNotObject     = errors.New("ops: iterator result is not an object")
	ErrMixedBigIntOperand          = errors.New("ops: cannot mix BigInt and other types")
	ErrRangeDivideByZero           = errors.New("ops: division by zero")
)

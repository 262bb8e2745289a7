package ops

import (
	"math/big"
	"testing"

	"github.com/cwbudde/go-ecma/pkg/value"
)

// ============================================================================
// ApplyStringOrNumericBinaryOperator
// ============================================================================

func TestApplyStringOrNumericBinaryOperatorArithmetic(t *testing.T) {
	tests := []struct {
		name string
		op   string
		l, r value.Value
		want value.Number
	}{
		{"addition", "+", value.Number(1), value.Number(2), 3},
		{"subtraction", "-", value.Number(5), value.Number(2), 3},
		{"multiplication", "*", value.Number(3), value.Number(4), 12},
		{"division", "/", value.Number(6), value.Number(2), 3},
		{"modulo", "%", value.Number(7), value.Number(2), 1},
		{"exponent", "**", value.Number(2), value.Number(3), 8},
		{"bitwise and", "&", value.Number(6), value.Number(3), 2},
		{"bitwise or", "|", value.Number(4), value.Number(1), 5},
		{"left shift", "<<", value.Number(1), value.Number(3), 8},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ApplyStringOrNumericBinaryOperator(tt.op, tt.l, tt.r, noToPrimitive)
			if err != nil {
				t.Fatalf("ApplyStringOrNumericBinaryOperator: %v", err)
			}
			if got != tt.want {
				t.Errorf("%v %s %v = %v, want %v", tt.l, tt.op, tt.r, got, tt.want)
			}
		})
	}
}

func TestApplyStringOrNumericBinaryOperatorStringConcat(t *testing.T) {
	got, err := ApplyStringOrNumericBinaryOperator("+", value.NewString("a"), value.Number(1), noToPrimitive)
	if err != nil {
		t.Fatalf("ApplyStringOrNumericBinaryOperator: %v", err)
	}
	s, ok := got.(*value.String)
	if !ok || s.String() != "a1" {
		t.Errorf("\"a\" + 1 = %v, want \"a1\"", got)
	}
}

func TestApplyStringOrNumericBinaryOperatorMixedBigIntErrors(t *testing.T) {
	_, err := ApplyStringOrNumericBinaryOperator("-", value.NewBigInt(big.NewInt(1)), value.Number(1), noToPrimitive)
	if err != ErrMixedBigIntOperand {
		t.Errorf("mixed BigInt/Number op = %v, want ErrMixedBigIntOperand", err)
	}
}

func TestApplyStringOrNumericBinaryOperatorBigIntArithmetic(t *testing.T) {
	got, err := ApplyStringOrNumericBinaryOperator("*", value.NewBigInt(big.NewInt(6)), value.NewBigInt(big.NewInt(7)), noToPrimitive)
	if err != nil {
		t.Fatalf("ApplyStringOrNumericBinaryOperator: %v", err)
	}
	bi, ok := got.(*value.BigInt)
	if !ok || bi.V.Cmp(big.NewInt(42)) != 0 {
		t.Errorf("6n * 7n = %v, want 42n", got)
	}
}

func TestApplyStringOrNumericBinaryOperatorDivideByZeroBigInt(t *testing.T) {
	_, err := ApplyStringOrNumericBinaryOperator("/", value.NewBigInt(big.NewInt(1)), value.NewBigInt(big.NewInt(0)), noToPrimitive)
	if err != ErrRangeDivideByZero {
		t.Errorf("1n / 0n = %v, want ErrRangeDivideByZero", err)
	}
}

// ============================================================================
// IsLessThan
// ============================================================================

func TestIsLessThanNumbers(t *testing.T) {
	got, err := IsLessThan(value.Number(1), value.Number(2), true, noToPrimitive)
	if err != nil {
		t.Fatalf("IsLessThan: %v", err)
	}
	if got != RelTrue {
		t.Errorf("IsLessThan(1, 2) = %v, want RelTrue", got)
	}
}

func TestIsLessThanStrings(t *testing.T) {
	got, err := IsLessThan(value.NewString("a"), value.NewString("b"), true, noToPrimitive)
	if err != nil {
		t.Fatalf("IsLessThan: %v", err)
	}
	if got != RelTrue {
		t.Errorf("IsLessThan(\"a\", \"b\") = %v, want RelTrue", got)
	}
}

func TestIsLessThanNaNIsUndefined(t *testing.T) {
	got, err := IsLessThan(value.Number(1), value.Undefined, true, noToPrimitive)
	if err != nil {
		t.Fatalf("IsLessThan: %v", err)
	}
	if got != RelUndefined {
		t.Errorf("IsLessThan(1, undefined) = %v, want RelUndefined", got)
	}
}

// ============================================================================
// OrdinaryHasInstance
// ============================================================================

func TestOrdinaryHasInstanceWalksPrototypeChain(t *testing.T) {
	proto := value.NewObject(value.Null)
	ctor := value.NewObject(value.Null)
	ctor.SetExotic(&value.ExoticMethods{
		Call: func(o *value.Object, this value.Value, args []value.Value) (value.Value, error) {
			return value.Undefined, nil
		},
	})
	ctor.DefineValue("prototype", proto, false)

	instance := value.NewObject(proto)

	ok, err := OrdinaryHasInstance(ctor, instance)
	if err != nil {
		t.Fatalf("OrdinaryHasInstance: %v", err)
	}
	if !ok {
		t.Error("OrdinaryHasInstance should report true for direct prototype match")
	}
}

func TestOrdinaryHasInstanceRejectsNonCallable(t *testing.T) {
	notCallable := value.NewObject(value.Null)
	_, err := OrdinaryHasInstance(notCallable, value.NewObject(value.Null))
	if err != ErrNotCallable {
		t.Errorf("OrdinaryHasInstance(non-callable) = %v, want ErrNotCallable", err)
	}
}

func TestOrdinaryHasInstanceFalseForUnrelatedObject(t *testing.T) {
	proto := value.NewObject(value.Null)
	ctor := value.NewObject(value.Null)
	ctor.SetExotic(&value.ExoticMethods{
		Call: func(o *value.Object, this value.Value, args []value.Value) (value.Value, error) {
			return value.Undefined, nil
		},
	})
	ctor.DefineValue("prototype", proto, false)

	unrelated := value.NewObject(value.Null)

	ok, err := OrdinaryHasInstance(ctor, unrelated)
	if err != nil {
		t.Fatalf("OrdinaryHasInstance: %v", err)
	}
	if ok {
		t.Error("OrdinaryHasInstance should report false for an unrelated object")
	}
}

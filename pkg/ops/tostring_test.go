package ops

import (
	"math"
	"math/big"
	"testing"

	"github.com/cwbudde/go-ecma/pkg/value"
)

// ============================================================================
// ToNumber / ToNumeric
// ============================================================================

func TestToNumber(t *testing.T) {
	tests := []struct {
		name string
		in   value.Value
		want float64
	}{
		{"number passthrough", value.Number(3), 3},
		{"true is 1", value.Boolean(true), 1},
		{"false is 0", value.Boolean(false), 0},
		{"numeric string", value.NewString("42"), 42},
		{"whitespace-padded numeric string", value.NewString("  7  "), 7},
		{"empty string is 0", value.NewString(""), 0},
		{"null is 0", value.Null, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ToNumber(tt.in)
			if err != nil {
				t.Fatalf("ToNumber: %v", err)
			}
			if float64(got) != tt.want {
				t.Errorf("ToNumber(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestToNumberNonNumericStringIsNaN(t *testing.T) {
	got, err := ToNumber(value.NewString("abc"))
	if err != nil {
		t.Fatalf("ToNumber: %v", err)
	}
	if !math.IsNaN(float64(got)) {
		t.Errorf("ToNumber(abc) = %v, want NaN", got)
	}
}

func TestToNumberUndefinedIsNaN(t *testing.T) {
	got, err := ToNumber(value.Undefined)
	if err != nil {
		t.Fatalf("ToNumber: %v", err)
	}
	if !math.IsNaN(float64(got)) {
		t.Errorf("ToNumber(undefined) = %v, want NaN", got)
	}
}

func TestToNumberBigIntErrors(t *testing.T) {
	_, err := ToNumber(value.NewBigInt(big.NewInt(1)))
	if err == nil {
		t.Fatal("ToNumber(BigInt) should error")
	}
}

// ============================================================================
// ToString
// ============================================================================

func TestToString(t *testing.T) {
	tests := []struct {
		name string
		in   value.Value
		want string
	}{
		{"string passthrough", value.NewString("hi"), "hi"},
		{"number", value.Number(3), "3"},
		{"true", value.Boolean(true), "true"},
		{"false", value.Boolean(false), "false"},
		{"null", value.Null, "null"},
		{"undefined", value.Undefined, "undefined"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ToString(tt.in, noToPrimitive)
			if err != nil {
				t.Fatalf("ToString: %v", err)
			}
			if got.String() != tt.want {
				t.Errorf("ToString(%v) = %q, want %q", tt.in, got.String(), tt.want)
			}
		})
	}
}

func TestToStringSymbolErrors(t *testing.T) {
	sym := value.NewSymbol("desc")
	if _, err := ToString(sym, noToPrimitive); err == nil {
		t.Fatal("ToString(Symbol) should error")
	}
}

// ============================================================================
// ToPropertyKey
// ============================================================================

func TestToPropertyKeyString(t *testing.T) {
	key, err := ToPropertyKey(value.Number(1), noToPrimitive)
	if err != nil {
		t.Fatalf("ToPropertyKey: %v", err)
	}
	if key != value.StringKey("1") {
		t.Errorf("ToPropertyKey(1) = %v, want StringKey(1)", key)
	}
}

func TestToPropertyKeySymbol(t *testing.T) {
	sym := value.NewSymbol("k")
	key, err := ToPropertyKey(sym, noToPrimitive)
	if err != nil {
		t.Fatalf("ToPropertyKey: %v", err)
	}
	if key != value.SymbolKey(sym) {
		t.Errorf("ToPropertyKey(symbol) did not round-trip to a symbol key")
	}
}

// ============================================================================
// ToObject
// ============================================================================

func TestToObjectPassesThroughObjects(t *testing.T) {
	o := value.NewObject(value.Null)
	got, err := ToObject(o, func(value.Value) (*value.Object, error) { t.Fatal("wrap should not be called"); return nil, nil })
	if err != nil {
		t.Fatalf("ToObject: %v", err)
	}
	if got != o {
		t.Error("ToObject did not pass the object through unchanged")
	}
}

func TestToObjectRejectsNullAndUndefined(t *testing.T) {
	for _, v := range []value.Value{value.Null, value.Undefined} {
		if _, err := ToObject(v, func(value.Value) (*value.Object, error) { return nil, nil }); err == nil {
			t.Errorf("ToObject(%v) should error", v)
		}
	}
}

func TestToObjectWrapsPrimitives(t *testing.T) {
	wrapped := value.NewObject(value.Null)
	got, err := ToObject(value.Number(5), func(v value.Value) (*value.Object, error) { return wrapped, nil })
	if err != nil {
		t.Fatalf("ToObject: %v", err)
	}
	if got != wrapped {
		t.Error("ToObject did not return the wrapper produced by wrap()")
	}
}

// ============================================================================
// ToInt32 / ToUint32
// ============================================================================

func TestToInt32(t *testing.T) {
	tests := []struct {
		name string
		in   float64
		want int32
	}{
		{"small positive", 5, 5},
		{"NaN is 0", math.NaN(), 0},
		{"infinity is 0", math.Inf(1), 0},
		{"wraps above int32 max", 4294967296 + 1, 1},
		{"negative wraps", -1, -1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ToInt32(value.Number(tt.in)); got != tt.want {
				t.Errorf("ToInt32(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestToUint32(t *testing.T) {
	if got := ToUint32(value.Number(-1)); got != 4294967295 {
		t.Errorf("ToUint32(-1) = %v, want 4294967295", got)
	}
	if got := ToUint32(value.Number(math.NaN())); got != 0 {
		t.Errorf("ToUint32(NaN) = %v, want 0", got)
	}
}

package value

import (
	"math"
	"testing"
)

// ============================================================================
// Number formatting (ToString round-trip boundary cases)
// ============================================================================

func TestNumberGoString(t *testing.T) {
	tests := []struct {
		name string
		in   Number
		want string
	}{
		{"integer", Number(3), "3"},
		{"negative zero formats as 0", Number(math.Copysign(0, -1)), "0"},
		{"NaN", Number(math.NaN()), "NaN"},
		{"positive infinity", Number(math.Inf(1)), "Infinity"},
		{"negative infinity", Number(math.Inf(-1)), "-Infinity"},
		{"fraction", Number(1.5), "1.5"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.in.GoString(); got != tt.want {
				t.Errorf("GoString() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestNumberIsNaN(t *testing.T) {
	if !Number(math.NaN()).IsNaN() {
		t.Error("IsNaN(NaN) = false")
	}
	if Number(1).IsNaN() {
		t.Error("IsNaN(1) = true")
	}
}

// ============================================================================
// String (UTF-16 backed)
// ============================================================================

func TestNewStringRoundTrip(t *testing.T) {
	s := NewString("hello")
	if s.String() != "hello" {
		t.Errorf("String() = %q, want hello", s.String())
	}
	if s.Length() != 5 {
		t.Errorf("Length() = %d, want 5", s.Length())
	}
}

func TestNewStringSurrogatePairLength(t *testing.T) {
	// U+1F600 (grinning face) requires a UTF-16 surrogate pair: length 2.
	s := NewString("\U0001F600")
	if s.Length() != 2 {
		t.Errorf("Length() of an astral character = %d, want 2 (surrogate pair)", s.Length())
	}
}

func TestNewStringFromUnitsCopiesBacking(t *testing.T) {
	units := []uint16{'a', 'b', 'c'}
	s := NewStringFromUnits(units)
	units[0] = 'z'
	if s.Units()[0] != 'a' {
		t.Error("NewStringFromUnits did not copy its input slice")
	}
}

// ============================================================================
// Kind tags
// ============================================================================

func TestKindTags(t *testing.T) {
	tests := []struct {
		name string
		v    Value
		want Kind
	}{
		{"undefined", Undefined, KindUndefined},
		{"null", Null, KindNull},
		{"boolean", Boolean(true), KindBoolean},
		{"string", NewString("x"), KindString},
		{"number", Number(1), KindNumber},
		{"symbol", NewSymbol("s"), KindSymbol},
		{"object", NewObject(Null), KindObject},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.v.Kind(); got != tt.want {
				t.Errorf("Kind() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestKindString(t *testing.T) {
	if KindNumber.String() != "number" {
		t.Errorf("KindNumber.String() = %q, want number", KindNumber.String())
	}
}

// ============================================================================
// SameValue / SameValueZero / ToBoolean / IsNullOrUndefined
// ============================================================================

func TestSameValue(t *testing.T) {
	if !SameValue(Number(math.NaN()), Number(math.NaN())) {
		t.Error("SameValue(NaN, NaN) should be true")
	}
	if SameValue(Number(0), Number(math.Copysign(0, -1))) {
		t.Error("SameValue(+0, -0) should be false")
	}
}

func TestSameValueZero(t *testing.T) {
	if !SameValueZero(Number(0), Number(math.Copysign(0, -1))) {
		t.Error("SameValueZero(+0, -0) should be true")
	}
	if !SameValueZero(Number(math.NaN()), Number(math.NaN())) {
		t.Error("SameValueZero(NaN, NaN) should be true")
	}
}

func TestIsNullOrUndefined(t *testing.T) {
	if !IsNullOrUndefined(Null) || !IsNullOrUndefined(Undefined) {
		t.Error("IsNullOrUndefined should be true for null and undefined")
	}
	if IsNullOrUndefined(Number(0)) {
		t.Error("IsNullOrUndefined(0) should be false")
	}
}

func TestToBoolean(t *testing.T) {
	tests := []struct {
		name string
		v    Value
		want bool
	}{
		{"undefined", Undefined, false},
		{"null", Null, false},
		{"zero", Number(0), false},
		{"NaN", Number(math.NaN()), false},
		{"nonzero number", Number(1), true},
		{"empty string", NewString(""), false},
		{"non-empty string", NewString("x"), true},
		{"object always truthy", NewObject(Null), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ToBoolean(tt.v); got != tt.want {
				t.Errorf("ToBoolean(%v) = %v, want %v", tt.v, got, tt.want)
			}
		})
	}
}

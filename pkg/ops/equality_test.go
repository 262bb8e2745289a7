package ops

import (
	"math"
	"testing"

	"github.com/cwbudde/go-ecma/pkg/value"
)

// ============================================================================
// Strict equality
// ============================================================================

func TestIsStrictlyEqual(t *testing.T) {
	tests := []struct {
		name     string
		a, b     value.Value
		expected bool
	}{
		{"numbers equal", value.Number(1), value.Number(1), true},
		{"numbers different", value.Number(1), value.Number(2), false},
		{"NaN not equal to itself", value.Number(math.NaN()), value.Number(math.NaN()), false},
		{"zero equals negative zero", value.Number(0), value.Number(math.Copysign(0, -1)), true},
		{"different kinds", value.Number(1), value.NewString("1"), false},
		{"strings equal", value.NewString("a"), value.NewString("a"), true},
		{"strings different", value.NewString("a"), value.NewString("b"), false},
		{"booleans equal", value.Boolean(true), value.Boolean(true), true},
		{"undefined equals undefined", value.Undefined, value.Undefined, true},
		{"null equals null", value.Null, value.Null, true},
		{"null not equal undefined", value.Null, value.Undefined, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsStrictlyEqual(tt.a, tt.b); got != tt.expected {
				t.Errorf("IsStrictlyEqual(%v, %v) = %v, want %v", tt.a, tt.b, got, tt.expected)
			}
		})
	}
}

// ============================================================================
// Loose equality
// ============================================================================

func noToPrimitive(_ *value.Object, _ string) (value.Value, bool, error) {
	return nil, false, nil
}

func TestIsLooselyEqual(t *testing.T) {
	tests := []struct {
		name     string
		a, b     value.Value
		expected bool
	}{
		{"same kind delegates to strict", value.Number(1), value.Number(1), true},
		{"null loosely equals undefined", value.Null, value.Undefined, true},
		{"null not loosely equal to number", value.Null, value.Number(0), false},
		{"number equals numeric string", value.Number(1), value.NewString("1"), true},
		{"number not equal non-numeric string", value.Number(1), value.NewString("x"), false},
		{"boolean true equals number 1", value.Boolean(true), value.Number(1), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := IsLooselyEqual(tt.a, tt.b, noToPrimitive)
			if err != nil {
				t.Fatalf("IsLooselyEqual returned error: %v", err)
			}
			if got != tt.expected {
				t.Errorf("IsLooselyEqual(%v, %v) = %v, want %v", tt.a, tt.b, got, tt.expected)
			}
		})
	}
}

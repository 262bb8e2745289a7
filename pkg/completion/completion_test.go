package completion

import (
	"testing"

	"github.com/cwbudde/go-ecma/pkg/value"
)

// ============================================================================
// Constructors and IsAbrupt
// ============================================================================

func TestRecordConstructors(t *testing.T) {
	tests := []struct {
		name     string
		rec      Record
		wantKind Kind
		abrupt   bool
	}{
		{"normal value", NormalValue(value.Number(1)), Normal, false},
		{"normal empty", NormalEmpty(), Normal, false},
		{"throw", ThrowCompletion(value.NewString("boom")), Throw, true},
		{"return", ReturnCompletion(value.Number(42)), Return, true},
		{"break unlabeled", BreakCompletion(""), Break, true},
		{"break labeled", BreakCompletion("outer"), Break, true},
		{"continue", ContinueCompletion("loop"), Continue, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.rec.K != tt.wantKind {
				t.Errorf("K = %v, want %v", tt.rec.K, tt.wantKind)
			}
			if tt.rec.IsAbrupt() != tt.abrupt {
				t.Errorf("IsAbrupt() = %v, want %v", tt.rec.IsAbrupt(), tt.abrupt)
			}
		})
	}
}

func TestBreakCompletionTarget(t *testing.T) {
	r := BreakCompletion("outer")
	if r.Target != "outer" {
		t.Errorf("Target = %q, want %q", r.Target, "outer")
	}
}

// ============================================================================
// Empty sentinel
// ============================================================================

func TestIsEmpty(t *testing.T) {
	if !IsEmpty(Empty) {
		t.Error("IsEmpty(Empty) = false, want true")
	}
	if IsEmpty(value.Undefined) {
		t.Error("IsEmpty(undefined) = true, want false")
	}
	if IsEmpty(value.Number(0)) {
		t.Error("IsEmpty(0) = true, want false")
	}
}

// ============================================================================
// UpdateEmpty
// ============================================================================

func TestUpdateEmpty(t *testing.T) {
	t.Run("substitutes when empty", func(t *testing.T) {
		r := NormalEmpty()
		updated := UpdateEmpty(r, value.Number(7))
		if updated.Val != value.Number(7) {
			t.Errorf("Val = %v, want 7", updated.Val)
		}
	})

	t.Run("leaves non-empty value untouched", func(t *testing.T) {
		r := NormalValue(value.Number(3))
		updated := UpdateEmpty(r, value.Number(7))
		if updated.Val != value.Number(3) {
			t.Errorf("Val = %v, want 3", updated.Val)
		}
	})

	t.Run("leaves abrupt completion untouched", func(t *testing.T) {
		r := BreakCompletion("lbl")
		updated := UpdateEmpty(r, value.Number(7))
		if updated.K != Break || updated.Target != "lbl" {
			t.Errorf("UpdateEmpty changed an abrupt completion: %+v", updated)
		}
	})
}

package environment

import (
	"errors"
	"testing"

	"github.com/cwbudde/go-ecma/pkg/value"
)

// ============================================================================
// Binding creation
// ============================================================================

func TestCreateMutableBinding(t *testing.T) {
	r := NewDeclarativeRecord(nil)
	if err := r.CreateMutableBinding("x", false); err != nil {
		t.Fatalf("CreateMutableBinding: %v", err)
	}
	if !r.HasBinding("x") {
		t.Error("HasBinding(x) = false after create")
	}
	if err := r.CreateMutableBinding("x", false); !errors.Is(err, ErrAlreadyDeclared) {
		t.Errorf("re-declaring = %v, want ErrAlreadyDeclared", err)
	}
}

func TestCreateImmutableBinding(t *testing.T) {
	r := NewDeclarativeRecord(nil)
	if err := r.CreateImmutableBinding("c", true); err != nil {
		t.Fatalf("CreateImmutableBinding: %v", err)
	}
	if err := r.CreateImmutableBinding("c", true); !errors.Is(err, ErrAlreadyDeclared) {
		t.Errorf("re-declaring = %v, want ErrAlreadyDeclared", err)
	}
}

// ============================================================================
// Initialize / TDZ
// ============================================================================

func TestInitializeBindingMissing(t *testing.T) {
	r := NewDeclarativeRecord(nil)
	if err := r.InitializeBinding("nope", value.Number(1)); !errors.Is(err, ErrNotDefined) {
		t.Errorf("InitializeBinding(undeclared) = %v, want ErrNotDefined", err)
	}
}

func TestGetBindingValueBeforeInitialize(t *testing.T) {
	r := NewDeclarativeRecord(nil)
	if err := r.CreateMutableBinding("x", false); err != nil {
		t.Fatalf("CreateMutableBinding: %v", err)
	}
	if _, err := r.GetBindingValue("x", false); !errors.Is(err, ErrUninitialized) {
		t.Errorf("GetBindingValue(TDZ) = %v, want ErrUninitialized", err)
	}
}

func TestGetBindingValueAfterInitialize(t *testing.T) {
	r := NewDeclarativeRecord(nil)
	if err := r.CreateMutableBinding("x", false); err != nil {
		t.Fatalf("CreateMutableBinding: %v", err)
	}
	if err := r.InitializeBinding("x", value.Number(42)); err != nil {
		t.Fatalf("InitializeBinding: %v", err)
	}
	got, err := r.GetBindingValue("x", false)
	if err != nil {
		t.Fatalf("GetBindingValue: %v", err)
	}
	if got != value.Number(42) {
		t.Errorf("GetBindingValue = %v, want 42", got)
	}
}

func TestGetBindingValueUndeclared(t *testing.T) {
	r := NewDeclarativeRecord(nil)
	if _, err := r.GetBindingValue("nope", false); !errors.Is(err, ErrNotDefined) {
		t.Errorf("GetBindingValue(undeclared) = %v, want ErrNotDefined", err)
	}
}

// ============================================================================
// SetMutableBinding
// ============================================================================

func TestSetMutableBindingOnMutable(t *testing.T) {
	r := NewDeclarativeRecord(nil)
	if err := r.CreateMutableBinding("x", false); err != nil {
		t.Fatalf("CreateMutableBinding: %v", err)
	}
	if err := r.InitializeBinding("x", value.Number(1)); err != nil {
		t.Fatalf("InitializeBinding: %v", err)
	}
	if err := r.SetMutableBinding("x", value.Number(2), false); err != nil {
		t.Fatalf("SetMutableBinding: %v", err)
	}
	got, _ := r.GetBindingValue("x", false)
	if got != value.Number(2) {
		t.Errorf("value after set = %v, want 2", got)
	}
}

func TestSetMutableBindingOnUninitialized(t *testing.T) {
	r := NewDeclarativeRecord(nil)
	if err := r.CreateMutableBinding("x", false); err != nil {
		t.Fatalf("CreateMutableBinding: %v", err)
	}
	if err := r.SetMutableBinding("x", value.Number(2), false); !errors.Is(err, ErrUninitialized) {
		t.Errorf("SetMutableBinding(TDZ) = %v, want ErrUninitialized", err)
	}
}

func TestSetMutableBindingOnImmutableStrict(t *testing.T) {
	r := NewDeclarativeRecord(nil)
	if err := r.CreateImmutableBinding("c", true); err != nil {
		t.Fatalf("CreateImmutableBinding: %v", err)
	}
	if err := r.InitializeBinding("c", value.Number(1)); err != nil {
		t.Fatalf("InitializeBinding: %v", err)
	}
	if err := r.SetMutableBinding("c", value.Number(2), true); !errors.Is(err, ErrImmutable) {
		t.Errorf("SetMutableBinding(const, strict) = %v, want ErrImmutable", err)
	}
}

func TestSetMutableBindingOnImmutableNonStrictIsSilentNoOp(t *testing.T) {
	r := NewDeclarativeRecord(nil)
	if err := r.CreateImmutableBinding("c", false); err != nil {
		t.Fatalf("CreateImmutableBinding: %v", err)
	}
	if err := r.InitializeBinding("c", value.Number(1)); err != nil {
		t.Fatalf("InitializeBinding: %v", err)
	}
	if err := r.SetMutableBinding("c", value.Number(2), false); err != nil {
		t.Errorf("SetMutableBinding(const, non-strict) = %v, want nil", err)
	}
	got, _ := r.GetBindingValue("c", false)
	if got != value.Number(1) {
		t.Errorf("value after no-op set = %v, want unchanged 1", got)
	}
}

func TestSetMutableBindingUndeclaredStrict(t *testing.T) {
	r := NewDeclarativeRecord(nil)
	if err := r.SetMutableBinding("ghost", value.Number(1), true); !errors.Is(err, ErrNotDefined) {
		t.Errorf("SetMutableBinding(undeclared, strict) = %v, want ErrNotDefined", err)
	}
}

func TestSetMutableBindingUndeclaredNonStrictFallsBackToGlobalFallback(t *testing.T) {
	r := NewDeclarativeRecord(nil)
	// DeclarativeRecord's own fallback always reports not-defined; only
	// GlobalRecord's object component actually implements implicit globals.
	if err := r.SetMutableBinding("ghost", value.Number(1), false); !errors.Is(err, ErrNotDefined) {
		t.Errorf("SetMutableBinding(undeclared, non-strict) = %v, want ErrNotDefined", err)
	}
}

// ============================================================================
// DeleteBinding
// ============================================================================

func TestDeleteBindingDeletable(t *testing.T) {
	r := NewDeclarativeRecord(nil)
	if err := r.CreateMutableBinding("x", true); err != nil {
		t.Fatalf("CreateMutableBinding: %v", err)
	}
	ok, err := r.DeleteBinding("x")
	if err != nil || !ok {
		t.Fatalf("DeleteBinding = (%v, %v), want (true, nil)", ok, err)
	}
	if r.HasBinding("x") {
		t.Error("binding still present after delete")
	}
}

func TestDeleteBindingNonDeletable(t *testing.T) {
	r := NewDeclarativeRecord(nil)
	if err := r.CreateMutableBinding("x", false); err != nil {
		t.Fatalf("CreateMutableBinding: %v", err)
	}
	ok, err := r.DeleteBinding("x")
	if err != nil {
		t.Fatalf("DeleteBinding: %v", err)
	}
	if ok {
		t.Error("DeleteBinding on non-deletable binding reported success")
	}
	if !r.HasBinding("x") {
		t.Error("non-deletable binding was removed")
	}
}

func TestDeleteBindingMissingIsNoOpSuccess(t *testing.T) {
	r := NewDeclarativeRecord(nil)
	ok, err := r.DeleteBinding("nope")
	if err != nil || !ok {
		t.Errorf("DeleteBinding(missing) = (%v, %v), want (true, nil)", ok, err)
	}
}

// ============================================================================
// Outer chain and record shape
// ============================================================================

func TestOuterChain(t *testing.T) {
	outer := NewDeclarativeRecord(nil)
	inner := NewDeclarativeRecord(outer)
	if inner.Outer() != Record(outer) {
		t.Error("Outer() did not return the enclosing record")
	}
	if outer.Outer() != nil {
		t.Error("top-level record's Outer() should be nil")
	}
}

func TestDeclarativeRecordHasNoThisOrSuperOrBaseObject(t *testing.T) {
	r := NewDeclarativeRecord(nil)
	if r.HasThisBinding() {
		t.Error("DeclarativeRecord.HasThisBinding() = true, want false")
	}
	if r.HasSuperBinding() {
		t.Error("DeclarativeRecord.HasSuperBinding() = true, want false")
	}
	if r.WithBaseObject() != nil {
		t.Error("DeclarativeRecord.WithBaseObject() != nil")
	}
}

package completion

import (
	"testing"

	"github.com/cwbudde/go-ecma/pkg/environment"
	"github.com/cwbudde/go-ecma/pkg/value"
)

// ============================================================================
// Reference classification
// ============================================================================

func TestReferenceClassification(t *testing.T) {
	env := environment.NewDeclarativeRecord(nil)
	envRef := NewEnvironmentReference(env, "x", false)
	propRef := NewPropertyReference(value.Number(1), value.StringKey("toString"), false)
	unresolvable := NewUnresolvableReference("missing", false)

	if propRef.IsPropertyReference() == false {
		t.Error("property reference misclassified")
	}
	if envRef.IsPropertyReference() {
		t.Error("environment reference misclassified as property reference")
	}
	if !unresolvable.IsUnresolvableReference() {
		t.Error("unresolvable reference not reported as such")
	}
	if envRef.IsUnresolvableReference() {
		t.Error("environment reference misreported as unresolvable")
	}
}

// ============================================================================
// GetValue
// ============================================================================

func TestGetValueEnvironmentBinding(t *testing.T) {
	env := environment.NewDeclarativeRecord(nil)
	if err := env.CreateMutableBinding("x", false); err != nil {
		t.Fatalf("CreateMutableBinding: %v", err)
	}
	if err := env.InitializeBinding("x", value.Number(5)); err != nil {
		t.Fatalf("InitializeBinding: %v", err)
	}
	ref := NewEnvironmentReference(env, "x", false)

	got, err := GetValue(ref, func(value.Value) (*value.Object, error) { return nil, nil })
	if err != nil {
		t.Fatalf("GetValue returned error: %v", err)
	}
	if got != value.Number(5) {
		t.Errorf("GetValue = %v, want 5", got)
	}
}

func TestGetValueUnresolvable(t *testing.T) {
	ref := NewUnresolvableReference("nope", false)
	_, err := GetValue(ref, func(value.Value) (*value.Object, error) { return nil, nil })
	if err == nil {
		t.Fatal("GetValue on an unresolvable reference should error")
	}
}

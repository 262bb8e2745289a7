package realm

import (
	"testing"

	"github.com/cwbudde/go-ecma/pkg/value"
)

func TestNewRealmHasUniqueID(t *testing.T) {
	a := New()
	b := New()
	if a.ID == b.ID {
		t.Error("two realms should not share an ID")
	}
	if a.GlobalObject == nil || a.GlobalEnv == nil {
		t.Error("New() should populate GlobalObject and GlobalEnv")
	}
}

func TestIntrinsicRoundTrip(t *testing.T) {
	r := New()
	if _, ok := r.Intrinsic("%Object.prototype%"); ok {
		t.Error("a fresh realm should have no intrinsics registered")
	}
	proto := value.NewObject(value.Null)
	r.SetIntrinsic("%Object.prototype%", proto)
	got, ok := r.Intrinsic("%Object.prototype%")
	if !ok || got != proto {
		t.Error("Intrinsic did not return the object installed by SetIntrinsic")
	}
}

func TestWellKnownSymbolIsStableAcrossCalls(t *testing.T) {
	r := New()
	a := r.WellKnownSymbol("Symbol.iterator")
	b := r.WellKnownSymbol("Symbol.iterator")
	if a != b {
		t.Error("WellKnownSymbol should return the same symbol on repeated calls")
	}
	other := r.WellKnownSymbol("Symbol.asyncIterator")
	if other == a {
		t.Error("different well-known names should yield different symbols")
	}
}

func TestNewOrdinaryObjectFallsBackToNullProto(t *testing.T) {
	r := New()
	o := r.NewOrdinaryObject()
	if o.GetPrototypeOf() != value.Null {
		t.Error("NewOrdinaryObject should fall back to Null proto before %Object.prototype% is installed")
	}
}

func TestNewOrdinaryObjectUsesInstalledPrototype(t *testing.T) {
	r := New()
	proto := value.NewObject(value.Null)
	r.SetIntrinsic("%Object.prototype%", proto)
	o := r.NewOrdinaryObject()
	if o.GetPrototypeOf() != value.Value(proto) {
		t.Error("NewOrdinaryObject should use the installed %Object.prototype%")
	}
}

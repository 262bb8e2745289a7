package ops

import (
	"testing"

	"github.com/cwbudde/go-ecma/pkg/value"
)

// newTestIterable builds a minimal object implementing the iterable
// protocol by hand: @@iterator returns an iterator object whose "next"
// yields the given values in order, then reports done.
func newTestIterable(t *testing.T, sym *value.Symbol, values []value.Value) *value.Object {
	t.Helper()
	idx := 0
	iterObj := value.NewObject(value.Null)
	nextFn := value.NewObject(value.Null)
	nextFn.SetExotic(&value.ExoticMethods{
		Call: func(_ *value.Object, _ value.Value, _ []value.Value) (value.Value, error) {
			result := value.NewObject(value.Null)
			if idx < len(values) {
				result.DefineValue("value", values[idx], true)
				result.DefineValue("done", value.Boolean(false), true)
				idx++
			} else {
				result.DefineValue("value", value.Undefined, true)
				result.DefineValue("done", value.Boolean(true), true)
			}
			return result, nil
		},
	})
	iterObj.DefineValue("next", nextFn, false)

	iterable := value.NewObject(value.Null)
	iterFn := value.NewObject(value.Null)
	iterFn.SetExotic(&value.ExoticMethods{
		Call: func(_ *value.Object, _ value.Value, _ []value.Value) (value.Value, error) { return iterObj, nil },
	})
	iterable.Set(value.SymbolKey(sym), iterFn, iterable)
	return iterable
}

func TestGetIteratorAndIteratorStep(t *testing.T) {
	sym := value.NewSymbol("Symbol.iterator")
	iterable := newTestIterable(t, sym, []value.Value{value.Number(1), value.Number(2)})

	rec, err := GetIterator(iterable, sym)
	if err != nil {
		t.Fatalf("GetIterator: %v", err)
	}

	res, more, err := IteratorStep(rec)
	if err != nil {
		t.Fatalf("IteratorStep: %v", err)
	}
	if !more {
		t.Fatal("expected a first value, got done")
	}
	v, err := IteratorValue(res)
	if err != nil || v != value.Number(1) {
		t.Errorf("first value = %v, %v, want 1", v, err)
	}

	res, more, err = IteratorStep(rec)
	if err != nil {
		t.Fatalf("IteratorStep: %v", err)
	}
	if !more {
		t.Fatal("expected a second value, got done")
	}
	v, _ = IteratorValue(res)
	if v != value.Number(2) {
		t.Errorf("second value = %v, want 2", v)
	}

	_, more, err = IteratorStep(rec)
	if err != nil {
		t.Fatalf("IteratorStep: %v", err)
	}
	if more {
		t.Error("expected done after exhausting values")
	}
	if !rec.Done {
		t.Error("IteratorRecord.Done should be set once next() reports done")
	}
}

func TestGetIteratorNotIterable(t *testing.T) {
	sym := value.NewSymbol("Symbol.iterator")
	notIterable := value.NewObject(value.Null)
	if _, err := GetIterator(notIterable, sym); err != ErrNotIterable {
		t.Errorf("GetIterator(non-iterable) = %v, want ErrNotIterable", err)
	}
}

func TestIteratorCloseSkipsWhenAlreadyDone(t *testing.T) {
	rec := &IteratorRecord{Iterator: value.NewObject(value.Null), Done: true}
	if err := IteratorClose(rec, nil); err != nil {
		t.Errorf("IteratorClose(done) = %v, want nil", err)
	}
}

func TestIteratorCloseInvokesReturn(t *testing.T) {
	called := false
	iterObj := value.NewObject(value.Null)
	returnFn := value.NewObject(value.Null)
	returnFn.SetExotic(&value.ExoticMethods{
		Call: func(_ *value.Object, _ value.Value, _ []value.Value) (value.Value, error) {
			called = true
			return value.NewObject(value.Null), nil
		},
	})
	iterObj.DefineValue("return", returnFn, false)

	rec := &IteratorRecord{Iterator: iterObj}
	if err := IteratorClose(rec, nil); err != nil {
		t.Fatalf("IteratorClose: %v", err)
	}
	if !called {
		t.Error("IteratorClose did not invoke the iterator's return method")
	}
}

func TestIteratorClosePreservesPendingCompletionError(t *testing.T) {
	pending := ErrNotCallable
	iterObj := value.NewObject(value.Null)
	rec := &IteratorRecord{Iterator: iterObj}
	if err := IteratorClose(rec, pending); err != pending {
		t.Errorf("IteratorClose = %v, want the pending completion error preserved", err)
	}
}

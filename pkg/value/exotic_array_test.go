package value

import "testing"

// ============================================================================
// Array exotic length synchronisation
// ============================================================================

func TestNewArrayLength(t *testing.T) {
	arr := NewArray(Null, []Value{Number(1), Number(2), Number(3)})
	if got := ArrayLength(arr); got != 3 {
		t.Errorf("ArrayLength = %d, want 3", got)
	}
}

func TestPushExtendsLength(t *testing.T) {
	arr := NewArray(Null, nil)
	Push(arr, Number(1))
	Push(arr, Number(2))
	if got := ArrayLength(arr); got != 2 {
		t.Errorf("ArrayLength after two pushes = %d, want 2", got)
	}
	v, _ := arr.Get(StringKey("1"), arr)
	if v != Number(2) {
		t.Errorf("arr[1] = %v, want 2", v)
	}
}

func TestSettingHighIndexExtendsLength(t *testing.T) {
	arr := NewArray(Null, []Value{Number(1)})
	if _, err := arr.Set(StringKey("5"), Number(9), arr); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if got := ArrayLength(arr); got != 6 {
		t.Errorf("ArrayLength after arr[5]=9 = %d, want 6", got)
	}
}

func TestSettingLengthTruncatesElements(t *testing.T) {
	arr := NewArray(Null, []Value{Number(1), Number(2), Number(3)})
	ok, err := arr.DefineOwnProperty(StringKey("length"), &PropertyDescriptor{
		Value: Number(1), HasValue: true,
	})
	if err != nil || !ok {
		t.Fatalf("DefineOwnProperty(length): (%v, %v)", ok, err)
	}
	if got := ArrayLength(arr); got != 1 {
		t.Errorf("ArrayLength after truncation = %d, want 1", got)
	}
	has, _ := arr.HasProperty(StringKey("1"))
	if has {
		t.Error("index 1 should have been deleted by length truncation")
	}
	has, _ = arr.HasProperty(StringKey("2"))
	if has {
		t.Error("index 2 should have been deleted by length truncation")
	}
}

func TestArrayIndexKeyOrdering(t *testing.T) {
	idx, ok := StringKey("10").IsArrayIndex()
	if !ok || idx != 10 {
		t.Errorf("IsArrayIndex(\"10\") = (%v, %v), want (10, true)", idx, ok)
	}
	if _, ok := StringKey("01").IsArrayIndex(); ok {
		t.Error("\"01\" (leading zero) should not be a canonical array index")
	}
	if _, ok := StringKey("x").IsArrayIndex(); ok {
		t.Error("\"x\" should not be an array index")
	}
}

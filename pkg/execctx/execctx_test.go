package execctx

import "testing"

func TestStackPushPopTop(t *testing.T) {
	s := NewStack()
	if s.Top() != nil {
		t.Error("Top() of empty stack should be nil")
	}
	if s.Len() != 0 {
		t.Errorf("Len() of empty stack = %d, want 0", s.Len())
	}

	a := &Context{}
	b := &Context{}
	s.Push(a)
	s.Push(b)

	if s.Len() != 2 {
		t.Errorf("Len() = %d, want 2", s.Len())
	}
	if s.Top() != b {
		t.Error("Top() should return the most recently pushed context")
	}

	popped := s.Pop()
	if popped != b {
		t.Error("Pop() should return the most recently pushed context")
	}
	if s.Len() != 1 {
		t.Errorf("Len() after Pop = %d, want 1", s.Len())
	}
	if s.Top() != a {
		t.Error("Top() after popping b should return a")
	}
}

func TestStackFramesInnermostFirst(t *testing.T) {
	s := NewStack()
	a := &Context{}
	b := &Context{}
	c := &Context{}
	s.Push(a)
	s.Push(b)
	s.Push(c)

	frames := s.Frames()
	if len(frames) != 3 {
		t.Fatalf("Frames() len = %d, want 3", len(frames))
	}
	if frames[0] != c || frames[1] != b || frames[2] != a {
		t.Error("Frames() should list innermost-to-outermost")
	}
}

func TestStackPopPanicsOnEmpty(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("Pop() on an empty stack should panic")
		}
	}()
	NewStack().Pop()
}

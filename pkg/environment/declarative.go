package environment

import "github.com/cwbudde/go-ecma/pkg/value"

// bindingState is the per-binding mutability/TDZ bit set named in §3.6:
// mutable (or immutable), initialised, deletable, and strict.
type bindingState struct {
	value       value.Value
	mutable     bool
	initialized bool
	deletable   bool
	strict      bool // immutable-binding strictness, for error reporting only
}

// DeclarativeRecord is a name→binding map (§3.6): the environment kind
// created for `let`/`const`/function-scoped blocks, catch clauses, and as
// the base for FunctionRecord/ModuleRecord.
type DeclarativeRecord struct {
	bindings map[string]*bindingState
	outer    Record
}

// NewDeclarativeRecord creates a declarative environment record enclosed by
// outer (nil for none — only the global record has no outer in practice,
// but callers may legitimately build a standalone one for tests).
func NewDeclarativeRecord(outer Record) *DeclarativeRecord {
	return &DeclarativeRecord{bindings: make(map[string]*bindingState), outer: outer}
}

func (r *DeclarativeRecord) Outer() Record { return r.outer }

func (r *DeclarativeRecord) HasBinding(name string) bool {
	_, ok := r.bindings[name]
	return ok
}

func (r *DeclarativeRecord) CreateMutableBinding(name string, deletable bool) error {
	if r.HasBinding(name) {
		return ErrAlreadyDeclared
	}
	r.bindings[name] = &bindingState{mutable: true, deletable: deletable}
	return nil
}

func (r *DeclarativeRecord) CreateImmutableBinding(name string, strict bool) error {
	if r.HasBinding(name) {
		return ErrAlreadyDeclared
	}
	r.bindings[name] = &bindingState{mutable: false, strict: strict}
	return nil
}

func (r *DeclarativeRecord) InitializeBinding(name string, v value.Value) error {
	b, ok := r.bindings[name]
	if !ok {
		return ErrNotDefined
	}
	b.value = v
	b.initialized = true
	return nil
}

func (r *DeclarativeRecord) SetMutableBinding(name string, v value.Value, strict bool) error {
	b, ok := r.bindings[name]
	if !ok {
		if strict {
			return ErrNotDefined
		}
		return r.CreateAndInitializeGlobalFallback(name, v)
	}
	if !b.initialized {
		return ErrUninitialized
	}
	if b.mutable {
		b.value = v
		return nil
	}
	if strict || b.strict {
		return ErrImmutable
	}
	// Non-strict assignment to an immutable binding is a silent no-op (§4.2).
	return nil
}

// CreateAndInitializeGlobalFallback exists only so DeclarativeRecord
// satisfies SetMutableBinding's "implicit global creation" escape hatch
// used historically by sloppy-mode code; declarative records proper never
// take this path (only GlobalRecord's object component does), so this
// always reports not-defined here.
func (r *DeclarativeRecord) CreateAndInitializeGlobalFallback(string, value.Value) error {
	return ErrNotDefined
}

func (r *DeclarativeRecord) GetBindingValue(name string, _ bool) (value.Value, error) {
	b, ok := r.bindings[name]
	if !ok {
		return nil, ErrNotDefined
	}
	if !b.initialized {
		return nil, ErrUninitialized
	}
	return b.value, nil
}

func (r *DeclarativeRecord) DeleteBinding(name string) (bool, error) {
	b, ok := r.bindings[name]
	if !ok {
		return true, nil
	}
	if !b.deletable {
		return false, nil
	}
	delete(r.bindings, name)
	return true, nil
}

func (r *DeclarativeRecord) HasThisBinding() bool          { return false }
func (r *DeclarativeRecord) HasSuperBinding() bool         { return false }
func (r *DeclarativeRecord) WithBaseObject() *value.Object { return nil }

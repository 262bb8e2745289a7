package environment

import "github.com/cwbudde/go-ecma/pkg/value"

// ThisBindingStatus is the state machine governing `this` initialisation in
// a function environment record (§3.6): lexical functions (arrows) never
// have their own `this`; ordinary functions start Uninitialized until
// BindThisValue runs (always before the body in base constructors, only
// after super() in derived constructors).
type ThisBindingStatus int

const (
	ThisLexical ThisBindingStatus = iota
	ThisUninitialized
	ThisInitialized
)

// FunctionRecord extends DeclarativeRecord with the `this`/NewTarget/
// HomeObject state named in §3.6.
type FunctionRecord struct {
	*DeclarativeRecord
	thisStatus ThisBindingStatus
	thisValue  value.Value
	NewTarget  *value.Object // nil when not a [[Construct]] invocation
	HomeObject *value.Object // nil unless this function has a [[HomeObject]] (super-capable methods)
}

// NewFunctionRecord creates a function environment record. lexicalThis
// selects ThisLexical (arrow functions) vs ThisUninitialized (ordinary
// functions, per OrdinaryFunctionCreate at §4.6).
func NewFunctionRecord(outer Record, lexicalThis bool) *FunctionRecord {
	status := ThisUninitialized
	if lexicalThis {
		status = ThisLexical
	}
	return &FunctionRecord{DeclarativeRecord: NewDeclarativeRecord(outer), thisStatus: status}
}

func (r *FunctionRecord) HasThisBinding() bool { return r.thisStatus != ThisLexical }

func (r *FunctionRecord) HasSuperBinding() bool {
	return r.thisStatus != ThisLexical && r.HomeObject != nil
}

// BindThisValue initialises `this` exactly once (§4.6: a second call is a
// bug — mirrors InitializeReferencedBinding's double-initialisation
// invariant in §4.1).
func (r *FunctionRecord) BindThisValue(v value.Value) error {
	if r.thisStatus == ThisInitialized {
		return ErrAlreadyDeclared
	}
	r.thisValue = v
	r.thisStatus = ThisInitialized
	return nil
}

// GetThisBinding resolves `this`, walking to the nearest lexical-this
// outer record when this one is itself lexical (arrow functions capture
// the enclosing `this`, §4.6).
func (r *FunctionRecord) GetThisBinding() (value.Value, error) {
	if r.thisStatus == ThisLexical {
		return ResolveThisBinding(r.Outer())
	}
	if r.thisStatus == ThisUninitialized {
		return nil, ErrUninitialized
	}
	return r.thisValue, nil
}

// GetSuperBase resolves the [[HomeObject]]'s prototype, the base used by
// `super.prop` member access.
func (r *FunctionRecord) GetSuperBase() value.Value {
	if r.HomeObject == nil {
		return value.Undefined
	}
	return r.HomeObject.GetPrototypeOf()
}

// ResolveThisBinding walks outer records to find the nearest one with its
// own `this` binding (§4.2 GetThisBinding surface, used by ThisExpression
// evaluation, §4.4).
func ResolveThisBinding(rec Record) (value.Value, error) {
	for cur := rec; cur != nil; cur = cur.Outer() {
		if cur.HasThisBinding() {
			if fr, ok := cur.(*FunctionRecord); ok {
				return fr.GetThisBinding()
			}
			if gr, ok := cur.(*GlobalRecord); ok {
				return gr.GetThisBinding(), nil
			}
		}
	}
	return value.Undefined, nil
}

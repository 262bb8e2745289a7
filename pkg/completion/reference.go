package completion

import (
	"github.com/cwbudde/go-ecma/pkg/environment"
	"github.com/cwbudde/go-ecma/pkg/value"
)

// Reference is the Reference Record (§3.4): an unresolved get/set target
// produced by identifier lookup and member expressions, dereferenced via
// GetValue, updated via PutValue, and initialised via
// InitializeReferencedBinding.
type Reference struct {
	// EnvBase is non-nil when this is an environment-record reference
	// (identifier lookup); Base carries a value base for property
	// references. Exactly one of EnvBase/Base/Unresolvable applies.
	EnvBase      environment.Record
	Base         value.Value
	Unresolvable bool

	Name   value.PropertyKey
	Strict bool
	// ThisValue is set for super-property references (§3.4): GetValue uses
	// it as the receiver while Base (the super base) supplies the lookup
	// start point.
	ThisValue    value.Value
	HasThisValue bool
}

// IsPropertyReference reports whether this reference targets an object
// property rather than an environment binding.
func (r *Reference) IsPropertyReference() bool { return r.EnvBase == nil && !r.Unresolvable }

// IsUnresolvableReference reports whether identifier resolution failed to
// find any environment record with this binding (§4.2).
func (r *Reference) IsUnresolvableReference() bool { return r.Unresolvable }

// NewEnvironmentReference builds a reference bound to an environment
// record (the result of ResolveBinding finding a hit).
func NewEnvironmentReference(rec environment.Record, name string, strict bool) *Reference {
	return &Reference{EnvBase: rec, Name: value.StringKey(name), Strict: strict}
}

// NewUnresolvableReference builds a reference for a name that resolution
// could not find in any environment record.
func NewUnresolvableReference(name string, strict bool) *Reference {
	return &Reference{Unresolvable: true, Name: value.StringKey(name), Strict: strict}
}

// NewPropertyReference builds a reference to a property of base (after
// ToObject coercion is the caller's job — see pkg/ops.ToObject).
func NewPropertyReference(base value.Value, name value.PropertyKey, strict bool) *Reference {
	return &Reference{Base: base, Name: name, Strict: strict}
}

// baseObjectFn abstracts "coerce base to an Object" (pkg/ops.ToObject) so
// this package does not need to import pkg/ops (which itself sits above
// completion in the layering, §2).
type baseObjectFn func(value.Value) (*value.Object, error)

// GetValue implements the GetValue abstract operation (§4.1): dereferences
// a Reference to its current value, or fails with a ReferenceError-shaped
// Go error for an unresolvable reference.
func GetValue(r *Reference, toObject baseObjectFn) (value.Value, error) {
	if r.Unresolvable {
		return nil, environment.ErrNotDefined
	}
	if r.EnvBase != nil {
		return r.EnvBase.GetBindingValue(r.Name.Str, r.Strict)
	}
	this := r.Base
	if r.HasThisValue {
		this = r.ThisValue
	}
	obj, err := toObject(r.Base)
	if err != nil {
		return nil, err
	}
	return obj.Get(r.Name, this)
}

// PutValue implements the PutValue abstract operation (§4.1), honouring
// strict-mode failure semantics (§4.2, §7): writing to an unresolvable
// reference returns ErrNotDefined whatever the reference's strictness; no
// implicit global is created.
func PutValue(r *Reference, v value.Value, toObject baseObjectFn) error {
	if r.Unresolvable {
		if r.Strict {
			return environment.ErrNotDefined
		}
		return environment.ErrNotDefined
	}
	if r.EnvBase != nil {
		return r.EnvBase.SetMutableBinding(r.Name.Str, v, r.Strict)
	}
	this := r.Base
	if r.HasThisValue {
		this = r.ThisValue
	}
	obj, err := toObject(r.Base)
	if err != nil {
		return err
	}
	ok, err := obj.Set(r.Name, v, this)
	if err != nil {
		return err
	}
	if !ok && r.Strict {
		return environment.ErrImmutable
	}
	return nil
}

// InitializeReferencedBinding turns an uninitialised binding into an
// initialised one (§4.1), used by declaration and destructuring
// machinery. It delegates to the record's InitializeBinding; a declarative
// record does not reject a second initialisation and simply replaces the
// value.
func InitializeReferencedBinding(r *Reference, v value.Value) error {
	return r.EnvBase.InitializeBinding(r.Name.Str, v)
}

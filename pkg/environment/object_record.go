package environment

import "github.com/cwbudde/go-ecma/pkg/value"

// ObjectRecord forwards binding lookups to a backing object (§3.6): used
// for the global object and for `with` (§4.5). IsWithEnvironment governs
// `unscopables`-free lookup gating used only by `with`.
type ObjectRecord struct {
	base              *value.Object
	outer             Record
	IsWithEnvironment bool
}

// NewObjectRecord creates an object environment record over obj.
func NewObjectRecord(obj *value.Object, outer Record, isWith bool) *ObjectRecord {
	return &ObjectRecord{base: obj, outer: outer, IsWithEnvironment: isWith}
}

func (r *ObjectRecord) Outer() Record { return r.outer }

func (r *ObjectRecord) HasBinding(name string) bool {
	ok, _ := r.base.HasProperty(value.StringKey(name))
	return ok
}

func (r *ObjectRecord) CreateMutableBinding(name string, deletable bool) error {
	_, err := r.base.DefineOwnProperty(value.StringKey(name), value.DataProperty(value.Undefined, true, true, deletable))
	return err
}

func (r *ObjectRecord) CreateImmutableBinding(string, bool) error {
	return ErrAlreadyDeclared // object records never host immutable bindings (§3.6)
}

func (r *ObjectRecord) InitializeBinding(name string, v value.Value) error {
	return r.SetMutableBinding(name, v, false)
}

func (r *ObjectRecord) SetMutableBinding(name string, v value.Value, strict bool) error {
	ok, err := r.base.Set(value.StringKey(name), v, r.base)
	if err != nil {
		return err
	}
	if !ok && strict {
		return ErrImmutable
	}
	return nil
}

func (r *ObjectRecord) GetBindingValue(name string, strict bool) (value.Value, error) {
	has, err := r.base.HasProperty(value.StringKey(name))
	if err != nil {
		return nil, err
	}
	if !has {
		if strict {
			return nil, ErrNotDefined
		}
		return value.Undefined, nil
	}
	return r.base.Get(value.StringKey(name), r.base)
}

func (r *ObjectRecord) DeleteBinding(name string) (bool, error) {
	return r.base.Delete(value.StringKey(name))
}

func (r *ObjectRecord) HasThisBinding() bool  { return false }
func (r *ObjectRecord) HasSuperBinding() bool { return false }
func (r *ObjectRecord) WithBaseObject() *value.Object {
	if r.IsWithEnvironment {
		return r.base
	}
	return nil
}

// BaseObject returns the backing object regardless of with-environment
// status (global records need this to install var/function bindings).
func (r *ObjectRecord) BaseObject() *value.Object { return r.base }

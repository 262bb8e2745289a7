package environment

import "github.com/cwbudde/go-ecma/pkg/value"

// GlobalRecord composes a DeclarativeRecord (lexical `let`/`const`/class
// bindings) and an ObjectRecord (the global object, backing `var` and
// function declarations), per §3.6. It tracks var-declared and
// lexically-declared names separately so GlobalDeclarationInstantiation
// (§4.8) can validate collisions between the two.
type GlobalRecord struct {
	decl     *DeclarativeRecord
	obj      *ObjectRecord
	this     value.Value
	varNames map[string]bool
}

// NewGlobalRecord creates the global environment record over globalObject,
// with `this` bound to globalThisValue (the realm's global object in
// non-strict scripts).
func NewGlobalRecord(globalObject *value.Object, globalThisValue value.Value) *GlobalRecord {
	return &GlobalRecord{
		decl:     NewDeclarativeRecord(nil),
		obj:      NewObjectRecord(globalObject, nil, false),
		this:     globalThisValue,
		varNames: make(map[string]bool),
	}
}

func (r *GlobalRecord) Outer() Record { return nil }

func (r *GlobalRecord) HasBinding(name string) bool {
	return r.decl.HasBinding(name) || r.obj.HasBinding(name)
}

func (r *GlobalRecord) CreateMutableBinding(name string, deletable bool) error {
	if r.decl.HasBinding(name) {
		return ErrAlreadyDeclared
	}
	return r.decl.CreateMutableBinding(name, deletable)
}

func (r *GlobalRecord) CreateImmutableBinding(name string, strict bool) error {
	if r.decl.HasBinding(name) {
		return ErrAlreadyDeclared
	}
	return r.decl.CreateImmutableBinding(name, strict)
}

func (r *GlobalRecord) InitializeBinding(name string, v value.Value) error {
	if r.decl.HasBinding(name) {
		return r.decl.InitializeBinding(name, v)
	}
	return r.obj.InitializeBinding(name, v)
}

func (r *GlobalRecord) SetMutableBinding(name string, v value.Value, strict bool) error {
	if r.decl.HasBinding(name) {
		return r.decl.SetMutableBinding(name, v, strict)
	}
	return r.obj.SetMutableBinding(name, v, strict)
}

func (r *GlobalRecord) GetBindingValue(name string, strict bool) (value.Value, error) {
	if r.decl.HasBinding(name) {
		return r.decl.GetBindingValue(name, strict)
	}
	return r.obj.GetBindingValue(name, strict)
}

func (r *GlobalRecord) DeleteBinding(name string) (bool, error) {
	if r.decl.HasBinding(name) {
		return r.decl.DeleteBinding(name)
	}
	ok, err := r.obj.DeleteBinding(name)
	if ok {
		delete(r.varNames, name)
	}
	return ok, err
}

func (r *GlobalRecord) HasThisBinding() bool          { return true }
func (r *GlobalRecord) HasSuperBinding() bool         { return false }
func (r *GlobalRecord) WithBaseObject() *value.Object { return nil }
func (r *GlobalRecord) GetThisBinding() value.Value   { return r.this }

// GlobalObject returns the backing global object.
func (r *GlobalRecord) GlobalObject() *value.Object { return r.obj.BaseObject() }

// HasVarDeclaration reports whether name was declared via `var` or a
// hoisted function declaration (§4.2).
func (r *GlobalRecord) HasVarDeclaration(name string) bool { return r.varNames[name] }

// HasLexicalDeclaration reports whether name is a `let`/`const`/class
// binding (§4.2).
func (r *GlobalRecord) HasLexicalDeclaration(name string) bool { return r.decl.HasBinding(name) }

// HasRestrictedGlobalProperty reports whether name exists as a
// non-configurable own property of the global object (§4.2/§4.8) — such
// names cannot be shadowed by a new lexical declaration.
func (r *GlobalRecord) HasRestrictedGlobalProperty(name string) bool {
	desc, ok := r.GlobalObject().GetOwnProperty(value.StringKey(name))
	return ok && !desc.Configurable
}

// CanDeclareGlobalVar reports whether a `var` declaration for name may
// proceed (§4.8): true if already declared, or the global object is
// extensible.
func (r *GlobalRecord) CanDeclareGlobalVar(name string) bool {
	if _, ok := r.GlobalObject().GetOwnProperty(value.StringKey(name)); ok {
		return true
	}
	return r.GlobalObject().IsExtensible()
}

// CanDeclareGlobalFunction reports whether a hoisted function declaration
// for name may proceed (§4.8): existing configurable properties, or
// non-configurable writable+enumerable data properties, or extensibility
// for a new property.
func (r *GlobalRecord) CanDeclareGlobalFunction(name string) bool {
	desc, ok := r.GlobalObject().GetOwnProperty(value.StringKey(name))
	if !ok {
		return r.GlobalObject().IsExtensible()
	}
	if desc.Configurable {
		return true
	}
	return desc.IsData() && desc.Writable && desc.Enumerable
}

// CreateGlobalVarBinding installs a `var` binding idempotently (§4.8).
func (r *GlobalRecord) CreateGlobalVarBinding(name string, deletable bool) error {
	hasProp, _ := r.GlobalObject().HasProperty(value.StringKey(name))
	if !hasProp && r.GlobalObject().IsExtensible() {
		if _, err := r.GlobalObject().DefineOwnProperty(value.StringKey(name),
			value.DataProperty(value.Undefined, true, true, deletable)); err != nil {
			return err
		}
	}
	r.varNames[name] = true
	return nil
}

// CreateGlobalFunctionBinding installs a hoisted function's binding,
// overwriting any existing configurable property value (§4.8 last-wins).
func (r *GlobalRecord) CreateGlobalFunctionBinding(name string, fn value.Value, deletable bool) error {
	desc, ok := r.GlobalObject().GetOwnProperty(value.StringKey(name))
	var newDesc *value.PropertyDescriptor
	if !ok || desc.Configurable {
		newDesc = value.DataProperty(fn, true, true, deletable)
	} else {
		newDesc = &value.PropertyDescriptor{Value: fn, HasValue: true}
	}
	if _, err := r.GlobalObject().DefineOwnProperty(value.StringKey(name), newDesc); err != nil {
		return err
	}
	r.varNames[name] = true
	return nil
}

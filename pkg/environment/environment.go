// Package environment implements the five Environment Record variants
// (§3.6) and the identifier-resolution algorithm (§4.2): Declarative,
// Object, Function, Module, and Global records, each exposing the binding
// operations named in §4.2, plus the outer-link walk used by ResolveBinding.
//
// Grounded on the teacher's runtime.Environment (internal/interp/runtime/
// environment.go): a store + outer-pointer chain, generalised from DWScript's
// flat case-insensitive variable map into per-binding mutability/TDZ state,
// since the distilled spec requires tracking "mutable", "immutable",
// "initialised" bits per binding rather than DWScript's single mutable
// store.
package environment

import (
	"errors"

	"github.com/cwbudde/go-ecma/pkg/value"
)

// Sentinel errors surfaced by binding operations; the evaluator (pkg/ops,
// pkg/evaluator) maps these onto the appropriate ReferenceError/TypeError
// Throw completion (§7) — environment records themselves never build
// Completion records, keeping this package independent of pkg/completion.
var (
	// ErrUninitialized is returned by GetBindingValue for a binding in its
	// temporal dead zone (§4.2).
	ErrUninitialized = errors.New("cannot access binding before initialization")
	// ErrNotDefined is returned when a name has no binding in this record.
	ErrNotDefined = errors.New("binding does not exist")
	// ErrImmutable is returned by SetMutableBinding against an immutable
	// binding; strict callers turn this into TypeError, non-strict callers
	// silently ignore it per §4.2 (except unresolvable strict assignment,
	// handled one layer up in pkg/completion.Reference).
	ErrImmutable = errors.New("assignment to constant binding")
	// ErrAlreadyDeclared is returned by CreateMutableBinding/
	// CreateImmutableBinding when the name already exists in this record.
	ErrAlreadyDeclared = errors.New("binding already declared")
	// ErrRestrictedGlobal is returned by global-record operations against a
	// non-configurable global property (§4.8).
	ErrRestrictedGlobal = errors.New("cannot declare over restricted global property")
)

// Record is the common interface every environment-record variant
// implements (§4.2). Function/Global records add further methods declared
// on their concrete types (GetThisBinding, HasVarDeclaration, ...); callers
// that need those type-assert to *FunctionRecord / *GlobalRecord.
type Record interface {
	HasBinding(name string) bool
	CreateMutableBinding(name string, deletable bool) error
	CreateImmutableBinding(name string, strict bool) error
	InitializeBinding(name string, v value.Value) error
	SetMutableBinding(name string, v value.Value, strict bool) error
	GetBindingValue(name string, strict bool) (value.Value, error)
	DeleteBinding(name string) (bool, error)
	HasThisBinding() bool
	HasSuperBinding() bool
	WithBaseObject() *value.Object // nil when this record has no base object
	Outer() Record
}

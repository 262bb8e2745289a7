// Package realm implements the Realm (§3.8): a set of intrinsic objects
// indexed by well-known name, a global object, and a global environment.
// Each realm is independent; an engine may host several.
package realm

import (
	"github.com/google/uuid"

	"github.com/cwbudde/go-ecma/pkg/environment"
	"github.com/cwbudde/go-ecma/pkg/value"
)

// Realm groups a realm's intrinsics registry, global object, and global
// environment (§3.8). ID gives each realm a stable identity (promoted from
// the funvibe/funxy sibling example's use of google/uuid for object
// identity, per SPEC_FULL.md).
type Realm struct {
	ID uuid.UUID

	intrinsics map[string]*value.Object
	symbols    map[string]*value.Symbol

	GlobalObject *value.Object
	GlobalEnv    *environment.GlobalRecord
}

// New allocates a realm with an empty intrinsics registry and a fresh
// global object/environment. Plugins populate intrinsics from their
// Install method (§6 Plugin contract); New itself installs no built-ins.
func New() *Realm {
	globalObj := value.NewObject(value.Null)
	globalObj.ClassName = "global"
	r := &Realm{
		ID:           uuid.New(),
		intrinsics:   make(map[string]*value.Object),
		symbols:      make(map[string]*value.Symbol),
		GlobalObject: globalObj,
	}
	r.GlobalEnv = environment.NewGlobalRecord(globalObj, globalObj)
	return r
}

// Intrinsic looks up a well-known intrinsic by name (e.g.
// "%Object.prototype%", "%Function.prototype%", "%Promise%") (§3.8, §6
// get_intrinsic).
func (r *Realm) Intrinsic(name string) (*value.Object, bool) {
	o, ok := r.intrinsics[name]
	return o, ok
}

// SetIntrinsic installs or replaces an intrinsic under a well-known name;
// called from plugins' Install methods.
func (r *Realm) SetIntrinsic(name string, obj *value.Object) {
	r.intrinsics[name] = obj
}

// WellKnownSymbol returns the realm-scoped well-known symbol registered
// under name (e.g. value.SymIterator), creating it on first use so plugins
// can register handlers before any other plugin has touched the symbol.
func (r *Realm) WellKnownSymbol(name string) *value.Symbol {
	if s, ok := r.symbols[name]; ok {
		return s
	}
	s := value.NewSymbol(name)
	r.symbols[name] = s
	return s
}

// NewOrdinaryObject creates a plain object whose prototype is this realm's
// %Object.prototype%, falling back to Null if that intrinsic is not yet
// installed (useful during bootstrap).
func (r *Realm) NewOrdinaryObject() *value.Object {
	proto, ok := r.Intrinsic("%Object.prototype%")
	if !ok {
		return value.NewObject(value.Null)
	}
	return value.NewObject(proto)
}

package value

// ExoticMethods lets an exotic object override one or more of the ordinary
// internal methods (§3.2: Array, String, Arguments, Bound-function, Proxy,
// TypedArray, Module-namespace exotic). Every field is optional; a nil
// field means "use the ordinary algorithm". This mirrors the ordinary/
// exotic split named in §3.2 without needing a Go interface per node kind.
type ExoticMethods struct {
	GetPrototypeOf    func(o *Object) Value
	SetPrototypeOf    func(o *Object, proto Value) bool
	IsExtensible      func(o *Object) bool
	PreventExtensions func(o *Object) bool
	GetOwnProperty    func(o *Object, key PropertyKey) (*PropertyDescriptor, bool)
	DefineOwnProperty func(o *Object, key PropertyKey, desc *PropertyDescriptor) (bool, error)
	HasProperty       func(o *Object, key PropertyKey) (bool, error)
	Get               func(o *Object, key PropertyKey, receiver Value) (Value, error)
	Set               func(o *Object, key PropertyKey, v Value, receiver Value) (bool, error)
	Delete            func(o *Object, key PropertyKey) (bool, error)
	OwnPropertyKeys   func(o *Object) []PropertyKey

	Call      func(o *Object, this Value, args []Value) (Value, error)
	Construct func(o *Object, args []Value, newTarget *Object) (Value, error)
}

// Object is an ordinary or exotic ECMAScript object: a prototype link, an
// extensibility flag, an ordered property map, and a set of typed internal
// slots (§3.2). Slots are looked up by name because the slot set is
// open-ended across built-ins (FormalParameters, ECMAScriptCode,
// BoundTargetFunction, PromiseState, MapData, ...); callers that know a
// slot's static type use the typed accessors in slots.go.
type Object struct {
	proto      Value // *Object or Null
	extensible bool

	keys  []PropertyKey
	props map[PropertyKey]*PropertyDescriptor

	slots map[string]any

	exotic *ExoticMethods

	// ClassName is used by Object.prototype.toString's [[Class]]-style tag
	// and by debug output; it is not a spec internal slot.
	ClassName string
}

// NewObject allocates an ordinary, extensible object with the given
// prototype (pass Null for no prototype).
func NewObject(proto Value) *Object {
	return &Object{
		proto:      proto,
		extensible: true,
		props:      make(map[PropertyKey]*PropertyDescriptor),
		slots:      make(map[string]any),
		ClassName:  "Object",
	}
}

func (*Object) Kind() Kind         { return KindObject }
func (o *Object) GoString() string { return "[object " + o.ClassName + "]" }

// --- internal slots -------------------------------------------------------

// SetSlot installs an internal slot (presence of a slot, per §3.2, is what
// distinguishes e.g. a Date object from a plain object).
func (o *Object) SetSlot(name string, v any) { o.slots[name] = v }

// Slot retrieves an internal slot's value and whether it is present.
func (o *Object) Slot(name string) (any, bool) { v, ok := o.slots[name]; return v, ok }

// HasSlot reports presence of an internal slot without retrieving it.
func (o *Object) HasSlot(name string) bool { _, ok := o.slots[name]; return ok }

// SetExotic installs the exotic-method override set (§3.2). Passing nil
// restores ordinary-object behaviour.
func (o *Object) SetExotic(m *ExoticMethods) { o.exotic = m }

// --- ordinary internal methods (§3.2), each consulting an exotic override first ---

func (o *Object) GetPrototypeOf() Value {
	if o.exotic != nil && o.exotic.GetPrototypeOf != nil {
		return o.exotic.GetPrototypeOf(o)
	}
	return o.proto
}

func (o *Object) SetPrototypeOf(proto Value) bool {
	if o.exotic != nil && o.exotic.SetPrototypeOf != nil {
		return o.exotic.SetPrototypeOf(o, proto)
	}
	if !o.extensible {
		return sameProto(o.proto, proto)
	}
	if hasPrototypeCycle(o, proto) {
		return false
	}
	o.proto = proto
	return true
}

func sameProto(a, b Value) bool {
	ao, aIsObj := a.(*Object)
	bo, bIsObj := b.(*Object)
	if aIsObj != bIsObj {
		return false
	}
	if !aIsObj {
		return true // both Null
	}
	return ao == bo
}

func hasPrototypeCycle(o *Object, proto Value) bool {
	cur, ok := proto.(*Object)
	for ok {
		if cur == o {
			return true
		}
		cur, ok = cur.GetPrototypeOf().(*Object)
	}
	return false
}

func (o *Object) IsExtensible() bool {
	if o.exotic != nil && o.exotic.IsExtensible != nil {
		return o.exotic.IsExtensible(o)
	}
	return o.extensible
}

func (o *Object) PreventExtensions() bool {
	if o.exotic != nil && o.exotic.PreventExtensions != nil {
		return o.exotic.PreventExtensions(o)
	}
	o.extensible = false
	return true
}

func (o *Object) GetOwnProperty(key PropertyKey) (*PropertyDescriptor, bool) {
	if o.exotic != nil && o.exotic.GetOwnProperty != nil {
		return o.exotic.GetOwnProperty(o, key)
	}
	d, ok := o.props[key]
	return d, ok
}

// DefineOwnPropertyOrdinary implements OrdinaryDefineOwnProperty: validates
// the configurable/writable transition invariants (§3.3) then installs the
// (possibly partial, merged-with-current) descriptor.
func (o *Object) DefineOwnPropertyOrdinary(key PropertyKey, desc *PropertyDescriptor) (bool, error) {
	current, exists := o.props[key]
	if !exists {
		if !o.extensible {
			return false, nil
		}
		o.insertOrdered(key, normalizeNewDescriptor(desc))
		return true, nil
	}
	if !current.Configurable {
		if desc.HasConfigurable && desc.Configurable {
			return false, nil
		}
		if desc.HasEnumerable && desc.Enumerable != current.Enumerable {
			return false, nil
		}
		if current.IsData() != desc.IsAccessor() && (desc.HasGet || desc.HasSet) {
			return false, nil
		}
		if current.IsData() && !current.Writable {
			if desc.HasWritable && desc.Writable {
				return false, nil
			}
			if desc.HasValue && !SameValue(desc.Value, current.Value) {
				return false, nil
			}
		}
	}
	merged := mergeDescriptor(current, desc)
	o.props[key] = merged
	return true, nil
}

func normalizeNewDescriptor(desc *PropertyDescriptor) *PropertyDescriptor {
	d := &PropertyDescriptor{}
	if desc.IsAccessor() {
		d.Get, d.HasGet = desc.Get, true
		d.Set, d.HasSet = desc.Set, true
	} else {
		d.Value = desc.Value
		if desc.HasValue {
			d.HasValue = true
		} else {
			d.Value = Undefined
			d.HasValue = true
		}
		d.Writable = desc.Writable
		d.HasWritable = true
	}
	d.Enumerable = desc.Enumerable
	d.Configurable = desc.Configurable
	d.HasEnumerable, d.HasConfigurable = true, true
	return d
}

func mergeDescriptor(current, desc *PropertyDescriptor) *PropertyDescriptor {
	merged := *current
	if desc.HasValue {
		merged.Value, merged.HasValue = desc.Value, true
		merged.Get, merged.Set, merged.HasGet, merged.HasSet = nil, nil, false, false
	}
	if desc.HasWritable {
		merged.Writable, merged.HasWritable = desc.Writable, true
	}
	if desc.HasGet {
		merged.Get, merged.HasGet = desc.Get, true
		merged.Value, merged.HasValue, merged.Writable, merged.HasWritable = nil, false, false, false
	}
	if desc.HasSet {
		merged.Set, merged.HasSet = desc.Set, true
		merged.Value, merged.HasValue, merged.Writable, merged.HasWritable = nil, false, false, false
	}
	if desc.HasEnumerable {
		merged.Enumerable, merged.HasEnumerable = desc.Enumerable, true
	}
	if desc.HasConfigurable {
		merged.Configurable, merged.HasConfigurable = desc.Configurable, true
	}
	return &merged
}

// insertOrdered inserts key keeping the §3.2 ordering invariant: integer
// indices ascending first, then every other key (string or symbol) in
// insertion order; string and symbol keys are not separated from each
// other.
func (o *Object) insertOrdered(key PropertyKey, desc *PropertyDescriptor) {
	o.props[key] = desc
	if _, isIndex := key.IsArrayIndex(); isIndex {
		insertAt := 0
		for insertAt < len(o.keys) {
			if idx, ok := o.keys[insertAt].IsArrayIndex(); ok {
				myIdx, _ := key.IsArrayIndex()
				if idx > myIdx {
					break
				}
				insertAt++
				continue
			}
			break
		}
		o.keys = append(o.keys, PropertyKey{})
		copy(o.keys[insertAt+1:], o.keys[insertAt:])
		o.keys[insertAt] = key
		return
	}
	o.keys = append(o.keys, key)
}

func (o *Object) DefineOwnProperty(key PropertyKey, desc *PropertyDescriptor) (bool, error) {
	if o.exotic != nil && o.exotic.DefineOwnProperty != nil {
		return o.exotic.DefineOwnProperty(o, key, desc)
	}
	return o.DefineOwnPropertyOrdinary(key, desc)
}

func (o *Object) HasProperty(key PropertyKey) (bool, error) {
	if o.exotic != nil && o.exotic.HasProperty != nil {
		return o.exotic.HasProperty(o, key)
	}
	if _, ok := o.GetOwnProperty(key); ok {
		return true, nil
	}
	if parent, ok := o.GetPrototypeOf().(*Object); ok {
		return parent.HasProperty(key)
	}
	return false, nil
}

func (o *Object) Get(key PropertyKey, receiver Value) (Value, error) {
	if o.exotic != nil && o.exotic.Get != nil {
		return o.exotic.Get(o, key, receiver)
	}
	desc, ok := o.GetOwnProperty(key)
	if !ok {
		if parent, ok := o.GetPrototypeOf().(*Object); ok {
			return parent.Get(key, receiver)
		}
		return Undefined, nil
	}
	if desc.IsAccessor() {
		if desc.Get == nil {
			return Undefined, nil
		}
		fn, _ := desc.Get.(*Object)
		return fn.CallAsFunction(receiver, nil)
	}
	return desc.Value, nil
}

func (o *Object) Set(key PropertyKey, v Value, receiver Value) (bool, error) {
	if o.exotic != nil && o.exotic.Set != nil {
		return o.exotic.Set(o, key, v, receiver)
	}
	own, ok := o.GetOwnProperty(key)
	if !ok {
		if parent, ok := o.GetPrototypeOf().(*Object); ok {
			return parent.Set(key, v, receiver)
		}
		own = DataProperty(Undefined, true, true, true)
	}
	if own.IsAccessor() {
		if own.Set == nil {
			return false, nil
		}
		fn, _ := own.Set.(*Object)
		_, err := fn.CallAsFunction(receiver, []Value{v})
		return err == nil, err
	}
	if !own.Writable {
		return false, nil
	}
	recvObj, ok := receiver.(*Object)
	if !ok {
		return false, nil
	}
	existing, hasOwn := recvObj.GetOwnProperty(key)
	if hasOwn {
		if existing.IsAccessor() || !existing.Writable {
			return false, nil
		}
		return recvObj.DefineOwnProperty(key, &PropertyDescriptor{Value: v, HasValue: true})
	}
	return recvObj.DefineOwnProperty(key, DataProperty(v, true, true, true))
}

func (o *Object) Delete(key PropertyKey) (bool, error) {
	if o.exotic != nil && o.exotic.Delete != nil {
		return o.exotic.Delete(o, key)
	}
	desc, ok := o.props[key]
	if !ok {
		return true, nil
	}
	if !desc.Configurable {
		return false, nil
	}
	delete(o.props, key)
	for i, k := range o.keys {
		if k.Equal(key) {
			o.keys = append(o.keys[:i], o.keys[i+1:]...)
			break
		}
	}
	return true, nil
}

func (o *Object) OwnPropertyKeys() []PropertyKey {
	if o.exotic != nil && o.exotic.OwnPropertyKeys != nil {
		return o.exotic.OwnPropertyKeys(o)
	}
	out := make([]PropertyKey, len(o.keys))
	copy(out, o.keys)
	return out
}

// --- callable / constructible (§3.2 Call/Construct internal methods) ---

// IsCallable reports whether this object has a [[Call]] internal method.
func (o *Object) IsCallable() bool {
	return o.exotic != nil && o.exotic.Call != nil
}

// IsConstructor reports whether this object has a [[Construct]] internal
// method.
func (o *Object) IsConstructor() bool {
	return o.exotic != nil && o.exotic.Construct != nil
}

// CallAsFunction invokes [[Call]]; callers must check IsCallable first in
// contexts where a TypeError completion (not a Go error) is required (see
// pkg/evaluator for that boundary).
func (o *Object) CallAsFunction(this Value, args []Value) (Value, error) {
	return o.exotic.Call(o, this, args)
}

// Construct invokes [[Construct]].
func (o *Object) Construct(args []Value, newTarget *Object) (Value, error) {
	return o.exotic.Construct(o, args, newTarget)
}

// DefineMethod is a construction-time convenience for installing a
// non-enumerable, writable, configurable data property — the shape almost
// every built-in method / constructor property uses.
func (o *Object) DefineMethod(name string, fn *Object) {
	_, _ = o.DefineOwnProperty(StringKey(name), DataProperty(fn, true, false, true))
}

// DefineValue installs a writable, configurable data property whose
// enumerability is given by enumerable — used for constructor "prototype"
// back-links etc.
func (o *Object) DefineValue(name string, v Value, enumerable bool) {
	_, _ = o.DefineOwnProperty(StringKey(name), DataProperty(v, true, enumerable, true))
}

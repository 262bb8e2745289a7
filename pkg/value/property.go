package value

// PropertyKey is a string or symbol property name, insertion-ordered with
// integer-index keys sorted ascending first (§3.2).
type PropertyKey struct {
	// Sym is non-nil for a symbol key; otherwise Str is the string key.
	Sym *Symbol
	Str string
}

// StringKey builds a PropertyKey from a plain string name.
func StringKey(s string) PropertyKey { return PropertyKey{Str: s} }

// SymbolKey builds a PropertyKey from a symbol.
func SymbolKey(s *Symbol) PropertyKey { return PropertyKey{Sym: s} }

// IsArrayIndex reports whether this key is a canonical array index string
// ("0", "1", "2", ... without leading zeros, < 2^32-1), used both by the
// ordered-property-map sort (§3.2) and the Array exotic [[DefineOwnProperty]]
// length-synchronisation (§3.2 exotic list).
func (k PropertyKey) IsArrayIndex() (uint32, bool) {
	if k.Sym != nil || k.Str == "" {
		return 0, false
	}
	if k.Str == "0" {
		return 0, true
	}
	if k.Str[0] < '1' || k.Str[0] > '9' {
		return 0, false
	}
	var n uint64
	for _, c := range k.Str {
		if c < '0' || c > '9' {
			return 0, false
		}
		n = n*10 + uint64(c-'0')
		if n >= 1<<32-1 {
			return 0, false
		}
	}
	return uint32(n), true
}

func (k PropertyKey) String() string {
	if k.Sym != nil {
		return k.Sym.GoString()
	}
	return k.Str
}

// Equal reports key equality: same symbol identity, or same string.
func (k PropertyKey) Equal(o PropertyKey) bool {
	if k.Sym != nil || o.Sym != nil {
		return k.Sym == o.Sym
	}
	return k.Str == o.Str
}

// PropertyDescriptor is either a data descriptor (Value + Writable) or an
// accessor descriptor (Get + Set), with Enumerable/Configurable attributes
// (§3.3). A descriptor may be partial during DefineOwnProperty; HasValue/
// HasGet/HasSet/HasWritable/HasEnumerable/HasConfigurable record which
// fields of a partial descriptor were actually supplied.
type PropertyDescriptor struct {
	Value Value
	Get   Value // callable Object, or nil
	Set   Value // callable Object, or nil

	Writable     bool
	Enumerable   bool
	Configurable bool

	HasValue        bool
	HasGet          bool
	HasSet          bool
	HasWritable     bool
	HasEnumerable   bool
	HasConfigurable bool
}

// IsAccessor reports whether this descriptor has a getter or setter.
func (d *PropertyDescriptor) IsAccessor() bool { return d.HasGet || d.HasSet }

// IsData reports whether this descriptor carries a data value (or is empty,
// which the spec also treats as a data descriptor by default).
func (d *PropertyDescriptor) IsData() bool { return !d.IsAccessor() }

// DataProperty builds a fully-populated writable/enumerable/configurable
// data descriptor — the common case for ordinary property creation.
func DataProperty(v Value, writable, enumerable, configurable bool) *PropertyDescriptor {
	return &PropertyDescriptor{
		Value: v, Writable: writable, Enumerable: enumerable, Configurable: configurable,
		HasValue: true, HasWritable: true, HasEnumerable: true, HasConfigurable: true,
	}
}

// IsFrozen reports whether a fully-populated data descriptor is frozen: a
// non-configurable, non-writable data property (§3.3 invariant).
func (d *PropertyDescriptor) IsFrozen() bool {
	return d.IsData() && !d.Configurable && !d.Writable
}

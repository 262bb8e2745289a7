// Package value implements the ECMAScript value and object data model: the
// tagged Value union (§3.1), ordinary and exotic Objects with internal slots
// and an ordered property map (§3.2), and PropertyDescriptor (§3.3).
//
// Grounded on the shape of the teacher's internal/interp/runtime value
// system (Value/NumericValue/ComparableValue/IndexableValue interfaces in
// value_interfaces.go): a small closed interface plus concrete kinds, rather
// than one giant struct with unused fields per variant.
package value

import (
	"math/big"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Kind discriminates the primitive/object tag of a Value (§3.1).
type Kind int

const (
	KindUndefined Kind = iota
	KindNull
	KindBoolean
	KindString
	KindSymbol
	KindNumber
	KindBigInt
	KindObject
)

func (k Kind) String() string {
	switch k {
	case KindUndefined:
		return "undefined"
	case KindNull:
		return "null"
	case KindBoolean:
		return "boolean"
	case KindString:
		return "string"
	case KindSymbol:
		return "symbol"
	case KindNumber:
		return "number"
	case KindBigInt:
		return "bigint"
	case KindObject:
		return "object"
	default:
		return "unknown"
	}
}

// Value is any ECMAScript language value. Implementations are Undefined,
// Null, Boolean, *String, *Symbol, Number, *BigInt, and *Object (§3.1).
type Value interface {
	Kind() Kind
	// GoString renders a debug form; built-ins use ops.ToString for
	// the user-visible ToString algorithm instead (see pkg/ops).
	GoString() string
}

// Undefined is the distinguished `undefined` value.
type undefinedValue struct{}

func (undefinedValue) Kind() Kind       { return KindUndefined }
func (undefinedValue) GoString() string { return "undefined" }

// Undefined is the single `undefined` value instance.
var Undefined Value = undefinedValue{}

// Null is the distinguished `null` value.
type nullValue struct{}

func (nullValue) Kind() Kind       { return KindNull }
func (nullValue) GoString() string { return "null" }

// Null is the single `null` value instance.
var Null Value = nullValue{}

// Boolean is a boolean value.
type Boolean bool

func (Boolean) Kind() Kind { return KindBoolean }
func (b Boolean) GoString() string {
	if b {
		return "true"
	}
	return "false"
}

// True and False are the two Boolean value instances.
const (
	True  Boolean = true
	False Boolean = false
)

// Number is an IEEE 754 double, canonicalised so that any NaN bit pattern
// compares as NaN via Go's own float64 NaN semantics (§3.1).
type Number float64

func (Number) Kind() Kind { return KindNumber }
func (n Number) GoString() string {
	return formatNumber(float64(n))
}

// BigInt is an arbitrary-precision integer value, distinct from Number;
// mixing them in arithmetic is a TypeError (§4.4, §7).
type BigInt struct {
	V *big.Int
}

func (*BigInt) Kind() Kind { return KindBigInt }
func (b *BigInt) GoString() string {
	return b.V.String() + "n"
}

// NewBigInt wraps a *big.Int as a BigInt value.
func NewBigInt(v *big.Int) *BigInt { return &BigInt{V: new(big.Int).Set(v)} }

// String is a UTF-16 code-unit sequence (§3.1). Construction transcodes a
// Go (UTF-8) string through golang.org/x/text/encoding/unicode, the same
// package the teacher uses directly for its own encoding conversions
// (internal/interp/encoding.go) — this keeps code-unit length, unpaired
// surrogates, and lone high/low surrogates faithful to the spec rather than
// silently round-tripping through a UTF-8-safe approximation.
type String struct {
	units []uint16
}

func (*String) Kind() Kind { return KindString }

func (s *String) GoString() string { return s.String() }

// NewString constructs a String value from a Go string, transcoding to
// UTF-16 code units.
func NewString(s string) *String {
	units, _ := utf8ToUTF16(s)
	return &String{units: units}
}

// NewStringFromUnits constructs a String value directly from UTF-16 code
// units (e.g. produced by the lexer from a source literal).
func NewStringFromUnits(units []uint16) *String {
	cp := make([]uint16, len(units))
	copy(cp, units)
	return &String{units: cp}
}

// Units returns the UTF-16 code units backing this string.
func (s *String) Units() []uint16 { return s.units }

// Length is the ECMAScript `.length` of a string: its UTF-16 code-unit count.
func (s *String) Length() int { return len(s.units) }

// String renders the value as a Go (UTF-8) string, replacing lone
// surrogates with U+FFFD, for host-side display.
func (s *String) String() string {
	out, _ := utf16ToUTF8(s.units)
	return out
}

// NFC returns the NFC-normalized form, using golang.org/x/text/unicode/norm
// exactly as the teacher's string_helpers.go does for its own normalization
// built-ins.
func (s *String) NFC() *String {
	return NewString(norm.NFC.String(s.String()))
}

func utf8ToUTF16(s string) ([]uint16, error) {
	enc := unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM)
	encoded, _, err := transform.String(enc.NewEncoder(), s)
	if err != nil {
		return utf16FromRunes(s), nil
	}
	units := make([]uint16, 0, len(encoded)/2)
	for i := 0; i+1 < len(encoded); i += 2 {
		units = append(units, uint16(encoded[i])<<8|uint16(encoded[i+1]))
	}
	return units, nil
}

func utf16FromRunes(s string) []uint16 {
	var units []uint16
	for _, r := range s {
		if r > 0xFFFF {
			r -= 0x10000
			units = append(units, uint16(0xD800+(r>>10)), uint16(0xDC00+(r&0x3FF)))
		} else {
			units = append(units, uint16(r))
		}
	}
	return units
}

func utf16ToUTF8(units []uint16) (string, error) {
	buf := make([]byte, 0, len(units)*2)
	for _, u := range units {
		buf = append(buf, byte(u>>8), byte(u&0xFF))
	}
	dec := unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM)
	out, _, err := transform.Bytes(dec.NewDecoder(), buf)
	if err != nil {
		return string(out), nil
	}
	return string(out), nil
}

package value

// NewArray creates an Array exotic object (§3.2): writes to an integer-index
// property keep "length" synchronised, and writes to "length" truncate or
// extend the index range. Sparse elements (holes) are represented simply
// as absent own properties, which is what makes Array(3) produce a 3-hole
// array that Array.prototype.map must skip (§8 boundary behaviours).
func NewArray(proto Value, initial []Value) *Object {
	o := NewObject(proto)
	o.ClassName = "Array"
	o.DefineOwnProperty(StringKey("length"), &PropertyDescriptor{
		Value: Number(len(initial)), HasValue: true,
		Writable: true, HasWritable: true,
		Enumerable: false, HasEnumerable: true,
		Configurable: false, HasConfigurable: true,
	})
	for i, v := range initial {
		o.DefineOwnProperty(indexKey(i), DataProperty(v, true, true, true))
	}
	o.SetExotic(&ExoticMethods{DefineOwnProperty: arrayDefineOwnProperty})
	return o
}

func indexKey(i int) PropertyKey { return StringKey(uintToString(uint64(i))) }

func uintToString(n uint64) string {
	if n == 0 {
		return "0"
	}
	var buf [20]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
	}
	return string(buf[i:])
}

// ArrayLength reads the current "length" own property as a uint32.
func ArrayLength(o *Object) uint32 {
	d, ok := o.props[StringKey("length")]
	if !ok {
		return 0
	}
	n, _ := d.Value.(Number)
	return uint32(n)
}

func arrayDefineOwnProperty(o *Object, key PropertyKey, desc *PropertyDescriptor) (bool, error) {
	lengthKey := StringKey("length")
	if key.Equal(lengthKey) {
		return arraySetLength(o, desc)
	}
	if idx, ok := key.IsArrayIndex(); ok {
		oldLen := ArrayLength(o)
		lenDesc := o.props[lengthKey]
		if idx >= oldLen && !lenDesc.Writable {
			return false, nil
		}
		ok2, err := o.DefineOwnPropertyOrdinary(key, desc)
		if err != nil || !ok2 {
			return ok2, err
		}
		if idx >= oldLen {
			lenDesc.Value = Number(idx + 1)
		}
		return true, nil
	}
	return o.DefineOwnPropertyOrdinary(key, desc)
}

func arraySetLength(o *Object, desc *PropertyDescriptor) (bool, error) {
	if !desc.HasValue {
		return o.DefineOwnPropertyOrdinary(StringKey("length"), desc)
	}
	newLenNum, ok := desc.Value.(Number)
	if !ok {
		return false, nil
	}
	newLen := uint32(newLenNum)
	oldLenDesc := o.props[StringKey("length")]
	oldLen := uint32(oldLenDesc.Value.(Number))
	newDesc := *desc
	newDesc.Value = Number(newLen)
	if newLen >= oldLen {
		ok2, err := o.DefineOwnPropertyOrdinary(StringKey("length"), &newDesc)
		return ok2, err
	}
	if !oldLenDesc.Writable {
		return false, nil
	}
	for i := oldLen; i > newLen; i-- {
		o.Delete(indexKey(int(i - 1)))
	}
	ok2, err := o.DefineOwnPropertyOrdinary(StringKey("length"), &newDesc)
	return ok2, err
}

// Push appends a value, a thin convenience wrapping the exotic length sync
// used by the Array.prototype.push built-in.
func Push(o *Object, v Value) {
	idx := ArrayLength(o)
	o.DefineOwnProperty(indexKey(int(idx)), DataProperty(v, true, true, true))
}

package builtins

import (
	"strconv"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/cwbudde/go-ecma/pkg/evaluator"
	"github.com/cwbudde/go-ecma/pkg/realm"
	"github.com/cwbudde/go-ecma/pkg/value"
)

// JSONPlugin installs the global JSON object (§7.3). JSON.parse walks a
// gjson.Result tree rather than hand-rolling a JSON tokenizer -- the one
// pack dependency (tidwall/gjson) that covers this concern directly.
// JSON.stringify walks the live value/Object graph instead: no pack
// library serializes an arbitrary host object graph to JSON text, so that
// direction stays hand-written (DESIGN.md).
type JSONPlugin struct{}

func (JSONPlugin) ID() string          { return "json" }
func (JSONPlugin) DependsOn() []string { return []string{"object", "array"} }

func (JSONPlugin) Install(ev *evaluator.Evaluator, r *realm.Realm) error {
	objectProto, _ := r.Intrinsic("%Object.prototype%")
	j := value.NewObject(objectProto)
	method(ev, j, "parse", 2, jsonParse)
	method(ev, j, "stringify", 3, jsonStringify)
	defineGlobal(r, "JSON", j)
	return nil
}

func jsonParse(ev *evaluator.Evaluator, _ value.Value, args []value.Value) (value.Value, error) {
	text, err := ev.ToString(arg(args, 0))
	if err != nil {
		return nil, err
	}
	if !gjson.Valid(text.String()) {
		return nil, &evaluator.ThrownError{Value: value.NewString("SyntaxError: Unexpected token in JSON")}
	}
	return gjsonToValue(ev, gjson.Parse(text.String())), nil
}

func gjsonToValue(ev *evaluator.Evaluator, r gjson.Result) value.Value {
	switch r.Type {
	case gjson.Null:
		return value.Null
	case gjson.False:
		return value.Boolean(false)
	case gjson.True:
		return value.Boolean(true)
	case gjson.Number:
		return value.Number(r.Num)
	case gjson.String:
		return value.NewString(r.String())
	case gjson.JSON:
		if r.IsArray() {
			var elems []value.Value
			r.ForEach(func(_, v gjson.Result) bool {
				elems = append(elems, gjsonToValue(ev, v))
				return true
			})
			return value.NewArray(arrProtoValue(ev), elems)
		}
		o := ev.Realm.NewOrdinaryObject()
		r.ForEach(func(k, v gjson.Result) bool {
			o.DefineValue(k.String(), gjsonToValue(ev, v), true)
			return true
		})
		return o
	default:
		return value.Undefined
	}
}

func jsonStringify(ev *evaluator.Evaluator, _ value.Value, args []value.Value) (value.Value, error) {
	v := arg(args, 0)
	indent := ""
	if n, ok := arg(args, 2).(value.Number); ok && n > 0 {
		indent = strings.Repeat(" ", int(n))
	} else if s, ok := arg(args, 2).(*value.String); ok {
		indent = s.String()
	}
	var b strings.Builder
	ok, err := writeJSONValue(ev, &b, v, indent, "")
	if err != nil {
		return nil, err
	}
	if !ok {
		return value.Undefined, nil
	}
	return value.NewString(b.String()), nil
}

// writeJSONValue writes v's JSON representation to b, returning false if v
// has no JSON representation (undefined, function, symbol -- §7.3).
func writeJSONValue(ev *evaluator.Evaluator, b *strings.Builder, v value.Value, indent, cur string) (bool, error) {
	switch t := v.(type) {
	case nil:
		return false, nil
	case *value.Symbol:
		return false, nil
	case value.Boolean:
		b.WriteString(strconv.FormatBool(bool(t)))
		return true, nil
	case value.Number:
		if t.IsNaN() || float64(t) != float64(t) {
			b.WriteString("null")
		} else {
			b.WriteString(strconv.FormatFloat(float64(t), 'g', -1, 64))
		}
		return true, nil
	case *value.String:
		writeJSONString(b, t.String())
		return true, nil
	case *value.Object:
		if t.IsCallable() {
			return false, nil
		}
		if toJSON, err := t.Get(value.StringKey("toJSON"), t); err == nil {
			if fn, ok := toJSON.(*value.Object); ok && fn.IsCallable() {
				r, err := fn.CallAsFunction(t, nil)
				if err != nil {
					return false, err
				}
				return writeJSONValue(ev, b, r, indent, cur)
			}
		}
		if t.ClassName == "Array" {
			return writeJSONArray(ev, b, t, indent, cur)
		}
		return writeJSONObject(ev, b, t, indent, cur)
	default:
		if value.IsNullOrUndefined(v) {
			if v == value.Null {
				b.WriteString("null")
				return true, nil
			}
			return false, nil
		}
		b.WriteString("null")
		return true, nil
	}
}

func writeJSONString(b *strings.Builder, s string) {
	b.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		default:
			if r < 0x20 {
				b.WriteString(`\u`)
				hex := strconv.FormatInt(int64(r), 16)
				for len(hex) < 4 {
					hex = "0" + hex
				}
				b.WriteString(hex)
			} else {
				b.WriteRune(r)
			}
		}
	}
	b.WriteByte('"')
}

func writeJSONArray(ev *evaluator.Evaluator, b *strings.Builder, o *value.Object, indent, cur string) (bool, error) {
	n := arrLen(o)
	if n == 0 {
		b.WriteString("[]")
		return true, nil
	}
	next := cur + indent
	b.WriteByte('[')
	for i := 0; i < n; i++ {
		if i > 0 {
			b.WriteByte(',')
		}
		if indent != "" {
			b.WriteByte('\n')
			b.WriteString(next)
		}
		v, err := arrGet(o, i)
		if err != nil {
			return false, err
		}
		ok, err := writeJSONValue(ev, b, v, indent, next)
		if err != nil {
			return false, err
		}
		if !ok {
			b.WriteString("null")
		}
	}
	if indent != "" {
		b.WriteByte('\n')
		b.WriteString(cur)
	}
	b.WriteByte(']')
	return true, nil
}

func writeJSONObject(ev *evaluator.Evaluator, b *strings.Builder, o *value.Object, indent, cur string) (bool, error) {
	keys := o.OwnPropertyKeys()
	next := cur + indent
	b.WriteByte('{')
	first := true
	for _, k := range keys {
		if k.Sym != nil {
			continue
		}
		desc, ok := o.GetOwnProperty(k)
		if !ok || !desc.Enumerable {
			continue
		}
		v, err := o.Get(k, o)
		if err != nil {
			return false, err
		}
		var buf strings.Builder
		included, err := writeJSONValue(ev, &buf, v, indent, next)
		if err != nil {
			return false, err
		}
		if !included {
			continue
		}
		if !first {
			b.WriteByte(',')
		}
		first = false
		if indent != "" {
			b.WriteByte('\n')
			b.WriteString(next)
		}
		writeJSONString(b, k.String())
		b.WriteByte(':')
		if indent != "" {
			b.WriteByte(' ')
		}
		b.WriteString(buf.String())
	}
	if !first && indent != "" {
		b.WriteByte('\n')
		b.WriteString(cur)
	}
	b.WriteByte('}')
	return true, nil
}

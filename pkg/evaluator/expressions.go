package evaluator

import (
	"math/big"

	"github.com/cwbudde/go-ecma/pkg/ast"
	"github.com/cwbudde/go-ecma/pkg/completion"
	"github.com/cwbudde/go-ecma/pkg/ops"
	"github.com/cwbudde/go-ecma/pkg/value"
)

func evalLiteral(ev *Evaluator, node ast.Node, _ ...any) (completion.Record, error) {
	n := node.(*ast.Literal)
	switch n.LKind {
	case ast.LitNumber:
		return completion.NormalValue(value.Number(n.Value.(float64))), nil
	case ast.LitString:
		return completion.NormalValue(value.NewString(n.Value.(string))), nil
	case ast.LitBoolean:
		if n.Value.(bool) {
			return completion.NormalValue(value.True), nil
		}
		return completion.NormalValue(value.False), nil
	case ast.LitNull:
		return completion.NormalValue(value.Null), nil
	case ast.LitBigInt:
		return completion.NormalValue(value.NewBigInt(n.Value.(*big.Int))), nil
	default:
		return completion.Record{}, unsupportedNode(node)
	}
}

func evalThis(ev *Evaluator, node ast.Node, _ ...any) (completion.Record, error) {
	v, err := ev.ResolveThisBinding()
	if err != nil {
		return ev.Throw("ReferenceError", err.Error()), nil
	}
	return completion.NormalValue(v), nil
}

func evalIdentifier(ev *Evaluator, node ast.Node, _ ...any) (completion.Record, error) {
	n := node.(*ast.Identifier)
	return completion.NormalRef(ev.ResolveBinding(n.Name)), nil
}

func evalSequence(ev *Evaluator, node ast.Node, _ ...any) (completion.Record, error) {
	n := node.(*ast.SequenceExpression)
	var last completion.Record
	for _, e := range n.Expressions {
		c, err := ev.Eval(e)
		if err != nil {
			return completion.Record{}, err
		}
		if c.IsAbrupt() {
			return c, nil
		}
		v, err := ev.GetValue(c)
		if err != nil {
			return completion.Record{}, err
		}
		last = completion.NormalValue(v)
	}
	return last, nil
}

func evalArray(ev *Evaluator, node ast.Node, _ ...any) (completion.Record, error) {
	n := node.(*ast.ArrayExpression)
	proto, _ := ev.Realm.Intrinsic("%Array.prototype%")
	arr := value.NewArray(protoOrNull(proto), nil)
	idx := uint32(0)
	for _, el := range n.Elements {
		if el == nil {
			idx++
			continue
		}
		if spread, ok := el.(*ast.SpreadElement); ok {
			_, c, aborted, err := ev.spreadInto(arr, &idx, spread.Argument)
			if err != nil {
				return completion.Record{}, err
			}
			if aborted {
				return c, nil
			}
			continue
		}
		v, c, aborted, err := ev.val(el)
		if err != nil {
			return completion.Record{}, err
		}
		if aborted {
			return c, nil
		}
		_, _ = arr.DefineOwnProperty(value.StringKey(uintToStr(idx)), value.DataProperty(v, true, true, true))
		idx++
	}
	return completion.NormalValue(arr), nil
}

// spreadInto iterates expr and appends each produced value into arr
// starting at *idx, advancing idx (§4.4 array-literal spread).
func (ev *Evaluator) spreadInto(arr *value.Object, idx *uint32, expr ast.Expression) (struct{}, completion.Record, bool, error) {
	v, c, aborted, err := ev.val(expr)
	if err != nil || aborted {
		return struct{}{}, c, aborted, err
	}
	sym := ev.Realm.WellKnownSymbol(value.SymIterator)
	rec, err := ops.GetIterator(v, sym)
	if err != nil {
		return struct{}{}, ev.Throw("TypeError", err.Error()), true, nil
	}
	for {
		result, more, err := ops.IteratorStep(rec)
		if err != nil {
			return struct{}{}, ev.Throw("TypeError", err.Error()), true, nil
		}
		if !more {
			break
		}
		iv, err := ops.IteratorValue(result)
		if err != nil {
			return struct{}{}, ev.Throw("TypeError", err.Error()), true, nil
		}
		_, _ = arr.DefineOwnProperty(value.StringKey(uintToStr(*idx)), value.DataProperty(iv, true, true, true))
		*idx++
	}
	return struct{}{}, completion.Record{}, false, nil
}

func uintToStr(u uint32) string {
	if u == 0 {
		return "0"
	}
	var buf [10]byte
	i := len(buf)
	for u > 0 {
		i--
		buf[i] = byte('0' + u%10)
		u /= 10
	}
	return string(buf[i:])
}

func protoOrNull(o *value.Object) value.Value {
	if o == nil {
		return value.Null
	}
	return o
}

func evalObject(ev *Evaluator, node ast.Node, _ ...any) (completion.Record, error) {
	n := node.(*ast.ObjectExpression)
	proto, _ := ev.Realm.Intrinsic("%Object.prototype%")
	obj := value.NewObject(protoOrNull(proto))
	for _, p := range n.Properties {
		key, c, aborted, err := ev.evalPropertyKey(p.Key, p.Computed)
		if err != nil {
			return completion.Record{}, err
		}
		if aborted {
			return c, nil
		}
		switch p.Kind {
		case "get", "set":
			fn, abruptC, aborted, err := ev.evalFunctionValue(p.Value)
			if err != nil {
				return completion.Record{}, err
			}
			if aborted {
				return abruptC, nil
			}
			existing, _ := obj.GetOwnProperty(key)
			desc := &value.PropertyDescriptor{Enumerable: true, Configurable: true, HasEnumerable: true, HasConfigurable: true}
			if existing != nil && existing.IsAccessor() {
				desc.Get, desc.HasGet = existing.Get, true
				desc.Set, desc.HasSet = existing.Set, true
			}
			if p.Kind == "get" {
				desc.Get, desc.HasGet = fn, true
			} else {
				desc.Set, desc.HasSet = fn, true
			}
			_, _ = obj.DefineOwnProperty(key, desc)
		default:
			v, c, aborted, err := ev.val(p.Value)
			if err != nil {
				return completion.Record{}, err
			}
			if aborted {
				return c, nil
			}
			obj.DefineValue(key.Str, v, true)
			if key.Sym != nil {
				_, _ = obj.DefineOwnProperty(key, value.DataProperty(v, true, true, true))
			}
		}
	}
	return completion.NormalValue(obj), nil
}

func (ev *Evaluator) evalPropertyKey(keyNode ast.Expression, computed bool) (value.PropertyKey, completion.Record, bool, error) {
	if !computed {
		switch k := keyNode.(type) {
		case *ast.Identifier:
			return value.StringKey(k.Name), completion.Record{}, false, nil
		case *ast.Literal:
			v, c, aborted, err := ev.val(k)
			if err != nil || aborted {
				return value.PropertyKey{}, c, aborted, err
			}
			pk, err := ev.ToPropertyKey(v)
			return pk, completion.Record{}, false, err
		}
	}
	v, c, aborted, err := ev.val(keyNode)
	if err != nil || aborted {
		return value.PropertyKey{}, c, aborted, err
	}
	pk, err := ev.ToPropertyKey(v)
	if err != nil {
		return value.PropertyKey{}, ev.Throw("TypeError", err.Error()), true, nil
	}
	return pk, completion.Record{}, false, nil
}

func (ev *Evaluator) evalFunctionValue(node ast.Node) (*value.Object, completion.Record, bool, error) {
	c, err := ev.Eval(node)
	if err != nil {
		return nil, completion.Record{}, false, err
	}
	if c.IsAbrupt() {
		return nil, c, true, nil
	}
	v, err := ev.GetValue(c)
	if err != nil {
		return nil, completion.Record{}, false, err
	}
	return v.(*value.Object), completion.Record{}, false, nil
}

func evalFunctionExpression(ev *Evaluator, node ast.Node, _ ...any) (completion.Record, error) {
	n := node.(*ast.FunctionExpression)
	fn := ev.OrdinaryFunctionCreate(n.Params, n.Body, ev.Current().LexicalEnv, ThisModeGlobal(n), nil)
	if n.ID != nil {
		fn.DefineValue("name", value.NewString(n.ID.Name), false)
	}
	return completion.NormalValue(fn), nil
}

func evalArrowFunction(ev *Evaluator, node ast.Node, _ ...any) (completion.Record, error) {
	n := node.(*ast.ArrowFunctionExpression)
	fn := ev.OrdinaryFunctionCreate(n.Params, n.Body, ev.Current().LexicalEnv, ThisModeLexical, nil)
	return completion.NormalValue(fn), nil
}

func evalTemplateLiteral(ev *Evaluator, node ast.Node, _ ...any) (completion.Record, error) {
	n := node.(*ast.TemplateLiteral)
	out := n.Quasis[0]
	for i, e := range n.Expressions {
		v, c, aborted, err := ev.val(e)
		if err != nil {
			return completion.Record{}, err
		}
		if aborted {
			return c, nil
		}
		s, err := ev.ToString(v)
		if err != nil {
			return ev.Throw("TypeError", err.Error()), nil
		}
		out += s.String() + n.Quasis[i+1]
	}
	return completion.NormalValue(value.NewString(out)), nil
}

func evalConditional(ev *Evaluator, node ast.Node, _ ...any) (completion.Record, error) {
	n := node.(*ast.ConditionalExpression)
	t, c, aborted, err := ev.val(n.Test)
	if err != nil || aborted {
		return c, err
	}
	if ops.ToBoolean(t) {
		return ev.Eval(n.Consequent)
	}
	return ev.Eval(n.Alternate)
}

func evalLogical(ev *Evaluator, node ast.Node, _ ...any) (completion.Record, error) {
	n := node.(*ast.LogicalExpression)
	l, c, aborted, err := ev.val(n.Left)
	if err != nil || aborted {
		return c, err
	}
	switch n.Operator {
	case "&&":
		if !ops.ToBoolean(l) {
			return completion.NormalValue(l), nil
		}
	case "||":
		if ops.ToBoolean(l) {
			return completion.NormalValue(l), nil
		}
	case "??":
		if !value.IsNullOrUndefined(l) {
			return completion.NormalValue(l), nil
		}
	}
	return ev.Eval(n.Right)
}

func evalUnary(ev *Evaluator, node ast.Node, _ ...any) (completion.Record, error) {
	n := node.(*ast.UnaryExpression)
	if n.Operator == "typeof" {
		c, err := ev.Eval(n.Argument)
		if err != nil {
			return completion.Record{}, err
		}
		if c.IsAbrupt() {
			return c, nil
		}
		if c.Ref != nil && c.Ref.IsUnresolvableReference() {
			return completion.NormalValue(value.NewString("undefined")), nil
		}
		v, err := ev.GetValue(c)
		if err != nil {
			return completion.Record{}, err
		}
		return completion.NormalValue(value.NewString(typeofString(v))), nil
	}
	if n.Operator == "delete" {
		return ev.evalDelete(n.Argument)
	}
	v, c, aborted, err := ev.val(n.Argument)
	if err != nil || aborted {
		return c, err
	}
	switch n.Operator {
	case "void":
		return completion.NormalValue(value.Undefined), nil
	case "!":
		return completion.NormalValue(value.Boolean(!ops.ToBoolean(v))), nil
	case "-":
		if bi, ok := v.(*value.BigInt); ok {
			return completion.NormalValue(value.NewBigInt(new(big.Int).Neg(bi.V))), nil
		}
		num, err := ev.ToNumber(v)
		if err != nil {
			return ev.Throw("TypeError", err.Error()), nil
		}
		return completion.NormalValue(-num), nil
	case "+":
		num, err := ev.ToNumber(v)
		if err != nil {
			return ev.Throw("TypeError", err.Error()), nil
		}
		return completion.NormalValue(num), nil
	case "~":
		if bi, ok := v.(*value.BigInt); ok {
			return completion.NormalValue(value.NewBigInt(new(big.Int).Not(bi.V))), nil
		}
		num, err := ev.ToNumber(v)
		if err != nil {
			return ev.Throw("TypeError", err.Error()), nil
		}
		return completion.NormalValue(value.Number(float64(^ops.ToInt32(num)))), nil
	}
	return completion.Record{}, unsupportedNode(node)
}

func typeofString(v value.Value) string {
	switch v.(type) {
	case nil:
		return "undefined"
	}
	if value.IsNullOrUndefined(v) {
		if v == value.Null {
			return "object"
		}
		return "undefined"
	}
	switch o := v.(type) {
	case *value.Object:
		if o.IsCallable() {
			return "function"
		}
		return "object"
	}
	return v.Kind().String()
}

func (ev *Evaluator) evalDelete(arg ast.Expression) (completion.Record, error) {
	mem, ok := arg.(*ast.MemberExpression)
	if !ok {
		return completion.NormalValue(value.True), nil
	}
	objV, c, aborted, err := ev.val(mem.Object)
	if err != nil || aborted {
		return c, err
	}
	key, c, aborted, err := ev.evalPropertyKey(mem.Property, mem.Computed)
	if err != nil || aborted {
		return c, err
	}
	obj, err := ev.ToObject(objV)
	if err != nil {
		return ev.Throw("TypeError", err.Error()), nil
	}
	ok2, err := obj.Delete(key)
	if err != nil {
		return ev.Throw("TypeError", err.Error()), nil
	}
	return completion.NormalValue(value.Boolean(ok2)), nil
}

func evalUpdate(ev *Evaluator, node ast.Node, _ ...any) (completion.Record, error) {
	n := node.(*ast.UpdateExpression)
	c, err := ev.Eval(n.Argument)
	if err != nil {
		return completion.Record{}, err
	}
	if c.IsAbrupt() {
		return c, nil
	}
	old, err := ev.GetValue(c)
	if err != nil {
		return completion.Record{}, err
	}
	oldNum, err := ev.ToNumeric(old)
	if err != nil {
		return ev.Throw("TypeError", err.Error()), nil
	}
	var newVal value.Value
	if bi, ok := oldNum.(*value.BigInt); ok {
		delta := big.NewInt(1)
		if n.Operator == "--" {
			delta = big.NewInt(-1)
		}
		newVal = value.NewBigInt(new(big.Int).Add(bi.V, delta))
	} else {
		num := oldNum.(value.Number)
		if n.Operator == "++" {
			newVal = num + 1
		} else {
			newVal = num - 1
		}
	}
	if c.Ref != nil {
		if err := ev.PutValue(c.Ref, newVal); err != nil {
			return ev.Throw("TypeError", err.Error()), nil
		}
	}
	if n.Prefix {
		return completion.NormalValue(newVal), nil
	}
	return completion.NormalValue(oldNum), nil
}

func evalBinary(ev *Evaluator, node ast.Node, _ ...any) (completion.Record, error) {
	n := node.(*ast.BinaryExpression)
	l, c, aborted, err := ev.val(n.Left)
	if err != nil || aborted {
		return c, err
	}
	r, c, aborted, err := ev.val(n.Right)
	if err != nil || aborted {
		return c, err
	}
	return ev.applyBinary(n.Operator, l, r)
}

func (ev *Evaluator) applyBinary(op string, l, r value.Value) (completion.Record, error) {
	switch op {
	case "===":
		return completion.NormalValue(value.Boolean(ops.IsStrictlyEqual(l, r))), nil
	case "!==":
		return completion.NormalValue(value.Boolean(!ops.IsStrictlyEqual(l, r))), nil
	case "==":
		b, err := ops.IsLooselyEqual(l, r, ev.toPrimitiveFn)
		if err != nil {
			return ev.Throw("TypeError", err.Error()), nil
		}
		return completion.NormalValue(value.Boolean(b)), nil
	case "!=":
		b, err := ops.IsLooselyEqual(l, r, ev.toPrimitiveFn)
		if err != nil {
			return ev.Throw("TypeError", err.Error()), nil
		}
		return completion.NormalValue(value.Boolean(!b)), nil
	case "<", ">", "<=", ">=":
		return ev.applyRelational(op, l, r)
	case "instanceof":
		return ev.applyInstanceof(l, r)
	case "in":
		return ev.applyIn(l, r)
	default:
		res, err := ops.ApplyStringOrNumericBinaryOperator(op, l, r, ev.toPrimitiveFn)
		if err != nil {
			return ev.Throw("TypeError", err.Error()), nil
		}
		return completion.NormalValue(res), nil
	}
}

func (ev *Evaluator) applyRelational(op string, l, r value.Value) (completion.Record, error) {
	var res ops.RelationalResult
	var err error
	switch op {
	case "<":
		res, err = ops.IsLessThan(l, r, true, ev.toPrimitiveFn)
	case ">":
		res, err = ops.IsLessThan(r, l, false, ev.toPrimitiveFn)
	case "<=":
		res, err = ops.IsLessThan(r, l, false, ev.toPrimitiveFn)
		if err == nil {
			res = invertTriState(res)
		}
	case ">=":
		res, err = ops.IsLessThan(l, r, true, ev.toPrimitiveFn)
		if err == nil {
			res = invertTriState(res)
		}
	}
	if err != nil {
		return ev.Throw("TypeError", err.Error()), nil
	}
	if res == ops.RelUndefined {
		return completion.NormalValue(value.False), nil
	}
	return completion.NormalValue(value.Boolean(res == ops.RelTrue)), nil
}

func invertTriState(r ops.RelationalResult) ops.RelationalResult {
	if r == ops.RelTrue {
		return ops.RelFalse
	}
	if r == ops.RelFalse {
		return ops.RelTrue
	}
	return ops.RelUndefined
}

func (ev *Evaluator) applyInstanceof(l, r value.Value) (completion.Record, error) {
	ctor, ok := r.(*value.Object)
	if !ok {
		return ev.Throw("TypeError", "Right-hand side of 'instanceof' is not callable"), nil
	}
	sym := ev.Realm.WellKnownSymbol(value.SymHasInstance)
	handler, err := ctor.Get(value.SymbolKey(sym), ctor)
	if err == nil && !value.IsNullOrUndefined(handler) {
		if fn, ok := handler.(*value.Object); ok && fn.IsCallable() {
			res, err := fn.CallAsFunction(ctor, []value.Value{l})
			if err != nil {
				return ev.Throw("TypeError", err.Error()), nil
			}
			return completion.NormalValue(value.Boolean(ops.ToBoolean(res))), nil
		}
	}
	b, err := ops.OrdinaryHasInstance(ctor, l)
	if err != nil {
		return ev.Throw("TypeError", err.Error()), nil
	}
	return completion.NormalValue(value.Boolean(b)), nil
}

func (ev *Evaluator) applyIn(l, r value.Value) (completion.Record, error) {
	obj, ok := r.(*value.Object)
	if !ok {
		return ev.Throw("TypeError", "Cannot use 'in' operator on a non-object"), nil
	}
	key, err := ev.ToPropertyKey(l)
	if err != nil {
		return ev.Throw("TypeError", err.Error()), nil
	}
	has, err := obj.HasProperty(key)
	if err != nil {
		return ev.Throw("TypeError", err.Error()), nil
	}
	return completion.NormalValue(value.Boolean(has)), nil
}

func evalMember(ev *Evaluator, node ast.Node, _ ...any) (completion.Record, error) {
	n := node.(*ast.MemberExpression)
	objV, c, aborted, err := ev.val(n.Object)
	if err != nil || aborted {
		return c, err
	}
	if n.Optional && value.IsNullOrUndefined(objV) {
		return completion.NormalValue(value.Undefined), nil
	}
	key, c, aborted, err := ev.evalPropertyKey(n.Property, n.Computed)
	if err != nil || aborted {
		return c, err
	}
	return completion.NormalRef(completion.NewPropertyReference(objV, key, ev.isStrict())), nil
}

func evalAssignment(ev *Evaluator, node ast.Node, _ ...any) (completion.Record, error) {
	n := node.(*ast.AssignmentExpression)
	if n.Operator == "=" {
		if pat, ok := n.Left.(ast.Pattern); ok {
			if _, isID := pat.(*ast.Identifier); !isID {
				rv, c, aborted, err := ev.val(n.Right)
				if err != nil || aborted {
					return c, err
				}
				cc, err := ev.BindingInitializationAssignment(pat, rv)
				if err != nil {
					return completion.Record{}, err
				}
				if cc.IsAbrupt() {
					return cc, nil
				}
				return completion.NormalValue(rv), nil
			}
		}
		lc, err := ev.Eval(n.Left.(ast.Expression))
		if err != nil {
			return completion.Record{}, err
		}
		if lc.IsAbrupt() {
			return lc, nil
		}
		rv, c, aborted, err := ev.val(n.Right)
		if err != nil || aborted {
			return c, err
		}
		if lc.Ref != nil {
			if err := ev.PutValue(lc.Ref, rv); err != nil {
				return ev.Throw("TypeError", err.Error()), nil
			}
		}
		return completion.NormalValue(rv), nil
	}
	lc, err := ev.Eval(n.Left.(ast.Expression))
	if err != nil {
		return completion.Record{}, err
	}
	if lc.IsAbrupt() {
		return lc, nil
	}
	lv, err := ev.GetValue(lc)
	if err != nil {
		return completion.Record{}, err
	}
	switch n.Operator {
	case "&&=":
		if !ops.ToBoolean(lv) {
			return completion.NormalValue(lv), nil
		}
	case "||=":
		if ops.ToBoolean(lv) {
			return completion.NormalValue(lv), nil
		}
	case "??=":
		if !value.IsNullOrUndefined(lv) {
			return completion.NormalValue(lv), nil
		}
	}
	rv, c, aborted, err := ev.val(n.Right)
	if err != nil || aborted {
		return c, err
	}
	var result value.Value
	switch n.Operator {
	case "&&=", "||=", "??=", "=":
		result = rv
	default:
		op := n.Operator[:len(n.Operator)-1]
		res, err := ev.applyBinary(op, lv, rv)
		if err != nil {
			return completion.Record{}, err
		}
		if res.IsAbrupt() {
			return res, nil
		}
		result, err = ev.GetValue(res)
		if err != nil {
			return completion.Record{}, err
		}
	}
	if lc.Ref != nil {
		if err := ev.PutValue(lc.Ref, result); err != nil {
			return ev.Throw("TypeError", err.Error()), nil
		}
	}
	return completion.NormalValue(result), nil
}

func evalCall(ev *Evaluator, node ast.Node, _ ...any) (completion.Record, error) {
	n := node.(*ast.CallExpression)
	calleeC, err := ev.Eval(n.Callee)
	if err != nil {
		return completion.Record{}, err
	}
	if calleeC.IsAbrupt() {
		return calleeC, nil
	}
	fnVal, err := ev.GetValue(calleeC)
	if err != nil {
		return completion.Record{}, err
	}
	if n.Optional && value.IsNullOrUndefined(fnVal) {
		return completion.NormalValue(value.Undefined), nil
	}
	var thisVal value.Value = value.Undefined
	if calleeC.Ref != nil && calleeC.Ref.IsPropertyReference() {
		thisVal = calleeC.Ref.Base
		if calleeC.Ref.HasThisValue {
			thisVal = calleeC.Ref.ThisValue
		}
	}
	args, c, aborted, err := ev.evalArgumentList(n.Args)
	if err != nil || aborted {
		return c, err
	}
	fn, ok := fnVal.(*value.Object)
	if !ok || !fn.IsCallable() {
		return ev.Throw("TypeError", "value is not a function"), nil
	}
	res, err := ev.callFunction(fn, thisVal, args)
	if err != nil {
		return completion.Record{}, err
	}
	return res, nil
}

func evalNew(ev *Evaluator, node ast.Node, _ ...any) (completion.Record, error) {
	n := node.(*ast.NewExpression)
	ctorV, c, aborted, err := ev.val(n.Callee)
	if err != nil || aborted {
		return c, err
	}
	ctor, ok := ctorV.(*value.Object)
	if !ok || !ctor.IsConstructor() {
		return ev.Throw("TypeError", "not a constructor"), nil
	}
	args, c, aborted, err := ev.evalArgumentList(n.Args)
	if err != nil || aborted {
		return c, err
	}
	res, err := ev.constructObject(ctor, args, ctor)
	if err != nil {
		return completion.Record{}, err
	}
	return res, nil
}

func (ev *Evaluator) evalArgumentList(argNodes []ast.Expression) ([]value.Value, completion.Record, bool, error) {
	var out []value.Value
	for _, a := range argNodes {
		if spread, ok := a.(*ast.SpreadElement); ok {
			v, c, aborted, err := ev.val(spread.Argument)
			if err != nil || aborted {
				return nil, c, aborted, err
			}
			sym := ev.Realm.WellKnownSymbol(value.SymIterator)
			rec, err := ops.GetIterator(v, sym)
			if err != nil {
				return nil, ev.Throw("TypeError", err.Error()), true, nil
			}
			for {
				result, more, err := ops.IteratorStep(rec)
				if err != nil {
					return nil, ev.Throw("TypeError", err.Error()), true, nil
				}
				if !more {
					break
				}
				iv, err := ops.IteratorValue(result)
				if err != nil {
					return nil, ev.Throw("TypeError", err.Error()), true, nil
				}
				out = append(out, iv)
			}
			continue
		}
		v, c, aborted, err := ev.val(a)
		if err != nil || aborted {
			return nil, c, aborted, err
		}
		out = append(out, v)
	}
	return out, completion.Record{}, false, nil
}

package builtins

import (
	"github.com/cwbudde/go-ecma/pkg/evaluator"
	"github.com/cwbudde/go-ecma/pkg/realm"
	"github.com/cwbudde/go-ecma/pkg/value"
)

var symbolRegistry = map[string]*value.Symbol{}

// SymbolPlugin installs the Symbol factory function and its well-known
// symbol properties (Symbol.iterator, Symbol.for), grounded on realm's
// existing WellKnownSymbol registry rather than inventing a second one.
type SymbolPlugin struct{}

func (SymbolPlugin) ID() string          { return "symbol" }
func (SymbolPlugin) DependsOn() []string { return []string{"object"} }

func (SymbolPlugin) Install(ev *evaluator.Evaluator, r *realm.Realm) error {
	objectProto, _ := r.Intrinsic("%Object.prototype%")
	symbolProto := value.NewObject(objectProto)
	symbolProto.ClassName = "Symbol"
	r.SetIntrinsic("%Symbol.prototype%", symbolProto)
	method(ev, symbolProto, "toString", 0, symToString)

	symbolFn := ev.NewNativeFunction("Symbol", 1, symbolCall)
	symbolFn.DefineValue("prototype", symbolProto, false)
	symbolFn.DefineValue("iterator", r.WellKnownSymbol(value.SymIterator), false)
	symbolFn.DefineValue("asyncIterator", r.WellKnownSymbol(value.SymAsyncIterator), false)
	symbolFn.DefineValue("hasInstance", r.WellKnownSymbol(value.SymHasInstance), false)
	symbolFn.DefineValue("toPrimitive", r.WellKnownSymbol(value.SymToPrimitive), false)
	method(ev, symbolFn, "for", 1, symbolFor)
	defineGlobal(r, "Symbol", symbolFn)
	return nil
}

func symbolCall(ev *evaluator.Evaluator, _ value.Value, args []value.Value) (value.Value, error) {
	desc := ""
	if len(args) > 0 && arg(args, 0) != value.Undefined {
		s, err := ev.ToString(arg(args, 0))
		if err != nil {
			return nil, err
		}
		desc = s.String()
	}
	return value.NewSymbol(desc), nil
}

func symbolFor(_ *evaluator.Evaluator, _ value.Value, args []value.Value) (value.Value, error) {
	key := ""
	if s, ok := arg(args, 0).(*value.String); ok {
		key = s.String()
	}
	if sym, ok := symbolRegistry[key]; ok {
		return sym, nil
	}
	sym := value.NewSymbol(key)
	symbolRegistry[key] = sym
	return sym, nil
}

func symToString(_ *evaluator.Evaluator, this value.Value, _ []value.Value) (value.Value, error) {
	if s, ok := this.(*value.Symbol); ok {
		return value.NewString(s.GoString()), nil
	}
	return value.NewString("Symbol()"), nil
}

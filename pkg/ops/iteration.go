package ops

import "github.com/cwbudde/go-ecma/pkg/value"

// IteratorRecord packs an iterator object together with its cached next
// method and done flag (§4.7).
type IteratorRecord struct {
	Iterator   *value.Object
	NextMethod *value.Object
	Done       bool
}

// GetIterator implements GetIterator (§4.7): reads the method stored under
// iteratorSym (the caller passes @@iterator or @@asyncIterator), invokes it,
// and packs the record. No async-from-sync fallback is done here.
func GetIterator(v value.Value, iteratorSym *value.Symbol) (*IteratorRecord, error) {
	obj, ok := v.(*value.Object)
	var method value.Value
	var err error
	if ok {
		method, err = obj.Get(value.SymbolKey(iteratorSym), obj)
	}
	if !ok || err != nil || method == nil || value.IsNullOrUndefined(method) {
		return nil, ErrNotIterable
	}
	fn, ok := method.(*value.Object)
	if !ok || !fn.IsCallable() {
		return nil, ErrNotIterable
	}
	iterVal, err := fn.CallAsFunction(obj, nil)
	if err != nil {
		return nil, err
	}
	iterObj, ok := iterVal.(*value.Object)
	if !ok {
		return nil, ErrIteratorResultNotObject
	}
	nextVal, err := iterObj.Get(value.StringKey("next"), iterObj)
	if err != nil {
		return nil, err
	}
	nextFn, ok := nextVal.(*value.Object)
	if !ok || !nextFn.IsCallable() {
		return nil, ErrNotCallable
	}
	return &IteratorRecord{Iterator: iterObj, NextMethod: nextFn}, nil
}

// IteratorStep implements IteratorStep (§4.7): calls next(), coerces the
// result to an object, and returns (result, false) when done or
// (result, true) otherwise.
func IteratorStep(rec *IteratorRecord) (*value.Object, bool, error) {
	resVal, err := rec.NextMethod.CallAsFunction(rec.Iterator, nil)
	if err != nil {
		return nil, false, err
	}
	resObj, ok := resVal.(*value.Object)
	if !ok {
		return nil, false, ErrIteratorResultNotObject
	}
	doneVal, err := resObj.Get(value.StringKey("done"), resObj)
	if err != nil {
		return nil, false, err
	}
	if value.ToBoolean(doneVal) {
		rec.Done = true
		return resObj, false, nil
	}
	return resObj, true, nil
}

// IteratorValue extracts the "value" property of an IteratorResult object.
func IteratorValue(result *value.Object) (value.Value, error) {
	return result.Get(value.StringKey("value"), result)
}

// IteratorClose implements IteratorClose (§4.7, §8 testable property:
// return is invoked exactly once unless already completed): invokes the
// iterator's return method (if present), discarding its result unless the
// pending completion (completionErr) is nil, in which case a return-method
// error propagates.
func IteratorClose(rec *IteratorRecord, completionErr error) error {
	if rec.Done {
		return completionErr
	}
	returnVal, err := rec.Iterator.Get(value.StringKey("return"), rec.Iterator)
	if err != nil {
		if completionErr != nil {
			return completionErr
		}
		return err
	}
	if value.IsNullOrUndefined(returnVal) {
		return completionErr
	}
	fn, ok := returnVal.(*value.Object)
	if !ok || !fn.IsCallable() {
		return completionErr
	}
	innerResult, err := fn.CallAsFunction(rec.Iterator, nil)
	if completionErr != nil {
		return completionErr
	}
	if err != nil {
		return err
	}
	if _, ok := innerResult.(*value.Object); !ok {
		return ErrIteratorResultNotObject
	}
	return nil
}

package builtins

import (
	"time"

	"github.com/cwbudde/go-ecma/pkg/evaluator"
	"github.com/cwbudde/go-ecma/pkg/realm"
	"github.com/cwbudde/go-ecma/pkg/value"
)

// DatePlugin installs a minimal Date family (§7.4): wall-clock timestamps
// in milliseconds since the Unix epoch, stored in the "DateValue" internal
// slot. No pack library covers date/time parsing or arithmetic, so this
// stays on the standard library's time package (DESIGN.md).
type DatePlugin struct{}

func (DatePlugin) ID() string          { return "date" }
func (DatePlugin) DependsOn() []string { return []string{"object"} }

func (DatePlugin) Install(ev *evaluator.Evaluator, r *realm.Realm) error {
	objectProto, _ := r.Intrinsic("%Object.prototype%")
	dateProto := value.NewObject(objectProto)
	dateProto.ClassName = "Date"
	r.SetIntrinsic("%Date.prototype%", dateProto)

	method(ev, dateProto, "getTime", 0, dateGetTime)
	method(ev, dateProto, "valueOf", 0, dateGetTime)
	method(ev, dateProto, "toISOString", 0, dateToISOString)
	method(ev, dateProto, "toString", 0, dateToISOString)
	method(ev, dateProto, "getFullYear", 0, dateField(func(t time.Time) float64 { return float64(t.Year()) }))
	method(ev, dateProto, "getMonth", 0, dateField(func(t time.Time) float64 { return float64(t.Month() - 1) }))
	method(ev, dateProto, "getDate", 0, dateField(func(t time.Time) float64 { return float64(t.Day()) }))
	method(ev, dateProto, "getHours", 0, dateField(func(t time.Time) float64 { return float64(t.Hour()) }))
	method(ev, dateProto, "getMinutes", 0, dateField(func(t time.Time) float64 { return float64(t.Minute()) }))
	method(ev, dateProto, "getSeconds", 0, dateField(func(t time.Time) float64 { return float64(t.Second()) }))
	method(ev, dateProto, "getDay", 0, dateField(func(t time.Time) float64 { return float64(t.Weekday()) }))

	dateCtor := ev.NewNativeConstructor("Date", 0, dateCall, dateConstruct)
	dateCtor.DefineValue("prototype", dateProto, false)
	dateProto.DefineValue("constructor", dateCtor, false)
	method(ev, dateCtor, "now", 0, dateNow)
	defineGlobal(r, "Date", dateCtor)
	return nil
}

func dateMillis(this value.Value) (float64, bool) {
	o, ok := this.(*value.Object)
	if !ok {
		return 0, false
	}
	ms, ok := o.Slot("DateValue")
	if !ok {
		return 0, false
	}
	f, ok := ms.(float64)
	return f, ok
}

func dateTime(this value.Value) time.Time {
	ms, _ := dateMillis(this)
	return time.UnixMilli(int64(ms)).UTC()
}

func dateCall(ev *evaluator.Evaluator, this value.Value, args []value.Value) (value.Value, error) {
	return value.NewString(time.Now().UTC().Format(time.RFC3339)), nil
}

func dateConstruct(ev *evaluator.Evaluator, args []value.Value, proto *value.Object) (value.Value, error) {
	dateProto := mustIntrinsic(ev, "%Date.prototype%")
	o := value.NewObject(dateProto)
	o.ClassName = "Date"
	var ms float64
	switch len(args) {
	case 0:
		ms = float64(time.Now().UnixMilli())
	case 1:
		if s, ok := args[0].(*value.String); ok {
			if t, err := time.Parse(time.RFC3339, s.String()); err == nil {
				ms = float64(t.UnixMilli())
			}
		} else if n, err := ev.ToNumber(args[0]); err == nil {
			ms = float64(n)
		}
	default:
		year, month, day, hour, min, sec := 1970, 1, 1, 0, 0, 0
		ints := make([]int, 6)
		for i := 0; i < len(args) && i < 6; i++ {
			n, err := ev.ToNumber(args[i])
			if err != nil {
				return nil, err
			}
			ints[i] = int(n)
		}
		year, month, day, hour, min, sec = ints[0], ints[1]+1, ints[2], ints[3], ints[4], ints[5]
		if day == 0 {
			day = 1
		}
		t := time.Date(year, time.Month(month), day, hour, min, sec, 0, time.UTC)
		ms = float64(t.UnixMilli())
	}
	o.SetSlot("DateValue", ms)
	return o, nil
}

func dateNow(_ *evaluator.Evaluator, _ value.Value, _ []value.Value) (value.Value, error) {
	return value.Number(float64(time.Now().UnixMilli())), nil
}

func dateGetTime(_ *evaluator.Evaluator, this value.Value, _ []value.Value) (value.Value, error) {
	ms, ok := dateMillis(this)
	if !ok {
		return value.Number(nan()), nil
	}
	return value.Number(ms), nil
}

func dateToISOString(_ *evaluator.Evaluator, this value.Value, _ []value.Value) (value.Value, error) {
	return value.NewString(dateTime(this).Format("2006-01-02T15:04:05.000Z")), nil
}

func dateField(f func(time.Time) float64) func(*evaluator.Evaluator, value.Value, []value.Value) (value.Value, error) {
	return func(_ *evaluator.Evaluator, this value.Value, _ []value.Value) (value.Value, error) {
		return value.Number(f(dateTime(this))), nil
	}
}

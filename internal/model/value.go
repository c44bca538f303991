package model

import (
	"errors"
	"fmt"
	"reflect"
	"runtime"
	"strings"

	pkgerrors "github.com/pkg/errors"
)

// Kind identifies the variant held by a Value.
type Kind uint8

const (
	KindNull Kind = iota
	KindString
	KindInt
	KindFloat
	KindBool
	KindStructured
	KindError
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindString:
		return "string"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindBool:
		return "bool"
	case KindStructured:
		return "structured"
	case KindError:
		return "error"
	default:
		return "unknown"
	}
}

// Value is the input of a logging call. The zero Value is Null.
type Value struct {
	kind     Kind
	str      string
	num      int64
	unsigned uint64
	isUint   bool
	flt      float64
	bits     int
	b        bool
	data     any
	err      *ErrorInfo
}

// ErrorInfo is the captured form of an error value.
type ErrorInfo struct {
	Message string
	File    string
	Line    int
	Stack   string
}

func String(s string) Value      { return Value{kind: KindString, str: s} }
func Int(n int64) Value          { return Value{kind: KindInt, num: n} }
func Uint(n uint64) Value        { return Value{kind: KindInt, unsigned: n, isUint: true} }
func Float(f float64) Value      { return Value{kind: KindFloat, flt: f, bits: 64} }
func Float32(f float32) Value    { return Value{kind: KindFloat, flt: float64(f), bits: 32} }
func Bool(b bool) Value          { return Value{kind: KindBool, b: b} }
func Null() Value                { return Value{} }
func Structured(v any) Value     { return Value{kind: KindStructured, data: v} }
func Error(info ErrorInfo) Value { return Value{kind: KindError, err: &info} }

func (v Value) Kind() Kind { return v.kind }

// Str returns the string payload of a KindString value.
func (v Value) Str() string { return v.str }

// Int64 returns the payload of a signed KindInt value.
func (v Value) Int64() int64 { return v.num }

// Uint64 returns the payload of an unsigned KindInt value and whether the
// value was built from an unsigned integer.
func (v Value) Uint64() (uint64, bool) { return v.unsigned, v.isUint }

func (v Value) Float64() float64 { return v.flt }

// FloatBits returns 32 for values built from a float32 and 64 otherwise.
func (v Value) FloatBits() int {
	if v.bits == 32 {
		return 32
	}
	return 64
}

func (v Value) Bool() bool { return v.b }

// Data returns the payload of a KindStructured value.
func (v Value) Data() any { return v.data }

// ErrorInfo returns the payload of a KindError value.
func (v Value) ErrorInfo() ErrorInfo {
	if v.err == nil {
		return ErrorInfo{}
	}
	return *v.err
}

// ValueOf classifies an arbitrary Go value. Errors without an attached stack
// trace are located at the caller skip frames above ValueOf.
func ValueOf(x any, skip int) Value {
	switch t := x.(type) {
	case nil:
		return Null()
	case Value:
		return t
	case string:
		return String(t)
	case bool:
		return Bool(t)
	case int:
		return Int(int64(t))
	case int8:
		return Int(int64(t))
	case int16:
		return Int(int64(t))
	case int32:
		return Int(int64(t))
	case int64:
		return Int(t)
	case uint:
		return Uint(uint64(t))
	case uint8:
		return Uint(uint64(t))
	case uint16:
		return Uint(uint64(t))
	case uint32:
		return Uint(uint64(t))
	case uint64:
		return Uint(t)
	case float32:
		return Float32(t)
	case float64:
		return Float(t)
	case error:
		if isNilPointer(t) {
			return Null()
		}
		return Error(NewErrorInfo(t, skip+1))
	default:
		return Structured(x)
	}
}

// isNilPointer reports whether x holds a nil pointer, map, slice, func or chan.
func isNilPointer(x any) bool {
	rv := reflect.ValueOf(x)
	switch rv.Kind() {
	case reflect.Ptr, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
		return rv.IsNil()
	default:
		return false
	}
}

type stackTracer interface {
	StackTrace() pkgerrors.StackTrace
}

// NewErrorInfo captures message, origin and stack of err. When err (or
// anything it wraps) carries a pkg/errors stack, the innermost one is used;
// otherwise the location is the caller skip frames above NewErrorInfo.
func NewErrorInfo(err error, skip int) ErrorInfo {
	info := ErrorInfo{Message: err.Error()}

	var deepest pkgerrors.StackTrace
	for e := err; e != nil && !isNilPointer(e); e = errors.Unwrap(e) {
		if st, ok := e.(stackTracer); ok {
			if trace := st.StackTrace(); len(trace) > 0 {
				deepest = trace
			}
		}
	}

	if deepest != nil {
		pc := uintptr(deepest[0]) - 1
		if fn := runtime.FuncForPC(pc); fn != nil {
			info.File, info.Line = fn.FileLine(pc)
		}
		info.Stack = strings.TrimPrefix(fmt.Sprintf("%+v", deepest), "\n")
		return info
	}

	pcs := make([]uintptr, 32)
	n := runtime.Callers(skip+2, pcs)
	if n == 0 {
		return info
	}
	frames := runtime.CallersFrames(pcs[:n])
	var b strings.Builder
	first := true
	for {
		frame, more := frames.Next()
		if first {
			info.File, info.Line = frame.File, frame.Line
			first = false
		} else {
			b.WriteByte('\n')
		}
		fmt.Fprintf(&b, "%s\n\t%s:%d", frame.Function, frame.File, frame.Line)
		if !more {
			break
		}
	}
	info.Stack = b.String()
	return info
}

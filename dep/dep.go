/*
package dep checks constructor arguments.

okay, just the one check.
*/
package dep

import (
	"fmt"
	"reflect"
	"runtime"
)

// Required returns t, or panics naming the caller if t is nil.  Typed nils
// (a nil *Foo in an interface, a nil map or func) count as nil too.
func Required[T any](t T) T {
	if !isNil(reflect.ValueOf(&t).Elem()) {
		return t
	}
	pc, file, line, ok := runtime.Caller(1)
	if !ok {
		panic(fmt.Sprintf("missing required dependency of type %T", t))
	}
	if fn := runtime.FuncForPC(pc); fn != nil {
		panic(fmt.Sprintf("missing required dependency of type %T in %s (%s:%d)", t, fn.Name(), file, line))
	}
	panic(fmt.Sprintf("missing required dependency of type %T (%s:%d)", t, file, line))
}

func isNil(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.Interface:
		if v.IsNil() {
			return true
		}
		return isNil(v.Elem())
	case reflect.Pointer, reflect.Map, reflect.Func, reflect.Chan, reflect.Slice:
		return v.IsNil()
	}
	return false
}

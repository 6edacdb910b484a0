package entwire

import "reflect"

// isNil reports whether a field value counts as null: a nil interface or a
// typed nil pointer/slice/map boxed in one. Presence tracking and the
// omit-null canonical policy both depend on this.
func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Slice, reflect.Map, reflect.Func, reflect.Chan:
		return rv.IsNil()
	default:
		return false
	}
}

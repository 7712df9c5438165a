package poco

import "reflect"

// LookupResult tells why Lookup did or did not return a value.
type LookupResult int

const (
	Found LookupResult = iota
	NotFound
	TypeMismatch
	Absent
)

func (r LookupResult) String() string {
	switch r {
	case Found:
		return "found"
	case NotFound:
		return "not found"
	case TypeMismatch:
		return "type mismatch"
	case Absent:
		return "absent"
	}
	return "unknown"
}

// Field reads the exported field name of model as a V. It returns the zero V
// when the field does not exist, when its declared type is not exactly V, or
// when it holds nil. It never panics on a miss.
func Field[V any](model any, name string) V {
	v, _ := Lookup[V](model, name)
	return v
}

// Lookup is the strict form of Field: it also reports why no value was found.
func Lookup[V any](model any, name string) (V, LookupResult) {
	var zero V

	rv := reflect.ValueOf(model)
	for rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return zero, NotFound
		}
		rv = rv.Elem()
	}

	if rv.Kind() != reflect.Struct {
		return zero, NotFound
	}

	sf, ok := rv.Type().FieldByName(name)
	if !ok || !sf.IsExported() {
		return zero, NotFound
	}

	if sf.Type != typeOf[V]() {
		return zero, TypeMismatch
	}

	fv, err := rv.FieldByIndexErr(sf.Index)
	if err != nil || !fv.CanInterface() {
		return zero, NotFound
	}

	if isNil(fv) {
		return zero, Absent
	}

	return fv.Interface().(V), Found
}

func isNil(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
		return v.IsNil()
	}
	return false
}

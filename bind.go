package poco

import (
	"database/sql"
	"fmt"
	"reflect"

	"github.com/jmoiron/sqlx/reflectx"

	"github.com/maxshaw/poco/qb"
)

// fieldMapper resolves struct fields by their Go name, the same rule the
// statements use for column names.
var fieldMapper = reflectx.NewMapperFunc("", func(s string) string { return s })

// bind turns param into named arguments for every @name placeholder of
// query. param may be nil, a struct, a pointer to a struct or a map with
// string keys. Placeholders param has no value for are left unbound.
func bind(query string, param any) ([]any, error) {
	if param == nil {
		return nil, nil
	}

	names := qb.Placeholders(query)
	if len(names) == 0 {
		return nil, nil
	}

	rv := reflect.Indirect(reflect.ValueOf(param))

	var lookup func(name string) (any, bool)
	switch rv.Kind() {
	case reflect.Struct:
		fields := fieldMapper.TypeMap(rv.Type())
		lookup = func(name string) (any, bool) {
			fi, ok := fields.Names[name]
			if !ok {
				return nil, false
			}
			fv := reflectx.FieldByIndexesReadOnly(rv, fi.Index)
			if !fv.IsValid() || !fv.CanInterface() {
				return nil, false
			}
			return fv.Interface(), true
		}

	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			return nil, fmt.Errorf("poco: parameter map key must be a string, got %s", rv.Type().Key())
		}
		lookup = func(name string) (any, bool) {
			mv := rv.MapIndex(reflect.ValueOf(name).Convert(rv.Type().Key()))
			if !mv.IsValid() {
				return nil, false
			}
			return mv.Interface(), true
		}

	case reflect.Invalid:
		return nil, nil

	default:
		return nil, fmt.Errorf("poco: unsupported parameter type %T", param)
	}

	args := make([]any, 0, len(names))
	for _, name := range names {
		if v, ok := lookup(name); ok {
			args = append(args, sql.Named(name, v))
		}
	}

	return args, nil
}

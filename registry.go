package poco

import (
	"reflect"
	"strings"
	"sync"
)

// TagName is the struct tag that marks mapped fields:
//
//	type Person struct {
//	    Id        int    `poco:"pk"`
//	    FirstName string `poco:"field"`
//	    Scratch   string // not mapped
//	}
const TagName = "poco"

// Registry caches model metadata per Go type. The zero value is not usable;
// use NewRegistry.
type Registry struct {
	entries sync.Map // reflect.Type -> *entry
}

type entry struct {
	once sync.Once
	meta *Meta
	err  error
}

var defaultRegistry = NewRegistry()

func NewRegistry() *Registry {
	return &Registry{}
}

// Meta returns the metadata of t, deriving it on first use. Pointer types
// share the entry of their element type. Configuration errors are cached
// along with the result.
func (r *Registry) Meta(t reflect.Type) (*Meta, error) {
	t = indirect(t)

	v, _ := r.entries.LoadOrStore(t, &entry{})
	e := v.(*entry)
	e.once.Do(func() {
		e.meta, e.err = derive(t)
	})

	return e.meta, e.err
}

// Register stores an explicit schema for t. It must run before the first
// lookup of t. A rejected schema leaves t unregistered.
func (r *Registry) Register(t reflect.Type, s Schema) error {
	t = indirect(t)

	meta, err := compileFor(t, s)
	if err != nil {
		return err
	}

	e := &entry{meta: meta}
	e.once.Do(func() {})

	if _, loaded := r.entries.LoadOrStore(t, e); loaded {
		return &ConfigError{Model: t.String(), Err: ErrAlreadyRegistered}
	}

	return nil
}

// MetaOf returns the metadata of T from the default registry.
func MetaOf[T any]() (*Meta, error) {
	return defaultRegistry.Meta(typeOf[T]())
}

// MustMeta is like MetaOf but panics on a configuration error.
func MustMeta[T any]() *Meta {
	m, err := MetaOf[T]()
	if err != nil {
		panic(err)
	}
	return m
}

// Register stores an explicit schema for T in the default registry.
func Register[T any](s Schema) error {
	return defaultRegistry.Register(typeOf[T](), s)
}

func typeOf[T any]() reflect.Type {
	return reflect.TypeOf((*T)(nil)).Elem()
}

func indirect(t reflect.Type) reflect.Type {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t
}

// derive builds the schema of t from its TableName method and poco tags.
func derive(t reflect.Type) (*Meta, error) {
	if t.Kind() != reflect.Struct {
		return nil, &ConfigError{Model: t.String(), Err: ErrNotStruct}
	}

	var s Schema

	if m, ok := reflect.New(t).Interface().(Modeler); ok {
		s.Table = m.TableName()
	}
	if s.Table == "" {
		return nil, &ConfigError{Model: t.String(), Err: ErrMissingTable}
	}

	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if !f.IsExported() {
			continue
		}

		tag, ok := f.Tag.Lookup(TagName)
		if !ok || tag == "-" {
			continue
		}

		s.Columns = append(s.Columns, Column{Name: f.Name, PrimaryKey: hasOption(tag, "pk")})
	}

	return Compile(s)
}

// compileFor compiles an explicit schema and checks that every column names
// an exported field of t.
func compileFor(t reflect.Type, s Schema) (*Meta, error) {
	if t.Kind() != reflect.Struct {
		return nil, &ConfigError{Model: t.String(), Err: ErrNotStruct}
	}

	for _, c := range s.Columns {
		if f, ok := t.FieldByName(c.Name); !ok || !f.IsExported() {
			return nil, &ConfigError{Model: t.String(), Field: c.Name, Err: ErrUnknownField}
		}
	}

	return Compile(s)
}

func hasOption(tag, opt string) bool {
	for _, part := range strings.Split(tag, ",") {
		if strings.TrimSpace(part) == opt {
			return true
		}
	}
	return false
}

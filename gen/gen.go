// Package gen derives model schemas from Go source and writes code that
// registers them with poco, so metadata is fixed at build time instead of
// being reflected at first use.
package gen

import (
	"bytes"
	"embed"
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"os"
	"path/filepath"
	"reflect"
	"sort"
	"strconv"
	"strings"
	"text/template"

	"github.com/samber/lo"
	"golang.org/x/tools/imports"

	"github.com/maxshaw/poco"
)

// Suffix is appended to the lower-cased model name to form the output file.
const Suffix = "_poco.go"

//go:embed template/*
var tplDir embed.FS

var tpl = template.Must(template.ParseFS(tplDir, "template/*.tmpl"))

// Field is a tagged struct field.
type Field struct {
	Name string
	PK   bool
}

// Model is a struct type with a TableName method.
type Model struct {
	Name   string
	Table  string
	Fields []Field
}

// Schema converts m into the descriptor poco registers.
func (m *Model) Schema() poco.Schema {
	return poco.Schema{
		Table: m.Table,
		Columns: lo.Map(m.Fields, func(f Field, _ int) poco.Column {
			return poco.Column{Name: f.Name, PrimaryKey: f.PK}
		}),
	}
}

// Package is the parsed model package.
type Package struct {
	Name   string
	Dir    string
	Models []*Model
}

// Gen parses the models in dir and writes one registration file per model
// next to them. It returns the written paths.
func Gen(dir string) ([]string, error) {
	pkg, err := Parse(dir)
	if err != nil {
		return nil, err
	}

	var written []string
	for _, m := range pkg.Models {
		path := filepath.Join(dir, strings.ToLower(m.Name)+Suffix)

		src, err := Render(pkg.Name, m)
		if err != nil {
			return written, err
		}

		if err := os.WriteFile(path, src, 0o644); err != nil {
			return written, fmt.Errorf("failed to write %s: %w", path, err)
		}
		written = append(written, path)
	}

	return written, nil
}

// Render produces the formatted registration file of m.
func Render(pkgName string, m *Model) ([]byte, error) {
	meta, err := poco.Compile(m.Schema())
	if err != nil {
		return nil, fmt.Errorf("[%s] %w", m.Name, err)
	}

	var out bytes.Buffer
	err = tpl.ExecuteTemplate(&out, "model.tmpl", map[string]any{
		"Package": pkgName,
		"Name":    m.Name,
		"Table":   m.Table,
		"Fields":  m.Fields,
		"Meta":    meta,
	})
	if err != nil {
		return nil, err
	}

	src, err := imports.Process(strings.ToLower(m.Name)+Suffix, out.Bytes(), nil)
	if err != nil {
		return nil, fmt.Errorf("[%s] failed to format generated code: %w", m.Name, err)
	}

	return src, nil
}

// Parse collects the models declared in dir: struct types with a TableName
// method. Structs with poco tags but no TableName are rejected.
func Parse(dir string) (*Package, error) {
	files, err := filepath.Glob(filepath.Join(dir, "*.go"))
	if err != nil {
		return nil, err
	}

	files = lo.Filter(files, func(f string, _ int) bool {
		return !strings.HasSuffix(f, "_test.go") && !strings.HasSuffix(f, Suffix)
	})
	if len(files) == 0 {
		return nil, fmt.Errorf("no model sources in %s", dir)
	}

	var (
		fset   = token.NewFileSet()
		pkg    = &Package{Dir: dir}
		models = make(map[string]*Model)
		tables = make(map[string]string)
	)

	for _, file := range files {
		f, err := parser.ParseFile(fset, file, nil, parser.SkipObjectResolution)
		if err != nil {
			return nil, err
		}

		if pkg.Name == "" {
			pkg.Name = f.Name.Name
		}

		for _, decl := range f.Decls {
			switch d := decl.(type) {
			case *ast.GenDecl:
				for _, spec := range d.Specs {
					if ts, ok := spec.(*ast.TypeSpec); ok {
						if st, ok := ts.Type.(*ast.StructType); ok {
							models[ts.Name.Name] = parse(ts.Name.Name, st)
						}
					}
				}

			case *ast.FuncDecl:
				if d.Name.Name != "TableName" || receiverName(d.Recv) == "" {
					continue
				}

				table, err := tableName(d)
				if err != nil {
					return nil, fmt.Errorf("[%s.TableName] %w", receiverName(d.Recv), err)
				}
				tables[receiverName(d.Recv)] = table
			}
		}
	}

	names := lo.Keys(models)
	sort.Strings(names)

	for _, name := range names {
		m := models[name]

		table, ok := tables[name]
		if !ok {
			if len(m.Fields) > 0 {
				return nil, &poco.ConfigError{Model: name, Err: poco.ErrMissingTable}
			}
			continue
		}

		m.Table = table
		pkg.Models = append(pkg.Models, m)
	}

	return pkg, nil
}

func parse(name string, st *ast.StructType) *Model {
	m := &Model{Name: name}

	for _, sf := range st.Fields.List {
		if len(sf.Names) < 1 || sf.Tag == nil {
			continue
		}

		raw, err := strconv.Unquote(sf.Tag.Value)
		if err != nil {
			continue
		}

		tag, ok := reflect.StructTag(raw).Lookup(poco.TagName)
		if !ok || tag == "-" {
			continue
		}

		opts := lo.Map(strings.Split(tag, ","), func(s string, _ int) string { return strings.TrimSpace(s) })

		for _, id := range sf.Names {
			if !id.IsExported() {
				continue
			}
			m.Fields = append(m.Fields, Field{Name: id.Name, PK: lo.Contains(opts, "pk")})
		}
	}

	return m
}

func receiverName(l *ast.FieldList) string {
	if l.NumFields() == 0 {
		return ""
	}

	switch t := l.List[0].Type.(type) {
	case *ast.Ident:
		return t.Name
	case *ast.StarExpr:
		if id, ok := t.X.(*ast.Ident); ok {
			return id.Name
		}
	}
	return ""
}

// tableName extracts the literal returned by a TableName method.
func tableName(d *ast.FuncDecl) (string, error) {
	if d.Body == nil || len(d.Body.List) != 1 {
		return "", fmt.Errorf("must consist of a single return statement")
	}

	ret, ok := d.Body.List[0].(*ast.ReturnStmt)
	if !ok || len(ret.Results) != 1 {
		return "", fmt.Errorf("must consist of a single return statement")
	}

	lit, ok := ret.Results[0].(*ast.BasicLit)
	if !ok || lit.Kind != token.STRING {
		return "", fmt.Errorf("must return a string literal")
	}

	return strconv.Unquote(lit.Value)
}

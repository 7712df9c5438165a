package gen

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maxshaw/poco"
)

// src builds a Go source file, writing struct tags as 'tag' to keep the
// fixtures readable.
func src(lines ...string) string {
	return strings.ReplaceAll(strings.Join(lines, "\n"), "'", "`")
}

var personSrc = src(
	"package model",
	"",
	"type Person struct {",
	"	Id        int    'poco:\"pk\"'",
	"	FirstName string 'poco:\"field\"'",
	"	LastName  string 'poco:\"field\" json:\"last\"'",
	"	Scratch   string",
	"	Skipped   string 'poco:\"-\"'",
	"}",
	"",
	"func (Person) TableName() string { return \"Person\" }",
	"",
	"type helper struct{ n int }",
)

func writeModels(t *testing.T, files map[string]string) string {
	t.Helper()

	dir := t.TempDir()
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o600))
	}
	return dir
}

func TestParse(t *testing.T) {
	dir := writeModels(t, map[string]string{
		"person.go": personSrc,
		"order.go": src(
			"package model",
			"",
			"type Order struct {",
			"	Code, Ref string 'poco:\"field\"'",
			"	Key       int    'poco:\"field,pk\"'",
			"}",
			"",
			"func (o *Order) TableName() string {",
			"	return \"Orders\"",
			"}",
		),
		"person_test.go": "package model\n\ntype Ignored struct{ X int `poco:\"pk\"` }\n",
	})

	pkg, err := Parse(dir)
	require.NoError(t, err)

	assert.Equal(t, "model", pkg.Name)
	require.Len(t, pkg.Models, 2)

	order, person := pkg.Models[0], pkg.Models[1]

	assert.Equal(t, "Order", order.Name)
	assert.Equal(t, "Orders", order.Table)
	assert.Equal(t, []Field{{Name: "Code"}, {Name: "Ref"}, {Name: "Key", PK: true}}, order.Fields)

	assert.Equal(t, "Person", person.Name)
	assert.Equal(t, "Person", person.Table)
	assert.Equal(t, []Field{{Name: "Id", PK: true}, {Name: "FirstName"}, {Name: "LastName"}}, person.Fields)
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name    string
		source  string
		wantErr string
	}{
		{
			name: "tagged struct without table",
			source: src(
				"package model",
				"type Person struct {",
				"	Id int 'poco:\"pk\"'",
				"}",
			),
			wantErr: poco.ErrMissingTable.Error(),
		},
		{
			name: "computed table name",
			source: src(
				"package model",
				"type Person struct{ Id int 'poco:\"pk\"' }",
				"func (Person) TableName() string { return name() }",
			),
			wantErr: "string literal",
		},
		{
			name:    "syntax error",
			source:  "package model\ntype Person struct {",
			wantErr: "expected",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(writeModels(t, map[string]string{"model.go": tt.source}))
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}

	t.Run("empty dir", func(t *testing.T) {
		_, err := Parse(t.TempDir())
		assert.Error(t, err)
	})
}

func TestRender(t *testing.T) {
	m := &Model{
		Name:  "Person",
		Table: "Person",
		Fields: []Field{
			{Name: "Id", PK: true},
			{Name: "FirstName"},
			{Name: "LastName"},
		},
	}

	out, err := Render("model", m)
	require.NoError(t, err)

	code := string(out)
	assert.True(t, strings.HasPrefix(code, "// Code generated by poco-gen. DO NOT EDIT."))
	assert.Contains(t, code, "package model")
	assert.Contains(t, code, `"github.com/maxshaw/poco"`)
	assert.Contains(t, code, `PersonSelect = "SELECT [Id], [FirstName], [LastName] FROM [Person]"`)
	assert.Contains(t, code, `PersonInsert = "INSERT INTO [Person] ([FirstName], [LastName]) VALUES (@FirstName, @LastName)"`)
	assert.Contains(t, code, `PersonUpdate = "UPDATE [Person] SET [FirstName] = @FirstName, [LastName] = @LastName"`)
	assert.Contains(t, code, `PersonDelete = "DELETE FROM [Person]"`)
	assert.Contains(t, code, "poco.Register[Person](")
	assert.Contains(t, code, `{Name: "Id", PrimaryKey: true},`)
	assert.Contains(t, code, `{Name: "FirstName"},`)
}

func TestRender_InvalidModels(t *testing.T) {
	tests := []struct {
		name   string
		fields []Field
		want   error
	}{
		{name: "no primary key", fields: []Field{{Name: "A"}}, want: poco.ErrNoPrimaryKey},
		{name: "multiple primary keys", fields: []Field{{Name: "A", PK: true}, {Name: "B", PK: true}}, want: poco.ErrMultiplePrimaryKeys},
		{name: "no fields", want: poco.ErrNoFields},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Render("model", &Model{Name: "Thing", Table: "Thing", Fields: tt.fields})
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestGen(t *testing.T) {
	dir := writeModels(t, map[string]string{"person.go": personSrc})

	written, err := Gen(dir)
	require.NoError(t, err)
	require.Equal(t, []string{filepath.Join(dir, "person_poco.go")}, written)

	data, err := os.ReadFile(written[0])
	require.NoError(t, err)
	assert.Contains(t, string(data), "PersonSelect")

	// Generated files are not parsed as models on the next run.
	again, err := Gen(dir)
	require.NoError(t, err)
	assert.Equal(t, written, again)
}

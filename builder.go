package poco

import (
	"github.com/samber/lo"

	"github.com/maxshaw/poco/qb"
)

// Meta is the metadata derived once per model type.
type Meta struct {
	Table      string
	PrimaryKey string
	Fields     []string

	Select, Insert, Update, Delete string
}

// DataFields returns the fields without the primary key, in column order.
func (m *Meta) DataFields() []string {
	return lo.Without(m.Fields, m.PrimaryKey)
}

// Filter appends a WHERE clause on fields to stmt.
func (m *Meta) Filter(stmt string, fields ...string) string {
	return qb.Filter(stmt, fields...)
}

// Compile validates s and derives its statements.
func Compile(s Schema) (*Meta, error) {
	if s.Table == "" {
		return nil, &ConfigError{Err: ErrMissingTable}
	}

	if len(s.Columns) == 0 {
		return nil, &ConfigError{Model: s.Table, Err: ErrNoFields}
	}

	names := s.Names()
	if dup := lo.FindDuplicates(names); len(dup) > 0 {
		return nil, &ConfigError{Model: s.Table, Field: dup[0], Err: ErrDuplicateField}
	}

	pks := lo.Filter(s.Columns, func(c Column, _ int) bool { return c.PrimaryKey })
	switch {
	case len(pks) == 0:
		return nil, &ConfigError{Model: s.Table, Err: ErrNoPrimaryKey}
	case len(pks) > 1:
		return nil, &ConfigError{Model: s.Table, Field: pks[1].Name, Err: ErrMultiplePrimaryKeys}
	}

	m := &Meta{
		Table:      s.Table,
		PrimaryKey: pks[0].Name,
		Fields:     names,
	}

	data := m.DataFields()

	m.Select = selectStatement(m.Table, m.Fields)
	m.Insert = insertStatement(m.Table, data)
	m.Update = updateStatement(m.Table, data)
	m.Delete = deleteStatement(m.Table)

	return m, nil
}

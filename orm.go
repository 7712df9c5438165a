package poco

// Modeler declares the table a model type maps to.
type Modeler interface {
	TableName() string
}

// Column describes one mapped field. Name is both the Go field name and the
// column name.
type Column struct {
	Name       string
	PrimaryKey bool
}

// Schema is the explicit descriptor of a model: its table and its mapped
// fields in column order.
type Schema struct {
	Table   string
	Columns []Column
}

// Names returns the column names in order.
func (s Schema) Names() []string {
	names := make([]string, len(s.Columns))
	for i, c := range s.Columns {
		names[i] = c.Name
	}
	return names
}

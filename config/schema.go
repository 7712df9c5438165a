package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// SchemaFile lists model descriptors:
//
//	models:
//	  - table: Person
//	    fields:
//	      - {name: Id, pk: true}
//	      - {name: FirstName}
type SchemaFile struct {
	Models []Model `yaml:"models"`
}

type Model struct {
	Table  string  `yaml:"table"`
	Fields []Field `yaml:"fields"`
}

type Field struct {
	Name string `yaml:"name"`
	PK   bool   `yaml:"pk"`
}

// LoadSchemas reads a schema file. Models are returned as written; they are
// validated when compiled.
func LoadSchemas(path string) ([]Model, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read schema file: %w", err)
	}

	var f SchemaFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse schema file: %w", err)
	}

	return f.Models, nil
}

package poco

import (
	"errors"
	"strings"
)

var (
	ErrNotStruct           = errors.New("model must be a struct")
	ErrMissingTable        = errors.New("model has no table name")
	ErrNoFields            = errors.New("model has no data fields")
	ErrNoPrimaryKey        = errors.New("model has no primary key")
	ErrMultiplePrimaryKeys = errors.New("model has more than one primary key")
	ErrDuplicateField      = errors.New("duplicate data field")
	ErrUnknownField        = errors.New("data field is not an exported struct field")
	ErrAlreadyRegistered   = errors.New("model metadata already derived")

	// ErrNotFound is returned by Table.Get when no row matches the key.
	ErrNotFound = errors.New("record not found")
)

// ConfigError reports a misconfigured model. Err is one of the sentinel
// errors above, so callers can match it with errors.Is.
type ConfigError struct {
	Model, Field string
	Err          error
}

func (e *ConfigError) Error() string {
	var sb strings.Builder

	sb.WriteString("poco: ")
	if e.Model != "" {
		sb.WriteString(e.Model)
		sb.WriteString(": ")
	}
	sb.WriteString(e.Err.Error())
	if e.Field != "" {
		sb.WriteString(" (")
		sb.WriteString(e.Field)
		sb.WriteString(")")
	}

	return sb.String()
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

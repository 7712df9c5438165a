package qb

import (
	"strings"

	"github.com/samber/lo"
)

// Bracket quotes an identifier as [s]. Empty identifiers pass through.
func Bracket(s string) string {
	if s == "" {
		return s
	}
	return "[" + s + "]"
}

// Parameterize turns a field name into its @s placeholder. Empty names pass through.
func Parameterize(s string) string {
	if s == "" {
		return s
	}
	return "@" + s
}

// Assign renders "[s] = @s".
func Assign(s string) string {
	return Bracket(s) + " = " + Parameterize(s)
}

// Columns renders "[a], [b], ...".
func Columns(fields []string) string {
	return join(fields, Bracket)
}

// Params renders "@a, @b, ...".
func Params(fields []string) string {
	return join(fields, Parameterize)
}

// Assignments renders "[a] = @a, [b] = @b, ...".
func Assignments(fields []string) string {
	return join(fields, Assign)
}

func join(fields []string, fn func(string) string) string {
	return strings.Join(lo.Map(fields, func(f string, _ int) string { return fn(f) }), ", ")
}

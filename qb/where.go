package qb

import (
	"strings"

	"github.com/samber/lo"
)

// Where renders "[a] = @a AND [b] = @b" in the order given.
func Where(fields ...string) string {
	return strings.Join(lo.Map(fields, func(f string, _ int) string { return Assign(f) }), " AND ")
}

// Filter appends a WHERE clause matching every field to its placeholder.
// With no fields the statement is returned untouched.
func Filter(sql string, fields ...string) string {
	if len(fields) == 0 {
		return sql
	}

	var sb strings.Builder

	sb.WriteString(sql)
	sb.WriteString(" WHERE ")
	sb.WriteString(Where(fields...))

	return sb.String()
}

// Placeholders lists the distinct @name placeholders of sql in order of
// first appearance, without the @ prefix.
func Placeholders(sql string) []string {
	var (
		names []string
		seen  = make(map[string]struct{})
	)

	for i := 0; i < len(sql); i++ {
		if sql[i] != '@' {
			continue
		}

		j := i + 1
		for j < len(sql) && isIdent(sql[j], j == i+1) {
			j++
		}

		// @@name is a server variable, not a placeholder.
		if j > i+1 && (i == 0 || sql[i-1] != '@') {
			name := sql[i+1 : j]
			if _, ok := seen[name]; !ok {
				seen[name] = struct{}{}
				names = append(names, name)
			}
		}
		i = j - 1
	}

	return names
}

func isIdent(c byte, first bool) bool {
	switch {
	case c == '_', c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z':
		return true
	case c >= '0' && c <= '9':
		return !first
	}
	return false
}

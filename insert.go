package poco

import (
	"strings"

	"github.com/maxshaw/poco/qb"
)

// insertStatement renders INSERT INTO [table] ([a], [b]) VALUES (@a, @b).
func insertStatement(table string, fields []string) string {
	var sb strings.Builder

	sb.WriteString("INSERT INTO ")
	sb.WriteString(qb.Bracket(table))
	sb.WriteString(" (")
	sb.WriteString(qb.Columns(fields))
	sb.WriteString(") VALUES (")
	sb.WriteString(qb.Params(fields))
	sb.WriteString(")")

	return sb.String()
}

package poco

import (
	"strings"

	"github.com/maxshaw/poco/qb"
)

// selectStatement renders SELECT [a], [b] FROM [table].
func selectStatement(table string, fields []string) string {
	var sb strings.Builder

	sb.WriteString("SELECT ")
	sb.WriteString(qb.Columns(fields))
	sb.WriteString(" FROM ")
	sb.WriteString(qb.Bracket(table))

	return sb.String()
}

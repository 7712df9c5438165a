package poco

import (
	"strings"

	"github.com/maxshaw/poco/qb"
)

// updateStatement renders UPDATE [table] SET [a] = @a, [b] = @b.
// It carries no WHERE clause; callers filter it.
func updateStatement(table string, fields []string) string {
	var sb strings.Builder

	sb.WriteString("UPDATE ")
	sb.WriteString(qb.Bracket(table))
	sb.WriteString(" SET ")
	sb.WriteString(qb.Assignments(fields))

	return sb.String()
}

package poco

import "github.com/maxshaw/poco/qb"

func deleteStatement(table string) string {
	return "DELETE FROM " + qb.Bracket(table)
}

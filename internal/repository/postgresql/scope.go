package postgresql

import (
	"fmt"

	"github.com/cmlabs-hris/interntrack-backend-go/internal/domain/access"
)

// scopeClause returns the WHERE fragment limiting rows to scope. internAlias is the alias of the
// interns table in the query; args are appended starting at placeholder argIdx.
func scopeClause(scope access.Scope, internAlias string, args []interface{}, argIdx int) (string, []interface{}, int) {
	if scope.All {
		return "TRUE", args, argIdx
	}

	clause := ""
	if scope.MentorID != "" {
		clause = fmt.Sprintf("%s.mentor_id = $%d", internAlias, argIdx)
		args = append(args, scope.MentorID)
		argIdx++
	}
	if scope.LinkedUserID != "" {
		if clause != "" {
			clause += " OR "
		}
		clause += fmt.Sprintf("%s.user_id = $%d", internAlias, argIdx)
		args = append(args, scope.LinkedUserID)
		argIdx++
	}
	if clause == "" {
		return "FALSE", args, argIdx
	}
	return "(" + clause + ")", args, argIdx
}

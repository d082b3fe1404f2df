package params

import (
	"fmt"
	"strings"
)

// Set collects the assignments of a partial UPDATE. Only fields that were
// sent are assigned; updated_at is always bumped.
type Set struct {
	parts []string
	args  []any
}

// Assign sets column to v.
func (s *Set) Assign(column string, v any) {
	s.AssignCast(column, v, "")
}

// AssignCast sets column to v with a ::cast on the placeholder.
func (s *Set) AssignCast(column string, v any, cast string) {
	s.args = append(s.args, v)
	ph := fmt.Sprintf("$%d", len(s.args))
	if cast != "" {
		ph += "::" + cast
	}
	s.parts = append(s.parts, column+" = "+ph)
}

func (s *Set) Empty() bool {
	return len(s.parts) == 0
}

// Update renders "UPDATE table SET ... WHERE id = $n RETURNING returning"
// and its args, with id as the last arg.
func (s *Set) Update(table string, id any, returning string) (string, []any) {
	args := append(append([]any(nil), s.args...), id)
	query := fmt.Sprintf("UPDATE %s SET %s, updated_at = NOW() WHERE id = $%d RETURNING %s",
		table, strings.Join(s.parts, ", "), len(args), returning)
	return query, args
}

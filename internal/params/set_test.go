package params

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSet(t *testing.T) {
	var s Set
	assert.True(t, s.Empty())

	s.Assign("name", "Marina Court")
	s.AssignCast("manager_id", "33333333-3333-3333-3333-333333333333", "uuid")
	s.Assign("law_firm_id", int64(4))

	query, args := s.Update("buildings", int64(9), "id, name")

	assert.False(t, s.Empty())
	assert.Equal(t,
		"UPDATE buildings SET name = $1, manager_id = $2::uuid, law_firm_id = $3, updated_at = NOW() WHERE id = $4 RETURNING id, name",
		query)
	assert.Equal(t, []any{"Marina Court", "33333333-3333-3333-3333-333333333333", int64(4), int64(9)}, args)
}

func TestSet_UpdateDoesNotAliasArgs(t *testing.T) {
	var s Set
	s.Assign("status", "OCCUPIED")

	_, first := s.Update("booking_status", int64(1), "id")
	_, second := s.Update("booking_status", int64(2), "id")

	assert.Equal(t, []any{"OCCUPIED", int64(1)}, first)
	assert.Equal(t, []any{"OCCUPIED", int64(2)}, second)
}

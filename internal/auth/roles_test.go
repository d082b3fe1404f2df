package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseRole(t *testing.T) {
	for _, r := range Roles() {
		got, err := ParseRole(string(r))
		assert.NoError(t, err)
		assert.Equal(t, r, got)
	}

	for _, s := range []string{"", "admin", "SUPERUSER", " ADMIN"} {
		_, err := ParseRole(s)
		assert.Error(t, err, s)
	}
}

func TestRoles_ReturnsCopy(t *testing.T) {
	rs := Roles()
	rs[0] = "MUTATED"
	assert.Equal(t, RoleAdmin, Roles()[0])
}

func TestRoleSet(t *testing.T) {
	all := AllRoles()
	for _, r := range Roles() {
		assert.True(t, all.Contains(r))
	}
	assert.False(t, all.Contains("SUPERUSER"))

	var zero RoleSet
	assert.True(t, zero.Contains(RoleTenant))
	assert.False(t, zero.Contains("SUPERUSER"))

	set := NewRoleSet(RoleAdmin, RoleManager)
	assert.True(t, set.Contains(RoleAdmin))
	assert.False(t, set.Contains(RoleTenant))
	assert.Equal(t, "ADMIN,MANAGER", set.String())

	none := NewRoleSet(Role("ROOT"))
	assert.False(t, none.Contains(RoleAdmin))
}

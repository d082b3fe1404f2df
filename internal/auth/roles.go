package auth

import (
	"fmt"
	"strings"
)

// Role is the closed set of roles a principal can hold.
type Role string

const (
	RoleAdmin   Role = "ADMIN"
	RoleManager Role = "MANAGER"
	RoleTenant  Role = "TENANT"
	RoleGuest   Role = "GUEST"
	RoleStaff   Role = "STAFF"
	RoleCashier Role = "CASHIER"
	RoleUser    Role = "USER"
)

var knownRoles = []Role{
	RoleAdmin,
	RoleManager,
	RoleTenant,
	RoleGuest,
	RoleStaff,
	RoleCashier,
	RoleUser,
}

// Roles returns every known role in declaration order.
func Roles() []Role {
	out := make([]Role, len(knownRoles))
	copy(out, knownRoles)
	return out
}

func (r Role) Valid() bool {
	for _, k := range knownRoles {
		if r == k {
			return true
		}
	}
	return false
}

func (r Role) String() string {
	return string(r)
}

// ParseRole matches exactly; "admin" is not ADMIN.
func ParseRole(s string) (Role, error) {
	r := Role(s)
	if !r.Valid() {
		return "", fmt.Errorf("unknown role %q", s)
	}
	return r, nil
}

// RoleSet is the set of roles an operation accepts. It is never mutated
// after construction.
type RoleSet struct {
	roles map[Role]struct{}
}

// NewRoleSet builds a set from roles. With no arguments it accepts every
// known role. Unknown roles are dropped, so a set built only from unknown
// roles accepts nobody. The zero RoleSet accepts every known role.
func NewRoleSet(roles ...Role) RoleSet {
	if len(roles) == 0 {
		roles = knownRoles
	}
	set := RoleSet{roles: make(map[Role]struct{}, len(roles))}
	for _, r := range roles {
		if r.Valid() {
			set.roles[r] = struct{}{}
		}
	}
	return set
}

// AllRoles accepts any authenticated principal.
func AllRoles() RoleSet {
	return NewRoleSet()
}

func (s RoleSet) Contains(r Role) bool {
	if s.roles == nil {
		return r.Valid()
	}
	_, ok := s.roles[r]
	return ok
}

func (s RoleSet) String() string {
	names := make([]string, 0, len(s.roles))
	for _, r := range knownRoles {
		if s.Contains(r) {
			names = append(names, string(r))
		}
	}
	return strings.Join(names, ",")
}

package wang

import "github.com/1siamBot/dualgrid/engine/dualgrid"

// RoleTable maps roles 1..15 to sprite ids. The zero value is empty.
type RoleTable struct {
	ids [16]int
	set uint16
}

// Set assigns id to role. Role 0 and roles above 15 are ignored.
func (t *RoleTable) Set(role dualgrid.Role, id int) {
	if role == dualgrid.RoleNone || !role.Valid() {
		return
	}
	t.ids[role] = id
	t.set |= 1 << role
}

// Lookup returns the sprite id for role.
func (t RoleTable) Lookup(role dualgrid.Role) (int, bool) {
	if role == dualgrid.RoleNone || !role.Valid() || t.set&(1<<role) == 0 {
		return 0, false
	}
	return t.ids[role], true
}

// Len returns the number of resolvable roles.
func (t RoleTable) Len() int {
	n := 0
	for r := dualgrid.Role(1); r <= dualgrid.RoleFull; r++ {
		if t.set&(1<<r) != 0 {
			n++
		}
	}
	return n
}

// Missing lists the roles in 1..15 without an entry.
func (t RoleTable) Missing() []dualgrid.Role {
	var out []dualgrid.Role
	for r := dualgrid.Role(1); r <= dualgrid.RoleFull; r++ {
		if t.set&(1<<r) == 0 {
			out = append(out, r)
		}
	}
	return out
}

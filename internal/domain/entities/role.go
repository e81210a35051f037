package entities

// Role is the coarse authorization level attached to an API key or user.
type Role string

const (
	// RoleNone is the sentinel for "no valid role resolved". It is never
	// persisted on a real record.
	RoleNone Role = ""

	RoleNormal Role = "normal"
	RoleAdmin  Role = "admin"
)

// ParseRole maps a stored or client-supplied role name onto a Role.
// Unknown names resolve to RoleNone.
func ParseRole(s string) Role {
	switch s {
	case string(RoleNormal):
		return RoleNormal
	case string(RoleAdmin):
		return RoleAdmin
	}
	return RoleNone
}

// Valid reports whether the role is assignable to a record.
func (r Role) Valid() bool {
	return r == RoleNormal || r == RoleAdmin
}

func (r Role) String() string { return string(r) }

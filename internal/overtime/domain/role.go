package domain

// Role is the closed set of access levels. All authorization decisions are
// driven off this value; handlers must not branch on usernames.
type Role string

const (
	RoleUser  Role = "USER"
	RoleAdmin Role = "ADMIN"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	return r == RoleUser || r == RoleAdmin
}

// IsAdmin is a convenience for the common authorization check.
func (r Role) IsAdmin() bool { return r == RoleAdmin }

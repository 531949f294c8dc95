package domain

// Session is the authenticated identity and role under which a request
// executes. It is produced once per request from the verified session token
// and handed to services as an explicit value argument; business logic never
// reaches into request context for it.
type Session struct {
	UserID   string
	Username string
	Name     string
	Role     Role
}

// Authenticated reports whether the session identifies a user.
func (s Session) Authenticated() bool {
	return s.UserID != "" && s.Username != ""
}

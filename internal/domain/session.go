package domain

import "time"

// Session is the per-browser session context. The zero value is an anonymous visitor.
type Session struct {
	ID        string    `json:"id"`
	Role      Role      `json:"role"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Authenticated reports whether a role is stored in the session.
func (s Session) Authenticated() bool {
	return s.Role.IsSet()
}

// Exists reports whether the session is backed by a stored record.
func (s Session) Exists() bool {
	return s.ID != ""
}

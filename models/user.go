package models

import "time"

// Role names driving route access.
const (
	RoleAdmin  = "admin"
	RoleIntern = "intern"
	RoleGuest  = "guest"
)

// User represents an account in the users collection.
type User struct {
	ID           string     `json:"id"`
	Email        string     `json:"email"`
	Name         string     `json:"name,omitempty"`
	Role         string     `json:"role"`
	PasswordHash string     `json:"passwordHash,omitempty"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    *time.Time `json:"updatedAt,omitempty"`
}

// Sanitized returns a copy safe to return to clients.
func (u User) Sanitized() User {
	u.PasswordHash = ""
	return u
}

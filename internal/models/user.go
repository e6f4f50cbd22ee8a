package models

import "time"

const (
	RoleAdmin = "ADMIN"
	RoleUser  = "USER"
)

type User struct {
	ID             int64
	Username       string
	PasswordHash   []byte
	Token          *string
	TokenExpiresAt *time.Time
	Roles          []string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func (u User) HasRole(role string) bool {
	for _, r := range u.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// TokenExpired reports whether the server-recorded expiry has passed. This is
// independent of the expiry embedded in the token itself, which is checked at
// parse time.
func (u User) TokenExpired(now time.Time) bool {
	return u.TokenExpiresAt == nil || u.TokenExpiresAt.Before(now)
}

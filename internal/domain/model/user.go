package model

import "time"

// Role controls which parts of the application a user may reach.
type Role string

const (
	RoleLaadploeg Role = "laadploeg"
	RolePlanner   Role = "planner"
	RoleAdmin     Role = "admin"
)

// ValidRole reports whether the value is one of the known roles.
func ValidRole(r Role) bool {
	switch r {
	case RoleLaadploeg, RolePlanner, RoleAdmin:
		return true
	}
	return false
}

// User represents a warehouse application account.
type User struct {
	ID           int64
	Login        string
	PasswordHash string
	Role         Role
	ResetExpires time.Time
	CreatedAt    time.Time
}

package domain

import "time"

// Role enumerates authorization scopes.
type Role string

const (
	RoleAdmin Role = "admin"
	RoleStaff Role = "staff"
)

// Valid reports whether the role is one of the known values.
func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleStaff
}

// StaffAccount models a schedulable person. Either PasswordHash or
// ExternalID is set; externally-authenticated accounts carry no
// password.
type StaffAccount struct {
	ID           int64
	Name         string
	Email        string
	PasswordHash string
	ExternalID   *string
	Role         Role
	CreatedAt    time.Time
}

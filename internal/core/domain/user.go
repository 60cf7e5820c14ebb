package domain

import "time"

// Role is the closed set of actor roles in the marketplace.
type Role string

const (
	RoleClient       Role = "client"
	RoleSeller       Role = "seller"
	RoleVeterinarian Role = "veterinarian"
	RoleAdmin        Role = "admin"
	RoleOwner        Role = "owner"
)

// AllRoles enumerates every valid role, in escalation order.
var AllRoles = []Role{RoleClient, RoleSeller, RoleVeterinarian, RoleAdmin, RoleOwner}

// Valid reports whether r is one of the five known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleClient, RoleSeller, RoleVeterinarian, RoleAdmin, RoleOwner:
		return true
	}
	return false
}

// IsStaff reports whether the role carries administrative privileges.
func (r Role) IsStaff() bool {
	return r == RoleAdmin || r == RoleOwner
}

// User models an authenticated actor in the system.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	Banned       bool      `json:"banned"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

package model

import "github.com/google/uuid"

type UserRole string

const (
	UserRoleAdmin  UserRole = "ADMIN"
	UserRoleClient UserRole = "CLIENT"
	UserRoleDriver UserRole = "DRIVER"
)

// Principal is the authenticated caller. The role comes from the access
// token claim.
type Principal struct {
	UserID uuid.UUID
	Email  string
	Role   UserRole
}

func (p Principal) IsAdmin() bool {
	return p.Role == UserRoleAdmin
}

func (p Principal) IsClient() bool {
	return p.Role == UserRoleClient
}

func (p Principal) IsDriver() bool {
	return p.Role == UserRoleDriver
}

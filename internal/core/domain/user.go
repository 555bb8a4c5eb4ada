package domain

import "time"

// Role is the platform-wide role of a user.
type Role string

const (
	RoleAdmin  Role = "Admin"
	RoleOwner  Role = "Owner"
	RoleTenant Role = "Tenant"
)

// User represents a user of the application in the domain.
type User struct {
	UserID string `json:"userID"` // Primary Key (e.g., UUID)
	Name   string `json:"name"`
	Role   Role   `json:"role"`
	AuditFields
	DeletedAt *time.Time `json:"deletedAt,omitempty"` // Used for soft delete
}

// Actor is the authenticated user on whose behalf an operation runs.
type Actor struct {
	UserID string
	Role   Role
}

package model

import "github.com/google/uuid"

// Profile mirrors the identity service's profiles table. Read-only here:
// accounts are managed elsewhere, this service only joins them for display.
type Profile struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	FullName string    `gorm:"type:varchar(255)" json:"full_name"`
	Email    string    `gorm:"type:varchar(255)" json:"email"`
	Phone    string    `gorm:"type:varchar(32)" json:"phone"`
	Role     UserRole  `gorm:"type:varchar(16)" json:"role"`
}

func (Profile) TableName() string {
	return "profiles"
}

package models

import "gorm.io/gorm"

// User represents a user in the system.
type User struct {
	gorm.Model
	Nickname     string `gorm:"size:255;unique;not null"`
	Email        string `gorm:"size:255;unique;not null"`
	PasswordHash string `gorm:"size:255;not null"`
	Role         string `gorm:"size:50;not null;default:'user';index"`

	// A user belongs to at most one household.
	HouseholdID *uint      `gorm:"index"`
	Household   *Household `gorm:"foreignKey:HouseholdID"`
}

// IsAdmin reports whether the user may manage categories and review
// submissions.
func (u User) IsAdmin() bool { return u.Role == RoleAdmin }

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

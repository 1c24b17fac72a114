package models

import "gorm.io/gorm"

// Household groups users who share a physical collection. The games owned
// by its members form the "household only" filter scope.
type Household struct {
	gorm.Model
	Name    string `gorm:"size:255;not null"`
	Members []User `gorm:"foreignKey:HouseholdID"`
}

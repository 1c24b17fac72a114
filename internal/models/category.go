package models

import "gorm.io/gorm"

// Category represents a game category (e.g., "Strategy", "Party Game").
type Category struct {
	gorm.Model
	Name string `gorm:"size:100;unique;not null"`
}

package models

import "gorm.io/gorm"

// Rating is a user's score for a game, separate from the personal rating
// stored on the game itself.
type Rating struct {
	gorm.Model
	GameID  string  `gorm:"size:64;not null;index"`
	UserID  uint    `gorm:"not null;index"`
	Score   float64 `gorm:"not null"`
	Comment string  `gorm:"type:text"`

	Game Game `gorm:"foreignKey:GameID;constraint:OnDelete:CASCADE;"`
	User User `gorm:"foreignKey:UserID"`
}

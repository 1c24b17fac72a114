package models

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// PendingStatus is the review state of a submitted game.
type PendingStatus string

const (
	PendingOpen     PendingStatus = "pending"
	PendingApproved PendingStatus = "approved"
	PendingDenied   PendingStatus = "denied"
)

// PendingGame is a game submitted for admin review before it enters the
// catalogue. Payload holds the submitted record as JSON.
type PendingGame struct {
	gorm.Model
	SubmittedByID uint           `gorm:"not null;index"`
	Payload       datatypes.JSON `gorm:"type:json;not null"`
	Status        PendingStatus  `gorm:"type:varchar(20);not null;default:'pending';index"`

	SubmittedBy User `gorm:"foreignKey:SubmittedByID"`
}

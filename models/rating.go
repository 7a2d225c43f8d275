package models

import "gorm.io/gorm"

// Rating stores a satisfaction score a user attached to one assistant reply.
// MessageID refers to a client-side chat message which is never persisted
// here, so there is deliberately no foreign key to enforce.
type Rating struct {
	gorm.Model
	MessageID string `gorm:"size:80;index;not null"`
	Rating    int    `gorm:"not null"`
}

package models

import "gorm.io/gorm"

// Announcement is an admin-authored notice shown to every client.
// Immutable once created; there is no edit, only create and delete.
type Announcement struct {
	gorm.Model
	Title   string `gorm:"size:200;not null"`
	Content string `gorm:"type:text;not null"`
}

package models

import "gorm.io/gorm"

// User is the local record of an authenticated flashcard owner
type User struct {
	gorm.Model
	AuthID   string `gorm:"uniqueIndex;not null;size:100"`
	Nickname string `gorm:"size:100"`
}

package models

import (
	"time"
)

// Favorite is a private bookmark of a photo by a user.
// The combination of PhotoID and UserID must be unique.
type Favorite struct {
	ID        uint      `gorm:"primaryKey" json:"-"`
	PhotoID   uint      `gorm:"not null;uniqueIndex:idx_favorite_photo_user" json:"photo_id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_favorite_photo_user;index" json:"user_id"`
	CreatedAt time.Time `json:"created_at"`

	Photo *Photo `gorm:"foreignKey:PhotoID;constraint:OnDelete:CASCADE" json:"-"`
	User  *User  `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}

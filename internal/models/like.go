package models

import (
	"time"
)

// Like represents a user's like on a photo.
// The combination of PhotoID and UserID must be unique.
type Like struct {
	ID        uint      `gorm:"primaryKey" json:"-"`
	PhotoID   uint      `gorm:"not null;uniqueIndex:idx_like_photo_user" json:"photo_id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_like_photo_user;index" json:"user_id"`
	CreatedAt time.Time `json:"created_at"`

	Photo *Photo `gorm:"foreignKey:PhotoID;constraint:OnDelete:CASCADE" json:"-"`
	User  *User  `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}

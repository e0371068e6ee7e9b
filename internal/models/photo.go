package models

import (
	"time"
)

// Visibility controls who can see a photo besides its owner.
type Visibility string

const (
	VisibilityPublic  Visibility = "public"
	VisibilityPrivate Visibility = "private"
)

// Valid reports whether v is a known visibility value.
func (v Visibility) Valid() bool {
	return v == VisibilityPublic || v == VisibilityPrivate
}

// Photo is an uploaded picture. OwnerID is fixed at creation.
type Photo struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	OwnerID     uint       `gorm:"not null;index" json:"owner_id"`
	Owner       *User      `gorm:"foreignKey:OwnerID;constraint:OnDelete:CASCADE" json:"owner,omitempty"`
	Visibility  Visibility `gorm:"type:varchar(16);not null;default:'private';index" json:"visibility"`
	Title       string     `gorm:"not null" json:"title"`
	Description string     `gorm:"type:text" json:"description"`
	ImageURL    string     `json:"image_url"`
	// LikesCount is not persisted; computed at query time
	LikesCount int64     `gorm:"->;-:migration" json:"likes_count"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// IsPublic reports whether the photo is visible to everyone.
func (p *Photo) IsPublic() bool {
	return p.Visibility == VisibilityPublic
}

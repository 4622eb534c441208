package models

import (
	"time"

	"gorm.io/gorm"
)

// ArtistProfile is a comedian's public page. One per ARTIST user.
type ArtistProfile struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	UserID    uint           `gorm:"uniqueIndex;not null" json:"user_id"`
	StageName string         `gorm:"size:128;not null" json:"stage_name"`
	Bio       string         `gorm:"type:text" json:"bio"`
	ImageURL  string         `gorm:"size:512" json:"image_url"`
	City      string         `gorm:"size:128;index" json:"city"`
	Specialty string         `gorm:"size:128" json:"specialty"` // stand-up, improv, sketch...
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	User User `gorm:"foreignKey:UserID" json:"-"`
}

func (ArtistProfile) TableName() string {
	return "artist_profiles"
}

// TheaterProfile is a venue's public page. One per THEATER user.
type TheaterProfile struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	UserID    uint           `gorm:"uniqueIndex;not null" json:"user_id"`
	VenueName string         `gorm:"size:128;not null" json:"venue_name"`
	Bio       string         `gorm:"type:text" json:"bio"`
	ImageURL  string         `gorm:"size:512" json:"image_url"`
	City      string         `gorm:"size:128;index" json:"city"`
	Capacity  int            `json:"capacity"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	User User `gorm:"foreignKey:UserID" json:"-"`
}

func (TheaterProfile) TableName() string {
	return "theater_profiles"
}

package models

import (
	"time"

	"ldcomedy/internal/domain"

	"gorm.io/gorm"
)

type User struct {
	ID           uint           `gorm:"primaryKey" json:"id"`
	Username     string         `gorm:"uniqueIndex;size:64;not null" json:"username"`
	Email        string         `gorm:"uniqueIndex;size:255;not null" json:"email"`
	PasswordHash string         `gorm:"size:255" json:"-"`
	Role         string         `gorm:"size:20;not null;index" json:"role"` // ARTIST | THEATER
	GoogleID     *string        `gorm:"uniqueIndex;size:255" json:"-"`      // nil for email signups (avoids duplicate '' on unique index)
	AvatarURL    string         `gorm:"size:512" json:"avatar_url"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`

	ArtistProfile  *ArtistProfile  `gorm:"foreignKey:UserID" json:"artist_profile,omitempty"`
	TheaterProfile *TheaterProfile `gorm:"foreignKey:UserID" json:"theater_profile,omitempty"`
}

func (u *User) IsArtist() bool  { return u.Role == domain.RoleArtist }
func (u *User) IsTheater() bool { return u.Role == domain.RoleTheater }

// DisplayName falls back to email when the username was never set.
func (u *User) DisplayName() string {
	if u.Username != "" {
		return u.Username
	}
	return u.Email
}

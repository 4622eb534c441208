package models

import (
	"time"

	"ldcomedy/internal/domain"

	"gorm.io/gorm"
)

// FavoriteRequest is a directed interest edge between one artist profile and
// one theater profile. Either side may open it; only the other side may
// accept or reject. ACCEPTED rows form the "friends" graph. REJECTED rows are
// retained but never surfaced in listings again. Remove() soft-deletes the
// row regardless of status, so a fresh request between the same pair can be
// created afterwards.
type FavoriteRequest struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	ArtistID    uint           `gorm:"not null;index:idx_fav_artist_theater" json:"artist_id"`
	TheaterID   uint           `gorm:"not null;index:idx_fav_artist_theater" json:"theater_id"`
	Status      string         `gorm:"size:20;not null;index" json:"status"`       // PENDING, ACCEPTED, REJECTED
	RequestedBy string         `gorm:"size:20;not null" json:"requested_by"`       // ARTIST | THEATER
	RespondedAt *time.Time     `json:"responded_at"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`

	Artist  ArtistProfile  `gorm:"foreignKey:ArtistID" json:"-"`
	Theater TheaterProfile `gorm:"foreignKey:TheaterID" json:"-"`
}

func (FavoriteRequest) TableName() string {
	return "favorite_requests"
}

func (f *FavoriteRequest) IsPending() bool  { return f.Status == domain.FavoriteStatusPending }
func (f *FavoriteRequest) IsAccepted() bool { return f.Status == domain.FavoriteStatusAccepted }

// ProfileIDFor returns the profile id occupying the given role's side.
func (f *FavoriteRequest) ProfileIDFor(role string) uint {
	if role == domain.RoleArtist {
		return f.ArtistID
	}
	return f.TheaterID
}

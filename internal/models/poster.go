package models

import (
	"time"

	"gorm.io/gorm"
)

// Poster is an affiche on the public feed: show announcement, clip, open
// mic call. Any authenticated user can comment or like it.
type Poster struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	AuthorID  uint           `gorm:"not null;index" json:"author_id"`
	Title     string         `gorm:"size:255;not null" json:"title"`
	Caption   string         `gorm:"type:text" json:"caption"`
	ImageURL  string         `gorm:"size:512" json:"image_url"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Author User `gorm:"foreignKey:AuthorID" json:"-"`
}

func (Poster) TableName() string {
	return "posters"
}

type PosterComment struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	PosterID  uint           `gorm:"not null;index" json:"poster_id"`
	UserID    uint           `gorm:"not null;index" json:"user_id"`
	Body      string         `gorm:"type:text;not null" json:"body"`
	CreatedAt time.Time      `json:"created_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Poster Poster `gorm:"foreignKey:PosterID" json:"-"`
	User   User   `gorm:"foreignKey:UserID" json:"-"`
}

func (PosterComment) TableName() string {
	return "poster_comments"
}

type PosterLike struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	PosterID  uint      `gorm:"not null;index:idx_like_poster_user,unique" json:"poster_id"`
	UserID    uint      `gorm:"not null;index:idx_like_poster_user,unique" json:"user_id"`
	CreatedAt time.Time `json:"created_at"`

	Poster Poster `gorm:"foreignKey:PosterID" json:"-"`
	User   User   `gorm:"foreignKey:UserID" json:"-"`
}

func (PosterLike) TableName() string {
	return "poster_likes"
}

package models

import (
	"time"

	"gorm.io/gorm"
)

// Conversation is the single DM thread between one artist and one theater.
type Conversation struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	ArtistID  uint           `gorm:"not null;index:idx_conv_artist_theater,unique" json:"artist_id"`
	TheaterID uint           `gorm:"not null;index:idx_conv_artist_theater,unique" json:"theater_id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Artist  ArtistProfile  `gorm:"foreignKey:ArtistID" json:"-"`
	Theater TheaterProfile `gorm:"foreignKey:TheaterID" json:"-"`
}

func (Conversation) TableName() string {
	return "conversations"
}

type Message struct {
	ID             uint           `gorm:"primaryKey" json:"id"`
	ConversationID uint           `gorm:"not null;index" json:"conversation_id"`
	SenderID       uint           `gorm:"not null;index" json:"sender_id"` // user id
	Body           string         `gorm:"type:text;not null" json:"body"`
	ReadAt         *time.Time     `json:"read_at"`
	CreatedAt      time.Time      `json:"created_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`

	Conversation Conversation `gorm:"foreignKey:ConversationID" json:"-"`
	Sender       User         `gorm:"foreignKey:SenderID" json:"-"`
}

func (Message) TableName() string {
	return "messages"
}

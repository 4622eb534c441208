package repository

import (
	"time"

	"ldcomedy/internal/models"

	"gorm.io/gorm"
)

type MessageRepository struct {
	db *gorm.DB
}

func NewMessageRepository(db *gorm.DB) *MessageRepository {
	return &MessageRepository{db: db}
}

// GetOrCreateConversation returns the single thread between an artist and a
// theater, creating it on first contact.
func (r *MessageRepository) GetOrCreateConversation(artistID, theaterID uint) (*models.Conversation, error) {
	var conv models.Conversation
	err := r.db.Where("artist_id = ? AND theater_id = ?", artistID, theaterID).First(&conv).Error
	if err == nil {
		return &conv, nil
	}
	if err != gorm.ErrRecordNotFound {
		return nil, err
	}
	conv = models.Conversation{ArtistID: artistID, TheaterID: theaterID}
	if err := r.db.Create(&conv).Error; err != nil {
		return nil, err
	}
	return &conv, nil
}

func (r *MessageRepository) GetConversationByID(id uint) (*models.Conversation, error) {
	var conv models.Conversation
	err := r.db.Preload("Artist").Preload("Theater").First(&conv, id).Error
	if err != nil {
		return nil, err
	}
	return &conv, nil
}

func (r *MessageRepository) ListConversationsForArtist(artistID uint) ([]models.Conversation, error) {
	var list []models.Conversation
	err := r.db.Where("artist_id = ?", artistID).Preload("Theater").
		Order("updated_at DESC").Find(&list).Error
	return list, err
}

func (r *MessageRepository) ListConversationsForTheater(theaterID uint) ([]models.Conversation, error) {
	var list []models.Conversation
	err := r.db.Where("theater_id = ?", theaterID).Preload("Artist").
		Order("updated_at DESC").Find(&list).Error
	return list, err
}

func (r *MessageRepository) CreateMessage(m *models.Message) error {
	if err := r.db.Create(m).Error; err != nil {
		return err
	}
	// Bump the thread so conversation lists sort by latest activity.
	return r.db.Model(&models.Conversation{}).Where("id = ?", m.ConversationID).
		Update("updated_at", time.Now()).Error
}

func (r *MessageRepository) ListMessages(conversationID uint, limit, offset int) ([]models.Message, error) {
	var list []models.Message
	err := r.db.Where("conversation_id = ?", conversationID).
		Order("created_at ASC").Limit(limit).Offset(offset).Find(&list).Error
	return list, err
}

// MarkRead marks every message in the thread not sent by the reader as read.
func (r *MessageRepository) MarkRead(conversationID, readerUserID uint) error {
	return r.db.Model(&models.Message{}).
		Where("conversation_id = ? AND sender_id != ? AND read_at IS NULL", conversationID, readerUserID).
		Update("read_at", time.Now()).Error
}

// CountUnread counts messages addressed to the reader in one thread.
func (r *MessageRepository) CountUnread(conversationID, readerUserID uint) (int64, error) {
	var c int64
	err := r.db.Model(&models.Message{}).
		Where("conversation_id = ? AND sender_id != ? AND read_at IS NULL", conversationID, readerUserID).
		Count(&c).Error
	return c, err
}

// CountUnreadForUser totals unread messages across every thread the reader's
// profile takes part in. Column picks the reader's side of the pair.
func (r *MessageRepository) CountUnreadForUser(readerUserID uint, conversationIDs []uint) (int64, error) {
	if len(conversationIDs) == 0 {
		return 0, nil
	}
	var c int64
	err := r.db.Model(&models.Message{}).
		Where("conversation_id IN ? AND sender_id != ? AND read_at IS NULL", conversationIDs, readerUserID).
		Count(&c).Error
	return c, err
}

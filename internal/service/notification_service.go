package service

import (
	"sort"
	"time"

	"ldcomedy/internal/domain"
	"ldcomedy/internal/repository"
)

// NotificationService synthesizes a notification feed on read from likes and
// comments received on the caller's posters. Nothing is stored; relationship
// transitions deliberately generate no notifications.
type NotificationService struct {
	posters *repository.PosterRepository
}

func NewNotificationService(posters *repository.PosterRepository) *NotificationService {
	return &NotificationService{posters: posters}
}

type NotificationEntry struct {
	Type        string    `json:"type"` // POSTER_LIKE | POSTER_COMMENT
	PosterID    uint      `json:"poster_id"`
	PosterTitle string    `json:"poster_title"`
	FromUserID  uint      `json:"from_user_id"`
	FromName    string    `json:"from_name"`
	Preview     string    `json:"preview,omitempty"` // comment body excerpt
	CreatedAt   time.Time `json:"created_at"`
}

// Recent merges the latest likes and comments on the user's posters,
// newest first, capped at limit.
func (s *NotificationService) Recent(userID uint, limit int) ([]NotificationEntry, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	likes, err := s.posters.ListRecentLikesOnAuthor(userID, limit)
	if err != nil {
		return nil, err
	}
	comments, err := s.posters.ListRecentCommentsOnAuthor(userID, limit)
	if err != nil {
		return nil, err
	}
	out := make([]NotificationEntry, 0, len(likes)+len(comments))
	for _, l := range likes {
		out = append(out, NotificationEntry{
			Type:        domain.NotificationTypeLike,
			PosterID:    l.PosterID,
			PosterTitle: l.Poster.Title,
			FromUserID:  l.UserID,
			FromName:    l.User.DisplayName(),
			CreatedAt:   l.CreatedAt,
		})
	}
	for _, c := range comments {
		preview := c.Body
		if len(preview) > 120 {
			preview = preview[:120]
		}
		out = append(out, NotificationEntry{
			Type:        domain.NotificationTypeComment,
			PosterID:    c.PosterID,
			PosterTitle: c.Poster.Title,
			FromUserID:  c.UserID,
			FromName:    c.User.DisplayName(),
			Preview:     preview,
			CreatedAt:   c.CreatedAt,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

package handler

import (
	"net/http"
	"strconv"

	"ldcomedy/internal/domain"
	"ldcomedy/internal/middleware"
	"ldcomedy/internal/models"
	"ldcomedy/internal/repository"
	"ldcomedy/internal/service"

	"github.com/gin-gonic/gin"
)

type MeHandler struct {
	favorites *repository.FavoriteRepository
	posters   *repository.PosterRepository
	messages  *repository.MessageRepository
	notifs    *service.NotificationService
}

func NewMeHandler(favorites *repository.FavoriteRepository, posters *repository.PosterRepository, messages *repository.MessageRepository, notifs *service.NotificationService) *MeHandler {
	return &MeHandler{favorites: favorites, posters: posters, messages: messages, notifs: notifs}
}

// Dashboard is the role-shaped landing summary: friend and pending counts,
// poster count, unread messages.
func (h *MeHandler) Dashboard(c *gin.Context) {
	caller := middleware.GetCaller(c)

	var friends, incoming, outgoing int64
	if caller.IsArtist() {
		friends, _ = h.favorites.CountAcceptedForArtist(caller.ProfileID)
		incoming, _ = h.favorites.CountPendingForArtist(caller.ProfileID, domain.RequestedByTheater)
		outgoing, _ = h.favorites.CountPendingForArtist(caller.ProfileID, domain.RequestedByArtist)
	} else {
		friends, _ = h.favorites.CountAcceptedForTheater(caller.ProfileID)
		incoming, _ = h.favorites.CountPendingForTheater(caller.ProfileID, domain.RequestedByArtist)
		outgoing, _ = h.favorites.CountPendingForTheater(caller.ProfileID, domain.RequestedByTheater)
	}

	posterCount, _ := h.posters.CountByAuthor(caller.UserID)

	var convs []models.Conversation
	if caller.IsArtist() {
		convs, _ = h.messages.ListConversationsForArtist(caller.ProfileID)
	} else {
		convs, _ = h.messages.ListConversationsForTheater(caller.ProfileID)
	}
	ids := make([]uint, 0, len(convs))
	for _, conv := range convs {
		ids = append(ids, conv.ID)
	}
	unread, _ := h.messages.CountUnreadForUser(caller.UserID, ids)

	c.JSON(http.StatusOK, gin.H{
		"role":              caller.Role,
		"profile_id":        caller.ProfileID,
		"friend_count":      friends,
		"incoming_requests": incoming,
		"outgoing_requests": outgoing,
		"poster_count":      posterCount,
		"unread_messages":   unread,
	})
}

// Notifications returns the feed synthesized from likes and comments on the
// caller's posters.
func (h *MeHandler) Notifications(c *gin.Context) {
	userID := middleware.GetUserID(c)
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	feed, err := h.notifs.Recent(userID, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "list failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"notifications": feed})
}

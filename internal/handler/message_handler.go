package handler

import (
	"net/http"
	"strconv"

	"ldcomedy/internal/domain"
	"ldcomedy/internal/middleware"
	"ldcomedy/internal/models"
	"ldcomedy/internal/repository"
	"ldcomedy/internal/ws"

	"github.com/gin-gonic/gin"
)

type MessageHandler struct {
	messages *repository.MessageRepository
	artists  *repository.ArtistRepository
	theaters *repository.TheaterRepository
	hub      *ws.Hub
}

func NewMessageHandler(messages *repository.MessageRepository, artists *repository.ArtistRepository, theaters *repository.TheaterRepository, hub *ws.Hub) *MessageHandler {
	return &MessageHandler{messages: messages, artists: artists, theaters: theaters, hub: hub}
}

// memberOf reports whether the caller's profile occupies its role's side of
// the conversation.
func memberOf(caller domain.CallerIdentity, conv *models.Conversation) bool {
	if caller.IsArtist() {
		return conv.ArtistID == caller.ProfileID
	}
	return conv.TheaterID == caller.ProfileID
}

// Open returns the thread with the opposite-role profile, creating it on
// first contact.
func (h *MessageHandler) Open(c *gin.Context) {
	caller := middleware.GetCaller(c)
	var body targetRef
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	other := body.resolve(caller)
	if other == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "target must be a profile of the opposite role"})
		return
	}
	// Target must exist before a thread is opened against it.
	if caller.IsArtist() {
		if _, err := h.theaters.GetByID(other); err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "theater not found"})
			return
		}
	} else {
		if _, err := h.artists.GetByID(other); err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "artist not found"})
			return
		}
	}
	artistID, theaterID := caller.ProfileID, other
	if caller.IsTheater() {
		artistID, theaterID = other, caller.ProfileID
	}
	conv, err := h.messages.GetOrCreateConversation(artistID, theaterID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "open failed"})
		return
	}
	c.JSON(http.StatusOK, conv)
}

// List returns the caller's threads with the other party's summary and the
// caller's unread count per thread.
func (h *MessageHandler) List(c *gin.Context) {
	caller := middleware.GetCaller(c)
	var list []models.Conversation
	var err error
	if caller.IsArtist() {
		list, err = h.messages.ListConversationsForArtist(caller.ProfileID)
	} else {
		list, err = h.messages.ListConversationsForTheater(caller.ProfileID)
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "list failed"})
		return
	}
	out := make([]gin.H, 0, len(list))
	for _, conv := range list {
		unread, _ := h.messages.CountUnread(conv.ID, caller.UserID)
		entry := gin.H{
			"id":           conv.ID,
			"unread_count": unread,
			"updated_at":   conv.UpdatedAt,
		}
		if caller.IsArtist() {
			entry["with"] = gin.H{"theater_id": conv.TheaterID, "name": conv.Theater.VenueName, "image_url": conv.Theater.ImageURL, "city": conv.Theater.City}
		} else {
			entry["with"] = gin.H{"artist_id": conv.ArtistID, "name": conv.Artist.StageName, "image_url": conv.Artist.ImageURL, "city": conv.Artist.City}
		}
		out = append(out, entry)
	}
	c.JSON(http.StatusOK, gin.H{"conversations": out})
}

// Messages lists one thread and marks everything addressed to the caller as
// read.
func (h *MessageHandler) Messages(c *gin.Context) {
	caller := middleware.GetCaller(c)
	id, _ := strconv.ParseUint(c.Param("id"), 10, 64)
	conv, err := h.messages.GetConversationByID(uint(id))
	if err != nil || !memberOf(caller, conv) {
		c.JSON(http.StatusNotFound, gin.H{"error": "conversation not found"})
		return
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	list, err := h.messages.ListMessages(conv.ID, limit, offset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "list failed"})
		return
	}
	_ = h.messages.MarkRead(conv.ID, caller.UserID)
	c.JSON(http.StatusOK, gin.H{"messages": list})
}

type messageBody struct {
	Body string `json:"body" binding:"required,max=4000"`
}

// Send appends a message to the thread and fans it out to any live
// WebSocket connections on the same conversation.
func (h *MessageHandler) Send(c *gin.Context) {
	caller := middleware.GetCaller(c)
	id, _ := strconv.ParseUint(c.Param("id"), 10, 64)
	conv, err := h.messages.GetConversationByID(uint(id))
	if err != nil || !memberOf(caller, conv) {
		c.JSON(http.StatusNotFound, gin.H{"error": "conversation not found"})
		return
	}
	var body messageBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	m := &models.Message{ConversationID: conv.ID, SenderID: caller.UserID, Body: body.Body}
	if err := h.messages.CreateMessage(m); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "send failed"})
		return
	}
	if room := h.hub.GetOrCreateRoom(conv.ID); room != nil {
		room.Broadcast(nil, gin.H{
			"type":            "message",
			"id":              m.ID,
			"conversation_id": m.ConversationID,
			"sender_id":       m.SenderID,
			"body":            m.Body,
			"created_at":      m.CreatedAt,
		})
	}
	c.JSON(http.StatusCreated, m)
}

// UnreadCount totals unread messages across every thread of the caller.
func (h *MessageHandler) UnreadCount(c *gin.Context) {
	caller := middleware.GetCaller(c)
	var list []models.Conversation
	var err error
	if caller.IsArtist() {
		list, err = h.messages.ListConversationsForArtist(caller.ProfileID)
	} else {
		list, err = h.messages.ListConversationsForTheater(caller.ProfileID)
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "count failed"})
		return
	}
	ids := make([]uint, 0, len(list))
	for _, conv := range list {
		ids = append(ids, conv.ID)
	}
	count, err := h.messages.CountUnreadForUser(caller.UserID, ids)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "count failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"unread_count": count})
}

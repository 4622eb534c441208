package handler

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"ldcomedy/config"
	"ldcomedy/internal/auth"
	"ldcomedy/internal/domain"
	"ldcomedy/internal/models"
	"ldcomedy/internal/repository"
	"ldcomedy/internal/ws"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

const (
	msgWriteWait  = 10 * time.Second
	msgPongWait   = 60 * time.Second
	msgPingPeriod = (msgPongWait * 9) / 10
)

var msgUpgrader = websocket.Upgrader{
	ReadBufferSize:  4096,
	WriteBufferSize: 4096,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// UpgradeMessageWS upgrades to WebSocket for live direct messages.
// Query: token, conversation_id. The user must be the artist or the theater
// of that conversation.
func UpgradeMessageWS(cfg *config.JWTConfig, hub *ws.Hub, messages *repository.MessageRepository, artists *repository.ArtistRepository, theaters *repository.TheaterRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.Query("token")
		convIDStr := c.Query("conversation_id")
		if token == "" || convIDStr == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "token and conversation_id required"})
			return
		}
		claims, err := auth.ParseAccessToken(cfg, token)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}
		convID64, err := strconv.ParseUint(convIDStr, 10, 64)
		if err != nil || convID64 == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid conversation_id"})
			return
		}
		conv, err := messages.GetConversationByID(uint(convID64))
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "conversation not found"})
			return
		}
		member := false
		switch claims.Role {
		case domain.RoleArtist:
			if p, _ := artists.GetByUserID(claims.UserID); p != nil && p.ID == conv.ArtistID {
				member = true
			}
		case domain.RoleTheater:
			if p, _ := theaters.GetByUserID(claims.UserID); p != nil && p.ID == conv.TheaterID {
				member = true
			}
		}
		if !member {
			c.JSON(http.StatusForbidden, gin.H{"error": "not part of this conversation"})
			return
		}
		conn, err := msgUpgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			return
		}
		defer conn.Close()
		client := &ws.Client{
			UserID: claims.UserID,
			Role:   claims.Role,
			Send:   make(chan []byte, 256),
		}
		room := hub.GetOrCreateRoom(conv.ID)
		room.Join(client)
		defer func() {
			room.Leave(client)
			client.Close()
		}()
		conn.SetReadDeadline(time.Now().Add(msgPongWait))
		conn.SetPongHandler(func(string) error {
			conn.SetReadDeadline(time.Now().Add(msgPongWait))
			return nil
		})
		go func() {
			ticker := time.NewTicker(msgPingPeriod)
			defer ticker.Stop()
			for {
				select {
				case msg, ok := <-client.Send:
					if !ok {
						return
					}
					conn.SetWriteDeadline(time.Now().Add(msgWriteWait))
					if err := conn.WriteMessage(websocket.TextMessage, msg); err != nil {
						return
					}
				case <-ticker.C:
					conn.SetWriteDeadline(time.Now().Add(msgWriteWait))
					if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
						return
					}
				}
			}
		}()
		for {
			_, raw, err := conn.ReadMessage()
			if err != nil {
				break
			}
			var msg struct {
				Type string `json:"type"`
				Body string `json:"body"`
			}
			if json.Unmarshal(raw, &msg) != nil || msg.Type != "message" || msg.Body == "" {
				continue
			}
			m := &models.Message{
				ConversationID: conv.ID,
				SenderID:       claims.UserID,
				Body:           msg.Body,
			}
			if err := messages.CreateMessage(m); err != nil {
				continue
			}
			room.Broadcast(client, map[string]interface{}{
				"type":            "message",
				"id":              m.ID,
				"conversation_id": m.ConversationID,
				"sender_id":       m.SenderID,
				"body":            m.Body,
				"created_at":      m.CreatedAt,
			})
		}
	}
}

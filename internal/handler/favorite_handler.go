package handler

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"ldcomedy/internal/domain"
	"ldcomedy/internal/middleware"
	"ldcomedy/internal/service"

	"github.com/gin-gonic/gin"
)

type FavoriteHandler struct {
	relationships *service.RelationshipService
}

func NewFavoriteHandler(relationships *service.RelationshipService) *FavoriteHandler {
	return &FavoriteHandler{relationships: relationships}
}

// targetRef names the other side of an edge. Which field is allowed depends
// on the caller's role: an artist addresses a theater and vice versa.
type targetRef struct {
	ArtistID  uint `json:"artist_id"`
	TheaterID uint `json:"theater_id"`
}

// resolve returns the profile id on the opposite side of the caller, 0 when
// the pairing is wrong (own-role id supplied, or nothing at all).
func (t targetRef) resolve(caller domain.CallerIdentity) uint {
	if caller.IsArtist() {
		if t.ArtistID != 0 {
			return 0
		}
		return t.TheaterID
	}
	if t.TheaterID != 0 {
		return 0
	}
	return t.ArtistID
}

// Send creates a PENDING favorite request toward the opposite-role profile.
func (h *FavoriteHandler) Send(c *gin.Context) {
	caller := middleware.GetCaller(c)
	var body targetRef
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	target := body.resolve(caller)
	if target == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "target must be a profile of the opposite role"})
		return
	}
	req, err := h.relationships.Send(caller, target)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, req)
}

type respondBody struct {
	RequestID uint `json:"request_id"`
	ArtistID  uint `json:"artist_id"`
	TheaterID uint `json:"theater_id"`
}

func (h *FavoriteHandler) Accept(c *gin.Context) {
	h.respond(c, true)
}

func (h *FavoriteHandler) Reject(c *gin.Context) {
	h.respond(c, false)
}

func (h *FavoriteHandler) respond(c *gin.Context, accept bool) {
	caller := middleware.GetCaller(c)
	var body respondBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	other := targetRef{ArtistID: body.ArtistID, TheaterID: body.TheaterID}.resolve(caller)
	if body.RequestID == 0 && other == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "request_id or target profile id required"})
		return
	}
	req, err := h.relationships.Respond(caller, body.RequestID, other, accept)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, req)
}

func (h *FavoriteHandler) ListFriends(c *gin.Context) {
	caller := middleware.GetCaller(c)
	friends, err := h.relationships.ListFriends(caller)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"friends": friends})
}

func (h *FavoriteHandler) ListIncoming(c *gin.Context) {
	caller := middleware.GetCaller(c)
	requests, err := h.relationships.ListIncoming(caller)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"requests": requests})
}

func (h *FavoriteHandler) ListOutgoing(c *gin.Context) {
	caller := middleware.GetCaller(c)
	requests, err := h.relationships.ListOutgoing(caller)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"requests": requests})
}

// Check reports whether any edge, in any status, links the caller with the
// profile named in the query string.
func (h *FavoriteHandler) Check(c *gin.Context) {
	caller := middleware.GetCaller(c)
	artistID, _ := strconv.ParseUint(c.Query("artist_id"), 10, 64)
	theaterID, _ := strconv.ParseUint(c.Query("theater_id"), 10, 64)
	other := targetRef{ArtistID: uint(artistID), TheaterID: uint(theaterID)}.resolve(caller)
	if other == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "artist_id or theater_id of the opposite role required"})
		return
	}
	exists, err := h.relationships.Check(caller, other)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"exists": exists})
}

// Remove deletes the edge with the other profile whatever its status.
// Removing a non-existent edge is a success.
func (h *FavoriteHandler) Remove(c *gin.Context) {
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
	if err := h.relationships.Remove(caller, other); err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *FavoriteHandler) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidTarget):
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid target profile"})
	case errors.Is(err, service.ErrDuplicateRequest):
		c.JSON(http.StatusConflict, gin.H{"error": "favorite request already exists"})
	case errors.Is(err, service.ErrRequestNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "favorite request not found"})
	default:
		log.Printf("[favorite] storage error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

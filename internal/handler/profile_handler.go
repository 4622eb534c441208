package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"ldcomedy/internal/domain"
	"ldcomedy/internal/middleware"
	"ldcomedy/internal/repository"
	"ldcomedy/pkg/cloudinary"

	"github.com/gin-gonic/gin"
)

type ProfileHandler struct {
	artists  *repository.ArtistRepository
	theaters *repository.TheaterRepository
	users    *repository.UserRepository
	cloud    cloudinary.Client
}

func NewProfileHandler(artists *repository.ArtistRepository, theaters *repository.TheaterRepository, users *repository.UserRepository, cloud cloudinary.Client) *ProfileHandler {
	return &ProfileHandler{artists: artists, theaters: theaters, users: users, cloud: cloud}
}

// GetMine returns the caller's account plus their profile in its
// role-specific shape.
func (h *ProfileHandler) GetMine(c *gin.Context) {
	caller := middleware.GetCaller(c)
	u, err := h.users.GetByID(caller.UserID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "account not found"})
		return
	}
	account := gin.H{"username": u.Username, "email": u.Email, "avatar_url": u.AvatarURL}
	if caller.IsArtist() {
		p, err := h.artists.GetByID(caller.ProfileID)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "profile not found"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"role": domain.RoleArtist, "account": account, "profile": p})
		return
	}
	p, err := h.theaters.GetByID(caller.ProfileID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "profile not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"role": domain.RoleTheater, "account": account, "profile": p})
}

type artistProfileBody struct {
	StageName string `json:"stage_name" binding:"required,max=128"`
	Bio       string `json:"bio"`
	City      string `json:"city" binding:"max=128"`
	Specialty string `json:"specialty" binding:"max=128"`
}

type theaterProfileBody struct {
	VenueName string `json:"venue_name" binding:"required,max=128"`
	Bio       string `json:"bio"`
	City      string `json:"city" binding:"max=128"`
	Capacity  int    `json:"capacity" binding:"gte=0"`
}

// UpdateMine overwrites the caller's profile fields. The body shape depends
// on the caller's role.
func (h *ProfileHandler) UpdateMine(c *gin.Context) {
	caller := middleware.GetCaller(c)
	if caller.IsArtist() {
		var body artistProfileBody
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		p, err := h.artists.GetByID(caller.ProfileID)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "profile not found"})
			return
		}
		p.StageName = body.StageName
		p.Bio = body.Bio
		p.City = body.City
		p.Specialty = body.Specialty
		if err := h.artists.Update(p); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "update failed"})
			return
		}
		c.JSON(http.StatusOK, p)
		return
	}
	var body theaterProfileBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	p, err := h.theaters.GetByID(caller.ProfileID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "profile not found"})
		return
	}
	p.VenueName = body.VenueName
	p.Bio = body.Bio
	p.City = body.City
	p.Capacity = body.Capacity
	if err := h.theaters.Update(p); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "update failed"})
		return
	}
	c.JSON(http.StatusOK, p)
}

// UploadImage replaces the caller's profile image via Cloudinary.
func (h *ProfileHandler) UploadImage(c *gin.Context) {
	caller := middleware.GetCaller(c)
	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file required"})
		return
	}
	f, err := file.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "could not read file"})
		return
	}
	defer f.Close()

	folder := "ldcomedy/profiles/" + strconv.FormatUint(uint64(caller.UserID), 10)
	publicID := "img_" + strings.ReplaceAll(uuid.New().String(), "-", "")[:16]
	url, _, err := h.cloud.UploadImage(c.Request.Context(), f, folder, publicID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "upload failed"})
		return
	}

	if caller.IsArtist() {
		p, err := h.artists.GetByID(caller.ProfileID)
		if err == nil {
			p.ImageURL = url
			_ = h.artists.Update(p)
		}
	} else {
		p, err := h.theaters.GetByID(caller.ProfileID)
		if err == nil {
			p.ImageURL = url
			_ = h.theaters.Update(p)
		}
	}
	c.JSON(http.StatusOK, gin.H{"url": url})
}

// GetArtist is the public artist page.
func (h *ProfileHandler) GetArtist(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("id"), 10, 64)
	p, err := h.artists.GetByID(uint(id))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "artist not found"})
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *ProfileHandler) GetTheater(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("id"), 10, 64)
	p, err := h.theaters.GetByID(uint(id))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "theater not found"})
		return
	}
	c.JSON(http.StatusOK, p)
}

// ListArtists browses artist pages, optionally filtered by city.
func (h *ProfileHandler) ListArtists(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	list, err := h.artists.List(c.Query("city"), limit, offset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "list failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"artists": list})
}

func (h *ProfileHandler) ListTheaters(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	list, err := h.theaters.List(c.Query("city"), limit, offset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "list failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"theaters": list})
}

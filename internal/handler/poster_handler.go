package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"ldcomedy/internal/middleware"
	"ldcomedy/internal/models"
	"ldcomedy/internal/repository"
	"ldcomedy/pkg/cloudinary"

	"github.com/gin-gonic/gin"
)

type PosterHandler struct {
	posters *repository.PosterRepository
	cloud   cloudinary.Client
}

func NewPosterHandler(posters *repository.PosterRepository, cloud cloudinary.Client) *PosterHandler {
	return &PosterHandler{posters: posters, cloud: cloud}
}

// Create publishes an affiche. Multipart form: title, caption, optional
// image file uploaded through Cloudinary.
func (h *PosterHandler) Create(c *gin.Context) {
	userID := middleware.GetUserID(c)
	title := strings.TrimSpace(c.PostForm("title"))
	if title == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "title required"})
		return
	}
	p := &models.Poster{
		AuthorID: userID,
		Title:    title,
		Caption:  c.PostForm("caption"),
	}
	if file, err := c.FormFile("image"); err == nil {
		f, err := file.Open()
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "could not read image"})
			return
		}
		defer f.Close()
		folder := "ldcomedy/posters/" + strconv.FormatUint(uint64(userID), 10)
		publicID := "img_" + strings.ReplaceAll(uuid.New().String(), "-", "")[:16]
		url, _, err := h.cloud.UploadImage(c.Request.Context(), f, folder, publicID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "upload failed"})
			return
		}
		p.ImageURL = url
	}
	if err := h.posters.Create(p); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "create failed"})
		return
	}
	c.JSON(http.StatusCreated, p)
}

// Feed is the public affiche wall, newest first, with like/comment counts
// and whether the caller already liked each entry.
func (h *PosterHandler) Feed(c *gin.Context) {
	userID := middleware.GetUserID(c)
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	list, err := h.posters.ListFeed(limit, offset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "list failed"})
		return
	}
	out := make([]gin.H, 0, len(list))
	for _, p := range list {
		likes, _ := h.posters.CountLikes(p.ID)
		comments, _ := h.posters.CountComments(p.ID)
		liked, _ := h.posters.HasLike(p.ID, userID)
		out = append(out, gin.H{
			"id":            p.ID,
			"author_id":     p.AuthorID,
			"author_name":   p.Author.DisplayName(),
			"title":         p.Title,
			"caption":       p.Caption,
			"image_url":     p.ImageURL,
			"like_count":    likes,
			"comment_count": comments,
			"liked":         liked,
			"created_at":    p.CreatedAt,
		})
	}
	c.JSON(http.StatusOK, gin.H{"posters": out})
}

func (h *PosterHandler) Get(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("id"), 10, 64)
	p, err := h.posters.GetByID(uint(id))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "poster not found"})
		return
	}
	likes, _ := h.posters.CountLikes(p.ID)
	comments, _ := h.posters.CountComments(p.ID)
	c.JSON(http.StatusOK, gin.H{
		"id":            p.ID,
		"author_id":     p.AuthorID,
		"author_name":   p.Author.DisplayName(),
		"title":         p.Title,
		"caption":       p.Caption,
		"image_url":     p.ImageURL,
		"like_count":    likes,
		"comment_count": comments,
		"created_at":    p.CreatedAt,
	})
}

// Delete removes the caller's own poster. Someone else's poster is reported
// as not found rather than forbidden.
func (h *PosterHandler) Delete(c *gin.Context) {
	userID := middleware.GetUserID(c)
	id, _ := strconv.ParseUint(c.Param("id"), 10, 64)
	deleted, err := h.posters.Delete(uint(id), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "delete failed"})
		return
	}
	if !deleted {
		c.JSON(http.StatusNotFound, gin.H{"error": "poster not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

type commentBody struct {
	Body string `json:"body" binding:"required,max=2000"`
}

func (h *PosterHandler) AddComment(c *gin.Context) {
	userID := middleware.GetUserID(c)
	posterID, _ := strconv.ParseUint(c.Param("id"), 10, 64)
	if _, err := h.posters.GetByID(uint(posterID)); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "poster not found"})
		return
	}
	var body commentBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	comment := &models.PosterComment{PosterID: uint(posterID), UserID: userID, Body: body.Body}
	if err := h.posters.CreateComment(comment); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "comment failed"})
		return
	}
	c.JSON(http.StatusCreated, comment)
}

func (h *PosterHandler) ListComments(c *gin.Context) {
	posterID, _ := strconv.ParseUint(c.Param("id"), 10, 64)
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	list, err := h.posters.ListComments(uint(posterID), limit, offset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "list failed"})
		return
	}
	out := make([]gin.H, 0, len(list))
	for _, cm := range list {
		out = append(out, gin.H{
			"id":         cm.ID,
			"user_id":    cm.UserID,
			"user_name":  cm.User.DisplayName(),
			"body":       cm.Body,
			"created_at": cm.CreatedAt,
		})
	}
	c.JSON(http.StatusOK, gin.H{"comments": out})
}

// ToggleLike likes the poster, or unlikes it when already liked.
func (h *PosterHandler) ToggleLike(c *gin.Context) {
	userID := middleware.GetUserID(c)
	posterID, _ := strconv.ParseUint(c.Param("id"), 10, 64)
	if _, err := h.posters.GetByID(uint(posterID)); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "poster not found"})
		return
	}
	liked, err := h.posters.HasLike(uint(posterID), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "like failed"})
		return
	}
	if liked {
		if err := h.posters.RemoveLike(uint(posterID), userID); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "like failed"})
			return
		}
	} else {
		if err := h.posters.AddLike(uint(posterID), userID); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "like failed"})
			return
		}
	}
	count, _ := h.posters.CountLikes(uint(posterID))
	c.JSON(http.StatusOK, gin.H{"liked": !liked, "like_count": count})
}

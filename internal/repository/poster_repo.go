package repository

import (
	"ldcomedy/internal/models"

	"gorm.io/gorm"
)

type PosterRepository struct {
	db *gorm.DB
}

func NewPosterRepository(db *gorm.DB) *PosterRepository {
	return &PosterRepository{db: db}
}

func (r *PosterRepository) Create(p *models.Poster) error {
	return r.db.Create(p).Error
}

func (r *PosterRepository) GetByID(id uint) (*models.Poster, error) {
	var p models.Poster
	if err := r.db.Preload("Author").First(&p, id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *PosterRepository) Delete(id, authorID uint) (bool, error) {
	res := r.db.Where("id = ? AND author_id = ?", id, authorID).Delete(&models.Poster{})
	return res.RowsAffected > 0, res.Error
}

// ListFeed returns the public feed, newest first.
func (r *PosterRepository) ListFeed(limit, offset int) ([]models.Poster, error) {
	var list []models.Poster
	err := r.db.Preload("Author").Order("created_at DESC").Limit(limit).Offset(offset).Find(&list).Error
	return list, err
}

func (r *PosterRepository) ListByAuthor(authorID uint, limit, offset int) ([]models.Poster, error) {
	var list []models.Poster
	err := r.db.Where("author_id = ?", authorID).Order("created_at DESC").Limit(limit).Offset(offset).Find(&list).Error
	return list, err
}

func (r *PosterRepository) CountByAuthor(authorID uint) (int64, error) {
	var c int64
	err := r.db.Model(&models.Poster{}).Where("author_id = ?", authorID).Count(&c).Error
	return c, err
}

// Comments

func (r *PosterRepository) CreateComment(c *models.PosterComment) error {
	return r.db.Create(c).Error
}

func (r *PosterRepository) ListComments(posterID uint, limit, offset int) ([]models.PosterComment, error) {
	var list []models.PosterComment
	err := r.db.Where("poster_id = ?", posterID).Preload("User").
		Order("created_at ASC").Limit(limit).Offset(offset).Find(&list).Error
	return list, err
}

func (r *PosterRepository) CountComments(posterID uint) (int64, error) {
	var c int64
	err := r.db.Model(&models.PosterComment{}).Where("poster_id = ?", posterID).Count(&c).Error
	return c, err
}

// Likes

func (r *PosterRepository) HasLike(posterID, userID uint) (bool, error) {
	var c int64
	err := r.db.Model(&models.PosterLike{}).Where("poster_id = ? AND user_id = ?", posterID, userID).Count(&c).Error
	return c > 0, err
}

func (r *PosterRepository) AddLike(posterID, userID uint) error {
	return r.db.Create(&models.PosterLike{PosterID: posterID, UserID: userID}).Error
}

func (r *PosterRepository) RemoveLike(posterID, userID uint) error {
	return r.db.Where("poster_id = ? AND user_id = ?", posterID, userID).Delete(&models.PosterLike{}).Error
}

func (r *PosterRepository) CountLikes(posterID uint) (int64, error) {
	var c int64
	err := r.db.Model(&models.PosterLike{}).Where("poster_id = ?", posterID).Count(&c).Error
	return c, err
}

// ListRecentLikesOnAuthor returns the latest likes received across all of an
// author's posters. Feeds the synthesized notification list.
func (r *PosterRepository) ListRecentLikesOnAuthor(authorID uint, limit int) ([]models.PosterLike, error) {
	var list []models.PosterLike
	err := r.db.Joins("JOIN posters ON posters.id = poster_likes.poster_id").
		Where("posters.author_id = ? AND poster_likes.user_id != ?", authorID, authorID).
		Preload("User").Preload("Poster").
		Order("poster_likes.created_at DESC").Limit(limit).Find(&list).Error
	return list, err
}

func (r *PosterRepository) ListRecentCommentsOnAuthor(authorID uint, limit int) ([]models.PosterComment, error) {
	var list []models.PosterComment
	err := r.db.Joins("JOIN posters ON posters.id = poster_comments.poster_id").
		Where("posters.author_id = ? AND poster_comments.user_id != ?", authorID, authorID).
		Preload("User").Preload("Poster").
		Order("poster_comments.created_at DESC").Limit(limit).Find(&list).Error
	return list, err
}

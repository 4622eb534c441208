package repository

import (
	"ldcomedy/internal/models"

	"gorm.io/gorm"
)

type ArtistRepository struct {
	db *gorm.DB
}

func NewArtistRepository(db *gorm.DB) *ArtistRepository {
	return &ArtistRepository{db: db}
}

func (r *ArtistRepository) Create(p *models.ArtistProfile) error {
	return r.db.Create(p).Error
}

func (r *ArtistRepository) Update(p *models.ArtistProfile) error {
	return r.db.Save(p).Error
}

func (r *ArtistRepository) GetByID(id uint) (*models.ArtistProfile, error) {
	var p models.ArtistProfile
	if err := r.db.First(&p, id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *ArtistRepository) GetByUserID(userID uint) (*models.ArtistProfile, error) {
	var p models.ArtistProfile
	err := r.db.Where("user_id = ?", userID).First(&p).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

// List returns artist profiles, optionally filtered by city.
func (r *ArtistRepository) List(city string, limit, offset int) ([]models.ArtistProfile, error) {
	var list []models.ArtistProfile
	q := r.db.Order("created_at DESC").Limit(limit).Offset(offset)
	if city != "" {
		q = q.Where("city = ?", city)
	}
	err := q.Find(&list).Error
	return list, err
}

type TheaterRepository struct {
	db *gorm.DB
}

func NewTheaterRepository(db *gorm.DB) *TheaterRepository {
	return &TheaterRepository{db: db}
}

func (r *TheaterRepository) Create(p *models.TheaterProfile) error {
	return r.db.Create(p).Error
}

func (r *TheaterRepository) Update(p *models.TheaterProfile) error {
	return r.db.Save(p).Error
}

func (r *TheaterRepository) GetByID(id uint) (*models.TheaterProfile, error) {
	var p models.TheaterProfile
	if err := r.db.First(&p, id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *TheaterRepository) GetByUserID(userID uint) (*models.TheaterProfile, error) {
	var p models.TheaterProfile
	err := r.db.Where("user_id = ?", userID).First(&p).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

func (r *TheaterRepository) List(city string, limit, offset int) ([]models.TheaterProfile, error) {
	var list []models.TheaterProfile
	q := r.db.Order("created_at DESC").Limit(limit).Offset(offset)
	if city != "" {
		q = q.Where("city = ?", city)
	}
	err := q.Find(&list).Error
	return list, err
}

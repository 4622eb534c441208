package repository

import (
	"time"

	"ldcomedy/internal/domain"
	"ldcomedy/internal/models"

	"gorm.io/gorm"
)

// FavoriteRepository owns all queries over favorite_requests. Every method is
// a single point read or write; the store's own guarantees are the only
// serialization between concurrent callers.
type FavoriteRepository struct {
	db *gorm.DB
}

func NewFavoriteRepository(db *gorm.DB) *FavoriteRepository {
	return &FavoriteRepository{db: db}
}

func (r *FavoriteRepository) Create(req *models.FavoriteRequest) error {
	return r.db.Create(req).Error
}

func (r *FavoriteRepository) GetByID(id uint) (*models.FavoriteRequest, error) {
	var req models.FavoriteRequest
	if err := r.db.First(&req, id).Error; err != nil {
		return nil, err
	}
	return &req, nil
}

// GetActiveByPair returns the PENDING or ACCEPTED row linking the pair, nil
// when none exists. REJECTED rows are ignored so a pair can be re-requested
// after a rejection was removed.
func (r *FavoriteRepository) GetActiveByPair(artistID, theaterID uint) (*models.FavoriteRequest, error) {
	var req models.FavoriteRequest
	err := r.db.Where("artist_id = ? AND theater_id = ? AND status IN ?",
		artistID, theaterID, []string{domain.FavoriteStatusPending, domain.FavoriteStatusAccepted}).
		First(&req).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &req, nil
}

// GetPendingByPair returns the PENDING row for the pair, nil when none.
func (r *FavoriteRepository) GetPendingByPair(artistID, theaterID uint) (*models.FavoriteRequest, error) {
	var req models.FavoriteRequest
	err := r.db.Where("artist_id = ? AND theater_id = ? AND status = ?",
		artistID, theaterID, domain.FavoriteStatusPending).First(&req).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &req, nil
}

// ExistsByPair reports whether any edge links the pair, whatever its status.
func (r *FavoriteRepository) ExistsByPair(artistID, theaterID uint) (bool, error) {
	var c int64
	err := r.db.Model(&models.FavoriteRequest{}).
		Where("artist_id = ? AND theater_id = ?", artistID, theaterID).Count(&c).Error
	return c > 0, err
}

// SetStatus transitions a row out of PENDING. The status guard in the WHERE
// clause makes a concurrent double-respond lose cleanly: the second writer
// matches zero rows and the caller reports the request as gone.
func (r *FavoriteRepository) SetStatus(id uint, status string) (bool, error) {
	now := time.Now()
	res := r.db.Model(&models.FavoriteRequest{}).
		Where("id = ? AND status = ?", id, domain.FavoriteStatusPending).
		Updates(map[string]interface{}{"status": status, "responded_at": now})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// DeleteByPair soft-deletes every edge between the pair. Deleting nothing is
// not an error.
func (r *FavoriteRepository) DeleteByPair(artistID, theaterID uint) error {
	return r.db.Where("artist_id = ? AND theater_id = ?", artistID, theaterID).
		Delete(&models.FavoriteRequest{}).Error
}

// ListAcceptedForArtist returns the artist's friendship edges with the
// theater side preloaded.
func (r *FavoriteRepository) ListAcceptedForArtist(artistID uint) ([]models.FavoriteRequest, error) {
	var list []models.FavoriteRequest
	err := r.db.Where("artist_id = ? AND status = ?", artistID, domain.FavoriteStatusAccepted).
		Preload("Theater").Find(&list).Error
	return list, err
}

func (r *FavoriteRepository) ListAcceptedForTheater(theaterID uint) ([]models.FavoriteRequest, error) {
	var list []models.FavoriteRequest
	err := r.db.Where("theater_id = ? AND status = ?", theaterID, domain.FavoriteStatusAccepted).
		Preload("Artist").Find(&list).Error
	return list, err
}

// ListPendingForArtist returns the artist's PENDING rows filtered by which
// side opened them (requestedBy), newest first.
func (r *FavoriteRepository) ListPendingForArtist(artistID uint, requestedBy string) ([]models.FavoriteRequest, error) {
	var list []models.FavoriteRequest
	err := r.db.Where("artist_id = ? AND status = ? AND requested_by = ?",
		artistID, domain.FavoriteStatusPending, requestedBy).
		Preload("Theater").Order("created_at DESC").Find(&list).Error
	return list, err
}

func (r *FavoriteRepository) ListPendingForTheater(theaterID uint, requestedBy string) ([]models.FavoriteRequest, error) {
	var list []models.FavoriteRequest
	err := r.db.Where("theater_id = ? AND status = ? AND requested_by = ?",
		theaterID, domain.FavoriteStatusPending, requestedBy).
		Preload("Artist").Order("created_at DESC").Find(&list).Error
	return list, err
}

// CountAcceptedForArtist is used by the dashboard badge.
func (r *FavoriteRepository) CountAcceptedForArtist(artistID uint) (int64, error) {
	var c int64
	err := r.db.Model(&models.FavoriteRequest{}).
		Where("artist_id = ? AND status = ?", artistID, domain.FavoriteStatusAccepted).Count(&c).Error
	return c, err
}

func (r *FavoriteRepository) CountAcceptedForTheater(theaterID uint) (int64, error) {
	var c int64
	err := r.db.Model(&models.FavoriteRequest{}).
		Where("theater_id = ? AND status = ?", theaterID, domain.FavoriteStatusAccepted).Count(&c).Error
	return c, err
}

// CountPendingForArtist counts PENDING rows on the artist's side opened by
// the given role.
func (r *FavoriteRepository) CountPendingForArtist(artistID uint, requestedBy string) (int64, error) {
	var c int64
	err := r.db.Model(&models.FavoriteRequest{}).
		Where("artist_id = ? AND status = ? AND requested_by = ?", artistID, domain.FavoriteStatusPending, requestedBy).
		Count(&c).Error
	return c, err
}

func (r *FavoriteRepository) CountPendingForTheater(theaterID uint, requestedBy string) (int64, error) {
	var c int64
	err := r.db.Model(&models.FavoriteRequest{}).
		Where("theater_id = ? AND status = ? AND requested_by = ?", theaterID, domain.FavoriteStatusPending, requestedBy).
		Count(&c).Error
	return c, err
}

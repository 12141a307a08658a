package repository

import (
	"github.com/Baaaki/screenshelf/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// LibraryFilter narrows a library listing. Zero value lists everything.
type LibraryFilter struct {
	FavoritesOnly bool
	WatchedOnly   bool
}

// LibraryRepository persists UserMedia rows. Every method is keyed by the
// (userID, mediaID) pair so callers cannot reach another user's rows
// without passing that user's id explicitly.
type LibraryRepository struct {
	db *gorm.DB
}

func NewLibraryRepository(db *gorm.DB) *LibraryRepository {
	return &LibraryRepository{db: db}
}

func (r *LibraryRepository) CreateEntry(entry *models.UserMedia) error {
	return r.db.Omit(clause.Associations).Create(entry).Error
}

func (r *LibraryRepository) GetEntry(userID, mediaID uuid.UUID) (*models.UserMedia, error) {
	var entry models.UserMedia
	err := r.db.
		Preload("Media").
		Where("user_id = ? AND media_id = ?", userID, mediaID).
		First(&entry).Error
	return firstOrNil(&entry, err)
}

func (r *LibraryRepository) UpdateEntry(entry *models.UserMedia) error {
	return r.db.Model(&models.UserMedia{}).
		Where("user_id = ? AND media_id = ?", entry.UserID, entry.MediaID).
		Select("favorite", "watched", "rating", "notes", "calendar_at", "updated_at").
		Updates(entry).Error
}

// DeleteEntry removes only the association; reports whether a row existed.
func (r *LibraryRepository) DeleteEntry(userID, mediaID uuid.UUID) (bool, error) {
	res := r.db.Where("user_id = ? AND media_id = ?", userID, mediaID).Delete(&models.UserMedia{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// ListEntries pages a user's library with media attached, most recently added first.
func (r *LibraryRepository) ListEntries(userID uuid.UUID, filter LibraryFilter, req models.PageRequest) (*models.Page[models.UserMedia], error) {
	base := r.db.Model(&models.UserMedia{}).Where("user_id = ?", userID)
	if filter.FavoritesOnly {
		base = base.Where("favorite = ?", true)
	}
	if filter.WatchedOnly {
		base = base.Where("watched = ?", true)
	}

	return paginate[models.UserMedia](base, req, func(q *gorm.DB) *gorm.DB {
		return q.Preload("Media").Order("created_at DESC").Order("media_id")
	})
}

// ListAllEntries returns every library row of a user without media.
func (r *LibraryRepository) ListAllEntries(userID uuid.UUID) ([]models.UserMedia, error) {
	var entries []models.UserMedia
	err := r.db.Where("user_id = ?", userID).Find(&entries).Error
	return entries, err
}

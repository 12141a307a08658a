package repository

import (
	"strings"

	"github.com/Baaaki/screenshelf/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// mediaSortColumns maps API sort keys to columns.
var mediaSortColumns = map[string]string{
	"title":       "title",
	"releaseYear": "release_year",
	"rating":      "rating",
	"createdAt":   "created_at",
}

// MediaRating is the mean personal rating of one media item.
type MediaRating struct {
	MediaID       uuid.UUID
	AverageRating float64
	RatingsCount  int64
}

type MediaRepository struct {
	db *gorm.DB
}

func NewMediaRepository(db *gorm.DB) *MediaRepository {
	return &MediaRepository{db: db}
}

func withCreator(db *gorm.DB) *gorm.DB {
	return db.Preload("Creator", func(db *gorm.DB) *gorm.DB {
		return db.Select("id", "nick_name")
	})
}

func (r *MediaRepository) CreateMedia(media *models.Media) error {
	return r.db.Omit(clause.Associations).Create(media).Error
}

func (r *MediaRepository) GetMediaByID(id uuid.UUID) (*models.Media, error) {
	var media models.Media
	err := withCreator(r.db).Where("id = ?", id).First(&media).Error
	return firstOrNil(&media, err)
}

// GetMediaByTitle is an exact, case-sensitive lookup.
func (r *MediaRepository) GetMediaByTitle(title string) (*models.Media, error) {
	var media models.Media
	err := r.db.Where("title = ?", title).First(&media).Error
	return firstOrNil(&media, err)
}

// ListMedia pages all media ordered by sortKey (see mediaSortColumns).
func (r *MediaRepository) ListMedia(req models.PageRequest, sortKey string, desc bool) (*models.Page[models.Media], error) {
	column, ok := mediaSortColumns[sortKey]
	if !ok {
		column = "created_at"
	}

	return paginate[models.Media](r.db.Model(&models.Media{}), req, func(q *gorm.DB) *gorm.DB {
		return withCreator(q).
			Order(clause.OrderByColumn{Column: clause.Column{Name: column}, Desc: desc}).
			Order("id")
	})
}

// SearchMediaByTitle matches title as a case-insensitive substring.
func (r *MediaRepository) SearchMediaByTitle(term string, req models.PageRequest) (*models.Page[models.Media], error) {
	pattern := "%" + escapeLike(strings.ToLower(term)) + "%"
	base := r.db.Model(&models.Media{}).Where(`LOWER(title) LIKE ? ESCAPE '\'`, pattern)

	return paginate[models.Media](base, req, func(q *gorm.DB) *gorm.DB {
		return withCreator(q).Order("created_at DESC").Order("id")
	})
}

func (r *MediaRepository) ListMediaByCreator(userID uuid.UUID, req models.PageRequest) (*models.Page[models.Media], error) {
	base := r.db.Model(&models.Media{}).Where("created_by_id = ?", userID)

	return paginate[models.Media](base, req, func(q *gorm.DB) *gorm.DB {
		return withCreator(q).Order("created_at DESC").Order("id")
	})
}

// ListAllMedia loads every media row, newest first. Tag filtering happens
// in memory because category is stored as a JSON array.
func (r *MediaRepository) ListAllMedia() ([]models.Media, error) {
	var media []models.Media
	err := withCreator(r.db).Order("created_at DESC").Order("id").Find(&media).Error
	return media, err
}

// ListMediaByIDs loads the given ids, optionally restricted to one type.
// Result order is unspecified.
func (r *MediaRepository) ListMediaByIDs(ids []uuid.UUID, mediaType models.MediaType) ([]models.Media, error) {
	if len(ids) == 0 {
		return []models.Media{}, nil
	}

	query := withCreator(r.db).Where("id IN ?", ids)
	if mediaType != "" {
		query = query.Where("type = ?", mediaType)
	}

	var media []models.Media
	err := query.Find(&media).Error
	return media, err
}

func (r *MediaRepository) UpdateMedia(media *models.Media) error {
	return r.db.Omit(clause.Associations).Save(media).Error
}

// DeleteMediaCascade removes the media's library entries, its comments and
// the media row in one transaction. Any failure rolls back all three.
func (r *MediaRepository) DeleteMediaCascade(id uuid.UUID) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("media_id = ?", id).Delete(&models.UserMedia{}).Error; err != nil {
			return err
		}
		if err := tx.Where("media_id = ?", id).Delete(&models.Comment{}).Error; err != nil {
			return err
		}

		res := tx.Where("id = ?", id).Delete(&models.Media{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

// RatingAverages groups rated library entries by media and returns their
// mean rating, highest first.
func (r *MediaRepository) RatingAverages() ([]MediaRating, error) {
	var rows []MediaRating
	err := r.db.Model(&models.UserMedia{}).
		Select("media_id, AVG(rating) AS average_rating, COUNT(rating) AS ratings_count").
		Where("rating IS NOT NULL").
		Group("media_id").
		Order("average_rating DESC").
		Scan(&rows).Error
	return rows, err
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

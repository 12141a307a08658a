package repository

import (
	"errors"

	"github.com/Baaaki/screenshelf/internal/models"
	"gorm.io/gorm"
)

// IsDuplicateKey reports whether err is a unique-constraint violation.
func IsDuplicateKey(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey)
}

// firstOrNil maps gorm.ErrRecordNotFound to (nil, nil).
func firstOrNil[T any](v *T, err error) (*T, error) {
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return v, nil
}

// paginate counts the rows matched by base and loads one page of them.
// finish adds ordering and preloads to the page query only.
func paginate[T any](base *gorm.DB, req models.PageRequest, finish func(*gorm.DB) *gorm.DB) (*models.Page[T], error) {
	base = base.Session(&gorm.Session{})
	page := &models.Page[T]{Page: req.Page, PageSize: req.PageSize, Items: []T{}}

	if err := base.Count(&page.Total).Error; err != nil {
		return nil, err
	}
	if page.Total == 0 {
		return page, nil
	}

	query := base.Offset(req.Offset()).Limit(req.PageSize)
	if finish != nil {
		query = finish(query)
	}
	if err := query.Find(&page.Items).Error; err != nil {
		return nil, err
	}
	return page, nil
}

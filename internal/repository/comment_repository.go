package repository

import (
	"github.com/Baaaki/screenshelf/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CommentRepository struct {
	db *gorm.DB
}

func NewCommentRepository(db *gorm.DB) *CommentRepository {
	return &CommentRepository{db: db}
}

func withAuthor(db *gorm.DB) *gorm.DB {
	return db.Preload("User", func(db *gorm.DB) *gorm.DB {
		return db.Select("id", "nick_name")
	})
}

func (r *CommentRepository) CreateComment(comment *models.Comment) error {
	return r.db.Omit(clause.Associations).Create(comment).Error
}

func (r *CommentRepository) GetCommentByID(id uuid.UUID) (*models.Comment, error) {
	var comment models.Comment
	err := withAuthor(r.db).Where("id = ?", id).First(&comment).Error
	return firstOrNil(&comment, err)
}

func (r *CommentRepository) UpdateComment(comment *models.Comment) error {
	return r.db.Model(comment).Select("content", "updated_at").Updates(comment).Error
}

func (r *CommentRepository) DeleteComment(id uuid.UUID) error {
	return r.db.Where("id = ?", id).Delete(&models.Comment{}).Error
}

// ListCommentsByMedia pages a media's comments in posting order.
func (r *CommentRepository) ListCommentsByMedia(mediaID uuid.UUID, req models.PageRequest) (*models.Page[models.Comment], error) {
	base := r.db.Model(&models.Comment{}).Where("media_id = ?", mediaID)

	return paginate[models.Comment](base, req, func(q *gorm.DB) *gorm.DB {
		return withAuthor(q).Order("created_at ASC").Order("id")
	})
}

// ListCommentsByUser pages a user's comments, newest first, with media attached.
func (r *CommentRepository) ListCommentsByUser(userID uuid.UUID, req models.PageRequest) (*models.Page[models.Comment], error) {
	base := r.db.Model(&models.Comment{}).Where("user_id = ?", userID)

	return paginate[models.Comment](base, req, func(q *gorm.DB) *gorm.DB {
		return withAuthor(q).
			Preload("Media", func(db *gorm.DB) *gorm.DB {
				return db.Select("id", "title", "type")
			}).
			Order("created_at DESC").
			Order("id")
	})
}

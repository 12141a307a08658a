package service

import (
	"github.com/Baaaki/screenshelf/internal/models"
	"github.com/Baaaki/screenshelf/internal/repository"
	"github.com/Baaaki/screenshelf/internal/utils"
	"github.com/Baaaki/screenshelf/pkg/logger"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type CommentService struct {
	commentRepo *repository.CommentRepository
	mediaRepo   *repository.MediaRepository
	userRepo    *repository.UserRepository
}

func NewCommentService(
	commentRepo *repository.CommentRepository,
	mediaRepo *repository.MediaRepository,
	userRepo *repository.UserRepository,
) *CommentService {
	return &CommentService{
		commentRepo: commentRepo,
		mediaRepo:   mediaRepo,
		userRepo:    userRepo,
	}
}

func (s *CommentService) CreateComment(actor *utils.Claims, mediaID uuid.UUID, content string) (*models.Comment, error) {
	if err := s.requireMedia(mediaID); err != nil {
		return nil, err
	}

	comment := &models.Comment{
		Content: content,
		MediaID: mediaID,
		UserID:  actor.UserID,
	}
	if err := s.commentRepo.CreateComment(comment); err != nil {
		logger.Log.Error("Failed to create comment",
			zap.String("media_id", mediaID.String()),
			zap.String("user_id", actor.UserID.String()),
			zap.Error(err),
		)
		return nil, err
	}

	logger.Log.Info("Comment created",
		zap.String("comment_id", comment.ID.String()),
		zap.String("media_id", mediaID.String()),
		zap.String("user_id", actor.UserID.String()),
	)
	return s.GetComment(comment.ID)
}

func (s *CommentService) GetComment(id uuid.UUID) (*models.Comment, error) {
	comment, err := s.commentRepo.GetCommentByID(id)
	if err != nil {
		logger.Log.Error("Failed to get comment",
			zap.String("comment_id", id.String()),
			zap.Error(err),
		)
		return nil, err
	}
	if comment == nil {
		return nil, ErrCommentNotFound
	}
	return comment, nil
}

// UpdateComment replaces the content. Only the author may edit.
func (s *CommentService) UpdateComment(actor *utils.Claims, id uuid.UUID, content string) (*models.Comment, error) {
	comment, err := s.GetComment(id)
	if err != nil {
		return nil, err
	}

	if comment.UserID != actor.UserID {
		logger.Log.Warn("Comment update rejected: not the author",
			zap.String("comment_id", id.String()),
			zap.String("user_id", actor.UserID.String()),
		)
		return nil, ErrNotCommentAuthor
	}

	comment.Content = content
	if err := s.commentRepo.UpdateComment(comment); err != nil {
		logger.Log.Error("Failed to update comment",
			zap.String("comment_id", id.String()),
			zap.Error(err),
		)
		return nil, err
	}

	logger.Log.Info("Comment updated",
		zap.String("comment_id", id.String()),
		zap.String("user_id", actor.UserID.String()),
	)
	return comment, nil
}

// DeleteComment is allowed for the author and for admins.
func (s *CommentService) DeleteComment(actor *utils.Claims, id uuid.UUID) error {
	comment, err := s.GetComment(id)
	if err != nil {
		return err
	}

	if comment.UserID != actor.UserID && !actor.IsAdmin() {
		logger.Log.Warn("Comment delete rejected: not the author nor admin",
			zap.String("comment_id", id.String()),
			zap.String("user_id", actor.UserID.String()),
		)
		return ErrCannotDeleteComment
	}

	if err := s.commentRepo.DeleteComment(id); err != nil {
		logger.Log.Error("Failed to delete comment",
			zap.String("comment_id", id.String()),
			zap.Error(err),
		)
		return err
	}

	logger.Log.Info("Comment deleted",
		zap.String("comment_id", id.String()),
		zap.String("user_id", actor.UserID.String()),
		zap.Bool("by_admin", comment.UserID != actor.UserID),
	)
	return nil
}

func (s *CommentService) ListMediaComments(mediaID uuid.UUID, req models.PageRequest) (*models.Page[models.Comment], error) {
	if err := s.requireMedia(mediaID); err != nil {
		return nil, err
	}

	page, err := s.commentRepo.ListCommentsByMedia(mediaID, req)
	if err != nil {
		logger.Log.Error("Failed to list media comments",
			zap.String("media_id", mediaID.String()),
			zap.Error(err),
		)
		return nil, err
	}
	return page, nil
}

func (s *CommentService) ListUserComments(nickName string, req models.PageRequest) (*models.Page[models.Comment], error) {
	user, err := s.userRepo.GetUserByNickName(nickName)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	page, err := s.commentRepo.ListCommentsByUser(user.ID, req)
	if err != nil {
		logger.Log.Error("Failed to list user comments",
			zap.String("user_id", user.ID.String()),
			zap.Error(err),
		)
		return nil, err
	}
	return page, nil
}

func (s *CommentService) requireMedia(mediaID uuid.UUID) error {
	media, err := s.mediaRepo.GetMediaByID(mediaID)
	if err != nil {
		logger.Log.Error("Failed to get media",
			zap.String("media_id", mediaID.String()),
			zap.Error(err),
		)
		return err
	}
	if media == nil {
		return ErrMediaNotFound
	}
	return nil
}

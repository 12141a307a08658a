package service

import (
	"errors"
	"fmt"

	"github.com/Baaaki/screenshelf/internal/models"
	"github.com/Baaaki/screenshelf/internal/repository"
	"github.com/Baaaki/screenshelf/internal/utils"
	"github.com/Baaaki/screenshelf/internal/validation"
	"github.com/Baaaki/screenshelf/pkg/logger"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type MediaService struct {
	mediaRepo *repository.MediaRepository
}

func NewMediaService(mediaRepo *repository.MediaRepository) *MediaService {
	return &MediaService{
		mediaRepo: mediaRepo,
	}
}

// CreateMedia stores a new media item owned by actor. Titles are unique by
// exact match.
func (s *MediaService) CreateMedia(actor *utils.Claims, in *validation.MediaInput) (*models.Media, error) {
	existing, err := s.mediaRepo.GetMediaByTitle(in.Title)
	if err != nil {
		logger.Log.Error("Failed to check media title",
			zap.String("title", in.Title),
			zap.Error(err),
		)
		return nil, err
	}
	if existing != nil {
		logger.Log.Warn("Media already exists",
			zap.String("title", in.Title),
			zap.String("media_id", existing.ID.String()),
		)
		return nil, ErrMediaAlreadyExists
	}

	media := in.ToMedia()
	media.CreatedByID = actor.UserID

	if err := s.mediaRepo.CreateMedia(media); err != nil {
		if repository.IsDuplicateKey(err) {
			return nil, ErrMediaAlreadyExists
		}
		logger.Log.Error("Failed to create media",
			zap.String("title", in.Title),
			zap.Error(err),
		)
		return nil, err
	}

	logger.Log.Info("Media created",
		zap.String("media_id", media.ID.String()),
		zap.String("title", media.Title),
		zap.String("user_id", actor.UserID.String()),
	)

	return s.GetMedia(media.ID)
}

func (s *MediaService) GetMedia(id uuid.UUID) (*models.Media, error) {
	media, err := s.mediaRepo.GetMediaByID(id)
	if err != nil {
		logger.Log.Error("Failed to get media",
			zap.String("media_id", id.String()),
			zap.Error(err),
		)
		return nil, err
	}
	if media == nil {
		return nil, ErrMediaNotFound
	}
	return media, nil
}

// UpdateMedia applies patch to a media item. Only its creator may do so.
func (s *MediaService) UpdateMedia(actor *utils.Claims, id uuid.UUID, patch *validation.MediaPatch) (*models.Media, error) {
	media, err := s.GetMedia(id)
	if err != nil {
		return nil, err
	}

	if media.CreatedByID != actor.UserID {
		logger.Log.Warn("Media update rejected: not the creator",
			zap.String("media_id", id.String()),
			zap.String("user_id", actor.UserID.String()),
		)
		return nil, ErrNotMediaOwner
	}

	if patch.Title != nil && *patch.Title != media.Title {
		other, err := s.mediaRepo.GetMediaByTitle(*patch.Title)
		if err != nil {
			return nil, err
		}
		if other != nil {
			return nil, ErrMediaAlreadyExists
		}
	}

	patch.Apply(media)
	if err := validation.CheckMedia(media); err != nil {
		return nil, err
	}

	if err := s.mediaRepo.UpdateMedia(media); err != nil {
		if repository.IsDuplicateKey(err) {
			return nil, ErrMediaAlreadyExists
		}
		logger.Log.Error("Failed to update media",
			zap.String("media_id", id.String()),
			zap.Error(err),
		)
		return nil, err
	}

	logger.Log.Info("Media updated",
		zap.String("media_id", id.String()),
		zap.String("user_id", actor.UserID.String()),
	)
	return media, nil
}

// DeleteMedia removes a media item together with every library entry and
// comment referencing it. Allowed for its creator and for admins.
func (s *MediaService) DeleteMedia(actor *utils.Claims, id uuid.UUID) (*models.Media, error) {
	media, err := s.GetMedia(id)
	if err != nil {
		return nil, err
	}

	if media.CreatedByID != actor.UserID && !actor.IsAdmin() {
		logger.Log.Warn("Media delete rejected: not the creator nor admin",
			zap.String("media_id", id.String()),
			zap.String("user_id", actor.UserID.String()),
		)
		return nil, ErrCannotDeleteMedia
	}

	if err := s.mediaRepo.DeleteMediaCascade(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMediaNotFound
		}
		logger.Log.Error("Failed to delete media",
			zap.String("media_id", id.String()),
			zap.Error(err),
		)
		return nil, err
	}

	logger.Log.Info("Media deleted",
		zap.String("media_id", id.String()),
		zap.String("title", media.Title),
		zap.String("user_id", actor.UserID.String()),
		zap.Bool("by_admin", media.CreatedByID != actor.UserID),
	)
	return media, nil
}

func (s *MediaService) ListMedia(query *validation.MediaListQuery, req models.PageRequest) (*models.Page[models.Media], error) {
	page, err := s.mediaRepo.ListMedia(req, query.Sort, query.Order == "desc")
	if err != nil {
		logger.Log.Error("Failed to list media",
			zap.String("sort", query.Sort),
			zap.Error(err),
		)
		return nil, err
	}
	return page, nil
}

// SearchMedia finds media whose title contains term, ignoring case. An
// empty result is reported as not found.
func (s *MediaService) SearchMedia(term string, req models.PageRequest) (*models.Page[models.Media], error) {
	page, err := s.mediaRepo.SearchMediaByTitle(term, req)
	if err != nil {
		logger.Log.Error("Failed to search media",
			zap.String("term", term),
			zap.Error(err),
		)
		return nil, err
	}
	if page.Total == 0 {
		return nil, fmt.Errorf("%w %s", ErrMediaNotFound, term)
	}
	return page, nil
}

// ListByCategory filters on the category tag list in memory.
func (s *MediaService) ListByCategory(category string, req models.PageRequest) (*models.Page[models.Media], error) {
	all, err := s.mediaRepo.ListAllMedia()
	if err != nil {
		logger.Log.Error("Failed to load media for category filter",
			zap.String("category", category),
			zap.Error(err),
		)
		return nil, err
	}

	matched := make([]models.Media, 0, len(all))
	for i := range all {
		if all[i].HasCategory(category) {
			matched = append(matched, all[i])
		}
	}

	logger.Log.Debug("Filtered media by category",
		zap.String("category", category),
		zap.Int("candidates", len(all)),
		zap.Int("matched", len(matched)),
	)
	return models.Slice(matched, req), nil
}

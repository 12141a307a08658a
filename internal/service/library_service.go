package service

import (
	"math"
	"strings"

	"github.com/Baaaki/screenshelf/internal/models"
	"github.com/Baaaki/screenshelf/internal/repository"
	"github.com/Baaaki/screenshelf/internal/utils"
	"github.com/Baaaki/screenshelf/internal/validation"
	"github.com/Baaaki/screenshelf/pkg/logger"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// LibraryStats summarizes one user's library.
type LibraryStats struct {
	Total         int      `json:"total"`
	Favorites     int      `json:"favorites"`
	Watched       int      `json:"watched"`
	WithNotes     int      `json:"withNotes"`
	Scheduled     int      `json:"scheduled"`
	AverageRating *float64 `json:"averageRating"`
}

// ComputeLibraryStats aggregates entries. AverageRating is the mean of the
// set personal ratings rounded to one decimal, or nil when none is set.
func ComputeLibraryStats(entries []models.UserMedia) LibraryStats {
	stats := LibraryStats{Total: len(entries)}

	var sum float64
	var rated int
	for i := range entries {
		e := &entries[i]
		if e.Favorite {
			stats.Favorites++
		}
		if e.Watched {
			stats.Watched++
		}
		if strings.TrimSpace(e.Notes) != "" {
			stats.WithNotes++
		}
		if e.CalendarAt != nil {
			stats.Scheduled++
		}
		if e.Rating != nil {
			sum += *e.Rating
			rated++
		}
	}

	if rated > 0 {
		avg := round1(sum / float64(rated))
		stats.AverageRating = &avg
	}
	return stats
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// LibraryService manages library entries. Every mutation is keyed by the
// caller's own user id; there is no admin override.
type LibraryService struct {
	libraryRepo *repository.LibraryRepository
	mediaRepo   *repository.MediaRepository
	userRepo    *repository.UserRepository
}

func NewLibraryService(
	libraryRepo *repository.LibraryRepository,
	mediaRepo *repository.MediaRepository,
	userRepo *repository.UserRepository,
) *LibraryService {
	return &LibraryService{
		libraryRepo: libraryRepo,
		mediaRepo:   mediaRepo,
		userRepo:    userRepo,
	}
}

// AddToLibrary creates the (userID, mediaID) entry. A second add of the same
// pair is a conflict.
func (s *LibraryService) AddToLibrary(userID, mediaID uuid.UUID, patch *validation.LibraryEntryPatch) (*models.UserMedia, error) {
	media, err := s.mediaRepo.GetMediaByID(mediaID)
	if err != nil {
		logger.Log.Error("Failed to get media",
			zap.String("media_id", mediaID.String()),
			zap.Error(err),
		)
		return nil, err
	}
	if media == nil {
		return nil, ErrMediaNotFound
	}

	existing, err := s.libraryRepo.GetEntry(userID, mediaID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		logger.Log.Warn("Media already in library",
			zap.String("user_id", userID.String()),
			zap.String("media_id", mediaID.String()),
		)
		return nil, ErrAlreadyInLibrary
	}

	entry := &models.UserMedia{UserID: userID, MediaID: mediaID}
	if patch != nil {
		patch.Apply(entry)
	}

	if err := s.libraryRepo.CreateEntry(entry); err != nil {
		if repository.IsDuplicateKey(err) {
			return nil, ErrAlreadyInLibrary
		}
		logger.Log.Error("Failed to add media to library",
			zap.String("user_id", userID.String()),
			zap.String("media_id", mediaID.String()),
			zap.Error(err),
		)
		return nil, err
	}
	entry.Media = media

	logger.Log.Info("Media added to library",
		zap.String("user_id", userID.String()),
		zap.String("media_id", mediaID.String()),
	)
	return entry, nil
}

func (s *LibraryService) GetEntry(userID, mediaID uuid.UUID) (*models.UserMedia, error) {
	entry, err := s.libraryRepo.GetEntry(userID, mediaID)
	if err != nil {
		logger.Log.Error("Failed to get library entry",
			zap.String("user_id", userID.String()),
			zap.String("media_id", mediaID.String()),
			zap.Error(err),
		)
		return nil, err
	}
	if entry == nil {
		return nil, ErrLibraryEntryNotFound
	}
	return entry, nil
}

func (s *LibraryService) UpdateEntry(userID, mediaID uuid.UUID, patch *validation.LibraryEntryPatch) (*models.UserMedia, error) {
	entry, err := s.GetEntry(userID, mediaID)
	if err != nil {
		return nil, err
	}

	patch.Apply(entry)

	if err := s.libraryRepo.UpdateEntry(entry); err != nil {
		logger.Log.Error("Failed to update library entry",
			zap.String("user_id", userID.String()),
			zap.String("media_id", mediaID.String()),
			zap.Error(err),
		)
		return nil, err
	}

	logger.Log.Info("Library entry updated",
		zap.String("user_id", userID.String()),
		zap.String("media_id", mediaID.String()),
	)
	return entry, nil
}

// RemoveFromLibrary deletes only the association; the media stays.
func (s *LibraryService) RemoveFromLibrary(userID, mediaID uuid.UUID) error {
	deleted, err := s.libraryRepo.DeleteEntry(userID, mediaID)
	if err != nil {
		logger.Log.Error("Failed to remove library entry",
			zap.String("user_id", userID.String()),
			zap.String("media_id", mediaID.String()),
			zap.Error(err),
		)
		return err
	}
	if !deleted {
		return ErrLibraryEntryNotFound
	}

	logger.Log.Info("Media removed from library",
		zap.String("user_id", userID.String()),
		zap.String("media_id", mediaID.String()),
	)
	return nil
}

func (s *LibraryService) ListLibrary(userID uuid.UUID, filter repository.LibraryFilter, req models.PageRequest) (*models.Page[models.UserMedia], error) {
	page, err := s.libraryRepo.ListEntries(userID, filter, req)
	if err != nil {
		logger.Log.Error("Failed to list library",
			zap.String("user_id", userID.String()),
			zap.Bool("favorites_only", filter.FavoritesOnly),
			zap.Bool("watched_only", filter.WatchedOnly),
			zap.Error(err),
		)
		return nil, err
	}
	return page, nil
}

func (s *LibraryService) Stats(userID uuid.UUID) (LibraryStats, error) {
	entries, err := s.libraryRepo.ListAllEntries(userID)
	if err != nil {
		logger.Log.Error("Failed to load library for stats",
			zap.String("user_id", userID.String()),
			zap.Error(err),
		)
		return LibraryStats{}, err
	}
	return ComputeLibraryStats(entries), nil
}

// PublicLibrary pages another user's library. A PRIVATE library is only
// visible to its owner and to admins.
func (s *LibraryService) PublicLibrary(actor *utils.Claims, nickName string, req models.PageRequest) (*models.User, *models.Page[models.UserMedia], error) {
	owner, err := s.userRepo.GetUserByNickName(nickName)
	if err != nil {
		logger.Log.Error("Failed to get user by nickname",
			zap.String("nick_name", nickName),
			zap.Error(err),
		)
		return nil, nil, err
	}
	if owner == nil {
		return nil, nil, ErrUserNotFound
	}

	if !canSeePrivate(actor, owner) {
		logger.Log.Warn("Private library access rejected",
			zap.String("owner_id", owner.ID.String()),
			zap.String("user_id", actorID(actor)),
		)
		return nil, nil, ErrPrivateLibrary
	}

	page, err := s.ListLibrary(owner.ID, repository.LibraryFilter{}, req)
	if err != nil {
		return nil, nil, err
	}
	return owner, page, nil
}

package service

import (
	"github.com/Baaaki/screenshelf/internal/models"
	"github.com/Baaaki/screenshelf/internal/repository"
	"github.com/Baaaki/screenshelf/internal/utils"
	"github.com/Baaaki/screenshelf/internal/validation"
	"github.com/Baaaki/screenshelf/pkg/logger"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type UserService struct {
	userRepo  *repository.UserRepository
	mediaRepo *repository.MediaRepository
}

func NewUserService(userRepo *repository.UserRepository, mediaRepo *repository.MediaRepository) *UserService {
	return &UserService{
		userRepo:  userRepo,
		mediaRepo: mediaRepo,
	}
}

// ListUsers pages every account. Admin only.
func (s *UserService) ListUsers(actor *utils.Claims, req models.PageRequest) (*models.Page[models.User], error) {
	if err := utils.RequireRole(actor, models.RoleAdmin); err != nil {
		logger.Log.Warn("Non-admin attempted to list users",
			zap.String("user_id", actorID(actor)),
		)
		return nil, ErrAdminOnly
	}

	page, err := s.userRepo.ListUsers(req)
	if err != nil {
		logger.Log.Error("Failed to list users",
			zap.Error(err),
		)
		return nil, err
	}

	logger.Log.Debug("Listed users",
		zap.Int("page", req.Page),
		zap.Int("count", len(page.Items)),
	)
	return page, nil
}

func (s *UserService) GetByID(id uuid.UUID) (*models.User, error) {
	user, err := s.userRepo.GetUserByID(id)
	if err != nil {
		logger.Log.Error("Failed to get user by id",
			zap.String("user_id", id.String()),
			zap.Error(err),
		)
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

func (s *UserService) GetByNickName(nickName string) (*models.User, error) {
	user, err := s.userRepo.GetUserByNickName(nickName)
	if err != nil {
		logger.Log.Error("Failed to get user by nickname",
			zap.String("nick_name", nickName),
			zap.Error(err),
		)
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

// GetProfile looks a user up by nickname. full is false when the caller may
// only see the reduced view of a PRIVATE profile.
func (s *UserService) GetProfile(actor *utils.Claims, nickName string) (user *models.User, full bool, err error) {
	user, err = s.GetByNickName(nickName)
	if err != nil {
		return nil, false, err
	}
	return user, canSeePrivate(actor, user), nil
}

func (s *UserService) UpdateProfile(id uuid.UUID, patch *validation.ProfilePatch) (*models.User, error) {
	return s.update(id, "profile", func(u *models.User) {
		patch.Apply(u)
	})
}

func (s *UserService) UpdatePrivacy(id uuid.UUID, privacy models.Privacy) (*models.User, error) {
	return s.update(id, "privacy", func(u *models.User) {
		u.Privacy = privacy
	})
}

func (s *UserService) UpdateAvatar(id uuid.UUID, avatar string) (*models.User, error) {
	return s.update(id, "avatar", func(u *models.User) {
		u.Avatar = avatar
	})
}

// ListUserMedia pages the media created by the user with nickName.
func (s *UserService) ListUserMedia(nickName string, req models.PageRequest) (*models.Page[models.Media], error) {
	user, err := s.GetByNickName(nickName)
	if err != nil {
		return nil, err
	}

	page, err := s.mediaRepo.ListMediaByCreator(user.ID, req)
	if err != nil {
		logger.Log.Error("Failed to list media by creator",
			zap.String("user_id", user.ID.String()),
			zap.Error(err),
		)
		return nil, err
	}
	return page, nil
}

func (s *UserService) update(id uuid.UUID, what string, apply func(*models.User)) (*models.User, error) {
	user, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}

	apply(user)

	if err := s.userRepo.UpdateUser(user); err != nil {
		logger.Log.Error("Failed to update user",
			zap.String("user_id", id.String()),
			zap.String("field", what),
			zap.Error(err),
		)
		return nil, err
	}

	logger.Log.Info("User updated",
		zap.String("user_id", id.String()),
		zap.String("field", what),
	)
	return user, nil
}

// canSeePrivate reports whether actor may see everything about target.
func canSeePrivate(actor *utils.Claims, target *models.User) bool {
	if target.Privacy != models.PrivacyPrivate {
		return true
	}
	return actor != nil && (actor.UserID == target.ID || actor.IsAdmin())
}

func actorID(actor *utils.Claims) string {
	if actor == nil {
		return ""
	}
	return actor.UserID.String()
}

package service

import (
	"time"

	"github.com/Baaaki/screenshelf/internal/models"
	"github.com/Baaaki/screenshelf/internal/repository"
	"github.com/Baaaki/screenshelf/internal/utils"
	"github.com/Baaaki/screenshelf/internal/validation"
	"github.com/Baaaki/screenshelf/pkg/logger"
	"go.uber.org/zap"
)

type AuthService struct {
	userRepo      *repository.UserRepository
	jwtSecret     string
	jwtExpiration time.Duration
	environment   string
}

func NewAuthService(userRepo *repository.UserRepository, jwtSecret string, jwtExpiration time.Duration, environment string) *AuthService {
	if jwtExpiration <= 0 {
		jwtExpiration = utils.DefaultTokenExpiry
	}
	return &AuthService{
		userRepo:      userRepo,
		jwtSecret:     jwtSecret,
		jwtExpiration: jwtExpiration,
		environment:   environment,
	}
}

// IsProduction returns true if running in production environment
func (s *AuthService) IsProduction() bool {
	return s.environment == "production"
}

// Register creates an account. The first account ever created becomes ADMIN,
// every later one MEMBER.
func (s *AuthService) Register(in *validation.RegisterInput) (*models.User, string, error) {
	start := time.Now()

	logger.Log.Debug("Processing user registration",
		zap.String("nick_name", in.NickName),
		zap.String("email", in.Email),
	)

	// 1. Friendly uniqueness pre-check over both fields
	existing, err := s.userRepo.FindByEmailOrNickName(in.Email, in.NickName)
	if err != nil {
		logger.Log.Error("Failed to check user uniqueness",
			zap.String("email", in.Email),
			zap.Error(err),
		)
		return nil, "", err
	}
	if existing != nil {
		conflict := collidingField(existing, in.Email)
		logger.Log.Warn("Registration rejected: user already exists",
			zap.String("email", in.Email),
			zap.String("nick_name", in.NickName),
			zap.Error(conflict),
		)
		return nil, "", conflict
	}

	// 2. Hash password (Argon2)
	hashStart := time.Now()
	hashedPassword, err := utils.HashPassword(in.Password)
	if err != nil {
		logger.Log.Error("Failed to hash password",
			zap.Error(err),
		)
		return nil, "", err
	}
	hashDuration := time.Since(hashStart)

	// 3. Create user, claiming the admin role if nobody has yet
	user := &models.User{
		Email:        in.Email,
		NickName:     in.NickName,
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		PasswordHash: hashedPassword,
	}

	if err := s.userRepo.CreateWithRoleBootstrap(user); err != nil {
		if repository.IsDuplicateKey(err) {
			// Lost a race against a concurrent registration
			return nil, "", s.resolveDuplicate(in)
		}
		logger.Log.Error("Failed to create user in database",
			zap.String("nick_name", in.NickName),
			zap.String("email", in.Email),
			zap.Error(err),
		)
		return nil, "", err
	}

	// 4. Generate JWT token
	token, err := utils.GenerateToken(user, s.jwtSecret, s.jwtExpiration)
	if err != nil {
		logger.Log.Error("Failed to generate JWT token",
			zap.String("user_id", user.ID.String()),
			zap.Error(err),
		)
		return nil, "", err
	}

	logger.Log.Info("User registered successfully",
		zap.String("user_id", user.ID.String()),
		zap.String("nick_name", user.NickName),
		zap.String("role", string(user.Role)),
		zap.Duration("hash_duration", hashDuration),
		zap.Duration("total_duration", time.Since(start)),
	)

	return user, token, nil
}

func (s *AuthService) Login(email, password string) (*models.User, string, error) {
	start := time.Now()

	logger.Log.Debug("Processing user login",
		zap.String("email", email),
	)

	user, err := s.userRepo.GetUserByEmail(email)
	if err != nil {
		logger.Log.Error("Failed to get user by email",
			zap.String("email", email),
			zap.Error(err),
		)
		return nil, "", err
	}
	if user == nil {
		logger.Log.Warn("Login failed: user not found",
			zap.String("email", email),
		)
		return nil, "", ErrUserNotFound
	}

	verifyStart := time.Now()
	valid, err := utils.VerifyPassword(password, user.PasswordHash)
	if err != nil {
		logger.Log.Error("Failed to verify password",
			zap.String("user_id", user.ID.String()),
			zap.Error(err),
		)
		return nil, "", err
	}
	verifyDuration := time.Since(verifyStart)

	if !valid {
		logger.Log.Warn("Login failed: invalid password",
			zap.String("user_id", user.ID.String()),
		)
		return nil, "", ErrIncorrectPassword
	}

	token, err := utils.GenerateToken(user, s.jwtSecret, s.jwtExpiration)
	if err != nil {
		logger.Log.Error("Failed to generate JWT token",
			zap.String("user_id", user.ID.String()),
			zap.Error(err),
		)
		return nil, "", err
	}

	logger.Log.Info("User logged in successfully",
		zap.String("user_id", user.ID.String()),
		zap.String("nick_name", user.NickName),
		zap.Duration("password_verify_duration", verifyDuration),
		zap.Duration("total_duration", time.Since(start)),
	)

	return user, token, nil
}

// resolveDuplicate names the field behind a unique violation raised by the store.
func (s *AuthService) resolveDuplicate(in *validation.RegisterInput) error {
	existing, err := s.userRepo.FindByEmailOrNickName(in.Email, in.NickName)
	if err != nil {
		return err
	}
	if existing == nil {
		return ErrEmailAlreadyExists
	}
	return collidingField(existing, in.Email)
}

func collidingField(existing *models.User, email string) error {
	if existing.Email == email {
		return ErrEmailAlreadyExists
	}
	return ErrNickNameAlreadyExists
}

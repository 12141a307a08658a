// Command seed makes sure an administrator account exists. It registers the
// configured account through the normal registration path, or promotes an
// existing account with that email.
package main

import (
	"log"
	"os"

	"github.com/Baaaki/screenshelf/internal/config"
	"github.com/Baaaki/screenshelf/internal/database"
	"github.com/Baaaki/screenshelf/internal/models"
	"github.com/Baaaki/screenshelf/internal/repository"
	"github.com/Baaaki/screenshelf/internal/service"
	"github.com/Baaaki/screenshelf/internal/validation"
	"github.com/Baaaki/screenshelf/pkg/logger"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	if err := logger.Init(!cfg.IsProduction()); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	input := &validation.RegisterInput{
		Email:     os.Getenv("ADMIN_EMAIL"),
		NickName:  os.Getenv("ADMIN_NICKNAME"),
		Password:  os.Getenv("ADMIN_PASSWORD"),
		FirstName: getEnv("ADMIN_FIRST_NAME", "Admin"),
		LastName:  getEnv("ADMIN_LAST_NAME", "Admin"),
	}
	if input.Email == "" {
		logger.Log.Fatal("Missing environment variable ADMIN_EMAIL")
	}

	db, err := database.Connect(cfg)
	if err != nil {
		logger.Log.Fatal("Failed to connect to database", zap.Error(err))
	}
	if err := database.Migrate(db); err != nil {
		logger.Log.Fatal("Failed to migrate database", zap.Error(err))
	}

	userRepo := repository.NewUserRepository(db)
	authService := service.NewAuthService(userRepo, cfg.JWTSecret, cfg.JWTExpiry, cfg.Environment)

	user, err := seedAdmin(userRepo, authService, input)
	if err != nil {
		logger.Log.Fatal("Failed to seed admin", zap.Error(err))
	}

	logger.Log.Info("Admin account ready",
		zap.String("user_id", user.ID.String()),
		zap.String("nick_name", user.NickName),
		zap.String("email", user.Email),
	)
}

// seedAdmin returns the ADMIN account for input.Email, creating or promoting
// it as needed.
func seedAdmin(userRepo *repository.UserRepository, authService *service.AuthService, input *validation.RegisterInput) (*models.User, error) {
	user, err := userRepo.GetUserByEmail(input.Email)
	if err != nil {
		return nil, err
	}

	if user == nil {
		if err := validation.Struct(input); err != nil {
			return nil, err
		}
		// The first account registered becomes ADMIN on its own
		user, _, err = authService.Register(input)
		if err != nil {
			return nil, err
		}
	}

	if user.IsAdmin() {
		return user, nil
	}

	if err := userRepo.SetRole(user.ID, models.RoleAdmin); err != nil {
		return nil, err
	}
	user.Role = models.RoleAdmin

	logger.Log.Info("Promoted existing account to admin",
		zap.String("user_id", user.ID.String()),
	)
	return user, nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

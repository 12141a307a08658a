package handler

import (
	"net/http"

	"github.com/Baaaki/screenshelf/internal/service"
	"github.com/Baaaki/screenshelf/internal/validation"
	"github.com/Baaaki/screenshelf/pkg/logger"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type AuthHandler struct {
	authService *service.AuthService
}

func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

type authResponse struct {
	User  userView `json:"user"`
	Token string   `json:"token"`
}

// Register creates an account and returns it with a token.
// POST /auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req validation.RegisterInput
	if !bindJSON(c, &req) {
		return
	}

	logger.Log.Info("User registration attempt",
		zap.String("nick_name", req.NickName),
		zap.String("email", req.Email),
		zap.String("ip", c.ClientIP()),
	)

	user, token, err := h.authService.Register(&req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, authResponse{User: toUserView(user), Token: token})
}

// Login exchanges credentials for a token.
// POST /auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req validation.LoginInput
	if !bindJSON(c, &req) {
		return
	}

	user, token, err := h.authService.Login(req.Email, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, authResponse{User: toUserView(user), Token: token})
}

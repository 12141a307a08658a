package handler

import (
	"net/http"

	"github.com/Baaaki/screenshelf/internal/models"
	"github.com/Baaaki/screenshelf/internal/service"
	"github.com/Baaaki/screenshelf/internal/validation"
	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	userService *service.UserService
}

func NewUserHandler(userService *service.UserService) *UserHandler {
	return &UserHandler{
		userService: userService,
	}
}

// ListUsers pages every account.
// GET /users (admin)
func (h *UserHandler) ListUsers(c *gin.Context) {
	claims, ok := mustClaims(c)
	if !ok {
		return
	}

	page, err := h.userService.ListUsers(claims, pageRequest(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, newPageResponse(page, toUserView))
}

// GET /users/me
func (h *UserHandler) Me(c *gin.Context) {
	claims, ok := mustClaims(c)
	if !ok {
		return
	}

	user, err := h.userService.GetByID(claims.UserID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, toUserView(user))
}

// GetProfile shows a profile; PRIVATE ones are reduced for strangers.
// GET /users/:nickName
func (h *UserHandler) GetProfile(c *gin.Context) {
	claims, ok := mustClaims(c)
	if !ok {
		return
	}

	user, full, err := h.userService.GetProfile(claims, c.Param("nickName"))
	if err != nil {
		respondError(c, err)
		return
	}

	switch {
	case user.ID == claims.UserID || claims.IsAdmin():
		c.JSON(http.StatusOK, toUserView(user))
	case full:
		c.JSON(http.StatusOK, toPublicProfileView(user))
	default:
		c.JSON(http.StatusOK, privateProfileView{ID: user.ID, NickName: user.NickName, Privacy: user.Privacy})
	}
}

// GET /users/:nickName/media
func (h *UserHandler) ListUserMedia(c *gin.Context) {
	page, err := h.userService.ListUserMedia(c.Param("nickName"), pageRequest(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, newPageResponse(page, toMediaView))
}

// PUT /users/me/profile
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	claims, ok := mustClaims(c)
	if !ok {
		return
	}

	var req validation.ProfilePatch
	if !bindJSON(c, &req) {
		return
	}

	user, err := h.userService.UpdateProfile(claims.UserID, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, toUserView(user))
}

// PUT /users/me/privacy
func (h *UserHandler) UpdatePrivacy(c *gin.Context) {
	claims, ok := mustClaims(c)
	if !ok {
		return
	}

	var req validation.PrivacyInput
	if !bindJSON(c, &req) {
		return
	}

	user, err := h.userService.UpdatePrivacy(claims.UserID, models.Privacy(req.Privacy))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Privacy updated successfully",
		"privacy": user.Privacy,
	})
}

// PUT /users/me/avatar
func (h *UserHandler) UpdateAvatar(c *gin.Context) {
	claims, ok := mustClaims(c)
	if !ok {
		return
	}

	var req validation.AvatarInput
	if !bindJSON(c, &req) {
		return
	}

	user, err := h.userService.UpdateAvatar(claims.UserID, req.Avatar)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Avatar updated successfully",
		"avatar":  user.Avatar,
	})
}

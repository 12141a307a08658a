package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/Baaaki/screenshelf/internal/middleware"
	"github.com/Baaaki/screenshelf/internal/models"
	"github.com/Baaaki/screenshelf/internal/service"
	"github.com/Baaaki/screenshelf/internal/utils"
	"github.com/Baaaki/screenshelf/internal/validation"
	"github.com/Baaaki/screenshelf/pkg/logger"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// PageResponse is the envelope of every paginated list.
type PageResponse[T any] struct {
	Page       int   `json:"page"`
	PageSize   int   `json:"pageSize"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"totalPages"`
	Count      int   `json:"count"`
	Data       []T   `json:"data"`
}

func newPageResponse[M, V any](page *models.Page[M], view func(*M) V) PageResponse[V] {
	data := make([]V, len(page.Items))
	for i := range page.Items {
		data[i] = view(&page.Items[i])
	}
	return PageResponse[V]{
		Page:       page.Page,
		PageSize:   page.PageSize,
		Total:      page.Total,
		TotalPages: page.TotalPages(),
		Count:      len(data),
		Data:       data,
	}
}

// respondError maps a service error to its status code and body.
func respondError(c *gin.Context, err error) {
	var verr *validation.Error
	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, gin.H{"errors": verr.Fields})
	case service.IsNotFound(err):
		c.JSON(http.StatusNotFound, gin.H{"err": err.Error()})
	case service.IsConflict(err):
		c.JSON(http.StatusBadRequest, gin.H{"err": err.Error()})
	case errors.Is(err, service.ErrIncorrectPassword):
		c.JSON(http.StatusUnauthorized, gin.H{"err": err.Error()})
	case service.IsForbidden(err):
		c.JSON(http.StatusForbidden, gin.H{"err": err.Error()})
	default:
		logger.Log.Error("Unhandled request error",
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Error(err),
		)
		c.JSON(http.StatusInternalServerError, gin.H{"err": "Internal server error"})
	}
}

// bindJSON decodes the body into dst and validates it. On failure the
// response is already written.
func bindJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		logger.Log.Debug("Request body decoding failed",
			zap.String("path", c.FullPath()),
			zap.Error(err),
		)
		respondError(c, validation.FromDecodeError(err))
		return false
	}
	if err := validation.Struct(dst); err != nil {
		respondError(c, err)
		return false
	}
	return true
}

// uuidParam parses a path parameter. A malformed id cannot name an existing
// row, so it is reported as notFound.
func uuidParam(c *gin.Context, name string, notFound error) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		respondError(c, notFound)
		return uuid.Nil, false
	}
	return id, true
}

// pageRequest reads ?page= and ?pageSize=; bad values fall back to defaults.
func pageRequest(c *gin.Context) models.PageRequest {
	page, _ := strconv.Atoi(c.Query("page"))
	pageSize, _ := strconv.Atoi(c.Query("pageSize"))
	return models.NewPageRequest(page, pageSize)
}

// mustClaims returns the caller identity set by middleware.AuthMiddleware.
func mustClaims(c *gin.Context) (*utils.Claims, bool) {
	claims, ok := middleware.GetClaims(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"err": "No token provided"})
		return nil, false
	}
	return claims, true
}

package handler

import (
	"net/http"
	"strings"

	"github.com/Baaaki/screenshelf/internal/service"
	"github.com/Baaaki/screenshelf/internal/validation"
	"github.com/gin-gonic/gin"
)

type MediaHandler struct {
	mediaService   *service.MediaService
	rankingService *service.RankingService
}

func NewMediaHandler(mediaService *service.MediaService, rankingService *service.RankingService) *MediaHandler {
	return &MediaHandler{
		mediaService:   mediaService,
		rankingService: rankingService,
	}
}

// ListMedia pages all media with ?sort= and ?order=.
// GET /media
func (h *MediaHandler) ListMedia(c *gin.Context) {
	query := validation.MediaListQuery{
		Sort:  c.Query("sort"),
		Order: c.Query("order"),
	}
	if err := validation.Struct(&query); err != nil {
		respondError(c, err)
		return
	}

	page, err := h.mediaService.ListMedia(&query, pageRequest(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, newPageResponse(page, toMediaView))
}

// POST /media
func (h *MediaHandler) CreateMedia(c *gin.Context) {
	claims, ok := mustClaims(c)
	if !ok {
		return
	}

	var req validation.MediaInput
	if !bindJSON(c, &req) {
		return
	}

	media, err := h.mediaService.CreateMedia(claims, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, toMediaView(media))
}

// GET /media/:id
func (h *MediaHandler) GetMedia(c *gin.Context) {
	id, ok := uuidParam(c, "id", service.ErrMediaNotFound)
	if !ok {
		return
	}

	media, err := h.mediaService.GetMedia(id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, toMediaView(media))
}

// PUT /media/:id
func (h *MediaHandler) UpdateMedia(c *gin.Context) {
	claims, ok := mustClaims(c)
	if !ok {
		return
	}
	id, ok := uuidParam(c, "id", service.ErrMediaNotFound)
	if !ok {
		return
	}

	var req validation.MediaPatch
	if !bindJSON(c, &req) {
		return
	}

	media, err := h.mediaService.UpdateMedia(claims, id, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, toMediaView(media))
}

// DeleteMedia removes the media with its library entries and comments.
// DELETE /media/:id
func (h *MediaHandler) DeleteMedia(c *gin.Context) {
	claims, ok := mustClaims(c)
	if !ok {
		return
	}
	id, ok := uuidParam(c, "id", service.ErrMediaNotFound)
	if !ok {
		return
	}

	media, err := h.mediaService.DeleteMedia(claims, id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":      "Media deleted successfully",
		"deletedMedia": toMediaRef(media),
	})
}

// GET /media/search?title=
func (h *MediaHandler) SearchMedia(c *gin.Context) {
	title := strings.TrimSpace(c.Query("title"))
	if title == "" {
		respondError(c, validation.FieldError("title", "is required"))
		return
	}

	page, err := h.mediaService.SearchMedia(title, pageRequest(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, newPageResponse(page, toMediaView))
}

// GET /media/bycategory?category=
func (h *MediaHandler) ListByCategory(c *gin.Context) {
	category := strings.TrimSpace(c.Query("category"))
	if category == "" {
		respondError(c, validation.FieldError("category", "is required"))
		return
	}

	page, err := h.mediaService.ListByCategory(category, pageRequest(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, newPageResponse(page, toMediaView))
}

// GET /media/top/movies
func (h *MediaHandler) TopMovies(c *gin.Context) {
	ranked, err := h.rankingService.TopMovies()
	if err != nil {
		respondError(c, err)
		return
	}

	items := toRankedViews(ranked)
	c.JSON(http.StatusOK, gin.H{
		"category": "MOVIES",
		"count":    len(items),
		"top10":    items,
	})
}

// GET /media/top/series
func (h *MediaHandler) TopSeries(c *gin.Context) {
	ranked, err := h.rankingService.TopSeries()
	if err != nil {
		respondError(c, err)
		return
	}

	items := toRankedViews(ranked)
	c.JSON(http.StatusOK, gin.H{
		"category": "SERIES",
		"count":    len(items),
		"top10":    items,
	})
}

// GET /media/ranking
func (h *MediaHandler) GlobalRanking(c *gin.Context) {
	ranked, err := h.rankingService.GlobalRanking()
	if err != nil {
		respondError(c, err)
		return
	}

	items := toRankedViews(ranked)
	c.JSON(http.StatusOK, gin.H{
		"total": len(items),
		"data":  items,
	})
}

package handler

import (
	"net/http"

	"github.com/Baaaki/screenshelf/internal/repository"
	"github.com/Baaaki/screenshelf/internal/service"
	"github.com/Baaaki/screenshelf/internal/validation"
	"github.com/gin-gonic/gin"
)

// LibraryHandler serves the caller's own library. Every mutation uses the
// token's user id; there is no way to name another user's entry.
type LibraryHandler struct {
	libraryService *service.LibraryService
}

func NewLibraryHandler(libraryService *service.LibraryService) *LibraryHandler {
	return &LibraryHandler{
		libraryService: libraryService,
	}
}

// GET /library
func (h *LibraryHandler) ListLibrary(c *gin.Context) {
	h.list(c, repository.LibraryFilter{})
}

// GET /library/favorites
func (h *LibraryHandler) ListFavorites(c *gin.Context) {
	h.list(c, repository.LibraryFilter{FavoritesOnly: true})
}

// GET /library/watched
func (h *LibraryHandler) ListWatched(c *gin.Context) {
	h.list(c, repository.LibraryFilter{WatchedOnly: true})
}

func (h *LibraryHandler) list(c *gin.Context, filter repository.LibraryFilter) {
	claims, ok := mustClaims(c)
	if !ok {
		return
	}

	page, err := h.libraryService.ListLibrary(claims.UserID, filter, pageRequest(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, newPageResponse(page, toLibraryEntryView))
}

// GET /library/stats
func (h *LibraryHandler) Stats(c *gin.Context) {
	claims, ok := mustClaims(c)
	if !ok {
		return
	}

	stats, err := h.libraryService.Stats(claims.UserID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, stats)
}

// PublicLibrary lists another user's library without notes or schedule.
// GET /library/user/:nickName
func (h *LibraryHandler) PublicLibrary(c *gin.Context) {
	claims, ok := mustClaims(c)
	if !ok {
		return
	}

	owner, page, err := h.libraryService.PublicLibrary(claims, c.Param("nickName"), pageRequest(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user":    toUserRef(owner),
		"library": newPageResponse(page, toPublicLibraryEntryView),
	})
}

// GET /library/:mediaId
func (h *LibraryHandler) GetEntry(c *gin.Context) {
	claims, ok := mustClaims(c)
	if !ok {
		return
	}
	mediaID, ok := uuidParam(c, "mediaId", service.ErrLibraryEntryNotFound)
	if !ok {
		return
	}

	entry, err := h.libraryService.GetEntry(claims.UserID, mediaID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, toLibraryEntryView(entry))
}

// AddEntry adds media to the library; the body is optional.
// POST /library/:mediaId
func (h *LibraryHandler) AddEntry(c *gin.Context) {
	claims, ok := mustClaims(c)
	if !ok {
		return
	}
	mediaID, ok := uuidParam(c, "mediaId", service.ErrMediaNotFound)
	if !ok {
		return
	}

	var req validation.LibraryEntryPatch
	if c.Request.ContentLength != 0 {
		if !bindJSON(c, &req) {
			return
		}
	}

	entry, err := h.libraryService.AddToLibrary(claims.UserID, mediaID, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, toLibraryEntryView(entry))
}

// PUT /library/:mediaId
func (h *LibraryHandler) UpdateEntry(c *gin.Context) {
	claims, ok := mustClaims(c)
	if !ok {
		return
	}
	mediaID, ok := uuidParam(c, "mediaId", service.ErrLibraryEntryNotFound)
	if !ok {
		return
	}

	var req validation.LibraryEntryPatch
	if !bindJSON(c, &req) {
		return
	}

	entry, err := h.libraryService.UpdateEntry(claims.UserID, mediaID, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, toLibraryEntryView(entry))
}

// DELETE /library/:mediaId
func (h *LibraryHandler) RemoveEntry(c *gin.Context) {
	claims, ok := mustClaims(c)
	if !ok {
		return
	}
	mediaID, ok := uuidParam(c, "mediaId", service.ErrLibraryEntryNotFound)
	if !ok {
		return
	}

	if err := h.libraryService.RemoveFromLibrary(claims.UserID, mediaID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Media removed from library"})
}

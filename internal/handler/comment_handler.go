package handler

import (
	"net/http"

	"github.com/Baaaki/screenshelf/internal/service"
	"github.com/Baaaki/screenshelf/internal/validation"
	"github.com/gin-gonic/gin"
)

type CommentHandler struct {
	commentService *service.CommentService
}

func NewCommentHandler(commentService *service.CommentService) *CommentHandler {
	return &CommentHandler{
		commentService: commentService,
	}
}

// POST /media/:id/comments
func (h *CommentHandler) CreateComment(c *gin.Context) {
	claims, ok := mustClaims(c)
	if !ok {
		return
	}
	mediaID, ok := uuidParam(c, "id", service.ErrMediaNotFound)
	if !ok {
		return
	}

	var req validation.CommentInput
	if !bindJSON(c, &req) {
		return
	}

	comment, err := h.commentService.CreateComment(claims, mediaID, req.Content)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, toCommentView(comment))
}

// GET /media/:id/comments
func (h *CommentHandler) ListMediaComments(c *gin.Context) {
	mediaID, ok := uuidParam(c, "id", service.ErrMediaNotFound)
	if !ok {
		return
	}

	page, err := h.commentService.ListMediaComments(mediaID, pageRequest(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, newPageResponse(page, toCommentView))
}

// GET /comments/user/:nickName
func (h *CommentHandler) ListUserComments(c *gin.Context) {
	page, err := h.commentService.ListUserComments(c.Param("nickName"), pageRequest(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, newPageResponse(page, toCommentView))
}

// GET /comments/:commentId
func (h *CommentHandler) GetComment(c *gin.Context) {
	id, ok := uuidParam(c, "commentId", service.ErrCommentNotFound)
	if !ok {
		return
	}

	comment, err := h.commentService.GetComment(id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, toCommentView(comment))
}

// PUT /comments/:commentId
func (h *CommentHandler) UpdateComment(c *gin.Context) {
	claims, ok := mustClaims(c)
	if !ok {
		return
	}
	id, ok := uuidParam(c, "commentId", service.ErrCommentNotFound)
	if !ok {
		return
	}

	var req validation.CommentInput
	if !bindJSON(c, &req) {
		return
	}

	comment, err := h.commentService.UpdateComment(claims, id, req.Content)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, toCommentView(comment))
}

// DELETE /comments/:commentId
func (h *CommentHandler) DeleteComment(c *gin.Context) {
	claims, ok := mustClaims(c)
	if !ok {
		return
	}
	id, ok := uuidParam(c, "commentId", service.ErrCommentNotFound)
	if !ok {
		return
	}

	if err := h.commentService.DeleteComment(claims, id); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Comment deleted successfully"})
}

package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/nc-news-api/internal/models"
	"github.com/nc-news-api/internal/service"
	"github.com/nc-news-api/internal/validation"
	"github.com/rs/zerolog"
)

// CommentHandler handles comment endpoints
type CommentHandler struct {
	services *service.Services
	log      zerolog.Logger
}

// NewCommentHandler creates a new CommentHandler
func NewCommentHandler(services *service.Services, log zerolog.Logger) *CommentHandler {
	return &CommentHandler{
		services: services,
		log:      log.With().Str("handler", "comment").Logger(),
	}
}

// ListComments handles GET /api/articles/:article_id/comments
// Query params: sort_by, order, limit, page
func (h *CommentHandler) ListComments(c *gin.Context) {
	articleID, err := validation.ParseID(c.Param("article_id"))
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	page, err := h.services.Comment.ListForArticle(c.Request.Context(), articleID, listParams(c))
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"comments":    page.Items,
		"total_count": page.TotalCount,
	})
}

// CreateComment handles POST /api/articles/:article_id/comments
func (h *CommentHandler) CreateComment(c *gin.Context) {
	articleID, err := validation.ParseID(c.Param("article_id"))
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	var req models.NewComment
	if err := bindJSON(c, &req); err != nil {
		respondError(c, h.log, err)
		return
	}

	comment, err := h.services.Comment.Create(c.Request.Context(), articleID, &req)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"comment": comment})
}

// UpdateCommentVotes handles PATCH /api/comments/:comment_id
func (h *CommentHandler) UpdateCommentVotes(c *gin.Context) {
	id, err := validation.ParseID(c.Param("comment_id"))
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	var req models.VoteUpdate
	if err := bindJSON(c, &req); err != nil {
		respondError(c, h.log, err)
		return
	}

	comment, err := h.services.Comment.UpdateVotes(c.Request.Context(), id, &req)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"comment": comment})
}

// DeleteComment handles DELETE /api/comments/:comment_id
func (h *CommentHandler) DeleteComment(c *gin.Context) {
	id, err := validation.ParseID(c.Param("comment_id"))
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	if err := h.services.Comment.Delete(c.Request.Context(), id); err != nil {
		respondError(c, h.log, err)
		return
	}
	c.Status(http.StatusNoContent)
}

package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/nc-news-api/internal/models"
	"github.com/nc-news-api/internal/service"
	"github.com/nc-news-api/internal/validation"
	"github.com/rs/zerolog"
)

// ArticleHandler handles article endpoints
type ArticleHandler struct {
	services *service.Services
	log      zerolog.Logger
}

// NewArticleHandler creates a new ArticleHandler
func NewArticleHandler(services *service.Services, log zerolog.Logger) *ArticleHandler {
	return &ArticleHandler{
		services: services,
		log:      log.With().Str("handler", "article").Logger(),
	}
}

// ListArticles handles GET /api/articles
// Query params: topic, sort_by, order, limit, page
func (h *ArticleHandler) ListArticles(c *gin.Context) {
	page, err := h.services.Article.List(c.Request.Context(), listParams(c, "topic"))
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"articles":    page.Items,
		"total_count": page.TotalCount,
	})
}

// GetArticle handles GET /api/articles/:article_id
func (h *ArticleHandler) GetArticle(c *gin.Context) {
	id, err := validation.ParseID(c.Param("article_id"))
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	article, err := h.services.Article.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"article": article})
}

// CreateArticle handles POST /api/articles
func (h *ArticleHandler) CreateArticle(c *gin.Context) {
	var req models.NewArticle
	if err := bindJSON(c, &req); err != nil {
		respondError(c, h.log, err)
		return
	}

	article, err := h.services.Article.Create(c.Request.Context(), &req)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"article": article})
}

// UpdateArticleVotes handles PATCH /api/articles/:article_id
func (h *ArticleHandler) UpdateArticleVotes(c *gin.Context) {
	id, err := validation.ParseID(c.Param("article_id"))
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	var req models.VoteUpdate
	if err := bindJSON(c, &req); err != nil {
		respondError(c, h.log, err)
		return
	}

	article, err := h.services.Article.UpdateVotes(c.Request.Context(), id, &req)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"article": article})
}

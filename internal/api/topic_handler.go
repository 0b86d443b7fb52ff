package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/nc-news-api/internal/models"
	"github.com/nc-news-api/internal/service"
	"github.com/rs/zerolog"
)

// TopicHandler handles topic endpoints
type TopicHandler struct {
	services *service.Services
	log      zerolog.Logger
}

// NewTopicHandler creates a new TopicHandler
func NewTopicHandler(services *service.Services, log zerolog.Logger) *TopicHandler {
	return &TopicHandler{
		services: services,
		log:      log.With().Str("handler", "topic").Logger(),
	}
}

// ListTopics handles GET /api/topics
func (h *TopicHandler) ListTopics(c *gin.Context) {
	topics, err := h.services.Topic.List(c.Request.Context())
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"topics": topics})
}

// CreateTopic handles POST /api/topics
func (h *TopicHandler) CreateTopic(c *gin.Context) {
	var req models.NewTopic
	if err := bindJSON(c, &req); err != nil {
		respondError(c, h.log, err)
		return
	}

	topic, err := h.services.Topic.Create(c.Request.Context(), &req)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"topic": topic})
}

package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/nc-news-api/internal/config"
	"github.com/nc-news-api/internal/service"
	"github.com/rs/zerolog"
)

// NewRouter creates and configures the Gin router
func NewRouter(services *service.Services, cfg *config.Config, log zerolog.Logger) *gin.Engine {
	if gin.Mode() != gin.TestMode {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Middleware
	router.Use(requestIDMiddleware())
	router.Use(recoveryMiddleware(log))
	router.Use(loggingMiddleware(log))
	router.Use(corsMiddleware(cfg.API.CORSAllowOrigin))

	// Handlers
	topicHandler := NewTopicHandler(services, log)
	articleHandler := NewArticleHandler(services, log)
	commentHandler := NewCommentHandler(services, log)
	userHandler := NewUserHandler(services, log)

	// Health check
	router.GET("/health", healthCheck(services))
	router.GET("/metrics", metricsHandler(services, log))

	api := router.Group("/api")
	{
		api.GET("", getEndpoints)

		topics := api.Group("/topics")
		{
			topics.GET("", topicHandler.ListTopics)
			topics.POST("", topicHandler.CreateTopic)
		}

		articles := api.Group("/articles")
		{
			articles.GET("", articleHandler.ListArticles)
			articles.POST("", articleHandler.CreateArticle)
			articles.GET("/:article_id", articleHandler.GetArticle)
			articles.PATCH("/:article_id", articleHandler.UpdateArticleVotes)
			articles.GET("/:article_id/comments", commentHandler.ListComments)
			articles.POST("/:article_id/comments", commentHandler.CreateComment)
		}

		comments := api.Group("/comments")
		{
			comments.PATCH("/:comment_id", commentHandler.UpdateCommentVotes)
			comments.DELETE("/:comment_id", commentHandler.DeleteComment)
		}

		users := api.Group("/users")
		{
			users.GET("", userHandler.ListUsers)
			users.GET("/:username", userHandler.GetUser)
		}
	}

	router.NoRoute(endpointNotFound(log))

	return router
}

// healthCheck reports whether the database answers a ping
func healthCheck(services *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := contextWithTimeout(c, 2*time.Second)
		defer cancel()

		if err := services.Stats.Health(ctx); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":    "unhealthy",
				"error":     "database unreachable",
				"timestamp": time.Now().Format(time.RFC3339),
				"service":   "nc-news-api",
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status":    "healthy",
			"timestamp": time.Now().Format(time.RFC3339),
			"service":   "nc-news-api",
		})
	}
}

// metricsHandler returns row counts and connection pool statistics
func metricsHandler(services *service.Services, log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		counts, err := services.Stats.Counts(c.Request.Context())
		if err != nil {
			respondError(c, log, err)
			return
		}

		pool := services.Stats.PoolStats()
		c.JSON(http.StatusOK, gin.H{
			"database": counts,
			"pool": gin.H{
				"max_open":    pool.MaxOpenConnections,
				"open":        pool.OpenConnections,
				"in_use":      pool.InUse,
				"idle":        pool.Idle,
				"wait_count":  pool.WaitCount,
				"wait_millis": pool.WaitDuration.Milliseconds(),
			},
			"timestamp": time.Now().Format(time.RFC3339),
		})
	}
}

// contextWithTimeout creates a context with timeout for handlers
func contextWithTimeout(c *gin.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request.Context(), timeout)
}

package api

import (
	_ "embed"
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/nc-news-api/internal/apperr"
	"github.com/rs/zerolog"
)

//go:embed endpoints.json
var endpointsJSON []byte

// getEndpoints handles GET /api
func getEndpoints(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"endpoints": json.RawMessage(endpointsJSON)})
}

// endpointNotFound answers every unmatched route
func endpointNotFound(log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		respondError(c, log, apperr.ErrEndpointNotFound)
	}
}

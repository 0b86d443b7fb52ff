package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/nc-news-api/internal/apperr"
	"github.com/nc-news-api/internal/query"
	"github.com/nc-news-api/internal/validation"
	"github.com/rs/zerolog"
)

// respondError writes the error envelope for err. Classified errors carry
// their own status and message; anything else is logged and reported as a
// generic 500.
func respondError(c *gin.Context, log zerolog.Logger, err error) {
	appErr, ok := apperr.As(err)
	if !ok || !appErr.Public() {
		log.Error().
			Err(err).
			Str("request_id", c.GetString(requestIDKey)).
			Str("path", c.Request.URL.Path).
			Msg("Request failed")
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	body := gin.H{"error": appErr.Message}
	var details validation.Errors
	if errors.As(err, &details) {
		body["details"] = details
	}
	c.AbortWithStatusJSON(appErr.Status(), body)
}

// listParams reads sorting, paging and filter parameters from the query string
func listParams(c *gin.Context, filters ...string) query.Params {
	params := query.Params{
		SortBy: c.Query("sort_by"),
		Order:  c.Query("order"),
		Limit:  c.Query("limit"),
		Page:   c.Query("page"),
	}
	if len(filters) > 0 {
		params.Filters = make(map[string]string, len(filters))
		for _, name := range filters {
			params.Filters[name] = c.Query(name)
		}
	}
	return params
}

// bindJSON decodes the request body into obj. Malformed JSON or mistyped
// fields are a 400.
func bindJSON(c *gin.Context, obj interface{}) error {
	if err := c.ShouldBindJSON(obj); err != nil {
		return apperr.BadRequest(err)
	}
	return nil
}

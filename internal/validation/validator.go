package validation

import (
	"fmt"
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"github.com/nc-news-api/internal/apperr"
	"github.com/nc-news-api/internal/models"
)

var (
	slugRegex = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)
	idRegex   = regexp.MustCompile(`^\d+$`)
)

// ValidationError represents a single validation error
type ValidationError struct {
	Field   string      `json:"field"`
	Message string      `json:"message"`
	Value   interface{} `json:"value,omitempty"`
}

// Errors is a failed body validation. It is reported as a 400.
type Errors []ValidationError

func (e Errors) Error() string {
	parts := make([]string, 0, len(e))
	for _, v := range e {
		parts = append(parts, v.Field+": "+v.Message)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// AsError returns nil for an empty list and an apperr 400 otherwise
func (e Errors) AsError() error {
	if len(e) == 0 {
		return nil
	}
	return apperr.BadRequest(e)
}

// ParseID parses a surrogate key from a path segment. Anything that is not
// a plain digit string is a bad request.
func ParseID(raw string) (int64, error) {
	if !idRegex.MatchString(raw) {
		return 0, apperr.BadRequest(fmt.Errorf("invalid id %q", raw))
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, apperr.BadRequest(err)
	}
	return id, nil
}

// ValidateNewArticle validates an article creation request. A mistyped
// author is left to the caller, which reports it as an unknown user.
func ValidateNewArticle(article *models.NewArticle) Errors {
	if article.Mistyped.Has(models.NotAnObject) {
		return notAnObject()
	}

	var errors Errors

	errors = requireIdentity(errors, article.Mistyped, "author", article.Author)
	errors = requireText(errors, article.Mistyped, "title", article.Title)
	errors = requireText(errors, article.Mistyped, "body", article.Body)
	errors = requireText(errors, article.Mistyped, "topic", article.Topic)

	switch {
	case article.Mistyped.Has("article_img_url"):
		errors = append(errors, ValidationError{Field: "article_img_url", Message: "article_img_url must be a string"})
	case article.ArticleImgURL != nil && !isHTTPURL(*article.ArticleImgURL):
		errors = append(errors, ValidationError{Field: "article_img_url", Message: "must be an absolute http(s) URL", Value: *article.ArticleImgURL})
	}

	return errors
}

// ValidateNewComment validates a comment creation request. A mistyped
// username is left to the caller, as for articles.
func ValidateNewComment(comment *models.NewComment) Errors {
	if comment.Mistyped.Has(models.NotAnObject) {
		return notAnObject()
	}

	var errors Errors

	errors = requireIdentity(errors, comment.Mistyped, "username", comment.Username)

	switch {
	case comment.Mistyped.Has("body"):
		errors = append(errors, ValidationError{Field: "body", Message: "body must be a string"})
	case comment.Body == nil || strings.TrimSpace(*comment.Body) == "":
		errors = append(errors, ValidationError{Field: "body", Message: "body is required"})
	default:
		wordCount := len(strings.Fields(*comment.Body))
		if wordCount > models.MaxCommentWords {
			errors = append(errors, ValidationError{
				Field:   "body",
				Message: fmt.Sprintf("body exceeds maximum of %d words (has %d)", models.MaxCommentWords, wordCount),
			})
		}
	}

	return errors
}

// ValidateNewTopic validates a topic creation request
func ValidateNewTopic(topic *models.NewTopic) Errors {
	var errors Errors

	if topic.Slug == nil || *topic.Slug == "" {
		errors = append(errors, ValidationError{Field: "slug", Message: "slug is required"})
	} else if !slugRegex.MatchString(*topic.Slug) {
		errors = append(errors, ValidationError{Field: "slug", Message: "slug must be kebab-case (lowercase letters, numbers, hyphens)", Value: *topic.Slug})
	}

	errors = requireText(errors, nil, "description", topic.Description)

	return errors
}

// ValidateVoteUpdate validates a PATCH body carrying inc_votes
func ValidateVoteUpdate(update *models.VoteUpdate) Errors {
	switch {
	case update.Mistyped.Has(models.NotAnObject):
		return notAnObject()
	case update.Mistyped.Has("inc_votes"):
		return Errors{{Field: "inc_votes", Message: "inc_votes must be an integer"}}
	case update.IncVotes == nil:
		return Errors{{Field: "inc_votes", Message: "inc_votes is required"}}
	}
	return nil
}

func requireText(errors Errors, mistyped models.Mistyped, field string, value *string) Errors {
	if mistyped.Has(field) {
		return append(errors, ValidationError{Field: field, Message: field + " must be a string"})
	}
	if value == nil || strings.TrimSpace(*value) == "" {
		return append(errors, ValidationError{Field: field, Message: field + " is required"})
	}
	return errors
}

func requireIdentity(errors Errors, mistyped models.Mistyped, field string, value *string) Errors {
	if mistyped.Has(field) {
		return errors
	}
	return requireText(errors, nil, field, value)
}

func notAnObject() Errors {
	return Errors{{Field: models.NotAnObject, Message: "request body must be a JSON object"}}
}

func isHTTPURL(s string) bool {
	u, err := url.Parse(s)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

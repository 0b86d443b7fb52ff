package models

import (
	"time"
)

// Comment represents a comment on an article
type Comment struct {
	CommentID int64     `json:"comment_id" db:"comment_id"`
	ArticleID int64     `json:"article_id" db:"article_id"`
	Author    string    `json:"author" db:"author"`
	Body      string    `json:"body" db:"body"`
	Votes     int       `json:"votes" db:"votes"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// NewComment is the request body for POST /api/articles/:article_id/comments
type NewComment struct {
	Username *string  `json:"username"`
	Body     *string  `json:"body"`
	Mistyped Mistyped `json:"-"`
}

// UnmarshalJSON never fails on member types; see Mistyped.
func (c *NewComment) UnmarshalJSON(data []byte) error {
	c.Mistyped = decodeMembers(data, map[string]interface{}{
		"username": &c.Username,
		"body":     &c.Body,
	})
	return nil
}

// MaxCommentWords is the maximum allowed words in a comment body
const MaxCommentWords = 500

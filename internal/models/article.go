package models

import (
	"time"
)

// DefaultArticleImgURL is stored when a new article omits article_img_url
const DefaultArticleImgURL = "https://images.pexels.com/photos/97050/pexels-photo-97050.jpeg?w=700&h=700"

// Article represents an article in the system
type Article struct {
	ArticleID     int64     `json:"article_id" db:"article_id"`
	Author        string    `json:"author" db:"author"`
	Title         string    `json:"title" db:"title"`
	Body          string    `json:"body,omitempty" db:"body"` // omitted from list rows
	Topic         string    `json:"topic" db:"topic"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
	Votes         int       `json:"votes" db:"votes"`
	ArticleImgURL *string   `json:"article_img_url" db:"article_img_url"`
	CommentCount  int       `json:"comment_count" db:"-"` // derived from comments
}

// NewArticle is the request body for POST /api/articles
type NewArticle struct {
	Author        *string  `json:"author"`
	Title         *string  `json:"title"`
	Body          *string  `json:"body"`
	Topic         *string  `json:"topic"`
	ArticleImgURL *string  `json:"article_img_url,omitempty"`
	Mistyped      Mistyped `json:"-"`
}

func (a *NewArticle) UnmarshalJSON(data []byte) error {
	a.Mistyped = decodeMembers(data, map[string]interface{}{
		"author":          &a.Author,
		"title":           &a.Title,
		"body":            &a.Body,
		"topic":           &a.Topic,
		"article_img_url": &a.ArticleImgURL,
	})
	return nil
}

// VoteUpdate is the request body for PATCH on articles and comments
type VoteUpdate struct {
	IncVotes *int     `json:"inc_votes"`
	Mistyped Mistyped `json:"-"`
}

func (v *VoteUpdate) UnmarshalJSON(data []byte) error {
	v.Mistyped = decodeMembers(data, map[string]interface{}{
		"inc_votes": &v.IncVotes,
	})
	return nil
}

package models

// Topic is a category articles are filed under
type Topic struct {
	Slug        string `json:"slug" db:"slug"`
	Description string `json:"description" db:"description"`
}

// NewTopic is the request body for POST /api/topics
type NewTopic struct {
	Slug        *string `json:"slug"`
	Description *string `json:"description"`
}

package models

// RefKind names the resource a Ref points at
type RefKind int

const (
	RefUser RefKind = iota + 1
	RefArticle
	RefComment
	RefTopic
)

// Ref identifies exactly one stored entity by its key.
// The zero value identifies nothing and is rejected by the existence check.
type Ref struct {
	Kind RefKind
	Key  interface{}
}

// UserRef identifies a user by username
func UserRef(username string) Ref { return Ref{Kind: RefUser, Key: username} }

// ArticleRef identifies an article by id
func ArticleRef(id int64) Ref { return Ref{Kind: RefArticle, Key: id} }

// CommentRef identifies a comment by id
func CommentRef(id int64) Ref { return Ref{Kind: RefComment, Key: id} }

// TopicRef identifies a topic by slug
func TopicRef(slug string) Ref { return Ref{Kind: RefTopic, Key: slug} }

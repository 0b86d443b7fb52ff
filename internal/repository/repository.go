package repository

import (
	"context"
	"database/sql"

	"github.com/nc-news-api/internal/database"
	"github.com/nc-news-api/internal/models"
	"github.com/nc-news-api/internal/query"
)

// TopicRepository defines the interface for topic data operations
type TopicRepository interface {
	List(ctx context.Context) ([]models.Topic, error)
	Create(ctx context.Context, topic *models.Topic) (*models.Topic, error)
	BatchInsert(ctx context.Context, topics []*models.Topic) (int, error)
	Count(ctx context.Context) (int, error)
}

// UserRepository defines the interface for user data operations
type UserRepository interface {
	List(ctx context.Context) ([]models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	BatchInsert(ctx context.Context, users []*models.User) (int, error)
	Count(ctx context.Context) (int, error)
}

// ArticleRepository defines the interface for article data operations.
// List returns the page rows and the window count of the filtered set.
type ArticleRepository interface {
	List(ctx context.Context, q *query.PageQuery) ([]models.Article, int, error)
	GetByID(ctx context.Context, id int64) (*models.Article, error)
	Create(ctx context.Context, article *models.Article) (*models.Article, error)
	IncrementVotes(ctx context.Context, id int64, delta int) (*models.Article, error)
	Count(ctx context.Context) (int, error)
}

// CommentRepository defines the interface for comment data operations
type CommentRepository interface {
	ListByArticle(ctx context.Context, articleID int64, q *query.PageQuery) ([]models.Comment, int, error)
	Create(ctx context.Context, comment *models.Comment) (*models.Comment, error)
	IncrementVotes(ctx context.Context, id int64, delta int) (*models.Comment, error)
	Delete(ctx context.Context, id int64) (bool, error)
	BatchInsert(ctx context.Context, comments []*models.Comment) (int, error)
	Count(ctx context.Context) (int, error)
}

// ExistenceChecker confirms that a referenced row exists
type ExistenceChecker interface {
	Exists(ctx context.Context, ref models.Ref) error
}

// HealthChecker exposes connection health and pool statistics
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
	Stats() sql.DBStats
}

// Repositories holds all repository interfaces
type Repositories struct {
	Topic     TopicRepository
	User      UserRepository
	Article   ArticleRepository
	Comment   CommentRepository
	Existence ExistenceChecker
	Health    HealthChecker
}

// New creates all repositories with the given database connection
func New(db *database.DB) *Repositories {
	return &Repositories{
		Topic:     NewTopicRepo(db),
		User:      NewUserRepo(db),
		Article:   NewArticleRepo(db),
		Comment:   NewCommentRepo(db),
		Existence: NewExistenceRepo(db),
		Health:    db,
	}
}

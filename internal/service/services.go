package service

import (
	"context"
	"database/sql"

	"github.com/nc-news-api/internal/config"
	"github.com/nc-news-api/internal/models"
	"github.com/nc-news-api/internal/query"
	"github.com/nc-news-api/internal/repository"
	"github.com/rs/zerolog"
)

// TopicService defines the interface for topic operations
type TopicService interface {
	List(ctx context.Context) ([]models.Topic, error)
	Create(ctx context.Context, req *models.NewTopic) (*models.Topic, error)
}

// ArticleService defines the interface for article operations
type ArticleService interface {
	List(ctx context.Context, params query.Params) (*query.Page[models.Article], error)
	Get(ctx context.Context, id int64) (*models.Article, error)
	Create(ctx context.Context, req *models.NewArticle) (*models.Article, error)
	UpdateVotes(ctx context.Context, id int64, update *models.VoteUpdate) (*models.Article, error)
}

// CommentService defines the interface for comment operations
type CommentService interface {
	ListForArticle(ctx context.Context, articleID int64, params query.Params) (*query.Page[models.Comment], error)
	Create(ctx context.Context, articleID int64, req *models.NewComment) (*models.Comment, error)
	UpdateVotes(ctx context.Context, id int64, update *models.VoteUpdate) (*models.Comment, error)
	Delete(ctx context.Context, id int64) error
}

// UserService defines the interface for user operations
type UserService interface {
	List(ctx context.Context) ([]models.User, error)
	Get(ctx context.Context, username string) (*models.User, error)
}

// StatsService reports database health and table sizes
type StatsService interface {
	Health(ctx context.Context) error
	Counts(ctx context.Context) (*Counts, error)
	PoolStats() sql.DBStats
}

// Services holds all service interfaces
type Services struct {
	Topic   TopicService
	Article ArticleService
	Comment CommentService
	User    UserService
	Stats   StatsService
}

// NewServices creates all services
func NewServices(repos *repository.Repositories, cfg *config.Config, log zerolog.Logger) *Services {
	articleRules := repository.ArticleListRules
	articleRules.DefaultLimit = cfg.API.DefaultLimit
	commentRules := repository.CommentListRules
	commentRules.DefaultLimit = cfg.API.DefaultLimit

	return &Services{
		Topic:   newTopicService(repos, log),
		Article: newArticleService(repos, articleRules, log),
		Comment: newCommentService(repos, commentRules, log),
		User:    newUserService(repos, log),
		Stats:   newStatsService(repos, log),
	}
}

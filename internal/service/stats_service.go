package service

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/nc-news-api/internal/repository"
	"github.com/rs/zerolog"
)

// Counts holds the number of rows per table
type Counts struct {
	Topics   int `json:"topics"`
	Users    int `json:"users"`
	Articles int `json:"articles"`
	Comments int `json:"comments"`
}

type statsService struct {
	repos *repository.Repositories
	log   zerolog.Logger
}

func newStatsService(repos *repository.Repositories, log zerolog.Logger) *statsService {
	return &statsService{
		repos: repos,
		log:   log.With().Str("service", "stats").Logger(),
	}
}

func (s *statsService) Health(ctx context.Context) error {
	return s.repos.Health.HealthCheck(ctx)
}

func (s *statsService) PoolStats() sql.DBStats {
	return s.repos.Health.Stats()
}

func (s *statsService) Counts(ctx context.Context) (*Counts, error) {
	var (
		counts Counts
		err    error
	)

	if counts.Topics, err = s.repos.Topic.Count(ctx); err != nil {
		return nil, fmt.Errorf("failed to count topics: %w", err)
	}
	if counts.Users, err = s.repos.User.Count(ctx); err != nil {
		return nil, fmt.Errorf("failed to count users: %w", err)
	}
	if counts.Articles, err = s.repos.Article.Count(ctx); err != nil {
		return nil, fmt.Errorf("failed to count articles: %w", err)
	}
	if counts.Comments, err = s.repos.Comment.Count(ctx); err != nil {
		return nil, fmt.Errorf("failed to count comments: %w", err)
	}

	return &counts, nil
}

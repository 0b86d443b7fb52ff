package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/nc-news-api/internal/apperr"
	"github.com/nc-news-api/internal/models"
	"github.com/nc-news-api/internal/repository"
	"github.com/nc-news-api/internal/validation"
	"github.com/rs/zerolog"
)

// topicService is the concrete implementation of TopicService
type topicService struct {
	topics repository.TopicRepository
	log    zerolog.Logger
}

func newTopicService(repos *repository.Repositories, log zerolog.Logger) *topicService {
	return &topicService{
		topics: repos.Topic,
		log:    log.With().Str("service", "topic").Logger(),
	}
}

// List returns every topic
func (s *topicService) List(ctx context.Context) ([]models.Topic, error) {
	topics, err := s.topics.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list topics: %w", err)
	}
	return topics, nil
}

// Create inserts a topic. A duplicate slug is reported as ErrTopicAlreadyExists.
func (s *topicService) Create(ctx context.Context, req *models.NewTopic) (*models.Topic, error) {
	if err := validation.ValidateNewTopic(req).AsError(); err != nil {
		return nil, err
	}

	topic, err := s.topics.Create(ctx, &models.Topic{Slug: *req.Slug, Description: *req.Description})
	switch {
	case errors.Is(err, repository.ErrUniqueViolation):
		return nil, apperr.ErrTopicAlreadyExists
	case errors.Is(err, repository.ErrInvalidInput):
		return nil, apperr.BadRequest(err)
	case err != nil:
		return nil, fmt.Errorf("failed to create topic: %w", err)
	}

	s.log.Info().Str("slug", topic.Slug).Msg("Topic created")
	return topic, nil
}

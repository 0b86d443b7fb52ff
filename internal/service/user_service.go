package service

import (
	"context"
	"fmt"

	"github.com/nc-news-api/internal/apperr"
	"github.com/nc-news-api/internal/models"
	"github.com/nc-news-api/internal/repository"
	"github.com/rs/zerolog"
)

// userService is the concrete implementation of UserService
type userService struct {
	users     repository.UserRepository
	existence repository.ExistenceChecker
	log       zerolog.Logger
}

func newUserService(repos *repository.Repositories, log zerolog.Logger) *userService {
	return &userService{
		users:     repos.User,
		existence: repos.Existence,
		log:       log.With().Str("service", "user").Logger(),
	}
}

func (s *userService) List(ctx context.Context) ([]models.User, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

func (s *userService) Get(ctx context.Context, username string) (*models.User, error) {
	if err := s.existence.Exists(ctx, models.UserRef(username)); err != nil {
		return nil, err
	}

	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("failed to get user %s: %w", username, err)
	}
	if user == nil {
		return nil, apperr.NotFound("Username")
	}
	return user, nil
}

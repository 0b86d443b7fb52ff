package service

import (
	"context"
	"fmt"

	"github.com/nc-news-api/internal/apperr"
	"github.com/nc-news-api/internal/models"
	"github.com/nc-news-api/internal/query"
	"github.com/nc-news-api/internal/repository"
	"github.com/nc-news-api/internal/validation"
	"github.com/rs/zerolog"
)

// articleService is the concrete implementation of ArticleService
type articleService struct {
	articles  repository.ArticleRepository
	existence repository.ExistenceChecker
	rules     query.Rules
	log       zerolog.Logger
}

func newArticleService(repos *repository.Repositories, rules query.Rules, log zerolog.Logger) *articleService {
	return &articleService{
		articles:  repos.Article,
		existence: repos.Existence,
		rules:     rules,
		log:       log.With().Str("service", "article").Logger(),
	}
}

// List returns one page of articles. Query shape is validated before the
// topic filter is checked for existence, and both before the listing.
func (s *articleService) List(ctx context.Context, params query.Params) (*query.Page[models.Article], error) {
	q, err := query.Build(params, s.rules)
	if err != nil {
		return nil, err
	}

	if topic, ok := q.Filter("topic"); ok {
		if err := s.existence.Exists(ctx, models.TopicRef(topic)); err != nil {
			return nil, err
		}
	}

	articles, total, err := s.articles.List(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("failed to list articles: %w", err)
	}

	return query.NewPage(articles, total, q)
}

// Get returns a single article with its comment count
func (s *articleService) Get(ctx context.Context, id int64) (*models.Article, error) {
	if err := s.existence.Exists(ctx, models.ArticleRef(id)); err != nil {
		return nil, err
	}

	article, err := s.articles.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get article %d: %w", id, err)
	}
	if article == nil {
		return nil, apperr.NotFound("Article")
	}
	return article, nil
}

// Create inserts an article after confirming its topic exists. An unknown
// or non-string author is reported as ErrUnableToIdentifyUser.
func (s *articleService) Create(ctx context.Context, req *models.NewArticle) (*models.Article, error) {
	if err := validation.ValidateNewArticle(req).AsError(); err != nil {
		return nil, err
	}

	if err := s.existence.Exists(ctx, models.TopicRef(*req.Topic)); err != nil {
		return nil, err
	}
	if req.Mistyped.Has("author") {
		return nil, apperr.ErrUnableToIdentifyUser
	}

	imgURL := models.DefaultArticleImgURL
	if req.ArticleImgURL != nil {
		imgURL = *req.ArticleImgURL
	}

	article, err := s.articles.Create(ctx, &models.Article{
		Author:        *req.Author,
		Title:         *req.Title,
		Body:          *req.Body,
		Topic:         *req.Topic,
		ArticleImgURL: &imgURL,
	})
	if err != nil {
		return nil, classifyWrite(err, "Topic", "create article")
	}

	s.log.Info().Int64("article_id", article.ArticleID).Str("author", article.Author).Msg("Article created")
	return article, nil
}

// UpdateVotes adds inc_votes to the article's vote total in one statement
func (s *articleService) UpdateVotes(ctx context.Context, id int64, update *models.VoteUpdate) (*models.Article, error) {
	if err := s.existence.Exists(ctx, models.ArticleRef(id)); err != nil {
		return nil, err
	}

	if err := validation.ValidateVoteUpdate(update).AsError(); err != nil {
		return nil, err
	}

	article, err := s.articles.IncrementVotes(ctx, id, *update.IncVotes)
	if err != nil {
		return nil, classifyWrite(err, "Article", fmt.Sprintf("update votes on article %d", id))
	}
	if article == nil {
		return nil, apperr.NotFound("Article")
	}
	return article, nil
}

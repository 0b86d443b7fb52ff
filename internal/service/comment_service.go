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

// commentService is the concrete implementation of CommentService
type commentService struct {
	comments  repository.CommentRepository
	existence repository.ExistenceChecker
	rules     query.Rules
	log       zerolog.Logger
}

func newCommentService(repos *repository.Repositories, rules query.Rules, log zerolog.Logger) *commentService {
	return &commentService{
		comments:  repos.Comment,
		existence: repos.Existence,
		rules:     rules,
		log:       log.With().Str("service", "comment").Logger(),
	}
}

// ListForArticle returns one page of an article's comments. An article with
// no comments yields an empty first page rather than a 404.
func (s *commentService) ListForArticle(ctx context.Context, articleID int64, params query.Params) (*query.Page[models.Comment], error) {
	q, err := query.Build(params, s.rules)
	if err != nil {
		return nil, err
	}

	if err := s.existence.Exists(ctx, models.ArticleRef(articleID)); err != nil {
		return nil, err
	}

	comments, total, err := s.comments.ListByArticle(ctx, articleID, q)
	if err != nil {
		return nil, fmt.Errorf("failed to list comments for article %d: %w", articleID, err)
	}

	return query.NewPage(comments, total, q)
}

// Create posts a comment on an existing article. The article is checked
// before the body, so a missing article is a 404 whatever was sent.
func (s *commentService) Create(ctx context.Context, articleID int64, req *models.NewComment) (*models.Comment, error) {
	if err := s.existence.Exists(ctx, models.ArticleRef(articleID)); err != nil {
		return nil, err
	}

	if err := validation.ValidateNewComment(req).AsError(); err != nil {
		return nil, err
	}
	if req.Mistyped.Has("username") {
		return nil, apperr.ErrUnableToIdentifyUser
	}

	comment, err := s.comments.Create(ctx, &models.Comment{
		ArticleID: articleID,
		Author:    *req.Username,
		Body:      *req.Body,
	})
	if err != nil {
		return nil, classifyWrite(err, "Article", "create comment")
	}

	s.log.Info().
		Int64("comment_id", comment.CommentID).
		Int64("article_id", articleID).
		Str("author", comment.Author).
		Msg("Comment created")
	return comment, nil
}

// UpdateVotes adds inc_votes to the comment's vote total in one statement
func (s *commentService) UpdateVotes(ctx context.Context, id int64, update *models.VoteUpdate) (*models.Comment, error) {
	if err := s.existence.Exists(ctx, models.CommentRef(id)); err != nil {
		return nil, err
	}

	if err := validation.ValidateVoteUpdate(update).AsError(); err != nil {
		return nil, err
	}

	comment, err := s.comments.IncrementVotes(ctx, id, *update.IncVotes)
	if err != nil {
		return nil, classifyWrite(err, "Comment", fmt.Sprintf("update votes on comment %d", id))
	}
	if comment == nil {
		return nil, apperr.NotFound("Comment")
	}
	return comment, nil
}

// Delete removes a comment
func (s *commentService) Delete(ctx context.Context, id int64) error {
	if err := s.existence.Exists(ctx, models.CommentRef(id)); err != nil {
		return err
	}

	deleted, err := s.comments.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to delete comment %d: %w", id, err)
	}
	if !deleted {
		return apperr.NotFound("Comment")
	}

	s.log.Info().Int64("comment_id", id).Msg("Comment deleted")
	return nil
}

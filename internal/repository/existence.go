package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/nc-news-api/internal/apperr"
	"github.com/nc-news-api/internal/database"
	"github.com/nc-news-api/internal/models"
)

// Target is where a reference kind is looked up
type Target struct {
	Table  string
	Column string
	Label  string
}

var targets = map[models.RefKind]Target{
	models.RefUser:    {Table: "users", Column: "username", Label: "Username"},
	models.RefArticle: {Table: "articles", Column: "article_id", Label: "Article"},
	models.RefComment: {Table: "comments", Column: "comment_id", Label: "Comment"},
	models.RefTopic:   {Table: "topics", Column: "slug", Label: "Topic"},
}

// ResolveRef returns the lookup target for ref. A ref without a known kind
// or with a missing or mistyped key is a caller bug and yields apperr.Contract.
func ResolveRef(ref models.Ref) (Target, error) {
	target, ok := targets[ref.Kind]
	if !ok {
		return Target{}, apperr.Contract("reference has no recognised kind (%d)", ref.Kind)
	}

	switch ref.Kind {
	case models.RefArticle, models.RefComment:
		if _, ok := ref.Key.(int64); !ok {
			return Target{}, apperr.Contract("%s reference needs an int64 key, got %T", target.Label, ref.Key)
		}
	default:
		key, ok := ref.Key.(string)
		if !ok || key == "" {
			return Target{}, apperr.Contract("%s reference needs a non-empty string key, got %#v", target.Label, ref.Key)
		}
	}

	return target, nil
}

// existenceRepo is the concrete implementation of ExistenceChecker
type existenceRepo struct {
	db *database.DB
}

// NewExistenceRepo creates a new existence checker
func NewExistenceRepo(db *database.DB) ExistenceChecker {
	return &existenceRepo{db: db}
}

// Exists resolves to nil when the referenced row is present and to
// apperr.NotFound(label) when it is not.
func (r *existenceRepo) Exists(ctx context.Context, ref models.Ref) error {
	target, err := ResolveRef(ref)
	if err != nil {
		return err
	}

	// table and column come from the fixed targets map, never from input
	query := fmt.Sprintf("SELECT EXISTS(SELECT 1 FROM %s WHERE %s = $1)", target.Table, target.Column)

	var exists bool
	if err := r.db.QueryRowContext(ctx, query, ref.Key).Scan(&exists); err != nil {
		err = classify(err)
		if errors.Is(err, ErrInvalidInput) {
			return apperr.BadRequest(err)
		}
		return fmt.Errorf("checking %s existence: %w", target.Label, err)
	}

	if !exists {
		return apperr.NotFound(target.Label)
	}
	return nil
}

package repository

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/lib/pq"
	"github.com/nc-news-api/internal/apperr"
	"github.com/nc-news-api/internal/models"
	"github.com/nc-news-api/internal/query"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveRef(t *testing.T) {
	tests := []struct {
		name      string
		ref       models.Ref
		wantLabel string
		wantTable string
	}{
		{"username", models.UserRef("butter_bridge"), "Username", "users"},
		{"article", models.ArticleRef(1), "Article", "articles"},
		{"comment", models.CommentRef(5), "Comment", "comments"},
		{"topic", models.TopicRef("mitch"), "Topic", "topics"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			target, err := ResolveRef(tt.ref)
			require.NoError(t, err)
			assert.Equal(t, tt.wantLabel, target.Label)
			assert.Equal(t, tt.wantTable, target.Table)
		})
	}
}

func TestResolveRef_ContractViolations(t *testing.T) {
	tests := []struct {
		name string
		ref  models.Ref
	}{
		{"zero value", models.Ref{}},
		{"unknown kind", models.Ref{Kind: 42, Key: "x"}},
		{"article with string key", models.Ref{Kind: models.RefArticle, Key: "1"}},
		{"comment with int key", models.Ref{Kind: models.RefComment, Key: 1}},
		{"user without key", models.Ref{Kind: models.RefUser}},
		{"topic with empty key", models.TopicRef("")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ResolveRef(tt.ref)
			appErr, ok := apperr.As(err)
			require.True(t, ok, "expected apperr, got %v", err)
			assert.Equal(t, apperr.KindContract, appErr.Kind)
			assert.False(t, apperr.IsNotFound(err))
		})
	}
}

func TestExists_ContractViolationSkipsStore(t *testing.T) {
	// a nil database would panic if the lookup reached it
	checker := NewExistenceRepo(nil)

	err := checker.Exists(context.Background(), models.Ref{})
	appErr, ok := apperr.As(err)
	require.True(t, ok)
	assert.Equal(t, apperr.KindContract, appErr.Kind)
}

func TestClassify(t *testing.T) {
	tests := []struct {
		code string
		want error
	}{
		{"23503", ErrForeignKeyViolation},
		{"23505", ErrUniqueViolation},
		{"22P02", ErrInvalidInput},
		{"22003", ErrInvalidInput},
		{"23502", ErrInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			pqErr := &pq.Error{Code: pq.ErrorCode(tt.code), Constraint: "comments_author_fkey"}
			err := classify(fmt.Errorf("insert: %w", pqErr))

			assert.ErrorIs(t, err, tt.want)

			var unwrapped *pq.Error
			require.True(t, errors.As(err, &unwrapped), "driver error should stay in the chain")
			assert.Equal(t, "comments_author_fkey", ViolatedConstraint(err))
		})
	}
}

func TestClassify_PassesThroughOtherErrors(t *testing.T) {
	plain := errors.New("connection reset")
	assert.Same(t, plain, classify(plain))

	deadlock := &pq.Error{Code: "40P01"}
	assert.Equal(t, error(deadlock), classify(deadlock))
	assert.Equal(t, "", ViolatedConstraint(plain))
}

func TestWhereClause(t *testing.T) {
	clause, args := whereClause(nil, nil)
	assert.Equal(t, "", clause)
	assert.Empty(t, args)

	clause, args = whereClause([]query.Filter{
		{Name: "topic", Column: "a.topic", Value: "mitch"},
		{Name: "author", Column: "a.author", Value: "rogersop"},
	}, []interface{}{int64(1)})
	assert.Equal(t, " WHERE a.topic = $2 AND a.author = $3", clause)
	assert.Equal(t, []interface{}{int64(1), "mitch", "rogersop"}, args)
}

func TestPageClause(t *testing.T) {
	q, err := query.Build(query.Params{SortBy: "votes", Order: "asc", Limit: "5", Page: "3"}, ArticleListRules)
	require.NoError(t, err)

	clause, args := pageClause(q, []interface{}{"mitch"})
	assert.Equal(t, " ORDER BY a.votes ASC, a.article_id ASC LIMIT $2 OFFSET $3", clause)
	assert.Equal(t, []interface{}{"mitch", 5, 10}, args)
}

func TestPageClause_NoDuplicateTieBreaker(t *testing.T) {
	q, err := query.Build(query.Params{SortBy: "comment_id"}, CommentListRules)
	require.NoError(t, err)

	clause, _ := pageClause(q, nil)
	assert.Equal(t, " ORDER BY comment_id DESC LIMIT $1 OFFSET $2", clause)
}

func TestListRulesRejectUnknownColumns(t *testing.T) {
	_, err := query.Build(query.Params{SortBy: "body"}, ArticleListRules)
	assert.ErrorIs(t, err, apperr.ErrInvalidQuery)

	_, err = query.Build(query.Params{SortBy: "comment_count"}, CommentListRules)
	assert.ErrorIs(t, err, apperr.ErrInvalidQuery)
}

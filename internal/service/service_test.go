package service_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/nc-news-api/internal/apperr"
	"github.com/nc-news-api/internal/config"
	"github.com/nc-news-api/internal/mocks"
	"github.com/nc-news-api/internal/models"
	"github.com/nc-news-api/internal/query"
	"github.com/nc-news-api/internal/service"
	"github.com/nc-news-api/internal/validation"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var base = time.Date(2020, time.January, 1, 0, 0, 0, 0, time.UTC)

func strPtr(s string) *string { return &s }

func intPtr(i int) *int { return &i }

// newFixture returns services over a store holding two topics, three users,
// four mitch articles and one cats article. Article 1 has two comments.
func newFixture(t *testing.T) (*service.Services, *mocks.MockStore) {
	t.Helper()

	store := mocks.NewMockStore()
	store.AddTopic("mitch", "The man, the Mitch, the legend")
	store.AddTopic("cats", "Not dogs")
	store.AddTopic("paper", "what books are made of")
	store.AddUser("butter_bridge", "jonny")
	store.AddUser("icellusedkars", "sam")
	store.AddUser("lurker", "do_nothing")

	for i := 0; i < 4; i++ {
		store.AddArticle(models.Article{
			Author:    "butter_bridge",
			Title:     fmt.Sprintf("Mitch article %d", i+1),
			Body:      "body",
			Topic:     "mitch",
			CreatedAt: base.Add(time.Duration(i) * time.Hour),
			Votes:     i * 10,
		})
	}
	store.AddArticle(models.Article{
		Author:    "icellusedkars",
		Title:     "UNCOVERED: catspiracy to bring down democracy",
		Body:      "Bastet walks amongst us",
		Topic:     "cats",
		CreatedAt: base.Add(-time.Hour),
	})

	store.AddComment(models.Comment{ArticleID: 1, Author: "icellusedkars", Body: "first", CreatedAt: base, Votes: 3})
	store.AddComment(models.Comment{ArticleID: 1, Author: "butter_bridge", Body: "second", CreatedAt: base.Add(time.Minute), Votes: 1})

	cfg := &config.Config{API: config.APIConfig{DefaultLimit: 10}}
	return service.NewServices(store.Repositories(), cfg, zerolog.Nop()), store
}

func TestArticleService_ListDefaults(t *testing.T) {
	svc, _ := newFixture(t)

	page, err := svc.Article.List(context.Background(), query.Params{})
	require.NoError(t, err)

	assert.Equal(t, 5, page.TotalCount)
	require.Len(t, page.Items, 5)
	assert.Equal(t, int64(4), page.Items[0].ArticleID, "newest first")
	assert.Equal(t, int64(5), page.Items[4].ArticleID)
	for _, a := range page.Items {
		assert.Empty(t, a.Body, "list rows omit body")
	}
	assert.Equal(t, 2, page.Items[3].CommentCount)
}

func TestArticleService_ListTopicFilter(t *testing.T) {
	svc, _ := newFixture(t)
	ctx := context.Background()

	page, err := svc.Article.List(ctx, query.Params{Filters: map[string]string{"topic": "cats"}})
	require.NoError(t, err)
	assert.Equal(t, 1, page.TotalCount)
	assert.Equal(t, "cats", page.Items[0].Topic)

	page, err = svc.Article.List(ctx, query.Params{Filters: map[string]string{"topic": "paper"}})
	require.NoError(t, err)
	assert.Equal(t, 0, page.TotalCount)
	assert.NotNil(t, page.Items)
	assert.Empty(t, page.Items)

	_, err = svc.Article.List(ctx, query.Params{Filters: map[string]string{"topic": "dogs"}})
	assert.ErrorIs(t, err, apperr.NotFound("Topic"))
}

func TestArticleService_ListPaginationIsDeterministic(t *testing.T) {
	store := mocks.NewMockStore()
	store.AddTopic("mitch", "")
	store.AddUser("butter_bridge", "jonny")
	for i := 0; i < 7; i++ {
		store.AddArticle(models.Article{Author: "butter_bridge", Title: "same", Topic: "mitch", CreatedAt: base})
	}
	svc := service.NewServices(store.Repositories(), &config.Config{}, zerolog.Nop())

	seen := make(map[int64]bool)
	for pageNo := 1; pageNo <= 3; pageNo++ {
		page, err := svc.Article.List(context.Background(), query.Params{Limit: "3", Page: fmt.Sprint(pageNo)})
		require.NoError(t, err)
		assert.Equal(t, 7, page.TotalCount)
		for _, a := range page.Items {
			assert.False(t, seen[a.ArticleID], "article %d appeared on two pages", a.ArticleID)
			seen[a.ArticleID] = true
		}
	}
	assert.Len(t, seen, 7)
}

func TestArticleService_ListSortAndOrder(t *testing.T) {
	svc, _ := newFixture(t)

	page, err := svc.Article.List(context.Background(), query.Params{SortBy: "votes", Order: "asc", Limit: "2"})
	require.NoError(t, err)
	require.Len(t, page.Items, 2)
	assert.Equal(t, 0, page.Items[0].Votes)
	assert.Equal(t, 0, page.Items[1].Votes)
	assert.Less(t, page.Items[0].ArticleID, page.Items[1].ArticleID)
	assert.Equal(t, 5, page.TotalCount)

	page, err = svc.Article.List(context.Background(), query.Params{SortBy: "comment_count"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), page.Items[0].ArticleID)
}

func TestArticleService_InvalidQueryPrecedesExistence(t *testing.T) {
	svc, store := newFixture(t)

	tests := []query.Params{
		{SortBy: "password", Filters: map[string]string{"topic": "dogs"}},
		{Order: "sideways", Filters: map[string]string{"topic": "dogs"}},
		{Limit: "0", Filters: map[string]string{"topic": "dogs"}},
		{Page: "-1", Filters: map[string]string{"topic": "dogs"}},
	}

	for _, params := range tests {
		_, err := svc.Article.List(context.Background(), params)
		assert.ErrorIs(t, err, apperr.ErrInvalidQuery)
	}
	assert.Zero(t, store.ExistsCalls)
}

func TestArticleService_PageBeyondEnd(t *testing.T) {
	svc, _ := newFixture(t)

	_, err := svc.Article.List(context.Background(), query.Params{Limit: "5", Page: "2"})
	assert.ErrorIs(t, err, apperr.ErrPageNotFound)
}

func TestArticleService_Get(t *testing.T) {
	svc, _ := newFixture(t)

	article, err := svc.Article.Get(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "body", article.Body)
	assert.Equal(t, 2, article.CommentCount)

	_, err = svc.Article.Get(context.Background(), 999)
	assert.ErrorIs(t, err, apperr.NotFound("Article"))
}

func TestArticleService_Create(t *testing.T) {
	svc, _ := newFixture(t)
	ctx := context.Background()

	article, err := svc.Article.Create(ctx, &models.NewArticle{
		Author: strPtr("lurker"),
		Title:  strPtr("Living in the shadow of a great man"),
		Body:   strPtr("I find this existence challenging"),
		Topic:  strPtr("mitch"),
	})
	require.NoError(t, err)
	assert.Equal(t, int64(6), article.ArticleID)
	assert.Equal(t, 0, article.Votes)
	assert.Equal(t, 0, article.CommentCount)
	require.NotNil(t, article.ArticleImgURL)
	assert.Equal(t, models.DefaultArticleImgURL, *article.ArticleImgURL)

	page, err := svc.Article.List(ctx, query.Params{})
	require.NoError(t, err)
	assert.Equal(t, article.ArticleID, page.Items[0].ArticleID, "new article is listed first")
	assert.Equal(t, 6, page.TotalCount)
}

func TestArticleService_CreateReferentialRejection(t *testing.T) {
	svc, _ := newFixture(t)
	ctx := context.Background()

	_, err := svc.Article.Create(ctx, &models.NewArticle{
		Author: strPtr("butter_bridge"), Title: strPtr("t"), Body: strPtr("b"), Topic: strPtr("dogs"),
	})
	assert.ErrorIs(t, err, apperr.NotFound("Topic"))

	_, err = svc.Article.Create(ctx, &models.NewArticle{
		Author: strPtr("nobody"), Title: strPtr("t"), Body: strPtr("b"), Topic: strPtr("mitch"),
	})
	assert.ErrorIs(t, err, apperr.ErrUnableToIdentifyUser)

	_, err = svc.Article.Create(ctx, &models.NewArticle{
		Title: strPtr("t"), Body: strPtr("b"), Topic: strPtr("mitch"), Mistyped: models.Mistyped{"author"},
	})
	assert.ErrorIs(t, err, apperr.ErrUnableToIdentifyUser)
}

func TestArticleService_CreateValidation(t *testing.T) {
	svc, store := newFixture(t)

	_, err := svc.Article.Create(context.Background(), &models.NewArticle{Author: strPtr("butter_bridge")})
	appErr, ok := apperr.As(err)
	require.True(t, ok)
	assert.Equal(t, apperr.KindBadRequest, appErr.Kind)

	var details validation.Errors
	require.True(t, errors.As(err, &details))
	assert.Len(t, details, 3)
	assert.Zero(t, store.ExistsCalls)
}

func TestArticleService_UpdateVotes(t *testing.T) {
	svc, store := newFixture(t)
	ctx := context.Background()

	article, err := svc.Article.UpdateVotes(ctx, 2, &models.VoteUpdate{IncVotes: intPtr(5)})
	require.NoError(t, err)
	assert.Equal(t, 15, article.Votes)

	article, err = svc.Article.UpdateVotes(ctx, 2, &models.VoteUpdate{IncVotes: intPtr(-100)})
	require.NoError(t, err)
	assert.Equal(t, -85, article.Votes, "votes are not clamped")

	_, err = svc.Article.UpdateVotes(ctx, 999, &models.VoteUpdate{IncVotes: intPtr(1)})
	assert.ErrorIs(t, err, apperr.NotFound("Article"))

	calls := store.ExistsCalls
	_, err = svc.Article.UpdateVotes(ctx, 999, &models.VoteUpdate{})
	assert.ErrorIs(t, err, apperr.NotFound("Article"), "a missing article wins over a bad body")
	assert.Equal(t, calls+1, store.ExistsCalls)

	_, err = svc.Article.UpdateVotes(ctx, 2, &models.VoteUpdate{Mistyped: models.Mistyped{"inc_votes"}})
	assert.ErrorIs(t, err, apperr.ErrBadRequest)
}

func TestCommentService_ListForArticle(t *testing.T) {
	svc, _ := newFixture(t)
	ctx := context.Background()

	page, err := svc.Comment.ListForArticle(ctx, 1, query.Params{})
	require.NoError(t, err)
	assert.Equal(t, 2, page.TotalCount)
	assert.Equal(t, "second", page.Items[0].Body)

	page, err = svc.Comment.ListForArticle(ctx, 1, query.Params{SortBy: "votes", Order: "desc"})
	require.NoError(t, err)
	assert.Equal(t, 3, page.Items[0].Votes)

	page, err = svc.Comment.ListForArticle(ctx, 2, query.Params{})
	require.NoError(t, err)
	assert.Empty(t, page.Items)
	assert.Equal(t, 0, page.TotalCount)

	_, err = svc.Comment.ListForArticle(ctx, 999, query.Params{})
	assert.ErrorIs(t, err, apperr.NotFound("Article"))

	_, err = svc.Comment.ListForArticle(ctx, 999, query.Params{SortBy: "title"})
	assert.ErrorIs(t, err, apperr.ErrInvalidQuery)

	_, err = svc.Comment.ListForArticle(ctx, 1, query.Params{Page: "2"})
	assert.ErrorIs(t, err, apperr.ErrPageNotFound)
}

func TestCommentService_Create(t *testing.T) {
	svc, _ := newFixture(t)
	ctx := context.Background()

	comment, err := svc.Comment.Create(ctx, 3, &models.NewComment{Username: strPtr("lurker"), Body: strPtr("interesting")})
	require.NoError(t, err)
	assert.Equal(t, int64(3), comment.ArticleID)
	assert.Equal(t, "lurker", comment.Author)
	assert.Equal(t, 0, comment.Votes)

	page, err := svc.Comment.ListForArticle(ctx, 3, query.Params{})
	require.NoError(t, err)
	assert.Equal(t, comment.CommentID, page.Items[0].CommentID)

	_, err = svc.Comment.Create(ctx, 999, &models.NewComment{Username: strPtr("lurker"), Body: strPtr("hi")})
	assert.ErrorIs(t, err, apperr.NotFound("Article"))

	_, err = svc.Comment.Create(ctx, 3, &models.NewComment{Username: strPtr("ghost"), Body: strPtr("boo")})
	assert.ErrorIs(t, err, apperr.ErrUnableToIdentifyUser)

	_, err = svc.Comment.Create(ctx, 3, &models.NewComment{Username: strPtr("lurker")})
	assert.ErrorIs(t, err, apperr.ErrBadRequest)

	_, err = svc.Comment.Create(ctx, 999, &models.NewComment{Body: strPtr("hi")})
	assert.ErrorIs(t, err, apperr.NotFound("Article"), "a missing article wins over a bad body")

	_, err = svc.Comment.Create(ctx, 3, &models.NewComment{Body: strPtr("hi"), Mistyped: models.Mistyped{"username"}})
	assert.ErrorIs(t, err, apperr.ErrUnableToIdentifyUser)

	_, err = svc.Comment.Create(ctx, 3, &models.NewComment{Mistyped: models.Mistyped{"username"}})
	assert.ErrorIs(t, err, apperr.ErrBadRequest, "a missing body is reported before the identity")
}

func TestCommentService_UpdateVotesAndDelete(t *testing.T) {
	svc, _ := newFixture(t)
	ctx := context.Background()

	comment, err := svc.Comment.UpdateVotes(ctx, 1, &models.VoteUpdate{IncVotes: intPtr(-4)})
	require.NoError(t, err)
	assert.Equal(t, -1, comment.Votes)

	require.NoError(t, svc.Comment.Delete(ctx, 1))

	err = svc.Comment.Delete(ctx, 1)
	assert.ErrorIs(t, err, apperr.NotFound("Comment"))

	_, err = svc.Comment.UpdateVotes(ctx, 1, &models.VoteUpdate{IncVotes: intPtr(1)})
	assert.ErrorIs(t, err, apperr.NotFound("Comment"))

	_, err = svc.Comment.UpdateVotes(ctx, 1, &models.VoteUpdate{})
	assert.ErrorIs(t, err, apperr.NotFound("Comment"), "a missing comment wins over a bad body")

	article, err := svc.Article.Get(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 1, article.CommentCount)
}

func TestTopicService(t *testing.T) {
	svc, _ := newFixture(t)
	ctx := context.Background()

	topic, err := svc.Topic.Create(ctx, &models.NewTopic{Slug: strPtr("dogs"), Description: strPtr("Not cats")})
	require.NoError(t, err)
	assert.Equal(t, "dogs", topic.Slug)

	_, err = svc.Topic.Create(ctx, &models.NewTopic{Slug: strPtr("dogs"), Description: strPtr("again")})
	assert.ErrorIs(t, err, apperr.ErrTopicAlreadyExists)

	_, err = svc.Topic.Create(ctx, &models.NewTopic{Slug: strPtr("Bad Slug"), Description: strPtr("x")})
	assert.ErrorIs(t, err, apperr.ErrBadRequest)

	topics, err := svc.Topic.List(ctx)
	require.NoError(t, err)
	assert.Len(t, topics, 4)
}

func TestUserService(t *testing.T) {
	svc, _ := newFixture(t)
	ctx := context.Background()

	users, err := svc.User.List(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 3)

	user, err := svc.User.Get(ctx, "lurker")
	require.NoError(t, err)
	assert.Equal(t, "do_nothing", user.Name)

	_, err = svc.User.Get(ctx, "nobody")
	require.Error(t, err)
	assert.Equal(t, "Username not found", err.Error())
}

func TestServices_StoreFailuresAreInternal(t *testing.T) {
	svc, store := newFixture(t)
	store.Err = errors.New("connection reset by peer")

	_, err := svc.Topic.List(context.Background())
	require.Error(t, err)
	_, isAppErr := apperr.As(err)
	assert.False(t, isAppErr)
	assert.ErrorIs(t, err, store.Err)
}

func TestStatsService(t *testing.T) {
	svc, store := newFixture(t)
	ctx := context.Background()

	counts, err := svc.Stats.Counts(ctx)
	require.NoError(t, err)
	assert.Equal(t, service.Counts{Topics: 3, Users: 3, Articles: 5, Comments: 2}, *counts)

	assert.NoError(t, svc.Stats.Health(ctx))
	store.HealthErr = errors.New("down")
	assert.Error(t, svc.Stats.Health(ctx))
	assert.Equal(t, 25, svc.Stats.PoolStats().MaxOpenConnections)
}

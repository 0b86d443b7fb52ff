package mocks

import (
	"context"
	"database/sql"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/lib/pq"
	"github.com/nc-news-api/internal/apperr"
	"github.com/nc-news-api/internal/models"
	"github.com/nc-news-api/internal/query"
	"github.com/nc-news-api/internal/repository"
)

// MockStore is an in-memory stand-in for the database shared by the mock
// repositories, so referential checks behave like the real schema.
type MockStore struct {
	mu sync.Mutex

	Topics   map[string]*models.Topic
	Users    map[string]*models.User
	Articles map[int64]*models.Article
	Comments map[int64]*models.Comment

	nextArticleID int64
	nextCommentID int64

	// Err, when set, is returned by every repository call
	Err error
	// HealthErr is returned by the health checker
	HealthErr error
	// ExistsCalls counts existence lookups
	ExistsCalls int
}

// NewMockStore creates an empty store
func NewMockStore() *MockStore {
	return &MockStore{
		Topics:   make(map[string]*models.Topic),
		Users:    make(map[string]*models.User),
		Articles: make(map[int64]*models.Article),
		Comments: make(map[int64]*models.Comment),
	}
}

// Repositories wires every mock repository to this store
func (s *MockStore) Repositories() *repository.Repositories {
	return &repository.Repositories{
		Topic:     &MockTopicRepository{store: s},
		User:      &MockUserRepository{store: s},
		Article:   &MockArticleRepository{store: s},
		Comment:   &MockCommentRepository{store: s},
		Existence: &MockExistenceChecker{store: s},
		Health:    &MockHealthChecker{store: s},
	}
}

// AddTopic stores a topic directly
func (s *MockStore) AddTopic(slug, description string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Topics[slug] = &models.Topic{Slug: slug, Description: description}
}

// AddUser stores a user directly
func (s *MockStore) AddUser(username, name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Users[username] = &models.User{Username: username, Name: name, AvatarURL: "https://avatars.example.com/" + username}
}

// AddArticle stores an article directly and returns its id
func (s *MockStore) AddArticle(a models.Article) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextArticleID++
	a.ArticleID = s.nextArticleID
	s.Articles[a.ArticleID] = &a
	return a.ArticleID
}

// AddComment stores a comment directly and returns its id
func (s *MockStore) AddComment(c models.Comment) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextCommentID++
	c.CommentID = s.nextCommentID
	s.Comments[c.CommentID] = &c
	return c.CommentID
}

func (s *MockStore) commentCount(articleID int64) int {
	n := 0
	for _, c := range s.Comments {
		if c.ArticleID == articleID {
			n++
		}
	}
	return n
}

func fkViolation(constraint string) error {
	return fmt.Errorf("%w: %w", repository.ErrForeignKeyViolation,
		&pq.Error{Code: "23503", Constraint: constraint, Message: "violates foreign key constraint"})
}

func uniqueViolation(constraint string) error {
	return fmt.Errorf("%w: %w", repository.ErrUniqueViolation,
		&pq.Error{Code: "23505", Constraint: constraint, Message: "duplicate key value"})
}

func paginate[T any](items []T, q *query.PageQuery) []T {
	if q.Offset >= len(items) {
		return []T{}
	}
	end := q.Offset + q.Limit
	if end > len(items) {
		end = len(items)
	}
	return items[q.Offset:end]
}

func cmpInt64(a, b int64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

func cmpTime(a, b time.Time) int {
	switch {
	case a.Before(b):
		return -1
	case a.After(b):
		return 1
	}
	return 0
}

// MockTopicRepository is a mock implementation of TopicRepository
type MockTopicRepository struct {
	store *MockStore
}

var _ repository.TopicRepository = (*MockTopicRepository)(nil)

func (m *MockTopicRepository) List(ctx context.Context) ([]models.Topic, error) {
	m.store.mu.Lock()
	defer m.store.mu.Unlock()
	if m.store.Err != nil {
		return nil, m.store.Err
	}

	topics := make([]models.Topic, 0, len(m.store.Topics))
	for _, t := range m.store.Topics {
		topics = append(topics, *t)
	}
	sort.Slice(topics, func(i, j int) bool { return topics[i].Slug < topics[j].Slug })
	return topics, nil
}

func (m *MockTopicRepository) Create(ctx context.Context, topic *models.Topic) (*models.Topic, error) {
	m.store.mu.Lock()
	defer m.store.mu.Unlock()
	if m.store.Err != nil {
		return nil, m.store.Err
	}

	if _, exists := m.store.Topics[topic.Slug]; exists {
		return nil, uniqueViolation("topics_pkey")
	}
	created := *topic
	m.store.Topics[topic.Slug] = &created
	return &created, nil
}

func (m *MockTopicRepository) BatchInsert(ctx context.Context, topics []*models.Topic) (int, error) {
	for _, t := range topics {
		if _, err := m.Create(ctx, t); err != nil {
			return 0, err
		}
	}
	return len(topics), nil
}

func (m *MockTopicRepository) Count(ctx context.Context) (int, error) {
	m.store.mu.Lock()
	defer m.store.mu.Unlock()
	return len(m.store.Topics), m.store.Err
}

// MockUserRepository is a mock implementation of UserRepository
type MockUserRepository struct {
	store *MockStore
}

var _ repository.UserRepository = (*MockUserRepository)(nil)

func (m *MockUserRepository) List(ctx context.Context) ([]models.User, error) {
	m.store.mu.Lock()
	defer m.store.mu.Unlock()
	if m.store.Err != nil {
		return nil, m.store.Err
	}

	users := make([]models.User, 0, len(m.store.Users))
	for _, u := range m.store.Users {
		users = append(users, *u)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].Username < users[j].Username })
	return users, nil
}

func (m *MockUserRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	m.store.mu.Lock()
	defer m.store.mu.Unlock()
	if m.store.Err != nil {
		return nil, m.store.Err
	}

	user, ok := m.store.Users[username]
	if !ok {
		return nil, nil
	}
	found := *user
	return &found, nil
}

func (m *MockUserRepository) BatchInsert(ctx context.Context, users []*models.User) (int, error) {
	m.store.mu.Lock()
	defer m.store.mu.Unlock()
	if m.store.Err != nil {
		return 0, m.store.Err
	}

	for _, u := range users {
		if _, exists := m.store.Users[u.Username]; exists {
			return 0, uniqueViolation("users_pkey")
		}
		user := *u
		m.store.Users[u.Username] = &user
	}
	return len(users), nil
}

func (m *MockUserRepository) Count(ctx context.Context) (int, error) {
	m.store.mu.Lock()
	defer m.store.mu.Unlock()
	return len(m.store.Users), m.store.Err
}

// MockArticleRepository is a mock implementation of ArticleRepository
type MockArticleRepository struct {
	store *MockStore
}

var _ repository.ArticleRepository = (*MockArticleRepository)(nil)

func (m *MockArticleRepository) List(ctx context.Context, q *query.PageQuery) ([]models.Article, int, error) {
	m.store.mu.Lock()
	defer m.store.mu.Unlock()
	if m.store.Err != nil {
		return nil, 0, m.store.Err
	}

	topic, filtered := q.Filter("topic")
	var matched []models.Article
	for _, a := range m.store.Articles {
		if filtered && a.Topic != topic {
			continue
		}
		row := *a
		row.Body = ""
		row.CommentCount = m.store.commentCount(a.ArticleID)
		matched = append(matched, row)
	}

	sort.Slice(matched, func(i, j int) bool {
		c := compareArticles(matched[i], matched[j], q.SortKey)
		if c == 0 {
			c = cmpInt64(matched[i].ArticleID, matched[j].ArticleID)
		}
		if q.Order == query.OrderAsc {
			return c < 0
		}
		return c > 0
	})

	return paginate(matched, q), len(matched), nil
}

func compareArticles(a, b models.Article, key string) int {
	switch key {
	case "article_id":
		return cmpInt64(a.ArticleID, b.ArticleID)
	case "title":
		return strings.Compare(a.Title, b.Title)
	case "topic":
		return strings.Compare(a.Topic, b.Topic)
	case "author":
		return strings.Compare(a.Author, b.Author)
	case "votes":
		return cmpInt64(int64(a.Votes), int64(b.Votes))
	case "comment_count":
		return cmpInt64(int64(a.CommentCount), int64(b.CommentCount))
	default:
		return cmpTime(a.CreatedAt, b.CreatedAt)
	}
}

func (m *MockArticleRepository) GetByID(ctx context.Context, id int64) (*models.Article, error) {
	m.store.mu.Lock()
	defer m.store.mu.Unlock()
	if m.store.Err != nil {
		return nil, m.store.Err
	}

	a, ok := m.store.Articles[id]
	if !ok {
		return nil, nil
	}
	found := *a
	found.CommentCount = m.store.commentCount(id)
	return &found, nil
}

func (m *MockArticleRepository) Create(ctx context.Context, article *models.Article) (*models.Article, error) {
	m.store.mu.Lock()
	defer m.store.mu.Unlock()
	if m.store.Err != nil {
		return nil, m.store.Err
	}

	if _, ok := m.store.Users[article.Author]; !ok {
		return nil, fkViolation("articles_author_fkey")
	}
	if _, ok := m.store.Topics[article.Topic]; !ok {
		return nil, fkViolation("articles_topic_fkey")
	}

	m.store.nextArticleID++
	created := *article
	created.ArticleID = m.store.nextArticleID
	created.CommentCount = 0
	if created.CreatedAt.IsZero() {
		created.CreatedAt = time.Now()
	}
	stored := created
	m.store.Articles[created.ArticleID] = &stored
	return &created, nil
}

func (m *MockArticleRepository) IncrementVotes(ctx context.Context, id int64, delta int) (*models.Article, error) {
	m.store.mu.Lock()
	defer m.store.mu.Unlock()
	if m.store.Err != nil {
		return nil, m.store.Err
	}

	a, ok := m.store.Articles[id]
	if !ok {
		return nil, nil
	}
	a.Votes += delta
	updated := *a
	updated.CommentCount = m.store.commentCount(id)
	return &updated, nil
}

func (m *MockArticleRepository) Count(ctx context.Context) (int, error) {
	m.store.mu.Lock()
	defer m.store.mu.Unlock()
	return len(m.store.Articles), m.store.Err
}

// MockCommentRepository is a mock implementation of CommentRepository
type MockCommentRepository struct {
	store *MockStore
}

var _ repository.CommentRepository = (*MockCommentRepository)(nil)

func (m *MockCommentRepository) ListByArticle(ctx context.Context, articleID int64, q *query.PageQuery) ([]models.Comment, int, error) {
	m.store.mu.Lock()
	defer m.store.mu.Unlock()
	if m.store.Err != nil {
		return nil, 0, m.store.Err
	}

	var matched []models.Comment
	for _, c := range m.store.Comments {
		if c.ArticleID == articleID {
			matched = append(matched, *c)
		}
	}

	sort.Slice(matched, func(i, j int) bool {
		c := compareComments(matched[i], matched[j], q.SortKey)
		if c == 0 {
			c = cmpInt64(matched[i].CommentID, matched[j].CommentID)
		}
		if q.Order == query.OrderAsc {
			return c < 0
		}
		return c > 0
	})

	return paginate(matched, q), len(matched), nil
}

func compareComments(a, b models.Comment, key string) int {
	switch key {
	case "comment_id":
		return cmpInt64(a.CommentID, b.CommentID)
	case "author":
		return strings.Compare(a.Author, b.Author)
	case "votes":
		return cmpInt64(int64(a.Votes), int64(b.Votes))
	default:
		return cmpTime(a.CreatedAt, b.CreatedAt)
	}
}

func (m *MockCommentRepository) Create(ctx context.Context, comment *models.Comment) (*models.Comment, error) {
	m.store.mu.Lock()
	defer m.store.mu.Unlock()
	if m.store.Err != nil {
		return nil, m.store.Err
	}

	if _, ok := m.store.Articles[comment.ArticleID]; !ok {
		return nil, fkViolation("comments_article_id_fkey")
	}
	if _, ok := m.store.Users[comment.Author]; !ok {
		return nil, fkViolation("comments_author_fkey")
	}

	m.store.nextCommentID++
	created := *comment
	created.CommentID = m.store.nextCommentID
	if created.CreatedAt.IsZero() {
		created.CreatedAt = time.Now()
	}
	stored := created
	m.store.Comments[created.CommentID] = &stored
	return &created, nil
}

func (m *MockCommentRepository) IncrementVotes(ctx context.Context, id int64, delta int) (*models.Comment, error) {
	m.store.mu.Lock()
	defer m.store.mu.Unlock()
	if m.store.Err != nil {
		return nil, m.store.Err
	}

	c, ok := m.store.Comments[id]
	if !ok {
		return nil, nil
	}
	c.Votes += delta
	updated := *c
	return &updated, nil
}

func (m *MockCommentRepository) Delete(ctx context.Context, id int64) (bool, error) {
	m.store.mu.Lock()
	defer m.store.mu.Unlock()
	if m.store.Err != nil {
		return false, m.store.Err
	}

	if _, ok := m.store.Comments[id]; !ok {
		return false, nil
	}
	delete(m.store.Comments, id)
	return true, nil
}

func (m *MockCommentRepository) BatchInsert(ctx context.Context, comments []*models.Comment) (int, error) {
	for _, c := range comments {
		if _, err := m.Create(ctx, c); err != nil {
			return 0, err
		}
	}
	return len(comments), nil
}

func (m *MockCommentRepository) Count(ctx context.Context) (int, error) {
	m.store.mu.Lock()
	defer m.store.mu.Unlock()
	return len(m.store.Comments), m.store.Err
}

// MockExistenceChecker is a mock implementation of ExistenceChecker
type MockExistenceChecker struct {
	store *MockStore
}

var _ repository.ExistenceChecker = (*MockExistenceChecker)(nil)

func (m *MockExistenceChecker) Exists(ctx context.Context, ref models.Ref) error {
	target, err := repository.ResolveRef(ref)
	if err != nil {
		return err
	}

	m.store.mu.Lock()
	defer m.store.mu.Unlock()
	m.store.ExistsCalls++
	if m.store.Err != nil {
		return m.store.Err
	}

	var found bool
	switch ref.Kind {
	case models.RefUser:
		_, found = m.store.Users[ref.Key.(string)]
	case models.RefTopic:
		_, found = m.store.Topics[ref.Key.(string)]
	case models.RefArticle:
		_, found = m.store.Articles[ref.Key.(int64)]
	case models.RefComment:
		_, found = m.store.Comments[ref.Key.(int64)]
	}

	if !found {
		return apperr.NotFound(target.Label)
	}
	return nil
}

// MockHealthChecker is a mock implementation of HealthChecker
type MockHealthChecker struct {
	store *MockStore
}

var _ repository.HealthChecker = (*MockHealthChecker)(nil)

func (m *MockHealthChecker) HealthCheck(ctx context.Context) error {
	return m.store.HealthErr
}

func (m *MockHealthChecker) Stats() sql.DBStats {
	return sql.DBStats{MaxOpenConnections: 25, OpenConnections: 1}
}

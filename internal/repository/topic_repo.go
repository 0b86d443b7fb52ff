package repository

import (
	"context"

	"github.com/lib/pq"
	"github.com/nc-news-api/internal/database"
	"github.com/nc-news-api/internal/models"
)

// topicRepo is the concrete implementation of TopicRepository
type topicRepo struct {
	db *database.DB
}

// NewTopicRepo creates a new topic repository
func NewTopicRepo(db *database.DB) TopicRepository {
	return &topicRepo{db: db}
}

// List returns every topic
func (r *topicRepo) List(ctx context.Context) ([]models.Topic, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT slug, description FROM topics ORDER BY slug")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	topics := []models.Topic{}
	for rows.Next() {
		var topic models.Topic
		if err := rows.Scan(&topic.Slug, &topic.Description); err != nil {
			return nil, err
		}
		topics = append(topics, topic)
	}
	return topics, rows.Err()
}

// Create inserts a new topic
func (r *topicRepo) Create(ctx context.Context, topic *models.Topic) (*models.Topic, error) {
	query := `
		INSERT INTO topics (slug, description)
		VALUES ($1, $2)
		RETURNING slug, description
	`
	var created models.Topic
	err := r.db.QueryRowContext(ctx, query, topic.Slug, topic.Description).Scan(&created.Slug, &created.Description)
	if err != nil {
		return nil, classify(err)
	}
	return &created, nil
}

// BatchInsert inserts multiple topics using PostgreSQL COPY
func (r *topicRepo) BatchInsert(ctx context.Context, topics []*models.Topic) (int, error) {
	if len(topics) == 0 {
		return 0, nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, pq.CopyIn("topics", "slug", "description"))
	if err != nil {
		return 0, err
	}
	defer stmt.Close()

	inserted := 0
	for _, topic := range topics {
		if _, err := stmt.ExecContext(ctx, topic.Slug, topic.Description); err != nil {
			return 0, err
		}
		inserted++
	}

	if _, err := stmt.ExecContext(ctx); err != nil {
		return 0, classify(err)
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}

	return inserted, nil
}

// Count returns the total number of topics
func (r *topicRepo) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM topics").Scan(&count)
	return count, err
}

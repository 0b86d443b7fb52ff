package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/nc-news-api/internal/database"
	"github.com/nc-news-api/internal/models"
	"github.com/nc-news-api/internal/query"
)

// articleRepo is the concrete implementation of ArticleRepository
type articleRepo struct {
	db *database.DB
}

// NewArticleRepo creates a new article repository
func NewArticleRepo(db *database.DB) ArticleRepository {
	return &articleRepo{db: db}
}

// List returns one page of articles without bodies, plus the filtered total
func (r *articleRepo) List(ctx context.Context, q *query.PageQuery) ([]models.Article, int, error) {
	var args []interface{}
	where, args := whereClause(q.Filters, args)
	page, args := pageClause(q, args)

	sqlStr := `
		SELECT a.article_id, a.author, a.title, a.topic, a.created_at, a.votes, a.article_img_url,
			COUNT(c.comment_id)::INT AS comment_count,
			COUNT(*) OVER()::INT AS total_count
		FROM articles a
		LEFT JOIN comments c ON c.article_id = a.article_id` +
		where +
		` GROUP BY a.article_id` +
		page

	rows, err := r.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return nil, 0, classify(err)
	}
	defer rows.Close()

	articles := []models.Article{}
	total := 0
	for rows.Next() {
		var article models.Article
		var imgURL sql.NullString
		err := rows.Scan(
			&article.ArticleID, &article.Author, &article.Title, &article.Topic,
			&article.CreatedAt, &article.Votes, &imgURL, &article.CommentCount, &total,
		)
		if err != nil {
			return nil, 0, err
		}
		article.ArticleImgURL = nullStringPtr(imgURL)
		articles = append(articles, article)
	}

	return articles, total, rows.Err()
}

// GetByID retrieves an article with its comment count, or nil when missing
func (r *articleRepo) GetByID(ctx context.Context, id int64) (*models.Article, error) {
	query := `
		SELECT a.article_id, a.author, a.title, a.body, a.topic, a.created_at, a.votes, a.article_img_url,
			COUNT(c.comment_id)::INT AS comment_count
		FROM articles a
		LEFT JOIN comments c ON c.article_id = a.article_id
		WHERE a.article_id = $1
		GROUP BY a.article_id
	`

	article, err := scanArticle(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, classify(err)
	}
	return article, nil
}

// Create inserts a new article. A zero CreatedAt lets the database stamp it.
func (r *articleRepo) Create(ctx context.Context, article *models.Article) (*models.Article, error) {
	query := `
		INSERT INTO articles (author, title, body, topic, article_img_url, votes, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, COALESCE($7, NOW()))
		RETURNING article_id, author, title, body, topic, created_at, votes, article_img_url, 0
	`

	created, err := scanArticle(r.db.QueryRowContext(ctx, query,
		article.Author, article.Title, article.Body, article.Topic,
		article.ArticleImgURL, article.Votes, nullTime(article.CreatedAt),
	))
	if err != nil {
		return nil, classify(err)
	}
	return created, nil
}

// IncrementVotes adds delta to the stored votes in a single statement.
// It returns nil when the article does not exist.
func (r *articleRepo) IncrementVotes(ctx context.Context, id int64, delta int) (*models.Article, error) {
	query := `
		WITH updated AS (
			UPDATE articles SET votes = votes + $1
			WHERE article_id = $2
			RETURNING article_id, author, title, body, topic, created_at, votes, article_img_url
		)
		SELECT u.article_id, u.author, u.title, u.body, u.topic, u.created_at, u.votes, u.article_img_url,
			(SELECT COUNT(*) FROM comments c WHERE c.article_id = u.article_id)::INT
		FROM updated u
	`

	article, err := scanArticle(r.db.QueryRowContext(ctx, query, delta, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, classify(err)
	}
	return article, nil
}

// Count returns the total number of articles
func (r *articleRepo) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM articles").Scan(&count)
	return count, err
}

func scanArticle(row *sql.Row) (*models.Article, error) {
	var article models.Article
	var imgURL sql.NullString
	err := row.Scan(
		&article.ArticleID, &article.Author, &article.Title, &article.Body, &article.Topic,
		&article.CreatedAt, &article.Votes, &imgURL, &article.CommentCount,
	)
	if err != nil {
		return nil, err
	}
	article.ArticleImgURL = nullStringPtr(imgURL)
	return &article, nil
}

func nullStringPtr(s sql.NullString) *string {
	if !s.Valid {
		return nil
	}
	return &s.String
}

func nullTime(t time.Time) sql.NullTime {
	return sql.NullTime{Time: t, Valid: !t.IsZero()}
}

package repository

import (
	"context"
	"database/sql"

	"github.com/lib/pq"
	"github.com/nc-news-api/internal/database"
	"github.com/nc-news-api/internal/models"
	"github.com/nc-news-api/internal/query"
)

const commentColumns = "comment_id, article_id, author, body, votes, created_at"

// commentRepo is the concrete implementation of CommentRepository
type commentRepo struct {
	db *database.DB
}

// NewCommentRepo creates a new comment repository
func NewCommentRepo(db *database.DB) CommentRepository {
	return &commentRepo{db: db}
}

// ListByArticle returns one page of an article's comments plus their total
func (r *commentRepo) ListByArticle(ctx context.Context, articleID int64, q *query.PageQuery) ([]models.Comment, int, error) {
	args := []interface{}{articleID}
	page, args := pageClause(q, args)

	sqlStr := `
		SELECT ` + commentColumns + `, COUNT(*) OVER()::INT AS total_count
		FROM comments
		WHERE article_id = $1` + page

	rows, err := r.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return nil, 0, classify(err)
	}
	defer rows.Close()

	comments := []models.Comment{}
	total := 0
	for rows.Next() {
		var comment models.Comment
		err := rows.Scan(
			&comment.CommentID, &comment.ArticleID, &comment.Author, &comment.Body,
			&comment.Votes, &comment.CreatedAt, &total,
		)
		if err != nil {
			return nil, 0, err
		}
		comments = append(comments, comment)
	}

	return comments, total, rows.Err()
}

// Create inserts a new comment. A zero CreatedAt lets the database stamp it.
func (r *commentRepo) Create(ctx context.Context, comment *models.Comment) (*models.Comment, error) {
	query := `
		INSERT INTO comments (article_id, author, body, votes, created_at)
		VALUES ($1, $2, $3, $4, COALESCE($5, NOW()))
		RETURNING ` + commentColumns

	created, err := scanComment(r.db.QueryRowContext(ctx, query,
		comment.ArticleID, comment.Author, comment.Body, comment.Votes, nullTime(comment.CreatedAt),
	))
	if err != nil {
		return nil, classify(err)
	}
	return created, nil
}

// IncrementVotes adds delta to the stored votes in a single statement.
// It returns nil when the comment does not exist.
func (r *commentRepo) IncrementVotes(ctx context.Context, id int64, delta int) (*models.Comment, error) {
	query := `
		UPDATE comments SET votes = votes + $1
		WHERE comment_id = $2
		RETURNING ` + commentColumns

	comment, err := scanComment(r.db.QueryRowContext(ctx, query, delta, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, classify(err)
	}
	return comment, nil
}

// Delete removes a comment, reporting whether a row was deleted
func (r *commentRepo) Delete(ctx context.Context, id int64) (bool, error) {
	result, err := r.db.ExecContext(ctx, "DELETE FROM comments WHERE comment_id = $1", id)
	if err != nil {
		return false, classify(err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

// BatchInsert inserts multiple comments using PostgreSQL COPY
func (r *commentRepo) BatchInsert(ctx context.Context, comments []*models.Comment) (int, error) {
	if len(comments) == 0 {
		return 0, nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, pq.CopyIn("comments",
		"article_id", "author", "body", "votes", "created_at",
	))
	if err != nil {
		return 0, err
	}
	defer stmt.Close()

	inserted := 0
	for _, comment := range comments {
		_, err := stmt.ExecContext(ctx,
			comment.ArticleID, comment.Author, comment.Body, comment.Votes, comment.CreatedAt,
		)
		if err != nil {
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

// Count returns the total number of comments
func (r *commentRepo) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM comments").Scan(&count)
	return count, err
}

func scanComment(row *sql.Row) (*models.Comment, error) {
	var comment models.Comment
	err := row.Scan(
		&comment.CommentID, &comment.ArticleID, &comment.Author, &comment.Body,
		&comment.Votes, &comment.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &comment, nil
}

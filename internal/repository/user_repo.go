package repository

import (
	"context"
	"database/sql"

	"github.com/lib/pq"
	"github.com/nc-news-api/internal/database"
	"github.com/nc-news-api/internal/models"
)

// userRepo is the concrete implementation of UserRepository
type userRepo struct {
	db *database.DB
}

// NewUserRepo creates a new user repository
func NewUserRepo(db *database.DB) UserRepository {
	return &userRepo{db: db}
}

// List returns every user
func (r *userRepo) List(ctx context.Context) ([]models.User, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT username, name, avatar_url FROM users ORDER BY username")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := []models.User{}
	for rows.Next() {
		var user models.User
		if err := rows.Scan(&user.Username, &user.Name, &user.AvatarURL); err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, rows.Err()
}

// GetByUsername retrieves a user, returning nil when there is none
func (r *userRepo) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	query := `SELECT username, name, avatar_url FROM users WHERE username = $1`

	var user models.User
	err := r.db.QueryRowContext(ctx, query, username).Scan(&user.Username, &user.Name, &user.AvatarURL)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &user, nil
}

// BatchInsert inserts multiple users using PostgreSQL COPY for efficiency
func (r *userRepo) BatchInsert(ctx context.Context, users []*models.User) (int, error) {
	if len(users) == 0 {
		return 0, nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	// Prepare COPY statement for bulk insert
	stmt, err := tx.PrepareContext(ctx, pq.CopyIn("users", "username", "name", "avatar_url"))
	if err != nil {
		return 0, err
	}
	defer stmt.Close()

	inserted := 0
	for _, user := range users {
		if _, err := stmt.ExecContext(ctx, user.Username, user.Name, user.AvatarURL); err != nil {
			return 0, err
		}
		inserted++
	}

	// Execute the COPY
	if _, err := stmt.ExecContext(ctx); err != nil {
		return 0, classify(err)
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}

	return inserted, nil
}

// Count returns the total number of users
func (r *userRepo) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM users").Scan(&count)
	return count, err
}

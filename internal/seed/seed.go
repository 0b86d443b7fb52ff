// Package seed loads the bundled dataset into an empty schema.
package seed

import (
	"context"
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"time"

	"github.com/nc-news-api/internal/models"
	"github.com/nc-news-api/internal/repository"
	"github.com/rs/zerolog"
)

//go:embed data/*.json
var dataFS embed.FS

// RawArticle is an article as stored in the dataset files
type RawArticle struct {
	Title         string  `json:"title"`
	Topic         string  `json:"topic"`
	Author        string  `json:"author"`
	Body          string  `json:"body"`
	CreatedAt     *int64  `json:"created_at"`
	Votes         int     `json:"votes"`
	ArticleImgURL *string `json:"article_img_url"`
}

// RawComment is a comment as stored in the dataset files. It names its
// article by title and its author by created_by.
type RawComment struct {
	Body      string `json:"body"`
	BelongsTo string `json:"belongs_to"`
	CreatedBy string `json:"created_by"`
	Votes     int    `json:"votes"`
	CreatedAt *int64 `json:"created_at"`
}

// Dataset is a full set of seed rows
type Dataset struct {
	Topics   []*models.Topic
	Users    []*models.User
	Articles []RawArticle
	Comments []RawComment
}

// Default returns the dataset bundled with the binary
func Default() (*Dataset, error) {
	sub, err := fs.Sub(dataFS, "data")
	if err != nil {
		return nil, err
	}
	return Load(sub)
}

// Load reads topics.json, users.json, articles.json and comments.json from fsys
func Load(fsys fs.FS) (*Dataset, error) {
	var ds Dataset
	files := []struct {
		name string
		dest interface{}
	}{
		{"topics.json", &ds.Topics},
		{"users.json", &ds.Users},
		{"articles.json", &ds.Articles},
		{"comments.json", &ds.Comments},
	}

	for _, f := range files {
		raw, err := fs.ReadFile(fsys, f.name)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", f.name, err)
		}
		if err := json.Unmarshal(raw, f.dest); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", f.name, err)
		}
	}

	return &ds, nil
}

// ConvertTimestamp turns epoch milliseconds into a UTC time. A missing
// timestamp yields the zero time, which the store replaces with NOW().
func ConvertTimestamp(ms *int64) time.Time {
	if ms == nil {
		return time.Time{}
	}
	return time.UnixMilli(*ms).UTC()
}

// CreateRef maps article titles to their assigned ids
func CreateRef(articles []*models.Article) map[string]int64 {
	ref := make(map[string]int64, len(articles))
	for _, a := range articles {
		ref[a.Title] = a.ArticleID
	}
	return ref
}

// FormatComments resolves belongs_to titles through ref and renames
// created_by to author. A title missing from ref is an error.
func FormatComments(raw []RawComment, ref map[string]int64) ([]*models.Comment, error) {
	comments := make([]*models.Comment, 0, len(raw))
	for i, rc := range raw {
		articleID, ok := ref[rc.BelongsTo]
		if !ok {
			return nil, fmt.Errorf("comment %d belongs to unknown article %q", i, rc.BelongsTo)
		}

		createdAt := ConvertTimestamp(rc.CreatedAt)
		if createdAt.IsZero() {
			createdAt = time.Now().UTC()
		}

		comments = append(comments, &models.Comment{
			ArticleID: articleID,
			Author:    rc.CreatedBy,
			Body:      rc.Body,
			Votes:     rc.Votes,
			CreatedAt: createdAt,
		})
	}
	return comments, nil
}

// Truncater empties every table before a reload
type Truncater interface {
	Truncate(ctx context.Context) error
}

// Result reports how many rows of each kind were loaded
type Result struct {
	Topics   int
	Users    int
	Articles int
	Comments int
}

// Seeder reloads a dataset through the repositories
type Seeder struct {
	db    Truncater
	repos *repository.Repositories
	log   zerolog.Logger
}

// NewSeeder creates a Seeder
func NewSeeder(db Truncater, repos *repository.Repositories, log zerolog.Logger) *Seeder {
	return &Seeder{
		db:    db,
		repos: repos,
		log:   log.With().Str("component", "seed").Logger(),
	}
}

// Run truncates all tables and loads ds. Articles are inserted one at a
// time, in file order, so their ids are stable across runs.
func (s *Seeder) Run(ctx context.Context, ds *Dataset) (*Result, error) {
	start := time.Now()
	var result Result

	if err := s.db.Truncate(ctx); err != nil {
		return nil, err
	}

	var err error
	if result.Topics, err = s.repos.Topic.BatchInsert(ctx, ds.Topics); err != nil {
		return nil, fmt.Errorf("failed to insert topics: %w", err)
	}
	if result.Users, err = s.repos.User.BatchInsert(ctx, ds.Users); err != nil {
		return nil, fmt.Errorf("failed to insert users: %w", err)
	}

	articles := make([]*models.Article, 0, len(ds.Articles))
	for _, ra := range ds.Articles {
		created, err := s.repos.Article.Create(ctx, &models.Article{
			Author:        ra.Author,
			Title:         ra.Title,
			Body:          ra.Body,
			Topic:         ra.Topic,
			CreatedAt:     ConvertTimestamp(ra.CreatedAt),
			Votes:         ra.Votes,
			ArticleImgURL: ra.ArticleImgURL,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to insert article %q: %w", ra.Title, err)
		}
		articles = append(articles, created)
	}
	result.Articles = len(articles)

	comments, err := FormatComments(ds.Comments, CreateRef(articles))
	if err != nil {
		return nil, err
	}
	if result.Comments, err = s.repos.Comment.BatchInsert(ctx, comments); err != nil {
		return nil, fmt.Errorf("failed to insert comments: %w", err)
	}

	s.log.Info().
		Int("topics", result.Topics).
		Int("users", result.Users).
		Int("articles", result.Articles).
		Int("comments", result.Comments).
		Dur("duration", time.Since(start)).
		Msg("Seed completed")

	return &result, nil
}

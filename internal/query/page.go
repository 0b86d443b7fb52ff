package query

import "github.com/nc-news-api/internal/apperr"

// Page is one slice of a filtered, sorted result set
type Page[T any] struct {
	Items      []T
	TotalCount int
	Page       int
	Limit      int
}

// NewPage shapes store rows into a page. total is the window count the store
// attached to every row. An empty first page is a valid result; an empty
// later page is apperr.ErrPageNotFound.
func NewPage[T any](items []T, total int, q *PageQuery) (*Page[T], error) {
	if len(items) == 0 {
		if q.Page > 1 {
			return nil, apperr.ErrPageNotFound
		}
		return &Page[T]{Items: []T{}, TotalCount: 0, Page: q.Page, Limit: q.Limit}, nil
	}
	return &Page[T]{Items: items, TotalCount: total, Page: q.Page, Limit: q.Limit}, nil
}

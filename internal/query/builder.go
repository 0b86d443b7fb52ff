// Package query validates list parameters (sorting, ordering, pagination and
// equality filters) and shapes paginated results.
package query

import (
	"math"
	"regexp"
	"sort"
	"strconv"

	"github.com/nc-news-api/internal/apperr"
)

const (
	OrderAsc  = "asc"
	OrderDesc = "desc"

	DefaultSortBy = "created_at"
	DefaultOrder  = OrderDesc
	DefaultLimit  = 10
	DefaultPage   = 1
)

var digitsRegex = regexp.MustCompile(`^\d+$`)

// Params holds raw list parameters as received from the query string.
// Empty strings mean "not supplied".
type Params struct {
	SortBy  string
	Order   string
	Limit   string
	Page    string
	Filters map[string]string
}

// Rules describes what a resource allows to be sorted and filtered on
type Rules struct {
	// SortColumns maps public sort keys to SQL expressions
	SortColumns map[string]string
	// TieBreaker is the SQL expression used as a secondary sort key
	TieBreaker string
	// Filters maps public filter names to SQL columns
	Filters      map[string]string
	DefaultSort  string
	DefaultLimit int
}

// Filter is a validated equality predicate
type Filter struct {
	Name   string
	Column string
	Value  string
}

// PageQuery is a validated, injection-safe description of a list query
type PageQuery struct {
	SortKey    string
	SortColumn string
	TieBreaker string
	Order      string
	Limit      int
	Page       int
	Offset     int
	Filters    []Filter
}

// Filter returns the value of the named filter, if present
func (q *PageQuery) Filter(name string) (string, bool) {
	for _, f := range q.Filters {
		if f.Name == name {
			return f.Value, true
		}
	}
	return "", false
}

// OrderSQL returns the ORDER BY keyword for the query direction
func (q *PageQuery) OrderSQL() string {
	if q.Order == OrderAsc {
		return "ASC"
	}
	return "DESC"
}

// Build validates params against rules. Checks run in a fixed order: sort
// column, order direction, then limit and page. Any failure is
// apperr.ErrInvalidQuery. Filter values are not checked for existence here.
func Build(params Params, rules Rules) (*PageQuery, error) {
	sortKey := params.SortBy
	if sortKey == "" {
		sortKey = rules.DefaultSort
		if sortKey == "" {
			sortKey = DefaultSortBy
		}
	}
	column, ok := rules.SortColumns[sortKey]
	if !ok {
		return nil, apperr.ErrInvalidQuery
	}

	order := params.Order
	if order == "" {
		order = DefaultOrder
	}
	if order != OrderAsc && order != OrderDesc {
		return nil, apperr.ErrInvalidQuery
	}

	defaultLimit := rules.DefaultLimit
	if defaultLimit < 1 {
		defaultLimit = DefaultLimit
	}
	limit, err := parsePositive(params.Limit, defaultLimit)
	if err != nil {
		return nil, err
	}
	page, err := parsePositive(params.Page, DefaultPage)
	if err != nil {
		return nil, err
	}

	if page > math.MaxInt/limit {
		return nil, apperr.ErrInvalidQuery
	}

	q := &PageQuery{
		SortKey:    sortKey,
		SortColumn: column,
		TieBreaker: rules.TieBreaker,
		Order:      order,
		Limit:      limit,
		Page:       page,
		Offset:     limit*page - limit,
	}

	names := make([]string, 0, len(rules.Filters))
	for name := range rules.Filters {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if value := params.Filters[name]; value != "" {
			q.Filters = append(q.Filters, Filter{Name: name, Column: rules.Filters[name], Value: value})
		}
	}

	return q, nil
}

func parsePositive(raw string, def int) (int, error) {
	if raw == "" {
		return def, nil
	}
	if !digitsRegex.MatchString(raw) {
		return 0, apperr.ErrInvalidQuery
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return 0, apperr.ErrInvalidQuery
	}
	return n, nil
}

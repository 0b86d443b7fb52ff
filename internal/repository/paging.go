package repository

import (
	"fmt"
	"strings"

	"github.com/nc-news-api/internal/query"
)

// ArticleListRules is what article listings may be sorted and filtered by
var ArticleListRules = query.Rules{
	SortColumns: map[string]string{
		"article_id":    "a.article_id",
		"title":         "a.title",
		"topic":         "a.topic",
		"author":        "a.author",
		"created_at":    "a.created_at",
		"votes":         "a.votes",
		"comment_count": "comment_count",
	},
	TieBreaker:  "a.article_id",
	Filters:     map[string]string{"topic": "a.topic"},
	DefaultSort: "created_at",
}

// CommentListRules is what an article's comments may be sorted by
var CommentListRules = query.Rules{
	SortColumns: map[string]string{
		"comment_id": "comment_id",
		"author":     "author",
		"created_at": "created_at",
		"votes":      "votes",
	},
	TieBreaker:  "comment_id",
	DefaultSort: "created_at",
}

// whereClause renders equality filters as positional predicates appended to args
func whereClause(filters []query.Filter, args []interface{}) (string, []interface{}) {
	if len(filters) == 0 {
		return "", args
	}

	predicates := make([]string, 0, len(filters))
	for _, f := range filters {
		args = append(args, f.Value)
		predicates = append(predicates, fmt.Sprintf("%s = $%d", f.Column, len(args)))
	}
	return " WHERE " + strings.Join(predicates, " AND "), args
}

// pageClause renders ORDER BY, LIMIT and OFFSET. Only allow-listed column
// expressions from the PageQuery are interpolated; limit and offset are bound.
func pageClause(q *query.PageQuery, args []interface{}) (string, []interface{}) {
	order := q.OrderSQL()
	clause := fmt.Sprintf(" ORDER BY %s %s", q.SortColumn, order)
	if q.TieBreaker != "" && q.TieBreaker != q.SortColumn {
		clause += fmt.Sprintf(", %s %s", q.TieBreaker, order)
	}

	args = append(args, q.Limit, q.Offset)
	clause += fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(args)-1, len(args))
	return clause, args
}

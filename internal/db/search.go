package db

import (
	"strings"
	"time"

	"github.com/go-pg/pg/v10/orm"
)

const (
	StatusDraft     = "draft"
	StatusPublished = "published"
	StatusArchived  = "archived"
)

const (
	RoleUser   = "user"
	RoleAuthor = "author"
	RoleAdmin  = "admin"
)

type ArticleOrder int

const (
	// OrderRecent sorts by publishedAt DESC, articleId DESC.
	OrderRecent ArticleOrder = iota
	// OrderMostViewed sorts by viewsCount DESC and falls back to OrderRecent.
	OrderMostViewed
)

// ArticleSearch holds filters for published-scoped article queries.
// Now is required: an article is visible only when status is published
// and publishedAt is set and not after Now.
type ArticleSearch struct {
	Now          time.Time
	CategoryID   *int
	CategorySlug *string
	TagSlug      *string
	Query        *string
	IsFeatured   *bool
	IsEditorPick *bool
	ExcludeID    *int
}

// Pager is an offset window over an ordered result set.
type Pager struct {
	Limit  int
	Offset int
}

func (s *ArticleSearch) apply(query *orm.Query) *orm.Query {
	query = query.
		Where(`"t"."status" = ?`, StatusPublished).
		Where(`"t"."publishedAt" IS NOT NULL`).
		Where(`"t"."publishedAt" <= ?`, s.Now)

	if s.CategoryID != nil {
		query = query.Where(`"t"."categoryId" = ?`, *s.CategoryID)
	}

	if s.CategorySlug != nil {
		query = query.Where(`"t"."categoryId" IN (SELECT c."categoryId" FROM "categories" c WHERE c."slug" = ?)`, *s.CategorySlug)
	}

	if s.TagSlug != nil {
		query = query.Where(`EXISTS (
			SELECT 1 FROM "articleTags" atg
			JOIN "tags" tg ON tg."tagId" = atg."tagId"
			WHERE atg."articleId" = "t"."articleId" AND tg."slug" = ?)`, *s.TagSlug)
	}

	if s.IsFeatured != nil {
		query = query.Where(`"t"."isFeatured" = ?`, *s.IsFeatured)
	}

	if s.IsEditorPick != nil {
		query = query.Where(`"t"."isEditorPick" = ?`, *s.IsEditorPick)
	}

	if s.ExcludeID != nil {
		query = query.Where(`"t"."articleId" <> ?`, *s.ExcludeID)
	}

	if s.Query != nil && *s.Query != "" {
		pattern := "%" + escapeLike(*s.Query) + "%"
		query = query.WhereGroup(func(q *orm.Query) (*orm.Query, error) {
			q = q.WhereOr(`"t"."title" ILIKE ?`, pattern).
				WhereOr(`"t"."excerpt" ILIKE ?`, pattern).
				WhereOr(`"t"."content" ILIKE ?`, pattern)
			return q, nil
		})
	}

	return query
}

func (o ArticleOrder) apply(query *orm.Query) *orm.Query {
	if o == OrderMostViewed {
		query = query.OrderExpr(`"t"."viewsCount" DESC`)
	}

	return query.OrderExpr(`"t"."publishedAt" DESC`).OrderExpr(`"t"."articleId" DESC`)
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeLike makes user input match literally inside an ILIKE pattern.
func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

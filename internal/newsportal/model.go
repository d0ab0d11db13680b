package newsportal

import (
	"time"

	"github.com/daniilsolovey/news-cms/internal/db"
)

const (
	DefaultLimit    = 10
	MaxLimit        = 50
	TrendingLimit   = 10
	RelatedLimit    = 5
	FeaturedLimit   = 5
	TopStoriesLimit = 4
	EditorPickLimit = 5
	FlashNewsLimit  = 12
	ShelfLimit      = 5
	MinQueryLength  = 2
)

type Category struct {
	db.Category
}

type Tag struct {
	db.Tag
	ArticlesCount int
}

// Author is the public part of a user attached to articles.
type Author struct {
	ID     int
	Name   string
	Email  string
	Avatar *string
	Bio    *string
}

type Article struct {
	db.Article
	Category *Category
	Author   *Author
	Tags     []Tag
	Related  []Article
}

// ArticleFilter narrows published-article listings. Nil fields are ignored.
type ArticleFilter struct {
	CategorySlug *string
	TagSlug      *string
	Query        *string
}

// PageRequest is a 1-based page with a page size.
type PageRequest struct {
	Page  int
	Limit int
}

type Pagination struct {
	Page       int
	Limit      int
	Total      int
	TotalPages int
	HasNext    bool
	HasPrev    bool
}

type ArticlePage struct {
	Articles   []Article
	Pagination Pagination
}

// Shelf is a homepage block of recent articles from one category.
type Shelf struct {
	Key          string
	CategorySlug string
	Limit        int
}

type Homepage struct {
	Lead        *Article
	TopStories  []Article
	EditorPicks []Article
	FlashNews   []Article
	Shelves     map[string][]Article
	GeneratedAt time.Time
}

// Actor is the authenticated user performing a write.
type Actor struct {
	ID   int
	Role string
}

func (a Actor) CanWrite() bool {
	return a.Role == db.RoleAuthor || a.Role == db.RoleAdmin
}

func (a Actor) IsAdmin() bool {
	return a.Role == db.RoleAdmin
}

type CategoryInput struct {
	Name        *string
	Slug        *string
	Description *string
	Color       *string
	OrderNumber *int
	IsActive    *bool
}

type TagInput struct {
	Name *string
	Slug *string
}

type ArticleInput struct {
	Slug            *string
	Title           *string
	Excerpt         *string
	Content         *string
	CategoryID      *int
	FeaturedImage   *string
	ImageAlt        *string
	Status          *string
	IsFeatured      *bool
	IsEditorPick    *bool
	MetaTitle       *string
	MetaDescription *string
	MetaKeywords    []string
	OgImage         *string
	PublishedAt     *time.Time
	TagSlugs        []string
}

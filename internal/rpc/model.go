package rpc

import (
	"time"

	"github.com/daniilsolovey/news-cms/internal/newsportal"
)

type ArticleFilter struct {
	//category optional category slug
	Category *string `json:"category,omitempty"`
	//tag optional tag slug
	Tag *string `json:"tag,omitempty"`
	//page=1 page number (1-based)
	Page *int `json:"page,omitempty"`
	//limit=10 items per page
	Limit *int `json:"limit,omitempty"`
}

func (f ArticleFilter) ToModel() newsportal.ArticleFilter {
	return newsportal.ArticleFilter{
		CategorySlug: f.Category,
		TagSlug:      f.Tag,
	}
}

func (f ArticleFilter) PageRequest() newsportal.PageRequest {
	var p newsportal.PageRequest
	if f.Page != nil {
		p.Page = *f.Page
	}
	if f.Limit != nil {
		p.Limit = *f.Limit
	}
	return p
}

type Category struct {
	CategoryID  int     `json:"categoryId"`
	Name        string  `json:"name"`
	Slug        string  `json:"slug"`
	Description *string `json:"description"`
	Color       *string `json:"color"`
	Order       int     `json:"order"`
}

type Tag struct {
	TagID         int    `json:"tagId"`
	Name          string `json:"name"`
	Slug          string `json:"slug"`
	ArticlesCount int    `json:"articlesCount,omitempty"`
}

type Author struct {
	UserID int     `json:"userId"`
	Name   string  `json:"name"`
	Avatar *string `json:"avatar"`
}

// ArticleSummary is an article without its body.
type ArticleSummary struct {
	ArticleID    int        `json:"articleId"`
	Slug         string     `json:"slug"`
	Title        string     `json:"title"`
	Excerpt      *string    `json:"excerpt"`
	Image        *string    `json:"image"`
	IsFeatured   bool       `json:"isFeatured"`
	IsEditorPick bool       `json:"isEditorPick"`
	ViewsCount   int64      `json:"viewsCount"`
	PublishedAt  *time.Time `json:"publishedAt"`
	Category     *Category  `json:"category"`
	Author       *Author    `json:"author"`
}

type Article struct {
	ArticleSummary
	Content         string           `json:"content"`
	ImageAlt        *string          `json:"imageAlt"`
	MetaTitle       *string          `json:"metaTitle"`
	MetaDescription *string          `json:"metaDescription"`
	MetaKeywords    []string         `json:"metaKeywords"`
	OgImage         *string          `json:"ogImage"`
	Tags            []Tag            `json:"tags"`
	Related         []ArticleSummary `json:"related,omitempty"`
}

type Pagination struct {
	Page       int  `json:"page"`
	Limit      int  `json:"limit"`
	Total      int  `json:"total"`
	TotalPages int  `json:"totalPages"`
	HasNext    bool `json:"hasNext"`
	HasPrev    bool `json:"hasPrev"`
}

type ArticlePage struct {
	Articles   []ArticleSummary `json:"articles"`
	Pagination Pagination       `json:"pagination"`
}

type Shelf struct {
	Key      string           `json:"key"`
	Articles []ArticleSummary `json:"articles"`
}

type Homepage struct {
	Lead        *ArticleSummary  `json:"lead"`
	TopStories  []ArticleSummary `json:"topStories"`
	EditorPicks []ArticleSummary `json:"editorPicks"`
	FlashNews   []ArticleSummary `json:"flashNews"`
	Shelves     []Shelf          `json:"shelves"`
}

package rpc

import (
	"sort"

	"github.com/daniilsolovey/news-cms/internal/newsportal"
)

func NewCategory(c newsportal.Category) Category {
	return Category{
		CategoryID:  c.ID,
		Name:        c.Name,
		Slug:        c.Slug,
		Description: c.Description,
		Color:       c.Color,
		Order:       c.OrderNumber,
	}
}

func NewCategories(in []newsportal.Category) []Category {
	out := make([]Category, len(in))
	for i := range in {
		out[i] = NewCategory(in[i])
	}
	return out
}

func NewTag(t newsportal.Tag) Tag {
	return Tag{
		TagID:         t.ID,
		Name:          t.Name,
		Slug:          t.Slug,
		ArticlesCount: t.ArticlesCount,
	}
}

func NewTags(in []newsportal.Tag) []Tag {
	out := make([]Tag, len(in))
	for i := range in {
		out[i] = NewTag(in[i])
	}
	return out
}

func NewArticleSummary(a newsportal.Article) ArticleSummary {
	summary := ArticleSummary{
		ArticleID:    a.ID,
		Slug:         a.Slug,
		Title:        a.Title,
		Excerpt:      a.Excerpt,
		Image:        a.FeaturedImage,
		IsFeatured:   a.IsFeatured,
		IsEditorPick: a.IsEditorPick,
		ViewsCount:   a.ViewsCount,
		PublishedAt:  a.PublishedAt,
	}

	if a.Category != nil {
		c := NewCategory(*a.Category)
		summary.Category = &c
	}

	if a.Author != nil {
		summary.Author = &Author{UserID: a.Author.ID, Name: a.Author.Name, Avatar: a.Author.Avatar}
	}

	return summary
}

func NewArticleSummaries(in []newsportal.Article) []ArticleSummary {
	out := make([]ArticleSummary, len(in))
	for i := range in {
		out[i] = NewArticleSummary(in[i])
	}
	return out
}

func NewArticle(a newsportal.Article) Article {
	article := Article{
		ArticleSummary:  NewArticleSummary(a),
		Content:         a.Content,
		ImageAlt:        a.ImageAlt,
		MetaTitle:       a.MetaTitle,
		MetaDescription: a.MetaDescription,
		MetaKeywords:    a.MetaKeywords,
		OgImage:         a.OgImage,
		Tags:            NewTags(a.Tags),
	}

	if a.Related != nil {
		article.Related = NewArticleSummaries(a.Related)
	}

	return article
}

func NewArticlePage(p *newsportal.ArticlePage) ArticlePage {
	return ArticlePage{
		Articles: NewArticleSummaries(p.Articles),
		Pagination: Pagination{
			Page:       p.Pagination.Page,
			Limit:      p.Pagination.Limit,
			Total:      p.Pagination.Total,
			TotalPages: p.Pagination.TotalPages,
			HasNext:    p.Pagination.HasNext,
			HasPrev:    p.Pagination.HasPrev,
		},
	}
}

// NewHomepage lists shelves sorted by key so responses are stable.
func NewHomepage(h *newsportal.Homepage) Homepage {
	homepage := Homepage{
		TopStories:  NewArticleSummaries(h.TopStories),
		EditorPicks: NewArticleSummaries(h.EditorPicks),
		FlashNews:   NewArticleSummaries(h.FlashNews),
		Shelves:     make([]Shelf, 0, len(h.Shelves)),
	}

	if h.Lead != nil {
		lead := NewArticleSummary(*h.Lead)
		homepage.Lead = &lead
	}

	for key, list := range h.Shelves {
		homepage.Shelves = append(homepage.Shelves, Shelf{Key: key, Articles: NewArticleSummaries(list)})
	}
	sort.Slice(homepage.Shelves, func(i, j int) bool {
		return homepage.Shelves[i].Key < homepage.Shelves[j].Key
	})

	return homepage
}

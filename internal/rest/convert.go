package rest

import (
	"bytes"
	"encoding/json"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/daniilsolovey/news-cms/internal/auth"
	"github.com/daniilsolovey/news-cms/internal/db"
	"github.com/daniilsolovey/news-cms/internal/newsportal"
)

// markdown renders article bodies. Raw HTML in the source is not passed through.
var markdown = goldmark.New(goldmark.WithExtensions(extension.GFM))

func Map[From, To any](list []From, converter func(From) To) []To {
	result := make([]To, len(list))
	for i := range list {
		result[i] = converter(list[i])
	}
	return result
}

func articleHref(slug string) string {
	return "/article/" + slug
}

// relativeTime labels t relative to now, e.g. "3 hours ago".
func relativeTime(t *time.Time, now time.Time) string {
	if t == nil {
		return ""
	}

	return humanize.RelTime(*t, now, "ago", "from now")
}

func renderMarkdown(src string) string {
	var buf bytes.Buffer
	if err := markdown.Convert([]byte(src), &buf); err != nil {
		return ""
	}

	return buf.String()
}

func imageAlt(a newsportal.Article) string {
	if a.ImageAlt != nil {
		return *a.ImageAlt
	}

	return a.Title
}

func utc(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}

	u := t.UTC()
	return &u
}

func NewArticleCard(a newsportal.Article, now time.Time) ArticleCard {
	card := ArticleCard{
		ID:          a.ID,
		Slug:        a.Slug,
		Href:        articleHref(a.Slug),
		Title:       a.Title,
		Excerpt:     a.Excerpt,
		Timestamp:   relativeTime(a.PublishedAt, now),
		PublishedAt: utc(a.PublishedAt),
		Image:       a.FeaturedImage,
		ImageAlt:    imageAlt(a),
	}

	if a.Category != nil {
		card.Category = a.Category.Name
		card.CategorySlug = a.Category.Slug
	}

	if a.Author != nil {
		card.Author = &CardAuthor{
			ID:     a.Author.ID,
			Name:   a.Author.Name,
			Avatar: a.Author.Avatar,
		}
	}

	return card
}

func NewArticleCards(list []newsportal.Article, now time.Time) []ArticleCard {
	return Map(list, func(a newsportal.Article) ArticleCard {
		return NewArticleCard(a, now)
	})
}

func NewArticle(a newsportal.Article, now time.Time) Article {
	article := Article{
		ID:              a.ID,
		Slug:            a.Slug,
		Href:            articleHref(a.Slug),
		Title:           a.Title,
		Excerpt:         a.Excerpt,
		Content:         a.Content,
		ContentHTML:     renderMarkdown(a.Content),
		Timestamp:       relativeTime(a.PublishedAt, now),
		PublishedAt:     utc(a.PublishedAt),
		Image:           a.FeaturedImage,
		ImageAlt:        imageAlt(a),
		ViewsCount:      a.ViewsCount,
		Status:          a.Status,
		IsFeatured:      a.IsFeatured,
		IsEditorPick:    a.IsEditorPick,
		Tags:            Map(a.Tags, NewArticleTag),
		MetaTitle:       a.MetaTitle,
		MetaDescription: a.MetaDescription,
		MetaKeywords:    a.MetaKeywords,
		OgImage:         a.OgImage,
	}

	if a.MetaKeywords == nil {
		article.MetaKeywords = []string{}
	}

	if a.Category != nil {
		article.Category = a.Category.Name
		article.CategorySlug = a.Category.Slug
	}

	if a.Author != nil {
		article.Author = &Author{
			ID:     a.Author.ID,
			Name:   a.Author.Name,
			Email:  a.Author.Email,
			Bio:    a.Author.Bio,
			Avatar: a.Author.Avatar,
		}
	}

	if a.Related != nil {
		article.RelatedArticles = NewArticleCards(a.Related, now)
	}

	return article
}

func NewArticleTag(t newsportal.Tag) ArticleTag {
	return ArticleTag{
		ID:   t.ID,
		Name: t.Name,
		Slug: t.Slug,
	}
}

func NewCategory(c newsportal.Category) Category {
	return Category{
		ID:          c.ID,
		Name:        c.Name,
		Slug:        c.Slug,
		Description: c.Description,
		Color:       c.Color,
		Order:       c.OrderNumber,
		IsActive:    c.IsActive,
	}
}

func NewTag(t newsportal.Tag) Tag {
	return Tag{
		ID:            t.ID,
		Name:          t.Name,
		Slug:          t.Slug,
		ArticlesCount: t.ArticlesCount,
	}
}

func NewPagination(p newsportal.Pagination) Pagination {
	return Pagination{
		Page:       p.Page,
		Limit:      p.Limit,
		Total:      p.Total,
		TotalPages: p.TotalPages,
		HasNext:    p.HasNext,
		HasPrev:    p.HasPrev,
	}
}

func NewArticlePage(p *newsportal.ArticlePage, now time.Time) ArticlePage {
	return ArticlePage{
		Data:       NewArticleCards(p.Articles, now),
		Pagination: NewPagination(p.Pagination),
	}
}

func NewHomepage(h *newsportal.Homepage, now time.Time) Homepage {
	homepage := Homepage{
		TopStories:     NewArticleCards(h.TopStories, now),
		EditorPicks:    NewArticleCards(h.EditorPicks, now),
		FlashNews:      NewArticleCards(h.FlashNews, now),
		DecodeSections: []ArticleCard{},
		Shelves:        make(map[string][]ArticleCard, len(h.Shelves)),
	}

	if h.Lead != nil {
		lead := NewArticleCard(*h.Lead, now)
		homepage.LeadArticle = &lead
	}

	for key, list := range h.Shelves {
		homepage.Shelves[key] = NewArticleCards(list, now)
	}

	return homepage
}

// MarshalJSON flattens shelves next to the fixed blocks.
func (h Homepage) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(h.Shelves)+5)
	for key, list := range h.Shelves {
		out[key] = list
	}

	out["leadArticle"] = h.LeadArticle
	out["topStories"] = h.TopStories
	out["editorPicks"] = h.EditorPicks
	out["flashNews"] = h.FlashNews
	out["decodeSections"] = h.DecodeSections

	return json.Marshal(out)
}

func NewUser(u *db.User) User {
	return User{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Role:      u.Role,
		Avatar:    u.Avatar,
		Bio:       u.Bio,
		Provider:  u.Provider,
		CreatedAt: u.CreatedAt,
	}
}

func NewAuthResponse(message string, s *auth.Session) AuthResponse {
	return AuthResponse{
		Status:  "success",
		Message: message,
		User:    NewUser(s.User),
		Authorization: Authorization{
			Token:     s.Token,
			Type:      "bearer",
			ExpiresIn: s.ExpiresIn,
		},
	}
}

func (r CategoryRequest) ToModel() newsportal.CategoryInput {
	return newsportal.CategoryInput{
		Name:        r.Name,
		Slug:        r.Slug,
		Description: r.Description,
		Color:       r.Color,
		OrderNumber: r.Order,
		IsActive:    r.IsActive,
	}
}

func (r TagRequest) ToModel() newsportal.TagInput {
	return newsportal.TagInput{
		Name: r.Name,
		Slug: r.Slug,
	}
}

func (r ArticleRequest) ToModel() newsportal.ArticleInput {
	return newsportal.ArticleInput{
		Slug:            r.Slug,
		Title:           r.Title,
		Excerpt:         r.Excerpt,
		Content:         r.Content,
		CategoryID:      r.CategoryID,
		FeaturedImage:   r.FeaturedImage,
		ImageAlt:        r.ImageAlt,
		Status:          r.Status,
		IsFeatured:      r.IsFeatured,
		IsEditorPick:    r.IsEditorPick,
		MetaTitle:       r.MetaTitle,
		MetaDescription: r.MetaDescription,
		MetaKeywords:    r.MetaKeywords,
		OgImage:         r.OgImage,
		PublishedAt:     r.PublishedAt,
		TagSlugs:        r.Tags,
	}
}

func (r RegisterRequest) ToModel() auth.RegisterInput {
	return auth.RegisterInput{
		Name:                 r.Name,
		Email:                r.Email,
		Password:             r.Password,
		PasswordConfirmation: r.PasswordConfirmation,
		Role:                 r.Role,
	}
}

func (r ResetPasswordRequest) ToModel() auth.ResetInput {
	return auth.ResetInput{
		Email:                r.Email,
		Token:                r.Token,
		Password:             r.Password,
		PasswordConfirmation: r.PasswordConfirmation,
	}
}

package newsportal

import (
	"github.com/daniilsolovey/news-cms/internal/db"
)

func NewCategory(c *db.Category) *Category {
	if c == nil {
		return nil
	}

	return &Category{Category: *c}
}

func NewTag(t *db.Tag) Tag {
	return Tag{Tag: *t}
}

func NewTagCount(t *db.TagCount) Tag {
	return Tag{
		Tag: db.Tag{
			ID:        t.ID,
			Slug:      t.Slug,
			Name:      t.Name,
			CreatedAt: t.CreatedAt,
		},
		ArticlesCount: t.ArticlesCount,
	}
}

func NewAuthor(u *db.User) *Author {
	if u == nil {
		return nil
	}

	return &Author{
		ID:     u.ID,
		Name:   u.Name,
		Email:  u.Email,
		Avatar: u.Avatar,
		Bio:    u.Bio,
	}
}

// NewArticle maps the row and its joined relations. Relations that were not
// joined stay nil.
func NewArticle(a *db.Article) Article {
	article := Article{
		Article:  *a,
		Category: NewCategory(a.Category),
		Author:   NewAuthor(a.Author),
	}
	article.Article.Category = nil
	article.Article.Author = nil

	return article
}

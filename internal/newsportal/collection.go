package newsportal

import (
	"github.com/daniilsolovey/news-cms/internal/db"
)

type (
	Articles   []Article
	Categories []Category
	Tags       []Tag
)

func NewArticles(in []db.Article) Articles {
	out := make(Articles, len(in))
	for i := range in {
		out[i] = NewArticle(&in[i])
	}
	return out
}

func NewCategories(in []db.Category) Categories {
	out := make(Categories, len(in))
	for i := range in {
		out[i] = *NewCategory(&in[i])
	}
	return out
}

func NewTagCounts(in []db.TagCount) Tags {
	out := make(Tags, len(in))
	for i := range in {
		out[i] = NewTagCount(&in[i])
	}
	return out
}

func (ll Articles) IDs() []int {
	ids := make([]int, len(ll))
	for i := range ll {
		ids[i] = ll[i].ID
	}
	return ids
}

// SetTags attaches tags from join rows; articles without rows get an empty set.
func (ll Articles) SetTags(rows []db.ArticleTag) {
	byArticle := make(map[int][]Tag, len(ll))
	for i := range rows {
		if rows[i].Tag == nil {
			continue
		}
		byArticle[rows[i].ArticleID] = append(byArticle[rows[i].ArticleID], NewTag(rows[i].Tag))
	}

	for i := range ll {
		ll[i].Tags = byArticle[ll[i].ID]
		if ll[i].Tags == nil {
			ll[i].Tags = []Tag{}
		}
	}
}

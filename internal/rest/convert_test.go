package rest

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/daniilsolovey/news-cms/internal/db"
	"github.com/daniilsolovey/news-cms/internal/newsportal"
)

var testNow = time.Date(2024, 1, 14, 12, 0, 0, 0, time.UTC)

func strPtr(s string) *string { return &s }

func timePtr(t time.Time) *time.Time { return &t }

func testArticle(slug string, published time.Time) newsportal.Article {
	return newsportal.Article{
		Article: db.Article{
			ID:          7,
			Slug:        slug,
			Title:       "Title of " + slug,
			Content:     "Some **bold** text",
			Status:      db.StatusPublished,
			PublishedAt: timePtr(published),
		},
		Category: &newsportal.Category{Category: db.Category{ID: 1, Name: "Technology", Slug: "tech"}},
		Author:   &newsportal.Author{ID: 2, Name: "Jane", Email: "jane@example.com"},
		Tags: []newsportal.Tag{
			{Tag: db.Tag{ID: 3, Name: "Go", Slug: "go"}},
		},
	}
}

func TestRelativeTime(t *testing.T) {
	tests := []struct {
		name string
		in   *time.Time
		want string
	}{
		{"Nil", nil, ""},
		{"Now", timePtr(testNow), "now"},
		{"Minutes", timePtr(testNow.Add(-30 * time.Minute)), "30 minutes ago"},
		{"OneHour", timePtr(testNow.Add(-time.Hour)), "1 hour ago"},
		{"Hours", timePtr(testNow.Add(-3 * time.Hour)), "3 hours ago"},
		{"Days", timePtr(testNow.Add(-72 * time.Hour)), "3 days ago"},
		{"Future", timePtr(testNow.Add(3 * time.Hour)), "3 hours from now"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, relativeTime(tt.in, testNow))
		})
	}
}

func TestNewArticleCard(t *testing.T) {
	t.Run("Fields", func(t *testing.T) {
		a := testArticle("docker-guide", testNow.Add(-3*time.Hour))
		card := NewArticleCard(a, testNow)

		assert.Equal(t, 7, card.ID)
		assert.Equal(t, "/article/docker-guide", card.Href)
		assert.Equal(t, "Technology", card.Category)
		assert.Equal(t, "tech", card.CategorySlug)
		assert.Equal(t, "3 hours ago", card.Timestamp)
		require.NotNil(t, card.Author)
		assert.Equal(t, "Jane", card.Author.Name)
	})

	t.Run("ImageAltFallsBackToTitle", func(t *testing.T) {
		a := testArticle("no-alt", testNow)
		assert.Equal(t, a.Title, NewArticleCard(a, testNow).ImageAlt)

		a.ImageAlt = strPtr("A whale")
		assert.Equal(t, "A whale", NewArticleCard(a, testNow).ImageAlt)
	})

	t.Run("PublishedAtInUTC", func(t *testing.T) {
		loc := time.FixedZone("UTC+7", 7*60*60)
		a := testArticle("zoned", testNow.In(loc))

		card := NewArticleCard(a, testNow)
		require.NotNil(t, card.PublishedAt)
		assert.Equal(t, time.UTC, card.PublishedAt.Location())
		assert.True(t, testNow.Equal(*card.PublishedAt))
	})

	t.Run("NoCategory", func(t *testing.T) {
		a := testArticle("orphan", testNow)
		a.Category = nil
		a.Author = nil

		card := NewArticleCard(a, testNow)
		assert.Empty(t, card.Category)
		assert.Nil(t, card.Author)
	})
}

func TestNewArticle(t *testing.T) {
	a := testArticle("go-concurrency", testNow.Add(-time.Hour))
	a.Related = []newsportal.Article{testArticle("related", testNow.Add(-2*time.Hour))}

	article := NewArticle(a, testNow)

	assert.Contains(t, article.ContentHTML, "<strong>bold</strong>")
	assert.Equal(t, "Some **bold** text", article.Content)
	assert.Equal(t, []ArticleTag{{ID: 3, Name: "Go", Slug: "go"}}, article.Tags)
	assert.Equal(t, []string{}, article.MetaKeywords)
	require.Len(t, article.RelatedArticles, 1)
	assert.Equal(t, "2 hours ago", article.RelatedArticles[0].Timestamp)
	require.NotNil(t, article.Author)
	assert.Equal(t, "jane@example.com", article.Author.Email)

	a.Related = nil
	raw, err := json.Marshal(NewArticle(a, testNow))
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "relatedArticles")
}

func TestRenderMarkdown(t *testing.T) {
	assert.Equal(t, "<h1>Title</h1>\n", renderMarkdown("# Title"))
	assert.Contains(t, renderMarkdown("| a | b |\n|---|---|\n| 1 | 2 |"), "<table>")
	assert.NotContains(t, renderMarkdown("<script>alert(1)</script>"), "<script>")
}

func TestHomepage_MarshalJSON(t *testing.T) {
	h := &newsportal.Homepage{
		Lead:        &newsportal.Article{Article: db.Article{ID: 1, Slug: "lead", Title: "Lead"}},
		TopStories:  []newsportal.Article{},
		EditorPicks: []newsportal.Article{},
		FlashNews:   []newsportal.Article{},
		Shelves: map[string][]newsportal.Article{
			"newsPlus":    {testArticle("plus", testNow)},
			"newsInsider": {},
		},
	}

	raw, err := json.Marshal(NewHomepage(h, testNow))
	require.NoError(t, err)

	var got map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(raw, &got))

	for _, key := range []string{"leadArticle", "topStories", "editorPicks", "flashNews", "decodeSections", "newsPlus", "newsInsider"} {
		assert.Contains(t, got, key)
	}
	assert.NotContains(t, got, "Shelves")
	assert.JSONEq(t, `[]`, string(got["decodeSections"]))
	assert.JSONEq(t, `[]`, string(got["newsInsider"]))

	var plus []ArticleCard
	require.NoError(t, json.Unmarshal(got["newsPlus"], &plus))
	require.Len(t, plus, 1)
	assert.Equal(t, "plus", plus[0].Slug)

	t.Run("NoLead", func(t *testing.T) {
		raw, err := json.Marshal(NewHomepage(&newsportal.Homepage{}, testNow))
		require.NoError(t, err)
		assert.Contains(t, string(raw), `"leadArticle":null`)
	})
}

func TestArticleRequest_ToModel(t *testing.T) {
	var req ArticleRequest
	body := `{"title":"T","category_id":3,"tags":["go","docker"],"is_featured":true,"published_at":"2024-01-14T10:00:00Z"}`
	require.NoError(t, json.Unmarshal([]byte(body), &req))

	in := req.ToModel()
	require.NotNil(t, in.Title)
	assert.Equal(t, "T", *in.Title)
	require.NotNil(t, in.CategoryID)
	assert.Equal(t, 3, *in.CategoryID)
	assert.Equal(t, []string{"go", "docker"}, in.TagSlugs)
	require.NotNil(t, in.IsFeatured)
	assert.True(t, *in.IsFeatured)
	require.NotNil(t, in.PublishedAt)
	assert.True(t, in.PublishedAt.Equal(testNow.Add(-2*time.Hour)))
	assert.Nil(t, in.Slug)
	assert.Nil(t, in.Status)
}

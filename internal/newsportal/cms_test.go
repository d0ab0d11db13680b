package newsportal

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/daniilsolovey/news-cms/internal/cache"
	"github.com/daniilsolovey/news-cms/internal/db"
)

var (
	admin  = Actor{ID: 1, Role: db.RoleAdmin}
	author = Actor{ID: 2, Role: db.RoleAuthor}
	reader = Actor{ID: 3, Role: db.RoleUser}
)

func TestManager_CreateCategory(t *testing.T) {
	ctx := context.Background()

	t.Run("RequiresWriter", func(t *testing.T) {
		m, _ := newTestManager(&stubStore{})

		_, err := m.CreateCategory(ctx, reader, CategoryInput{Name: strPtr("Tech"), Slug: strPtr("tech")})
		assert.ErrorIs(t, err, ErrForbidden)
	})

	t.Run("ValidatesInput", func(t *testing.T) {
		m, _ := newTestManager(&stubStore{})

		_, err := m.CreateCategory(ctx, author, CategoryInput{Slug: strPtr("Not A Slug"), Color: strPtr("#12345678")})
		ve, ok := IsValidation(err)
		require.True(t, ok, "got %v", err)
		assert.Contains(t, ve, "name")
		assert.Contains(t, ve, "slug")
		assert.Contains(t, ve, "color")
	})

	t.Run("MapsUniqueViolationToField", func(t *testing.T) {
		store := &stubStore{
			addCategory: func(*db.Category) (*db.Category, error) {
				return nil, uniqueViolation("categories_name_key")
			},
		}
		m, _ := newTestManager(store)

		_, err := m.CreateCategory(ctx, author, CategoryInput{Name: strPtr("Tech"), Slug: strPtr("tech")})
		ve, ok := IsValidation(err)
		require.True(t, ok, "got %v", err)
		assert.Contains(t, ve, "name")
	})

	t.Run("EvictsListAndHomepage", func(t *testing.T) {
		store := &stubStore{
			addCategory: func(c *db.Category) (*db.Category, error) {
				assert.True(t, c.IsActive, "new categories are active by default")
				assert.Equal(t, testNow, c.CreatedAt)
				c.ID = 10
				return c, nil
			},
		}
		m, c := newTestManager(store)

		category, err := m.CreateCategory(ctx, author, CategoryInput{Name: strPtr("Tech"), Slug: strPtr("tech"), Color: strPtr("#3B82F6")})
		require.NoError(t, err)
		assert.Equal(t, 10, category.ID)
		assert.ElementsMatch(t, []string{cache.KeyCategoryList, cache.KeyHomepage}, c.deleted)
	})

	t.Run("EvictionFailureFailsRequest", func(t *testing.T) {
		m, c := newTestManager(&stubStore{})
		c.deleteErr = errors.New("redis down")

		_, err := m.CreateCategory(ctx, author, CategoryInput{Name: strPtr("Tech"), Slug: strPtr("tech")})
		assert.ErrorIs(t, err, c.deleteErr)
	})
}

func TestManager_UpdateCategory(t *testing.T) {
	ctx := context.Background()

	t.Run("NotFound", func(t *testing.T) {
		m, _ := newTestManager(&stubStore{})

		_, err := m.UpdateCategory(ctx, author, 5, CategoryInput{Name: strPtr("X")})
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("AppliesPartialInput", func(t *testing.T) {
		var saved *db.Category
		store := &stubStore{
			categoryByID: func(id int) (*db.Category, error) {
				return &db.Category{ID: id, Slug: "tech", Name: "Tech", OrderNumber: 1, IsActive: true}, nil
			},
			updateCategory: func(c *db.Category) (bool, error) {
				saved = c
				return true, nil
			},
		}
		m, c := newTestManager(store)

		_, err := m.UpdateCategory(ctx, admin, 5, CategoryInput{IsActive: boolPtr(false), OrderNumber: intPtr(7)})
		require.NoError(t, err)
		assert.Equal(t, "tech", saved.Slug)
		assert.False(t, saved.IsActive)
		assert.Equal(t, 7, saved.OrderNumber)
		assert.ElementsMatch(t, []string{cache.KeyCategoryList, cache.KeyHomepage}, c.deleted)
	})

	t.Run("RejectsEmptyName", func(t *testing.T) {
		m, _ := newTestManager(&stubStore{})

		_, err := m.UpdateCategory(ctx, admin, 5, CategoryInput{Name: strPtr("")})
		_, ok := IsValidation(err)
		assert.True(t, ok)
	})
}

func TestManager_DeleteCategory(t *testing.T) {
	ctx := context.Background()
	store := &stubStore{
		categoryByID: func(id int) (*db.Category, error) {
			return &db.Category{ID: id, Slug: "tech"}, nil
		},
		categoryHasArticles: func(int) (bool, error) { return true, nil },
	}
	m, c := newTestManager(store)

	err := m.DeleteCategory(ctx, admin, 1)
	require.ErrorIs(t, err, ErrCategoryNotEmpty)
	assert.ErrorIs(t, err, ErrConflict)
	assert.Equal(t, "Cannot delete category with existing articles", err.Error())
	assert.Equal(t, 0, store.count("DeleteCategory"), "category must be retained")
	assert.Empty(t, c.deleted)

	store.categoryHasArticles = func(int) (bool, error) { return false, nil }
	require.NoError(t, m.DeleteCategory(ctx, admin, 1))
	assert.Equal(t, 1, store.count("DeleteCategory"))
}

func TestManager_DeleteCategory_ArticleAddedConcurrently(t *testing.T) {
	ctx := context.Background()
	store := &stubStore{
		categoryByID: func(id int) (*db.Category, error) {
			return &db.Category{ID: id, Slug: "tech"}, nil
		},
		deleteCategory: func(int) (bool, error) {
			return false, foreignKeyViolation("articles_categoryId_fkey")
		},
	}
	m, c := newTestManager(store)

	err := m.DeleteCategory(ctx, admin, 1)
	require.ErrorIs(t, err, ErrCategoryNotEmpty)
	assert.Empty(t, c.deleted)
}

func TestManager_Tags_Writes(t *testing.T) {
	ctx := context.Background()

	t.Run("CreateEvictsTagList", func(t *testing.T) {
		m, c := newTestManager(&stubStore{})

		tag, err := m.CreateTag(ctx, author, TagInput{Name: strPtr("Go"), Slug: strPtr("go")})
		require.NoError(t, err)
		assert.Equal(t, "go", tag.Slug)
		assert.Equal(t, []string{cache.KeyTagList}, c.deleted)
	})

	t.Run("UpdateMapsUniqueSlug", func(t *testing.T) {
		store := &stubStore{
			tagByID:   func(id int) (*db.Tag, error) { return &db.Tag{ID: id, Slug: "go", Name: "Go"}, nil },
			updateTag: func(*db.Tag) (bool, error) { return false, uniqueViolation("tags_slug_key") },
		}
		m, _ := newTestManager(store)

		_, err := m.UpdateTag(ctx, author, 1, TagInput{Slug: strPtr("docker")})
		ve, ok := IsValidation(err)
		require.True(t, ok)
		assert.Contains(t, ve, "slug")
	})

	t.Run("DeleteMissing", func(t *testing.T) {
		m, _ := newTestManager(&stubStore{deleteTag: func(int) (bool, error) { return false, nil }})

		assert.ErrorIs(t, m.DeleteTag(ctx, author, 1), ErrNotFound)
	})
}

func TestManager_CreateArticle(t *testing.T) {
	ctx := context.Background()

	newStore := func(saved *db.Article, savedTags *[]int) *stubStore {
		return &stubStore{
			categoryByID: func(id int) (*db.Category, error) {
				if id == 1 {
					return &db.Category{ID: 1, Slug: "tech", Name: "Technology"}, nil
				}
				return nil, nil
			},
			tagsBySlugs: func(slugs []string) ([]db.Tag, error) {
				var tags []db.Tag
				for _, s := range slugs {
					if s == "go" {
						tags = append(tags, db.Tag{ID: 2, Slug: "go"})
					}
				}
				return tags, nil
			},
			saveArticle: func(a *db.Article, tagIDs []int) error {
				a.ID = 42
				*saved = *a
				*savedTags = tagIDs
				return nil
			},
			articleByID: func(id int) (*db.Article, error) {
				a := *saved
				a.Category = &db.Category{ID: 1, Slug: "tech", Name: "Technology"}
				return &a, nil
			},
		}
	}

	input := func() ArticleInput {
		return ArticleInput{
			Title:      strPtr("Go Concurrency"),
			Slug:       strPtr("go-concurrency"),
			Content:    strPtr("Goroutines"),
			CategoryID: intPtr(1),
			TagSlugs:   []string{"go", "go"},
		}
	}

	t.Run("DraftByDefault", func(t *testing.T) {
		var saved db.Article
		var tags []int
		m, c := newTestManager(newStore(&saved, &tags))

		article, err := m.CreateArticle(ctx, author, input())
		require.NoError(t, err)
		assert.Equal(t, 42, article.ID)
		assert.Equal(t, db.StatusDraft, saved.Status)
		assert.Nil(t, saved.PublishedAt)
		assert.Equal(t, author.ID, saved.AuthorID)
		assert.Equal(t, []int{2}, tags)
		assert.ElementsMatch(t, []string{cache.KeyHomepage, cache.KeyTagList}, c.deleted)
	})

	t.Run("PublishingStampsPublishedAt", func(t *testing.T) {
		var saved db.Article
		var tags []int
		m, _ := newTestManager(newStore(&saved, &tags))

		in := input()
		in.Status = strPtr(db.StatusPublished)
		_, err := m.CreateArticle(ctx, author, in)
		require.NoError(t, err)
		require.NotNil(t, saved.PublishedAt)
		assert.Equal(t, testNow, *saved.PublishedAt)
	})

	t.Run("KeepsFuturePublishedAt", func(t *testing.T) {
		var saved db.Article
		var tags []int
		m, _ := newTestManager(newStore(&saved, &tags))

		future := testNow.AddDate(0, 0, 1)
		in := input()
		in.Status = strPtr(db.StatusPublished)
		in.PublishedAt = &future
		_, err := m.CreateArticle(ctx, author, in)
		require.NoError(t, err)
		assert.Equal(t, future, *saved.PublishedAt)
	})

	t.Run("UnknownTag", func(t *testing.T) {
		var saved db.Article
		var tags []int
		m, _ := newTestManager(newStore(&saved, &tags))

		in := input()
		in.TagSlugs = []string{"rust"}
		_, err := m.CreateArticle(ctx, author, in)
		ve, ok := IsValidation(err)
		require.True(t, ok, "got %v", err)
		assert.Contains(t, ve, "tags")
	})

	t.Run("UnknownCategory", func(t *testing.T) {
		var saved db.Article
		var tags []int
		m, _ := newTestManager(newStore(&saved, &tags))

		in := input()
		in.CategoryID = intPtr(9)
		_, err := m.CreateArticle(ctx, author, in)
		ve, ok := IsValidation(err)
		require.True(t, ok, "got %v", err)
		assert.Contains(t, ve, "category_id")
	})

	t.Run("MissingRequiredFields", func(t *testing.T) {
		m, _ := newTestManager(&stubStore{})

		_, err := m.CreateArticle(ctx, author, ArticleInput{Status: strPtr("deleted")})
		ve, ok := IsValidation(err)
		require.True(t, ok)
		for _, field := range []string{"title", "slug", "content", "category_id", "status"} {
			assert.Contains(t, ve, field)
		}
	})
}

func TestManager_UpdateArticle(t *testing.T) {
	ctx := context.Background()

	existing := func(status string, authorID int) *stubStore {
		stored := testArticle(5, "story", 1)
		stored.Status = status
		stored.AuthorID = authorID
		return &stubStore{
			articleByID:  func(int) (*db.Article, error) { a := stored; return &a, nil },
			categoryByID: func(id int) (*db.Category, error) { return &db.Category{ID: id}, nil },
			articleTags: func([]int) ([]db.ArticleTag, error) {
				return []db.ArticleTag{{ArticleID: 5, TagID: 3, Tag: &db.Tag{ID: 3, Slug: "docker"}}}, nil
			},
			tagsBySlugs: func(slugs []string) ([]db.Tag, error) {
				tags := make([]db.Tag, len(slugs))
				for i, s := range slugs {
					tags[i] = db.Tag{ID: 3, Slug: s}
				}
				return tags, nil
			},
			saveArticle: func(a *db.Article, tagIDs []int) error {
				stored = *a
				return nil
			},
		}
	}

	t.Run("AuthorCannotEditOthers", func(t *testing.T) {
		m, _ := newTestManager(existing(db.StatusDraft, 99))

		_, err := m.UpdateArticle(ctx, author, 5, ArticleInput{Title: strPtr("x")})
		assert.ErrorIs(t, err, ErrForbidden)

		assert.ErrorIs(t, m.DeleteArticle(ctx, author, 5), ErrForbidden)
	})

	t.Run("AdminCanEditOthers", func(t *testing.T) {
		store := existing(db.StatusDraft, 99)
		m, _ := newTestManager(store)

		article, err := m.UpdateArticle(ctx, admin, 5, ArticleInput{Title: strPtr("Renamed")})
		require.NoError(t, err)
		assert.Equal(t, "Renamed", article.Title)
		require.NotNil(t, article.UpdatedAt)
		require.Len(t, article.Tags, 1, "nil tag slugs keep current tags")
	})

	t.Run("RejectsInvalidTransition", func(t *testing.T) {
		m, _ := newTestManager(existing(db.StatusPublished, author.ID))

		_, err := m.UpdateArticle(ctx, author, 5, ArticleInput{Status: strPtr(db.StatusDraft)})
		ve, ok := IsValidation(err)
		require.True(t, ok, "got %v", err)
		assert.Contains(t, ve, "status")
	})

	t.Run("ArchivedCanBeRestored", func(t *testing.T) {
		m, _ := newTestManager(existing(db.StatusArchived, author.ID))

		article, err := m.UpdateArticle(ctx, author, 5, ArticleInput{Status: strPtr(db.StatusDraft)})
		require.NoError(t, err)
		assert.Equal(t, db.StatusDraft, article.Status)
	})

	t.Run("DeleteEvicts", func(t *testing.T) {
		m, c := newTestManager(existing(db.StatusPublished, author.ID))

		require.NoError(t, m.DeleteArticle(ctx, author, 5))
		assert.ElementsMatch(t, []string{cache.KeyHomepage, cache.KeyTagList}, c.deleted)
	})
}

func TestCanTransition(t *testing.T) {
	tests := []struct {
		from, to string
		want     bool
	}{
		{db.StatusDraft, db.StatusPublished, true},
		{db.StatusDraft, db.StatusArchived, true},
		{db.StatusPublished, db.StatusArchived, true},
		{db.StatusArchived, db.StatusDraft, true},
		{db.StatusPublished, db.StatusPublished, true},
		{db.StatusPublished, db.StatusDraft, false},
		{db.StatusArchived, db.StatusPublished, false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, canTransition(tt.from, tt.to), "%s -> %s", tt.from, tt.to)
	}
}

package newsportal

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/daniilsolovey/news-cms/internal/cache"
	"github.com/daniilsolovey/news-cms/internal/db"
)

var (
	testLogger = slog.New(slog.NewTextHandler(io.Discard, nil))
	testNow    = time.Date(2024, 1, 14, 12, 0, 0, 0, time.UTC)
)

// stubStore implements Store with overridable funcs. Unset funcs return zero
// values. Every call is recorded by method name.
type stubStore struct {
	mu    sync.Mutex
	calls []string

	articles               func(search *db.ArticleSearch, pager db.Pager, order db.ArticleOrder) ([]db.Article, error)
	articlesCount          func(search *db.ArticleSearch) (int, error)
	publishedArticleBySlug func(search *db.ArticleSearch, slug string) (*db.Article, error)
	articleByID            func(articleID int) (*db.Article, error)
	articleTags            func(articleIDs []int) ([]db.ArticleTag, error)
	saveArticle            func(article *db.Article, tagIDs []int) error
	deleteArticle          func(articleID int) (bool, error)

	categories          func(activeOnly bool) ([]db.Category, error)
	categoryBySlug      func(slug string, activeOnly bool) (*db.Category, error)
	categoryByID        func(categoryID int) (*db.Category, error)
	categoryHasArticles func(categoryID int) (bool, error)
	addCategory         func(category *db.Category) (*db.Category, error)
	updateCategory      func(category *db.Category) (bool, error)
	deleteCategory      func(categoryID int) (bool, error)

	tagsWithArticles func() ([]db.TagCount, error)
	tagBySlug        func(slug string) (*db.Tag, error)
	tagByID          func(tagID int) (*db.Tag, error)
	tagsBySlugs      func(slugs []string) ([]db.Tag, error)
	addTag           func(tag *db.Tag) (*db.Tag, error)
	updateTag        func(tag *db.Tag) (bool, error)
	deleteTag        func(tagID int) (bool, error)
}

func (s *stubStore) record(name string) {
	s.mu.Lock()
	s.calls = append(s.calls, name)
	s.mu.Unlock()
}

func (s *stubStore) count(name string) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := 0
	for _, c := range s.calls {
		if c == name {
			n++
		}
	}
	return n
}

func (s *stubStore) Articles(_ context.Context, search *db.ArticleSearch, pager db.Pager, order db.ArticleOrder) ([]db.Article, error) {
	s.record("Articles")
	if s.articles == nil {
		return nil, nil
	}
	return s.articles(search, pager, order)
}

func (s *stubStore) ArticlesCount(_ context.Context, search *db.ArticleSearch) (int, error) {
	s.record("ArticlesCount")
	if s.articlesCount == nil {
		return 0, nil
	}
	return s.articlesCount(search)
}

func (s *stubStore) PublishedArticleBySlug(_ context.Context, search *db.ArticleSearch, slug string) (*db.Article, error) {
	s.record("PublishedArticleBySlug")
	if s.publishedArticleBySlug == nil {
		return nil, nil
	}
	return s.publishedArticleBySlug(search, slug)
}

func (s *stubStore) ArticleByID(_ context.Context, articleID int) (*db.Article, error) {
	s.record("ArticleByID")
	if s.articleByID == nil {
		return nil, nil
	}
	return s.articleByID(articleID)
}

func (s *stubStore) ArticleTagsByArticleIDs(_ context.Context, articleIDs []int) ([]db.ArticleTag, error) {
	s.record("ArticleTagsByArticleIDs")
	if s.articleTags == nil {
		return nil, nil
	}
	return s.articleTags(articleIDs)
}

func (s *stubStore) SaveArticle(_ context.Context, article *db.Article, tagIDs []int) error {
	s.record("SaveArticle")
	if s.saveArticle == nil {
		return nil
	}
	return s.saveArticle(article, tagIDs)
}

func (s *stubStore) DeleteArticle(_ context.Context, articleID int) (bool, error) {
	s.record("DeleteArticle")
	if s.deleteArticle == nil {
		return true, nil
	}
	return s.deleteArticle(articleID)
}

func (s *stubStore) Categories(_ context.Context, activeOnly bool) ([]db.Category, error) {
	s.record("Categories")
	if s.categories == nil {
		return nil, nil
	}
	return s.categories(activeOnly)
}

func (s *stubStore) CategoryBySlug(_ context.Context, slug string, activeOnly bool) (*db.Category, error) {
	s.record("CategoryBySlug")
	if s.categoryBySlug == nil {
		return nil, nil
	}
	return s.categoryBySlug(slug, activeOnly)
}

func (s *stubStore) CategoryByID(_ context.Context, categoryID int) (*db.Category, error) {
	s.record("CategoryByID")
	if s.categoryByID == nil {
		return nil, nil
	}
	return s.categoryByID(categoryID)
}

func (s *stubStore) CategoryHasArticles(_ context.Context, categoryID int) (bool, error) {
	s.record("CategoryHasArticles")
	if s.categoryHasArticles == nil {
		return false, nil
	}
	return s.categoryHasArticles(categoryID)
}

func (s *stubStore) AddCategory(_ context.Context, category *db.Category) (*db.Category, error) {
	s.record("AddCategory")
	if s.addCategory == nil {
		return category, nil
	}
	return s.addCategory(category)
}

func (s *stubStore) UpdateCategory(_ context.Context, category *db.Category) (bool, error) {
	s.record("UpdateCategory")
	if s.updateCategory == nil {
		return true, nil
	}
	return s.updateCategory(category)
}

func (s *stubStore) DeleteCategory(_ context.Context, categoryID int) (bool, error) {
	s.record("DeleteCategory")
	if s.deleteCategory == nil {
		return true, nil
	}
	return s.deleteCategory(categoryID)
}

func (s *stubStore) TagsWithArticles(_ context.Context) ([]db.TagCount, error) {
	s.record("TagsWithArticles")
	if s.tagsWithArticles == nil {
		return nil, nil
	}
	return s.tagsWithArticles()
}

func (s *stubStore) TagBySlug(_ context.Context, slug string) (*db.Tag, error) {
	s.record("TagBySlug")
	if s.tagBySlug == nil {
		return nil, nil
	}
	return s.tagBySlug(slug)
}

func (s *stubStore) TagByID(_ context.Context, tagID int) (*db.Tag, error) {
	s.record("TagByID")
	if s.tagByID == nil {
		return nil, nil
	}
	return s.tagByID(tagID)
}

func (s *stubStore) TagsBySlugs(_ context.Context, slugs []string) ([]db.Tag, error) {
	s.record("TagsBySlugs")
	if s.tagsBySlugs == nil {
		return nil, nil
	}
	return s.tagsBySlugs(slugs)
}

func (s *stubStore) AddTag(_ context.Context, tag *db.Tag) (*db.Tag, error) {
	s.record("AddTag")
	if s.addTag == nil {
		return tag, nil
	}
	return s.addTag(tag)
}

func (s *stubStore) UpdateTag(_ context.Context, tag *db.Tag) (bool, error) {
	s.record("UpdateTag")
	if s.updateTag == nil {
		return true, nil
	}
	return s.updateTag(tag)
}

func (s *stubStore) DeleteTag(_ context.Context, tagID int) (bool, error) {
	s.record("DeleteTag")
	if s.deleteTag == nil {
		return true, nil
	}
	return s.deleteTag(tagID)
}

// stubCache wraps an in-memory cache and can fail deletes.
type stubCache struct {
	*cache.Memory
	deleteErr error
	deleted   []string
}

func (c *stubCache) Delete(ctx context.Context, keys ...string) error {
	c.deleted = append(c.deleted, keys...)
	if c.deleteErr != nil {
		return c.deleteErr
	}
	return c.Memory.Delete(ctx, keys...)
}

func newTestManager(store *stubStore) (*Manager, *stubCache) {
	c := &stubCache{Memory: cache.NewMemory()}
	m := NewNewsManager(store, c, nil, DefaultConfig(), testLogger)
	m.now = func() time.Time { return testNow }
	return m, c
}

func strPtr(s string) *string { return &s }

func intPtr(i int) *int { return &i }

func timePtr(t time.Time) *time.Time { return &t }

func testArticle(id int, slug string, categoryID int) db.Article {
	return db.Article{
		ID:          id,
		Slug:        slug,
		Title:       slug,
		Content:     "content of " + slug,
		CategoryID:  categoryID,
		AuthorID:    2,
		Status:      db.StatusPublished,
		PublishedAt: timePtr(testNow.Add(-time.Duration(id) * time.Hour)),
		Category:    &db.Category{ID: categoryID, Slug: "tech", Name: "Technology", IsActive: true},
		Author:      &db.User{ID: 2, Name: "Jane", Email: "jane@example.com", PasswordHash: "secret"},
	}
}

// fakePgError satisfies pg.Error.
type fakePgError struct {
	fields map[byte]string
}

func (e fakePgError) Error() string { return "ERROR #" + e.fields['C'] }

func (e fakePgError) Field(f byte) string { return e.fields[f] }

func (e fakePgError) IntegrityViolation() bool { return e.fields['C'][:2] == "23" }

func uniqueViolation(constraint string) error {
	return fakePgError{fields: map[byte]string{'C': "23505", 'n': constraint}}
}

func foreignKeyViolation(constraint string) error {
	return fakePgError{fields: map[byte]string{'C': "23503", 'n': constraint}}
}

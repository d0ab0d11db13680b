package newsportal

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/daniilsolovey/news-cms/internal/cache"
	"github.com/daniilsolovey/news-cms/internal/db"
)

// Store is the content storage used by Manager. *db.Repository implements it.
type Store interface {
	Articles(ctx context.Context, search *db.ArticleSearch, pager db.Pager, order db.ArticleOrder) ([]db.Article, error)
	ArticlesCount(ctx context.Context, search *db.ArticleSearch) (int, error)
	PublishedArticleBySlug(ctx context.Context, search *db.ArticleSearch, slug string) (*db.Article, error)
	ArticleByID(ctx context.Context, articleID int) (*db.Article, error)
	ArticleTagsByArticleIDs(ctx context.Context, articleIDs []int) ([]db.ArticleTag, error)
	SaveArticle(ctx context.Context, article *db.Article, tagIDs []int) error
	DeleteArticle(ctx context.Context, articleID int) (bool, error)

	Categories(ctx context.Context, activeOnly bool) ([]db.Category, error)
	CategoryBySlug(ctx context.Context, slug string, activeOnly bool) (*db.Category, error)
	CategoryByID(ctx context.Context, categoryID int) (*db.Category, error)
	CategoryHasArticles(ctx context.Context, categoryID int) (bool, error)
	AddCategory(ctx context.Context, category *db.Category) (*db.Category, error)
	UpdateCategory(ctx context.Context, category *db.Category) (bool, error)
	DeleteCategory(ctx context.Context, categoryID int) (bool, error)

	TagsWithArticles(ctx context.Context) ([]db.TagCount, error)
	TagBySlug(ctx context.Context, slug string) (*db.Tag, error)
	TagByID(ctx context.Context, tagID int) (*db.Tag, error)
	TagsBySlugs(ctx context.Context, slugs []string) ([]db.Tag, error)
	AddTag(ctx context.Context, tag *db.Tag) (*db.Tag, error)
	UpdateTag(ctx context.Context, tag *db.Tag) (bool, error)
	DeleteTag(ctx context.Context, tagID int) (bool, error)
}

type Config struct {
	HomepageTTL     time.Duration
	CategoryListTTL time.Duration
	TagListTTL      time.Duration
	Shelves         []Shelf
}

func DefaultConfig() Config {
	return Config{
		HomepageTTL:     5 * time.Minute,
		CategoryListTTL: time.Hour,
		TagListTTL:      time.Hour,
		Shelves: []Shelf{
			{Key: "newsPlus", CategorySlug: "news-plus", Limit: ShelfLimit},
			{Key: "newsInsider", CategorySlug: "news-insider", Limit: ShelfLimit},
			{Key: "tirtoWeekly", CategorySlug: "tirto-weekly", Limit: ShelfLimit},
		},
	}
}

type Manager struct {
	db     Store
	cache  cache.Cache
	views  *ViewCounter
	cfg    Config
	logger *slog.Logger
	now    func() time.Time
}

func NewNewsManager(repo Store, c cache.Cache, views *ViewCounter, cfg Config, logger *slog.Logger) *Manager {
	return &Manager{
		db:     repo,
		cache:  c,
		views:  views,
		cfg:    cfg,
		logger: logger,
		now:    time.Now,
	}
}

func (m *Manager) published(filter ArticleFilter) *db.ArticleSearch {
	return &db.ArticleSearch{
		Now:          m.now(),
		CategorySlug: filter.CategorySlug,
		TagSlug:      filter.TagSlug,
		Query:        filter.Query,
	}
}

func (m *Manager) page(ctx context.Context, search *db.ArticleSearch, page PageRequest) (*ArticlePage, error) {
	total, err := m.db.ArticlesCount(ctx, search)
	if err != nil {
		return nil, fmt.Errorf("db get articles count: %w", err)
	}

	result := &ArticlePage{
		Articles:   Articles{},
		Pagination: NewPagination(page, total),
	}

	// Comparing pages first keeps a huge page number from overflowing the offset.
	if total == 0 || page.Page > result.Pagination.TotalPages {
		return result, nil
	}

	list, err := m.db.Articles(ctx, search, page.Pager(), db.OrderRecent)
	if err != nil {
		return nil, fmt.Errorf("db get articles: %w", err)
	}

	result.Articles = NewArticles(list)
	return result, nil
}

func (m *Manager) list(ctx context.Context, search *db.ArticleSearch, limit, offset int, order db.ArticleOrder) (Articles, error) {
	list, err := m.db.Articles(ctx, search, db.Pager{Limit: limit, Offset: offset}, order)
	if err != nil {
		return nil, fmt.Errorf("db get articles: %w", err)
	}

	return NewArticles(list), nil
}

// Articles returns a page of published articles, newest first.
func (m *Manager) Articles(ctx context.Context, filter ArticleFilter, page PageRequest) (*ArticlePage, error) {
	return m.page(ctx, m.published(filter), page.Normalize())
}

// Search matches query as a case-insensitive substring of title, excerpt or
// content. Unlike Articles it rejects out of range limits instead of clamping.
func (m *Manager) Search(ctx context.Context, query string, filter ArticleFilter, page PageRequest) (*ArticlePage, error) {
	query = strings.TrimSpace(query)

	err := validation.Errors{
		"q": validation.Validate(query,
			validation.Required,
			validation.RuneLength(MinQueryLength, 0).Error(fmt.Sprintf("must be at least %d characters", MinQueryLength)),
		),
		"limit": validation.Validate(page.Limit,
			validation.Required.Error(fmt.Sprintf("must be between 1 and %d", MaxLimit)),
			validation.Min(1).Error(fmt.Sprintf("must be between 1 and %d", MaxLimit)),
			validation.Max(MaxLimit).Error(fmt.Sprintf("must be between 1 and %d", MaxLimit)),
		),
	}.Filter()
	if err != nil {
		return nil, err
	}

	if page.Page < 1 {
		page.Page = 1
	}

	filter.Query = &query
	return m.page(ctx, m.published(filter), page)
}

// Trending returns the most viewed published articles.
func (m *Manager) Trending(ctx context.Context) (Articles, error) {
	return m.list(ctx, m.published(ArticleFilter{}), TrendingLimit, 0, db.OrderMostViewed)
}

// Featured returns recent featured articles; limit is clamped to 1..MaxLimit.
func (m *Manager) Featured(ctx context.Context, limit int) (Articles, error) {
	switch {
	case limit < 1:
		limit = FeaturedLimit
	case limit > MaxLimit:
		limit = MaxLimit
	}

	search := m.published(ArticleFilter{})
	search.IsFeatured = boolPtr(true)

	return m.list(ctx, search, limit, 0, db.OrderRecent)
}

// ArticleBySlug returns a published article with tags, optionally with related
// articles, and schedules a view increment.
func (m *Manager) ArticleBySlug(ctx context.Context, slug string, withRelated bool) (*Article, error) {
	search := m.published(ArticleFilter{})
	dbArticle, err := m.db.PublishedArticleBySlug(ctx, search, slug)
	if err != nil {
		return nil, fmt.Errorf("db get article by slug: %w", err)
	} else if dbArticle == nil {
		return nil, ErrNotFound
	}

	list := Articles{NewArticle(dbArticle)}
	if err := m.fillTags(ctx, list); err != nil {
		return nil, err
	}

	article := &list[0]
	if withRelated {
		related, err := m.related(ctx, search.Now, dbArticle)
		if err != nil {
			return nil, err
		}
		article.Related = related
	}

	if m.views != nil {
		m.views.Add(article.ID)
	}

	return article, nil
}

// RelatedArticles returns recent articles of the same category as the
// published article with slug.
func (m *Manager) RelatedArticles(ctx context.Context, slug string) (Articles, error) {
	search := m.published(ArticleFilter{})
	dbArticle, err := m.db.PublishedArticleBySlug(ctx, search, slug)
	if err != nil {
		return nil, fmt.Errorf("db get article by slug: %w", err)
	} else if dbArticle == nil {
		return nil, ErrNotFound
	}

	return m.related(ctx, search.Now, dbArticle)
}

func (m *Manager) related(ctx context.Context, now time.Time, a *db.Article) (Articles, error) {
	search := &db.ArticleSearch{
		Now:        now,
		CategoryID: &a.CategoryID,
		ExcludeID:  &a.ID,
	}

	return m.list(ctx, search, RelatedLimit, 0, db.OrderRecent)
}

func (m *Manager) fillTags(ctx context.Context, list Articles) error {
	rows, err := m.db.ArticleTagsByArticleIDs(ctx, list.IDs())
	if err != nil {
		return fmt.Errorf("db get article tags: %w", err)
	}

	list.SetTags(rows)
	return nil
}

// Categories returns active categories ordered by orderNumber. The list is
// cached under cache.KeyCategoryList.
func (m *Manager) Categories(ctx context.Context) (Categories, error) {
	return cache.Remember(ctx, m.cache, m.logger, cache.KeyCategoryList, m.cfg.CategoryListTTL,
		func(ctx context.Context) (Categories, error) {
			list, err := m.db.Categories(ctx, true)
			if err != nil {
				return nil, fmt.Errorf("db get categories: %w", err)
			}
			return NewCategories(list), nil
		})
}

func (m *Manager) CategoryBySlug(ctx context.Context, slug string) (*Category, error) {
	category, err := m.db.CategoryBySlug(ctx, slug, true)
	if err != nil {
		return nil, fmt.Errorf("db get category: %w", err)
	} else if category == nil {
		return nil, ErrNotFound
	}

	return NewCategory(category), nil
}

// CategoryArticles returns a page of published articles of an active category.
func (m *Manager) CategoryArticles(ctx context.Context, slug string, page PageRequest) (*Category, *ArticlePage, error) {
	category, err := m.CategoryBySlug(ctx, slug)
	if err != nil {
		return nil, nil, err
	}

	search := m.published(ArticleFilter{})
	search.CategoryID = &category.ID

	result, err := m.page(ctx, search, page.Normalize())
	if err != nil {
		return nil, nil, err
	}

	return category, result, nil
}

// Tags returns tags attached to at least one article, most used first. The
// list is cached under cache.KeyTagList.
func (m *Manager) Tags(ctx context.Context) (Tags, error) {
	return cache.Remember(ctx, m.cache, m.logger, cache.KeyTagList, m.cfg.TagListTTL,
		func(ctx context.Context) (Tags, error) {
			list, err := m.db.TagsWithArticles(ctx)
			if err != nil {
				return nil, fmt.Errorf("db get tags: %w", err)
			}
			return NewTagCounts(list), nil
		})
}

func (m *Manager) TagBySlug(ctx context.Context, slug string) (*Tag, error) {
	tag, err := m.db.TagBySlug(ctx, slug)
	if err != nil {
		return nil, fmt.Errorf("db get tag: %w", err)
	} else if tag == nil {
		return nil, ErrNotFound
	}

	result := NewTag(tag)
	return &result, nil
}

func (m *Manager) TagArticles(ctx context.Context, slug string, page PageRequest) (*Tag, *ArticlePage, error) {
	tag, err := m.TagBySlug(ctx, slug)
	if err != nil {
		return nil, nil, err
	}

	result, err := m.page(ctx, m.published(ArticleFilter{TagSlug: &tag.Slug}), page.Normalize())
	if err != nil {
		return nil, nil, err
	}

	return tag, result, nil
}

func boolPtr(b bool) *bool {
	return &b
}

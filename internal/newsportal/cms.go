package newsportal

import (
	"context"
	"errors"
	"fmt"
	"regexp"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/daniilsolovey/news-cms/internal/cache"
	"github.com/daniilsolovey/news-cms/internal/db"
)

var slugRule = validation.Match(regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)).
	Error("must contain only lowercase letters, numbers and single hyphens")

// statusTransitions lists allowed article status changes besides keeping the
// current status.
var statusTransitions = map[string][]string{
	db.StatusDraft:     {db.StatusPublished, db.StatusArchived},
	db.StatusPublished: {db.StatusArchived},
	db.StatusArchived:  {db.StatusDraft},
}

func canTransition(from, to string) bool {
	if from == to {
		return true
	}

	for _, s := range statusTransitions[from] {
		if s == to {
			return true
		}
	}

	return false
}

func (m *Manager) evict(ctx context.Context, keys ...string) error {
	if err := cache.Evict(ctx, m.cache, keys...); err != nil {
		m.logger.ErrorContext(ctx, "cache eviction failed", "keys", keys, "error", err)
		return err
	}

	return nil
}

func validateCategory(in CategoryInput, create bool) error {
	return validation.Errors{
		"name":        validation.Validate(in.Name, validation.Required.When(create), validation.NilOrNotEmpty, validation.RuneLength(1, 255)),
		"slug":        validation.Validate(in.Slug, validation.Required.When(create), validation.NilOrNotEmpty, validation.RuneLength(1, 255), slugRule),
		"color":       validation.Validate(in.Color, validation.RuneLength(0, 7)),
		"description": validation.Validate(in.Description, validation.RuneLength(0, 65535)),
	}.Filter()
}

func (in CategoryInput) apply(c *db.Category) {
	if in.Name != nil {
		c.Name = *in.Name
	}
	if in.Slug != nil {
		c.Slug = *in.Slug
	}
	if in.Description != nil {
		c.Description = in.Description
	}
	if in.Color != nil {
		c.Color = in.Color
	}
	if in.OrderNumber != nil {
		c.OrderNumber = *in.OrderNumber
	}
	if in.IsActive != nil {
		c.IsActive = *in.IsActive
	}
}

func (m *Manager) CreateCategory(ctx context.Context, actor Actor, in CategoryInput) (*Category, error) {
	if !actor.CanWrite() {
		return nil, ErrForbidden
	}

	if err := validateCategory(in, true); err != nil {
		return nil, err
	}

	category := &db.Category{IsActive: true, CreatedAt: m.now()}
	in.apply(category)

	category, err := m.db.AddCategory(ctx, category)
	if err != nil {
		return nil, uniqueFieldError(fmt.Errorf("db add category: %w", err))
	}

	if err := m.evict(ctx, cache.KeyCategoryList, cache.KeyHomepage); err != nil {
		return nil, err
	}

	return NewCategory(category), nil
}

func (m *Manager) UpdateCategory(ctx context.Context, actor Actor, categoryID int, in CategoryInput) (*Category, error) {
	if !actor.CanWrite() {
		return nil, ErrForbidden
	}

	if err := validateCategory(in, false); err != nil {
		return nil, err
	}

	category, err := m.db.CategoryByID(ctx, categoryID)
	if err != nil {
		return nil, fmt.Errorf("db get category: %w", err)
	} else if category == nil {
		return nil, ErrNotFound
	}

	in.apply(category)
	if _, err := m.db.UpdateCategory(ctx, category); err != nil {
		return nil, uniqueFieldError(fmt.Errorf("db update category: %w", err))
	}

	if err := m.evict(ctx, cache.KeyCategoryList, cache.KeyHomepage); err != nil {
		return nil, err
	}

	return NewCategory(category), nil
}

// DeleteCategory refuses to delete a category that still has articles.
func (m *Manager) DeleteCategory(ctx context.Context, actor Actor, categoryID int) error {
	if !actor.CanWrite() {
		return ErrForbidden
	}

	category, err := m.db.CategoryByID(ctx, categoryID)
	if err != nil {
		return fmt.Errorf("db get category: %w", err)
	} else if category == nil {
		return ErrNotFound
	}

	hasArticles, err := m.db.CategoryHasArticles(ctx, categoryID)
	if err != nil {
		return fmt.Errorf("db check category articles: %w", err)
	} else if hasArticles {
		return ErrCategoryNotEmpty
	}

	// An article added after the check is caught by the foreign key.
	if _, err := m.db.DeleteCategory(ctx, categoryID); db.ForeignKeyViolation(err) {
		return ErrCategoryNotEmpty
	} else if err != nil {
		return fmt.Errorf("db delete category: %w", err)
	}

	return m.evict(ctx, cache.KeyCategoryList, cache.KeyHomepage)
}

func validateTag(in TagInput, create bool) error {
	return validation.Errors{
		"name": validation.Validate(in.Name, validation.Required.When(create), validation.NilOrNotEmpty, validation.RuneLength(1, 255)),
		"slug": validation.Validate(in.Slug, validation.Required.When(create), validation.NilOrNotEmpty, validation.RuneLength(1, 255), slugRule),
	}.Filter()
}

func (m *Manager) CreateTag(ctx context.Context, actor Actor, in TagInput) (*Tag, error) {
	if !actor.CanWrite() {
		return nil, ErrForbidden
	}

	if err := validateTag(in, true); err != nil {
		return nil, err
	}

	tag, err := m.db.AddTag(ctx, &db.Tag{Name: *in.Name, Slug: *in.Slug, CreatedAt: m.now()})
	if err != nil {
		return nil, uniqueFieldError(fmt.Errorf("db add tag: %w", err))
	}

	if err := m.evict(ctx, cache.KeyTagList); err != nil {
		return nil, err
	}

	result := NewTag(tag)
	return &result, nil
}

func (m *Manager) UpdateTag(ctx context.Context, actor Actor, tagID int, in TagInput) (*Tag, error) {
	if !actor.CanWrite() {
		return nil, ErrForbidden
	}

	if err := validateTag(in, false); err != nil {
		return nil, err
	}

	tag, err := m.db.TagByID(ctx, tagID)
	if err != nil {
		return nil, fmt.Errorf("db get tag: %w", err)
	} else if tag == nil {
		return nil, ErrNotFound
	}

	if in.Name != nil {
		tag.Name = *in.Name
	}
	if in.Slug != nil {
		tag.Slug = *in.Slug
	}

	if _, err := m.db.UpdateTag(ctx, tag); err != nil {
		return nil, uniqueFieldError(fmt.Errorf("db update tag: %w", err))
	}

	if err := m.evict(ctx, cache.KeyTagList); err != nil {
		return nil, err
	}

	result := NewTag(tag)
	return &result, nil
}

func (m *Manager) DeleteTag(ctx context.Context, actor Actor, tagID int) error {
	if !actor.CanWrite() {
		return ErrForbidden
	}

	deleted, err := m.db.DeleteTag(ctx, tagID)
	if err != nil {
		return fmt.Errorf("db delete tag: %w", err)
	} else if !deleted {
		return ErrNotFound
	}

	return m.evict(ctx, cache.KeyTagList)
}

func validateArticle(in ArticleInput, create bool) error {
	return validation.Errors{
		"title":            validation.Validate(in.Title, validation.Required.When(create), validation.NilOrNotEmpty, validation.RuneLength(1, 255)),
		"slug":             validation.Validate(in.Slug, validation.Required.When(create), validation.NilOrNotEmpty, validation.RuneLength(1, 255), slugRule),
		"content":          validation.Validate(in.Content, validation.Required.When(create), validation.NilOrNotEmpty),
		"category_id":      validation.Validate(in.CategoryID, validation.Required.When(create), validation.Min(1)),
		"status":           validation.Validate(in.Status, validation.In(db.StatusDraft, db.StatusPublished, db.StatusArchived)),
		"featured_image":   validation.Validate(in.FeaturedImage, validation.RuneLength(0, 255)),
		"image_alt":        validation.Validate(in.ImageAlt, validation.RuneLength(0, 255)),
		"meta_title":       validation.Validate(in.MetaTitle, validation.RuneLength(0, 255)),
		"og_image":         validation.Validate(in.OgImage, validation.RuneLength(0, 255)),
		"meta_description": validation.Validate(in.MetaDescription, validation.RuneLength(0, 65535)),
	}.Filter()
}

// applyArticle copies set fields of in onto a and enforces the status machine.
// Publishing without publishedAt stamps the current time.
func (m *Manager) applyArticle(a *db.Article, in ArticleInput) error {
	if in.Status != nil {
		if !canTransition(a.Status, *in.Status) {
			return validation.Errors{
				"status": validation.NewError("validation_status_transition",
					fmt.Sprintf("cannot change status from %s to %s", a.Status, *in.Status)),
			}
		}
		a.Status = *in.Status
	}

	if in.Slug != nil {
		a.Slug = *in.Slug
	}
	if in.Title != nil {
		a.Title = *in.Title
	}
	if in.Excerpt != nil {
		a.Excerpt = in.Excerpt
	}
	if in.Content != nil {
		a.Content = *in.Content
	}
	if in.CategoryID != nil {
		a.CategoryID = *in.CategoryID
	}
	if in.FeaturedImage != nil {
		a.FeaturedImage = in.FeaturedImage
	}
	if in.ImageAlt != nil {
		a.ImageAlt = in.ImageAlt
	}
	if in.IsFeatured != nil {
		a.IsFeatured = *in.IsFeatured
	}
	if in.IsEditorPick != nil {
		a.IsEditorPick = *in.IsEditorPick
	}
	if in.MetaTitle != nil {
		a.MetaTitle = in.MetaTitle
	}
	if in.MetaDescription != nil {
		a.MetaDescription = in.MetaDescription
	}
	if in.MetaKeywords != nil {
		a.MetaKeywords = in.MetaKeywords
	}
	if in.OgImage != nil {
		a.OgImage = in.OgImage
	}
	if in.PublishedAt != nil {
		a.PublishedAt = in.PublishedAt
	}

	if a.Status == db.StatusPublished && a.PublishedAt == nil {
		now := m.now()
		a.PublishedAt = &now
	}

	return nil
}

// resolveReferences checks the category and converts tag slugs into ids.
func (m *Manager) resolveReferences(ctx context.Context, a *db.Article, tagSlugs []string) ([]int, error) {
	category, err := m.db.CategoryByID(ctx, a.CategoryID)
	if err != nil {
		return nil, fmt.Errorf("db get category: %w", err)
	} else if category == nil {
		return nil, validation.Errors{"category_id": validation.NewError("validation_exists", "the selected category is invalid")}
	}

	tags, err := m.db.TagsBySlugs(ctx, tagSlugs)
	if err != nil {
		return nil, fmt.Errorf("db get tags: %w", err)
	}

	known := make(map[string]int, len(tags))
	for _, t := range tags {
		known[t.Slug] = t.ID
	}

	ids := make([]int, 0, len(tagSlugs))
	seen := make(map[int]struct{}, len(tagSlugs))
	for _, slug := range tagSlugs {
		id, ok := known[slug]
		if !ok {
			return nil, validation.Errors{"tags": validation.NewError("validation_exists", fmt.Sprintf("unknown tag %q", slug))}
		}
		if _, dup := seen[id]; !dup {
			seen[id] = struct{}{}
			ids = append(ids, id)
		}
	}

	return ids, nil
}

func (m *Manager) currentTagSlugs(ctx context.Context, articleID int) ([]string, error) {
	rows, err := m.db.ArticleTagsByArticleIDs(ctx, []int{articleID})
	if err != nil {
		return nil, fmt.Errorf("db get article tags: %w", err)
	}

	slugs := make([]string, 0, len(rows))
	for _, row := range rows {
		if row.Tag != nil {
			slugs = append(slugs, row.Tag.Slug)
		}
	}

	return slugs, nil
}

func (m *Manager) saveArticle(ctx context.Context, a *db.Article, tagSlugs []string) (*Article, error) {
	tagIDs, err := m.resolveReferences(ctx, a, tagSlugs)
	if err != nil {
		return nil, err
	}

	if err := m.db.SaveArticle(ctx, a, tagIDs); err != nil {
		return nil, uniqueFieldError(fmt.Errorf("db save article: %w", err))
	}

	if err := m.evict(ctx, cache.KeyHomepage, cache.KeyTagList); err != nil {
		return nil, err
	}

	saved, err := m.db.ArticleByID(ctx, a.ID)
	if err != nil {
		return nil, fmt.Errorf("db get article: %w", err)
	} else if saved == nil {
		return nil, ErrNotFound
	}

	list := Articles{NewArticle(saved)}
	if err := m.fillTags(ctx, list); err != nil {
		return nil, err
	}

	return &list[0], nil
}

// CreateArticle stores a new article authored by actor. Status defaults to
// draft.
func (m *Manager) CreateArticle(ctx context.Context, actor Actor, in ArticleInput) (*Article, error) {
	if !actor.CanWrite() {
		return nil, ErrForbidden
	}

	if err := validateArticle(in, true); err != nil {
		return nil, err
	}

	article := &db.Article{
		AuthorID:  actor.ID,
		Status:    db.StatusDraft,
		CreatedAt: m.now(),
	}

	if in.Status != nil && *in.Status == db.StatusArchived {
		return nil, validation.Errors{"status": validation.NewError("validation_status_transition", "a new article cannot be archived")}
	}

	if err := m.applyArticle(article, in); err != nil {
		return nil, err
	}

	return m.saveArticle(ctx, article, in.TagSlugs)
}

// UpdateArticle changes set fields of an article. Authors may only change
// their own articles. Nil TagSlugs keeps the current tags.
func (m *Manager) UpdateArticle(ctx context.Context, actor Actor, articleID int, in ArticleInput) (*Article, error) {
	article, err := m.editableArticle(ctx, actor, articleID)
	if err != nil {
		return nil, err
	}

	if err := validateArticle(in, false); err != nil {
		return nil, err
	}

	if err := m.applyArticle(article, in); err != nil {
		return nil, err
	}

	now := m.now()
	article.UpdatedAt = &now
	article.Category, article.Author = nil, nil

	tagSlugs := in.TagSlugs
	if tagSlugs == nil {
		if tagSlugs, err = m.currentTagSlugs(ctx, articleID); err != nil {
			return nil, err
		}
	}

	return m.saveArticle(ctx, article, tagSlugs)
}

// DeleteArticle soft-deletes an article.
func (m *Manager) DeleteArticle(ctx context.Context, actor Actor, articleID int) error {
	if _, err := m.editableArticle(ctx, actor, articleID); err != nil {
		return err
	}

	deleted, err := m.db.DeleteArticle(ctx, articleID)
	if err != nil {
		return fmt.Errorf("db delete article: %w", err)
	} else if !deleted {
		return ErrNotFound
	}

	return m.evict(ctx, cache.KeyHomepage, cache.KeyTagList)
}

func (m *Manager) editableArticle(ctx context.Context, actor Actor, articleID int) (*db.Article, error) {
	if !actor.CanWrite() {
		return nil, ErrForbidden
	}

	article, err := m.db.ArticleByID(ctx, articleID)
	if err != nil {
		return nil, fmt.Errorf("db get article: %w", err)
	} else if article == nil {
		return nil, ErrNotFound
	}

	if !actor.IsAdmin() && article.AuthorID != actor.ID {
		return nil, ErrForbidden
	}

	return article, nil
}

// IsValidation reports whether err carries field validation errors.
func IsValidation(err error) (validation.Errors, bool) {
	var ve validation.Errors
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}

package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-pg/pg/v10"
)

// TagCount is a tag together with the number of non-deleted articles using it.
type TagCount struct {
	ID            int       `pg:"tagId"`
	Slug          string    `pg:"slug"`
	Name          string    `pg:"name"`
	CreatedAt     time.Time `pg:"createdAt"`
	ArticlesCount int       `pg:"articlesCount"`
}

func (r *Repository) Categories(ctx context.Context, activeOnly bool) ([]Category, error) {
	var categories []Category
	query := r.db.ModelContext(ctx, &categories)
	if activeOnly {
		query = query.Where(`"isActive" = ?`, true)
	}

	err := query.
		OrderExpr(`"orderNumber" ASC`).
		OrderExpr(`"categoryId" ASC`).
		Select()

	if err != nil {
		return nil, fmt.Errorf("failed to query categories: %w", err)
	}

	return categories, nil
}

func (r *Repository) CategoryBySlug(ctx context.Context, slug string, activeOnly bool) (*Category, error) {
	category := &Category{}
	query := r.db.ModelContext(ctx, category).Where(`"slug" = ?`, slug)
	if activeOnly {
		query = query.Where(`"isActive" = ?`, true)
	}

	err := query.Select()
	if errors.Is(err, pg.ErrNoRows) {
		return nil, nil
	} else if err != nil {
		return nil, fmt.Errorf("failed to get category by slug: %w", err)
	}

	return category, nil
}

func (r *Repository) CategoryByID(ctx context.Context, categoryID int) (*Category, error) {
	category := &Category{ID: categoryID}
	err := r.db.ModelContext(ctx, category).WherePK().Select()
	if errors.Is(err, pg.ErrNoRows) {
		return nil, nil
	} else if err != nil {
		return nil, fmt.Errorf("failed to get category by id: %w", err)
	}

	return category, nil
}

// CategoryHasArticles reports whether any article of any status references
// the category, soft-deleted ones included.
func (r *Repository) CategoryHasArticles(ctx context.Context, categoryID int) (bool, error) {
	exists, err := r.db.ModelContext(ctx, (*Article)(nil)).
		Where(`"t"."categoryId" = ?`, categoryID).
		AllWithDeleted().
		Exists()

	if err != nil {
		return false, fmt.Errorf("failed to check category articles: %w", err)
	}

	return exists, nil
}

func (r *Repository) AddCategory(ctx context.Context, category *Category) (*Category, error) {
	_, err := r.db.ModelContext(ctx, category).Returning("*").Insert()
	if err != nil {
		return nil, fmt.Errorf("failed to insert category: %w", err)
	}

	return category, nil
}

func (r *Repository) UpdateCategory(ctx context.Context, category *Category) (bool, error) {
	res, err := r.db.ModelContext(ctx, category).
		Column(
			Columns.Category.Slug,
			Columns.Category.Name,
			Columns.Category.Description,
			Columns.Category.Color,
			Columns.Category.OrderNumber,
			Columns.Category.IsActive,
		).
		WherePK().
		Update()

	if err != nil {
		return false, fmt.Errorf("failed to update category: %w", err)
	}

	return res.RowsAffected() > 0, nil
}

func (r *Repository) DeleteCategory(ctx context.Context, categoryID int) (bool, error) {
	res, err := r.db.ModelContext(ctx, &Category{ID: categoryID}).WherePK().Delete()
	if err != nil {
		return false, fmt.Errorf("failed to delete category: %w", err)
	}

	return res.RowsAffected() > 0, nil
}

// TagsWithArticles returns tags used by at least one non-deleted article,
// most used first.
func (r *Repository) TagsWithArticles(ctx context.Context) ([]TagCount, error) {
	tags := []TagCount{}
	_, err := r.db.QueryContext(ctx, &tags, `
		SELECT tg."tagId", tg."slug", tg."name", tg."createdAt", count(a."articleId") AS "articlesCount"
		FROM "tags" tg
		JOIN "articleTags" atg ON atg."tagId" = tg."tagId"
		JOIN "articles" a ON a."articleId" = atg."articleId" AND a."deletedAt" IS NULL
		GROUP BY tg."tagId"
		HAVING count(a."articleId") > 0
		ORDER BY "articlesCount" DESC, tg."name" ASC`)

	if err != nil {
		return nil, fmt.Errorf("failed to query tags: %w", err)
	}

	return tags, nil
}

func (r *Repository) TagBySlug(ctx context.Context, slug string) (*Tag, error) {
	tag := &Tag{}
	err := r.db.ModelContext(ctx, tag).Where(`"slug" = ?`, slug).Select()
	if errors.Is(err, pg.ErrNoRows) {
		return nil, nil
	} else if err != nil {
		return nil, fmt.Errorf("failed to get tag by slug: %w", err)
	}

	return tag, nil
}

func (r *Repository) TagByID(ctx context.Context, tagID int) (*Tag, error) {
	tag := &Tag{ID: tagID}
	err := r.db.ModelContext(ctx, tag).WherePK().Select()
	if errors.Is(err, pg.ErrNoRows) {
		return nil, nil
	} else if err != nil {
		return nil, fmt.Errorf("failed to get tag by id: %w", err)
	}

	return tag, nil
}

func (r *Repository) TagsBySlugs(ctx context.Context, slugs []string) ([]Tag, error) {
	if len(slugs) == 0 {
		return []Tag{}, nil
	}

	tags := []Tag{}
	err := r.db.ModelContext(ctx, &tags).
		Where(`"slug" IN (?)`, pg.In(slugs)).
		OrderExpr(`"name" ASC`).
		Select()

	if err != nil {
		return nil, fmt.Errorf("failed to query tags by slugs: %w", err)
	}

	return tags, nil
}

func (r *Repository) AddTag(ctx context.Context, tag *Tag) (*Tag, error) {
	_, err := r.db.ModelContext(ctx, tag).Returning("*").Insert()
	if err != nil {
		return nil, fmt.Errorf("failed to insert tag: %w", err)
	}

	return tag, nil
}

func (r *Repository) UpdateTag(ctx context.Context, tag *Tag) (bool, error) {
	res, err := r.db.ModelContext(ctx, tag).
		Column(Columns.Tag.Slug, Columns.Tag.Name).
		WherePK().
		Update()

	if err != nil {
		return false, fmt.Errorf("failed to update tag: %w", err)
	}

	return res.RowsAffected() > 0, nil
}

// DeleteTag removes the tag and detaches it from every article.
func (r *Repository) DeleteTag(ctx context.Context, tagID int) (bool, error) {
	var deleted bool
	err := r.db.RunInTransaction(ctx, func(tx *pg.Tx) error {
		_, err := tx.ModelContext(ctx, (*ArticleTag)(nil)).
			Where(`"tagId" = ?`, tagID).
			Delete()
		if err != nil {
			return fmt.Errorf("failed to detach tag: %w", err)
		}

		res, err := tx.ModelContext(ctx, &Tag{ID: tagID}).WherePK().Delete()
		if err != nil {
			return fmt.Errorf("failed to delete tag: %w", err)
		}

		deleted = res.RowsAffected() > 0
		return nil
	})

	return deleted, err
}

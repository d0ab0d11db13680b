package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-pg/pg/v10"
)

const (
	uniqueViolationCode     = "23505"
	foreignKeyViolationCode = "23503"
)

// articleEditableColumns excludes viewsCount so updates never overwrite
// concurrent view increments.
var articleEditableColumns = []string{
	Columns.Article.Slug,
	Columns.Article.Title,
	Columns.Article.Excerpt,
	Columns.Article.Content,
	Columns.Article.CategoryID,
	Columns.Article.FeaturedImage,
	Columns.Article.ImageAlt,
	Columns.Article.Status,
	Columns.Article.IsFeatured,
	Columns.Article.IsEditorPick,
	Columns.Article.MetaTitle,
	Columns.Article.MetaDescription,
	Columns.Article.MetaKeywords,
	Columns.Article.OgImage,
	Columns.Article.PublishedAt,
	Columns.Article.UpdatedAt,
}

type Repository struct {
	db pg.DBI
}

func New(db pg.DBI) *Repository {
	return &Repository{
		db: db,
	}
}

func (r *Repository) Ping(ctx context.Context) error {
	if db, ok := r.db.(*pg.DB); ok {
		if err := db.Ping(ctx); err != nil {
			return err
		}
		return nil
	}

	return nil
}

func (r *Repository) Close() error {
	if db, ok := r.db.(*pg.DB); ok {
		if err := db.Close(); err != nil {
			return err
		}
		return nil
	}

	return nil
}

// UniqueViolation reports whether err is a unique constraint violation and
// returns the violated constraint name.
func UniqueViolation(err error) (string, bool) {
	var pgErr pg.Error
	if errors.As(err, &pgErr) && pgErr.Field('C') == uniqueViolationCode {
		return pgErr.Field('n'), true
	}

	return "", false
}

// ForeignKeyViolation reports whether err is a foreign key violation.
func ForeignKeyViolation(err error) bool {
	var pgErr pg.Error
	return errors.As(err, &pgErr) && pgErr.Field('C') == foreignKeyViolationCode
}

// Articles retrieves published articles matching search, ordered by order and
// windowed by pager. Category and Author are joined in the same query.
func (r *Repository) Articles(ctx context.Context, search *ArticleSearch,
	pager Pager, order ArticleOrder) ([]Article, error) {

	if pager.Limit < 1 || pager.Offset < 0 {
		return nil, fmt.Errorf(
			"limit must be greater than 0 and offset not negative: limit=%d, offset=%d",
			pager.Limit, pager.Offset,
		)
	}

	var articles []Article
	query := r.db.ModelContext(ctx, &articles).
		Relation(Columns.Article.Category).
		Relation(Columns.Article.Author)

	query = search.apply(query)
	query = order.apply(query)

	err := query.
		Limit(pager.Limit).
		Offset(pager.Offset).
		Select()

	if err != nil {
		return nil, fmt.Errorf("failed to query articles: %w", err)
	}

	return articles, nil
}

func (r *Repository) ArticlesCount(ctx context.Context, search *ArticleSearch) (int, error) {
	query := search.apply(r.db.ModelContext(ctx, (*Article)(nil)))

	count, err := query.Count()
	if err != nil {
		return 0, fmt.Errorf("failed to get articles count: %w", err)
	}

	return count, nil
}

// PublishedArticleBySlug returns nil when the article does not exist or is
// not visible at search.Now.
func (r *Repository) PublishedArticleBySlug(ctx context.Context, search *ArticleSearch, slug string) (*Article, error) {
	article := &Article{}
	query := r.db.ModelContext(ctx, article).
		Relation(Columns.Article.Category).
		Relation(Columns.Article.Author).
		Where(`"t"."slug" = ?`, slug)

	err := search.apply(query).Select()
	if errors.Is(err, pg.ErrNoRows) {
		return nil, nil
	} else if err != nil {
		return nil, fmt.Errorf("failed to get article by slug: %w", err)
	}

	return article, nil
}

// ArticleByID returns a non-deleted article regardless of its status.
func (r *Repository) ArticleByID(ctx context.Context, articleID int) (*Article, error) {
	article := &Article{}
	err := r.db.ModelContext(ctx, article).
		Relation(Columns.Article.Category).
		Relation(Columns.Article.Author).
		Where(`"t"."articleId" = ?`, articleID).
		Select()

	if errors.Is(err, pg.ErrNoRows) {
		return nil, nil
	} else if err != nil {
		return nil, fmt.Errorf("failed to get article by id: %w", err)
	}

	return article, nil
}

// ArticleTagsByArticleIDs loads tags of many articles in one query.
func (r *Repository) ArticleTagsByArticleIDs(ctx context.Context, articleIDs []int) ([]ArticleTag, error) {
	if len(articleIDs) == 0 {
		return []ArticleTag{}, nil
	}

	rows := []ArticleTag{}
	err := r.db.ModelContext(ctx, &rows).
		Relation(Columns.ArticleTag.Tag).
		Where(`"t"."articleId" IN (?)`, pg.In(articleIDs)).
		OrderExpr(`"tag"."name" ASC`).
		Select()

	if err != nil {
		return nil, fmt.Errorf("failed to query article tags: %w", err)
	}

	return rows, nil
}

// IncrementArticleViews bumps the counter inside the UPDATE statement so
// concurrent calls never lose increments.
func (r *Repository) IncrementArticleViews(ctx context.Context, articleID int) error {
	_, err := r.db.ModelContext(ctx, (*Article)(nil)).
		Set(`"viewsCount" = "viewsCount" + 1`).
		Where(`"articleId" = ?`, articleID).
		Update()

	if err != nil {
		return fmt.Errorf("failed to increment article views: %w", err)
	}

	return nil
}

// SaveArticle inserts (ID == 0) or updates the article and replaces its tag
// set in one transaction.
func (r *Repository) SaveArticle(ctx context.Context, article *Article, tagIDs []int) error {
	return r.db.RunInTransaction(ctx, func(tx *pg.Tx) error {
		var err error
		if article.ID == 0 {
			_, err = tx.ModelContext(ctx, article).Returning("*").Insert()
		} else {
			_, err = tx.ModelContext(ctx, article).
				Column(articleEditableColumns...).
				WherePK().
				Update()
		}
		if err != nil {
			return fmt.Errorf("failed to save article: %w", err)
		}

		_, err = tx.ModelContext(ctx, (*ArticleTag)(nil)).
			Where(`"articleId" = ?`, article.ID).
			Delete()
		if err != nil {
			return fmt.Errorf("failed to clear article tags: %w", err)
		}

		if len(tagIDs) == 0 {
			return nil
		}

		rows := make([]ArticleTag, len(tagIDs))
		for i, tagID := range tagIDs {
			rows[i] = ArticleTag{ArticleID: article.ID, TagID: tagID}
		}

		if _, err := tx.ModelContext(ctx, &rows).Insert(); err != nil {
			return fmt.Errorf("failed to insert article tags: %w", err)
		}

		return nil
	})
}

// DeleteArticle soft-deletes the article.
func (r *Repository) DeleteArticle(ctx context.Context, articleID int) (bool, error) {
	res, err := r.db.ModelContext(ctx, &Article{ID: articleID}).
		WherePK().
		Delete()

	if err != nil {
		return false, fmt.Errorf("failed to delete article: %w", err)
	}

	return res.RowsAffected() > 0, nil
}

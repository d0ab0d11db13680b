//go:build integration

package db

import (
	"context"
	"testing"
	"time"

	"github.com/go-pg/pg/v10"
)

func withTx(t *testing.T) (*pg.Tx, context.Context, *Repository) {
	t.Helper()
	ctx := context.Background()

	tx, err := testDB.Begin()
	if err != nil {
		t.Fatalf("failed to begin transaction: %v", err)
	}

	t.Cleanup(func() {
		if err := tx.Rollback(); err != nil {
			t.Errorf("failed to rollback transaction: %v", err)
		}
	})

	repo := New(tx)
	return tx, ctx, repo
}

func publishedAt(now time.Time) *ArticleSearch {
	return &ArticleSearch{Now: now}
}

func slugsOf(articles []Article) []string {
	slugs := make([]string, len(articles))
	for i := range articles {
		slugs[i] = articles[i].Slug
	}
	return slugs
}

func containsSlug(articles []Article, slug string) bool {
	for i := range articles {
		if articles[i].Slug == slug {
			return true
		}
	}
	return false
}

func assertArticlesVisible(t *testing.T, articles []Article, now time.Time) {
	t.Helper()
	for _, a := range articles {
		if a.Status != StatusPublished {
			t.Fatalf("article %q has status %q, want published", a.Slug, a.Status)
		}
		if a.PublishedAt == nil || a.PublishedAt.After(now) {
			t.Fatalf("article %q has publishedAt=%v, not visible at %v", a.Slug, a.PublishedAt, now)
		}
		if a.DeletedAt != nil {
			t.Fatalf("article %q is soft-deleted", a.Slug)
		}
	}
}

func assertSortedByPublishedAt(t *testing.T, articles []Article) {
	t.Helper()
	for i := 0; i < len(articles)-1; i++ {
		if articles[i].PublishedAt.Before(*articles[i+1].PublishedAt) {
			t.Fatalf("articles not sorted by publishedAt desc at %d: %v", i, slugsOf(articles))
		}
	}
}

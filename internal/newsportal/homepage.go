package newsportal

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/daniilsolovey/news-cms/internal/cache"
	"github.com/daniilsolovey/news-cms/internal/db"
)

// Homepage returns the composite homepage payload, cached under
// cache.KeyHomepage.
func (m *Manager) Homepage(ctx context.Context) (*Homepage, error) {
	homepage, err := cache.Remember(ctx, m.cache, m.logger, cache.KeyHomepage, m.cfg.HomepageTTL, m.buildHomepage)
	if err != nil {
		return nil, err
	}

	return &homepage, nil
}

// buildHomepage runs every block query concurrently against the same now, so
// an article crossing its publishedAt mid-build is either in all blocks or in
// none.
func (m *Manager) buildHomepage(ctx context.Context) (Homepage, error) {
	now := m.now()
	search := func() *db.ArticleSearch {
		return &db.ArticleSearch{Now: now}
	}

	result := Homepage{
		TopStories:  Articles{},
		EditorPicks: Articles{},
		FlashNews:   Articles{},
		Shelves:     make(map[string][]Article, len(m.cfg.Shelves)),
		GeneratedAt: now,
	}

	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		s := search()
		s.IsFeatured = boolPtr(true)
		lead, err := m.list(gctx, s, 1, 0, db.OrderRecent)
		if err != nil {
			return fmt.Errorf("lead: %w", err)
		}
		if len(lead) > 0 {
			result.Lead = &lead[0]
		}
		return nil
	})

	g.Go(func() (err error) {
		result.TopStories, err = m.list(gctx, search(), TopStoriesLimit, 1, db.OrderRecent)
		if err != nil {
			return fmt.Errorf("top stories: %w", err)
		}
		return nil
	})

	g.Go(func() (err error) {
		s := search()
		s.IsEditorPick = boolPtr(true)
		result.EditorPicks, err = m.list(gctx, s, EditorPickLimit, 0, db.OrderRecent)
		if err != nil {
			return fmt.Errorf("editor picks: %w", err)
		}
		return nil
	})

	g.Go(func() (err error) {
		result.FlashNews, err = m.list(gctx, search(), FlashNewsLimit, 0, db.OrderRecent)
		if err != nil {
			return fmt.Errorf("flash news: %w", err)
		}
		return nil
	})

	for _, shelf := range m.cfg.Shelves {
		g.Go(func() error {
			limit := shelf.Limit
			if limit < 1 {
				limit = ShelfLimit
			}

			s := search()
			s.CategorySlug = &shelf.CategorySlug
			list, err := m.list(gctx, s, limit, 0, db.OrderRecent)
			if err != nil {
				return fmt.Errorf("shelf %s: %w", shelf.Key, err)
			}

			mu.Lock()
			result.Shelves[shelf.Key] = list
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return Homepage{}, fmt.Errorf("build homepage: %w", err)
	}

	return result, nil
}

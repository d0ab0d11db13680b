package rpc

import (
	"context"

	"github.com/vmkteam/zenrpc/v2"

	"github.com/daniilsolovey/news-cms/internal/newsportal"
)

//go:generate zenrpc

// NewsService provides read-only RPC methods over published content.
type NewsService struct {
	zenrpc.Service
	manager *newsportal.Manager
}

func NewNewsService(manager *newsportal.Manager) *NewsService {
	return &NewsService{manager: manager}
}

// Homepage returns the lead article, top stories, editor picks, flash news and shelves.
//
//zenrpc:return homepage blocks
//zenrpc:500 internal server error
func (s *NewsService) Homepage(ctx context.Context) (*Homepage, error) {
	h, err := s.manager.Homepage(ctx)
	if err != nil {
		return nil, newError(err)
	}

	homepage := NewHomepage(h)
	return &homepage, nil
}

// List returns published articles, newest first, optionally filtered by category and tag slug.
//
//zenrpc:filter optional filters and pagination
//zenrpc:return page of article summaries
//zenrpc:500 internal server error
func (s *NewsService) List(ctx context.Context, filter ArticleFilter) (*ArticlePage, error) {
	page, err := s.manager.Articles(ctx, filter.ToModel(), filter.PageRequest())
	if err != nil {
		return nil, newError(err)
	}

	result := NewArticlePage(page)
	return &result, nil
}

// Search finds published articles whose title, excerpt or content contains query.
//
//zenrpc:query search text, at least 2 characters
//zenrpc:filter optional filters and pagination
//zenrpc:return page of article summaries
//zenrpc:422 invalid query or limit
//zenrpc:500 internal server error
func (s *NewsService) Search(ctx context.Context, query string, filter ArticleFilter) (*ArticlePage, error) {
	pr := filter.PageRequest()
	if filter.Limit == nil {
		pr.Limit = newsportal.DefaultLimit
	}

	page, err := s.manager.Search(ctx, query, filter.ToModel(), pr)
	if err != nil {
		return nil, newError(err)
	}

	result := NewArticlePage(page)
	return &result, nil
}

// BySlug returns a published article with tags and counts a view.
//
//zenrpc:slug article slug
//zenrpc:withRelated=false include related articles
//zenrpc:return article with content
//zenrpc:404 article not found
//zenrpc:500 internal server error
func (s *NewsService) BySlug(ctx context.Context, slug string, withRelated *bool) (*Article, error) {
	a, err := s.manager.ArticleBySlug(ctx, slug, withRelated != nil && *withRelated)
	if err != nil {
		return nil, newError(err)
	}

	article := NewArticle(*a)
	return &article, nil
}

// Trending returns the most viewed published articles.
//
//zenrpc:return list of article summaries
//zenrpc:500 internal server error
func (s *NewsService) Trending(ctx context.Context) ([]ArticleSummary, error) {
	list, err := s.manager.Trending(ctx)
	if err != nil {
		return nil, newError(err)
	}

	return NewArticleSummaries(list), nil
}

// Featured returns recent featured articles.
//
//zenrpc:limit=5 number of articles
//zenrpc:return list of article summaries
//zenrpc:500 internal server error
func (s *NewsService) Featured(ctx context.Context, limit *int) ([]ArticleSummary, error) {
	n := 0
	if limit != nil {
		n = *limit
	}

	list, err := s.manager.Featured(ctx, n)
	if err != nil {
		return nil, newError(err)
	}

	return NewArticleSummaries(list), nil
}

// Categories returns active categories ordered by order.
//
//zenrpc:return list of categories
//zenrpc:500 internal server error
func (s *NewsService) Categories(ctx context.Context) ([]Category, error) {
	categories, err := s.manager.Categories(ctx)
	if err != nil {
		return nil, newError(err)
	}

	return NewCategories(categories), nil
}

// Tags returns tags that have articles, most used first.
//
//zenrpc:return list of tags
//zenrpc:500 internal server error
func (s *NewsService) Tags(ctx context.Context) ([]Tag, error) {
	tags, err := s.manager.Tags(ctx)
	if err != nil {
		return nil, newError(err)
	}

	return NewTags(tags), nil
}

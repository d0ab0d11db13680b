// NewsService dispatch and SMD, written by hand in the layout zenrpc generates.

package rpc

import (
	"context"
	"encoding/json"

	"github.com/vmkteam/zenrpc/v2"
	"github.com/vmkteam/zenrpc/v2/smd"
)

var RPC = struct {
	NewsService struct{ Homepage, List, Search, BySlug, Trending, Featured, Categories, Tags string }
}{
	NewsService: struct{ Homepage, List, Search, BySlug, Trending, Featured, Categories, Tags string }{
		Homepage:   "homepage",
		List:       "list",
		Search:     "search",
		BySlug:     "bySlug",
		Trending:   "trending",
		Featured:   "featured",
		Categories: "categories",
		Tags:       "tags",
	},
}

func (NewsService) SMD() smd.ServiceInfo {
	return smd.ServiceInfo{
		Methods: map[string]smd.Service{
			"Homepage": {
				Description: `Homepage returns the lead article, top stories, editor picks, flash news and shelves.`,
				Parameters:  []smd.JSONSchema{},
				Returns: smd.JSONSchema{
					Description: `homepage blocks`,
					Optional:    true,
					Type:        smd.Object,
				},
				Errors: map[int]string{
					500: "internal server error",
				},
			},
			"List": {
				Description: `List returns published articles, newest first, optionally filtered by category and tag slug.`,
				Parameters: []smd.JSONSchema{
					{
						Name:        "filter",
						Description: `optional filters and pagination`,
						Type:        smd.Object,
					},
				},
				Returns: smd.JSONSchema{
					Description: `page of article summaries`,
					Optional:    true,
					Type:        smd.Object,
				},
				Errors: map[int]string{
					500: "internal server error",
				},
			},
			"Search": {
				Description: `Search finds published articles whose title, excerpt or content contains query.`,
				Parameters: []smd.JSONSchema{
					{
						Name:        "query",
						Description: `search text, at least 2 characters`,
						Type:        smd.String,
					},
					{
						Name:        "filter",
						Description: `optional filters and pagination`,
						Type:        smd.Object,
					},
				},
				Returns: smd.JSONSchema{
					Description: `page of article summaries`,
					Optional:    true,
					Type:        smd.Object,
				},
				Errors: map[int]string{
					422: "invalid query or limit",
					500: "internal server error",
				},
			},
			"BySlug": {
				Description: `BySlug returns a published article with tags and counts a view.`,
				Parameters: []smd.JSONSchema{
					{
						Name:        "slug",
						Description: `article slug`,
						Type:        smd.String,
					},
					{
						Name:        "withRelated",
						Optional:    true,
						Description: `include related articles`,
						Type:        smd.Boolean,
					},
				},
				Returns: smd.JSONSchema{
					Description: `article with content`,
					Optional:    true,
					Type:        smd.Object,
				},
				Errors: map[int]string{
					404: "article not found",
					500: "internal server error",
				},
			},
			"Trending": {
				Description: `Trending returns the most viewed published articles.`,
				Parameters:  []smd.JSONSchema{},
				Returns: smd.JSONSchema{
					Description: `list of article summaries`,
					Optional:    true,
					Type:        smd.Array,
				},
				Errors: map[int]string{
					500: "internal server error",
				},
			},
			"Featured": {
				Description: `Featured returns recent featured articles.`,
				Parameters: []smd.JSONSchema{
					{
						Name:        "limit",
						Optional:    true,
						Description: `number of articles`,
						Type:        smd.Integer,
					},
				},
				Returns: smd.JSONSchema{
					Description: `list of article summaries`,
					Optional:    true,
					Type:        smd.Array,
				},
				Errors: map[int]string{
					500: "internal server error",
				},
			},
			"Categories": {
				Description: `Categories returns active categories ordered by order.`,
				Parameters:  []smd.JSONSchema{},
				Returns: smd.JSONSchema{
					Description: `list of categories`,
					Optional:    true,
					Type:        smd.Array,
				},
				Errors: map[int]string{
					500: "internal server error",
				},
			},
			"Tags": {
				Description: `Tags returns tags that have articles, most used first.`,
				Parameters:  []smd.JSONSchema{},
				Returns: smd.JSONSchema{
					Description: `list of tags`,
					Optional:    true,
					Type:        smd.Array,
				},
				Errors: map[int]string{
					500: "internal server error",
				},
			},
		},
	}
}

// Invoke is as generated code from zenrpc cmd
func (s NewsService) Invoke(ctx context.Context, method string, params json.RawMessage) zenrpc.Response {
	resp := zenrpc.Response{}
	var err error

	switch method {
	case RPC.NewsService.Homepage:
		resp.Set(s.Homepage(ctx))

	case RPC.NewsService.List:
		var args = struct {
			Filter ArticleFilter `json:"filter"`
		}{}

		if zenrpc.IsArray(params) {
			if params, err = zenrpc.ConvertToObject([]string{"filter"}, params); err != nil {
				return zenrpc.NewResponseError(nil, zenrpc.InvalidParams, "", err.Error())
			}
		}

		if len(params) > 0 {
			if err := json.Unmarshal(params, &args); err != nil {
				return zenrpc.NewResponseError(nil, zenrpc.InvalidParams, "", err.Error())
			}
		}

		resp.Set(s.List(ctx, args.Filter))

	case RPC.NewsService.Search:
		var args = struct {
			Query  string        `json:"query"`
			Filter ArticleFilter `json:"filter"`
		}{}

		if zenrpc.IsArray(params) {
			if params, err = zenrpc.ConvertToObject([]string{"query", "filter"}, params); err != nil {
				return zenrpc.NewResponseError(nil, zenrpc.InvalidParams, "", err.Error())
			}
		}

		if len(params) > 0 {
			if err := json.Unmarshal(params, &args); err != nil {
				return zenrpc.NewResponseError(nil, zenrpc.InvalidParams, "", err.Error())
			}
		}

		resp.Set(s.Search(ctx, args.Query, args.Filter))

	case RPC.NewsService.BySlug:
		var args = struct {
			Slug        string `json:"slug"`
			WithRelated *bool  `json:"withRelated"`
		}{}

		if zenrpc.IsArray(params) {
			if params, err = zenrpc.ConvertToObject([]string{"slug", "withRelated"}, params); err != nil {
				return zenrpc.NewResponseError(nil, zenrpc.InvalidParams, "", err.Error())
			}
		}

		if len(params) > 0 {
			if err := json.Unmarshal(params, &args); err != nil {
				return zenrpc.NewResponseError(nil, zenrpc.InvalidParams, "", err.Error())
			}
		}

		//zenrpc:withRelated=false include related articles
		if args.WithRelated == nil {
			var v bool = false
			args.WithRelated = &v
		}

		resp.Set(s.BySlug(ctx, args.Slug, args.WithRelated))

	case RPC.NewsService.Trending:
		resp.Set(s.Trending(ctx))

	case RPC.NewsService.Featured:
		var args = struct {
			Limit *int `json:"limit"`
		}{}

		if zenrpc.IsArray(params) {
			if params, err = zenrpc.ConvertToObject([]string{"limit"}, params); err != nil {
				return zenrpc.NewResponseError(nil, zenrpc.InvalidParams, "", err.Error())
			}
		}

		if len(params) > 0 {
			if err := json.Unmarshal(params, &args); err != nil {
				return zenrpc.NewResponseError(nil, zenrpc.InvalidParams, "", err.Error())
			}
		}

		//zenrpc:limit=5 number of articles
		if args.Limit == nil {
			var v int = 5
			args.Limit = &v
		}

		resp.Set(s.Featured(ctx, args.Limit))

	case RPC.NewsService.Categories:
		resp.Set(s.Categories(ctx))

	case RPC.NewsService.Tags:
		resp.Set(s.Tags(ctx))

	default:
		resp = zenrpc.NewResponseError(nil, zenrpc.MethodNotFound, "", nil)
	}

	return resp
}

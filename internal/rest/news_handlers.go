package rest

import (
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-pg/urlstruct"
	"github.com/labstack/echo/v4"

	"github.com/daniilsolovey/news-cms/internal/newsportal"
)

type NewsHandler struct {
	uc  *newsportal.Manager
	log *slog.Logger
	now func() time.Time
}

func NewNewsHandler(uc *newsportal.Manager, log *slog.Logger) *NewsHandler {
	return &NewsHandler{
		uc:  uc,
		log: log,
		now: time.Now,
	}
}

// bindQuery decodes the query string into dst.
func bindQuery(c echo.Context, dst any) error {
	if err := urlstruct.Unmarshal(c.Request().Context(), c.QueryParams(), dst); err != nil {
		return badRequest(err)
	}

	return nil
}

// searchParamErrors reports non-integer page and limit values as field errors,
// so search rejects them with 422 like an out of range limit.
func searchParamErrors(values url.Values) error {
	errs := validation.Errors{}
	for _, name := range []string{"page", "limit"} {
		if !values.Has(name) {
			continue
		}
		if _, err := strconv.Atoi(values.Get(name)); err != nil {
			errs[name] = validation.NewError("validation_integer", "must be an integer")
		}
	}
	if _, ok := errs["limit"]; ok {
		errs["limit"] = validation.NewError("validation_integer", fmt.Sprintf("must be between 1 and %d", newsportal.MaxLimit))
	}

	return errs.Filter()
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func pathID(c echo.Context) (int, error) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id < 1 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	return id, nil
}

// Homepage handles GET /v1/homepage
// @Summary Homepage
// @Description Lead article, top stories, editor picks, flash news and category shelves. Cached.
// @Tags homepage
// @Produce json
// @Success 200 {object} rest.Homepage
// @Failure 500 {object} rest.ErrorResponse
// @Router /v1/homepage [get]
func (h *NewsHandler) Homepage(c echo.Context) error {
	homepage, err := h.uc.Homepage(c.Request().Context())
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, NewHomepage(homepage, h.now()))
}

// Articles handles GET /v1/articles
// @Summary List articles
// @Description Published articles, newest first, optionally filtered by category and tag slug.
// @Tags articles
// @Produce json
// @Param category query string false "Category slug"
// @Param tag query string false "Tag slug"
// @Param page query int false "Page number (default: 1)"
// @Param limit query int false "Page size (default: 10, max: 50)"
// @Success 200 {object} rest.ArticlePage
// @Failure 400,500 {object} rest.ErrorResponse
// @Router /v1/articles [get]
func (h *NewsHandler) Articles(c echo.Context) error {
	var req ArticlesQuery
	if err := bindQuery(c, &req); err != nil {
		return err
	}

	page, err := h.uc.Articles(c.Request().Context(),
		newsportal.ArticleFilter{CategorySlug: optional(req.Category), TagSlug: optional(req.Tag)},
		newsportal.PageRequest{Page: req.Page, Limit: req.Limit},
	)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, NewArticlePage(page, h.now()))
}

// Trending handles GET /v1/articles/trending
// @Summary Trending articles
// @Description Ten most viewed published articles.
// @Tags articles
// @Produce json
// @Success 200 {object} rest.DataResponse[[]rest.ArticleCard]
// @Failure 500 {object} rest.ErrorResponse
// @Router /v1/articles/trending [get]
func (h *NewsHandler) Trending(c echo.Context) error {
	list, err := h.uc.Trending(c.Request().Context())
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, DataResponse[[]ArticleCard]{Data: NewArticleCards(list, h.now())})
}

// Featured handles GET /v1/articles/featured
// @Summary Featured articles
// @Tags articles
// @Produce json
// @Param limit query int false "Number of articles (default: 5, max: 50)"
// @Success 200 {object} rest.DataResponse[[]rest.ArticleCard]
// @Failure 400,500 {object} rest.ErrorResponse
// @Router /v1/articles/featured [get]
func (h *NewsHandler) Featured(c echo.Context) error {
	var req FeaturedQuery
	if err := bindQuery(c, &req); err != nil {
		return err
	}

	list, err := h.uc.Featured(c.Request().Context(), req.Limit)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, DataResponse[[]ArticleCard]{Data: NewArticleCards(list, h.now())})
}

// ArticleBySlug handles GET /v1/articles/:slug
// @Summary Get article
// @Description Full published article with tags. include=related adds related articles. Counts a view.
// @Tags articles
// @Produce json
// @Param slug path string true "Article slug"
// @Param include query string false "related"
// @Success 200 {object} rest.Article
// @Failure 404,500 {object} rest.ErrorResponse
// @Router /v1/articles/{slug} [get]
func (h *NewsHandler) ArticleBySlug(c echo.Context) error {
	var req ArticleQuery
	if err := bindQuery(c, &req); err != nil {
		return err
	}

	article, err := h.uc.ArticleBySlug(c.Request().Context(), c.Param("slug"), req.Include == "related")
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, NewArticle(*article, h.now()))
}

// RelatedArticles handles GET /v1/articles/:slug/related
// @Summary Related articles
// @Description Up to five recent articles from the same category.
// @Tags articles
// @Produce json
// @Param slug path string true "Article slug"
// @Success 200 {object} rest.DataResponse[[]rest.ArticleCard]
// @Failure 404,500 {object} rest.ErrorResponse
// @Router /v1/articles/{slug}/related [get]
func (h *NewsHandler) RelatedArticles(c echo.Context) error {
	list, err := h.uc.RelatedArticles(c.Request().Context(), c.Param("slug"))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, DataResponse[[]ArticleCard]{Data: NewArticleCards(list, h.now())})
}

// Search handles GET /v1/search
// @Summary Search articles
// @Description Case-insensitive substring search in title, excerpt and content of published articles.
// @Tags search
// @Produce json
// @Param q query string true "Query, at least 2 characters"
// @Param category query string false "Category slug"
// @Param tag query string false "Tag slug"
// @Param page query int false "Page number (default: 1)"
// @Param limit query int false "Page size 1..50 (default: 10)"
// @Success 200 {object} rest.SearchPage
// @Failure 422,500 {object} rest.ErrorResponse
// @Router /v1/search [get]
func (h *NewsHandler) Search(c echo.Context) error {
	if err := searchParamErrors(c.QueryParams()); err != nil {
		return err
	}

	var req SearchQuery
	if err := bindQuery(c, &req); err != nil {
		return err
	}

	if !c.QueryParams().Has("limit") {
		req.Limit = newsportal.DefaultLimit
	}

	page, err := h.uc.Search(c.Request().Context(), req.Q,
		newsportal.ArticleFilter{CategorySlug: optional(req.Category), TagSlug: optional(req.Tag)},
		newsportal.PageRequest{Page: req.Page, Limit: req.Limit},
	)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, SearchPage{
		Query:      req.Q,
		Data:       NewArticleCards(page.Articles, h.now()),
		Pagination: NewPagination(page.Pagination),
	})
}

// Categories handles GET /v1/categories
// @Summary List categories
// @Description Active categories ordered by order. Cached.
// @Tags categories
// @Produce json
// @Success 200 {object} rest.DataResponse[[]rest.Category]
// @Failure 500 {object} rest.ErrorResponse
// @Router /v1/categories [get]
func (h *NewsHandler) Categories(c echo.Context) error {
	categories, err := h.uc.Categories(c.Request().Context())
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, DataResponse[[]Category]{Data: Map(categories, NewCategory)})
}

// CategoryBySlug handles GET /v1/categories/:slug
// @Summary Get category
// @Tags categories
// @Produce json
// @Param slug path string true "Category slug"
// @Success 200 {object} rest.DataResponse[rest.Category]
// @Failure 404,500 {object} rest.ErrorResponse
// @Router /v1/categories/{slug} [get]
func (h *NewsHandler) CategoryBySlug(c echo.Context) error {
	category, err := h.uc.CategoryBySlug(c.Request().Context(), c.Param("slug"))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, DataResponse[Category]{Data: NewCategory(*category)})
}

// CategoryArticles handles GET /v1/categories/:slug/articles
// @Summary Category articles
// @Tags categories
// @Produce json
// @Param slug path string true "Category slug"
// @Param page query int false "Page number (default: 1)"
// @Param limit query int false "Page size (default: 10, max: 50)"
// @Success 200 {object} rest.CategoryPage
// @Failure 400,404,500 {object} rest.ErrorResponse
// @Router /v1/categories/{slug}/articles [get]
func (h *NewsHandler) CategoryArticles(c echo.Context) error {
	var req PageQuery
	if err := bindQuery(c, &req); err != nil {
		return err
	}

	category, page, err := h.uc.CategoryArticles(c.Request().Context(), c.Param("slug"),
		newsportal.PageRequest{Page: req.Page, Limit: req.Limit})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, CategoryPage{
		Category:   NewCategory(*category),
		Data:       NewArticleCards(page.Articles, h.now()),
		Pagination: NewPagination(page.Pagination),
	})
}

// Tags handles GET /v1/tags
// @Summary List tags
// @Description Tags that have articles, most used first. Cached.
// @Tags tags
// @Produce json
// @Success 200 {object} rest.DataResponse[[]rest.Tag]
// @Failure 500 {object} rest.ErrorResponse
// @Router /v1/tags [get]
func (h *NewsHandler) Tags(c echo.Context) error {
	tags, err := h.uc.Tags(c.Request().Context())
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, DataResponse[[]Tag]{Data: Map(tags, NewTag)})
}

// TagBySlug handles GET /v1/tags/:slug
// @Summary Get tag
// @Tags tags
// @Produce json
// @Param slug path string true "Tag slug"
// @Success 200 {object} rest.DataResponse[rest.Tag]
// @Failure 404,500 {object} rest.ErrorResponse
// @Router /v1/tags/{slug} [get]
func (h *NewsHandler) TagBySlug(c echo.Context) error {
	tag, err := h.uc.TagBySlug(c.Request().Context(), c.Param("slug"))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, DataResponse[Tag]{Data: NewTag(*tag)})
}

// TagArticles handles GET /v1/tags/:slug/articles
// @Summary Tag articles
// @Tags tags
// @Produce json
// @Param slug path string true "Tag slug"
// @Param page query int false "Page number (default: 1)"
// @Param limit query int false "Page size (default: 10, max: 50)"
// @Success 200 {object} rest.TagPage
// @Failure 400,404,500 {object} rest.ErrorResponse
// @Router /v1/tags/{slug}/articles [get]
func (h *NewsHandler) TagArticles(c echo.Context) error {
	var req PageQuery
	if err := bindQuery(c, &req); err != nil {
		return err
	}

	tag, page, err := h.uc.TagArticles(c.Request().Context(), c.Param("slug"),
		newsportal.PageRequest{Page: req.Page, Limit: req.Limit})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, TagPage{
		Tag:        NewTag(*tag),
		Data:       NewArticleCards(page.Articles, h.now()),
		Pagination: NewPagination(page.Pagination),
	})
}

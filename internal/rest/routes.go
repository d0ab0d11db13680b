package rest

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/swaggo/swag"

	"github.com/daniilsolovey/news-cms/internal/auth"
)

const (
	apiV1Prefix = "/v1"
	authPrefix  = "/auth"
	rpcPath     = apiV1Prefix + "/rpc/"

	healthPath  = "/health"
	metricsPath = "/metrics"
	swaggerPath = "/swagger/doc.json"
)

// Router wires the REST handlers, the optional JSON-RPC handler and the
// service endpoints into one echo instance.
type Router struct {
	News    *NewsHandler
	Auth    *AuthHandler
	AuthSvc *auth.Service
	RPC     http.Handler
	Logger  *slog.Logger
}

func (r Router) Echo() *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = NewErrorHandler(r.Logger)

	e.Use(requestIDMiddleware, loggingMiddleware(r.Logger), metricsMiddleware)

	e.GET(healthPath, handleHealth)
	e.GET(metricsPath, echo.WrapHandler(promhttp.Handler()))
	e.GET(swaggerPath, handleSwagger)

	r.registerAPIRoutes(e.Group(apiV1Prefix))
	r.registerAuthRoutes(e.Group(authPrefix))

	if r.RPC != nil {
		e.Any(rpcPath, echo.WrapHandler(r.RPC))
	}

	return e
}

func (r Router) registerAPIRoutes(g *echo.Group) {
	h := r.News

	g.GET("/homepage", h.Homepage)

	g.GET("/articles", h.Articles)
	g.GET("/articles/trending", h.Trending)
	g.GET("/articles/featured", h.Featured)
	g.GET("/articles/:slug", h.ArticleBySlug)
	g.GET("/articles/:slug/related", h.RelatedArticles)

	g.GET("/search", h.Search)

	g.GET("/categories", h.Categories)
	g.GET("/categories/:slug", h.CategoryBySlug)
	g.GET("/categories/:slug/articles", h.CategoryArticles)

	g.GET("/tags", h.Tags)
	g.GET("/tags/:slug", h.TagBySlug)
	g.GET("/tags/:slug/articles", h.TagArticles)

	// Per-route middleware: a group with middleware would also guard its
	// catch-all not found route.
	authed := requireAuth(r.AuthSvc)
	g.POST("/articles", h.CreateArticle, authed)
	g.PUT("/articles/:id", h.UpdateArticle, authed)
	g.DELETE("/articles/:id", h.DeleteArticle, authed)
	g.POST("/categories", h.CreateCategory, authed)
	g.PUT("/categories/:id", h.UpdateCategory, authed)
	g.DELETE("/categories/:id", h.DeleteCategory, authed)
	g.POST("/tags", h.CreateTag, authed)
	g.PUT("/tags/:id", h.UpdateTag, authed)
	g.DELETE("/tags/:id", h.DeleteTag, authed)
}

func (r Router) registerAuthRoutes(g *echo.Group) {
	h := r.Auth

	g.POST("/register", h.Register)
	g.POST("/login", h.Login)
	g.POST("/password/forgot", h.ForgotPassword)
	g.POST("/password/reset", h.ResetPassword)

	authed := requireAuth(r.AuthSvc)
	g.POST("/logout", h.Logout, authed)
	g.POST("/refresh", h.Refresh, authed)
	g.GET("/user", h.User, authed)
	g.POST("/unlink-provider", h.UnlinkProvider, authed)

	g.GET("/:provider", h.Redirect)
	g.POST("/:provider/callback", h.Exchange)
	g.GET("/:provider/callback", h.Callback)
}

func handleHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

func handleSwagger(c echo.Context) error {
	doc, err := swag.ReadDoc()
	if err != nil {
		return err
	}

	return c.Blob(http.StatusOK, echo.MIMEApplicationJSONCharsetUTF8, []byte(doc))
}

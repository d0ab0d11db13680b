package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-pg/pg/v10"
	"github.com/labstack/echo/v4"

	"github.com/daniilsolovey/news-cms/internal/auth"
	"github.com/daniilsolovey/news-cms/internal/cache"
	"github.com/daniilsolovey/news-cms/internal/db"
	"github.com/daniilsolovey/news-cms/internal/newsportal"
	"github.com/daniilsolovey/news-cms/internal/rest"
	"github.com/daniilsolovey/news-cms/internal/rpc"
)

type Config struct {
	Database pg.Options
	App      struct {
		Host        string
		Port        int
		LogQueries  bool
		FrontendURL string
	}
	Redis struct {
		Enabled bool
		URL     string
		Prefix  string
	}
	Cache struct {
		HomepageTTL     time.Duration
		CategoryListTTL time.Duration
		TagListTTL      time.Duration
	}
	Auth struct {
		Secret   string
		TokenTTL time.Duration
		ResetTTL time.Duration
	}
	OAuth struct {
		Providers map[string]auth.ProviderConfig
	}
	Homepage struct {
		Shelves []newsportal.Shelf
	}
	Views struct {
		QueueSize int
		Workers   int
	}
}

// Validate checks settings the service cannot start without.
func (c Config) Validate() error {
	if c.Auth.Secret == "" {
		return errors.New("auth secret is required")
	}
	if c.App.Port < 1 {
		return fmt.Errorf("invalid port %d", c.App.Port)
	}
	if c.Redis.Enabled && c.Redis.URL == "" {
		return errors.New("redis url is required when redis is enabled")
	}

	return nil
}

func (c Config) managerConfig() newsportal.Config {
	cfg := newsportal.DefaultConfig()
	if c.Cache.HomepageTTL > 0 {
		cfg.HomepageTTL = c.Cache.HomepageTTL
	}
	if c.Cache.CategoryListTTL > 0 {
		cfg.CategoryListTTL = c.Cache.CategoryListTTL
	}
	if c.Cache.TagListTTL > 0 {
		cfg.TagListTTL = c.Cache.TagListTTL
	}
	if len(c.Homepage.Shelves) > 0 {
		cfg.Shelves = c.Homepage.Shelves
		for i := range cfg.Shelves {
			if cfg.Shelves[i].Limit < 1 {
				cfg.Shelves[i].Limit = newsportal.ShelfLimit
			}
		}
	}

	return cfg
}

func (c Config) authConfig() auth.Config {
	cfg := auth.DefaultConfig()
	cfg.Secret = c.Auth.Secret
	if c.Auth.TokenTTL > 0 {
		cfg.TokenTTL = c.Auth.TokenTTL
	}
	if c.Auth.ResetTTL > 0 {
		cfg.ResetTTL = c.Auth.ResetTTL
	}

	return cfg
}

type App struct {
	DB     *db.Repository
	Cache  cache.Cache
	Views  *newsportal.ViewCounter
	Logger *slog.Logger
	Echo   *echo.Echo
	Config Config
}

// New wires storage, cache, services and transports. dbConnect must be
// connected; the cache is Redis when enabled and process memory otherwise.
func New(ctx context.Context, cfg Config, dbConnect *pg.DB, logger *slog.Logger) (*App, error) {
	if cfg.App.LogQueries {
		dbConnect.AddQueryHook(db.NewQueryHook(logger))
		logger.Info("SQL query logging enabled")
	}

	var c cache.Cache = cache.NewMemory()
	if cfg.Redis.Enabled {
		rc, err := cache.Connect(ctx, cfg.Redis.URL, cfg.Redis.Prefix)
		if err != nil {
			return nil, err
		}
		c = rc
	}

	providers := make([]*auth.Provider, 0, len(cfg.OAuth.Providers))
	for name, pc := range cfg.OAuth.Providers {
		p, err := auth.NewProvider(name, pc)
		if err != nil {
			return nil, fmt.Errorf("oauth provider %q: %w", name, err)
		}
		providers = append(providers, p)
	}

	repo := db.New(dbConnect)
	views := newsportal.NewViewCounter(repo, logger, cfg.Views.QueueSize, cfg.Views.Workers)
	views.Start()

	manager := newsportal.NewNewsManager(repo, c, views, cfg.managerConfig(), logger)
	authSvc := auth.NewService(repo, c, auth.LogNotifier{Logger: logger}, cfg.authConfig(), logger, providers...)

	router := rest.Router{
		News:    rest.NewNewsHandler(manager, logger),
		Auth:    rest.NewAuthHandler(authSvc, logger, cfg.App.FrontendURL),
		AuthSvc: authSvc,
		RPC:     rpc.New(logger, manager),
		Logger:  logger,
	}

	return &App{
		DB:     repo,
		Cache:  c,
		Views:  views,
		Logger: logger,
		Echo:   router.Echo(),
		Config: cfg,
	}, nil
}

func (a *App) Run(ctx context.Context) error {
	addr := fmt.Sprintf("%s:%d", a.Config.App.Host, a.Config.App.Port)
	a.Logger.InfoContext(ctx, "starting server", "addr", addr)

	err := a.Echo.Start(addr)
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

// GracefulShutdown stops the HTTP server, drains pending view increments and
// closes the cache and database connections.
func (a *App) GracefulShutdown(ctx context.Context) error {
	var errs []error

	if err := a.Echo.Shutdown(ctx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		errs = append(errs, fmt.Errorf("http shutdown: %w", err))
	}

	if err := a.Views.Close(ctx); err != nil {
		errs = append(errs, fmt.Errorf("view counter: %w", err))
	}

	if closer, ok := a.Cache.(io.Closer); ok {
		if err := closer.Close(); err != nil {
			errs = append(errs, fmt.Errorf("cache close: %w", err))
		}
	}

	if err := a.DB.Close(); err != nil {
		errs = append(errs, fmt.Errorf("db close: %w", err))
	}

	return errors.Join(errs...)
}
